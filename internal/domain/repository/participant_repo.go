package repository

import "github.com/yourusername/waiver-api/internal/domain/entity"

// ParticipantRepository интерфейс для работы с участниками
type ParticipantRepository interface {
	// Create сохраняет нового участника
	Create(participant *entity.Participant) error

	// FindByEmailAndDOB возвращает одного кандидата с точным совпадением
	// email и даты рождения (apperrors.ErrNotFound, если кандидата нет)
	FindByEmailAndDOB(email, dateOfBirth string) (*entity.Participant, error)

	// GetByID возвращает участника по идентификатору
	GetByID(id string) (*entity.Participant, error)
}
