package postgres

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/yourusername/waiver-api/internal/domain/entity"
	apperrors "github.com/yourusername/waiver-api/internal/pkg/errors"
)

// ParticipantRepo реализует repository.ParticipantRepository
type ParticipantRepo struct {
	db *gorm.DB
}

// NewParticipantRepo создает новый репозиторий участников
func NewParticipantRepo(db *gorm.DB) *ParticipantRepo {
	return &ParticipantRepo{db: db}
}

// Create сохраняет нового участника
func (r *ParticipantRepo) Create(participant *entity.Participant) error {
	if err := r.db.Create(participant).Error; err != nil {
		return fmt.Errorf("failed to create participant: %w", err)
	}
	return nil
}

// FindByEmailAndDOB возвращает одного кандидата с точным совпадением email и даты рождения.
// Limit(1): идентичность ищется по единственному кандидату, как и в исходной схеме данных.
func (r *ParticipantRepo) FindByEmailAndDOB(email, dateOfBirth string) (*entity.Participant, error) {
	var participant entity.Participant
	err := r.db.
		Where("email = ? AND date_of_birth = ?", email, dateOfBirth).
		Limit(1).
		Take(&participant).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find participant: %w", err)
	}
	return &participant, nil
}

// GetByID возвращает участника по идентификатору
func (r *ParticipantRepo) GetByID(id string) (*entity.Participant, error) {
	var participant entity.Participant
	err := r.db.First(&participant, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get participant: %w", err)
	}
	return &participant, nil
}
