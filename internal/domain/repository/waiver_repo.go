package repository

import "github.com/yourusername/waiver-api/internal/domain/entity"

// WaiverRepository интерфейс для записи вейвера и принадлежащих ему строк
type WaiverRepository interface {
	// Create сохраняет строку вейвера
	Create(waiver *entity.Waiver) error

	// GetByID возвращает вейвер по идентификатору
	GetByID(id string) (*entity.Waiver, error)

	// CreateMedicalHistory сохраняет медицинскую анкету вейвера
	CreateMedicalHistory(history *entity.WaiverMedicalHistory) error

	// CreateEmergencyContact сохраняет контакт на случай ЧП
	CreateEmergencyContact(contact *entity.EmergencyContact) error
}
