package postgres

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/yourusername/waiver-api/internal/domain/entity"
	apperrors "github.com/yourusername/waiver-api/internal/pkg/errors"
)

// WaiverRepo реализует repository.WaiverRepository
type WaiverRepo struct {
	db *gorm.DB
}

// NewWaiverRepo создает новый репозиторий вейверов
func NewWaiverRepo(db *gorm.DB) *WaiverRepo {
	return &WaiverRepo{db: db}
}

// Create сохраняет строку вейвера
func (r *WaiverRepo) Create(waiver *entity.Waiver) error {
	if err := r.db.Create(waiver).Error; err != nil {
		return fmt.Errorf("failed to create waiver: %w", err)
	}
	return nil
}

// GetByID возвращает вейвер по идентификатору
func (r *WaiverRepo) GetByID(id string) (*entity.Waiver, error) {
	var waiver entity.Waiver
	err := r.db.First(&waiver, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get waiver: %w", err)
	}
	return &waiver, nil
}

// CreateMedicalHistory сохраняет медицинскую анкету вейвера
func (r *WaiverRepo) CreateMedicalHistory(history *entity.WaiverMedicalHistory) error {
	if err := r.db.Create(history).Error; err != nil {
		return fmt.Errorf("failed to create medical history: %w", err)
	}
	return nil
}

// CreateEmergencyContact сохраняет контакт на случай ЧП
func (r *WaiverRepo) CreateEmergencyContact(contact *entity.EmergencyContact) error {
	if err := r.db.Create(contact).Error; err != nil {
		return fmt.Errorf("failed to create emergency contact: %w", err)
	}
	return nil
}
