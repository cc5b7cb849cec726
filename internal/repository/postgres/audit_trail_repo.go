package postgres

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/yourusername/waiver-api/internal/domain/entity"
	apperrors "github.com/yourusername/waiver-api/internal/pkg/errors"
)

// AuditTrailRepo реализует repository.AuditTrailRepository
type AuditTrailRepo struct {
	db *gorm.DB
}

// NewAuditTrailRepo создает новый репозиторий журнала аудита
func NewAuditTrailRepo(db *gorm.DB) *AuditTrailRepo {
	return &AuditTrailRepo{db: db}
}

// Create добавляет запись аудита
func (r *AuditTrailRepo) Create(trail *entity.AuditTrail) error {
	if err := r.db.Create(trail).Error; err != nil {
		return fmt.Errorf("failed to create audit trail: %w", err)
	}
	return nil
}

// GetLatestByWaiverID возвращает последнюю запись аудита для вейвера
func (r *AuditTrailRepo) GetLatestByWaiverID(waiverID string) (*entity.AuditTrail, error) {
	var trail entity.AuditTrail
	err := r.db.Where("waiver_id = ?", waiverID).Order("created_at DESC").First(&trail).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get latest audit trail: %w", err)
	}
	return &trail, nil
}
