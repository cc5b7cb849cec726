package repository

import "github.com/yourusername/waiver-api/internal/domain/entity"

// AuditTrailRepository интерфейс для журнала аудита.
// Журнал append-only: методов обновления и удаления нет намеренно.
type AuditTrailRepository interface {
	// Create добавляет запись аудита
	Create(trail *entity.AuditTrail) error

	// GetLatestByWaiverID возвращает последнюю запись аудита для вейвера
	GetLatestByWaiverID(waiverID string) (*entity.AuditTrail, error)
}
