package postgres

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/yourusername/waiver-api/internal/domain/entity"
	apperrors "github.com/yourusername/waiver-api/internal/pkg/errors"
)

// viewWaiverDocuments — представление, склеивающее вейвер, участника, анкету,
// контакт ЧП и последнюю запись аудита в одну плоскую строку (см. миграции)
const viewWaiverDocuments = "view_waiver_documents"

// WaiverDocumentRepo реализует repository.WaiverDocumentRepository
type WaiverDocumentRepo struct {
	db *gorm.DB
}

// NewWaiverDocumentRepo создает новый репозиторий чтения документов
func NewWaiverDocumentRepo(db *gorm.DB) *WaiverDocumentRepo {
	return &WaiverDocumentRepo{db: db}
}

// FetchByWaiverID возвращает строку представления для вейвера.
// ErrNotFound и ErrFetchFailed различаются намеренно: обработчики
// отвечают на них разными статусами (404 против 502).
func (r *WaiverDocumentRepo) FetchByWaiverID(waiverID string) (*entity.WaiverDocumentRow, error) {
	var row entity.WaiverDocumentRow
	err := r.db.Table(viewWaiverDocuments).
		Where("waiver_id = ?", waiverID).
		Limit(1).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", apperrors.ErrFetchFailed, err)
	}
	return &row, nil
}
