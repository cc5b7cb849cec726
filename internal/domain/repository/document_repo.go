package repository

import "github.com/yourusername/waiver-api/internal/domain/entity"

// WaiverDocumentRepository интерфейс чтения денормализованной строки документа
type WaiverDocumentRepository interface {
	// FetchByWaiverID возвращает строку view_waiver_documents для вейвера.
	// Два различимых исхода: apperrors.ErrNotFound (строки нет, терминально)
	// и apperrors.ErrFetchFailed (транспортная ошибка, безопасно ретраить).
	FetchByWaiverID(waiverID string) (*entity.WaiverDocumentRow, error)
}
