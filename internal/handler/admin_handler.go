package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/waiver-api/internal/handler/dto"
	apperrors "github.com/yourusername/waiver-api/internal/pkg/errors"
	"github.com/yourusername/waiver-api/internal/service"
)

// AdminHandler обрабатывает административные запросы к метаданным документов
type AdminHandler struct {
	documentService *service.DocumentService
}

// NewAdminHandler создает новый административный обработчик
func NewAdminHandler(documentService *service.DocumentService) *AdminHandler {
	return &AdminHandler{documentService: documentService}
}

// GetWaiverMetadata обрабатывает GET /api/admin/waivers/:id.
// Возвращает метаданные документа и подписанные ссылки, сам PDF не отдается.
func (h *AdminHandler) GetWaiverMetadata(c *gin.Context) {
	waiverID := c.MustGet("waiverID").(string)

	meta, err := h.documentService.Metadata(c.Request.Context(), waiverID)
	if err != nil {
		h.handleMetadataError(c, waiverID, err)
		return
	}

	c.JSON(http.StatusOK, dto.WaiverMetadataResponse{
		OK:               true,
		WaiverID:         meta.WaiverID,
		ParticipantID:    meta.ParticipantID,
		SignatureURL:     meta.SignatureURL,
		DocumentPDFURL:   meta.DocumentPDFURL,
		DocumentSHA256:   meta.DocumentSHA256,
		Locale:           meta.Locale,
		ContentVersion:   meta.ContentVersion,
		CreatedAt:        meta.CreatedAt,
		IdentitySnapshot: meta.IdentitySnapshot,
	})
}

// handleMetadataError мапит ошибки пути метаданных на HTTP-ответы
func (h *AdminHandler) handleMetadataError(c *gin.Context, waiverID string, err error) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "not_found"})
	case errors.Is(err, service.ErrAuditNotFound):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "audit_not_found"})
	case errors.Is(err, service.ErrSignedURLFailed):
		log.Printf("[AdminHandler] Не удалось выписать подписанные ссылки для %s: %v", waiverID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "signed_url_failed"})
	default:
		log.Printf("[AdminHandler] Ошибка получения метаданных %s: %v", waiverID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "server_error"})
	}
}
