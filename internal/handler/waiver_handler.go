package handler

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/waiver-api/internal/handler/dto"
	"github.com/yourusername/waiver-api/internal/handler/helper"
	apperrors "github.com/yourusername/waiver-api/internal/pkg/errors"
	"github.com/yourusername/waiver-api/internal/service"
)

// WaiverHandler обрабатывает публичную отправку вейвера и выдачу PDF
type WaiverHandler struct {
	waiverService   *service.WaiverService
	documentService *service.DocumentService
}

// NewWaiverHandler создает новый обработчик вейверов
func NewWaiverHandler(
	waiverService *service.WaiverService,
	documentService *service.DocumentService,
) *WaiverHandler {
	return &WaiverHandler{
		waiverService:   waiverService,
		documentService: documentService,
	}
}

// Submit обрабатывает POST /api/waivers/submit
func (h *WaiverHandler) Submit(c *gin.Context) {
	var req dto.SubmitWaiverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "errors": []dto.FieldError{
			{Field: "body", MessageKey: "validation.invalid_json"},
		}})
		return
	}

	if fieldErrors := helper.ValidateSubmitRequest(&req); len(fieldErrors) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "errors": fieldErrors})
		return
	}

	input := helper.ConvertSubmitRequest(&req)
	result, err := h.waiverService.Submit(c.Request.Context(), &input)
	if err != nil {
		h.handleSubmitError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SubmitWaiverResponse{
		OK:            true,
		WaiverID:      result.WaiverID,
		ParticipantID: result.ParticipantID,
		SHA256:        result.SHA256,
	})
}

// GetPDF обрабатывает GET /api/waivers/:id/pdf и стримит готовый документ
func (h *WaiverHandler) GetPDF(c *gin.Context) {
	waiverID := c.MustGet("waiverID").(string) // Получаем из контекста

	rendered, err := h.documentService.Render(c.Request.Context(), waiverID, nil)
	if err != nil {
		h.handleDocumentError(c, waiverID, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=\"waiver-%s.pdf\"", waiverID))
	c.Header("Content-Length", fmt.Sprintf("%d", len(rendered.PDF)))
	c.Header("X-Waiver-Locale", rendered.Locale)
	c.Header("X-Waiver-Version", rendered.ContentVersion)
	c.Data(http.StatusOK, "application/pdf", rendered.PDF)
}

// handleSubmitError мапит ошибки конвейера отправки на HTTP-ответы
func (h *WaiverHandler) handleSubmitError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrParticipantPersistence) {
		log.Printf("[WaiverHandler] Ошибка работы с участником: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "errors": []dto.FieldError{
			{Field: "participant", MessageKey: "server.db_operation_failed"},
		}})
		return
	}
	if errors.Is(err, apperrors.ErrValidation) {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "errors": []dto.FieldError{
			{Field: "signature", MessageKey: "validation.invalid"},
		}})
		return
	}
	if errors.Is(err, apperrors.ErrNotConfigured) {
		log.Printf("[WaiverHandler] Сервис не сконфигурирован: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "storage_not_configured"})
		return
	}

	log.Printf("[WaiverHandler] Ошибка отправки вейвера: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "server_error"})
}

// handleDocumentError мапит ошибки пути чтения на HTTP-ответы.
// Не-найдено и сбой выборки различаются намеренно: 404 терминален,
// 502 безопасно ретраить.
func (h *WaiverHandler) handleDocumentError(c *gin.Context, waiverID string, err error) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "waiver_not_found"})
	case errors.Is(err, apperrors.ErrFetchFailed):
		log.Printf("[WaiverHandler] Сбой выборки документа %s: %v", waiverID, err)
		c.JSON(http.StatusBadGateway, gin.H{"ok": false, "error": "waiver_fetch_failed"})
	default:
		log.Printf("[WaiverHandler] Сбой рендера документа %s: %v", waiverID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "render_failed"})
	}
}
