package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/yourusername/waiver-api/internal/domain/entity"
	apperrors "github.com/yourusername/waiver-api/internal/pkg/errors"
	"github.com/yourusername/waiver-api/internal/service"
)

// ============================================================================
// Хелперы
// ============================================================================

type adminHandlerFixture struct {
	waiverRepo *MockWaiverRepoForHandler
	auditRepo  *MockAuditRepoForHandler
	storage    *MockStorageForHandler
	handler    *AdminHandler
}

func newAdminHandlerFixture() *adminHandlerFixture {
	f := &adminHandlerFixture{
		waiverRepo: new(MockWaiverRepoForHandler),
		auditRepo:  new(MockAuditRepoForHandler),
		storage:    new(MockStorageForHandler),
	}
	documentService := service.NewDocumentService(
		new(MockDocRepoForHandler),
		f.waiverRepo,
		f.auditRepo,
		f.storage,
		new(MockCacheForHandler),
		new(MockGeneratorForHandler),
		service.DocumentConfig{TemplatePath: "../../templates/waiver.html"},
	)
	f.handler = NewAdminHandler(documentService)
	return f
}

func newMetadataTestContext(waiverID string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/admin/waivers/"+waiverID, nil)
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set("waiverID", waiverID)
	return c, w
}

// ============================================================================
// Тесты GetWaiverMetadata
// ============================================================================

func TestAdminHandler_GetWaiverMetadata_Success(t *testing.T) {
	f := newAdminHandlerFixture()

	signaturePath := "signatures/" + handlerTestWaiverID + ".png"
	f.waiverRepo.On("GetByID", handlerTestWaiverID).Return(&entity.Waiver{
		ID:                handlerTestWaiverID,
		ParticipantID:     "66666666-6666-6666-6666-666666666666",
		SignatureImageURL: &signaturePath,
	}, nil)
	f.auditRepo.On("GetLatestByWaiverID", handlerTestWaiverID).Return(&entity.AuditTrail{
		WaiverID:         handlerTestWaiverID,
		DocumentPDFURL:   "signed-waivers/" + handlerTestWaiverID + ".pdf",
		DocumentSHA256:   "abc123",
		IdentitySnapshot: entity.NewIdentitySnapshot("Jane Doe", "jane@example.com", "1990-05-12"),
		Locale:           "en",
		ContentVersion:   "waiver.v1",
		CreatedAt:        time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC),
	}, nil)
	// Подписанные ссылки короткоживущие, чтобы их нельзя было раздавать
	f.storage.On("SignedURL", mock.Anything, "signatures", handlerTestWaiverID+".png", 5*time.Minute).
		Return("https://s3.example.com/sig", nil)
	f.storage.On("SignedURL", mock.Anything, "signed-waivers", handlerTestWaiverID+".pdf", 5*time.Minute).
		Return("https://s3.example.com/pdf", nil)

	c, w := newMetadataTestContext(handlerTestWaiverID)
	f.handler.GetWaiverMetadata(c)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := parseJSONResponse(t, w)
	assert.Equal(t, true, resp["ok"])
	assert.Equal(t, handlerTestWaiverID, resp["waiverId"])
	assert.Equal(t, "https://s3.example.com/sig", resp["signatureUrl"])
	assert.Equal(t, "https://s3.example.com/pdf", resp["documentPdfUrl"])
	assert.Equal(t, "abc123", resp["documentSha256"])
	assert.Equal(t, "en", resp["locale"])
	assert.Equal(t, "waiver.v1", resp["content_version"])

	snapshot, ok := resp["identity_snapshot"].(map[string]interface{})
	assert.True(t, ok)
	assert.Equal(t, "Jane Doe", snapshot["full_name"])
}

func TestAdminHandler_GetWaiverMetadata_WaiverNotFound(t *testing.T) {
	f := newAdminHandlerFixture()
	f.waiverRepo.On("GetByID", handlerTestWaiverID).Return(nil, apperrors.ErrNotFound)

	c, w := newMetadataTestContext(handlerTestWaiverID)
	f.handler.GetWaiverMetadata(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "not_found", parseJSONResponse(t, w)["error"])
}

func TestAdminHandler_GetWaiverMetadata_AuditMissing(t *testing.T) {
	f := newAdminHandlerFixture()
	f.waiverRepo.On("GetByID", handlerTestWaiverID).Return(&entity.Waiver{ID: handlerTestWaiverID}, nil)
	f.auditRepo.On("GetLatestByWaiverID", handlerTestWaiverID).Return(nil, apperrors.ErrNotFound)

	c, w := newMetadataTestContext(handlerTestWaiverID)
	f.handler.GetWaiverMetadata(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "audit_not_found", parseJSONResponse(t, w)["error"])
}

func TestAdminHandler_GetWaiverMetadata_SignedURLFailure(t *testing.T) {
	f := newAdminHandlerFixture()

	signaturePath := "signatures/" + handlerTestWaiverID + ".png"
	f.waiverRepo.On("GetByID", handlerTestWaiverID).Return(&entity.Waiver{
		ID:                handlerTestWaiverID,
		SignatureImageURL: &signaturePath,
	}, nil)
	f.auditRepo.On("GetLatestByWaiverID", handlerTestWaiverID).Return(&entity.AuditTrail{
		WaiverID:       handlerTestWaiverID,
		DocumentPDFURL: "signed-waivers/" + handlerTestWaiverID + ".pdf",
	}, nil)
	f.storage.On("SignedURL", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("", assert.AnError)

	c, w := newMetadataTestContext(handlerTestWaiverID)
	f.handler.GetWaiverMetadata(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "signed_url_failed", parseJSONResponse(t, w)["error"])
}
