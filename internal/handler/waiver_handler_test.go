package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/waiver-api/internal/domain/entity"
	apperrors "github.com/yourusername/waiver-api/internal/pkg/errors"
	"github.com/yourusername/waiver-api/internal/service"
	"github.com/yourusername/waiver-api/pkg/pdf"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ============================================================================
// Моки репозиториев для сборки сервисов в тестах обработчиков
// ============================================================================

// MockDocRepoForHandler реализует repository.WaiverDocumentRepository
type MockDocRepoForHandler struct {
	mock.Mock
}

func (m *MockDocRepoForHandler) FetchByWaiverID(waiverID string) (*entity.WaiverDocumentRow, error) {
	args := m.Called(waiverID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.WaiverDocumentRow), args.Error(1)
}

// MockWaiverRepoForHandler реализует repository.WaiverRepository
type MockWaiverRepoForHandler struct {
	mock.Mock
}

func (m *MockWaiverRepoForHandler) Create(waiver *entity.Waiver) error {
	args := m.Called(waiver)
	return args.Error(0)
}

func (m *MockWaiverRepoForHandler) GetByID(id string) (*entity.Waiver, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Waiver), args.Error(1)
}

func (m *MockWaiverRepoForHandler) CreateMedicalHistory(history *entity.WaiverMedicalHistory) error {
	args := m.Called(history)
	return args.Error(0)
}

func (m *MockWaiverRepoForHandler) CreateEmergencyContact(contact *entity.EmergencyContact) error {
	args := m.Called(contact)
	return args.Error(0)
}

// MockAuditRepoForHandler реализует repository.AuditTrailRepository
type MockAuditRepoForHandler struct {
	mock.Mock
}

func (m *MockAuditRepoForHandler) Create(trail *entity.AuditTrail) error {
	args := m.Called(trail)
	return args.Error(0)
}

func (m *MockAuditRepoForHandler) GetLatestByWaiverID(waiverID string) (*entity.AuditTrail, error) {
	args := m.Called(waiverID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.AuditTrail), args.Error(1)
}

// MockStorageForHandler реализует repository.ObjectStorage
type MockStorageForHandler struct {
	mock.Mock
}

func (m *MockStorageForHandler) Upload(ctx context.Context, bucket, key string, data []byte, contentType string) error {
	args := m.Called(ctx, bucket, key, data, contentType)
	return args.Error(0)
}

func (m *MockStorageForHandler) Download(ctx context.Context, bucket, key string) ([]byte, error) {
	args := m.Called(ctx, bucket, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockStorageForHandler) SignedURL(ctx context.Context, bucket, key string, ttl time.Duration) (string, error) {
	args := m.Called(ctx, bucket, key, ttl)
	return args.String(0), args.Error(1)
}

// MockCacheForHandler реализует repository.CacheRepository
type MockCacheForHandler struct {
	mock.Mock
}

func (m *MockCacheForHandler) Set(key string, value interface{}, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func (m *MockCacheForHandler) Get(key string) (string, error) {
	args := m.Called(key)
	return args.String(0), args.Error(1)
}

func (m *MockCacheForHandler) Delete(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

func (m *MockCacheForHandler) SetJSON(key string, value interface{}, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func (m *MockCacheForHandler) GetJSON(key string, dest interface{}) error {
	args := m.Called(key, dest)
	return args.Error(0)
}

func (m *MockCacheForHandler) Exists(key string) (bool, error) {
	args := m.Called(key)
	return args.Bool(0), args.Error(1)
}

// MockGeneratorForHandler реализует service.PDFGenerator
type MockGeneratorForHandler struct {
	mock.Mock
}

func (m *MockGeneratorForHandler) Generate(ctx context.Context, html string, opts *pdf.Options) ([]byte, error) {
	args := m.Called(ctx, html, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// ============================================================================
// Хелперы
// ============================================================================

const handlerTestWaiverID = "55555555-5555-5555-5555-555555555555"

type handlerFixture struct {
	docRepo   *MockDocRepoForHandler
	cache     *MockCacheForHandler
	handler   *WaiverHandler
}

func newHandlerFixture() *handlerFixture {
	f := &handlerFixture{
		docRepo: new(MockDocRepoForHandler),
		cache:   new(MockCacheForHandler),
	}
	documentService := service.NewDocumentService(
		f.docRepo,
		new(MockWaiverRepoForHandler),
		new(MockAuditRepoForHandler),
		new(MockStorageForHandler),
		f.cache,
		new(MockGeneratorForHandler),
		service.DocumentConfig{TemplatePath: "../../templates/waiver.html"},
	)
	f.handler = NewWaiverHandler(nil, documentService)
	return f
}

func newPDFTestContext(waiverID string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/waivers/"+waiverID+"/pdf", nil)
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set("waiverID", waiverID)
	return c, w
}

func newSubmitTestContext(body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	var req *http.Request
	if raw, ok := body.([]byte); ok {
		req, _ = http.NewRequest(http.MethodPost, "/api/waivers/submit", bytes.NewReader(raw))
	} else {
		bodyBytes, _ := json.Marshal(body)
		req, _ = http.NewRequest(http.MethodPost, "/api/waivers/submit", bytes.NewReader(bodyBytes))
	}
	req.Header.Set("Content-Type", "application/json")
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	return c, w
}

func parseJSONResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err, "Response body should be valid JSON: %s", w.Body.String())
	return resp
}

func collectErrorFields(t *testing.T, resp map[string]interface{}) []string {
	t.Helper()
	rawErrors, ok := resp["errors"].([]interface{})
	require.True(t, ok, "expected errors array, got: %v", resp)
	fields := make([]string, 0, len(rawErrors))
	for _, raw := range rawErrors {
		entry := raw.(map[string]interface{})
		fields = append(fields, entry["field"].(string))
	}
	return fields
}

// ============================================================================
// Тесты Submit: валидация выполняется до обращения к сервису
// ============================================================================

func TestWaiverHandler_Submit_EmptyBodyEnumeratesAllRequiredFields(t *testing.T) {
	handler := NewWaiverHandler(nil, nil) // валидация не доходит до сервисов

	c, w := newSubmitTestContext(map[string]interface{}{})
	handler.Submit(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := parseJSONResponse(t, w)
	assert.Equal(t, false, resp["ok"])

	fields := collectErrorFields(t, resp)
	assert.ElementsMatch(t, []string{
		"participant.full_name",
		"participant.date_of_birth",
		"participant.email",
		"participant.phone",
		"legal_confirmation.risk_initials",
		"legal_confirmation.release_initials",
		"legal_confirmation.indemnification_initials",
		"legal_confirmation.media_initials",
		"legal_confirmation.accepted_terms",
		"signature",
	}, fields)
}

func TestWaiverHandler_Submit_PartialBodyReportsOnlyMissing(t *testing.T) {
	handler := NewWaiverHandler(nil, nil)

	c, w := newSubmitTestContext(map[string]interface{}{
		"participant": map[string]interface{}{
			"full_name":     "Jane Doe",
			"date_of_birth": "1990-05-12",
			"email":         "jane@example.com",
			"phone":         "555-0101",
		},
		"legal_confirmation": map[string]interface{}{
			"risk_initials":            "JD",
			"release_initials":         "JD",
			"indemnification_initials": "JD",
			"media_initials":           "JD",
			"accepted_terms":           "yes",
		},
	})
	handler.Submit(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	fields := collectErrorFields(t, parseJSONResponse(t, w))
	assert.Equal(t, []string{"signature"}, fields)
}

func TestWaiverHandler_Submit_MalformedJSON(t *testing.T) {
	handler := NewWaiverHandler(nil, nil)

	c, w := newSubmitTestContext([]byte(`{"participant": `))
	handler.Submit(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// ============================================================================
// Тесты GetPDF
// ============================================================================

func TestWaiverHandler_GetPDF_NotFound(t *testing.T) {
	f := newHandlerFixture()

	f.cache.On("GetJSON", mock.Anything, mock.Anything).Return(errors.New("cache miss"))
	f.docRepo.On("FetchByWaiverID", handlerTestWaiverID).Return(nil, apperrors.ErrNotFound)

	c, w := newPDFTestContext(handlerTestWaiverID)
	f.handler.GetPDF(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	resp := parseJSONResponse(t, w)
	assert.Equal(t, "waiver_not_found", resp["error"])
}

func TestWaiverHandler_GetPDF_FetchFailedIsBadGateway(t *testing.T) {
	f := newHandlerFixture()

	fetchErr := errors.Join(apperrors.ErrFetchFailed, errors.New("connection reset"))
	f.cache.On("GetJSON", mock.Anything, mock.Anything).Return(errors.New("cache miss"))
	f.docRepo.On("FetchByWaiverID", handlerTestWaiverID).Return(nil, fetchErr)

	c, w := newPDFTestContext(handlerTestWaiverID)
	f.handler.GetPDF(c)

	// Транспортный сбой отличим от не-найдено: его безопасно ретраить
	assert.Equal(t, http.StatusBadGateway, w.Code)
	resp := parseJSONResponse(t, w)
	assert.Equal(t, "waiver_fetch_failed", resp["error"])
}

func TestWaiverHandler_GetPDF_StreamsDocumentWithHeaders(t *testing.T) {
	f := newHandlerFixture()

	pdfBytes := []byte("%PDF-1.7 test")
	locale := "es"
	version := "waiver.v1"
	f.cache.On("GetJSON", mock.Anything, mock.Anything).Return(errors.New("cache miss"))
	f.cache.On("SetJSON", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	f.docRepo.On("FetchByWaiverID", handlerTestWaiverID).Return(&entity.WaiverDocumentRow{
		WaiverID:            handlerTestWaiverID,
		ParticipantID:       "p-1",
		AuditLocale:         &locale,
		AuditContentVersion: &version,
	}, nil)

	generator := new(MockGeneratorForHandler)
	generator.On("Generate", mock.Anything, mock.Anything, mock.Anything).Return(pdfBytes, nil)
	documentService := service.NewDocumentService(
		f.docRepo,
		new(MockWaiverRepoForHandler),
		new(MockAuditRepoForHandler),
		new(MockStorageForHandler),
		f.cache,
		generator,
		service.DocumentConfig{TemplatePath: "../../templates/waiver.html"},
	)
	handler := NewWaiverHandler(nil, documentService)

	c, w := newPDFTestContext(handlerTestWaiverID)
	handler.GetPDF(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Equal(t, `inline; filename="waiver-`+handlerTestWaiverID+`.pdf"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "es", w.Header().Get("X-Waiver-Locale"))
	assert.Equal(t, "waiver.v1", w.Header().Get("X-Waiver-Version"))
	assert.Equal(t, pdfBytes, w.Body.Bytes())
}
