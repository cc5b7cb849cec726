package service

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/waiver-api/internal/domain/entity"
	apperrors "github.com/yourusername/waiver-api/internal/pkg/errors"
)

// ============================================================================
// Моки для WaiverService
// ============================================================================

// MockWaiverRepository реализует repository.WaiverRepository
type MockWaiverRepository struct {
	mock.Mock
}

func (m *MockWaiverRepository) Create(waiver *entity.Waiver) error {
	args := m.Called(waiver)
	return args.Error(0)
}

func (m *MockWaiverRepository) GetByID(id string) (*entity.Waiver, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Waiver), args.Error(1)
}

func (m *MockWaiverRepository) CreateMedicalHistory(history *entity.WaiverMedicalHistory) error {
	args := m.Called(history)
	return args.Error(0)
}

func (m *MockWaiverRepository) CreateEmergencyContact(contact *entity.EmergencyContact) error {
	args := m.Called(contact)
	return args.Error(0)
}

// MockAuditTrailRepository реализует repository.AuditTrailRepository
type MockAuditTrailRepository struct {
	mock.Mock
}

func (m *MockAuditTrailRepository) Create(trail *entity.AuditTrail) error {
	args := m.Called(trail)
	return args.Error(0)
}

func (m *MockAuditTrailRepository) GetLatestByWaiverID(waiverID string) (*entity.AuditTrail, error) {
	args := m.Called(waiverID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.AuditTrail), args.Error(1)
}

// MockObjectStorage реализует repository.ObjectStorage
type MockObjectStorage struct {
	mock.Mock
}

func (m *MockObjectStorage) Upload(ctx context.Context, bucket, key string, data []byte, contentType string) error {
	args := m.Called(ctx, bucket, key, data, contentType)
	return args.Error(0)
}

func (m *MockObjectStorage) Download(ctx context.Context, bucket, key string) ([]byte, error) {
	args := m.Called(ctx, bucket, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockObjectStorage) SignedURL(ctx context.Context, bucket, key string, ttl time.Duration) (string, error) {
	args := m.Called(ctx, bucket, key, ttl)
	return args.String(0), args.Error(1)
}

// MockDocumentRenderer реализует DocumentRenderer
type MockDocumentRenderer struct {
	mock.Mock
}

func (m *MockDocumentRenderer) Render(ctx context.Context, waiverID string, opts *RenderOptions) (*RenderedDocument, error) {
	args := m.Called(ctx, waiverID, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*RenderedDocument), args.Error(1)
}

// ============================================================================
// Хелперы
// ============================================================================

const testParticipantID = "11111111-1111-1111-1111-111111111111"

func testSignatureDataURL() string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("png-bytes"))
}

func testSubmitInput() *SubmitWaiverInput {
	return &SubmitWaiverInput{
		Participant: *testParticipantInput(),
		EmergencyContact: EmergencyContactInput{
			Name:  "John Doe",
			Phone: "555-0202",
		},
		Medical: MedicalInput{
			HeartDisease:    true,
			HadRecentInjury: true,
			InjuryDetails:   "Sprained ankle in March",
		},
		Legal: LegalConfirmationInput{
			RiskInitials:            "JD",
			ReleaseInitials:         "JD",
			IndemnificationInitials: "JD",
			MediaInitials:           "JD",
			AcceptedTerms:           true,
		},
		Signature: SignatureInput{
			PNGDataURL: testSignatureDataURL(),
			VectorJSON: []byte(`[{"x":1,"y":2}]`),
		},
		ReviewConfirmAccuracy: true,
		Locale:                "en",
		ContentVersion:        "waiver.v1",
	}
}

type waiverServiceFixture struct {
	participantRepo *MockParticipantRepository
	waiverRepo      *MockWaiverRepository
	auditRepo       *MockAuditTrailRepository
	storage         *MockObjectStorage
	renderer        *MockDocumentRenderer
	svc             *WaiverService
}

func newWaiverServiceFixture() *waiverServiceFixture {
	f := &waiverServiceFixture{
		participantRepo: new(MockParticipantRepository),
		waiverRepo:      new(MockWaiverRepository),
		auditRepo:       new(MockAuditTrailRepository),
		storage:         new(MockObjectStorage),
		renderer:        new(MockDocumentRenderer),
	}
	f.svc = NewWaiverService(
		NewParticipantService(f.participantRepo),
		f.waiverRepo,
		f.auditRepo,
		f.storage,
		f.renderer,
		WaiverConfig{
			SignaturesBucket: "signatures",
			DocumentsBucket:  "signed-waivers",
		},
	)
	return f
}

func (f *waiverServiceFixture) expectMatchedParticipant() {
	existing := &entity.Participant{ID: testParticipantID, CellPhone: strPtr("555-0101")}
	f.participantRepo.On("FindByEmailAndDOB", "jane@example.com", "1990-05-12").Return(existing, nil)
}

// ============================================================================
// Тесты Submit
// ============================================================================

func TestWaiverService_Submit_FullPipeline(t *testing.T) {
	f := newWaiverServiceFixture()
	f.expectMatchedParticipant()

	pdfBytes := []byte("%PDF-1.7 rendered document")
	wantHash := sha256.Sum256(pdfBytes)

	f.storage.On("Upload", mock.Anything, "signatures", mock.MatchedBy(func(key string) bool {
		return len(key) > 4 && key[len(key)-4:] == ".png"
	}), []byte("png-bytes"), "image/png").Return(nil)

	var createdWaiver *entity.Waiver
	f.waiverRepo.On("Create", mock.AnythingOfType("*entity.Waiver")).Run(func(args mock.Arguments) {
		createdWaiver = args.Get(0).(*entity.Waiver)
	}).Return(nil)
	f.waiverRepo.On("CreateEmergencyContact", mock.AnythingOfType("*entity.EmergencyContact")).Return(nil)
	f.waiverRepo.On("CreateMedicalHistory", mock.AnythingOfType("*entity.WaiverMedicalHistory")).Return(nil)

	// Документ рендерится из сохраненного состояния с обходом кеша
	f.renderer.On("Render", mock.Anything, mock.AnythingOfType("string"), mock.MatchedBy(func(opts *RenderOptions) bool {
		return opts.SkipCache && opts.Locale == "en" && opts.ContentVersion == "waiver.v1"
	})).Return(&RenderedDocument{PDF: pdfBytes, Locale: "en", ContentVersion: "waiver.v1"}, nil)

	f.storage.On("Upload", mock.Anything, "signed-waivers", mock.MatchedBy(func(key string) bool {
		return len(key) > 4 && key[len(key)-4:] == ".pdf"
	}), pdfBytes, "application/pdf").Return(nil)

	var createdTrail *entity.AuditTrail
	f.auditRepo.On("Create", mock.AnythingOfType("*entity.AuditTrail")).Run(func(args mock.Arguments) {
		createdTrail = args.Get(0).(*entity.AuditTrail)
	}).Return(nil)

	result, err := f.svc.Submit(context.Background(), testSubmitInput())

	require.NoError(t, err)
	assert.Equal(t, testParticipantID, result.ParticipantID)
	assert.Equal(t, hex.EncodeToString(wantHash[:]), result.SHA256)

	require.NotNil(t, createdWaiver)
	assert.Equal(t, result.WaiverID, createdWaiver.ID)
	assert.True(t, createdWaiver.ConsentAcknowledged)
	require.NotNil(t, createdWaiver.SignatureImageURL)
	assert.Equal(t, "signatures/"+result.WaiverID+".png", *createdWaiver.SignatureImageURL)

	require.NotNil(t, createdTrail)
	assert.Equal(t, result.WaiverID, createdTrail.WaiverID)
	assert.Equal(t, result.SHA256, createdTrail.DocumentSHA256)
	assert.Equal(t, "signed-waivers/"+result.WaiverID+".pdf", createdTrail.DocumentPDFURL)
	// Снапшот личности содержит только имя, email и дату рождения
	assert.Equal(t, "Jane Doe", createdTrail.IdentitySnapshot["full_name"])
	assert.Equal(t, "jane@example.com", createdTrail.IdentitySnapshot["email"])
	assert.Equal(t, "1990-05-12", createdTrail.IdentitySnapshot["date_of_birth"])
	assert.NotContains(t, createdTrail.IdentitySnapshot, "address_line")
	assert.NotContains(t, createdTrail.IdentitySnapshot, "cell_phone")
}

func TestWaiverService_Submit_BestEffortWritesDoNotAbort(t *testing.T) {
	f := newWaiverServiceFixture()
	f.expectMatchedParticipant()

	pdfBytes := []byte("%PDF")
	f.storage.On("Upload", mock.Anything, "signatures", mock.Anything, mock.Anything, "image/png").Return(nil)
	f.waiverRepo.On("Create", mock.AnythingOfType("*entity.Waiver")).Return(nil)

	// Вторичные записи падают, но отправка обязана завершиться успехом
	f.waiverRepo.On("CreateEmergencyContact", mock.Anything).Return(errors.New("disk full"))
	f.waiverRepo.On("CreateMedicalHistory", mock.Anything).Return(errors.New("disk full"))

	f.renderer.On("Render", mock.Anything, mock.Anything, mock.Anything).
		Return(&RenderedDocument{PDF: pdfBytes, Locale: "en", ContentVersion: "waiver.v1"}, nil)
	f.storage.On("Upload", mock.Anything, "signed-waivers", mock.Anything, pdfBytes, "application/pdf").Return(nil)
	f.auditRepo.On("Create", mock.AnythingOfType("*entity.AuditTrail")).Return(nil)

	result, err := f.svc.Submit(context.Background(), testSubmitInput())

	require.NoError(t, err)
	assert.NotEmpty(t, result.WaiverID)
	assert.NotEmpty(t, result.SHA256)
}

func TestWaiverService_Submit_EmptyEmergencyContactSkipped(t *testing.T) {
	f := newWaiverServiceFixture()
	f.expectMatchedParticipant()

	input := testSubmitInput()
	input.EmergencyContact = EmergencyContactInput{Name: "   ", Phone: ""}

	f.storage.On("Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	f.waiverRepo.On("Create", mock.AnythingOfType("*entity.Waiver")).Return(nil)
	f.waiverRepo.On("CreateMedicalHistory", mock.Anything).Return(nil)
	f.renderer.On("Render", mock.Anything, mock.Anything, mock.Anything).
		Return(&RenderedDocument{PDF: []byte("%PDF"), Locale: "en", ContentVersion: "waiver.v1"}, nil)
	f.auditRepo.On("Create", mock.Anything).Return(nil)

	_, err := f.svc.Submit(context.Background(), input)

	require.NoError(t, err)
	f.waiverRepo.AssertNotCalled(t, "CreateEmergencyContact", mock.Anything)
}

func TestWaiverService_Submit_MalformedSignatureIsValidationError(t *testing.T) {
	f := newWaiverServiceFixture()
	f.expectMatchedParticipant()

	input := testSubmitInput()
	input.Signature.PNGDataURL = "not-a-data-url"

	_, err := f.svc.Submit(context.Background(), input)

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	f.waiverRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestWaiverService_Submit_RenderFailureIsFatal(t *testing.T) {
	f := newWaiverServiceFixture()
	f.expectMatchedParticipant()

	f.storage.On("Upload", mock.Anything, "signatures", mock.Anything, mock.Anything, "image/png").Return(nil)
	f.waiverRepo.On("Create", mock.AnythingOfType("*entity.Waiver")).Return(nil)
	f.waiverRepo.On("CreateEmergencyContact", mock.Anything).Return(nil)
	f.waiverRepo.On("CreateMedicalHistory", mock.Anything).Return(nil)

	f.renderer.On("Render", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, apperrors.ErrRenderFailed)

	_, err := f.svc.Submit(context.Background(), testSubmitInput())

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrRenderFailed)
	f.auditRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestWaiverService_Submit_MedicalHistoryCanonicalForm(t *testing.T) {
	f := newWaiverServiceFixture()
	f.expectMatchedParticipant()

	var history *entity.WaiverMedicalHistory
	f.storage.On("Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	f.waiverRepo.On("Create", mock.AnythingOfType("*entity.Waiver")).Return(nil)
	f.waiverRepo.On("CreateEmergencyContact", mock.Anything).Return(nil)
	f.waiverRepo.On("CreateMedicalHistory", mock.AnythingOfType("*entity.WaiverMedicalHistory")).
		Run(func(args mock.Arguments) {
			history = args.Get(0).(*entity.WaiverMedicalHistory)
		}).Return(nil)
	f.renderer.On("Render", mock.Anything, mock.Anything, mock.Anything).
		Return(&RenderedDocument{PDF: []byte("%PDF"), Locale: "en", ContentVersion: "waiver.v1"}, nil)
	f.auditRepo.On("Create", mock.Anything).Return(nil)

	_, err := f.svc.Submit(context.Background(), testSubmitInput())

	require.NoError(t, err)
	require.NotNil(t, history)
	assert.True(t, history.HeartDisease)
	assert.True(t, history.HadRecentInjury)
	require.NotNil(t, history.InjuryDetails)
	assert.Equal(t, "Sprained ankle in March", *history.InjuryDetails)
	// Пустые строки приводятся к NULL
	assert.Nil(t, history.LastPhysical)
	assert.Nil(t, history.ClearanceNotes)
}
