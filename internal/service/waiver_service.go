package service

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/waiver-api/internal/domain/entity"
	"github.com/yourusername/waiver-api/internal/domain/repository"
	apperrors "github.com/yourusername/waiver-api/internal/pkg/errors"
)

// EmergencyContactInput — контакт на случай ЧП из формы
type EmergencyContactInput struct {
	Name         string
	Relationship string
	Phone        string
	Email        string
}

// MedicalInput — медицинская анкета, уже приведенная к канонической форме:
// отсутствующий флаг — false, пустая строка — NULL при записи
type MedicalInput struct {
	HeartDisease      bool
	ShortnessOfBreath bool
	HighBloodPressure bool
	Smoking           bool
	Diabetes          bool
	FamilyHistory     bool
	Workouts          bool
	Medication        bool
	Alcohol           bool

	LastPhysical        string
	ExerciseRestriction string

	InjuriesKnees         bool
	InjuriesLowerBack     bool
	InjuriesNeckShoulders bool
	InjuriesHipPelvis     bool
	InjuriesOtherHas      bool
	InjuriesOtherDetails  string

	HadRecentInjury  bool
	InjuryDetails    string
	PhysicianCleared bool
	ClearanceNotes   string
}

// LegalConfirmationInput — инициалы и чекбокс принятия условий
type LegalConfirmationInput struct {
	RiskInitials            string
	ReleaseInitials         string
	IndemnificationInitials string
	MediaInitials           string
	AcceptedTerms           bool
}

// SignatureInput — подпись: PNG как data-URL и сырые векторные данные штрихов
type SignatureInput struct {
	PNGDataURL string
	VectorJSON json.RawMessage
}

// SubmitWaiverInput — полная валидированная отправка формы
type SubmitWaiverInput struct {
	Participant           ParticipantInput
	EmergencyContact      EmergencyContactInput
	Medical               MedicalInput
	Legal                 LegalConfirmationInput
	Signature             SignatureInput
	ReviewConfirmAccuracy bool
	Locale                string
	ContentVersion        string
}

// SubmitResult — ответ конвейера отправки
type SubmitResult struct {
	WaiverID      string
	ParticipantID string
	SHA256        string
}

// WaiverConfig — бакеты и дефолты конвейера
type WaiverConfig struct {
	SignaturesBucket string
	DocumentsBucket  string
	DefaultLocale    string
	DefaultVersion   string
}

// DocumentRenderer — часть сервиса документов, нужная конвейеру отправки
type DocumentRenderer interface {
	Render(ctx context.Context, waiverID string, opts *RenderOptions) (*RenderedDocument, error)
}

// WaiverService — конвейер отправки вейвера: сопоставление участника,
// запись строк, загрузка подписи, генерация документа и запись аудита.
//
// Цепочка участник/вейвер/подпись/PDF/аудит обязана завершиться для ответа 200.
// Вторичные строки (контакт ЧП, медицинская анкета) пишутся best-effort:
// их сбой логируется, но не отменяет захват юридического согласия.
type WaiverService struct {
	participants *ParticipantService
	waiverRepo   repository.WaiverRepository
	auditRepo    repository.AuditTrailRepository
	storage      repository.ObjectStorage
	documents    DocumentRenderer
	cfg          WaiverConfig
}

// NewWaiverService создает новый сервис вейверов
func NewWaiverService(
	participants *ParticipantService,
	waiverRepo repository.WaiverRepository,
	auditRepo repository.AuditTrailRepository,
	storage repository.ObjectStorage,
	documents DocumentRenderer,
	cfg WaiverConfig,
) *WaiverService {
	if cfg.DefaultLocale == "" {
		cfg.DefaultLocale = "en"
	}
	if cfg.DefaultVersion == "" {
		cfg.DefaultVersion = "waiver.v1"
	}
	return &WaiverService{
		participants: participants,
		waiverRepo:   waiverRepo,
		auditRepo:    auditRepo,
		storage:      storage,
		documents:    documents,
		cfg:          cfg,
	}
}

// Submit проводит отправку через весь конвейер и возвращает
// id вейвера, id участника и SHA-256 сгенерированного PDF
func (s *WaiverService) Submit(ctx context.Context, input *SubmitWaiverInput) (*SubmitResult, error) {
	participantID, err := s.participants.MatchOrCreate(&input.Participant)
	if err != nil {
		return nil, err
	}

	// id генерируется заранее: он же ключ объектов в хранилище
	waiverID := uuid.NewString()

	signaturePNG, err := decodeDataURL(input.Signature.PNGDataURL)
	if err != nil {
		return nil, fmt.Errorf("%w: signature image: %v", apperrors.ErrValidation, err)
	}

	signatureKey := waiverID + ".png"
	if err := s.storage.Upload(ctx, s.cfg.SignaturesBucket, signatureKey, signaturePNG, "image/png"); err != nil {
		return nil, fmt.Errorf("failed to store signature: %w", err)
	}
	signaturePath := s.cfg.SignaturesBucket + "/" + signatureKey

	locale := input.Locale
	if locale == "" {
		locale = s.cfg.DefaultLocale
	}
	contentVersion := input.ContentVersion
	if contentVersion == "" {
		contentVersion = s.cfg.DefaultVersion
	}

	waiver := &entity.Waiver{
		ID:                      waiverID,
		ParticipantID:           participantID,
		ConsentAcknowledged:     input.Legal.AcceptedTerms,
		InitialsRiskAssumption:  nilIfEmpty(input.Legal.RiskInitials),
		InitialsRelease:         nilIfEmpty(input.Legal.ReleaseInitials),
		InitialsIndemnification: nilIfEmpty(input.Legal.IndemnificationInitials),
		InitialsMediaRelease:    nilIfEmpty(input.Legal.MediaInitials),
		SignatureImageURL:       &signaturePath,
		SignatureVectorJSON:     entity.RawJSON(input.Signature.VectorJSON),
		SignedAtUTC:             time.Now().UTC(),
		ReviewConfirmAccuracy:   input.ReviewConfirmAccuracy,
	}
	if err := s.waiverRepo.Create(waiver); err != nil {
		return nil, err
	}

	// Вторичные записи: сбой не отменяет отправку
	s.writeEmergencyContact(waiverID, participantID, &input.EmergencyContact)
	s.writeMedicalHistory(waiverID, &input.Medical)

	// Документ рендерится из сохраненного состояния, не из исходного запроса
	rendered, err := s.documents.Render(ctx, waiverID, &RenderOptions{
		Locale:         locale,
		ContentVersion: contentVersion,
		SkipCache:      true,
	})
	if err != nil {
		return nil, err
	}

	digest := sha256.Sum256(rendered.PDF)
	hash := hex.EncodeToString(digest[:])

	pdfKey := waiverID + ".pdf"
	if err := s.storage.Upload(ctx, s.cfg.DocumentsBucket, pdfKey, rendered.PDF, "application/pdf"); err != nil {
		return nil, fmt.Errorf("failed to store document: %w", err)
	}

	trail := &entity.AuditTrail{
		WaiverID:       waiverID,
		ParticipantID:  participantID,
		DocumentPDFURL: s.cfg.DocumentsBucket + "/" + pdfKey,
		DocumentSHA256: hash,
		IdentitySnapshot: entity.NewIdentitySnapshot(
			input.Participant.FullName,
			input.Participant.Email,
			input.Participant.DateOfBirth,
		),
		Locale:         locale,
		ContentVersion: contentVersion,
	}
	if err := s.auditRepo.Create(trail); err != nil {
		return nil, err
	}

	return &SubmitResult{
		WaiverID:      waiverID,
		ParticipantID: participantID,
		SHA256:        hash,
	}, nil
}

// writeEmergencyContact пишет контакт ЧП, только если есть хоть одно непустое поле
func (s *WaiverService) writeEmergencyContact(waiverID, participantID string, input *EmergencyContactInput) {
	contact := &entity.EmergencyContact{
		WaiverID:      waiverID,
		ParticipantID: participantID,
		Name:          nilIfEmpty(input.Name),
		Relationship:  nilIfEmpty(input.Relationship),
		Phone:         nilIfEmpty(input.Phone),
		Email:         nilIfEmpty(input.Email),
	}
	if contact.IsEmpty() {
		return
	}
	if err := s.waiverRepo.CreateEmergencyContact(contact); err != nil {
		log.Printf("[WaiverService] Не удалось записать контакт ЧП для вейвера %s: %v", waiverID, err)
	}
}

// writeMedicalHistory пишет медицинскую анкету best-effort
func (s *WaiverService) writeMedicalHistory(waiverID string, input *MedicalInput) {
	history := &entity.WaiverMedicalHistory{
		WaiverID:              waiverID,
		HeartDisease:          input.HeartDisease,
		ShortnessOfBreath:     input.ShortnessOfBreath,
		HighBloodPressure:     input.HighBloodPressure,
		Smoking:               input.Smoking,
		Diabetes:              input.Diabetes,
		FamilyHistory:         input.FamilyHistory,
		Workouts:              input.Workouts,
		Medication:            input.Medication,
		Alcohol:               input.Alcohol,
		LastPhysical:          nilIfEmpty(input.LastPhysical),
		ExerciseRestriction:   nilIfEmpty(input.ExerciseRestriction),
		InjuriesKnees:         input.InjuriesKnees,
		InjuriesLowerBack:     input.InjuriesLowerBack,
		InjuriesNeckShoulders: input.InjuriesNeckShoulders,
		InjuriesHipPelvis:     input.InjuriesHipPelvis,
		InjuriesOtherHas:      input.InjuriesOtherHas,
		InjuriesOtherDetails:  nilIfEmpty(input.InjuriesOtherDetails),
		HadRecentInjury:       input.HadRecentInjury,
		InjuryDetails:         nilIfEmpty(input.InjuryDetails),
		PhysicianCleared:      input.PhysicianCleared,
		ClearanceNotes:        nilIfEmpty(input.ClearanceNotes),
	}
	if err := s.waiverRepo.CreateMedicalHistory(history); err != nil {
		log.Printf("[WaiverService] Не удалось записать медицинскую анкету для вейвера %s: %v", waiverID, err)
	}
}

// decodeDataURL извлекает байты из data-URL вида "data:image/png;base64,...."
func decodeDataURL(dataURL string) ([]byte, error) {
	idx := strings.IndexByte(dataURL, ',')
	if idx < 0 {
		return nil, fmt.Errorf("malformed data url")
	}
	data, err := base64.StdEncoding.DecodeString(dataURL[idx+1:])
	if err != nil {
		return nil, fmt.Errorf("malformed base64 payload: %w", err)
	}
	return data, nil
}
