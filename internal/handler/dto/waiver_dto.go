package dto

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/yourusername/waiver-api/internal/domain/entity"
)

// FlexiBool принимает булево значение в любой форме, которую шлют клиенты:
// true/false, "yes"/"no", "true"/"false", 1/0, null. Отсутствие и null — false.
type FlexiBool bool

// UnmarshalJSON реализует json.Unmarshaler
func (b *FlexiBool) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*b = false
		return nil
	}

	switch data[0] {
	case 't':
		*b = true
		return nil
	case 'f':
		*b = false
		return nil
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "yes", "true", "1", "on", "y":
			*b = true
		default:
			*b = false
		}
		return nil
	default:
		var n float64
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		*b = n != 0
		return nil
	}
}

// Bool возвращает обычное булево значение
func (b FlexiBool) Bool() bool {
	return bool(b)
}

// ParticipantRequest представляет блок participant в теле отправки
type ParticipantRequest struct {
	FullName     string `json:"full_name"`
	DateOfBirth  string `json:"date_of_birth"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	AddressLine  string `json:"address_line"`
	AddressLine2 string `json:"address_line_2"`
	City         string `json:"city"`
	State        string `json:"state"`
	Zip          string `json:"zip"`
}

// EmergencyContactRequest представляет блок emergency_contact
type EmergencyContactRequest struct {
	Name         string `json:"name"`
	Relationship string `json:"relationship"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
}

// InjuriesOtherRequest представляет вложенный объект injuries.other
type InjuriesOtherRequest struct {
	Has     FlexiBool `json:"has"`
	Details string    `json:"details"`
}

// InjuriesRequest представляет вложенный объект injuries
type InjuriesRequest struct {
	Knees         FlexiBool            `json:"knees"`
	LowerBack     FlexiBool            `json:"lower_back"`
	NeckShoulders FlexiBool            `json:"neck_shoulders"`
	HipPelvis     FlexiBool            `json:"hip_pelvis"`
	Other         InjuriesOtherRequest `json:"other"`
}

// MedicalInformationRequest представляет блок medical_information.
// Все поля опциональны: отсутствующий объект целиком допустим.
type MedicalInformationRequest struct {
	HeartDisease      FlexiBool `json:"heart_disease"`
	ShortnessOfBreath FlexiBool `json:"shortness_of_breath"`
	HighBloodPressure FlexiBool `json:"high_blood_pressure"`
	Smoking           FlexiBool `json:"smoking"`
	Diabetes          FlexiBool `json:"diabetes"`
	FamilyHistory     FlexiBool `json:"family_history"`
	Workouts          FlexiBool `json:"workouts"`
	Medication        FlexiBool `json:"medication"`
	Alcohol           FlexiBool `json:"alcohol"`

	LastPhysical        string `json:"last_physical"`
	ExerciseRestriction string `json:"exercise_restriction"`

	Injuries InjuriesRequest `json:"injuries"`

	HadRecentInjury  FlexiBool `json:"had_recent_injury"`
	InjuryDetails    string    `json:"injury_details"`
	PhysicianCleared FlexiBool `json:"physician_cleared"`
	ClearanceNotes   string    `json:"clearance_notes"`
}

// LegalConfirmationRequest представляет блок legal_confirmation
type LegalConfirmationRequest struct {
	RiskInitials            string    `json:"risk_initials"`
	ReleaseInitials         string    `json:"release_initials"`
	IndemnificationInitials string    `json:"indemnification_initials"`
	MediaInitials           string    `json:"media_initials"`
	AcceptedTerms           FlexiBool `json:"accepted_terms"`
}

// SignatureRequest представляет блок signature
type SignatureRequest struct {
	PNGDataURL string          `json:"pngDataUrl"`
	VectorJSON json.RawMessage `json:"vectorJson"`
}

// ReviewRequest представляет блок review
type ReviewRequest struct {
	ConfirmAccuracy FlexiBool `json:"confirm_accuracy"`
}

// SubmitWaiverRequest представляет полное тело POST /api/waivers/submit
type SubmitWaiverRequest struct {
	Participant        *ParticipantRequest        `json:"participant"`
	EmergencyContact   *EmergencyContactRequest   `json:"emergency_contact"`
	MedicalInformation *MedicalInformationRequest `json:"medical_information"`
	LegalConfirmation  *LegalConfirmationRequest  `json:"legal_confirmation"`
	Signature          *SignatureRequest          `json:"signature"`
	Review             *ReviewRequest             `json:"review"`
	Locale             string                     `json:"locale"`
	ContentVersion     string                     `json:"content_version"`
}

// FieldError представляет одну ошибку валидации, адресуемую к полю формы
type FieldError struct {
	Field      string `json:"field"`
	MessageKey string `json:"messageKey,omitempty"`
}

// SubmitWaiverResponse представляет успешный ответ отправки
type SubmitWaiverResponse struct {
	OK            bool   `json:"ok"`
	WaiverID      string `json:"waiverId"`
	ParticipantID string `json:"participantId"`
	SHA256        string `json:"sha256"`
}

// WaiverMetadataResponse представляет ответ административного эндпоинта метаданных
type WaiverMetadataResponse struct {
	OK               bool           `json:"ok"`
	WaiverID         string         `json:"waiverId"`
	ParticipantID    string         `json:"participantId"`
	SignatureURL     string         `json:"signatureUrl"`
	DocumentPDFURL   string         `json:"documentPdfUrl"`
	DocumentSHA256   string         `json:"documentSha256"`
	Locale           string         `json:"locale"`
	ContentVersion   string         `json:"content_version"`
	CreatedAt        time.Time      `json:"created_at"`
	IdentitySnapshot entity.JSONMap `json:"identity_snapshot"`
}
