package entity

import "time"

// WaiverDocumentRow — денормализованная строка из view_waiver_documents:
// вейвер + участник + медицинская анкета + контакт ЧП + последняя запись аудита.
// Все опциональные колонки — указатели: отсутствующее значение это NULL, не ошибка.
type WaiverDocumentRow struct {
	WaiverID      string `gorm:"column:waiver_id"`
	ParticipantID string `gorm:"column:participant_id"`

	ConsentAcknowledged     *bool   `gorm:"column:consent_acknowledged"`
	InitialsRiskAssumption  *string `gorm:"column:initials_risk_assumption"`
	InitialsRelease         *string `gorm:"column:initials_release"`
	InitialsIndemnification *string `gorm:"column:initials_indemnification"`
	InitialsMediaRelease    *string `gorm:"column:initials_media_release"`
	SignatureImageURL       *string `gorm:"column:signature_image_url"`
	SignatureVectorJSON     RawJSON `gorm:"column:signature_vector_json"`
	SignedAtUTC             *time.Time `gorm:"column:signed_at_utc"`
	ReviewConfirmAccuracy   *bool   `gorm:"column:review_confirm_accuracy"`

	ParticipantFullName    *string `gorm:"column:participant_full_name"`
	ParticipantDateOfBirth *string `gorm:"column:participant_date_of_birth"`
	ParticipantEmail       *string `gorm:"column:participant_email"`
	ParticipantAddressLine *string `gorm:"column:participant_address_line"`
	ParticipantCity        *string `gorm:"column:participant_city"`
	ParticipantState       *string `gorm:"column:participant_state"`
	ParticipantZip         *string `gorm:"column:participant_zip"`
	ParticipantHomePhone   *string `gorm:"column:participant_home_phone"`
	ParticipantCellPhone   *string `gorm:"column:participant_cell_phone"`

	// Медицинская анкета; MedicalHistoryID == nil означает, что строка не была записана
	MedicalHistoryID      *uint   `gorm:"column:medical_history_id"`
	HeartDisease          *bool   `gorm:"column:heart_disease"`
	ShortnessOfBreath     *bool   `gorm:"column:shortness_of_breath"`
	HighBloodPressure     *bool   `gorm:"column:high_blood_pressure"`
	Smoking               *bool   `gorm:"column:smoking"`
	Diabetes              *bool   `gorm:"column:diabetes"`
	FamilyHistory         *bool   `gorm:"column:family_history"`
	Workouts              *bool   `gorm:"column:workouts"`
	Medication            *bool   `gorm:"column:medication"`
	Alcohol               *bool   `gorm:"column:alcohol"`
	LastPhysical          *string `gorm:"column:last_physical"`
	ExerciseRestriction   *string `gorm:"column:exercise_restriction"`
	InjuriesKnees         *bool   `gorm:"column:injuries_knees"`
	InjuriesLowerBack     *bool   `gorm:"column:injuries_lower_back"`
	InjuriesNeckShoulders *bool   `gorm:"column:injuries_neck_shoulders"`
	InjuriesHipPelvis     *bool   `gorm:"column:injuries_hip_pelvis"`
	InjuriesOtherHas      *bool   `gorm:"column:injuries_other_has"`
	InjuriesOtherDetails  *string `gorm:"column:injuries_other_details"`
	HadRecentInjury       *bool   `gorm:"column:had_recent_injury"`
	InjuryDetails         *string `gorm:"column:injury_details"`
	PhysicianCleared      *bool   `gorm:"column:physician_cleared"`
	ClearanceNotes        *string `gorm:"column:clearance_notes"`

	EmergencyContactID           *uint   `gorm:"column:emergency_contact_id"`
	EmergencyContactName         *string `gorm:"column:emergency_contact_name"`
	EmergencyContactRelationship *string `gorm:"column:emergency_contact_relationship"`
	EmergencyContactPhone        *string `gorm:"column:emergency_contact_phone"`
	EmergencyContactEmail        *string `gorm:"column:emergency_contact_email"`

	// Последняя запись аудита (по created_at); AuditID == nil — документ еще не генерировался
	AuditID             *uint      `gorm:"column:audit_id"`
	DocumentPDFURL      *string    `gorm:"column:document_pdf_url"`
	DocumentSHA256      *string    `gorm:"column:document_sha256"`
	AuditLocale         *string    `gorm:"column:locale"`
	AuditContentVersion *string    `gorm:"column:content_version"`
	AuditCreatedAt      *time.Time `gorm:"column:audit_created_at"`
}
