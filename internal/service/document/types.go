package document

// Payload — готовые к подстановке в шаблон данные документа.
// Все скаляры уже отформатированы в строки; json-теги совпадают с
// плейсхолдерами Mustache-шаблона.
type Payload struct {
	Document           Meta             `json:"document"`
	Organization       Organization     `json:"organization"`
	Waiver             WaiverInfo       `json:"waiver"`
	Participant        ParticipantInfo  `json:"participant"`
	EmergencyContact   ContactInfo      `json:"emergencyContact"`
	MedicalInformation MedicalInfo      `json:"medicalInformation"`
	Legal              LegalCopy        `json:"legal"`
	LegalConfirmation  InitialsInfo     `json:"legalConfirmation"`
	Signature          SignatureInfo    `json:"signature"`
}

// Meta описывает сам документ
type Meta struct {
	Title       string `json:"title"`
	Version     string `json:"version"`
	Locale      string `json:"locale"`
	GeneratedAt string `json:"generatedAt"`
}

// Organization — реквизиты студии в шапке документа
type Organization struct {
	Name    string `json:"name"`
	Tagline string `json:"tagline,omitempty"`
	Address string `json:"address,omitempty"`
}

// WaiverInfo — идентификатор и время подписания
type WaiverInfo struct {
	ID       string `json:"id"`
	SignedAt string `json:"signedAt"`
}

// ParticipantInfo — отформатированные данные участника
type ParticipantInfo struct {
	ID           string `json:"id"`
	FullName     string `json:"fullName"`
	DateOfBirth  string `json:"dateOfBirth"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	AddressLine  string `json:"addressLine"`
	CityStateZip string `json:"cityStateZip"`
}

// ContactInfo — контакт на случай ЧП
type ContactInfo struct {
	Name         string `json:"name"`
	Relationship string `json:"relationship"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
}

// InjuryChip — один элемент фиксированного списка зон травм
type InjuryChip struct {
	Label  string `json:"label"`
	Active bool   `json:"active"`
}

// MedicalInfo — отформатированная медицинская анкета
type MedicalInfo struct {
	HeartDisease        string       `json:"heartDisease"`
	ShortnessOfBreath   string       `json:"shortnessOfBreath"`
	HighBloodPressure   string       `json:"highBloodPressure"`
	Smoking             string       `json:"smoking"`
	Diabetes            string       `json:"diabetes"`
	FamilyHistory       string       `json:"familyHistory"`
	Workouts            string       `json:"workouts"`
	Medication          string       `json:"medication"`
	Alcohol             string       `json:"alcohol"`
	LastPhysical        string       `json:"lastPhysical"`
	ExerciseRestriction string       `json:"exerciseRestriction"`
	Injuries            []InjuryChip `json:"injuries"`
	OtherInjuryDetails  string       `json:"otherInjuryDetails"`
	HadRecentInjury     string       `json:"hadRecentInjury"`
	InjuryDetails       string       `json:"injuryDetails"`
	PhysicianCleared    string       `json:"physicianCleared"`
	ClearanceNotes      string       `json:"clearanceNotes"`
}

// Clause — заголовок и текст одного юридического пункта
type Clause struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// LegalCopy — полный набор юридических пунктов документа
type LegalCopy struct {
	Release         Clause `json:"release"`
	Indemnification Clause `json:"indemnification"`
	Media           Clause `json:"media"`
	Acknowledgement Clause `json:"acknowledgement"`
}

// InitialsInfo — инициалы по четырем пунктам
type InitialsInfo struct {
	RiskInitials            string `json:"riskInitials"`
	ReleaseInitials         string `json:"releaseInitials"`
	IndemnificationInitials string `json:"indemnificationInitials"`
	MediaInitials           string `json:"mediaInitials"`
}

// SignatureInfo — изображение подписи; заполняется вызывающей стороной
// после маппинга, чтобы маппер оставался чистой функцией без I/O
type SignatureInfo struct {
	ImageDataURL string `json:"imageDataUrl"`
}
