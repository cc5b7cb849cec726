package entity

import "time"

// WaiverMedicalHistory хранит медицинскую анкету, привязанную к конкретному вейверу (1:1).
// Все булевы поля приводятся к канонической форме при записи: отсутствующее значение — false,
// пустая строка — NULL. Сервер сохраняет то, что пришло; согласованность пар
// had_recent_injury/injury_details обеспечивается клиентской схемой.
type WaiverMedicalHistory struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	WaiverID string `gorm:"type:uuid;not null;uniqueIndex" json:"waiver_id"`

	HeartDisease      bool `gorm:"not null;default:false" json:"heart_disease"`
	ShortnessOfBreath bool `gorm:"not null;default:false" json:"shortness_of_breath"`
	HighBloodPressure bool `gorm:"not null;default:false" json:"high_blood_pressure"`
	Smoking           bool `gorm:"not null;default:false" json:"smoking"`
	Diabetes          bool `gorm:"not null;default:false" json:"diabetes"`
	FamilyHistory     bool `gorm:"not null;default:false" json:"family_history"`
	Workouts          bool `gorm:"not null;default:false" json:"workouts"`
	Medication        bool `gorm:"not null;default:false" json:"medication"`
	Alcohol           bool `gorm:"not null;default:false" json:"alcohol"`

	LastPhysical        *string `gorm:"size:100" json:"last_physical,omitempty"`
	ExerciseRestriction *string `gorm:"type:text" json:"exercise_restriction,omitempty"`

	InjuriesKnees         bool    `gorm:"not null;default:false" json:"injuries_knees"`
	InjuriesLowerBack     bool    `gorm:"not null;default:false" json:"injuries_lower_back"`
	InjuriesNeckShoulders bool    `gorm:"not null;default:false" json:"injuries_neck_shoulders"`
	InjuriesHipPelvis     bool    `gorm:"not null;default:false" json:"injuries_hip_pelvis"`
	InjuriesOtherHas      bool    `gorm:"not null;default:false" json:"injuries_other_has"`
	InjuriesOtherDetails  *string `gorm:"type:text" json:"injuries_other_details,omitempty"`

	HadRecentInjury  bool    `gorm:"not null;default:false" json:"had_recent_injury"`
	InjuryDetails    *string `gorm:"type:text" json:"injury_details,omitempty"`
	PhysicianCleared bool    `gorm:"not null;default:false" json:"physician_cleared"`
	ClearanceNotes   *string `gorm:"type:text" json:"clearance_notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (WaiverMedicalHistory) TableName() string {
	return "waiver_medical_histories"
}
