package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
)

// RawJSON - пользовательский тип для хранения произвольного JSON в JSONB.
// Содержимое не интерпретируется сервером (например, векторные данные подписи).
type RawJSON json.RawMessage

// Scan реализует интерфейс sql.Scanner для RawJSON
func (o *RawJSON) Scan(value interface{}) error {
	if value == nil {
		*o = RawJSON("null")
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to unmarshal JSONB value: expected []byte")
	}

	if len(bytes) == 0 {
		*o = RawJSON("null")
		return nil
	}

	*o = RawJSON(append([]byte(nil), bytes...))
	return nil
}

// Value реализует интерфейс driver.Valuer для RawJSON
func (o RawJSON) Value() (driver.Value, error) {
	if len(o) == 0 {
		return []byte("null"), nil
	}
	return []byte(o), nil
}

// MarshalJSON возвращает содержимое как есть
func (o RawJSON) MarshalJSON() ([]byte, error) {
	if len(o) == 0 {
		return []byte("null"), nil
	}
	return []byte(o), nil
}

// UnmarshalJSON сохраняет содержимое без разбора
func (o *RawJSON) UnmarshalJSON(data []byte) error {
	*o = RawJSON(append([]byte(nil), data...))
	return nil
}

// Waiver представляет один подписанный экземпляр документа.
// Строка создается ровно один раз на отправку формы и далее неизменна.
type Waiver struct {
	ID            string `gorm:"type:uuid;primaryKey" json:"id"`
	ParticipantID string `gorm:"type:uuid;not null;index" json:"participant_id"`

	ConsentAcknowledged bool `gorm:"not null;default:false" json:"consent_acknowledged"`

	// Инициалы по четырем пунктам (две буквы каждый)
	InitialsRiskAssumption  *string `gorm:"size:2" json:"initials_risk_assumption,omitempty"`
	InitialsRelease         *string `gorm:"size:2" json:"initials_release,omitempty"`
	InitialsIndemnification *string `gorm:"size:2" json:"initials_indemnification,omitempty"`
	InitialsMediaRelease    *string `gorm:"size:2" json:"initials_media_release,omitempty"`

	// SignatureImageURL — путь объекта в хранилище вида "bucket/key",
	// подписанный URL генерируется при чтении
	SignatureImageURL   *string `gorm:"size:255" json:"signature_image_url,omitempty"`
	SignatureVectorJSON RawJSON `gorm:"type:jsonb" json:"signature_vector_json,omitempty"`

	SignedAtUTC           time.Time `gorm:"column:signed_at_utc;not null" json:"signed_at_utc"`
	ReviewConfirmAccuracy bool      `gorm:"not null;default:false" json:"review_confirm_accuracy"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (Waiver) TableName() string {
	return "waivers"
}

// BeforeCreate проверяет, что идентификатор присвоен заранее:
// id генерируется до любых записей, он же служит ключом объектов в хранилище.
func (w *Waiver) BeforeCreate(tx *gorm.DB) error {
	if w.ID == "" {
		return errors.New("waiver id must be assigned before insert")
	}
	return nil
}
