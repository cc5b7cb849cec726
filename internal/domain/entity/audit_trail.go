package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// JSONMap - пользовательский тип для работы с JSONB-объектами
type JSONMap map[string]interface{}

// Scan реализует интерфейс sql.Scanner для JSONMap
func (o *JSONMap) Scan(value interface{}) error {
	if value == nil {
		*o = JSONMap{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to unmarshal JSONB value: expected []byte")
	}

	if len(bytes) == 0 {
		*o = JSONMap{}
		return nil
	}

	return json.Unmarshal(bytes, o)
}

// Value реализует интерфейс driver.Valuer для JSONMap
func (o JSONMap) Value() (driver.Value, error) {
	if o == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(o)
}

// AuditTrail — неизменяемая запись о сгенерированном документе.
// SHA-256 от точных байтов PDF связывает конкретный файл с конкретным фактом подписания;
// строка только добавляется, обновлений и удалений нет.
type AuditTrail struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	WaiverID      string `gorm:"type:uuid;not null;index" json:"waiver_id"`
	ParticipantID string `gorm:"type:uuid;not null;index" json:"participant_id"`

	// DocumentPDFURL — путь объекта "bucket/key" в хранилище документов
	DocumentPDFURL string `gorm:"size:255;not null" json:"document_pdf_url"`

	// DocumentSHA256 — hex-дайджест байтов PDF, снятых в момент отправки формы
	DocumentSHA256 string `gorm:"size:64;not null" json:"document_sha256"`

	// IdentitySnapshot — усеченный снимок личности (имя/email/дата рождения).
	// Адрес, телефоны и медицинские данные сюда не попадают.
	IdentitySnapshot JSONMap `gorm:"type:jsonb;not null" json:"identity_snapshot"`

	Locale         string `gorm:"size:10;not null;default:'en'" json:"locale"`
	ContentVersion string `gorm:"size:50;not null" json:"content_version"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (AuditTrail) TableName() string {
	return "audit_trails"
}

// NewIdentitySnapshot собирает усеченный снимок личности для аудита
func NewIdentitySnapshot(fullName, email, dateOfBirth string) JSONMap {
	return JSONMap{
		"full_name":     fullName,
		"email":         email,
		"date_of_birth": dateOfBirth,
	}
}
