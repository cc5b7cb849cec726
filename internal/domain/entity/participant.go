package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Participant представляет дедуплицированную личность подписанта.
// Запись создается при первой подписи и больше не обновляется
// (first-write-wins): повторные подписи ссылаются на существующий id.
type Participant struct {
	ID       string `gorm:"type:uuid;primaryKey" json:"id"`
	FullName string `gorm:"size:200;not null" json:"full_name"`

	// DateOfBirth хранится строкой ISO (YYYY-MM-DD): сопоставление личности
	// делается точным строковым сравнением, без таймзонной арифметики
	DateOfBirth string `gorm:"size:10;not null;index:idx_participants_identity" json:"date_of_birth"`
	Email       string `gorm:"size:100;not null;index:idx_participants_identity" json:"email"`

	AddressLine *string `gorm:"size:200" json:"address_line,omitempty"`
	City        *string `gorm:"size:100" json:"city,omitempty"`
	State       *string `gorm:"size:50" json:"state,omitempty"`
	Zip         *string `gorm:"size:20" json:"zip,omitempty"`
	HomePhone   *string `gorm:"size:30" json:"home_phone,omitempty"`
	CellPhone   *string `gorm:"size:30" json:"cell_phone,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (Participant) TableName() string {
	return "participants"
}

// BeforeCreate генерирует UUID, если идентификатор не задан явно
func (p *Participant) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// MatchesPhone проверяет, совпадает ли переданный телефон с одним из сохраненных.
// Совпадение email+DOB без совпадения телефона трактуется как другой человек —
// защита от выдачи чужой записи по чужому email (защита от подмены личности).
func (p *Participant) MatchesPhone(phone string) bool {
	if p.CellPhone != nil && *p.CellPhone == phone {
		return true
	}
	if p.HomePhone != nil && *p.HomePhone == phone {
		return true
	}
	return false
}
