package entity

import (
	"strings"
	"time"
)

// EmergencyContact — опциональный контакт на случай ЧП, один на вейвер.
// Строка пишется только если после trim осталось хоть одно непустое поле.
type EmergencyContact struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	WaiverID      string `gorm:"type:uuid;not null;uniqueIndex" json:"waiver_id"`
	ParticipantID string `gorm:"type:uuid;not null;index" json:"participant_id"`

	Name         *string `gorm:"size:200" json:"name,omitempty"`
	Relationship *string `gorm:"size:100" json:"relationship,omitempty"`
	Phone        *string `gorm:"size:30" json:"phone,omitempty"`
	Email        *string `gorm:"size:100" json:"email,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (EmergencyContact) TableName() string {
	return "emergency_contacts"
}

// IsEmpty возвращает true, если все поля контакта пустые после trim
func (c *EmergencyContact) IsEmpty() bool {
	for _, v := range []*string{c.Name, c.Relationship, c.Phone, c.Email} {
		if v != nil && strings.TrimSpace(*v) != "" {
			return false
		}
	}
	return true
}
