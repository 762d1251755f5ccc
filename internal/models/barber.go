package models

import "time"

type Barber struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BranchID uint   `json:"branch_id"`
	Branch   Branch `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"branch"`

	Name     string `gorm:"size:100;not null" json:"name"`
	PhotoURL string `gorm:"size:255" json:"photo_url"`

	InstagramURL string `gorm:"size:255" json:"instagram_url"`

	// Chat de Telegram del barbero para avisos de turnos. 0 = sin avisos.
	TelegramChatID int64 `gorm:"default:0" json:"telegram_chat_id"`

	Active bool `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
