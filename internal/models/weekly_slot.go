package models

import "time"

// WeeklySlot es una franja recurrente de atención. Un barbero puede tener
// más de una franja por día (turno mañana / turno tarde).
type WeeklySlot struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	BarberID uint `gorm:"index:idx_weekly_slot_barber_weekday" json:"barber_id"`

	Weekday int `gorm:"index:idx_weekly_slot_barber_weekday;not null" json:"weekday"` // 1=Lunes .. 7=Domingo

	StartTime string `gorm:"size:5;not null" json:"start_time"` // "09:00"
	EndTime   string `gorm:"size:5;not null" json:"end_time"`   // "18:00"

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
