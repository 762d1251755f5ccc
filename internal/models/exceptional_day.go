package models

import "time"

// ExceptionalDay es una franja de atención para una fecha puntual (feriados
// trabajados, eventos). Si existe al menos una para la fecha, reemplaza por
// completo a las franjas semanales de ese día.
type ExceptionalDay struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	BarberID uint `gorm:"index:idx_exceptional_day_barber_date" json:"barber_id"`

	Date string `gorm:"size:10;index:idx_exceptional_day_barber_date;not null" json:"date"` // "2025-12-24"

	StartTime string `gorm:"size:5;not null" json:"start_time"`
	EndTime   string `gorm:"size:5;not null" json:"end_time"` // la hora de fin admite reserva

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
