package models

import "time"

// SlotBlock bloquea manualmente un horario puntual de un barbero
// (turnos presenciales tomados fuera del sistema).
type SlotBlock struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	BarberID uint `gorm:"index:idx_slot_block_barber_date" json:"barber_id"`

	Date string `gorm:"size:10;index:idx_slot_block_barber_date;not null" json:"date"`
	Time string `gorm:"size:5;not null" json:"time"`

	CreatedAt time.Time `json:"created_at"`
}
