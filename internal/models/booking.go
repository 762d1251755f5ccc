package models

import "time"

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BranchID uint   `json:"branch_id"`
	Branch   Branch `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"branch"`

	BarberID uint   `gorm:"index:idx_booking_barber_date" json:"barber_id"`
	Barber   Barber `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"barber"`

	ServiceID uint    `json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service"`

	Date string `gorm:"size:10;index:idx_booking_barber_date;not null" json:"date"` // "2025-09-01"
	Time string `gorm:"size:5;not null" json:"time"`                                // "09:30"

	CustomerName  string `gorm:"size:100;not null" json:"customer_name"`
	CustomerPhone string `gorm:"size:25;not null" json:"customer_phone"`
	CustomerAge   int    `json:"customer_age"`

	Status string `gorm:"size:20;default:'pending_payment'" json:"status"`

	PaymentConfirmed bool `gorm:"default:false" json:"payment_confirmed"`

	// ID del pago en la pasarela. Permite descartar webhooks repetidos.
	PaymentID int64 `gorm:"index" json:"payment_id"`

	// Seña: pagó el 50% online, el resto en efectivo en la barbería.
	Deposit    bool `gorm:"default:false" json:"deposit"`
	AmountPaid int  `json:"amount_paid"`
	AmountCash int  `json:"amount_cash"`

	// Agrupa los turnos de un servicio multi-sesión. Vacío si es sesión única.
	GroupID string `gorm:"size:36;index" json:"group_id"`

	// Nombres de adicionales de la sesión, separados por coma.
	AddOns string `gorm:"type:text" json:"add_ons"`

	ReminderSent bool `gorm:"default:false" json:"reminder_sent"`

	CancelledAt *time.Time `json:"cancelled_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
