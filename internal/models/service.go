package models

import "time"

type Service struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name        string `gorm:"size:120;not null" json:"name"`
	Description string `gorm:"size:500" json:"description"`

	Price       int `gorm:"not null" json:"price"` // ARS
	DurationMin int `gorm:"not null" json:"duration_min"`

	// Cantidad de sesiones que incluye el servicio (tratamientos multi-visita)
	Sessions int `gorm:"not null;default:1" json:"sessions"`

	// true = servicio adicional, se suma a un servicio principal por sesión
	AddOn bool `gorm:"not null;default:false" json:"add_on"`

	Active bool `gorm:"not null;default:true" json:"active"`

	// Barberos habilitados para ofrecer el servicio. Vacío = todos.
	EnabledBarbers []Barber `gorm:"many2many:service_barbers;" json:"enabled_barbers,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
