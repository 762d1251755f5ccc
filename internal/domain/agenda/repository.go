// Package agenda cubre la administración de los horarios de atención:
// franjas semanales por barbero y días excepcionales que las pisan.
package agenda

import (
	"context"

	"github.com/cromados/barberia/internal/models"
)

type Repository interface {
	// -------- Franjas semanales --------
	ListWeeklySlots(
		ctx context.Context,
		barberID uint,
	) ([]models.WeeklySlot, error)

	ReplaceWeeklySlots(
		ctx context.Context,
		barberID uint,
		weekday int,
		slots []models.WeeklySlot,
	) error

	DeleteWeeklySlots(
		ctx context.Context,
		barberID uint,
		weekday int,
	) error

	// ListFutureBookingsForWeekday devuelve los turnos vigentes de fechas
	// futuras que caen en ese día de semana.
	ListFutureBookingsForWeekday(
		ctx context.Context,
		barberID uint,
		weekday int,
		fromDate string,
	) ([]models.Booking, error)

	// -------- Días excepcionales --------
	ListExceptionalDays(
		ctx context.Context,
		barberID uint,
	) ([]models.ExceptionalDay, error)

	CreateExceptionalDay(
		ctx context.Context,
		d *models.ExceptionalDay,
	) error

	GetExceptionalDayByID(
		ctx context.Context,
		id uint,
	) (*models.ExceptionalDay, error)

	DeleteExceptionalDay(
		ctx context.Context,
		id uint,
	) error
}
