package reservation

import (
	"context"

	"github.com/cromados/barberia/internal/models"
)

type Repository interface {
	// -------- Catálogo --------
	GetBranchByID(
		ctx context.Context,
		id uint,
	) (*models.Branch, error)

	GetBarberByID(
		ctx context.Context,
		id uint,
	) (*models.Barber, error)

	GetServiceByID(
		ctx context.Context,
		id uint,
	) (*models.Service, error)

	ListAllServices(
		ctx context.Context,
	) ([]models.Service, error)

	// -------- Agenda --------
	ListWeeklySlots(
		ctx context.Context,
		barberID uint,
		weekday int,
	) ([]models.WeeklySlot, error)

	ListExceptionalDay(
		ctx context.Context,
		barberID uint,
		date string,
	) ([]models.ExceptionalDay, error)

	// -------- Ocupación --------
	ListBookingsForDay(
		ctx context.Context,
		barberID uint,
		date string,
	) ([]models.Booking, error)

	ListBlockedTimes(
		ctx context.Context,
		barberID uint,
		date string,
	) ([]string, error)

	// -------- Booking (create / state change) --------
	CreateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	AssertSlotFree(
		ctx context.Context,
		barberID uint,
		date string,
		timeStr string,
	) error

	CountBookingsByPayment(
		ctx context.Context,
		paymentID int64,
	) (int64, error)

	GetBookingByID(
		ctx context.Context,
		id uint,
	) (*models.Booking, error)

	UpdateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	// -------- Listados admin --------
	ListBookingsByDate(
		ctx context.Context,
		date string,
		barberID uint,
	) ([]models.Booking, error)

	ListBookingsByMonth(
		ctx context.Context,
		year int,
		month int,
		barberID uint,
	) ([]models.Booking, error)

	// ListBookingsBetween trae los turnos con fecha en [from, to], ambos
	// extremos incluidos.
	ListBookingsBetween(
		ctx context.Context,
		from string,
		to string,
	) ([]models.Booking, error)

	// -------- Bloqueos manuales --------
	CreateSlotBlock(
		ctx context.Context,
		b *models.SlotBlock,
	) error

	DeleteSlotBlock(
		ctx context.Context,
		barberID uint,
		date string,
		timeStr string,
	) error

	// -------- Limpieza --------
	ExpirePendingBookings(
		ctx context.Context,
		olderThanMinutes int,
	) (int64, error)
}
