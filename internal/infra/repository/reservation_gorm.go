package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	domain "github.com/cromados/barberia/internal/domain/reservation"
	"github.com/cromados/barberia/internal/httperr"
	"github.com/cromados/barberia/internal/models"
)

type ReservationGormRepository struct {
	db *gorm.DB
}

func NewReservationGormRepository(db *gorm.DB) *ReservationGormRepository {
	return &ReservationGormRepository{db: db}
}

// --------------------------------------------------
// Catálogo
// --------------------------------------------------

func (r *ReservationGormRepository) GetBranchByID(
	ctx context.Context,
	id uint,
) (*models.Branch, error) {

	var branch models.Branch
	if err := r.db.WithContext(ctx).First(&branch, id).Error; err != nil {
		return nil, err
	}
	return &branch, nil
}

func (r *ReservationGormRepository) GetBarberByID(
	ctx context.Context,
	id uint,
) (*models.Barber, error) {

	var barber models.Barber
	if err := r.db.WithContext(ctx).
		Where("id = ? AND active = true", id).
		First(&barber).Error; err != nil {
		return nil, err
	}
	return &barber, nil
}

func (r *ReservationGormRepository) GetServiceByID(
	ctx context.Context,
	id uint,
) (*models.Service, error) {

	var service models.Service
	if err := r.db.WithContext(ctx).First(&service, id).Error; err != nil {
		return nil, err
	}
	return &service, nil
}

func (r *ReservationGormRepository) ListAllServices(
	ctx context.Context,
) ([]models.Service, error) {

	var services []models.Service
	if err := r.db.WithContext(ctx).
		Order("id ASC").
		Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

// --------------------------------------------------
// Agenda
// --------------------------------------------------

func (r *ReservationGormRepository) ListWeeklySlots(
	ctx context.Context,
	barberID uint,
	weekday int,
) ([]models.WeeklySlot, error) {

	var slots []models.WeeklySlot
	if err := r.db.WithContext(ctx).
		Where("barber_id = ? AND weekday = ?", barberID, weekday).
		Order("start_time ASC").
		Find(&slots).Error; err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *ReservationGormRepository) ListExceptionalDay(
	ctx context.Context,
	barberID uint,
	date string,
) ([]models.ExceptionalDay, error) {

	var days []models.ExceptionalDay
	if err := r.db.WithContext(ctx).
		Where("barber_id = ? AND date = ?", barberID, date).
		Order("start_time ASC").
		Find(&days).Error; err != nil {
		return nil, err
	}
	return days, nil
}

// --------------------------------------------------
// Ocupación
// --------------------------------------------------

func (r *ReservationGormRepository) ListBookingsForDay(
	ctx context.Context,
	barberID uint,
	date string,
) ([]models.Booking, error) {

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Select("id", "time", "status", "payment_confirmed").
		Where("barber_id = ? AND date = ?", barberID, date).
		Order("time ASC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *ReservationGormRepository) ListBlockedTimes(
	ctx context.Context,
	barberID uint,
	date string,
) ([]string, error) {

	var times []string
	if err := r.db.WithContext(ctx).
		Model(&models.SlotBlock{}).
		Where("barber_id = ? AND date = ?", barberID, date).
		Pluck("time", &times).Error; err != nil {
		return nil, err
	}
	return times, nil
}

// --------------------------------------------------
// Booking
// --------------------------------------------------

func (r *ReservationGormRepository) CreateBooking(
	ctx context.Context,
	b *models.Booking,
) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *ReservationGormRepository) AssertSlotFree(
	ctx context.Context,
	barberID uint,
	date string,
	timeStr string,
) error {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where(
			"barber_id = ? AND date = ? AND time = ? AND (payment_confirmed = true OR status IN ('reserved', 'blocked'))",
			barberID, date, timeStr,
		).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return httperr.ErrBusiness("slot_taken")
	}

	if err := r.db.WithContext(ctx).
		Model(&models.SlotBlock{}).
		Where("barber_id = ? AND date = ? AND time = ?", barberID, date, timeStr).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return httperr.ErrBusiness("slot_taken")
	}

	return nil
}

func (r *ReservationGormRepository) CountBookingsByPayment(
	ctx context.Context,
	paymentID int64,
) (int64, error) {

	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("payment_id = ?", paymentID).
		Count(&count).Error
	return count, err
}

func (r *ReservationGormRepository) GetBookingByID(
	ctx context.Context,
	id uint,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *ReservationGormRepository) UpdateBooking(
	ctx context.Context,
	b *models.Booking,
) error {
	return r.db.WithContext(ctx).Save(b).Error
}

// --------------------------------------------------
// Listados admin
// --------------------------------------------------

func (r *ReservationGormRepository) ListBookingsByDate(
	ctx context.Context,
	date string,
	barberID uint,
) ([]models.Booking, error) {

	q := r.db.WithContext(ctx).
		Preload("Barber").
		Preload("Service").
		Where("date = ?", date)

	if barberID != 0 {
		q = q.Where("barber_id = ?", barberID)
	}

	var bookings []models.Booking
	if err := q.Order("time ASC").Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *ReservationGormRepository) ListBookingsByMonth(
	ctx context.Context,
	year int,
	month int,
	barberID uint,
) ([]models.Booking, error) {

	prefix := fmt.Sprintf("%04d-%02d-%%", year, month)

	q := r.db.WithContext(ctx).
		Preload("Barber").
		Preload("Service").
		Where("date LIKE ?", prefix)

	if barberID != 0 {
		q = q.Where("barber_id = ?", barberID)
	}

	var bookings []models.Booking
	if err := q.Order("date ASC, time ASC").Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *ReservationGormRepository) ListBookingsBetween(
	ctx context.Context,
	from string,
	to string,
) ([]models.Booking, error) {

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Barber").
		Preload("Service").
		Where("date >= ? AND date <= ?", from, to).
		Order("date ASC, time ASC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

// --------------------------------------------------
// Bloqueos manuales
// --------------------------------------------------

func (r *ReservationGormRepository) CreateSlotBlock(
	ctx context.Context,
	b *models.SlotBlock,
) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *ReservationGormRepository) DeleteSlotBlock(
	ctx context.Context,
	barberID uint,
	date string,
	timeStr string,
) error {

	res := r.db.WithContext(ctx).
		Where("barber_id = ? AND date = ? AND time = ?", barberID, date, timeStr).
		Delete(&models.SlotBlock{})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// --------------------------------------------------
// Limpieza
// --------------------------------------------------

func (r *ReservationGormRepository) ExpirePendingBookings(
	ctx context.Context,
	olderThanMinutes int,
) (int64, error) {

	cutoff := time.Now().Add(-time.Duration(olderThanMinutes) * time.Minute)
	now := time.Now()

	res := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("status = 'pending_payment' AND created_at < ?", cutoff).
		Updates(map[string]any{
			"status":       "cancelled",
			"cancelled_at": now,
		})

	return res.RowsAffected, res.Error
}

// Compile-time check
var _ domain.Repository = (*ReservationGormRepository)(nil)
