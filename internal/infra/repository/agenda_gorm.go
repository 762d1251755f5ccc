package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/cromados/barberia/internal/domain/agenda"
	"github.com/cromados/barberia/internal/models"
)

type AgendaGormRepository struct {
	db *gorm.DB
}

func NewAgendaGormRepository(db *gorm.DB) *AgendaGormRepository {
	return &AgendaGormRepository{db: db}
}

// --------------------------------------------------
// Franjas semanales
// --------------------------------------------------

func (r *AgendaGormRepository) ListWeeklySlots(
	ctx context.Context,
	barberID uint,
) ([]models.WeeklySlot, error) {

	var slots []models.WeeklySlot
	if err := r.db.WithContext(ctx).
		Where("barber_id = ?", barberID).
		Order("weekday ASC, start_time ASC").
		Find(&slots).Error; err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *AgendaGormRepository) ReplaceWeeklySlots(
	ctx context.Context,
	barberID uint,
	weekday int,
	slots []models.WeeklySlot,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("barber_id = ? AND weekday = ?", barberID, weekday).
			Delete(&models.WeeklySlot{}).Error; err != nil {
			return err
		}
		if len(slots) == 0 {
			return nil
		}
		return tx.Create(&slots).Error
	})
}

func (r *AgendaGormRepository) DeleteWeeklySlots(
	ctx context.Context,
	barberID uint,
	weekday int,
) error {

	return r.db.WithContext(ctx).
		Where("barber_id = ? AND weekday = ?", barberID, weekday).
		Delete(&models.WeeklySlot{}).Error
}

func (r *AgendaGormRepository) ListFutureBookingsForWeekday(
	ctx context.Context,
	barberID uint,
	weekday int,
	fromDate string,
) ([]models.Booking, error) {

	// Postgres: EXTRACT(ISODOW) devuelve 1=lunes..7=domingo, el mismo
	// convenio que usa la agenda.
	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Select("id", "date", "time", "status", "payment_confirmed").
		Where(
			"barber_id = ? AND date >= ? AND EXTRACT(ISODOW FROM date::date) = ? AND (payment_confirmed = true OR status IN ('reserved', 'blocked'))",
			barberID, fromDate, weekday,
		).
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

// --------------------------------------------------
// Días excepcionales
// --------------------------------------------------

func (r *AgendaGormRepository) ListExceptionalDays(
	ctx context.Context,
	barberID uint,
) ([]models.ExceptionalDay, error) {

	var days []models.ExceptionalDay
	if err := r.db.WithContext(ctx).
		Where("barber_id = ?", barberID).
		Order("date ASC, start_time ASC").
		Find(&days).Error; err != nil {
		return nil, err
	}
	return days, nil
}

func (r *AgendaGormRepository) CreateExceptionalDay(
	ctx context.Context,
	d *models.ExceptionalDay,
) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *AgendaGormRepository) GetExceptionalDayByID(
	ctx context.Context,
	id uint,
) (*models.ExceptionalDay, error) {

	var d models.ExceptionalDay
	if err := r.db.WithContext(ctx).First(&d, id).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *AgendaGormRepository) DeleteExceptionalDay(
	ctx context.Context,
	id uint,
) error {
	return r.db.WithContext(ctx).Delete(&models.ExceptionalDay{}, id).Error
}

// Compile-time check
var _ domain.Repository = (*AgendaGormRepository)(nil)
