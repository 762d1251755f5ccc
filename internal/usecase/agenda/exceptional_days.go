package agenda

import (
	"context"
	"time"

	"github.com/cromados/barberia/internal/audit"
	domain "github.com/cromados/barberia/internal/domain/agenda"
	"github.com/cromados/barberia/internal/domain/schedule"
	"github.com/cromados/barberia/internal/httperr"
	"github.com/cromados/barberia/internal/models"
	"github.com/cromados/barberia/internal/timezone"
)

// ======================================================
// EXCEPTIONAL DAYS
// ======================================================

// AddExceptionalDay carga una franja puntual para una fecha concreta.
// Las franjas excepcionales de una fecha reemplazan por completo la
// agenda semanal de ese día.
type AddExceptionalDay struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewAddExceptionalDay(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *AddExceptionalDay {
	return &AddExceptionalDay{
		repo:  repo,
		audit: audit,
	}
}

func (uc *AddExceptionalDay) Execute(
	ctx context.Context,
	adminID uint,
	barberID uint,
	date string,
	startTime string,
	endTime string,
) (*models.ExceptionalDay, error) {

	day, err := time.ParseInLocation("2006-01-02", date, timezone.Location(timezone.DefaultTimezone))
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	now := timezone.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if day.Before(today) {
		return nil, httperr.ErrBusiness("past_date")
	}

	start := schedule.ParseClock(startTime)
	end := schedule.ParseClock(endTime)
	if start < 0 || end < 0 || start >= end {
		return nil, httperr.ErrBusiness("invalid_range")
	}

	d := &models.ExceptionalDay{
		BarberID:  barberID,
		Date:      date,
		StartTime: startTime,
		EndTime:   endTime,
	}
	if err := uc.repo.CreateExceptionalDay(ctx, d); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Entry{
		UserID:   &adminID,
		Action:   "exceptional_day_added",
		Entity:   "exceptional_day",
		EntityID: d.ID,
		Detail:   date + " " + startTime + "-" + endTime,
	})

	return d, nil
}

// DeleteExceptionalDay borra una franja excepcional, validando que
// pertenezca al barbero indicado.
type DeleteExceptionalDay struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteExceptionalDay(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *DeleteExceptionalDay {
	return &DeleteExceptionalDay{
		repo:  repo,
		audit: audit,
	}
}

func (uc *DeleteExceptionalDay) Execute(
	ctx context.Context,
	adminID uint,
	barberID uint,
	dayID uint,
) error {

	d, err := uc.repo.GetExceptionalDayByID(ctx, dayID)
	if err != nil {
		return httperr.ErrBusiness("exceptional_day_not_found")
	}
	if d.BarberID != barberID {
		return httperr.ErrBusiness("exceptional_day_not_found")
	}

	if err := uc.repo.DeleteExceptionalDay(ctx, dayID); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Entry{
		UserID:   &adminID,
		Action:   "exceptional_day_deleted",
		Entity:   "exceptional_day",
		EntityID: dayID,
		Detail:   d.Date,
	})

	return nil
}

// ListSchedule junta la agenda completa de un barbero para el panel:
// franjas semanales y días excepcionales vigentes.
type ListSchedule struct {
	repo domain.Repository
}

func NewListSchedule(repo domain.Repository) *ListSchedule {
	return &ListSchedule{repo: repo}
}

type ScheduleOutput struct {
	WeeklySlots     []models.WeeklySlot     `json:"weekly_slots"`
	ExceptionalDays []models.ExceptionalDay `json:"exceptional_days"`
}

func (uc *ListSchedule) Execute(
	ctx context.Context,
	barberID uint,
) (*ScheduleOutput, error) {

	weekly, err := uc.repo.ListWeeklySlots(ctx, barberID)
	if err != nil {
		return nil, err
	}

	days, err := uc.repo.ListExceptionalDays(ctx, barberID)
	if err != nil {
		return nil, err
	}

	return &ScheduleOutput{
		WeeklySlots:     weekly,
		ExceptionalDays: days,
	}, nil
}
