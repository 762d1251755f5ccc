package agenda

import (
	"context"

	"github.com/cromados/barberia/internal/audit"
	domain "github.com/cromados/barberia/internal/domain/agenda"
	"github.com/cromados/barberia/internal/domain/schedule"
	"github.com/cromados/barberia/internal/httperr"
	"github.com/cromados/barberia/internal/models"
	"github.com/cromados/barberia/internal/timezone"
)

// ======================================================
// UPDATE WEEKLY SCHEDULE
// ======================================================

// UpdateWeekly reemplaza las franjas de un día de semana de un barbero.
// Varias franjas por día modelan turnos cortados (mañana y tarde). Si el
// recorte deja turnos ya vendidos fuera de toda franja, la operación se
// rechaza con conflicto y el panel debe recargar la agenda real.
type UpdateWeekly struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateWeekly(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *UpdateWeekly {
	return &UpdateWeekly{
		repo:  repo,
		audit: audit,
	}
}

type RangeInput struct {
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
}

func (uc *UpdateWeekly) Execute(
	ctx context.Context,
	adminID uint,
	barberID uint,
	weekday int,
	ranges []RangeInput,
) error {

	// 0 llega de clientes que usan el convenio de JS (0=domingo).
	if weekday == 0 {
		weekday = 7
	}
	if weekday < 1 || weekday > 7 {
		return httperr.ErrBusiness("invalid_weekday")
	}

	slots := make([]models.WeeklySlot, 0, len(ranges))
	for _, rg := range ranges {
		start := schedule.ParseClock(rg.StartTime)
		end := schedule.ParseClock(rg.EndTime)
		if start < 0 || end < 0 || start >= end {
			return httperr.ErrBusiness("invalid_range")
		}
		slots = append(slots, models.WeeklySlot{
			BarberID:  barberID,
			Weekday:   weekday,
			StartTime: rg.StartTime,
			EndTime:   rg.EndTime,
		})
	}

	if err := uc.assertNoStrandedBookings(ctx, barberID, weekday, slots); err != nil {
		return err
	}

	if err := uc.repo.ReplaceWeeklySlots(ctx, barberID, weekday, slots); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Entry{
		UserID:   &adminID,
		Action:   "weekly_schedule_updated",
		Entity:   "weekly_slot",
		EntityID: barberID,
		Detail:   map[string]any{"weekday": weekday, "ranges": len(slots)},
	})

	return nil
}

// assertNoStrandedBookings rechaza el cambio si algún turno futuro ya
// vendido queda fuera de las nuevas franjas. Los días excepcionales no se
// revisan: pisan la agenda semanal por completo.
func (uc *UpdateWeekly) assertNoStrandedBookings(
	ctx context.Context,
	barberID uint,
	weekday int,
	slots []models.WeeklySlot,
) error {

	today := timezone.Now().Format("2006-01-02")

	bookings, err := uc.repo.ListFutureBookingsForWeekday(ctx, barberID, weekday, today)
	if err != nil {
		return err
	}

	for _, b := range bookings {
		t := schedule.ParseClock(b.Time)
		covered := false
		for _, s := range slots {
			if t >= schedule.ParseClock(s.StartTime) && t <= schedule.ParseClock(s.EndTime) {
				covered = true
				break
			}
		}
		if !covered {
			return httperr.ErrBusiness("schedule_in_use")
		}
	}

	return nil
}

// ======================================================
// DELETE WEEKLY SCHEDULE
// ======================================================

// DeleteWeekly borra todas las franjas de un día de semana. Aplica la
// misma protección que el update: con turnos futuros vendidos ese día,
// conflicto.
type DeleteWeekly struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteWeekly(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *DeleteWeekly {
	return &DeleteWeekly{
		repo:  repo,
		audit: audit,
	}
}

func (uc *DeleteWeekly) Execute(
	ctx context.Context,
	adminID uint,
	barberID uint,
	weekday int,
) error {

	if weekday == 0 {
		weekday = 7
	}
	if weekday < 1 || weekday > 7 {
		return httperr.ErrBusiness("invalid_weekday")
	}

	today := timezone.Now().Format("2006-01-02")
	bookings, err := uc.repo.ListFutureBookingsForWeekday(ctx, barberID, weekday, today)
	if err != nil {
		return err
	}
	if len(bookings) > 0 {
		return httperr.ErrBusiness("schedule_in_use")
	}

	if err := uc.repo.DeleteWeeklySlots(ctx, barberID, weekday); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Entry{
		UserID:   &adminID,
		Action:   "weekly_schedule_deleted",
		Entity:   "weekly_slot",
		EntityID: barberID,
		Detail:   map[string]any{"weekday": weekday},
	})

	return nil
}
