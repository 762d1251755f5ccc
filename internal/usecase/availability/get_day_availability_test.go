package availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cromados/barberia/internal/domain/reservation"
	"github.com/cromados/barberia/internal/models"
	"github.com/cromados/barberia/internal/timezone"
)

// fakeRepo implementa reservation.Repository en memoria para estos tests.
// Solo los métodos de agenda y ocupación tienen comportamiento; el resto no
// se usa desde el cálculo de disponibilidad.
type fakeRepo struct {
	reservation.Repository

	weekly      []models.WeeklySlot
	exceptional []models.ExceptionalDay
	bookings    []models.Booking
	blocked     []string

	weeklyErr      error
	exceptionalErr error
	bookingsErr    error
	blockedErr     error
}

func (f *fakeRepo) ListWeeklySlots(_ context.Context, _ uint, _ int) ([]models.WeeklySlot, error) {
	return f.weekly, f.weeklyErr
}

func (f *fakeRepo) ListExceptionalDay(_ context.Context, _ uint, _ string) ([]models.ExceptionalDay, error) {
	return f.exceptional, f.exceptionalErr
}

func (f *fakeRepo) ListBookingsForDay(_ context.Context, _ uint, _ string) ([]models.Booking, error) {
	return f.bookings, f.bookingsErr
}

func (f *fakeRepo) ListBlockedTimes(_ context.Context, _ uint, _ string) ([]string, error) {
	return f.blocked, f.blockedErr
}

// Lunes futuro: nunca aplica el corte de "hoy".
var futureMonday = time.Date(2030, time.September, 2, 0, 0, 0, 0, time.UTC)

func newUC(repo *fakeRepo) *GetDayAvailability {
	return NewGetDayAvailability(repo, zerolog.Nop())
}

func TestExecute_WeeklySlots(t *testing.T) {
	repo := &fakeRepo{weekly: []models.WeeklySlot{
		{StartTime: "09:00", EndTime: "10:00"},
	}}

	got, err := newUC(repo).Execute(context.Background(), 7, futureMonday)

	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "09:30", "10:00"}, got)
}

func TestExecute_NoWeeklySlotsMeansClosed(t *testing.T) {
	got, err := newUC(&fakeRepo{}).Execute(context.Background(), 7, futureMonday)

	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestExecute_ExceptionalDayOverridesWeekly(t *testing.T) {
	repo := &fakeRepo{
		weekly: []models.WeeklySlot{{StartTime: "09:00", EndTime: "18:00"}},
		exceptional: []models.ExceptionalDay{
			{StartTime: "14:00", EndTime: "15:00"},
		},
	}

	got, err := newUC(repo).Execute(context.Background(), 7, futureMonday)

	require.NoError(t, err)
	assert.Equal(t, []string{"14:00", "14:30", "15:00"}, got, "el semanal se ignora por completo")
}

func TestExecute_ExceptionalDayWithInvalidRangesClosesDay(t *testing.T) {
	repo := &fakeRepo{
		weekly: []models.WeeklySlot{{StartTime: "09:00", EndTime: "18:00"}},
		exceptional: []models.ExceptionalDay{
			{StartTime: "15:00", EndTime: "14:00"},
		},
	}

	got, err := newUC(repo).Execute(context.Background(), 7, futureMonday)

	require.NoError(t, err)
	assert.Empty(t, got, "el override explícito del admin cierra el día")
}

func TestExecute_OccupiedSlotsRemoved(t *testing.T) {
	repo := &fakeRepo{
		weekly: []models.WeeklySlot{{StartTime: "09:00", EndTime: "11:00"}},
		bookings: []models.Booking{
			{Time: "09:30", Status: string(reservation.StatusReserved)},
			{Time: "10:00", Status: string(reservation.StatusPendingPayment), PaymentConfirmed: true},
			{Time: "10:30", Status: string(reservation.StatusCancelled)}, // no ocupa
		},
		blocked: []string{"11:00"},
	}

	got, err := newUC(repo).Execute(context.Background(), 7, futureMonday)

	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "10:30"}, got)
}

func TestExecute_PendingWithoutPaymentDoesNotOccupy(t *testing.T) {
	repo := &fakeRepo{
		weekly: []models.WeeklySlot{{StartTime: "09:00", EndTime: "09:30"}},
		bookings: []models.Booking{
			{Time: "09:00", Status: string(reservation.StatusPendingPayment)},
		},
	}

	got, err := newUC(repo).Execute(context.Background(), 7, futureMonday)

	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "09:30"}, got)
}

func TestExecute_LookupErrorsDegrade(t *testing.T) {
	boom := errors.New("db down")

	repo := &fakeRepo{
		weekly:         []models.WeeklySlot{{StartTime: "09:00", EndTime: "10:00"}},
		exceptionalErr: boom,
		bookingsErr:    boom,
		blockedErr:     boom,
	}

	got, err := newUC(repo).Execute(context.Background(), 7, futureMonday)

	require.NoError(t, err, "la ocupación ilegible no corta el flujo")
	assert.Equal(t, []string{"09:00", "09:30", "10:00"}, got)
}

func TestExecute_WeeklyLookupErrorMeansNoSlots(t *testing.T) {
	repo := &fakeRepo{weeklyErr: errors.New("db down")}

	got, err := newUC(repo).Execute(context.Background(), 7, futureMonday)

	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestExecute_TodayFiltersPastTimes(t *testing.T) {
	repo := &fakeRepo{weekly: []models.WeeklySlot{
		{StartTime: "00:00", EndTime: "23:30"},
	}}

	now := timezone.Now()
	got, err := newUC(repo).Execute(context.Background(), 7, now)

	require.NoError(t, err)
	nowMin := now.Hour()*60 + now.Minute()
	for _, s := range got {
		h, _ := time.Parse("15:04", s)
		slotMin := h.Hour()*60 + h.Minute()
		assert.GreaterOrEqual(t, slotMin, nowMin-29, "no se ofrecen horarios ya pasados")
	}
}
