package agenda

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cromados/barberia/internal/audit"
	domain "github.com/cromados/barberia/internal/domain/agenda"
	"github.com/cromados/barberia/internal/httperr"
	"github.com/cromados/barberia/internal/models"
)

type fakeRepo struct {
	domain.Repository

	future []models.Booking

	replaced       []models.WeeklySlot
	replacedDay    int
	deletedWeekday int
}

func (f *fakeRepo) ListFutureBookingsForWeekday(_ context.Context, _ uint, _ int, _ string) ([]models.Booking, error) {
	return f.future, nil
}

func (f *fakeRepo) ReplaceWeeklySlots(_ context.Context, _ uint, weekday int, slots []models.WeeklySlot) error {
	f.replacedDay = weekday
	f.replaced = slots
	return nil
}

func (f *fakeRepo) DeleteWeeklySlots(_ context.Context, _ uint, weekday int) error {
	f.deletedWeekday = weekday
	return nil
}

func testDispatcher() *audit.Dispatcher {
	return audit.NewDispatcher(audit.New(nil), zerolog.Nop())
}

func TestUpdateWeekly_ReplacesRanges(t *testing.T) {
	repo := &fakeRepo{}
	uc := NewUpdateWeekly(repo, testDispatcher())

	err := uc.Execute(context.Background(), 1, 7, 1, []RangeInput{
		{StartTime: "09:00", EndTime: "13:00"},
		{StartTime: "16:00", EndTime: "20:00"},
	})
	require.NoError(t, err)

	require.Len(t, repo.replaced, 2)
	assert.Equal(t, 1, repo.replacedDay)
	assert.Equal(t, "16:00", repo.replaced[1].StartTime)
}

func TestUpdateWeekly_NormalizesSundayZero(t *testing.T) {
	repo := &fakeRepo{}
	uc := NewUpdateWeekly(repo, testDispatcher())

	err := uc.Execute(context.Background(), 1, 7, 0, []RangeInput{
		{StartTime: "09:00", EndTime: "12:00"},
	})
	require.NoError(t, err)

	assert.Equal(t, 7, repo.replacedDay, "el 0 de JS es domingo ISO 7")
}

func TestUpdateWeekly_InvalidInput(t *testing.T) {
	uc := NewUpdateWeekly(&fakeRepo{}, testDispatcher())
	ctx := context.Background()

	err := uc.Execute(ctx, 1, 7, 8, nil)
	assert.Equal(t, "invalid_weekday", httperr.BusinessCode(err))

	for _, rg := range []RangeInput{
		{StartTime: "13:00", EndTime: "09:00"},
		{StartTime: "09:00", EndTime: "09:00"},
		{StartTime: "mal", EndTime: "12:00"},
	} {
		err := uc.Execute(ctx, 1, 7, 1, []RangeInput{rg})
		assert.Equal(t, "invalid_range", httperr.BusinessCode(err))
	}
}

func TestUpdateWeekly_StrandedBookingConflicts(t *testing.T) {
	repo := &fakeRepo{future: []models.Booking{
		{Date: "2030-09-02", Time: "18:00"},
	}}
	uc := NewUpdateWeekly(repo, testDispatcher())

	err := uc.Execute(context.Background(), 1, 7, 1, []RangeInput{
		{StartTime: "09:00", EndTime: "13:00"},
	})

	assert.Equal(t, "schedule_in_use", httperr.BusinessCode(err))
	assert.Empty(t, repo.replaced, "con conflicto no se toca la agenda")
}

func TestUpdateWeekly_CoveredBookingPasses(t *testing.T) {
	repo := &fakeRepo{future: []models.Booking{
		{Date: "2030-09-02", Time: "13:00"}, // justo en el borde inclusivo
	}}
	uc := NewUpdateWeekly(repo, testDispatcher())

	err := uc.Execute(context.Background(), 1, 7, 1, []RangeInput{
		{StartTime: "09:00", EndTime: "13:00"},
	})

	assert.NoError(t, err)
}

func TestDeleteWeekly_BlockedBySoldBookings(t *testing.T) {
	repo := &fakeRepo{future: []models.Booking{
		{Date: "2030-09-02", Time: "10:00"},
	}}
	uc := NewDeleteWeekly(repo, testDispatcher())

	err := uc.Execute(context.Background(), 1, 7, 1)

	assert.Equal(t, "schedule_in_use", httperr.BusinessCode(err))
	assert.Zero(t, repo.deletedWeekday)
}

func TestDeleteWeekly_EmptyDayDeletes(t *testing.T) {
	repo := &fakeRepo{}
	uc := NewDeleteWeekly(repo, testDispatcher())

	require.NoError(t, uc.Execute(context.Background(), 1, 7, 0))
	assert.Equal(t, 7, repo.deletedWeekday)
}
