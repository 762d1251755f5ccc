package payout

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/cromados/barberia/internal/domain/reservation"
	"github.com/cromados/barberia/internal/httperr"
	"github.com/cromados/barberia/internal/models"
)

type fakeRepo struct {
	domain.Repository

	bookings []models.Booking
	services []models.Service
}

func (f *fakeRepo) ListBookingsBetween(_ context.Context, _, _ string) ([]models.Booking, error) {
	return f.bookings, nil
}

func (f *fakeRepo) ListAllServices(_ context.Context) ([]models.Service, error) {
	return f.services, nil
}

var (
	corte     = models.Service{ID: 1, Name: "Corte", Price: 5000}
	perfilado = models.Service{ID: 3, Name: "Perfilado de cejas", Price: 2000}

	nico  = models.Barber{ID: 1, Name: "Nico"}
	santi = models.Barber{ID: 2, Name: "Santi"}
)

func newUC(repo *fakeRepo) *Calculate {
	repo.services = []models.Service{corte, perfilado}
	return NewCalculate(repo, zerolog.Nop())
}

func appBooking(barber models.Barber, date string, paid, cash int) models.Booking {
	return models.Booking{
		BarberID: barber.ID, Barber: barber,
		ServiceID: corte.ID, Service: corte,
		Date: date, Time: "10:00",
		Status:           "reserved",
		PaymentConfirmed: true,
		AmountPaid:       paid,
		AmountCash:       cash,
	}
}

func blockedBooking(barber models.Barber, date string, paid, cash int) models.Booking {
	return models.Booking{
		BarberID: barber.ID, Barber: barber,
		ServiceID: corte.ID, Service: corte,
		Date: date, Time: "11:00",
		Status:     "blocked",
		AmountPaid: paid,
		AmountCash: cash,
	}
}

func TestCalculate_GrossBreakdownAndCommission(t *testing.T) {
	repo := &fakeRepo{bookings: []models.Booking{
		// Pagado por la app con seña: la mitad quedó en efectivo.
		appBooking(nico, "2025-09-15", 2500, 2500),
		// Presencial cobrado por transferencia.
		blockedBooking(nico, "2025-09-16", 5000, 0),
		// Presencial cobrado en efectivo.
		blockedBooking(nico, "2025-09-17", 0, 5000),
	}}
	uc := newUC(repo)

	out, err := uc.Execute(context.Background(), "2025-09-15", "2025-09-21")
	require.NoError(t, err)
	require.Len(t, out, 1)

	p := out[0]
	assert.Equal(t, uint(1), p.BarberID)
	assert.Equal(t, "Nico", p.BarberName)
	assert.Equal(t, 3, p.Bookings)

	assert.Equal(t, 2500, p.GrossApp)
	assert.Equal(t, 5000, p.GrossTransfer)
	assert.Equal(t, 7500, p.GrossCash)
	assert.Equal(t, 15000, p.GrossTotal)

	assert.Equal(t, 7500, p.Commission)
	assert.Zero(t, p.BonusCount)
	assert.Equal(t, 7500, p.Total)
}

func TestCalculate_CommissionRoundsHalfUp(t *testing.T) {
	repo := &fakeRepo{bookings: []models.Booking{
		appBooking(nico, "2025-09-15", 5001, 0),
	}}
	uc := newUC(repo)

	out, err := uc.Execute(context.Background(), "2025-09-15", "2025-09-15")
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, 2501, out[0].Commission)
}

func TestCalculate_IgnoresUnconfirmed(t *testing.T) {
	cancelled := appBooking(nico, "2025-09-15", 5000, 0)
	cancelled.Status = "cancelled"
	cancelled.PaymentConfirmed = false

	pending := appBooking(nico, "2025-09-15", 0, 0)
	pending.Status = "pending_payment"
	pending.PaymentConfirmed = false

	repo := &fakeRepo{bookings: []models.Booking{cancelled, pending}}
	uc := newUC(repo)

	out, err := uc.Execute(context.Background(), "2025-09-15", "2025-09-15")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestCalculate_DailyVolumeBonus(t *testing.T) {
	repo := &fakeRepo{}
	for i := 0; i < 10; i++ {
		repo.bookings = append(repo.bookings, appBooking(nico, "2025-09-15", 5000, 0))
	}
	// Nueve turnos otro día: no alcanzan para un segundo bono.
	for i := 0; i < 9; i++ {
		repo.bookings = append(repo.bookings, appBooking(nico, "2025-09-16", 5000, 0))
	}
	uc := newUC(repo)

	out, err := uc.Execute(context.Background(), "2025-09-15", "2025-09-21")
	require.NoError(t, err)
	require.Len(t, out, 1)

	p := out[0]
	assert.Equal(t, 1, p.BonusCount)
	assert.Equal(t, map[string]int{"15/09": 1}, p.BonusDays)

	// El bono vale la mitad del precio del servicio base.
	assert.Equal(t, 2500, p.BonusAmount)
	assert.Equal(t, p.Commission+2500, p.Total)
}

func TestCalculate_ServiceDetailWithAddOns(t *testing.T) {
	withAddOn := appBooking(nico, "2025-09-15", 7000, 0)
	withAddOn.AddOns = "Perfilado de cejas"

	withUnknown := appBooking(nico, "2025-09-16", 5000, 0)
	withUnknown.AddOns = "Masaje capilar"

	repo := &fakeRepo{bookings: []models.Booking{withAddOn, withUnknown}}
	uc := newUC(repo)

	out, err := uc.Execute(context.Background(), "2025-09-15", "2025-09-21")
	require.NoError(t, err)
	require.Len(t, out, 1)

	// El adicional sin precio en el catálogo se saltea.
	require.Len(t, out[0].Services, 2)

	assert.Equal(t, ServiceDetail{
		ServiceName: "Corte",
		Count:       2,
		UnitPrice:   5000,
		Subtotal:    10000,
	}, out[0].Services[0])

	assert.Equal(t, ServiceDetail{
		ServiceName: "➕ Perfilado de cejas",
		Count:       1,
		UnitPrice:   2000,
		Subtotal:    2000,
	}, out[0].Services[1])
}

func TestCalculate_OrdersByTotalDescending(t *testing.T) {
	repo := &fakeRepo{bookings: []models.Booking{
		appBooking(nico, "2025-09-15", 5000, 0),
		appBooking(santi, "2025-09-15", 5000, 0),
		appBooking(santi, "2025-09-16", 5000, 0),
	}}
	uc := newUC(repo)

	out, err := uc.Execute(context.Background(), "2025-09-15", "2025-09-21")
	require.NoError(t, err)
	require.Len(t, out, 2)

	assert.Equal(t, "Santi", out[0].BarberName)
	assert.Equal(t, "Nico", out[1].BarberName)
	assert.Greater(t, out[0].Total, out[1].Total)
}

func TestCalculate_InvalidRange(t *testing.T) {
	uc := newUC(&fakeRepo{})
	ctx := context.Background()

	for _, tc := range [][2]string{
		{"2025-09-21", "2025-09-15"},
		{"ayer", "2025-09-15"},
		{"2025-09-15", ""},
	} {
		_, err := uc.Execute(ctx, tc[0], tc[1])
		assert.Equal(t, "invalid_range", httperr.BusinessCode(err))
	}
}
