package checkout

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cromados/barberia/internal/domain/reservation"
	"github.com/cromados/barberia/internal/httperr"
	"github.com/cromados/barberia/internal/infra/hold"
	"github.com/cromados/barberia/internal/models"
	"github.com/cromados/barberia/internal/payments"
)

// fakeRepo sirve el catálogo en memoria y permite marcar horarios vendidos.
type fakeRepo struct {
	reservation.Repository

	branches map[uint]*models.Branch
	barbers  map[uint]*models.Barber
	services map[uint]*models.Service

	sold map[string]bool // "date time"
}

func (f *fakeRepo) GetBranchByID(_ context.Context, id uint) (*models.Branch, error) {
	if b, ok := f.branches[id]; ok {
		return b, nil
	}
	return nil, errors.New("not found")
}

func (f *fakeRepo) GetBarberByID(_ context.Context, id uint) (*models.Barber, error) {
	if b, ok := f.barbers[id]; ok {
		return b, nil
	}
	return nil, errors.New("not found")
}

func (f *fakeRepo) GetServiceByID(_ context.Context, id uint) (*models.Service, error) {
	if s, ok := f.services[id]; ok {
		return s, nil
	}
	return nil, errors.New("not found")
}

func (f *fakeRepo) AssertSlotFree(_ context.Context, _ uint, date, timeStr string) error {
	if f.sold[date+" "+timeStr] {
		return httperr.ErrBusiness("slot_taken")
	}
	return nil
}

type fakePrefs struct {
	initPoint string
	err       error
	lastInput payments.PreferenceInput
	calls     int
}

func (f *fakePrefs) CreatePreference(_ context.Context, in payments.PreferenceInput) (string, error) {
	f.calls++
	f.lastInput = in
	return f.initPoint, f.err
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		branches: map[uint]*models.Branch{
			1: {ID: 1, Name: "Centro"},
		},
		barbers: map[uint]*models.Barber{
			7: {ID: 7, BranchID: 1, Name: "Nico", Active: true},
		},
		services: map[uint]*models.Service{
			1: {ID: 1, Name: "Corte", Price: 5000, Sessions: 1, Active: true},
			2: {ID: 2, Name: "Alisado", Price: 10000, Sessions: 2, Active: true},
			3: {ID: 3, Name: "Perfilado de cejas", Price: 2000, AddOn: true, Active: true},
			4: {ID: 4, Name: "Servicio viejo", Price: 3000, Sessions: 1},
		},
		sold: map[string]bool{},
	}
}

func newTestUC(t *testing.T, repo *fakeRepo, prefs *fakePrefs) (*CreateCheckout, *hold.Store) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	holds := hold.NewStore(rdb)
	return NewCreateCheckout(repo, holds, prefs, zerolog.Nop()), holds
}

func multiSessionInput() CreateCheckoutInput {
	return CreateCheckoutInput{
		BranchID:  1,
		BarberID:  7,
		ServiceID: 2,
		Sessions: []SessionInput{
			{Date: "2025-09-15", Time: "09:30", AddOnIDs: []uint{3}},
			{Date: "2025-09-29", Time: "10:00"},
		},
		CustomerName:  "Juan Pérez",
		CustomerPhone: "+5493511234567",
		CustomerAge:   30,
		Deposit:       true,
	}
}

func TestExecute_MultiSessionWithDeposit(t *testing.T) {
	repo := newFakeRepo()
	prefs := &fakePrefs{initPoint: "https://mp.example/init"}
	uc, holds := newTestUC(t, repo, prefs)

	out, err := uc.Execute(context.Background(), multiSessionInput())
	require.NoError(t, err)

	assert.Equal(t, "https://mp.example/init", out.InitPoint)
	assert.Equal(t, 12000, out.Total, "servicio 10000 + adicional 2000, recalculado en el servidor")
	assert.Equal(t, 6000, out.PayNow)

	assert.Equal(t, 6000, prefs.lastInput.Amount, "a la pasarela va solo la seña")
	assert.Equal(t, "Reserva Alisado - Nico (Centro)", prefs.lastInput.Title)
	assert.Equal(t, "+5493511234567", prefs.lastInput.Metadata["customer_phone"])

	for _, s := range multiSessionInput().Sessions {
		held, err := holds.IsHeld(context.Background(), 7, s.Date, s.Time)
		require.NoError(t, err)
		assert.True(t, held, "cada sesión queda tomada hasta el pago")
	}
}

func TestExecute_NoDepositChargesTotal(t *testing.T) {
	repo := newFakeRepo()
	prefs := &fakePrefs{initPoint: "https://mp.example/init"}
	uc, _ := newTestUC(t, repo, prefs)

	in := CreateCheckoutInput{
		BranchID:  1,
		BarberID:  7,
		ServiceID: 1,
		Sessions: []SessionInput{
			{Date: "2025-09-15", Time: "09:30"},
		},
		CustomerName:  "Juan Pérez",
		CustomerPhone: "+5493511234567",
		CustomerAge:   30,
	}

	out, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, 5000, out.Total)
	assert.Equal(t, 5000, out.PayNow)
}

func TestExecute_EntityValidation(t *testing.T) {
	repo := newFakeRepo()
	uc, _ := newTestUC(t, repo, &fakePrefs{})

	cases := []struct {
		name   string
		mutate func(*CreateCheckoutInput)
		code   string
	}{
		{"sucursal inexistente", func(in *CreateCheckoutInput) { in.BranchID = 99 }, "branch_not_found"},
		{"barbero inexistente", func(in *CreateCheckoutInput) { in.BarberID = 99 }, "barber_not_found"},
		{"servicio inexistente", func(in *CreateCheckoutInput) { in.ServiceID = 99 }, "service_not_found"},
		{"servicio inactivo", func(in *CreateCheckoutInput) { in.ServiceID = 4 }, "service_not_found"},
		{"adicional como principal", func(in *CreateCheckoutInput) { in.ServiceID = 3 }, "service_is_add_on"},
		{"faltan sesiones", func(in *CreateCheckoutInput) { in.Sessions = in.Sessions[:1] }, "session_count_mismatch"},
		{"adicional inexistente", func(in *CreateCheckoutInput) { in.Sessions[0].AddOnIDs = []uint{99} }, "add_on_not_found"},
		{"principal usado como adicional", func(in *CreateCheckoutInput) { in.Sessions[0].AddOnIDs = []uint{1} }, "add_on_not_found"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := multiSessionInput()
			tc.mutate(&in)

			_, err := uc.Execute(context.Background(), in)
			assert.Equal(t, tc.code, httperr.BusinessCode(err))
		})
	}
}

func TestExecute_BarberFromAnotherBranch(t *testing.T) {
	repo := newFakeRepo()
	repo.branches[2] = &models.Branch{ID: 2, Name: "Norte"}
	uc, _ := newTestUC(t, repo, &fakePrefs{})

	in := multiSessionInput()
	in.BranchID = 2

	_, err := uc.Execute(context.Background(), in)
	assert.Equal(t, "barber_not_in_branch", httperr.BusinessCode(err))
}

func TestExecute_SoldSlotReleasesEarlierHolds(t *testing.T) {
	repo := newFakeRepo()
	repo.sold["2025-09-29 10:00"] = true
	prefs := &fakePrefs{}
	uc, holds := newTestUC(t, repo, prefs)

	_, err := uc.Execute(context.Background(), multiSessionInput())

	assert.Equal(t, "slot_taken", httperr.BusinessCode(err))
	assert.Zero(t, prefs.calls, "no se crea preferencia con un horario vendido")

	held, err2 := holds.IsHeld(context.Background(), 7, "2025-09-15", "09:30")
	require.NoError(t, err2)
	assert.False(t, held, "la primera sesión tomada se libera")
}

func TestExecute_HeldSlotConflicts(t *testing.T) {
	repo := newFakeRepo()
	uc, holds := newTestUC(t, repo, &fakePrefs{})

	ok, err := holds.TryHold(context.Background(), 7, "2025-09-29", "10:00", "otro-checkout")
	require.NoError(t, err)
	require.True(t, ok)

	_, err = uc.Execute(context.Background(), multiSessionInput())

	assert.Equal(t, "slot_taken", httperr.BusinessCode(err))

	held, err := holds.IsHeld(context.Background(), 7, "2025-09-29", "10:00")
	require.NoError(t, err)
	assert.True(t, held, "el hold ajeno no se toca")
}

func TestExecute_PreferenceFailureReleasesHolds(t *testing.T) {
	repo := newFakeRepo()
	prefs := &fakePrefs{err: errors.New("gateway down")}
	uc, holds := newTestUC(t, repo, prefs)

	_, err := uc.Execute(context.Background(), multiSessionInput())
	require.Error(t, err)

	for _, s := range multiSessionInput().Sessions {
		held, err := holds.IsHeld(context.Background(), 7, s.Date, s.Time)
		require.NoError(t, err)
		assert.False(t, held, "sin preferencia no quedan holds colgados")
	}
}
