package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCatalog = Catalog{
	{ID: 1, Name: "Corte", Price: 5000, DurationMin: 30, Sessions: 1},
	{ID: 2, Name: "Alisado", Price: 10000, DurationMin: 60, Sessions: 2},
	{ID: 3, Name: "Perfilado de cejas", Price: 2000, DurationMin: 15, AddOn: true},
	{ID: 4, Name: "Barba", Price: 1500, DurationMin: 15, AddOn: true},
}

func completeDraft(t *testing.T) Draft {
	t.Helper()

	svc, ok := testCatalog.ByID(2)
	require.True(t, ok)

	d := Draft{}.
		SelectBranch(1).
		SelectBarber(7).
		SelectService(svc).
		SelectDate(0, "2025-09-01").
		SelectTime(0, "09:30").
		SelectDate(1, "2025-09-15").
		SelectTime(1, "10:00")
	require.True(t, d.Complete())
	return d
}

// --------------------------------------------------
// Fan-out de sesiones
// --------------------------------------------------

func TestSelectService_SessionFanOut(t *testing.T) {
	svc, _ := testCatalog.ByID(2)

	d := Draft{BranchID: 1, BarberID: 7}.SelectService(svc)

	require.Len(t, d.Sessions, 2)
	for _, s := range d.Sessions {
		assert.Empty(t, s.Date)
		assert.Empty(t, s.Time)
		assert.Empty(t, s.AddOnIDs)
	}
}

func TestSelectService_MinimumOneSession(t *testing.T) {
	d := Draft{}.SelectService(Service{ID: 9, Sessions: 0})

	assert.Len(t, d.Sessions, 1)
}

func TestSelectService_ReplacesPreviousPlan(t *testing.T) {
	d := completeDraft(t)

	svc, _ := testCatalog.ByID(1)
	d = d.SelectService(svc)

	require.Len(t, d.Sessions, 1)
	assert.Empty(t, d.Sessions[0].Date, "el plan anterior se descarta entero")
}

// --------------------------------------------------
// Predicado de completitud
// --------------------------------------------------

func TestComplete_BothDirections(t *testing.T) {
	svc, _ := testCatalog.ByID(2)

	d := Draft{}.SelectBranch(1).SelectBarber(7).SelectService(svc).
		SelectDate(0, "2025-09-01").SelectTime(0, "09:30").
		SelectDate(1, "2025-09-15")
	assert.False(t, d.Complete(), "falta la hora de la última sesión")

	d = d.SelectTime(1, "10:00")
	assert.True(t, d.Complete(), "el último campo lo vuelve completo")

	assert.False(t, d.ClearSession(0).Complete(), "vaciar una sesión lo vuelve incompleto")
	assert.False(t, d.ClearService().Complete())
	assert.False(t, d.SelectBarber(0).Complete())
}

func TestComplete_NoSessions(t *testing.T) {
	d := Draft{BranchID: 1, BarberID: 7, ServiceID: 2}
	assert.False(t, d.Complete())
}

// --------------------------------------------------
// Toggle de adicionales
// --------------------------------------------------

func TestToggleAddOn_IdempotentPerSession(t *testing.T) {
	d := completeDraft(t)

	d = d.ToggleAddOn(0, 3)
	assert.Equal(t, []uint{3}, d.Sessions[0].AddOnIDs)
	assert.Empty(t, d.Sessions[1].AddOnIDs, "no toca a las hermanas")

	d = d.ToggleAddOn(0, 3)
	assert.Empty(t, d.Sessions[0].AddOnIDs, "el segundo toggle lo quita")
}

func TestToggleAddOn_ImmutableInput(t *testing.T) {
	d := completeDraft(t).ToggleAddOn(0, 3)

	d2 := d.ToggleAddOn(0, 4)

	assert.Equal(t, []uint{3}, d.Sessions[0].AddOnIDs, "el borrador original no cambia")
	assert.Equal(t, []uint{3, 4}, d2.Sessions[0].AddOnIDs)
}

// --------------------------------------------------
// Avance y retroceso del asistente
// --------------------------------------------------

func TestWizard_TotalStepsDynamic(t *testing.T) {
	w := NewWizard()
	assert.Equal(t, 4, w.TotalSteps(), "sin servicio se asume una sesión")

	svc, _ := testCatalog.ByID(2)
	w.Draft = w.Draft.SelectService(svc)
	assert.Equal(t, 5, w.TotalSteps())
}

func TestWizard_NextRequiresStepComplete(t *testing.T) {
	w := NewWizard()

	next, ready := w.Next()
	assert.False(t, ready)
	assert.Equal(t, StepBranch, next.Step, "sin sucursal no avanza")

	w.Draft = w.Draft.SelectBranch(1)
	next, _ = w.Next()
	assert.Equal(t, StepBarber, next.Step)
}

func TestWizard_NextFromLastStepSignalsReady(t *testing.T) {
	w := Wizard{Draft: completeDraft(t), Step: StepFirstSession + 1}
	require.Equal(t, w.TotalSteps(), w.Step)

	next, ready := w.Next()

	assert.True(t, ready, "el último paso no avanza: señala confirmación")
	assert.Equal(t, w.Step, next.Step)
	assert.True(t, next.Confirmable())
}

func TestWizard_PrevFromSessionClearsOnlyThatSession(t *testing.T) {
	w := Wizard{Draft: completeDraft(t), Step: StepFirstSession + 1}
	w.Draft = w.Draft.ToggleAddOn(0, 3).ToggleAddOn(1, 4)

	w = w.Prev()

	assert.Equal(t, StepFirstSession, w.Step)
	assert.Empty(t, w.Draft.Sessions[1].Date, "la sesión abandonada se vacía")
	assert.Empty(t, w.Draft.Sessions[1].AddOnIDs)

	assert.Equal(t, "2025-09-01", w.Draft.Sessions[0].Date, "la sesión anterior queda intacta")
	assert.Equal(t, "09:30", w.Draft.Sessions[0].Time)
	assert.Equal(t, []uint{3}, w.Draft.Sessions[0].AddOnIDs)
}

func TestWizard_PrevFromServiceDiscardsPlan(t *testing.T) {
	w := Wizard{Draft: completeDraft(t), Step: StepService}

	w = w.Prev()

	assert.Equal(t, StepBarber, w.Step)
	assert.Zero(t, w.Draft.ServiceID)
	assert.Empty(t, w.Draft.Sessions)
	assert.NotZero(t, w.Draft.BarberID, "el barbero se conserva")
}

func TestWizard_PrevFromBarberClearsBarber(t *testing.T) {
	w := Wizard{Draft: completeDraft(t), Step: StepBarber}

	w = w.Prev()

	assert.Equal(t, StepBranch, w.Step)
	assert.Zero(t, w.Draft.BarberID)
	assert.NotZero(t, w.Draft.BranchID)
}

func TestWizard_PrevAtFirstStepIsNoop(t *testing.T) {
	w := NewWizard()
	assert.Equal(t, StepBranch, w.Prev().Step)
}

func TestWizard_SelectDateInvalidatesTime(t *testing.T) {
	d := completeDraft(t).SelectDate(0, "2025-09-02")

	assert.Equal(t, "2025-09-02", d.Sessions[0].Date)
	assert.Empty(t, d.Sessions[0].Time, "cambiar el día invalida la hora elegida")
}
