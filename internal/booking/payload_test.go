package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cromados/barberia/internal/httperr"
)

var testCustomer = Customer{
	Name:  "Juan Pérez",
	Phone: "+5493511234567",
	Age:   30,
}

func TestBuildCheckout_IncompleteDraft(t *testing.T) {
	d := completeDraft(t).ClearSession(1)

	_, err := BuildCheckout(d, testCustomer)

	assert.Equal(t, "draft_incomplete", httperr.BusinessCode(err))
}

func TestBuildCheckout_MissingCustomerData(t *testing.T) {
	d := completeDraft(t)

	for _, c := range []Customer{
		{Phone: "+5493511234567", Age: 30},
		{Name: "Juan", Age: 30},
		{Name: "Juan", Phone: "+5493511234567"},
	} {
		_, err := BuildCheckout(d, c)
		assert.Equal(t, "missing_customer_data", httperr.BusinessCode(err))
	}
}

func TestBuildCheckout_MapsDraftVerbatim(t *testing.T) {
	d := completeDraft(t).ToggleAddOn(1, 3).SetDeposit(true)

	p, err := BuildCheckout(d, testCustomer)
	require.NoError(t, err)

	assert.Equal(t, uint(1), p.BranchID)
	assert.Equal(t, uint(7), p.BarberID)
	assert.Equal(t, uint(2), p.ServiceID)
	assert.True(t, p.Deposit)
	assert.Equal(t, "Juan Pérez", p.CustomerName)
	assert.Equal(t, "+5493511234567", p.CustomerPhone)
	assert.Equal(t, 30, p.CustomerAge)

	require.Len(t, p.Sessions, 2)
	assert.Equal(t, SessionPayload{Date: "2025-09-01", Time: "09:30"}, p.Sessions[0])
	assert.Equal(t, []uint{3}, p.Sessions[1].AddOnIDs)
}

func TestBuildCheckout_EmptyAddOnsAreNil(t *testing.T) {
	p, err := BuildCheckout(completeDraft(t), testCustomer)
	require.NoError(t, err)

	for _, s := range p.Sessions {
		assert.Nil(t, s.AddOnIDs, "sin adicionales el campo se omite del JSON")
	}
}

// Recorrido típico: corte simple, lunes 09:30, sin seña.
func TestBuildCheckout_SingleSessionFlow(t *testing.T) {
	svc, _ := testCatalog.ByID(1)

	d := Draft{}.
		SelectBranch(1).
		SelectBarber(7).
		SelectService(svc).
		SelectDate(0, "2025-09-15").
		SelectTime(0, "09:30")
	require.True(t, d.Complete())

	p, err := BuildCheckout(d, testCustomer)
	require.NoError(t, err)

	require.Len(t, p.Sessions, 1)
	assert.Equal(t, SessionPayload{Date: "2025-09-15", Time: "09:30"}, p.Sessions[0])
	assert.False(t, p.Deposit)

	total := Total(d, testCatalog)
	assert.Equal(t, 5000, total)
	assert.Equal(t, 5000, PayNow(total, d.Deposit), "sin seña se cobra el total online")
}
