package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTotal_ServicePlusAddOns(t *testing.T) {
	svc, _ := testCatalog.ByID(2)
	d := Draft{}.SelectBranch(1).SelectBarber(7).SelectService(svc).
		ToggleAddOn(0, 3)

	assert.Equal(t, 12000, Total(d, testCatalog), "servicio 10000 + adicional 2000")
}

func TestTotal_AddOnsPerSessionAccumulate(t *testing.T) {
	svc, _ := testCatalog.ByID(2)
	d := Draft{}.SelectService(svc).
		ToggleAddOn(0, 3).
		ToggleAddOn(1, 3).
		ToggleAddOn(1, 4)

	assert.Equal(t, 10000+2000+2000+1500, Total(d, testCatalog))
}

func TestTotal_UnknownIDsIgnored(t *testing.T) {
	d := Draft{ServiceID: 99, Sessions: []Session{{AddOnIDs: []uint{98}}}}

	assert.Equal(t, 0, Total(d, testCatalog))
}

func TestPayNow_DepositIsHalfRoundedUp(t *testing.T) {
	assert.Equal(t, 6000, PayNow(12000, true))
	assert.Equal(t, 2501, PayNow(5001, true), "el medio redondea hacia arriba")
	assert.Equal(t, 12000, PayNow(12000, false), "sin seña se cobra todo online")
}

func TestCashDue_ComplementsPayNow(t *testing.T) {
	assert.Equal(t, 6000, CashDue(12000, true))
	assert.Equal(t, 2500, CashDue(5001, true), "la seña se lleva el peso extra")
	assert.Equal(t, 0, CashDue(12000, false))
}
