package reservation

import "github.com/cromados/barberia/internal/httperr"

// ===============================
// Booking Status
// ===============================

type Status string

const (
	// Creado en el checkout, esperando la confirmación del pago.
	StatusPendingPayment Status = "pending_payment"
	// Pago acreditado, el turno ocupa su horario.
	StatusReserved  Status = "reserved"
	StatusCancelled Status = "cancelled"
	// Turno presencial cargado por el barbero, sin pago online.
	StatusBlocked Status = "blocked"
)

// ===============================
// Validations
// ===============================

func CanCancel(current Status) error {
	if current == StatusCancelled {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func CanConfirm(current Status) error {
	if current != StatusPendingPayment {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// OccupiesSlot indica si un turno en este estado bloquea su horario
// para nuevas reservas.
func OccupiesSlot(current Status, paymentConfirmed bool) bool {
	return paymentConfirmed || current == StatusReserved || current == StatusBlocked
}
