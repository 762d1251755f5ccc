package booking

import "github.com/cromados/barberia/internal/httperr"

// Customer son los datos de contacto pedidos en la confirmación.
type Customer struct {
	Name  string
	Phone string // ya compuesto con ComposePhone
	Age   int
}

type SessionPayload struct {
	Date     string `json:"date"`
	Time     string `json:"time"`
	AddOnIDs []uint `json:"add_on_ids,omitempty"` // nil cuando la sesión no tiene adicionales
}

// CheckoutPayload es el cuerpo que se envía una única vez al checkout.
// No hay semántica de actualización: si el envío falla se reintenta el
// checkout completo con el borrador intacto.
type CheckoutPayload struct {
	BranchID  uint             `json:"branch_id"`
	BarberID  uint             `json:"barber_id"`
	ServiceID uint             `json:"service_id"`
	Sessions  []SessionPayload `json:"sessions"`

	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`
	CustomerAge   int    `json:"customer_age"`

	Deposit bool `json:"deposit"`
}

// BuildCheckout arma el payload desde un borrador completo. Con el borrador
// incompleto o datos de contacto faltantes devuelve error de negocio; el
// borrador no se toca.
func BuildCheckout(d Draft, c Customer) (CheckoutPayload, error) {
	if !d.Complete() {
		return CheckoutPayload{}, httperr.ErrBusiness("draft_incomplete")
	}
	if c.Name == "" || c.Phone == "" || c.Age <= 0 {
		return CheckoutPayload{}, httperr.ErrBusiness("missing_customer_data")
	}

	sessions := make([]SessionPayload, len(d.Sessions))
	for i, s := range d.Sessions {
		sessions[i] = SessionPayload{
			Date: s.Date,
			Time: s.Time,
		}
		if len(s.AddOnIDs) > 0 {
			sessions[i].AddOnIDs = append([]uint(nil), s.AddOnIDs...)
		}
	}

	return CheckoutPayload{
		BranchID:      d.BranchID,
		BarberID:      d.BarberID,
		ServiceID:     d.ServiceID,
		Sessions:      sessions,
		CustomerName:  c.Name,
		CustomerPhone: c.Phone,
		CustomerAge:   c.Age,
		Deposit:       d.Deposit,
	}, nil
}
