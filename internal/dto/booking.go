package dto

// BookingListDTO es la vista plana de un turno para los listados del
// panel de administración.
type BookingListDTO struct {
	ID uint `json:"id"`

	BarberID   uint   `json:"barber_id"`
	BarberName string `json:"barber_name"`

	ServiceName string `json:"service_name"`

	Date string `json:"date"`
	Time string `json:"time"`

	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`

	Status           string `json:"status"`
	PaymentConfirmed bool   `json:"payment_confirmed"`

	Deposit    bool `json:"deposit"`
	AmountPaid int  `json:"amount_paid"`
	AmountCash int  `json:"amount_cash"`

	GroupID string `json:"group_id,omitempty"`
	AddOns  string `json:"add_ons,omitempty"`
}
