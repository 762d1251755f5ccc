// Package payout calcula la liquidación semanal de los barberos. El modelo
// del negocio: toda la plata (app, transferencia, efectivo) entra al local y
// el barbero cobra el 50% de comisión más bonos por volumen diario.
package payout

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	domain "github.com/cromados/barberia/internal/domain/reservation"
	"github.com/cromados/barberia/internal/httperr"
	"github.com/cromados/barberia/internal/models"
)

// Cada 10 turnos confirmados en un mismo día el barbero gana un bono.
const bonusBatchSize = 10

// El bono vale la mitad del precio del servicio base del catálogo.
const bonusServiceID = 1

// ======================================================
// DTOs
// ======================================================

type ServiceDetail struct {
	ServiceName string `json:"service_name"`
	Count       int    `json:"count"`
	UnitPrice   int    `json:"unit_price"`
	Subtotal    int    `json:"subtotal"`
}

type BarberPayout struct {
	BarberID   uint   `json:"barber_id"`
	BarberName string `json:"barber_name"`
	Bookings   int    `json:"bookings"`

	// Montos brutos, desglosados por cómo entró la plata.
	GrossApp      int `json:"gross_app"`
	GrossTransfer int `json:"gross_transfer"`
	GrossCash     int `json:"gross_cash"`
	GrossTotal    int `json:"gross_total"`

	Commission  int `json:"commission"`
	BonusCount  int `json:"bonus_count"`
	BonusAmount int `json:"bonus_amount"`
	Total       int `json:"total"`

	Services []ServiceDetail `json:"services"`

	// Bonos ganados por día, clave "dd/MM".
	BonusDays map[string]int `json:"bonus_days"`
}

// ======================================================
// USE CASE
// ======================================================

type Calculate struct {
	repo domain.Repository
	log  zerolog.Logger
}

func NewCalculate(repo domain.Repository, log zerolog.Logger) *Calculate {
	return &Calculate{repo: repo, log: log}
}

// Execute arma la liquidación de cada barbero para el rango [from, to],
// ambos extremos incluidos. Solo cuentan los turnos confirmados: pagados
// por la app o cargados presencialmente por el barbero.
func (uc *Calculate) Execute(
	ctx context.Context,
	from string,
	to string,
) ([]BarberPayout, error) {

	fromDay, errF := time.Parse("2006-01-02", from)
	toDay, errT := time.Parse("2006-01-02", to)
	if errF != nil || errT != nil || toDay.Before(fromDay) {
		return nil, httperr.ErrBusiness("invalid_range")
	}

	bookings, err := uc.repo.ListBookingsBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}

	confirmed := make([]models.Booking, 0, len(bookings))
	for _, b := range bookings {
		if domain.OccupiesSlot(domain.Status(b.Status), b.PaymentConfirmed) {
			confirmed = append(confirmed, b)
		}
	}

	uc.log.Info().
		Str("from", from).Str("to", to).
		Int("total", len(bookings)).Int("confirmed", len(confirmed)).
		Msg("payout: calculating")

	byBarber := make(map[uint][]models.Booking)
	for _, b := range confirmed {
		byBarber[b.BarberID] = append(byBarber[b.BarberID], b)
	}

	addOnPrices, err := uc.addOnPriceIndex(ctx)
	if err != nil {
		return nil, err
	}

	payouts := make([]BarberPayout, 0, len(byBarber))
	for barberID, list := range byBarber {
		payouts = append(payouts, uc.payoutFor(barberID, list, addOnPrices))
	}

	sort.Slice(payouts, func(i, j int) bool {
		return payouts[i].Total > payouts[j].Total
	})

	return payouts, nil
}

func (uc *Calculate) payoutFor(
	barberID uint,
	bookings []models.Booking,
	addOnPrices map[string]int,
) BarberPayout {

	p := BarberPayout{
		BarberID:   barberID,
		BarberName: bookings[0].Barber.Name,
		Bookings:   len(bookings),
	}

	for _, b := range bookings {
		if b.PaymentConfirmed {
			// Turno pagado por la app. Con seña, el resto queda como
			// efectivo pendiente en el local.
			p.GrossApp += b.AmountPaid
			p.GrossCash += b.AmountCash
		} else if domain.Status(b.Status) == domain.StatusBlocked {
			// Turno presencial cargado desde el panel o Telegram.
			if b.AmountPaid > 0 {
				p.GrossTransfer += b.AmountPaid
			}
			if b.AmountCash > 0 {
				p.GrossCash += b.AmountCash
			}
		}
	}
	p.GrossTotal = p.GrossApp + p.GrossTransfer + p.GrossCash

	// Comisión 50%, redondeada hacia arriba en el medio como la seña.
	p.Commission = (p.GrossTotal + 1) / 2

	p.BonusDays = bonusDays(bookings)
	for _, n := range p.BonusDays {
		p.BonusCount += n
	}
	if p.BonusCount > 0 {
		if price := baseServicePrice(bookings); price > 0 {
			p.BonusAmount = p.BonusCount * ((price + 1) / 2)
		}
	}

	p.Total = p.Commission + p.BonusAmount
	p.Services = uc.serviceDetails(bookings, addOnPrices)

	return p
}

// bonusDays devuelve, por cada día con 10 o más turnos, cuántos bonos ganó
// el barbero ese día. La clave es "dd/MM".
func bonusDays(bookings []models.Booking) map[string]int {
	perDay := make(map[string]int)
	for _, b := range bookings {
		perDay[b.Date]++
	}

	out := make(map[string]int)
	for date, n := range perDay {
		if bonuses := n / bonusBatchSize; bonuses > 0 && len(date) == 10 {
			out[date[8:10]+"/"+date[5:7]] = bonuses
		}
	}
	return out
}

// baseServicePrice busca entre los turnos del barbero el precio del
// servicio base del catálogo. 0 si no lo trabajó en el rango.
func baseServicePrice(bookings []models.Booking) int {
	for _, b := range bookings {
		if b.ServiceID == bonusServiceID {
			return b.Service.Price
		}
	}
	return 0
}

// serviceDetails desglosa los turnos por servicio principal y suma los
// adicionales por nombre, ordenado por subtotal descendente.
func (uc *Calculate) serviceDetails(
	bookings []models.Booking,
	addOnPrices map[string]int,
) []ServiceDetail {

	type acc struct {
		count int
		price int
	}
	primary := make(map[string]*acc)
	addOns := make(map[string]int)

	for _, b := range bookings {
		name := b.Service.Name
		if a, ok := primary[name]; ok {
			a.count++
		} else {
			primary[name] = &acc{count: 1, price: b.Service.Price}
		}

		for _, raw := range strings.Split(b.AddOns, ",") {
			if add := strings.TrimSpace(raw); add != "" {
				addOns[add]++
			}
		}
	}

	details := make([]ServiceDetail, 0, len(primary)+len(addOns))
	for name, a := range primary {
		details = append(details, ServiceDetail{
			ServiceName: name,
			Count:       a.count,
			UnitPrice:   a.price,
			Subtotal:    a.price * a.count,
		})
	}
	for name, count := range addOns {
		price, ok := addOnPrices[name]
		if !ok {
			uc.log.Warn().Str("add_on", name).
				Msg("payout: adicional sin precio en el catálogo")
			continue
		}
		details = append(details, ServiceDetail{
			ServiceName: "➕ " + name,
			Count:       count,
			UnitPrice:   price,
			Subtotal:    price * count,
		})
	}

	sort.Slice(details, func(i, j int) bool {
		return details[i].Subtotal > details[j].Subtotal
	})

	return details
}

// addOnPriceIndex indexa el catálogo por nombre. Los turnos guardan los
// adicionales como nombres, no como IDs.
func (uc *Calculate) addOnPriceIndex(ctx context.Context) (map[string]int, error) {
	services, err := uc.repo.ListAllServices(ctx)
	if err != nil {
		return nil, err
	}

	prices := make(map[string]int, len(services))
	for _, s := range services {
		if _, ok := prices[s.Name]; !ok {
			prices[s.Name] = s.Price
		}
	}
	return prices, nil
}
