package payment

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/cromados/barberia/internal/audit"
	"github.com/cromados/barberia/internal/domain/reservation"
	"github.com/cromados/barberia/internal/infra/cache"
	"github.com/cromados/barberia/internal/infra/hold"
	"github.com/cromados/barberia/internal/models"
	"github.com/cromados/barberia/internal/payments"
)

// PaymentFetcher abstrae la consulta del pago a la pasarela.
type PaymentFetcher interface {
	GetPayment(ctx context.Context, id int) (*payments.PaymentInfo, error)
}

// BookingNotifier avisa por fuera de la API cuando se confirman turnos.
// Lo implementa el bot de Telegram.
type BookingNotifier interface {
	NotifyNewBookings(bookings []models.Booking)
}

// ======================================================
// USE CASE
// ======================================================

// ProcessWebhook materializa los turnos cuando Mercado Pago confirma un
// pago. Es el único camino por el que un turno pasa a reservado: el
// checkout solo deja holds transitorios y metadata en la preferencia.
type ProcessWebhook struct {
	repo     reservation.Repository
	fetcher  PaymentFetcher
	holds    *hold.Store
	slots    *cache.AvailabilitySource
	audit    *audit.Dispatcher
	notifier BookingNotifier
	log      zerolog.Logger
}

func NewProcessWebhook(
	repo reservation.Repository,
	fetcher PaymentFetcher,
	holds *hold.Store,
	slots *cache.AvailabilitySource,
	dispatcher *audit.Dispatcher,
	log zerolog.Logger,
) *ProcessWebhook {
	return &ProcessWebhook{
		repo:    repo,
		fetcher: fetcher,
		holds:   holds,
		slots:   slots,
		audit:   dispatcher,
		log:     log,
	}
}

// SetNotifier engancha el aviso de turnos nuevos. El bot se construye
// después de las rutas, por eso no entra por el constructor.
func (uc *ProcessWebhook) SetNotifier(n BookingNotifier) {
	uc.notifier = n
}

// webhookSession refleja el JSON serializado en la metadata de la
// preferencia. Mercado Pago devuelve las claves de metadata en snake_case.
type webhookSession struct {
	Date     string `json:"date"`
	Time     string `json:"time"`
	AddOnIDs []uint `json:"add_on_ids"`
}

// ======================================================
// EXECUTE
// ======================================================

// Execute procesa la notificación de un pago. Solo "approved" crea turnos;
// cualquier otro estado se registra y se descarta. Devuelve error
// únicamente cuando conviene que la pasarela reintente la notificación.
func (uc *ProcessWebhook) Execute(ctx context.Context, paymentID int) error {
	info, err := uc.fetcher.GetPayment(ctx, paymentID)
	if err != nil {
		uc.log.Error().Err(err).Int("payment_id", paymentID).
			Msg("webhook: payment lookup failed")
		return err
	}

	if info.Status != "approved" {
		uc.log.Info().Int("payment_id", paymentID).Str("status", info.Status).
			Msg("webhook: ignored, not approved")
		return nil
	}

	// Los webhooks llegan repetidos. El primer procesamiento gana.
	already, err := uc.repo.CountBookingsByPayment(ctx, int64(paymentID))
	if err != nil {
		return err
	}
	if already > 0 {
		uc.log.Info().Int("payment_id", paymentID).
			Msg("webhook: already processed")
		return nil
	}

	meta := info.Metadata

	branchID := metaUint(meta, "branch_id")
	barberID := metaUint(meta, "barber_id")
	serviceID := metaUint(meta, "service_id")
	if branchID == 0 || barberID == 0 || serviceID == 0 {
		uc.log.Error().Int("payment_id", paymentID).
			Msg("webhook: metadata incomplete, skipping")
		return nil
	}

	var sessions []webhookSession
	if raw := metaString(meta, "sessions"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &sessions); err != nil {
			uc.log.Error().Err(err).Int("payment_id", paymentID).
				Msg("webhook: bad sessions payload, skipping")
			return nil
		}
	}
	if len(sessions) == 0 {
		uc.log.Error().Int("payment_id", paymentID).
			Msg("webhook: no sessions in metadata, skipping")
		return nil
	}

	total := metaInt(meta, "total")
	payNow := metaInt(meta, "pay_now")
	deposit := metaBool(meta, "deposit")

	groupID := ""
	if len(sessions) > 1 {
		groupID = uuid.NewString()
	}

	created := make([]models.Booking, 0, len(sessions))
	for _, s := range sessions {
		b := &models.Booking{
			BranchID:  branchID,
			BarberID:  barberID,
			ServiceID: serviceID,

			Date: s.Date,
			Time: s.Time,

			CustomerName:  metaString(meta, "customer_name"),
			CustomerPhone: metaString(meta, "customer_phone"),
			CustomerAge:   metaInt(meta, "customer_age"),

			Status:           string(reservation.StatusReserved),
			PaymentConfirmed: true,
			PaymentID:        int64(paymentID),

			Deposit:    deposit,
			AmountPaid: payNow,
			AmountCash: total - payNow,

			GroupID: groupID,
			AddOns:  uc.addOnNames(ctx, s.AddOnIDs),
		}

		if err := uc.repo.CreateBooking(ctx, b); err != nil {
			// Un choque acá significa que alguien ocupó el slot entre el
			// checkout y el pago. Queda registrado para resolución manual.
			uc.log.Error().Err(err).
				Int("payment_id", paymentID).
				Str("date", s.Date).Str("time", s.Time).
				Msg("webhook: booking create failed")
			continue
		}

		if err := uc.holds.Release(ctx, barberID, s.Date, s.Time); err != nil {
			uc.log.Warn().Err(err).Msg("webhook: hold release failed")
		}
		uc.slots.Invalidate(ctx, barberID, s.Date)

		uc.audit.Dispatch(audit.Entry{
			Action:   "booking_confirmed",
			Entity:   "booking",
			EntityID: b.ID,
			Detail:   s.Date + " " + s.Time,
		})

		created = append(created, *b)
	}

	if uc.notifier != nil && len(created) > 0 {
		uc.notifier.NotifyNewBookings(created)
	}

	uc.log.Info().Int("payment_id", paymentID).Int("sessions", len(sessions)).
		Msg("webhook: bookings created")
	return nil
}

func (uc *ProcessWebhook) addOnNames(ctx context.Context, ids []uint) string {
	var names []string
	for _, id := range ids {
		svc, err := uc.repo.GetServiceByID(ctx, id)
		if err != nil {
			continue
		}
		names = append(names, svc.Name)
	}
	return strings.Join(names, ", ")
}

// ======================================================
// METADATA HELPERS
// ======================================================

// Los números de la metadata vuelven como float64 al deserializar JSON.

func metaString(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func metaInt(m map[string]any, key string) int {
	switch v := m[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	}
	return 0
}

func metaUint(m map[string]any, key string) uint {
	n := metaInt(m, key)
	if n < 0 {
		return 0
	}
	return uint(n)
}

func metaBool(m map[string]any, key string) bool {
	b, _ := m[key].(bool)
	return b
}
