package reservation

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	domain "github.com/cromados/barberia/internal/domain/reservation"
	"github.com/cromados/barberia/internal/models"
	"github.com/cromados/barberia/internal/timezone"
)

// El recordatorio sale cuando el turno entra en la ventana de 6 a 7 horas.
// Con un barrido por hora cada turno cae en la ventana una sola vez.
const reminderLeadHours = 6

// ReminderSender manda el recordatorio de un turno por el canal que sea.
type ReminderSender interface {
	SendReminder(b models.Booking) error
}

// SendReminders barre los turnos confirmados próximos y avisa una única
// vez por turno. El flag reminder_sent evita repetir el aviso si el
// barrido corre de nuevo dentro de la misma ventana.
type SendReminders struct {
	repo   domain.Repository
	sender ReminderSender
	log    zerolog.Logger
	now    func() time.Time
}

func NewSendReminders(
	repo domain.Repository,
	sender ReminderSender,
	log zerolog.Logger,
) *SendReminders {
	return &SendReminders{
		repo:   repo,
		sender: sender,
		log:    log,
		now:    timezone.Now,
	}
}

func (uc *SendReminders) Execute(ctx context.Context) (int, error) {
	now := uc.now()
	windowStart := now.Add(reminderLeadHours * time.Hour)
	windowEnd := windowStart.Add(time.Hour)

	bookings, err := uc.repo.ListBookingsBetween(
		ctx,
		windowStart.Format("2006-01-02"),
		windowEnd.Format("2006-01-02"),
	)
	if err != nil {
		uc.log.Error().Err(err).Msg("recordatorios: listado falló")
		return 0, err
	}

	sent := 0
	for _, b := range bookings {
		if !domain.OccupiesSlot(domain.Status(b.Status), b.PaymentConfirmed) {
			continue
		}
		if b.ReminderSent {
			continue
		}

		at, err := time.ParseInLocation("2006-01-02 15:04", b.Date+" "+b.Time, now.Location())
		if err != nil {
			continue
		}
		if !at.After(windowStart) || !at.Before(windowEnd) {
			continue
		}

		if err := uc.sender.SendReminder(b); err != nil {
			// Sin marcar: el turno sigue en ventana para el próximo barrido.
			uc.log.Warn().Err(err).Uint("booking_id", b.ID).
				Msg("recordatorios: envío falló")
			continue
		}

		b.ReminderSent = true
		if err := uc.repo.UpdateBooking(ctx, &b); err != nil {
			uc.log.Error().Err(err).Uint("booking_id", b.ID).
				Msg("recordatorios: no se pudo marcar como enviado")
			continue
		}
		sent++
	}

	if sent > 0 {
		uc.log.Info().Int("sent", sent).Msg("recordatorios: enviados")
	}
	return sent, nil
}

// Run dispara el barrido de forma periódica hasta que el contexto se cierre.
func (uc *SendReminders) Run(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_, _ = uc.Execute(ctx)
		}
	}
}
