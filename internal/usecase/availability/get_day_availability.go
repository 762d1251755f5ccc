package availability

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/cromados/barberia/internal/domain/reservation"
	"github.com/cromados/barberia/internal/domain/schedule"
	"github.com/cromados/barberia/internal/timezone"
)

// GetDayAvailability calcula los horarios libres de un barbero para una
// fecha. Única fuente de verdad de disponibilidad: la usan la API pública,
// el bot de Telegram y el panel admin.
type GetDayAvailability struct {
	repo reservation.Repository
	log  zerolog.Logger
}

func NewGetDayAvailability(repo reservation.Repository, log zerolog.Logger) *GetDayAvailability {
	return &GetDayAvailability{repo: repo, log: log}
}

// Execute arma las franjas del día y les descuenta la ocupación.
//
// Prioridad de franjas:
//  1. días excepcionales: si existe al menos uno para la fecha se usan solo
//     esas franjas, el horario semanal se ignora por completo (un día
//     excepcional sin franjas válidas deja el día cerrado: el override fue
//     una acción explícita del admin);
//  2. franjas semanales del día de la semana; sin franjas, el barbero no
//     atiende ese día.
//
// Los errores al consultar ocupación degradan a "sin datos": un turno o un
// bloqueo ilegible nunca corta el flujo de reserva, solo reduce opciones.
func (uc *GetDayAvailability) Execute(
	ctx context.Context,
	barberID uint,
	date time.Time,
) ([]string, error) {

	iso := date.Format("2006-01-02")

	var ranges []schedule.TimeRange

	exceptional, err := uc.repo.ListExceptionalDay(ctx, barberID, iso)
	if err != nil {
		uc.log.Warn().Err(err).Uint("barber_id", barberID).Str("date", iso).
			Msg("availability: exceptional day lookup failed")
	}

	if len(exceptional) > 0 {
		for _, e := range exceptional {
			ranges = append(ranges, schedule.TimeRange{Start: e.StartTime, End: e.EndTime})
		}
	} else {
		weekday := schedule.NormalizeWeekday(date.Weekday())
		weekly, err := uc.repo.ListWeeklySlots(ctx, barberID, weekday)
		if err != nil {
			uc.log.Warn().Err(err).Uint("barber_id", barberID).Int("weekday", weekday).
				Msg("availability: weekly slots lookup failed")
			return []string{}, nil
		}
		if len(weekly) == 0 {
			return []string{}, nil
		}
		for _, w := range weekly {
			ranges = append(ranges, schedule.TimeRange{Start: w.StartTime, End: w.EndTime})
		}
	}

	occupied := make(map[string]bool)

	bookings, err := uc.repo.ListBookingsForDay(ctx, barberID, iso)
	if err != nil {
		uc.log.Warn().Err(err).Uint("barber_id", barberID).Str("date", iso).
			Msg("availability: bookings lookup failed")
	}
	for _, b := range bookings {
		if reservation.OccupiesSlot(reservation.Status(b.Status), b.PaymentConfirmed) {
			occupied[b.Time] = true
		}
	}

	blocked, err := uc.repo.ListBlockedTimes(ctx, barberID, iso)
	if err != nil {
		uc.log.Warn().Err(err).Uint("barber_id", barberID).Str("date", iso).
			Msg("availability: blocked times lookup failed")
	}
	for _, t := range blocked {
		occupied[t] = true
	}

	// Si la fecha es hoy, los horarios ya pasados no se ofrecen. El corte se
	// trunca al minuto para que el slot en curso siga disponible.
	cutoff := -1
	now := timezone.Now()
	if iso == now.Format("2006-01-02") {
		cutoff = now.Hour()*60 + now.Minute()
	}

	return schedule.FreeSlots(ranges, occupied, cutoff), nil
}
