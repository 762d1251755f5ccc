package reservation

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	domain "github.com/cromados/barberia/internal/domain/reservation"
)

// PendingTTLMinutes es la vida máxima de un turno pending_payment. Alineado
// con el TTL de los holds de redis: pasado ese tiempo el pago no llegó.
const PendingTTLMinutes = 15

// ExpirePending cancela los turnos que quedaron en pending_payment porque
// el cliente abandonó el checkout y el webhook nunca llegó.
type ExpirePending struct {
	repo domain.Repository
	log  zerolog.Logger
}

func NewExpirePending(repo domain.Repository, log zerolog.Logger) *ExpirePending {
	return &ExpirePending{repo: repo, log: log}
}

func (uc *ExpirePending) Execute(ctx context.Context) (int64, error) {
	n, err := uc.repo.ExpirePendingBookings(ctx, PendingTTLMinutes)
	if err != nil {
		uc.log.Error().Err(err).Msg("reaper: expire pending failed")
		return 0, err
	}
	if n > 0 {
		uc.log.Info().Int64("expired", n).Msg("reaper: stale pending bookings cancelled")
	}
	return n, nil
}

// Run dispara el barrido de forma periódica hasta que el contexto se cierre.
func (uc *ExpirePending) Run(ctx context.Context, every time.Duration) {
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
