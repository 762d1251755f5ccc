// Package cache agrega una capa de lectura sobre el cálculo de
// disponibilidad. El pre-chequeo mensual del flujo de reserva dispara una
// consulta por día; cachear cada día unos segundos evita recalcular el mes
// entero en cada navegación.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"

	"github.com/cromados/barberia/internal/usecase/availability"
)

const availabilityTTL = 60 * time.Second

// AvailabilitySource implementa booking.SlotSource con read-through a redis.
// Cualquier error de redis degrada a calcular directo: el cache nunca es
// causa de "sin horarios".
type AvailabilitySource struct {
	rdb *redis.Client
	uc  *availability.GetDayAvailability
	log zerolog.Logger
}

func NewAvailabilitySource(rdb *redis.Client, uc *availability.GetDayAvailability, log zerolog.Logger) *AvailabilitySource {
	return &AvailabilitySource{rdb: rdb, uc: uc, log: log}
}

func slotsKey(barberID uint, isoDate string) string {
	return fmt.Sprintf("slots:%d:%s", barberID, isoDate)
}

func (s *AvailabilitySource) Slots(ctx context.Context, barberID uint, isoDate string) ([]string, error) {
	if raw, err := s.rdb.Get(ctx, slotsKey(barberID, isoDate)).Result(); err == nil {
		var cached []string
		if json.Unmarshal([]byte(raw), &cached) == nil {
			return cached, nil
		}
	}

	date, err := time.Parse("2006-01-02", isoDate)
	if err != nil {
		return nil, err
	}

	slots, err := s.uc.Execute(ctx, barberID, date)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(slots); err == nil {
		if err := s.rdb.Set(ctx, slotsKey(barberID, isoDate), raw, availabilityTTL).Err(); err != nil {
			s.log.Debug().Err(err).Msg("availability cache: set failed")
		}
	}
	return slots, nil
}

// Invalidate descarta el día cacheado; se llama en cada alta, cancelación o
// bloqueo de turno.
func (s *AvailabilitySource) Invalidate(ctx context.Context, barberID uint, isoDate string) {
	if err := s.rdb.Del(ctx, slotsKey(barberID, isoDate)).Err(); err != nil {
		s.log.Debug().Err(err).Msg("availability cache: invalidate failed")
	}
}
