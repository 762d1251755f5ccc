// Package hold reserva transitoriamente los horarios de un checkout en
// curso. Mientras el cliente está en la pasarela de pago, su horario queda
// tomado por un TTL corto; si el pago no llega, el hold expira solo.
package hold

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const ttl = 10 * time.Minute

type Store struct {
	rdb *redis.Client
}

func NewStore(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

func key(barberID uint, date, timeStr string) string {
	return fmt.Sprintf("hold:%d:%s:%s", barberID, date, timeStr)
}

// TryHold toma el horario para owner. Devuelve false si otro checkout lo
// tiene tomado y vigente.
func (s *Store) TryHold(ctx context.Context, barberID uint, date, timeStr, owner string) (bool, error) {
	return s.rdb.SetNX(ctx, key(barberID, date, timeStr), owner, ttl).Result()
}

func (s *Store) Release(ctx context.Context, barberID uint, date, timeStr string) error {
	return s.rdb.Del(ctx, key(barberID, date, timeStr)).Err()
}

func (s *Store) IsHeld(ctx context.Context, barberID uint, date, timeStr string) (bool, error) {
	n, err := s.rdb.Exists(ctx, key(barberID, date, timeStr)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
