package booking

import (
	"context"
	"sync"
)

// SlotLoader guarda los horarios del día elegido de la sesión activa y
// descarta respuestas tardías: cada pedido lleva un ticket con el barbero y
// la fecha que lo originaron, y solo el ticket vigente puede aplicar su
// resultado. No hay cancelación de red; el pedido superado termina y su
// respuesta se ignora.
type SlotLoader struct {
	mu sync.Mutex

	seq      uint64
	barberID uint
	date     string
	slots    []string
}

// Ticket identifica un pedido de horarios en vuelo.
type Ticket struct {
	seq      uint64
	barberID uint
	date     string
}

// Start registra un nuevo pedido para (barberID, date) y lo vuelve el
// vigente, invalidando cualquier pedido anterior sin resolver. También
// limpia los horarios mostrados: cambiar la fecha invalida la hora elegida.
func (l *SlotLoader) Start(barberID uint, date string) Ticket {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.seq++
	l.barberID = barberID
	l.date = date
	l.slots = nil

	return Ticket{seq: l.seq, barberID: barberID, date: date}
}

// Apply publica el resultado de un pedido. Devuelve false y no toca el
// estado si el ticket ya fue superado por un Start posterior.
func (l *SlotLoader) Apply(t Ticket, slots []string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if t.seq != l.seq || t.barberID != l.barberID || t.date != l.date {
		return false
	}
	l.slots = append([]string(nil), slots...)
	return true
}

// Slots devuelve los horarios vigentes.
func (l *SlotLoader) Slots() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.slots...)
}

// Fetch resuelve un pedido completo contra el oráculo: falla de red o
// respuesta tardía dejan los horarios como estaban (la falla degrada a
// "sin horarios" recién al aplicar una respuesta vacía vigente).
func (l *SlotLoader) Fetch(ctx context.Context, src SlotSource, barberID uint, date string) []string {
	t := l.Start(barberID, date)

	slots, err := src.Slots(ctx, barberID, date)
	if err != nil {
		slots = nil
	}
	l.Apply(t, slots)

	return l.Slots()
}
