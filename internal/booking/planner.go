package booking

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/cromados/barberia/internal/domain/schedule"
)

// SlotSource es el oráculo de disponibilidad: para un barbero y una fecha
// devuelve los horarios libres "HH:mm" ascendentes. Va por red y puede
// fallar; el flujo trata cada falla como "sin horarios".
type SlotSource interface {
	Slots(ctx context.Context, barberID uint, isoDate string) ([]string, error)
}

// MaxLookaheadMonths acota la búsqueda de meses con disponibilidad.
const MaxLookaheadMonths = 12

// precheckConcurrency limita el fan-out de consultas por mes.
const precheckConcurrency = 8

// MonthEligibleDays consulta en paralelo la disponibilidad de todos los días
// candidatos del mes (futuros y dentro de los días de semana abiertos del
// barbero) y devuelve el set de fechas ISO con al menos un horario libre.
//
// Semántica join-all: el resultado se arma recién cuando terminaron todas
// las consultas; una consulta fallida aporta "sin horarios" y no aborta el
// lote. Los días sin horarios se omiten del calendario, no se deshabilitan.
func MonthEligibleDays(
	ctx context.Context,
	src SlotSource,
	barberID uint,
	year int,
	month time.Month,
	openWeekdays map[int]bool,
	today time.Time,
) map[string]bool {

	var candidates []schedule.Day
	for _, d := range schedule.MonthDays(year, month, today) {
		if openWeekdays[d.Weekday] {
			candidates = append(candidates, d)
		}
	}

	var mu sync.Mutex
	eligible := make(map[string]bool)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(precheckConcurrency)

	for _, d := range candidates {
		g.Go(func() error {
			slots, err := src.Slots(gctx, barberID, d.ISO)
			if err != nil || len(slots) == 0 {
				return nil
			}
			mu.Lock()
			eligible[d.ISO] = true
			mu.Unlock()
			return nil
		})
	}

	_ = g.Wait()
	return eligible
}

// MonthBrowser mantiene el mes visible del calendario de una sesión y el
// avance automático de un solo uso: si el mes actual quedó sin días con
// horarios, avanza una vez al siguiente y no vuelve a hacerlo hasta que
// cambie el barbero o se reingrese al paso de fecha.
type MonthBrowser struct {
	Offset int

	autoAdvanced bool
}

// Reset vuelve al mes actual y rearma el avance automático. Se llama al
// cambiar de barbero y al entrar al primer paso de sesión.
func (b *MonthBrowser) Reset() {
	b.Offset = 0
	b.autoAdvanced = false
}

// NextMonth y PrevMonth son la navegación manual; no consumen el avance
// automático. El offset nunca baja de cero.
func (b *MonthBrowser) NextMonth() { b.Offset++ }

func (b *MonthBrowser) PrevMonth() {
	if b.Offset > 0 {
		b.Offset--
	}
}

// Load ejecuta el pre-chequeo del mes visible y aplica la política de
// avance automático acotada a MaxLookaheadMonths.
func (b *MonthBrowser) Load(
	ctx context.Context,
	src SlotSource,
	barberID uint,
	openWeekdays map[int]bool,
	today time.Time,
) map[string]bool {

	year, month := schedule.MonthAt(today, b.Offset)
	days := MonthEligibleDays(ctx, src, barberID, year, month, openWeekdays, today)

	if len(days) == 0 && !b.autoAdvanced && b.Offset < MaxLookaheadMonths {
		b.Offset++
		b.autoAdvanced = true

		year, month = schedule.MonthAt(today, b.Offset)
		days = MonthEligibleDays(ctx, src, barberID, year, month, openWeekdays, today)
	}

	return days
}

// FindAvailableMonth busca desde fromOffset el primer mes con al menos un
// día disponible, recorriendo a lo sumo MaxLookaheadMonths meses. Si no hay
// nada en ese horizonte devuelve found=false: un barbero sin huecos en un
// año no hace avanzar el calendario indefinidamente.
func FindAvailableMonth(
	ctx context.Context,
	src SlotSource,
	barberID uint,
	openWeekdays map[int]bool,
	today time.Time,
	fromOffset int,
) (offset int, days map[string]bool, found bool) {

	for offset = fromOffset; offset <= MaxLookaheadMonths; offset++ {
		year, month := schedule.MonthAt(today, offset)
		days = MonthEligibleDays(ctx, src, barberID, year, month, openWeekdays, today)
		if len(days) > 0 {
			return offset, days, true
		}
	}
	return MaxLookaheadMonths, nil, false
}

// OpenWeekdaySet arma el set de días de semana abiertos (1=Lunes..7=Domingo)
// desde las franjas semanales publicadas del barbero. Sin datos se asume
// lunes a sábado, igual que el calendario público.
func OpenWeekdaySet(weekdays []int) map[int]bool {
	if len(weekdays) == 0 {
		return map[int]bool{1: true, 2: true, 3: true, 4: true, 5: true, 6: true}
	}
	out := make(map[int]bool, len(weekdays))
	for _, wd := range weekdays {
		if wd == 0 {
			wd = 7
		}
		out[wd] = true
	}
	return out
}
