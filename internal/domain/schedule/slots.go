package schedule

import "sort"

// SlotMinutes es el paso entre turnos reservables.
const SlotMinutes = 30

// FreeSlots genera los horarios libres de un día a partir de sus franjas.
//
// Reglas:
//   - slots cada 30 minutos, la hora de fin de la franja incluida
//     (fin "12:00" → el slot 12:00 se puede reservar);
//   - se descartan los horarios del set occupied (turnos tomados y bloqueos);
//   - cutoff >= 0 descarta horarios anteriores a ese minuto (fecha = hoy);
//   - franjas inválidas se ignoran, no abortan el cálculo;
//   - franjas que rozan medianoche no desbordan al día siguiente.
//
// El resultado queda ordenado ascendente y sin duplicados aunque las franjas
// se solapen.
func FreeSlots(ranges []TimeRange, occupied map[string]bool, cutoff int) []string {
	seen := make(map[int]bool)

	for _, r := range ranges {
		if !r.Valid() {
			continue
		}
		start := ParseClock(r.Start)
		end := ParseClock(r.End)

		for slot := start; slot <= end; slot += SlotMinutes {
			if slot >= 24*60 {
				break
			}
			if cutoff >= 0 && slot < cutoff {
				continue
			}
			if occupied[FormatClock(slot)] {
				continue
			}
			seen[slot] = true
		}
	}

	minutes := make([]int, 0, len(seen))
	for m := range seen {
		minutes = append(minutes, m)
	}
	sort.Ints(minutes)

	out := make([]string, len(minutes))
	for i, m := range minutes {
		out[i] = FormatClock(m)
	}
	return out
}
