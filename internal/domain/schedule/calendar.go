package schedule

import (
	"fmt"
	"time"
)

// Day es un día candidato del calendario de reservas.
type Day struct {
	ISO     string // "2025-09-01"
	Label   string // "lun 01 sep"
	Weekday int    // 1=Lunes .. 7=Domingo
}

var shortWeekdays = [8]string{"", "lun", "mar", "mié", "jue", "vie", "sáb", "dom"}

var shortMonths = [13]string{
	"", "ene", "feb", "mar", "abr", "may", "jun",
	"jul", "ago", "sep", "oct", "nov", "dic",
}

// MonthDays devuelve los días del mes indicado que no quedaron en el pasado:
// excluye fechas anteriores a hoy e incluye el día de hoy. Es una función
// pura; con los mismos argumentos produce siempre la misma secuencia.
func MonthDays(year int, month time.Month, today time.Time) []Day {
	loc := today.Location()
	midnight := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, loc)

	var out []Day
	for d := time.Date(year, month, 1, 0, 0, 0, 0, loc); d.Month() == month; d = d.AddDate(0, 0, 1) {
		if d.Before(midnight) {
			continue
		}
		wd := NormalizeWeekday(d.Weekday())
		out = append(out, Day{
			ISO:     d.Format("2006-01-02"),
			Label:   fmt.Sprintf("%s %02d %s", shortWeekdays[wd], d.Day(), shortMonths[int(d.Month())]),
			Weekday: wd,
		})
	}
	return out
}

// MonthAt aplica un offset de meses sobre hoy y devuelve (año, mes).
func MonthAt(today time.Time, offset int) (int, time.Month) {
	base := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
	base = base.AddDate(0, offset, 0)
	return base.Year(), base.Month()
}

// MonthLabel arma la etiqueta "septiembre 2025" del mes visible.
func MonthLabel(year int, month time.Month) string {
	names := [13]string{"", "enero", "febrero", "marzo", "abril", "mayo", "junio",
		"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre"}
	return fmt.Sprintf("%s %d", names[int(month)], year)
}
