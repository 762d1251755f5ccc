package schedule

import (
	"fmt"
	"time"
)

// ParseClock convierte "HH:mm" (o "HH:mm:ss") a minutos desde medianoche.
// Devuelve -1 si el valor no es parseable.
func ParseClock(hhmm string) int {
	if len(hhmm) > 5 {
		hhmm = hhmm[:5]
	}
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return -1
	}
	return t.Hour()*60 + t.Minute()
}

func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// NormalizeWeekday convierte el weekday de Go (0=Domingo) a la convención
// del dominio: 1=Lunes .. 7=Domingo.
func NormalizeWeekday(wd time.Weekday) int {
	if wd == time.Sunday {
		return 7
	}
	return int(wd)
}
