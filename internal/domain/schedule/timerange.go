package schedule

// TimeRange es una franja de atención dentro de un día. Las horas de un día
// se modelan como lista ordenada de franjas disjuntas (0, 1 o 2 hoy, pero
// sin límite fijo) en lugar de campos mañana/tarde separados.
type TimeRange struct {
	Start string `json:"start"` // "09:00"
	End   string `json:"end"`   // "18:00", la hora de fin admite reserva
}

func (r TimeRange) Valid() bool {
	s := ParseClock(r.Start)
	e := ParseClock(r.End)
	return s >= 0 && e >= 0 && s <= e
}
