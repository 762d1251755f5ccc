// Package booking implementa el flujo de reserva paso a paso: el borrador
// con sus sesiones, la máquina de pasos del asistente, el cálculo de precios
// y señas, y la integración con la disponibilidad por día. Todo el estado es
// propio del flujo; nada se persiste hasta el checkout.
package booking

// Service es la vista de catálogo que necesita el flujo de reserva.
type Service struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Price       int    `json:"price"`
	DurationMin int    `json:"duration_min"`
	Sessions    int    `json:"sessions"`
	AddOn       bool   `json:"add_on"`
	Description string `json:"description"`
}

type Catalog []Service

func (c Catalog) ByID(id uint) (Service, bool) {
	for _, s := range c {
		if s.ID == id {
			return s, true
		}
	}
	return Service{}, false
}

// AddOns devuelve los servicios adicionales del catálogo, en orden.
func (c Catalog) AddOns() []Service {
	var out []Service
	for _, s := range c {
		if s.AddOn {
			out = append(out, s)
		}
	}
	return out
}

// Primaries devuelve los servicios principales (no adicionales).
func (c Catalog) Primaries() []Service {
	var out []Service
	for _, s := range c {
		if !s.AddOn {
			out = append(out, s)
		}
	}
	return out
}
