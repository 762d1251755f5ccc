package booking

// Pasos del asistente. Los pasos de sesión son dinámicos: el total es
// 3 + N, con N la cantidad de sesiones del servicio principal elegido.
const (
	StepBranch  = 1
	StepBarber  = 2
	StepService = 3
	// StepFirstSession en adelante: una sesión por paso.
	StepFirstSession = 4
)

// Wizard es la posición dentro del flujo más el borrador que lo acompaña.
// Es un valor inmutable: cada transición devuelve el asistente resultante.
type Wizard struct {
	Draft Draft
	Step  int
}

func NewWizard() Wizard {
	return Wizard{Step: StepBranch}
}

// TotalSteps se recalcula con el servicio elegido; sin servicio vale 4
// (el flujo siempre muestra al menos una sesión).
func (w Wizard) TotalSteps() int {
	n := len(w.Draft.Sessions)
	if n < 1 {
		n = 1
	}
	return 3 + n
}

// SessionIndex devuelve el índice de sesión del paso actual, o -1 si el
// paso no es de sesión.
func (w Wizard) SessionIndex() int {
	if w.Step < StepFirstSession || w.Step > w.TotalSteps() {
		return -1
	}
	return w.Step - StepFirstSession
}

// stepReady indica si el paso actual tiene sus campos obligatorios cargados.
func (w Wizard) stepReady() bool {
	switch {
	case w.Step == StepBranch:
		return w.Draft.BranchID != 0
	case w.Step == StepBarber:
		return w.Draft.BarberID != 0
	case w.Step == StepService:
		return w.Draft.ServiceID != 0
	default:
		idx := w.SessionIndex()
		if idx < 0 || idx >= len(w.Draft.Sessions) {
			return false
		}
		s := w.Draft.Sessions[idx]
		return s.Date != "" && s.Time != ""
	}
}

// Next avanza un paso si el actual está completo. Desde el último paso no
// avanza: devuelve ready=true para que el llamador resalte la confirmación.
func (w Wizard) Next() (Wizard, bool) {
	if !w.stepReady() {
		return w, false
	}
	if w.Step >= w.TotalSteps() {
		return w, true
	}
	w.Step++
	return w, false
}

// Prev retrocede un paso y borra lo elegido en el paso que se abandona:
//   - del paso barbero: borra el barbero;
//   - del paso servicio: borra servicio y todas las sesiones (la cantidad
//     de sesiones depende del servicio);
//   - de un paso de sesión: borra solo esa sesión.
func (w Wizard) Prev() Wizard {
	if w.Step <= StepBranch {
		return w
	}

	switch {
	case w.Step == StepBarber:
		w.Draft = w.Draft.SelectBarber(0)
	case w.Step == StepService:
		w.Draft = w.Draft.ClearService()
	default:
		if idx := w.SessionIndex(); idx >= 0 {
			w.Draft = w.Draft.ClearSession(idx)
		}
	}

	w.Step--
	return w
}

// Confirmable indica si puede abrirse el paso de datos del cliente.
func (w Wizard) Confirmable() bool {
	return w.Draft.Complete()
}
