package booking

// Session es una visita agendada dentro del borrador. Un servicio de N
// sesiones genera N entradas, cada una con fecha, hora y adicionales propios.
type Session struct {
	Date     string `json:"date"` // "2025-09-01", "" = sin elegir
	Time     string `json:"time"` // "09:30", "" = sin elegir
	AddOnIDs []uint `json:"add_on_ids"`
}

func (s Session) blank() bool {
	return s.Date == "" && s.Time == "" && len(s.AddOnIDs) == 0
}

// Draft es la reserva en construcción. Vive solo en memoria del flujo y se
// descarta o se envía entera en el checkout; nunca se persiste a medias.
// Todas las transiciones devuelven una copia actualizada.
type Draft struct {
	BranchID  uint      `json:"branch_id"`
	BarberID  uint      `json:"barber_id"`
	ServiceID uint      `json:"service_id"` // servicio principal
	Sessions  []Session `json:"sessions"`
	Deposit   bool      `json:"deposit"` // seña del 50%
}

func (d Draft) clone() Draft {
	out := d
	out.Sessions = make([]Session, len(d.Sessions))
	for i, s := range d.Sessions {
		out.Sessions[i] = s
		out.Sessions[i].AddOnIDs = append([]uint(nil), s.AddOnIDs...)
	}
	return out
}

func (d Draft) SelectBranch(id uint) Draft {
	out := d.clone()
	out.BranchID = id
	return out
}

// SelectBarber limpia el servicio y las sesiones: el catálogo de servicios
// depende del barbero elegido.
func (d Draft) SelectBarber(id uint) Draft {
	out := d.clone()
	out.BarberID = id
	out.ServiceID = 0
	out.Sessions = nil
	return out
}

// SelectService fija el servicio principal y crea exactamente svc.Sessions
// entradas vacías. Cambiar de servicio descarta el plan anterior completo.
func (d Draft) SelectService(svc Service) Draft {
	out := d.clone()
	out.ServiceID = svc.ID

	n := svc.Sessions
	if n < 1 {
		n = 1
	}
	out.Sessions = make([]Session, n)
	return out
}

// ClearService deshace la elección de servicio y el plan de sesiones.
func (d Draft) ClearService() Draft {
	out := d.clone()
	out.ServiceID = 0
	out.Sessions = nil
	return out
}

// SelectDate fija la fecha de la sesión idx e invalida su hora: la hora
// anterior puede no existir en el nuevo día.
func (d Draft) SelectDate(idx int, iso string) Draft {
	out := d.clone()
	if idx < 0 || idx >= len(out.Sessions) {
		return out
	}
	out.Sessions[idx].Date = iso
	out.Sessions[idx].Time = ""
	return out
}

func (d Draft) SelectTime(idx int, hhmm string) Draft {
	out := d.clone()
	if idx < 0 || idx >= len(out.Sessions) {
		return out
	}
	out.Sessions[idx].Time = hhmm
	return out
}

// ToggleAddOn agrega o quita un adicional de la sesión idx. El toggle es
// idempotente y no toca a las demás sesiones.
func (d Draft) ToggleAddOn(idx int, serviceID uint) Draft {
	out := d.clone()
	if idx < 0 || idx >= len(out.Sessions) {
		return out
	}

	ids := out.Sessions[idx].AddOnIDs
	for i, id := range ids {
		if id == serviceID {
			out.Sessions[idx].AddOnIDs = append(ids[:i:i], ids[i+1:]...)
			return out
		}
	}
	out.Sessions[idx].AddOnIDs = append(ids, serviceID)
	return out
}

// ClearSession vacía fecha, hora y adicionales de la sesión idx; las
// hermanas quedan intactas.
func (d Draft) ClearSession(idx int) Draft {
	out := d.clone()
	if idx < 0 || idx >= len(out.Sessions) {
		return out
	}
	out.Sessions[idx] = Session{}
	return out
}

func (d Draft) SetDeposit(deposit bool) Draft {
	out := d.clone()
	out.Deposit = deposit
	return out
}

// Complete es el predicado de completitud: sucursal, barbero y servicio
// elegidos, y cada sesión con fecha y hora. Es función pura de los campos,
// no del paso en que esté el asistente.
func (d Draft) Complete() bool {
	if d.BranchID == 0 || d.BarberID == 0 || d.ServiceID == 0 {
		return false
	}
	if len(d.Sessions) == 0 {
		return false
	}
	for _, s := range d.Sessions {
		if s.Date == "" || s.Time == "" {
			return false
		}
	}
	return true
}
