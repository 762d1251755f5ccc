package audit

import "github.com/rs/zerolog"

type Entry struct {
	UserID   *uint
	Action   string
	Entity   string
	EntityID uint
	Detail   any
}

type Dispatcher struct {
	logger *Logger
	queue  chan Entry
	log    zerolog.Logger
}

func NewDispatcher(logger *Logger, log zerolog.Logger) *Dispatcher {
	d := &Dispatcher{
		logger: logger,
		queue:  make(chan Entry, 100), // buffer seguro
		log:    log,
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		var entityID *uint
		if ev.EntityID != 0 {
			id := ev.EntityID
			entityID = &id
		}
		if err := d.logger.Log(
			ev.UserID,
			ev.Action,
			ev.Entity,
			entityID,
			ev.Detail,
		); err != nil {
			d.log.Error().Err(err).Str("action", ev.Action).Msg("audit error")
		}
	}
}

func (d *Dispatcher) Dispatch(ev Entry) {
	select {
	case d.queue <- ev:
		// enviado
	default:
		// cola llena, se descarta: la auditoría nunca frena la API
		d.log.Warn().Str("action", ev.Action).Msg("audit queue full, dropping event")
	}
}
