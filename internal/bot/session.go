package bot

import (
	"sync"
	"time"

	"github.com/cromados/barberia/internal/booking"
)

// Etapas de captura de datos de contacto, después del asistente.
const (
	askNothing = ""
	askName    = "name"
	askPhone   = "phone"
	askAge     = "age"
)

const sessionTTL = 30 * time.Minute

// session es el estado de una conversación de reserva. Vive en memoria del
// proceso del bot; si el cliente abandona, el barrido la descarta.
type session struct {
	Wizard  booking.Wizard
	Catalog booking.Catalog

	// Calendario y horarios del paso de sesión activo.
	Browser booking.MonthBrowser
	Loader  booking.SlotLoader

	// Días de semana con atención del barbero elegido.
	OpenWeekdays map[int]bool

	// Fechas del mes visible con al menos un horario libre.
	EligibleDays map[string]bool

	Customer booking.Customer
	Asking   string

	LastActive time.Time
}

type sessionManager struct {
	mu       sync.Mutex
	sessions map[int64]*session
}

func newSessionManager() *sessionManager {
	return &sessionManager{sessions: make(map[int64]*session)}
}

// Get devuelve la sesión del chat, creándola si no existe.
func (m *sessionManager) Get(chatID int64) *session {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[chatID]
	if !ok {
		s = &session{Wizard: booking.NewWizard()}
		m.sessions[chatID] = s
	}
	s.LastActive = time.Now()
	return s
}

func (m *sessionManager) Reset(chatID int64) *session {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := &session{Wizard: booking.NewWizard(), LastActive: time.Now()}
	m.sessions[chatID] = s
	return s
}

func (m *sessionManager) Drop(chatID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, chatID)
}

// Sweep borra las sesiones inactivas. El bot lo corre periódicamente.
func (m *sessionManager) Sweep() {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-sessionTTL)
	for id, s := range m.sessions {
		if s.LastActive.Before(cutoff) {
			delete(m.sessions, id)
		}
	}
}
