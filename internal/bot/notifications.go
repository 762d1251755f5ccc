package bot

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cromados/barberia/internal/models"
)

////////////////////////////////////////////////////////
// AVISOS AL BARBERO Y AL DUEÑO
////////////////////////////////////////////////////////

// NotifyNewBookings avisa al barbero (y al dueño si está configurado)
// cuando la web confirma un pago. Los errores se registran y se descartan:
// el turno ya está creado, el aviso es cortesía.
func (b *Bot) NotifyNewBookings(bookings []models.Booking) {
	if len(bookings) == 0 {
		return
	}

	msg := formatNewBookings(bookings)

	if chatID := b.barberChatID(bookings[0].BarberID); chatID != 0 {
		b.send(chatID, msg)
	}
	if b.adminChat != 0 {
		b.send(b.adminChat, "🔔 Nuevo turno reservado:\n\n"+msg)
	}
}

// SendReminder manda el aviso de un turno próximo al chat del barbero, con
// copia al dueño. Devuelve error si no hay ningún chat configurado, para
// que el barrido no lo marque como avisado.
func (b *Bot) SendReminder(bk models.Booking) error {
	msg := formatReminder(bk)

	sent := false
	if chatID := b.barberChatID(bk.BarberID); chatID != 0 {
		b.send(chatID, msg)
		sent = true
	}
	if b.adminChat != 0 {
		b.send(b.adminChat, msg)
		sent = true
	}

	if !sent {
		return errors.New("sin chat de avisos configurado")
	}
	return nil
}

func (b *Bot) barberChatID(barberID uint) int64 {
	var barber models.Barber
	if err := b.db.First(&barber, barberID).Error; err != nil {
		b.log.Warn().Err(err).Uint("barber_id", barberID).
			Msg("bot: barbero sin cargar para el aviso")
		return 0
	}
	return barber.TelegramChatID
}

func formatNewBookings(bookings []models.Booking) string {
	first := bookings[0]

	var sb strings.Builder
	if len(bookings) > 1 {
		fmt.Fprintf(&sb, "💈 %d sesiones nuevas\n", len(bookings))
	} else {
		sb.WriteString("💈 Turno nuevo\n")
	}

	for _, bk := range bookings {
		fmt.Fprintf(&sb, "📅 %s a las %s\n", bk.Date, bk.Time)
	}

	fmt.Fprintf(&sb, "👤 %s (%s)", first.CustomerName, first.CustomerPhone)
	if first.AddOns != "" {
		fmt.Fprintf(&sb, "\n➕ %s", first.AddOns)
	}
	if first.Deposit {
		fmt.Fprintf(&sb, "\n💵 Seña $%d, restan $%d en el local", first.AmountPaid, first.AmountCash)
	}
	return sb.String()
}

func formatReminder(bk models.Booking) string {
	return fmt.Sprintf(
		"⏰ Recordatorio: turno el %s a las %s\n👤 %s (%s)",
		bk.Date, bk.Time, bk.CustomerName, bk.CustomerPhone,
	)
}
