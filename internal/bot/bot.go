// Package bot atiende reservas por Telegram. Reusa el mismo flujo paso a
// paso del sitio: borrador inmutable, calendario con pre-chequeo mensual y
// checkout con seña opcional.
package bot

import (
	"context"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/cromados/barberia/internal/booking"
	"github.com/cromados/barberia/internal/models"
	ucCheckout "github.com/cromados/barberia/internal/usecase/checkout"
)

type Bot struct {
	api       *tgbotapi.BotAPI
	db        *gorm.DB
	slots     booking.SlotSource
	checkout  *ucCheckout.CreateCheckout
	sessions  *sessionManager
	adminChat int64
	log       zerolog.Logger
}

func New(
	token string,
	db *gorm.DB,
	slots booking.SlotSource,
	checkout *ucCheckout.CreateCheckout,
	adminChat int64,
	log zerolog.Logger,
) (*Bot, error) {

	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	return &Bot{
		api:       api,
		db:        db,
		slots:     slots,
		checkout:  checkout,
		sessions:  newSessionManager(),
		adminChat: adminChat,
		log:       log,
	}, nil
}

// Run procesa updates hasta que el contexto se cierre.
func (b *Bot) Run(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := b.api.GetUpdatesChan(u)

	sweep := time.NewTicker(5 * time.Minute)
	defer sweep.Stop()

	b.log.Info().Str("bot", b.api.Self.UserName).Msg("telegram bot started")

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return
		case <-sweep.C:
			b.sessions.Sweep()
		case update := <-updates:
			b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil && update.Message.IsCommand():
		b.handleCommand(ctx, update.Message)
	case update.Message != nil:
		b.handleText(ctx, update.Message)
	}
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	switch msg.Command() {
	case "start", "reservar":
		s := b.sessions.Reset(chatID)
		b.showStep(ctx, chatID, s)
	case "cancelar":
		b.sessions.Drop(chatID)
		b.send(chatID, "Reserva descartada. Mandá /reservar para empezar de nuevo.")
	default:
		b.send(chatID, "Comandos: /reservar para sacar turno, /cancelar para descartar.")
	}
}

// handleText captura los datos de contacto al final del flujo.
func (b *Bot) handleText(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	s := b.sessions.Get(chatID)
	text := strings.TrimSpace(msg.Text)

	switch s.Asking {
	case askName:
		if text == "" {
			b.send(chatID, "Decime tu nombre completo.")
			return
		}
		s.Customer.Name = text
		s.Asking = askPhone
		b.send(chatID, "Tu número de celular, sin el código de país (ej: 11 5555 4444):")

	case askPhone:
		if text == "" {
			b.send(chatID, "Necesito un número de contacto.")
			return
		}
		s.Customer.Phone = booking.ComposePhone(booking.ARCountryCode, text)
		s.Asking = askAge
		b.send(chatID, "¿Cuántos años tenés?")

	case askAge:
		age, err := strconv.Atoi(text)
		if err != nil || age <= 0 || age > 120 {
			b.send(chatID, "Edad inválida, probá de nuevo.")
			return
		}
		s.Customer.Age = age
		s.Asking = askNothing
		b.confirmAndPay(ctx, chatID, s)

	default:
		b.send(chatID, "Mandá /reservar para sacar turno.")
	}
}

func (b *Bot) send(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		b.log.Warn().Err(err).Int64("chat_id", chatID).Msg("bot: send failed")
	}
}

func (b *Bot) sendMarkup(chatID int64, text string, markup tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = markup
	if _, err := b.api.Send(msg); err != nil {
		b.log.Warn().Err(err).Int64("chat_id", chatID).Msg("bot: send failed")
	}
}

// loadCatalog arma la vista de catálogo del flujo para el barbero elegido.
func (b *Bot) loadCatalog(barberID uint) booking.Catalog {
	var services []models.Service
	q := b.db.Where("active = true")
	if barberID != 0 {
		q = q.Where(
			"NOT EXISTS (SELECT 1 FROM service_barbers sb WHERE sb.service_id = services.id)"+
				" OR EXISTS (SELECT 1 FROM service_barbers sb WHERE sb.service_id = services.id AND sb.barber_id = ?)",
			barberID,
		)
	}
	if err := q.Order("id ASC").Find(&services).Error; err != nil {
		b.log.Warn().Err(err).Msg("bot: catalog load failed")
		return nil
	}

	cat := make(booking.Catalog, 0, len(services))
	for _, svc := range services {
		cat = append(cat, booking.Service{
			ID:          svc.ID,
			Name:        svc.Name,
			Price:       svc.Price,
			DurationMin: svc.DurationMin,
			Sessions:    svc.Sessions,
			AddOn:       svc.AddOn,
			Description: svc.Description,
		})
	}
	return cat
}

// openWeekdays junta los días de semana con franjas publicadas.
func (b *Bot) openWeekdays(barberID uint) map[int]bool {
	var weekdays []int
	if err := b.db.Model(&models.WeeklySlot{}).
		Where("barber_id = ?", barberID).
		Distinct().
		Pluck("weekday", &weekdays).Error; err != nil {
		b.log.Warn().Err(err).Msg("bot: weekdays load failed")
	}
	return booking.OpenWeekdaySet(weekdays)
}
