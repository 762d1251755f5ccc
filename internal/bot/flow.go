package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/cromados/barberia/internal/booking"
	"github.com/cromados/barberia/internal/domain/schedule"
	"github.com/cromados/barberia/internal/httperr"
	"github.com/cromados/barberia/internal/models"
	"github.com/cromados/barberia/internal/timezone"
	ucCheckout "github.com/cromados/barberia/internal/usecase/checkout"
)

////////////////////////////////////////////////////////
// CALLBACKS
////////////////////////////////////////////////////////

func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	chatID := cb.Message.Chat.ID
	s := b.sessions.Get(chatID)

	// El ack evita el spinner colgado en el cliente.
	if _, err := b.api.Request(tgbotapi.NewCallback(cb.ID, "")); err != nil {
		b.log.Debug().Err(err).Msg("bot: callback ack failed")
	}

	action, arg, _ := strings.Cut(cb.Data, ":")

	switch action {
	case "branch":
		id := parseID(arg)
		s.Wizard.Draft = s.Wizard.Draft.SelectBranch(id)
		s.Wizard, _ = s.Wizard.Next()

	case "barber":
		id := parseID(arg)
		s.Wizard.Draft = s.Wizard.Draft.SelectBarber(id)
		s.Catalog = b.loadCatalog(id)
		s.OpenWeekdays = b.openWeekdays(id)
		s.Browser.Reset()
		s.Wizard, _ = s.Wizard.Next()

	case "service":
		svc, ok := s.Catalog.ByID(parseID(arg))
		if !ok || svc.AddOn {
			b.send(chatID, "Ese servicio ya no está disponible.")
			break
		}
		s.Wizard.Draft = s.Wizard.Draft.SelectService(svc)
		s.Browser.Reset()
		s.Wizard, _ = s.Wizard.Next()

	case "date":
		if idx := s.Wizard.SessionIndex(); idx >= 0 {
			s.Wizard.Draft = s.Wizard.Draft.SelectDate(idx, arg)
		}

	case "time":
		if idx := s.Wizard.SessionIndex(); idx >= 0 {
			s.Wizard.Draft = s.Wizard.Draft.SelectTime(idx, arg)
		}

	case "addon":
		if idx := s.Wizard.SessionIndex(); idx >= 0 {
			s.Wizard.Draft = s.Wizard.Draft.ToggleAddOn(idx, parseID(arg))
		}

	case "mnext":
		s.Browser.NextMonth()

	case "mprev":
		s.Browser.PrevMonth()

	case "next":
		var ready bool
		s.Wizard, ready = s.Wizard.Next()
		if ready {
			b.askDeposit(chatID, s)
			return
		}
		if idx := s.Wizard.SessionIndex(); idx >= 0 {
			// Reingreso al paso de fecha: el avance automático se rearma.
			s.Browser.Reset()
		}

	case "prev":
		s.Wizard = s.Wizard.Prev()

	case "dep":
		s.Wizard.Draft = s.Wizard.Draft.SetDeposit(arg == "1")
		b.askContact(chatID, s)
		return

	default:
		b.log.Debug().Str("data", cb.Data).Msg("bot: unknown callback")
	}

	b.showStep(ctx, chatID, s)
}

func parseID(raw string) uint {
	id, _ := strconv.ParseUint(raw, 10, 64)
	return uint(id)
}

////////////////////////////////////////////////////////
// RENDER DE PASOS
////////////////////////////////////////////////////////

func (b *Bot) showStep(ctx context.Context, chatID int64, s *session) {
	switch s.Wizard.Step {
	case booking.StepBranch:
		b.showBranches(chatID)
	case booking.StepBarber:
		b.showBarbers(chatID, s)
	case booking.StepService:
		b.showServices(chatID, s)
	default:
		b.showSession(ctx, chatID, s)
	}
}

func (b *Bot) showBranches(chatID int64) {
	var branches []models.Branch
	if err := b.db.Order("id ASC").Find(&branches).Error; err != nil || len(branches) == 0 {
		b.send(chatID, "No hay sucursales cargadas por ahora.")
		return
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	for _, br := range branches {
		rows = append(rows, []tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData(br.Name, fmt.Sprintf("branch:%d", br.ID)),
		})
	}

	b.sendMarkup(chatID, "¿En qué sucursal querés atenderte?", tgbotapi.NewInlineKeyboardMarkup(rows...))
}

func (b *Bot) showBarbers(chatID int64, s *session) {
	var barbers []models.Barber
	if err := b.db.
		Where("branch_id = ? AND active = true", s.Wizard.Draft.BranchID).
		Order("id ASC").Find(&barbers).Error; err != nil || len(barbers) == 0 {
		b.send(chatID, "No hay barberos disponibles en esa sucursal.")
		return
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	for _, bb := range barbers {
		rows = append(rows, []tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData(bb.Name, fmt.Sprintf("barber:%d", bb.ID)),
		})
	}
	rows = append(rows, backRow())

	b.sendMarkup(chatID, "¿Con quién?", tgbotapi.NewInlineKeyboardMarkup(rows...))
}

func (b *Bot) showServices(chatID int64, s *session) {
	primaries := s.Catalog.Primaries()
	if len(primaries) == 0 {
		b.send(chatID, "Ese barbero no tiene servicios cargados.")
		return
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	for _, svc := range primaries {
		label := fmt.Sprintf("%s - $%d", svc.Name, svc.Price)
		if svc.Sessions > 1 {
			label = fmt.Sprintf("%s (%d sesiones)", label, svc.Sessions)
		}
		rows = append(rows, []tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData(label, fmt.Sprintf("service:%d", svc.ID)),
		})
	}
	rows = append(rows, backRow())

	b.sendMarkup(chatID, "Elegí el servicio:", tgbotapi.NewInlineKeyboardMarkup(rows...))
}

// showSession renderiza el paso de una sesión: primero la fecha sobre el
// calendario pre-chequeado, después el horario, después los adicionales.
func (b *Bot) showSession(ctx context.Context, chatID int64, s *session) {
	idx := s.Wizard.SessionIndex()
	if idx < 0 {
		b.send(chatID, "Algo salió mal, mandá /reservar para empezar de nuevo.")
		return
	}

	sess := s.Wizard.Draft.Sessions[idx]
	title := fmt.Sprintf("Sesión %d de %d", idx+1, len(s.Wizard.Draft.Sessions))

	switch {
	case sess.Date == "":
		b.showCalendar(ctx, chatID, s, title)
	case sess.Time == "":
		b.showTimes(ctx, chatID, s, title, sess.Date)
	default:
		b.showAddOns(chatID, s, title, idx)
	}
}

func (b *Bot) showCalendar(ctx context.Context, chatID int64, s *session, title string) {
	today := timezone.Now()
	s.EligibleDays = s.Browser.Load(ctx, b.slots, s.Wizard.Draft.BarberID, s.OpenWeekdays, today)

	year, month := schedule.MonthAt(today, s.Browser.Offset)
	label := schedule.MonthLabel(year, month)

	if len(s.EligibleDays) == 0 {
		b.sendMarkup(chatID,
			fmt.Sprintf("%s\n%s: sin horarios libres este mes.", title, label),
			tgbotapi.NewInlineKeyboardMarkup(monthNavRow(s), backRow()),
		)
		return
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton
	for _, d := range schedule.MonthDays(year, month, today) {
		if !s.EligibleDays[d.ISO] {
			continue
		}
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(d.Label, "date:"+d.ISO))
		if len(row) == 3 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	rows = append(rows, monthNavRow(s), backRow())

	b.sendMarkup(chatID,
		fmt.Sprintf("%s\nElegí el día (%s):", title, label),
		tgbotapi.NewInlineKeyboardMarkup(rows...),
	)
}

func (b *Bot) showTimes(ctx context.Context, chatID int64, s *session, title, date string) {
	slots := s.Loader.Fetch(ctx, b.slots, s.Wizard.Draft.BarberID, date)
	if len(slots) == 0 {
		b.sendMarkup(chatID,
			fmt.Sprintf("%s\nEse día se quedó sin horarios, elegí otro.", title),
			tgbotapi.NewInlineKeyboardMarkup(backRow()),
		)
		return
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton
	for _, t := range slots {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(t, "time:"+t))
		if len(row) == 4 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	rows = append(rows, backRow())

	b.sendMarkup(chatID,
		fmt.Sprintf("%s\nHorarios para el %s:", title, date),
		tgbotapi.NewInlineKeyboardMarkup(rows...),
	)
}

func (b *Bot) showAddOns(chatID int64, s *session, title string, idx int) {
	addOns := s.Catalog.AddOns()
	sess := s.Wizard.Draft.Sessions[idx]

	chosen := make(map[uint]bool, len(sess.AddOnIDs))
	for _, id := range sess.AddOnIDs {
		chosen[id] = true
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	for _, svc := range addOns {
		mark := "▫️"
		if chosen[svc.ID] {
			mark = "✅"
		}
		rows = append(rows, []tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("%s %s (+$%d)", mark, svc.Name, svc.Price),
				fmt.Sprintf("addon:%d", svc.ID),
			),
		})
	}
	rows = append(rows, []tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardButtonData("Continuar ➡️", "next"),
	})
	rows = append(rows, backRow())

	text := fmt.Sprintf("%s: %s a las %s.", title, sess.Date, sess.Time)
	if len(addOns) > 0 {
		text += "\n¿Querés sumar algún adicional?"
	}

	b.sendMarkup(chatID, text, tgbotapi.NewInlineKeyboardMarkup(rows...))
}

func monthNavRow(s *session) []tgbotapi.InlineKeyboardButton {
	var row []tgbotapi.InlineKeyboardButton
	if s.Browser.Offset > 0 {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData("⬅️ Mes anterior", "mprev"))
	}
	row = append(row, tgbotapi.NewInlineKeyboardButtonData("Mes siguiente ➡️", "mnext"))
	return row
}

func backRow() []tgbotapi.InlineKeyboardButton {
	return []tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardButtonData("⬅️ Volver", "prev"),
	}
}

////////////////////////////////////////////////////////
// CONFIRMACIÓN Y PAGO
////////////////////////////////////////////////////////

func (b *Bot) askDeposit(chatID int64, s *session) {
	if !s.Wizard.Confirmable() {
		b.showStep(context.Background(), chatID, s)
		return
	}

	total := booking.Total(s.Wizard.Draft, s.Catalog)
	half := booking.PayNow(total, true)

	text := fmt.Sprintf(
		"Total: $%d\n¿Cómo querés pagar?\n• Todo online: $%d\n• Seña del 50%%: $%d ahora y $%d en la barbería.",
		total, total, half, total-half,
	)

	markup := tgbotapi.NewInlineKeyboardMarkup(
		[]tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData(fmt.Sprintf("Pagar todo ($%d)", total), "dep:0"),
			tgbotapi.NewInlineKeyboardButtonData(fmt.Sprintf("Señar ($%d)", half), "dep:1"),
		},
	)
	b.sendMarkup(chatID, text, markup)
}

func (b *Bot) askContact(chatID int64, s *session) {
	s.Asking = askName
	b.send(chatID, "Ya casi. ¿Tu nombre completo?")
}

func (b *Bot) confirmAndPay(ctx context.Context, chatID int64, s *session) {
	payload, err := booking.BuildCheckout(s.Wizard.Draft, s.Customer)
	if err != nil {
		b.send(chatID, "Faltan datos de la reserva, mandá /reservar para empezar de nuevo.")
		return
	}

	in := ucCheckout.CreateCheckoutInput{
		BranchID:      payload.BranchID,
		BarberID:      payload.BarberID,
		ServiceID:     payload.ServiceID,
		CustomerName:  payload.CustomerName,
		CustomerPhone: payload.CustomerPhone,
		CustomerAge:   payload.CustomerAge,
		Deposit:       payload.Deposit,
	}
	for _, sess := range payload.Sessions {
		in.Sessions = append(in.Sessions, ucCheckout.SessionInput{
			Date:     sess.Date,
			Time:     sess.Time,
			AddOnIDs: sess.AddOnIDs,
		})
	}

	out, err := b.checkout.Execute(ctx, in)
	if err != nil {
		if httperr.IsBusiness(err, "slot_taken") {
			b.send(chatID, "Uy, alguien tomó ese horario recién. Elegí otro con /reservar.")
		} else {
			b.send(chatID, "No pudimos iniciar el pago, probá de nuevo en un rato.")
		}
		return
	}

	b.send(chatID, fmt.Sprintf(
		"¡Listo %s! Total $%d, a pagar ahora $%d.\nCompletá el pago acá:\n%s\n\nEl turno queda confirmado al acreditarse el pago.",
		s.Customer.Name, out.Total, out.PayNow, out.InitPoint,
	))

	b.sessions.Drop(chatID)
}
