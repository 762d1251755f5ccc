package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cromados/barberia/internal/httperr"
	"github.com/cromados/barberia/internal/httpresp"
	"github.com/cromados/barberia/internal/middleware"
	ucreservation "github.com/cromados/barberia/internal/usecase/reservation"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type BookingAdminHandler struct {
	listByDate  *ucreservation.ListBookingsByDate
	listByMonth *ucreservation.ListBookingsByMonth
	cancel      *ucreservation.CancelBooking
	block       *ucreservation.BlockSlot
	unblock     *ucreservation.UnblockSlot
}

func NewBookingAdminHandler(
	listByDate *ucreservation.ListBookingsByDate,
	listByMonth *ucreservation.ListBookingsByMonth,
	cancel *ucreservation.CancelBooking,
	block *ucreservation.BlockSlot,
	unblock *ucreservation.UnblockSlot,
) *BookingAdminHandler {
	return &BookingAdminHandler{
		listByDate:  listByDate,
		listByMonth: listByMonth,
		cancel:      cancel,
		block:       block,
		unblock:     unblock,
	}
}

func adminID(c *gin.Context) uint {
	id, _ := c.Get(middleware.ContextUserID)
	uid, _ := id.(uint)
	return uid
}

////////////////////////////////////////////////////////
// LISTADOS
////////////////////////////////////////////////////////

func (h *BookingAdminHandler) ListByDate(c *gin.Context) {
	dateStr := c.Query("date")
	if _, err := time.Parse("2006-01-02", dateStr); err != nil {
		httperr.BadRequest(c, "invalid_date", "Fecha inválida.")
		return
	}

	var barberID uint
	if raw := c.Query("barber_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			httperr.BadRequest(c, "invalid_barber_id", "Barbero inválido.")
			return
		}
		barberID = uint(id)
	}

	out, err := h.listByDate.Execute(c.Request.Context(), dateStr, barberID)
	if err != nil {
		httperr.Internal(c, "failed_to_list_bookings", "Error al listar turnos.")
		return
	}
	httpresp.List(c, out)
}

func (h *BookingAdminHandler) ListByMonth(c *gin.Context) {
	year, errY := strconv.Atoi(c.Query("year"))
	month, errM := strconv.Atoi(c.Query("month"))
	if errY != nil || errM != nil || month < 1 || month > 12 {
		httperr.BadRequest(c, "invalid_month", "Mes inválido.")
		return
	}

	var barberID uint
	if raw := c.Query("barber_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			httperr.BadRequest(c, "invalid_barber_id", "Barbero inválido.")
			return
		}
		barberID = uint(id)
	}

	out, err := h.listByMonth.Execute(c.Request.Context(), year, month, barberID)
	if err != nil {
		httperr.Internal(c, "failed_to_list_bookings", "Error al listar turnos.")
		return
	}
	httpresp.List(c, out)
}

////////////////////////////////////////////////////////
// CANCELACIÓN
////////////////////////////////////////////////////////

func (h *BookingAdminHandler) Cancel(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	b, err := h.cancel.Execute(c.Request.Context(), adminID(c), id)
	if err != nil {
		switch httperr.BusinessCode(err) {
		case "booking_not_found":
			httperr.NotFound(c, "booking_not_found", "Turno no encontrado.")
		case "invalid_state":
			httperr.BadRequest(c, "invalid_state", "El turno ya está cancelado.")
		default:
			httperr.Internal(c, "cancel_failed", "No se pudo cancelar el turno.")
		}
		return
	}

	httpresp.OK(c, b)
}

////////////////////////////////////////////////////////
// BLOQUEOS MANUALES
////////////////////////////////////////////////////////

type blockSlotRequest struct {
	BarberID uint   `json:"barber_id" binding:"required"`
	Date     string `json:"date" binding:"required"`
	Time     string `json:"time" binding:"required"`
}

func (h *BookingAdminHandler) BlockSlot(c *gin.Context) {
	var req blockSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	block, err := h.block.Execute(
		c.Request.Context(), adminID(c), req.BarberID, req.Date, req.Time,
	)
	if err != nil {
		switch httperr.BusinessCode(err) {
		case "slot_taken":
			httperr.Conflict(c, "slot_taken", "El horario ya está ocupado.")
		case "barber_not_found":
			httperr.BadRequest(c, "barber_not_found", "Barbero inválido.")
		case "invalid_time":
			httperr.BadRequest(c, "invalid_time", "Horario inválido.")
		default:
			httperr.Internal(c, "block_failed", "No se pudo bloquear el horario.")
		}
		return
	}

	httpresp.Created(c, block)
}

func (h *BookingAdminHandler) UnblockSlot(c *gin.Context) {
	var req blockSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	err := h.unblock.Execute(
		c.Request.Context(), adminID(c), req.BarberID, req.Date, req.Time,
	)
	if err != nil {
		httperr.NotFound(c, "block_not_found", "Bloqueo no encontrado.")
		return
	}

	httpresp.NoContent(c)
}
