package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/cromados/barberia/internal/httperr"
	"github.com/cromados/barberia/internal/httpresp"
	ucagenda "github.com/cromados/barberia/internal/usecase/agenda"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type ScheduleAdminHandler struct {
	list         *ucagenda.ListSchedule
	updateWeekly *ucagenda.UpdateWeekly
	deleteWeekly *ucagenda.DeleteWeekly
	addDay       *ucagenda.AddExceptionalDay
	deleteDay    *ucagenda.DeleteExceptionalDay
}

func NewScheduleAdminHandler(
	list *ucagenda.ListSchedule,
	updateWeekly *ucagenda.UpdateWeekly,
	deleteWeekly *ucagenda.DeleteWeekly,
	addDay *ucagenda.AddExceptionalDay,
	deleteDay *ucagenda.DeleteExceptionalDay,
) *ScheduleAdminHandler {
	return &ScheduleAdminHandler{
		list:         list,
		updateWeekly: updateWeekly,
		deleteWeekly: deleteWeekly,
		addDay:       addDay,
		deleteDay:    deleteDay,
	}
}

////////////////////////////////////////////////////////
// AGENDA SEMANAL
////////////////////////////////////////////////////////

func (h *ScheduleAdminHandler) GetSchedule(c *gin.Context) {
	barberID, ok := parseIDParam(c, "barber_id")
	if !ok {
		return
	}

	out, err := h.list.Execute(c.Request.Context(), barberID)
	if err != nil {
		httperr.Internal(c, "failed_to_list_schedule", "Error al consultar la agenda.")
		return
	}
	httpresp.OK(c, out)
}

type updateWeeklyRequest struct {
	Weekday int                   `json:"weekday" binding:"min=0,max=7"`
	Ranges  []ucagenda.RangeInput `json:"ranges"`
}

// UpdateWeekly reemplaza las franjas de un día. Un conflicto (turnos
// vendidos que quedarían afuera) responde 409 y el panel debe recargar la
// agenda vigente antes de reintentar.
func (h *ScheduleAdminHandler) UpdateWeekly(c *gin.Context) {
	barberID, ok := parseIDParam(c, "barber_id")
	if !ok {
		return
	}

	var req updateWeeklyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	err := h.updateWeekly.Execute(
		c.Request.Context(), adminID(c), barberID, req.Weekday, req.Ranges,
	)
	if err != nil {
		switch httperr.BusinessCode(err) {
		case "schedule_in_use":
			httperr.Conflict(c, "schedule_in_use", "Hay turnos vendidos fuera de las nuevas franjas.")
		case "invalid_weekday", "invalid_range":
			httperr.BadRequest(c, httperr.BusinessCode(err), "Franja inválida.")
		default:
			httperr.Internal(c, "update_failed", "No se pudo actualizar la agenda.")
		}
		return
	}

	httpresp.NoContent(c)
}

func (h *ScheduleAdminHandler) DeleteWeekly(c *gin.Context) {
	barberID, ok := parseIDParam(c, "barber_id")
	if !ok {
		return
	}

	weekday, err := strconv.Atoi(c.Param("weekday"))
	if err != nil {
		httperr.BadRequest(c, "invalid_weekday", "Día inválido.")
		return
	}

	err = h.deleteWeekly.Execute(c.Request.Context(), adminID(c), barberID, weekday)
	if err != nil {
		switch httperr.BusinessCode(err) {
		case "schedule_in_use":
			httperr.Conflict(c, "schedule_in_use", "Hay turnos vendidos ese día.")
		case "invalid_weekday":
			httperr.BadRequest(c, "invalid_weekday", "Día inválido.")
		default:
			httperr.Internal(c, "delete_failed", "No se pudo borrar la agenda.")
		}
		return
	}

	httpresp.NoContent(c)
}

////////////////////////////////////////////////////////
// DÍAS EXCEPCIONALES
////////////////////////////////////////////////////////

type addExceptionalDayRequest struct {
	Date      string `json:"date" binding:"required"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
}

func (h *ScheduleAdminHandler) AddExceptionalDay(c *gin.Context) {
	barberID, ok := parseIDParam(c, "barber_id")
	if !ok {
		return
	}

	var req addExceptionalDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	day, err := h.addDay.Execute(
		c.Request.Context(), adminID(c), barberID,
		req.Date, req.StartTime, req.EndTime,
	)
	if err != nil {
		switch httperr.BusinessCode(err) {
		case "past_date":
			httperr.BadRequest(c, "past_date", "No se pueden cargar fechas pasadas.")
		case "invalid_date", "invalid_range":
			httperr.BadRequest(c, httperr.BusinessCode(err), "Franja inválida.")
		default:
			httperr.Internal(c, "create_failed", "No se pudo cargar el día.")
		}
		return
	}

	httpresp.Created(c, day)
}

func (h *ScheduleAdminHandler) DeleteExceptionalDay(c *gin.Context) {
	barberID, ok := parseIDParam(c, "barber_id")
	if !ok {
		return
	}

	dayID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	err := h.deleteDay.Execute(c.Request.Context(), adminID(c), barberID, dayID)
	if err != nil {
		if httperr.IsBusiness(err, "exceptional_day_not_found") {
			httperr.NotFound(c, "exceptional_day_not_found", "Día no encontrado.")
			return
		}
		httperr.Internal(c, "delete_failed", "No se pudo borrar el día.")
		return
	}

	httpresp.NoContent(c)
}
