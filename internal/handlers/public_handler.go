package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cromados/barberia/internal/domain/schedule"
	"github.com/cromados/barberia/internal/httperr"
	"github.com/cromados/barberia/internal/httpresp"
	"github.com/cromados/barberia/internal/infra/cache"
	"github.com/cromados/barberia/internal/models"
	"github.com/cromados/barberia/internal/timezone"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

// PublicHandler sirve el catálogo y la disponibilidad que consume el
// asistente de reservas, sin autenticación.
type PublicHandler struct {
	db    *gorm.DB
	slots *cache.AvailabilitySource
}

func NewPublicHandler(db *gorm.DB, slots *cache.AvailabilitySource) *PublicHandler {
	return &PublicHandler{
		db:    db,
		slots: slots,
	}
}

////////////////////////////////////////////////////////
// CATÁLOGO
////////////////////////////////////////////////////////

func (h *PublicHandler) ListBranches(c *gin.Context) {
	var branches []models.Branch
	if err := h.db.Order("id ASC").Find(&branches).Error; err != nil {
		httperr.Internal(c, "failed_to_list_branches", "Error al listar sucursales.")
		return
	}
	httpresp.List(c, branches)
}

func (h *PublicHandler) ListBarbers(c *gin.Context) {
	q := h.db.Where("active = true")

	if branchID := c.Query("branch_id"); branchID != "" {
		id, err := strconv.ParseUint(branchID, 10, 64)
		if err != nil {
			httperr.BadRequest(c, "invalid_branch_id", "Sucursal inválida.")
			return
		}
		q = q.Where("branch_id = ?", id)
	}

	var barbers []models.Barber
	if err := q.Order("id ASC").Find(&barbers).Error; err != nil {
		httperr.Internal(c, "failed_to_list_barbers", "Error al listar barberos.")
		return
	}
	httpresp.List(c, barbers)
}

// ListServices devuelve los servicios activos. Con barber_id filtra por
// los habilitados para ese barbero; sin él, el catálogo completo.
func (h *PublicHandler) ListServices(c *gin.Context) {
	q := h.db.Where("active = true")

	if barberID := c.Query("barber_id"); barberID != "" {
		id, err := strconv.ParseUint(barberID, 10, 64)
		if err != nil {
			httperr.BadRequest(c, "invalid_barber_id", "Barbero inválido.")
			return
		}
		// Un servicio sin barberos habilitados lo ofrecen todos.
		q = q.Where(
			"NOT EXISTS (SELECT 1 FROM service_barbers sb WHERE sb.service_id = services.id)"+
				" OR EXISTS (SELECT 1 FROM service_barbers sb WHERE sb.service_id = services.id AND sb.barber_id = ?)",
			id,
		)
	}

	var services []models.Service
	if err := q.Order("id ASC").Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Error al listar servicios.")
		return
	}
	httpresp.List(c, services)
}

////////////////////////////////////////////////////////
// AGENDA PÚBLICA
////////////////////////////////////////////////////////

// WeeklySchedule expone los días de semana con atención de un barbero,
// para que el asistente arme el calendario sin pedir cada día.
func (h *PublicHandler) WeeklySchedule(c *gin.Context) {
	barberID, ok := parseIDParam(c, "barber_id")
	if !ok {
		return
	}

	var slots []models.WeeklySlot
	if err := h.db.
		Where("barber_id = ?", barberID).
		Order("weekday ASC, start_time ASC").
		Find(&slots).Error; err != nil {
		httperr.Internal(c, "failed_to_list_schedule", "Error al consultar la agenda.")
		return
	}

	httpresp.List(c, slots)
}

func (h *PublicHandler) Availability(c *gin.Context) {
	barberID, ok := parseIDParam(c, "barber_id")
	if !ok {
		return
	}

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Falta la fecha.")
		return
	}
	if _, err := time.Parse("2006-01-02", dateStr); err != nil {
		httperr.BadRequest(c, "invalid_date", "Fecha inválida.")
		return
	}

	slots, err := h.slots.Slots(c.Request.Context(), barberID, dateStr)
	if err != nil {
		httperr.Internal(c, "availability_failed", "Error al calcular horarios.")
		return
	}

	httpresp.OK(c, gin.H{
		"date":  dateStr,
		"slots": slots,
	})
}

// CalendarDays lista los días elegibles de un mes, con el rótulo corto en
// castellano que muestra el selector de fechas.
func (h *PublicHandler) CalendarDays(c *gin.Context) {
	offset := 0
	if raw := c.Query("offset"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			httperr.BadRequest(c, "invalid_offset", "Mes inválido.")
			return
		}
		offset = n
	}

	today := timezone.Now()
	year, month := schedule.MonthAt(today, offset)

	httpresp.OK(c, gin.H{
		"label": schedule.MonthLabel(year, month),
		"days":  schedule.MonthDays(year, month, today),
	})
}

////////////////////////////////////////////////////////
// HELPERS
////////////////////////////////////////////////////////

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	if raw == "" {
		raw = c.Query(name)
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_"+name, "Identificador inválido.")
		return 0, false
	}
	return uint(id), true
}
