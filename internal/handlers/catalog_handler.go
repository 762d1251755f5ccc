package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cromados/barberia/internal/audit"
	"github.com/cromados/barberia/internal/httperr"
	"github.com/cromados/barberia/internal/httpresp"
	"github.com/cromados/barberia/internal/models"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

// CatalogHandler administra sucursales, barberos y servicios.
type CatalogHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewCatalogHandler(db *gorm.DB, dispatcher *audit.Dispatcher) *CatalogHandler {
	return &CatalogHandler{db: db, audit: dispatcher}
}

func (h *CatalogHandler) dispatch(c *gin.Context, action, entity string, entityID uint) {
	uid := adminID(c)
	h.audit.Dispatch(audit.Entry{
		UserID:   &uid,
		Action:   action,
		Entity:   entity,
		EntityID: entityID,
	})
}

////////////////////////////////////////////////////////
// SUCURSALES
////////////////////////////////////////////////////////

type branchRequest struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

func (h *CatalogHandler) CreateBranch(c *gin.Context) {
	var req branchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	branch := models.Branch{
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
	}
	if err := h.db.Create(&branch).Error; err != nil {
		httperr.Internal(c, "failed_to_create_branch", "Error al crear la sucursal.")
		return
	}

	h.dispatch(c, "branch_created", "branch", branch.ID)
	httpresp.Created(c, branch)
}

func (h *CatalogHandler) UpdateBranch(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var branch models.Branch
	if err := h.db.First(&branch, id).Error; err != nil {
		httperr.NotFound(c, "branch_not_found", "Sucursal no encontrada.")
		return
	}

	var req branchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	branch.Name = req.Name
	branch.Address = req.Address
	branch.Phone = req.Phone

	if err := h.db.Save(&branch).Error; err != nil {
		httperr.Internal(c, "failed_to_update_branch", "Error al actualizar la sucursal.")
		return
	}

	h.dispatch(c, "branch_updated", "branch", branch.ID)
	httpresp.OK(c, branch)
}

////////////////////////////////////////////////////////
// BARBEROS
////////////////////////////////////////////////////////

type barberRequest struct {
	BranchID       uint   `json:"branch_id" binding:"required"`
	Name           string `json:"name" binding:"required"`
	InstagramURL   string `json:"instagram_url"`
	TelegramChatID int64  `json:"telegram_chat_id"`
	Active         *bool  `json:"active"`
}

func (h *CatalogHandler) CreateBarber(c *gin.Context) {
	var req barberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	var branch models.Branch
	if err := h.db.First(&branch, req.BranchID).Error; err != nil {
		httperr.BadRequest(c, "branch_not_found", "Sucursal inválida.")
		return
	}

	barber := models.Barber{
		BranchID:       req.BranchID,
		Name:           req.Name,
		InstagramURL:   req.InstagramURL,
		TelegramChatID: req.TelegramChatID,
		Active:         true,
	}
	if req.Active != nil {
		barber.Active = *req.Active
	}

	if err := h.db.Create(&barber).Error; err != nil {
		httperr.Internal(c, "failed_to_create_barber", "Error al crear el barbero.")
		return
	}

	h.dispatch(c, "barber_created", "barber", barber.ID)
	httpresp.Created(c, barber)
}

func (h *CatalogHandler) UpdateBarber(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var barber models.Barber
	if err := h.db.First(&barber, id).Error; err != nil {
		httperr.NotFound(c, "barber_not_found", "Barbero no encontrado.")
		return
	}

	var req barberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	barber.BranchID = req.BranchID
	barber.Name = req.Name
	barber.InstagramURL = req.InstagramURL
	barber.TelegramChatID = req.TelegramChatID
	if req.Active != nil {
		barber.Active = *req.Active
	}

	if err := h.db.Save(&barber).Error; err != nil {
		httperr.Internal(c, "failed_to_update_barber", "Error al actualizar el barbero.")
		return
	}

	h.dispatch(c, "barber_updated", "barber", barber.ID)
	httpresp.OK(c, barber)
}

////////////////////////////////////////////////////////
// SERVICIOS
////////////////////////////////////////////////////////

type serviceRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Price       int    `json:"price" binding:"required,min=1"`
	DurationMin int    `json:"duration_min" binding:"required,min=1"`
	Sessions    int    `json:"sessions"`
	AddOn       bool   `json:"add_on"`
	Active      *bool  `json:"active"`

	// IDs de barberos habilitados. Vacío = todos.
	BarberIDs []uint `json:"barber_ids"`
}

func (h *CatalogHandler) CreateService(c *gin.Context) {
	var req serviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	sessions := req.Sessions
	if sessions < 1 {
		sessions = 1
	}

	service := models.Service{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		DurationMin: req.DurationMin,
		Sessions:    sessions,
		AddOn:       req.AddOn,
		Active:      true,
	}
	if req.Active != nil {
		service.Active = *req.Active
	}

	if err := h.db.Create(&service).Error; err != nil {
		httperr.Internal(c, "failed_to_create_service", "Error al crear el servicio.")
		return
	}

	if err := h.replaceEnabledBarbers(&service, req.BarberIDs); err != nil {
		httperr.Internal(c, "failed_to_link_barbers", "Error al vincular barberos.")
		return
	}

	h.dispatch(c, "service_created", "service", service.ID)
	httpresp.Created(c, service)
}

func (h *CatalogHandler) UpdateService(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var service models.Service
	if err := h.db.First(&service, id).Error; err != nil {
		httperr.NotFound(c, "service_not_found", "Servicio no encontrado.")
		return
	}

	var req serviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Datos inválidos.")
		return
	}

	service.Name = req.Name
	service.Description = req.Description
	service.Price = req.Price
	service.DurationMin = req.DurationMin
	if req.Sessions >= 1 {
		service.Sessions = req.Sessions
	}
	service.AddOn = req.AddOn
	if req.Active != nil {
		service.Active = *req.Active
	}

	if err := h.db.Save(&service).Error; err != nil {
		httperr.Internal(c, "failed_to_update_service", "Error al actualizar el servicio.")
		return
	}

	if err := h.replaceEnabledBarbers(&service, req.BarberIDs); err != nil {
		httperr.Internal(c, "failed_to_link_barbers", "Error al vincular barberos.")
		return
	}

	h.dispatch(c, "service_updated", "service", service.ID)
	httpresp.OK(c, service)
}

func (h *CatalogHandler) replaceEnabledBarbers(service *models.Service, ids []uint) error {
	if ids == nil {
		return nil
	}

	var barbers []models.Barber
	if len(ids) > 0 {
		if err := h.db.Find(&barbers, ids).Error; err != nil {
			return err
		}
	}
	return h.db.Model(service).Association("EnabledBarbers").Replace(barbers)
}
