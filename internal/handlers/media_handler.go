package handlers

import (
	"fmt"
	"io"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/cromados/barberia/internal/httperr"
	"github.com/cromados/barberia/internal/httpresp"
	"github.com/cromados/barberia/internal/media"
	"github.com/cromados/barberia/internal/models"
	"github.com/cromados/barberia/internal/storage"
)

const maxPhotoBytes = 8 << 20

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

// MediaHandler recibe fotos de barberos y sucursales, las optimiza a webp
// y las sube al bucket.
type MediaHandler struct {
	db    *gorm.DB
	store *storage.S3Store
}

func NewMediaHandler(db *gorm.DB, store *storage.S3Store) *MediaHandler {
	return &MediaHandler{db: db, store: store}
}

func (h *MediaHandler) UploadBarberPhoto(c *gin.Context) {
	if h.store == nil {
		httperr.Internal(c, "storage_disabled", "Subida de fotos deshabilitada.")
		return
	}

	barberID, ok := parseIDParam(c, "barber_id")
	if !ok {
		return
	}

	var barber models.Barber
	if err := h.db.First(&barber, barberID).Error; err != nil {
		httperr.NotFound(c, "barber_not_found", "Barbero no encontrado.")
		return
	}

	raw, ok := h.readPhoto(c)
	if !ok {
		return
	}

	optimized, err := media.Optimize(raw)
	if err != nil {
		httperr.BadRequest(c, "invalid_image", "La imagen no se pudo procesar.")
		return
	}

	key := fmt.Sprintf("barbers/%d/%d.webp", barberID, time.Now().Unix())
	url, err := h.store.Upload(c.Request.Context(), key, optimized, "image/webp")
	if err != nil {
		httperr.Internal(c, "upload_failed", "No se pudo subir la foto.")
		return
	}

	barber.PhotoURL = url
	if err := h.db.Save(&barber).Error; err != nil {
		httperr.Internal(c, "failed_to_update_barber", "Error al guardar la foto.")
		return
	}

	httpresp.OK(c, gin.H{"photo_url": url})
}

func (h *MediaHandler) UploadBranchPhoto(c *gin.Context) {
	if h.store == nil {
		httperr.Internal(c, "storage_disabled", "Subida de fotos deshabilitada.")
		return
	}

	branchID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var branch models.Branch
	if err := h.db.First(&branch, branchID).Error; err != nil {
		httperr.NotFound(c, "branch_not_found", "Sucursal no encontrada.")
		return
	}

	raw, ok := h.readPhoto(c)
	if !ok {
		return
	}

	optimized, err := media.Optimize(raw)
	if err != nil {
		httperr.BadRequest(c, "invalid_image", "La imagen no se pudo procesar.")
		return
	}

	key := fmt.Sprintf("branches/%d/%d.webp", branchID, time.Now().Unix())
	url, err := h.store.Upload(c.Request.Context(), key, optimized, "image/webp")
	if err != nil {
		httperr.Internal(c, "upload_failed", "No se pudo subir la foto.")
		return
	}

	branch.PhotoURL = url
	if err := h.db.Save(&branch).Error; err != nil {
		httperr.Internal(c, "failed_to_update_branch", "Error al guardar la foto.")
		return
	}

	httpresp.OK(c, gin.H{"photo_url": url})
}

func (h *MediaHandler) readPhoto(c *gin.Context) ([]byte, bool) {
	file, header, err := c.Request.FormFile("photo")
	if err != nil {
		httperr.BadRequest(c, "missing_photo", "Falta el archivo de la foto.")
		return nil, false
	}
	defer file.Close()

	if header.Size > maxPhotoBytes {
		httperr.BadRequest(c, "photo_too_large", "La foto supera el tamaño máximo.")
		return nil, false
	}

	raw, err := io.ReadAll(io.LimitReader(file, maxPhotoBytes+1))
	if err != nil || len(raw) > maxPhotoBytes {
		httperr.BadRequest(c, "photo_too_large", "La foto supera el tamaño máximo.")
		return nil, false
	}

	return raw, true
}
