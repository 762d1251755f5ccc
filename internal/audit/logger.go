package audit

import (
	"encoding/json"

	"gorm.io/gorm"

	"github.com/cromados/barberia/internal/models"
)

type Logger struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

func (l *Logger) Log(
	userID *uint,
	action string,
	entity string,
	entityID *uint,
	detail any,
) error {

	// Sin base configurada la entrada se descarta.
	if l.db == nil {
		return nil
	}

	var metaJSON string
	if detail != nil {
		if b, err := json.Marshal(detail); err == nil {
			metaJSON = string(b)
		}
	}

	entry := models.AuditLog{
		UserID:   userID,
		Action:   action,
		Entity:   entity,
		EntityID: entityID,
		Metadata: metaJSON,
	}

	return l.db.Create(&entry).Error
}
