package audit

import (
	"gorm.io/gorm"

	"github.com/gmpsaude/clinic-scheduler/internal/models"
)

// Logger grava linhas de StatusLog. Record recebe o *gorm.DB da
// transação em andamento: a linha de log entra ou sai junto com a
// transição que a originou.
type Logger struct{}

func New() *Logger {
	return &Logger{}
}

func (l *Logger) Record(
	tx *gorm.DB,
	appointmentID uint,
	actorID *uint,
	previousStatus string,
	newStatus string,
) error {

	entry := models.StatusLog{
		AppointmentID:  appointmentID,
		ActorID:        actorID,
		PreviousStatus: previousStatus,
		NewStatus:      newStatus,
	}

	return tx.Create(&entry).Error
}
