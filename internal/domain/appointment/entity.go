package appointment

import (
	"time"

	"github.com/gmpsaude/clinic-scheduler/internal/httperr"
	"github.com/gmpsaude/clinic-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// Cancel exige consulta marcada e ainda no futuro.
func Cancel(ap *models.Appointment, by uint, now time.Time) error {
	if err := CanCancel(Status(ap.Status)); err != nil {
		return err
	}
	if !ap.ScheduledAt.After(now) {
		return httperr.ErrBusiness("appointment_in_past")
	}

	ap.Status = string(StatusCancelled)
	ap.CancelledByID = &by
	ap.CancelledAt = &now
	return nil
}

func Complete(ap *models.Appointment, now time.Time) error {
	if err := CanComplete(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCompleted)
	ap.CompletedAt = &now
	return nil
}

// Expire marca como no_show um agendamento que passou do prazo de
// tolerância sem registro de consulta.
func Expire(ap *models.Appointment) error {
	if err := CanExpire(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusNoShow)
	return nil
}

// CanDelete bloqueia remoção de agendamentos finalizados.
func CanDelete(ap *models.Appointment) error {
	if Status(ap.Status) == StatusCompleted || Status(ap.Status) == StatusNoShow {
		return httperr.ErrBusiness("finalized_cannot_delete")
	}
	return nil
}
