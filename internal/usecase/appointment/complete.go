package appointment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	domain "github.com/gmpsaude/clinic-scheduler/internal/domain/appointment"
	"github.com/gmpsaude/clinic-scheduler/internal/domain/permission"
	"github.com/gmpsaude/clinic-scheduler/internal/httperr"
	"github.com/gmpsaude/clinic-scheduler/internal/models"
	"github.com/gmpsaude/clinic-scheduler/internal/notify"
	"github.com/gmpsaude/clinic-scheduler/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type VisitInput struct {
	Condition   string
	Description string
}

// ======================================================
// USE CASE
// ======================================================

type Complete struct {
	repo  domain.Repository
	cache domain.SlotCache
	mail  *notify.Dispatcher

	descriptionMax int
	now            func() time.Time
}

func NewComplete(
	repo domain.Repository,
	cache domain.SlotCache,
	mail *notify.Dispatcher,
	descriptionMax int,
	tz string,
) *Complete {
	return &Complete{
		repo:           repo,
		cache:          cache,
		mail:           mail,
		descriptionMax: descriptionMax,
		now:            func() time.Time { return timezone.NowIn(tz) },
	}
}

// Execute registra a consulta e conclui o agendamento em uma única
// transação: Visit criada, status virado e linha de log, tudo junto.
// A notificação sai depois, best-effort.
func (uc *Complete) Execute(
	ctx context.Context,
	actor *models.User,
	appointmentID uint,
	in VisitInput,
) (*models.Visit, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	if !permission.ForRole(actor.Role).CanCompleteAppointment(actor, ap) {
		return nil, httperr.ErrBusiness("permission_denied")
	}

	if !models.ValidCondition(in.Condition) {
		return nil, httperr.ErrBusiness("invalid_condition")
	}
	if in.Description == "" || len(in.Description) > uc.descriptionMax {
		return nil, httperr.ErrBusiness("invalid_description")
	}

	previous := ap.Status
	if err := domain.Complete(ap, uc.now()); err != nil {
		return nil, err
	}

	visit := &models.Visit{
		AppointmentID: ap.ID,
		Condition:     in.Condition,
		Description:   in.Description,
		Protocol:      uuid.NewString(),
	}

	if err := uc.repo.CompleteAppointment(ctx, ap, visit, actor.ID, previous); err != nil {
		return nil, err
	}

	uc.cache.Invalidate(ctx, ap.DoctorID, ap.ScheduledAt.Format("2006-01-02"))

	if patient, err := uc.repo.GetUserByID(ctx, ap.PatientID); err == nil {
		uc.mail.Dispatch(notify.Message{
			To:      patient.Email,
			Subject: "Consulta realizada",
			Body: fmt.Sprintf(
				"Sua consulta de %s foi registrada. Protocolo: %s.",
				ap.ScheduledAt.Format("2006-01-02 15:04"),
				visit.Protocol,
			),
		})
	}

	return visit, nil
}
