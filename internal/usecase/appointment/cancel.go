package appointment

import (
	"context"
	"time"

	domain "github.com/gmpsaude/clinic-scheduler/internal/domain/appointment"
	"github.com/gmpsaude/clinic-scheduler/internal/domain/permission"
	"github.com/gmpsaude/clinic-scheduler/internal/httperr"
	"github.com/gmpsaude/clinic-scheduler/internal/models"
	"github.com/gmpsaude/clinic-scheduler/internal/timezone"
)

type Cancel struct {
	repo  domain.Repository
	cache domain.SlotCache
	now   func() time.Time
}

func NewCancel(repo domain.Repository, cache domain.SlotCache, tz string) *Cancel {
	return &Cancel{
		repo:  repo,
		cache: cache,
		now:   func() time.Time { return timezone.NowIn(tz) },
	}
}

func (uc *Cancel) Execute(
	ctx context.Context,
	actor *models.User,
	appointmentID uint,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	if !permission.ForRole(actor.Role).CanCancelAppointment(actor, ap) {
		return nil, httperr.ErrBusiness("permission_denied")
	}

	previous := ap.Status
	if err := domain.Cancel(ap, actor.ID, uc.now()); err != nil {
		return nil, err
	}

	if err := uc.repo.CancelAppointment(ctx, ap, actor.ID, previous); err != nil {
		return nil, err
	}

	uc.cache.Invalidate(ctx, ap.DoctorID, ap.ScheduledAt.Format("2006-01-02"))

	return ap, nil
}
