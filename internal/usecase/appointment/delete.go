package appointment

import (
	"context"

	domain "github.com/gmpsaude/clinic-scheduler/internal/domain/appointment"
	"github.com/gmpsaude/clinic-scheduler/internal/domain/permission"
	"github.com/gmpsaude/clinic-scheduler/internal/httperr"
	"github.com/gmpsaude/clinic-scheduler/internal/models"
)

type Delete struct {
	repo  domain.Repository
	cache domain.SlotCache
}

func NewDelete(repo domain.Repository, cache domain.SlotCache) *Delete {
	return &Delete{repo: repo, cache: cache}
}

func (uc *Delete) Execute(
	ctx context.Context,
	actor *models.User,
	appointmentID uint,
) error {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return httperr.ErrBusiness("appointment_not_found")
	}

	if !permission.ForRole(actor.Role).CanDeleteAppointment(actor, ap) {
		return httperr.ErrBusiness("permission_denied")
	}

	if err := domain.CanDelete(ap); err != nil {
		return err
	}

	if err := uc.repo.DeleteAppointment(ctx, ap); err != nil {
		return err
	}

	uc.cache.Invalidate(ctx, ap.DoctorID, ap.ScheduledAt.Format("2006-01-02"))

	return nil
}
