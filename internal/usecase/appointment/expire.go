package appointment

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	domain "github.com/gmpsaude/clinic-scheduler/internal/domain/appointment"
	"github.com/gmpsaude/clinic-scheduler/internal/timezone"
)

type Expire struct {
	repo  domain.Repository
	cache domain.SlotCache

	grace time.Duration
	now   func() time.Time
}

func NewExpire(repo domain.Repository, cache domain.SlotCache, grace time.Duration, tz string) *Expire {
	return &Expire{
		repo:  repo,
		cache: cache,
		grace: grace,
		now:   func() time.Time { return timezone.NowIn(tz) },
	}
}

// Execute vira para no_show toda consulta marcada que passou do prazo
// de tolerância. Cada agendamento é sua própria transação: uma linha
// com problema não derruba a varredura.
func (uc *Expire) Execute(ctx context.Context) (int, error) {

	cutoff := uc.now().Add(-uc.grace)

	expired, err := uc.repo.ListExpiredScheduled(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	updated := 0
	for i := range expired {
		ap := &expired[i]

		previous := ap.Status
		if err := domain.Expire(ap); err != nil {
			continue
		}

		if err := uc.repo.ExpireAppointment(ctx, ap, previous); err != nil {
			logrus.WithError(err).WithField("appointment_id", ap.ID).
				Warn("failed to expire appointment")
			continue
		}

		uc.cache.Invalidate(ctx, ap.DoctorID, ap.ScheduledAt.Format("2006-01-02"))
		updated++
	}

	return updated, nil
}
