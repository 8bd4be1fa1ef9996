package appointment

import (
	"context"
	"time"

	domain "github.com/gmpsaude/clinic-scheduler/internal/domain/appointment"
	"github.com/gmpsaude/clinic-scheduler/internal/timezone"
)

type GetAvailability struct {
	repo  domain.Repository
	cache domain.SlotCache
	sched domain.Schedule

	tz  string
	now func() time.Time
}

func NewGetAvailability(
	repo domain.Repository,
	cache domain.SlotCache,
	sched domain.Schedule,
	tz string,
) *GetAvailability {
	return &GetAvailability{
		repo:  repo,
		cache: cache,
		sched: sched,
		tz:    tz,
		now:   func() time.Time { return timezone.NowIn(tz) },
	}
}

// Execute devolve os horários livres formatados ("15:04"). Entrada
// faltando ou fim de semana devolvem lista vazia sem consultar o
// banco.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	doctorID uint,
	dateStr string,
) ([]string, error) {

	if doctorID == 0 || dateStr == "" {
		return []string{}, nil
	}

	if cached, ok := uc.cache.GetSlots(ctx, doctorID, dateStr); ok {
		return cached, nil
	}

	loc := timezone.Location(uc.tz)
	day, err := time.ParseInLocation("2006-01-02", dateStr, loc)
	if err != nil {
		return []string{}, nil
	}

	if !uc.sched.IsBusinessDay(day) {
		return []string{}, nil
	}

	now := uc.now()

	grid := uc.sched.DaySlots(day)

	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, loc)
	dayEnd := dayStart.Add(24 * time.Hour)

	booked, err := uc.repo.ListScheduledTimesForDoctorOn(ctx, doctorID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	taken := make(map[int64]bool, len(booked))
	for _, t := range booked {
		taken[t.Unix()] = true
	}

	available := []string{}
	for _, slot := range grid {
		if !uc.sched.MeetsLeadTime(slot, now) {
			continue
		}
		if taken[slot.Unix()] {
			continue
		}
		available = append(available, slot.Format("15:04"))
	}

	uc.cache.SetSlots(ctx, doctorID, dateStr, available)

	return available, nil
}
