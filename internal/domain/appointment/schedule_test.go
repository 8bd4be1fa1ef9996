package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func testSchedule() Schedule {
	return Schedule{
		OpeningHour: 8,
		ClosingHour: 21,
		SlotMinutes: []int{0, 30},
		LeadTime:    2 * time.Hour,
	}
}

func TestSchedule_IsBusinessDay(t *testing.T) {
	s := testSchedule()

	// 2026-03-02 é segunda-feira
	monday := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	saturday := time.Date(2026, 3, 7, 10, 0, 0, 0, time.UTC)
	sunday := time.Date(2026, 3, 8, 10, 0, 0, 0, time.UTC)

	assert.True(t, s.IsBusinessDay(monday))
	assert.True(t, s.IsBusinessDay(monday.AddDate(0, 0, 4))) // sexta
	assert.False(t, s.IsBusinessDay(saturday))
	assert.False(t, s.IsBusinessDay(sunday))
}

func TestSchedule_MeetsLeadTime(t *testing.T) {
	s := testSchedule()
	now := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)

	// Exatamente na antecedência mínima passa.
	assert.True(t, s.MeetsLeadTime(now.Add(2*time.Hour), now))
	assert.True(t, s.MeetsLeadTime(now.Add(3*time.Hour), now))

	// Um minuto antes da antecedência falha.
	assert.False(t, s.MeetsLeadTime(now.Add(2*time.Hour-time.Minute), now))
	assert.False(t, s.MeetsLeadTime(now, now))
}

func TestSchedule_DaySlots(t *testing.T) {
	s := testSchedule()
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	slots := s.DaySlots(day)

	// 13 horas de expediente, 2 horários por hora
	assert.Len(t, slots, 26)

	assert.Equal(t, time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC), slots[0])
	assert.Equal(t, time.Date(2026, 3, 2, 20, 30, 0, 0, time.UTC), slots[len(slots)-1])
}

func TestSchedule_IsGridSlot(t *testing.T) {
	s := testSchedule()
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	at := func(h, m int) time.Time {
		return time.Date(day.Year(), day.Month(), day.Day(), h, m, 0, 0, time.UTC)
	}

	assert.True(t, s.IsGridSlot(at(8, 0)))
	assert.True(t, s.IsGridSlot(at(14, 30)))
	assert.True(t, s.IsGridSlot(at(20, 30)))

	assert.False(t, s.IsGridSlot(at(7, 30)))  // antes de abrir
	assert.False(t, s.IsGridSlot(at(21, 0)))  // depois de fechar
	assert.False(t, s.IsGridSlot(at(10, 15))) // fora da grade
	assert.False(t, s.IsGridSlot(at(10, 0).Add(30*time.Second)))
}
