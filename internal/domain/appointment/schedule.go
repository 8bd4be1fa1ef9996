package appointment

import "time"

// Schedule descreve a grade de atendimento da clínica. É montado a
// partir da configuração e injetado nos use cases; não há estado
// global.
type Schedule struct {
	OpeningHour int
	ClosingHour int
	SlotMinutes []int
	LeadTime    time.Duration
}

// IsBusinessDay: atendimento só de segunda a sexta.
func (s Schedule) IsBusinessDay(t time.Time) bool {
	wd := t.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// MeetsLeadTime aceita o horário exatamente na antecedência mínima
// (slot >= agora + antecedência).
func (s Schedule) MeetsLeadTime(slot, now time.Time) bool {
	return !slot.Before(now.Add(s.LeadTime))
}

// DaySlots gera a grade completa do dia, na localidade da data
// recebida. A última hora de expediente é exclusiva: com fechamento às
// 21 o último horário é 20:30.
func (s Schedule) DaySlots(day time.Time) []time.Time {
	var slots []time.Time
	for h := s.OpeningHour; h < s.ClosingHour; h++ {
		for _, m := range s.SlotMinutes {
			slots = append(slots, time.Date(
				day.Year(), day.Month(), day.Day(),
				h, m, 0, 0,
				day.Location(),
			))
		}
	}
	return slots
}

// IsGridSlot valida se um horário cai exatamente na grade.
func (s Schedule) IsGridSlot(t time.Time) bool {
	if t.Second() != 0 || t.Nanosecond() != 0 {
		return false
	}
	if t.Hour() < s.OpeningHour || t.Hour() >= s.ClosingHour {
		return false
	}
	for _, m := range s.SlotMinutes {
		if t.Minute() == m {
			return true
		}
	}
	return false
}
