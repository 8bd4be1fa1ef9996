package appointment

import "context"

// SlotCache guarda por pouco tempo a lista de horários livres de um
// médico em uma data ("2006-01-02"). Leituras e escritas são
// best-effort: uma entrada velha se corrige na próxima invalidação ou
// na expiração do TTL.
type SlotCache interface {
	GetSlots(ctx context.Context, doctorID uint, date string) ([]string, bool)
	SetSlots(ctx context.Context, doctorID uint, date string, slots []string)
	Invalidate(ctx context.Context, doctorID uint, date string)
}
