package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/gmpsaude/clinic-scheduler/internal/httperr"
	"github.com/gmpsaude/clinic-scheduler/internal/models"
)

func scheduledAppointment(at time.Time) *models.Appointment {
	return &models.Appointment{
		ID:          1,
		PatientID:   10,
		DoctorID:    20,
		ScheduledAt: at,
		Status:      string(StatusScheduled),
	}
}

func TestCancel(t *testing.T) {
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	t.Run("cancela consulta futura", func(t *testing.T) {
		ap := scheduledAppointment(now.Add(3 * time.Hour))

		err := Cancel(ap, 10, now)

		assert.NoError(t, err)
		assert.Equal(t, string(StatusCancelled), ap.Status)
		assert.Equal(t, uint(10), *ap.CancelledByID)
		assert.Equal(t, now, *ap.CancelledAt)
	})

	t.Run("recusa consulta passada", func(t *testing.T) {
		ap := scheduledAppointment(now.Add(-time.Hour))

		err := Cancel(ap, 10, now)

		assert.True(t, httperr.IsBusiness(err, "appointment_in_past"))
		assert.Equal(t, string(StatusScheduled), ap.Status)
	})

	t.Run("recusa estado terminal", func(t *testing.T) {
		for _, s := range []Status{StatusCompleted, StatusCancelled, StatusNoShow} {
			ap := scheduledAppointment(now.Add(3 * time.Hour))
			ap.Status = string(s)

			err := Cancel(ap, 10, now)

			assert.True(t, httperr.IsBusiness(err, "invalid_state"), "status %s", s)
		}
	})
}

func TestComplete(t *testing.T) {
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	ap := scheduledAppointment(now.Add(-time.Hour))
	err := Complete(ap, now)

	assert.NoError(t, err)
	assert.Equal(t, string(StatusCompleted), ap.Status)
	assert.Equal(t, now, *ap.CompletedAt)

	// Segunda conclusão falha: estado já é terminal.
	err = Complete(ap, now)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
}

func TestExpire(t *testing.T) {
	ap := scheduledAppointment(time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC))

	assert.NoError(t, Expire(ap))
	assert.Equal(t, string(StatusNoShow), ap.Status)

	// no_show é terminal: nada mais transita.
	assert.True(t, httperr.IsBusiness(Expire(ap), "invalid_state"))
}

func TestCanDelete(t *testing.T) {
	ap := scheduledAppointment(time.Now())

	assert.NoError(t, CanDelete(ap))

	ap.Status = string(StatusCancelled)
	assert.NoError(t, CanDelete(ap))

	ap.Status = string(StatusCompleted)
	assert.True(t, httperr.IsBusiness(CanDelete(ap), "finalized_cannot_delete"))

	ap.Status = string(StatusNoShow)
	assert.True(t, httperr.IsBusiness(CanDelete(ap), "finalized_cannot_delete"))
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, IsTerminal(StatusScheduled))
	assert.True(t, IsTerminal(StatusCompleted))
	assert.True(t, IsTerminal(StatusCancelled))
	assert.True(t, IsTerminal(StatusNoShow))
}
