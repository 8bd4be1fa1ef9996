package prescription

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	age := 34
	pdf, err := Render(Data{
		AppointmentID: 42,
		DoctorName:    "Dra. Lima",
		License:       "CRM/SP 123456",
		PatientName:   "João Silva",
		PatientAge:    &age,
		Body:          "Sertralina 50mg, 1 comprimido ao dia por 30 dias.",
		IssuedAt:      time.Date(2026, 3, 2, 15, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
	assert.Greater(t, len(pdf), 1000)
}

func TestRender_NoAge(t *testing.T) {
	pdf, err := Render(Data{
		AppointmentID: 42,
		DoctorName:    "Dra. Lima",
		License:       "CRM/SP 123456",
		PatientName:   "João Silva",
		Body:          "Acompanhamento mensal.",
		IssuedAt:      time.Now(),
	})

	require.NoError(t, err)
	assert.NotEmpty(t, pdf)
}
