package permission

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/gmpsaude/clinic-scheduler/internal/domain/appointment"
	"github.com/gmpsaude/clinic-scheduler/internal/httperr"
	"github.com/gmpsaude/clinic-scheduler/internal/models"
)

var (
	patient = &models.User{ID: 1, Role: models.RolePatient}
	doctor  = &models.User{ID: 2, Role: models.RoleDoctor}
	admin   = &models.User{ID: 3, Role: models.RoleAdmin}
)

func apFor(patientID, doctorID uint, status appointment.Status) *models.Appointment {
	return &models.Appointment{
		ID:          1,
		PatientID:   patientID,
		DoctorID:    doctorID,
		ScheduledAt: time.Now().Add(24 * time.Hour),
		Status:      string(status),
	}
}

func TestForRole_UnknownRoleDeniesAll(t *testing.T) {
	p := ForRole("superuser")

	ap := apFor(1, 2, appointment.StatusScheduled)

	assert.False(t, p.CanViewAppointment(patient, ap))
	assert.False(t, p.CanCancelAppointment(patient, ap))
	assert.True(t, httperr.IsBusiness(p.CanBookFor(patient, 0), "permission_denied"))

	assert.True(t, p.AppointmentScope(patient).Denied)
	assert.True(t, p.VisitScope(patient).Denied)
}

func TestPatientPolicy(t *testing.T) {
	p := ForRole(models.RolePatient)

	own := apFor(patient.ID, doctor.ID, appointment.StatusScheduled)
	other := apFor(99, doctor.ID, appointment.StatusScheduled)

	assert.True(t, p.CanViewAppointment(patient, own))
	assert.False(t, p.CanViewAppointment(patient, other))

	assert.True(t, p.CanCancelAppointment(patient, own))
	assert.False(t, p.CanCancelAppointment(patient, other))

	assert.False(t, p.CanCompleteAppointment(patient, own))

	// Marca só para si; campo paciente alheio é recusado.
	assert.NoError(t, p.CanBookFor(patient, 0))
	assert.NoError(t, p.CanBookFor(patient, patient.ID))
	assert.True(t, httperr.IsBusiness(p.CanBookFor(patient, 99), "permission_denied"))

	// Registro clínico só visível depois da consulta realizada.
	assert.False(t, p.CanViewVisit(patient, own))
	done := apFor(patient.ID, doctor.ID, appointment.StatusCompleted)
	assert.True(t, p.CanViewVisit(patient, done))

	assert.True(t, p.CanViewUser(patient, patient))
	assert.False(t, p.CanViewUser(patient, doctor))
	assert.False(t, p.CanAssignRole(patient))

	// Recortes de listagem: só o que é seu, e registro clínico apenas
	// de consulta realizada.
	assert.Equal(t, ListScope{PatientID: patient.ID}, p.AppointmentScope(patient))
	assert.Equal(t, ListScope{PatientID: patient.ID, CompletedOnly: true}, p.VisitScope(patient))
}

func TestDoctorPolicy(t *testing.T) {
	p := ForRole(models.RoleDoctor)

	assigned := apFor(patient.ID, doctor.ID, appointment.StatusScheduled)
	other := apFor(patient.ID, 99, appointment.StatusScheduled)

	assert.True(t, p.CanViewAppointment(doctor, assigned))
	assert.False(t, p.CanViewAppointment(doctor, other))

	assert.True(t, p.CanCompleteAppointment(doctor, assigned))
	assert.False(t, p.CanCompleteAppointment(doctor, other))

	assert.True(t, httperr.IsBusiness(p.CanBookFor(doctor, 1), "doctor_cannot_book"))

	assert.True(t, p.CanViewVisit(doctor, assigned))
	assert.False(t, p.CanViewVisit(doctor, other))

	assert.False(t, p.CanAssignRole(doctor))

	assert.Equal(t, ListScope{DoctorID: doctor.ID}, p.AppointmentScope(doctor))
	assert.Equal(t, ListScope{DoctorID: doctor.ID}, p.VisitScope(doctor))
}

func TestAdminPolicy(t *testing.T) {
	p := ForRole(models.RoleAdmin)

	ap := apFor(patient.ID, doctor.ID, appointment.StatusScheduled)

	assert.True(t, p.CanViewAppointment(admin, ap))
	assert.True(t, p.CanCancelAppointment(admin, ap))
	assert.True(t, p.CanDeleteAppointment(admin, ap))
	assert.True(t, p.CanViewVisit(admin, ap))
	assert.True(t, p.CanViewUser(admin, patient))
	assert.True(t, p.CanEditUser(admin, patient))
	assert.True(t, p.CanAssignRole(admin))

	// Nem o admin registra consulta: isso é ato do médico designado.
	assert.False(t, p.CanCompleteAppointment(admin, ap))

	// Admin marca em nome de alguém; sem paciente não há o que marcar.
	assert.NoError(t, p.CanBookFor(admin, patient.ID))
	assert.True(t, httperr.IsBusiness(p.CanBookFor(admin, 0), "select_patient"))

	assert.Equal(t, ListScope{All: true}, p.AppointmentScope(admin))
	assert.Equal(t, ListScope{All: true}, p.VisitScope(admin))
}
