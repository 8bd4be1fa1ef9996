package permission

import (
	"github.com/gmpsaude/clinic-scheduler/internal/domain/appointment"
	"github.com/gmpsaude/clinic-scheduler/internal/httperr"
	"github.com/gmpsaude/clinic-scheduler/internal/models"
)

// ListScope descreve o recorte de listagem de um papel. Os handlers
// só aplicam o recorte na consulta; a decisão de quem enxerga o quê
// fica inteira na estratégia.
type ListScope struct {
	PatientID uint // restringe ao paciente, quando != 0
	DoctorID  uint // restringe ao médico, quando != 0
	All       bool // sem restrição de dono (admin)

	// Paciente só enxerga registro clínico de consulta realizada.
	CompletedOnly bool

	Denied bool
}

// Policy é o contrato único de autorização, especializado por papel.
// Os handlers resolvem a estratégia uma vez por request com ForRole e
// nunca ramificam em role diretamente.
type Policy interface {
	// Agendamentos
	CanViewAppointment(actor *models.User, ap *models.Appointment) bool
	CanBookFor(actor *models.User, patientID uint) error
	CanCancelAppointment(actor *models.User, ap *models.Appointment) bool
	CanCompleteAppointment(actor *models.User, ap *models.Appointment) bool
	CanDeleteAppointment(actor *models.User, ap *models.Appointment) bool
	AppointmentScope(actor *models.User) ListScope

	// Consultas (registro clínico)
	CanViewVisit(actor *models.User, ap *models.Appointment) bool
	VisitScope(actor *models.User) ListScope

	// Usuários
	CanViewUser(actor *models.User, target *models.User) bool
	CanEditUser(actor *models.User, target *models.User) bool
	CanAssignRole(actor *models.User) bool
}

var policies = map[string]Policy{
	models.RolePatient: patientPolicy{},
	models.RoleDoctor:  doctorPolicy{},
	models.RoleAdmin:   adminPolicy{},
}

// ForRole devolve a estratégia do papel; papéis desconhecidos recebem
// a política que nega tudo.
func ForRole(role string) Policy {
	if p, ok := policies[role]; ok {
		return p
	}
	return denyAllPolicy{}
}

// ===============================
// Paciente
// ===============================

type patientPolicy struct{}

func (patientPolicy) CanViewAppointment(actor *models.User, ap *models.Appointment) bool {
	return ap.PatientID == actor.ID
}

func (patientPolicy) CanBookFor(actor *models.User, patientID uint) error {
	// Paciente só marca para si; o campo paciente da requisição é
	// ignorado.
	if patientID != 0 && patientID != actor.ID {
		return httperr.ErrBusiness("permission_denied")
	}
	return nil
}

func (patientPolicy) CanCancelAppointment(actor *models.User, ap *models.Appointment) bool {
	return ap.PatientID == actor.ID
}

func (patientPolicy) CanCompleteAppointment(actor *models.User, ap *models.Appointment) bool {
	return false
}

func (patientPolicy) CanDeleteAppointment(actor *models.User, ap *models.Appointment) bool {
	return ap.PatientID == actor.ID
}

func (patientPolicy) AppointmentScope(actor *models.User) ListScope {
	return ListScope{PatientID: actor.ID}
}

func (patientPolicy) CanViewVisit(actor *models.User, ap *models.Appointment) bool {
	// Paciente só enxerga o registro depois da consulta realizada.
	return ap.PatientID == actor.ID && appointment.Status(ap.Status) == appointment.StatusCompleted
}

func (patientPolicy) VisitScope(actor *models.User) ListScope {
	return ListScope{PatientID: actor.ID, CompletedOnly: true}
}

func (patientPolicy) CanViewUser(actor *models.User, target *models.User) bool {
	return target.ID == actor.ID
}

func (patientPolicy) CanEditUser(actor *models.User, target *models.User) bool {
	return target.ID == actor.ID
}

func (patientPolicy) CanAssignRole(actor *models.User) bool { return false }

// ===============================
// Médico
// ===============================

type doctorPolicy struct{}

func (doctorPolicy) CanViewAppointment(actor *models.User, ap *models.Appointment) bool {
	return ap.DoctorID == actor.ID
}

func (doctorPolicy) CanBookFor(actor *models.User, patientID uint) error {
	return httperr.ErrBusiness("doctor_cannot_book")
}

func (doctorPolicy) CanCancelAppointment(actor *models.User, ap *models.Appointment) bool {
	return ap.DoctorID == actor.ID
}

func (doctorPolicy) CanCompleteAppointment(actor *models.User, ap *models.Appointment) bool {
	// Somente o médico designado registra a consulta.
	return ap.DoctorID == actor.ID
}

func (doctorPolicy) CanDeleteAppointment(actor *models.User, ap *models.Appointment) bool {
	return ap.DoctorID == actor.ID
}

func (doctorPolicy) AppointmentScope(actor *models.User) ListScope {
	return ListScope{DoctorID: actor.ID}
}

func (doctorPolicy) CanViewVisit(actor *models.User, ap *models.Appointment) bool {
	return ap.DoctorID == actor.ID
}

func (doctorPolicy) VisitScope(actor *models.User) ListScope {
	return ListScope{DoctorID: actor.ID}
}

func (doctorPolicy) CanViewUser(actor *models.User, target *models.User) bool {
	return target.ID == actor.ID
}

func (doctorPolicy) CanEditUser(actor *models.User, target *models.User) bool {
	return target.ID == actor.ID
}

func (doctorPolicy) CanAssignRole(actor *models.User) bool { return false }

// ===============================
// Super administrador
// ===============================

type adminPolicy struct{}

func (adminPolicy) CanViewAppointment(actor *models.User, ap *models.Appointment) bool {
	return true
}

func (adminPolicy) CanBookFor(actor *models.User, patientID uint) error {
	if patientID == 0 {
		return httperr.ErrBusiness("select_patient")
	}
	return nil
}

func (adminPolicy) CanCancelAppointment(actor *models.User, ap *models.Appointment) bool {
	return true
}

func (adminPolicy) CanCompleteAppointment(actor *models.User, ap *models.Appointment) bool {
	// Nem o super administrador registra consulta de outro médico.
	return false
}

func (adminPolicy) CanDeleteAppointment(actor *models.User, ap *models.Appointment) bool {
	return true
}

func (adminPolicy) AppointmentScope(actor *models.User) ListScope {
	return ListScope{All: true}
}

func (adminPolicy) CanViewVisit(actor *models.User, ap *models.Appointment) bool {
	return true
}

func (adminPolicy) VisitScope(actor *models.User) ListScope {
	return ListScope{All: true}
}

func (adminPolicy) CanViewUser(actor *models.User, target *models.User) bool {
	return true
}

func (adminPolicy) CanEditUser(actor *models.User, target *models.User) bool {
	return true
}

func (adminPolicy) CanAssignRole(actor *models.User) bool { return true }

// ===============================
// Papel desconhecido
// ===============================

type denyAllPolicy struct{}

func (denyAllPolicy) CanViewAppointment(*models.User, *models.Appointment) bool { return false }
func (denyAllPolicy) CanBookFor(*models.User, uint) error {
	return httperr.ErrBusiness("permission_denied")
}
func (denyAllPolicy) CanCancelAppointment(*models.User, *models.Appointment) bool   { return false }
func (denyAllPolicy) CanCompleteAppointment(*models.User, *models.Appointment) bool { return false }
func (denyAllPolicy) CanDeleteAppointment(*models.User, *models.Appointment) bool   { return false }
func (denyAllPolicy) AppointmentScope(*models.User) ListScope                       { return ListScope{Denied: true} }
func (denyAllPolicy) CanViewVisit(*models.User, *models.Appointment) bool           { return false }
func (denyAllPolicy) VisitScope(*models.User) ListScope                             { return ListScope{Denied: true} }
func (denyAllPolicy) CanViewUser(*models.User, *models.User) bool                   { return false }
func (denyAllPolicy) CanEditUser(*models.User, *models.User) bool                   { return false }
func (denyAllPolicy) CanAssignRole(*models.User) bool                               { return false }
