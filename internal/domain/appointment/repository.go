package appointment

import (
	"context"
	"time"

	"github.com/gmpsaude/clinic-scheduler/internal/models"
)

type Repository interface {
	// -------- Users --------
	GetUserByID(
		ctx context.Context,
		id uint,
	) (*models.User, error)

	GetDoctorByID(
		ctx context.Context,
		id uint,
	) (*models.User, error)

	GetPatientByID(
		ctx context.Context,
		id uint,
	) (*models.User, error)

	// -------- Appointment (lookup) --------
	GetAppointment(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	CountScheduledForDoctorOn(
		ctx context.Context,
		doctorID uint,
		dayStart time.Time,
		dayEnd time.Time,
	) (int64, error)

	HasFutureScheduled(
		ctx context.Context,
		patientID uint,
		after time.Time,
	) (bool, error)

	SlotTakenByDoctor(
		ctx context.Context,
		doctorID uint,
		at time.Time,
	) (bool, error)

	SlotTakenByPatient(
		ctx context.Context,
		patientID uint,
		at time.Time,
	) (bool, error)

	ListScheduledTimesForDoctorOn(
		ctx context.Context,
		doctorID uint,
		dayStart time.Time,
		dayEnd time.Time,
	) ([]time.Time, error)

	ListExpiredScheduled(
		ctx context.Context,
		before time.Time,
	) ([]models.Appointment, error)

	// -------- Appointment (transactional units) --------
	// Cada método grava a mudança de estado e sua linha de log na
	// mesma transação.
	BookAppointment(
		ctx context.Context,
		ap *models.Appointment,
		actorID uint,
	) error

	CancelAppointment(
		ctx context.Context,
		ap *models.Appointment,
		actorID uint,
		previousStatus string,
	) error

	CompleteAppointment(
		ctx context.Context,
		ap *models.Appointment,
		visit *models.Visit,
		actorID uint,
		previousStatus string,
	) error

	ExpireAppointment(
		ctx context.Context,
		ap *models.Appointment,
		previousStatus string,
	) error

	DeleteAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Visit --------
	GetVisit(
		ctx context.Context,
		id uint,
	) (*models.Visit, error)

	GetVisitByAppointment(
		ctx context.Context,
		appointmentID uint,
	) (*models.Visit, error)

	SaveVisitFile(
		ctx context.Context,
		visit *models.Visit,
	) error

	SavePrescription(
		ctx context.Context,
		visit *models.Visit,
		ap *models.Appointment,
		actorID uint,
	) error
}
