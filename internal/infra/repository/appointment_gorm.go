package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/gmpsaude/clinic-scheduler/internal/audit"
	domain "github.com/gmpsaude/clinic-scheduler/internal/domain/appointment"
	"github.com/gmpsaude/clinic-scheduler/internal/httperr"
	"github.com/gmpsaude/clinic-scheduler/internal/models"
)

type AppointmentGormRepository struct {
	db    *gorm.DB
	audit *audit.Logger
}

func NewAppointmentGormRepository(db *gorm.DB, auditLogger *audit.Logger) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db, audit: auditLogger}
}

// --------------------------------------------------
// Users
// --------------------------------------------------

func (r *AppointmentGormRepository) GetUserByID(
	ctx context.Context,
	id uint,
) (*models.User, error) {

	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *AppointmentGormRepository) GetDoctorByID(
	ctx context.Context,
	id uint,
) (*models.User, error) {

	var doctor models.User
	if err := r.db.WithContext(ctx).
		Where("id = ? AND role = ?", id, models.RoleDoctor).
		First(&doctor).Error; err != nil {
		return nil, err
	}
	return &doctor, nil
}

func (r *AppointmentGormRepository) GetPatientByID(
	ctx context.Context,
	id uint,
) (*models.User, error) {

	var patient models.User
	if err := r.db.WithContext(ctx).
		Where("id = ? AND role = ?", id, models.RolePatient).
		First(&patient).Error; err != nil {
		return nil, err
	}
	return &patient, nil
}

// --------------------------------------------------
// Appointment (lookup)
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Patient").
		Preload("Doctor").
		First(&ap, id).Error; err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) CountScheduledForDoctorOn(
	ctx context.Context,
	doctorID uint,
	dayStart time.Time,
	dayEnd time.Time,
) (int64, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where(
			"doctor_id = ? AND status = ? AND scheduled_at >= ? AND scheduled_at < ?",
			doctorID, string(domain.StatusScheduled), dayStart, dayEnd,
		).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *AppointmentGormRepository) HasFutureScheduled(
	ctx context.Context,
	patientID uint,
	after time.Time,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where(
			"patient_id = ? AND status = ? AND scheduled_at > ?",
			patientID, string(domain.StatusScheduled), after,
		).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *AppointmentGormRepository) SlotTakenByDoctor(
	ctx context.Context,
	doctorID uint,
	at time.Time,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where(
			"doctor_id = ? AND status = ? AND scheduled_at = ?",
			doctorID, string(domain.StatusScheduled), at,
		).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *AppointmentGormRepository) SlotTakenByPatient(
	ctx context.Context,
	patientID uint,
	at time.Time,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where(
			"patient_id = ? AND status = ? AND scheduled_at = ?",
			patientID, string(domain.StatusScheduled), at,
		).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *AppointmentGormRepository) ListScheduledTimesForDoctorOn(
	ctx context.Context,
	doctorID uint,
	dayStart time.Time,
	dayEnd time.Time,
) ([]time.Time, error) {

	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Select("scheduled_at").
		Where(
			"doctor_id = ? AND status = ? AND scheduled_at >= ? AND scheduled_at < ?",
			doctorID, string(domain.StatusScheduled), dayStart, dayEnd,
		).
		Order("scheduled_at ASC").
		Find(&aps).Error; err != nil {
		return nil, err
	}

	times := make([]time.Time, 0, len(aps))
	for _, ap := range aps {
		times = append(times, ap.ScheduledAt)
	}
	return times, nil
}

func (r *AppointmentGormRepository) ListExpiredScheduled(
	ctx context.Context,
	before time.Time,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Where(
			"status = ? AND scheduled_at < ?",
			string(domain.StatusScheduled), before,
		).
		Order("scheduled_at ASC").
		Find(&aps).Error; err != nil {
		return nil, err
	}
	return aps, nil
}

// --------------------------------------------------
// Appointment (transactional units)
// --------------------------------------------------

func (r *AppointmentGormRepository) BookAppointment(
	ctx context.Context,
	ap *models.Appointment,
	actorID uint,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		// Recheck com lock; a constraint de unicidade continua sendo
		// a garantia final.
		var count int64
		if err := tx.
			Model(&models.Appointment{}).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(
				"doctor_id = ? AND status = ? AND scheduled_at = ?",
				ap.DoctorID, string(domain.StatusScheduled), ap.ScheduledAt,
			).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return httperr.ErrBusiness("slot_occupied")
		}

		if err := tx.Create(ap).Error; err != nil {
			if httperr.IsUniqueViolation(err) {
				return httperr.ErrBusiness("slot_occupied")
			}
			return err
		}

		return r.audit.Record(tx, ap.ID, &actorID, models.StatusInitial, ap.Status)
	})
}

func (r *AppointmentGormRepository) CancelAppointment(
	ctx context.Context,
	ap *models.Appointment,
	actorID uint,
	previousStatus string,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(ap).Error; err != nil {
			return err
		}
		return r.audit.Record(tx, ap.ID, &actorID, previousStatus, ap.Status)
	})
}

func (r *AppointmentGormRepository) CompleteAppointment(
	ctx context.Context,
	ap *models.Appointment,
	visit *models.Visit,
	actorID uint,
	previousStatus string,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		if err := tx.Create(visit).Error; err != nil {
			if httperr.IsUniqueViolation(err) {
				return httperr.ErrBusiness("visit_exists")
			}
			return err
		}

		if err := tx.Save(ap).Error; err != nil {
			return err
		}

		return r.audit.Record(tx, ap.ID, &actorID, previousStatus, ap.Status)
	})
}

func (r *AppointmentGormRepository) ExpireAppointment(
	ctx context.Context,
	ap *models.Appointment,
	previousStatus string,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(ap).Error; err != nil {
			return err
		}
		// Transição automática: sem ator.
		return r.audit.Record(tx, ap.ID, nil, previousStatus, ap.Status)
	})
}

func (r *AppointmentGormRepository) DeleteAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Delete(ap).Error
}

// --------------------------------------------------
// Visit
// --------------------------------------------------

func (r *AppointmentGormRepository) GetVisit(
	ctx context.Context,
	id uint,
) (*models.Visit, error) {

	var visit models.Visit
	if err := r.db.WithContext(ctx).First(&visit, id).Error; err != nil {
		return nil, err
	}
	return &visit, nil
}

func (r *AppointmentGormRepository) SaveVisitFile(
	ctx context.Context,
	visit *models.Visit,
) error {
	return r.db.WithContext(ctx).Save(visit).Error
}

func (r *AppointmentGormRepository) GetVisitByAppointment(
	ctx context.Context,
	appointmentID uint,
) (*models.Visit, error) {

	var visit models.Visit
	if err := r.db.WithContext(ctx).
		Where("appointment_id = ?", appointmentID).
		First(&visit).Error; err != nil {
		return nil, err
	}
	return &visit, nil
}

func (r *AppointmentGormRepository) SavePrescription(
	ctx context.Context,
	visit *models.Visit,
	ap *models.Appointment,
	actorID uint,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(visit).Error; err != nil {
			return err
		}
		return r.audit.Record(tx, ap.ID, &actorID, ap.Status, domain.LogPrescriptionGenerated)
	})
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
