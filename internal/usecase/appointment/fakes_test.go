package appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	domain "github.com/gmpsaude/clinic-scheduler/internal/domain/appointment"
	"github.com/gmpsaude/clinic-scheduler/internal/models"
)

// --- FakeRepository ---
// Compile-time check
var _ domain.Repository = (*FakeRepository)(nil)

// FakeRepository implementa o contrato com func fields: cada teste só
// preenche o que o cenário exercita.
type FakeRepository struct {
	GetUserByIDFunc               func(ctx context.Context, id uint) (*models.User, error)
	GetDoctorByIDFunc             func(ctx context.Context, id uint) (*models.User, error)
	GetPatientByIDFunc            func(ctx context.Context, id uint) (*models.User, error)
	GetAppointmentFunc            func(ctx context.Context, id uint) (*models.Appointment, error)
	CountScheduledForDoctorOnFunc func(ctx context.Context, doctorID uint, dayStart, dayEnd time.Time) (int64, error)
	HasFutureScheduledFunc        func(ctx context.Context, patientID uint, after time.Time) (bool, error)
	SlotTakenByDoctorFunc         func(ctx context.Context, doctorID uint, at time.Time) (bool, error)
	SlotTakenByPatientFunc        func(ctx context.Context, patientID uint, at time.Time) (bool, error)
	ListScheduledTimesFunc        func(ctx context.Context, doctorID uint, dayStart, dayEnd time.Time) ([]time.Time, error)
	ListExpiredScheduledFunc      func(ctx context.Context, before time.Time) ([]models.Appointment, error)

	BookAppointmentFunc     func(ctx context.Context, ap *models.Appointment, actorID uint) error
	CancelAppointmentFunc   func(ctx context.Context, ap *models.Appointment, actorID uint, previousStatus string) error
	CompleteAppointmentFunc func(ctx context.Context, ap *models.Appointment, visit *models.Visit, actorID uint, previousStatus string) error
	ExpireAppointmentFunc   func(ctx context.Context, ap *models.Appointment, previousStatus string) error
	DeleteAppointmentFunc   func(ctx context.Context, ap *models.Appointment) error

	GetVisitFunc              func(ctx context.Context, id uint) (*models.Visit, error)
	GetVisitByAppointmentFunc func(ctx context.Context, appointmentID uint) (*models.Visit, error)
	SaveVisitFileFunc         func(ctx context.Context, visit *models.Visit) error
	SavePrescriptionFunc      func(ctx context.Context, visit *models.Visit, ap *models.Appointment, actorID uint) error
}

func (f *FakeRepository) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	if f.GetUserByIDFunc != nil {
		return f.GetUserByIDFunc(ctx, id)
	}
	return &models.User{ID: id, Role: models.RolePatient, Email: "paciente@gmpsaude.com.br"}, nil
}

func (f *FakeRepository) GetDoctorByID(ctx context.Context, id uint) (*models.User, error) {
	if f.GetDoctorByIDFunc != nil {
		return f.GetDoctorByIDFunc(ctx, id)
	}
	return &models.User{ID: id, Role: models.RoleDoctor, Name: "Dr. Teste"}, nil
}

func (f *FakeRepository) GetPatientByID(ctx context.Context, id uint) (*models.User, error) {
	if f.GetPatientByIDFunc != nil {
		return f.GetPatientByIDFunc(ctx, id)
	}
	return &models.User{ID: id, Role: models.RolePatient, Email: "paciente@gmpsaude.com.br"}, nil
}

func (f *FakeRepository) GetAppointment(ctx context.Context, id uint) (*models.Appointment, error) {
	if f.GetAppointmentFunc != nil {
		return f.GetAppointmentFunc(ctx, id)
	}
	return nil, errors.New("GetAppointmentFunc not set")
}

func (f *FakeRepository) CountScheduledForDoctorOn(ctx context.Context, doctorID uint, dayStart, dayEnd time.Time) (int64, error) {
	if f.CountScheduledForDoctorOnFunc != nil {
		return f.CountScheduledForDoctorOnFunc(ctx, doctorID, dayStart, dayEnd)
	}
	return 0, nil
}

func (f *FakeRepository) HasFutureScheduled(ctx context.Context, patientID uint, after time.Time) (bool, error) {
	if f.HasFutureScheduledFunc != nil {
		return f.HasFutureScheduledFunc(ctx, patientID, after)
	}
	return false, nil
}

func (f *FakeRepository) SlotTakenByDoctor(ctx context.Context, doctorID uint, at time.Time) (bool, error) {
	if f.SlotTakenByDoctorFunc != nil {
		return f.SlotTakenByDoctorFunc(ctx, doctorID, at)
	}
	return false, nil
}

func (f *FakeRepository) SlotTakenByPatient(ctx context.Context, patientID uint, at time.Time) (bool, error) {
	if f.SlotTakenByPatientFunc != nil {
		return f.SlotTakenByPatientFunc(ctx, patientID, at)
	}
	return false, nil
}

func (f *FakeRepository) ListScheduledTimesForDoctorOn(ctx context.Context, doctorID uint, dayStart, dayEnd time.Time) ([]time.Time, error) {
	if f.ListScheduledTimesFunc != nil {
		return f.ListScheduledTimesFunc(ctx, doctorID, dayStart, dayEnd)
	}
	return nil, nil
}

func (f *FakeRepository) ListExpiredScheduled(ctx context.Context, before time.Time) ([]models.Appointment, error) {
	if f.ListExpiredScheduledFunc != nil {
		return f.ListExpiredScheduledFunc(ctx, before)
	}
	return nil, nil
}

func (f *FakeRepository) BookAppointment(ctx context.Context, ap *models.Appointment, actorID uint) error {
	if f.BookAppointmentFunc != nil {
		return f.BookAppointmentFunc(ctx, ap, actorID)
	}
	ap.ID = 1
	return nil
}

func (f *FakeRepository) CancelAppointment(ctx context.Context, ap *models.Appointment, actorID uint, previousStatus string) error {
	if f.CancelAppointmentFunc != nil {
		return f.CancelAppointmentFunc(ctx, ap, actorID, previousStatus)
	}
	return nil
}

func (f *FakeRepository) CompleteAppointment(ctx context.Context, ap *models.Appointment, visit *models.Visit, actorID uint, previousStatus string) error {
	if f.CompleteAppointmentFunc != nil {
		return f.CompleteAppointmentFunc(ctx, ap, visit, actorID, previousStatus)
	}
	return nil
}

func (f *FakeRepository) ExpireAppointment(ctx context.Context, ap *models.Appointment, previousStatus string) error {
	if f.ExpireAppointmentFunc != nil {
		return f.ExpireAppointmentFunc(ctx, ap, previousStatus)
	}
	return nil
}

func (f *FakeRepository) DeleteAppointment(ctx context.Context, ap *models.Appointment) error {
	if f.DeleteAppointmentFunc != nil {
		return f.DeleteAppointmentFunc(ctx, ap)
	}
	return nil
}

func (f *FakeRepository) GetVisit(ctx context.Context, id uint) (*models.Visit, error) {
	if f.GetVisitFunc != nil {
		return f.GetVisitFunc(ctx, id)
	}
	return nil, errors.New("GetVisitFunc not set")
}

func (f *FakeRepository) GetVisitByAppointment(ctx context.Context, appointmentID uint) (*models.Visit, error) {
	if f.GetVisitByAppointmentFunc != nil {
		return f.GetVisitByAppointmentFunc(ctx, appointmentID)
	}
	return nil, errors.New("GetVisitByAppointmentFunc not set")
}

func (f *FakeRepository) SaveVisitFile(ctx context.Context, visit *models.Visit) error {
	if f.SaveVisitFileFunc != nil {
		return f.SaveVisitFileFunc(ctx, visit)
	}
	return nil
}

func (f *FakeRepository) SavePrescription(ctx context.Context, visit *models.Visit, ap *models.Appointment, actorID uint) error {
	if f.SavePrescriptionFunc != nil {
		return f.SavePrescriptionFunc(ctx, visit, ap, actorID)
	}
	return nil
}

// --- FakeSlotCache ---
var _ domain.SlotCache = (*FakeSlotCache)(nil)

// FakeSlotCache guarda tudo em memória e conta invalidações.
type FakeSlotCache struct {
	data        map[string][]string
	Invalidated []string
}

func NewFakeSlotCache() *FakeSlotCache {
	return &FakeSlotCache{data: map[string][]string{}}
}

func cacheKey(doctorID uint, date string) string {
	return fmt.Sprintf("%d/%s", doctorID, date)
}

func (f *FakeSlotCache) GetSlots(ctx context.Context, doctorID uint, date string) ([]string, bool) {
	slots, ok := f.data[cacheKey(doctorID, date)]
	return slots, ok
}

func (f *FakeSlotCache) SetSlots(ctx context.Context, doctorID uint, date string, slots []string) {
	f.data[cacheKey(doctorID, date)] = slots
}

func (f *FakeSlotCache) Invalidate(ctx context.Context, doctorID uint, date string) {
	delete(f.data, cacheKey(doctorID, date))
	f.Invalidated = append(f.Invalidated, cacheKey(doctorID, date))
}
