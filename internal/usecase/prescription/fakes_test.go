package prescription

import (
	"bytes"
	"context"
	"errors"
	"io"
	"time"

	domain "github.com/gmpsaude/clinic-scheduler/internal/domain/appointment"
	"github.com/gmpsaude/clinic-scheduler/internal/infra/storage"
	"github.com/gmpsaude/clinic-scheduler/internal/models"
)

// --- FakeRepository ---
var _ domain.Repository = (*FakeRepository)(nil)

// Só os métodos que os fluxos de receita tocam têm func fields; o
// restante devolve erro.
type FakeRepository struct {
	GetAppointmentFunc        func(ctx context.Context, id uint) (*models.Appointment, error)
	GetVisitFunc              func(ctx context.Context, id uint) (*models.Visit, error)
	GetVisitByAppointmentFunc func(ctx context.Context, appointmentID uint) (*models.Visit, error)
	SaveVisitFileFunc         func(ctx context.Context, visit *models.Visit) error
	SavePrescriptionFunc      func(ctx context.Context, visit *models.Visit, ap *models.Appointment, actorID uint) error
}

var errNotWired = errors.New("not wired in this fake")

func (f *FakeRepository) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return nil, errNotWired
}

func (f *FakeRepository) GetDoctorByID(ctx context.Context, id uint) (*models.User, error) {
	return nil, errNotWired
}

func (f *FakeRepository) GetPatientByID(ctx context.Context, id uint) (*models.User, error) {
	return nil, errNotWired
}

func (f *FakeRepository) GetAppointment(ctx context.Context, id uint) (*models.Appointment, error) {
	if f.GetAppointmentFunc != nil {
		return f.GetAppointmentFunc(ctx, id)
	}
	return nil, errNotWired
}

func (f *FakeRepository) CountScheduledForDoctorOn(ctx context.Context, doctorID uint, dayStart, dayEnd time.Time) (int64, error) {
	return 0, errNotWired
}

func (f *FakeRepository) HasFutureScheduled(ctx context.Context, patientID uint, after time.Time) (bool, error) {
	return false, errNotWired
}

func (f *FakeRepository) SlotTakenByDoctor(ctx context.Context, doctorID uint, at time.Time) (bool, error) {
	return false, errNotWired
}

func (f *FakeRepository) SlotTakenByPatient(ctx context.Context, patientID uint, at time.Time) (bool, error) {
	return false, errNotWired
}

func (f *FakeRepository) ListScheduledTimesForDoctorOn(ctx context.Context, doctorID uint, dayStart, dayEnd time.Time) ([]time.Time, error) {
	return nil, errNotWired
}

func (f *FakeRepository) ListExpiredScheduled(ctx context.Context, before time.Time) ([]models.Appointment, error) {
	return nil, errNotWired
}

func (f *FakeRepository) BookAppointment(ctx context.Context, ap *models.Appointment, actorID uint) error {
	return errNotWired
}

func (f *FakeRepository) CancelAppointment(ctx context.Context, ap *models.Appointment, actorID uint, previousStatus string) error {
	return errNotWired
}

func (f *FakeRepository) CompleteAppointment(ctx context.Context, ap *models.Appointment, visit *models.Visit, actorID uint, previousStatus string) error {
	return errNotWired
}

func (f *FakeRepository) ExpireAppointment(ctx context.Context, ap *models.Appointment, previousStatus string) error {
	return errNotWired
}

func (f *FakeRepository) DeleteAppointment(ctx context.Context, ap *models.Appointment) error {
	return errNotWired
}

func (f *FakeRepository) GetVisit(ctx context.Context, id uint) (*models.Visit, error) {
	if f.GetVisitFunc != nil {
		return f.GetVisitFunc(ctx, id)
	}
	return nil, errNotWired
}

func (f *FakeRepository) GetVisitByAppointment(ctx context.Context, appointmentID uint) (*models.Visit, error) {
	if f.GetVisitByAppointmentFunc != nil {
		return f.GetVisitByAppointmentFunc(ctx, appointmentID)
	}
	return nil, errNotWired
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

// --- FakeStorage ---
var _ storage.Uploader = (*FakeStorage)(nil)

// FakeStorage guarda os objetos em memória.
type FakeStorage struct {
	Objects map[string][]byte
	Types   map[string]string
}

func NewFakeStorage() *FakeStorage {
	return &FakeStorage{
		Objects: map[string][]byte{},
		Types:   map[string]string{},
	}
}

func (f *FakeStorage) Upload(ctx context.Context, key, contentType string, body io.Reader) error {
	raw, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	f.Objects[key] = raw
	f.Types[key] = contentType
	return nil
}

func (f *FakeStorage) Download(ctx context.Context, key string) (io.ReadCloser, string, error) {
	raw, ok := f.Objects[key]
	if !ok {
		return nil, "", errors.New("object not found")
	}
	return io.NopCloser(bytes.NewReader(raw)), f.Types[key], nil
}
