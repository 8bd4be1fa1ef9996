package prescription

import (
	"bytes"
	"context"
	"fmt"
	"time"

	domain "github.com/gmpsaude/clinic-scheduler/internal/domain/appointment"
	"github.com/gmpsaude/clinic-scheduler/internal/httperr"
	"github.com/gmpsaude/clinic-scheduler/internal/infra/storage"
	"github.com/gmpsaude/clinic-scheduler/internal/models"
	pdfrender "github.com/gmpsaude/clinic-scheduler/internal/prescription"
	"github.com/gmpsaude/clinic-scheduler/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type GenerateInput struct {
	AppointmentID uint
	License       string // CRM
	Text          string
}

// ======================================================
// USE CASE
// ======================================================

type Generate struct {
	repo  domain.Repository
	store storage.Uploader
	now   func() time.Time
}

func NewGenerate(repo domain.Repository, store storage.Uploader, tz string) *Generate {
	return &Generate{
		repo:  repo,
		store: store,
		now:   func() time.Time { return timezone.NowIn(tz) },
	}
}

// Execute gera o PDF da receita para uma consulta realizada, guarda o
// artefato e registra "prescription_generated" no log. Só o médico
// designado gera.
func (uc *Generate) Execute(
	ctx context.Context,
	actor *models.User,
	in GenerateInput,
) ([]byte, *models.Visit, error) {

	ap, err := uc.repo.GetAppointment(ctx, in.AppointmentID)
	if err != nil {
		return nil, nil, httperr.ErrBusiness("appointment_not_found")
	}

	if !actor.IsDoctor() || ap.DoctorID != actor.ID {
		return nil, nil, httperr.ErrBusiness("permission_denied")
	}

	if domain.Status(ap.Status) != domain.StatusCompleted {
		return nil, nil, httperr.ErrBusiness("prescription_not_allowed")
	}

	if in.License == "" || in.Text == "" {
		return nil, nil, httperr.ErrBusiness("license_and_text_required")
	}

	visit, err := uc.repo.GetVisitByAppointment(ctx, ap.ID)
	if err != nil {
		return nil, nil, httperr.ErrBusiness("visit_not_found")
	}

	issuedAt := uc.now()

	pdf, err := pdfrender.Render(pdfrender.Data{
		AppointmentID: ap.ID,
		DoctorName:    ap.Doctor.Name,
		License:       in.License,
		PatientName:   ap.Patient.Name,
		PatientAge:    ap.Patient.Age,
		Body:          in.Text,
		IssuedAt:      issuedAt,
	})
	if err != nil {
		return nil, nil, err
	}

	key := fmt.Sprintf("consulta_receita/%s.pdf", visit.Protocol)
	if err := uc.store.Upload(ctx, key, "application/pdf", bytes.NewReader(pdf)); err != nil {
		return nil, nil, err
	}

	visit.DoctorLicense = in.License
	visit.PrescriptionText = in.Text
	visit.PrescriptionGeneratedAt = &issuedAt
	visit.PrescriptionPDFKey = key

	if err := uc.repo.SavePrescription(ctx, visit, ap, actor.ID); err != nil {
		return nil, nil, err
	}

	return pdf, visit, nil
}
