package prescription

import (
	"context"
	"fmt"
	"io"
	"strings"

	domain "github.com/gmpsaude/clinic-scheduler/internal/domain/appointment"
	"github.com/gmpsaude/clinic-scheduler/internal/httperr"
	"github.com/gmpsaude/clinic-scheduler/internal/infra/storage"
	"github.com/gmpsaude/clinic-scheduler/internal/models"
)

// ValidateUpload aplica as regras do arquivo de receita: PDF por
// extensão e content type, e tamanho estritamente abaixo do limite
// (um arquivo exatamente no limite é rejeitado).
func ValidateUpload(name, contentType string, size, maxBytes int64) error {
	if size >= maxBytes {
		return httperr.ErrBusiness("file_too_large")
	}

	if !strings.HasSuffix(strings.ToLower(name), ".pdf") {
		return httperr.ErrBusiness("file_not_pdf")
	}

	if contentType != "" && contentType != "application/pdf" {
		return httperr.ErrBusiness("invalid_file_type")
	}

	return nil
}

// ======================================================
// USE CASE
// ======================================================

type Upload struct {
	repo     domain.Repository
	store    storage.Uploader
	maxBytes int64
}

func NewUpload(repo domain.Repository, store storage.Uploader, maxBytes int64) *Upload {
	return &Upload{repo: repo, store: store, maxBytes: maxBytes}
}

// Execute anexa a receita enviada (visível ao paciente) a uma
// consulta do médico que está agindo.
func (uc *Upload) Execute(
	ctx context.Context,
	actor *models.User,
	visitID uint,
	name string,
	contentType string,
	size int64,
	body io.Reader,
) (*models.Visit, error) {

	visit, err := uc.repo.GetVisit(ctx, visitID)
	if err != nil {
		return nil, httperr.ErrBusiness("visit_not_found")
	}

	ap, err := uc.repo.GetAppointment(ctx, visit.AppointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	if !actor.IsDoctor() || ap.DoctorID != actor.ID {
		return nil, httperr.ErrBusiness("permission_denied")
	}

	if err := ValidateUpload(name, contentType, size, uc.maxBytes); err != nil {
		return nil, err
	}

	key := fmt.Sprintf("consulta_receita/%s_upload.pdf", visit.Protocol)
	if err := uc.store.Upload(ctx, key, "application/pdf", body); err != nil {
		return nil, err
	}

	visit.PrescriptionFileKey = key
	if err := uc.repo.SaveVisitFile(ctx, visit); err != nil {
		return nil, err
	}

	return visit, nil
}

// ExecuteAttachment anexa um arquivo genérico (exame, laudo) à
// consulta; mesmas regras de formato e tamanho da receita.
func (uc *Upload) ExecuteAttachment(
	ctx context.Context,
	actor *models.User,
	visitID uint,
	name string,
	contentType string,
	size int64,
	body io.Reader,
) (*models.Visit, error) {

	visit, err := uc.repo.GetVisit(ctx, visitID)
	if err != nil {
		return nil, httperr.ErrBusiness("visit_not_found")
	}

	ap, err := uc.repo.GetAppointment(ctx, visit.AppointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	if !actor.IsDoctor() || ap.DoctorID != actor.ID {
		return nil, httperr.ErrBusiness("permission_denied")
	}

	if err := ValidateUpload(name, contentType, size, uc.maxBytes); err != nil {
		return nil, err
	}

	key := fmt.Sprintf("consulta_arquivo/%s.pdf", visit.Protocol)
	if err := uc.store.Upload(ctx, key, "application/pdf", body); err != nil {
		return nil, err
	}

	visit.FileKey = key
	if err := uc.repo.SaveVisitFile(ctx, visit); err != nil {
		return nil, err
	}

	return visit, nil
}
