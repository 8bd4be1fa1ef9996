package handlers

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/gmpsaude/clinic-scheduler/internal/domain/appointment"
	"github.com/gmpsaude/clinic-scheduler/internal/domain/permission"
	"github.com/gmpsaude/clinic-scheduler/internal/httperr"
	"github.com/gmpsaude/clinic-scheduler/internal/infra/storage"
	"github.com/gmpsaude/clinic-scheduler/internal/models"
	usecase "github.com/gmpsaude/clinic-scheduler/internal/usecase/prescription"
)

type VisitHandler struct {
	db     *gorm.DB
	store  storage.Uploader
	upload *usecase.Upload

	maxBytes int64
}

func NewVisitHandler(db *gorm.DB, store storage.Uploader, upload *usecase.Upload, maxBytes int64) *VisitHandler {
	return &VisitHandler{
		db:       db,
		store:    store,
		upload:   upload,
		maxBytes: maxBytes,
	}
}

// List devolve os registros clínicos visíveis ao papel. Paciente só
// enxerga consultas realizadas; médico as suas; admin todas.
func (h *VisitHandler) List(c *gin.Context) {
	actor, ok := currentUser(c, h.db)
	if !ok {
		return
	}

	scope := permission.ForRole(actor.Role).VisitScope(actor)
	if scope.Denied {
		httperr.Forbidden(c, "permission_denied", businessMessages["permission_denied"])
		return
	}

	q := h.db.
		Joins("JOIN appointments ON appointments.id = visits.appointment_id").
		Preload("Appointment").
		Preload("Appointment.Patient").
		Preload("Appointment.Doctor").
		Order("visits.created_at DESC")

	if scope.PatientID != 0 {
		q = q.Where("appointments.patient_id = ?", scope.PatientID)
	}
	if scope.DoctorID != 0 {
		q = q.Where("appointments.doctor_id = ?", scope.DoctorID)
	}
	if scope.CompletedOnly {
		q = q.Where("appointments.status = ?", string(appointment.StatusCompleted))
	}
	if scope.All {
		if v := c.Query("patient_id"); v != "" {
			q = q.Where("appointments.patient_id = ?", v)
		}
	}

	var visits []models.Visit
	if err := q.Find(&visits).Error; err != nil {
		httperr.Internal(c, "failed_to_list_visits", "Erro ao listar consultas.")
		return
	}

	c.JSON(http.StatusOK, visits)
}

func (h *VisitHandler) Get(c *gin.Context) {
	actor, ok := currentUser(c, h.db)
	if !ok {
		return
	}

	visit, ok := h.loadVisit(c)
	if !ok {
		return
	}

	if !permission.ForRole(actor.Role).CanViewVisit(actor, &visit.Appointment) {
		httperr.Forbidden(c, "permission_denied", businessMessages["permission_denied"])
		return
	}

	c.JSON(http.StatusOK, visit)
}

// UploadFile anexa o PDF de receita enviado pelo médico ao registro.
func (h *VisitHandler) UploadFile(c *gin.Context) {
	actor, ok := currentUser(c, h.db)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		httperr.BadRequest(c, "missing_file", "Envie o arquivo no campo file.")
		return
	}

	src, err := file.Open()
	if err != nil {
		httperr.Internal(c, "failed_to_read_file", "Erro ao ler o arquivo.")
		return
	}
	defer src.Close()

	visit, err := h.upload.Execute(
		c.Request.Context(),
		actor,
		uint(id),
		file.Filename,
		file.Header.Get("Content-Type"),
		file.Size,
		src,
	)
	if err != nil {
		writeBusiness(c, err, h.maxBytes)
		return
	}

	c.JSON(http.StatusOK, visit)
}

// UploadAttachment anexa um arquivo genérico (exame, laudo) ao
// registro.
func (h *VisitHandler) UploadAttachment(c *gin.Context) {
	actor, ok := currentUser(c, h.db)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		httperr.BadRequest(c, "missing_file", "Envie o arquivo no campo file.")
		return
	}

	src, err := file.Open()
	if err != nil {
		httperr.Internal(c, "failed_to_read_file", "Erro ao ler o arquivo.")
		return
	}
	defer src.Close()

	visit, err := h.upload.ExecuteAttachment(
		c.Request.Context(),
		actor,
		uint(id),
		file.Filename,
		file.Header.Get("Content-Type"),
		file.Size,
		src,
	)
	if err != nil {
		writeBusiness(c, err, h.maxBytes)
		return
	}

	c.JSON(http.StatusOK, visit)
}

// DownloadPrescription serve o PDF mais recente da receita: o gerado
// pelo sistema ou, na falta dele, o enviado pelo médico.
func (h *VisitHandler) DownloadPrescription(c *gin.Context) {
	actor, ok := currentUser(c, h.db)
	if !ok {
		return
	}

	visit, ok := h.loadVisit(c)
	if !ok {
		return
	}

	if !permission.ForRole(actor.Role).CanViewVisit(actor, &visit.Appointment) {
		httperr.Forbidden(c, "permission_denied", businessMessages["permission_denied"])
		return
	}

	key := visit.PrescriptionPDFKey
	if key == "" {
		key = visit.PrescriptionFileKey
	}
	if key == "" {
		httperr.NotFound(c, "prescription_not_found", businessMessages["prescription_not_found"])
		return
	}

	body, contentType, err := h.store.Download(c.Request.Context(), key)
	if err != nil {
		httperr.NotFound(c, "prescription_not_found", businessMessages["prescription_not_found"])
		return
	}
	defer body.Close()

	if contentType == "" {
		contentType = "application/pdf"
	}

	c.Header("Content-Type", contentType)
	c.Header("Content-Disposition", `attachment; filename="receita_`+visit.Protocol+`.pdf"`)
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, body)
}

// Delete sempre recusa: registro clínico é imutável.
func (h *VisitHandler) Delete(c *gin.Context) {
	httperr.BadRequest(c, "visit_cannot_delete", businessMessages["visit_cannot_delete"])
}

// Update sempre recusa, pelo mesmo motivo.
func (h *VisitHandler) Update(c *gin.Context) {
	httperr.BadRequest(c, "visit_cannot_update", businessMessages["visit_cannot_update"])
}

func (h *VisitHandler) loadVisit(c *gin.Context) (*models.Visit, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return nil, false
	}

	var visit models.Visit
	if err := h.db.
		Preload("Appointment").
		Preload("Appointment.Patient").
		Preload("Appointment.Doctor").
		First(&visit, uint(id)).Error; err != nil {
		httperr.NotFound(c, "visit_not_found", businessMessages["visit_not_found"])
		return nil, false
	}
	return &visit, true
}
