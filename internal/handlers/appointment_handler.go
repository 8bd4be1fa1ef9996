package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/gmpsaude/clinic-scheduler/internal/domain/permission"
	"github.com/gmpsaude/clinic-scheduler/internal/httperr"
	"github.com/gmpsaude/clinic-scheduler/internal/models"
	usecase "github.com/gmpsaude/clinic-scheduler/internal/usecase/appointment"
)

type AppointmentHandler struct {
	db *gorm.DB

	book     *usecase.Book
	cancel   *usecase.Cancel
	complete *usecase.Complete
	delete   *usecase.Delete
}

func NewAppointmentHandler(
	db *gorm.DB,
	book *usecase.Book,
	cancel *usecase.Cancel,
	complete *usecase.Complete,
	del *usecase.Delete,
) *AppointmentHandler {
	return &AppointmentHandler{
		db:       db,
		book:     book,
		cancel:   cancel,
		complete: complete,
		delete:   del,
	}
}

// --------- Requests ---------

type CreateAppointmentRequest struct {
	DoctorID  uint   `json:"doctor_id" binding:"required"`
	PatientID uint   `json:"patient_id"`
	Date      string `json:"date" binding:"required"`
	Time      string `json:"time" binding:"required"`
}

type CompleteAppointmentRequest struct {
	Condition   string `json:"condition" binding:"required"`
	Description string `json:"description" binding:"required"`
}

// --------- Handlers ---------

func (h *AppointmentHandler) Create(c *gin.Context) {
	actor, ok := currentUser(c, h.db)
	if !ok {
		return
	}

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "missing_fields", businessMessages["missing_fields"])
		return
	}

	ap, err := h.book.Execute(c.Request.Context(), actor, usecase.BookInput{
		DoctorID:  req.DoctorID,
		PatientID: req.PatientID,
		Date:      req.Date,
		Time:      req.Time,
	})
	if err != nil {
		writeBusiness(c, err, 0)
		return
	}

	c.JSON(http.StatusCreated, ap)
}

// List devolve os agendamentos visíveis ao papel: paciente vê os seus,
// médico os designados a ele, admin todos (com filtros opcionais).
func (h *AppointmentHandler) List(c *gin.Context) {
	actor, ok := currentUser(c, h.db)
	if !ok {
		return
	}

	scope := permission.ForRole(actor.Role).AppointmentScope(actor)
	if scope.Denied {
		httperr.Forbidden(c, "permission_denied", businessMessages["permission_denied"])
		return
	}

	q := h.db.
		Preload("Patient").
		Preload("Doctor").
		Order("scheduled_at DESC")

	if scope.PatientID != 0 {
		q = q.Where("patient_id = ?", scope.PatientID)
	}
	if scope.DoctorID != 0 {
		q = q.Where("doctor_id = ?", scope.DoctorID)
	}
	if scope.All {
		if v := c.Query("doctor_id"); v != "" {
			q = q.Where("doctor_id = ?", v)
		}
		if v := c.Query("patient_id"); v != "" {
			q = q.Where("patient_id = ?", v)
		}
	}

	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var appointments []models.Appointment
	if err := q.Find(&appointments).Error; err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Erro ao listar agendamentos.")
		return
	}

	c.JSON(http.StatusOK, appointments)
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	actor, ok := currentUser(c, h.db)
	if !ok {
		return
	}

	ap, ok := h.loadAppointment(c)
	if !ok {
		return
	}

	if !permission.ForRole(actor.Role).CanViewAppointment(actor, ap) {
		httperr.Forbidden(c, "permission_denied", businessMessages["permission_denied"])
		return
	}

	c.JSON(http.StatusOK, ap)
}

// History lista o histórico de um paciente; usado pelo médico antes da
// consulta e pelo admin.
func (h *AppointmentHandler) History(c *gin.Context) {
	actor, ok := currentUser(c, h.db)
	if !ok {
		return
	}

	patientID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	// Paciente só consulta o próprio histórico.
	if actor.IsPatient() && actor.ID != uint(patientID) {
		httperr.Forbidden(c, "permission_denied", businessMessages["permission_denied"])
		return
	}

	var appointments []models.Appointment
	if err := h.db.
		Preload("Doctor").
		Where("patient_id = ?", uint(patientID)).
		Order("scheduled_at DESC").
		Find(&appointments).Error; err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Erro ao listar agendamentos.")
		return
	}

	c.JSON(http.StatusOK, appointments)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	actor, ok := currentUser(c, h.db)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	ap, err := h.cancel.Execute(c.Request.Context(), actor, uint(id))
	if err != nil {
		writeBusiness(c, err, 0)
		return
	}

	c.JSON(http.StatusOK, ap)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	actor, ok := currentUser(c, h.db)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	var req CompleteAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "missing_fields", businessMessages["missing_fields"])
		return
	}

	visit, err := h.complete.Execute(c.Request.Context(), actor, uint(id), usecase.VisitInput{
		Condition:   req.Condition,
		Description: req.Description,
	})
	if err != nil {
		writeBusiness(c, err, 0)
		return
	}

	c.JSON(http.StatusCreated, visit)
}

func (h *AppointmentHandler) Delete(c *gin.Context) {
	actor, ok := currentUser(c, h.db)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	if err := h.delete.Execute(c.Request.Context(), actor, uint(id)); err != nil {
		writeBusiness(c, err, 0)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *AppointmentHandler) loadAppointment(c *gin.Context) (*models.Appointment, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return nil, false
	}

	var ap models.Appointment
	if err := h.db.
		Preload("Patient").
		Preload("Doctor").
		First(&ap, uint(id)).Error; err != nil {
		httperr.NotFound(c, "appointment_not_found", businessMessages["appointment_not_found"])
		return nil, false
	}
	return &ap, true
}
