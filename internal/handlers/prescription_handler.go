package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/gmpsaude/clinic-scheduler/internal/httperr"
	usecase "github.com/gmpsaude/clinic-scheduler/internal/usecase/prescription"
)

type PrescriptionHandler struct {
	db       *gorm.DB
	generate *usecase.Generate
}

func NewPrescriptionHandler(db *gorm.DB, generate *usecase.Generate) *PrescriptionHandler {
	return &PrescriptionHandler{db: db, generate: generate}
}

type GeneratePrescriptionRequest struct {
	License string `json:"license" binding:"required"`
	Text    string `json:"text" binding:"required"`
}

// Generate emite a receita em PDF de uma consulta realizada e devolve
// o documento na própria resposta.
func (h *PrescriptionHandler) Generate(c *gin.Context) {
	actor, ok := currentUser(c, h.db)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	var req GeneratePrescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "license_and_text_required", businessMessages["license_and_text_required"])
		return
	}

	pdf, visit, err := h.generate.Execute(c.Request.Context(), actor, usecase.GenerateInput{
		AppointmentID: uint(id),
		License:       req.License,
		Text:          req.Text,
	})
	if err != nil {
		writeBusiness(c, err, 0)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="receita_`+visit.Protocol+`.pdf"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}
