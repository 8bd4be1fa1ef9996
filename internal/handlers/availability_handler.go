package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	usecase "github.com/gmpsaude/clinic-scheduler/internal/usecase/appointment"
)

type AvailabilityHandler struct {
	availability *usecase.GetAvailability
}

func NewAvailabilityHandler(availability *usecase.GetAvailability) *AvailabilityHandler {
	return &AvailabilityHandler{availability: availability}
}

// Get devolve os horários livres de um médico em um dia. Entrada
// incompleta ou inválida devolve lista vazia, nunca erro: o front usa
// isso enquanto o formulário está pela metade.
func (h *AvailabilityHandler) Get(c *gin.Context) {
	doctorID, _ := strconv.ParseUint(c.Query("doctor_id"), 10, 64)
	date := c.Query("date")

	slots, err := h.availability.Execute(c.Request.Context(), uint(doctorID), date)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"slots": []string{}})
		return
	}

	c.JSON(http.StatusOK, gin.H{"slots": slots})
}
