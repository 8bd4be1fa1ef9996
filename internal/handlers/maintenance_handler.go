package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/gmpsaude/clinic-scheduler/internal/httperr"
	usecase "github.com/gmpsaude/clinic-scheduler/internal/usecase/appointment"
)

type MaintenanceHandler struct {
	db     *gorm.DB
	expire *usecase.Expire
}

func NewMaintenanceHandler(db *gorm.DB, expire *usecase.Expire) *MaintenanceHandler {
	return &MaintenanceHandler{db: db, expire: expire}
}

// ExpireAppointments dispara a varredura de no-show sob demanda. A
// mesma rotina roda periodicamente em background; este endpoint existe
// para o admin forçar uma passada.
func (h *MaintenanceHandler) ExpireAppointments(c *gin.Context) {
	actor, ok := currentUser(c, h.db)
	if !ok {
		return
	}

	if !actor.IsAdmin() {
		httperr.Forbidden(c, "permission_denied", businessMessages["permission_denied"])
		return
	}

	updated, err := h.expire.Execute(c.Request.Context())
	if err != nil {
		httperr.Internal(c, "failed_to_expire", "Erro na varredura de consultas expiradas.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"expired": updated})
}
