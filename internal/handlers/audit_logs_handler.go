package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/gmpsaude/clinic-scheduler/internal/httperr"
	"github.com/gmpsaude/clinic-scheduler/internal/models"
)

const auditPageSize = 10

type AuditLogsHandler struct {
	db *gorm.DB
}

func NewAuditLogsHandler(db *gorm.DB) *AuditLogsHandler {
	return &AuditLogsHandler{db: db}
}

// List é restrito ao admin: trilha completa de transições, mais
// recente primeiro, paginada.
func (h *AuditLogsHandler) List(c *gin.Context) {
	actor, ok := currentUser(c, h.db)
	if !ok {
		return
	}

	if !actor.IsAdmin() {
		httperr.Forbidden(c, "permission_denied", businessMessages["permission_denied"])
		return
	}

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	q := h.db.Model(&models.StatusLog{})

	if v := c.Query("appointment_id"); v != "" {
		q = q.Where("appointment_id = ?", v)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Internal(c, "failed_to_list_logs", "Erro ao listar histórico.")
		return
	}

	var logs []models.StatusLog
	if err := q.
		Preload("Actor").
		Order("created_at DESC").
		Limit(auditPageSize).
		Offset((page - 1) * auditPageSize).
		Find(&logs).Error; err != nil {
		httperr.Internal(c, "failed_to_list_logs", "Erro ao listar histórico.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"logs":      logs,
		"page":      page,
		"page_size": auditPageSize,
		"total":     total,
	})
}
