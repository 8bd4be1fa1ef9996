package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/gmpsaude/clinic-scheduler/internal/domain/permission"
	"github.com/gmpsaude/clinic-scheduler/internal/httperr"
	"github.com/gmpsaude/clinic-scheduler/internal/models"
)

type UserHandler struct {
	db *gorm.DB
}

func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{db: db}
}

// List é restrito ao admin; os demais papéis só enxergam o próprio
// perfil via Get.
func (h *UserHandler) List(c *gin.Context) {
	actor, ok := currentUser(c, h.db)
	if !ok {
		return
	}

	if !actor.IsAdmin() {
		httperr.Forbidden(c, "permission_denied", businessMessages["permission_denied"])
		return
	}

	var users []models.User
	q := h.db.Order("id ASC")

	if role := c.Query("role"); role != "" {
		q = q.Where("role = ?", role)
	}
	if complaint := c.Query("complaint"); complaint != "" {
		q = q.Where("complaint = ?", complaint)
	}

	if err := q.Find(&users).Error; err != nil {
		httperr.Internal(c, "failed_to_list_users", "Erro ao listar usuários.")
		return
	}

	c.JSON(http.StatusOK, users)
}

// ListDoctors alimenta o formulário de marcação: qualquer autenticado
// enxerga os médicos disponíveis.
func (h *UserHandler) ListDoctors(c *gin.Context) {
	var doctors []models.User
	if err := h.db.
		Select("id", "name").
		Where("role = ?", models.RoleDoctor).
		Order("name ASC").
		Find(&doctors).Error; err != nil {
		httperr.Internal(c, "failed_to_list_doctors", "Erro ao listar médicos.")
		return
	}

	c.JSON(http.StatusOK, doctors)
}

func (h *UserHandler) Get(c *gin.Context) {
	actor, ok := currentUser(c, h.db)
	if !ok {
		return
	}

	target, ok := loadUser(c, h.db)
	if !ok {
		return
	}

	if !permission.ForRole(actor.Role).CanViewUser(actor, target) {
		httperr.Forbidden(c, "permission_denied", businessMessages["permission_denied"])
		return
	}

	c.JSON(http.StatusOK, target)
}

type UpdateUserRequest struct {
	Name      *string `json:"name"`
	Age       *int    `json:"age"`
	Complaint *string `json:"complaint"`
	Phone     *string `json:"phone"`
	Origin    *string `json:"origin"`
	License   *string `json:"license"`
	Role      *string `json:"role"`
}

func (h *UserHandler) Update(c *gin.Context) {
	actor, ok := currentUser(c, h.db)
	if !ok {
		return
	}

	target, ok := loadUser(c, h.db)
	if !ok {
		return
	}

	pol := permission.ForRole(actor.Role)
	if !pol.CanEditUser(actor, target) {
		httperr.Forbidden(c, "permission_denied", businessMessages["permission_denied"])
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if req.Name != nil {
		target.Name = *req.Name
	}
	if req.Age != nil {
		if *req.Age < 1 || *req.Age > 85 {
			httperr.BadRequest(c, "invalid_age", "Idade inválida.")
			return
		}
		target.Age = req.Age
	}
	if req.Complaint != nil {
		if !models.ValidComplaint(*req.Complaint) {
			httperr.BadRequest(c, "invalid_complaint", "Queixa inválida.")
			return
		}
		target.Complaint = *req.Complaint
	}
	if req.Phone != nil {
		target.Phone = *req.Phone
	}
	if req.Origin != nil {
		target.Origin = *req.Origin
	}
	if req.License != nil {
		target.License = *req.License
	}

	// Escalada de papel é exclusiva do admin; para os demais o campo é
	// silenciosamente descartado.
	if req.Role != nil && pol.CanAssignRole(actor) {
		if !models.ValidRole(*req.Role) {
			httperr.BadRequest(c, "invalid_role", "Perfil inválido.")
			return
		}
		target.Role = *req.Role
	}

	if err := h.db.Save(target).Error; err != nil {
		httperr.Internal(c, "failed_to_update_user", "Erro ao atualizar usuário.")
		return
	}

	c.JSON(http.StatusOK, target)
}

func loadUser(c *gin.Context, db *gorm.DB) (*models.User, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return nil, false
	}

	var target models.User
	if err := db.First(&target, uint(id)).Error; err != nil {
		httperr.NotFound(c, "user_not_found", "Usuário não encontrado.")
		return nil, false
	}
	return &target, true
}
