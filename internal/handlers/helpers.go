package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/gmpsaude/clinic-scheduler/internal/httperr"
	"github.com/gmpsaude/clinic-scheduler/internal/middleware"
	"github.com/gmpsaude/clinic-scheduler/internal/models"
)

// Mensagens voltadas ao usuário, no idioma da clínica. Códigos sem
// entrada caem na mensagem genérica.
var businessMessages = map[string]string{
	"doctor_cannot_book":              "Médicos não podem marcar consultas.",
	"select_patient":                  "Selecione um paciente.",
	"missing_fields":                  "Preencha todos os campos.",
	"invalid_date_or_time":            "Data ou hora inválida.",
	"invalid_slot":                    "Horário inválido.",
	"weekend_not_allowed":             "Consultas não são permitidas aos finais de semana.",
	"doctor_daily_limit":              "Este médico atingiu o limite de consultas para este dia.",
	"patient_has_future_appointment":  "Você já possui uma consulta futura marcada.",
	"slot_occupied":                   "Este horário já está ocupado.",
	"patient_slot_occupied":           "Você já possui uma consulta marcada neste horário.",
	"invalid_state":                   "Esta consulta não permite esta operação.",
	"appointment_in_past":             "Não é possível realizar esta operação em consulta passada.",
	"permission_denied":               "Você não tem permissão para realizar esta ação.",
	"appointment_not_found":           "Consulta não encontrada.",
	"doctor_not_found":                "Médico não encontrado.",
	"patient_not_found":               "Paciente não encontrado.",
	"visit_not_found":                 "Consulta não encontrada.",
	"visit_exists":                    "Este agendamento já possui consulta registrada.",
	"invalid_condition":               "Condição do paciente inválida.",
	"invalid_description":             "Descrição da consulta inválida.",
	"finalized_cannot_delete":         "Agendamento finalizado não pode ser deletado.",
	"visit_cannot_delete":             "Consulta não pode ser deletada.",
	"visit_cannot_update":             "Consulta não pode ser alterada.",
	"prescription_not_allowed":        "Esta consulta não permite gerar receita.",
	"prescription_not_found":          "Receita não encontrada.",
	"license_and_text_required":       "CRM e descrição são obrigatórios.",
	"file_not_pdf":                    "A receita deve ser PDF.",
	"invalid_file_type":               "Tipo inválido.",
	"invalid_image":                   "Imagem inválida. Envie JPEG ou PNG.",
	"photo_not_found":                 "Foto não encontrada.",
}

var businessStatus = map[string]int{
	"permission_denied":      http.StatusForbidden,
	"doctor_cannot_book":     http.StatusForbidden,
	"appointment_not_found":  http.StatusNotFound,
	"doctor_not_found":       http.StatusNotFound,
	"patient_not_found":      http.StatusNotFound,
	"visit_not_found":        http.StatusNotFound,
	"prescription_not_found": http.StatusNotFound,
	"photo_not_found":        http.StatusNotFound,
	"slot_occupied":          http.StatusConflict,
	"patient_slot_occupied":  http.StatusConflict,
	"visit_exists":           http.StatusConflict,
}

// writeBusiness converte um erro de domínio para a resposta HTTP;
// qualquer outro erro vira 500 genérico.
func writeBusiness(c *gin.Context, err error, maxBytes int64) {
	code, ok := httperr.BusinessCode(err)
	if !ok {
		httperr.Internal(c, "internal_error", "Erro interno.")
		return
	}

	status := http.StatusBadRequest
	if s, ok := businessStatus[code]; ok {
		status = s
	}

	msg, ok := businessMessages[code]
	if !ok {
		switch code {
		case "too_soon":
			msg = "Horário inválido. Escolha um horário futuro com antecedência mínima."
		case "file_too_large":
			msg = fmt.Sprintf("Arquivo excede o tamanho máximo de %dMB.", maxBytes/(1024*1024))
		default:
			msg = "Ocorreu um erro relacionado à consulta."
		}
	}

	httperr.Write(c, status, code, msg)
}

// currentUser resolve o usuário autenticado a partir das claims do
// token.
func currentUser(c *gin.Context, db *gorm.DB) (*models.User, bool) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		httperr.Unauthorized(c, "user_not_found", "Usuário não encontrado.")
		return nil, false
	}
	return &user, true
}
