package handlers

import (
	"bytes"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/gmpsaude/clinic-scheduler/internal/domain/permission"
	"github.com/gmpsaude/clinic-scheduler/internal/httperr"
	"github.com/gmpsaude/clinic-scheduler/internal/infra/storage"
	"github.com/gmpsaude/clinic-scheduler/internal/media"
)

type PhotoHandler struct {
	db       *gorm.DB
	store    storage.Uploader
	maxBytes int64
}

func NewPhotoHandler(db *gorm.DB, store storage.Uploader, maxBytes int64) *PhotoHandler {
	return &PhotoHandler{db: db, store: store, maxBytes: maxBytes}
}

// Upload troca a foto de perfil. A imagem enviada é normalizada para
// webp e a chave anterior, quando existe, é simplesmente sobrescrita.
func (h *PhotoHandler) Upload(c *gin.Context) {
	actor, ok := currentUser(c, h.db)
	if !ok {
		return
	}

	target, ok := loadUser(c, h.db)
	if !ok {
		return
	}

	if !permission.ForRole(actor.Role).CanEditUser(actor, target) {
		httperr.Forbidden(c, "permission_denied", businessMessages["permission_denied"])
		return
	}

	file, err := c.FormFile("photo")
	if err != nil {
		httperr.BadRequest(c, "missing_file", "Envie o arquivo no campo photo.")
		return
	}

	src, err := file.Open()
	if err != nil {
		httperr.Internal(c, "failed_to_read_file", "Erro ao ler o arquivo.")
		return
	}
	defer src.Close()

	photo, err := media.NormalizePhoto(src, h.maxBytes)
	if err != nil {
		writeBusiness(c, err, h.maxBytes)
		return
	}

	key := fmt.Sprintf("foto_perfil/%d.webp", target.ID)
	if err := h.store.Upload(c.Request.Context(), key, "image/webp", bytes.NewReader(photo)); err != nil {
		httperr.Internal(c, "failed_to_store_photo", "Erro ao guardar a foto.")
		return
	}

	target.PhotoKey = key
	if err := h.db.Save(target).Error; err != nil {
		httperr.Internal(c, "failed_to_update_user", "Erro ao atualizar usuário.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"photo_key": key})
}

// Download serve a foto de perfil direto do object storage.
func (h *PhotoHandler) Download(c *gin.Context) {
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

	if target.PhotoKey == "" {
		httperr.NotFound(c, "photo_not_found", businessMessages["photo_not_found"])
		return
	}

	body, contentType, err := h.store.Download(c.Request.Context(), target.PhotoKey)
	if err != nil {
		httperr.NotFound(c, "photo_not_found", businessMessages["photo_not_found"])
		return
	}
	defer body.Close()

	if contentType == "" {
		contentType = "image/webp"
	}

	c.Header("Content-Type", contentType)
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, body)
}
