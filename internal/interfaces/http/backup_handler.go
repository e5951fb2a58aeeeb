package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Contenidos-api/internal/application/dto"
	"github.com/jhoicas/Contenidos-api/internal/application/usecase"
)

// BackupHandler exportación e importación de todas las colecciones (solo admin).
type BackupHandler struct {
	uc  *usecase.BackupUseCase
	log zerolog.Logger
}

func NewBackupHandler(uc *usecase.BackupUseCase, log zerolog.Logger) *BackupHandler {
	return &BackupHandler{uc: uc, log: log}
}

// Export godoc
// @Summary      Exportar respaldo
// @Tags         backup
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.Backup
// @Router       /api/backup [get]
func (h *BackupHandler) Export(c *fiber.Ctx) error {
	out, err := h.uc.Export(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err, "")
	}
	c.Attachment("contenidos-backup.json")
	return c.JSON(out)
}

// Import godoc
// @Summary      Importar respaldo
// @Description  Sobrescribe las colecciones incluidas. Los usuarios no se importan.
// @Tags         backup
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.Backup  true  "Respaldo exportado"
// @Success      200   {object}  map[string][]string
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/backup [post]
func (h *BackupHandler) Import(c *fiber.Ctx) error {
	var in dto.Backup
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	keys, err := h.uc.Import(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err, "")
	}
	h.log.Warn().Str("user_id", GetUserID(c)).Strs("keys", keys).Msg("respaldo restaurado")
	return c.JSON(fiber.Map{"imported": keys})
}
