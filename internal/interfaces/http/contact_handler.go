package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Contenidos-api/internal/application/dto"
	"github.com/jhoicas/Contenidos-api/internal/application/usecase"
	"github.com/jhoicas/Contenidos-api/internal/domain/entity"
)

// ContactHandler formulario público de contacto y cambio de estado desde el panel.
type ContactHandler struct {
	uc  *usecase.ContentUseCase[*entity.Contact]
	log zerolog.Logger
}

func NewContactHandler(uc *usecase.ContentUseCase[*entity.Contact], log zerolog.Logger) *ContactHandler {
	return &ContactHandler{uc: uc, log: log}
}

// Submit godoc
// @Summary      Enviar mensaje de contacto (público)
// @Tags         contacts
// @Accept       json
// @Produce      json
// @Param        body  body  entity.Contact  true  "name, email, message"
// @Success      201   {object}  entity.Contact
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/contacts [post]
func (h *ContactHandler) Submit(c *fiber.Ctx) error {
	var in entity.Contact
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), &in)
	if err != nil {
		return writeError(c, h.log, err, "mensaje no encontrado")
	}
	h.log.Info().Str("contact_id", out.ID).Str("ip", c.IP()).Msg("mensaje de contacto recibido")
	return c.Status(fiber.StatusCreated).JSON(out)
}

// SetStatus godoc
// @Summary      Cambiar estado de un mensaje
// @Tags         contacts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID del mensaje"
// @Param        body  body  dto.ContactStatusRequest  true  "new, read o archived"
// @Success      200   {object}  entity.Contact
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/contacts/{id}/status [patch]
func (h *ContactHandler) SetStatus(c *fiber.Ctx) error {
	var in dto.ContactStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Modify(c.UserContext(), c.Params("id"), usecase.SetContactStatus(in.Status))
	if err != nil {
		return writeError(c, h.log, err, "mensaje no encontrado")
	}
	return c.JSON(out)
}
