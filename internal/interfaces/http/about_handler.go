package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Contenidos-api/internal/application/usecase"
	"github.com/jhoicas/Contenidos-api/internal/domain/entity"
)

// AboutHandler documento "Nosotros".
type AboutHandler struct {
	uc  *usecase.AboutUseCase
	log zerolog.Logger
}

func NewAboutHandler(uc *usecase.AboutUseCase, log zerolog.Logger) *AboutHandler {
	return &AboutHandler{uc: uc, log: log}
}

// Get godoc
// @Summary      Obtener "Nosotros"
// @Tags         about
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  entity.AboutPage
// @Router       /api/about [get]
func (h *AboutHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err, "documento no encontrado")
	}
	return c.JSON(out)
}

// Put godoc
// @Summary      Reemplazar "Nosotros"
// @Tags         about
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  entity.AboutPage  true  "Documento completo"
// @Success      200   {object}  entity.AboutPage
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/about [put]
func (h *AboutHandler) Put(c *fiber.Ctx) error {
	var in entity.AboutPage
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Put(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err, "documento no encontrado")
	}
	return c.JSON(out)
}
