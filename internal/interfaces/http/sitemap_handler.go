package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Contenidos-api/internal/application/usecase"
)

// SitemapHandler sirve sitemap.xml (público).
type SitemapHandler struct {
	uc  *usecase.SitemapUseCase
	log zerolog.Logger
}

func NewSitemapHandler(uc *usecase.SitemapUseCase, log zerolog.Logger) *SitemapHandler {
	return &SitemapHandler{uc: uc, log: log}
}

// Get godoc
// @Summary      sitemap.xml
// @Tags         seo
// @Produce      xml
// @Success      200  {string}  string
// @Router       /sitemap.xml [get]
func (h *SitemapHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Render(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err, "sitemap no disponible")
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationXMLCharsetUTF8)
	return c.Send(out)
}
