package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Contenidos-api/internal/application/usecase"
	"github.com/jhoicas/Contenidos-api/internal/domain/entity"
)

// contentPtr restringe P a *E que implementa entity.Content, para poder decodificar el cuerpo en E.
type contentPtr[E any] interface {
	*E
	entity.Content
}

// ContentHandler CRUD HTTP de una colección de contenido (blogs, careers, events, ...).
type ContentHandler[E any, P contentPtr[E]] struct {
	uc  *usecase.ContentUseCase[P]
	log zerolog.Logger
}

// NewContentHandler construye el handler de la colección que administra uc.
func NewContentHandler[E any, P contentPtr[E]](uc *usecase.ContentUseCase[P], log zerolog.Logger) *ContentHandler[E, P] {
	return &ContentHandler[E, P]{uc: uc, log: log}
}

func (h *ContentHandler[E, P]) notFound() string {
	return "registro de " + string(h.uc.Kind()) + " no encontrado"
}

// Mount registra las rutas CRUD bajo /<kind>. Con withCreate=false el alta se registra aparte.
func (h *ContentHandler[E, P]) Mount(r fiber.Router, withCreate bool) {
	g := r.Group("/" + string(h.uc.Kind()))
	g.Get("/", h.List)
	if withCreate {
		g.Post("/", h.Create)
	}
	g.Get("/:id", h.GetByID)
	g.Put("/:id", h.Replace)
	g.Delete("/:id", h.Delete)
}

// List godoc
// @Summary      Listar registros de una colección
// @Tags         content
// @Security     Bearer
// @Produce      json
// @Param        kind    path   string  true   "Colección: blogs, careers, events, news, industries, locations, seo, social_links, faqs, contacts"
// @Param        q       query  string  false  "Búsqueda (sin acentos ni mayúsculas)"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {object}  map[string]interface{}
// @Router       /api/{kind} [get]
func (h *ContentHandler[E, P]) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), c.Query("q"), pageFromQuery(c))
	if err != nil {
		return writeError(c, h.log, err, h.notFound())
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear registro
// @Description  id, created_at y updated_at los asigna el servidor.
// @Tags         content
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        kind  path  string  true  "Colección"
// @Success      201   {object}  map[string]interface{}
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/{kind} [post]
func (h *ContentHandler[E, P]) Create(c *fiber.Ctx) error {
	item := P(new(E))
	if err := c.BodyParser(item); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), item)
	if err != nil {
		return writeError(c, h.log, err, h.notFound())
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener registro
// @Tags         content
// @Security     Bearer
// @Produce      json
// @Param        kind  path  string  true  "Colección"
// @Param        id    path  string  true  "ID"
// @Success      200   {object}  map[string]interface{}
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/{kind}/{id} [get]
func (h *ContentHandler[E, P]) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err, h.notFound())
	}
	return c.JSON(out)
}

// Replace godoc
// @Summary      Reemplazar registro
// @Tags         content
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        kind  path  string  true  "Colección"
// @Param        id    path  string  true  "ID"
// @Success      200   {object}  map[string]interface{}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/{kind}/{id} [put]
func (h *ContentHandler[E, P]) Replace(c *fiber.Ctx) error {
	item := P(new(E))
	if err := c.BodyParser(item); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Replace(c.UserContext(), c.Params("id"), item)
	if err != nil {
		return writeError(c, h.log, err, h.notFound())
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar registro
// @Tags         content
// @Security     Bearer
// @Param        kind  path  string  true  "Colección"
// @Param        id    path  string  true  "ID"
// @Success      204
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/{kind}/{id} [delete]
func (h *ContentHandler[E, P]) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return writeError(c, h.log, err, h.notFound())
	}
	return c.SendStatus(fiber.StatusNoContent)
}
