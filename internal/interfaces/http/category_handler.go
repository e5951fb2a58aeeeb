package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Contenidos-api/internal/application/dto"
	"github.com/jhoicas/Contenidos-api/internal/application/usecase"
)

const categoryNotFound = "categoría no encontrada"

// CategoryHandler maneja el árbol de categorías (protegido).
type CategoryHandler struct {
	uc  *usecase.CategoryUseCase
	log zerolog.Logger
}

// NewCategoryHandler construye el handler.
func NewCategoryHandler(uc *usecase.CategoryUseCase, log zerolog.Logger) *CategoryHandler {
	return &CategoryHandler{uc: uc, log: log}
}

// Tree godoc
// @Summary      Árbol de categorías
// @Description  Bosque completo. Con q devuelve solo las ramas cuyo título coincide.
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Param        q    query  string  false  "Búsqueda por título (sin acentos ni mayúsculas)"
// @Success      200  {object}  dto.CategoryTreeResponse
// @Header       200  {string}  ETag  "Versión del árbol"
// @Router       /api/categories [get]
func (h *CategoryHandler) Tree(c *fiber.Ctx) error {
	out, err := h.uc.Tree(c.UserContext(), c.Query("q"))
	if err != nil {
		return writeError(c, h.log, err, categoryNotFound)
	}
	setETag(c, out.Version)
	return c.JSON(out)
}

// Rows godoc
// @Summary      Categorías como tabla
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Param        q       query  string  false  "Búsqueda por título"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {object}  dto.CategoryRowListResponse
// @Router       /api/categories/flat [get]
func (h *CategoryHandler) Rows(c *fiber.Ctx) error {
	out, err := h.uc.Rows(c.UserContext(), c.Query("q"), pageFromQuery(c))
	if err != nil {
		return writeError(c, h.log, err, categoryNotFound)
	}
	return c.JSON(out)
}

// Dangling godoc
// @Summary      Asignaciones a repuestos inexistentes
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.DanglingReference
// @Router       /api/categories/dangling [get]
func (h *CategoryHandler) Dangling(c *fiber.Ctx) error {
	out, err := h.uc.Dangling(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err, categoryNotFound)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Detalle de categoría
// @Description  Incluye los repuestos asignados resueltos y los IDs que ya no existen en el catálogo.
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la categoría"
// @Success      200  {object}  dto.CategoryDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/categories/{id} [get]
func (h *CategoryHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err, categoryNotFound)
	}
	return c.JSON(out)
}

// CreateRoot godoc
// @Summary      Crear categoría raíz
// @Tags         categories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCategoryRequest  true  "Título e imagen"
// @Success      201   {object}  dto.CategoryNodeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Param        If-Match  header  string  false  "Versión del árbol (ETag) leída por el cliente"
// @Failure      412  {object}  dto.ErrorResponse
// @Router       /api/categories [post]
func (h *CategoryHandler) CreateRoot(c *fiber.Ctx) error {
	var in dto.CreateCategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.CreateRoot(versioned(c), in)
	if err != nil {
		return writeError(c, h.log, err, categoryNotFound)
	}
	setETag(c, out.TreeVersion)
	return c.Status(fiber.StatusCreated).JSON(out)
}

// AddSubcategory godoc
// @Summary      Crear subcategoría
// @Tags         categories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID del padre"
// @Param        body  body  dto.CreateCategoryRequest  true  "Título e imagen"
// @Success      201   {object}  dto.CategoryNodeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Param        If-Match  header  string  false  "Versión del árbol (ETag) leída por el cliente"
// @Failure      412  {object}  dto.ErrorResponse
// @Router       /api/categories/{id}/subcategories [post]
func (h *CategoryHandler) AddSubcategory(c *fiber.Ctx) error {
	var in dto.CreateCategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.AddSubcategory(versioned(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, h.log, err, "categoría padre no encontrada")
	}
	setETag(c, out.TreeVersion)
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Editar categoría
// @Tags         categories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID de la categoría"
// @Param        body  body  dto.UpdateCategoryRequest  true  "Campos a cambiar"
// @Success      200   {object}  dto.CategoryNodeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Param        If-Match  header  string  false  "Versión del árbol (ETag) leída por el cliente"
// @Failure      412  {object}  dto.ErrorResponse
// @Router       /api/categories/{id} [patch]
func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateCategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(versioned(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, h.log, err, categoryNotFound)
	}
	setETag(c, out.TreeVersion)
	return c.JSON(out)
}

// AssignProducts godoc
// @Summary      Reemplazar repuestos asignados
// @Tags         categories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID de la categoría"
// @Param        body  body  dto.AssignProductsRequest  true  "Lista completa de IDs"
// @Success      200   {object}  dto.CategoryNodeResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Param        If-Match  header  string  false  "Versión del árbol (ETag) leída por el cliente"
// @Failure      412  {object}  dto.ErrorResponse
// @Router       /api/categories/{id}/products [put]
func (h *CategoryHandler) AssignProducts(c *fiber.Ctx) error {
	var in dto.AssignProductsRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.AssignProducts(versioned(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, h.log, err, categoryNotFound)
	}
	setETag(c, out.TreeVersion)
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar categoría y su subárbol
// @Tags         categories
// @Security     Bearer
// @Param        id   path  string  true  "ID de la categoría"
// @Success      204
// @Header       204  {string}  ETag  "Versión del árbol tras el borrado"
// @Failure      404  {object}  dto.ErrorResponse
// @Param        If-Match  header  string  false  "Versión del árbol (ETag) leída por el cliente"
// @Failure      412  {object}  dto.ErrorResponse
// @Router       /api/categories/{id} [delete]
func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	version, err := h.uc.Delete(versioned(c), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err, categoryNotFound)
	}
	setETag(c, version)
	return c.SendStatus(fiber.StatusNoContent)
}

// versioned propaga If-Match al caso de uso. Acepta "v", W/"v" o v.
func versioned(c *fiber.Ctx) context.Context {
	v := strings.TrimSpace(c.Get(fiber.HeaderIfMatch))
	v = strings.TrimPrefix(v, "W/")
	v = strings.Trim(v, `"`)
	return usecase.WithExpectedVersion(c.UserContext(), v)
}

func setETag(c *fiber.Ctx, version string) {
	if version != "" {
		c.Set(fiber.HeaderETag, `"`+version+`"`)
	}
}
