package dto

import "time"

// CreateCategoryRequest entrada para crear una categoría raíz o una subcategoría.
type CreateCategoryRequest struct {
	Title string `json:"title" validate:"required,min=1,max=200"`
	Image string `json:"image" validate:"omitempty,max=255"`
}

// UpdateCategoryRequest campos editables de una categoría; ausentes no se tocan.
type UpdateCategoryRequest struct {
	Title *string `json:"title" validate:"omitnil,min=1,max=200"`
	Image *string `json:"image" validate:"omitempty,max=255"`
}

// AssignProductsRequest reemplaza por completo los repuestos asignados.
type AssignProductsRequest struct {
	ProductIDs []string `json:"product_ids" validate:"dive,required"`
}

// CategoryNodeResponse nodo del árbol con sus subcategorías.
type CategoryNodeResponse struct {
	ID               string                 `json:"id"`
	Title            string                 `json:"title"`
	Image            string                 `json:"image,omitempty"`
	AssignedProducts []string               `json:"assigned_products"`
	Subcategories    []CategoryNodeResponse `json:"subcategories"`
	UpdatedAt        time.Time              `json:"updated_at"`
	TreeVersion      string                 `json:"tree_version,omitempty"` // solo en respuestas a mutaciones
}

// CategoryTreeResponse bosque completo (o filtrado por q).
type CategoryTreeResponse struct {
	Items []CategoryNodeResponse `json:"items"`
	Count int                    `json:"count"` // nodos en Items, a cualquier profundidad
	Query string                 `json:"query,omitempty"`
	// Version huella del bosque completo (no del filtrado); se envía de vuelta en If-Match.
	Version string `json:"version"`
}

// ProductSummary repuesto resuelto desde el catálogo.
type ProductSummary struct {
	ID        string `json:"id"`
	PartName  string `json:"part_name"`
	PartBrand string `json:"part_brand"`
}

// CategoryDetailResponse nodo con los repuestos asignados resueltos.
// MissingProducts son IDs asignados que ya no existen en el catálogo.
type CategoryDetailResponse struct {
	CategoryNodeResponse
	ParentID        string           `json:"parent_id,omitempty"`
	Path            []string         `json:"path"`
	Products        []ProductSummary `json:"products"`
	MissingProducts []string         `json:"missing_products"`
}

// CategoryRowResponse fila de la vista de tabla (árbol aplanado).
type CategoryRowResponse struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Image        string    `json:"image,omitempty"`
	Depth        int       `json:"depth"`
	ParentID     string    `json:"parent_id,omitempty"`
	Path         []string  `json:"path"`
	ChildCount   int       `json:"child_count"`
	ProductCount int       `json:"product_count"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CategoryRowListResponse filas paginadas.
type CategoryRowListResponse struct {
	Items []CategoryRowResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}

// DanglingReference asignación de una categoría a un repuesto que ya no existe.
type DanglingReference struct {
	CategoryID    string `json:"category_id"`
	CategoryTitle string `json:"category_title"`
	ProductID     string `json:"product_id"`
}
