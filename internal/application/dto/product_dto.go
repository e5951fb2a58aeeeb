package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un repuesto.
type CreateProductRequest struct {
	PartName   string           `json:"part_name" validate:"required,min=1,max=200"`
	PartBrand  string           `json:"part_brand" validate:"required,min=1,max=100"`
	PartNumber string           `json:"part_number" validate:"omitempty,max=100"`
	Price      *decimal.Decimal `json:"price"`
}

// UpdateProductRequest entrada para actualizar un repuesto; ausentes no se tocan.
type UpdateProductRequest struct {
	PartName   *string          `json:"part_name" validate:"omitnil,min=1,max=200"`
	PartBrand  *string          `json:"part_brand" validate:"omitnil,min=1,max=100"`
	PartNumber *string          `json:"part_number" validate:"omitempty,max=100"`
	Price      *decimal.Decimal `json:"price"`
}

// ProductResponse salida de un repuesto.
type ProductResponse struct {
	ID         string           `json:"id"`
	PartName   string           `json:"part_name"`
	PartBrand  string           `json:"part_brand"`
	PartNumber string           `json:"part_number,omitempty"`
	Price      *decimal.Decimal `json:"price,omitempty"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

// ProductListResponse lista paginada de repuestos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
