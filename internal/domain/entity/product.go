package entity

import "github.com/shopspring/decimal"

// Product representa un repuesto del catálogo. Las categorías lo referencian por ID
// sin integridad referencial: borrar un repuesto no toca el árbol.
type Product struct {
	ID         string           `json:"id"`
	PartName   string           `json:"partName"`
	PartBrand  string           `json:"partBrand"`
	PartNumber string           `json:"partNumber,omitempty"`
	Price      *decimal.Decimal `json:"price,omitempty"`
	CreatedAt  Timestamp        `json:"createdAt"`
	UpdatedAt  Timestamp        `json:"updatedAt"`
}
