package entity

// CategoryNode representa una categoría del árbol de repuestos.
// Los nombres JSON son los del blob persistido (camelCase), no los de la API.
type CategoryNode struct {
	ID               string         `json:"id"`
	Title            string         `json:"title"`
	Image            string         `json:"image,omitempty"` // nombre de archivo, nunca binario
	AssignedProducts []string       `json:"assignedProducts,omitempty"`
	Subcategories    []CategoryNode `json:"subcategories"`
	UpdatedAt        Timestamp      `json:"updatedAt"`
}

// Forest es la lista ordenada de categorías raíz.
type Forest []CategoryNode

// HasChildren informa si el nodo tiene subcategorías.
func (n CategoryNode) HasChildren() bool {
	return len(n.Subcategories) > 0
}

// CategoryPatch campos editables de un nodo. nil = no tocar.
type CategoryPatch struct {
	Title *string
	Image *string
}
