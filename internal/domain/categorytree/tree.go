// Package categorytree implementa las transformaciones puras sobre el bosque de categorías.
//
// Todas las operaciones reciben el bosque completo y devuelven uno nuevo; la entrada nunca se
// modifica. Las ramas no afectadas se copian superficialmente (comparten sus slices de hijos).
// Ninguna operación falla: si el ID buscado no existe el resultado es estructuralmente igual
// a la entrada y found es false.
package categorytree

import (
	"time"

	"github.com/jhoicas/Contenidos-api/internal/domain/entity"
)

// AddRoot agrega node al final de la lista raíz. No valida títulos duplicados.
func AddRoot(forest entity.Forest, node entity.CategoryNode) entity.Forest {
	out := make(entity.Forest, len(forest), len(forest)+1)
	copy(out, forest)
	return append(out, node)
}

// AddSubcategory agrega node como último hijo de cada nodo con ID parentID.
// La búsqueda es en profundidad empezando por la lista raíz.
func AddSubcategory(forest entity.Forest, parentID string, node entity.CategoryNode) (entity.Forest, bool) {
	out, found := transform(forest, parentID, func(n entity.CategoryNode) entity.CategoryNode {
		children := make([]entity.CategoryNode, len(n.Subcategories), len(n.Subcategories)+1)
		copy(children, n.Subcategories)
		n.Subcategories = append(children, node)
		return n
	})
	return out, found
}

// UpdateNode mezcla los campos no nulos de patch en el nodo nodeID y refresca UpdatedAt.
func UpdateNode(forest entity.Forest, nodeID string, patch entity.CategoryPatch, now time.Time) (entity.Forest, bool) {
	out, found := transform(forest, nodeID, func(n entity.CategoryNode) entity.CategoryNode {
		if patch.Title != nil {
			n.Title = *patch.Title
		}
		if patch.Image != nil {
			n.Image = *patch.Image
		}
		n.UpdatedAt = entity.NewTimestamp(now)
		return n
	})
	return out, found
}

// SetAssignedProducts reemplaza por completo los productos asignados del nodo nodeID.
func SetAssignedProducts(forest entity.Forest, nodeID string, productIDs []string, now time.Time) (entity.Forest, bool) {
	out, found := transform(forest, nodeID, func(n entity.CategoryNode) entity.CategoryNode {
		ids := make([]string, len(productIDs))
		copy(ids, productIDs)
		n.AssignedProducts = ids
		n.UpdatedAt = entity.NewTimestamp(now)
		return n
	})
	return out, found
}

// DeleteNode elimina el nodo nodeID junto con todo su subárbol, en cualquier nivel.
func DeleteNode(forest entity.Forest, nodeID string) (entity.Forest, bool) {
	out, found := remove(forest, nodeID)
	return out, found
}

// transform es el recorrido común: el nodo que coincide se transforma (sin descender en él),
// los nodos con hijos se reconstruyen con los hijos transformados y el resto se copia tal cual.
// Si hay varios nodos con el mismo ID se transforman todos.
func transform(nodes []entity.CategoryNode, id string, fn func(entity.CategoryNode) entity.CategoryNode) ([]entity.CategoryNode, bool) {
	out := make([]entity.CategoryNode, len(nodes))
	found := false
	for i, n := range nodes {
		switch {
		case n.ID == id:
			out[i] = fn(n)
			found = true
		case n.HasChildren():
			if children, ok := transform(n.Subcategories, id, fn); ok {
				n.Subcategories = children
				found = true
			}
			out[i] = n
		default:
			out[i] = n
		}
	}
	return out, found
}

func remove(nodes []entity.CategoryNode, id string) ([]entity.CategoryNode, bool) {
	out := make([]entity.CategoryNode, 0, len(nodes))
	found := false
	for _, n := range nodes {
		if n.ID == id {
			found = true
			continue
		}
		if n.HasChildren() {
			if children, ok := remove(n.Subcategories, id); ok {
				n.Subcategories = children
				found = true
			}
		}
		out = append(out, n)
	}
	return out, found
}
