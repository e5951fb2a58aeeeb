package categorytree

import (
	"sort"

	"github.com/jhoicas/Contenidos-api/internal/domain/entity"
)

// Row fila de la vista de tabla: un nodo con su profundidad y la ruta de títulos hasta él.
type Row struct {
	Node     entity.CategoryNode
	Depth    int
	ParentID string
	Path     []string
}

// Walk recorre el bosque en profundidad (preorden). Si fn devuelve false el recorrido se detiene.
func Walk(forest entity.Forest, fn func(n entity.CategoryNode, depth int, parentID string) bool) {
	walk(forest, 0, "", fn)
}

func walk(nodes []entity.CategoryNode, depth int, parentID string, fn func(entity.CategoryNode, int, string) bool) bool {
	for _, n := range nodes {
		if !fn(n, depth, parentID) {
			return false
		}
		if !walk(n.Subcategories, depth+1, n.ID, fn) {
			return false
		}
	}
	return true
}

// Find devuelve el primer nodo con el ID dado (recorrido en profundidad).
func Find(forest entity.Forest, id string) (entity.CategoryNode, bool) {
	var (
		found entity.CategoryNode
		ok    bool
	)
	Walk(forest, func(n entity.CategoryNode, _ int, _ string) bool {
		if n.ID == id {
			found, ok = n, true
			return false
		}
		return true
	})
	return found, ok
}

// Contains informa si algún nodo del bosque tiene el ID dado.
func Contains(forest entity.Forest, id string) bool {
	_, ok := Find(forest, id)
	return ok
}

// IDs devuelve los IDs de todos los nodos en preorden.
func IDs(forest entity.Forest) []string {
	var ids []string
	Walk(forest, func(n entity.CategoryNode, _ int, _ string) bool {
		ids = append(ids, n.ID)
		return true
	})
	return ids
}

// Count número total de nodos del bosque.
func Count(forest entity.Forest) int {
	total := 0
	Walk(forest, func(entity.CategoryNode, int, string) bool {
		total++
		return true
	})
	return total
}

// DuplicateIDs devuelve, ordenados, los IDs que aparecen en más de un nodo.
func DuplicateIDs(forest entity.Forest) []string {
	seen := make(map[string]int)
	Walk(forest, func(n entity.CategoryNode, _ int, _ string) bool {
		seen[n.ID]++
		return true
	})
	var dups []string
	for id, c := range seen {
		if c > 1 {
			dups = append(dups, id)
		}
	}
	sort.Strings(dups)
	return dups
}

// ReferencedProducts IDs de producto asignados en cualquier nodo, sin repetir y ordenados.
func ReferencedProducts(forest entity.Forest) []string {
	set := make(map[string]struct{})
	Walk(forest, func(n entity.CategoryNode, _ int, _ string) bool {
		for _, id := range n.AssignedProducts {
			set[id] = struct{}{}
		}
		return true
	})
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Filter conserva los nodos que cumplen match completos, y los ancestros de los que cumplen
// con solo las ramas que llevan a ellos.
func Filter(forest entity.Forest, match func(entity.CategoryNode) bool) entity.Forest {
	out := make(entity.Forest, 0, len(forest))
	for _, n := range forest {
		if match(n) {
			out = append(out, n)
			continue
		}
		if children := Filter(n.Subcategories, match); len(children) > 0 {
			n.Subcategories = children
			out = append(out, n)
		}
	}
	return out
}

// Flatten aplana el bosque en filas (preorden) para la vista de tabla.
func Flatten(forest entity.Forest) []Row {
	var rows []Row
	flatten(forest, 0, "", nil, &rows)
	return rows
}

func flatten(nodes []entity.CategoryNode, depth int, parentID string, path []string, rows *[]Row) {
	for _, n := range nodes {
		p := make([]string, len(path), len(path)+1)
		copy(p, path)
		p = append(p, n.Title)
		*rows = append(*rows, Row{Node: n, Depth: depth, ParentID: parentID, Path: p})
		flatten(n.Subcategories, depth+1, n.ID, p, rows)
	}
}

// Normalize devuelve una copia con todos los Subcategories nil convertidos en slices vacíos,
// de modo que el JSON persistido siempre tenga "subcategories": [].
func Normalize(forest entity.Forest) entity.Forest {
	out := make(entity.Forest, len(forest))
	for i, n := range forest {
		n.Subcategories = Normalize(n.Subcategories)
		out[i] = n
	}
	return out
}
