package usecase

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Contenidos-api/internal/application/dto"
	"github.com/jhoicas/Contenidos-api/internal/domain"
	"github.com/jhoicas/Contenidos-api/internal/domain/categorytree"
	"github.com/jhoicas/Contenidos-api/internal/domain/entity"
	"github.com/jhoicas/Contenidos-api/internal/domain/repository"
	"github.com/jhoicas/Contenidos-api/pkg/textsearch"
	"github.com/jhoicas/Contenidos-api/pkg/validation"
)

// CategoryUseCase casos de uso del árbol de categorías. Cada mutación lee el bosque completo,
// aplica la operación pura y lo vuelve a guardar completo.
type CategoryUseCase struct {
	repo     repository.CategoryRepository
	products repository.ProductRepository
	log      zerolog.Logger
	now      func() time.Time

	mu sync.Mutex // serializa lectura-modificación-escritura dentro del proceso
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository, products repository.ProductRepository, log zerolog.Logger) *CategoryUseCase {
	return &CategoryUseCase{repo: repo, products: products, log: log, now: time.Now}
}

// Tree devuelve el bosque completo o, si q no está vacío, solo las ramas con títulos que coinciden.
func (uc *CategoryUseCase) Tree(ctx context.Context, q string) (*dto.CategoryTreeResponse, error) {
	forest, err := uc.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	version := categorytree.Fingerprint(forest)
	m := textsearch.NewMatcher(q)
	if !m.Empty() {
		forest = categorytree.Filter(forest, func(n entity.CategoryNode) bool { return m.Match(n.Title) })
	}
	return &dto.CategoryTreeResponse{
		Items:   toNodeResponses(forest),
		Count:   categorytree.Count(forest),
		Query:   q,
		Version: version,
	}, nil
}

// Version huella actual del bosque persistido.
func (uc *CategoryUseCase) Version(ctx context.Context) (string, error) {
	forest, err := uc.repo.Load(ctx)
	if err != nil {
		return "", err
	}
	return categorytree.Fingerprint(forest), nil
}

// Rows devuelve el bosque aplanado (preorden) y paginado para la vista de tabla.
func (uc *CategoryUseCase) Rows(ctx context.Context, q string, page dto.PageRequest) (*dto.CategoryRowListResponse, error) {
	forest, err := uc.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	m := textsearch.NewMatcher(q)
	if !m.Empty() {
		forest = categorytree.Filter(forest, func(n entity.CategoryNode) bool { return m.Match(n.Title) })
	}
	rows := categorytree.Flatten(forest)
	page.DefaultPage()
	items := make([]dto.CategoryRowResponse, 0, page.Limit)
	for _, r := range paginate(rows, page) {
		items = append(items, dto.CategoryRowResponse{
			ID:           r.Node.ID,
			Title:        r.Node.Title,
			Image:        r.Node.Image,
			Depth:        r.Depth,
			ParentID:     r.ParentID,
			Path:         r.Path,
			ChildCount:   len(r.Node.Subcategories),
			ProductCount: len(r.Node.AssignedProducts),
			UpdatedAt:    r.Node.UpdatedAt.Time,
		})
	}
	return &dto.CategoryRowListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: len(rows)},
	}, nil
}

// Get devuelve un nodo con sus repuestos resueltos contra el catálogo.
// Los IDs asignados que ya no existen se informan en MissingProducts.
func (uc *CategoryUseCase) Get(ctx context.Context, id string) (*dto.CategoryDetailResponse, error) {
	forest, err := uc.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	var (
		row   categorytree.Row
		found bool
	)
	for _, r := range categorytree.Flatten(forest) {
		if r.Node.ID == id {
			row, found = r, true
			break
		}
	}
	if !found {
		return nil, domain.ErrNotFound
	}
	catalogue, err := uc.catalogue(ctx)
	if err != nil {
		return nil, err
	}
	out := &dto.CategoryDetailResponse{
		CategoryNodeResponse: toNodeResponse(row.Node),
		ParentID:             row.ParentID,
		Path:                 row.Path,
		Products:             []dto.ProductSummary{},
		MissingProducts:      []string{},
	}
	for _, pid := range row.Node.AssignedProducts {
		p, ok := catalogue[pid]
		if !ok {
			out.MissingProducts = append(out.MissingProducts, pid)
			continue
		}
		out.Products = append(out.Products, dto.ProductSummary{ID: p.ID, PartName: p.PartName, PartBrand: p.PartBrand})
	}
	return out, nil
}

// CreateRoot agrega una categoría al final de la lista raíz.
func (uc *CategoryUseCase) CreateRoot(ctx context.Context, in dto.CreateCategoryRequest) (*dto.CategoryNodeResponse, error) {
	in.Title = strings.TrimSpace(in.Title)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	node := uc.newNode(in)
	version, err := uc.mutate(ctx, func(f entity.Forest) (entity.Forest, bool) {
		return categorytree.AddRoot(f, node), true
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("category_id", node.ID).Str("title", node.Title).Msg("categoría raíz creada")
	out := toNodeResponse(node)
	out.TreeVersion = version
	return &out, nil
}

// AddSubcategory agrega una subcategoría bajo parentID. ErrNotFound si el padre no existe.
func (uc *CategoryUseCase) AddSubcategory(ctx context.Context, parentID string, in dto.CreateCategoryRequest) (*dto.CategoryNodeResponse, error) {
	in.Title = strings.TrimSpace(in.Title)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	node := uc.newNode(in)
	version, err := uc.mutate(ctx, func(f entity.Forest) (entity.Forest, bool) {
		return categorytree.AddSubcategory(f, parentID, node)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("category_id", node.ID).Str("parent_id", parentID).Msg("subcategoría creada")
	out := toNodeResponse(node)
	out.TreeVersion = version
	return &out, nil
}

// Update aplica título y/o imagen al nodo.
func (uc *CategoryUseCase) Update(ctx context.Context, id string, in dto.UpdateCategoryRequest) (*dto.CategoryNodeResponse, error) {
	if in.Title != nil {
		t := strings.TrimSpace(*in.Title)
		in.Title = &t
	}
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	now := uc.now().UTC()
	var updated entity.Forest
	version, err := uc.mutate(ctx, func(f entity.Forest) (entity.Forest, bool) {
		var ok bool
		updated, ok = categorytree.UpdateNode(f, id, entity.CategoryPatch{Title: in.Title, Image: in.Image}, now)
		return updated, ok
	})
	if err != nil {
		return nil, err
	}
	return uc.nodeResponse(updated, id, version), nil
}

// AssignProducts reemplaza por completo los repuestos asignados al nodo.
// No verifica que los IDs existan en el catálogo.
func (uc *CategoryUseCase) AssignProducts(ctx context.Context, id string, in dto.AssignProductsRequest) (*dto.CategoryNodeResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	ids := in.ProductIDs
	if ids == nil {
		ids = []string{}
	}
	now := uc.now().UTC()
	var updated entity.Forest
	version, err := uc.mutate(ctx, func(f entity.Forest) (entity.Forest, bool) {
		var ok bool
		updated, ok = categorytree.SetAssignedProducts(f, id, ids, now)
		return updated, ok
	})
	if err != nil {
		return nil, err
	}
	return uc.nodeResponse(updated, id, version), nil
}

// Delete elimina el nodo y todo su subárbol. Devuelve la versión del bosque resultante.
func (uc *CategoryUseCase) Delete(ctx context.Context, id string) (string, error) {
	var removed int
	version, err := uc.mutate(ctx, func(f entity.Forest) (entity.Forest, bool) {
		before := categorytree.Count(f)
		out, ok := categorytree.DeleteNode(f, id)
		removed = before - categorytree.Count(out)
		return out, ok
	})
	if err != nil {
		return "", err
	}
	uc.log.Info().Str("category_id", id).Int("removed", removed).Msg("categoría eliminada")
	return version, nil
}

// Dangling lista las asignaciones a repuestos que ya no están en el catálogo.
func (uc *CategoryUseCase) Dangling(ctx context.Context) ([]dto.DanglingReference, error) {
	forest, err := uc.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	catalogue, err := uc.catalogue(ctx)
	if err != nil {
		return nil, err
	}
	out := []dto.DanglingReference{}
	categorytree.Walk(forest, func(n entity.CategoryNode, _ int, _ string) bool {
		for _, pid := range n.AssignedProducts {
			if _, ok := catalogue[pid]; !ok {
				out = append(out, dto.DanglingReference{CategoryID: n.ID, CategoryTitle: n.Title, ProductID: pid})
			}
		}
		return true
	})
	return out, nil
}

// mutate carga, aplica fn y guarda. Si fn no encontró el objetivo no se escribe nada.
// Con WithExpectedVersion en ctx, falla con ErrVersionMismatch si otro escritor guardó antes.
// Devuelve la huella del bosque guardado.
func (uc *CategoryUseCase) mutate(ctx context.Context, fn func(entity.Forest) (entity.Forest, bool)) (string, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	forest, err := uc.repo.Load(ctx)
	if err != nil {
		return "", err
	}
	if want, ok := expectedVersion(ctx); ok {
		if got := categorytree.Fingerprint(forest); got != want {
			uc.log.Debug().Str("expected", want).Str("current", got).Msg("versión del árbol desactualizada")
			return "", domain.ErrVersionMismatch
		}
	}
	next, found := fn(forest)
	if !found {
		return "", domain.ErrNotFound
	}
	if err := uc.repo.Save(ctx, next); err != nil {
		return "", err
	}
	return categorytree.Fingerprint(next), nil
}

func (uc *CategoryUseCase) newNode(in dto.CreateCategoryRequest) entity.CategoryNode {
	return entity.CategoryNode{
		ID:            uuid.New().String(),
		Title:         in.Title,
		Image:         in.Image,
		Subcategories: []entity.CategoryNode{},
		UpdatedAt:     entity.NewTimestamp(uc.now().UTC()),
	}
}

func (uc *CategoryUseCase) nodeResponse(forest entity.Forest, id, version string) *dto.CategoryNodeResponse {
	n, ok := categorytree.Find(forest, id)
	if !ok {
		return nil
	}
	out := toNodeResponse(n)
	out.TreeVersion = version
	return &out
}

func (uc *CategoryUseCase) catalogue(ctx context.Context) (map[string]*entity.Product, error) {
	list, err := uc.products.Load(ctx)
	if err != nil {
		return nil, err
	}
	m := make(map[string]*entity.Product, len(list))
	for _, p := range list {
		m[p.ID] = p
	}
	return m, nil
}

func toNodeResponses(nodes []entity.CategoryNode) []dto.CategoryNodeResponse {
	out := make([]dto.CategoryNodeResponse, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, toNodeResponse(n))
	}
	return out
}

func toNodeResponse(n entity.CategoryNode) dto.CategoryNodeResponse {
	products := make([]string, len(n.AssignedProducts))
	copy(products, n.AssignedProducts)
	return dto.CategoryNodeResponse{
		ID:               n.ID,
		Title:            n.Title,
		Image:            n.Image,
		AssignedProducts: products,
		Subcategories:    toNodeResponses(n.Subcategories),
		UpdatedAt:        n.UpdatedAt.Time,
	}
}
