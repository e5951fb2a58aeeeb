package usecase

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Contenidos-api/internal/application/dto"
	"github.com/jhoicas/Contenidos-api/internal/domain"
	"github.com/jhoicas/Contenidos-api/internal/domain/entity"
	"github.com/jhoicas/Contenidos-api/internal/domain/repository"
	"github.com/jhoicas/Contenidos-api/pkg/textsearch"
	"github.com/jhoicas/Contenidos-api/pkg/validation"
)

// ContentOptions ajustes por tipo de contenido.
type ContentOptions[T entity.Content] struct {
	// Less orden del listado. Por defecto, más recientes primero.
	Less func(a, b T) bool
	// Defaults completa campos vacíos antes de validar un alta.
	Defaults func(item T)
}

// ContentUseCase CRUD genérico de una colección de contenido guardada completa bajo su clave.
type ContentUseCase[T entity.Content] struct {
	repo repository.ContentRepository[T]
	kind entity.ContentKind
	opts ContentOptions[T]
	log  zerolog.Logger
	now  func() time.Time
	mu   sync.Mutex
}

// NewContentUseCase construye el caso de uso de la colección kind.
func NewContentUseCase[T entity.Content](repo repository.ContentRepository[T], kind entity.ContentKind, opts ContentOptions[T], log zerolog.Logger) *ContentUseCase[T] {
	if opts.Less == nil {
		opts.Less = NewestFirst[T]
	}
	return &ContentUseCase[T]{repo: repo, kind: kind, opts: opts, log: log, now: time.Now}
}

// NewestFirst orden por fecha de creación descendente.
func NewestFirst[T entity.Content](a, b T) bool {
	return a.Meta().CreatedAt.After(b.Meta().CreatedAt.Time)
}

// Kind tipo de contenido que administra el caso de uso.
func (uc *ContentUseCase[T]) Kind() entity.ContentKind { return uc.kind }

// Create asigna ID y fechas al registro y lo agrega a la colección.
func (uc *ContentUseCase[T]) Create(ctx context.Context, item T) (T, error) {
	var zero T
	if uc.opts.Defaults != nil {
		uc.opts.Defaults(item)
	}
	if err := validation.Struct(item); err != nil {
		return zero, err
	}
	now := entity.NewTimestamp(uc.now().UTC())
	meta := item.Meta()
	meta.ID = uuid.New().String()
	meta.CreatedAt = now
	meta.UpdatedAt = now

	uc.mu.Lock()
	defer uc.mu.Unlock()
	list, err := uc.repo.Load(ctx)
	if err != nil {
		return zero, err
	}
	if err := uc.repo.Save(ctx, append(list, item)); err != nil {
		return zero, err
	}
	uc.log.Debug().Str("kind", string(uc.kind)).Str("id", meta.ID).Msg("contenido creado")
	return item, nil
}

// Get obtiene un registro por ID.
func (uc *ContentUseCase[T]) Get(ctx context.Context, id string) (T, error) {
	var zero T
	list, err := uc.repo.Load(ctx)
	if err != nil {
		return zero, err
	}
	for _, item := range list {
		if item.Meta().ID == id {
			return item, nil
		}
	}
	return zero, domain.ErrNotFound
}

// Replace sustituye el registro completo conservando ID y fecha de creación.
func (uc *ContentUseCase[T]) Replace(ctx context.Context, id string, item T) (T, error) {
	var zero T
	if err := validation.Struct(item); err != nil {
		return zero, err
	}
	uc.mu.Lock()
	defer uc.mu.Unlock()
	list, err := uc.repo.Load(ctx)
	if err != nil {
		return zero, err
	}
	for i, cur := range list {
		if cur.Meta().ID != id {
			continue
		}
		meta := item.Meta()
		meta.ID = id
		meta.CreatedAt = cur.Meta().CreatedAt
		meta.UpdatedAt = entity.NewTimestamp(uc.now().UTC())
		list[i] = item
		if err := uc.repo.Save(ctx, list); err != nil {
			return zero, err
		}
		return item, nil
	}
	return zero, domain.ErrNotFound
}

// Modify aplica fn sobre el registro y lo guarda. Si fn falla no se escribe nada.
func (uc *ContentUseCase[T]) Modify(ctx context.Context, id string, fn func(item T) error) (T, error) {
	var zero T
	uc.mu.Lock()
	defer uc.mu.Unlock()
	list, err := uc.repo.Load(ctx)
	if err != nil {
		return zero, err
	}
	for _, item := range list {
		if item.Meta().ID != id {
			continue
		}
		if err := fn(item); err != nil {
			return zero, err
		}
		if err := validation.Struct(item); err != nil {
			return zero, err
		}
		item.Meta().UpdatedAt = entity.NewTimestamp(uc.now().UTC())
		if err := uc.repo.Save(ctx, list); err != nil {
			return zero, err
		}
		return item, nil
	}
	return zero, domain.ErrNotFound
}

// Delete elimina el registro.
func (uc *ContentUseCase[T]) Delete(ctx context.Context, id string) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	list, err := uc.repo.Load(ctx)
	if err != nil {
		return err
	}
	out := make([]T, 0, len(list))
	for _, item := range list {
		if item.Meta().ID != id {
			out = append(out, item)
		}
	}
	if len(out) == len(list) {
		return domain.ErrNotFound
	}
	return uc.repo.Save(ctx, out)
}

// All devuelve la colección completa en el orden del listado.
func (uc *ContentUseCase[T]) All(ctx context.Context) ([]T, error) {
	list, err := uc.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(list, func(i, j int) bool { return uc.opts.Less(list[i], list[j]) })
	return list, nil
}

// List filtra por q sobre el texto buscable de cada registro y pagina.
func (uc *ContentUseCase[T]) List(ctx context.Context, q string, page dto.PageRequest) (*dto.ContentListResponse[T], error) {
	list, err := uc.All(ctx)
	if err != nil {
		return nil, err
	}
	m := textsearch.NewMatcher(q)
	filtered := make([]T, 0, len(list))
	for _, item := range list {
		if m.Match(item.SearchText()) {
			filtered = append(filtered, item)
		}
	}
	page.DefaultPage()
	items := paginate(filtered, page)
	if items == nil {
		items = []T{}
	}
	return &dto.ContentListResponse[T]{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: len(filtered)},
	}, nil
}
