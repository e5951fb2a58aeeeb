package usecase

import (
	"context"
	"sort"
	"strings"
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

// ProductUseCase casos de uso CRUD del catálogo de repuestos.
// Borrar un repuesto no toca las categorías que lo referencian.
type ProductUseCase struct {
	repo repository.ProductRepository
	log  zerolog.Logger
	now  func() time.Time
	mu   sync.Mutex
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, log zerolog.Logger) *ProductUseCase {
	return &ProductUseCase{repo: repo, log: log, now: time.Now}
}

// Create crea un repuesto. ErrDuplicate si ya existe el mismo número de parte para la marca.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	in.PartName = strings.TrimSpace(in.PartName)
	in.PartBrand = strings.TrimSpace(in.PartBrand)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	if in.Price != nil && in.Price.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	uc.mu.Lock()
	defer uc.mu.Unlock()
	list, err := uc.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	if in.PartNumber != "" {
		for _, p := range list {
			if strings.EqualFold(p.PartNumber, in.PartNumber) && strings.EqualFold(p.PartBrand, in.PartBrand) {
				return nil, domain.ErrDuplicate
			}
		}
	}
	now := entity.NewTimestamp(uc.now().UTC())
	product := &entity.Product{
		ID:         uuid.New().String(),
		PartName:   in.PartName,
		PartBrand:  in.PartBrand,
		PartNumber: in.PartNumber,
		Price:      in.Price,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.repo.Save(ctx, append(list, product)); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un repuesto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	list, err := uc.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range list {
		if p.ID == id {
			return toProductResponse(p), nil
		}
	}
	return nil, domain.ErrNotFound
}

// Update actualiza los campos presentes del repuesto.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	if in.Price != nil && in.Price.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	uc.mu.Lock()
	defer uc.mu.Unlock()
	list, err := uc.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	var product *entity.Product
	for _, p := range list {
		if p.ID == id {
			product = p
			break
		}
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.PartName != nil {
		product.PartName = *in.PartName
	}
	if in.PartBrand != nil {
		product.PartBrand = *in.PartBrand
	}
	if in.PartNumber != nil {
		product.PartNumber = *in.PartNumber
	}
	if in.Price != nil {
		product.Price = in.Price
	}
	product.UpdatedAt = entity.NewTimestamp(uc.now().UTC())
	if err := uc.repo.Save(ctx, list); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Delete elimina el repuesto del catálogo.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	list, err := uc.repo.Load(ctx)
	if err != nil {
		return err
	}
	out := make([]*entity.Product, 0, len(list))
	for _, p := range list {
		if p.ID != id {
			out = append(out, p)
		}
	}
	if len(out) == len(list) {
		return domain.ErrNotFound
	}
	if err := uc.repo.Save(ctx, out); err != nil {
		return err
	}
	uc.log.Info().Str("product_id", id).Msg("repuesto eliminado")
	return nil
}

// List lista repuestos filtrando por nombre, marca o número de parte, ordenados por nombre.
func (uc *ProductUseCase) List(ctx context.Context, q string, page dto.PageRequest) (*dto.ProductListResponse, error) {
	list, err := uc.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	m := textsearch.NewMatcher(q)
	filtered := make([]*entity.Product, 0, len(list))
	for _, p := range list {
		if m.Match(p.PartName + " " + p.PartBrand + " " + p.PartNumber) {
			filtered = append(filtered, p)
		}
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		return textsearch.Normalize(filtered[i].PartName) < textsearch.Normalize(filtered[j].PartName)
	})
	page.DefaultPage()
	items := make([]dto.ProductResponse, 0, page.Limit)
	for _, p := range paginate(filtered, page) {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: len(filtered)},
	}, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:         p.ID,
		PartName:   p.PartName,
		PartBrand:  p.PartBrand,
		PartNumber: p.PartNumber,
		Price:      p.Price,
		CreatedAt:  p.CreatedAt.Time,
		UpdatedAt:  p.UpdatedAt.Time,
	}
}
