package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/Contenidos-api/internal/domain/entity"
	"github.com/jhoicas/Contenidos-api/internal/domain/repository"
	"github.com/jhoicas/Contenidos-api/pkg/validation"
)

// AboutUseCase lectura y reemplazo del documento "Nosotros".
type AboutUseCase struct {
	repo repository.AboutRepository
	now  func() time.Time
	mu   sync.Mutex
}

func NewAboutUseCase(repo repository.AboutRepository) *AboutUseCase {
	return &AboutUseCase{repo: repo, now: time.Now}
}

// Get devuelve el documento guardado o uno vacío si nunca se editó.
func (uc *AboutUseCase) Get(ctx context.Context) (*entity.AboutPage, error) {
	page, err := uc.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	if page == nil {
		return &entity.AboutPage{}, nil
	}
	return page, nil
}

// Put reemplaza el documento completo.
func (uc *AboutUseCase) Put(ctx context.Context, page entity.AboutPage) (*entity.AboutPage, error) {
	if err := validation.Struct(page); err != nil {
		return nil, err
	}
	uc.mu.Lock()
	defer uc.mu.Unlock()
	page.UpdatedAt = entity.NewTimestamp(uc.now().UTC())
	if err := uc.repo.Save(ctx, &page); err != nil {
		return nil, err
	}
	return &page, nil
}
