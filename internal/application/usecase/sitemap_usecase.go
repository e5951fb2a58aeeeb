package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/Contenidos-api/internal/application/ports"
	"github.com/jhoicas/Contenidos-api/internal/domain/entity"
	"github.com/jhoicas/Contenidos-api/internal/domain/repository"
)

// SitemapUseCase genera sitemap.xml a partir de las entradas SEO.
type SitemapUseCase struct {
	seo      repository.ContentRepository[*entity.SEOEntry]
	renderer ports.SitemapRenderer
	baseURL  string
}

// NewSitemapUseCase baseURL es el origen público del sitio, p. ej. https://www.ejemplo.com.
func NewSitemapUseCase(seo repository.ContentRepository[*entity.SEOEntry], renderer ports.SitemapRenderer, baseURL string) *SitemapUseCase {
	return &SitemapUseCase{seo: seo, renderer: renderer, baseURL: strings.TrimRight(baseURL, "/")}
}

// Render construye el documento. Si una entrada define canonical_url se usa esa URL.
func (uc *SitemapUseCase) Render(ctx context.Context) ([]byte, error) {
	entries, err := uc.seo.Load(ctx)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(entries))
	urls := make([]ports.SitemapURL, 0, len(entries))
	for _, e := range entries {
		loc := e.CanonicalURL
		if loc == "" {
			loc = uc.baseURL + e.PagePath
		}
		if seen[loc] {
			continue
		}
		seen[loc] = true
		urls = append(urls, ports.SitemapURL{
			Loc:        loc,
			LastMod:    e.UpdatedAt.Time,
			ChangeFreq: e.ChangeFreq,
			Priority:   e.Priority,
		})
	}
	return uc.renderer.Render(urls)
}
