package ports

import "time"

// SitemapURL entrada <url> del sitemap.
type SitemapURL struct {
	Loc        string
	LastMod    time.Time
	ChangeFreq string
	Priority   *float64
}

// SitemapRenderer serializa las entradas como documento sitemap.xml.
// Implementado en infrastructure/sitemap.
type SitemapRenderer interface {
	Render(urls []SitemapURL) ([]byte, error)
}
