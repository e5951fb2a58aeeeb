// Package sitemap serializa sitemap.xml (protocolo sitemaps.org 0.9) con etree.
package sitemap

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/beevik/etree"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Contenidos-api/internal/application/ports"
)

// Namespace del protocolo sitemaps.org.
const Namespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// MaxURLs límite de entradas por documento del protocolo. Lo que sobra se descarta con un aviso.
const MaxURLs = 50000

var _ ports.SitemapRenderer = (*Builder)(nil)

// Builder implementa ports.SitemapRenderer.
type Builder struct {
	Indent int // espacios de sangría; 0 = sin formato
	log    zerolog.Logger
}

func NewBuilder(log zerolog.Logger) *Builder {
	return &Builder{Indent: 2, log: log}
}

// Render construye <urlset> con un <url> por entrada, hasta MaxURLs. lastmod se omite si la fecha es cero.
func (b *Builder) Render(urls []ports.SitemapURL) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	urlset := doc.CreateElement("urlset")
	urlset.CreateAttr("xmlns", Namespace)

	written, dropped := 0, 0
	for _, u := range urls {
		if u.Loc == "" {
			continue
		}
		if written == MaxURLs {
			dropped++
			continue
		}
		written++
		el := urlset.CreateElement("url")
		// etree escapa el texto (&, <, >) al serializar.
		el.CreateElement("loc").SetText(u.Loc)
		if !u.LastMod.IsZero() {
			el.CreateElement("lastmod").SetText(u.LastMod.UTC().Format("2006-01-02"))
		}
		if u.ChangeFreq != "" {
			el.CreateElement("changefreq").SetText(u.ChangeFreq)
		}
		if u.Priority != nil {
			el.CreateElement("priority").SetText(strconv.FormatFloat(*u.Priority, 'f', 1, 64))
		}
	}
	if dropped > 0 {
		b.log.Warn().Int("max", MaxURLs).Int("dropped", dropped).Msg("sitemap truncado al máximo del protocolo")
	}
	if b.Indent > 0 {
		doc.Indent(b.Indent)
	}
	var out bytes.Buffer
	if _, err := doc.WriteTo(&out); err != nil {
		return nil, fmt.Errorf("sitemap: serializar: %w", err)
	}
	return out.Bytes(), nil
}
