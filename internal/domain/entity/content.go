package entity

import "strings"

// ContentKind identifica cada colección editable del panel.
type ContentKind string

const (
	KindBlog       ContentKind = "blogs"
	KindCareer     ContentKind = "careers"
	KindEvent      ContentKind = "events"
	KindNews       ContentKind = "news"
	KindIndustry   ContentKind = "industries"
	KindLocation   ContentKind = "locations"
	KindSEO        ContentKind = "seo"
	KindSocialLink ContentKind = "social_links"
	KindFAQ        ContentKind = "faqs"
	KindContact    ContentKind = "contacts"
)

// ContentKinds todas las colecciones de contenido, en el orden del menú del panel.
func ContentKinds() []ContentKind {
	return []ContentKind{KindBlog, KindCareer, KindEvent, KindNews, KindIndustry, KindLocation, KindSEO, KindSocialLink, KindFAQ, KindContact}
}

// StorageKey clave bajo la que se guarda la colección completa.
func (k ContentKind) StorageKey() string { return string(k) }

// Content contrato común de los registros de contenido.
type Content interface {
	Meta() *ContentMeta
	// SearchText devuelve el texto sobre el que se aplica el filtro q del listado.
	SearchText() string
}

// ContentMeta campos administrados por el servidor.
type ContentMeta struct {
	ID        string    `json:"id"`
	CreatedAt Timestamp `json:"created_at"`
	UpdatedAt Timestamp `json:"updated_at"`
}

// Meta devuelve los metadatos del registro.
func (m *ContentMeta) Meta() *ContentMeta { return m }

// BlogPost entrada del blog.
type BlogPost struct {
	ContentMeta
	Title       string     `json:"title" validate:"required,max=200"`
	Slug        string     `json:"slug" validate:"omitempty,max=200"`
	Author      string     `json:"author"`
	Summary     string     `json:"summary"`
	Body        string     `json:"body"`
	Image       string     `json:"image"`
	Tags        []string   `json:"tags"`
	Status      string     `json:"status" validate:"omitempty,oneof=draft published"`
	PublishedAt *Timestamp `json:"published_at,omitempty"`
}

func (b *BlogPost) SearchText() string {
	return join(b.Title, b.Author, b.Summary, strings.Join(b.Tags, " "))
}

// Career vacante publicada en "Trabaja con nosotros".
type Career struct {
	ContentMeta
	Title          string   `json:"title" validate:"required,max=200"`
	Department     string   `json:"department"`
	Location       string   `json:"location"`
	EmploymentType string   `json:"employment_type" validate:"omitempty,oneof=full_time part_time contract internship"`
	Description    string   `json:"description"`
	Requirements   []string `json:"requirements"`
	ApplyEmail     string   `json:"apply_email" validate:"omitempty,email"`
	Status         string   `json:"status" validate:"omitempty,oneof=open closed"`
}

func (c *Career) SearchText() string {
	return join(c.Title, c.Department, c.Location)
}

// Event evento publicado.
type Event struct {
	ContentMeta
	Title           string     `json:"title" validate:"required,max=200"`
	Description     string     `json:"description"`
	Venue           string     `json:"venue"`
	StartsAt        *Timestamp `json:"starts_at,omitempty"`
	EndsAt          *Timestamp `json:"ends_at,omitempty"`
	Image           string     `json:"image"`
	RegistrationURL string     `json:"registration_url" validate:"omitempty,url"`
}

func (e *Event) SearchText() string {
	return join(e.Title, e.Venue, e.Description)
}

// NewsItem noticia o nota de prensa.
type NewsItem struct {
	ContentMeta
	Title       string     `json:"title" validate:"required,max=200"`
	Summary     string     `json:"summary"`
	Body        string     `json:"body"`
	Source      string     `json:"source"`
	SourceURL   string     `json:"source_url" validate:"omitempty,url"`
	Image       string     `json:"image"`
	PublishedAt *Timestamp `json:"published_at,omitempty"`
}

func (n *NewsItem) SearchText() string {
	return join(n.Title, n.Summary, n.Source)
}

// IndustryPage página de una industria atendida.
type IndustryPage struct {
	ContentMeta
	Title       string   `json:"title" validate:"required,max=200"`
	Slug        string   `json:"slug"`
	Description string   `json:"description"`
	Image       string   `json:"image"`
	Highlights  []string `json:"highlights"`
}

func (i *IndustryPage) SearchText() string {
	return join(i.Title, i.Slug, i.Description)
}

// Location sede u oficina.
type Location struct {
	ContentMeta
	Name      string   `json:"name" validate:"required,max=200"`
	Address   string   `json:"address"`
	City      string   `json:"city"`
	Country   string   `json:"country"`
	Phone     string   `json:"phone"`
	Email     string   `json:"email" validate:"omitempty,email"`
	Latitude  *float64 `json:"latitude,omitempty" validate:"omitempty,min=-90,max=90"`
	Longitude *float64 `json:"longitude,omitempty" validate:"omitempty,min=-180,max=180"`
}

func (l *Location) SearchText() string {
	return join(l.Name, l.Address, l.City, l.Country)
}

// SEOEntry metadatos SEO de una ruta del sitio.
type SEOEntry struct {
	ContentMeta
	PagePath        string   `json:"page_path" validate:"required,startswith=/"`
	MetaTitle       string   `json:"meta_title" validate:"omitempty,max=70"`
	MetaDescription string   `json:"meta_description" validate:"omitempty,max=320"`
	Keywords        []string `json:"keywords"`
	CanonicalURL    string   `json:"canonical_url" validate:"omitempty,url"`
	OGImage         string   `json:"og_image"`
	ChangeFreq      string   `json:"change_freq" validate:"omitempty,oneof=always hourly daily weekly monthly yearly never"`
	Priority        *float64 `json:"priority,omitempty" validate:"omitempty,min=0,max=1"`
}

func (s *SEOEntry) SearchText() string {
	return join(s.PagePath, s.MetaTitle, strings.Join(s.Keywords, " "))
}

// SocialLink enlace a una red social.
type SocialLink struct {
	ContentMeta
	Platform  string `json:"platform" validate:"required,max=50"`
	URL       string `json:"url" validate:"required,url"`
	Icon      string `json:"icon"`
	SortOrder int    `json:"sort_order"`
}

func (s *SocialLink) SearchText() string {
	return join(s.Platform, s.URL)
}

// FAQ pregunta frecuente.
type FAQ struct {
	ContentMeta
	Question  string `json:"question" validate:"required"`
	Answer    string `json:"answer" validate:"required"`
	Category  string `json:"category"`
	SortOrder int    `json:"sort_order"`
}

func (f *FAQ) SearchText() string {
	return join(f.Question, f.Answer, f.Category)
}

// Estados de un mensaje de contacto.
const (
	ContactStatusNew      = "new"
	ContactStatusRead     = "read"
	ContactStatusArchived = "archived"
)

// Contact mensaje enviado desde el formulario público del sitio.
type Contact struct {
	ContentMeta
	Name    string `json:"name" validate:"required,max=200"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject" validate:"omitempty,max=200"`
	Message string `json:"message" validate:"required,max=5000"`
	Status  string `json:"status" validate:"omitempty,oneof=new read archived"`
}

func (c *Contact) SearchText() string {
	return join(c.Name, c.Email, c.Subject)
}

// AboutPage documento único de la página "Nosotros".
type AboutPage struct {
	Title     string    `json:"title" validate:"required,max=200"`
	Subtitle  string    `json:"subtitle"`
	Body      string    `json:"body"`
	Mission   string    `json:"mission"`
	Vision    string    `json:"vision"`
	Image     string    `json:"image"`
	UpdatedAt Timestamp `json:"updated_at"`
}

func join(parts ...string) string {
	return strings.Join(parts, " ")
}
