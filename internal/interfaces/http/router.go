package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Contenidos-api/internal/application/auth"
	"github.com/jhoicas/Contenidos-api/internal/application/usecase"
	"github.com/jhoicas/Contenidos-api/internal/domain/entity"
)

// ContentUseCases un caso de uso por colección de contenido.
type ContentUseCases struct {
	Blogs       *usecase.ContentUseCase[*entity.BlogPost]
	Careers     *usecase.ContentUseCase[*entity.Career]
	Events      *usecase.ContentUseCase[*entity.Event]
	News        *usecase.ContentUseCase[*entity.NewsItem]
	Industries  *usecase.ContentUseCase[*entity.IndustryPage]
	Locations   *usecase.ContentUseCase[*entity.Location]
	SEO         *usecase.ContentUseCase[*entity.SEOEntry]
	SocialLinks *usecase.ContentUseCase[*entity.SocialLink]
	FAQs        *usecase.ContentUseCase[*entity.FAQ]
	Contacts    *usecase.ContentUseCase[*entity.Contact]
}

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CategoryUC *usecase.CategoryUseCase
	ProductUC  *usecase.ProductUseCase
	Content    ContentUseCases
	AboutUC    *usecase.AboutUseCase
	SitemapUC  *usecase.SitemapUseCase
	BackupUC   *usecase.BackupUseCase
	AuthUC     *auth.AuthUseCase
	JWTSecret  string
	Log        zerolog.Logger
}

// Router registra las rutas de la API.
// Las rutas públicas van antes del grupo protegido: el middleware del grupo aplica a todo lo que venga después bajo /api.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log

	// Sitemap (público)
	app.Get("/sitemap.xml", NewSitemapHandler(deps.SitemapUC, log).Get)

	api := app.Group("/api")

	// Auth
	authHandler := NewAuthHandler(deps.AuthUC, log)
	api.Post("/auth/login", authHandler.Login)
	api.Post("/auth/register", AuthMiddleware(deps.JWTSecret), RequireRole(entity.RoleAdmin), authHandler.Register)

	// Formulario de contacto del sitio (público)
	contactHandler := NewContactHandler(deps.Content.Contacts, log)
	api.Post("/contacts", contactHandler.Submit)

	// Rutas protegidas (requieren Bearer Token con rol de operador)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret), RequireRole(entity.RoleAdmin, entity.RoleEditor))

	// Categorías
	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC, log)
	categories.Get("/", categoryHandler.Tree)
	categories.Post("/", categoryHandler.CreateRoot)
	categories.Get("/flat", categoryHandler.Rows)
	categories.Get("/dangling", categoryHandler.Dangling)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Patch("/:id", categoryHandler.Update)
	categories.Delete("/:id", categoryHandler.Delete)
	categories.Post("/:id/subcategories", categoryHandler.AddSubcategory)
	categories.Put("/:id/products", categoryHandler.AssignProducts)

	// Repuestos
	parts := protected.Group("/parts")
	productHandler := NewProductHandler(deps.ProductUC, log)
	parts.Get("/", productHandler.List)
	parts.Post("/", productHandler.Create)
	parts.Get("/:id", productHandler.GetByID)
	parts.Put("/:id", productHandler.Update)
	parts.Delete("/:id", productHandler.Delete)

	// Contenido
	cu := deps.Content
	NewContentHandler(cu.Blogs, log).Mount(protected, true)
	NewContentHandler(cu.Careers, log).Mount(protected, true)
	NewContentHandler(cu.Events, log).Mount(protected, true)
	NewContentHandler(cu.News, log).Mount(protected, true)
	NewContentHandler(cu.Industries, log).Mount(protected, true)
	NewContentHandler(cu.Locations, log).Mount(protected, true)
	NewContentHandler(cu.SEO, log).Mount(protected, true)
	NewContentHandler(cu.SocialLinks, log).Mount(protected, true)
	NewContentHandler(cu.FAQs, log).Mount(protected, true)
	protected.Patch("/contacts/:id/status", contactHandler.SetStatus)
	NewContentHandler(cu.Contacts, log).Mount(protected, false)

	// Nosotros
	aboutHandler := NewAboutHandler(deps.AboutUC, log)
	protected.Get("/about", aboutHandler.Get)
	protected.Put("/about", aboutHandler.Put)

	// Respaldo (solo admin)
	backupHandler := NewBackupHandler(deps.BackupUC, log)
	protected.Get("/backup", RequireRole(entity.RoleAdmin), backupHandler.Export)
	protected.Post("/backup", RequireRole(entity.RoleAdmin), backupHandler.Import)
}
