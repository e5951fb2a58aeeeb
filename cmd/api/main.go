package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Contenidos-api/internal/application/auth"
	"github.com/jhoicas/Contenidos-api/internal/application/usecase"
	"github.com/jhoicas/Contenidos-api/internal/domain/entity"
	"github.com/jhoicas/Contenidos-api/internal/domain/repository"
	"github.com/jhoicas/Contenidos-api/internal/infrastructure/blobstore"
	"github.com/jhoicas/Contenidos-api/internal/infrastructure/sitemap"
	"github.com/jhoicas/Contenidos-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/Contenidos-api/internal/interfaces/http"
	"github.com/jhoicas/Contenidos-api/pkg/config"
	"github.com/jhoicas/Contenidos-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	// run cierra el store en sus defers antes de que salgamos con código 1.
	if err := run(cfg, log); err != nil {
		log.Error().Err(err).Msg("aplicación detenida con error")
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *logger.Logger) error {
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	store, err := storage.Open(ctx, cfg, log.Component("storage"))
	if err != nil {
		return fmt.Errorf("abrir almacenamiento: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Error().Err(err).Msg("cerrar almacenamiento")
		}
	}()

	repoLog := log.Component("blobstore")
	productRepo := blobstore.NewProductRepository(store, repoLog)
	seoRepo := blobstore.NewContentRepository[*entity.SEOEntry](store, entity.KindSEO, repoLog)
	userRepo := blobstore.NewUserRepository(store, repoLog)

	ucLog := log.Component("usecase")
	categoryUC := usecase.NewCategoryUseCase(blobstore.NewCategoryRepository(store, repoLog), productRepo, ucLog)
	productUC := usecase.NewProductUseCase(productRepo, ucLog)
	aboutUC := usecase.NewAboutUseCase(blobstore.NewAboutRepository(store, repoLog))
	sitemapUC := usecase.NewSitemapUseCase(seoRepo, sitemap.NewBuilder(log.Component("sitemap")), cfg.Site.BaseURL)
	backupUC := usecase.NewBackupUseCase(store, blobstore.BackupSchema(), ucLog)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, log.Component("auth"))

	// Primer administrador: solo si el store no tiene usuarios.
	created, err := authUC.EnsureAdmin(ctx, cfg.Admin.Email, cfg.Admin.Password, cfg.Admin.Name)
	if err != nil {
		return fmt.Errorf("crear administrador inicial: %w", err)
	}
	if created {
		log.Info().Str("email", cfg.Admin.Email).Msg("administrador inicial creado")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    8 * 1024 * 1024, // respaldos completos
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs (solo si existe el archivo generado)
	if _, err := os.Stat(cfg.HTTP.SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.HTTP.SwaggerFile,
			Path:     "docs",
			Title:    "Contenidos API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		if _, err := store.Keys(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "store": cfg.Store.Driver})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CategoryUC: categoryUC,
		ProductUC:  productUC,
		Content:    contentUseCases(store, repoLog, ucLog),
		AboutUC:    aboutUC,
		SitemapUC:  sitemapUC,
		BackupUC:   backupUC,
		AuthUC:     authUC,
		JWTSecret:  cfg.JWT.Secret,
		Log:        log.Component("http"),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
	return nil
}

// contentUseCases arma un caso de uso por colección de contenido.
func contentUseCases(store repository.KeyValueStore, repoLog, ucLog zerolog.Logger) httpRouter.ContentUseCases {
	return httpRouter.ContentUseCases{
		Blogs:       usecase.NewContentUseCase(blobstore.NewContentRepository[*entity.BlogPost](store, entity.KindBlog, repoLog), entity.KindBlog, usecase.BlogOptions(), ucLog),
		Careers:     usecase.NewContentUseCase(blobstore.NewContentRepository[*entity.Career](store, entity.KindCareer, repoLog), entity.KindCareer, usecase.CareerOptions(), ucLog),
		Events:      usecase.NewContentUseCase(blobstore.NewContentRepository[*entity.Event](store, entity.KindEvent, repoLog), entity.KindEvent, usecase.ContentOptions[*entity.Event]{}, ucLog),
		News:        usecase.NewContentUseCase(blobstore.NewContentRepository[*entity.NewsItem](store, entity.KindNews, repoLog), entity.KindNews, usecase.ContentOptions[*entity.NewsItem]{}, ucLog),
		Industries:  usecase.NewContentUseCase(blobstore.NewContentRepository[*entity.IndustryPage](store, entity.KindIndustry, repoLog), entity.KindIndustry, usecase.ContentOptions[*entity.IndustryPage]{}, ucLog),
		Locations:   usecase.NewContentUseCase(blobstore.NewContentRepository[*entity.Location](store, entity.KindLocation, repoLog), entity.KindLocation, usecase.ContentOptions[*entity.Location]{}, ucLog),
		SEO:         usecase.NewContentUseCase(blobstore.NewContentRepository[*entity.SEOEntry](store, entity.KindSEO, repoLog), entity.KindSEO, usecase.SEOOptions(), ucLog),
		SocialLinks: usecase.NewContentUseCase(blobstore.NewContentRepository[*entity.SocialLink](store, entity.KindSocialLink, repoLog), entity.KindSocialLink, usecase.SocialLinkOptions(), ucLog),
		FAQs:        usecase.NewContentUseCase(blobstore.NewContentRepository[*entity.FAQ](store, entity.KindFAQ, repoLog), entity.KindFAQ, usecase.FAQOptions(), ucLog),
		Contacts:    usecase.NewContentUseCase(blobstore.NewContentRepository[*entity.Contact](store, entity.KindContact, repoLog), entity.KindContact, usecase.ContactOptions(), ucLog),
	}
}
