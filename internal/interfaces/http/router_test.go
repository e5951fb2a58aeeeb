package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Contenidos-api/internal/application/auth"
	"github.com/jhoicas/Contenidos-api/internal/application/dto"
	"github.com/jhoicas/Contenidos-api/internal/application/usecase"
	"github.com/jhoicas/Contenidos-api/internal/domain/entity"
	"github.com/jhoicas/Contenidos-api/internal/infrastructure/blobstore"
	"github.com/jhoicas/Contenidos-api/internal/infrastructure/memory"
	"github.com/jhoicas/Contenidos-api/internal/infrastructure/sitemap"
	apphttp "github.com/jhoicas/Contenidos-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers: API completa sobre el store en memoria
// ──────────────────────────────────────────────────────────────────────────────

type testAPI struct {
	app   *fiber.App
	store *memory.KVStore
	admin string
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	log := zerolog.Nop()
	store := memory.NewKVStore()

	seo := blobstore.NewContentRepository[*entity.SEOEntry](store, entity.KindSEO, log)
	products := blobstore.NewProductRepository(store, log)
	authUC := auth.NewAuthUseCase(blobstore.NewUserRepository(store, log), auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer}, log)

	deps := apphttp.RouterDeps{
		CategoryUC: usecase.NewCategoryUseCase(blobstore.NewCategoryRepository(store, log), products, log),
		ProductUC:  usecase.NewProductUseCase(products, log),
		Content: apphttp.ContentUseCases{
			Blogs:       usecase.NewContentUseCase(blobstore.NewContentRepository[*entity.BlogPost](store, entity.KindBlog, log), entity.KindBlog, usecase.BlogOptions(), log),
			Careers:     usecase.NewContentUseCase(blobstore.NewContentRepository[*entity.Career](store, entity.KindCareer, log), entity.KindCareer, usecase.CareerOptions(), log),
			Events:      usecase.NewContentUseCase(blobstore.NewContentRepository[*entity.Event](store, entity.KindEvent, log), entity.KindEvent, usecase.ContentOptions[*entity.Event]{}, log),
			News:        usecase.NewContentUseCase(blobstore.NewContentRepository[*entity.NewsItem](store, entity.KindNews, log), entity.KindNews, usecase.ContentOptions[*entity.NewsItem]{}, log),
			Industries:  usecase.NewContentUseCase(blobstore.NewContentRepository[*entity.IndustryPage](store, entity.KindIndustry, log), entity.KindIndustry, usecase.ContentOptions[*entity.IndustryPage]{}, log),
			Locations:   usecase.NewContentUseCase(blobstore.NewContentRepository[*entity.Location](store, entity.KindLocation, log), entity.KindLocation, usecase.ContentOptions[*entity.Location]{}, log),
			SEO:         usecase.NewContentUseCase(seo, entity.KindSEO, usecase.SEOOptions(), log),
			SocialLinks: usecase.NewContentUseCase(blobstore.NewContentRepository[*entity.SocialLink](store, entity.KindSocialLink, log), entity.KindSocialLink, usecase.SocialLinkOptions(), log),
			FAQs:        usecase.NewContentUseCase(blobstore.NewContentRepository[*entity.FAQ](store, entity.KindFAQ, log), entity.KindFAQ, usecase.FAQOptions(), log),
			Contacts:    usecase.NewContentUseCase(blobstore.NewContentRepository[*entity.Contact](store, entity.KindContact, log), entity.KindContact, usecase.ContactOptions(), log),
		},
		AboutUC:   usecase.NewAboutUseCase(blobstore.NewAboutRepository(store, log)),
		SitemapUC: usecase.NewSitemapUseCase(seo, sitemap.NewBuilder(log), "https://www.example.com"),
		BackupUC:  usecase.NewBackupUseCase(store, blobstore.BackupSchema(), log),
		AuthUC:    authUC,
		JWTSecret: testJWTSecret,
		Log:       log,
	}
	app := fiber.New()
	apphttp.Router(app, deps)

	created, err := authUC.EnsureAdmin(context.Background(), "admin@example.com", "admin-pass-123", "Admin")
	require.NoError(t, err)
	require.True(t, created)
	login, err := authUC.Login(context.Background(), dto.LoginRequest{Email: "admin@example.com", Password: "admin-pass-123"})
	require.NoError(t, err)

	return &testAPI{app: app, store: store, admin: "Bearer " + login.Token}
}

// call lanza la petición y decodifica el cuerpo JSON en out (si no es nil).
func (a *testAPI) call(t *testing.T, method, path, token string, body any, out any) int {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

// ──────────────────────────────────────────────────────────────────────────────
// Categorías
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_CategoriasFlujoCompleto(t *testing.T) {
	api := newTestAPI(t)

	var root dto.CategoryNodeResponse
	require.Equal(t, http.StatusCreated, api.call(t, http.MethodPost, "/api/categories", api.admin, dto.CreateCategoryRequest{Title: "Engine Parts"}, &root))

	var sub dto.CategoryNodeResponse
	require.Equal(t, http.StatusCreated, api.call(t, http.MethodPost, "/api/categories/"+root.ID+"/subcategories", api.admin, dto.CreateCategoryRequest{Title: "Pistons"}, &sub))

	var assigned dto.CategoryNodeResponse
	require.Equal(t, http.StatusOK, api.call(t, http.MethodPut, "/api/categories/"+sub.ID+"/products", api.admin, dto.AssignProductsRequest{ProductIDs: []string{"p1", "p3"}}, &assigned))
	assert.Equal(t, []string{"p1", "p3"}, assigned.AssignedProducts)

	var tree dto.CategoryTreeResponse
	require.Equal(t, http.StatusOK, api.call(t, http.MethodGet, "/api/categories", api.admin, nil, &tree))
	require.Len(t, tree.Items, 1)
	assert.Equal(t, "Pistons", tree.Items[0].Subcategories[0].Title)

	var detail dto.CategoryDetailResponse
	require.Equal(t, http.StatusOK, api.call(t, http.MethodGet, "/api/categories/"+sub.ID, api.admin, nil, &detail))
	assert.Equal(t, []string{"p1", "p3"}, detail.MissingProducts)

	var rows dto.CategoryRowListResponse
	require.Equal(t, http.StatusOK, api.call(t, http.MethodGet, "/api/categories/flat?limit=1&offset=1", api.admin, nil, &rows))
	assert.Equal(t, 2, rows.Page.Total)
	require.Len(t, rows.Items, 1)
	assert.Equal(t, []string{"Engine Parts", "Pistons"}, rows.Items[0].Path)

	assert.Equal(t, http.StatusNoContent, api.call(t, http.MethodDelete, "/api/categories/"+root.ID, api.admin, nil, nil))
	require.Equal(t, http.StatusOK, api.call(t, http.MethodGet, "/api/categories", api.admin, nil, &tree))
	assert.Empty(t, tree.Items)
}

func TestRouter_CategoriaInexistente404(t *testing.T) {
	api := newTestAPI(t)

	var errResp dto.ErrorResponse
	assert.Equal(t, http.StatusNotFound, api.call(t, http.MethodPost, "/api/categories/no-existe/subcategories", api.admin, dto.CreateCategoryRequest{Title: "Pistons"}, &errResp))
	assert.Equal(t, "NOT_FOUND", errResp.Code)
	assert.Equal(t, http.StatusNotFound, api.call(t, http.MethodDelete, "/api/categories/no-existe", api.admin, nil, nil))

	_, ok, err := api.store.Get(context.Background(), blobstore.KeyCategories)
	require.NoError(t, err)
	assert.False(t, ok, "un no-op no debe escribir el bosque")
}

func TestRouter_IfMatchDesactualizado412(t *testing.T) {
	api := newTestAPI(t)

	var root dto.CategoryNodeResponse
	require.Equal(t, http.StatusCreated, api.call(t, http.MethodPost, "/api/categories", api.admin, dto.CreateCategoryRequest{Title: "Engine Parts"}, &root))

	req := httptest.NewRequest(http.MethodGet, "/api/categories", nil)
	req.Header.Set("Authorization", api.admin)
	resp, err := api.app.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()
	etag := resp.Header.Get("ETag")
	assert.Equal(t, `"`+root.TreeVersion+`"`, etag)

	patch := func(ifMatch, title string) *http.Response {
		raw, err := json.Marshal(map[string]string{"title": title})
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodPatch, "/api/categories/"+root.ID, bytes.NewReader(raw))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", api.admin)
		req.Header.Set("If-Match", ifMatch)
		resp, err := api.app.Test(req, -1)
		require.NoError(t, err)
		return resp
	}

	first := patch(etag, "Motor")
	first.Body.Close()
	require.Equal(t, http.StatusOK, first.StatusCode)
	assert.NotEqual(t, etag, first.Header.Get("ETag"))

	stale := patch(`W/`+etag, "Motor 2")
	defer stale.Body.Close()
	assert.Equal(t, http.StatusPreconditionFailed, stale.StatusCode)
	var errResp dto.ErrorResponse
	require.NoError(t, json.NewDecoder(stale.Body).Decode(&errResp))
	assert.Equal(t, "PRECONDITION_FAILED", errResp.Code)

	del := httptest.NewRequest(http.MethodDelete, "/api/categories/"+root.ID, nil)
	del.Header.Set("Authorization", api.admin)
	del.Header.Set("If-Match", first.Header.Get("ETag"))
	delResp, err := api.app.Test(del, -1)
	require.NoError(t, err)
	delResp.Body.Close()
	require.Equal(t, http.StatusNoContent, delResp.StatusCode)
	afterDelete := delResp.Header.Get("ETag")
	assert.NotEmpty(t, afterDelete)

	var tree dto.CategoryTreeResponse
	require.Equal(t, http.StatusOK, api.call(t, http.MethodGet, "/api/categories", api.admin, nil, &tree))
	assert.Equal(t, `"`+tree.Version+`"`, afterDelete, "el ETag del borrado sirve para la siguiente escritura")
}

func TestRouter_ValidacionDevuelve400(t *testing.T) {
	api := newTestAPI(t)

	var errResp dto.ErrorResponse
	assert.Equal(t, http.StatusBadRequest, api.call(t, http.MethodPost, "/api/categories", api.admin, map[string]string{"title": ""}, &errResp))
	assert.Equal(t, "VALIDATION", errResp.Code)
	assert.NotNil(t, errResp.Details)

	req := httptest.NewRequest(http.MethodPost, "/api/categories", bytes.NewReader([]byte(`{"title":`)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", api.admin)
	resp, err := api.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRouter_SinTokenRetorna401(t *testing.T) {
	api := newTestAPI(t)
	assert.Equal(t, http.StatusUnauthorized, api.call(t, http.MethodGet, "/api/categories", "", nil, nil))
	assert.Equal(t, http.StatusUnauthorized, api.call(t, http.MethodGet, "/api/blogs", "", nil, nil))
}

// ──────────────────────────────────────────────────────────────────────────────
// Contenido, contactos, sitemap y respaldo
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_ContenidoCRUD(t *testing.T) {
	api := newTestAPI(t)

	var faq entity.FAQ
	require.Equal(t, http.StatusCreated, api.call(t, http.MethodPost, "/api/faqs", api.admin, map[string]any{"question": "¿Envíos?", "answer": "Sí"}, &faq))
	assert.NotEmpty(t, faq.ID)

	var list dto.ContentListResponse[entity.FAQ]
	require.Equal(t, http.StatusOK, api.call(t, http.MethodGet, "/api/faqs?q=envios", api.admin, nil, &list))
	assert.Equal(t, 1, list.Page.Total)

	var replaced entity.FAQ
	require.Equal(t, http.StatusOK, api.call(t, http.MethodPut, "/api/faqs/"+faq.ID, api.admin, map[string]any{"question": "¿Hacen envíos?", "answer": "A todo el país"}, &replaced))
	assert.Equal(t, faq.ID, replaced.ID)

	assert.Equal(t, http.StatusNoContent, api.call(t, http.MethodDelete, "/api/faqs/"+faq.ID, api.admin, nil, nil))
	assert.Equal(t, http.StatusNotFound, api.call(t, http.MethodGet, "/api/faqs/"+faq.ID, api.admin, nil, nil))
}

func TestRouter_ContactoPublicoYEstado(t *testing.T) {
	api := newTestAPI(t)

	var msg entity.Contact
	require.Equal(t, http.StatusCreated, api.call(t, http.MethodPost, "/api/contacts", "", map[string]any{"name": "Ana", "email": "ana@example.com", "message": "Hola"}, &msg))
	assert.Equal(t, entity.ContactStatusNew, msg.Status)

	assert.Equal(t, http.StatusUnauthorized, api.call(t, http.MethodGet, "/api/contacts", "", nil, nil))

	var updated entity.Contact
	require.Equal(t, http.StatusOK, api.call(t, http.MethodPatch, "/api/contacts/"+msg.ID+"/status", api.admin, dto.ContactStatusRequest{Status: "read"}, &updated))
	assert.Equal(t, entity.ContactStatusRead, updated.Status)
	assert.Equal(t, http.StatusBadRequest, api.call(t, http.MethodPatch, "/api/contacts/"+msg.ID+"/status", api.admin, dto.ContactStatusRequest{Status: "spam"}, nil))
}

func TestRouter_Sitemap(t *testing.T) {
	api := newTestAPI(t)
	require.Equal(t, http.StatusCreated, api.call(t, http.MethodPost, "/api/seo", api.admin, map[string]any{"page_path": "/repuestos", "change_freq": "weekly"}, nil))

	resp, err := api.app.Test(httptest.NewRequest(http.MethodGet, "/sitemap.xml", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "application/xml")
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "<loc>https://www.example.com/repuestos</loc>")
}

func TestRouter_BackupSoloAdmin(t *testing.T) {
	api := newTestAPI(t)

	var editor dto.UserResponse
	require.Equal(t, http.StatusCreated, api.call(t, http.MethodPost, "/api/auth/register", api.admin, dto.RegisterRequest{Email: "editor@example.com", Password: "editor-pass-1"}, &editor))
	assert.Equal(t, entity.RoleEditor, editor.Role)

	var login dto.LoginResponse
	require.Equal(t, http.StatusOK, api.call(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "editor@example.com", Password: "editor-pass-1"}, &login))
	editorToken := "Bearer " + login.Token

	assert.Equal(t, http.StatusOK, api.call(t, http.MethodGet, "/api/categories", editorToken, nil, nil))
	assert.Equal(t, http.StatusForbidden, api.call(t, http.MethodGet, "/api/backup", editorToken, nil, nil))
	assert.Equal(t, http.StatusForbidden, api.call(t, http.MethodPost, "/api/auth/register", editorToken, dto.RegisterRequest{Email: "x@example.com", Password: "12345678"}, nil))

	var backup dto.Backup
	assert.Equal(t, http.StatusOK, api.call(t, http.MethodGet, "/api/backup", api.admin, nil, &backup))
	assert.NotContains(t, backup.Collections, blobstore.KeyUsers)
}

func TestRouter_BackupConFormaEquivocada400(t *testing.T) {
	api := newTestAPI(t)

	var root dto.CategoryNodeResponse
	require.Equal(t, http.StatusCreated, api.call(t, http.MethodPost, "/api/categories", api.admin, dto.CreateCategoryRequest{Title: "Engine Parts"}, &root))

	var errResp dto.ErrorResponse
	bad := dto.Backup{Collections: map[string]json.RawMessage{blobstore.KeyCategories: json.RawMessage(`{"a":1}`)}}
	assert.Equal(t, http.StatusBadRequest, api.call(t, http.MethodPost, "/api/backup", api.admin, bad, &errResp))
	assert.Equal(t, "VALIDATION", errResp.Code)

	var tree dto.CategoryTreeResponse
	require.Equal(t, http.StatusOK, api.call(t, http.MethodGet, "/api/categories", api.admin, nil, &tree))
	require.Len(t, tree.Items, 1)
	assert.Equal(t, root.ID, tree.Items[0].ID)
}

func TestRouter_LoginCredencialesInvalidas(t *testing.T) {
	api := newTestAPI(t)
	var errResp dto.ErrorResponse
	assert.Equal(t, http.StatusUnauthorized, api.call(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "admin@example.com", Password: "mala"}, &errResp))
	assert.Equal(t, "UNAUTHORIZED", errResp.Code)
}
