package blobstore_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Contenidos-api/internal/domain"
	"github.com/jhoicas/Contenidos-api/internal/domain/entity"
	"github.com/jhoicas/Contenidos-api/internal/infrastructure/blobstore"
	"github.com/jhoicas/Contenidos-api/internal/infrastructure/memory"
)

var nop = zerolog.Nop()

// ──────────────────────────────────────────────────────────────────────────────
// Categorías: lectura tolerante
// ──────────────────────────────────────────────────────────────────────────────

func TestCategoryRepo_ClaveAusenteEsBosqueVacio(t *testing.T) {
	repo := blobstore.NewCategoryRepository(memory.NewKVStore(), nop)

	forest, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, forest)
	assert.Empty(t, forest)
}

func TestCategoryRepo_JSONMalformadoEsBosqueVacio(t *testing.T) {
	ctx := context.Background()
	for name, raw := range map[string]string{
		"truncado":      `[{"id":"1","title":"Motor"`,
		"texto":         `no es json`,
		"tipo distinto": `{"schema_version":1,"items":"cadena"}`,
		"vacío":         ``,
	} {
		t.Run(name, func(t *testing.T) {
			store := memory.NewKVStore()
			require.NoError(t, store.Put(ctx, blobstore.KeyCategories, []byte(raw)))

			forest, err := blobstore.NewCategoryRepository(store, nop).Load(ctx)
			require.NoError(t, err, "un blob corrupto no es un error")
			assert.Empty(t, forest)
		})
	}
}

func TestCategoryRepo_ArrayLegadoSeMigra(t *testing.T) {
	ctx := context.Background()
	store := memory.NewKVStore()
	legacy := `[{"id":"1","title":"Engine Parts","subcategories":[{"id":"2","title":"Pistons","subcategories":[],"assignedProducts":["p1"]}]}]`
	require.NoError(t, store.Put(ctx, blobstore.KeyCategories, []byte(legacy)))

	repo := blobstore.NewCategoryRepository(store, nop)
	forest, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, forest, 1)
	require.Len(t, forest[0].Subcategories, 1)
	assert.Equal(t, []string{"p1"}, forest[0].Subcategories[0].AssignedProducts)

	// al guardar se escribe con sobre versionado
	require.NoError(t, repo.Save(ctx, forest))
	raw, _, _ := store.Get(ctx, blobstore.KeyCategories)
	var env map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &env))
	assert.JSONEq(t, `1`, string(env["schema_version"]))
	assert.Contains(t, env, "items")
}

func TestCategoryRepo_VersionFuturaEsError(t *testing.T) {
	ctx := context.Background()
	store := memory.NewKVStore()
	require.NoError(t, store.Put(ctx, blobstore.KeyCategories, []byte(`{"schema_version":99,"items":[]}`)))

	_, err := blobstore.NewCategoryRepository(store, nop).Load(ctx)
	assert.ErrorIs(t, err, blobstore.ErrSchemaVersion)
}

func TestCategoryRepo_SaveLoadConservaFormaPersistida(t *testing.T) {
	ctx := context.Background()
	store := memory.NewKVStore()
	repo := blobstore.NewCategoryRepository(store, nop)
	updated := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	forest := entity.Forest{{ID: "1", Title: "Frenos", Image: "frenos.png", UpdatedAt: entity.NewTimestamp(updated)}}
	require.NoError(t, repo.Save(ctx, forest))

	raw, _, _ := store.Get(ctx, blobstore.KeyCategories)
	var env struct {
		Items []map[string]any `json:"items"`
	}
	require.NoError(t, json.Unmarshal(raw, &env))
	require.Len(t, env.Items, 1)
	assert.Equal(t, "frenos.png", env.Items[0]["image"])
	assert.Equal(t, []any{}, env.Items[0]["subcategories"], "subcategories siempre como array")

	back, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, back, 1)
	assert.Equal(t, "Frenos", back[0].Title)
	assert.True(t, updated.Equal(back[0].UpdatedAt.Time))
}

func TestCategoryRepo_FechasDelNavegadorSeConservan(t *testing.T) {
	ctx := context.Background()
	store := memory.NewKVStore()
	legacy := `[{"id":"1712345678901","title":"Engine Parts","updatedAt":"4/5/2024, 10:30:00 AM",` +
		`"subcategories":[{"id":"2","title":"Pistons","updatedAt":"ayer","subcategories":[]}]}]`
	require.NoError(t, store.Put(ctx, blobstore.KeyCategories, []byte(legacy)))

	repo := blobstore.NewCategoryRepository(store, nop)
	forest, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, forest, 1)
	assert.Equal(t, time.Date(2024, 4, 5, 10, 30, 0, 0, time.UTC), forest[0].UpdatedAt.Time)
	require.Len(t, forest[0].Subcategories, 1)
	assert.Equal(t, "ayer", forest[0].Subcategories[0].UpdatedAt.Raw)

	require.NoError(t, repo.Save(ctx, forest))
	raw, _, _ := store.Get(ctx, blobstore.KeyCategories)
	assert.Contains(t, string(raw), `"updatedAt":"ayer"`, "el texto no interpretable se reescribe tal cual")
	assert.Contains(t, string(raw), `"updatedAt":"2024-04-05T10:30:00Z"`)
}

func TestCollection_NoSobrescribeValorConFormaInesperada(t *testing.T) {
	ctx := context.Background()
	store := memory.NewKVStore()
	odd := `[{"id":"1","title":5,"subcategories":[]}]`
	require.NoError(t, store.Put(ctx, blobstore.KeyCategories, []byte(odd)))

	repo := blobstore.NewCategoryRepository(store, nop)
	forest, err := repo.Load(ctx)
	require.NoError(t, err, "la lectura sigue siendo tolerante")
	assert.Empty(t, forest)

	err = repo.Save(ctx, entity.Forest{{ID: "n", Title: "Nueva"}})
	assert.ErrorIs(t, err, blobstore.ErrUnreadableBlob)
	assert.ErrorIs(t, err, domain.ErrConflict)
	raw, _, _ := store.Get(ctx, blobstore.KeyCategories)
	assert.Equal(t, odd, string(raw), "el valor original queda intacto")

	// JSON roto sí se trata como ausente y se sobrescribe.
	require.NoError(t, store.Put(ctx, blobstore.KeyCategories, []byte(`[{"id":`)))
	require.NoError(t, repo.Save(ctx, entity.Forest{{ID: "n", Title: "Nueva"}}))
}

func TestUserRepo_FechasLegadasNoVacianUsuarios(t *testing.T) {
	ctx := context.Background()
	store := memory.NewKVStore()
	require.NoError(t, store.Put(ctx, blobstore.KeyUsers,
		[]byte(`[{"id":"u1","email":"admin@example.com","role":"admin","createdAt":"Fri Apr 05 2024 10:30:00 GMT-0500 (hora estándar de Colombia)","updatedAt":1712345678901}]`)))

	repo := blobstore.NewUserRepository(store, nop)
	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	u, err := repo.FindByEmail(ctx, "admin@example.com")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, time.Date(2024, 4, 5, 15, 30, 0, 0, time.UTC), u.CreatedAt.UTC())
	assert.Equal(t, time.UnixMilli(1712345678901).UTC(), u.UpdatedAt.Time)
}

func TestProductRepo_NoSobrescribeCatalogoIlegible(t *testing.T) {
	ctx := context.Background()
	store := memory.NewKVStore()
	require.NoError(t, store.Put(ctx, blobstore.KeyParts, []byte(`{"p1":{"partName":"Pistón"}}`)))

	err := blobstore.NewProductRepository(store, nop).Save(ctx, []*entity.Product{{ID: "p2", PartName: "Biela", PartBrand: "Mahle"}})
	assert.ErrorIs(t, err, blobstore.ErrUnreadableBlob)
}

func TestBackupSchema_ValidaFormaPorClave(t *testing.T) {
	schema := blobstore.BackupSchema()
	assert.NotContains(t, schema, blobstore.KeyUsers)
	assert.Contains(t, schema.Keys(), "faqs")

	assert.NoError(t, schema[blobstore.KeyCategories]([]byte(`[{"id":"1","title":"Motor","updatedAt":"4/5/2024, 10:30:00 AM"}]`)))
	assert.NoError(t, schema[blobstore.KeyAbout]([]byte(`{"title":"Nosotros"}`)))
	assert.Error(t, schema[blobstore.KeyCategories]([]byte(`{"a":1}`)))
	assert.Error(t, schema[blobstore.KeyCategories]([]byte(`{roto`)))
	assert.Error(t, schema["faqs"]([]byte(`[{"question":["no"]}]`)))
}

func TestCategoryRepo_IDsDuplicadosSeCarganIgual(t *testing.T) {
	ctx := context.Background()
	store := memory.NewKVStore()
	require.NoError(t, store.Put(ctx, blobstore.KeyCategories,
		[]byte(`[{"id":"1","title":"A","subcategories":[]},{"id":"1","title":"B","subcategories":[]}]`)))

	forest, err := blobstore.NewCategoryRepository(store, nop).Load(ctx)
	require.NoError(t, err)
	assert.Len(t, forest, 2)
}

// ──────────────────────────────────────────────────────────────────────────────
// Repuestos, contenido, "Nosotros" y usuarios
// ──────────────────────────────────────────────────────────────────────────────

func TestProductRepo_ArrayLegadoConNulls(t *testing.T) {
	ctx := context.Background()
	store := memory.NewKVStore()
	require.NoError(t, store.Put(ctx, blobstore.KeyParts,
		[]byte(`[{"id":"p1","partName":"Pistón","partBrand":"Mahle"},null]`)))

	parts, err := blobstore.NewProductRepository(store, nop).Load(ctx)
	require.NoError(t, err)
	require.Len(t, parts, 1)
	assert.Equal(t, "Mahle", parts[0].PartBrand)
}

func TestContentRepo_ClavePorTipo(t *testing.T) {
	ctx := context.Background()
	store := memory.NewKVStore()
	faqs := blobstore.NewContentRepository[*entity.FAQ](store, entity.KindFAQ, nop)

	require.NoError(t, faqs.Save(ctx, []*entity.FAQ{{ContentMeta: entity.ContentMeta{ID: "f1"}, Question: "¿Envíos?", Answer: "Sí"}}))

	keys, err := store.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"faqs"}, keys)

	got, err := faqs.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "f1", got[0].ID)
}

func TestAboutRepo_ObjetoLegado(t *testing.T) {
	ctx := context.Background()
	store := memory.NewKVStore()
	repo := blobstore.NewAboutRepository(store, nop)

	page, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, page)

	require.NoError(t, store.Put(ctx, blobstore.KeyAbout, []byte(`{"title":"Quiénes somos","mission":"Servir"}`)))
	page, err = repo.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, page)
	assert.Equal(t, "Quiénes somos", page.Title)
	assert.Equal(t, "Servir", page.Mission)
}

func TestUserRepo_EmailDuplicado(t *testing.T) {
	ctx := context.Background()
	repo := blobstore.NewUserRepository(memory.NewKVStore(), nop)

	require.NoError(t, repo.Create(ctx, &entity.User{ID: "u1", Email: "admin@example.com"}))
	err := repo.Create(ctx, &entity.User{ID: "u2", Email: "ADMIN@example.com"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	u, err := repo.FindByEmail(ctx, "Admin@Example.com")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "u1", u.ID)

	missing, err := repo.GetByID(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
