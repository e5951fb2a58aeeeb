package main

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/jhoicas/Contenidos-api/internal/domain/categorytree"
	"github.com/jhoicas/Contenidos-api/internal/domain/entity"
	"github.com/jhoicas/Contenidos-api/internal/infrastructure/blobstore"
	"github.com/jhoicas/Contenidos-api/internal/infrastructure/storage"
)

type demoPart struct {
	name, brand, number, price string
}

type demoSub struct {
	title string
	parts []demoPart
}

// demoTree raíz → subcategorías → repuestos asignados.
var demoTree = []struct {
	title string
	subs  []demoSub
}{
	{"Motor", []demoSub{
		{"Pistones", []demoPart{{"Pistón 80mm STD", "Mahle", "MH-80-STD", "185000"}, {"Anillos 80mm", "Mahle", "MH-R80", "96000"}}},
		{"Empaques", []demoPart{{"Empaque de culata", "Victor Reinz", "VR-61-5300", "142500"}}},
		{"Filtración", []demoPart{{"Filtro de aceite", "Bosch", "BO-3330", "28900"}}},
	}},
	{"Frenos", []demoSub{
		{"Pastillas", []demoPart{{"Pastillas delanteras", "Brembo", "BR-P85020", "210000"}}},
		{"Discos", []demoPart{{"Disco ventilado 280mm", "Brembo", "BR-09.A820", "315000"}}},
	}},
	{"Suspensión", []demoSub{
		{"Amortiguadores", []demoPart{{"Amortiguador delantero", "Monroe", "MO-G8803", "254000"}}},
	}},
}

func demoCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Escribe un árbol de categorías y repuestos de ejemplo",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDemo(cmd.Context(), force)
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "sobrescribir aunque ya existan categorías")
	return cmd
}

func runDemo(ctx context.Context, force bool) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := storage.Open(ctx, cfg, log.Component("storage"))
	if err != nil {
		return err
	}
	defer store.Close()

	repoLog := log.Component("blobstore")
	categories := blobstore.NewCategoryRepository(store, repoLog)
	products := blobstore.NewProductRepository(store, repoLog)

	current, err := categories.Load(ctx)
	if err != nil {
		return err
	}
	if len(current) > 0 && !force {
		return fmt.Errorf("ya hay %d categorías; use --force para sobrescribir", categorytree.Count(current))
	}

	now := time.Now().UTC()
	var (
		forest entity.Forest
		parts  []*entity.Product
	)
	for _, r := range demoTree {
		root := newNode(r.title, now)
		forest = categorytree.AddRoot(forest, root)
		for _, sc := range r.subs {
			sub := newNode(sc.title, now)
			forest, _ = categorytree.AddSubcategory(forest, root.ID, sub)
			ids := make([]string, 0, len(sc.parts))
			for _, p := range sc.parts {
				price := decimal.RequireFromString(p.price)
				part := &entity.Product{
					ID:         uuid.New().String(),
					PartName:   p.name,
					PartBrand:  p.brand,
					PartNumber: p.number,
					Price:      &price,
					CreatedAt:  entity.NewTimestamp(now),
					UpdatedAt:  entity.NewTimestamp(now),
				}
				parts = append(parts, part)
				ids = append(ids, part.ID)
			}
			forest, _ = categorytree.SetAssignedProducts(forest, sub.ID, ids, now)
		}
	}

	if err := products.Save(ctx, parts); err != nil {
		return err
	}
	if err := categories.Save(ctx, forest); err != nil {
		return err
	}
	log.Info().
		Int("categorias", categorytree.Count(forest)).
		Int("repuestos", len(parts)).
		Msg("datos de ejemplo escritos")
	return nil
}

func newNode(title string, now time.Time) entity.CategoryNode {
	return entity.CategoryNode{
		ID:            uuid.New().String(),
		Title:         title,
		Subcategories: []entity.CategoryNode{},
		UpdatedAt:     entity.NewTimestamp(now),
	}
}
