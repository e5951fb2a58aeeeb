// seed carga datos en el store configurado (STORE_DRIVER).
//
// Uso:
//
//	go run ./cmd/seed demo [--force]
//	go run ./cmd/seed import export.json [--charset latin1]
//
// demo escribe un árbol de categorías y un catálogo de repuestos de ejemplo.
// import restaura un volcado del almacenamiento local del navegador: un objeto JSON clave → valor,
// donde el valor puede ser el JSON mismo o una cadena con JSON (así lo guarda el navegador).
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/Contenidos-api/pkg/config"
	"github.com/jhoicas/Contenidos-api/pkg/logger"
)

func main() {
	root := &cobra.Command{
		Use:           "seed",
		Short:         "Carga datos de ejemplo o un volcado del navegador en el store",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(demoCmd(), importCmd())
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "seed: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("cargar configuración: %w", err)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "seed"})
	return cfg, log, nil
}
