package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/Contenidos-api/internal/domain/repository"
	"github.com/jhoicas/Contenidos-api/internal/infrastructure/blobstore"
	"github.com/jhoicas/Contenidos-api/internal/infrastructure/storage"
)

func importCmd() *cobra.Command {
	var charset string
	cmd := &cobra.Command{
		Use:   "import <archivo.json>",
		Short: "Restaura un volcado clave → valor del almacenamiento del navegador",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd.Context(), args[0], charset)
		},
	}
	cmd.Flags().StringVar(&charset, "charset", "utf-8", "codificación del archivo: utf-8 o latin1")
	return cmd
}

func runImport(ctx context.Context, path, charset string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("abrir volcado: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	switch strings.ToLower(charset) {
	case "utf-8", "utf8", "":
	case "latin1", "iso-8859-1", "iso8859-1":
		r = transform.NewReader(f, charmap.ISO8859_1.NewDecoder())
	default:
		return fmt.Errorf("charset no soportado: %q", charset)
	}
	raw, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("leer volcado: %w", err)
	}

	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	entries, skipped, err := parseDump(raw, blobstore.BackupSchema())
	if err != nil {
		return err
	}
	for _, k := range skipped {
		log.Warn().Str("key", k).Msg("clave desconocida, se omite")
	}
	if len(entries) == 0 {
		return fmt.Errorf("el volcado no contiene claves conocidas")
	}

	store, err := storage.Open(ctx, cfg, log.Component("storage"))
	if err != nil {
		return err
	}
	defer store.Close()
	// Se escriben tal cual: blobstore los lee como formato legado y los migra en la primera lectura.
	if err := store.PutBatch(ctx, entries); err != nil {
		return err
	}
	keys := make([]string, 0, len(entries))
	for k := range entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	log.Info().Strs("keys", keys).Msg("volcado importado")
	return nil
}

// parseDump separa las claves conocidas de las demás. Los valores cadena se desenvuelven una vez.
// Falla completo si algún valor conocido no tiene la forma de su colección.
func parseDump(raw []byte, schema repository.BlobSchema) (map[string][]byte, []string, error) {
	var dump map[string]json.RawMessage
	if err := json.Unmarshal(raw, &dump); err != nil {
		return nil, nil, fmt.Errorf("volcado inválido: %w", err)
	}
	entries := make(map[string][]byte, len(dump))
	var skipped []string
	for k, v := range dump {
		validate, ok := schema[k]
		if !ok {
			skipped = append(skipped, k)
			continue
		}
		v = bytes.TrimSpace(v)
		if len(v) > 0 && v[0] == '"' {
			var inner string
			if err := json.Unmarshal(v, &inner); err != nil {
				return nil, nil, fmt.Errorf("clave %q: %w", k, err)
			}
			v = json.RawMessage(inner)
		}
		if err := validate(v); err != nil {
			return nil, nil, fmt.Errorf("clave %q: %w", k, err)
		}
		entries[k] = v
	}
	sort.Strings(skipped)
	return entries, skipped, nil
}
