// seed_catalog importa el catálogo de productos de una empresa desde un CSV exportado
// por el sistema anterior (Latin-1, separado por ';') o desde un libro .xlsx.
//
// Uso: go run ./cmd/seed_catalog -company <uuid> [-sheet Hoja1] [-utf8] [-dry-run] catalogo.csv
//
// Usa la misma configuración que la API (DATABASE_URL / DB_*). Los códigos ya existentes
// se omiten; el stock inicial siempre es 0 y se carga después con ajustes de inventario.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jhoicas/Contable-api/internal/application/dto"
	"github.com/jhoicas/Contable-api/internal/application/usecase"
	"github.com/jhoicas/Contable-api/internal/domain"
	"github.com/jhoicas/Contable-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Contable-api/pkg/config"
	"github.com/jhoicas/Contable-api/pkg/logger"
)

func main() {
	companyID := flag.String("company", "", "ID de la empresa destino")
	sheet := flag.String("sheet", "", "hoja del libro .xlsx (por defecto la primera)")
	utf8 := flag.Bool("utf8", false, "el CSV ya está en UTF-8")
	dryRun := flag.Bool("dry-run", false, "solo validar el archivo, sin escribir")
	flag.Parse()

	if flag.NArg() != 1 || (*companyID == "" && !*dryRun) {
		fmt.Fprintln(os.Stderr, "uso: seed_catalog -company <uuid> [-sheet nombre] [-utf8] [-dry-run] archivo.csv|archivo.xlsx")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "seed_catalog"})

	path := flag.Arg(0)
	products, rejected, err := readFile(path, *sheet, !*utf8)
	if err != nil {
		log.Fatal().Err(err).Str("file", path).Msg("leer catálogo")
	}
	for _, r := range rejected {
		log.Warn().Int("line", r.Line).Err(r.Err).Msg("fila descartada")
	}
	log.Info().Int("validas", len(products)).Int("descartadas", len(rejected)).Msg("catálogo leído")
	if *dryRun {
		return
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	uc := usecase.NewProductUseCase(postgres.NewStore(pool))
	created, skipped, failed := importProducts(ctx, uc, *companyID, products, func(p dto.CreateProductRequest, err error) {
		log.Warn().Str("code", p.Code).Err(err).Msg("producto no importado")
	})
	log.Info().Int("creados", created).Int("existentes", skipped).Int("fallidos", failed).Msg("importación terminada")
}

func readFile(path, sheet string, latin1 bool) ([]dto.CreateProductRequest, []rowError, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return readXLSX(f, sheet)
	}
	return readCSV(f, latin1)
}

// importProducts crea los productos uno a uno; un código repetido cuenta como existente.
func importProducts(ctx context.Context, uc *usecase.ProductUseCase, companyID string, products []dto.CreateProductRequest, onError func(dto.CreateProductRequest, error)) (created, skipped, failed int) {
	for _, p := range products {
		_, err := uc.Create(ctx, companyID, p)
		switch {
		case err == nil:
			created++
		case errors.Is(err, domain.ErrDuplicate):
			skipped++
		default:
			failed++
			onError(p, err)
		}
	}
	return created, skipped, failed
}
