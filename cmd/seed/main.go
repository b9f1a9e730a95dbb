// seed crea la cuenta admin demo y, opcionalmente, carga un catálogo de productos desde CSV.
//
// Uso: go run ./cmd/seed [-latin1] [ruta/productos.csv]
//
// Columnas del CSV (con encabezado): sku,name,category,price,stock,lowStockThreshold
// El archivo puede venir en UTF-8 o ISO-8859-1 (exportaciones de hojas de cálculo);
// con -latin1 se fuerza la decodificación ISO-8859-1.
// Todo se inserta en una sola transacción; los SKU ya existentes se omiten.
package main

import (
	"context"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/taskstore-api/internal/application/seed"
	"github.com/jhoicas/taskstore-api/internal/domain/entity"
	"github.com/jhoicas/taskstore-api/internal/domain/repository"
	"github.com/jhoicas/taskstore-api/internal/infrastructure/postgres"
	"github.com/jhoicas/taskstore-api/pkg/config"
	"github.com/jhoicas/taskstore-api/pkg/logger"
)

func main() {
	latin1 := flag.Bool("latin1", false, "decodificar el CSV como ISO-8859-1")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).WithComponent("seed")

	var rows []productRow
	if path := flag.Arg(0); path != "" {
		rows, err = readProducts(path, *latin1)
		if err != nil {
			log.Fatal().Err(err).Str("file", path).Msg("leer CSV")
		}
	}

	ctx := context.Background()
	if cfg.DB.Migrate {
		if err := postgres.RunMigrations(cfg.DB.ConnectionString()); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	var created, skipped int
	err = postgres.NewTxRunner(pool).Run(ctx, func(users repository.UserRepository, products repository.ProductRepository) error {
		if _, err := seed.EnsureDemoAdmin(ctx, users, seed.DemoAdmin{
			Email:    cfg.Seed.DemoAdminEmail,
			Password: cfg.Seed.DemoAdminPassword,
		}); err != nil {
			return err
		}
		admin, err := users.GetByEmail(ctx, entity.NormalizeEmail(cfg.Seed.DemoAdminEmail))
		if err != nil {
			return err
		}
		if admin == nil {
			return errors.New("admin demo no encontrado")
		}
		for _, r := range rows {
			existing, err := products.GetBySKU(ctx, r.sku)
			if err != nil {
				return err
			}
			if existing != nil {
				skipped++
				continue
			}
			p := r.toProduct(admin.ID, time.Now())
			if err := p.Validate(); err != nil {
				return fmt.Errorf("línea %d (%s): %w", r.line, r.sku, err)
			}
			if err := products.Create(ctx, p); err != nil {
				return fmt.Errorf("línea %d (%s): %w", r.line, r.sku, err)
			}
			created++
		}
		return nil
	})
	if err != nil {
		log.Fatal().Err(err).Msg("seed")
	}
	log.Info().
		Str("admin", cfg.Seed.DemoAdminEmail).
		Int("productos_creados", created).
		Int("productos_omitidos", skipped).
		Msg("seed completado")
}

type productRow struct {
	line              int
	sku               string
	name              string
	category          string
	price             decimal.Decimal
	stock             int
	lowStockThreshold int
}

func (r productRow) toProduct(createdBy string, now time.Time) *entity.Product {
	p := &entity.Product{
		ID:                uuid.NewString(),
		Name:              r.name,
		SKU:               r.sku,
		Price:             r.price,
		Stock:             r.stock,
		LowStockThreshold: r.lowStockThreshold,
		Category:          r.category,
		IsActive:          true,
		CreatedBy:         createdBy,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	p.Normalize()
	return p
}

func readProducts(path string, latin1 bool) ([]productRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var in io.Reader = f
	if latin1 {
		in = transform.NewReader(f, charmap.ISO8859_1.NewDecoder())
	}
	cr := csv.NewReader(in)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("encabezado: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, h := range header {
		col[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, required := range []string{"sku", "name", "category", "price"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("falta la columna %q", required)
		}
	}
	field := func(rec []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	var rows []productRow
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", line, err)
		}
		price, err := decimal.NewFromString(field(rec, "price"))
		if err != nil {
			return nil, fmt.Errorf("línea %d: price: %w", line, err)
		}
		row := productRow{
			line:              line,
			sku:               entity.NormalizeSKU(field(rec, "sku")),
			name:              field(rec, "name"),
			category:          strings.ToLower(field(rec, "category")),
			price:             price,
			lowStockThreshold: entity.DefaultLowStockThreshold,
		}
		if s := field(rec, "stock"); s != "" {
			if row.stock, err = strconv.Atoi(s); err != nil {
				return nil, fmt.Errorf("línea %d: stock: %w", line, err)
			}
		}
		if s := field(rec, "lowstockthreshold"); s != "" {
			if row.lowStockThreshold, err = strconv.Atoi(s); err != nil {
				return nil, fmt.Errorf("línea %d: lowStockThreshold: %w", line, err)
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
