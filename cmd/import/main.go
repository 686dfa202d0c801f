// import carga un CSV de stock inicial en una bodega sin pasar por la API HTTP.
//
// Uso:
//
//	go run ./cmd/import -list
//	go run ./cmd/import -warehouse <id> -file stock.csv [-operator nombre] [-dry-run]
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/adrianbura/copie-stok/internal/app"
	"github.com/adrianbura/copie-stok/internal/application/auth"
	"github.com/adrianbura/copie-stok/internal/domain/importer"
	"github.com/adrianbura/copie-stok/internal/infrastructure/postgres"
	"github.com/adrianbura/copie-stok/pkg/config"
	"github.com/adrianbura/copie-stok/pkg/logger"
)

func main() {
	warehouseID := flag.String("warehouse", "", "id de la bodega destino")
	file := flag.String("file", "", "ruta del CSV (code,quantity,unit_price,reference,notes,name,category,supplier)")
	operator := flag.String("operator", "import-cli", "operador que figura en el documento")
	list := flag.Bool("list", false, "listar bodegas y salir")
	dryRun := flag.Bool("dry-run", false, "solo validar el archivo, sin escribir")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
		Output:  os.Stderr,
	})

	if *dryRun {
		if err := validateFile(*file); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	if cfg.App.StoreDriver != "postgres" {
		fmt.Fprintln(os.Stderr, "la importación por consola requiere STORE_DRIVER=postgres")
		os.Exit(1)
	}
	loc, err := cfg.App.Location()
	if err != nil {
		fmt.Fprintf(os.Stderr, "zona horaria: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()
	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	services := app.NewServices(app.PostgresRepositories(pool), app.Options{
		Name:            cfg.App.Name,
		Location:        loc,
		AlertExpiryDays: cfg.Alerts.ExpiryDays,
		JWT:             auth.JWTConfig{Secret: cfg.JWT.Secret, ExpMinutes: cfg.JWT.Expiration, Issuer: cfg.JWT.Issuer},
	})

	if *list {
		out, err := services.Warehouses.List(ctx, 100, 0)
		if err != nil {
			log.Fatal().Err(err).Msg("listar bodegas")
		}
		for _, w := range out.Items {
			fmt.Printf("%s\t%s\t%s\n", w.ID, w.Code, w.Name)
		}
		return
	}

	if strings.TrimSpace(*warehouseID) == "" || strings.TrimSpace(*file) == "" {
		fmt.Fprintln(os.Stderr, "-warehouse y -file son obligatorios")
		flag.Usage()
		os.Exit(1)
	}

	f, err := os.Open(*file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	res, err := services.Import.Import(ctx, *warehouseID, *operator, f)
	if err != nil {
		log.Fatal().Err(err).Str("warehouse_id", *warehouseID).Msg("importación")
	}

	fmt.Printf("importadas: %d\n", res.Imported)
	if len(res.CreatedProducts) > 0 {
		fmt.Printf("productos creados: %s\n", strings.Join(res.CreatedProducts, ", "))
	}
	if res.Document != nil {
		fmt.Printf("documento: %s\n", res.Document.Number)
	}
	printSkipped(res.Skipped)
}

func validateFile(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("-file es obligatorio")
	}
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("abrir CSV: %w", err)
	}
	defer f.Close()
	res, err := importer.ParseCSV(f)
	if err != nil {
		return err
	}
	fmt.Printf("filas válidas: %d\n", len(res.Rows))
	printSkipped(res.Skipped)
	return nil
}

func printSkipped(skipped []importer.Skip) {
	for _, s := range skipped {
		fmt.Printf("línea %d descartada: %s (%s)\n", s.Line, s.Reason, s.Raw)
	}
}
