package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/adrianbura/copie-stok/internal/app"
	"github.com/adrianbura/copie-stok/internal/application/auth"
	"github.com/adrianbura/copie-stok/internal/infrastructure/memory"
	"github.com/adrianbura/copie-stok/internal/infrastructure/postgres"
	httpRouter "github.com/adrianbura/copie-stok/internal/interfaces/http"
	"github.com/adrianbura/copie-stok/pkg/config"
	"github.com/adrianbura/copie-stok/pkg/logger"
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
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.App.StoreDriver).
		Msg("iniciando aplicación")

	loc, err := cfg.App.Location()
	if err != nil {
		log.Fatal().Err(err).Str("timezone", cfg.App.Timezone).Msg("zona horaria inválida")
	}

	ctx := context.Background()
	var repos app.Repositories
	switch cfg.App.StoreDriver {
	case "memory":
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
		repos = app.MemoryRepositories(memory.NewStore())
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if err := postgres.Migrate(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		repos = app.PostgresRepositories(pool)
	}

	services := app.NewServices(repos, app.Options{
		Name:            cfg.App.Name,
		Location:        loc,
		AlertExpiryDays: cfg.Alerts.ExpiryDays,
		JWT: auth.JWTConfig{
			Secret:     cfg.JWT.Secret,
			ExpMinutes: cfg.JWT.Expiration,
			Issuer:     cfg.JWT.Issuer,
		},
	})

	if err := services.Auth.EnsureAdmin(ctx, cfg.Admin.Email, cfg.Admin.Password); err != nil {
		log.Fatal().Err(err).Msg("crear administrador inicial")
	}

	renderers, err := app.Renderers(cfg.App.Name)
	if err != nil {
		log.Fatal().Err(err).Msg("plantillas de impresión")
	}

	fiberApp := fiber.New(httpRouter.AppConfig(cfg.App.Name))
	fiberApp.Use(recover.New())
	fiberApp.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en /docs cuando existe el documento generado
	if _, err := os.Stat(cfg.App.SwaggerFile); err == nil {
		fiberApp.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.App.SwaggerFile,
			Path:     "docs",
			Title:    "Copie Stok API",
		}))
	} else {
		log.Debug().Str("file", cfg.App.SwaggerFile).Msg("swagger deshabilitado")
	}

	httpRouter.Router(fiberApp, services.RouterDeps(renderers, cfg.JWT.Secret))

	go func() {
		if err := fiberApp.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := fiberApp.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
