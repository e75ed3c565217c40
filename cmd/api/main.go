package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"

	_ "github.com/jhoicas/catalog-api/docs"
	"github.com/jhoicas/catalog-api/internal/bootstrap"
	inframetrics "github.com/jhoicas/catalog-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/catalog-api/internal/infrastructure/pdf"
	"github.com/jhoicas/catalog-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/catalog-api/internal/interfaces/http"
	"github.com/jhoicas/catalog-api/pkg/config"
	"github.com/jhoicas/catalog-api/pkg/logger"
)

// @title                       Catalog API
// @version                     1.0
// @description                 Categorías jerárquicas y productos con conversión de moneda.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Str("rates", cfg.Rates.Provider).
		Msg("iniciando aplicación")

	ctx := log.WithContext(context.Background())
	stores, err := bootstrap.OpenStores(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir store")
	}
	defer stores.Close()

	if stores.Pool != nil {
		applied, err := postgres.Migrate(ctx, stores.Pool)
		if err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		if len(applied) > 0 {
			log.Info().Strs("migrations", applied).Msg("migraciones aplicadas")
		}
	}

	var m *inframetrics.Metrics
	if cfg.Metrics.Enabled {
		m = inframetrics.New("catalog")
	}
	rateProvider, closeRates := bootstrap.RateProvider(ctx, cfg, m, log.Zerolog())
	defer closeRates()

	sheets := infrapdf.NewMarotoSheetGenerator(cfg.App.Name, cfg.App.PublicURL)
	categoryUC, productUC := bootstrap.Catalog(stores, rateProvider, sheets)

	if !cfg.JWT.Enabled() {
		log.Warn().Msg("JWT_SECRET vacío: las rutas de escritura no requieren token")
	}

	app := httpRouter.NewServer(httpRouter.ServerOptions{
		AppName: cfg.App.Name,
		Logger:  log.Zerolog(),
		Metrics: m,
	})

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Catalog API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		CategoryUC: categoryUC,
		ProductUC:  productUC,
		JWTSecret:  cfg.JWT.Secret,
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
}
