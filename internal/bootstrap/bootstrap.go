// Package bootstrap arma las dependencias compartidas por cmd/api y cmd/catalogctl
// a partir de la configuración.
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/jhoicas/catalog-api/internal/application/catalog"
	"github.com/jhoicas/catalog-api/internal/application/ports"
	"github.com/jhoicas/catalog-api/internal/domain/repository"
	"github.com/jhoicas/catalog-api/internal/infrastructure/memory"
	"github.com/jhoicas/catalog-api/internal/infrastructure/metrics"
	"github.com/jhoicas/catalog-api/internal/infrastructure/postgres"
	"github.com/jhoicas/catalog-api/internal/infrastructure/rates"
	"github.com/jhoicas/catalog-api/pkg/config"
)

// Stores repositorios del catálogo. Pool es nil con el driver memory.
type Stores struct {
	Categories repository.CategoryRepository
	Products   repository.ProductRepository
	Pool       *pgxpool.Pool
}

// Close libera el pool si existe.
func (s *Stores) Close() {
	if s.Pool != nil {
		s.Pool.Close()
	}
}

// OpenStores abre el backend indicado por STORE_DRIVER.
func OpenStores(ctx context.Context, cfg *config.Config) (*Stores, error) {
	switch cfg.Store.Driver {
	case "memory":
		return &Stores{
			Categories: memory.NewCategoryRepository(),
			Products:   memory.NewProductRepository(),
		}, nil
	case "postgres":
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, err
		}
		return &Stores{
			Categories: postgres.NewCategoryRepository(pool),
			Products:   postgres.NewProductRepository(pool),
			Pool:       pool,
		}, nil
	default:
		return nil, fmt.Errorf("store driver no soportado: %q", cfg.Store.Driver)
	}
}

// RateProvider arma la cadena proveedor → métricas → cache Redis. El cierre devuelto
// libera el cliente Redis (no-op si el cache está deshabilitado).
func RateProvider(ctx context.Context, cfg *config.Config, m *metrics.Metrics, log zerolog.Logger) (ports.RateProvider, func()) {
	var provider ports.RateProvider
	switch cfg.Rates.Provider {
	case "ecb":
		provider = rates.NewECBProvider(cfg.Rates.ECBURL, cfg.Rates.Timeout())
	default:
		provider = rates.NewHTTPProvider(rates.HTTPConfig{
			BaseURL:   cfg.Rates.ConverterURL,
			AccessKey: cfg.Rates.AccessKey,
			Timeout:   cfg.Rates.Timeout(),
		})
	}
	if m != nil {
		provider = m.InstrumentRates(provider)
	}

	if cfg.Redis.Addr == "" {
		return provider, func() {}
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis no disponible; las tasas se consultarán sin cache")
	}
	ttl := time.Duration(cfg.Rates.CacheTTL) * time.Second
	return rates.NewCachedProvider(provider, client, ttl), func() { _ = client.Close() }
}

// Catalog construye los casos de uso sobre los stores.
func Catalog(stores *Stores, provider ports.RateProvider, sheets ports.ProductSheetGenerator) (*catalog.CategoryUseCase, *catalog.ProductUseCase) {
	validator := catalog.NewValidator(stores.Categories, stores.Products)
	categoryUC := catalog.NewCategoryUseCase(stores.Categories, validator)
	productUC := catalog.NewProductUseCase(
		stores.Products, categoryUC, validator,
		catalog.NewPriceConverter(provider), sheets,
	)
	return categoryUC, productUC
}
