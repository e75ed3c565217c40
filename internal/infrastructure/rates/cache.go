package rates

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/catalog-api/internal/application/ports"
	"github.com/jhoicas/catalog-api/internal/domain/entity"
)

var _ ports.RateProvider = (*CachedProvider)(nil)

// CachedProvider decora un RateProvider con un cache Redis por par de monedas.
// Si Redis falla se consulta al proveedor directamente: el cache nunca provoca un error.
type CachedProvider struct {
	next   ports.RateProvider
	client redis.UniversalClient
	ttl    time.Duration
	prefix string
}

// NewCachedProvider construye el decorador. Con client nil devuelve next sin decorar.
func NewCachedProvider(next ports.RateProvider, client redis.UniversalClient, ttl time.Duration) ports.RateProvider {
	if client == nil || ttl <= 0 {
		return next
	}
	return &CachedProvider{next: next, client: client, ttl: ttl, prefix: "catalog:rate:"}
}

// Rate implementa ports.RateProvider.
func (c *CachedProvider) Rate(ctx context.Context, base, target entity.Currency) (decimal.Decimal, error) {
	key := c.key(base, target)

	raw, err := c.client.Get(ctx, key).Result()
	switch {
	case err == nil:
		if rate, perr := decimal.NewFromString(raw); perr == nil {
			return rate, nil
		}
		zerolog.Ctx(ctx).Warn().Str("key", key).Msg("valor de tasa inválido en cache")
	case !errors.Is(err, redis.Nil):
		zerolog.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("cache de tasas no disponible")
	}

	rate, err := c.next.Rate(ctx, base, target)
	if err != nil {
		return decimal.Zero, err
	}
	if err := c.client.Set(ctx, key, rate.String(), c.ttl).Err(); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("no se pudo guardar la tasa en cache")
	}
	return rate, nil
}

func (c *CachedProvider) key(base, target entity.Currency) string {
	return fmt.Sprintf("%s%s:%s", c.prefix, base, target)
}
