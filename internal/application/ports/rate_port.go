package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/catalog-api/internal/domain/entity"
)

// RateProvider define el puerto de salida hacia el servicio externo de tasas de cambio.
// Rate devuelve el multiplicador para pasar de base a target; cualquier falla
// (red, respuesta sin la moneda, circuito abierto) se devuelve como error.
type RateProvider interface {
	Rate(ctx context.Context, base, target entity.Currency) (decimal.Decimal, error)
}

// RateProviderFunc adapta una función al puerto RateProvider.
type RateProviderFunc func(ctx context.Context, base, target entity.Currency) (decimal.Decimal, error)

// Rate implementa RateProvider.
func (f RateProviderFunc) Rate(ctx context.Context, base, target entity.Currency) (decimal.Decimal, error) {
	return f(ctx, base, target)
}
