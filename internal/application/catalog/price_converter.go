package catalog

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/catalog-api/internal/application/ports"
	"github.com/jhoicas/catalog-api/internal/domain"
	"github.com/jhoicas/catalog-api/internal/domain/entity"
)

// PriceConverter convierte precios entre monedas usando el proveedor de tasas.
type PriceConverter struct {
	rates ports.RateProvider
}

// NewPriceConverter construye el conversor.
func NewPriceConverter(rates ports.RateProvider) *PriceConverter {
	return &PriceConverter{rates: rates}
}

// Convert devuelve price expresado en to, truncado a dos decimales.
// Cualquier falla del proveedor se reporta como ConversionFailed; el detalle solo va al log.
func (c *PriceConverter) Convert(ctx context.Context, price decimal.Decimal, from, to entity.Currency) (decimal.Decimal, error) {
	rate, err := c.rates.Rate(ctx, from, to)
	if err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).
			Str("from", from.String()).
			Str("to", to.String()).
			Msg("falla obteniendo tasa de cambio")
		return decimal.Zero, domain.ConversionFailed()
	}
	return entity.ConvertPrice(price, rate), nil
}
