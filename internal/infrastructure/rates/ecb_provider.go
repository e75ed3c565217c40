package rates

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/catalog-api/internal/application/ports"
	"github.com/jhoicas/catalog-api/internal/domain/entity"
)

var _ ports.RateProvider = (*ECBProvider)(nil)

// ECBProvider obtiene las tasas de referencia diarias del BCE (XML, base EUR) y calcula
// el cruce base → target como rate[target] / rate[base].
type ECBProvider struct {
	url    string
	client *http.Client
}

// NewECBProvider construye el proveedor contra url (eurofxref-daily.xml).
func NewECBProvider(url string, timeout time.Duration) *ECBProvider {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &ECBProvider{url: url, client: &http.Client{Timeout: timeout}}
}

// Rate implementa ports.RateProvider.
func (p *ECBProvider) Rate(ctx context.Context, base, target entity.Currency) (decimal.Decimal, error) {
	table, err := p.fetch(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	from, ok := table[base]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrRateUnavailable, base)
	}
	to, ok := table[target]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrRateUnavailable, target)
	}
	return to.DivRound(from, 10), nil
}

func (p *ECBProvider) fetch(ctx context.Context) (map[entity.Currency]decimal.Decimal, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build ecb request: %w", err)
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ecb request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ecb: status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read ecb response: %w", err)
	}
	return ParseECB(body)
}

// ParseECB extrae la tabla moneda → tasa (EUR = 1) del XML eurofxref.
func ParseECB(body []byte) (map[entity.Currency]decimal.Decimal, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(body); err != nil {
		return nil, fmt.Errorf("parse ecb xml: %w", err)
	}
	table := map[entity.Currency]decimal.Decimal{entity.EUR: decimal.NewFromInt(1)}
	for _, cube := range doc.FindElements("//Cube[@currency]") {
		code := cube.SelectAttrValue("currency", "")
		raw := cube.SelectAttrValue("rate", "")
		rate, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("ecb rate %s %q: %w", code, raw, err)
		}
		if !rate.IsPositive() {
			continue
		}
		table[entity.Currency(code)] = rate
	}
	if len(table) == 1 {
		return nil, fmt.Errorf("ecb: el documento no contiene tasas")
	}
	return table, nil
}
