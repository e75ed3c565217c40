package rates

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker"

	"github.com/jhoicas/catalog-api/internal/application/ports"
	"github.com/jhoicas/catalog-api/internal/domain/entity"
)

var _ ports.RateProvider = (*HTTPProvider)(nil)

// ErrRateUnavailable indica que la respuesta del proveedor no trae la moneda pedida.
var ErrRateUnavailable = errors.New("rates: tasa no disponible")

// HTTPConfig parámetros del cliente estilo fixer/exchangeratesapi.
type HTTPConfig struct {
	BaseURL   string // ej. http://api.exchangeratesapi.io/v1
	AccessKey string
	Timeout   time.Duration
	// Breaker: fallas consecutivas que abren el circuito y tiempo que permanece abierto.
	MaxFailures uint32
	OpenTimeout time.Duration
}

// HTTPProvider consulta GET {BaseURL}/latest?access_key=&base=&symbols= detrás de un circuit breaker.
type HTTPProvider struct {
	baseURL   string
	accessKey string
	client    *http.Client
	breaker   *gobreaker.CircuitBreaker
}

// latestResponse cuerpo de /latest.
type latestResponse struct {
	Success bool                       `json:"success"`
	Base    string                     `json:"base"`
	Rates   map[string]decimal.Decimal `json:"rates"`
	Error   *struct {
		Code int    `json:"code"`
		Type string `json:"type"`
		Info string `json:"info"`
	} `json:"error,omitempty"`
}

// NewHTTPProvider construye el proveedor. La configuración llega completa al construirlo.
func NewHTTPProvider(cfg HTTPConfig) *HTTPProvider {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	if cfg.MaxFailures == 0 {
		cfg.MaxFailures = 5
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = 30 * time.Second
	}
	maxFailures := cfg.MaxFailures
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "rates-http",
		MaxRequests: 1,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).
				Msg("cambio de estado del circuit breaker")
		},
	})
	return &HTTPProvider{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		accessKey: cfg.AccessKey,
		client:    &http.Client{Timeout: cfg.Timeout},
		breaker:   breaker,
	}
}

// Rate devuelve el multiplicador base → target.
func (p *HTTPProvider) Rate(ctx context.Context, base, target entity.Currency) (decimal.Decimal, error) {
	out, err := p.breaker.Execute(func() (interface{}, error) {
		return p.fetch(ctx, base, target)
	})
	if err != nil {
		return decimal.Zero, err
	}
	return out.(decimal.Decimal), nil
}

func (p *HTTPProvider) fetch(ctx context.Context, base, target entity.Currency) (decimal.Decimal, error) {
	q := url.Values{}
	q.Set("access_key", p.accessKey)
	q.Set("base", base.String())
	q.Set("symbols", target.String())
	endpoint := p.baseURL + "/latest?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("build rates request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("rates request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return decimal.Zero, fmt.Errorf("read rates response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("rates: status %d: %s", resp.StatusCode, truncate(string(body), 200))
	}

	var parsed latestResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return decimal.Zero, fmt.Errorf("decode rates response: %w", err)
	}
	if !parsed.Success {
		if parsed.Error != nil {
			return decimal.Zero, fmt.Errorf("rates: error %d %s: %s", parsed.Error.Code, parsed.Error.Type, parsed.Error.Info)
		}
		return decimal.Zero, errors.New("rates: respuesta sin éxito")
	}
	rate, ok := parsed.Rates[target.String()]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s → %s", ErrRateUnavailable, base, target)
	}
	return rate, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
