// Package pdf genera la ficha de producto en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: nombre de la app       │  Ficha N° + fecha          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PRODUCTO: nombre + precio (moneda pedida)                   │
//	│  CATEGORÍA: ruta raíz › ... › hoja                           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Nivel | ID | Categoría                               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: QR al recurso + leyenda                             │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/catalog-api/internal/application/dto"
	"github.com/jhoicas/catalog-api/internal/application/ports"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ ports.ProductSheetGenerator = (*MarotoSheetGenerator)(nil)

// MarotoSheetGenerator implementa ports.ProductSheetGenerator usando Maroto v2.
type MarotoSheetGenerator struct {
	appName       string
	publicBaseURL string // si no está vacío se imprime un QR a {publicBaseURL}/api/products/{id}/full
	now           func() time.Time
}

// NewMarotoSheetGenerator construye el generador.
func NewMarotoSheetGenerator(appName, publicBaseURL string) *MarotoSheetGenerator {
	return &MarotoSheetGenerator{
		appName:       appName,
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
		now:           time.Now,
	}
}

// GenerateProductSheet genera el PDF y devuelve sus bytes.
func (g *MarotoSheetGenerator) GenerateProductSheet(_ context.Context, full *dto.FullProductResponse) ([]byte, error) {
	if full == nil {
		return nil, fmt.Errorf("pdf: producto nil")
	}
	p := full.Product
	path := full.CategoryTree.Path()

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Ficha de producto "+p.Name, true).
		WithAuthor(g.appName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.appName, p.ID, g.now()))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(productRow(p))
	m.AddRows(breadcrumbRow(path))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(categoryRows(path)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(g.footerRows(p.ID)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(appName string, productID int64, at time.Time) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New(appName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Catálogo de productos", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("FICHA DE PRODUCTO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("N° %d", productID), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 6,
			}),
			text.New("Fecha: "+at.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 12, Color: colorGray,
			}),
		),
	)
}

func productRow(p dto.ProductResponse) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New("PRODUCTO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(p.Name, props.Text{Style: fontstyle.Bold, Size: 11, Top: 6}),
		),
		col.New(4).Add(
			text.New("PRECIO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(formatPrice(p.Price, p.Currency), props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 6,
			}),
		),
	)
}

func breadcrumbRow(path []dto.CategoryResponse) core.Row {
	return row.New(10).Add(col.New(12).Add(
		text.New("CATEGORÍA", props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
		}),
		text.New(Breadcrumb(path), props.Text{Size: 9, Top: 5, Color: colorGray}),
	))
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Nivel", 2, align.Center),
		h("ID", 2, align.Center),
		h("Categoría", 8, align.Left),
	)
}

// categoryRows: una fila por nivel de la cadena, de la raíz a la hoja.
func categoryRows(path []dto.CategoryResponse) []core.Row {
	result := make([]core.Row, 0, len(path))
	for i, c := range path {
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(fmt.Sprintf("%d", i+1), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(fmt.Sprintf("%d", c.ID), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(8).Add(text.New(c.Name, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
		))
	}
	return result
}

func (g *MarotoSheetGenerator) footerRows(productID int64) []core.Row {
	legend := "Precio informativo. Las conversiones de moneda usan la tasa vigente al momento de generar la ficha."
	if g.publicBaseURL == "" {
		return []core.Row{row.New(8).Add(col.New(12).Add(
			text.New(legend, props.Text{Size: 6.5, Color: colorGray, Top: 2}),
		))}
	}
	url := fmt.Sprintf("%s/api/products/%d/full", g.publicBaseURL, productID)
	return []core.Row{row.New(40).Add(
		col.New(3).Add(code.NewQr(url, props.Rect{Percent: 95, Center: true})),
		col.New(9).Add(
			text.New("Escanea el código QR para consultar\nel producto en la API.", props.Text{
				Size: 8, Top: 4, Left: 3, Color: colorGray,
			}),
			text.New(legend, props.Text{Size: 6.5, Top: 20, Left: 3, Color: colorGray}),
		),
	)}
}

// ── helpers ───────────────────────────────────────────────────────────────────

// Breadcrumb une los nombres de la ruta con " › ".
func Breadcrumb(path []dto.CategoryResponse) string {
	if len(path) == 0 {
		return "-"
	}
	names := make([]string, len(path))
	for i, c := range path {
		names[i] = c.Name
	}
	return strings.Join(names, " › ")
}

// formatPrice: "1312.44" USD → "USD 1.312,44".
func formatPrice(price decimal.Decimal, currency string) string {
	fixed := price.StringFixed(2)
	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign, fixed = "-", fixed[1:]
	}
	intPart, frac, _ := strings.Cut(fixed, ".")
	return fmt.Sprintf("%s %s%s,%s", currency, sign, formatThousands(intPart), frac)
}

// formatThousands inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "1000000" → "1.000.000"
func formatThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
