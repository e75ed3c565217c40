package ports

import (
	"context"

	"github.com/jhoicas/catalog-api/internal/application/dto"
)

// ProductSheetGenerator define el puerto de salida para generar la ficha PDF de un producto.
type ProductSheetGenerator interface {
	GenerateProductSheet(ctx context.Context, product *dto.FullProductResponse) ([]byte, error)
}
