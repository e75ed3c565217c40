package dto

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/catalog-api/internal/domain/entity"
)

// ProductRequest entrada para crear o actualizar un producto.
type ProductRequest struct {
	ID         *int64          `json:"id"`
	Name       *string         `json:"name" validate:"required,max=255"`
	CategoryID *int64          `json:"category_id"`
	Price      decimal.Decimal `json:"price" validate:"gte=0"`
	Currency   string          `json:"currency" validate:"required,iso4217"`
}

// ProductResponse salida de un producto. Price/Currency pueden venir convertidos
// a la moneda pedida (solo presentación, no se persiste).
type ProductResponse struct {
	ID         int64           `json:"id"`
	Name       string          `json:"name"`
	CategoryID int64           `json:"category_id"`
	Price      decimal.Decimal `json:"price"`
	Currency   string          `json:"currency"`
}

// FullProductResponse producto con la cadena de categorías a la que pertenece.
type FullProductResponse struct {
	Product      ProductResponse `json:"product"`
	CategoryTree *CategoryTree   `json:"category_tree"`
}

// Normalize pasa la moneda a mayúsculas antes de validar.
func (r *ProductRequest) Normalize() {
	r.Currency = strings.ToUpper(strings.TrimSpace(r.Currency))
}

// ToEntity mapea el request a la entidad. CategoryID nil se traduce a 0; el caso de uso
// lo rechaza antes de llegar aquí.
func (r ProductRequest) ToEntity() *entity.Product {
	p := &entity.Product{
		Name:     derefString(r.Name),
		Price:    r.Price,
		Currency: entity.Currency(r.Currency),
	}
	if r.ID != nil {
		p.ID = *r.ID
	}
	if r.CategoryID != nil {
		p.CategoryID = *r.CategoryID
	}
	return p
}

// ProductFromEntity mapea la entidad a su DTO de salida.
func ProductFromEntity(p *entity.Product) *ProductResponse {
	if p == nil {
		return nil
	}
	return &ProductResponse{
		ID:         p.ID,
		Name:       p.Name,
		CategoryID: p.CategoryID,
		Price:      p.Price,
		Currency:   string(p.Currency),
	}
}

// ProductsFromEntities mapea una lista de entidades.
func ProductsFromEntities(list []*entity.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *ProductFromEntity(p))
	}
	return out
}
