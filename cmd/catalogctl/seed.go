package main

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/catalog-api/internal/application/catalog"
	"github.com/jhoicas/catalog-api/internal/application/dto"
)

type seedCategory struct {
	name     string
	children []seedCategory
	products []seedProduct
}

type seedProduct struct {
	name     string
	price    string
	currency string
}

// sampleCatalog catálogo de ejemplo: dos raíces con subcategorías de hasta tres niveles.
var sampleCatalog = []seedCategory{
	{
		name: "Electrónica",
		children: []seedCategory{
			{
				name: "Computadores",
				children: []seedCategory{
					{name: "Portátiles", products: []seedProduct{
						{name: "Portátil 14\" 16GB", price: "1120.00", currency: "EUR"},
						{name: "Portátil 16\" 32GB", price: "1899.90", currency: "USD"},
					}},
				},
			},
			{name: "Telefonía", products: []seedProduct{
				{name: "Teléfono 128GB", price: "2499000", currency: "COP"},
			}},
		},
	},
	{
		name: "Hogar",
		children: []seedCategory{
			{name: "Cocina", products: []seedProduct{
				{name: "Cafetera espresso", price: "189.50", currency: "EUR"},
			}},
		},
	},
}

type seedResult struct {
	Categories int
	Products   int
}

// seedCatalog inserta sampleCatalog pasando por los casos de uso, de modo que se
// aplican las mismas validaciones que en la API.
func seedCatalog(ctx context.Context, categories *catalog.CategoryUseCase, products *catalog.ProductUseCase) (seedResult, error) {
	var res seedResult
	for _, root := range sampleCatalog {
		if err := seedNode(ctx, categories, products, root, nil, &res); err != nil {
			return res, err
		}
	}
	return res, nil
}

func seedNode(ctx context.Context, categories *catalog.CategoryUseCase, products *catalog.ProductUseCase, node seedCategory, parentID *int64, res *seedResult) error {
	created, err := categories.Add(ctx, dto.CategoryRequest{Name: dto.StringPtr(node.name), ParentID: parentID})
	if err != nil {
		return err
	}
	res.Categories++

	id := created.ID
	for _, p := range node.products {
		req := dto.ProductRequest{
			Name:       dto.StringPtr(p.name),
			CategoryID: &id,
			Price:      decimal.RequireFromString(p.price),
			Currency:   p.currency,
		}
		if _, err := products.Add(ctx, req); err != nil {
			return err
		}
		res.Products++
	}
	for _, child := range node.children {
		if err := seedNode(ctx, categories, products, child, &id, res); err != nil {
			return err
		}
	}
	return nil
}
