package catalog

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jhoicas/catalog-api/internal/application/dto"
	"github.com/jhoicas/catalog-api/internal/application/ports"
	"github.com/jhoicas/catalog-api/internal/domain"
	"github.com/jhoicas/catalog-api/internal/domain/entity"
	"github.com/jhoicas/catalog-api/internal/domain/repository"
)

// ProductUseCase casos de uso de productos. La conversión de moneda es solo de
// presentación: nunca se persiste el precio convertido.
type ProductUseCase struct {
	repo       repository.ProductRepository
	categories *CategoryUseCase
	validator  *Validator
	converter  *PriceConverter
	sheets     ports.ProductSheetGenerator
}

// NewProductUseCase construye el caso de uso. sheets puede ser nil si no se generan fichas PDF.
func NewProductUseCase(
	repo repository.ProductRepository,
	categories *CategoryUseCase,
	validator *Validator,
	converter *PriceConverter,
	sheets ports.ProductSheetGenerator,
) *ProductUseCase {
	return &ProductUseCase{
		repo:       repo,
		categories: categories,
		validator:  validator,
		converter:  converter,
		sheets:     sheets,
	}
}

// Get obtiene un producto; si target no es nil y difiere de la moneda almacenada
// el precio se devuelve convertido.
func (uc *ProductUseCase) Get(ctx context.Context, id int64, target *entity.Currency) (*dto.ProductResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	if p == nil {
		return nil, productNotFound(id)
	}
	if target != nil && *target != p.Currency {
		converted, err := uc.converter.Convert(ctx, p.Price, p.Currency, *target)
		if err != nil {
			return nil, err
		}
		p.Price = converted
		p.Currency = *target
	}
	return dto.ProductFromEntity(p), nil
}

// GetFull devuelve el producto junto con la cadena de su categoría.
func (uc *ProductUseCase) GetFull(ctx context.Context, id int64, target *entity.Currency) (*dto.FullProductResponse, error) {
	p, err := uc.Get(ctx, id, target)
	if err != nil {
		return nil, err
	}
	chain, err := uc.categories.GetTree(ctx, p.CategoryID)
	if err != nil {
		return nil, err
	}
	return &dto.FullProductResponse{Product: *p, CategoryTree: chain}, nil
}

// Add crea un producto en una categoría existente.
func (uc *ProductUseCase) Add(ctx context.Context, in dto.ProductRequest) (*dto.ProductResponse, error) {
	if err := uc.validator.EnsureIDAbsent(in.ID); err != nil {
		return nil, err
	}
	if err := uc.ensureCategory(ctx, in.CategoryID); err != nil {
		return nil, err
	}
	saved, err := uc.repo.Save(ctx, in.ToEntity())
	if err != nil {
		return nil, fmt.Errorf("insert product: %w", err)
	}
	zerolog.Ctx(ctx).Info().Int64("product_id", saved.ID).Int64("category_id", saved.CategoryID).Msg("producto creado")
	return dto.ProductFromEntity(saved), nil
}

// Update reemplaza los datos del producto id.
func (uc *ProductUseCase) Update(ctx context.Context, id int64, in dto.ProductRequest) (*dto.ProductResponse, error) {
	if err := uc.validator.EnsureIDUnchanged(id, in.ID); err != nil {
		return nil, err
	}
	if err := uc.ensureCategory(ctx, in.CategoryID); err != nil {
		return nil, err
	}
	ok, err := uc.repo.ExistsByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("exists product: %w", err)
	}
	if !ok {
		return nil, productNotFound(id)
	}
	p := in.ToEntity()
	p.ID = id
	saved, err := uc.repo.Save(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	return dto.ProductFromEntity(saved), nil
}

// Delete elimina un producto.
func (uc *ProductUseCase) Delete(ctx context.Context, id int64) error {
	ok, err := uc.repo.ExistsByID(ctx, id)
	if err != nil {
		return fmt.Errorf("exists product: %w", err)
	}
	if !ok {
		return productNotFound(id)
	}
	if err := uc.repo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	zerolog.Ctx(ctx).Info().Int64("product_id", id).Msg("producto eliminado")
	return nil
}

// ListByCategory lista los productos que referencian categoryID.
func (uc *ProductUseCase) ListByCategory(ctx context.Context, categoryID int64) ([]dto.ProductResponse, error) {
	list, err := uc.repo.ListByCategory(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	if len(list) == 0 {
		return nil, domain.NotFound("la categoría con ID %d no tiene productos", categoryID)
	}
	return dto.ProductsFromEntities(list), nil
}

// Sheet genera la ficha PDF del producto con su ruta de categorías.
func (uc *ProductUseCase) Sheet(ctx context.Context, id int64, target *entity.Currency) ([]byte, error) {
	if uc.sheets == nil {
		return nil, fmt.Errorf("product sheet generator not configured")
	}
	full, err := uc.GetFull(ctx, id, target)
	if err != nil {
		return nil, err
	}
	pdf, err := uc.sheets.GenerateProductSheet(ctx, full)
	if err != nil {
		return nil, fmt.Errorf("generate product sheet: %w", err)
	}
	return pdf, nil
}

func (uc *ProductUseCase) ensureCategory(ctx context.Context, categoryID *int64) error {
	if err := uc.validator.EnsureCategoryIDPresent(categoryID); err != nil {
		return err
	}
	return uc.validator.EnsureParentExists(ctx, categoryID)
}

func productNotFound(id int64) error {
	return domain.NotFound("producto con ID %d no encontrado", id)
}
