package catalog

import (
	"context"
	"fmt"

	"github.com/jhoicas/catalog-api/internal/domain"
	"github.com/jhoicas/catalog-api/internal/domain/repository"
)

// Validator concentra las reglas de negocio compartidas por categorías y productos.
// Cada regla consulta el store a lo sumo una vez y devuelve un *domain.Error tipado.
type Validator struct {
	categories repository.CategoryRepository
	products   repository.ProductRepository
}

// NewValidator construye el validador.
func NewValidator(categories repository.CategoryRepository, products repository.ProductRepository) *Validator {
	return &Validator{categories: categories, products: products}
}

// EnsureIDAbsent rechaza un ID enviado al crear.
func (v *Validator) EnsureIDAbsent(id *int64) error {
	if id != nil {
		return domain.NewError(domain.KindIDAssignmentForbidden, "no se permite asignar el ID manualmente")
	}
	return nil
}

// EnsureIDUnchanged exige que el ID del cuerpo exista y coincida con el de la ruta.
func (v *Validator) EnsureIDUnchanged(pathID int64, bodyID *int64) error {
	if bodyID == nil || *bodyID != pathID {
		return domain.NewError(domain.KindIDUpdateForbidden, "no se permite modificar el ID")
	}
	return nil
}

// EnsureCategoryIDPresent exige la categoría de un producto.
func (v *Validator) EnsureCategoryIDPresent(categoryID *int64) error {
	if categoryID == nil {
		return domain.NewError(domain.KindCategoryIDIsNull, "el ID de categoría no puede ser nulo")
	}
	return nil
}

// EnsureParentExists verifica que la categoría referenciada exista. nil es válido (raíz).
func (v *Validator) EnsureParentExists(ctx context.Context, parentID *int64) error {
	if parentID == nil {
		return nil
	}
	ok, err := v.categories.ExistsByID(ctx, *parentID)
	if err != nil {
		return fmt.Errorf("exists category: %w", err)
	}
	if !ok {
		return domain.NewError(domain.KindParentCategoryDoesNotExist, "la categoría padre con ID %d no existe", *parentID)
	}
	return nil
}

// EnsureDeletable rechaza borrar una categoría con productos o con categorías hijas.
// Los productos se consultan primero; si hay alguno no se consulta la jerarquía.
func (v *Validator) EnsureDeletable(ctx context.Context, categoryID int64) error {
	assigned, err := v.products.ExistsByCategory(ctx, categoryID)
	if err != nil {
		return fmt.Errorf("exists products by category: %w", err)
	}
	if !assigned {
		assigned, err = v.categories.ExistsByParent(ctx, categoryID)
		if err != nil {
			return fmt.Errorf("exists children: %w", err)
		}
	}
	if assigned {
		return domain.NewError(domain.KindCategoryAssigned, "la categoría asignada con ID %d no puede eliminarse", categoryID)
	}
	return nil
}
