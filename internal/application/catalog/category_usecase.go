package catalog

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jhoicas/catalog-api/internal/application/dto"
	"github.com/jhoicas/catalog-api/internal/domain"
	tree "github.com/jhoicas/catalog-api/internal/domain/catalog"
	"github.com/jhoicas/catalog-api/internal/domain/repository"
)

// CategoryUseCase casos de uso de la jerarquía de categorías.
type CategoryUseCase struct {
	repo      repository.CategoryRepository
	validator *Validator
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository, validator *Validator) *CategoryUseCase {
	return &CategoryUseCase{repo: repo, validator: validator}
}

// Get obtiene una categoría por ID.
func (uc *CategoryUseCase) Get(ctx context.Context, id int64) (*dto.CategoryResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get category: %w", err)
	}
	if c == nil {
		return nil, categoryNotFound(id)
	}
	return dto.CategoryFromEntity(c), nil
}

// Delete elimina una categoría sin productos ni hijas.
func (uc *CategoryUseCase) Delete(ctx context.Context, id int64) error {
	if err := uc.validator.EnsureDeletable(ctx, id); err != nil {
		return err
	}
	ok, err := uc.repo.ExistsByID(ctx, id)
	if err != nil {
		return fmt.Errorf("exists category: %w", err)
	}
	if !ok {
		return categoryNotFound(id)
	}
	if err := uc.repo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	zerolog.Ctx(ctx).Info().Int64("category_id", id).Msg("categoría eliminada")
	return nil
}

// Update reemplaza nombre y padre de la categoría id.
// No valida ciclos: asignar como padre a un descendiente se acepta.
func (uc *CategoryUseCase) Update(ctx context.Context, id int64, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	if err := uc.validator.EnsureIDUnchanged(id, in.ID); err != nil {
		return nil, err
	}
	if err := uc.validator.EnsureParentExists(ctx, in.ParentID); err != nil {
		return nil, err
	}
	ok, err := uc.repo.ExistsByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("exists category: %w", err)
	}
	if !ok {
		return nil, categoryNotFound(id)
	}
	c := in.ToEntity()
	c.ID = id
	saved, err := uc.repo.Save(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}
	return dto.CategoryFromEntity(saved), nil
}

// Add crea una categoría; el ID lo asigna el store.
func (uc *CategoryUseCase) Add(ctx context.Context, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	if err := uc.validator.EnsureIDAbsent(in.ID); err != nil {
		return nil, err
	}
	if err := uc.validator.EnsureParentExists(ctx, in.ParentID); err != nil {
		return nil, err
	}
	saved, err := uc.repo.Save(ctx, in.ToEntity())
	if err != nil {
		return nil, fmt.Errorf("insert category: %w", err)
	}
	zerolog.Ctx(ctx).Info().Int64("category_id", saved.ID).Msg("categoría creada")
	return dto.CategoryFromEntity(saved), nil
}

// ListRoots lista las categorías sin padre.
func (uc *CategoryUseCase) ListRoots(ctx context.Context) ([]dto.CategoryResponse, error) {
	list, err := uc.repo.ListRoots(ctx)
	if err != nil {
		return nil, fmt.Errorf("list root categories: %w", err)
	}
	if len(list) == 0 {
		return nil, domain.NotFound("no existen categorías raíz")
	}
	return dto.CategoriesFromEntities(list), nil
}

// ListChildren lista las hijas directas de parentID.
func (uc *CategoryUseCase) ListChildren(ctx context.Context, parentID int64) ([]dto.CategoryResponse, error) {
	list, err := uc.repo.ListByParent(ctx, parentID)
	if err != nil {
		return nil, fmt.Errorf("list child categories: %w", err)
	}
	if len(list) == 0 {
		return nil, domain.NotFound("la categoría con ID %d no tiene categorías hijas", parentID)
	}
	return dto.CategoriesFromEntities(list), nil
}

// GetTree devuelve la cadena raíz → id.
func (uc *CategoryUseCase) GetTree(ctx context.Context, id int64) (*dto.CategoryTree, error) {
	chain, err := uc.repo.AncestorChain(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("ancestor chain: %w", err)
	}
	records := make([]tree.Record[dto.CategoryResponse], 0, len(chain))
	for _, c := range chain {
		records = append(records, tree.Record[dto.CategoryResponse]{
			ID:       c.ID,
			ParentID: c.ParentID,
			Value:    *dto.CategoryFromEntity(c),
		})
	}
	out := dto.CategoryTreeFromChain(tree.BuildChain(records))
	if out == nil {
		return nil, categoryNotFound(id)
	}
	return out, nil
}

func categoryNotFound(id int64) error {
	return domain.NotFound("categoría con ID %d no encontrada", id)
}
