package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/catalog-api/internal/domain"
	"github.com/jhoicas/catalog-api/internal/domain/entity"
	"github.com/jhoicas/catalog-api/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implementación del puerto CategoryRepository sobre PostgreSQL (usable con pool o tx).
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador de persistencia para categorías. Pasar pool o tx (Querier).
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

const categoryColumns = `id, name, parent_id`

// GetByID obtiene una categoría por ID.
func (r *CategoryRepo) GetByID(ctx context.Context, id int64) (*entity.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id = $1`
	c, err := scanCategory(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return c, nil
}

// ExistsByID indica si existe la categoría.
func (r *CategoryRepo) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var ok bool
	err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM categories WHERE id = $1)`, id).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("exists category: %w", err)
	}
	return ok, nil
}

// Save inserta (ID 0, el ID lo asigna BIGSERIAL) o actualiza la categoría con el ID dado.
func (r *CategoryRepo) Save(ctx context.Context, category *entity.Category) (*entity.Category, error) {
	var row pgx.Row
	if category.ID == 0 {
		query := `
			INSERT INTO categories (name, parent_id)
			VALUES ($1, $2)
			RETURNING ` + categoryColumns
		row = r.q.QueryRow(ctx, query, category.Name, category.ParentID)
	} else {
		query := `
			INSERT INTO categories (id, name, parent_id)
			VALUES ($1, $2, $3)
			ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, parent_id = EXCLUDED.parent_id
			RETURNING ` + categoryColumns
		row = r.q.QueryRow(ctx, query, category.ID, category.Name, category.ParentID)
	}
	saved, err := scanCategory(row)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, domain.NewError(domain.KindParentCategoryDoesNotExist,
				"la categoría padre con ID %d no existe", derefOrZero(category.ParentID))
		}
		return nil, fmt.Errorf("save category: %w", err)
	}
	return saved, nil
}

// DeleteByID elimina la categoría. Si otra fila la referencia entre la validación y el
// borrado, la FK lo impide y se reporta como CategoryAssigned.
func (r *CategoryRepo) DeleteByID(ctx context.Context, id int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id); err != nil {
		if isForeignKeyViolation(err) {
			return domain.NewError(domain.KindCategoryAssigned, "la categoría asignada con ID %d no puede eliminarse", id)
		}
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

// ListRoots lista las categorías sin padre.
func (r *CategoryRepo) ListRoots(ctx context.Context) ([]*entity.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE parent_id IS NULL ORDER BY id`
	return r.list(ctx, "list root categories", query)
}

// ListByParent lista las hijas directas de parentID.
func (r *CategoryRepo) ListByParent(ctx context.Context, parentID int64) ([]*entity.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE parent_id = $1 ORDER BY id`
	return r.list(ctx, "list child categories", query, parentID)
}

// ExistsByParent indica si alguna categoría tiene a parentID como padre.
func (r *CategoryRepo) ExistsByParent(ctx context.Context, parentID int64) (bool, error) {
	var ok bool
	err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM categories WHERE parent_id = $1)`, parentID).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("exists child category: %w", err)
	}
	return ok, nil
}

// AncestorChain devuelve startID y todos sus ancestros con un CTE recursivo.
// UNION (no UNION ALL) descarta filas repetidas, de modo que un ciclo en parent_id termina la recursión.
func (r *CategoryRepo) AncestorChain(ctx context.Context, startID int64) ([]*entity.Category, error) {
	query := `
		WITH RECURSIVE chain AS (
			SELECT ` + categoryColumns + ` FROM categories WHERE id = $1
			UNION
			SELECT c.id, c.name, c.parent_id
			FROM categories c
			JOIN chain ch ON c.id = ch.parent_id
		)
		SELECT ` + categoryColumns + ` FROM chain`
	return r.list(ctx, "ancestor chain", query, startID)
}

func (r *CategoryRepo) list(ctx context.Context, op, query string, args ...any) ([]*entity.Category, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var out []*entity.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("%s scan: %w", op, err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return out, nil
}

func scanCategory(row pgx.Row) (*entity.Category, error) {
	var c entity.Category
	if err := row.Scan(&c.ID, &c.Name, &c.ParentID); err != nil {
		return nil, err
	}
	return &c, nil
}

func derefOrZero(v *int64) int64 {
	if v == nil {
		return 0
	}
	return *v
}
