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

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, name, category_id, price, currency`

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	p, err := scanProduct(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// ExistsByID indica si existe el producto.
func (r *ProductRepo) ExistsByID(ctx context.Context, id int64) (bool, error) {
	var ok bool
	err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`, id).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("exists product: %w", err)
	}
	return ok, nil
}

// Save inserta (ID 0) o actualiza el producto con el ID dado.
func (r *ProductRepo) Save(ctx context.Context, product *entity.Product) (*entity.Product, error) {
	var row pgx.Row
	if product.ID == 0 {
		query := `
			INSERT INTO products (name, category_id, price, currency)
			VALUES ($1, $2, $3, $4)
			RETURNING ` + productColumns
		row = r.q.QueryRow(ctx, query, product.Name, product.CategoryID, product.Price, string(product.Currency))
	} else {
		query := `
			INSERT INTO products (id, name, category_id, price, currency)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (id) DO UPDATE SET
				name = EXCLUDED.name,
				category_id = EXCLUDED.category_id,
				price = EXCLUDED.price,
				currency = EXCLUDED.currency
			RETURNING ` + productColumns
		row = r.q.QueryRow(ctx, query, product.ID, product.Name, product.CategoryID, product.Price, string(product.Currency))
	}
	saved, err := scanProduct(row)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, domain.NewError(domain.KindParentCategoryDoesNotExist,
				"la categoría padre con ID %d no existe", product.CategoryID)
		}
		return nil, fmt.Errorf("save product: %w", err)
	}
	return saved, nil
}

// DeleteByID elimina el producto.
func (r *ProductRepo) DeleteByID(ctx context.Context, id int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

// ListByCategory lista los productos de categoryID.
func (r *ProductRepo) ListByCategory(ctx context.Context, categoryID int64) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE category_id = $1 ORDER BY id`
	rows, err := r.q.Query(ctx, query, categoryID)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var out []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return out, nil
}

// ExistsByCategory indica si algún producto referencia categoryID.
func (r *ProductRepo) ExistsByCategory(ctx context.Context, categoryID int64) (bool, error) {
	var ok bool
	err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM products WHERE category_id = $1)`, categoryID).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("exists products by category: %w", err)
	}
	return ok, nil
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var (
		p        entity.Product
		currency string
	)
	if err := row.Scan(&p.ID, &p.Name, &p.CategoryID, &p.Price, &currency); err != nil {
		return nil, err
	}
	p.Currency = entity.Currency(currency)
	return &p, nil
}
