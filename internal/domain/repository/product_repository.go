package repository

import (
	"context"

	"github.com/jhoicas/catalog-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	Save(ctx context.Context, product *entity.Product) (*entity.Product, error)
	DeleteByID(ctx context.Context, id int64) error
	ListByCategory(ctx context.Context, categoryID int64) ([]*entity.Product, error)
	ExistsByCategory(ctx context.Context, categoryID int64) (bool, error)
}
