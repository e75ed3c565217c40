package repository

import (
	"context"

	"github.com/jhoicas/catalog-api/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category (DIP).
// Los métodos Get devuelven (nil, nil) si el registro no existe.
type CategoryRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.Category, error)
	ExistsByID(ctx context.Context, id int64) (bool, error)
	// Save inserta si ID es 0 (el store asigna el ID) o actualiza/inserta con el ID dado.
	Save(ctx context.Context, category *entity.Category) (*entity.Category, error)
	DeleteByID(ctx context.Context, id int64) error
	ListRoots(ctx context.Context) ([]*entity.Category, error)
	ListByParent(ctx context.Context, parentID int64) ([]*entity.Category, error)
	ExistsByParent(ctx context.Context, parentID int64) (bool, error)
	// AncestorChain recorre desde startID hacia la raíz siguiendo ParentID, incluyendo startID.
	// Si startID no existe devuelve una lista vacía sin error.
	AncestorChain(ctx context.Context, startID int64) ([]*entity.Category, error)
}
