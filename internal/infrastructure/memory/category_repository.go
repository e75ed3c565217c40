package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/jhoicas/catalog-api/internal/domain/entity"
	"github.com/jhoicas/catalog-api/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implementación en memoria de CategoryRepository (desarrollo y tests).
// Los IDs se asignan con una secuencia creciente, como un BIGSERIAL.
type CategoryRepo struct {
	mu    sync.RWMutex
	items map[int64]entity.Category
	seq   int64
}

// NewCategoryRepository construye el repositorio vacío.
func NewCategoryRepository() *CategoryRepo {
	return &CategoryRepo{items: make(map[int64]entity.Category)}
}

// GetByID obtiene una categoría por ID; (nil, nil) si no existe.
func (r *CategoryRepo) GetByID(_ context.Context, id int64) (*entity.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	return cloneCategory(c), nil
}

// ExistsByID indica si existe la categoría.
func (r *CategoryRepo) ExistsByID(_ context.Context, id int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.items[id]
	return ok, nil
}

// Save inserta (ID 0) o reemplaza la categoría.
func (r *CategoryRepo) Save(_ context.Context, category *entity.Category) (*entity.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *cloneCategory(*category)
	if c.ID == 0 {
		r.seq++
		c.ID = r.seq
	} else if c.ID > r.seq {
		r.seq = c.ID
	}
	r.items[c.ID] = c
	return cloneCategory(c), nil
}

// DeleteByID elimina la categoría si existe.
func (r *CategoryRepo) DeleteByID(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
	return nil
}

// ListRoots lista las categorías sin padre, ordenadas por ID.
func (r *CategoryRepo) ListRoots(_ context.Context) ([]*entity.Category, error) {
	return r.filter(func(c entity.Category) bool { return c.IsRoot() }), nil
}

// ListByParent lista las hijas directas de parentID, ordenadas por ID.
func (r *CategoryRepo) ListByParent(_ context.Context, parentID int64) ([]*entity.Category, error) {
	return r.filter(func(c entity.Category) bool {
		return c.ParentID != nil && *c.ParentID == parentID
	}), nil
}

// ExistsByParent indica si alguna categoría tiene a parentID como padre.
func (r *CategoryRepo) ExistsByParent(_ context.Context, parentID int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.items {
		if c.ParentID != nil && *c.ParentID == parentID {
			return true, nil
		}
	}
	return false, nil
}

// AncestorChain devuelve startID y sus ancestros, de la hoja a la raíz.
// Un ID repetido corta el recorrido, de modo que un ciclo en los datos no bloquea la consulta.
func (r *CategoryRepo) AncestorChain(_ context.Context, startID int64) ([]*entity.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var chain []*entity.Category
	seen := make(map[int64]struct{})
	id := startID
	for {
		c, ok := r.items[id]
		if !ok {
			break
		}
		if _, dup := seen[id]; dup {
			break
		}
		seen[id] = struct{}{}
		chain = append(chain, cloneCategory(c))
		if c.ParentID == nil {
			break
		}
		id = *c.ParentID
	}
	return chain, nil
}

func (r *CategoryRepo) filter(keep func(entity.Category) bool) []*entity.Category {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*entity.Category
	for _, c := range r.items {
		if keep(c) {
			out = append(out, cloneCategory(c))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func cloneCategory(c entity.Category) *entity.Category {
	if c.ParentID != nil {
		p := *c.ParentID
		c.ParentID = &p
	}
	return &c
}
