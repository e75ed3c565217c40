package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/jhoicas/catalog-api/internal/domain/entity"
	"github.com/jhoicas/catalog-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación en memoria de ProductRepository.
type ProductRepo struct {
	mu    sync.RWMutex
	items map[int64]entity.Product
	seq   int64
}

// NewProductRepository construye el repositorio vacío.
func NewProductRepository() *ProductRepo {
	return &ProductRepo{items: make(map[int64]entity.Product)}
}

// GetByID obtiene un producto por ID; (nil, nil) si no existe.
func (r *ProductRepo) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

// ExistsByID indica si existe el producto.
func (r *ProductRepo) ExistsByID(_ context.Context, id int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.items[id]
	return ok, nil
}

// Save inserta (ID 0) o reemplaza el producto.
func (r *ProductRepo) Save(_ context.Context, product *entity.Product) (*entity.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := *product
	if p.ID == 0 {
		r.seq++
		p.ID = r.seq
	} else if p.ID > r.seq {
		r.seq = p.ID
	}
	r.items[p.ID] = p
	return &p, nil
}

// DeleteByID elimina el producto si existe.
func (r *ProductRepo) DeleteByID(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
	return nil
}

// ListByCategory lista los productos de una categoría, ordenados por ID.
func (r *ProductRepo) ListByCategory(_ context.Context, categoryID int64) ([]*entity.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*entity.Product
	for _, p := range r.items {
		if p.CategoryID == categoryID {
			p := p
			out = append(out, &p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// ExistsByCategory indica si algún producto referencia la categoría.
func (r *ProductRepo) ExistsByCategory(_ context.Context, categoryID int64) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.items {
		if p.CategoryID == categoryID {
			return true, nil
		}
	}
	return false, nil
}
