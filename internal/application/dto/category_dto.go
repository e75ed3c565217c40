package dto

import (
	"github.com/jhoicas/catalog-api/internal/domain/catalog"
	"github.com/jhoicas/catalog-api/internal/domain/entity"
)

// CategoryRequest entrada para crear o actualizar una categoría.
// ID debe omitirse al crear y coincidir con el de la ruta al actualizar.
// Name es obligatorio pero puede ser vacío; se guarda tal cual llega.
type CategoryRequest struct {
	ID       *int64  `json:"id"`
	Name     *string `json:"name" validate:"required,max=255"`
	ParentID *int64  `json:"parent_id"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	ParentID *int64 `json:"parent_id"`
}

// CategoryTree es la cadena raíz → categoría consultada. Cada nodo tiene a lo sumo un hijo.
type CategoryTree struct {
	Category CategoryResponse `json:"category"`
	Children *CategoryTree    `json:"children"`
}

// ToEntity mapea el request a la entidad. Un ID nil se traduce a 0 (lo asigna el store).
func (r CategoryRequest) ToEntity() *entity.Category {
	c := &entity.Category{
		Name:     derefString(r.Name),
		ParentID: copyInt64Ptr(r.ParentID),
	}
	if r.ID != nil {
		c.ID = *r.ID
	}
	return c
}

// CategoryFromEntity mapea la entidad a su DTO de salida.
func CategoryFromEntity(c *entity.Category) *CategoryResponse {
	if c == nil {
		return nil
	}
	return &CategoryResponse{
		ID:       c.ID,
		Name:     c.Name,
		ParentID: copyInt64Ptr(c.ParentID),
	}
}

// CategoriesFromEntities mapea una lista de entidades.
func CategoriesFromEntities(list []*entity.Category) []CategoryResponse {
	out := make([]CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *CategoryFromEntity(c))
	}
	return out
}

// CategoryTreeFromChain convierte la cadena del dominio en el DTO anidado.
func CategoryTreeFromChain(chain *catalog.Link[CategoryResponse]) *CategoryTree {
	var root *CategoryTree
	next := &root
	for _, c := range chain.Values() {
		node := &CategoryTree{Category: c}
		*next = node
		next = &node.Children
	}
	return root
}

// Path devuelve las categorías de la cadena en orden raíz → hoja.
func (t *CategoryTree) Path() []CategoryResponse {
	var out []CategoryResponse
	for cur := t; cur != nil; cur = cur.Children {
		out = append(out, cur.Category)
	}
	return out
}
