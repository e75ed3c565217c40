package entity

// Category representa una categoría del catálogo. ParentID nil indica categoría raíz.
type Category struct {
	ID       int64
	Name     string
	ParentID *int64
}

// IsRoot indica si la categoría no tiene padre.
func (c *Category) IsRoot() bool {
	return c.ParentID == nil
}
