package entity

// Category representa una categoría de repuestos.
type Category struct {
	ID   string
	Name string
}

// Subcategory cuelga de una Category.
type Subcategory struct {
	ID         string
	Name       string
	CategoryID string
}
