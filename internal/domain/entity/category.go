package entity

import "time"

// Category representa una categoría de productos.
type Category struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SpecialStorage representa un requisito de almacenamiento especial (refrigerado, inflamable, etc.).
type SpecialStorage struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
