package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto. El stock inicia en 0.
type CreateProductRequest struct {
	Name             string          `json:"name" validate:"required,min=1,max=200"`
	Price            decimal.Decimal `json:"price"`
	CategoryID       string          `json:"category_id" validate:"required,uuid"`
	SpecialStorageID string          `json:"special_storage_id" validate:"omitempty,uuid"`
}

// UpdateProductRequest entrada para actualizar un producto (sin stock).
// SpecialStorageID vacío quita el almacenamiento especial.
type UpdateProductRequest struct {
	Name             *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Price            *decimal.Decimal `json:"price"`
	CategoryID       *string          `json:"category_id" validate:"omitempty,uuid"`
	SpecialStorageID *string          `json:"special_storage_id" validate:"omitempty,uuid"`
}

// ProductFilterRequest filtros del listado de productos.
type ProductFilterRequest struct {
	PageRequest
	Name       string `query:"name"`
	CategoryID string `query:"category_id" validate:"omitempty,uuid"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID                 string          `json:"id"`
	Name               string          `json:"name"`
	Price              decimal.Decimal `json:"price"`
	QuantityOnHand     int             `json:"quantity_on_hand"`
	StockValue         decimal.Decimal `json:"stock_value"`
	CategoryID         string          `json:"category_id"`
	CategoryName       string          `json:"category_name,omitempty"`
	SpecialStorageID   string          `json:"special_storage_id,omitempty"`
	SpecialStorageName string          `json:"special_storage_name,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// CatalogRequest entrada para crear o renombrar categorías, almacenamientos especiales,
// estados de bulto y roles.
type CatalogRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

// CatalogItemResponse salida de un elemento de catálogo.
type CatalogItemResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CatalogListResponse lista paginada de un catálogo.
type CatalogListResponse struct {
	Items []CatalogItemResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}
