package dto

import "time"

// CreatePackageRequest entrada para crear un bulto.
type CreatePackageRequest struct {
	Description     string `json:"description" validate:"max=500"`
	CurrentLocation string `json:"current_location" validate:"required,max=200"`
	StateID         string `json:"state_id" validate:"omitempty,uuid"`
}

// UpdatePackageRequest entrada para actualizar un bulto.
type UpdatePackageRequest struct {
	Description     *string `json:"description" validate:"omitempty,max=500"`
	CurrentLocation *string `json:"current_location" validate:"omitempty,min=1,max=200"`
	StateID         *string `json:"state_id" validate:"omitempty,uuid"`
}

// PackageFilterRequest filtros del listado de bultos.
type PackageFilterRequest struct {
	PageRequest
	Location string `query:"location"`
	StateID  string `query:"state_id" validate:"omitempty,uuid"`
	HasEntry *bool  `query:"has_entry"`
	HasExit  *bool  `query:"has_exit"`
}

// PackageResponse salida de un bulto con su clasificación de stock.
type PackageResponse struct {
	ID              string    `json:"id"`
	Description     string    `json:"description"`
	CurrentLocation string    `json:"current_location"`
	StateID         string    `json:"state_id,omitempty"`
	StateName       string    `json:"state_name,omitempty"`
	HasEntry        bool      `json:"has_entry"`
	HasExit         bool      `json:"has_exit"`
	StockStatus     string    `json:"stock_status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// PackageDetailResponse bulto con detalles, entrada, salida y movimientos.
type PackageDetailResponse struct {
	PackageResponse
	Lines     []LineItemResponse `json:"lines"`
	Entry     *RecordResponse    `json:"entry,omitempty"`
	Exit      *RecordResponse    `json:"exit,omitempty"`
	Movements []MovementResponse `json:"movements"`
}

// PackageListResponse lista paginada de bultos.
type PackageListResponse struct {
	Items []PackageResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// PackageOption opción de bulto para los formularios de entrada y salida.
type PackageOption struct {
	ID              string `json:"id"`
	Description     string `json:"description"`
	CurrentLocation string `json:"current_location"`
}

// PackageOptionsResponse bultos elegibles para una nueva entrada o salida.
type PackageOptionsResponse struct {
	Items []PackageOption `json:"items"`
}

// CreateLineItemRequest entrada para agregar un detalle a un bulto.
type CreateLineItemRequest struct {
	PackageID string     `json:"package_id" validate:"required,uuid"`
	ProductID string     `json:"product_id" validate:"required,uuid"`
	Quantity  int        `json:"quantity" validate:"required,gt=0"`
	Lot       string     `json:"lot" validate:"max=100"`
	ExpiresAt *time.Time `json:"expires_at"`
}

// UpdateLineItemRequest entrada para editar un detalle. PackageID vacío conserva el bulto.
type UpdateLineItemRequest struct {
	PackageID string     `json:"package_id" validate:"omitempty,uuid"`
	ProductID string     `json:"product_id" validate:"required,uuid"`
	Quantity  int        `json:"quantity" validate:"required,gt=0"`
	Lot       string     `json:"lot" validate:"max=100"`
	ExpiresAt *time.Time `json:"expires_at"`
}

// LineItemResponse salida de un detalle de bulto.
type LineItemResponse struct {
	ID          string     `json:"id"`
	PackageID   string     `json:"package_id"`
	ProductID   string     `json:"product_id"`
	ProductName string     `json:"product_name,omitempty"`
	Quantity    int        `json:"quantity"`
	Lot         string     `json:"lot,omitempty"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// LineItemFilterRequest filtros del listado de detalles.
type LineItemFilterRequest struct {
	PageRequest
	Name string `query:"name"`
	Lot  string `query:"lot"`
}

// LineItemListResponse lista paginada de detalles.
type LineItemListResponse struct {
	Items []LineItemResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
