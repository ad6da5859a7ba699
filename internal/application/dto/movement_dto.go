package dto

import "time"

// CreateRecordRequest entrada para registrar una entrada o salida. El usuario sale del token.
type CreateRecordRequest struct {
	PackageID string     `json:"package_id" validate:"required,uuid"`
	Date      *time.Time `json:"date"`
}

// UpdateRecordRequest entrada para editar una entrada o salida. Los campos vacíos se conservan.
type UpdateRecordRequest struct {
	PackageID string     `json:"package_id" validate:"omitempty,uuid"`
	Date      *time.Time `json:"date"`
}

// RecordFilterRequest filtros de entradas y salidas.
type RecordFilterRequest struct {
	PageRequest
	UserID    string `query:"user_id" validate:"omitempty,uuid"`
	PackageID string `query:"package_id" validate:"omitempty,uuid"`
}

// RecordResponse salida de una entrada o salida.
type RecordResponse struct {
	ID                 string    `json:"id"`
	PackageID          string    `json:"package_id"`
	PackageDescription string    `json:"package_description,omitempty"`
	UserID             string    `json:"user_id"`
	UserName           string    `json:"user_name,omitempty"`
	Date               time.Time `json:"date"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// RecordListResponse lista paginada de entradas o salidas.
type RecordListResponse struct {
	Items []RecordResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}

// CreateMovementRequest entrada para registrar un traslado. El origen es la ubicación actual del bulto.
type CreateMovementRequest struct {
	PackageID  string     `json:"package_id" validate:"required,uuid"`
	ToLocation string     `json:"to_location" validate:"required,max=200"`
	Date       *time.Time `json:"date"`
}

// UpdateMovementRequest entrada para editar un traslado.
type UpdateMovementRequest struct {
	PackageID    *string    `json:"package_id" validate:"omitempty,uuid"`
	FromLocation *string    `json:"from_location" validate:"omitempty,max=200"`
	ToLocation   *string    `json:"to_location" validate:"omitempty,min=1,max=200"`
	Date         *time.Time `json:"date"`
}

// MovementFilterRequest filtros del listado de movimientos.
type MovementFilterRequest struct {
	PageRequest
	UserID       string `query:"user_id" validate:"omitempty,uuid"`
	PackageID    string `query:"package_id" validate:"omitempty,uuid"`
	FromLocation string `query:"from_location"`
	ToLocation   string `query:"to_location"`
}

// MovementResponse salida de un movimiento.
type MovementResponse struct {
	ID           string    `json:"id"`
	PackageID    string    `json:"package_id"`
	UserID       string    `json:"user_id"`
	Date         time.Time `json:"date"`
	FromLocation string    `json:"from_location"`
	ToLocation   string    `json:"to_location"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// MovementListResponse lista paginada de movimientos.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
