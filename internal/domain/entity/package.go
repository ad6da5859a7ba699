package entity

import "time"

// PackageState estado de un bulto (recibido, en tránsito, dañado...).
type PackageState struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Package representa un bulto físico. Sus detalles, entrada y salida se referencian por PackageID;
// el bulto no guarda punteros a ellos.
type Package struct {
	ID              string
	Description     string
	CurrentLocation string // texto libre, lo actualizan los movimientos
	StateID         string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// LineItem representa un detalle de bulto: un producto y la cantidad contenida.
type LineItem struct {
	ID        string
	PackageID string
	ProductID string
	Quantity  int    // siempre > 0
	Lot       string // opcional
	ExpiresAt *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}
