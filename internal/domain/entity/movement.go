package entity

import "time"

// Entry representa la entrada de un bulto al stock: todas las cantidades de sus detalles
// se sumaron a los productos correspondientes. Como máximo una por bulto.
type Entry struct {
	ID        string
	PackageID string
	UserID    string
	Date      time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Exit representa la salida de un bulto del stock: todas las cantidades de sus detalles
// se restaron de los productos correspondientes. Como máximo una por bulto.
type Exit struct {
	ID        string
	PackageID string
	UserID    string
	Date      time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Movement registra el traslado físico de un bulto entre ubicaciones. No afecta stock.
type Movement struct {
	ID           string
	PackageID    string
	UserID       string
	Date         time.Time
	FromLocation string
	ToLocation   string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
