package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo.
// StockQuantity solo se descuenta vía la reserva condicional del repositorio
// (nunca por read-modify-write en la aplicación); el precio es decimal fijo.
type Product struct {
	ID            string
	SKU           string // código único elegido por el usuario
	Name          string
	Category      string
	Price         decimal.Decimal // precio de venta unitario
	StockQuantity int64           // invariante: >= 0 siempre
	ImageURL      string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
