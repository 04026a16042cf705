package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale representa una venta confirmada. Inmutable una vez creada:
// no existe camino de actualización para una venta ni sus líneas.
type Sale struct {
	ID          string
	UserID      string  // usuario que registró la venta
	CustomerID  *string // nil = venta de mostrador (walk-in)
	TotalAmount decimal.Decimal
	CreatedAt   time.Time
	Items       []*SaleItem

	// ItemCount denormalizado en lecturas de listados; no se persiste.
	ItemCount int
}

// SaleItem representa una línea de venta. UnitPrice es el precio capturado al
// momento de la transacción; ediciones posteriores del producto no lo alteran.
type SaleItem struct {
	ID        string
	SaleID    string
	ProductID string
	Quantity  int64
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal // Quantity × UnitPrice

	// Denormalizados en lecturas (JOIN con products); no se persisten aquí.
	ProductName string
	ProductSKU  string
}
