package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItemRequest línea solicitada: producto y cantidad.
type SaleItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
}

// CreateSaleRequest body para POST /api/sales.
// Los productId duplicados se procesan de forma independiente, cada ocurrencia
// descuenta stock por separado (no se fusionan cantidades).
type CreateSaleRequest struct {
	CustomerID string            `json:"customer_id,omitempty"` // opcional: venta de mostrador si va vacío
	Items      []SaleItemRequest `json:"items"`
}

// SaleItemResponse línea de venta con el precio capturado y el producto resuelto.
type SaleItemResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	ProductSKU  string          `json:"product_sku"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"` // snapshot al momento de la venta
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// SaleUserResponse referencia al usuario que registró la venta.
type SaleUserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email,omitempty"`
}

// SaleCustomerResponse referencia ligera al cliente de la venta.
type SaleCustomerResponse struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email,omitempty"`
}

// SaleResponse venta completa para POST /api/sales y GET /api/sales/:id.
type SaleResponse struct {
	ID          string                `json:"id"`
	TotalAmount decimal.Decimal       `json:"total_amount"`
	CreatedAt   time.Time             `json:"created_at"`
	User        SaleUserResponse      `json:"user"`
	Customer    *SaleCustomerResponse `json:"customer,omitempty"`
	Items       []SaleItemResponse    `json:"items"`
}

// SaleSummaryResponse cabecera de venta para listados.
type SaleSummaryResponse struct {
	ID          string                `json:"id"`
	TotalAmount decimal.Decimal       `json:"total_amount"`
	CreatedAt   time.Time             `json:"created_at"`
	Customer    *SaleCustomerResponse `json:"customer,omitempty"`
	ItemCount   int                   `json:"item_count"`
}

// ListSalesRequest filtros para GET /api/sales.
type ListSalesRequest struct {
	PageRequest
	StartDate string `query:"start_date"` // RFC 3339 o YYYY-MM-DD
	EndDate   string `query:"end_date"`
}

// SaleListResponse página de ventas.
type SaleListResponse struct {
	Items []SaleResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
