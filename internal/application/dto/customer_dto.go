package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateCustomerRequest body para POST /api/customers.
type CreateCustomerRequest struct {
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	Email         string `json:"email"`
	Phone         string `json:"phone,omitempty"`
	InternalNotes string `json:"internal_notes,omitempty"`
}

// UpdateCustomerRequest body para PUT /api/customers/:id.
type UpdateCustomerRequest struct {
	FirstName     *string `json:"first_name"`
	LastName      *string `json:"last_name"`
	Email         *string `json:"email"`
	Phone         *string `json:"phone"`
	InternalNotes *string `json:"internal_notes"`
}

// CustomerResponse cliente con sus estadísticas derivadas.
// TotalOrders, TotalSpent y LastVisit se recalculan desde las ventas en cada
// lectura; nunca se cachean ni se mantienen como contadores.
type CustomerResponse struct {
	ID            string          `json:"id"`
	FirstName     string          `json:"first_name"`
	LastName      string          `json:"last_name"`
	Email         string          `json:"email"`
	Phone         string          `json:"phone,omitempty"`
	InternalNotes string          `json:"internal_notes,omitempty"`
	TotalOrders   int64           `json:"total_orders"`
	TotalSpent    decimal.Decimal `json:"total_spent"`
	LastVisit     *time.Time      `json:"last_visit"` // null si no tiene ventas
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// CustomerListResponse página de clientes con estadísticas.
type CustomerListResponse struct {
	Items []CustomerResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// CustomerDetailResponse cliente con estadísticas y ventas recientes.
type CustomerDetailResponse struct {
	CustomerResponse
	RecentSales []SaleSummaryResponse `json:"recent_sales"`
}
