package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/pos-api/internal/domain/entity"
)

// SaleFilter filtros para el listado de ventas.
type SaleFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Limit     int
	Offset    int
}

// CustomerStats estadísticas derivadas de un cliente. Se calculan siempre
// desde las ventas persistidas, nunca como contador incremental.
type CustomerStats struct {
	TotalOrders int64
	TotalSpent  decimal.Decimal
	LastVisit   *time.Time // nil si el cliente no tiene ventas
}

// SaleRepository define el puerto de persistencia para Sale y sus líneas.
// Las ventas son inmutables: no hay Update ni Delete.
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	CreateItem(ctx context.Context, item *entity.SaleItem) error
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	// GetItemsBySaleID devuelve las líneas con nombre y SKU del producto (JOIN).
	GetItemsBySaleID(ctx context.Context, saleID string) ([]*entity.SaleItem, error)
	List(ctx context.Context, filter SaleFilter) ([]*entity.Sale, int, error)
	ListByCustomer(ctx context.Context, customerID string, limit int) ([]*entity.Sale, error)
	// StatsByCustomer agrega COUNT, SUM(total_amount) y MAX(created_at) sobre
	// las ventas del cliente al momento de la consulta.
	StatsByCustomer(ctx context.Context, customerID string) (*CustomerStats, error)
}
