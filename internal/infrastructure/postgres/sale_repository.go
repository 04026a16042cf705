package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/pos-api/internal/domain/entity"
	"github.com/tu-usuario/pos-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación de SaleRepository (usable con pool o tx).
// Las ventas se insertan una sola vez y nunca se actualizan ni se borran.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste la cabecera de la venta.
func (r *SaleRepo) Create(ctx context.Context, sale *entity.Sale) error {
	query := `
		INSERT INTO sales (id, user_id, customer_id, total_amount, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query,
		sale.ID, sale.UserID, sale.CustomerID, sale.TotalAmount, sale.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// CreateItem persiste una línea de venta con su precio capturado.
func (r *SaleRepo) CreateItem(ctx context.Context, item *entity.SaleItem) error {
	query := `
		INSERT INTO sale_items (id, sale_id, product_id, quantity, unit_price, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query,
		item.ID, item.SaleID, item.ProductID, item.Quantity, item.UnitPrice, item.Subtotal,
	)
	if err != nil {
		return fmt.Errorf("insert sale item: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera de una venta.
func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	query := `
		SELECT id, user_id, customer_id, total_amount, created_at
		FROM sales WHERE id = $1`
	var s entity.Sale
	err := r.q.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.UserID, &s.CustomerID, &s.TotalAmount, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return &s, nil
}

// GetItemsBySaleID devuelve las líneas con nombre y SKU del producto.
func (r *SaleRepo) GetItemsBySaleID(ctx context.Context, saleID string) ([]*entity.SaleItem, error) {
	query := `
		SELECT i.id, i.sale_id, i.product_id, i.quantity, i.unit_price, i.subtotal, p.name, p.sku
		FROM sale_items i
		JOIN products p ON p.id = i.product_id
		WHERE i.sale_id = $1
		ORDER BY i.id`
	rows, err := r.q.Query(ctx, query, saleID)
	if err != nil {
		return nil, fmt.Errorf("list sale items: %w", err)
	}
	defer rows.Close()
	var items []*entity.SaleItem
	for rows.Next() {
		var i entity.SaleItem
		if err := rows.Scan(&i.ID, &i.SaleID, &i.ProductID, &i.Quantity, &i.UnitPrice,
			&i.Subtotal, &i.ProductName, &i.ProductSKU); err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		items = append(items, &i)
	}
	return items, rows.Err()
}

// List lista ventas paginadas, más recientes primero, con filtro opcional por
// rango de fechas, y el total para la paginación.
func (r *SaleRepo) List(ctx context.Context, filter repository.SaleFilter) ([]*entity.Sale, int, error) {
	where := ` WHERE ($1::timestamptz IS NULL OR created_at >= $1)
		AND ($2::timestamptz IS NULL OR created_at <= $2)`

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM sales`+where,
		filter.StartDate, filter.EndDate).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count sales: %w", err)
	}

	query := `
		SELECT id, user_id, customer_id, total_amount, created_at
		FROM sales` + where + `
		ORDER BY created_at DESC LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, filter.StartDate, filter.EndDate, filter.Limit, filter.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		if err := rows.Scan(&s.ID, &s.UserID, &s.CustomerID, &s.TotalAmount, &s.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, &s)
	}
	return list, total, rows.Err()
}

// ListByCustomer devuelve las ventas más recientes de un cliente con el número
// de líneas de cada una.
func (r *SaleRepo) ListByCustomer(ctx context.Context, customerID string, limit int) ([]*entity.Sale, error) {
	query := `
		SELECT s.id, s.user_id, s.customer_id, s.total_amount, s.created_at,
		       (SELECT COUNT(*) FROM sale_items i WHERE i.sale_id = s.id) AS item_count
		FROM sales s
		WHERE s.customer_id = $1
		ORDER BY s.created_at DESC
		LIMIT $2`
	rows, err := r.q.Query(ctx, query, customerID, limit)
	if err != nil {
		return nil, fmt.Errorf("list sales by customer: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		if err := rows.Scan(&s.ID, &s.UserID, &s.CustomerID, &s.TotalAmount, &s.CreatedAt, &s.ItemCount); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// StatsByCustomer agrega las estadísticas del cliente sobre sus ventas al
// momento de la consulta. SUM corre sobre NUMERIC, sin paso por float.
func (r *SaleRepo) StatsByCustomer(ctx context.Context, customerID string) (*repository.CustomerStats, error) {
	query := `
		SELECT COUNT(*), COALESCE(SUM(total_amount), 0), MAX(created_at)
		FROM sales WHERE customer_id = $1`
	var stats repository.CustomerStats
	err := r.q.QueryRow(ctx, query, customerID).Scan(
		&stats.TotalOrders, &stats.TotalSpent, &stats.LastVisit,
	)
	if err != nil {
		return nil, fmt.Errorf("customer stats: %w", err)
	}
	return &stats, nil
}
