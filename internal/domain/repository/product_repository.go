package repository

import (
	"context"

	"github.com/tu-usuario/pos-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Product, error)
	// Update nunca modifica StockQuantity; el stock solo cambia vía ReserveStock.
	Update(ctx context.Context, product *entity.Product) error
	// ReserveStock descuenta quantity del stock solo si alcanza, como una única
	// operación condicional atómica en la BD. false = stock insuficiente.
	ReserveStock(ctx context.Context, productID string, quantity int64) (bool, error)
	Delete(ctx context.Context, id string) error
}
