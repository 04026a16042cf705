package sales

import (
	"context"

	"github.com/tu-usuario/pos-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Todo lo escrito dentro de fn se confirma o se
// descarta como una sola unidad; garantiza la atomicidad del motor de ventas.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		customerRepo repository.CustomerRepository,
		saleRepo repository.SaleRepository,
	) error) error
}
