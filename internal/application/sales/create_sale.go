package sales

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/pos-api/internal/application/dto"
	"github.com/tu-usuario/pos-api/internal/domain"
	"github.com/tu-usuario/pos-api/internal/domain/entity"
	"github.com/tu-usuario/pos-api/internal/domain/repository"
)

// DefaultTxTimeout presupuesto máximo de la transacción de venta. Excederlo
// aborta la operación completa sin efectos parciales; el caller puede reintentar.
const DefaultTxTimeout = 10 * time.Second

// CreateSaleUseCase coordina la creación de una venta: validación de líneas,
// captura de precio, reserva atómica de stock y persistencia de la venta con
// sus líneas, todo dentro de una única transacción.
type CreateSaleUseCase struct {
	txRunner  TxRunner
	userRepo  repository.UserRepository
	txTimeout time.Duration
}

// NewCreateSaleUseCase construye el caso de uso. txTimeout <= 0 usa DefaultTxTimeout.
func NewCreateSaleUseCase(txRunner TxRunner, userRepo repository.UserRepository, txTimeout time.Duration) *CreateSaleUseCase {
	if txTimeout <= 0 {
		txTimeout = DefaultTxTimeout
	}
	return &CreateSaleUseCase{txRunner: txRunner, userRepo: userRepo, txTimeout: txTimeout}
}

// CreateSale crea una venta para userID. O queda la venta completa (líneas,
// total y descuentos de stock) visible para lectores, o no queda nada.
//
// Las validaciones de forma (lista vacía, cantidad < 1) se rechazan antes de
// abrir la transacción. Producto o cliente inexistente y stock insuficiente
// abortan la transacción en curso con rollback de todos los descuentos previos
// de esta misma llamada.
func (uc *CreateSaleUseCase) CreateSale(ctx context.Context, userID string, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, item := range in.Items {
		if item.ProductID == "" || item.Quantity < 1 {
			return nil, domain.ErrInvalidInput
		}
	}

	// Presupuesto duro de reloj para toda la unidad de trabajo.
	ctx, cancel := context.WithTimeout(ctx, uc.txTimeout)
	defer cancel()

	now := time.Now()
	sale := &entity.Sale{
		ID:        uuid.New().String(),
		UserID:    userID,
		CreatedAt: now,
	}
	if in.CustomerID != "" {
		customerID := in.CustomerID
		sale.CustomerID = &customerID
	}

	var customer *entity.Customer
	lineProducts := make([]*entity.Product, 0, len(in.Items))

	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		customerRepo repository.CustomerRepository,
		saleRepo repository.SaleRepository,
	) error {
		if sale.CustomerID != nil {
			c, err := customerRepo.GetByID(ctx, *sale.CustomerID)
			if err != nil {
				return err
			}
			if c == nil {
				return &domain.NotFoundError{Resource: "customer", ID: *sale.CustomerID}
			}
			customer = c
		}

		total := decimal.Zero
		for _, item := range in.Items {
			// Las ocurrencias duplicadas de un mismo producto se procesan de
			// forma independiente: cada una relee el producto y descuenta por
			// separado. Política de paso directo, no fusionar cantidades.
			product, err := productRepo.GetByID(ctx, item.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return &domain.NotFoundError{Resource: "product", ID: item.ProductID}
			}

			// Reserva: check-and-decrement como una sola operación condicional
			// en la BD. Cero filas afectadas = stock insuficiente.
			ok, err := productRepo.ReserveStock(ctx, product.ID, item.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				return &domain.InsufficientStockError{
					ProductID:   product.ID,
					ProductName: product.Name,
					Available:   product.StockQuantity,
					Requested:   item.Quantity,
				}
			}

			subtotal := product.Price.Mul(decimal.NewFromInt(item.Quantity))
			total = total.Add(subtotal)
			sale.Items = append(sale.Items, &entity.SaleItem{
				ID:        uuid.New().String(),
				SaleID:    sale.ID,
				ProductID: product.ID,
				Quantity:  item.Quantity,
				UnitPrice: product.Price, // snapshot: ediciones futuras del precio no afectan esta venta
				Subtotal:  subtotal,
			})
			lineProducts = append(lineProducts, product)
		}
		sale.TotalAmount = total

		if err := saleRepo.Create(ctx, sale); err != nil {
			return err
		}
		for _, line := range sale.Items {
			if err := saleRepo.CreateItem(ctx, line); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, domain.ErrTxTimeout
		}
		return nil, err
	}

	// Referencia al usuario solo para la respuesta; la venta ya está confirmada.
	requester, _ := uc.userRepo.GetByID(ctx, userID)

	return toSaleResponse(sale, customer, requester, lineProducts), nil
}

// toSaleResponse arma la respuesta con los snapshots tomados en la transacción.
func toSaleResponse(sale *entity.Sale, customer *entity.Customer, requester *entity.User, products []*entity.Product) *dto.SaleResponse {
	resp := &dto.SaleResponse{
		ID:          sale.ID,
		TotalAmount: sale.TotalAmount,
		CreatedAt:   sale.CreatedAt,
		User:        dto.SaleUserResponse{ID: sale.UserID},
		Items:       make([]dto.SaleItemResponse, 0, len(sale.Items)),
	}
	if requester != nil {
		resp.User.Email = requester.Email
	}
	if customer != nil {
		resp.Customer = &dto.SaleCustomerResponse{
			ID:        customer.ID,
			FirstName: customer.FirstName,
			LastName:  customer.LastName,
			Email:     customer.Email,
		}
	}
	for i, line := range sale.Items {
		item := dto.SaleItemResponse{
			ID:        line.ID,
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
			Subtotal:  line.Subtotal,
		}
		if i < len(products) && products[i] != nil {
			item.ProductName = products[i].Name
			item.ProductSKU = products[i].SKU
		}
		resp.Items = append(resp.Items, item)
	}
	return resp
}
