package sales

import (
	"context"
	"time"

	"github.com/tu-usuario/pos-api/internal/application/dto"
	"github.com/tu-usuario/pos-api/internal/domain"
	"github.com/tu-usuario/pos-api/internal/domain/entity"
	"github.com/tu-usuario/pos-api/internal/domain/repository"
)

// SaleQueryUseCase lecturas de ventas: detalle e historial paginado.
// Independiente del camino de escritura; alimenta listados y consumidores de
// reporte que consultan ventas recién creadas (visibilidad tras el commit).
type SaleQueryUseCase struct {
	saleRepo     repository.SaleRepository
	customerRepo repository.CustomerRepository
	userRepo     repository.UserRepository
}

// NewSaleQueryUseCase construye el caso de uso de lectura.
func NewSaleQueryUseCase(
	saleRepo repository.SaleRepository,
	customerRepo repository.CustomerRepository,
	userRepo repository.UserRepository,
) *SaleQueryUseCase {
	return &SaleQueryUseCase{saleRepo: saleRepo, customerRepo: customerRepo, userRepo: userRepo}
}

// GetByID devuelve una venta completa con líneas y producto resuelto.
func (uc *SaleQueryUseCase) GetByID(ctx context.Context, id string) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, &domain.NotFoundError{Resource: "sale", ID: id}
	}
	items, err := uc.saleRepo.GetItemsBySaleID(ctx, id)
	if err != nil {
		return nil, err
	}
	sale.Items = items
	return uc.toResponse(ctx, sale), nil
}

// List devuelve ventas paginadas, más recientes primero, con filtro opcional
// por rango de fechas de creación.
func (uc *SaleQueryUseCase) List(ctx context.Context, in dto.ListSalesRequest) (*dto.SaleListResponse, error) {
	in.DefaultPage()
	filter := repository.SaleFilter{Limit: in.Limit, Offset: in.Offset}

	if in.StartDate != "" {
		t, err := parseDate(in.StartDate)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		filter.StartDate = &t
	}
	if in.EndDate != "" {
		t, err := parseDate(in.EndDate)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		filter.EndDate = &t
	}

	list, total, err := uc.saleRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	out := &dto.SaleListResponse{
		Items: make([]dto.SaleResponse, 0, len(list)),
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: total},
	}
	for _, sale := range list {
		items, err := uc.saleRepo.GetItemsBySaleID(ctx, sale.ID)
		if err != nil {
			return nil, err
		}
		sale.Items = items
		out.Items = append(out.Items, *uc.toResponse(ctx, sale))
	}
	return out, nil
}

// toResponse resuelve cliente y usuario (mejor esfuerzo) y arma la respuesta.
func (uc *SaleQueryUseCase) toResponse(ctx context.Context, sale *entity.Sale) *dto.SaleResponse {
	resp := &dto.SaleResponse{
		ID:          sale.ID,
		TotalAmount: sale.TotalAmount,
		CreatedAt:   sale.CreatedAt,
		User:        dto.SaleUserResponse{ID: sale.UserID},
		Items:       make([]dto.SaleItemResponse, 0, len(sale.Items)),
	}
	if user, _ := uc.userRepo.GetByID(ctx, sale.UserID); user != nil {
		resp.User.Email = user.Email
	}
	if sale.CustomerID != nil {
		if customer, _ := uc.customerRepo.GetByID(ctx, *sale.CustomerID); customer != nil {
			resp.Customer = &dto.SaleCustomerResponse{
				ID:        customer.ID,
				FirstName: customer.FirstName,
				LastName:  customer.LastName,
				Email:     customer.Email,
			}
		}
	}
	for _, line := range sale.Items {
		resp.Items = append(resp.Items, dto.SaleItemResponse{
			ID:          line.ID,
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			ProductSKU:  line.ProductSKU,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			Subtotal:    line.Subtotal,
		})
	}
	return resp
}

// parseDate acepta RFC 3339 o fecha simple YYYY-MM-DD.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
