package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/pos-api/internal/application/dto"
	"github.com/tu-usuario/pos-api/internal/domain"
	"github.com/tu-usuario/pos-api/internal/domain/entity"
	"github.com/tu-usuario/pos-api/internal/domain/repository"
)

// CustomerUseCase casos de uso de clientes. Las estadísticas (órdenes, gasto,
// última visita) se derivan de las ventas persistidas en cada lectura: el costo
// extra de lectura elimina la clase de bugs de contadores desactualizados.
type CustomerUseCase struct {
	repo     repository.CustomerRepository
	saleRepo repository.SaleRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository, saleRepo repository.SaleRepository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo, saleRepo: saleRepo}
}

// Create crea un cliente nuevo.
func (uc *CustomerUseCase) Create(ctx context.Context, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if in.FirstName == "" || in.LastName == "" || in.Email == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	customer := &entity.Customer{
		ID:            uuid.New().String(),
		FirstName:     in.FirstName,
		LastName:      in.LastName,
		Email:         in.Email,
		Phone:         in.Phone,
		InternalNotes: in.InternalNotes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(ctx, customer); err != nil {
		return nil, err
	}
	return uc.withStats(ctx, customer)
}

// GetByID obtiene un cliente con estadísticas y sus ventas recientes.
func (uc *CustomerUseCase) GetByID(ctx context.Context, id string) (*dto.CustomerDetailResponse, error) {
	customer, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, &domain.NotFoundError{Resource: "customer", ID: id}
	}
	base, err := uc.withStats(ctx, customer)
	if err != nil {
		return nil, err
	}
	recent, err := uc.saleRepo.ListByCustomer(ctx, id, 10)
	if err != nil {
		return nil, err
	}
	detail := &dto.CustomerDetailResponse{
		CustomerResponse: *base,
		RecentSales:      make([]dto.SaleSummaryResponse, 0, len(recent)),
	}
	for _, sale := range recent {
		detail.RecentSales = append(detail.RecentSales, dto.SaleSummaryResponse{
			ID:          sale.ID,
			TotalAmount: sale.TotalAmount,
			CreatedAt:   sale.CreatedAt,
			ItemCount:   sale.ItemCount,
		})
	}
	return detail, nil
}

// List devuelve una página de clientes, cada uno con estadísticas derivadas
// calculadas solo para los clientes de la página actual.
func (uc *CustomerUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.CustomerListResponse, error) {
	page.DefaultPage()
	list, total, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := &dto.CustomerListResponse{
		Items: make([]dto.CustomerResponse, 0, len(list)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}
	for _, customer := range list {
		item, err := uc.withStats(ctx, customer)
		if err != nil {
			return nil, err
		}
		out.Items = append(out.Items, *item)
	}
	return out, nil
}

// Update actualiza un cliente.
func (uc *CustomerUseCase) Update(ctx context.Context, id string, in dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	customer, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, &domain.NotFoundError{Resource: "customer", ID: id}
	}
	if in.FirstName != nil {
		customer.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		customer.LastName = *in.LastName
	}
	if in.Email != nil {
		if *in.Email == "" {
			return nil, domain.ErrInvalidInput
		}
		customer.Email = *in.Email
	}
	if in.Phone != nil {
		customer.Phone = *in.Phone
	}
	if in.InternalNotes != nil {
		customer.InternalNotes = *in.InternalNotes
	}
	customer.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, customer); err != nil {
		return nil, err
	}
	return uc.withStats(ctx, customer)
}

// Delete elimina un cliente. Sus ventas quedan como ventas de mostrador.
func (uc *CustomerUseCase) Delete(ctx context.Context, id string) error {
	customer, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if customer == nil {
		return &domain.NotFoundError{Resource: "customer", ID: id}
	}
	return uc.repo.Delete(ctx, id)
}

// withStats arma la respuesta recalculando las estadísticas desde las ventas.
func (uc *CustomerUseCase) withStats(ctx context.Context, customer *entity.Customer) (*dto.CustomerResponse, error) {
	stats, err := uc.saleRepo.StatsByCustomer(ctx, customer.ID)
	if err != nil {
		return nil, err
	}
	return &dto.CustomerResponse{
		ID:            customer.ID,
		FirstName:     customer.FirstName,
		LastName:      customer.LastName,
		Email:         customer.Email,
		Phone:         customer.Phone,
		InternalNotes: customer.InternalNotes,
		TotalOrders:   stats.TotalOrders,
		TotalSpent:    stats.TotalSpent,
		LastVisit:     stats.LastVisit,
		CreatedAt:     customer.CreatedAt,
		UpdatedAt:     customer.UpdatedAt,
	}, nil
}
