package usecase

import (
	"context"
	"math"

	"github.com/jhoicas/naimarket-api/internal/application/dto"
	"github.com/jhoicas/naimarket-api/internal/application/ports"
	"github.com/jhoicas/naimarket-api/internal/domain"
	"github.com/jhoicas/naimarket-api/internal/domain/entity"
	"github.com/jhoicas/naimarket-api/internal/domain/repository"
)

// OrderUseCase pedidos: alta, listados enriquecidos, cambio de estado y comprobante.
type OrderUseCase struct {
	repo     repository.OrderRepository
	receipts ports.ReceiptGenerator
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(repo repository.OrderRepository, receipts ports.ReceiptGenerator) *OrderUseCase {
	return &OrderUseCase{repo: repo, receipts: receipts}
}

// Place crea un pedido con estado pending.
func (uc *OrderUseCase) Place(ctx context.Context, in dto.CreateOrderRequest) (*dto.CreateOrderResponse, error) {
	if in.CustomerID <= 0 || in.VendorID <= 0 || in.ServiceID <= 0 || in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	// orders.quantity es INTEGER
	if in.Quantity > math.MaxInt32 {
		return nil, domain.ErrInvalidInput
	}
	order := &entity.Order{
		CustomerID: in.CustomerID,
		VendorID:   in.VendorID,
		ServiceID:  in.ServiceID,
		Quantity:   in.Quantity,
		Status:     entity.OrderStatusPending,
	}
	if err := uc.repo.Create(ctx, order); err != nil {
		return nil, err
	}
	return &dto.CreateOrderResponse{Message: "Order placed successfully", OrderID: order.ID}, nil
}

// ListForCustomer pedidos del cliente, más recientes primero.
func (uc *OrderUseCase) ListForCustomer(ctx context.Context, customerID int64) ([]dto.CustomerOrderResponse, error) {
	if customerID <= 0 {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.repo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CustomerOrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, dto.CustomerOrderResponse{
			OrderResponse: toOrderResponse(o.Order),
			ServiceTitle:  o.ServiceTitle,
			ServiceImage:  o.ServiceImage,
			VendorName:    o.VendorName,
		})
	}
	return out, nil
}

// ListForVendor pedidos recibidos por el vendedor, más recientes primero.
func (uc *OrderUseCase) ListForVendor(ctx context.Context, vendorID int64) ([]dto.VendorOrderResponse, error) {
	if vendorID <= 0 {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.repo.ListByVendor(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.VendorOrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, dto.VendorOrderResponse{
			OrderResponse: toOrderResponse(o.Order),
			ServiceTitle:  o.ServiceTitle,
			CustomerName:  o.CustomerName,
		})
	}
	return out, nil
}

// UpdateStatus sobrescribe el estado. Solo se aceptan estados conocidos.
func (uc *OrderUseCase) UpdateStatus(ctx context.Context, id int64, in dto.UpdateOrderStatusRequest) error {
	if id <= 0 {
		return domain.ErrInvalidInput
	}
	status, err := entity.ParseOrderStatus(in.Status)
	if err != nil {
		return err
	}
	found, err := uc.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return err
	}
	if !found {
		return domain.ErrOrderNotFound
	}
	return nil
}

// Receipt genera el comprobante PDF del pedido.
func (uc *OrderUseCase) Receipt(ctx context.Context, id int64) ([]byte, error) {
	if id <= 0 {
		return nil, domain.ErrInvalidInput
	}
	r, err := uc.repo.GetReceipt(ctx, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, domain.ErrOrderNotFound
	}
	return uc.receipts.GenerateOrderReceipt(ctx, r)
}

func toOrderResponse(o entity.Order) dto.OrderResponse {
	return dto.OrderResponse{
		ID:         o.ID,
		CustomerID: o.CustomerID,
		VendorID:   o.VendorID,
		ServiceID:  o.ServiceID,
		Quantity:   o.Quantity,
		Status:     o.Status,
		CreatedAt:  o.CreatedAt,
	}
}
