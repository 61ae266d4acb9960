package ports

import (
	"context"

	"github.com/jhoicas/naimarket-api/internal/domain/entity"
)

// ReceiptGenerator genera la representación PDF de un pedido.
type ReceiptGenerator interface {
	GenerateOrderReceipt(ctx context.Context, receipt *entity.OrderReceipt) ([]byte, error)
}
