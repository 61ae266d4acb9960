package pdf

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/naimarket-api/internal/domain/entity"
)

func TestGenerateOrderReceipt(t *testing.T) {
	g := NewMarotoReceiptGenerator("kes")
	r := &entity.OrderReceipt{
		Order: entity.Order{
			ID: 42, CustomerID: 1, VendorID: 2, ServiceID: 3, Quantity: 3,
			Status: entity.OrderStatusConfirmed, CreatedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		},
		ServiceTitle: "Wedding cake",
		ServiceUnit:  "piece",
		UnitPrice:    decimal.RequireFromString("1500.50"),
		VendorName:   "Vera's Bakery",
		CustomerName: "Carl",
	}

	pdf, err := g.GenerateOrderReceipt(context.Background(), r)
	require.NoError(t, err)
	require.Greater(t, len(pdf), 4)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "0.50", formatMoney("0.50"))
	assert.Equal(t, "25,000.00", formatMoney("25000.00"))
	assert.Equal(t, "1,000,000", formatMoney("1000000"))
	assert.Equal(t, "-4,501.50", formatMoney("-4501.50"))
}

func TestMoneyConMoneda(t *testing.T) {
	g := NewMarotoReceiptGenerator("KES")
	assert.Equal(t, "KES 4,501.50", g.money(decimal.RequireFromString("4501.5")))
	assert.Equal(t, "NAI-00000042", OrderReference(42))
}
