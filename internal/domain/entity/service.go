package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Service publicación vendible de un Vendor.
type Service struct {
	ID          int64
	VendorID    int64
	Title       string
	Description string
	Price       decimal.Decimal
	Unit        string
	Image       string
	Category    string
	CreatedAt   time.Time
}
