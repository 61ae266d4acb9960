package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateServiceRequest formulario multipart de POST /api/services.
// Los numéricos llegan como texto y se validan en el caso de uso.
type CreateServiceRequest struct {
	VendorID    string `form:"vendor_id" json:"vendor_id"`
	Title       string `form:"title" json:"title"`
	Description string `form:"description" json:"description"`
	Price       string `form:"price" json:"price"`
	Unit        string `form:"unit" json:"unit"`
	Category    string `form:"category" json:"category"`
}

// ServiceResponse salida de un servicio.
type ServiceResponse struct {
	ID          int64           `json:"id"`
	VendorID    int64           `json:"vendor_id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Unit        string          `json:"unit"`
	Image       string          `json:"image"`
	Category    string          `json:"category"`
	CreatedAt   time.Time       `json:"created_at"`
}

// CreateServiceResponse salida de POST /api/services.
type CreateServiceResponse struct {
	Message string          `json:"message"`
	Service ServiceResponse `json:"service"`
}

// ServiceCountResponse salida de GET /api/services/count.
type ServiceCountResponse struct {
	TotalServices int64 `json:"totalServices"`
}
