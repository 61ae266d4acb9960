package dto

// VendorResponse salida de un vendedor.
type VendorResponse struct {
	ID          int64  `json:"id"`
	UserID      *int64 `json:"user_id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Category    string `json:"category"`
}

// UpdateLogoResponse salida de POST /api/vendors/update-logo.
type UpdateLogoResponse struct {
	Message string `json:"message"`
	Image   string `json:"image"`
}
