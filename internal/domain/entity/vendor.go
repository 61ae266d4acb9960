package entity

// Vendor perfil de vendedor; UserID es nil para vendedores sin cuenta asociada.
type Vendor struct {
	ID          int64
	UserID      *int64
	Name        string
	Description string
	Image       string
	Category    string
}
