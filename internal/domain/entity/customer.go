package entity

// Customer perfil de cliente ligado a un User con rol customer.
type Customer struct {
	ID     int64
	UserID *int64
	Name   string
}
