// Package memory implementa los puertos de persistencia en memoria.
// Se usa con STORE_DRIVER=memory (demos locales sin PostgreSQL) y como doble en tests;
// replica las restricciones del esquema SQL: email único, claves foráneas y
// ON DELETE RESTRICT de pedidos.
package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/naimarket-api/internal/domain"
	"github.com/jhoicas/naimarket-api/internal/domain/entity"
	"github.com/jhoicas/naimarket-api/internal/domain/repository"
)

// Operaciones en las que se puede inyectar un fallo con FailNext.
const (
	OpUserCreate     = "users.create"
	OpVendorCreate   = "vendors.create"
	OpCustomerCreate = "customers.create"
	OpServiceCreate  = "services.create"
	OpOrderCreate    = "orders.create"
	OpUserList       = "users.list"
)

var (
	_ repository.UserRepository     = (*UserRepo)(nil)
	_ repository.VendorRepository   = (*VendorRepo)(nil)
	_ repository.CustomerRepository = (*CustomerRepo)(nil)
	_ repository.ServiceRepository  = (*ServiceRepo)(nil)
	_ repository.OrderRepository    = (*OrderRepo)(nil)
)

// Store estado compartido de todas las tablas.
type Store struct {
	mu   sync.Mutex
	txMu sync.Mutex

	seq       map[string]int64
	users     map[int64]entity.User
	vendors   map[int64]entity.Vendor
	customers map[int64]entity.Customer
	services  map[int64]entity.Service
	orders    map[int64]entity.Order
	failures  map[string]error

	now func() time.Time
}

// NewStore construye un store vacío.
func NewStore() *Store {
	return &Store{
		seq:       make(map[string]int64),
		users:     make(map[int64]entity.User),
		vendors:   make(map[int64]entity.Vendor),
		customers: make(map[int64]entity.Customer),
		services:  make(map[int64]entity.Service),
		orders:    make(map[int64]entity.Order),
		failures:  make(map[string]error),
		now:       time.Now,
	}
}

// FailNext hace que la próxima ejecución de op devuelva err.
func (s *Store) FailNext(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[op] = err
}

// Users, Vendors, Customers, Services y Orders exponen los repositorios fuera de transacción.
func (s *Store) Users() *UserRepo         { return &UserRepo{s: s} }
func (s *Store) Vendors() *VendorRepo     { return &VendorRepo{s: s} }
func (s *Store) Customers() *CustomerRepo { return &CustomerRepo{s: s} }
func (s *Store) Services() *ServiceRepo   { return &ServiceRepo{s: s} }
func (s *Store) Orders() *OrderRepo       { return &OrderRepo{s: s} }

// Counts devuelve el número de filas de users, vendors y customers (útil en tests).
func (s *Store) Counts() (users, vendors, customers int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users), len(s.vendors), len(s.customers)
}

// txLog registra las filas creadas dentro de una transacción para deshacerlas.
type txLog struct {
	users     []int64
	vendors   []int64
	customers []int64
}

// RunRegistration ejecuta fn con repos atados a una transacción; si fn falla se deshacen las inserciones.
func (s *Store) RunRegistration(ctx context.Context, fn func(
	users repository.UserRepository,
	vendors repository.VendorRepository,
	customers repository.CustomerRepository,
) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	tx := &txLog{}
	if err := fn(&UserRepo{s: s, tx: tx}, &VendorRepo{s: s, tx: tx}, &CustomerRepo{s: s, tx: tx}); err != nil {
		s.rollback(tx)
		return err
	}
	return nil
}

func (s *Store) rollback(tx *txLog) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range tx.customers {
		delete(s.customers, id)
	}
	for _, id := range tx.vendors {
		delete(s.vendors, id)
	}
	for _, id := range tx.users {
		delete(s.users, id)
	}
}

func (s *Store) next(table string) int64 {
	s.seq[table]++
	return s.seq[table]
}

func (s *Store) takeFailure(op string) error {
	if err, ok := s.failures[op]; ok {
		delete(s.failures, op)
		return err
	}
	return nil
}

func (s *Store) orderReferences(match func(o entity.Order) bool) bool {
	for _, o := range s.orders {
		if match(o) {
			return true
		}
	}
	return false
}

// ── Users ─────────────────────────────────────────────────────────────────────

// UserRepo implementación en memoria de UserRepository.
type UserRepo struct {
	s  *Store
	tx *txLog
}

func (r *UserRepo) Create(_ context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.takeFailure(OpUserCreate); err != nil {
		return err
	}
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, user.Email) {
			return domain.ErrEmailAlreadyExists
		}
	}
	user.ID = r.s.next("users")
	user.CreatedAt = r.s.now()
	r.s.users[user.ID] = *user
	if r.tx != nil {
		r.tx.users = append(r.tx.users, user.ID)
	}
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id int64) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, email) {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) List(_ context.Context) ([]*entity.User, error) {
	return r.list(func(entity.User) bool { return true })
}

func (r *UserRepo) ListByRole(_ context.Context, role entity.Role) ([]*entity.User, error) {
	return r.list(func(u entity.User) bool { return u.Role == role })
}

func (r *UserRepo) list(keep func(entity.User) bool) ([]*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.takeFailure(OpUserList); err != nil {
		return nil, err
	}
	list := make([]*entity.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		if keep(u) {
			u := u
			list = append(list, &u)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (r *UserRepo) CountByRole(_ context.Context) (*entity.RoleCounts, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var c entity.RoleCounts
	for _, u := range r.s.users {
		switch u.Role {
		case entity.RoleAdmin:
			c.Admins++
		case entity.RoleVendor:
			c.Vendors++
		case entity.RoleCustomer:
			c.Customers++
		}
	}
	return &c, nil
}

func (r *UserRepo) UpdatePassword(_ context.Context, id int64, passwordHash string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return false, nil
	}
	u.PasswordHash = passwordHash
	r.s.users[id] = u
	return true, nil
}

// Delete elimina el usuario en cascada (perfiles y servicios de su perfil de vendedor).
// Falla con ErrConflict si algún pedido referencia lo que se borraría.
func (r *UserRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[id]; !ok {
		return nil
	}
	var vendorIDs, customerIDs, serviceIDs []int64
	for _, v := range r.s.vendors {
		if v.UserID != nil && *v.UserID == id {
			vendorIDs = append(vendorIDs, v.ID)
		}
	}
	for _, c := range r.s.customers {
		if c.UserID != nil && *c.UserID == id {
			customerIDs = append(customerIDs, c.ID)
		}
	}
	for _, svc := range r.s.services {
		if contains(vendorIDs, svc.VendorID) {
			serviceIDs = append(serviceIDs, svc.ID)
		}
	}
	if r.s.orderReferences(func(o entity.Order) bool {
		return contains(vendorIDs, o.VendorID) || contains(customerIDs, o.CustomerID) || contains(serviceIDs, o.ServiceID)
	}) {
		return domain.ErrConflict
	}
	for _, sid := range serviceIDs {
		delete(r.s.services, sid)
	}
	for _, vid := range vendorIDs {
		delete(r.s.vendors, vid)
	}
	for _, cid := range customerIDs {
		delete(r.s.customers, cid)
	}
	delete(r.s.users, id)
	return nil
}

// ── Vendors ───────────────────────────────────────────────────────────────────

// VendorRepo implementación en memoria de VendorRepository.
type VendorRepo struct {
	s  *Store
	tx *txLog
}

func (r *VendorRepo) Create(_ context.Context, vendor *entity.Vendor) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.takeFailure(OpVendorCreate); err != nil {
		return err
	}
	if vendor.UserID != nil {
		if _, ok := r.s.users[*vendor.UserID]; !ok {
			return domain.ErrInvalidReference
		}
		for _, v := range r.s.vendors {
			if v.UserID != nil && *v.UserID == *vendor.UserID {
				return domain.ErrConflict
			}
		}
	}
	vendor.ID = r.s.next("vendors")
	r.s.vendors[vendor.ID] = *vendor
	if r.tx != nil {
		r.tx.vendors = append(r.tx.vendors, vendor.ID)
	}
	return nil
}

func (r *VendorRepo) GetByID(_ context.Context, id int64) (*entity.Vendor, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v, ok := r.s.vendors[id]
	if !ok {
		return nil, nil
	}
	return &v, nil
}

func (r *VendorRepo) GetByUserID(_ context.Context, userID int64) (*entity.Vendor, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var found *entity.Vendor
	for _, v := range r.s.vendors {
		if v.UserID != nil && *v.UserID == userID && (found == nil || v.ID < found.ID) {
			v := v
			found = &v
		}
	}
	return found, nil
}

func (r *VendorRepo) List(_ context.Context) ([]*entity.Vendor, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	list := make([]*entity.Vendor, 0, len(r.s.vendors))
	for _, v := range r.s.vendors {
		v := v
		list = append(list, &v)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (r *VendorRepo) UpdateImage(_ context.Context, id int64, image string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v, ok := r.s.vendors[id]
	if !ok {
		return false, nil
	}
	v.Image = image
	r.s.vendors[id] = v
	return true, nil
}

// ── Customers ─────────────────────────────────────────────────────────────────

// CustomerRepo implementación en memoria de CustomerRepository.
type CustomerRepo struct {
	s  *Store
	tx *txLog
}

func (r *CustomerRepo) Create(_ context.Context, customer *entity.Customer) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.takeFailure(OpCustomerCreate); err != nil {
		return err
	}
	if customer.UserID != nil {
		if _, ok := r.s.users[*customer.UserID]; !ok {
			return domain.ErrInvalidReference
		}
	}
	customer.ID = r.s.next("customers")
	r.s.customers[customer.ID] = *customer
	if r.tx != nil {
		r.tx.customers = append(r.tx.customers, customer.ID)
	}
	return nil
}

func (r *CustomerRepo) GetByUserID(_ context.Context, userID int64) (*entity.Customer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var found *entity.Customer
	for _, c := range r.s.customers {
		if c.UserID != nil && *c.UserID == userID && (found == nil || c.ID < found.ID) {
			c := c
			found = &c
		}
	}
	return found, nil
}

// ── Services ──────────────────────────────────────────────────────────────────

// ServiceRepo implementación en memoria de ServiceRepository.
type ServiceRepo struct {
	s *Store
}

func (r *ServiceRepo) Create(_ context.Context, service *entity.Service) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.takeFailure(OpServiceCreate); err != nil {
		return err
	}
	if _, ok := r.s.vendors[service.VendorID]; !ok {
		return domain.ErrInvalidReference
	}
	service.ID = r.s.next("services")
	service.CreatedAt = r.s.now()
	r.s.services[service.ID] = *service
	return nil
}

func (r *ServiceRepo) List(_ context.Context, vendorID *int64) ([]*entity.Service, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	list := make([]*entity.Service, 0, len(r.s.services))
	for _, svc := range r.s.services {
		if vendorID != nil && svc.VendorID != *vendorID {
			continue
		}
		svc := svc
		list = append(list, &svc)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (r *ServiceRepo) Count(_ context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.s.services)), nil
}

func (r *ServiceRepo) Delete(_ context.Context, id int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.services[id]; !ok {
		return false, nil
	}
	if r.s.orderReferences(func(o entity.Order) bool { return o.ServiceID == id }) {
		return false, domain.ErrConflict
	}
	delete(r.s.services, id)
	return true, nil
}

// ── Orders ────────────────────────────────────────────────────────────────────

// OrderRepo implementación en memoria de OrderRepository.
type OrderRepo struct {
	s *Store
}

func (r *OrderRepo) Create(_ context.Context, order *entity.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.takeFailure(OpOrderCreate); err != nil {
		return err
	}
	_, okC := r.s.customers[order.CustomerID]
	_, okV := r.s.vendors[order.VendorID]
	_, okS := r.s.services[order.ServiceID]
	if !okC || !okV || !okS {
		return domain.ErrInvalidReference
	}
	if order.Status == "" {
		order.Status = entity.OrderStatusPending
	}
	order.ID = r.s.next("orders")
	order.CreatedAt = r.s.now()
	r.s.orders[order.ID] = *order
	return nil
}

func (r *OrderRepo) ListByCustomer(_ context.Context, customerID int64) ([]*entity.CustomerOrder, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.CustomerOrder
	for _, o := range r.sortedOrders() {
		if o.CustomerID != customerID {
			continue
		}
		svc, okS := r.s.services[o.ServiceID]
		v, okV := r.s.vendors[o.VendorID]
		if !okS || !okV {
			continue // INNER JOIN
		}
		list = append(list, &entity.CustomerOrder{
			Order:        o,
			ServiceTitle: svc.Title,
			ServiceImage: svc.Image,
			VendorName:   v.Name,
		})
	}
	return list, nil
}

func (r *OrderRepo) ListByVendor(_ context.Context, vendorID int64) ([]*entity.VendorOrder, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.VendorOrder
	for _, o := range r.sortedOrders() {
		if o.VendorID != vendorID {
			continue
		}
		svc, okS := r.s.services[o.ServiceID]
		c, okC := r.s.customers[o.CustomerID]
		if !okS || !okC {
			continue
		}
		list = append(list, &entity.VendorOrder{
			Order:        o,
			ServiceTitle: svc.Title,
			CustomerName: r.customerName(c),
		})
	}
	return list, nil
}

func (r *OrderRepo) UpdateStatus(_ context.Context, id int64, status entity.OrderStatus) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.orders[id]
	if !ok {
		return false, nil
	}
	o.Status = status
	r.s.orders[id] = o
	return true, nil
}

func (r *OrderRepo) GetReceipt(_ context.Context, id int64) (*entity.OrderReceipt, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.orders[id]
	if !ok {
		return nil, nil
	}
	svc, okS := r.s.services[o.ServiceID]
	v, okV := r.s.vendors[o.VendorID]
	c, okC := r.s.customers[o.CustomerID]
	if !okS || !okV || !okC {
		return nil, errors.New("memory: pedido con referencias huérfanas")
	}
	return &entity.OrderReceipt{
		Order:        o,
		ServiceTitle: svc.Title,
		ServiceUnit:  svc.Unit,
		UnitPrice:    svc.Price,
		VendorName:   v.Name,
		CustomerName: r.customerName(c),
	}, nil
}

// sortedOrders ordena por created_at DESC, id DESC. Se llama con el lock tomado.
func (r *OrderRepo) sortedOrders() []entity.Order {
	list := make([]entity.Order, 0, len(r.s.orders))
	for _, o := range r.s.orders {
		list = append(list, o)
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return list[i].ID > list[j].ID
	})
	return list
}

func (r *OrderRepo) customerName(c entity.Customer) string {
	if c.UserID != nil {
		if u, ok := r.s.users[*c.UserID]; ok {
			return u.Name
		}
	}
	return c.Name
}

func contains(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
