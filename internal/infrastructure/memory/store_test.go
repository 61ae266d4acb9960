package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/naimarket-api/internal/domain"
	"github.com/jhoicas/naimarket-api/internal/domain/entity"
	"github.com/jhoicas/naimarket-api/internal/domain/repository"
	"github.com/jhoicas/naimarket-api/internal/infrastructure/memory"
)

func TestUsers_EmailUnicoSinDistinguirMayusculas(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, s.Users().Create(ctx, &entity.User{Email: "a@x.test", Role: entity.RoleAdmin}))

	err := s.Users().Create(ctx, &entity.User{Email: "A@X.test", Role: entity.RoleAdmin})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRunRegistration_RollbackDeshaceTodo(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()

	err := s.RunRegistration(ctx, func(users repository.UserRepository, vendors repository.VendorRepository, _ repository.CustomerRepository) error {
		u := &entity.User{Email: "v@x.test", Role: entity.RoleVendor}
		if err := users.Create(ctx, u); err != nil {
			return err
		}
		if err := vendors.Create(ctx, &entity.Vendor{UserID: &u.ID, Name: "V"}); err != nil {
			return err
		}
		return errors.New("boom")
	})
	require.Error(t, err)

	nu, nv, nc := s.Counts()
	assert.Zero(t, nu)
	assert.Zero(t, nv)
	assert.Zero(t, nc)
}

func TestOrders_ReferenciasInvalidas(t *testing.T) {
	s := memory.NewStore()
	err := s.Orders().Create(context.Background(), &entity.Order{CustomerID: 1, VendorID: 1, ServiceID: 1, Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidReference)
}

func TestVendorOrders_NombreDelClienteDesdeUsers(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	v := &entity.Vendor{Name: "V"}
	require.NoError(t, s.Vendors().Create(ctx, v))
	svc := &entity.Service{VendorID: v.ID, Title: "T"}
	require.NoError(t, s.Services().Create(ctx, svc))

	// cliente sin usuario: se usa el nombre del perfil
	c := &entity.Customer{Name: "Walk-in"}
	require.NoError(t, s.Customers().Create(ctx, c))
	require.NoError(t, s.Orders().Create(ctx, &entity.Order{CustomerID: c.ID, VendorID: v.ID, ServiceID: svc.ID, Quantity: 1}))

	list, err := s.Orders().ListByVendor(ctx, v.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Walk-in", list[0].CustomerName)
	assert.Equal(t, entity.OrderStatusPending, list[0].Status)
}

func TestFailNext_SoloUnaVez(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	s.FailNext(memory.OpUserList, errors.New("down"))

	_, err := s.Users().List(ctx)
	assert.Error(t, err)
	_, err = s.Users().List(ctx)
	assert.NoError(t, err)
}
