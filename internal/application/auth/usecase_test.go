package auth_test

import (
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/naimarket-api/internal/application/auth"
	"github.com/jhoicas/naimarket-api/internal/application/dto"
	"github.com/jhoicas/naimarket-api/internal/domain"
	"github.com/jhoicas/naimarket-api/internal/domain/entity"
	"github.com/jhoicas/naimarket-api/internal/infrastructure/memory"
	"github.com/jhoicas/naimarket-api/pkg/password"
)

func newUseCase(t *testing.T) (*auth.AuthUseCase, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	uc := auth.NewAuthUseCase(store, store.Users(), store.Vendors(), store.Customers(), password.NewHasher(bcrypt.MinCost))
	return uc, store
}

func register(t *testing.T, uc *auth.AuthUseCase, email, role string) *dto.RegisterResponse {
	t.Helper()
	out, err := uc.Register(context.Background(), dto.RegisterRequest{
		Name: "Ana", Email: email, Password: "correct-horse", Role: role,
	})
	require.NoError(t, err)
	return out
}

func TestRegister_VendorCreaUsuarioYPerfil(t *testing.T) {
	uc, store := newUseCase(t)

	out := register(t, uc, "ana@shop.test", "vendor")
	assert.Equal(t, "vendor registered successfully", out.Message)
	assert.Equal(t, entity.RoleVendor, out.User.Role)

	users, vendors, customers := store.Counts()
	assert.Equal(t, 1, users)
	assert.Equal(t, 1, vendors)
	assert.Equal(t, 0, customers)

	v, err := store.Vendors().GetByUserID(context.Background(), out.User.ID)
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Equal(t, out.User.ID, *v.UserID)
	assert.Equal(t, "Ana", v.Name)
}

func TestRegister_CustomerYAdmin(t *testing.T) {
	uc, store := newUseCase(t)

	cust := register(t, uc, "c@shop.test", "customer")
	register(t, uc, "root@shop.test", "admin")

	users, vendors, customers := store.Counts()
	assert.Equal(t, 2, users)
	assert.Equal(t, 0, vendors)
	assert.Equal(t, 1, customers)

	c, err := store.Customers().GetByUserID(context.Background(), cust.User.ID)
	require.NoError(t, err)
	require.NotNil(t, c)
}

func TestRegister_Validaciones(t *testing.T) {
	uc, store := newUseCase(t)
	ctx := context.Background()

	_, err := uc.Register(ctx, dto.RegisterRequest{Name: "A", Email: "a@x.test", Password: "", Role: "admin"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Register(ctx, dto.RegisterRequest{Name: "A", Email: "a@x.test", Password: "p", Role: "superuser"})
	assert.ErrorIs(t, err, domain.ErrInvalidRole)

	users, _, _ := store.Counts()
	assert.Zero(t, users)
}

func TestRegister_EmailDuplicado(t *testing.T) {
	uc, _ := newUseCase(t)
	register(t, uc, "dup@shop.test", "customer")

	_, err := uc.Register(context.Background(), dto.RegisterRequest{
		Name: "Otro", Email: " DUP@shop.test ", Password: "x", Role: "admin",
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegister_FalloDePerfilNoDejaUsuarioHuerfano(t *testing.T) {
	uc, store := newUseCase(t)
	store.FailNext(memory.OpVendorCreate, errors.New("disk full"))

	_, err := uc.Register(context.Background(), dto.RegisterRequest{
		Name: "Ana", Email: "ana@shop.test", Password: "p", Role: "vendor",
	})
	require.ErrorIs(t, err, domain.ErrProfileCreation)

	users, vendors, _ := store.Counts()
	assert.Zero(t, users, "el usuario debe revertirse")
	assert.Zero(t, vendors)

	u, err := store.Users().GetByEmail(context.Background(), "ana@shop.test")
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestLogin_VendorDevuelveVendorID(t *testing.T) {
	uc, store := newUseCase(t)
	reg := register(t, uc, "ana@shop.test", "vendor")
	v, err := store.Vendors().GetByUserID(context.Background(), reg.User.ID)
	require.NoError(t, err)

	out, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ana@shop.test", Password: "correct-horse"})
	require.NoError(t, err)
	assert.Equal(t, "Login successful", out.Message)
	require.NotNil(t, out.User.VendorID)
	assert.Equal(t, v.ID, *out.User.VendorID)
	assert.Nil(t, out.User.CustomerID)
}

func TestLogin_CustomerDevuelveCustomerID(t *testing.T) {
	uc, _ := newUseCase(t)
	register(t, uc, "c@shop.test", "customer")

	out, err := uc.Login(context.Background(), dto.LoginRequest{Email: "c@shop.test", Password: "correct-horse"})
	require.NoError(t, err)
	require.NotNil(t, out.User.CustomerID)

	raw, err := json.Marshal(out.User)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"customerId":`)
	assert.NotContains(t, string(raw), "vendorId")
}

func TestLogin_AdminSinPerfil(t *testing.T) {
	uc, _ := newUseCase(t)
	register(t, uc, "root@shop.test", "admin")

	out, err := uc.Login(context.Background(), dto.LoginRequest{Email: "root@shop.test", Password: "correct-horse"})
	require.NoError(t, err)

	raw, err := json.Marshal(out.User)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "vendorId")
	assert.NotContains(t, string(raw), "customerId")
}

func TestLogin_PasswordIncorrectoSiempre401(t *testing.T) {
	uc, _ := newUseCase(t)
	register(t, uc, "ana@shop.test", "vendor")

	for i := 0; i < 5; i++ {
		_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ana@shop.test", Password: "wrong"})
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	}
	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "nadie@shop.test", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_VendorSinPerfilDevuelveNull(t *testing.T) {
	uc, store := newUseCase(t)
	hash, err := password.NewHasher(bcrypt.MinCost).Hash("pw")
	require.NoError(t, err)
	require.NoError(t, store.Users().Create(context.Background(), &entity.User{
		Name: "Legacy", Email: "legacy@shop.test", PasswordHash: hash, Role: entity.RoleVendor,
	}))

	out, err := uc.Login(context.Background(), dto.LoginRequest{Email: "legacy@shop.test", Password: "pw"})
	require.NoError(t, err)

	raw, err := json.Marshal(out.User)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"vendorId":null`)
}

type recordingImages struct {
	saved   []string
	removed []string
}

func (r *recordingImages) Save(*multipart.FileHeader) (string, error) {
	r.saved = append(r.saved, "avatar.png")
	return "avatar.png", nil
}

func (r *recordingImages) Remove(name string) error {
	r.removed = append(r.removed, name)
	return nil
}

func (r *recordingImages) Resolve(name string) (string, error) { return name, nil }

func TestRegisterWithImage_GuardaImagenEnUsuarioYVendor(t *testing.T) {
	uc, store := newUseCase(t)
	images := &recordingImages{}
	uc.WithImages(images)

	out, err := uc.RegisterWithImage(context.Background(), dto.RegisterRequest{
		Name: "Ana", Email: "ana@shop.test", Password: "p", Role: "vendor",
	}, &multipart.FileHeader{Filename: "a.png"})
	require.NoError(t, err)
	assert.Equal(t, "avatar.png", out.User.Image)

	v, err := store.Vendors().GetByUserID(context.Background(), out.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "avatar.png", v.Image)
}

func TestRegisterWithImage_ValidaAntesDeGuardar(t *testing.T) {
	uc, _ := newUseCase(t)
	images := &recordingImages{}
	uc.WithImages(images)

	_, err := uc.RegisterWithImage(context.Background(), dto.RegisterRequest{
		Name: "Ana", Email: "ana@shop.test", Password: "p", Role: "root",
	}, &multipart.FileHeader{Filename: "a.png"})
	assert.ErrorIs(t, err, domain.ErrInvalidRole)
	assert.Empty(t, images.saved)
}

func TestRegisterWithImage_EmailDuplicadoBorraImagen(t *testing.T) {
	uc, _ := newUseCase(t)
	images := &recordingImages{}
	uc.WithImages(images)
	register(t, uc, "ana@shop.test", "customer")

	_, err := uc.RegisterWithImage(context.Background(), dto.RegisterRequest{
		Name: "Ana", Email: "ana@shop.test", Password: "p", Role: "customer",
	}, &multipart.FileHeader{Filename: "a.png"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
	assert.Equal(t, []string{"avatar.png"}, images.removed)
}
