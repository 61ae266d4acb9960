package usecase_test

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jhoicas/naimarket-api/internal/domain"
	"github.com/jhoicas/naimarket-api/internal/domain/entity"
	"github.com/jhoicas/naimarket-api/internal/infrastructure/memory"
)

// fakeImages ImageStore en memoria; rechaza archivos .pdf como lo haría el store real.
type fakeImages struct {
	mu      sync.Mutex
	n       int
	files   map[string]bool
	removed []string
}

func newFakeImages(existing ...string) *fakeImages {
	f := &fakeImages{files: make(map[string]bool)}
	for _, name := range existing {
		f.files[name] = true
	}
	return f
}

func (f *fakeImages) Save(file *multipart.FileHeader) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if strings.HasSuffix(file.Filename, ".pdf") {
		return "", domain.ErrUnsupportedMedia
	}
	f.n++
	name := fmt.Sprintf("img-%d.png", f.n)
	f.files[name] = true
	return name, nil
}

func (f *fakeImages) Remove(name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.files, name)
	f.removed = append(f.removed, name)
	return nil
}

func (f *fakeImages) Resolve(name string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return "", domain.ErrInvalidInput
	}
	if !f.files[name] {
		return "", domain.ErrNotFound
	}
	return "/content/" + name, nil
}

func (f *fakeImages) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.files)
}

// fixture vendor + customer + servicio listos para pedidos.
type fixture struct {
	store      *memory.Store
	vendorID   int64
	customerID int64
	serviceID  int64
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()

	vu := &entity.User{Name: "Vera Vendor", Email: "vera@shop.test", PasswordHash: "x", Role: entity.RoleVendor}
	require.NoError(t, store.Users().Create(ctx, vu))
	v := &entity.Vendor{UserID: &vu.ID, Name: "Vera's Bakery", Category: "food"}
	require.NoError(t, store.Vendors().Create(ctx, v))

	cu := &entity.User{Name: "Carl Customer", Email: "carl@shop.test", PasswordHash: "x", Role: entity.RoleCustomer}
	require.NoError(t, store.Users().Create(ctx, cu))
	c := &entity.Customer{UserID: &cu.ID, Name: "Carl"}
	require.NoError(t, store.Customers().Create(ctx, c))

	svc := &entity.Service{VendorID: v.ID, Title: "Cake", Unit: "piece", Category: "food", Image: "cake.png"}
	require.NoError(t, store.Services().Create(ctx, svc))

	return &fixture{store: store, vendorID: v.ID, customerID: c.ID, serviceID: svc.ID}
}

func fileHeader(name string) *multipart.FileHeader {
	return &multipart.FileHeader{Filename: name, Size: 10}
}
