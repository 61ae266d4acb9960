package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/naimarket-api/internal/application/auth"
	"github.com/jhoicas/naimarket-api/internal/application/payment"
	"github.com/jhoicas/naimarket-api/internal/application/ports"
	"github.com/jhoicas/naimarket-api/internal/application/usecase"
	"github.com/jhoicas/naimarket-api/internal/domain/entity"
	"github.com/jhoicas/naimarket-api/internal/infrastructure/memory"
	"github.com/jhoicas/naimarket-api/internal/infrastructure/storage"
	apphttp "github.com/jhoicas/naimarket-api/internal/interfaces/http"
	"github.com/jhoicas/naimarket-api/pkg/logger"
	"github.com/jhoicas/naimarket-api/pkg/password"
)

const testIssuerKey = "issuer-key-for-tests"

type fakeReceipts struct{}

func (fakeReceipts) GenerateOrderReceipt(_ context.Context, r *entity.OrderReceipt) ([]byte, error) {
	return []byte("%PDF-1.4 " + r.ServiceTitle), nil
}

type fakeGateway struct {
	initResp json.RawMessage
	verify   *ports.PaymentVerification
	err      error
}

func (g *fakeGateway) InitializeTransaction(context.Context, string, int64) (json.RawMessage, error) {
	return g.initResp, g.err
}

func (g *fakeGateway) VerifyTransaction(context.Context, string) (*ports.PaymentVerification, error) {
	return g.verify, g.err
}

type memIdempotency struct {
	mu   sync.Mutex
	data map[string]ports.CachedResponse
}

func (m *memIdempotency) Get(_ context.Context, key string) (*ports.CachedResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.data[key]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (m *memIdempotency) Set(_ context.Context, key string, resp *ports.CachedResponse, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = *resp
	return nil
}

type testServer struct {
	app     *fiber.App
	store   *memory.Store
	images  *storage.LocalStore
	gateway *fakeGateway
	idem    *memIdempotency
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	store := memory.NewStore()
	images, err := storage.NewLocalStore(t.TempDir(), 2<<20)
	require.NoError(t, err)
	hasher := password.NewHasher(bcrypt.MinCost)
	gw := &fakeGateway{}
	idem := &memIdempotency{data: make(map[string]ports.CachedResponse)}

	app := apphttp.NewApp(apphttp.AppConfig{Name: "naimarket-test", UploadMaxBytes: 2 << 20}, logger.Nop())
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:    auth.NewAuthUseCase(store, store.Users(), store.Vendors(), store.Customers(), hasher).WithImages(images),
		UserUC:    usecase.NewUserUseCase(store.Users(), hasher),
		VendorUC:  usecase.NewVendorUseCase(store.Vendors(), images),
		CatalogUC: usecase.NewCatalogUseCase(store.Services(), images),
		OrderUC:   usecase.NewOrderUseCase(store.Orders(), fakeReceipts{}),
		FileAccessUC: usecase.NewFileAccessUseCase(images, usecase.FileAccessConfig{
			IssuerKey:   testIssuerKey,
			TokenSecret: "token-secret-for-tests",
			Issuer:      "naimarket-test",
			TTL:         time.Minute,
		}),
		PaymentUC:      payment.NewUseCase(gw),
		Idempotency:    idem,
		IdempotencyTTL: time.Hour,
		UploadDir:      images.Dir(),
	})
	return &testServer{app: app, store: store, images: images, gateway: gw, idem: idem}
}

func (s *testServer) do(t *testing.T, req *http.Request) (*http.Response, []byte) {
	t.Helper()
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

func (s *testServer) doJSON(t *testing.T, method, path string, payload any) (*http.Response, []byte) {
	t.Helper()
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	return s.do(t, req)
}

// registerProfile registra un usuario y devuelve el id de su perfil (vendorId o customerId).
func (s *testServer) registerProfile(t *testing.T, name, email, role string) int64 {
	t.Helper()
	resp, _ := s.doJSON(t, http.MethodPost, "/api/register", map[string]string{
		"name": name, "email": email, "password": "secret-pw", "role": role,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := s.doJSON(t, http.MethodPost, "/api/login", map[string]string{"email": email, "password": "secret-pw"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out struct {
		User map[string]any `json:"user"`
	}
	require.NoError(t, json.Unmarshal(body, &out))
	key := "customerId"
	if role == "vendor" {
		key = "vendorId"
	}
	id, ok := out.User[key].(float64)
	require.True(t, ok, "login sin %s: %s", key, body)
	return int64(id)
}

type upload struct {
	filename    string
	contentType string
	content     []byte
}

func multipartRequest(t *testing.T, method, path string, fields map[string]string, file *upload) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if file != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="image"; filename="`+file.filename+`"`)
		h.Set("Content-Type", file.contentType)
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(file.content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func pngUpload(t *testing.T) *upload {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2))))
	return &upload{filename: "logo.png", contentType: "image/png", content: buf.Bytes()}
}

// createService publica un servicio con imagen y devuelve su id y el nombre de la imagen.
func (s *testServer) createService(t *testing.T, vendorID int64, title string) (int64, string) {
	t.Helper()
	req := multipartRequest(t, http.MethodPost, "/api/services", map[string]string{
		"vendor_id": itoa(vendorID), "title": title, "price": "25.50", "category": "food", "unit": "box",
	}, pngUpload(t))
	resp, body := s.do(t, req)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var out struct {
		Service struct {
			ID    int64  `json:"id"`
			Image string `json:"image"`
		} `json:"service"`
	}
	require.NoError(t, json.Unmarshal(body, &out))
	return out.Service.ID, out.Service.Image
}

func itoa(n int64) string { return strconv.FormatInt(n, 10) }
