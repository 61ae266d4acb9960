package http_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/naimarket-api/internal/infrastructure/memory"
)

func TestRoot_Texto(t *testing.T) {
	srv := newTestServer(t)
	resp, body := srv.do(t, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "NaiMarket API is running!", string(body))

	resp, body = srv.do(t, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok","service":"naimarket-test"}`, string(body))
}

func TestRegisterYLogin_Vendor(t *testing.T) {
	srv := newTestServer(t)
	vendorID := srv.registerProfile(t, "Vera", "vera@shop.test", "vendor")
	assert.Positive(t, vendorID)

	resp, body := srv.doJSON(t, http.MethodGet, "/api/vendors/"+itoa(vendorID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"name":"Vera"`)
}

func TestRegister_Errores(t *testing.T) {
	srv := newTestServer(t)
	srv.registerProfile(t, "Carl", "carl@shop.test", "customer")

	resp, body := srv.doJSON(t, http.MethodPost, "/api/register", map[string]string{
		"name": "Otro", "email": "CARL@shop.test", "password": "x", "role": "admin",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Contains(t, string(body), "EMAIL_EXISTS")

	resp, _ = srv.doJSON(t, http.MethodPost, "/api/register", map[string]string{
		"name": "Root", "email": "root@shop.test", "password": "x", "role": "superuser",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = srv.doJSON(t, http.MethodPost, "/api/register", map[string]string{"name": "Sin email"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRegister_FalloDePerfilRevierte(t *testing.T) {
	srv := newTestServer(t)
	srv.store.FailNext(memory.OpVendorCreate, errors.New("disk full"))

	resp, body := srv.doJSON(t, http.MethodPost, "/api/register", map[string]string{
		"name": "Vera", "email": "vera@shop.test", "password": "pw", "role": "vendor",
	})
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Contains(t, string(body), "failed to create vendor profile, registration rolled back")

	users, vendors, _ := srv.store.Counts()
	assert.Zero(t, users)
	assert.Zero(t, vendors)
}

func TestLogin_Errores(t *testing.T) {
	srv := newTestServer(t)
	srv.registerProfile(t, "Carl", "carl@shop.test", "customer")

	resp, _ := srv.doJSON(t, http.MethodPost, "/api/login", map[string]string{"email": "carl@shop.test", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = srv.doJSON(t, http.MethodPost, "/api/login", map[string]string{"email": "carl@shop.test"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestLogout(t *testing.T) {
	srv := newTestServer(t)
	resp, body := srv.doJSON(t, http.MethodPost, "/api/logout", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"message":"User logged out successfully"}`, string(body))

	resp, body = srv.doJSON(t, http.MethodPost, "/api/vendors/logout", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"message":"Vendor logged out successfully"}`, string(body))
}

func TestUsers_AdministracionCompleta(t *testing.T) {
	srv := newTestServer(t)
	srv.registerProfile(t, "Carl", "carl@shop.test", "customer")
	srv.registerProfile(t, "Vera", "vera@shop.test", "vendor")
	resp, _ := srv.doJSON(t, http.MethodPost, "/api/register", map[string]string{
		"name": "Root", "email": "root@shop.test", "password": "pw", "role": "admin",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := srv.doJSON(t, http.MethodGet, "/api/users/counts", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"admins":1,"vendors":1,"customers":1}`, string(body))

	resp, body = srv.doJSON(t, http.MethodGet, "/api/users/admins", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var admins []map[string]any
	require.NoError(t, json.Unmarshal(body, &admins))
	require.Len(t, admins, 1)
	assert.NotContains(t, string(body), "password")
	adminID := int64(admins[0]["id"].(float64))

	resp, _ = srv.doJSON(t, http.MethodPost, "/api/users/reset-password", map[string]any{"userId": adminID, "newPassword": "nuevo"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp, _ = srv.doJSON(t, http.MethodPost, "/api/login", map[string]string{"email": "root@shop.test", "password": "nuevo"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = srv.doJSON(t, http.MethodPost, "/api/users/reset-password", map[string]any{"userId": 9999, "newPassword": "x"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp, _ = srv.doJSON(t, http.MethodPost, "/api/users/reset-password", map[string]any{"userId": adminID})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body = srv.doJSON(t, http.MethodDelete, "/api/users/"+itoa(adminID), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"message":"User deleted successfully"}`, string(body))

	resp, _ = srv.doJSON(t, http.MethodDelete, "/api/users/abc", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUsersRegister_MultipartConImagen(t *testing.T) {
	srv := newTestServer(t)
	req := multipartRequest(t, http.MethodPost, "/api/users/register", map[string]string{
		"name": "Vera", "email": "vera@shop.test", "password": "pw", "role": "vendor",
	}, pngUpload(t))
	resp, body := srv.do(t, req)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	var out struct {
		User struct {
			Image string `json:"image"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(body, &out))
	require.NotEmpty(t, out.User.Image)
	assert.NotEqual(t, "logo.png", out.User.Image)

	resp, _ = srv.do(t, httptest.NewRequest(http.MethodGet, "/uploads/"+out.User.Image, nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
