package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServices_CrearListarContar(t *testing.T) {
	srv := newTestServer(t)
	vendorID := srv.registerProfile(t, "Vera", "vera@shop.test", "vendor")
	otherID := srv.registerProfile(t, "Otto", "otto@shop.test", "vendor")
	srv.createService(t, vendorID, "Cake")
	srv.createService(t, otherID, "Bread")

	resp, body := srv.doJSON(t, http.MethodGet, "/api/services/count", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"totalServices":2}`, string(body))

	resp, body = srv.doJSON(t, http.MethodGet, "/api/services?vendor_id="+itoa(vendorID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(body, &list))
	require.Len(t, list, 1)
	assert.Equal(t, "Cake", list[0]["title"])

	resp, _ = srv.doJSON(t, http.MethodGet, "/api/services?vendor_id=x", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestServices_RechazaPDFSinCrearFila(t *testing.T) {
	srv := newTestServer(t)
	vendorID := srv.registerProfile(t, "Vera", "vera@shop.test", "vendor")

	req := multipartRequest(t, http.MethodPost, "/api/services", map[string]string{
		"vendor_id": itoa(vendorID), "title": "Menu", "price": "10", "category": "food",
	}, &upload{filename: "menu.pdf", contentType: "application/pdf", content: []byte("%PDF-1.4 menu")})
	resp, _ := srv.do(t, req)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	_, body := srv.doJSON(t, http.MethodGet, "/api/services/count", nil)
	assert.JSONEq(t, `{"totalServices":0}`, string(body))
	entries, err := os.ReadDir(srv.images.Dir())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestServices_ValidaCampos(t *testing.T) {
	srv := newTestServer(t)
	vendorID := srv.registerProfile(t, "Vera", "vera@shop.test", "vendor")

	req := multipartRequest(t, http.MethodPost, "/api/services", map[string]string{
		"vendor_id": itoa(vendorID), "title": "Cake", "price": "-3", "category": "food",
	}, nil)
	resp, _ := srv.do(t, req)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	req = multipartRequest(t, http.MethodPost, "/api/services", map[string]string{
		"vendor_id": "9999", "title": "Cake", "price": "3", "category": "food",
	}, nil)
	resp, _ = srv.do(t, req)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestServices_BorrarDosVeces(t *testing.T) {
	srv := newTestServer(t)
	vendorID := srv.registerProfile(t, "Vera", "vera@shop.test", "vendor")
	id, _ := srv.createService(t, vendorID, "Cake")

	resp, body := srv.doJSON(t, http.MethodDelete, "/api/services/"+itoa(id), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"message":"Service deleted successfully"}`, string(body))

	resp, _ = srv.doJSON(t, http.MethodDelete, "/api/services/"+itoa(id), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestVendors_UpdateLogo(t *testing.T) {
	srv := newTestServer(t)
	vendorID := srv.registerProfile(t, "Vera", "vera@shop.test", "vendor")

	req := multipartRequest(t, http.MethodPost, "/api/vendors/update-logo", map[string]string{"vendorId": itoa(vendorID)}, pngUpload(t))
	resp, body := srv.do(t, req)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.Contains(t, string(body), "Vendor logo updated successfully")

	req = multipartRequest(t, http.MethodPost, "/api/vendors/update-logo", map[string]string{"vendorId": "9999"}, pngUpload(t))
	resp, _ = srv.do(t, req)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	req = multipartRequest(t, http.MethodPost, "/api/vendors/update-logo", map[string]string{"vendorId": itoa(vendorID)}, nil)
	resp, _ = srv.do(t, req)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func secureFileURL(base, file, token string) string {
	q := url.Values{}
	q.Set("file", file)
	q.Set("token", token)
	return base + "?" + q.Encode()
}

func issueToken(t *testing.T, srv *testServer, file string) string {
	t.Helper()
	q := url.Values{}
	q.Set("file", file)
	q.Set("key", testIssuerKey)
	resp, body := srv.doJSON(t, http.MethodGet, "/api/services/secure-file/token?"+q.Encode(), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var out struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(body, &out))
	return out.Token
}

func TestSecureFile_FlujoCompleto(t *testing.T) {
	srv := newTestServer(t)
	vendorID := srv.registerProfile(t, "Vera", "vera@shop.test", "vendor")
	_, image := srv.createService(t, vendorID, "Cake")
	token := issueToken(t, srv, image)

	for _, base := range []string{"/api/services/secure-file", "/api/secure-file"} {
		resp, body := srv.do(t, httptest.NewRequest(http.MethodGet, secureFileURL(base, image, token), nil))
		assert.Equal(t, http.StatusOK, resp.StatusCode, base)
		assert.NotEmpty(t, body)
	}
}

func TestSecureFile_OrdenDeErrores(t *testing.T) {
	srv := newTestServer(t)
	vendorID := srv.registerProfile(t, "Vera", "vera@shop.test", "vendor")
	_, image := srv.createService(t, vendorID, "Cake")
	token := issueToken(t, srv, image)

	resp, _ := srv.do(t, httptest.NewRequest(http.MethodGet, secureFileURL("/api/services/secure-file", "../etc/passwd", token), nil))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "nombre inválido primero")

	resp, body := srv.do(t, httptest.NewRequest(http.MethodGet, secureFileURL("/api/services/secure-file", image, "naimarket_secure_token"), nil))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Contains(t, string(body), "Unauthorized access")

	resp, _ = srv.do(t, httptest.NewRequest(http.MethodGet, secureFileURL("/api/services/secure-file", "otro.png", token), nil))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "token de otro archivo")

	require.NoError(t, os.Remove(filepath.Join(srv.images.Dir(), image)))
	resp, body = srv.do(t, httptest.NewRequest(http.MethodGet, secureFileURL("/api/services/secure-file", image, token), nil))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, string(body), "File not found")
}

func TestSecureFileToken_ClaveIncorrecta(t *testing.T) {
	srv := newTestServer(t)
	resp, _ := srv.doJSON(t, http.MethodGet, "/api/services/secure-file/token?file=a.png&key=wrong", nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}
