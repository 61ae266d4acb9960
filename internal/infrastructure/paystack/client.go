// Package paystack adaptador HTTP de la pasarela Paystack (initialize / verify).
package paystack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/text/currency"

	"github.com/jhoicas/naimarket-api/internal/application/ports"
)

var _ ports.PaymentGateway = (*Client)(nil)

// DefaultBaseURL API pública de Paystack.
const DefaultBaseURL = "https://api.paystack.co"

// Config credenciales y parámetros fijos de cada cobro.
type Config struct {
	SecretKey   string
	BaseURL     string
	Currency    string // ISO 4217, p.ej. KES
	CallbackURL string
}

// Client implementa ports.PaymentGateway usando la API REST de Paystack.
// Usa net/http de la librería estándar; Paystack no publica SDK oficial para Go.
type Client struct {
	secret      string
	baseURL     string
	currency    string
	callbackURL string
	httpClient  *http.Client
}

// NewClient valida la moneda y construye el cliente.
func NewClient(cfg Config) (*Client, error) {
	unit, err := currency.ParseISO(strings.ToUpper(strings.TrimSpace(cfg.Currency)))
	if err != nil {
		return nil, fmt.Errorf("paystack: moneda %q inválida: %w", cfg.Currency, err)
	}
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	return &Client{
		secret:      cfg.SecretKey,
		baseURL:     base,
		currency:    unit.String(),
		callbackURL: cfg.CallbackURL,
		httpClient:  &http.Client{Timeout: 30 * time.Second},
	}, nil
}

// ── Estructuras del protocolo ─────────────────────────────────────────────────

type initializeRequest struct {
	Email       string `json:"email"`
	Amount      int64  `json:"amount"`
	Currency    string `json:"currency"`
	CallbackURL string `json:"callback_url,omitempty"`
}

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// ── Implementación del puerto ─────────────────────────────────────────────────

// InitializeTransaction inicia un cobro y devuelve el cuerpo de la respuesta sin modificar.
func (c *Client) InitializeTransaction(ctx context.Context, email string, amountMinor int64) (json.RawMessage, error) {
	body, err := json.Marshal(initializeRequest{
		Email:       email,
		Amount:      amountMinor,
		Currency:    c.currency,
		CallbackURL: c.callbackURL,
	})
	if err != nil {
		return nil, fmt.Errorf("serializar request: %w", err)
	}
	raw, _, err := c.do(ctx, http.MethodPost, "/transaction/initialize", body)
	if err != nil {
		return nil, err
	}
	return raw, nil
}

// VerifyTransaction consulta la transacción y devuelve su objeto data y estado.
func (c *Client) VerifyTransaction(ctx context.Context, reference string) (*ports.PaymentVerification, error) {
	_, env, err := c.do(ctx, http.MethodGet, "/transaction/verify/"+url.PathEscape(reference), nil)
	if err != nil {
		return nil, err
	}
	var data struct {
		Status string `json:"status"`
	}
	if len(env.Data) > 0 && string(env.Data) != "null" {
		if err := json.Unmarshal(env.Data, &data); err != nil {
			return nil, fmt.Errorf("deserializar data: %w", err)
		}
	}
	return &ports.PaymentVerification{Status: data.Status, Data: env.Data}, nil
}

func (c *Client) do(ctx context.Context, method, path string, body []byte) (json.RawMessage, *envelope, error) {
	if c.secret == "" {
		return nil, nil, fmt.Errorf("PAYSTACK_SECRET no configurado")
	}
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, nil, fmt.Errorf("crear HTTP request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secret)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, nil, fmt.Errorf("timeout o cancelación: %w", ctx.Err())
		}
		return nil, nil, fmt.Errorf("llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, nil, fmt.Errorf("leer respuesta: %w", err)
	}

	var env envelope
	jsonErr := json.Unmarshal(raw, &env)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if jsonErr == nil && env.Message != "" {
			return nil, nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, env.Message)
		}
		return nil, nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	if jsonErr != nil {
		return nil, nil, fmt.Errorf("deserializar respuesta: %w", jsonErr)
	}
	return json.RawMessage(raw), &env, nil
}
