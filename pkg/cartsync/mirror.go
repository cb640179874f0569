package cartsync

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// defaultTimeout bounds every mirror call; on expiry the call fails as
// ErrNetwork and the policy's fallback path applies.
const defaultTimeout = 15 * time.Second

// TokenSource supplies the authentication credential for outgoing calls.
// An empty token means the client is anonymous. The cart core does not
// validate or refresh credentials.
type TokenSource interface {
	Token() string
}

// StaticToken is a fixed-credential TokenSource.
type StaticToken string

func (t StaticToken) Token() string { return string(t) }

// Mirror is the server-held cart resource. Every call returns the server's
// authoritative cart (or order) representation; callers must replace local
// state with it, never merge.
type Mirror interface {
	FetchCart(ctx context.Context) (Cart, error)
	AddItem(ctx context.Context, productID string, quantity int, size string) (Cart, error)
	SetItemQuantity(ctx context.Context, itemID string, quantity int) (Cart, error)
	RemoveItem(ctx context.Context, itemID string) (Cart, error)
	Clear(ctx context.Context) (Cart, error)
	Checkout(ctx context.Context, shippingAddress, paymentMethod string) (Order, error)
}

// HTTPMirror talks to the NexusCart backend's /api/cart resource.
type HTTPMirror struct {
	baseURL string
	tokens  TokenSource
	client  *http.Client
}

// NewHTTPMirror returns a mirror against baseURL (e.g. "http://localhost:8080/api").
func NewHTTPMirror(baseURL string, tokens TokenSource) *HTTPMirror {
	return &HTTPMirror{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		tokens:  tokens,
		client:  &http.Client{Timeout: defaultTimeout},
	}
}

func (m *HTTPMirror) FetchCart(ctx context.Context) (Cart, error) {
	var cart Cart
	err := m.do(ctx, http.MethodGet, "/cart", nil, &cart)
	return cart, err
}

func (m *HTTPMirror) AddItem(ctx context.Context, productID string, quantity int, size string) (Cart, error) {
	body := map[string]interface{}{
		"productId": productID,
		"quantity":  quantity,
		"size":      size,
	}
	var cart Cart
	err := m.do(ctx, http.MethodPost, "/cart/add", body, &cart)
	return cart, err
}

func (m *HTTPMirror) SetItemQuantity(ctx context.Context, itemID string, quantity int) (Cart, error) {
	body := map[string]interface{}{"quantity": quantity}
	var cart Cart
	err := m.do(ctx, http.MethodPut, "/cart/"+itemID, body, &cart)
	return cart, err
}

func (m *HTTPMirror) RemoveItem(ctx context.Context, itemID string) (Cart, error) {
	var cart Cart
	err := m.do(ctx, http.MethodDelete, "/cart/"+itemID, nil, &cart)
	return cart, err
}

func (m *HTTPMirror) Clear(ctx context.Context) (Cart, error) {
	var cart Cart
	err := m.do(ctx, http.MethodDelete, "/cart", nil, &cart)
	return cart, err
}

func (m *HTTPMirror) Checkout(ctx context.Context, shippingAddress, paymentMethod string) (Order, error) {
	body := map[string]interface{}{
		"shippingAddress": shippingAddress,
		"paymentMethod":   paymentMethod,
	}
	var order Order
	err := m.do(ctx, http.MethodPost, "/cart/checkout", body, &order)
	return order, err
}

// envelope is the backend's response wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func (m *HTTPMirror) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%w: encode request: %v", ErrNetwork, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, m.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%w: build request: %v", ErrNetwork, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token := m.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrNetwork, method, path, err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return fmt.Errorf("%w: decode response: %v", ErrNetwork, err)
	}

	if resp.StatusCode >= 400 {
		return mapAPIError(resp.StatusCode, env.Message)
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("%w: decode payload: %v", ErrNetwork, err)
		}
	}
	return nil
}

// mapAPIError translates backend failures into the local error taxonomy.
func mapAPIError(status int, message string) error {
	lower := strings.ToLower(message)
	switch {
	case status == http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, message)
	case status == http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", ErrUnauthenticated, message)
	case strings.Contains(lower, "out of stock"):
		return fmt.Errorf("%w: %s", ErrOutOfStock, message)
	case strings.Contains(lower, "empty"):
		return fmt.Errorf("%w: %s", ErrEmptyCart, message)
	case status >= 500:
		return fmt.Errorf("%w: server error: %s", ErrNetwork, message)
	default:
		return fmt.Errorf("%w: %s", ErrValidation, message)
	}
}
