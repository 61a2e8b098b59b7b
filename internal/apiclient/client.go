// Package apiclient talks to the marketplace HTTP API.
package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"unitrade_backend/models"
)

const defaultTimeout = 15 * time.Second

// ErrNotFound is returned for 404 responses.
var ErrNotFound = errors.New("not found")

// Error is a non-2xx API response.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

func (e *Error) Is(target error) bool {
	return target == ErrNotFound && e.Status == http.StatusNotFound
}

type Client struct {
	BaseURL string
	Timeout time.Duration
}

func New(baseURL string) *Client {
	return &Client{BaseURL: strings.TrimRight(baseURL, "/"), Timeout: defaultTimeout}
}

func (c *Client) do(ctx context.Context, method, path, token string, body, out interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var a *fiber.Agent
	switch method {
	case fiber.MethodGet:
		a = fiber.Get(c.BaseURL + path)
	case fiber.MethodPost:
		a = fiber.Post(c.BaseURL + path)
	case fiber.MethodPut:
		a = fiber.Put(c.BaseURL + path)
	default:
		return fmt.Errorf("unsupported method %s", method)
	}

	timeout := c.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if deadline, ok := ctx.Deadline(); ok {
		timeout = min(timeout, time.Until(deadline))
	}
	a.Timeout(timeout)

	if token != "" {
		a.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	if body != nil {
		a.JSON(body)
	}

	if err := a.Parse(); err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	status, raw, errs := a.Bytes()
	if len(errs) > 0 {
		return fmt.Errorf("%s %s: %w", method, path, errors.Join(errs...))
	}

	if status < 200 || status > 299 {
		var payload struct {
			Error string `json:"error"`
		}
		_ = json.Unmarshal(raw, &payload)
		if payload.Error == "" {
			payload.Error = http.StatusText(status)
		}
		return &Error{Status: status, Message: payload.Error}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func (c *Client) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	var resp struct {
		User models.User `json:"user"`
	}
	if err := c.do(ctx, fiber.MethodPost, "/api/auth/register", "", req, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

func (c *Client) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	var resp models.LoginResponse
	if err := c.do(ctx, fiber.MethodPost, "/api/auth/login", "", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Me returns the user owning token.
func (c *Client) Me(ctx context.Context, token string) (*models.User, error) {
	var resp struct {
		User models.User `json:"user"`
	}
	if err := c.do(ctx, fiber.MethodGet, "/api/auth/me", token, nil, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// ListProducts fetches active products; params carries the browse filters.
func (c *Client) ListProducts(ctx context.Context, params url.Values) ([]models.Product, error) {
	path := "/api/products"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}
	var resp struct {
		Products []models.Product `json:"products"`
	}
	if err := c.do(ctx, fiber.MethodGet, path, "", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Products, nil
}

func (c *Client) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	var resp struct {
		Product models.Product `json:"product"`
	}
	if err := c.do(ctx, fiber.MethodGet, fmt.Sprintf("/api/products/%d", id), "", nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Product, nil
}

func (c *Client) CreateProduct(ctx context.Context, token string, req models.CreateProductRequest) (*models.Product, error) {
	var resp struct {
		Product models.Product `json:"product"`
	}
	if err := c.do(ctx, fiber.MethodPost, "/api/products", token, req, &resp); err != nil {
		return nil, err
	}
	return &resp.Product, nil
}

func (c *Client) PlaceBid(ctx context.Context, token string, productID uint, amount int64) (*models.Product, error) {
	var resp struct {
		Product models.Product `json:"product"`
	}
	path := fmt.Sprintf("/api/products/%d/bids", productID)
	if err := c.do(ctx, fiber.MethodPost, path, token, models.BidRequest{Amount: amount}, &resp); err != nil {
		return nil, err
	}
	return &resp.Product, nil
}
