package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"lobstertawar/internal/config"
	"lobstertawar/internal/domain"
	"lobstertawar/internal/dto"
	apperrors "lobstertawar/internal/errors"
)

const (
	productsPath  = "/api/products"
	inquiriesPath = "/api/inquiries"

	RequestIDHeader = "X-Request-ID"
)

type requestIDKey struct{}

// WithRequestID makes outgoing backend calls carry id instead of a fresh one.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func requestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey{}).(string); ok && id != "" {
		return id
	}
	return uuid.New().String()
}

// Client talks to the storefront backend. Every non-2xx response is returned
// as *apperrors.UpstreamError.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewClient(cfg config.BackendConfig, logger *zap.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.URL, "/"),
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
	}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var items []dto.ProductDTO
	if err := c.do(ctx, "list products", http.MethodGet, productsPath, nil, &items); err != nil {
		return nil, err
	}
	return dto.ProductsToDomain(items), nil
}

func (c *Client) CreateProduct(ctx context.Context, p domain.Product) error {
	return c.do(ctx, "create product", http.MethodPost, productsPath, dto.ProductFromDomain(p), nil)
}

func (c *Client) CreateInquiry(ctx context.Context, payload dto.InquiryPayload) error {
	return c.do(ctx, "create inquiry", http.MethodPost, inquiriesPath, payload, nil)
}

func (c *Client) do(ctx context.Context, op, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, op+": encode body")
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return errors.Wrap(err, op+": build request")
	}

	reqID := requestID(ctx)
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, reqID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	logger := c.logger.With(zap.String("requestId", reqID), zap.String("method", method), zap.String("path", path))
	logger.Debug("backend request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Warn("backend unreachable", zap.Error(err))
		return errors.Wrap(err, op+": send request")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		logger.Warn("backend rejected request", zap.Int("status", resp.StatusCode))
		return apperrors.NewUpstreamError(op, resp.StatusCode)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		logger.Warn("backend response not decodable", zap.Error(err))
		return errors.Wrap(err, op+": decode response")
	}

	return nil
}
