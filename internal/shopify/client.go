// Package shopify talks to the Shopify Storefront GraphQL API. It implements
// the cart and catalog ports; costs and quantities always come from the
// platform.
package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	accessTokenHeader = "X-Shopify-Storefront-Access-Token"
	maxResponseBytes  = 4 << 20
	tracerName        = "github.com/nikolayk812/storefront/internal/shopify"

	DefaultProductLimit = domain.DefaultProductLimit
)

var (
	ErrRequestFailed = errors.New("storefront request failed")
	ErrGraphQL       = errors.New("storefront graphql error")
	ErrUserErrors    = errors.New("storefront rejected the mutation")
	ErrUnavailable   = errors.New("storefront unavailable")
)

type Client struct {
	httpClient *http.Client
	endpoint   string
	token      string
	limiter    *rate.Limiter
	metrics    *Metrics
	tracer     trace.Tracer
	logger     *zap.Logger
}

var _ port.CommercePlatform = (*Client)(nil)

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func WithMetrics(m *Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

func New(cfg Config, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("cfg.Validate: %w", err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	c := &Client{
		httpClient: &http.Client{Timeout: timeout},
		endpoint:   cfg.Endpoint(),
		token:      cfg.AccessToken,
		tracer:     otel.Tracer(tracerName),
		logger:     zap.NewNop(),
	}
	if cfg.RateLimit > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), max(1, cfg.RateBurst))
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

func (c *Client) CreateCart(ctx context.Context, lines []domain.LineInput) (domain.CartSummary, error) {
	if err := domain.ValidateLines(lines); err != nil {
		return domain.CartSummary{}, err
	}

	return c.mutateCart(ctx, "cartCreate", cartCreateMutation, map[string]any{
		"lines": lineInputs(lines),
	})
}

func (c *Client) AddLines(ctx context.Context, cartID string, lines []domain.LineInput) (domain.CartSummary, error) {
	if cartID == "" {
		return domain.CartSummary{}, domain.ErrEmptyCartID
	}
	if err := domain.ValidateLines(lines); err != nil {
		return domain.CartSummary{}, err
	}

	return c.mutateCart(ctx, "cartLinesAdd", cartLinesAddMutation, map[string]any{
		"cartId": cartID,
		"lines":  lineInputs(lines),
	})
}

func (c *Client) UpdateLines(ctx context.Context, cartID string, lines []domain.LineUpdate) (domain.CartSummary, error) {
	if cartID == "" {
		return domain.CartSummary{}, domain.ErrEmptyCartID
	}
	if err := domain.ValidateLineUpdates(lines); err != nil {
		return domain.CartSummary{}, err
	}

	updates := make([]map[string]any, 0, len(lines))
	for _, l := range lines {
		updates = append(updates, map[string]any{"id": l.ID, "quantity": l.Quantity})
	}

	return c.mutateCart(ctx, "cartLinesUpdate", cartLinesUpdateMutation, map[string]any{
		"cartId": cartID,
		"lines":  updates,
	})
}

func (c *Client) RemoveLines(ctx context.Context, cartID string, lineIDs []string) (domain.CartSummary, error) {
	if cartID == "" {
		return domain.CartSummary{}, domain.ErrEmptyCartID
	}
	if len(lineIDs) == 0 {
		return domain.CartSummary{}, domain.ErrNoLines
	}

	return c.mutateCart(ctx, "cartLinesRemove", cartLinesRemoveMutation, map[string]any{
		"cartId":  cartID,
		"lineIds": lineIDs,
	})
}

func (c *Client) GetCart(ctx context.Context, cartID string) (domain.Cart, error) {
	if cartID == "" {
		return domain.Cart{}, domain.ErrEmptyCartID
	}

	var cart domain.Cart
	err := c.instrument(ctx, "cart", func(ctx context.Context) error {
		var data struct {
			Cart *cartNode `json:"cart"`
		}
		if err := c.do(ctx, "cart", cartQuery, map[string]any{"id": cartID}, &data); err != nil {
			return err
		}
		if data.Cart == nil {
			return domain.ErrCartNotFound
		}

		var err error
		if cart, err = data.Cart.toDomain(); err != nil {
			return fmt.Errorf("cart[%s]: %w", cartID, err)
		}
		return nil
	})
	return cart, err
}

// ListProducts returns up to limit product cards, most recently updated first.
func (c *Client) ListProducts(ctx context.Context, limit int) ([]domain.ProductCard, error) {
	if limit <= 0 {
		limit = DefaultProductLimit
	}

	var cards []domain.ProductCard
	err := c.instrument(ctx, "products", func(ctx context.Context) error {
		var data struct {
			Products connection[productCardNode] `json:"products"`
		}
		if err := c.do(ctx, "products", productsQuery, map[string]any{"limit": limit}, &data); err != nil {
			return err
		}

		nodes := data.Products.nodes()
		cards = make([]domain.ProductCard, 0, len(nodes))
		for _, n := range nodes {
			card, err := n.toDomain()
			if err != nil {
				return err
			}
			cards = append(cards, card)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cards, nil
}

func (c *Client) GetProduct(ctx context.Context, handle string) (domain.Product, error) {
	if handle == "" {
		return domain.Product{}, domain.ErrProductNotFound
	}

	var product domain.Product
	err := c.instrument(ctx, "product", func(ctx context.Context) error {
		var data struct {
			Product *productNode `json:"product"`
		}
		if err := c.do(ctx, "product", productQuery, map[string]any{"handle": handle}, &data); err != nil {
			return err
		}
		if data.Product == nil {
			return domain.ErrProductNotFound
		}

		var err error
		if product, err = data.Product.toDomain(); err != nil {
			return fmt.Errorf("product[%s]: %w", handle, err)
		}
		return nil
	})
	return product, err
}

// Health asks for the shop name; any failure is reported in the result, not returned.
func (c *Client) Health(ctx context.Context) domain.Health {
	var name string
	err := c.instrument(ctx, "shop", func(ctx context.Context) error {
		var data struct {
			Shop struct {
				Name string `json:"name"`
			} `json:"shop"`
		}
		if err := c.do(ctx, "shop", shopQuery, nil, &data); err != nil {
			return err
		}
		name = data.Shop.Name
		return nil
	})
	if err != nil {
		return domain.Health{OK: false, Message: err.Error()}
	}
	return domain.Health{OK: true, Shop: name}
}

func (c *Client) mutateCart(ctx context.Context, field, mutation string, vars map[string]any) (domain.CartSummary, error) {
	var summary domain.CartSummary
	err := c.instrument(ctx, field, func(ctx context.Context) error {
		var data map[string]cartMutationPayload
		if err := c.do(ctx, field, mutation, vars, &data); err != nil {
			return err
		}

		payload := data[field]
		if len(payload.UserErrors) > 0 {
			return fmt.Errorf("%s: %w: %s", field, ErrUserErrors, joinUserErrors(payload.UserErrors))
		}
		if payload.Cart == nil {
			return fmt.Errorf("%s: %w", field, domain.ErrCartNotFound)
		}

		summary = payload.Cart.toDomain()
		return nil
	})
	return summary, err
}

// instrument runs fn inside a span and records its outcome.
func (c *Client) instrument(ctx context.Context, op string, fn func(context.Context) error) error {
	ctx, span := c.tracer.Start(ctx, "shopify."+op, trace.WithAttributes(attribute.String("graphql.operation", op)))
	defer span.End()

	start := time.Now()
	err := fn(ctx)
	c.metrics.observe(op, err, time.Since(start))

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.logger.Debug("storefront call failed", zap.String("op", op), zap.Error(err))
	}
	return err
}

// do runs one GraphQL operation and decodes its data into out.
func (c *Client) do(ctx context.Context, op, query string, vars map[string]any, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("limiter.Wait: %w", err)
		}
	}

	body, err := json.Marshal(gqlRequest{Query: query, Variables: vars})
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("http.NewRequestWithContext: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(accessTokenHeader, c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w: %w", op, ErrUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("%s: %w: %w", op, ErrUnavailable, err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("%s: %w: status %d: %s", op, ErrRequestFailed, resp.StatusCode, truncate(raw, 512))
	}

	var envelope struct {
		Data   json.RawMessage `json:"data"`
		Errors []gqlError      `json:"errors"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return fmt.Errorf("%s: json.Unmarshal: %w", op, err)
	}
	if len(envelope.Errors) > 0 {
		return fmt.Errorf("%s: %w: %s", op, ErrGraphQL, joinGraphQLErrors(envelope.Errors))
	}
	if len(envelope.Data) == 0 || string(envelope.Data) == "null" {
		return fmt.Errorf("%s: %w: empty data", op, ErrGraphQL)
	}

	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("%s: json.Unmarshal data: %w", op, err)
	}
	return nil
}

func lineInputs(lines []domain.LineInput) []map[string]any {
	out := make([]map[string]any, 0, len(lines))
	for _, l := range lines {
		out = append(out, map[string]any{"merchandiseId": l.MerchandiseID, "quantity": l.Quantity})
	}
	return out
}

func joinUserErrors(errs []userError) string {
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		if len(e.Field) > 0 {
			msgs = append(msgs, strings.Join(e.Field, ".")+": "+e.Message)
			continue
		}
		msgs = append(msgs, e.Message)
	}
	return strings.Join(msgs, "; ")
}

func joinGraphQLErrors(errs []gqlError) string {
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		msgs = append(msgs, e.Message)
	}
	return strings.Join(msgs, "; ")
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
