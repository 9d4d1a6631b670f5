// Package httpapi is the JSON route layer of the storefront. Cart routes run
// one cart synchronization per request, seeded with the cart id remembered
// for the caller's session cookie.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/cartsync"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/logger"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/nikolayk812/storefront/internal/store"
	"github.com/nikolayk812/storefront/internal/variant"
	"go.uber.org/zap"
)

const (
	DefaultCookieName = "sid"
	DefaultSessionTTL = 30 * 24 * time.Hour

	maxProductLimit = 100
)

type Handler struct {
	platform   port.CommercePlatform
	sessions   port.CartSessionRepository
	pickerCfg  variant.Config
	cookieName string
	sessionTTL time.Duration
	secure     bool
}

type Option func(*Handler)

func WithPickerConfig(cfg variant.Config) Option {
	return func(h *Handler) {
		h.pickerCfg = cfg
	}
}

// WithSessionCookie sets the session cookie name, lifetime and Secure flag.
func WithSessionCookie(name string, ttl time.Duration, secure bool) Option {
	return func(h *Handler) {
		h.cookieName = name
		h.sessionTTL = ttl
		h.secure = secure
	}
}

func NewHandler(platform port.CommercePlatform, sessions port.CartSessionRepository, opts ...Option) *Handler {
	h := &Handler{
		platform:   platform,
		sessions:   sessions,
		pickerCfg:  variant.DefaultConfig(),
		cookieName: DefaultCookieName,
		sessionTTL: DefaultSessionTTL,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Session resolves the caller's session id from the cookie, issuing a new one
// when it is missing or malformed.
func (h *Handler) Session() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(h.cookieName)
		id, parseErr := uuid.Parse(raw)
		if err != nil || parseErr != nil || id == uuid.Nil {
			id = uuid.New()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(h.cookieName, id.String(), int(h.sessionTTL.Seconds()), "/", "", h.secure, true)
		}
		c.Set(sessionIDKey, id.String())
		c.Next()
	}
}

func (h *Handler) Health(c *gin.Context) {
	health := h.platform.Health(c.Request.Context())

	status := http.StatusOK
	if !health.OK {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, HealthResponse{OK: health.OK, Shop: health.Shop, Message: health.Message})
}

func (h *Handler) ListProducts(c *gin.Context) {
	limit := domain.DefaultProductLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxProductLimit {
			abortBadRequest(c, errors.New("limit must be between 1 and 100"))
			return
		}
		limit = n
	}

	cards, err := h.platform.ListProducts(c.Request.Context(), limit)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, toProductCardDTOs(cards))
}

func (h *Handler) GetProduct(c *gin.Context) {
	product, err := h.platform.GetProduct(c.Request.Context(), c.Param("handle"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, toProductDTO(product))
}

// ProductView restores the selection from the query (option values or
// variant=<id>), then applies an optional option click (option, value) or a
// thumbnail click (image), and returns the derived view.
func (h *Handler) ProductView(c *gin.Context) {
	product, err := h.platform.GetProduct(c.Request.Context(), c.Param("handle"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	picker := variant.NewPicker(product, h.pickerCfg)

	query := c.Request.URL.Query()
	option, value, image := query.Get("option"), query.Get("value"), query.Get("image")
	query.Del("option")
	query.Del("value")
	query.Del("image")

	picker.Restore(query)
	if option != "" {
		picker.Select(option, value)
	}
	if image != "" {
		picker.ForceImage(domain.Image{URL: image})
	}

	c.JSON(http.StatusOK, toProductViewDTO(product, picker))
}

func (h *Handler) GetCart(c *gin.Context) {
	ctx := c.Request.Context()

	cartID := c.Query("id")
	fromSession := cartID == ""
	if fromSession {
		cartID = h.sessionCartID(ctx, c)
	}
	if cartID == "" {
		abortWithError(c, errMissingCartID)
		return
	}

	sync := h.synchronizer(ctx, cartID)
	cart, err := sync.FetchSnapshot(ctx, cartID)
	if err != nil {
		if fromSession && errors.Is(err, domain.ErrCartNotFound) {
			h.forgetCart(ctx, c)
		}
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, toCartDTO(cart))
}

func (h *Handler) AddToCart(c *gin.Context) {
	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, err)
		return
	}

	quantity := cartsync.DefaultQuantity
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	ctx := c.Request.Context()
	cartID := h.sessionCartID(ctx, c)

	sync := h.synchronizer(ctx, cartID)
	summary, err := sync.AddOrCreate(ctx, req.MerchandiseID, quantity)
	if err != nil {
		abortWithError(c, err)
		return
	}

	if summary.ID != cartID {
		if err := h.sessions.SaveCartID(ctx, sessionID(c), summary.ID); err != nil {
			logger.FromContext(ctx).Error("cart session not saved",
				zap.String("cart_id", summary.ID), zap.Error(err))
		}
	}

	c.JSON(http.StatusOK, toCartSummaryDTO(summary))
}

func (h *Handler) UpdateLine(c *gin.Context) {
	var req UpdateLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, err)
		return
	}

	ctx := c.Request.Context()
	cartID := h.cartIDOrSession(ctx, c, req.CartID)

	sync := h.synchronizer(ctx, cartID)
	cart, err := sync.UpdateLine(ctx, cartID, req.LineID, req.Quantity)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, toCartDTO(cart))
}

func (h *Handler) RemoveLines(c *gin.Context) {
	var req RemoveLinesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBadRequest(c, err)
		return
	}

	ctx := c.Request.Context()
	cartID := h.cartIDOrSession(ctx, c, req.CartID)

	sync := h.synchronizer(ctx, cartID)
	cart, err := sync.RemoveLines(ctx, cartID, req.LineIDs)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, toCartDTO(cart))
}

// ClearCart forgets the session's cart. The remote cart itself is left to expire.
func (h *Handler) ClearCart(c *gin.Context) {
	if _, err := h.sessions.DeleteSession(c.Request.Context(), sessionID(c)); err != nil {
		abortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// synchronizer builds a per-request synchronizer whose cache starts from the session's cart.
func (h *Handler) synchronizer(ctx context.Context, cartID string) *cartsync.Synchronizer {
	return cartsync.New(h.platform, store.NewCartWithID(cartID), store.NewUI(),
		cartsync.WithLogger(logger.FromContext(ctx)))
}

func (h *Handler) cartIDOrSession(ctx context.Context, c *gin.Context, cartID string) string {
	if cartID != "" {
		return cartID
	}
	return h.sessionCartID(ctx, c)
}

// sessionCartID returns "" when the session has no cart or the lookup fails.
func (h *Handler) sessionCartID(ctx context.Context, c *gin.Context) string {
	cartID, err := h.sessions.GetCartID(ctx, sessionID(c))
	if err != nil {
		logger.FromContext(ctx).Error("cart session lookup failed", zap.Error(err))
		return ""
	}
	return cartID
}

func (h *Handler) forgetCart(ctx context.Context, c *gin.Context) {
	if _, err := h.sessions.DeleteSession(ctx, sessionID(c)); err != nil {
		logger.FromContext(ctx).Error("cart session not deleted", zap.Error(err))
	}
}
