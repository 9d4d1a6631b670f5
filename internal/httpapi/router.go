package httpapi

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type RouterConfig struct {
	Logger   *zap.Logger
	Metrics  *HTTPMetrics
	Gatherer prometheus.Gatherer
}

// NewRouter mounts the storefront API under /api and, when a gatherer is set, /metrics.
func NewRouter(h *Handler, cfg RouterConfig) *gin.Engine {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	engine := gin.New()
	engine.Use(RequestID())
	engine.Use(Recovery(log))
	engine.Use(Tracing())
	engine.Use(Logging(log))
	if cfg.Metrics != nil {
		engine.Use(cfg.Metrics.Middleware())
	}

	if cfg.Gatherer != nil {
		engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{})))
	}

	api := engine.Group("/api")
	api.GET("/health", h.Health)

	products := api.Group("/products")
	products.GET("", h.ListProducts)
	products.GET("/:handle", h.GetProduct)
	products.GET("/:handle/view", h.ProductView)

	cart := api.Group("/cart", h.Session())
	cart.GET("", h.GetCart)
	cart.POST("/add", h.AddToCart)
	cart.POST("/update", h.UpdateLine)
	cart.POST("/remove", h.RemoveLines)
	cart.POST("/clear", h.ClearCart)

	return engine
}
