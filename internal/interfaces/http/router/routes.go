package router

import (
	"fmt"
	"net/http"

	"github.com/campusmarket/backend/internal/infrastructure/auth"
	"github.com/campusmarket/backend/internal/infrastructure/logger"
	"github.com/campusmarket/backend/internal/infrastructure/telemetry"
	"github.com/campusmarket/backend/internal/interfaces/http/dto"
	"github.com/campusmarket/backend/internal/interfaces/http/handler"
	"github.com/campusmarket/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handlers groups the HTTP handlers mounted by NewEngine
type Handlers struct {
	Auth    *handler.AuthHandler
	Listing *handler.ListingHandler
	Comment *handler.CommentHandler
	Cart    *handler.CartHandler
	System  *handler.SystemHandler
}

// EngineConfig configures the gin engine and its middleware stack
type EngineConfig struct {
	BasePath       string
	MaxBodySize    int64
	AllowOrigins   []string
	TrustedProxies []string

	JWTService *auth.JWTService
	Blacklist  auth.TokenBlacklist

	// Metrics is optional; when set, requests are measured and exposed on MetricsPath
	Metrics     *telemetry.Metrics
	MetricsPath string

	// AuthLimiter is optional and throttles POST /register and POST /login per client IP
	AuthLimiter *middleware.RateLimiter

	// StaticPrefix and StaticDir serve locally stored images when both are set
	StaticPrefix string
	StaticDir    string

	Logger *zap.Logger
}

// NewEngine builds the gin engine with the full marketplace route table
func NewEngine(cfg EngineConfig, h Handlers) (*gin.Engine, error) {
	if cfg.JWTService == nil {
		return nil, fmt.Errorf("router: JWT service is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.MetricsPath == "" {
		cfg.MetricsPath = "/metrics"
	}

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, fmt.Errorf("router: trusted proxies: %w", err)
	}

	engine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(cfg.Logger),
		logger.Recovery(cfg.Logger),
		middleware.Secure(),
		middleware.CORS(cfg.AllowOrigins...),
		middleware.BodyLimit(cfg.MaxBodySize),
		middleware.HTTPMetrics(cfg.Metrics, cfg.MetricsPath),
	)

	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.NewErrorResponseWithRequestID(
			dto.ErrCodeNotFound, "Route not found", c.GetString(logger.GinRequestIDKey)))
	})

	engine.GET("/health", h.System.Health)
	if cfg.Metrics != nil {
		engine.GET(cfg.MetricsPath, gin.WrapH(cfg.Metrics.Handler()))
	}
	if cfg.StaticPrefix != "" && cfg.StaticDir != "" {
		engine.Static(cfg.StaticPrefix, cfg.StaticDir)
	}

	r := NewRouter(engine, WithBasePath(cfg.BasePath))
	for _, group := range marketGroups(cfg, h) {
		r.Register(group)
	}
	r.Setup()

	return engine, nil
}

func marketGroups(cfg EngineConfig, h Handlers) []*DomainGroup {
	throttle := func(c *gin.Context) { c.Next() }
	if cfg.AuthLimiter != nil {
		throttle = middleware.RateLimit(cfg.AuthLimiter)
	}

	requireAuth := middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService:     cfg.JWTService,
		TokenBlacklist: cfg.Blacklist,
		Logger:         cfg.Logger,
	})

	public := NewDomainGroup("public", "").
		GET("/", h.Listing.Index).
		GET("/register", h.Auth.RegisterForm).
		POST("/register", throttle, h.Auth.Register).
		GET("/login", h.Auth.LoginForm).
		POST("/login", throttle, h.Auth.Login).
		GET("/product/:id", h.Listing.Show)

	session := NewDomainGroup("session", "").
		Use(middleware.OptionalJWTAuthMiddleware(cfg.JWTService, cfg.Blacklist)).
		GET("/logout", h.Auth.Logout)

	member := NewDomainGroup("member", "").
		Use(requireAuth).
		GET("/me", h.Auth.Me).
		GET("/product/new", h.Listing.NewForm).
		POST("/product/new", h.Listing.Create).
		POST("/product/:id", h.Comment.Add).
		POST("/product/:id/delete", h.Listing.Delete).
		POST("/comment/:id/delete", h.Comment.Delete).
		GET("/add_to_cart/:id", h.Cart.Add).
		GET("/cart", h.Cart.View).
		GET("/cart/remove/:id", h.Cart.Remove).
		GET("/checkout", h.Cart.Checkout)

	return []*DomainGroup{public, session, member}
}
