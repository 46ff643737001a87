package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/piazza/piazza-api/internal/api/handler"
	"github.com/piazza/piazza-api/internal/api/middleware"
	"github.com/piazza/piazza-api/internal/core/ports"
)

// Deps carries everything the HTTP layer needs. Redis may be nil when the
// idempotency store is disabled; a nil Registry means the default
// prometheus registry.
type Deps struct {
	Users       ports.UserService
	Posts       ports.PostService
	Comments    ports.CommentService
	TokenSecret string
	Logger      zerolog.Logger
	Mongo       handler.MongoPinger
	Redis       handler.RedisPinger
	Registry    *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(d.Logger))

	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if d.Registry != nil {
		registerer, gatherer = d.Registry, d.Registry
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "piazza",
		Registerer: registerer,
	}))

	auth := middleware.Auth(d.TokenSecret)
	optionalAuth := middleware.OptionalAuth(d.TokenSecret)

	// --- Operational endpoints (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(d.Mongo, d.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	v1 := e.Group("/v1")

	// --- Users ---
	users := handler.NewUserHandler(d.Users)
	u := v1.Group("/user")
	u.POST("/register", users.Register)
	u.POST("/login", users.Login)
	u.GET("/:id", users.Get)
	u.PUT("/:id", users.Update, auth, middleware.SelfOnly("id"))
	u.DELETE("/:id", users.Delete, auth, middleware.SelfOnly("id"))

	// --- Posts ---
	posts := handler.NewPostHandler(d.Posts)
	p := v1.Group("/post")
	p.POST("", posts.Create, auth)
	p.GET("", posts.List, optionalAuth)
	p.GET("/topic/:topic", posts.ListByTopic, optionalAuth)
	p.GET("/:id", posts.Get)
	p.PUT("/:id", posts.Update, auth)
	p.DELETE("/:id", posts.Delete, auth)
	p.PUT("/:id/like", posts.Like, auth)
	p.PUT("/:id/dislike", posts.Dislike, auth)

	// --- Comments ---
	comments := handler.NewCommentHandler(d.Comments)
	cm := v1.Group("/comment")
	cm.POST("", comments.Create, auth)
	cm.GET("/post/:postId", comments.ListByPost)
	cm.DELETE("/:commentId", comments.Delete, auth)

	return e
}
