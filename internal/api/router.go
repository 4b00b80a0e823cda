package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/todoapp/todos-api/docs"
	"github.com/todoapp/todos-api/internal/api/handler"
	"github.com/todoapp/todos-api/internal/api/middleware"
	"github.com/todoapp/todos-api/internal/core/ports"
	"github.com/todoapp/todos-api/internal/infrastructure/http/handlers"
)

const welcomeMessage = "Welcome to our ToDos API"

// Dependencies are the collaborators the HTTP layer is built from.
type Dependencies struct {
	Logger      zerolog.Logger
	AuthService ports.AuthService
	TodoService ports.TodoService
	Verifier    ports.TokenVerifier
	// Readiness lists the dependencies pinged by GET /health/ready.
	Readiness map[string]handlers.Pinger
	// AllowOrigins defaults to "*".
	AllowOrigins []string
	// Registerer and Gatherer default to the global Prometheus registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	registerer, gatherer := deps.Registerer, deps.Gatherer
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	origins := deps.AllowOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: origins,
		AllowHeaders: []string{
			echo.HeaderOrigin,
			echo.HeaderContentType,
			echo.HeaderAccept,
			echo.HeaderAuthorization,
			middleware.HeaderAuthToken,
			handler.HeaderIdempotencyKey,
		},
	}))
	e.Use(middleware.RequestLogger(deps.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "todos",
		Registerer: registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.AuthService)
	todoHandler := handler.NewTodoHandler(deps.TodoService)
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(deps.Readiness)

	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, welcomeMessage)
	})

	// --- Operational endpoints (no auth required) ---
	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// --- API ---
	api := e.Group("/api")
	api.POST("/signup", authHandler.Signup)
	api.POST("/signin", authHandler.Signin)

	todos := api.Group("/todos", middleware.Auth(deps.Verifier))
	todos.GET("", todoHandler.List)
	todos.POST("", todoHandler.Create)
	todos.PUT("/:id", todoHandler.Update)
	todos.PATCH("/:id", todoHandler.Toggle)
	todos.DELETE("/:id", todoHandler.Delete)

	return e
}
