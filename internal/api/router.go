package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/mealops/kitchen-system/docs"
	"github.com/mealops/kitchen-system/internal/api/handler"
	"github.com/mealops/kitchen-system/internal/api/metrics"
	"github.com/mealops/kitchen-system/internal/api/middleware"
	"github.com/mealops/kitchen-system/internal/auth"
	"github.com/mealops/kitchen-system/internal/core/domain"
	"github.com/mealops/kitchen-system/internal/core/ports"
	"github.com/mealops/kitchen-system/internal/infrastructure/localstore"
	"github.com/mealops/kitchen-system/internal/session"
)

// Deps carries everything the router needs. Mongo and Redis may be nil
// when the deployment does not use them; the readiness probe skips them.
type Deps struct {
	Users    ports.UserDirectory
	Requests ports.RequestStore
	Prefs    *localstore.Preferences
	Sessions *session.Store
	Tokens   *auth.TokenManager
	Mongo    *mongo.Database
	Redis    *redis.Client
	Logger   zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps, directory ports.DirectoryService, registration ports.RegistrationService, authSvc ports.AuthService) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("kitchen"))

	// Keep the active-sessions gauge in sync with the session store.
	deps.Sessions.Subscribe(func() {
		if deps.Sessions.Current() != nil {
			metrics.ActiveSessions.Set(1)
		} else {
			metrics.ActiveSessions.Set(0)
		}
	})

	authHandler := handler.NewAuthHandler(authSvc, registration)
	adminHandler := handler.NewAdminHandler(registration, directory)
	prefsHandler := handler.NewPrefsHandler(deps.Prefs)

	requireAuth := middleware.Auth(deps.Tokens)
	requireAdmin := middleware.RBAC(string(domain.RoleSuperadmin), string(domain.RoleSupervisor))

	// --- Auth routes ---
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout, requireAuth)
	e.POST("/auth/signup", authHandler.Signup)

	// --- Admin routes (approval workflow) ---
	admin := e.Group("/api/admin", requireAuth, requireAdmin)
	admin.GET("/requests", adminHandler.ListRequests)
	admin.POST("/requests/:id/approve", adminHandler.ApproveRequest)
	admin.POST("/requests/:id/decline", adminHandler.DeclineRequest)
	admin.GET("/users", adminHandler.ListUsers)

	// --- Device preferences ---
	prefs := e.Group("/api/prefs", requireAuth)
	prefs.GET("/language", prefsHandler.GetLanguage)
	prefs.PUT("/language", prefsHandler.SetLanguage)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
