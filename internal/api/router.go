package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/revpay/reimbursement-system/internal/api/handler"
	"github.com/revpay/reimbursement-system/internal/api/middleware"
	"github.com/revpay/reimbursement-system/internal/core/domain"
	"github.com/revpay/reimbursement-system/internal/core/service"
	mongodb "github.com/revpay/reimbursement-system/internal/infrastructure/db/mongo"
	redisdb "github.com/revpay/reimbursement-system/internal/infrastructure/db/redis"
	"github.com/revpay/reimbursement-system/internal/infrastructure/http/handlers"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, jwtSecret string, tokenTTL time.Duration, audit service.AuditSink, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("reimbursement"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	reimbRepo := mongodb.NewReimbursementRepository(db)
	sessions := redisdb.NewSessionStore(rdb)

	authService := service.NewAuthService(userRepo, sessions, jwtSecret, tokenTTL)
	userService := service.NewUserService(userRepo, log)
	reimbService := service.NewReimbursementService(reimbRepo, userRepo, audit, log)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	reimbHandler := handler.NewReimbursementHandler(reimbService)

	authMW := middleware.Auth(jwtSecret, sessions)
	managerOnly := middleware.RBAC(domain.RoleManager)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout, authMW)
	e.GET("/auth/session", authHandler.Session, authMW)

	// --- Reimbursement routes ---
	r := e.Group("/v1/reimbursements", authMW)
	r.GET("/self", reimbHandler.ListSelf)
	r.POST("/self", reimbHandler.CreateSelf)
	r.GET("/user/:user_id", reimbHandler.ListForUser)
	r.POST("/user/:user_id", reimbHandler.CreateForUser, managerOnly)
	r.GET("", reimbHandler.ListAll, managerOnly)
	r.GET("/pending", reimbHandler.ListPending, managerOnly)
	r.PATCH("/:id", reimbHandler.Update)
	r.PATCH("/:id/resolve", reimbHandler.Resolve, managerOnly)

	// --- User routes (manager only) ---
	u := e.Group("/v1/users", authMW, managerOnly)
	u.GET("", userHandler.List)
	u.PATCH("/:user_id/role", userHandler.UpdateRole)
	u.DELETE("/:user_id", userHandler.Delete)

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)

	// --- Observability & docs ---
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
