package router

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tableside/api/internal/config"
	"github.com/tableside/api/internal/database"
	"github.com/tableside/api/internal/enum"
	"github.com/tableside/api/internal/events"
	"github.com/tableside/api/internal/feed"
	"github.com/tableside/api/internal/handler"
	mw "github.com/tableside/api/internal/middleware"
	"github.com/tableside/api/internal/service"
	"github.com/tableside/api/internal/ws"
	"go.uber.org/zap"
)

// New creates a Chi router with all application routes wired up.
// Customer endpoints are public; staff endpoints require a JWT and a role.
// publisher receives order events after each committed write. Open order
// streams end when ctx is done.
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger, queries *database.Queries, pool *pgxpool.Pool, hub *ws.Hub, publisher events.Publisher) chi.Router {
	r := chi.NewRouter()

	// Standard middleware
	r.Use(middleware.RequestID)
	r.Use(mw.RequestLogger(logger))
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300, // 5 minutes
	}))

	loc, err := cfg.Location()
	if err != nil {
		logger.Warn("falling back to UTC for sales windows", zap.Error(err))
		loc = time.UTC
	}

	orderService := service.NewOrderService(pool, queries, func(db database.DBTX) service.OrderStore {
		return database.New(db)
	}, publisher)
	salesService := service.NewSalesService(pool, func(db database.DBTX) service.SalesStore {
		return database.New(db)
	}, loc)

	authHandler := handler.NewAuthHandler(queries, cfg.JWTSecret, logger)
	orderHandler := handler.NewOrderHandler(orderService, queries, logger)
	paymentHandler := handler.NewPaymentHandler(orderService, queries, logger)
	tableHandler := handler.NewTableHandler(queries, logger)
	categoryHandler := handler.NewCategoryHandler(queries, logger)
	menuHandler := handler.NewMenuHandler(queries, logger)
	salesHandler := handler.NewSalesHandler(salesService, logger)
	feedHandler := feed.NewHandler(queries, cfg.FeedInterval, cfg.FeedLimit, logger).StopOn(ctx.Done())

	// Public routes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`)) //nolint:errcheck
	})

	authHandler.RegisterRoutes(r)
	orderHandler.RegisterRoutes(r)

	// Catalog: public reads, admin writes on the same paths
	adminOnly := func(r chi.Router, register func(chi.Router)) {
		r.Group(func(r chi.Router) {
			r.Use(mw.Authenticate(cfg.JWTSecret))
			r.Use(mw.RequireRole(enum.UserRoleAdmin))
			register(r)
		})
	}
	r.Route("/tables", func(r chi.Router) {
		tableHandler.RegisterRoutes(r)
		adminOnly(r, tableHandler.RegisterAdminRoutes)
	})
	r.Route("/categories", func(r chi.Router) {
		categoryHandler.RegisterRoutes(r)
		adminOnly(r, categoryHandler.RegisterAdminRoutes)
	})
	r.Route("/menus", func(r chi.Router) {
		menuHandler.RegisterRoutes(r)
		adminOnly(r, menuHandler.RegisterAdminRoutes)
	})

	// Customer WebSocket, one room per table
	r.Method(http.MethodGet, "/ws/tables/{tableId}", ws.NewHandler(hub, queries, cfg.AllowedOrigins))

	staffRoles := []string{enum.UserRoleAdmin, enum.UserRoleKitchen}

	// EventSource cannot set headers, so the stream also takes ?token=
	r.Group(func(r chi.Router) {
		r.Use(mw.AuthenticateStream(cfg.JWTSecret))
		r.Use(mw.RequireRole(staffRoles...))
		r.Method(http.MethodGet, "/orders/stream", feedHandler)
	})

	// Protected routes (require authentication)
	r.Group(func(r chi.Router) {
		r.Use(mw.Authenticate(cfg.JWTSecret))

		// Kitchen and admin
		r.Group(func(r chi.Router) {
			r.Use(mw.RequireRole(staffRoles...))
			orderHandler.RegisterStaffRoutes(r)
			paymentHandler.RegisterStaffRoutes(r)
		})

		// Admin only
		r.Group(func(r chi.Router) {
			r.Use(mw.RequireRole(enum.UserRoleAdmin))
			orderHandler.RegisterAdminRoutes(r)
			paymentHandler.RegisterRoutes(r)
			r.Route("/sales", salesHandler.RegisterRoutes)
		})
	})

	logger.Debug("router initialized")
	return r
}
