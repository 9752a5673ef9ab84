package server

import (
	"net/http"
	"time"

	"github.com/aibeeinyass/rideboss-system/internal/config"
	"github.com/aibeeinyass/rideboss-system/internal/domain"
	"github.com/aibeeinyass/rideboss-system/internal/handler"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"log/slog"
)

// NewRouter wires HTTP routes and middleware.
func NewRouter(cfg config.Config,
	logger *slog.Logger,
	health handler.HealthHandler,
	auth handler.AuthHandler,
	home handler.HomeHandler,
	checkout handler.CheckoutHandler,
	bays handler.BayHandler,
	memberships handler.MembershipHandler,
	catalog handler.CatalogHandler,
	customers handler.CustomerHandler,
	finance handler.FinanceHandler,
	reports handler.ReportHandler,
	notifications handler.NotificationHandler,
	staff handler.StaffHandler,
) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(NewLoggerMiddleware(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(httprate.LimitByIP(200, 1*time.Minute))

	health.RegisterRoutes(r)
	auth.RegisterRoutes(r)
	home.RegisterRoutes(r)
	r.Method("GET", "/metrics", promhttp.Handler())

	r.Group(func(pr chi.Router) {
		pr.Use(AuthMiddleware(cfg.JWTSecret))
		// staff-level (staff/manager)
		pr.Group(func(sr chi.Router) {
			sr.Use(RequireRole(domain.RoleManager, domain.RoleStaff))
			checkout.RegisterRoutes(sr)
			bays.RegisterRoutes(sr)
			catalog.RegisterRoutes(sr)
			customers.RegisterRoutes(sr)
			notifications.RegisterRoutes(sr)
		})
		// manager-level
		pr.Group(func(mr chi.Router) {
			mr.Use(RequireRole(domain.RoleManager))
			memberships.RegisterRoutes(mr)
			catalog.RegisterAdminRoutes(mr)
			finance.RegisterRoutes(mr)
			reports.RegisterRoutes(mr)
			staff.RegisterRoutes(mr)
		})
	})

	return r
}
