package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/aibeeinyass/rideboss-system/internal/config"
	"github.com/aibeeinyass/rideboss-system/internal/db"
	"github.com/aibeeinyass/rideboss-system/internal/handler"
	"github.com/aibeeinyass/rideboss-system/internal/notify"
	"github.com/aibeeinyass/rideboss-system/internal/repository"
	"github.com/aibeeinyass/rideboss-system/internal/server"
	"github.com/aibeeinyass/rideboss-system/internal/service"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("config load failed", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pg, err := db.New(ctx, cfg)
	if err != nil {
		logger.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer pg.Close()

	if err := pg.Migrate(ctx); err != nil {
		logger.Error("migration failed", "error", err)
		os.Exit(1)
	}

	// Repositories.
	checkoutRepo := repository.CheckoutRepository{DB: pg, Currency: cfg.DefaultCurrency}
	saleRepo := repository.SaleRepository{DB: pg}
	bayRepo := repository.BayRepository{DB: pg}
	membershipRepo := repository.MembershipRepository{DB: pg, Currency: cfg.DefaultCurrency}
	catalogRepo := repository.CatalogRepository{DB: pg, Currency: cfg.DefaultCurrency}
	customerRepo := repository.CustomerRepository{DB: pg}
	userRepo := repository.UserRepository{DB: pg}
	expenseRepo := repository.ExpenseRepository{DB: pg, Currency: cfg.DefaultCurrency}
	notificationRepo := repository.NotificationRepository{DB: pg}
	reportRepo := repository.ReportRepository{DB: pg}

	if err := catalogRepo.SeedDefaults(ctx); err != nil {
		logger.Error("catalog seed failed", "error", err)
		os.Exit(1)
	}

	// Shared infrastructure.
	locks := service.NewKeyLocks()
	whatsapp := notify.WhatsApp{BusinessName: cfg.BusinessName}

	// Services.
	authSvc := &service.AuthService{Config: cfg, Users: userRepo, Logger: logger}
	checkoutSvc := &service.CheckoutService{
		Store:   checkoutRepo,
		Catalog: catalogRepo,
		Staff:   userRepo,
		Events:  notificationRepo,
		Locks:   locks,
		Logger:  logger,
	}
	baySvc := &service.BayService{
		Bays:      bayRepo,
		Customers: customerRepo,
		Staff:     userRepo,
		Events:    notificationRepo,
		Locks:     locks,
		WhatsApp:  whatsapp,
		Overdue:   cfg.OverdueThreshold,
		Logger:    logger,
	}
	membershipSvc := &service.MembershipService{
		Store:     membershipRepo,
		Customers: customerRepo,
		Events:    notificationRepo,
		Locks:     locks,
		WhatsApp:  whatsapp,
		Logger:    logger,
	}
	reportSvc := &service.ReportService{Store: reportRepo}

	router := server.NewRouter(cfg, logger,
		handler.HealthHandler{DB: pg},
		handler.AuthHandler{Service: authSvc},
		handler.HomeHandler{BusinessName: cfg.BusinessName},
		handler.CheckoutHandler{Service: checkoutSvc, Sales: saleRepo},
		handler.BayHandler{Service: baySvc},
		handler.MembershipHandler{Service: membershipSvc},
		handler.CatalogHandler{Repo: catalogRepo},
		handler.CustomerHandler{Repo: customerRepo, WhatsApp: whatsapp},
		handler.FinanceHandler{Expenses: expenseRepo, Sales: saleRepo},
		handler.ReportHandler{Service: reportSvc},
		handler.NotificationHandler{Repo: notificationRepo},
		handler.StaffHandler{Repo: userRepo, Events: notificationRepo},
	)

	if err := server.Start(ctx, cfg, router, logger); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
