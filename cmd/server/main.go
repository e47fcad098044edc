package main

import (
	"fmt"
	"os"

	"sndbilling/internal/config"
	"sndbilling/internal/erpnext"
	"sndbilling/internal/handler"
	"sndbilling/internal/logger"
	"sndbilling/internal/repository/postgres"
	"sndbilling/internal/router"
	"sndbilling/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log := logger.New(cfg.Log)

	db, err := postgres.NewDB(cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Repositories
	rentalRepo := postgres.NewRentalRepo(db)
	customerRepo := postgres.NewCustomerRepo(db)
	invoiceRepo := postgres.NewInvoiceRepo(db)
	timesheetRepo := postgres.NewTimesheetRepo(db)

	// Accounting backend client; missing credentials abort startup.
	erp, err := erpnext.NewClient(cfg.ERPNext, logger.WithComponent(log, "erpnext"))
	if err != nil {
		return fmt.Errorf("failed to initialize erpnext client: %w", err)
	}

	// Services
	invoiceSvc := service.NewInvoiceService(
		rentalRepo, customerRepo, invoiceRepo, timesheetRepo, erp,
		cfg.Billing, logger.WithComponent(log, "invoice"),
	)
	statementSvc := service.NewStatementService(rentalRepo, invoiceRepo, cfg.Billing)

	// Handlers
	invoiceH := handler.NewInvoiceHandler(invoiceSvc)
	statementH := handler.NewStatementHandler(statementSvc)
	healthH := handler.NewHealthHandler(db, logger.WithComponent(log, "health"))

	r := router.Setup(invoiceH, statementH, healthH, logger.WithComponent(log, "http"))

	log.Info().Str("port", cfg.Server.Port).Msg("server starting")
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}
