package app

import (
	"context"
	"fmt"

	"github.com/andy/invoiceflow/internal/config"
	"github.com/andy/invoiceflow/internal/db"
	"github.com/andy/invoiceflow/internal/domain"
	"github.com/andy/invoiceflow/internal/repository"
	"github.com/andy/invoiceflow/internal/seed"
	"github.com/andy/invoiceflow/internal/service"
)

// App is the dependency injection container for all application components
type App struct {
	Config *config.Config
	DB     *db.DB

	// Account is the reviewer profile from the seed, read-only for the session
	Account domain.Account

	// Repositories
	InvoiceRepo repository.InvoiceRepository
	MethodRepo  repository.PaymentMethodRepository

	// Services
	InvoiceService   service.InvoiceService
	PaymentService   service.PaymentService
	DashboardService service.DashboardService
}

// New creates a new App instance from the config at configPath
// (the default path when empty), initializing all dependencies.
// It handles:
// 1. Loading config
// 2. Opening the in-memory session database
// 3. Seeding invoices and payment methods
// 4. Creating repositories and services
func New(ctx context.Context, configPath string) (*App, error) {
	if configPath == "" {
		configPath = config.DefaultConfigPath()
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return NewWithConfig(ctx, cfg)
}

// NewWithConfig creates an App with a provided config (useful for testing)
func NewWithConfig(ctx context.Context, cfg *config.Config) (*App, error) {
	data, err := seed.Load(cfg.Session.SeedFile)
	if err != nil {
		return nil, err
	}

	return NewWithSeed(ctx, cfg, data)
}

// NewWithSeed creates an App whose session starts from data
func NewWithSeed(ctx context.Context, cfg *config.Config, data *seed.Data) (*App, error) {
	database, err := db.OpenSession()
	if err != nil {
		return nil, fmt.Errorf("failed to open session database: %w", err)
	}

	// Create repositories
	invoiceRepo := repository.NewInvoiceRepo(database)
	methodRepo := repository.NewPaymentMethodRepo(database)

	if err := loadSeed(ctx, invoiceRepo, methodRepo, data); err != nil {
		database.Close()
		return nil, err
	}

	// Create services with their dependencies
	invoiceService := service.NewInvoiceService(invoiceRepo, service.InvoiceOptions{
		HoldUnverified: cfg.Review.HoldUnverified,
	})
	paymentService := service.NewPaymentService(methodRepo)
	dashboardService := service.NewDashboardService(invoiceRepo, methodRepo, cfg.Dashboard.RecentCount)

	return &App{
		Config:           cfg,
		DB:               database,
		Account:          data.Account,
		InvoiceRepo:      invoiceRepo,
		MethodRepo:       methodRepo,
		InvoiceService:   invoiceService,
		PaymentService:   paymentService,
		DashboardService: dashboardService,
	}, nil
}

// Close discards the session
func (a *App) Close() error {
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}

// loadSeed writes the initial collection and registry into the session store
func loadSeed(
	ctx context.Context,
	invoiceRepo repository.InvoiceRepository,
	methodRepo repository.PaymentMethodRepository,
	data *seed.Data,
) error {
	for n := range data.Invoices {
		if err := invoiceRepo.Create(ctx, &data.Invoices[n]); err != nil {
			return fmt.Errorf("failed to seed invoices: %w", err)
		}
	}

	if err := methodRepo.ReplaceAll(ctx, data.PaymentMethods); err != nil {
		return fmt.Errorf("failed to seed payment methods: %w", err)
	}

	return nil
}
