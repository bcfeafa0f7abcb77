package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/isp-billing/internal/application/billing"
	"github.com/jhoicas/isp-billing/internal/application/usecase"
	"github.com/jhoicas/isp-billing/internal/domain/repository"
	"github.com/jhoicas/isp-billing/internal/infrastructure/memory"
	"github.com/jhoicas/isp-billing/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/isp-billing/internal/interfaces/http"
	"github.com/jhoicas/isp-billing/pkg/config"
	"github.com/jhoicas/isp-billing/pkg/logger"
)

// repositories adaptadores de persistencia según DB_DRIVER.
type repositories struct {
	concepts repository.ConceptRepository
	plans    repository.ServicePlanRepository
	clients  repository.ClientRepository
	sites    repository.SiteRepository
	invoices repository.InvoiceRepository
	tx       billing.InvoiceTxRunner
	close    func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("db_driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	repos, err := openRepositories(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("persistencia")
	}
	defer repos.close()

	conceptUC := usecase.NewConceptUseCase(repos.concepts, cfg.Billing.DefaultVATPercent)
	planUC := usecase.NewPlanUseCase(repos.plans, cfg.Billing.DefaultVATPercent)
	clientUC := usecase.NewClientUseCase(repos.clients)
	siteUC := usecase.NewSiteUseCase(repos.sites, repos.clients, repos.plans, repos.concepts)
	termsUC := billing.NewContractTermsUseCase(siteUC)
	issueUC := billing.NewIssueInvoiceUseCase(repos.tx, siteUC, repos.concepts, repos.invoices, cfg.Billing.DueDays)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en /docs solo si el archivo de especificación existe.
	if _, err := os.Stat(cfg.HTTP.SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.HTTP.SwaggerFile,
			Path:     "docs",
			Title:    "ISP Billing API",
		}))
	} else {
		log.Warn().Str("file", cfg.HTTP.SwaggerFile).Msg("swagger deshabilitado")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ConceptUC:     conceptUC,
		PlanUC:        planUC,
		ClientUC:      clientUC,
		SiteUC:        siteUC,
		ContractTerms: termsUC,
		IssueInvoice:  issueUC,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

func openRepositories(ctx context.Context, cfg config.DBConfig) (*repositories, error) {
	if cfg.Driver == config.DriverMemory {
		store := memory.NewStore()
		return &repositories{
			concepts: store.Concepts(),
			plans:    store.Plans(),
			clients:  store.Clients(),
			sites:    store.Sites(),
			invoices: store.Invoices(),
			tx:       store,
			close:    func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if cfg.AutoMigrate {
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
	}
	return &repositories{
		concepts: postgres.NewConceptRepository(pool),
		plans:    postgres.NewServicePlanRepository(pool),
		clients:  postgres.NewClientRepository(pool),
		sites:    postgres.NewSiteRepository(pool),
		invoices: postgres.NewInvoiceRepository(pool),
		tx:       postgres.NewTxRunner(pool),
		close:    pool.Close,
	}, nil
}
