package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/rectificadora-api/internal/application/auth"
	"github.com/jhoicas/rectificadora-api/internal/application/taller"
	"github.com/jhoicas/rectificadora-api/internal/domain/invoice"
	"github.com/jhoicas/rectificadora-api/internal/infrastructure/excel"
	"github.com/jhoicas/rectificadora-api/internal/infrastructure/mail"
	"github.com/jhoicas/rectificadora-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/rectificadora-api/internal/infrastructure/pdf"
	"github.com/jhoicas/rectificadora-api/internal/infrastructure/pdfstore"
	"github.com/jhoicas/rectificadora-api/internal/infrastructure/photo"
	"github.com/jhoicas/rectificadora-api/internal/infrastructure/postgres"
	"github.com/jhoicas/rectificadora-api/internal/infrastructure/whatsapp"
	httpRouter "github.com/jhoicas/rectificadora-api/internal/interfaces/http"
	"github.com/jhoicas/rectificadora-api/pkg/config"
	"github.com/jhoicas/rectificadora-api/pkg/logger"
)

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
		Str("storage", cfg.DB.Storage).
		Msg("iniciando aplicación")

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	taxRate, err := decimal.NewFromString(cfg.Taller.TasaIVA)
	if err != nil {
		log.Fatal().Err(err).Str("tasa", cfg.Taller.TasaIVA).Msg("TALLER_TASA_IVA inválida")
	}
	agg := invoice.NewAggregator(invoice.DefaultCatalog(), taxRate)

	var (
		repos     taller.Repos
		txRunner  taller.IntakeTxRunner
		transient func(error) bool
	)
	switch cfg.DB.Storage {
	case config.StorageMemory:
		store := memory.NewStore()
		repos = taller.Repos{
			Motors:    store.Motors(),
			Works:     store.WorkEntries(),
			Parts:     store.PartEntries(),
			Checklist: store.Checklist(),
		}
		txRunner = memory.NewTxRunner(store)
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB, cfg.Retry.Policy())
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()

		if cfg.DB.Migrate {
			applied, err := postgres.Migrate(ctx, pool)
			if err != nil {
				log.Fatal().Err(err).Msg("migraciones")
			}
			log.Info().Strs("aplicadas", applied).Msg("migraciones al día")
		}
		repos = taller.Repos{
			Motors:    postgres.NewMotorRepository(pool),
			Works:     postgres.NewWorkEntryRepository(pool),
			Parts:     postgres.NewPartEntryRepository(pool),
			Checklist: postgres.NewChecklistRepository(pool),
		}
		txRunner = postgres.NewTxRunner(pool)
		transient = postgres.IsTransient
	}

	fetcher := taller.NewMotorFetcher(repos.Motors, cfg.Retry.Policy(), transient, log)

	archive, err := pdfstore.New(cfg.Taller.ExportDir, cfg.Taller.ExportTTL, log)
	if err != nil {
		log.Fatal().Err(err).Str("dir", cfg.Taller.ExportDir).Msg("directorio de exportaciones")
	}
	go archive.RunJanitor(ctx, cfg.Taller.ExportCleanup)

	// PDF del motor, con el logo del taller si está configurado
	var pdfOpts []infrapdf.Option
	if cfg.Taller.LogoPath != "" {
		logo, err := os.ReadFile(cfg.Taller.LogoPath)
		if err != nil {
			log.Warn().Err(err).Str("path", cfg.Taller.LogoPath).Msg("logo no disponible, se omite")
		} else {
			png := strings.EqualFold(filepath.Ext(cfg.Taller.LogoPath), ".png")
			pdfOpts = append(pdfOpts, infrapdf.WithLogo(logo, png))
		}
	}

	mailer := mail.NewMailer(cfg.SMTP)
	if !mailer.Enabled() {
		log.Info().Msg("SMTP sin configurar: envío de PDFs por correo deshabilitado")
	}

	authUC := auth.NewAuthUseCase(
		auth.Credentials{Usuario: cfg.Auth.User, PasswordHash: cfg.Auth.PasswordHash},
		auth.JWTConfig{
			Secret:     cfg.JWT.Secret,
			ExpMinutes: cfg.JWT.Expiration,
			Issuer:     cfg.JWT.Issuer,
		},
	)
	motorUC := taller.NewMotorUseCase(repos, txRunner, fetcher, photo.NewProcessor(), agg)
	exportUC := taller.NewExportUseCase(
		repos, fetcher, agg,
		infrapdf.NewMotorReportGenerator(pdfOpts...),
		archive,
		whatsapp.NewLinker(cfg.Taller.CodigoPais),
		mailer,
		cfg.Taller.Nombre,
		log,
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    cfg.HTTP.BodyLimit,
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(logger.FiberMiddleware(log))

	// Swagger UI en local: http://localhost:<port>/docs
	if cfg.Swagger {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: "./docs/swagger.json",
			Path:     "docs",
			Title:    "Rectificadora API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "storage": cfg.DB.Storage})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		MotorUC:     motorUC,
		WorkUC:      taller.NewWorkUseCase(repos, fetcher),
		PartUC:      taller.NewPartUseCase(repos, fetcher),
		ChecklistUC: taller.NewChecklistUseCase(repos, fetcher, agg),
		SummaryUC:   taller.NewSummaryUseCase(repos, fetcher, agg),
		ExportUC:    exportUC,
		HistoryUC:   taller.NewHistoryUseCase(repos, agg, excel.NewHistoryExporter()),
		Mailer:      mailer,
		AuthEnabled: cfg.Auth.Enabled,
		AnonUser:    cfg.Auth.User,
		JWTSecret:   cfg.JWT.Secret,
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
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
