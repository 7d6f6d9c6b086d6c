// @title          Sistema Permuta API
// @version        1.0
// @description    Gestión de permutas entre sectores: usuarios, sectores, permutas, mensajes, actividad y dashboard.
// @BasePath       /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/jackc/pgx/v5/pgxpool"

	_ "github.com/jhoicas/Permuta-api/docs"
	appanalytics "github.com/jhoicas/Permuta-api/internal/application/analytics"
	"github.com/jhoicas/Permuta-api/internal/application/auth"
	"github.com/jhoicas/Permuta-api/internal/application/permuta"
	"github.com/jhoicas/Permuta-api/internal/application/usecase"
	"github.com/jhoicas/Permuta-api/internal/domain/repository"
	"github.com/jhoicas/Permuta-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/Permuta-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Permuta-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Permuta-api/internal/infrastructure/ratelimit"
	"github.com/jhoicas/Permuta-api/internal/infrastructure/scheduler"
	httpRouter "github.com/jhoicas/Permuta-api/internal/interfaces/http"
	"github.com/jhoicas/Permuta-api/pkg/config"
	"github.com/jhoicas/Permuta-api/pkg/logger"
)

// adapters puertos de persistencia ya resueltos para el driver elegido.
type adapters struct {
	users       repository.UserRepository
	sectors     repository.SectorRepository
	permutas    repository.PermutaRepository
	messages    repository.MessageRepository
	activities  repository.ActivityRepository
	dashboard   repository.DashboardRepository
	credentials repository.AdminCredentialRepository
	tx          repository.TxRunner
}

func postgresAdapters(pool *pgxpool.Pool) adapters {
	return adapters{
		users:       postgres.NewUserRepository(pool),
		sectors:     postgres.NewSectorRepository(pool),
		permutas:    postgres.NewPermutaRepository(pool),
		messages:    postgres.NewMessageRepository(pool),
		activities:  postgres.NewActivityRepository(pool),
		dashboard:   postgres.NewDashboardRepository(pool),
		credentials: postgres.NewAdminCredentialRepository(pool),
		tx:          postgres.NewTxRunner(pool),
	}
}

func memoryAdapters() adapters {
	r := memory.NewRepos()
	return adapters{
		users:       r.Users,
		sectors:     r.Sectors,
		permutas:    r.Permutas,
		messages:    r.Messages,
		activities:  r.Activities,
		dashboard:   r.Dashboard,
		credentials: r.Credentials,
		tx:          r.Tx,
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	if err := run(cfg, log); err != nil {
		log.Error().Err(err).Msg("la aplicación terminó con error")
		os.Exit(1)
	}
}

// run arranca el servidor y bloquea hasta recibir SIGINT/SIGTERM. Los errores de
// arranque se devuelven para que los defers (pool, Redis, Sentry) se ejecuten.
func run(cfg *config.Config, log *logger.Logger) (err error) {
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	// Sentry solo si hay DSN configurado.
	if cfg.Sentry.DSN != "" {
		if initErr := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.Sentry.DSN,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.App.Env,
		}); initErr != nil {
			log.Error().Err(initErr).Msg("inicializar Sentry")
		} else {
			defer func() {
				if err != nil {
					sentry.CaptureException(err)
				}
				sentry.Flush(2 * time.Second)
			}()
		}
	}

	ctx := context.Background()

	var repos adapters
	switch cfg.Storage.Driver {
	case config.StorageDriverMemory:
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
		repos = memoryAdapters()
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		defer pool.Close()
		if cfg.DB.AutoMigrate {
			applied, err := postgres.Migrate(ctx, pool)
			if err != nil {
				return fmt.Errorf("migraciones: %w", err)
			}
			log.Info().Int("applied", applied).Msg("migraciones aplicadas")
		}
		repos = postgresAdapters(pool)
	}

	authUC := auth.NewAuthUseCase(repos.users, repos.credentials, cfg.Admin.Username, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	seeded, err := authUC.SeedAdmin(ctx, cfg.Admin.Password)
	if err != nil {
		return fmt.Errorf("sembrar credencial de administrador: %w", err)
	}
	if seeded {
		log.Info().Str("username", cfg.Admin.Username).Msg("credencial de administrador creada")
	}

	userUC := usecase.NewUserUseCase(repos.users)
	sectorUC := usecase.NewSectorUseCase(repos.sectors, repos.tx)
	messageUC := usecase.NewMessageUseCase(repos.messages)
	activityUC := usecase.NewActivityUseCase(repos.activities)
	dashboardUC := appanalytics.NewDashboardUseCase(repos.dashboard)

	// PDF: comprobante de la permuta
	receiptGenerator := infrapdf.NewReceiptGenerator(cfg.App.Name)
	permutaUC := permuta.NewUseCase(repos.permutas, repos.users, repos.sectors, repos.tx, receiptGenerator)

	// Limitador del login admin: Redis si está configurado, memoria del proceso si no.
	var limiterStorage fiber.Storage
	if cfg.Redis.Enabled() {
		rdb, err := ratelimit.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("Redis no disponible; limitador en memoria")
		} else {
			storage := ratelimit.NewRedisStorage(rdb, "")
			defer storage.Close()
			limiterStorage = storage
		}
	}

	jobs := scheduler.New(log)
	if err := jobs.AddAccountExpiry(cfg.Jobs.AccountExpiryCron, userUC); err != nil {
		return fmt.Errorf("programar vencimiento de planes: %w", err)
	}
	jobs.Start()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler(log),
	})
	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))
	app.Use(cors.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Sistema Permuta API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		UserUC:       userUC,
		SectorUC:     sectorUC,
		PermutaUC:    permutaUC,
		MessageUC:    messageUC,
		ActivityUC:   activityUC,
		DashboardUC:  dashboardUC,
		LoginLimiter: httpRouter.LoginRateLimiter(cfg.RateLimit.Max, cfg.RateLimit.Window, limiterStorage),
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
	jobs.Stop(shutdownCtx)

	log.Info().Msg("aplicación detenida")
	return nil
}
