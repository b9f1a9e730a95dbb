// @title        TaskStore API
// @version      1.0
// @description  API de tareas, catálogo de productos, usuarios y preferencias con autenticación JWT.
// @BasePath     /
// @securityDefinitions.apikey Bearer
// @in                         header
// @name                       Authorization
// @description                Escribe "Bearer" seguido de un espacio y el token JWT.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"

	appanalytics "github.com/jhoicas/taskstore-api/internal/application/analytics"
	"github.com/jhoicas/taskstore-api/internal/application/auth"
	"github.com/jhoicas/taskstore-api/internal/application/seed"
	"github.com/jhoicas/taskstore-api/internal/application/usecase"
	"github.com/jhoicas/taskstore-api/internal/domain/repository"
	"github.com/jhoicas/taskstore-api/internal/infrastructure/mail"
	"github.com/jhoicas/taskstore-api/internal/infrastructure/memory"
	"github.com/jhoicas/taskstore-api/internal/infrastructure/postgres"
	"github.com/jhoicas/taskstore-api/internal/infrastructure/ratelimit"
	httpRouter "github.com/jhoicas/taskstore-api/internal/interfaces/http"
	"github.com/jhoicas/taskstore-api/pkg/config"
	"github.com/jhoicas/taskstore-api/pkg/logger"
)

type repositories struct {
	users     repository.UserRepository
	tasks     repository.TaskRepository
	products  repository.ProductRepository
	analytics repository.AnalyticsRepository
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
	if cfg.UsingDevSecret() {
		log.Warn().Msg("JWT_SECRET no definido; usando secreto de desarrollo")
	}

	ctx := context.Background()

	var (
		repos repositories
		pool  *pgxpool.Pool
	)
	switch cfg.DB.Driver {
	case "memory":
		store := memory.NewStore()
		repos = repositories{store.Users(), store.Tasks(), store.Products(), store.Analytics()}
	default:
		if cfg.DB.Migrate {
			if err := postgres.RunMigrations(cfg.DB.ConnectionString()); err != nil {
				log.Fatal().Err(err).Msg("migraciones")
			}
			log.Info().Msg("migraciones aplicadas")
		}
		pool, err = postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		repos = repositories{
			users:     postgres.NewUserRepository(pool),
			tasks:     postgres.NewTaskRepository(pool),
			products:  postgres.NewProductRepository(pool),
			analytics: postgres.NewAnalyticsRepository(pool),
		}
	}

	if cfg.Seed.DemoAdmin {
		created, err := seed.EnsureDemoAdmin(ctx, repos.users, seed.DemoAdmin{
			Email:    cfg.Seed.DemoAdminEmail,
			Password: cfg.Seed.DemoAdminPassword,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("seed admin demo")
		}
		if created {
			log.Info().Str("email", cfg.Seed.DemoAdminEmail).Msg("admin demo creado")
		}
	}

	// Storage del limitador global: Redis si está configurado, si no memoria del proceso.
	var (
		limiterStorage fiber.Storage
		redisStorage   *ratelimit.RedisStorage
	)
	if cfg.Redis.URL != "" {
		redisStorage, err = ratelimit.NewRedisStorage(ctx, cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		limiterStorage = redisStorage
	}

	authThrottle := ratelimit.NewKeyedLimiter(ratelimit.KeyedConfig{
		PerMinute: cfg.RateLimit.AuthPerMinute,
		Burst:     cfg.RateLimit.AuthBurst,
	})
	metrics := httpRouter.NewDefaultMetrics()
	mailer := mail.NewLogMailer(cfg.App.FrontendURL, !cfg.App.IsProduction(), log)

	authUC := auth.NewAuthUseCase(repos.users, mailer, auth.JWTConfig{
		Secret:            cfg.JWT.Secret,
		ExpMinutes:        cfg.JWT.Expiration,
		Issuer:            cfg.JWT.Issuer,
		ResetTokenMinutes: cfg.JWT.ResetTokenMinutes,
	}, log)

	app := httpRouter.NewApp(httpRouter.ServerConfig{
		AppName:         cfg.App.Name,
		Production:      cfg.App.IsProduction(),
		FrontendURL:     cfg.App.FrontendURL,
		RateLimitMax:    cfg.RateLimit.Max,
		RateLimitWindow: cfg.RateLimit.Window(),
		LimiterStorage:  limiterStorage,
		DocsEnabled:     cfg.App.DocsEnabled,
		DocsFilePath:    "./docs/swagger.json",
	}, metrics, log)

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		UserUC:       usecase.NewUserUseCase(repos.users),
		TaskUC:       usecase.NewTaskUseCase(repos.tasks, repos.users),
		ProductUC:    usecase.NewProductUseCase(repos.products),
		SettingsUC:   usecase.NewSettingsUseCase(repos.users),
		DashboardUC:  appanalytics.NewDashboardUseCase(repos.analytics),
		AuthThrottle: authThrottle,
		Metrics:      metrics,
		Log:          log,
		ServiceName:  cfg.App.Name,
	})

	go func() {
		log.Info().Str("addr", cfg.HTTP.Addr()).Msg("servidor HTTP escuchando")
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
	authThrottle.Stop()
	if redisStorage != nil {
		if err := redisStorage.Close(); err != nil {
			log.Error().Err(err).Msg("cerrar Redis")
		}
	}
	if pool != nil {
		pool.Close()
	}

	log.Info().Msg("aplicación detenida")
}
