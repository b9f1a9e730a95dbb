package http

import (
	"os"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/taskstore-api/internal/application/dto"
	"github.com/jhoicas/taskstore-api/pkg/logger"
)

// ServerConfig opciones del servidor Fiber.
type ServerConfig struct {
	AppName     string
	Production  bool
	FrontendURL string

	// Ventana fija por IP sobre /api. Storage nil = memoria del proceso.
	RateLimitMax    int
	RateLimitWindow time.Duration
	LimiterStorage  fiber.Storage

	DocsEnabled  bool
	DocsFilePath string
}

// NewApp crea la app Fiber con el ErrorHandler y la cadena global:
// recover → helmet → cors → métricas → log de peticiones → límite por IP (/api).
func NewApp(cfg ServerConfig, metrics *Metrics, log *logger.Logger) *fiber.App {
	if log == nil {
		log = logger.Nop()
	}
	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    1 << 20,
		ErrorHandler: NewErrorHandler(cfg.Production, log),
	})

	app.Use(recover.New(recover.Config{EnableStackTrace: !cfg.Production}))
	app.Use(helmet.New())
	origins := cfg.FrontendURL
	if origins == "" {
		origins = "*"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		// fiber no admite credenciales con origen comodín.
		AllowCredentials: origins != "*",
	}))
	if metrics != nil {
		app.Use(metrics.Middleware())
	}
	app.Use(RequestLogger(log))

	if cfg.RateLimitMax > 0 {
		window := cfg.RateLimitWindow
		if window <= 0 {
			window = 15 * time.Minute
		}
		app.Use("/api", limiter.New(limiter.Config{
			Max:        cfg.RateLimitMax,
			Expiration: window,
			Storage:    cfg.LimiterStorage,
			LimitReached: func(c *fiber.Ctx) error {
				return c.Status(fiber.StatusTooManyRequests).
					JSON(dto.Fail("Too many requests from this IP, please try again later."))
			},
		}))
	}

	if cfg.DocsEnabled && cfg.DocsFilePath != "" {
		if _, err := os.Stat(cfg.DocsFilePath); err == nil {
			// Swagger UI: http://localhost:<port>/docs
			app.Use(swagger.New(swagger.Config{
				BasePath: "/",
				FilePath: cfg.DocsFilePath,
				Path:     "docs",
				Title:    cfg.AppName + " API",
			}))
		} else {
			log.Warn().Str("file", cfg.DocsFilePath).Msg("swagger.json no encontrado; /docs deshabilitado")
		}
	}
	return app
}
