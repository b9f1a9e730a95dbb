package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/swaggo/swag"

	_ "github.com/jhoicas/taskstore-api/docs"
	appanalytics "github.com/jhoicas/taskstore-api/internal/application/analytics"
	"github.com/jhoicas/taskstore-api/internal/application/auth"
	"github.com/jhoicas/taskstore-api/internal/application/usecase"
	"github.com/jhoicas/taskstore-api/internal/infrastructure/ratelimit"
	"github.com/jhoicas/taskstore-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	UserUC      *usecase.UserUseCase
	TaskUC      *usecase.TaskUseCase
	ProductUC   *usecase.ProductUseCase
	SettingsUC  *usecase.SettingsUseCase
	DashboardUC *appanalytics.DashboardUseCase

	AuthThrottle *ratelimit.KeyedLimiter // nil = sin límite adicional en auth
	Metrics      *Metrics
	Log          *logger.Logger
	ServiceName  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "OK",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"service":   deps.ServiceName,
		})
	})
	if deps.Metrics != nil {
		app.Get("/metrics", deps.Metrics.Handler())
	}
	// Documento OpenAPI registrado por el paquete docs.
	app.Get("/openapi.json", func(c *fiber.Ctx) error {
		doc, err := swag.ReadDoc()
		if err != nil {
			return fiber.ErrNotFound
		}
		c.Type("json")
		return c.SendString(doc)
	})

	api := app.Group("/api")
	requireAuth := AuthMiddleware(deps.AuthUC)
	throttle := AuthThrottle(deps.AuthThrottle, log)

	// Auth (público salvo /me)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, log)
	authGroup.Post("/register", throttle, authHandler.Register)
	authGroup.Post("/login", throttle, authHandler.Login)
	authGroup.Post("/forgot-password", throttle, authHandler.ForgotPassword)
	authGroup.Post("/reset-password", throttle, authHandler.ResetPassword)
	authGroup.Post("/logout", OptionalAuth(deps.AuthUC), authHandler.Logout)
	authGroup.Get("/me", requireAuth, authHandler.Me)

	// Users (solo admin)
	users := api.Group("/users", requireAuth, AdminOnly(log))
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)
	users.Delete("/:id", userHandler.Delete)

	// Tasks (protegido)
	tasks := api.Group("/tasks", requireAuth)
	taskHandler := NewTaskHandler(deps.TaskUC)
	tasks.Get("/", taskHandler.List)
	tasks.Post("/", taskHandler.Create)
	tasks.Get("/:id", taskHandler.GetByID)
	tasks.Put("/:id", taskHandler.Update)
	tasks.Delete("/:id", taskHandler.Delete)
	tasks.Post("/:id/comments", taskHandler.AddComment)

	// Products (lectura protegida; escritura admin o manager)
	products := api.Group("/products", requireAuth)
	productHandler := NewProductHandler(deps.ProductUC)
	writers := AdminOrManager(log)
	products.Get("/", productHandler.List)
	products.Get("/low-stock", productHandler.LowStock)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", writers, productHandler.Create)
	products.Put("/:id", writers, productHandler.Update)
	products.Delete("/:id", writers, productHandler.Delete)

	// Settings (usuario autenticado)
	settings := api.Group("/settings", requireAuth)
	settingsHandler := NewSettingsHandler(deps.SettingsUC)
	settings.Get("/", settingsHandler.Get)
	settings.Put("/", settingsHandler.Update)
	settings.Put("/profile", settingsHandler.UpdateProfile)
	settings.Put("/password", settingsHandler.ChangePassword)

	// Dashboard (admin o manager)
	dashboard := api.Group("/dashboard", requireAuth, AdminOrManager(log))
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard.Get("/summary", dashboardHandler.GetSummary)
}
