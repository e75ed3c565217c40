package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"

	"github.com/jhoicas/catalog-api/internal/application/catalog"
	"github.com/jhoicas/catalog-api/internal/infrastructure/metrics"
	"github.com/jhoicas/catalog-api/pkg/jwt"
)

// ServerOptions opciones del servidor Fiber.
type ServerOptions struct {
	AppName string
	Logger  zerolog.Logger
	Metrics *metrics.Metrics // nil deshabilita /metrics y la instrumentación HTTP
}

// NewServer construye la app Fiber con los middlewares transversales, /health y /metrics.
func NewServer(opts ServerOptions) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      opts.AppName,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(RequestLogger(opts.Logger))
	if opts.Metrics != nil {
		app.Use(opts.Metrics.Middleware())
		app.Get("/metrics", opts.Metrics.Handler())
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": opts.AppName})
	})
	return app
}

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CategoryUC *catalog.CategoryUseCase
	ProductUC  *catalog.ProductUseCase
	// JWTSecret vacío deja abiertas las rutas de escritura.
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Escritura: requiere Bearer Token con rol admin cuando hay secret configurado.
	var guard []fiber.Handler
	if deps.JWTSecret != "" {
		guard = []fiber.Handler{AuthMiddleware(deps.JWTSecret), RequireRole(jwt.RoleAdmin)}
	}
	write := func(h fiber.Handler) []fiber.Handler {
		return append(append([]fiber.Handler{}, guard...), h)
	}

	// Categories
	categories := api.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Post("/", write(categoryHandler.Create)...)
	categories.Get("/parents", categoryHandler.ListRoots)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Put("/:id", write(categoryHandler.Update)...)
	categories.Delete("/:id", write(categoryHandler.Delete)...)
	categories.Get("/:id/children", categoryHandler.ListChildren)
	categories.Get("/:id/tree", categoryHandler.Tree)

	// Products
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", write(productHandler.Create)...)
	products.Get("/", productHandler.ListByCategory)
	products.Get("/:id", productHandler.GetByID)
	products.Get("/:id/full", productHandler.GetFull)
	products.Get("/:id/sheet", productHandler.Sheet)
	products.Put("/:id", write(productHandler.Update)...)
	products.Delete("/:id", write(productHandler.Delete)...)
}
