package api

import (
	"errors"
	"time"

	"item-pairs/docs"
	"item-pairs/internal/api/handlers"
	"item-pairs/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

type RouterConfig struct {
	Pair   *handlers.PairHandler
	ML     *handlers.MLHandler
	Health *handlers.HealthHandler
	// BodyLimit caps request bodies in bytes; zero keeps the fiber default.
	BodyLimit    int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

func SetupRouter(cfg RouterConfig, appLogger *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "item-pairs",
		BodyLimit:    cfg.BodyLimit,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept," + middleware.RequestIDHeader,
	}))
	app.Use(middleware.RequestID())
	app.Use(middleware.AccessLog(appLogger))

	// Swagger docs are registered by the docs package init()
	_ = docs.SwaggerInfo
	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Get("/health", cfg.Health.Health)

	items := app.Group("/items")
	items.Post("/compare", cfg.Pair.ComparePair)
	items.Post("/pairs", cfg.Pair.ReconcilePair)
	items.Get("/pairs", cfg.Pair.ListPairs)
	items.Get("/pairs/:pair_id", cfg.Pair.GetPair)
	items.Delete("/pairs/:pair_id", cfg.Pair.DeletePair)

	ml := app.Group("/ml")
	ml.Post("/train", cfg.ML.TrainModel)
	ml.Get("/status", cfg.ML.ModelStatus)

	return app
}
