package router

import (
	"context"

	anlsvc "foodshare-backend/internal/application/analytics"
	authsvc "foodshare-backend/internal/application/auth"
	listsvc "foodshare-backend/internal/application/listings"
	reqsvc "foodshare-backend/internal/application/requests"
	"foodshare-backend/internal/config"
	"foodshare-backend/internal/domain"
	"foodshare-backend/internal/infrastructure/database"
	adminhandler "foodshare-backend/internal/interfaces/handlers/admin"
	authhandler "foodshare-backend/internal/interfaces/handlers/auth"
	listhandler "foodshare-backend/internal/interfaces/handlers/listings"
	reqhandler "foodshare-backend/internal/interfaces/handlers/requests"
	"foodshare-backend/internal/middleware"
	"foodshare-backend/internal/realtime"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// CreateApp builds the Fiber app with global middleware, the realtime hub and
// all route registration. db and rdb may come back nil when the respective URL
// is unset (tests, partial dev setups); API routes need the db.
func CreateApp(cfg *config.Config) (*fiber.App, *gorm.DB, *redis.Client, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage:   true,
		ErrorHandler:            middleware.ErrorHandler,
		EnableTrustedProxyCheck: true,
	})

	app.Use(middleware.CORS(cfg.FrontendURL))
	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())

	var db *gorm.DB
	if cfg.DatabaseURL != "" {
		var err error
		db, err = database.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := database.AutoMigrate(db); err != nil {
			return nil, nil, nil, err
		}
	}

	var rdb *redis.Client
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, nil, nil, err
		}
		rdb = redis.NewClient(opt)
	}
	hub := realtime.NewHub(rdb)

	app.Get("/health", healthHandler(db, rdb))
	app.Use("/ws", realtime.Upgrade())
	app.Get("/ws", realtime.Handler(hub))

	if db != nil {
		validate := validator.New()

		ah := &authhandler.Handlers{
			Service:  &authsvc.Service{DB: db},
			Hub:      hub,
			Validate: validate,
		}
		app.Post("/api/auth/register", ah.Register)
		app.Post("/api/auth/login", ah.Login)

		ls := &listsvc.Service{DB: db}
		lh := &listhandler.Handlers{Service: ls, Hub: hub, Validate: validate}
		app.Get("/api/listings", lh.Available)
		app.Get("/api/listings/donor/:donorId", lh.ByDonor)
		app.Post("/api/listings", middleware.RequireRole(db, domain.RoleDonor), lh.Create)

		rs := &reqsvc.Service{DB: db}
		rh := &reqhandler.Handlers{Service: rs, Hub: hub, Validate: validate}
		app.Get("/api/requests/donor/:donorId", rh.ForDonor)
		app.Get("/api/requests/recipient/:recipientId", rh.ForRecipient)
		app.Post("/api/requests", middleware.RequireRole(db, domain.RoleRecipient), rh.Create)
		app.Put("/api/requests/:id", rh.UpdateStatus)

		adh := &adminhandler.Handlers{
			Service: &anlsvc.Service{DB: db, Listings: ls, Requests: rs},
		}
		app.Get("/api/admin/all-data", adh.AllData)
		app.Get("/api/analytics/summary", adh.Summary)
	}

	return app, db, rdb, nil
}

// healthHandler reports per-dependency status for each configured dependency.
func healthHandler(db *gorm.DB, rdb *redis.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		status := fiber.StatusOK
		dbStatus := "not configured"
		if db != nil {
			dbStatus = "ok"
			if sqlDB, err := db.DB(); err != nil {
				dbStatus = err.Error()
				status = fiber.StatusServiceUnavailable
			} else if err := sqlDB.Ping(); err != nil {
				dbStatus = err.Error()
				status = fiber.StatusServiceUnavailable
			}
		}
		redisStatus := "not configured"
		if rdb != nil {
			redisStatus = "ok"
			if err := rdb.Ping(context.Background()).Err(); err != nil {
				redisStatus = err.Error()
				status = fiber.StatusServiceUnavailable
			}
		}
		body := fiber.Map{"status": "ok", "database": dbStatus, "redis": redisStatus}
		if status != fiber.StatusOK {
			body["status"] = "degraded"
		}
		return c.Status(status).JSON(body)
	}
}
