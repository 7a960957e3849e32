package main

import (
	"context"
	"fmt"
	"log"
	"time"

	common_api "attendance-sync/internal/common/api"
	"attendance-sync/internal/config"
	"attendance-sync/internal/database"
	"attendance-sync/internal/features/attendance"
	"attendance-sync/internal/features/export"
	"attendance-sync/internal/features/schedule"
	sync_feature "attendance-sync/internal/features/sync"
	"attendance-sync/internal/features/system"
	"attendance-sync/internal/logger"
	"attendance-sync/internal/middleware"
	"attendance-sync/internal/smartsheet"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// NewFiberServer creates a new Fiber app instance
func NewFiberServer() *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(middleware.CORSMiddleware())

	return app
}

// NewDisplayLocation loads the timezone used for schedules and for the
// display-formatted dates written to the sheet.
func NewDisplayLocation(cfg *config.Config) (*time.Location, error) {
	return time.LoadLocation(cfg.Timezone)
}

// AsRoute is a helper function to reduce boilerplate.
// It tags the constructor so Fx knows to add it to the "routes" group.
func AsRoute(f any) any {
	return fx.Annotate(
		f,
		fx.As(new(common_api.Route)),
		fx.ResultTags(`group:"routes"`),
	)
}

// RegisterAllRoutes takes the group "routes" (slice of interfaces)
// and calls Setup() on each one.
func RegisterAllRoutes(app *fiber.App, routes []common_api.Route) {
	for _, route := range routes {
		route.Setup(app)
	}
	log.Printf("Registered %d routes\n", len(routes))
}

// RegisterAllRoutesWithAnnotation wraps RegisterAllRoutes with fx annotations
var RegisterAllRoutesWithAnnotation = fx.Annotate(
	RegisterAllRoutes,
	fx.ParamTags(``, `group:"routes"`),
)

// StartServer creates a lifecycle hook to start Fiber in a goroutine
// and shut it down when the app exits.
func StartServer(lc fx.Lifecycle, app *fiber.App, cfg *config.Config) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				port := fmt.Sprintf(":%s", cfg.Port)
				if err := app.Listen(port); err != nil {
					log.Fatalf("Server failed to start: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return app.Shutdown()
		},
	})
}

func main() {
	app := fx.New(
		fx.Provide(
			// Load Config
			config.LoadConfig,

			// Initialize Logger
			logger.NewLogger,

			// Initialize Fiber Server
			NewFiberServer,

			// Shared timezone for schedules and sheet display dates
			NewDisplayLocation,

			// Initialize Databases
			database.NewMongoDatabase,
			database.NewAttendanceDatabase,

			// Destination sheet client
			smartsheet.NewClient,

			// Initialize Repositories
			attendance.NewRepository,
			sync_feature.NewRunRepository,

			// Initialize Services
			sync_feature.NewStatusStore,
			sync_feature.NewService,
			export.NewService,
			schedule.NewService,

			// Initialize Controllers
			sync_feature.NewController,
			export.NewController,

			// Initialize API Routes
			AsRoute(sync_feature.NewSyncApi),
			AsRoute(export.NewExportApi),
			AsRoute(system.NewHealthApi),
			AsRoute(system.NewMetricsApi),
		),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),
		fx.Invoke(
			// Register Routes & Start
			RegisterAllRoutesWithAnnotation,
			StartServer,
			func(lc fx.Lifecycle, scheduler schedule.Service) {
				lc.Append(fx.Hook{
					OnStart: func(ctx context.Context) error {
						return scheduler.Start()
					},
					OnStop: func(ctx context.Context) error {
						return scheduler.Stop()
					},
				})
			},
		),
	)

	app.Run()
}
