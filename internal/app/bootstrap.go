package app

import (
	"context"
	"fmt"
	"strings"

	"resume-match/internal/config"
	"resume-match/internal/database/migration"
	"resume-match/internal/delivery/http/handler"
	"resume-match/internal/delivery/http/middleware"
	"resume-match/internal/delivery/http/routes"
	"resume-match/internal/logger"
	"resume-match/internal/usecase"
	"resume-match/internal/ws"
	"resume-match/migrations"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

// request bodies carry at most one resume plus multipart overhead
const bodyLimit = usecase.MaxResumeBytes + 1<<20

type App struct {
	Fiber     *fiber.App
	Container *Container
}

func New(c *Container) *App {
	f := fiber.New(fiber.Config{
		AppName:   c.Config.App.AppName,
		BodyLimit: bodyLimit,
	})

	registerGlobalMiddleware(f, c.Log)
	registerRoutes(f, c)

	return &App{Fiber: f, Container: c}
}

// Bootstrap builds the logger, the container and the HTTP app. Migrations
// are applied before the app is returned.
func Bootstrap(ctx context.Context, cfg config.Config) (*App, func() error, error) {
	log, err := logger.New(cfg.App.LogJSON, cfg.App.LogDebug)
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}
	log = log.With(zap.String("app", cfg.App.AppName), zap.String("env", cfg.App.Environment))

	c, err := NewContainer(ctx, cfg, log)
	if err != nil {
		_ = log.Sync()
		return nil, nil, err
	}

	if err := Migrate(ctx, c); err != nil {
		_ = c.Close()
		_ = log.Sync()
		return nil, nil, err
	}

	cleanup := func() error {
		err := c.Close()
		_ = log.Sync()
		return err
	}
	return New(c), cleanup, nil
}

func Migrate(ctx context.Context, c *Container) error {
	r := migration.Runner{FS: migrations.FS, Log: c.Log.Named("migration")}
	n, err := r.Run(ctx, c.DB.SQLDB())
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	c.Log.Info("migrations applied", zap.Int("count", n))
	return nil
}

func registerGlobalMiddleware(app *fiber.App, log *zap.Logger) {
	if app == nil {
		return
	}

	app.Use(middleware.NewAccessLogMiddleware(log.Named("http")).Middleware())
	app.Use(middleware.NewErrorMiddleware(log.Named("http")).Middleware())
}

func registerRoutes(app *fiber.App, c *Container) {
	if app == nil || c == nil {
		return
	}

	checks := map[string]handler.Pinger{"database": c.DB}
	if c.Cache != nil {
		checks["redis"] = c.Cache
	}

	reg := &routes.Registry{
		Auth:            middleware.NewAuthMiddleware(c.JWT),
		Health:          handler.NewHealthHandler(checks, c.Hub.ClientCount),
		Events:          ws.NewHandler(c.Hub, c.Log.Named("ws")),
		Resumes:         handler.NewResumeHandler(c.Resumes),
		Imports:         handler.NewImportHandler(c.Imports),
		Jobs:            handler.NewJobHandler(c.Jobs),
		Analyses:        handler.NewAnalysisHandler(c.Analyses),
		Recommendations: handler.NewRecommendationHandler(c.Recommendations),
	}
	reg.Register(app)
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
