package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"resume-match/internal/config"
	"resume-match/internal/database"
	dbpostgres "resume-match/internal/database/postgres"
	"resume-match/internal/domain/matching"
	"resume-match/internal/infrastructure/cache"
	"resume-match/internal/infrastructure/events"
	"resume-match/internal/infrastructure/storage"
	"resume-match/internal/logger"
	"resume-match/internal/pkg/jwt"
	"resume-match/internal/profile"
	"resume-match/internal/repository"
	"resume-match/internal/scraper"
	"resume-match/internal/usecase"
	"resume-match/internal/ws"

	"go.uber.org/zap"
)

// Container owns every long-lived dependency of the server and the CLIs.
type Container struct {
	Config config.Config
	Log    *zap.Logger

	DB     database.DB
	Cache  *cache.Redis
	Files  storage.FileStore
	Hub    *ws.Hub
	Events events.Publisher
	JWT    *jwt.HMACService
	Engine *matching.Engine

	Resumes         *usecase.Resumes
	Imports         *usecase.Imports
	Jobs            *usecase.Jobs
	Analyses        *usecase.Analyses
	Recommendations *usecase.Recommendations

	Scraper *scraper.CareersScraper
	Targets []scraper.Target

	amqp *events.AMQPPublisher
}

func NewContainer(ctx context.Context, cfg config.Config, log *zap.Logger) (*Container, error) {
	log = logger.OrNop(log)

	connCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(connCtx, cfg.Database, log)
	if err != nil {
		return nil, err
	}

	c := &Container{Config: cfg, Log: log, DB: db}

	c.Files, err = storage.New(ctx, cfg.Storage)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init file store: %w", err)
	}
	c.Cache = cache.NewRedis(ctx, cfg.Redis, log.Named("cache"))
	c.Hub = ws.NewHub(log.Named("ws"))

	pubs := []events.Publisher{c.Hub}
	if cfg.Events.AMQPURL != "" {
		p, err := events.NewAMQPPublisher(cfg.Events)
		if err != nil {
			log.Warn("amqp publisher disabled", zap.Error(err))
		} else {
			c.amqp = p
			pubs = append(pubs, p)
		}
	}
	c.Events = events.NewFanout(log.Named("events"), pubs...)

	c.JWT = jwt.NewHMACService(cfg.JWT.AccessSecret, cfg.JWT.AccessExpiresIn)
	c.Engine = matching.NewEngine(matching.NewAdvisor(nil))

	resumeRepo := repository.NewPostgresResumeRepository(db)
	jobRepo := repository.NewPostgresJobPostingRepository(db)
	analysisRepo := repository.NewPostgresAnalysisRepository(db)

	c.Resumes = usecase.NewResumeUsecase(resumeRepo, c.Files, c.Cache, log.Named("resumes"))
	c.Imports = usecase.NewImportUsecase(newImporter(cfg.Importer), resumeRepo, log.Named("imports"))
	c.Jobs = usecase.NewJobUsecase(jobRepo, c.Events, c.Cache, log.Named("jobs"))
	c.Analyses = usecase.NewAnalysisUsecase(resumeRepo, jobRepo, analysisRepo, c.Engine, c.Events, log.Named("analyses"))
	c.Recommendations = usecase.NewRecommendationUsecase(resumeRepo, jobRepo, c.Engine, c.Cache, log.Named("recommendations"))

	c.Targets, err = loadTargets(cfg.Scraper.TargetsFile, log)
	if err != nil {
		_ = c.Close()
		return nil, err
	}
	c.Scraper = scraper.NewCareersScraper(
		c.Jobs,
		profile.NewHeadlessFetcher(cfg.Importer.UserAgent, cfg.Importer.Timeout),
		scraper.Options{
			Workers:   cfg.Scraper.Workers,
			Pages:     cfg.Scraper.Pages,
			UserAgent: cfg.Importer.UserAgent,
			Delay:     500 * time.Millisecond,
		},
		log.Named("scraper"),
	)

	return c, nil
}

func newImporter(cfg config.ImporterConfig) profile.Importer {
	switch cfg.Mode {
	case config.ImporterHTML:
		return profile.NewHTMLImporter(profile.NewCollyFetcher(cfg.UserAgent, cfg.Timeout))
	case config.ImporterHeadless:
		return profile.NewHTMLImporter(profile.NewHeadlessFetcher(cfg.UserAgent, cfg.Timeout))
	default:
		return profile.NewDemoImporter()
	}
}

// loadTargets treats a missing targets file as "no scraping configured".
func loadTargets(path string, log *zap.Logger) ([]scraper.Target, error) {
	if path == "" {
		return nil, nil
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		log.Info("no scraper targets file", zap.String("path", path))
		return nil, nil
	}
	targets, err := scraper.LoadTargets(path)
	if err != nil {
		return nil, fmt.Errorf("load scraper targets: %w", err)
	}
	return targets, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	var errs []error
	if c.amqp != nil {
		errs = append(errs, c.amqp.Close())
	}
	if c.Cache != nil {
		errs = append(errs, c.Cache.Close())
	}
	if c.DB != nil {
		errs = append(errs, c.DB.Close())
	}
	return errors.Join(errs...)
}
