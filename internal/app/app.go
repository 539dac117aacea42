package app

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/football-grid/external/jobqueue"
	"github.com/riskibarqy/football-grid/external/statsfeed"
	"github.com/riskibarqy/football-grid/internal/config"
	"github.com/riskibarqy/football-grid/internal/domain/category"
	"github.com/riskibarqy/football-grid/internal/domain/grid"
	"github.com/riskibarqy/football-grid/internal/domain/player"
	cacherepo "github.com/riskibarqy/football-grid/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/football-grid/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/football-grid/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/football-grid/internal/interfaces/httpapi"
	basecache "github.com/riskibarqy/football-grid/internal/platform/cache"
	"github.com/riskibarqy/football-grid/internal/platform/logging"
	"github.com/riskibarqy/football-grid/internal/platform/metrics"
	"github.com/riskibarqy/football-grid/internal/platform/resilience"
	"github.com/riskibarqy/football-grid/internal/usecase"
	"github.com/robfig/cron/v3"
)

const guessRecorderDrainTimeout = 5 * time.Second

// App owns every long-lived resource of the API process.
type App struct {
	Server *http.Server

	logger    *logging.Logger
	db        *sqlx.DB
	scheduler *cron.Cron
	guesses   *usecase.GuessRecorder
}

type stores struct {
	players player.Repository
	stats   player.StatsRepository
	grids   grid.Repository
	guesses grid.GuessRepository
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	a := &App{logger: logger}

	var recorder *metrics.Recorder
	if cfg.MetricsEnabled {
		recorder = metrics.New()
	}

	catalog, err := loadCatalog(cfg)
	if err != nil {
		return nil, err
	}

	st, err := a.openStores(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	if cfg.CacheEnabled {
		store := basecache.NewStore(cfg.CacheTTL, cfg.CacheMaxEntries)
		st.players = cacherepo.NewPlayerRepository(st.players, store)
		st.stats = cacherepo.NewStatsRepository(st.stats, store)
		st.grids = cacherepo.NewGridRepository(st.grids, store)
		recorder.TrackCache("repository", store)
	}

	gridSvc := usecase.NewGridService(st.grids, catalog, usecase.GridConfig{
		Location:          cfg.GridLocation,
		HistoryDays:       cfg.GridHistoryDays,
		MinAvailableClubs: cfg.GridMinAvailableClubs,
		StoreTimeout:      cfg.StoreTimeout,
	}, logger, recorder, usecase.WithGridRandomizer(usecase.NewRandomizer(rand.Uint64(), rand.Uint64())))

	var sink usecase.GuessSink
	if cfg.GuessCounterEnabled {
		a.guesses, err = usecase.NewGuessRecorder(st.guesses, cfg.GuessCounterWorkers, logger, recorder)
		if err != nil {
			_ = a.closeStores()
			return nil, fmt.Errorf("build guess recorder: %w", err)
		}
		sink = a.guesses
	}

	matcher := usecase.NewCriteriaMatcher(st.players, catalog, cfg.StoreTimeout, logger, recorder)
	verifySvc := usecase.NewVerifyService(st.players, catalog, matcher, usecase.NewRarityScorer(cfg.GridLegendIDCutoff), sink,
		usecase.VerifyConfig{Debug: cfg.GridDebugVerify, Location: cfg.GridLocation, StoreTimeout: cfg.StoreTimeout}, logger, recorder)

	var refreshSvc *usecase.StatsRefreshService
	if cfg.StatsRefreshEnabled {
		feed, err := statsfeed.NewClient(statsfeed.ClientConfig{
			BaseURL:    cfg.StatsFeedBaseURL,
			Token:      cfg.StatsFeedToken,
			Timeout:    cfg.StatsFeedTimeout,
			MaxRetries: cfg.StatsFeedMaxRetries,
			Logger:     logger,
			CircuitBreaker: resilience.NormalizeCircuitBreakerConfig(resilience.CircuitBreakerConfig{
				Enabled:          cfg.StatsFeedCircuitEnabled,
				FailureThreshold: cfg.StatsFeedCircuitFailureCount,
				OpenTimeout:      cfg.StatsFeedCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.StatsFeedCircuitHalfOpenMaxReq,
			}),
		})
		if err != nil {
			_ = a.closeStores()
			return nil, fmt.Errorf("build stats feed client: %w", err)
		}
		recorder.TrackBreaker(feed.Breaker())
		refreshSvc = usecase.NewStatsRefreshService(st.stats, feed, usecase.StatsRefreshConfig{
			BatchSize: cfg.StatsRefreshBatch,
			Workers:   cfg.StatsRefreshWorkers,
			Delay:     cfg.StatsRefreshDelay,
		}, logger, recorder)
	}

	var refresher statsRefresher
	if refreshSvc != nil {
		refresher = refreshSvc
	}
	var dispatcher jobDispatcher
	if cfg.QStashEnabled {
		publisher, err := jobqueue.NewQStashPublisher(jobqueue.QStashPublisherConfig{
			BaseURL:          cfg.QStashBaseURL,
			Token:            cfg.QStashToken,
			TargetBaseURL:    cfg.QStashTargetBaseURL,
			Retries:          cfg.QStashRetries,
			InternalJobToken: cfg.InternalJobToken,
			Timeout:          cfg.QStashTimeout,
			Logger:           logger,
			CircuitBreaker: resilience.NormalizeCircuitBreakerConfig(resilience.CircuitBreakerConfig{
				Enabled:          cfg.QStashCircuitEnabled,
				FailureThreshold: cfg.QStashCircuitFailureCount,
				OpenTimeout:      cfg.QStashCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.QStashCircuitHalfOpenMaxReq,
			}),
		})
		if err != nil {
			_ = a.closeStores()
			return nil, fmt.Errorf("build qstash publisher: %w", err)
		}
		recorder.TrackBreaker(publisher.Breaker())
		dispatcher = publisher
	}
	a.scheduler, err = newScheduler(cfg, gridSvc, refresher, dispatcher, logger)
	if err != nil {
		_ = a.closeStores()
		return nil, err
	}

	handler := httpapi.NewHandler(gridSvc, verifySvc, usecase.NewPlayerService(st.players), usecase.NewCatalogService(catalog), refreshSvc, logger)
	router := httpapi.NewRouter(handler, logger, httpapi.RouterConfig{
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		InternalJobToken:   cfg.InternalJobToken,
		Metrics:            recorder,
	})

	if cfg.HTTPAddr == "" {
		_ = a.closeStores()
		return nil, fmt.Errorf("http server addr cannot be empty")
	}
	a.Server = &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return a, nil
}

func loadCatalog(cfg config.Config) (*category.Catalog, error) {
	if cfg.CatalogFile == "" {
		return category.Default(), nil
	}
	catalog, err := category.LoadFile(cfg.CatalogFile)
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", cfg.CatalogFile, err)
	}
	return catalog, nil
}

func (a *App) openStores(ctx context.Context, cfg config.Config, logger *logging.Logger) (stores, error) {
	if cfg.StoreDriver != config.StorePostgres {
		seed := memory.SeedPlayers()
		logger.Info("using in-memory store", "players", len(seed))
		players := memory.NewPlayerRepository(seed)
		return stores{
			players: players,
			stats:   players,
			grids:   memory.NewGridRepository(),
			guesses: memory.NewGuessRepository(),
		}, nil
	}

	db, err := openDatabase(ctx, cfg)
	if err != nil {
		return stores{}, err
	}
	a.db = db
	if cfg.DBSeedOnStart {
		if err := postgres.BootstrapSeed(ctx, db); err != nil {
			_ = a.closeStores()
			return stores{}, fmt.Errorf("bootstrap seed: %w", err)
		}
	}
	logger.Info("using postgres store", "db_name", dbNameFromURL(cfg.DBURL))

	players := postgres.NewPlayerRepository(db)
	return stores{
		players: players,
		stats:   players,
		grids:   postgres.NewGridRepository(db),
		guesses: postgres.NewGuessRepository(db),
	}, nil
}

// Start runs the scheduler; the caller owns Server.ListenAndServe.
func (a *App) Start() {
	if a.scheduler != nil {
		a.scheduler.Start()
	}
}

// Shutdown stops accepting requests, waits for running jobs, drains pending
// guess increments and closes the database.
func (a *App) Shutdown(ctx context.Context) error {
	var errs []error
	if a.Server != nil {
		if err := a.Server.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("shutdown http server: %w", err))
		}
	}
	if a.scheduler != nil {
		select {
		case <-a.scheduler.Stop().Done():
		case <-ctx.Done():
			errs = append(errs, fmt.Errorf("wait for scheduled jobs: %w", ctx.Err()))
		}
	}
	if a.guesses != nil {
		if err := a.guesses.Close(guessRecorderDrainTimeout); err != nil {
			a.logger.Warn("guess recorder did not drain", "error", err)
		}
	}
	if err := a.closeStores(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (a *App) closeStores() error {
	if a.db == nil {
		return nil
	}
	err := a.db.Close()
	a.db = nil
	if err != nil {
		return fmt.Errorf("close database: %w", err)
	}
	return nil
}
