package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/riskibarqy/football-grid/internal/config"
	"github.com/riskibarqy/football-grid/internal/platform/logging"
)

func memoryConfig() config.Config {
	return config.Config{
		AppEnv:                config.EnvDev,
		HTTPAddr:              ":0",
		ReadTimeout:           time.Second,
		WriteTimeout:          time.Second,
		CORSAllowedOrigins:    []string{"*"},
		StoreDriver:           config.StoreMemory,
		StoreTimeout:          time.Second,
		CacheEnabled:          true,
		CacheTTL:              time.Minute,
		CacheMaxEntries:       100,
		GridLocation:          time.UTC,
		GridHistoryDays:       30,
		GridMinAvailableClubs: 5,
		GridLegendIDCutoff:    30000,
		GridPregenerateCron:   "5 0 * * *",
		GuessCounterEnabled:   true,
		GuessCounterWorkers:   2,
		MetricsEnabled:        true,
	}
}

func TestNew_MemoryStoreServesTodayGrid(t *testing.T) {
	t.Parallel()

	a, err := New(context.Background(), memoryConfig(), logging.NewNop())
	if err != nil {
		t.Fatalf("new app: %v", err)
	}

	rec := httptest.NewRecorder()
	a.Server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/grids/today", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	a.Server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected metrics endpoint, got %d", rec.Code)
	}

	a.Start()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.Shutdown(ctx); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}

func TestNew_RejectsEmptyAddr(t *testing.T) {
	t.Parallel()

	cfg := memoryConfig()
	cfg.HTTPAddr = ""
	if _, err := New(context.Background(), cfg, logging.NewNop()); err == nil {
		t.Fatalf("expected an error for an empty listen address")
	}
}

func TestNew_StatsRefreshRequiresValidFeedURL(t *testing.T) {
	t.Parallel()

	cfg := memoryConfig()
	cfg.StatsRefreshEnabled = true
	cfg.StatsFeedBaseURL = "ftp://stats.example.com"
	cfg.StatsRefreshCron = "0 3 * * 1"
	if _, err := New(context.Background(), cfg, logging.NewNop()); err == nil {
		t.Fatalf("expected an error for a non-http stats feed url")
	}
}

func TestNew_QStashRequiresValidTarget(t *testing.T) {
	t.Parallel()

	cfg := memoryConfig()
	cfg.QStashEnabled = true
	cfg.QStashBaseURL = "https://qstash.upstash.io"
	cfg.QStashToken = "token"
	cfg.QStashTargetBaseURL = "grid.example.com"
	if _, err := New(context.Background(), cfg, logging.NewNop()); err == nil {
		t.Fatalf("expected a target url without scheme to be rejected")
	}

	cfg.QStashTargetBaseURL = "https://grid.example.com"
	a, err := New(context.Background(), cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("new app with qstash: %v", err)
	}
	if err := a.Shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}
