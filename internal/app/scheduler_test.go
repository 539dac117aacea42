package app

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/riskibarqy/football-grid/internal/config"
	"github.com/riskibarqy/football-grid/internal/domain/grid"
	"github.com/riskibarqy/football-grid/internal/platform/logging"
	"github.com/riskibarqy/football-grid/internal/usecase"
)

type fakeEnsurer struct {
	mu    sync.Mutex
	today grid.Day
	days  []grid.Day
	fail  grid.Day
}

func (f *fakeEnsurer) Today() grid.Day { return f.today }

func (f *fakeEnsurer) Ensure(_ context.Context, day grid.Day) (grid.Grid, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.days = append(f.days, day)
	if day == f.fail {
		return grid.Grid{}, errors.New("generation failed")
	}
	return grid.Grid{Date: day}, nil
}

type fakeRefresher struct {
	runs int
}

func (f *fakeRefresher) Run(context.Context) (usecase.StatsRefreshResult, error) {
	f.runs++
	return usecase.StatsRefreshResult{Candidates: 3, Updated: 3}, nil
}

type dispatchedJob struct {
	path            string
	deduplicationID string
}

type fakeDispatcher struct {
	jobs []dispatchedJob
}

func (f *fakeDispatcher) Enqueue(_ context.Context, path string, _ any, _ time.Duration, deduplicationID string) error {
	f.jobs = append(f.jobs, dispatchedJob{path: path, deduplicationID: deduplicationID})
	return nil
}

func TestPregenerateGrids_EnsuresTodayAndTomorrow(t *testing.T) {
	t.Parallel()

	ensurer := &fakeEnsurer{today: "2026-03-14", fail: "2026-03-14"}
	pregenerateGrids(ensurer, logging.NewNop())()

	if len(ensurer.days) != 2 || ensurer.days[0] != "2026-03-14" || ensurer.days[1] != "2026-03-15" {
		t.Fatalf("expected today and tomorrow even when today fails, got %v", ensurer.days)
	}
}

func TestRefreshStats_RunsRefresher(t *testing.T) {
	t.Parallel()

	refresher := &fakeRefresher{}
	refreshStats(refresher, logging.NewNop())()
	if refresher.runs != 1 {
		t.Fatalf("expected one run, got %d", refresher.runs)
	}
}

func TestNewScheduler_RegistersEntries(t *testing.T) {
	t.Parallel()

	cfg := config.Config{
		GridLocation:        time.UTC,
		GridPregenerateCron: "5 0 * * *",
		StatsRefreshCron:    "0 3 * * 1",
	}

	withoutRefresh, err := newScheduler(cfg, &fakeEnsurer{}, nil, nil, logging.NewNop())
	if err != nil {
		t.Fatalf("new scheduler: %v", err)
	}
	if got := len(withoutRefresh.Entries()); got != 1 {
		t.Fatalf("expected 1 entry without refresh, got %d", got)
	}

	withRefresh, err := newScheduler(cfg, &fakeEnsurer{}, &fakeRefresher{}, nil, logging.NewNop())
	if err != nil {
		t.Fatalf("new scheduler: %v", err)
	}
	if got := len(withRefresh.Entries()); got != 2 {
		t.Fatalf("expected 2 entries with refresh, got %d", got)
	}

	cfg.GridPregenerateCron = "not a schedule"
	if _, err := newScheduler(cfg, &fakeEnsurer{}, nil, nil, logging.NewNop()); err == nil {
		t.Fatalf("expected an invalid schedule to be rejected")
	}
}

func TestDispatchGridPregeneration_PublishesPerDayJobs(t *testing.T) {
	t.Parallel()

	ensurer := &fakeEnsurer{today: "2026-03-14"}
	dispatcher := &fakeDispatcher{}
	dispatchGridPregeneration(ensurer, dispatcher, logging.NewNop())()

	if len(ensurer.days) != 0 {
		t.Fatalf("dispatch mode must not generate in-process, got %v", ensurer.days)
	}
	want := []dispatchedJob{
		{path: "/v1/internal/jobs/grid-pregenerate?date=2026-03-14", deduplicationID: "grid-pregenerate-2026-03-14"},
		{path: "/v1/internal/jobs/grid-pregenerate?date=2026-03-15", deduplicationID: "grid-pregenerate-2026-03-15"},
	}
	if len(dispatcher.jobs) != len(want) {
		t.Fatalf("expected %d jobs, got %+v", len(want), dispatcher.jobs)
	}
	for i := range want {
		if dispatcher.jobs[i] != want[i] {
			t.Fatalf("job %d: expected %+v, got %+v", i, want[i], dispatcher.jobs[i])
		}
	}
}

func TestDispatchStatsRefresh_UsesDailyDeduplicationID(t *testing.T) {
	t.Parallel()

	dispatcher := &fakeDispatcher{}
	dispatchStatsRefresh(dispatcher, time.UTC, logging.NewNop())()

	if len(dispatcher.jobs) != 1 || dispatcher.jobs[0].path != "/v1/internal/jobs/stats-refresh" {
		t.Fatalf("unexpected jobs: %+v", dispatcher.jobs)
	}
	wantID := "stats-refresh-" + grid.DayOf(time.Now(), time.UTC).String()
	if dispatcher.jobs[0].deduplicationID != wantID {
		t.Fatalf("expected %q, got %q", wantID, dispatcher.jobs[0].deduplicationID)
	}
}
