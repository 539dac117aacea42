package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/riskibarqy/football-grid/internal/domain/player"
	playermock "github.com/riskibarqy/football-grid/internal/mocks/domain/player"
	"github.com/stretchr/testify/mock"
)

type fakeStatsFeed struct {
	mu        sync.Mutex
	snapshots map[int64]PlayerStatsSnapshot
	calls     []int64
}

func (f *fakeStatsFeed) FetchPlayerStats(_ context.Context, p player.Player) (PlayerStatsSnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, p.ID)
	snapshot, ok := f.snapshots[p.ID]
	if !ok {
		return PlayerStatsSnapshot{}, errors.New("feed returned 404")
	}
	return snapshot, nil
}

func newTestStatsRefreshService(repo player.StatsRepository, feed StatsFeed) *StatsRefreshService {
	service := NewStatsRefreshService(repo, feed, StatsRefreshConfig{BatchSize: 10, Workers: 2}, nil, nil)
	service.now = fixedClock("2026-03-14T03:00:00Z")
	service.sleep = func(context.Context, time.Duration) error { return nil }
	return service
}

func TestStatsRefreshService_UpdatesAndSkips(t *testing.T) {
	t.Parallel()

	repo := playermock.NewStatsRepository(t)
	feed := &fakeStatsFeed{snapshots: map[int64]PlayerStatsSnapshot{
		86792: {Appearances: 125, Goals: 32, Assists: 30},
		60233: {Appearances: 140, Goals: 38, Assists: 62, Retired: true},
	}}
	service := newTestStatsRefreshService(repo, feed)
	updatedAt := fixedClock("2026-03-14T03:00:00Z")()

	repo.On("ListStale", mock.Anything, 10).Return([]player.Player{
		{ID: 86792, Name: "Xherdan Shaqiri"},
		{ID: 60233, Name: "Granit Xhaka"},
		{ID: 99321, Name: "Jean-Pierre Nsame"},
	}, nil).Once()
	repo.On("UpdateStats", mock.Anything, player.StatsUpdate{
		PlayerID: 86792, Appearances: 125, Goals: 32, Assists: 30, UpdatedAt: updatedAt,
	}).Return(nil).Once()
	repo.On("UpdateStats", mock.Anything, player.StatsUpdate{
		PlayerID: 60233, Appearances: 140, Goals: 38, Assists: 62, Retired: true, UpdatedAt: updatedAt,
	}).Return(nil).Once()

	got, err := service.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	want := StatsRefreshResult{Candidates: 3, Updated: 2, Skipped: 1}
	if got != want {
		t.Fatalf("unexpected result: got=%+v want=%+v", got, want)
	}
	if len(feed.calls) != 3 {
		t.Fatalf("expected three feed calls, got %v", feed.calls)
	}
}

func TestStatsRefreshService_UpdateFailureIsCounted(t *testing.T) {
	t.Parallel()

	repo := playermock.NewStatsRepository(t)
	feed := &fakeStatsFeed{snapshots: map[int64]PlayerStatsSnapshot{1204: {Appearances: 84}}}
	service := newTestStatsRefreshService(repo, feed)

	repo.On("ListStale", mock.Anything, 10).Return([]player.Player{{ID: 1204}}, nil).Once()
	repo.On("UpdateStats", mock.Anything, mock.Anything).Return(errors.New("read-only transaction")).Once()

	got, err := service.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if got.Failed != 1 || got.Updated != 0 {
		t.Fatalf("unexpected result: %+v", got)
	}
}

func TestStatsRefreshService_ListFailure(t *testing.T) {
	t.Parallel()

	repo := playermock.NewStatsRepository(t)
	service := newTestStatsRefreshService(repo, &fakeStatsFeed{})

	repo.On("ListStale", mock.Anything, 10).Return(nil, errors.New("connection refused")).Once()

	if _, err := service.Run(context.Background()); !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
}

func TestStatsRefreshService_CancelledRunSkipsRemaining(t *testing.T) {
	t.Parallel()

	repo := playermock.NewStatsRepository(t)
	feed := &fakeStatsFeed{snapshots: map[int64]PlayerStatsSnapshot{1: {Appearances: 1}}}
	service := newTestStatsRefreshService(repo, feed)
	service.sleep = func(context.Context, time.Duration) error { return context.Canceled }

	repo.On("ListStale", mock.Anything, 10).Return([]player.Player{{ID: 1}, {ID: 2}, {ID: 3}}, nil).Once()
	repo.On("UpdateStats", mock.Anything, mock.Anything).Return(nil).Once()

	got, err := service.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if got.Updated != 1 || got.Skipped != 2 {
		t.Fatalf("unexpected result: %+v", got)
	}
}
