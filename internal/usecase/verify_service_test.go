package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/riskibarqy/football-grid/internal/domain/category"
	"github.com/riskibarqy/football-grid/internal/domain/grid"
	"github.com/riskibarqy/football-grid/internal/domain/player"
	"github.com/riskibarqy/football-grid/internal/infrastructure/repository/memory"
	playermock "github.com/riskibarqy/football-grid/internal/mocks/domain/player"
	"github.com/stretchr/testify/mock"
)

type captureSink struct {
	mu      sync.Mutex
	guesses []grid.Guess
}

func (s *captureSink) Record(guess grid.Guess) {
	s.mu.Lock()
	s.guesses = append(s.guesses, guess)
	s.mu.Unlock()
}

func newTestVerifyService(repo player.Repository, sink GuessSink, debug bool) *VerifyService {
	catalog := category.Default()
	matcher := NewCriteriaMatcher(repo, catalog, time.Second, nil, nil)
	return NewVerifyService(repo, catalog, matcher, NewRarityScorer(DefaultLegendIDCutoff), sink, VerifyConfig{Debug: debug}, nil, nil)
}

func TestVerifyService_ShaqiriBaselSwitzerland(t *testing.T) {
	t.Parallel()

	sink := &captureSink{}
	service := newTestVerifyService(memory.NewPlayerRepository(memory.SeedPlayers()), sink, true)

	got := service.Verify(context.Background(), VerifyInput{
		PlayerName: "xherdan shaqiri",
		Row:        CategoryInput{Type: "team", Value: "Basel"},
		Col:        CategoryInput{Type: "nation", Value: "SUI"},
	})
	if !got.Correct {
		t.Fatalf("expected a correct answer, debug=%+v", got.Debug)
	}
	if got.Rarity == nil || *got.Rarity < 0.5 || *got.Rarity > 10 {
		t.Fatalf("rarity out of range: %v", got.Rarity)
	}
	if got.PlayerID != 86792 || got.PlayerName != "Xherdan Shaqiri" {
		t.Fatalf("unexpected player: %d %q", got.PlayerID, got.PlayerName)
	}
	if got.Debug == nil || got.Debug.PoolSize < 2 || got.Debug.Rank == 0 {
		t.Fatalf("expected Shaqiri ranked inside a larger pool, debug=%+v", got.Debug)
	}

	if len(sink.guesses) != 1 {
		t.Fatalf("expected one recorded guess, got %d", len(sink.guesses))
	}
	if sink.guesses[0].RowKey != "team:basel" || sink.guesses[0].ColKey != "nation:sui" {
		t.Fatalf("unexpected guess keys: %+v", sink.guesses[0])
	}
}

func TestVerifyService_UnknownPlayerIsIncorrect(t *testing.T) {
	t.Parallel()

	sink := &captureSink{}
	service := newTestVerifyService(memory.NewPlayerRepository(memory.SeedPlayers()), sink, false)

	got := service.Verify(context.Background(), VerifyInput{
		PlayerName: "Zzzznotaplayer",
		Row:        CategoryInput{Type: "team", Value: "Basel"},
		Col:        CategoryInput{Type: "nation", Value: "SUI"},
	})
	if got.Correct || got.Rarity != nil {
		t.Fatalf("unknown player must be incorrect without a score: %+v", got)
	}
	if got.Debug != nil {
		t.Fatalf("debug info leaked while disabled")
	}
	if len(sink.guesses) != 0 {
		t.Fatalf("unknown players must not be counted")
	}
}

func TestVerifyService_CriteriaMismatch(t *testing.T) {
	t.Parallel()

	service := newTestVerifyService(memory.NewPlayerRepository(memory.SeedPlayers()), nil, true)

	got := service.Verify(context.Background(), VerifyInput{
		PlayerName: "Stéphane Chapuisat",
		Row:        CategoryInput{Type: "team", Value: "Basel"},
		Col:        CategoryInput{Type: "nation", Value: "SUI"},
	})
	if got.Correct {
		t.Fatalf("Chapuisat never played for Basel")
	}
	if got.Debug == nil || got.Debug.RowMatch || !got.Debug.ColMatch {
		t.Fatalf("expected row mismatch and column match, debug=%+v", got.Debug)
	}
}

func TestVerifyService_PerClubGoalsAgainstClubRow(t *testing.T) {
	t.Parallel()

	service := newTestVerifyService(memory.NewPlayerRepository(memory.SeedPlayers()), nil, false)

	got := service.Verify(context.Background(), VerifyInput{
		PlayerName: "Marco Streller",
		Row:        CategoryInput{Type: "team", Value: "Basel"},
		Col:        CategoryInput{Type: "club_goals", Value: "50"},
	})
	if !got.Correct {
		t.Fatalf("Streller scored over 50 for Basel")
	}

	got = service.Verify(context.Background(), VerifyInput{
		PlayerName: "Marco Streller",
		Row:        CategoryInput{Type: "nation", Value: "SUI"},
		Col:        CategoryInput{Type: "club_goals", Value: "50"},
	})
	if got.Correct {
		t.Fatalf("per-club goals without a club row must fail closed")
	}
}

func TestVerifyService_StoreFailuresAreAbsorbed(t *testing.T) {
	t.Parallel()

	repo := playermock.NewRepository(t)
	service := newTestVerifyService(repo, nil, false)
	shaqiri := player.Player{ID: 86792, LegacyID: 31050, Name: "Xherdan Shaqiri", Appearances: 116}

	repo.On("GetByName", mock.Anything, "Xherdan Shaqiri").Return(shaqiri, true, nil).Once()
	repo.On("Matches", mock.Anything, int64(86792), mock.Anything).Return(false, errors.New("timeout")).Twice()

	got := service.Verify(context.Background(), VerifyInput{
		PlayerName: "Xherdan Shaqiri",
		Row:        CategoryInput{Type: "team", Value: "Basel"},
		Col:        CategoryInput{Type: "nation", Value: "SUI"},
	})
	if got.Correct {
		t.Fatalf("store failure must resolve to incorrect")
	}
}

func TestVerifyService_PoolFailureScoresAsEmptyPool(t *testing.T) {
	t.Parallel()

	repo := playermock.NewRepository(t)
	service := newTestVerifyService(repo, nil, false)
	shaqiri := player.Player{ID: 86792, LegacyID: 31050, Name: "Xherdan Shaqiri", Appearances: 116}

	repo.On("GetByName", mock.Anything, "Xherdan Shaqiri").Return(shaqiri, true, nil).Once()
	repo.On("Matches", mock.Anything, int64(86792), mock.Anything).Return(true, nil).Twice()
	repo.On("Pool", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("statement timeout")).Once()

	got := service.Verify(context.Background(), VerifyInput{
		PlayerName: "Xherdan Shaqiri",
		Row:        CategoryInput{Type: "team", Value: "Basel"},
		Col:        CategoryInput{Type: "nation", Value: "SUI"},
	})
	if !got.Correct || got.Rarity == nil || *got.Rarity != 9 {
		t.Fatalf("expected correct with maximum non-legend rarity, got %+v", got)
	}
}

func TestVerifyService_StalledLookupTimesOutAsIncorrect(t *testing.T) {
	t.Parallel()

	repo := playermock.NewRepository(t)
	repo.On("GetByName", mock.Anything, "Xherdan Shaqiri").
		Run(func(args mock.Arguments) {
			ctx := args.Get(0).(context.Context)
			if _, ok := ctx.Deadline(); !ok {
				t.Errorf("player lookup must carry a deadline")
				return
			}
			<-ctx.Done()
		}).
		Return(player.Player{}, false, context.DeadlineExceeded).Once()

	catalog := category.Default()
	matcher := NewCriteriaMatcher(repo, catalog, time.Second, nil, nil)
	service := NewVerifyService(repo, catalog, matcher, NewRarityScorer(DefaultLegendIDCutoff), nil,
		VerifyConfig{StoreTimeout: 20 * time.Millisecond}, nil, nil)

	done := make(chan VerifyResult, 1)
	go func() {
		done <- service.Verify(context.Background(), VerifyInput{
			PlayerName: "Xherdan Shaqiri",
			Row:        CategoryInput{Type: "team", Value: "Basel"},
			Col:        CategoryInput{Type: "nation", Value: "SUI"},
		})
	}()

	select {
	case got := <-done:
		if got.Correct || got.Rarity != nil {
			t.Fatalf("stalled lookup must resolve to incorrect, got %+v", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("verify did not return after the store timeout")
	}
}
