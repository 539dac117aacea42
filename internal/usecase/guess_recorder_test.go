package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/football-grid/internal/domain/grid"
	gridmock "github.com/riskibarqy/football-grid/internal/mocks/domain/grid"
	"github.com/stretchr/testify/mock"
)

func TestGuessRecorder_IncrementsAsynchronously(t *testing.T) {
	t.Parallel()

	repo := gridmock.NewGuessRepository(t)
	recorder, err := NewGuessRecorder(repo, 2, nil, nil)
	if err != nil {
		t.Fatalf("new recorder: %v", err)
	}

	guess := grid.Guess{Date: "2026-03-14", RowKey: "team:basel", ColKey: "nation:sui", PlayerID: 86792}
	done := make(chan struct{})
	repo.
		On("Increment", mock.Anything, guess).
		Run(func(mock.Arguments) { close(done) }).
		Return(nil).
		Once()

	recorder.Record(guess)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("increment was not executed")
	}
	if err := recorder.Close(time.Second); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestGuessRecorder_FailuresDoNotPropagate(t *testing.T) {
	t.Parallel()

	repo := gridmock.NewGuessRepository(t)
	recorder, err := NewGuessRecorder(repo, 1, nil, nil)
	if err != nil {
		t.Fatalf("new recorder: %v", err)
	}

	done := make(chan struct{})
	repo.
		On("Increment", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) { close(done) }).
		Return(errors.New("deadlock detected")).
		Once()

	recorder.Record(grid.Guess{Date: "2026-03-14", RowKey: "team:yb", ColKey: "goals:100", PlayerID: 48110})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("increment was not executed")
	}
	if err := recorder.Close(time.Second); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestGuessRecorder_SaturatedPoolDropsWithoutBlocking(t *testing.T) {
	t.Parallel()

	repo := gridmock.NewGuessRepository(t)
	recorder, err := NewGuessRecorder(repo, 1, nil, nil)
	if err != nil {
		t.Fatalf("new recorder: %v", err)
	}

	release := make(chan struct{})
	started := make(chan struct{})
	repo.
		On("Increment", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) {
			close(started)
			<-release
		}).
		Return(nil).
		Once()

	recorder.Record(grid.Guess{Date: "2026-03-14", RowKey: "a", ColKey: "b", PlayerID: 1})
	<-started

	returned := make(chan struct{})
	go func() {
		recorder.Record(grid.Guess{Date: "2026-03-14", RowKey: "a", ColKey: "b", PlayerID: 2})
		close(returned)
	}()

	select {
	case <-returned:
	case <-time.After(time.Second):
		t.Fatalf("record blocked on a saturated pool")
	}

	close(release)
	if err := recorder.Close(2 * time.Second); err != nil {
		t.Fatalf("close: %v", err)
	}
}
