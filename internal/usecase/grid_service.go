package usecase

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/riskibarqy/football-grid/internal/domain/category"
	"github.com/riskibarqy/football-grid/internal/domain/grid"
	"github.com/riskibarqy/football-grid/internal/platform/logging"
	"github.com/riskibarqy/football-grid/internal/platform/metrics"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultGridHistoryDays       = 30
	DefaultGridMinAvailableClubs = 5

	gridOutcomeCached    = "cached"
	gridOutcomeGenerated = "generated"
	gridOutcomeRaced     = "raced"
	gridOutcomeFailed    = "failed"
)

// Randomizer is the randomness the generator draws from. Tests inject a
// seeded source.
type Randomizer interface {
	IntN(n int) int
	Float64() float64
}

// lockedRand makes a *rand.Rand safe for the concurrent callers a service sees.
type lockedRand struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func NewRandomizer(seed1, seed2 uint64) Randomizer {
	return &lockedRand{rnd: rand.New(rand.NewPCG(seed1, seed2))}
}

func (r *lockedRand) IntN(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rnd.IntN(n)
}

func (r *lockedRand) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rnd.Float64()
}

type GridConfig struct {
	Location          *time.Location
	HistoryDays       int
	MinAvailableClubs int
	// StoreTimeout bounds each grid store call made while ensuring a grid.
	StoreTimeout time.Duration
}

type GridService struct {
	grids   grid.Repository
	catalog *category.Catalog
	cfg     GridConfig
	logger  *logging.Logger
	metrics *metrics.Recorder

	flight singleflight.Group
	rnd    Randomizer
	now    func() time.Time
}

type GridOption func(*GridService)

func WithGridRandomizer(rnd Randomizer) GridOption {
	return func(s *GridService) {
		if rnd != nil {
			s.rnd = rnd
		}
	}
}

func WithGridClock(now func() time.Time) GridOption {
	return func(s *GridService) {
		if now != nil {
			s.now = now
		}
	}
}

func NewGridService(
	grids grid.Repository,
	catalog *category.Catalog,
	cfg GridConfig,
	logger *logging.Logger,
	recorder *metrics.Recorder,
	opts ...GridOption,
) *GridService {
	if catalog == nil {
		catalog = category.Default()
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.HistoryDays <= 0 {
		cfg.HistoryDays = DefaultGridHistoryDays
	}
	if cfg.MinAvailableClubs <= 0 {
		cfg.MinAvailableClubs = DefaultGridMinAvailableClubs
	}
	if cfg.StoreTimeout <= 0 {
		cfg.StoreTimeout = defaultStoreTimeout
	}
	if logger == nil {
		logger = logging.Default()
	}

	s := &GridService{
		grids:   grids,
		catalog: catalog,
		cfg:     cfg,
		logger:  logger,
		metrics: recorder,
		rnd:     NewRandomizer(uint64(time.Now().UnixNano()), rand.Uint64()),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Today returns the calendar day in the grid timezone.
func (s *GridService) Today() grid.Day {
	return grid.DayOf(s.now(), s.cfg.Location)
}

// GetToday returns today's grid, generating and persisting it on first access.
func (s *GridService) GetToday(ctx context.Context) (grid.Grid, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GridService.GetToday")
	defer span.End()

	return s.Ensure(ctx, s.Today())
}

// GetByDate reads a stored grid without generating one.
func (s *GridService) GetByDate(ctx context.Context, day grid.Day) (grid.Grid, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GridService.GetByDate")
	defer span.End()

	day, err := grid.ParseDay(string(day))
	if err != nil {
		return grid.Grid{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	item, exists, err := s.grids.GetByDate(ctx, day)
	if err != nil {
		return grid.Grid{}, fmt.Errorf("%w: get grid date=%s: %v", ErrDependencyUnavailable, day, err)
	}
	if !exists {
		return grid.Grid{}, fmt.Errorf("%w: grid date=%s", ErrNotFound, day)
	}
	return item, nil
}

// Ensure returns the grid for day, generating it if absent. Concurrent callers
// in this process share one generation; across processes the store's unique
// date key decides the winner and losers re-read it. The shared generation
// outlives the caller that started it, so one cancelled request cannot fail
// the others waiting on it.
func (s *GridService) Ensure(ctx context.Context, day grid.Day) (grid.Grid, error) {
	out, err, _ := s.flight.Do(string(day), func() (any, error) {
		return s.ensure(context.WithoutCancel(ctx), day)
	})
	if err != nil {
		return grid.Grid{}, err
	}
	return out.(grid.Grid), nil
}

func (s *GridService) storeContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.cfg.StoreTimeout)
}

func (s *GridService) ensure(ctx context.Context, day grid.Day) (grid.Grid, error) {
	lookupCtx, cancel := s.storeContext(ctx)
	existing, exists, err := s.grids.GetByDate(lookupCtx, day)
	cancel()
	if err != nil {
		s.logger.WarnContext(ctx, "grid lookup failed, generating", "date", day.String(), "error", err)
	}
	if exists {
		s.metrics.GridRequest(gridOutcomeCached)
		return existing, nil
	}

	started := time.Now()
	generated, relaxations, err := s.Generate(ctx, day)
	if err != nil {
		s.metrics.GridRequest(gridOutcomeFailed)
		return grid.Grid{}, err
	}
	s.metrics.ObserveGeneration(time.Since(started))
	for _, relaxation := range relaxations {
		s.logger.InfoContext(ctx, "grid generation relaxed a constraint", "date", day.String(), "relaxation", relaxation)
	}

	persistCtx, cancel := s.storeContext(ctx)
	stored, created, err := s.grids.CreateIfAbsent(persistCtx, generated)
	cancel()
	if err != nil {
		s.metrics.GridRequest(gridOutcomeFailed)
		return grid.Grid{}, fmt.Errorf("%w: persist grid date=%s: %v", ErrGenerationFailed, day, err)
	}
	if created {
		s.metrics.GridRequest(gridOutcomeGenerated)
		s.logger.InfoContext(ctx, "daily grid generated",
			"date", day.String(),
			"rows", categoryKeys(stored.Rows),
			"cols", categoryKeys(stored.Cols),
		)
	} else {
		s.metrics.GridRequest(gridOutcomeRaced)
		s.logger.InfoContext(ctx, "daily grid already created elsewhere, using stored grid", "date", day.String())
	}
	return stored, nil
}

// Generate builds a grid for day from the catalog and recent history. It does
// not persist. The returned strings name any constraint that had to be relaxed.
func (s *GridService) Generate(ctx context.Context, day grid.Day) (grid.Grid, []string, error) {
	var relaxations []string

	historyCtx, cancel := s.storeContext(ctx)
	history, err := s.grids.ListBefore(historyCtx, day, s.cfg.HistoryDays)
	cancel()
	if err != nil {
		s.logger.WarnContext(ctx, "grid history unavailable, generating without it", "date", day.String(), "error", err)
		history = nil
		relaxations = append(relaxations, "history unavailable")
	}

	forbidden := make(map[string]struct{})
	yesterday := day.AddDays(-1)
	usage := make(map[string]int)
	for _, past := range history {
		for _, code := range past.ClubCodes() {
			usage[code]++
			if past.Date == yesterday {
				forbidden[code] = struct{}{}
			}
		}
	}

	allClubs := s.catalog.Clubs()
	available := make([]category.Category, 0, len(allClubs))
	for _, club := range allClubs {
		if _, skip := forbidden[club.Code]; !skip {
			available = append(available, club)
		}
	}
	if len(available) < s.cfg.MinAvailableClubs {
		available = allClubs
		if len(forbidden) > 0 {
			relaxations = append(relaxations, "yesterday's clubs restored: too few clubs available")
		}
	}

	otherTarget := 1 + s.rnd.IntN(2)
	clubTarget := grid.Size + (grid.Size - otherTarget)

	clubs := s.drawClubs(available, usage, clubTarget)
	if len(clubs) < clubTarget {
		relaxations = append(relaxations, fmt.Sprintf("club pool exhausted: %d of %d clubs", len(clubs), clubTarget))
	}

	rows := make([]category.Category, 0, grid.Size)
	cols := make([]category.Category, 0, grid.Size)
	for _, club := range clubs {
		if len(rows) < grid.Size {
			rows = append(rows, club)
			continue
		}
		cols = append(cols, club)
	}

	used := make(map[string]struct{}, 2*grid.Size)
	for _, c := range clubs {
		used[c.Key()] = struct{}{}
	}

	others := s.shuffled(s.catalog.Others())
	pick := func(allowPairing bool) (category.Category, bool) {
		for i, candidate := range others {
			if _, taken := used[candidate.Key()]; taken {
				continue
			}
			if candidate.Kind.RequiresClubPairing() && !allowPairing {
				continue
			}
			others = append(others[:i], others[i+1:]...)
			used[candidate.Key()] = struct{}{}
			return candidate, true
		}
		return category.Category{}, false
	}

	for len(rows) < grid.Size {
		candidate, ok := pick(false)
		if !ok {
			break
		}
		rows = append(rows, candidate)
	}
	rowsAllClubs := len(rows) == grid.Size
	for _, row := range rows {
		if !row.IsClub() {
			rowsAllClubs = false
		}
	}

	for len(cols) < grid.Size {
		candidate, ok := pick(rowsAllClubs)
		if !ok {
			break
		}
		cols = append(cols, candidate)
	}
	if missing := grid.Size - len(cols); missing > 0 {
		unused := make([]category.Category, 0, len(allClubs))
		for _, club := range allClubs {
			if _, taken := used[club.Key()]; !taken {
				unused = append(unused, club)
			}
		}
		extra := s.drawClubs(unused, usage, missing)
		cols = append(cols, extra...)
		if len(extra) > 0 {
			relaxations = append(relaxations, "non-club pool exhausted: columns filled with clubs")
		}
	}

	if len(rows) < grid.Size || len(cols) < grid.Size {
		return grid.Grid{}, relaxations, fmt.Errorf("%w: only %d rows and %d columns available", ErrGenerationFailed, len(rows), len(cols))
	}

	cols = s.shuffled(cols)
	out := grid.Grid{
		Date:      day,
		Rows:      rows,
		Cols:      cols,
		CreatedAt: s.now().UTC(),
	}
	if err := out.Validate(); err != nil {
		return grid.Grid{}, relaxations, errors.Join(ErrGenerationFailed, err)
	}
	return out, relaxations, nil
}

// drawClubs draws up to n clubs without replacement, weighting each by how
// rarely it appeared in recent grids: weight = max(usage) - usage + 1.
func (s *GridService) drawClubs(pool []category.Category, usage map[string]int, n int) []category.Category {
	remaining := append([]category.Category(nil), pool...)
	maxUsage := 0
	for _, club := range remaining {
		maxUsage = max(maxUsage, usage[club.Code])
	}

	out := make([]category.Category, 0, n)
	for len(out) < n && len(remaining) > 0 {
		total := 0
		for _, club := range remaining {
			total += maxUsage - usage[club.Code] + 1
		}

		target := s.rnd.Float64() * float64(total)
		chosen := len(remaining) - 1
		acc := 0.0
		for i, club := range remaining {
			acc += float64(maxUsage - usage[club.Code] + 1)
			if target < acc {
				chosen = i
				break
			}
		}

		out = append(out, remaining[chosen])
		remaining = append(remaining[:chosen], remaining[chosen+1:]...)
	}
	return out
}

func (s *GridService) shuffled(items []category.Category) []category.Category {
	out := append([]category.Category(nil), items...)
	for i := len(out) - 1; i > 0; i-- {
		j := s.rnd.IntN(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

func categoryKeys(items []category.Category) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.Key())
	}
	return out
}
