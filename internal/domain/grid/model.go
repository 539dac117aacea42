package grid

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/football-grid/internal/domain/category"
)

const (
	Size      = 3
	dayLayout = "2006-01-02"
)

var (
	ErrInvalidShape  = errors.New("grid must have exactly 3 rows and 3 columns")
	ErrCodeCollision = errors.New("category used in both a row and a column")
	ErrInvalidDay    = errors.New("invalid grid date")
)

// Day is a calendar date in YYYY-MM-DD form; the validity key of a grid.
type Day string

func DayOf(t time.Time, loc *time.Location) Day {
	if loc == nil {
		loc = time.UTC
	}
	return Day(t.In(loc).Format(dayLayout))
}

func ParseDay(raw string) (Day, error) {
	parsed, err := time.Parse(dayLayout, strings.TrimSpace(raw))
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidDay, raw)
	}
	return Day(parsed.Format(dayLayout)), nil
}

func (d Day) Time() time.Time {
	parsed, err := time.Parse(dayLayout, string(d))
	if err != nil {
		return time.Time{}
	}
	return parsed
}

func (d Day) AddDays(n int) Day {
	return Day(d.Time().AddDate(0, 0, n).Format(dayLayout))
}

func (d Day) String() string {
	return string(d)
}

// Grid is the puzzle for one day. Immutable once persisted.
type Grid struct {
	Date      Day
	Rows      []category.Category
	Cols      []category.Category
	CreatedAt time.Time
}

func (g Grid) Validate() error {
	if _, err := ParseDay(string(g.Date)); err != nil {
		return err
	}
	if len(g.Rows) != Size || len(g.Cols) != Size {
		return fmt.Errorf("%w: rows=%d cols=%d", ErrInvalidShape, len(g.Rows), len(g.Cols))
	}

	seen := make(map[string]struct{}, 2*Size)
	for _, c := range append(append([]category.Category(nil), g.Rows...), g.Cols...) {
		if _, dup := seen[c.Key()]; dup {
			return fmt.Errorf("%w: %s", ErrCodeCollision, c.Key())
		}
		seen[c.Key()] = struct{}{}
	}
	return nil
}

// ClubCodes returns the codes of every club category in the grid.
func (g Grid) ClubCodes() []string {
	out := make([]string, 0, 2*Size)
	for _, c := range append(append([]category.Category(nil), g.Rows...), g.Cols...) {
		if c.IsClub() {
			out = append(out, c.Code)
		}
	}
	return out
}

// Guess is one answer submitted for a cell; counted, never scored.
type Guess struct {
	Date     Day
	RowKey   string
	ColKey   string
	PlayerID int64
}
