package category

import (
	"strconv"
	"strings"
)

// Kind identifies the predicate a category applies to a footballer.
type Kind string

const (
	KindUnknown       Kind = ""
	KindClub          Kind = "team"
	KindNation        Kind = "nation"
	KindLeague        Kind = "league"
	KindGoals         Kind = "goals"
	KindAssists       Kind = "assists"
	KindChampion      Kind = "champion"
	KindCupWinner     Kind = "cupwinner"
	KindTopScorer     Kind = "topscorer"
	KindClubGoals     Kind = "club_goals"
	KindClubAssists   Kind = "club_assists"
	KindSeasonGoals   Kind = "season_goals"
	KindSeasonAssists Kind = "season_assists"
)

// Stat is the counted statistic behind a threshold kind.
type Stat string

const (
	StatNone    Stat = ""
	StatGoals   Stat = "goals"
	StatAssists Stat = "assists"
)

// Default thresholds used when a category carries no explicit value.
const (
	DefaultCareerGoals   = 100
	DefaultCareerAssists = 50
	DefaultPerClubStat   = 50
	DefaultPerSeasonStat = 10
)

const (
	kindAliasClubEnglish  = "club"
	kindAliasTrophyLegacy = "meister"
)

var knownKinds = map[Kind]struct{}{
	KindClub:          {},
	KindNation:        {},
	KindLeague:        {},
	KindGoals:         {},
	KindAssists:       {},
	KindChampion:      {},
	KindCupWinner:     {},
	KindTopScorer:     {},
	KindClubGoals:     {},
	KindClubAssists:   {},
	KindSeasonGoals:   {},
	KindSeasonAssists: {},
}

// ParseKind maps a wire type name to a Kind. Unrecognised names yield KindUnknown.
func ParseKind(raw string) Kind {
	value := strings.ToLower(strings.TrimSpace(raw))
	switch value {
	case kindAliasClubEnglish:
		return KindClub
	case kindAliasTrophyLegacy:
		return KindChampion
	}
	if _, ok := knownKinds[Kind(value)]; ok {
		return Kind(value)
	}
	return KindUnknown
}

func (k Kind) Known() bool {
	_, ok := knownKinds[k]
	return ok
}

// IsEntity reports whether the kind is matched against an affiliation table.
func (k Kind) IsEntity() bool {
	return k == KindClub || k == KindNation || k == KindLeague
}

func (k Kind) IsFlag() bool {
	return k == KindChampion || k == KindCupWinner || k == KindTopScorer
}

func (k Kind) IsThreshold() bool {
	return k.Stat() != StatNone
}

// RequiresClubPairing reports whether the kind only makes sense against a club
// category on the other axis of the same cell.
func (k Kind) RequiresClubPairing() bool {
	return k == KindClubGoals || k == KindClubAssists
}

func (k Kind) IsPerSeason() bool {
	return k == KindSeasonGoals || k == KindSeasonAssists
}

func (k Kind) Stat() Stat {
	switch k {
	case KindGoals, KindClubGoals, KindSeasonGoals:
		return StatGoals
	case KindAssists, KindClubAssists, KindSeasonAssists:
		return StatAssists
	default:
		return StatNone
	}
}

// DefaultThreshold returns the threshold applied when none is given.
func (k Kind) DefaultThreshold() int {
	switch k {
	case KindGoals:
		return DefaultCareerGoals
	case KindAssists:
		return DefaultCareerAssists
	case KindClubGoals, KindClubAssists:
		return DefaultPerClubStat
	case KindSeasonGoals, KindSeasonAssists:
		return DefaultPerSeasonStat
	default:
		return 0
	}
}

// Category is one grid axis. Values are immutable once built; matching strings
// live in the Catalog and are looked up by Kind and Code.
type Category struct {
	Kind      Kind
	Code      string
	Label     string
	Threshold int
}

// Key identifies a category inside a grid. Two slots with the same key collide.
func (c Category) Key() string {
	return string(c.Kind) + ":" + strings.ToLower(c.Code)
}

func (c Category) IsClub() bool {
	return c.Kind == KindClub
}

// NewThreshold builds a threshold category, falling back to the kind default
// for empty or non-positive values.
func NewThreshold(kind Kind, raw string, label string) Category {
	threshold, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || threshold <= 0 {
		threshold = kind.DefaultThreshold()
	}
	code := strconv.Itoa(threshold)
	if strings.TrimSpace(label) == "" {
		label = thresholdLabel(kind, threshold)
	}
	return Category{Kind: kind, Code: code, Label: label, Threshold: threshold}
}

func thresholdLabel(kind Kind, threshold int) string {
	n := strconv.Itoa(threshold)
	switch kind {
	case KindGoals:
		return n + "+ career goals"
	case KindAssists:
		return n + "+ career assists"
	case KindClubGoals:
		return n + "+ goals for this club"
	case KindClubAssists:
		return n + "+ assists for this club"
	case KindSeasonGoals:
		return n + "+ goals in one season"
	case KindSeasonAssists:
		return n + "+ assists in one season"
	default:
		return n
	}
}
