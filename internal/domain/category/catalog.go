package category

import (
	"fmt"
	"os"
	"sort"
	"strings"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/football-grid/internal/platform/textnorm"
)

// Entry is one catalog row: a short code, the label shown to players, the
// canonical string matched against the store, and extra accepted surface forms.
type Entry struct {
	Code      string   `json:"code"`
	Label     string   `json:"label"`
	Canonical string   `json:"canonical"`
	Aliases   []string `json:"aliases,omitempty"`
}

// Special describes a flag or threshold category offered by the generator.
type Special struct {
	Kind  Kind   `json:"kind"`
	Value string `json:"value,omitempty"`
	Label string `json:"label,omitempty"`
}

// Definition is the raw catalog shape, loadable from JSON.
type Definition struct {
	Clubs    []Entry   `json:"clubs"`
	Nations  []Entry   `json:"nations"`
	Leagues  []Entry   `json:"leagues"`
	Specials []Special `json:"specials"`
}

// Catalog is the immutable lookup table shared by matcher, pool resolver and
// generator. Build it once at startup and pass it down.
type Catalog struct {
	clubs    []Entry
	nations  []Entry
	leagues  []Entry
	specials []Category

	clubIndex   map[string]int
	nationIndex map[string]int
	leagueIndex map[string]int
}

func New(def Definition) (*Catalog, error) {
	c := &Catalog{
		clubIndex:   make(map[string]int),
		nationIndex: make(map[string]int),
		leagueIndex: make(map[string]int),
	}

	var err error
	if c.clubs, err = indexEntries("club", def.Clubs, c.clubIndex); err != nil {
		return nil, err
	}
	if c.nations, err = indexEntries("nation", def.Nations, c.nationIndex); err != nil {
		return nil, err
	}
	if c.leagues, err = indexEntries("league", def.Leagues, c.leagueIndex); err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(def.Specials))
	for _, item := range def.Specials {
		kind := ParseKind(string(item.Kind))
		if !kind.IsFlag() && !kind.IsThreshold() {
			return nil, fmt.Errorf("special category kind %q is not a flag or threshold", item.Kind)
		}
		special := c.Resolve(kind, item.Value)
		if strings.TrimSpace(item.Label) != "" {
			special.Label = strings.TrimSpace(item.Label)
		}
		if _, dup := seen[special.Key()]; dup {
			return nil, fmt.Errorf("duplicate special category %s", special.Key())
		}
		seen[special.Key()] = struct{}{}
		c.specials = append(c.specials, special)
	}

	return c, nil
}

// LoadFile reads a JSON catalog definition from disk.
func LoadFile(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}

	var def Definition
	if err := sonic.Unmarshal(raw, &def); err != nil {
		return nil, fmt.Errorf("decode catalog file: %w", err)
	}

	return New(def)
}

func indexEntries(kind string, items []Entry, index map[string]int) ([]Entry, error) {
	out := make([]Entry, 0, len(items))
	for _, item := range items {
		item.Code = strings.TrimSpace(item.Code)
		if item.Code == "" {
			return nil, fmt.Errorf("%s code is required", kind)
		}
		if strings.TrimSpace(item.Canonical) == "" {
			item.Canonical = item.Code
		}
		if strings.TrimSpace(item.Label) == "" {
			item.Label = item.Canonical
		}

		codeKey := textnorm.Fold(item.Code)
		if _, dup := index[codeKey]; dup {
			return nil, fmt.Errorf("duplicate %s code %q", kind, item.Code)
		}

		pos := len(out)
		out = append(out, item)
		index[codeKey] = pos
		for _, surface := range append([]string{item.Label, item.Canonical}, item.Aliases...) {
			key := textnorm.Fold(surface)
			if key == "" {
				continue
			}
			if _, taken := index[key]; !taken {
				index[key] = pos
			}
		}
	}
	return out, nil
}

// Resolve builds the Category for a wire kind and code. Unknown entity codes
// still resolve, matching on the raw code, so matching stays total.
func (c *Catalog) Resolve(kind Kind, code string) Category {
	code = strings.TrimSpace(code)
	switch {
	case kind == KindClub:
		return entryCategory(kind, code, c.lookup(c.clubs, c.clubIndex, code))
	case kind == KindNation:
		return entryCategory(kind, code, c.lookup(c.nations, c.nationIndex, code))
	case kind == KindLeague:
		return entryCategory(kind, code, c.lookup(c.leagues, c.leagueIndex, code))
	case kind.IsThreshold():
		return NewThreshold(kind, code, "")
	case kind.IsFlag():
		return Category{Kind: kind, Code: string(kind), Label: flagLabel(kind)}
	default:
		return Category{Kind: KindUnknown, Code: code, Label: code}
	}
}

func entryCategory(kind Kind, code string, entry *Entry) Category {
	if entry == nil {
		return Category{Kind: kind, Code: code, Label: code}
	}
	return Category{Kind: kind, Code: entry.Code, Label: entry.Label}
}

func (c *Catalog) lookup(entries []Entry, index map[string]int, code string) *Entry {
	pos, ok := index[textnorm.Fold(code)]
	if !ok {
		return nil
	}
	return &entries[pos]
}

// ResolveAliases returns every folded surface form accepted for a nation code:
// the code itself, the canonical name and all localized aliases.
func (c *Catalog) ResolveAliases(code string) []string {
	entry := c.lookup(c.nations, c.nationIndex, code)
	if entry == nil {
		return foldUnique([]string{code})
	}
	forms := append([]string{entry.Code, entry.Canonical, entry.Label}, entry.Aliases...)
	return foldUnique(forms)
}

// MatchValues returns the folded strings an entity category is matched with.
// Non-entity kinds return nil.
func (c *Catalog) MatchValues(cat Category) []string {
	switch cat.Kind {
	case KindNation:
		return c.ResolveAliases(cat.Code)
	case KindClub:
		return canonicalValues(c.lookup(c.clubs, c.clubIndex, cat.Code), cat.Code)
	case KindLeague:
		return canonicalValues(c.lookup(c.leagues, c.leagueIndex, cat.Code), cat.Code)
	default:
		return nil
	}
}

func canonicalValues(entry *Entry, fallback string) []string {
	if entry == nil {
		return foldUnique([]string{fallback})
	}
	return foldUnique([]string{entry.Canonical})
}

// Clubs returns the club pool as categories, ordered by code.
func (c *Catalog) Clubs() []Category {
	return entriesToCategories(KindClub, c.clubs)
}

func (c *Catalog) Nations() []Category {
	return entriesToCategories(KindNation, c.nations)
}

func (c *Catalog) Leagues() []Category {
	return entriesToCategories(KindLeague, c.leagues)
}

func (c *Catalog) Specials() []Category {
	return append([]Category(nil), c.specials...)
}

// Others returns the non-club pool: nations, leagues and specials.
func (c *Catalog) Others() []Category {
	out := make([]Category, 0, len(c.nations)+len(c.leagues)+len(c.specials))
	out = append(out, c.Nations()...)
	out = append(out, c.Leagues()...)
	out = append(out, c.Specials()...)
	return out
}

func entriesToCategories(kind Kind, entries []Entry) []Category {
	out := make([]Category, 0, len(entries))
	for _, e := range entries {
		out = append(out, Category{Kind: kind, Code: e.Code, Label: e.Label})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

func foldUnique(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		f := textnorm.Fold(v)
		if f == "" {
			continue
		}
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	return out
}

func flagLabel(kind Kind) string {
	switch kind {
	case KindChampion:
		return "League champion"
	case KindCupWinner:
		return "Cup winner"
	case KindTopScorer:
		return "League top scorer"
	default:
		return string(kind)
	}
}
