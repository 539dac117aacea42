package category

import (
	"slices"
	"testing"
)

func TestCatalog_ResolveAliasesCoversEverySurfaceForm(t *testing.T) {
	t.Parallel()

	c := Default()
	aliases := c.ResolveAliases("SUI")

	for _, want := range []string{"sui", "schweiz", "switzerland", "suisse", "svizzera"} {
		if !slices.Contains(aliases, want) {
			t.Fatalf("expected alias %q in %v", want, aliases)
		}
	}

	byLocalName := c.ResolveAliases("Schweiz")
	if !slices.Equal(aliases, byLocalName) {
		t.Fatalf("alias lookup by localized name differs: %v vs %v", byLocalName, aliases)
	}
}

func TestCatalog_ResolveUnknownEntityFallsBackToRawCode(t *testing.T) {
	t.Parallel()

	c := Default()
	got := c.Resolve(KindClub, "FC Vaduz")
	if got.Kind != KindClub || got.Code != "FC Vaduz" {
		t.Fatalf("unexpected category: %+v", got)
	}
	if values := c.MatchValues(got); !slices.Equal(values, []string{"fc vaduz"}) {
		t.Fatalf("unexpected match values: %v", values)
	}
}

func TestCatalog_ResolveClubUsesCanonicalName(t *testing.T) {
	t.Parallel()

	c := Default()
	got := c.Resolve(KindClub, "basel")
	if got.Code != "Basel" || got.Label != "FC Basel" {
		t.Fatalf("unexpected club category: %+v", got)
	}
	if values := c.MatchValues(got); !slices.Equal(values, []string{"fc basel"}) {
		t.Fatalf("unexpected match values: %v", values)
	}
}

func TestCatalog_ResolveThresholdDefaults(t *testing.T) {
	t.Parallel()

	c := Default()
	tests := []struct {
		kind Kind
		raw  string
		want int
	}{
		{kind: KindClubGoals, raw: "", want: 50},
		{kind: KindSeasonAssists, raw: "abc", want: 10},
		{kind: KindGoals, raw: "75", want: 75},
		{kind: KindAssists, raw: "-3", want: 50},
	}

	for _, tc := range tests {
		got := c.Resolve(tc.kind, tc.raw)
		if got.Threshold != tc.want {
			t.Fatalf("%s(%q): threshold=%d want=%d", tc.kind, tc.raw, got.Threshold, tc.want)
		}
	}
}

func TestCatalog_UnknownKindResolvesToUnknown(t *testing.T) {
	t.Parallel()

	got := Default().Resolve(ParseKind("coach"), "x")
	if got.Kind != KindUnknown {
		t.Fatalf("expected unknown kind, got %q", got.Kind)
	}
}

func TestNew_RejectsDuplicateCodes(t *testing.T) {
	t.Parallel()

	_, err := New(Definition{
		Clubs: []Entry{{Code: "Basel"}, {Code: "basel"}},
	})
	if err == nil {
		t.Fatalf("expected duplicate code error")
	}
}

func TestParseKind(t *testing.T) {
	t.Parallel()

	tests := map[string]Kind{
		"team":       KindClub,
		"club":       KindClub,
		" Nation ":   KindNation,
		"club_goals": KindClubGoals,
		"unknown":    KindUnknown,
		"":           KindUnknown,
	}
	for raw, want := range tests {
		if got := ParseKind(raw); got != want {
			t.Fatalf("ParseKind(%q) = %q, want %q", raw, got, want)
		}
	}
}
