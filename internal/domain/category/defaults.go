package category

// DefaultDefinition is the built-in Swiss football catalog.
func DefaultDefinition() Definition {
	return Definition{
		Clubs: []Entry{
			{Code: "Basel", Label: "FC Basel", Canonical: "FC Basel"},
			{Code: "YB", Label: "BSC Young Boys", Canonical: "Young Boys", Aliases: []string{"Young Boys", "YB Bern"}},
			{Code: "Zuerich", Label: "FC Zürich", Canonical: "FC Zürich", Aliases: []string{"Zürich", "FCZ"}},
			{Code: "GC", Label: "Grasshopper Club Zürich", Canonical: "Grasshopper", Aliases: []string{"Grasshoppers"}},
			{Code: "Servette", Label: "Servette FC", Canonical: "Servette"},
			{Code: "Lugano", Label: "FC Lugano", Canonical: "Lugano"},
			{Code: "StGallen", Label: "FC St. Gallen", Canonical: "St. Gallen", Aliases: []string{"St. Gallen"}},
			{Code: "Luzern", Label: "FC Luzern", Canonical: "Luzern"},
			{Code: "Sion", Label: "FC Sion", Canonical: "Sion"},
			{Code: "Lausanne", Label: "FC Lausanne-Sport", Canonical: "Lausanne-Sport"},
			{Code: "Winterthur", Label: "FC Winterthur", Canonical: "Winterthur"},
			{Code: "Thun", Label: "FC Thun", Canonical: "FC Thun"},
			{Code: "Aarau", Label: "FC Aarau", Canonical: "FC Aarau"},
			{Code: "Xamax", Label: "Neuchâtel Xamax", Canonical: "Xamax"},
			{Code: "Bayern", Label: "FC Bayern München", Canonical: "Bayern München", Aliases: []string{"Bayern Munich"}},
		},
		Nations: []Entry{
			{Code: "SUI", Label: "Switzerland", Canonical: "Schweiz", Aliases: []string{"Switzerland", "Suisse", "Svizzera", "CH"}},
			{Code: "GER", Label: "Germany", Canonical: "Deutschland", Aliases: []string{"Germany", "Allemagne", "DE"}},
			{Code: "AUT", Label: "Austria", Canonical: "Österreich", Aliases: []string{"Austria", "Autriche", "AT"}},
			{Code: "FRA", Label: "France", Canonical: "Frankreich", Aliases: []string{"France", "FR"}},
			{Code: "ITA", Label: "Italy", Canonical: "Italien", Aliases: []string{"Italy", "Italia", "Italie", "IT"}},
			{Code: "KOS", Label: "Kosovo", Canonical: "Kosovo", Aliases: []string{"XK"}},
			{Code: "ALB", Label: "Albania", Canonical: "Albanien", Aliases: []string{"Albania", "Albanie", "AL"}},
			{Code: "SRB", Label: "Serbia", Canonical: "Serbien", Aliases: []string{"Serbia", "Serbie", "RS"}},
			{Code: "CRO", Label: "Croatia", Canonical: "Kroatien", Aliases: []string{"Croatia", "Croatie", "HR"}},
			{Code: "POR", Label: "Portugal", Canonical: "Portugal", Aliases: []string{"PT"}},
			{Code: "BRA", Label: "Brazil", Canonical: "Brasilien", Aliases: []string{"Brazil", "Brasil", "Brésil", "BR"}},
			{Code: "CMR", Label: "Cameroon", Canonical: "Kamerun", Aliases: []string{"Cameroon", "Cameroun", "CM"}},
		},
		Leagues: []Entry{
			{Code: "SL", Label: "Super League", Canonical: "Super League"},
			{Code: "CHL", Label: "Challenge League", Canonical: "Challenge League"},
			{Code: "BL", Label: "Bundesliga", Canonical: "Bundesliga"},
			{Code: "SA", Label: "Serie A", Canonical: "Serie A"},
			{Code: "L1", Label: "Ligue 1", Canonical: "Ligue 1"},
			{Code: "PL", Label: "Premier League", Canonical: "Premier League"},
		},
		Specials: []Special{
			{Kind: KindChampion},
			{Kind: KindCupWinner},
			{Kind: KindTopScorer},
			{Kind: KindGoals, Value: "100"},
			{Kind: KindAssists, Value: "50"},
			{Kind: KindClubGoals, Value: "50"},
			{Kind: KindClubAssists, Value: "50"},
			{Kind: KindSeasonGoals, Value: "10"},
			{Kind: KindSeasonAssists, Value: "10"},
		},
	}
}

// Default returns the built-in catalog. The built-in definition is known to be
// valid, so construction cannot fail.
func Default() *Catalog {
	c, err := New(DefaultDefinition())
	if err != nil {
		panic(err)
	}
	return c
}
