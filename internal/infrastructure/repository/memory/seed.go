package memory

import "github.com/riskibarqy/football-grid/internal/domain/player"

type seedClub struct {
	name    string
	league  string
	goals   int
	assists int
}

type seedSeason struct {
	season  string
	club    string
	goals   int
	assists int
}

type seedPlayer struct {
	id, legacyID             int64
	name                     string
	apps, goals, assists     int
	champion, cup, topScorer bool
	retired                  bool
	nations                  []string
	clubs                    []seedClub
	seasons                  []seedSeason
}

func (s seedPlayer) profile() player.Profile {
	p := player.Profile{
		Player: player.Player{
			ID:          s.id,
			LegacyID:    s.legacyID,
			Name:        s.name,
			Appearances: s.apps,
			Goals:       s.goals,
			Assists:     s.assists,
			Trophies:    player.Trophies{Champion: s.champion, CupWinner: s.cup, TopScorer: s.topScorer},
			Retired:     s.retired,
		},
		Nations: append([]string(nil), s.nations...),
	}

	seenLeague := make(map[string]struct{})
	for _, c := range s.clubs {
		p.Clubs = append(p.Clubs, c.name)
		p.ClubStats = append(p.ClubStats, player.ScopedStat{Scope: c.name, Club: c.name, Goals: c.goals, Assists: c.assists})
		if _, ok := seenLeague[c.league]; !ok && c.league != "" {
			seenLeague[c.league] = struct{}{}
			p.Leagues = append(p.Leagues, c.league)
		}
	}
	for _, season := range s.seasons {
		p.SeasonStats = append(p.SeasonStats, player.ScopedStat{Scope: season.season, Club: season.club, Goals: season.goals, Assists: season.assists})
	}
	return p
}

// SeedPlayers returns a small Swiss-centred population for local runs and tests.
// Nation strings deliberately mix codes, German and English names.
func SeedPlayers() []player.Profile {
	seeds := []seedPlayer{
		{
			id: 86792, legacyID: 31050, name: "Xherdan Shaqiri", apps: 116, goals: 32, assists: 29,
			champion: true, cup: true, nations: []string{"Schweiz"},
			clubs: []seedClub{
				{name: "FC Basel 1893", league: "Super League", goals: 52, assists: 41},
				{name: "FC Bayern München", league: "Bundesliga", goals: 11, assists: 18},
				{name: "Inter Mailand", league: "Serie A", goals: 1, assists: 2},
				{name: "Stoke City", league: "Premier League", goals: 15, assists: 16},
				{name: "Liverpool FC", league: "Premier League", goals: 8, assists: 8},
			},
			seasons: []seedSeason{
				{season: "2011/12", club: "FC Basel 1893", goals: 9, assists: 12},
				{season: "2024/25", club: "FC Basel 1893", goals: 18, assists: 21},
			},
		},
		{
			id: 1204, legacyID: 1204, name: "Alexander Frei", apps: 84, goals: 157, assists: 41,
			champion: true, cup: true, topScorer: true, retired: true, nations: []string{"SUI"},
			clubs: []seedClub{
				{name: "FC Basel 1893", league: "Super League", goals: 73, assists: 22},
				{name: "Servette FC", league: "Super League", goals: 28, assists: 5},
				{name: "Borussia Dortmund", league: "Bundesliga", goals: 34, assists: 10},
				{name: "Stade Rennais", league: "Ligue 1", goals: 45, assists: 9},
			},
			seasons: []seedSeason{
				{season: "2004/05", club: "Stade Rennais", goals: 20, assists: 4},
				{season: "2010/11", club: "FC Basel 1893", goals: 27, assists: 8},
			},
		},
		{
			id: 5510, legacyID: 5510, name: "Marco Streller", apps: 37, goals: 123, assists: 38,
			champion: true, cup: true, topScorer: true, retired: true, nations: []string{"Switzerland"},
			clubs: []seedClub{
				{name: "FC Basel 1893", league: "Super League", goals: 111, assists: 34},
				{name: "VfB Stuttgart", league: "Bundesliga", goals: 12, assists: 4},
			},
			seasons: []seedSeason{{season: "2011/12", club: "FC Basel 1893", goals: 21, assists: 9}},
		},
		{
			id: 60233, legacyID: 42001, name: "Granit Xhaka", apps: 137, goals: 38, assists: 61,
			champion: true, cup: true, nations: []string{"Schweiz", "Kosovo"},
			clubs: []seedClub{
				{name: "FC Basel 1893", league: "Super League", goals: 1, assists: 3},
				{name: "Borussia Mönchengladbach", league: "Bundesliga", goals: 6, assists: 8},
				{name: "Arsenal FC", league: "Premier League", goals: 23, assists: 30},
				{name: "Bayer 04 Leverkusen", league: "Bundesliga", goals: 8, assists: 20},
			},
			seasons: []seedSeason{{season: "2022/23", club: "Arsenal FC", goals: 9, assists: 7}},
		},
		{
			id: 70410, legacyID: 45780, name: "Yann Sommer", apps: 94, goals: 0, assists: 1,
			champion: true, cup: true, nations: []string{"Suisse"},
			clubs: []seedClub{
				{name: "FC Basel 1893", league: "Super League"},
				{name: "FC Vaduz", league: "Challenge League"},
				{name: "Borussia Mönchengladbach", league: "Bundesliga"},
				{name: "FC Bayern München", league: "Bundesliga"},
				{name: "Inter Mailand", league: "Serie A"},
			},
		},
		{
			id: 91200, legacyID: 50321, name: "Breel Embolo", apps: 78, goals: 21, assists: 12,
			champion: true, cup: true, nations: []string{"CH", "Cameroon"},
			clubs: []seedClub{
				{name: "FC Basel 1893", league: "Super League", goals: 21, assists: 15},
				{name: "FC Schalke 04", league: "Bundesliga", goals: 8, assists: 6},
				{name: "Borussia Mönchengladbach", league: "Bundesliga", goals: 19, assists: 10},
				{name: "AS Monaco", league: "Ligue 1", goals: 21, assists: 5},
			},
			seasons: []seedSeason{{season: "2022/23", club: "AS Monaco", goals: 12, assists: 2}},
		},
		{
			id: 2201, legacyID: 2201, name: "Stéphane Chapuisat", apps: 103, goals: 195, assists: 60,
			champion: true, cup: true, topScorer: true, retired: true, nations: []string{"Schweiz"},
			clubs: []seedClub{
				{name: "Lausanne-Sport", league: "Super League", goals: 17, assists: 4},
				{name: "Borussia Dortmund", league: "Bundesliga", goals: 102, assists: 31},
				{name: "Grasshopper Club Zürich", league: "Super League", goals: 35, assists: 12},
				{name: "BSC Young Boys", league: "Super League", goals: 25, assists: 9},
			},
			seasons: []seedSeason{{season: "2003/04", club: "BSC Young Boys", goals: 23, assists: 6}},
		},
		{
			id: 3307, legacyID: 3307, name: "Ciriaco Sforza", apps: 79, goals: 40, assists: 52,
			champion: true, cup: true, retired: true, nations: []string{"Schweiz"},
			clubs: []seedClub{
				{name: "Grasshopper Club Zürich", league: "Super League", goals: 10, assists: 12},
				{name: "FC Aarau", league: "Super League", goals: 7, assists: 8},
				{name: "1. FC Kaiserslautern", league: "Bundesliga", goals: 18, assists: 24},
				{name: "FC Bayern München", league: "Bundesliga", goals: 5, assists: 8},
			},
		},
		{
			id: 48110, legacyID: 29870, name: "Guillaume Hoarau", apps: 5, goals: 181, assists: 44,
			champion: true, cup: true, topScorer: true, retired: true, nations: []string{"Frankreich"},
			clubs: []seedClub{
				{name: "BSC Young Boys", league: "Super League", goals: 119, assists: 31},
				{name: "Paris Saint-Germain", league: "Ligue 1", goals: 45, assists: 9},
				{name: "FC Sion", league: "Super League", goals: 6, assists: 2},
			},
			seasons: []seedSeason{{season: "2016/17", club: "BSC Young Boys", goals: 22, assists: 6}},
		},
		{
			id: 99321, legacyID: 61022, name: "Jean-Pierre Nsame", apps: 6, goals: 136, assists: 22,
			champion: true, cup: true, topScorer: true, nations: []string{"Kamerun"},
			clubs: []seedClub{
				{name: "BSC Young Boys", league: "Super League", goals: 119, assists: 18},
				{name: "Servette FC", league: "Super League", goals: 13, assists: 2},
				{name: "FC Lugano", league: "Super League", goals: 4, assists: 2},
			},
			seasons: []seedSeason{{season: "2019/20", club: "BSC Young Boys", goals: 32, assists: 4}},
		},
		{
			id: 102450, legacyID: 70111, name: "Fabian Frei", apps: 21, goals: 48, assists: 55,
			champion: true, cup: true, nations: []string{"Schweiz"},
			clubs: []seedClub{
				{name: "FC Basel 1893", league: "Super League", goals: 40, assists: 48},
				{name: "FSV Mainz 05", league: "Bundesliga", goals: 6, assists: 5},
				{name: "FC Winterthur", league: "Super League", goals: 2, assists: 2},
			},
		},
		{
			id: 77340, legacyID: 48002, name: "Haris Seferović", apps: 94, goals: 120, assists: 32,
			cup: true, topScorer: true, nations: []string{"SUI"},
			clubs: []seedClub{
				{name: "Grasshopper Club Zürich", league: "Super League", goals: 2, assists: 1},
				{name: "Eintracht Frankfurt", league: "Bundesliga", goals: 16, assists: 6},
				{name: "Benfica Lissabon", league: "Liga Portugal", goals: 64, assists: 15},
			},
			seasons: []seedSeason{{season: "2018/19", club: "Benfica Lissabon", goals: 23, assists: 6}},
		},
		{
			id: 65901, legacyID: 43119, name: "Ricardo Rodríguez", apps: 126, goals: 12, assists: 34,
			champion: true, cup: true, nations: []string{"Schweiz", "Spanien"},
			clubs: []seedClub{
				{name: "FC Zürich", league: "Super League", goals: 2, assists: 6},
				{name: "VfL Wolfsburg", league: "Bundesliga", goals: 16, assists: 25},
				{name: "AC Mailand", league: "Serie A", goals: 5, assists: 7},
				{name: "Torino FC", league: "Serie A", goals: 4, assists: 5},
			},
		},
		{
			id: 83002, legacyID: 52005, name: "Remo Freuler", apps: 72, goals: 9, assists: 16,
			champion: true, nations: []string{"Schweiz"},
			clubs: []seedClub{
				{name: "FC Winterthur", league: "Challenge League", goals: 5, assists: 4},
				{name: "FC Luzern", league: "Super League", goals: 3, assists: 7},
				{name: "Atalanta Bergamo", league: "Serie A", goals: 19, assists: 27},
				{name: "Bologna FC", league: "Serie A", goals: 4, assists: 6},
			},
		},
		{
			id: 88801, legacyID: 54440, name: "Manuel Akanji", apps: 72, goals: 4, assists: 3,
			champion: true, cup: true, nations: []string{"Schweiz"},
			clubs: []seedClub{
				{name: "FC Winterthur", league: "Challenge League"},
				{name: "FC Basel 1893", league: "Super League", goals: 1, assists: 1},
				{name: "Borussia Dortmund", league: "Bundesliga", goals: 2, assists: 2},
				{name: "Manchester City", league: "Premier League", goals: 4, assists: 3},
			},
		},
		{
			id: 4409, legacyID: 4409, name: "Hakan Yakin", apps: 87, goals: 105, assists: 88,
			champion: true, cup: true, retired: true, nations: []string{"Schweiz", "Türkei"},
			clubs: []seedClub{
				{name: "FC Basel 1893", league: "Super League", goals: 40, assists: 38},
				{name: "Grasshopper Club Zürich", league: "Super League", goals: 12, assists: 10},
				{name: "BSC Young Boys", league: "Super League", goals: 35, assists: 25},
				{name: "FC Luzern", league: "Super League", goals: 18, assists: 15},
			},
			seasons: []seedSeason{{season: "2006/07", club: "BSC Young Boys", goals: 16, assists: 12}},
		},
		{
			id: 6612, legacyID: 6612, name: "Scott Chipperfield", apps: 68, goals: 79, assists: 60,
			champion: true, cup: true, retired: true, nations: []string{"Australien"},
			clubs: []seedClub{
				{name: "FC Basel 1893", league: "Super League", goals: 79, assists: 60},
			},
		},
		{
			id: 58820, legacyID: 40312, name: "Valentin Stocker", apps: 31, goals: 86, assists: 70,
			champion: true, cup: true, retired: true, nations: []string{"Schweiz"},
			clubs: []seedClub{
				{name: "FC Basel 1893", league: "Super League", goals: 70, assists: 58},
				{name: "Hertha BSC", league: "Bundesliga", goals: 16, assists: 12},
			},
		},
		{
			id: 120010, legacyID: 88004, name: "Dan Ndoye", apps: 24, goals: 18, assists: 20,
			nations: []string{"Schweiz", "Senegal"},
			clubs: []seedClub{
				{name: "FC Basel 1893", league: "Super League", goals: 8, assists: 9},
				{name: "OGC Nizza", league: "Ligue 1", goals: 2, assists: 3},
				{name: "Bologna FC", league: "Serie A", goals: 8, assists: 8},
			},
		},
		{
			id: 131004, legacyID: 91777, name: "Zeki Amdouni", apps: 22, goals: 28, assists: 10,
			cup: true, nations: []string{"Switzerland", "Tunesien"},
			clubs: []seedClub{
				{name: "Lausanne-Sport", league: "Super League", goals: 18, assists: 5},
				{name: "FC Basel 1893", league: "Super League", goals: 6, assists: 2},
				{name: "FC Burnley", league: "Premier League", goals: 4, assists: 3},
			},
		},
	}

	out := make([]player.Profile, 0, len(seeds))
	for _, s := range seeds {
		out = append(out, s.profile())
	}
	return out
}
