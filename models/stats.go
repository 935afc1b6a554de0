package models

// MostActive reports the player with the most recorded match dates. When
// several players share the maximum, TiedPlayers carries all of them and
// Name holds the lexicographically first one.
type MostActive struct {
	Name        string   `json:"name"`
	Games       int      `json:"games"`
	TiedPlayers []string `json:"tied_players"`
}

type PlayerWinRate struct {
	Name        string  `json:"name"`
	GamesPlayed int     `json:"games_played"`
	Wins        int     `json:"wins"`
	WinRate     float64 `json:"win_rate"`
}

// StreakRecord is a single player's personal-best run length.
type StreakRecord struct {
	Player string `json:"player"`
	Streak int    `json:"streak"`
}

// Pairing aggregates the shared history of an unordered player pair.
// Player1 is always the lexicographically smaller name.
type Pairing struct {
	Player1       string  `json:"player1"`
	Player2       string  `json:"player2"`
	GamesTogether int     `json:"games_together"`
	WinsTogether  int     `json:"wins_together"`
	WinRate       float64 `json:"win_rate"`
}

type FunFact struct {
	Icon        string `json:"icon"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// StatsReport is the full statistics page payload. Sections that could not
// be computed keep their zero values; the report as a whole never fails.
type StatsReport struct {
	TotalMatches        int             `json:"total_matches"`
	ActivePlayers       int             `json:"active_players"`
	MostActivePlayer    MostActive      `json:"most_active_player"`
	WinRates            []PlayerWinRate `json:"win_rates"`
	RecentMatches       []MatchTotal    `json:"recent_matches"`
	LongestGameStreak   StreakRecord    `json:"longest_game_streak"`
	LongestWinStreak    StreakRecord    `json:"longest_win_streak"`
	LongestLosingStreak StreakRecord    `json:"longest_losing_streak"`
	BestPairings        []Pairing       `json:"best_pairings"`
	FunFacts            []FunFact       `json:"fun_facts,omitempty"`
}
