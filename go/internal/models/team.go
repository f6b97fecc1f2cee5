package models

// NFLTeam is an NFL franchise with its bye week for the season.
type NFLTeam struct {
	Code    string `json:"code" yaml:"code"`
	City    string `json:"city" yaml:"city"`
	Name    string `json:"name" yaml:"name"`
	ByeWeek int    `json:"bye_week" yaml:"bye_week"`
}

// NFLTeams is the league-wide franchise table used when a player pool omits bye weeks.
var NFLTeams = []NFLTeam{
	{Code: "ARI", City: "Arizona", Name: "Cardinals", ByeWeek: 8},
	{Code: "ATL", City: "Atlanta", Name: "Falcons", ByeWeek: 5},
	{Code: "BAL", City: "Baltimore", Name: "Ravens", ByeWeek: 7},
	{Code: "BUF", City: "Buffalo", Name: "Bills", ByeWeek: 7},
	{Code: "CAR", City: "Carolina", Name: "Panthers", ByeWeek: 14},
	{Code: "CHI", City: "Chicago", Name: "Bears", ByeWeek: 5},
	{Code: "CIN", City: "Cincinnati", Name: "Bengals", ByeWeek: 10},
	{Code: "CLE", City: "Cleveland", Name: "Browns", ByeWeek: 9},
	{Code: "DAL", City: "Dallas", Name: "Cowboys", ByeWeek: 10},
	{Code: "DEN", City: "Denver", Name: "Broncos", ByeWeek: 12},
	{Code: "DET", City: "Detroit", Name: "Lions", ByeWeek: 8},
	{Code: "GB", City: "Green Bay", Name: "Packers", ByeWeek: 5},
	{Code: "HOU", City: "Houston", Name: "Texans", ByeWeek: 6},
	{Code: "IND", City: "Indianapolis", Name: "Colts", ByeWeek: 11},
	{Code: "JAX", City: "Jacksonville", Name: "Jaguars", ByeWeek: 8},
	{Code: "KC", City: "Kansas City", Name: "Chiefs", ByeWeek: 10},
	{Code: "LV", City: "Las Vegas", Name: "Raiders", ByeWeek: 8},
	{Code: "LAC", City: "Los Angeles", Name: "Chargers", ByeWeek: 12},
	{Code: "LAR", City: "Los Angeles", Name: "Rams", ByeWeek: 8},
	{Code: "MIA", City: "Miami", Name: "Dolphins", ByeWeek: 12},
	{Code: "MIN", City: "Minnesota", Name: "Vikings", ByeWeek: 6},
	{Code: "NE", City: "New England", Name: "Patriots", ByeWeek: 14},
	{Code: "NO", City: "New Orleans", Name: "Saints", ByeWeek: 11},
	{Code: "NYG", City: "New York", Name: "Giants", ByeWeek: 14},
	{Code: "NYJ", City: "New York", Name: "Jets", ByeWeek: 9},
	{Code: "PHI", City: "Philadelphia", Name: "Eagles", ByeWeek: 9},
	{Code: "PIT", City: "Pittsburgh", Name: "Steelers", ByeWeek: 5},
	{Code: "SF", City: "San Francisco", Name: "49ers", ByeWeek: 14},
	{Code: "SEA", City: "Seattle", Name: "Seahawks", ByeWeek: 8},
	{Code: "TB", City: "Tampa Bay", Name: "Buccaneers", ByeWeek: 9},
	{Code: "TEN", City: "Tennessee", Name: "Titans", ByeWeek: 10},
	{Code: "WAS", City: "Washington", Name: "Commanders", ByeWeek: 12},
}

// ByeWeekFor returns the bye week for an NFL team code, or 0 if unknown.
func ByeWeekFor(code string) int {
	for _, t := range NFLTeams {
		if t.Code == code {
			return t.ByeWeek
		}
	}
	return 0
}
