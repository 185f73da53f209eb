package fpl

// OverallStats is the subset of bootstrap-static the bot reads.
type OverallStats struct {
	Events       []Event `json:"events"`
	TotalPlayers int64   `json:"total_players"`
}

// Event is one gameweek.
type Event struct {
	ID                  int64  `json:"id"`
	Name                string `json:"name"`
	DeadlineTime        string `json:"deadline_time"`
	AverageEntryScore   int    `json:"average_entry_score"`
	HighestScore        *int   `json:"highest_score"`
	HighestScoringEntry *int64 `json:"highest_scoring_entry"`
	Finished            bool   `json:"finished"`
	DataChecked         bool   `json:"data_checked"`
	IsPrevious          bool   `json:"is_previous"`
	IsCurrent           bool   `json:"is_current"`
	IsNext              bool   `json:"is_next"`
}

// CurrentEvent returns the gameweek flagged is_current. Upstream guarantees
// exactly one outside the pre-season; that is not enforced here.
func (o OverallStats) CurrentEvent() (Event, bool) {
	for _, ev := range o.Events {
		if ev.IsCurrent {
			return ev, true
		}
	}
	return Event{}, false
}

// LeagueData is the classic league standings payload.
type LeagueData struct {
	League          League    `json:"league"`
	Standings       Standings `json:"standings"`
	NewEntries      Standings `json:"new_entries"`
	LastUpdatedData string    `json:"last_updated_data"`
}

type League struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Created     string `json:"created"`
	Closed      bool   `json:"closed"`
	LeagueType  string `json:"league_type"`
	Scoring     string `json:"scoring"`
	AdminEntry  *int64 `json:"admin_entry"`
	StartEvent  int    `json:"start_event"`
	CodePrivacy string `json:"code_privacy"`
	HasCup      bool   `json:"has_cup"`
}

type Standings struct {
	HasNext bool             `json:"has_next"`
	Page    int              `json:"page"`
	Results []StandingsEntry `json:"results"`
}

// StandingsEntry is one row of a classic league table.
type StandingsEntry struct {
	ID         int64  `json:"id"`
	EventTotal int    `json:"event_total"`
	PlayerName string `json:"player_name"`
	Rank       int    `json:"rank"`
	LastRank   int    `json:"last_rank"`
	RankSort   int    `json:"rank_sort"`
	Total      int    `json:"total"`
	Entry      int64  `json:"entry"`
	EntryName  string `json:"entry_name"`
}

// EntryData is the per-entry summary endpoint.
type EntryData struct {
	ID                   int64  `json:"id"`
	Name                 string `json:"name"`
	PlayerFirstName      string `json:"player_first_name"`
	PlayerLastName       string `json:"player_last_name"`
	PlayerRegionName     string `json:"player_region_name"`
	StartedEvent         int    `json:"started_event"`
	CurrentEvent         int    `json:"current_event"`
	SummaryOverallPoints int    `json:"summary_overall_points"`
	SummaryOverallRank   int64  `json:"summary_overall_rank"`
	SummaryEventPoints   int    `json:"summary_event_points"`
	SummaryEventRank     int64  `json:"summary_event_rank"`
}
