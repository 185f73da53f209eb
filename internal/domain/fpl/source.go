package fpl

import "context"

// Source reads the public FPL API.
type Source interface {
	FetchOverallStats(ctx context.Context) (OverallStats, error)
	FetchLeagueStandings(ctx context.Context, leagueID int64) (LeagueData, error)
	FetchEntry(ctx context.Context, entryID int64) (EntryData, error)
}
