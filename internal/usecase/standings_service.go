package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/fplbot/internal/domain/chat"
	"github.com/riskibarqy/fplbot/internal/domain/fpl"
	"github.com/riskibarqy/fplbot/internal/domain/standings"
	"github.com/riskibarqy/fplbot/internal/observability"
	"github.com/riskibarqy/fplbot/internal/platform/logging"
	"github.com/riskibarqy/fplbot/internal/platform/tracing"
	"github.com/sourcegraph/conc"
	"github.com/sourcegraph/conc/iter"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/text/language"
)

const defaultEntryConcurrency = 16

var usecaseTracer = tracing.New("fplbot/internal/usecase")

type StandingsConfig struct {
	LeagueID         int64
	EntryConcurrency int
	Formatter        *standings.Formatter
}

type StandingsService struct {
	source           fpl.Source
	poster           chat.Poster
	formatter        *standings.Formatter
	leagueID         int64
	entryConcurrency int
	logger           *logging.Logger
	metrics          *observability.Metrics
}

func NewStandingsService(
	source fpl.Source,
	poster chat.Poster,
	cfg StandingsConfig,
	logger *logging.Logger,
	metrics *observability.Metrics,
) *StandingsService {
	if logger == nil {
		logger = logging.Default()
	}
	formatter := cfg.Formatter
	if formatter == nil {
		formatter = standings.NewFormatter(language.English)
	}
	concurrency := cfg.EntryConcurrency
	if concurrency < 1 {
		concurrency = defaultEntryConcurrency
	}

	return &StandingsService{
		source:           source,
		poster:           poster,
		formatter:        formatter,
		leagueID:         cfg.LeagueID,
		entryConcurrency: concurrency,
		logger:           logger,
		metrics:          metrics,
	}
}

// Snapshot is everything fetched for one standings post.
type Snapshot struct {
	Overall fpl.OverallStats
	League  fpl.LeagueData
	Entries []fpl.EntryData
}

// Collect fetches overall stats and the league table in parallel, then one
// entry per standings row. Entries come back in standings order. Any failed
// fetch aborts the whole collection.
func (s *StandingsService) Collect(ctx context.Context) (Snapshot, error) {
	ctx, span := usecaseTracer.Start(ctx, "usecase.StandingsService.Collect",
		attribute.Int64("fpl.league_id", s.leagueID),
	)
	defer span.End()

	if s.leagueID <= 0 {
		return Snapshot{}, fmt.Errorf("%w: league id must be greater than zero", ErrInvalidInput)
	}

	var (
		snap       Snapshot
		overallErr error
		leagueErr  error
		wg         conc.WaitGroup
	)
	wg.Go(func() {
		snap.Overall, overallErr = s.source.FetchOverallStats(ctx)
	})
	wg.Go(func() {
		snap.League, leagueErr = s.source.FetchLeagueStandings(ctx, s.leagueID)
	})
	wg.Wait()

	if overallErr != nil {
		return Snapshot{}, fmt.Errorf("%w: overall stats: %w", ErrUpstreamFetch, overallErr)
	}
	if leagueErr != nil {
		return Snapshot{}, fmt.Errorf("%w: league standings league_id=%d: %w", ErrUpstreamFetch, s.leagueID, leagueErr)
	}

	rows := snap.League.Standings.Results
	span.SetAttributes(attribute.Int("fpl.standings_rows", len(rows)))

	mapper := iter.Mapper[fpl.StandingsEntry, fpl.EntryData]{MaxGoroutines: s.entryConcurrency}
	entries, err := mapper.MapErr(rows, func(row *fpl.StandingsEntry) (fpl.EntryData, error) {
		entry, err := s.source.FetchEntry(ctx, row.Entry)
		if err != nil {
			return fpl.EntryData{}, fmt.Errorf("entry_id=%d: %w", row.Entry, err)
		}
		return entry, nil
	})
	if err != nil {
		return Snapshot{}, fmt.Errorf("%w: entries: %w", ErrUpstreamFetch, err)
	}
	snap.Entries = entries

	return snap, nil
}

// PostLatest collects the league standings and posts them to channel.
func (s *StandingsService) PostLatest(ctx context.Context, channel string) (err error) {
	ctx, span := usecaseTracer.Start(ctx, "usecase.StandingsService.PostLatest",
		attribute.String("slack.channel", channel),
	)
	defer span.End()

	startedAt := time.Now()
	defer func() {
		if err != nil {
			s.metrics.ObserveStandingsRun(observability.OutcomeError)
			span.RecordError(err)
			return
		}
		s.metrics.ObserveStandingsRun(observability.OutcomeOK)
		s.logger.InfoContext(ctx, "standings posted",
			"channel", channel,
			"league_id", s.leagueID,
			"duration", time.Since(startedAt),
		)
	}()

	if channel == "" {
		return fmt.Errorf("%w: channel is required", ErrInvalidInput)
	}

	snap, err := s.Collect(ctx)
	if err != nil {
		return err
	}

	msg, err := s.formatter.Format(channel, snap.Overall, snap.League, snap.Entries)
	if err != nil {
		return fmt.Errorf("format standings: %w", err)
	}

	if err := s.poster.PostMessage(ctx, msg); err != nil {
		return fmt.Errorf("%w: channel=%s: %w", ErrPostFailed, channel, err)
	}

	return nil
}
