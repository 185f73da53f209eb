// Package standings renders classic league tables as chat messages.
//
// Rank movement convention: a smaller rank number is a better position, so a
// row whose rank dropped below its last_rank has improved and is marked with
// ArrowUp. A row that moved to a larger rank number has worsened and is
// marked with ArrowDown. Unchanged rows and rows with last_rank 0 (no
// previous gameweek yet) carry no indicator.
package standings

import (
	"errors"
	"fmt"

	"github.com/riskibarqy/fplbot/internal/domain/chat"
	"github.com/riskibarqy/fplbot/internal/domain/fpl"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	ArrowUp   = ":arrow_up:"
	ArrowDown = ":arrow_down:"

	titleEmoji = ":headingparrot:"
)

var ErrEntryCountMismatch = errors.New("entry stats count does not match standings rows")

type Movement int

const (
	Unchanged Movement = iota
	Improved
	Worsened
)

// RankMovement compares the current rank with last gameweek's rank.
func RankMovement(rank, lastRank int) Movement {
	switch {
	case lastRank == 0 || rank == lastRank:
		return Unchanged
	case rank < lastRank:
		return Improved
	default:
		return Worsened
	}
}

// Indicator maps a movement to its emoji, empty for Unchanged.
func (m Movement) Indicator() string {
	switch m {
	case Improved:
		return ArrowUp
	case Worsened:
		return ArrowDown
	default:
		return ""
	}
}

// Formatter builds standings messages. The zero value is not usable; use NewFormatter.
type Formatter struct {
	printer *message.Printer
}

// NewFormatter returns a formatter grouping digits per tag, e.g. 1,234,567 for English.
func NewFormatter(tag language.Tag) *Formatter {
	return &Formatter{printer: message.NewPrinter(tag)}
}

// Format is pure: entries[i] must hold the stats for league.Standings.Results[i].
func (f *Formatter) Format(channel string, overall fpl.OverallStats, league fpl.LeagueData, entries []fpl.EntryData) (chat.Message, error) {
	rows := league.Standings.Results
	if len(entries) != len(rows) {
		return chat.Message{}, fmt.Errorf("%w: rows=%d entries=%d", ErrEntryCountMismatch, len(rows), len(entries))
	}

	title := fmt.Sprintf("Here are the latest standings for %s *%s* %s", titleEmoji, league.League.Name, titleEmoji)

	blocks := make([]chat.Block, 0, 3+2*len(rows))
	blocks = append(blocks, chat.Section(title))
	if current, ok := overall.CurrentEvent(); ok {
		blocks = append(blocks, chat.Context(chat.Markdown(
			f.printer.Sprintf("%s • %d players", current.Name, overall.TotalPlayers),
		)))
	}
	blocks = append(blocks, chat.Divider())

	for i, row := range rows {
		blocks = append(blocks, f.rowBlock(row, entries[i]), chat.Divider())
	}

	return chat.Message{
		Channel: channel,
		Text:    fmt.Sprintf("Latest standings for %s", league.League.Name),
		Blocks:  blocks,
	}, nil
}

func (f *Formatter) rowBlock(row fpl.StandingsEntry, entry fpl.EntryData) chat.Block {
	rank := f.printer.Sprintf("*Rank:* %d", row.Rank)
	if indicator := RankMovement(row.Rank, row.LastRank).Indicator(); indicator != "" {
		rank += " " + indicator
	}

	return chat.SectionFields(
		chat.Markdown(rank),
		chat.Markdown(f.printer.Sprintf("*GW points:* %d", row.EventTotal)),
		chat.Markdown(fmt.Sprintf("*Player/Team:* %s - %s", row.PlayerName, row.EntryName)),
		chat.Markdown(f.printer.Sprintf("*Total:* %d", row.Total)),
		chat.Markdown(f.printer.Sprintf("*GW rank:* %d", entry.SummaryEventRank)),
		chat.Markdown(f.printer.Sprintf("*Overall rank:* %d", entry.SummaryOverallRank)),
	)
}
