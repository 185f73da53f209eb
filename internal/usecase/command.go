package usecase

import "strings"

// StandingsCommand is the only message text the bot reacts to.
const StandingsCommand = "fplbot, get latest standings"

// MatchCommand reports whether text is the standings command. Surrounding
// whitespace is ignored; case is not.
func MatchCommand(text string) bool {
	return strings.TrimSpace(text) == StandingsCommand
}
