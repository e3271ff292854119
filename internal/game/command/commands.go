// Package command provides the command table, normalization, and the
// per-state legality rules for the wire protocol.
package command

import (
	"strings"

	"github.com/mkaplan/roshambo/internal/game/player"
)

// Names of the built-in commands.
const (
	NameJoin     = "join"
	NameRock     = "rock"
	NamePaper    = "paper"
	NameScissors = "scissors"
	NameReady    = "ready"
	NameQuit     = "quit"
)

// Command defines a player-invocable command and the single player
// state in which it is legal.
type Command struct {
	// Name is the canonical command word.
	Name string
	// Help is the short help text shown in the menu.
	Help string
	// RequiredState is the only state in which the command is legal.
	// Ignored when AnyState is set.
	RequiredState player.State
	// AnyState marks commands that are legal in every state.
	AnyState bool
}

// LegalIn reports whether the command may be issued from the given state.
func (c Command) LegalIn(state player.State) bool {
	return c.AnyState || c.RequiredState == state
}

// Builtin returns the full command table.
func Builtin() []Command {
	return []Command{
		{Name: NameJoin, Help: "Join matchmaking queue", RequiredState: player.StateConnected},
		{Name: NameRock, Help: "Throw rock", RequiredState: player.StateChoosing},
		{Name: NamePaper, Help: "Throw paper", RequiredState: player.StateChoosing},
		{Name: NameScissors, Help: "Throw scissors", RequiredState: player.StateChoosing},
		{Name: NameReady, Help: "Ready up for the next round", RequiredState: player.StateViewingResults},
		{Name: NameQuit, Help: "Exits the game", AnyState: true},
	}
}

// Normalize folds a received line into a command word: surrounding
// whitespace stripped, case-folded. The protocol has no arguments, so
// the whole line is the word.
func Normalize(line string) string {
	return strings.ToLower(strings.TrimSpace(line))
}
