// Package player defines the per-connection player entity and its
// state machine. Players are created on accept and destroyed when the
// connection closes; only the arena loop mutates them.
package player

// State tracks what a player is currently doing in the game flow.
type State int

// Player states. Every command is legal in exactly one state except
// quit, which is legal in all of them.
const (
	// StateConnected means the player just connected (or finished a
	// match) and may join the matchmaking queue.
	StateConnected State = iota
	// StateInQueue means the player is waiting for matchmaking.
	StateInQueue
	// StateChoosing means the player is in a match and must throw
	// rock, paper, or scissors.
	StateChoosing
	// StateWaitingOnOpponent means the player has thrown and is
	// waiting for the opponent's choice.
	StateWaitingOnOpponent
	// StateViewingResults means the player is viewing round results
	// and may ready up for the next round.
	StateViewingResults
)

// String returns the state name for logging.
func (s State) String() string {
	switch s {
	case StateConnected:
		return "connected"
	case StateInQueue:
		return "in_queue"
	case StateChoosing:
		return "choosing"
	case StateWaitingOnOpponent:
		return "waiting_on_opponent"
	case StateViewingResults:
		return "viewing_results"
	default:
		return "unknown"
	}
}

// Player is one connected client. Handle is the opaque connection
// identifier used as the key in every registry.
type Player struct {
	// Handle is the unique connection identifier.
	Handle string
	// Name is the display name. It is empty until the first line
	// received from the connection, which is consumed as the username
	// and never as a command.
	Name string
	// State is the player's current position in the game flow.
	State State
	// RemoteAddr is the client's network address (for logging only).
	RemoteAddr string
}

// New creates a Player in StateConnected with an empty name.
//
// Precondition: handle must be non-empty and unique among live players.
func New(handle, remoteAddr string) *Player {
	return &Player{
		Handle:     handle,
		State:      StateConnected,
		RemoteAddr: remoteAddr,
	}
}

// Named reports whether the player has completed username entry.
func (p *Player) Named() bool {
	return p.Name != ""
}

// DisplayName returns the player's name, or "Unknown" before the
// username has been received.
func (p *Player) DisplayName() string {
	if p.Name == "" {
		return "Unknown"
	}
	return p.Name
}

// InMatch reports whether the player's state implies membership in an
// active match. The match registry invariant is keyed off this:
// a handle maps to a match iff its player is in one of these states.
func (p *Player) InMatch() bool {
	switch p.State {
	case StateChoosing, StateWaitingOnOpponent, StateViewingResults:
		return true
	default:
		return false
	}
}
