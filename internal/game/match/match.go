// Package match implements the state machine for one two-player
// rock-paper-scissors match: round resolution, scoring, and
// best-of-N termination. It performs no I/O.
package match

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/mkaplan/roshambo/internal/game/rules"
)

// Phase tracks the overall state of a match.
type Phase int

// Match phases. GameOver is terminal.
const (
	PhaseRoundActive Phase = iota
	PhaseRoundComplete
	PhaseGameOver
)

// String returns the phase name for logging.
func (p Phase) String() string {
	switch p {
	case PhaseRoundActive:
		return "round_active"
	case PhaseRoundComplete:
		return "round_complete"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Seat is one participant slot. Handle and Name are captured at match
// creation and fixed for the lifetime of the match, so the entity stays
// informative even after a participant's player has been destroyed.
type Seat struct {
	Handle string
	Name   string
}

// RoundResult describes a resolved round.
type RoundResult struct {
	// Choices are the revealed throws, indexed by seat.
	Choices [2]rules.Choice
	// Outcome is the winner relation for the (seat 0, seat 1) pair.
	Outcome rules.Outcome
	// Scores are the running scores after applying this round.
	Scores [2]int
	// GameOver reports whether this round ended the match.
	GameOver bool
}

// Match is one active two-player match. The zero value is not usable;
// construct with New.
type Match struct {
	id          string
	seats       [2]Seat
	choices     [2]rules.Choice
	scores      [2]int
	phase       Phase
	roundsToWin int
}

// New creates a match between the two seats with all choices unset and
// the first round active.
//
// Precondition: seat handles must be distinct and non-empty; roundsToWin
// must be >= 1.
func New(first, second Seat, roundsToWin int) *Match {
	return &Match{
		id:          uuid.New().String(),
		seats:       [2]Seat{first, second},
		phase:       PhaseRoundActive,
		roundsToWin: roundsToWin,
	}
}

// ID returns the unique match identifier.
func (m *Match) ID() string {
	return m.id
}

// Phase returns the current match phase.
func (m *Match) Phase() Phase {
	return m.phase
}

// Seats returns both participant seats in order.
func (m *Match) Seats() [2]Seat {
	return m.seats
}

// Scores returns the running scores by seat.
func (m *Match) Scores() [2]int {
	return m.scores
}

// SeatOf returns the seat index of the given handle.
//
// Postcondition: Returns (index, true) if the handle participates in
// this match, or (0, false) otherwise.
func (m *Match) SeatOf(handle string) (int, bool) {
	for i, s := range m.seats {
		if s.Handle == handle {
			return i, true
		}
	}
	return 0, false
}

// Opponent returns the seat opposite the given handle, using the seat
// data captured at creation rather than any registry lookup.
//
// Postcondition: Returns (seat, true) if the handle participates in
// this match, or (Seat{}, false) otherwise.
func (m *Match) Opponent(handle string) (Seat, bool) {
	i, ok := m.SeatOf(handle)
	if !ok {
		return Seat{}, false
	}
	return m.seats[1-i], true
}

// RecordChoice stores the submitting participant's throw for the
// current round.
//
// Postcondition: Returns an error if the handle is not a participant,
// the round is not active, or the seat has already chosen.
func (m *Match) RecordChoice(handle string, choice rules.Choice) error {
	if m.phase != PhaseRoundActive {
		return fmt.Errorf("match %s: no round in progress (phase %s)", m.id, m.phase)
	}
	i, ok := m.SeatOf(handle)
	if !ok {
		return fmt.Errorf("match %s: handle %s is not a participant", m.id, handle)
	}
	if m.choices[i] != rules.None {
		return fmt.Errorf("match %s: %s already chose this round", m.id, m.seats[i].Name)
	}
	m.choices[i] = choice
	return nil
}

// BothChosen reports whether both choice slots are filled, which is
// exactly the trigger for round resolution.
func (m *Match) BothChosen() bool {
	return m.choices[0] != rules.None && m.choices[1] != rules.None
}

// ResolveRound compares the two throws, applies the score change, and
// advances the phase to PhaseRoundComplete, or to PhaseGameOver when a
// score reaches the win threshold.
//
// Precondition: BothChosen must be true.
// Postcondition: The winning seat's score increases by exactly 1; a tie
// changes no score.
func (m *Match) ResolveRound() (RoundResult, error) {
	if !m.BothChosen() {
		return RoundResult{}, fmt.Errorf("match %s: cannot resolve round before both choices are in", m.id)
	}

	outcome := rules.Winner(m.choices[0], m.choices[1])
	switch outcome {
	case rules.FirstWins:
		m.scores[0]++
	case rules.SecondWins:
		m.scores[1]++
	}

	m.phase = PhaseRoundComplete
	if m.scores[0] >= m.roundsToWin || m.scores[1] >= m.roundsToWin {
		m.phase = PhaseGameOver
	}

	return RoundResult{
		Choices:  m.choices,
		Outcome:  outcome,
		Scores:   m.scores,
		GameOver: m.phase == PhaseGameOver,
	}, nil
}

// StartNextRound clears both choice slots and reactivates the round.
//
// Postcondition: Returns an error if the match is already over.
func (m *Match) StartNextRound() error {
	if m.phase == PhaseGameOver {
		return fmt.Errorf("match %s: cannot start a round after game over", m.id)
	}
	m.choices = [2]rules.Choice{rules.None, rules.None}
	m.phase = PhaseRoundActive
	return nil
}

// IsOver reports whether the match has reached its terminal phase.
func (m *Match) IsOver() bool {
	return m.phase == PhaseGameOver
}

// MatchWinner returns the seat with the higher score.
//
// Precondition: IsOver must be true for the result to be meaningful.
func (m *Match) MatchWinner() Seat {
	if m.scores[0] > m.scores[1] {
		return m.seats[0]
	}
	return m.seats[1]
}
