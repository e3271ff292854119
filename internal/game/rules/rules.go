// Package rules provides the pure choice-comparison rules for
// rock-paper-scissors. It has no I/O and no knowledge of connections.
package rules

// Choice is one player's throw for a round.
type Choice int

// Valid choices. None marks a slot that has not been filled this round.
const (
	None Choice = iota
	Rock
	Paper
	Scissors
)

// String returns the lowercase display name of the choice.
func (c Choice) String() string {
	switch c {
	case Rock:
		return "rock"
	case Paper:
		return "paper"
	case Scissors:
		return "scissors"
	default:
		return "none"
	}
}

// ParseChoice maps a lowercased command word to a Choice.
//
// Postcondition: Returns (choice, true) for "rock", "paper", or "scissors",
// or (None, false) for anything else.
func ParseChoice(word string) (Choice, bool) {
	switch word {
	case "rock":
		return Rock, true
	case "paper":
		return Paper, true
	case "scissors":
		return Scissors, true
	default:
		return None, false
	}
}

// Outcome is the result of comparing two choices.
type Outcome int

// Round outcomes from the perspective of the (first, second) pair.
const (
	Tie Outcome = iota
	FirstWins
	SecondWins
)

// Winner compares two choices. Equal choices tie; Rock beats Scissors,
// Scissors beats Paper, Paper beats Rock; any other pair loses by symmetry.
//
// Precondition: first and second must not be None.
func Winner(first, second Choice) Outcome {
	if first == second {
		return Tie
	}

	if first == Rock && second == Scissors {
		return FirstWins
	}
	if first == Paper && second == Rock {
		return FirstWins
	}
	if first == Scissors && second == Paper {
		return FirstWins
	}

	return SecondWins
}
