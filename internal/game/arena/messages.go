package arena

import (
	"fmt"
	"strings"

	"github.com/mkaplan/roshambo/internal/game/command"
	"github.com/mkaplan/roshambo/internal/game/match"
	"github.com/mkaplan/roshambo/internal/game/player"
	"github.com/mkaplan/roshambo/internal/game/rules"
)

// menuText builds the welcome menu sent after the username is
// received, one line per registered command in registration order.
func menuText(r *command.Registry) string {
	var sb strings.Builder
	sb.WriteString("\n--- Rock Paper Scissors ---\n")
	sb.WriteString("Commands:\n")
	for _, cmd := range r.Commands() {
		sb.WriteString(fmt.Sprintf("%s - %s\n", cmd.Name, cmd.Help))
	}
	return sb.String()
}

const (
	msgQueueJoined   = "Joined matchmaking queue. Waiting for opponent..."
	msgChoiceLocked  = "Choice locked in! Waiting for opponent..."
	msgReadyWaiting  = "Ready! Waiting for opponent..."
	msgGoodbye       = "Goodbye!"
	msgShuttingDown  = "Server shutting down. Goodbye!"
	msgNewRoundBlock = "\n--- NEW ROUND ---\nType: rock, paper, or scissors\n"
)

// matchFoundText builds the match-found block naming the opponent.
func matchFoundText(opponentName string) string {
	var sb strings.Builder
	sb.WriteString("\n--- MATCH FOUND ---\n")
	sb.WriteString(fmt.Sprintf("Playing against: %s\n", opponentName))
	sb.WriteString("Choose: rock, paper, or scissors\n")
	return sb.String()
}

// roundResultText builds the round-result block: both choices revealed,
// round winner or tie, running score, and either the game-over trailer
// or the ready prompt.
func roundResultText(m *match.Match, res match.RoundResult) string {
	seats := m.Seats()

	var sb strings.Builder
	sb.WriteString("\n--- ROUND RESULT ---\n")
	sb.WriteString(fmt.Sprintf("%s chose: %s\n", seats[0].Name, res.Choices[0]))
	sb.WriteString(fmt.Sprintf("%s chose: %s\n", seats[1].Name, res.Choices[1]))

	switch res.Outcome {
	case rules.Tie:
		sb.WriteString("It's a TIE!\n")
	case rules.FirstWins:
		sb.WriteString(fmt.Sprintf("%s WINS this round!\n", seats[0].Name))
	case rules.SecondWins:
		sb.WriteString(fmt.Sprintf("%s WINS this round!\n", seats[1].Name))
	}

	sb.WriteString(fmt.Sprintf("\nScore: %s %d - %d %s\n",
		seats[0].Name, res.Scores[0], res.Scores[1], seats[1].Name))

	if res.GameOver {
		sb.WriteString("\n--- GAME OVER ---\n")
		sb.WriteString(fmt.Sprintf("%s WINS THE MATCH!\n", m.MatchWinner().Name))
		sb.WriteString("\nType 'join' to play again or 'quit' to leave\n")
	} else {
		sb.WriteString("\nType 'ready' for next round!\n")
	}

	return sb.String()
}

// forfeitText builds the notice sent to the surviving participant,
// naming the departing player.
func forfeitText(departedName string) string {
	var sb strings.Builder
	sb.WriteString("\n--- OPPONENT DISCONNECTED ---\n")
	sb.WriteString(fmt.Sprintf("Your opponent, %s, has left the game. You win by forfeit\n", departedName))
	sb.WriteString("Type 'join' to find a new match\n")
	return sb.String()
}

// stateGuidance returns the contextual message sent when a known
// command is issued outside its required state.
func stateGuidance(state player.State) string {
	switch state {
	case player.StateConnected:
		return "You're not in a game! Type 'join' to play."
	case player.StateInQueue:
		return "You're in queue. Please wait for a match."
	case player.StateChoosing:
		return "Invalid command! Type: rock, paper, or scissors"
	case player.StateWaitingOnOpponent:
		return "Waiting for opponent to choose..."
	case player.StateViewingResults:
		return "Type 'ready' for next round!"
	default:
		return "You're not in a game! Type 'join' to play."
	}
}

// unknownHint returns the state-specific hint for unrecognized text.
func unknownHint(state player.State) string {
	switch state {
	case player.StateConnected:
		return "Unknown command. Type 'join' to play!"
	case player.StateInQueue:
		return "Unknown command. You're in queue. Please wait for a match."
	case player.StateChoosing:
		return "Unknown command. Invalid choice! Type: rock, paper, or scissors"
	case player.StateWaitingOnOpponent:
		return "Unknown command. Waiting for opponent to choose..."
	case player.StateViewingResults:
		return "Unknown command. Type 'ready' for next round!"
	default:
		return "Unknown command. Type 'join' to play!"
	}
}
