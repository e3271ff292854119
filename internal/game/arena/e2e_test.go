package arena_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mkaplan/roshambo/internal/config"
	"github.com/mkaplan/roshambo/internal/game/arena"
	"github.com/mkaplan/roshambo/internal/testutil"
	"github.com/mkaplan/roshambo/internal/transport"
)

const readTimeout = 2 * time.Second

// startServer brings up the full arena + acceptor stack on an
// ephemeral port and returns its address.
func startServer(t *testing.T) string {
	t.Helper()

	logger := zap.NewNop()
	a := arena.New(config.GameConfig{RoundsToWin: 2}, logger)
	go a.Run()
	t.Cleanup(a.Stop)

	cfg := config.ServerConfig{Host: "127.0.0.1", Port: 0, WriteTimeout: 5 * time.Second}
	acceptor := transport.NewAcceptor(cfg, a, logger)
	go func() {
		_ = acceptor.ListenAndServe()
	}()
	t.Cleanup(acceptor.Stop)

	require.Eventually(t, func() bool { return acceptor.Addr() != "" },
		2*time.Second, 5*time.Millisecond)
	return acceptor.Addr()
}

func TestFullMatchOverTCP(t *testing.T) {
	addr := startServer(t)

	alice := testutil.NewLineClient(t, addr)
	bob := testutil.NewLineClient(t, addr)

	alice.Send("A")
	alice.ReadUntil("--- Rock Paper Scissors ---", readTimeout)
	bob.Send("B")
	bob.ReadUntil("--- Rock Paper Scissors ---", readTimeout)

	alice.Send("join")
	alice.ReadUntil("Joined matchmaking queue", readTimeout)
	bob.Send("join")

	alice.ReadUntil("Playing against: B", readTimeout)
	bob.ReadUntil("Playing against: A", readTimeout)

	// Round 1: A wins.
	alice.Send("rock")
	alice.ReadUntil("Choice locked in!", readTimeout)
	bob.Send("scissors")

	out := alice.ReadUntil("Type 'ready' for next round!", readTimeout)
	assert.Contains(t, out, "A WINS this round!")
	assert.Contains(t, out, "Score: A 1 - 0 B")
	bob.ReadUntil("Type 'ready' for next round!", readTimeout)

	alice.Send("ready")
	alice.ReadUntil("Ready! Waiting for opponent...", readTimeout)
	bob.Send("ready")
	alice.ReadUntil("--- NEW ROUND ---", readTimeout)
	bob.ReadUntil("--- NEW ROUND ---", readTimeout)

	// Round 2: A wins the match.
	alice.Send("paper")
	bob.Send("rock")

	out = alice.ReadUntil("WINS THE MATCH!", readTimeout)
	assert.Contains(t, out, "--- GAME OVER ---")
	assert.Contains(t, out, "A WINS THE MATCH!")
	bob.ReadUntil("A WINS THE MATCH!", readTimeout)

	// Both are free to rejoin.
	alice.Send("join")
	alice.ReadUntil("Joined matchmaking queue", readTimeout)
}

func TestForfeitOverTCP(t *testing.T) {
	addr := startServer(t)

	alice := testutil.NewLineClient(t, addr)
	bob := testutil.NewLineClient(t, addr)

	alice.Send("A")
	alice.ReadUntil("--- Rock Paper Scissors ---", readTimeout)
	bob.Send("B")
	bob.ReadUntil("--- Rock Paper Scissors ---", readTimeout)

	alice.Send("join")
	bob.Send("join")
	alice.ReadUntil("Playing against: B", readTimeout)
	bob.ReadUntil("Playing against: A", readTimeout)

	alice.Send("rock")
	alice.ReadUntil("Choice locked in!", readTimeout)

	// B vanishes mid-round.
	bob.Close()

	out := alice.ReadUntil("You win by forfeit", readTimeout)
	assert.Contains(t, out, "--- OPPONENT DISCONNECTED ---")
	assert.Contains(t, out, "Your opponent, B, has left the game.")

	// A is back to connected and can queue again.
	alice.Send("join")
	alice.ReadUntil("Joined matchmaking queue", readTimeout)
}

func TestQuitOverTCP(t *testing.T) {
	addr := startServer(t)

	alice := testutil.NewLineClient(t, addr)
	alice.Send("A")
	alice.ReadUntil("--- Rock Paper Scissors ---", readTimeout)

	alice.Send("quit")
	alice.ReadUntil("Goodbye!", readTimeout)
}

func TestOutOfStateChoiceOverTCP(t *testing.T) {
	addr := startServer(t)

	alice := testutil.NewLineClient(t, addr)
	alice.Send("A")
	alice.ReadUntil("--- Rock Paper Scissors ---", readTimeout)

	alice.Send("rock")
	alice.ReadUntil("You're not in a game! Type 'join' to play.", readTimeout)
}
