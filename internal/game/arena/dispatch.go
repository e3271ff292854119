package arena

import (
	"strings"

	"go.uber.org/zap"

	"github.com/mkaplan/roshambo/internal/game/command"
	"github.com/mkaplan/roshambo/internal/game/match"
	"github.com/mkaplan/roshambo/internal/game/player"
	"github.com/mkaplan/roshambo/internal/game/rules"
)

// handleLine routes one received line: the first line from a connection
// is the username, every later line is a command.
func (a *Arena) handleLine(handle, raw string) {
	c, ok := a.clients[handle]
	if !ok {
		// The player was destroyed after this line was queued, e.g. by
		// an opponent disconnect processed earlier in the same pass.
		a.logger.Debug("dropping line for unknown handle", zap.String("handle", handle))
		return
	}

	if !c.player.Named() {
		a.handleUsername(c, raw)
		return
	}

	word := command.Normalize(raw)
	cmd, ok := a.registry.Resolve(word)
	if !ok {
		a.send(c, unknownHint(c.player.State))
		return
	}

	if !cmd.LegalIn(c.player.State) {
		a.send(c, stateGuidance(c.player.State))
		return
	}

	switch cmd.Name {
	case command.NameJoin:
		a.handleJoin(c)
	case command.NameRock, command.NamePaper, command.NameScissors:
		a.handleChoice(c, word)
	case command.NameReady:
		a.handleReady(c)
	case command.NameQuit:
		a.send(c, msgGoodbye)
		a.handleDisconnect(handle)
	}
}

// handleUsername consumes the first line from a connection as the
// display name and replies with the menu. Blank lines are ignored so
// the name slot stays open.
func (a *Arena) handleUsername(c *client, raw string) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return
	}

	c.player.Name = name
	a.logger.Info("player named",
		zap.String("handle", c.player.Handle),
		zap.String("name", name),
	)
	a.sendBlock(c, menuText(a.registry))
}

// handleJoin puts the player in the matchmaking queue and immediately
// pairs the two oldest waiters when the queue reaches two.
func (a *Arena) handleJoin(c *client) {
	c.player.State = player.StateInQueue
	a.queue.Enqueue(c.player.Handle)
	a.send(c, msgQueueJoined)

	a.logger.Info("player queued",
		zap.String("handle", c.player.Handle),
		zap.String("name", c.player.Name),
		zap.Int("queue_len", a.queue.Len()),
	)

	first, second, ok := a.queue.PopPair()
	if !ok {
		return
	}
	a.startMatch(first, second)
}

// startMatch creates a match between two queued handles, registers it
// under both, and notifies both players.
func (a *Arena) startMatch(first, second string) {
	c1, ok1 := a.clients[first]
	c2, ok2 := a.clients[second]
	if !ok1 || !ok2 {
		// Queue membership implies registry membership; a miss here is
		// a consistency fault and must not crash. Requeue the survivor.
		a.logger.Warn("stale handle popped from queue",
			zap.String("first", first),
			zap.String("second", second),
		)
		if ok1 {
			a.queue.Enqueue(first)
		}
		if ok2 {
			a.queue.Enqueue(second)
		}
		return
	}

	m := match.New(
		match.Seat{Handle: first, Name: c1.player.Name},
		match.Seat{Handle: second, Name: c2.player.Name},
		a.cfg.RoundsToWin,
	)
	a.matches[first] = m
	a.matches[second] = m

	c1.player.State = player.StateChoosing
	c2.player.State = player.StateChoosing

	a.sendBlock(c1, matchFoundText(c2.player.Name))
	a.sendBlock(c2, matchFoundText(c1.player.Name))

	a.logger.Info("match started",
		zap.String("match_id", m.ID()),
		zap.String("player1", c1.player.Name),
		zap.String("player2", c2.player.Name),
	)
}

// handleChoice records a throw and resolves the round once both slots
// are filled.
func (a *Arena) handleChoice(c *client, word string) {
	m, ok := a.matches[c.player.Handle]
	if !ok {
		a.logger.Warn("choosing player has no match entry",
			zap.String("handle", c.player.Handle),
		)
		return
	}

	choice, ok := rules.ParseChoice(word)
	if !ok {
		a.send(c, unknownHint(c.player.State))
		return
	}

	if m.Phase() != match.PhaseRoundActive {
		// The submitter readied up early; the round restarts only once
		// the opponent readies too, so the throw cannot be recorded yet.
		a.send(c, msgReadyWaiting)
		return
	}

	if err := m.RecordChoice(c.player.Handle, choice); err != nil {
		a.logger.Warn("recording choice", zap.Error(err))
		a.send(c, stateGuidance(c.player.State))
		return
	}

	c.player.State = player.StateWaitingOnOpponent
	a.send(c, msgChoiceLocked)

	if m.BothChosen() {
		a.resolveRound(m)
	}
}

// resolveRound applies the round outcome and broadcasts the result
// block to both participants in one step. On game over the match is
// torn down and both players return to StateConnected; otherwise both
// move to StateViewingResults.
func (a *Arena) resolveRound(m *match.Match) {
	res, err := m.ResolveRound()
	if err != nil {
		a.logger.Error("resolving round", zap.String("match_id", m.ID()), zap.Error(err))
		return
	}

	a.broadcast(m, roundResultText(m, res))

	seats := m.Seats()
	a.logger.Info("round resolved",
		zap.String("match_id", m.ID()),
		zap.Stringer("choice1", res.Choices[0]),
		zap.Stringer("choice2", res.Choices[1]),
		zap.Int("score1", res.Scores[0]),
		zap.Int("score2", res.Scores[1]),
		zap.Bool("game_over", res.GameOver),
	)

	if res.GameOver {
		for _, seat := range seats {
			if pc, ok := a.clients[seat.Handle]; ok {
				pc.player.State = player.StateConnected
			}
			delete(a.matches, seat.Handle)
		}
		a.logger.Info("match finished",
			zap.String("match_id", m.ID()),
			zap.String("winner", m.MatchWinner().Name),
		)
		return
	}

	for _, seat := range seats {
		if pc, ok := a.clients[seat.Handle]; ok {
			pc.player.State = player.StateViewingResults
		}
	}
}

// handleReady marks the player ready. The new round starts only when
// both participants' current states say so; the check re-reads the
// registry rather than counting acknowledgements.
func (a *Arena) handleReady(c *client) {
	m, ok := a.matches[c.player.Handle]
	if !ok {
		a.logger.Warn("ready player has no match entry",
			zap.String("handle", c.player.Handle),
		)
		return
	}

	c.player.State = player.StateChoosing

	bothReady := true
	for _, seat := range m.Seats() {
		pc, ok := a.clients[seat.Handle]
		if !ok || pc.player.State != player.StateChoosing {
			bothReady = false
			break
		}
	}

	if !bothReady {
		a.send(c, msgReadyWaiting)
		return
	}

	if err := m.StartNextRound(); err != nil {
		a.logger.Error("starting next round", zap.String("match_id", m.ID()), zap.Error(err))
		return
	}
	a.broadcast(m, msgNewRoundBlock)
}

// handleDisconnect runs the full cleanup path for a departing handle:
// queue removal, forfeit notification, match teardown, and connection
// registry removal. It is invoked for read errors, peer closes, and
// the quit command, and is safe to call twice for the same handle.
func (a *Arena) handleDisconnect(handle string) {
	c, ok := a.clients[handle]
	if !ok {
		// Already cleaned up (quit followed by the read-error event, or
		// both sides of a match dropping near-simultaneously).
		return
	}

	name := c.player.DisplayName()
	a.queue.Remove(handle)

	if c.player.InMatch() {
		m, ok := a.matches[handle]
		if !ok {
			// The registry invariant says a player in a match state
			// always has a match entry; tolerate the fault, don't crash.
			a.logger.Warn("player in match state has no match entry",
				zap.String("handle", handle),
				zap.Stringer("state", c.player.State),
			)
		} else {
			// Identify the opponent from the seat data captured at match
			// creation; their player may or may not still exist.
			opp, _ := m.Opponent(handle)
			if oc, ok := a.clients[opp.Handle]; ok {
				a.sendBlock(oc, forfeitText(name))
				oc.player.State = player.StateConnected
			}
			delete(a.matches, opp.Handle)
			delete(a.matches, handle)

			a.logger.Info("match forfeited",
				zap.String("match_id", m.ID()),
				zap.String("departed", name),
				zap.String("opponent", opp.Name),
			)
		}
	}

	_ = c.conn.Close()
	delete(a.clients, handle)

	a.logger.Info("player disconnected",
		zap.String("handle", handle),
		zap.String("name", name),
	)
}
