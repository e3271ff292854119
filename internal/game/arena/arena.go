// Package arena is the coordinating core of the server. One goroutine
// owns the connection registry, the matchmaking queue, and the match
// registry, and is the only mutator of all three. Session goroutines
// feed it connect/line/disconnect events over a channel and never touch
// game state themselves, which preserves the atomicity the game rules
// assume: every event runs to completion before the next one starts.
package arena

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mkaplan/roshambo/internal/config"
	"github.com/mkaplan/roshambo/internal/game/command"
	"github.com/mkaplan/roshambo/internal/game/match"
	"github.com/mkaplan/roshambo/internal/game/matchmaking"
	"github.com/mkaplan/roshambo/internal/game/player"
	"github.com/mkaplan/roshambo/internal/transport"
)

type eventKind int

const (
	evConnect eventKind = iota
	evLine
	evDisconnect
)

// event is one unit of work for the arena loop.
type event struct {
	kind   eventKind
	handle string
	conn   *transport.Conn // evConnect only
	line   string          // evLine only
}

// client pairs a player entity with its transport connection. The
// connection registry maps handle to client and is the single source
// of truth for who is connected.
type client struct {
	player *player.Player
	conn   *transport.Conn
}

// Arena owns all shared game state. Construct with New, drive with
// Run (or the Start/Stop service methods), and connect clients through
// HandleSession.
type Arena struct {
	cfg      config.GameConfig
	logger   *zap.Logger
	registry *command.Registry

	events   chan event
	quit     chan struct{}
	stopOnce sync.Once
	stopped  chan struct{}

	// Owned exclusively by the Run goroutine.
	clients map[string]*client
	queue   *matchmaking.Queue
	matches map[string]*match.Match
}

// New creates an Arena with empty registries.
//
// Precondition: logger must be non-nil; cfg must be validated.
func New(cfg config.GameConfig, logger *zap.Logger) *Arena {
	return &Arena{
		cfg:      cfg,
		logger:   logger,
		registry: command.DefaultRegistry(),
		events:   make(chan event),
		quit:     make(chan struct{}),
		stopped:  make(chan struct{}),
		clients:  make(map[string]*client),
		queue:    matchmaking.NewQueue(),
		matches:  make(map[string]*match.Match),
	}
}

// Start runs the arena loop until Stop is called. Implements the
// lifecycle Service interface.
func (a *Arena) Start() error {
	a.Run()
	return nil
}

// Run consumes events one at a time until Stop closes the quit channel,
// then notifies and closes every remaining connection.
func (a *Arena) Run() {
	defer close(a.stopped)

	for {
		select {
		case ev := <-a.events:
			a.handleEvent(ev)
		case <-a.quit:
			a.shutdown()
			return
		}
	}
}

// Stop terminates the arena loop and waits for it to finish. Safe to
// call from multiple goroutines.
func (a *Arena) Stop() {
	a.stopOnce.Do(func() { close(a.quit) })
	<-a.stopped
}

// shutdown notifies and closes every live connection. Registry contents
// are dropped wholesale; session goroutines observe the closed conns.
func (a *Arena) shutdown() {
	for handle, c := range a.clients {
		_ = c.conn.WriteLine(msgShuttingDown)
		_ = c.conn.Close()
		delete(a.clients, handle)
	}
	a.matches = make(map[string]*match.Match)
	a.queue = matchmaking.NewQueue()
	a.logger.Info("arena stopped")
}

// post hands an event to the Run goroutine. Returns false when the
// arena is shutting down and the event was dropped.
func (a *Arena) post(ev event) bool {
	select {
	case a.events <- ev:
		return true
	case <-a.quit:
		return false
	}
}

// HandleSession implements transport.SessionHandler. It registers the
// connection with the arena loop, then pumps one event per received
// line until the connection drops. All game-state work happens on the
// arena goroutine; this goroutine only reads.
func (a *Arena) HandleSession(ctx context.Context, conn *transport.Conn) error {
	handle := uuid.New().String()

	if !a.post(event{kind: evConnect, handle: handle, conn: conn}) {
		return nil
	}

	for {
		line, err := conn.ReadLine()
		if err != nil {
			// Zero-length reads and I/O errors both mean the peer is
			// gone; the arena decides what cleanup that implies.
			a.post(event{kind: evDisconnect, handle: handle})
			return err
		}
		if !a.post(event{kind: evLine, handle: handle, line: line}) {
			return nil
		}
	}
}

// handleEvent processes one event to completion on the Run goroutine.
func (a *Arena) handleEvent(ev event) {
	switch ev.kind {
	case evConnect:
		a.handleConnect(ev.handle, ev.conn)
	case evLine:
		a.handleLine(ev.handle, ev.line)
	case evDisconnect:
		a.handleDisconnect(ev.handle)
	}
}

// handleConnect registers a new player with an empty name. Nothing is
// sent yet: the first line from the client is its username.
func (a *Arena) handleConnect(handle string, conn *transport.Conn) {
	addr := conn.RemoteAddr().String()
	a.clients[handle] = &client{
		player: player.New(handle, addr),
		conn:   conn,
	}
	a.logger.Info("player connected",
		zap.String("handle", handle),
		zap.String("remote_addr", addr),
	)
}

// send writes a single line to one client. Send failures are logged and
// otherwise ignored: if the connection is really gone, the next read on
// it reports the disconnect.
func (a *Arena) send(c *client, text string) {
	if err := c.conn.WriteLine(text); err != nil {
		a.logger.Debug("send failed",
			zap.String("handle", c.player.Handle),
			zap.Error(err),
		)
	}
}

// sendBlock writes a multi-line message block to one client.
func (a *Arena) sendBlock(c *client, text string) {
	if err := c.conn.Write([]byte(text)); err != nil {
		a.logger.Debug("send failed",
			zap.String("handle", c.player.Handle),
			zap.Error(err),
		)
	}
}

// broadcast sends a block to both participants of a match as one
// logical step: a failure on one send never suppresses the other.
func (a *Arena) broadcast(m *match.Match, text string) {
	for _, seat := range m.Seats() {
		if c, ok := a.clients[seat.Handle]; ok {
			a.sendBlock(c, text)
		}
	}
}
