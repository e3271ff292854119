// Package main provides the roshambo game server: a line-oriented TCP
// server that pairs connected players into best-of-three
// rock-paper-scissors matches.
package main

import (
	"context"
	"flag"
	"log"

	"go.uber.org/zap"

	"github.com/mkaplan/roshambo/internal/config"
	"github.com/mkaplan/roshambo/internal/game/arena"
	"github.com/mkaplan/roshambo/internal/observability"
	"github.com/mkaplan/roshambo/internal/server"
	"github.com/mkaplan/roshambo/internal/transport"
)

func main() {
	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("starting roshambo server",
		zap.String("addr", cfg.Server.Addr()),
		zap.Int("rounds_to_win", cfg.Game.RoundsToWin),
	)

	gameArena := arena.New(cfg.Game, logger)
	acceptor := transport.NewAcceptor(cfg.Server, gameArena, logger)

	// Stop order is the reverse of registration: the arena goes down
	// first so its conn closes unblock the session goroutines the
	// acceptor waits for.
	lifecycle := server.NewLifecycle(logger)
	lifecycle.Add("tcp", &server.FuncService{
		StartFn: acceptor.ListenAndServe,
		StopFn:  acceptor.Stop,
	})
	lifecycle.Add("arena", &server.FuncService{
		StartFn: gameArena.Start,
		StopFn:  gameArena.Stop,
	})

	if err := lifecycle.Run(context.Background()); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}
