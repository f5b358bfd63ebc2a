package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rocketscienceinc/tictactoe-ai/internal/config"
	"github.com/rocketscienceinc/tictactoe-ai/internal/repository"
	"github.com/rocketscienceinc/tictactoe-ai/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-ai/internal/search"
	"github.com/rocketscienceinc/tictactoe-ai/internal/service"
	"github.com/rocketscienceinc/tictactoe-ai/transport/rest"
)

const shutdownTimeout = 5 * time.Second

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	botService, err := newBotService(logger, &conf.Engine)
	if err != nil {
		return err
	}

	redisAddrString := conf.Redis.GetRedisAddr()
	if redisAddrString == "" {
		return ErrAddrNotFound
	}

	redisStorage, err := storage.New(ctx, redisAddrString)
	if err != nil {
		return fmt.Errorf("could not connect to redis storage: %w", err)
	}

	defer func() {
		if err = redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}()

	gameService := service.NewGameService(repository.NewGameRepository(redisStorage))
	scoreService := service.NewScoreService(repository.NewScoreRepository(redisStorage))
	gamePlayService := service.NewGamePlayService(logger, gameService, scoreService, botService)

	server := rest.NewServer(conf.HTTPPort, rest.NewHandlers(logger, gamePlayService))

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		if httpErr := server.Start(); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	select {
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer shutdownCancel()

		return server.Shutdown(shutdownCtx)
	}
}

func newBotService(logger *slog.Logger, conf *config.Engine) (service.BotService, error) {
	options, err := conf.SearchOptions()
	if err != nil {
		return nil, err
	}

	algorithm, err := conf.SearchAlgorithm()
	if err != nil {
		return nil, err
	}

	logger.Info("engine configured",
		"algorithm", algorithm,
		"strategy", conf.Strategy,
		"max_depth", conf.MaxDepth,
		"node_target", conf.NodeTarget,
		"move_timeout", conf.MoveTimeout,
	)

	return service.NewBotService(logger, search.NewEngine(options...), service.BotSettings{
		Algorithm:   algorithm,
		Policy:      conf.DepthPolicy(),
		MoveTimeout: conf.MoveTimeout,
	}), nil
}
