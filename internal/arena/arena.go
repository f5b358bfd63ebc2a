// Package arena plays engine configurations against each other.
package arena

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ai/internal/search"
	"github.com/rocketscienceinc/tictactoe-ai/internal/tictactoe"
)

var (
	ErrNoGames          = errors.New("arena needs at least one game")
	ErrSamePlayerName   = errors.New("players need distinct names")
	ErrNegativeOpenings = errors.New("openings must not be negative")
)

// Player is one side of a match.
type Player struct {
	Name        string
	Engine      *search.Engine
	Algorithm   search.Algorithm
	Policy      search.DepthPolicy
	MoveTimeout time.Duration
}

type Config struct {
	Size  int
	Games int
	// Openings is the most random plies played before the engines take
	// over; each game draws its own count in [0, Openings].
	Openings int
	Seed     uint64
	// Parallel bounds the games played at once; 0 means one at a time.
	Parallel int

	First  Player
	Second Player
}

// GameRecord is one finished game. First holds O in even games and X in odd ones.
type GameRecord struct {
	Index   int
	OPlayer string
	XPlayer string
	Outcome tictactoe.Outcome
	Moves   []tictactoe.Move
	Nodes   int64
	Final   tictactoe.Board
}

// Winner - returns the winning player's name, "" on a draw.
func (r GameRecord) Winner() string {
	switch r.Outcome {
	case tictactoe.MarkAWins:
		return r.OPlayer
	case tictactoe.MarkBWins:
		return r.XPlayer
	default:
		return ""
	}
}

type Summary struct {
	FirstWins  int
	SecondWins int
	Draws      int
	Nodes      int64
	Games      []GameRecord
}

// Run - plays conf.Games games and tallies them. Games are independent: game
// i uses the random source seeded with Seed+i, so the result does not depend
// on scheduling.
func Run(ctx context.Context, logger zerolog.Logger, conf Config) (Summary, error) {
	if conf.Games <= 0 {
		return Summary{}, ErrNoGames
	}

	if conf.First.Name == conf.Second.Name {
		return Summary{}, fmt.Errorf("%w: %q", ErrSamePlayerName, conf.First.Name)
	}

	if conf.Openings < 0 {
		return Summary{}, fmt.Errorf("%w: %d", ErrNegativeOpenings, conf.Openings)
	}

	if _, err := tictactoe.NewBoard(conf.Size); err != nil {
		return Summary{}, err
	}

	logger.Info().
		Int("size", conf.Size).
		Int("games", conf.Games).
		Str("first", conf.First.Name).
		Str("second", conf.Second.Name).
		Msg("starting match")

	records := make([]GameRecord, conf.Games)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(conf.Parallel, 1))

	for i := range conf.Games {
		g.Go(func() error {
			record, err := playGame(gctx, conf, i)
			if err != nil {
				return fmt.Errorf("game %d: %w", i, err)
			}

			logger.Debug().
				Int("game", i).
				Str("o", record.OPlayer).
				Str("outcome", record.Outcome.String()).
				Int("plies", len(record.Moves)).
				Int64("nodes", record.Nodes).
				Msg("game finished")

			records[i] = record
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Summary{}, err
	}

	summary := Summary{Games: records}
	for _, record := range records {
		summary.Nodes += record.Nodes
		switch record.Winner() {
		case "":
			summary.Draws++
		case conf.First.Name:
			summary.FirstWins++
		default:
			summary.SecondWins++
		}
	}

	logger.Info().
		Int("first_wins", summary.FirstWins).
		Int("second_wins", summary.SecondWins).
		Int("draws", summary.Draws).
		Int64("nodes", summary.Nodes).
		Msg("match finished")

	return summary, nil
}

func playGame(ctx context.Context, conf Config, index int) (GameRecord, error) {
	oPlayer, xPlayer := conf.First, conf.Second
	if index%2 == 1 {
		oPlayer, xPlayer = xPlayer, oPlayer
	}

	state, err := tictactoe.NewGame(conf.Size)
	if err != nil {
		return GameRecord{}, err
	}

	record := GameRecord{Index: index, OPlayer: oPlayer.Name, XPlayer: xPlayer.Name}

	rng := rand.New(rand.NewSource(conf.Seed + uint64(index)))
	for range rng.Intn(conf.Openings + 1) {
		if state.IsTerminal() {
			break
		}

		moves := state.LegalMoves()
		move := moves[rng.Intn(len(moves))]
		if state, err = state.Apply(move); err != nil {
			return GameRecord{}, err
		}
		record.Moves = append(record.Moves, move)
	}

	for !state.IsTerminal() {
		player := xPlayer
		if state.ToMove() == tictactoe.MarkA {
			player = oPlayer
		}

		result, err := think(ctx, player, state)
		if err != nil {
			return GameRecord{}, err
		}

		if !result.HasMove {
			return GameRecord{}, fmt.Errorf("%w: %s found no move", apperror.ErrUnreachableSearch, player.Name)
		}

		if state, err = state.Apply(result.Move); err != nil {
			return GameRecord{}, err
		}
		record.Moves = append(record.Moves, result.Move)
		record.Nodes += result.Nodes
	}

	record.Outcome = state.Outcome()
	record.Final = state.Board()

	return record, nil
}

func think(ctx context.Context, player Player, state tictactoe.GameState) (search.Result, error) {
	if player.MoveTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, player.MoveTimeout)
		defer cancel()
	}

	return player.Engine.Search(ctx, state, player.Policy.Depth(state), player.Algorithm)
}
