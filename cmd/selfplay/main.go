package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/muesli/termenv"
	"github.com/rs/zerolog"

	"github.com/rocketscienceinc/tictactoe-ai/internal/arena"
	"github.com/rocketscienceinc/tictactoe-ai/internal/search"
	"github.com/rocketscienceinc/tictactoe-ai/internal/tictactoe"
)

type side struct {
	algorithm string
	strategy  string
	maxDepth  int
	ordering  bool
}

func main() {
	var (
		size     = flag.Int("size", 3, "board size")
		games    = flag.Int("games", 10, "number of games")
		openings = flag.Int("openings", 0, "maximum number of random opening plies")
		seed     = flag.Uint64("seed", uint64(time.Now().UnixNano()), "random seed for the openings")
		parallel = flag.Int("parallel", 4, "games played at once")
		timeout  = flag.Duration("timeout", time.Second, "time limit per move, 0 for none")
		show     = flag.Bool("show", false, "print the final board of every game")
		verbose  = flag.Bool("v", false, "log every game")

		first, second side
	)
	flag.StringVar(&first.algorithm, "first-algorithm", "minimax", "first engine: minimax or negamax")
	flag.StringVar(&first.strategy, "first-strategy", "weighted", "first engine: count or weighted")
	flag.IntVar(&first.maxDepth, "first-depth", 0, "first engine: depth cap, 0 for none")
	flag.BoolVar(&first.ordering, "first-ordering", true, "first engine: order moves by static score")
	flag.StringVar(&second.algorithm, "second-algorithm", "negamax", "second engine: minimax or negamax")
	flag.StringVar(&second.strategy, "second-strategy", "count", "second engine: count or weighted")
	flag.IntVar(&second.maxDepth, "second-depth", 0, "second engine: depth cap, 0 for none")
	flag.BoolVar(&second.ordering, "second-ordering", true, "second engine: order moves by static score")
	flag.Parse()

	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()

	firstPlayer, err := newPlayer("first", first, *timeout)
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid first engine")
	}

	secondPlayer, err := newPlayer("second", second, *timeout)
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid second engine")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	summary, err := arena.Run(ctx, logger, arena.Config{
		Size:     *size,
		Games:    *games,
		Openings: *openings,
		Seed:     *seed,
		Parallel: *parallel,
		First:    firstPlayer,
		Second:   secondPlayer,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("match failed")
	}

	out := termenv.NewOutput(os.Stdout)
	if *show {
		for _, record := range summary.Games {
			fmt.Fprintf(out, "game %d: O=%s X=%s, %s\n", record.Index, record.OPlayer, record.XPlayer, record.Outcome)
			fmt.Fprintln(out, arena.Render(out, record.Final))
		}
	}

	fmt.Fprintf(out, "first %d, second %d, draws %d, nodes %d\n",
		summary.FirstWins, summary.SecondWins, summary.Draws, summary.Nodes)
}

func newPlayer(name string, s side, timeout time.Duration) (arena.Player, error) {
	algorithm, err := search.ParseAlgorithm(s.algorithm)
	if err != nil {
		return arena.Player{}, err
	}

	strategy, err := tictactoe.ParseStrategy(s.strategy)
	if err != nil {
		return arena.Player{}, err
	}

	engine := search.NewEngine(
		search.WithEvaluator(tictactoe.NewEvaluator(tictactoe.WithStrategy(strategy))),
		search.WithMoveOrdering(s.ordering),
	)

	return arena.Player{
		Name:        fmt.Sprintf("%s(%s/%s)", name, algorithm, strategy),
		Engine:      engine,
		Algorithm:   algorithm,
		Policy:      search.DepthPolicy{MaxDepth: s.maxDepth},
		MoveTimeout: timeout,
	}, nil
}
