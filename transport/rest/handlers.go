package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-ai/internal/entity"
	"github.com/rocketscienceinc/tictactoe-ai/internal/search"
	"github.com/rocketscienceinc/tictactoe-ai/internal/service"
	"github.com/rocketscienceinc/tictactoe-ai/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-ai/pkg/handlers"
)

const maxBodyBytes = 1 << 20

var errBadRequest = errors.New("bad request")

type Handlers interface {
	CreateGame(w http.ResponseWriter, r *http.Request)
	GetGame(w http.ResponseWriter, r *http.Request)
	DeleteGame(w http.ResponseWriter, r *http.Request)
	MakeTurn(w http.ResponseWriter, r *http.Request)

	GetScore(w http.ResponseWriter, r *http.Request)
	Analyze(w http.ResponseWriter, r *http.Request)
}

type gamePlayService interface {
	StartGame(ctx context.Context, ownerID string, size int, gameType, humanMark string) (*entity.Game, error)
	MakeTurn(ctx context.Context, gameID string, row, col int) (*entity.Game, error)

	GetGame(ctx context.Context, gameID string) (*entity.Game, error)
	DeleteGame(ctx context.Context, gameID string) error
	GetScore(ctx context.Context, ownerID string) (*entity.Score, error)

	Analyze(ctx context.Context, state tictactoe.GameState, depth int, algorithm search.Algorithm) (search.Result, error)
}

type gameHandlers struct {
	logger *slog.Logger

	gamePlay gamePlayService
}

func NewHandlers(logger *slog.Logger, gamePlay gamePlayService) Handlers {
	return &gameHandlers{
		logger:   logger.With("component", "rest"),
		gamePlay: gamePlay,
	}
}

type createGameRequest struct {
	OwnerID string `json:"owner_id"`
	Size    int    `json:"size"`
	Type    string `json:"type"`
	Mark    string `json:"mark"`
}

type turnRequest struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

type analyzeRequest struct {
	Board     [][]string `json:"board"`
	OToMove   *bool      `json:"o_to_move"`
	Depth     *int       `json:"depth"`
	Algorithm string     `json:"algorithm"`
}

type analyzeResponse struct {
	Score    int             `json:"score"`
	Move     *tictactoe.Move `json:"move,omitempty"`
	Depth    int             `json:"depth"`
	Nodes    int64           `json:"nodes"`
	Complete bool            `json:"complete"`
	Outcome  string          `json:"outcome"`
}

func (that *gameHandlers) CreateGame(w http.ResponseWriter, r *http.Request) {
	var req createGameRequest
	if err := decode(w, r, &req); err != nil {
		that.writeError(w, err)
		return
	}

	if req.OwnerID == "" {
		that.writeError(w, fmt.Errorf("%w: owner_id is required", errBadRequest))
		return
	}

	if req.Size == 0 {
		req.Size = tictactoe.MinSize
	}

	if req.Type == "" {
		req.Type = entity.WithBotType
	}

	game, err := that.gamePlay.StartGame(r.Context(), req.OwnerID, req.Size, req.Type, req.Mark)
	if err != nil {
		that.writeError(w, err)
		return
	}

	handlers.WriteJSON(that.logger, w, http.StatusCreated, game)
}

func (that *gameHandlers) GetGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.gamePlay.GetGame(r.Context(), r.PathValue("id"))
	if err != nil {
		that.writeError(w, err)
		return
	}

	handlers.WriteJSON(that.logger, w, http.StatusOK, game)
}

func (that *gameHandlers) DeleteGame(w http.ResponseWriter, r *http.Request) {
	if err := that.gamePlay.DeleteGame(r.Context(), r.PathValue("id")); err != nil {
		that.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (that *gameHandlers) MakeTurn(w http.ResponseWriter, r *http.Request) {
	var req turnRequest
	if err := decode(w, r, &req); err != nil {
		that.writeError(w, err)
		return
	}

	game, err := that.gamePlay.MakeTurn(r.Context(), r.PathValue("id"), req.Row, req.Col)
	if err != nil {
		that.writeError(w, err)
		return
	}

	handlers.WriteJSON(that.logger, w, http.StatusOK, game)
}

func (that *gameHandlers) GetScore(w http.ResponseWriter, r *http.Request) {
	score, err := that.gamePlay.GetScore(r.Context(), r.PathValue("owner"))
	if err != nil {
		that.writeError(w, err)
		return
	}

	handlers.WriteJSON(that.logger, w, http.StatusOK, score)
}

// Analyze - searches an arbitrary position. Without o_to_move the side to
// move is taken from the mark counts, O moving first. Without depth the depth
// policy decides; depth 0 returns the static evaluation.
func (that *gameHandlers) Analyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := decode(w, r, &req); err != nil {
		that.writeError(w, err)
		return
	}

	board, err := tictactoe.ParseBoard(req.Board)
	if err != nil {
		that.writeError(w, err)
		return
	}

	algorithm, err := search.ParseAlgorithm(req.Algorithm)
	if err != nil {
		that.writeError(w, err)
		return
	}

	depth := service.AutoDepth
	if req.Depth != nil {
		if *req.Depth < 0 {
			that.writeError(w, fmt.Errorf("%w: %d", search.ErrNegativeDepth, *req.Depth))
			return
		}
		depth = *req.Depth
	}

	oToMove := board.Count(tictactoe.MarkA) <= board.Count(tictactoe.MarkB)
	if req.OToMove != nil {
		oToMove = *req.OToMove
	}
	state := tictactoe.NewGameState(board, oToMove)

	result, err := that.gamePlay.Analyze(r.Context(), state, depth, algorithm)
	if err != nil {
		that.writeError(w, err)
		return
	}

	resp := analyzeResponse{
		Score:    result.Score,
		Depth:    result.Depth,
		Nodes:    result.Nodes,
		Complete: result.Complete,
		Outcome:  state.Outcome().String(),
	}
	if result.HasMove {
		resp.Move = &result.Move
	}

	handlers.WriteJSON(that.logger, w, http.StatusOK, resp)
}

func decode(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid JSON body: %w", errBadRequest, err)
	}
	return nil
}

func (that *gameHandlers) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		that.logger.Error("request failed", "error", err)
		handlers.WriteError(that.logger, w, status, "Internal Server Error")
		return
	}

	handlers.WriteError(that.logger, w, status, err.Error())
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, apperror.ErrGameNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperror.ErrGameFinished),
		errors.Is(err, apperror.ErrNotYourTurn):
		return http.StatusConflict
	case errors.Is(err, errBadRequest),
		errors.Is(err, apperror.ErrInvalidMove),
		errors.Is(err, apperror.ErrInvalidBoardSize),
		errors.Is(err, apperror.ErrUnknownAlgorithm),
		errors.Is(err, apperror.ErrUnknownGameType),
		errors.Is(err, tictactoe.ErrUnknownMark),
		errors.Is(err, search.ErrNegativeDepth):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
