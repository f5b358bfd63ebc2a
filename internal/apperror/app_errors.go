package apperror

import "errors"

var (
	ErrInvalidMove       = errors.New("invalid move")
	ErrInvalidBoardSize  = errors.New("invalid board size")
	ErrUnreachableSearch = errors.New("search reached a non-terminal state without legal moves")
	ErrUnknownAlgorithm  = errors.New("unknown search algorithm")
	ErrGameFinished      = errors.New("game is already finished")
	ErrNotYourTurn       = errors.New("it's not your turn")
	ErrGameNotFound      = errors.New("game not found")
	ErrUnknownGameType   = errors.New("unknown game type")
)
