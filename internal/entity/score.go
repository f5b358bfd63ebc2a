package entity

const (
	ScoreFieldPlayer1 = "player1"
	ScoreFieldPlayer2 = "player2"
	ScoreFieldDraws   = "draws"
)

// Score counts finished games of one owner. Player1 is the owner, Player2
// the opponent: the engine or the second local player.
type Score struct {
	Player1 int64 `json:"player1" redis:"player1"`
	Player2 int64 `json:"player2" redis:"player2"`
	Draws   int64 `json:"draws" redis:"draws"`
}

// ScoreField - returns the Score counter a finished game adds to, "" while
// the game is still going.
func (that *Game) ScoreField() string {
	if !that.IsFinished() {
		return ""
	}

	switch that.Winner {
	case PlayerTie:
		return ScoreFieldDraws
	case that.HumanMark:
		return ScoreFieldPlayer1
	default:
		return ScoreFieldPlayer2
	}
}
