package arena

import (
	"strings"

	"github.com/muesli/termenv"

	"github.com/rocketscienceinc/tictactoe-ai/internal/tictactoe"
)

// Render - draws board one row per line, O in blue and X in red when out
// supports colours.
func Render(out *termenv.Output, board tictactoe.Board) string {
	var sb strings.Builder

	for r := range board.Size() {
		for c := range board.Size() {
			if c > 0 {
				sb.WriteByte(' ')
			}

			mark := board.At(r, c)
			switch mark {
			case tictactoe.MarkA:
				sb.WriteString(out.String(mark.String()).Foreground(termenv.ANSIBlue).Bold().String())
			case tictactoe.MarkB:
				sb.WriteString(out.String(mark.String()).Foreground(termenv.ANSIRed).Bold().String())
			default:
				sb.WriteString(out.String(mark.String()).Faint().String())
			}
		}
		sb.WriteByte('\n')
	}

	return sb.String()
}
