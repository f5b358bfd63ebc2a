package tictactoe

// window holds the indexes of WinLength consecutive cells along a row,
// column, diagonal or anti-diagonal.
type window [WinLength]int

// windowsBySize is filled once at init and only read afterwards.
var windowsBySize [MaxSize + 1][]window

func init() {
	for size := MinSize; size <= MaxSize; size++ {
		windowsBySize[size] = buildWindows(size)
	}
}

func windows(size int) []window {
	return windowsBySize[size]
}

// buildWindows - enumerates every sliding window of length WinLength. On a
// 3x3 board these are the 8 classic lines.
func buildWindows(size int) []window {
	span := size - WinLength + 1
	result := make([]window, 0, 2*size*span+2*span*span)

	index := func(row, col int) int { return row*size + col }

	for i := 0; i < size; i++ {
		for j := 0; j < span; j++ {
			var row, col window
			for k := 0; k < WinLength; k++ {
				row[k] = index(i, j+k)
				col[k] = index(j+k, i)
			}
			result = append(result, row, col)
		}
	}

	for i := 0; i < span; i++ {
		for j := 0; j < span; j++ {
			var diag, anti window
			for k := 0; k < WinLength; k++ {
				diag[k] = index(i+k, j+k)
				anti[k] = index(i+WinLength-1-k, j+k)
			}
			result = append(result, diag, anti)
		}
	}

	return result
}
