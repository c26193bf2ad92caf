package internal

import (
	"iter"
)

// Grid iterates the half-open rectangle [rowStart, rowEnd) x [colStart, colEnd)
// in row-major order: ascending row, then ascending column.
func Grid(rowStart, rowEnd, colStart, colEnd int) iter.Seq2[int, int] {
	return func(yield func(row, col int) bool) {
		for row := rowStart; row < rowEnd; row++ {
			for col := colStart; col < colEnd; col++ {
				if !yield(row, col) {
					return // Stop if the consumer stops
				}
			}
		}
	}
}

// Span iterates the half-open range [start, end) in ascending order.
func Span(start, end int) iter.Seq[int] {
	return func(yield func(int) bool) {
		for n := start; n < end; n++ {
			if !yield(n) {
				return
			}
		}
	}
}
