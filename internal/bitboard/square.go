// Package bitboard provides the 64-bit square-set primitives, the piece
// and color enums, and the precomputed constant tables (Zobrist keys,
// piece values, piece-square tables, and magic-bitboard sliding-attack
// tables) that every other engine package builds on. Square 0 is a1,
// square 63 is h8; rank = square/8, file = square%8.
package bitboard

import "fmt"

// Square is a board square in the 0..63 range, a1=0 .. h8=63.
type Square int8

const (
	SqA1 Square = iota
	SqB1
	SqC1
	SqD1
	SqE1
	SqF1
	SqG1
	SqH1
	SqA2
	SqB2
	SqC2
	SqD2
	SqE2
	SqF2
	SqG2
	SqH2
	SqA3
	SqB3
	SqC3
	SqD3
	SqE3
	SqF3
	SqG3
	SqH3
	SqA4
	SqB4
	SqC4
	SqD4
	SqE4
	SqF4
	SqG4
	SqH4
	SqA5
	SqB5
	SqC5
	SqD5
	SqE5
	SqF5
	SqG5
	SqH5
	SqA6
	SqB6
	SqC6
	SqD6
	SqE6
	SqF6
	SqG6
	SqH6
	SqA7
	SqB7
	SqC7
	SqD7
	SqE7
	SqF7
	SqG7
	SqH7
	SqA8
	SqB8
	SqC8
	SqD8
	SqE8
	SqF8
	SqG8
	SqH8
	SqNone
	SqLength = SqNone
)

// Rank returns the 0-based rank (0 = rank 1) of the square.
func (sq Square) Rank() int { return int(sq) / 8 }

// File returns the 0-based file (0 = file a) of the square.
func (sq Square) File() int { return int(sq) % 8 }

// IsValid reports whether sq is one of the 64 board squares.
func (sq Square) IsValid() bool { return sq >= SqA1 && sq < SqNone }

const fileLabels = "abcdefgh"

// String renders the square in algebraic notation, e.g. "e4".
func (sq Square) String() string {
	if !sq.IsValid() {
		return "-"
	}
	return fmt.Sprintf("%c%d", fileLabels[sq.File()], sq.Rank()+1)
}

// SquareFromFileRank builds a square from a 0-based file and rank.
func SquareFromFileRank(file, rank int) Square {
	return Square(rank*8 + file)
}

// ParseSquare parses algebraic notation ("e4") into a Square. ok is false
// for malformed input.
func ParseSquare(s string) (sq Square, ok bool) {
	if len(s) != 2 {
		return SqNone, false
	}
	file := int(s[0] - 'a')
	rank := int(s[1] - '1')
	if file < 0 || file > 7 || rank < 0 || rank > 7 {
		return SqNone, false
	}
	return SquareFromFileRank(file, rank), true
}
