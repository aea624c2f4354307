package position

import (
	"github.com/lmarchetti/pike/internal/bitboard"
)

// ZMax bounds the repetition-detection hash stack; it comfortably exceeds
// any realistic game length (§3).
const ZMax = 1024

// StartFen is the standard chess starting position.
const StartFen = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// Position is a trivially-copyable, fixed-size record: no heap
// references live inside it, so root-parallel search workers can copy a
// Position by value (assignment) and get an independent position with no
// shared mutable state, per §5/§9.
type Position struct {
	Board      [64]bitboard.Piece
	SideToMove bitboard.Color
	State      GameState

	Halfmoves int
	Fullmoves int

	KingSquare [2]bitboard.Square
	OccWhite   bitboard.Bitboard
	OccBlack   bitboard.Bitboard

	// EvalAcc is the running sum over (material + piece-square value)
	// for every piece except kings, white-positive.
	EvalAcc int
	// PawnRowSum is the signed sum of (white pawn rank - 1) + (black
	// pawn rank - 6) across all pawns on the board.
	PawnRowSum int

	ZHash uint64

	zhStack    [ZMax]uint64
	zhStackLen int

	// last caches facts about the most recent MakeMove that UnmakeMove
	// needs but cannot safely re-derive from board state alone. See
	// domove.go's lastMove type.
	last lastMove
}

// Snapshot holds the fields that MakeMove mutates but UnmakeMove does not
// restore by itself (§4.2): callers must save one of these before
// MakeMove and Restore it after the matching UnmakeMove. Halfmoves is
// included because UnmakeMove leaves it at the value MakeMove set rather
// than restoring the prior count (§9 open question) -- callers that care
// about 50-move-rule correctness must restore it explicitly via this
// snapshot.
type Snapshot struct {
	State      GameState
	ZHash      uint64
	EvalAcc    int
	PawnRowSum int
	OccWhite   bitboard.Bitboard
	OccBlack   bitboard.Bitboard
	Halfmoves  int
}

// TakeSnapshot captures the fields UnmakeMove does not itself restore.
func (p *Position) TakeSnapshot() Snapshot {
	return Snapshot{
		State:      p.State,
		ZHash:      p.ZHash,
		EvalAcc:    p.EvalAcc,
		PawnRowSum: p.PawnRowSum,
		OccWhite:   p.OccWhite,
		OccBlack:   p.OccBlack,
		Halfmoves:  p.Halfmoves,
	}
}

// Restore reinstates fields captured by TakeSnapshot.
func (p *Position) Restore(s Snapshot) {
	p.State = s.State
	p.ZHash = s.ZHash
	p.EvalAcc = s.EvalAcc
	p.PawnRowSum = s.PawnRowSum
	p.OccWhite = s.OccWhite
	p.OccBlack = s.OccBlack
	p.Halfmoves = s.Halfmoves
}

// CanCastleKingside reports whether c still holds its kingside castling
// right.
func (p *Position) CanCastleKingside(c bitboard.Color) bool {
	if c == bitboard.White {
		return p.State.hasWK()
	}
	return p.State.hasBK()
}

// CanCastleQueenside reports whether c still holds its queenside
// castling right.
func (p *Position) CanCastleQueenside(c bitboard.Color) bool {
	if c == bitboard.White {
		return p.State.hasWQ()
	}
	return p.State.hasBQ()
}

// OccAll returns the combined occupancy of both sides.
func (p *Position) OccAll() bitboard.Bitboard {
	return p.OccWhite | p.OccBlack
}

// Occ returns the occupancy bitboard for the given side.
func (p *Position) Occ(c bitboard.Color) bitboard.Bitboard {
	if c == bitboard.White {
		return p.OccWhite
	}
	return p.OccBlack
}

func (p *Position) setOcc(c bitboard.Color, b bitboard.Bitboard) {
	if c == bitboard.White {
		p.OccWhite = b
	} else {
		p.OccBlack = b
	}
}

// PushHash pushes the current ZHash onto the bounded repetition stack.
// Silently drops the push past ZMax -- no realistic game reaches it, and
// repetition detection degrades gracefully (a missed push just can't be
// matched later, it never panics).
func (p *Position) PushHash() {
	if p.zhStackLen < ZMax {
		p.zhStack[p.zhStackLen] = p.ZHash
		p.zhStackLen++
	}
}

// PopHash removes the most recently pushed hash.
func (p *Position) PopHash() {
	if p.zhStackLen > 0 {
		p.zhStackLen--
	}
}

// PushHistoricalHash appends a hash from imported game history (used to
// seed repetition detection from prior FENs, §6 "history").
func (p *Position) PushHistoricalHash(h uint64) {
	if p.zhStackLen < ZMax {
		p.zhStack[p.zhStackLen] = h
		p.zhStackLen++
	}
}

// RepetitionCount returns how many times the current ZHash occurs in the
// hash stack, including the current entry.
func (p *Position) RepetitionCount() int {
	count := 0
	for i := 0; i < p.zhStackLen; i++ {
		if p.zhStack[i] == p.ZHash {
			count++
		}
	}
	return count
}

// NewStartPosition returns the standard chess starting position.
func NewStartPosition() *Position {
	pos, err := FromFEN(StartFen)
	if err != nil {
		panic("start FEN must always parse: " + err.Error())
	}
	return pos
}
