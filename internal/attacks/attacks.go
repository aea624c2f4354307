// Package attacks computes, for the side to move at a given node, how
// many checks it is in, which squares a non-king piece may move to in
// response, which friendly pieces are pinned, and along which ray a
// pinned piece may still move. The move generator consults this instead
// of doing a full make/unmake legality probe for every pseudo-legal
// move (§4.3).
package attacks

import (
	"github.com/lmarchetti/pike/internal/bitboard"
	"github.com/lmarchetti/pike/internal/position"
)

// Analysis is the attack/pin snapshot for one side at one node.
type Analysis struct {
	// NumChecks is 0, 1, or 2 (capped -- a third checker changes nothing
	// since double check already restricts the reply to king moves).
	NumChecks int
	// BlockMask is, when NumChecks==1, the set of squares a friendly
	// non-king piece may move to: the checking piece's square, plus (for
	// a sliding check) every empty square between the king and it. It is
	// unused when NumChecks is 0 or >=2.
	BlockMask bitboard.Bitboard
	// PinnedMask holds every friendly piece whose movement is
	// restricted to its pin ray.
	PinnedMask bitboard.Bitboard
	// PinRay[sq] is, for sq in PinnedMask, the set of squares sq may
	// move to without exposing the king: the line from the king through
	// sq to the pinner, inclusive.
	PinRay [bitboard.SqLength]bitboard.Bitboard
}

// between returns the bitboard of squares strictly between a and b,
// assuming they lie on a common rank, file, or diagonal. Used to build a
// block/pin ray without walking twice.
func between(a, b bitboard.Square) bitboard.Bitboard {
	af, ar := a.File(), a.Rank()
	bf, br := b.File(), b.Rank()
	df, dr := sign(bf-af), sign(br-ar)
	var out bitboard.Bitboard
	f, r := af+df, ar+dr
	for f != bf || r != br {
		out.PushSquare(bitboard.SquareFromFileRank(f, r))
		f += df
		r += dr
	}
	return out
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

func isRookLike(pt bitboard.PieceType) bool {
	return pt == bitboard.Rook || pt == bitboard.Queen
}

func isBishopLike(pt bitboard.PieceType) bool {
	return pt == bitboard.Bishop || pt == bitboard.Queen
}

// Analyze runs the checks/pins scan for side at pos.
func Analyze(pos *position.Position, side bitboard.Color) Analysis {
	var a Analysis
	enemy := side.Flip()
	king := pos.KingSquare[side]
	occAll := pos.OccAll()
	enemyOcc := pos.Occ(enemy)

	// 1. pawn-attack check.
	if bitboard.PawnAttacks[side][king]&enemyOcc != 0 {
		attackers := bitboard.PawnAttacks[side][king]
		for bb := attackers; bb != 0; {
			sq := bb.PopLsb()
			if pos.Board[sq].TypeOf() == bitboard.Pawn && pos.Board[sq].ColorOf() == enemy {
				a.NumChecks++
				a.BlockMask |= sq.Bb()
			}
		}
	}

	// 2. knight-attack check.
	if a.NumChecks < 2 {
		attackers := bitboard.KnightAttacks[king]
		for bb := attackers; bb != 0; {
			sq := bb.PopLsb()
			if pos.Board[sq].TypeOf() == bitboard.Knight && pos.Board[sq].ColorOf() == enemy {
				a.NumChecks++
				a.BlockMask |= sq.Bb()
			}
		}
	}

	// 3. eight sliding rays: check, or pin-candidate, or nothing.
	for dirIdx, d := range bitboard.SlidingDirections {
		rookRay := dirIdx < 4
		f, r := king.File()+d[0], king.Rank()+d[1]
		var candidate bitboard.Square = bitboard.SqNone
		for f >= 0 && f < 8 && r >= 0 && r < 8 {
			sq := bitboard.SquareFromFileRank(f, r)
			if occAll.Has(sq) {
				pc := pos.Board[sq]
				if candidate == bitboard.SqNone {
					if pc.ColorOf() == enemy {
						matches := (rookRay && isRookLike(pc.TypeOf())) || (!rookRay && isBishopLike(pc.TypeOf()))
						if matches {
							a.NumChecks++
							a.BlockMask |= between(king, sq) | sq.Bb()
						}
						break
					}
					candidate = sq
				} else {
					if pc.ColorOf() == enemy {
						matches := (rookRay && isRookLike(pc.TypeOf())) || (!rookRay && isBishopLike(pc.TypeOf()))
						if matches {
							a.PinnedMask.PushSquare(candidate)
							a.PinRay[candidate] = between(king, sq) | sq.Bb()
						}
					}
					break
				}
			}
			f += d[0]
			r += d[1]
		}
		if a.NumChecks >= 2 {
			return a
		}
	}

	// 4. enemy king contact, used only by king-move legality downstream.
	enemyKing := pos.KingSquare[enemy]
	if bitboard.KingAttacks[king].Has(enemyKing) {
		a.NumChecks++
	}

	return a
}

// IsAttacked reports whether sq is attacked by color by, independent of
// whose king (if any) stands there. Used by king-move and castling
// legality, which re-test safety by temporarily relocating the king
// rather than trusting the pin/check snapshot for the destination
// square (§9: block_mask alone is not sufficient there).
func IsAttacked(pos *position.Position, sq bitboard.Square, by bitboard.Color) bool {
	if bitboard.PawnAttacks[by.Flip()][sq]&pos.Occ(by) != 0 {
		for bb := bitboard.PawnAttacks[by.Flip()][sq]; bb != 0; {
			s := bb.PopLsb()
			if pos.Board[s].TypeOf() == bitboard.Pawn && pos.Board[s].ColorOf() == by {
				return true
			}
		}
	}
	if bitboard.KnightAttacks[sq]&pos.Occ(by) != 0 {
		for bb := bitboard.KnightAttacks[sq]; bb != 0; {
			s := bb.PopLsb()
			if pos.Board[s].TypeOf() == bitboard.Knight && pos.Board[s].ColorOf() == by {
				return true
			}
		}
	}
	if bitboard.KingAttacks[sq]&pos.Occ(by) != 0 {
		for bb := bitboard.KingAttacks[sq]; bb != 0; {
			s := bb.PopLsb()
			if pos.Board[s].TypeOf() == bitboard.King && pos.Board[s].ColorOf() == by {
				return true
			}
		}
	}
	occAll := pos.OccAll()
	if bitboard.RookAttacks(sq, occAll)&pos.Occ(by) != 0 {
		for bb := bitboard.RookAttacks(sq, occAll) & pos.Occ(by); bb != 0; {
			s := bb.PopLsb()
			if isRookLike(pos.Board[s].TypeOf()) {
				return true
			}
		}
	}
	if bitboard.BishopAttacks(sq, occAll)&pos.Occ(by) != 0 {
		for bb := bitboard.BishopAttacks(sq, occAll) & pos.Occ(by); bb != 0; {
			s := bb.PopLsb()
			if isBishopLike(pos.Board[s].TypeOf()) {
				return true
			}
		}
	}
	return false
}

// Legal reports whether moving the piece on origin to dest is legal
// given a, per the fast filter of §4.3 step 3 (non-king pieces only).
func (a Analysis) Legal(origin, dest bitboard.Square) bool {
	pinned := a.PinnedMask.Has(origin)
	if pinned && a.NumChecks >= 1 {
		return false
	}
	if pinned && !a.PinRay[origin].Has(dest) {
		return false
	}
	if a.NumChecks == 1 && !a.BlockMask.Has(dest) {
		return false
	}
	return true
}
