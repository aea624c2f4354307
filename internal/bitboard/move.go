package bitboard

// Promotion is the piece type a pawn promotes to, or PtNone for a
// non-promotion move.
type Promotion = PieceType

// Move is a single chess move: origin, destination, and an optional
// promotion piece. Score is populated by move-ordering heuristics in the
// search/movegen packages and is not part of move identity -- Equal
// ignores it. Castling is encoded as a king move of exactly two files;
// en-passant as a pawn diagonal move onto an empty square; promotion iff
// a pawn reaches the last rank.
type Move struct {
	From      Square
	To        Square
	Promotion Promotion
	Score     int
}

// NoMove is the sentinel for "no move available": both squares are
// SqNone, so it differs from the zero Move (a1a1).
var NoMove = Move{From: SqNone, To: SqNone}

// IsNone reports whether m is the NoMove sentinel.
func (m Move) IsNone() bool {
	return m.From == SqNone && m.To == SqNone
}

// Equal compares identity (from, to, promotion), ignoring Score.
func (m Move) Equal(o Move) bool {
	return m.From == o.From && m.To == o.To && m.Promotion == o.Promotion
}

var promoLetters = map[Promotion]byte{Queen: 'q', Rook: 'r', Bishop: 'b', Knight: 'n'}
var promoFromLetter = map[byte]Promotion{'q': Queen, 'r': Rook, 'b': Bishop, 'n': Knight}

// UCI renders the move in long algebraic ("e2e4", "e7e8q").
func (m Move) UCI() string {
	s := m.From.String() + m.To.String()
	if m.Promotion != PtNone {
		s += string(promoLetters[m.Promotion])
	}
	return s
}

// ParseUCI parses a long-algebraic move string. ok is false for malformed
// input (wrong length, bad squares, or an unrecognized promotion letter).
func ParseUCI(s string) (m Move, ok bool) {
	if len(s) != 4 && len(s) != 5 {
		return Move{}, false
	}
	from, ok1 := ParseSquare(s[0:2])
	to, ok2 := ParseSquare(s[2:4])
	if !ok1 || !ok2 {
		return Move{}, false
	}
	promo := PtNone
	if len(s) == 5 {
		p, found := promoFromLetter[s[4]]
		if !found {
			return Move{}, false
		}
		promo = p
	}
	return Move{From: from, To: to, Promotion: promo}, true
}
