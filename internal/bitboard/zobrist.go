package bitboard

// zobristRand is the fixed-seed xorshift generator used to fill the
// Zobrist key tables. It uses the same output multiplier as magic.go's
// prng but applies its three shifts in a different order.
type zobristRand struct{ s uint64 }

func (r *zobristRand) next() uint64 {
	r.s ^= r.s << 25
	r.s ^= r.s >> 27
	r.s ^= r.s >> 12
	return r.s * 2685821657736338717
}

// Zobrist key tables. PieceSquare is indexed [piece][square]; SideToMove
// is XORed in whenever it's black to move; Castling holds one key per
// castling-right bit (WK,WQ,BK,BQ in that order) so the combined key for
// a rights set is the XOR of the bits present; EnPassantFile holds one
// key per file, applied only when the en-passant flag is set.
var (
	ZPieceSquare   [PieceLength][SqLength]uint64
	ZSideToMove    uint64
	ZCastling      [4]uint64
	ZEnPassantFile [8]uint64
)

func init() {
	r := &zobristRand{s: 1070372}
	for p := PieceNone; p < PieceLength; p++ {
		for sq := SqA1; sq < SqLength; sq++ {
			ZPieceSquare[p][sq] = r.next()
		}
	}
	ZSideToMove = r.next()
	for i := range ZCastling {
		ZCastling[i] = r.next()
	}
	for i := range ZEnPassantFile {
		ZEnPassantFile[i] = r.next()
	}
}
