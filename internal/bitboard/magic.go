package bitboard

// Magic holds the per-square fancy-magic-bitboard data used to look up
// sliding attacks in O(1): a relevant-occupancy mask, a magic multiplier,
// a right-shift, and the per-square attack table itself.
//
// The numbers are found once at package init by the same deterministic
// search Stockfish popularized (seeded xorshift64star, "sparse" candidate
// filtering); once built they are immutable read-only tables for the rest
// of the engine -- move generation and search never derive or touch a
// magic number directly, only RookAttacks/BishopAttacks below.
type Magic struct {
	Mask  Bitboard
	Magic Bitboard
	Shift uint
	table []Bitboard
}

func (m *Magic) index(occupied Bitboard) uint {
	occ := occupied & m.Mask
	occ *= m.Magic
	occ >>= m.Shift
	return uint(occ)
}

var (
	rookMagics   [SqLength]Magic
	bishopMagics [SqLength]Magic
)

// RookAttacks returns the set of squares a rook on sq attacks given the
// full-board occupancy, via the magic index.
func RookAttacks(sq Square, occupied Bitboard) Bitboard {
	m := &rookMagics[sq]
	return m.table[m.index(occupied)]
}

// BishopAttacks returns the set of squares a bishop on sq attacks given
// the full-board occupancy.
func BishopAttacks(sq Square, occupied Bitboard) Bitboard {
	m := &bishopMagics[sq]
	return m.table[m.index(occupied)]
}

// QueenAttacks is the union of rook and bishop attacks from sq.
func QueenAttacks(sq Square, occupied Bitboard) Bitboard {
	return RookAttacks(sq, occupied) | BishopAttacks(sq, occupied)
}

var rookDirs = [4][2]int{{0, 1}, {0, -1}, {1, 0}, {-1, 0}}
var bishopDirs = [4][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}

// slidingAttack walks each of the four given directions from sq until it
// runs off the board or hits an occupied square (inclusive of that
// square), accumulating the swept bitboard. Only used at init time to
// build masks and reference attack sets; never called during search.
func slidingAttack(dirs *[4][2]int, sq Square, occupied Bitboard) Bitboard {
	var attacks Bitboard
	f0, r0 := sq.File(), sq.Rank()
	for _, d := range dirs {
		f, r := f0+d[0], r0+d[1]
		for f >= 0 && f < 8 && r >= 0 && r < 8 {
			s := SquareFromFileRank(f, r)
			attacks.PushSquare(s)
			if occupied.Has(s) {
				break
			}
			f += d[0]
			r += d[1]
		}
	}
	return attacks
}

// edgeMask returns the board-edge squares not on sq's own rank/file, the
// portion of a sliding ray that never needs representing in the relevant
// occupancy (the ray always terminates there regardless of blockers).
func edgeMask(sq Square) Bitboard {
	edges := (Rank1Bb | Rank8Bb) &^ RankBb(sq.Rank())
	edges |= (FileABb | FileHBb) &^ FileBb(sq.File())
	return edges
}

type prng struct{ s uint64 }

func (p *prng) next() uint64 {
	p.s ^= p.s >> 12
	p.s ^= p.s << 25
	p.s ^= p.s >> 27
	return p.s * 2685821657736338717
}

// sparse returns a random number with roughly 1/8th of its bits set,
// which empirically yields good magic-number candidates much faster than
// uniformly random 64-bit numbers.
func (p *prng) sparse() uint64 {
	return p.next() & p.next() & p.next()
}

// magicSeeds are per-rank PRNG seeds, picked (as in Stockfish) purely to
// make the search below terminate quickly; they carry no other meaning.
var magicSeeds = [8]uint64{728, 10316, 55013, 32803, 12281, 15100, 16645, 255}

func initMagicSet(magics *[SqLength]Magic, dirs *[4][2]int) {
	var occupancy, reference [4096]Bitboard
	var epoch [4096]int
	cnt := 0

	for sq := SqA1; sq < SqLength; sq++ {
		m := &magics[sq]
		edges := edgeMask(sq)
		m.Mask = slidingAttack(dirs, sq, BbZero) &^ edges
		m.Shift = uint(64 - m.Mask.PopCount())

		size := 0
		var b Bitboard
		for {
			occupancy[size] = b
			reference[size] = slidingAttack(dirs, sq, b)
			size++
			b = (b - m.Mask) & m.Mask
			if b == 0 {
				break
			}
		}
		m.table = make([]Bitboard, size)

		rng := &prng{s: magicSeeds[sq.Rank()]}
		for i := 0; i < size; {
			for m.Magic = 0; ; {
				m.Magic = Bitboard(rng.sparse())
				if ((m.Magic * m.Mask) >> 56).PopCount() >= 6 {
					continue
				}
				break
			}
			cnt++
			for i = 0; i < size; i++ {
				idx := m.index(occupancy[i])
				if epoch[idx] < cnt {
					epoch[idx] = cnt
					m.table[idx] = reference[i]
				} else if m.table[idx] != reference[i] {
					break
				}
			}
		}
	}
}

func init() {
	initMagicSet(&rookMagics, &rookDirs)
	initMagicSet(&bishopMagics, &bishopDirs)
}
