package position

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/lmarchetti/pike/internal/bitboard"
	"github.com/lmarchetti/pike/internal/engineerr"
)

var (
	regexFenPos        = regexp.MustCompile(`^[0-8pPnNbBrRqQkK/]+$`)
	regexWorB          = regexp.MustCompile(`^[wb]$`)
	regexCastlingRights = regexp.MustCompile(`^(K?Q?k?q?|-)$`)
	regexEnPassant      = regexp.MustCompile(`^([a-h][36]|-)$`)
)

// FromFEN parses the standard six-field FEN string into a Position,
// deriving occupancy, king squares, EvalAcc, PawnRowSum and ZHash from
// scratch (§4.2). Malformed input (wrong field count, bad piece char, bad
// empty-run digit, illegal turn char, bad en-passant square, or a
// non-numeric/overflowing move counter) returns engineerr.ErrMalformedFEN.
func FromFEN(fen string) (*Position, error) {
	fields := strings.Fields(strings.TrimSpace(fen))
	if len(fields) != 6 {
		return nil, fmt.Errorf("%w: expected 6 fields, got %d", engineerr.ErrMalformedFEN, len(fields))
	}

	boardField, turnField, castleField, epField, halfField, fullField := fields[0], fields[1], fields[2], fields[3], fields[4], fields[5]

	if !regexFenPos.MatchString(boardField) {
		return nil, fmt.Errorf("%w: invalid board field %q", engineerr.ErrMalformedFEN, boardField)
	}
	ranks := strings.Split(boardField, "/")
	if len(ranks) != 8 {
		return nil, fmt.Errorf("%w: expected 8 ranks, got %d", engineerr.ErrMalformedFEN, len(ranks))
	}

	var p Position
	for i, rankStr := range ranks {
		rank := 7 - i
		file := 0
		for _, ch := range rankStr {
			if ch >= '1' && ch <= '8' {
				skip := int(ch - '0')
				if file+skip > 8 {
					return nil, fmt.Errorf("%w: empty-run overflow on rank %d", engineerr.ErrMalformedFEN, rank+1)
				}
				file += skip
				continue
			}
			pc := bitboard.PieceFromChar(string(ch))
			if pc == bitboard.PieceNone {
				return nil, fmt.Errorf("%w: bad piece char %q", engineerr.ErrMalformedFEN, string(ch))
			}
			if file >= 8 {
				return nil, fmt.Errorf("%w: rank %d too long", engineerr.ErrMalformedFEN, rank+1)
			}
			sq := bitboard.SquareFromFileRank(file, rank)
			p.Board[sq] = pc
			file++
		}
		if file != 8 {
			return nil, fmt.Errorf("%w: rank %d does not sum to 8", engineerr.ErrMalformedFEN, rank+1)
		}
	}

	if !regexWorB.MatchString(turnField) {
		return nil, fmt.Errorf("%w: bad side-to-move char %q", engineerr.ErrMalformedFEN, turnField)
	}
	if turnField == "w" {
		p.SideToMove = bitboard.White
	} else {
		p.SideToMove = bitboard.Black
	}

	if !regexCastlingRights.MatchString(castleField) {
		return nil, fmt.Errorf("%w: bad castling field %q", engineerr.ErrMalformedFEN, castleField)
	}
	if strings.Contains(castleField, "K") {
		p.State |= castleWK
	}
	if strings.Contains(castleField, "Q") {
		p.State |= castleWQ
	}
	if strings.Contains(castleField, "k") {
		p.State |= castleBK
	}
	if strings.Contains(castleField, "q") {
		p.State |= castleBQ
	}

	if !regexEnPassant.MatchString(epField) {
		return nil, fmt.Errorf("%w: bad en-passant field %q", engineerr.ErrMalformedFEN, epField)
	}
	if epField != "-" {
		sq, ok := bitboard.ParseSquare(epField)
		if !ok {
			return nil, fmt.Errorf("%w: bad en-passant square %q", engineerr.ErrMalformedFEN, epField)
		}
		p.State.setEnPassant(sq.File())
	}

	half, err := strconv.Atoi(halfField)
	if err != nil || half < 0 || half > 99 {
		return nil, fmt.Errorf("%w: bad halfmove counter %q", engineerr.ErrMalformedFEN, halfField)
	}
	p.Halfmoves = half

	full, err := strconv.Atoi(fullField)
	if err != nil || full < 1 || full > 255 {
		return nil, fmt.Errorf("%w: bad fullmove counter %q", engineerr.ErrMalformedFEN, fullField)
	}
	p.Fullmoves = full

	p.deriveFromBoard()
	return &p, nil
}

// deriveFromBoard recomputes occupancy, king squares, EvalAcc,
// PawnRowSum and ZHash from Board/SideToMove/State, and seeds the
// repetition stack with the resulting hash. Called by FromFEN.
func (p *Position) deriveFromBoard() {
	p.OccWhite, p.OccBlack = 0, 0
	p.EvalAcc, p.PawnRowSum = 0, 0
	var hash uint64

	for sq := bitboard.SqA1; sq < bitboard.SqLength; sq++ {
		pc := p.Board[sq]
		if pc == bitboard.PieceNone {
			continue
		}
		if pc.ColorOf() == bitboard.White {
			p.OccWhite.PushSquare(sq)
		} else {
			p.OccBlack.PushSquare(sq)
		}
		hash ^= bitboard.ZPieceSquare[pc][sq]

		switch pc.TypeOf() {
		case bitboard.King:
			p.KingSquare[pc.ColorOf()] = sq
		case bitboard.Pawn:
			if pc.ColorOf() == bitboard.White {
				p.PawnRowSum += sq.Rank() - 1
			} else {
				p.PawnRowSum += sq.Rank() - 6
			}
			p.EvalAcc += bitboard.MaterialValue(pc) + bitboard.PieceSquareValue(pc, sq)
		default:
			p.EvalAcc += bitboard.MaterialValue(pc) + bitboard.PieceSquareValue(pc, sq)
		}
	}

	if p.SideToMove == bitboard.Black {
		hash ^= bitboard.ZSideToMove
	}
	hash ^= p.State.castlingKeys(&bitboard.ZCastling)
	if p.State.hasEnPassant() {
		hash ^= bitboard.ZEnPassantFile[p.State.enPassantFile()]
	}
	p.ZHash = hash

	p.zhStackLen = 0
	p.PushHash()
}

// ToFEN emits the canonical FEN for p: runs of empty squares collapsed,
// castling rights as "KQkq" or "-", en-passant as an algebraic square
// whose rank is 6 when white is to move (after a black double push) or 3
// when black is to move.
func (p *Position) ToFEN() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			pc := p.Board[bitboard.SquareFromFileRank(file, rank)]
			if pc == bitboard.PieceNone {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteByte(pc.Char())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	sb.WriteByte(' ')
	if p.SideToMove == bitboard.White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	castle := ""
	if p.State.hasWK() {
		castle += "K"
	}
	if p.State.hasWQ() {
		castle += "Q"
	}
	if p.State.hasBK() {
		castle += "k"
	}
	if p.State.hasBQ() {
		castle += "q"
	}
	if castle == "" {
		castle = "-"
	}
	sb.WriteString(castle)

	sb.WriteByte(' ')
	if p.State.hasEnPassant() {
		rank := 5 // 0-based rank 6, i.e. "rank 6" label, after black double push seen by white to move
		if p.SideToMove == bitboard.Black {
			rank = 2 // rank 3 label
		}
		sq := bitboard.SquareFromFileRank(p.State.enPassantFile(), rank)
		sb.WriteString(sq.String())
	} else {
		sb.WriteByte('-')
	}

	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.Halfmoves))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.Fullmoves))

	return sb.String()
}
