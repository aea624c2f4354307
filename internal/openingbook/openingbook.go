// Package openingbook reads a line-oriented opening database and serves
// a uniformly-random book move for a given Zobrist key (§6). Unlike the
// teacher's SAN/PGN-parsing book, this format is already keyed by hash:
// each record is `zhash_hex,N,uci1,uci2,...,uciN`, so loading never
// replays games through a move generator.
package openingbook

import (
	"bufio"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"

	"github.com/lmarchetti/pike/internal/bitboard"
	"github.com/lmarchetti/pike/internal/logging"
)

// Book is a Zobrist-key-indexed table of candidate book moves.
type Book struct {
	entries map[uint64][]bitboard.Move
}

// New returns an empty, usable Book. Probing an empty Book always misses.
func New() *Book {
	return &Book{entries: make(map[uint64][]bitboard.Move)}
}

// Load reads path into a fresh entry set, replacing any previously
// loaded content. Lines starting with '#' (after trimming whitespace)
// are comments; blank lines are skipped.
func (b *Book) Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	entries := make(map[uint64][]bitboard.Move)
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, moves, err := parseRecord(line)
		if err != nil {
			logging.GetLog().Warningf("opening book %s:%d: %s", path, lineNo, err)
			continue
		}
		entries[key] = moves
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	b.entries = entries
	logging.GetLog().Infof("loaded %d opening book entries from %s", len(entries), path)
	return nil
}

// parseRecord parses one `zhash_hex,N,uci1,...,uciN` line.
func parseRecord(line string) (uint64, []bitboard.Move, error) {
	fields := strings.Split(line, ",")
	if len(fields) < 2 {
		return 0, nil, fmt.Errorf("malformed record %q", line)
	}
	key, err := strconv.ParseUint(fields[0], 16, 64)
	if err != nil {
		return 0, nil, fmt.Errorf("bad zobrist hex %q: %w", fields[0], err)
	}
	n, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, nil, fmt.Errorf("bad move count %q: %w", fields[1], err)
	}
	if n != len(fields)-2 {
		return 0, nil, fmt.Errorf("record declares %d moves but lists %d", n, len(fields)-2)
	}
	moves := make([]bitboard.Move, 0, n)
	for _, uci := range fields[2:] {
		m, ok := bitboard.ParseUCI(strings.TrimSpace(uci))
		if !ok {
			return 0, nil, fmt.Errorf("bad uci move %q", uci)
		}
		moves = append(moves, m)
	}
	return key, moves, nil
}

// Probe returns a uniformly-random move among those recorded for key, or
// (NoMove, false) if key is not in the book.
func (b *Book) Probe(key uint64) (bitboard.Move, bool) {
	moves, ok := b.entries[key]
	if !ok || len(moves) == 0 {
		return bitboard.NoMove, false
	}
	return moves[rand.Intn(len(moves))], true
}

// Len reports how many positions the book has an entry for.
func (b *Book) Len() int {
	return len(b.entries)
}
