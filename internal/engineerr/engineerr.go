// Package engineerr defines the typed error kinds used across the engine
// so callers can classify failures with errors.Is instead of string
// matching: malformed input, semantic errors, and operational conditions
// such as a search deadline.
package engineerr

import "errors"

var (
	// ErrMalformedFEN marks a syntactically invalid FEN string: wrong
	// field count, bad piece character, bad empty-run digit, illegal
	// turn character, bad en-passant square, or a non-numeric/overflowing
	// move counter.
	ErrMalformedFEN = errors.New("malformed FEN")

	// ErrMalformedMove marks a syntactically invalid UCI move string.
	ErrMalformedMove = errors.New("malformed move")

	// ErrIllegalMove marks a semantically invalid move against a given
	// position: no friendly piece at the origin, a capture of one's own
	// piece, or a destination outside the legal move set.
	ErrIllegalMove = errors.New("illegal move")

	// ErrSearchDeadline names the operational "search deadline passed"
	// condition. The search driver does not return it: it tracks
	// cancellation with a per-worker flag and discards a canceled
	// iteration instead.
	ErrSearchDeadline = errors.New("search deadline exceeded")
)
