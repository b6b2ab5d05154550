package board

import "errors"

// Error kinds raised by the board core. IllegalMove, InvalidNotation and
// AmbiguousNotation surface to the caller immediately and never leave a
// position partially mutated; the search-abort signal (searchTimeout in
// package engine) is internal to the search and never reaches callers.
var (
	ErrIllegalMove       = errors.New("board: illegal move")
	ErrInvalidNotation   = errors.New("board: invalid notation")
	ErrAmbiguousNotation = errors.New("board: ambiguous notation")
	ErrEmptyStack        = errors.New("board: pop with empty move stack")
)
