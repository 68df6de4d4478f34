package pipeline

import "errors"

// Sentinel errors for parsing. Any of these makes the orchestrator fall back
// to the escaped raw input.
var (
	ErrNestingTooDeep = errors.New("markup nesting exceeds limit")
	ErrInvalidUTF8    = errors.New("input is not valid UTF-8")
	ErrInternal       = errors.New("internal rendering error")
)
