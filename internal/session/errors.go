package session

import (
	"errors"
	"unicode"
	"unicode/utf8"

	"xl-vim/internal/command"
	"xl-vim/internal/export"
	"xl-vim/internal/grid"
	"xl-vim/internal/history"
)

// Kind classifies an error for reporting.
type Kind int

const (
	KindNone Kind = iota
	// KindInput is a malformed command, reference or argument.
	KindInput
	// KindGuard is a rejected operation that would break an invariant.
	KindGuard
	// KindIO is a failure of a load, save or export collaborator.
	KindIO
	// KindInternal is a history record that could not be replayed.
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindInput:
		return "input"
	case KindGuard:
		return "guard"
	case KindIO:
		return "io"
	case KindInternal:
		return "internal"
	default:
		return "none"
	}
}

// Classify maps an error onto Kind.
func Classify(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, history.ErrInconsistent):
		return KindInternal
	case errors.Is(err, grid.ErrLastSheet),
		errors.Is(err, history.ErrNothingToUndo),
		errors.Is(err, history.ErrNothingToRedo):
		return KindGuard
	case errors.Is(err, command.ErrUnknownCommand),
		errors.Is(err, command.ErrUsage),
		errors.Is(err, grid.ErrSheetNotFound),
		errors.Is(err, grid.ErrBadReference),
		errors.Is(err, grid.ErrDuplicateSheet),
		errors.Is(err, grid.ErrEmptySheetName),
		errors.Is(err, export.ErrHeaderCount):
		return KindInput
	}
	return KindIO
}

// describe turns an error into notice text.
func describe(err error) string {
	msg := err.Error()
	if Classify(err) == KindInput || Classify(err) == KindGuard {
		r, n := utf8.DecodeRuneInString(msg)
		msg = string(unicode.ToUpper(r)) + msg[n:]
	}
	return msg
}
