package search

import (
	"errors"

	"github.com/ezrec/intcode/translate"
)

var f = translate.From

var (
	// Search errors
	ErrExhausted = errors.New(f("search exhausted"))

	// Config errors
	ErrConfigRange   = errors.New(f("range invalid"))
	ErrConfigWorkers = errors.New(f("workers invalid"))
	ErrConfigKey     = errors.New(f("key unknown"))
)

// ErrAnswerExpression is an answer expression that does not evaluate to an
// integer.
type ErrAnswerExpression string

func (err ErrAnswerExpression) Error() string {
	return f("answer '%v' is not an integer expression", string(err))
}
