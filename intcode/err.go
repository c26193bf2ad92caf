package intcode

import (
	"errors"

	"github.com/ezrec/intcode/translate"
)

var f = translate.From

var (
	// Machine errors
	ErrOutOfBounds = errors.New(f("address out of bounds"))
	ErrNotLoaded   = errors.New(f("no program loaded"))

	// Table errors
	ErrTableDuplicate = errors.New(f("opcode duplicated"))
	ErrTableOperands  = errors.New(f("operand count invalid"))
	ErrTableHandler   = errors.New(f("handler missing"))

	// Program text errors
	ErrProgramEmpty = errors.New(f("program empty"))
)

// ErrAddress is an out of bounds access of a specific address.
type ErrAddress struct {
	Address int64
	Length  int
}

func (err ErrAddress) Error() string {
	return f("address %v outside [0, %v)", err.Address, err.Length)
}

func (err ErrAddress) Unwrap() error {
	return ErrOutOfBounds
}

// ErrOpcode is an opcode absent from the machine's table.
type ErrOpcode int64

func (eo ErrOpcode) Error() string {
	return f("opcode %v unknown", int64(eo))
}

func (eo ErrOpcode) Is(err error) (ok bool) {
	_, ok = err.(ErrOpcode)
	return
}

// ErrFault records where a machine faulted.
type ErrFault struct {
	Pc  int64
	Err error
}

func (err *ErrFault) Error() string {
	return f("pc %v %v", err.Pc, err.Err)
}

func (err *ErrFault) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrSyntax struct {
	Index int
	Token string
	Err   error
}

func (err ErrSyntax) Error() string {
	return f("cell %v '%v' %v", err.Index, err.Token, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}
