package intcode

// Status is the execution state of a machine.
type Status int

//go:generate go tool stringer -linecomment -type=Status
const (
	STATUS_IDLE    = Status(0) // idle
	STATUS_RUNNING = Status(1) // running
	STATUS_HALTED  = Status(2) // halted
	STATUS_FAULTED = Status(3) // faulted
)

// Terminal returns true if no further instructions will execute.
func (st Status) Terminal() bool {
	return st == STATUS_HALTED || st == STATUS_FAULTED
}
