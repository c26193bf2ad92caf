// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package intcode

import (
	"fmt"
	"log"
	"slices"
)

// Machine is a single Intcode execution context.
type Machine struct {
	Verbose bool   // If set, traces every instruction.
	Table   *Table // Instruction set; nil selects DefaultTable.

	memory Memory // Owned program memory.
	pc     int64  // Address of the next opcode.
	status Status // Execution state.
	fault  error  // Cause of the fault, if faulted.
	steps  int    // Instructions executed since Load.

	params []int64 // Operand scratch buffer.
}

// NewMachine creates an idle machine using the given instruction table.
func NewMachine(table *Table) (m *Machine) {
	m = &Machine{
		Table: table,
	}

	return
}

func (m *Machine) table() *Table {
	if m.Table == nil {
		return DefaultTable
	}
	return m.Table
}

// Load takes ownership of memory and readies the machine to run it from
// address 0. The caller must not modify memory afterwards; clone first.
func (m *Machine) Load(memory Memory) {
	m.memory = memory
	m.pc = 0
	m.status = STATUS_RUNNING
	m.fault = nil
	m.steps = 0

	if m.Verbose {
		log.Printf("intcode: load %d cells", len(memory))
	}
}

// fail moves the machine to STATUS_FAULTED.
func (m *Machine) fail(err error) bool {
	m.status = STATUS_FAULTED
	m.fault = &ErrFault{Pc: m.pc, Err: err}

	if m.Verbose {
		log.Printf("[%4d] FAULT %v", m.pc, err)
	}

	return false
}

// Step executes one instruction, and returns true if the machine is still
// running afterwards. Step on a halted, faulted or idle machine does nothing.
func (m *Machine) Step() bool {
	if m.status != STATUS_RUNNING {
		return false
	}

	code, err := m.memory.Read(m.pc)
	if err != nil {
		return m.fail(err)
	}

	ins, ok := m.table().Lookup(code)
	if !ok {
		return m.fail(ErrOpcode(code))
	}

	m.params = slices.Grow(m.params[:0], ins.Operands)[:ins.Operands]
	for n := range m.params {
		m.params[n], err = m.memory.Read(m.pc + 1 + int64(n))
		if err != nil {
			return m.fail(err)
		}
	}

	if m.Verbose {
		log.Printf("[%4d] %v", m.pc, ins.describe(m.memory, m.params))
	}

	halt, err := ins.apply(m.memory, m.params)
	if err != nil {
		return m.fail(err)
	}

	m.steps++

	if halt {
		m.status = STATUS_HALTED
		return false
	}

	m.pc += int64(ins.Width())

	return true
}

// Run steps the machine until it halts or faults, and returns the final
// status. The program counter only ever increases, so Run always returns.
func (m *Machine) Run() Status {
	for m.Step() {
	}

	return m.status
}

// Peek reads an address of the machine memory.
func (m *Machine) Peek(address int64) (value int64, err error) {
	if m.status == STATUS_IDLE {
		err = ErrNotLoaded
		return
	}

	return m.memory.Read(address)
}

// Status returns the execution state.
func (m *Machine) Status() Status {
	return m.status
}

// Pc returns the program counter.
func (m *Machine) Pc() int64 {
	return m.pc
}

// Steps returns the count of instructions executed since Load.
func (m *Machine) Steps() int {
	return m.steps
}

// Fault returns the cause of a fault, or nil if the machine has not faulted.
func (m *Machine) Fault() error {
	return m.fault
}

// Memory returns a copy of the machine memory.
func (m *Machine) Memory() Memory {
	return m.memory.Clone()
}

// String returns the machine state and memory dump.
func (m *Machine) String() string {
	return fmt.Sprintf("[pc=%d, st=%v] %v", m.pc, m.status, m.memory)
}
