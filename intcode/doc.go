// Package intcode implements the Intcode stored-program machine.
//
// A machine owns a single flat Memory of signed integers and a program
// counter. Each instruction is an opcode cell followed by a fixed number of
// operand cells; the operands of the built-in ADD and MUL instructions hold
// the addresses of their sources and destination. Dispatch is driven by an
// immutable Table, so new instructions can be registered without touching
// the Machine.
//
// Every memory access is bounds checked. An out of range access or an
// unknown opcode moves the machine to the Faulted state instead of panicking.
package intcode
