package intcode

import (
	"fmt"
	"iter"
	"maps"
	"slices"
	"strings"
)

// Operation is the behaviour tag of an instruction.
type Operation int

//go:generate go tool stringer -linecomment -type=Operation
const (
	OP_CUSTOM = Operation(0) // custom
	OP_ADD    = Operation(1) // add
	OP_MUL    = Operation(2) // mul
	OP_HALT   = Operation(3) // halt
)

// Built-in opcode values.
const (
	OPCODE_ADD  = int64(1)
	OPCODE_MUL  = int64(2)
	OPCODE_HALT = int64(99)
)

// Handler applies a custom instruction to memory. The params slice holds
// the raw operand cells that follow the opcode, and is the handler's own
// copy. A handler must check every access it makes, and should not write
// until all of its reads succeed.
type Handler func(mem Memory, params []int64) (halt bool, err error)

// Instruction is a single opcode table entry.
type Instruction struct {
	Code      int64     // Opcode value.
	Name      string    // Mnemonic for traces.
	Operation Operation // Behaviour tag.
	Operands  int       // Operand cells following the opcode.
	Handler   Handler   // Behaviour of an OP_CUSTOM instruction.
}

var builtins = []Instruction{
	{Code: OPCODE_ADD, Name: "ADD", Operation: OP_ADD, Operands: 3},
	{Code: OPCODE_MUL, Name: "MUL", Operation: OP_MUL, Operands: 3},
	{Code: OPCODE_HALT, Name: "HLT", Operation: OP_HALT, Operands: 0},
}

// operandsOf is the required operand count of the built-in operations.
var operandsOf = map[Operation]int{
	OP_ADD:  3,
	OP_MUL:  3,
	OP_HALT: 0,
}

// Width returns the number of cells the instruction occupies.
func (ins Instruction) Width() int {
	return 1 + ins.Operands
}

func (ins Instruction) String() string {
	return fmt.Sprintf("%v(%d/%v)", ins.Name, ins.Code, ins.Operands)
}

// arith performs mem[params[2]] = op(mem[params[0]], mem[params[1]]).
// Both sources are read before the destination is written.
func arith(mem Memory, params []int64, op func(a, b int64) int64) (err error) {
	a, err := mem.Read(params[0])
	if err != nil {
		return
	}
	b, err := mem.Read(params[1])
	if err != nil {
		return
	}

	err = mem.Write(params[2], op(a, b))
	return
}

// apply executes the instruction against memory.
func (ins Instruction) apply(mem Memory, params []int64) (halt bool, err error) {
	switch ins.Operation {
	case OP_ADD:
		err = arith(mem, params, func(a, b int64) int64 { return a + b })
	case OP_MUL:
		err = arith(mem, params, func(a, b int64) int64 { return a * b })
	case OP_HALT:
		halt = true
	default:
		halt, err = ins.Handler(mem, slices.Clone(params))
	}

	return
}

// describe renders a trace line for the instruction before it executes.
func (ins Instruction) describe(mem Memory, params []int64) string {
	deref := func(addr int64) (string, int64, bool) {
		value, err := mem.Read(addr)
		if err != nil {
			return fmt.Sprintf("([%d] -> ?)", addr), 0, false
		}
		return fmt.Sprintf("([%d] -> %d)", addr, value), value, true
	}

	switch ins.Operation {
	case OP_ADD, OP_MUL:
		i, a, ok_a := deref(params[0])
		j, b, ok_b := deref(params[1])
		result := "?"
		if ok_a && ok_b {
			if ins.Operation == OP_ADD {
				result = fmt.Sprintf("%d", a+b)
			} else {
				result = fmt.Sprintf("%d", a*b)
			}
		}
		return fmt.Sprintf("%v %v, %v = %v => [%d]", ins.Name, i, j, result, params[2])
	case OP_HALT:
		return ins.Name
	}

	args := make([]string, len(params))
	for n, param := range params {
		args[n] = fmt.Sprintf("%d", param)
	}
	return strings.TrimSpace(ins.Name + " " + strings.Join(args, ", "))
}

// Table maps opcodes to instructions. A Table is never modified after
// construction, and may be shared between any number of machines.
type Table struct {
	instructions map[int64]Instruction
}

// DefaultTable holds the built-in instructions.
var DefaultTable = mustTable(builtins...)

func mustTable(instructions ...Instruction) *Table {
	table, err := NewTable(instructions...)
	if err != nil {
		panic(err)
	}
	return table
}

// NewTable creates a table of the given instructions.
func NewTable(instructions ...Instruction) (table *Table, err error) {
	table = &Table{
		instructions: make(map[int64]Instruction, len(instructions)),
	}

	err = table.add(instructions)
	if err != nil {
		table = nil
	}
	return
}

// Extend returns a new table holding the receiver's instructions plus the
// given ones. The receiver is unchanged.
func (table *Table) Extend(instructions ...Instruction) (extended *Table, err error) {
	if table == nil {
		table = DefaultTable
	}

	extended = &Table{
		instructions: maps.Clone(table.instructions),
	}

	err = extended.add(instructions)
	if err != nil {
		extended = nil
	}
	return
}

func (table *Table) add(instructions []Instruction) (err error) {
	for _, ins := range instructions {
		if _, found := table.instructions[ins.Code]; found {
			return fmt.Errorf("%w: %v", ErrTableDuplicate, ins)
		}
		if ins.Operands < 0 {
			return fmt.Errorf("%w: %v", ErrTableOperands, ins)
		}
		if ins.Operation == OP_CUSTOM {
			if ins.Handler == nil {
				return fmt.Errorf("%w: %v", ErrTableHandler, ins)
			}
		} else if need, ok := operandsOf[ins.Operation]; !ok || need != ins.Operands {
			return fmt.Errorf("%w: %v", ErrTableOperands, ins)
		}
		if len(ins.Name) == 0 {
			ins.Name = strings.ToUpper(ins.Operation.String())
		}
		table.instructions[ins.Code] = ins
	}

	return
}

// Lookup returns the instruction for an opcode.
func (table *Table) Lookup(code int64) (ins Instruction, ok bool) {
	ins, ok = table.instructions[code]
	return
}

// Len returns the number of instructions in the table.
func (table *Table) Len() int {
	return len(table.instructions)
}

// All iterates the table in ascending opcode order.
func (table *Table) All() iter.Seq2[int64, Instruction] {
	return func(yield func(code int64, ins Instruction) bool) {
		for _, code := range slices.Sorted(maps.Keys(table.instructions)) {
			if !yield(code, table.instructions[code]) {
				return
			}
		}
	}
}
