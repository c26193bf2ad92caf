package intcode

import (
	"bytes"
	"errors"
	"log"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func runProgram(program Memory, t *testing.T) (m *Machine) {
	m = NewMachine(nil)
	m.Load(program.Clone())
	m.Run()
	return
}

func TestMachine_Programs(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name    string
		program Memory
		status  Status
		memory  Memory
	}){
		{"add", Memory{1, 0, 0, 0, 99}, STATUS_HALTED, Memory{2, 0, 0, 0, 99}},
		{"mul", Memory{2, 3, 0, 3, 99}, STATUS_HALTED, Memory{2, 3, 0, 6, 99}},
		{"mul_large", Memory{2, 4, 4, 5, 99, 0}, STATUS_HALTED, Memory{2, 4, 4, 5, 99, 9801}},
		{"self_modify", Memory{1, 1, 1, 4, 99, 5, 6, 0, 99}, STATUS_HALTED, Memory{30, 1, 1, 4, 2, 5, 6, 0, 99}},
		{"example", Memory{1, 9, 10, 3, 2, 3, 11, 0, 99, 30, 40, 50}, STATUS_HALTED,
			Memory{3500, 9, 10, 70, 2, 3, 11, 0, 99, 30, 40, 50}},
		{"halt", Memory{99}, STATUS_HALTED, Memory{99}},
		{"empty", Memory{}, STATUS_FAULTED, Memory{}},
		{"unknown", Memory{2, 0, 0, 0, 5}, STATUS_FAULTED, Memory{4, 0, 0, 0, 5}},
		{"no_halt", Memory{1, 0, 0, 0}, STATUS_FAULTED, Memory{2, 0, 0, 0}},
		{"short_operands", Memory{1, 0, 0}, STATUS_FAULTED, Memory{1, 0, 0}},
		{"bad_source", Memory{1, 7, 0, 0, 99}, STATUS_FAULTED, Memory{1, 7, 0, 0, 99}},
		{"bad_dest", Memory{1, 0, 0, -1, 99}, STATUS_FAULTED, Memory{1, 0, 0, -1, 99}},
		{"negative", Memory{1, 5, 6, 0, 99, -7, 3}, STATUS_HALTED, Memory{-4, 5, 6, 0, 99, -7, 3}},
	}

	for _, entry := range table {
		m := runProgram(entry.program, t)
		assert.Equal(entry.status, m.Status(), entry.name)
		assert.Equal(entry.memory, m.Memory(), entry.name)
		if entry.status == STATUS_FAULTED {
			assert.Error(m.Fault(), entry.name)
		} else {
			assert.NoError(m.Fault(), entry.name)
		}
	}
}

func TestMachine_Peek(t *testing.T) {
	assert := assert.New(t)

	m := runProgram(Memory{1, 0, 0, 0, 99}, t)
	value, err := m.Peek(0)
	assert.NoError(err)
	assert.Equal(int64(2), value)

	m = runProgram(Memory{2, 3, 0, 3, 99}, t)
	value, err = m.Peek(3)
	assert.NoError(err)
	assert.Equal(int64(6), value)

	m = runProgram(Memory{1, 9, 10, 3, 2, 3, 11, 0, 99, 30, 40, 50}, t)
	value, err = m.Peek(0)
	assert.NoError(err)
	assert.Equal(int64(3500), value)

	_, err = m.Peek(12)
	assert.ErrorIs(err, ErrOutOfBounds)
	_, err = m.Peek(-1)
	assert.ErrorIs(err, ErrOutOfBounds)
}

func TestMachine_Idle(t *testing.T) {
	assert := assert.New(t)

	m := NewMachine(nil)
	assert.Equal(STATUS_IDLE, m.Status())
	assert.False(m.Step())
	assert.Equal(STATUS_IDLE, m.Run())

	_, err := m.Peek(0)
	assert.ErrorIs(err, ErrNotLoaded)
}

func TestMachine_Step(t *testing.T) {
	assert := assert.New(t)

	m := NewMachine(nil)
	m.Load(Memory{1, 9, 10, 3, 2, 3, 11, 0, 99, 30, 40, 50})
	assert.Equal(STATUS_RUNNING, m.Status())
	assert.Equal(int64(0), m.Pc())

	assert.True(m.Step())
	assert.Equal(int64(4), m.Pc())
	value, _ := m.Peek(3)
	assert.Equal(int64(70), value)

	assert.True(m.Step())
	assert.Equal(int64(8), m.Pc())
	value, _ = m.Peek(0)
	assert.Equal(int64(3500), value)

	assert.False(m.Step())
	assert.Equal(STATUS_HALTED, m.Status())
	assert.Equal(int64(8), m.Pc())
	assert.Equal(3, m.Steps())
}

func TestMachine_TerminalIdempotent(t *testing.T) {
	assert := assert.New(t)

	for _, program := range []Memory{{99}, {}, {2, 0, 0, 0, 5}, {1, 0, 0, 0}} {
		m := runProgram(program, t)
		assert.True(m.Status().Terminal())

		status := m.Status()
		pc := m.Pc()
		mem := m.Memory()
		fault := m.Fault()
		steps := m.Steps()

		for range 3 {
			assert.False(m.Step())
			assert.Equal(status, m.Run())
			assert.Equal(status, m.Status())
			assert.Equal(pc, m.Pc())
			assert.Equal(mem, m.Memory())
			assert.Equal(fault, m.Fault())
			assert.Equal(steps, m.Steps())
		}
	}
}

func TestMachine_Faults(t *testing.T) {
	assert := assert.New(t)

	m := runProgram(Memory{}, t)
	assert.ErrorIs(m.Fault(), ErrOutOfBounds)

	m = runProgram(Memory{2, 0, 0, 0, 5}, t)
	assert.ErrorIs(m.Fault(), ErrOpcode(0))
	var eo ErrOpcode
	assert.True(errors.As(m.Fault(), &eo))
	assert.Equal(ErrOpcode(5), eo)

	var ef *ErrFault
	assert.True(errors.As(m.Fault(), &ef))
	assert.Equal(int64(4), ef.Pc)
	assert.Equal(int64(4), m.Pc())
	assert.Equal(1, m.Steps())

	m = runProgram(Memory{1, 0, 0, 20, 99}, t)
	var ea ErrAddress
	assert.True(errors.As(m.Fault(), &ea))
	assert.Equal(int64(20), ea.Address)
	assert.Equal(5, ea.Length)
}

func TestMachine_Reload(t *testing.T) {
	assert := assert.New(t)

	m := runProgram(Memory{2, 0, 0, 0, 5}, t)
	assert.Equal(STATUS_FAULTED, m.Status())

	m.Load(Memory{1, 0, 0, 0, 99})
	assert.Equal(STATUS_RUNNING, m.Status())
	assert.Equal(int64(0), m.Pc())
	assert.Nil(m.Fault())
	assert.Equal(0, m.Steps())

	assert.Equal(STATUS_HALTED, m.Run())
	value, err := m.Peek(0)
	assert.NoError(err)
	assert.Equal(int64(2), value)
}

func TestMachine_Memory(t *testing.T) {
	assert := assert.New(t)

	m := runProgram(Memory{1, 0, 0, 0, 99}, t)
	mem := m.Memory()
	mem[0] = 1000

	value, _ := m.Peek(0)
	assert.Equal(int64(2), value)
	assert.Equal("[pc=4, st=halted] 2,0,0,0,99", m.String())
}

func TestMachine_CustomInstruction(t *testing.T) {
	assert := assert.New(t)

	// SUB: mem[c] = mem[a] - mem[b]
	sub := Instruction{
		Code:     3,
		Name:     "SUB",
		Operands: 3,
		Handler: func(mem Memory, params []int64) (halt bool, err error) {
			a, err := mem.Read(params[0])
			if err != nil {
				return
			}
			b, err := mem.Read(params[1])
			if err != nil {
				return
			}
			err = mem.Write(params[2], a-b)
			return
		},
	}
	// STOP: halts when its operand cell is non-zero.
	stop := Instruction{
		Code:     4,
		Name:     "STP",
		Operands: 1,
		Handler: func(mem Memory, params []int64) (halt bool, err error) {
			return params[0] != 0, nil
		},
	}

	table, err := DefaultTable.Extend(sub, stop)
	assert.NoError(err)

	m := NewMachine(table)
	m.Load(Memory{3, 9, 10, 0, 4, 0, 4, 1, 0, 50, 8})
	assert.Equal(STATUS_HALTED, m.Run())
	assert.Equal(Memory{42, 9, 10, 0, 4, 0, 4, 1, 0, 50, 8}, m.Memory())
	assert.Equal(int64(6), m.Pc())

	// The default table does not know SUB.
	m = NewMachine(nil)
	m.Load(Memory{3, 0, 0, 0, 99})
	assert.Equal(STATUS_FAULTED, m.Run())
	assert.ErrorIs(m.Fault(), ErrOpcode(3))
}

func TestMachine_HandlerParams(t *testing.T) {
	assert := assert.New(t)

	// KEEP records the params slice of every call.
	var kept [][]int64
	table, err := DefaultTable.Extend(Instruction{
		Code:     5,
		Name:     "KEEP",
		Operands: 2,
		Handler: func(mem Memory, params []int64) (bool, error) {
			kept = append(kept, params)
			params[0] = -1
			return false, nil
		},
	})
	assert.NoError(err)

	m := NewMachine(table)
	m.Load(Memory{5, 10, 11, 5, 20, 21, 1, 0, 0, 0, 99})
	assert.Equal(STATUS_HALTED, m.Run())

	assert.Equal([][]int64{{-1, 11}, {-1, 21}}, kept)
	// The handler's writes to params do not reach memory or later steps.
	assert.Equal(Memory{10, 10, 11, 5, 20, 21, 1, 0, 0, 0, 99}, m.Memory())
}

func TestMachine_HandlerError(t *testing.T) {
	assert := assert.New(t)

	boom := errors.New("boom")
	table, err := NewTable(Instruction{
		Code: 7,
		Name: "ERR",
		Handler: func(mem Memory, params []int64) (bool, error) {
			return false, boom
		},
	})
	assert.NoError(err)

	m := NewMachine(table)
	m.Load(Memory{7})
	assert.Equal(STATUS_FAULTED, m.Run())
	assert.ErrorIs(m.Fault(), boom)
}

func TestMachine_Verbose(t *testing.T) {
	assert := assert.New(t)

	var buf bytes.Buffer
	log.SetOutput(&buf)
	flags := log.Flags()
	log.SetFlags(0)
	defer func() {
		log.SetOutput(os.Stderr)
		log.SetFlags(flags)
	}()

	m := NewMachine(nil)
	m.Verbose = true
	m.Load(Memory{1, 9, 10, 3, 2, 3, 11, 0, 99, 30, 40, 50})
	m.Run()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal([]string{
		"intcode: load 12 cells",
		"[   0] ADD ([9] -> 30), ([10] -> 40) = 70 => [3]",
		"[   4] MUL ([3] -> 70), ([11] -> 50) = 3500 => [0]",
		"[   8] HLT",
	}, lines)

	buf.Reset()
	m.Load(Memory{5})
	m.Run()
	assert.Contains(buf.String(), "[   0] FAULT")
}

func TestStatus_String(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("idle", STATUS_IDLE.String())
	assert.Equal("running", STATUS_RUNNING.String())
	assert.Equal("halted", STATUS_HALTED.String())
	assert.Equal("faulted", STATUS_FAULTED.String())
	assert.False(STATUS_RUNNING.Terminal())
	assert.True(STATUS_FAULTED.Terminal())
}
