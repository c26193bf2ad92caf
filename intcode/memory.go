package intcode

import (
	"strconv"
	"strings"
)

// Memory is the flat address space of a machine.
type Memory []int64

// valid reports whether address is within [0, len(mem)).
func (mem Memory) valid(address int64) bool {
	return address >= 0 && address < int64(len(mem))
}

// Read returns the value stored at address.
func (mem Memory) Read(address int64) (value int64, err error) {
	if !mem.valid(address) {
		err = ErrAddress{Address: address, Length: len(mem)}
		return
	}

	value = mem[address]
	return
}

// Write stores value at address.
func (mem Memory) Write(address int64, value int64) (err error) {
	if !mem.valid(address) {
		err = ErrAddress{Address: address, Length: len(mem)}
		return
	}

	mem[address] = value
	return
}

// Clone returns an independent copy of the memory.
func (mem Memory) Clone() Memory {
	if mem == nil {
		return nil
	}

	clone := make(Memory, len(mem))
	copy(clone, mem)
	return clone
}

// String returns the memory as comma-separated integers.
func (mem Memory) String() string {
	var sb strings.Builder
	for n, value := range mem {
		if n > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.FormatInt(value, 10))
	}
	return sb.String()
}
