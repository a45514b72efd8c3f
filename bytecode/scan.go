package bytecode

import (
	"github.com/ethereum/go-ethereum/core/vm"
)

// Instruction is one decoded EVM instruction.
type Instruction struct {
	Imm []byte // PUSH payload, nil for other opcodes
	PC  uint64
	Op  vm.OpCode
}

// Scan decodes code into its instruction sequence. Every byte value is
// some opcode, so scanning cannot fail; a PUSH payload cut off by the end
// of the code is zero-filled, matching how the EVM reads past the end of
// code.
func Scan(code []byte) []Instruction {
	instrs := make([]Instruction, 0, len(code))

	for pc := 0; pc < len(code); {
		op := vm.OpCode(code[pc])
		instr := Instruction{Op: op, PC: uint64(pc)}
		pc++

		if op >= vm.PUSH1 && op <= vm.PUSH32 {
			size := int(op) - int(vm.PUSH1) + 1
			imm := make([]byte, size)
			copy(imm, code[pc:min(pc+size, len(code))])
			instr.Imm = imm
			pc += size
		}

		instrs = append(instrs, instr)
	}

	return instrs
}

// JumpDests returns the set of valid jump destinations in code: the PCs
// of JUMPDEST opcodes that are not inside a PUSH payload.
func JumpDests(code []byte) map[uint64]bool {
	dests := make(map[uint64]bool)
	for _, instr := range Scan(code) {
		if instr.Op == vm.JUMPDEST {
			dests[instr.PC] = true
		}
	}
	return dests
}
