package chip8

import (
	"fmt"
	"math/bits"
	"strings"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Op identifies a decoded instruction.
type Op uint8

// Instruction kinds. The comment shows the opcode pattern.
const (
	OpUnknown Op = iota
	OpCLS        // 00E0
	OpRET        // 00EE
	OpJP         // 1nnn
	OpCALL       // 2nnn
	OpSEByte     // 3xkk
	OpSNEByte    // 4xkk
	OpSEReg      // 5xy0
	OpLDByte     // 6xkk
	OpADDByte    // 7xkk
	OpLDReg      // 8xy0
	OpOR         // 8xy1
	OpAND        // 8xy2
	OpXOR        // 8xy3
	OpADDReg     // 8xy4
	OpSUB        // 8xy5
	OpSHR        // 8xy6
	OpSUBN       // 8xy7
	OpSHL        // 8xyE
	OpSNEReg     // 9xy0
	OpLDI        // Annn
	OpJPV0       // Bnnn
	OpRND        // Cxkk
	OpDRW        // Dxyn
	OpSKP        // Ex9E
	OpSKNP       // ExA1
	OpLDVxDT     // Fx07
	OpLDVxK      // Fx0A
	OpLDDTVx     // Fx15
	OpLDSTVx     // Fx18
	OpADDI       // Fx1E
	OpLDF        // Fx29
	OpLDB        // Fx33
	OpLDIVx      // Fx55
	OpLDVxI      // Fx65

	opCount
)

// opsByPattern maps the pattern value of a library opcode to the handler
// kind. Library opcodes missing here, like SYS and the SCHIP extensions,
// decode as OpUnknown.
var opsByPattern = map[uint16]Op{
	0x00E0: OpCLS,
	0x00EE: OpRET,
	0x1000: OpJP,
	0x2000: OpCALL,
	0x3000: OpSEByte,
	0x4000: OpSNEByte,
	0x5000: OpSEReg,
	0x6000: OpLDByte,
	0x7000: OpADDByte,
	0x8000: OpLDReg,
	0x8001: OpOR,
	0x8002: OpAND,
	0x8003: OpXOR,
	0x8004: OpADDReg,
	0x8005: OpSUB,
	0x8006: OpSHR,
	0x8007: OpSUBN,
	0x800E: OpSHL,
	0x9000: OpSNEReg,
	0xA000: OpLDI,
	0xB000: OpJPV0,
	0xC000: OpRND,
	0xD000: OpDRW,
	0xE09E: OpSKP,
	0xE0A1: OpSKNP,
	0xF007: OpLDVxDT,
	0xF00A: OpLDVxK,
	0xF015: OpLDDTVx,
	0xF018: OpLDSTVx,
	0xF01E: OpADDI,
	0xF029: OpLDF,
	0xF033: OpLDB,
	0xF055: OpLDIVx,
	0xF065: OpLDVxI,
}

// opNames holds the upper case mnemonic of every op, taken from the
// instruction set table of retrogolib.
var opNames = mnemonics()

func mnemonics() [opCount]string {
	var names [opCount]string
	names[OpUnknown] = "???"
	for nibble := range 16 {
		for _, opcode := range chip8.Opcodes[nibble] {
			if opcode.Instruction == nil {
				continue
			}
			if op, ok := opsByPattern[opcode.Info.Value]; ok {
				names[op] = strings.ToUpper(opcode.Instruction.Name)
			}
		}
	}
	return names
}

// Name returns the assembler mnemonic.
func (o Op) Name() string {
	if o >= opCount {
		return opNames[OpUnknown]
	}
	return opNames[o]
}

// Instruction is a decoded opcode with all of its operand fields extracted.
// Which fields are meaningful depends on Op.
type Instruction struct {
	Op     Op
	Opcode uint16

	X   byte   // register index from bits 8-11
	Y   byte   // register index from bits 4-7
	N   byte   // lowest nibble
	KK  byte   // lowest byte
	NNN uint16 // lowest 12 bits, an address
}

// Decode splits a 16-bit opcode into an Instruction.
func Decode(opcode uint16) Instruction {
	return Instruction{
		Op:     decodeOp(opcode),
		Opcode: opcode,
		X:      byte(opcode>>8) & 0xF,
		Y:      byte(opcode>>4) & 0xF,
		N:      byte(opcode) & 0xF,
		KK:     byte(opcode),
		NNN:    opcode & AddressMask,
	}
}

// decodeOp matches the opcode against the library opcodes of its top
// nibble. When several patterns match, the one with the most mask bits
// wins, so 00E0 resolves to CLS and not to a catch-all 0nnn entry.
func decodeOp(opcode uint16) Op {
	var match chip8.Opcode
	maskBits := -1
	for _, candidate := range chip8.Opcodes[int(opcode>>12)] {
		if candidate.Instruction == nil || candidate.Info.Mask&opcode != candidate.Info.Value {
			continue
		}
		if n := bits.OnesCount16(candidate.Info.Mask); n > maskBits {
			match, maskBits = candidate, n
		}
	}
	if match.Instruction == nil {
		return OpUnknown
	}
	return opsByPattern[match.Info.Value]
}

// String formats the instruction in assembler syntax.
func (ins Instruction) String() string {
	name := ins.Op.Name()
	switch ins.Op {
	case OpCLS, OpRET:
		return name
	case OpUnknown:
		return fmt.Sprintf("%s $%04X", name, ins.Opcode)
	case OpJP, OpCALL:
		return fmt.Sprintf("%s $%03X", name, ins.NNN)
	case OpJPV0:
		return fmt.Sprintf("%s V0, $%03X", name, ins.NNN)
	case OpLDI:
		return fmt.Sprintf("%s I, $%03X", name, ins.NNN)
	case OpSEByte, OpSNEByte, OpLDByte, OpADDByte, OpRND:
		return fmt.Sprintf("%s V%X, $%02X", name, ins.X, ins.KK)
	case OpSEReg, OpSNEReg, OpLDReg, OpOR, OpAND, OpXOR, OpADDReg, OpSUB, OpSUBN:
		return fmt.Sprintf("%s V%X, V%X", name, ins.X, ins.Y)
	case OpDRW:
		return fmt.Sprintf("%s V%X, V%X, $%X", name, ins.X, ins.Y, ins.N)
	case OpLDVxDT:
		return fmt.Sprintf("%s V%X, DT", name, ins.X)
	case OpLDVxK:
		return fmt.Sprintf("%s V%X, K", name, ins.X)
	case OpLDDTVx:
		return fmt.Sprintf("%s DT, V%X", name, ins.X)
	case OpLDSTVx:
		return fmt.Sprintf("%s ST, V%X", name, ins.X)
	case OpADDI:
		return fmt.Sprintf("%s I, V%X", name, ins.X)
	case OpLDF:
		return fmt.Sprintf("%s F, V%X", name, ins.X)
	case OpLDB:
		return fmt.Sprintf("%s B, V%X", name, ins.X)
	case OpLDIVx:
		return fmt.Sprintf("%s [I], V%X", name, ins.X)
	case OpLDVxI:
		return fmt.Sprintf("%s V%X, [I]", name, ins.X)
	default: // SHR, SHL, SKP, SKNP
		return fmt.Sprintf("%s V%X", name, ins.X)
	}
}
