package chip8

import (
	"fmt"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		opcode uint16
		op     Op
		text   string
	}{
		{0x00E0, OpCLS, "CLS"},
		{0x00EE, OpRET, "RET"},
		{0x0000, OpUnknown, "??? $0000"},
		{0x0123, OpUnknown, "??? $0123"},
		{0x1ABC, OpJP, "JP $ABC"},
		{0x2ABC, OpCALL, "CALL $ABC"},
		{0x3A12, OpSEByte, "SE VA, $12"},
		{0x4A12, OpSNEByte, "SNE VA, $12"},
		{0x5AB0, OpSEReg, "SE VA, VB"},
		{0x6A12, OpLDByte, "LD VA, $12"},
		{0x7A12, OpADDByte, "ADD VA, $12"},
		{0x8AB0, OpLDReg, "LD VA, VB"},
		{0x8AB1, OpOR, "OR VA, VB"},
		{0x8AB2, OpAND, "AND VA, VB"},
		{0x8AB3, OpXOR, "XOR VA, VB"},
		{0x8AB4, OpADDReg, "ADD VA, VB"},
		{0x8AB5, OpSUB, "SUB VA, VB"},
		{0x8AB6, OpSHR, "SHR VA"},
		{0x8AB7, OpSUBN, "SUBN VA, VB"},
		{0x8ABE, OpSHL, "SHL VA"},
		{0x8AB8, OpUnknown, "??? $8AB8"},
		{0x9AB0, OpSNEReg, "SNE VA, VB"},
		{0xA123, OpLDI, "LD I, $123"},
		{0xB123, OpJPV0, "JP V0, $123"},
		{0xCA0F, OpRND, "RND VA, $0F"},
		{0xDAB5, OpDRW, "DRW VA, VB, $5"},
		{0xEA9E, OpSKP, "SKP VA"},
		{0xEAA1, OpSKNP, "SKNP VA"},
		{0xEA00, OpUnknown, "??? $EA00"},
		{0xFA07, OpLDVxDT, "LD VA, DT"},
		{0xFA0A, OpLDVxK, "LD VA, K"},
		{0xFA15, OpLDDTVx, "LD DT, VA"},
		{0xFA18, OpLDSTVx, "LD ST, VA"},
		{0xFA1E, OpADDI, "ADD I, VA"},
		{0xFA29, OpLDF, "LD F, VA"},
		{0xFA33, OpLDB, "LD B, VA"},
		{0xFA55, OpLDIVx, "LD [I], VA"},
		{0xFA65, OpLDVxI, "LD VA, [I]"},
		{0xFA66, OpUnknown, "??? $FA66"},
	}

	for _, tt := range tests {
		ins := Decode(tt.opcode)
		assert.Equal(t, tt.op, ins.Op, tt.text)
		assert.Equal(t, tt.text, ins.String())
	}
}

func TestDecode_Fields(t *testing.T) {
	ins := Decode(0xD7A3)

	assert.Equal(t, uint16(0xD7A3), ins.Opcode)
	assert.Equal(t, byte(0x7), ins.X)
	assert.Equal(t, byte(0xA), ins.Y)
	assert.Equal(t, byte(0x3), ins.N)
	assert.Equal(t, byte(0xA3), ins.KK)
	assert.Equal(t, uint16(0x7A3), ins.NNN)
}

func TestDispatchTableComplete(t *testing.T) {
	for op := Op(0); op < opCount; op++ {
		assert.True(t, handlers[op] != nil, fmt.Sprintf("missing handler for op %d", op))
		assert.True(t, opNames[op] != "", fmt.Sprintf("missing name for op %d", op))
	}
}
