package chip8

import (
	"github.com/pkg/errors"
	"github.com/retroenv/retrogolib/log"
)

type handler func(c *Chip8, ins Instruction) error

// handlers is the dispatch table, indexed by the decoded Op.
var handlers = [opCount]handler{
	OpUnknown: (*Chip8).opUnknown,
	OpCLS:     (*Chip8).opCLS,
	OpRET:     (*Chip8).opRET,
	OpJP:      (*Chip8).opJP,
	OpCALL:    (*Chip8).opCALL,
	OpSEByte:  (*Chip8).opSEByte,
	OpSNEByte: (*Chip8).opSNEByte,
	OpSEReg:   (*Chip8).opSEReg,
	OpLDByte:  (*Chip8).opLDByte,
	OpADDByte: (*Chip8).opADDByte,
	OpLDReg:   (*Chip8).opLDReg,
	OpOR:      (*Chip8).opOR,
	OpAND:     (*Chip8).opAND,
	OpXOR:     (*Chip8).opXOR,
	OpADDReg:  (*Chip8).opADDReg,
	OpSUB:     (*Chip8).opSUB,
	OpSHR:     (*Chip8).opSHR,
	OpSUBN:    (*Chip8).opSUBN,
	OpSHL:     (*Chip8).opSHL,
	OpSNEReg:  (*Chip8).opSNEReg,
	OpLDI:     (*Chip8).opLDI,
	OpJPV0:    (*Chip8).opJPV0,
	OpRND:     (*Chip8).opRND,
	OpDRW:     (*Chip8).opDRW,
	OpSKP:     (*Chip8).opSKP,
	OpSKNP:    (*Chip8).opSKNP,
	OpLDVxDT:  (*Chip8).opLDVxDT,
	OpLDVxK:   (*Chip8).opLDVxK,
	OpLDDTVx:  (*Chip8).opLDDTVx,
	OpLDSTVx:  (*Chip8).opLDSTVx,
	OpADDI:    (*Chip8).opADDI,
	OpLDF:     (*Chip8).opLDF,
	OpLDB:     (*Chip8).opLDB,
	OpLDIVx:   (*Chip8).opLDIVx,
	OpLDVxI:   (*Chip8).opLDVxI,
}

// Step executes one instruction, which includes:
// 1. Resuming a pending Fx0A key wait, if there is one
// 2. Checking that PC is still inside the loaded program
// 3. Fetching the 2 byte opcode at PC, stored big-endian
// 4. Decoding and executing it
// 5. Advancing PC by 2
//
// Instructions that jump store target-2 so that the unconditional advance
// lands on the target. Once PC is past the end of the loaded program the
// machine halts with ErrEndOfProgram. Stack faults halt as well and leave
// all state untouched. Timers are not touched here, they tick at 60 Hz
// through TickTimers.
func (c *Chip8) Step() (Status, error) {
	// While waiting for a key nothing else executes, PC stays on the
	// Fx0A instruction until a key down event arrives.
	if c.waiting {
		return c.resumeKeyWait(), nil
	}

	// PC may sit exactly on the end of the program, in which case the
	// word read is zero padding and decodes as an unknown opcode.
	if int(c.PC) > InitialProgramCounter+c.programSize {
		return Halt, errors.Wrapf(ErrEndOfProgram, "pc %s", hex16(c.PC))
	}

	// Fetch and decode. ReadWord combines the byte at PC (high) and the
	// byte after it (low) into one 16-bit opcode.
	ins := Decode(c.Memory.ReadWord(c.PC))
	if c.trace {
		c.logger.Debug("Executing",
			log.String("pc", hex16(c.PC)),
			log.String("opcode", hex16(ins.Opcode)),
			log.String("instruction", ins.String()))
	}

	// Execute through the dispatch table. A handler error leaves PC on the
	// failing instruction.
	if err := handlers[ins.Op](c, ins); err != nil {
		return Halt, err
	}
	if c.waiting {
		return WaitingForKey, nil
	}

	// Each instruction is 2 bytes long. PC wraps within the 4 KiB address space.
	c.PC = (c.PC + 2) & AddressMask
	return Continue, nil
}

// resumeKeyWait checks for a key press while suspended in Fx0A. Nothing but
// the target register and PC change, and only once a key arrives.
func (c *Chip8) resumeKeyWait() Status {
	key, ok := c.keypad.PollKeyDown()
	if !ok {
		return WaitingForKey
	}

	c.V[c.waitRegister] = key & 0xF
	c.waiting = false
	c.PC = (c.PC + 2) & AddressMask
	return Continue
}

// jump sets PC so that the step's advance lands on target.
func (c *Chip8) jump(target uint16) {
	c.PC = (target - 2) & AddressMask
}

func (c *Chip8) skipIf(cond bool) {
	if cond {
		c.PC += 2
	}
}

func flag(b bool) byte {
	if b {
		return 1
	}
	return 0
}

// opUnknown reports the opcode and carries on with the next instruction.
func (c *Chip8) opUnknown(ins Instruction) error {
	c.onUnknown(ins.Opcode, c.PC)
	return nil
}

// 00E0: clear the screen.
func (c *Chip8) opCLS(Instruction) error {
	c.clearScreen()
	return nil
}

// 00EE: return from a subroutine. The popped address is the CALL itself,
// the step advance moves past it.
func (c *Chip8) opRET(Instruction) error {
	addr, err := c.Stack.Pop()
	if err != nil {
		return errors.Wrapf(err, "return at %s", hex16(c.PC))
	}
	c.PC = addr
	return nil
}

// 1nnn: jump to nnn.
func (c *Chip8) opJP(ins Instruction) error {
	c.jump(ins.NNN)
	return nil
}

// 2nnn: call the subroutine at nnn. The address of the CALL is pushed.
func (c *Chip8) opCALL(ins Instruction) error {
	if err := c.Stack.Push(c.PC); err != nil {
		return errors.Wrapf(err, "call at %s", hex16(c.PC))
	}
	c.jump(ins.NNN)
	return nil
}

// 3xkk: skip the next instruction if Vx == kk.
func (c *Chip8) opSEByte(ins Instruction) error {
	c.skipIf(c.V[ins.X] == ins.KK)
	return nil
}

// 4xkk: skip the next instruction if Vx != kk.
func (c *Chip8) opSNEByte(ins Instruction) error {
	c.skipIf(c.V[ins.X] != ins.KK)
	return nil
}

// 5xy0: skip the next instruction if Vx == Vy.
func (c *Chip8) opSEReg(ins Instruction) error {
	c.skipIf(c.V[ins.X] == c.V[ins.Y])
	return nil
}

// 9xy0: skip the next instruction if Vx != Vy.
func (c *Chip8) opSNEReg(ins Instruction) error {
	c.skipIf(c.V[ins.X] != c.V[ins.Y])
	return nil
}

// 6xkk: Vx = kk.
func (c *Chip8) opLDByte(ins Instruction) error {
	c.V[ins.X] = ins.KK
	return nil
}

// 7xkk: Vx += kk. The sum wraps and VF is left alone.
func (c *Chip8) opADDByte(ins Instruction) error {
	c.V[ins.X] += ins.KK
	return nil
}

// 8xy0: Vx = Vy.
func (c *Chip8) opLDReg(ins Instruction) error {
	c.V[ins.X] = c.V[ins.Y]
	return nil
}

func (c *Chip8) opOR(ins Instruction) error {
	c.V[ins.X] |= c.V[ins.Y]
	return nil
}

func (c *Chip8) opAND(ins Instruction) error {
	c.V[ins.X] &= c.V[ins.Y]
	return nil
}

func (c *Chip8) opXOR(ins Instruction) error {
	c.V[ins.X] ^= c.V[ins.Y]
	return nil
}

// The arithmetic instructions write the flag after the result, so VF holds
// the flag even when x is F.

// 8xy4: Vx += Vy, VF = 1 on carry.
func (c *Chip8) opADDReg(ins Instruction) error {
	sum := uint16(c.V[ins.X]) + uint16(c.V[ins.Y])
	c.V[ins.X] = byte(sum)
	c.V[0xF] = flag(sum > 0xFF)
	return nil
}

// 8xy5: Vx -= Vy, VF = 1 when there is no borrow.
func (c *Chip8) opSUB(ins Instruction) error {
	vx, vy := c.V[ins.X], c.V[ins.Y]
	c.V[ins.X] = vx - vy
	c.V[0xF] = flag(vx >= vy)
	return nil
}

// 8xy7: Vx = Vy - Vx, VF = 1 when there is no borrow.
func (c *Chip8) opSUBN(ins Instruction) error {
	vx, vy := c.V[ins.X], c.V[ins.Y]
	c.V[ins.X] = vy - vx
	c.V[0xF] = flag(vy >= vx)
	return nil
}

// 8xy6: shift Vx right by one, VF = the bit shifted out. Vy is ignored.
func (c *Chip8) opSHR(ins Instruction) error {
	vx := c.V[ins.X]
	c.V[ins.X] = vx >> 1
	c.V[0xF] = vx & 0x1
	return nil
}

// 8xyE: shift Vx left by one, VF = the bit shifted out. Vy is ignored.
func (c *Chip8) opSHL(ins Instruction) error {
	vx := c.V[ins.X]
	c.V[ins.X] = vx << 1
	c.V[0xF] = vx >> 7
	return nil
}

// Annn: I = nnn.
func (c *Chip8) opLDI(ins Instruction) error {
	c.I = ins.NNN
	return nil
}

// Bnnn: jump to nnn + V0.
func (c *Chip8) opJPV0(ins Instruction) error {
	c.jump(ins.NNN + uint16(c.V[0]))
	return nil
}

// Cxkk: Vx = random byte AND kk.
func (c *Chip8) opRND(ins Instruction) error {
	c.V[ins.X] = byte(c.rng.UintN(256)) & ins.KK
	return nil
}

// Dxyn: draw the n byte sprite stored at I at position Vx, Vy. VF is set
// when a lit pixel got turned off. The display is only updated when a
// collision erased pixels, or on every draw with presentEveryDraw set.
func (c *Chip8) opDRW(ins Instruction) error {
	sprite := c.Memory.Slice(c.I, int(ins.N))
	collision := c.Framebuffer.Draw(c.V[ins.X], c.V[ins.Y], sprite)
	c.V[0xF] = flag(collision)

	if collision || c.presentEveryDraw {
		c.present()
	}
	return nil
}

// Ex9E: skip the next instruction if the key in Vx is held. Key values
// above 0xF are folded onto the keypad.
func (c *Chip8) opSKP(ins Instruction) error {
	c.skipIf(c.keypad.IsPressed(c.V[ins.X] & 0xF))
	return nil
}

// ExA1: skip the next instruction if the key in Vx is not held.
func (c *Chip8) opSKNP(ins Instruction) error {
	c.skipIf(!c.keypad.IsPressed(c.V[ins.X] & 0xF))
	return nil
}

// Fx07: Vx = delay timer.
func (c *Chip8) opLDVxDT(ins Instruction) error {
	c.V[ins.X] = c.DelayTimer
	return nil
}

// Fx0A: wait for a key press and store it in Vx. The machine is suspended
// here, Step resumes it once a key down event arrives.
func (c *Chip8) opLDVxK(ins Instruction) error {
	c.waiting = true
	c.waitRegister = ins.X
	return nil
}

// Fx15: delay timer = Vx.
func (c *Chip8) opLDDTVx(ins Instruction) error {
	c.DelayTimer = c.V[ins.X]
	return nil
}

// Fx18: sound timer = Vx. The tone plays while it is nonzero.
func (c *Chip8) opLDSTVx(ins Instruction) error {
	c.setSoundTimer(c.V[ins.X])
	return nil
}

// Fx1E: I += Vx. VF is left alone.
func (c *Chip8) opADDI(ins Instruction) error {
	c.I += uint16(c.V[ins.X])
	return nil
}

// Fx29: point I at the font glyph of the digit in Vx.
func (c *Chip8) opLDF(ins Instruction) error {
	c.I = uint16(c.V[ins.X]) * FontGlyphSize
	return nil
}

// Fx33: store the decimal digits of Vx at I, I+1 and I+2, hundreds first.
func (c *Chip8) opLDB(ins Instruction) error {
	vx := c.V[ins.X]
	c.Memory.Write(c.I, vx/100)
	c.Memory.Write(c.I+1, (vx/10)%10)
	c.Memory.Write(c.I+2, vx%10)
	return nil
}

// Fx55: store V0 through Vx in memory starting at I. I is not changed.
func (c *Chip8) opLDIVx(ins Instruction) error {
	for i := byte(0); i <= ins.X; i++ {
		c.Memory.Write(c.I+uint16(i), c.V[i])
	}
	return nil
}

// Fx65: load V0 through Vx from memory starting at I. I is not changed.
func (c *Chip8) opLDVxI(ins Instruction) error {
	for i := byte(0); i <= ins.X; i++ {
		c.V[i] = c.Memory.Read(c.I + uint16(i))
	}
	return nil
}
