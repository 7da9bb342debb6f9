package chip8

// TickTimers is the 60 Hz timer tick. Both timers count down by one while
// nonzero and stop at zero. The tone is switched off when the sound timer
// reaches zero.
func (c *Chip8) TickTimers() {
	if c.DelayTimer > 0 {
		c.DelayTimer--
	}
	if c.SoundTimer > 0 {
		c.setSoundTimer(c.SoundTimer - 1)
	}
}

// setSoundTimer updates ST and gates the tone on zero/nonzero transitions only.
// Loading a new nonzero value while the tone plays keeps it playing without
// another SetTone call.
func (c *Chip8) setSoundTimer(value byte) {
	wasOn := c.SoundTimer != 0
	c.SoundTimer = value

	switch isOn := value != 0; {
	case isOn && !wasOn:
		c.audio.SetTone(true)
	case !isOn && wasOn:
		c.audio.SetTone(false)
	}
}
