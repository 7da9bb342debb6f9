package chip8

// Screen geometry in logical pixels.
const (
	ScreenWidth  = 64
	ScreenHeight = 32
)

// Framebuffer is the 64x32 monochrome picture. true = pixel on.
type Framebuffer struct {
	pixels [ScreenWidth * ScreenHeight]bool
}

// Pixel returns the state of the pixel at col, row. Coordinates wrap.
func (f *Framebuffer) Pixel(col, row int) bool {
	return f.pixels[index(col, row)]
}

// Clear turns every pixel off.
func (f *Framebuffer) Clear() {
	for i := range f.pixels {
		f.pixels[i] = false
	}
}

// Lit returns the number of pixels that are on.
func (f *Framebuffer) Lit() int {
	n := 0
	for _, on := range f.pixels {
		if on {
			n++
		}
	}
	return n
}

// Draw XORs a sprite onto the picture at x, y. Each sprite byte is one row
// of 8 pixels, most significant bit leftmost. Pixels that fall off an edge
// wrap around to the opposite edge. The result reports a collision: at least
// one pixel that was on got turned off.
func (f *Framebuffer) Draw(x, y byte, sprite []byte) bool {
	collision := false

	// Walk the sprite row by row. Only set bits change the picture, XOR
	// with a zero bit leaves the pixel as it is.
	for row, data := range sprite {
		for col := 0; col < 8; col++ {
			if data&(0x80>>col) == 0 {
				continue
			}

			// index wraps the coordinates, a sprite at x=60 continues
			// at column 0 of the same row.
			position := index(int(x)+col, int(y)+row)
			if f.pixels[position] {
				collision = true
			}
			f.pixels[position] = !f.pixels[position]
		}
	}

	return collision
}

// index maps col, row to the pixel slice. Negative and oversized
// coordinates wrap around.
func index(col, row int) int {
	col = ((col % ScreenWidth) + ScreenWidth) % ScreenWidth
	row = ((row % ScreenHeight) + ScreenHeight) % ScreenHeight
	return row*ScreenWidth + col
}

// clearScreen clears the picture and shows the empty screen.
func (c *Chip8) clearScreen() {
	c.Framebuffer.Clear()
	c.present()
}

// present mirrors the framebuffer into the display and flushes it. The
// display only keeps a back buffer, so every pixel is written, not just
// the ones that changed since the last present.
func (c *Chip8) present() {
	for row := 0; row < ScreenHeight; row++ {
		for col := 0; col < ScreenWidth; col++ {
			c.display.SetPixel(col, row, c.Framebuffer.pixels[row*ScreenWidth+col])
		}
	}
	c.display.Present()
}
