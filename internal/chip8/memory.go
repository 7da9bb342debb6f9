package chip8

// Memory is the 4 KiB address space. Every access masks the address to 12
// bits, so reads and writes past 0xFFF wrap around to 0x000.
type Memory [MemorySize]byte

// Read returns the byte at addr.
func (m *Memory) Read(addr uint16) byte {
	return m[addr&AddressMask]
}

// Write stores value at addr.
func (m *Memory) Write(addr uint16, value byte) {
	m[addr&AddressMask] = value
}

// ReadWord returns the big-endian 16-bit word at addr and addr+1.
func (m *Memory) ReadWord(addr uint16) uint16 {
	return uint16(m.Read(addr))<<8 | uint16(m.Read(addr+1))
}

// Load copies data into memory starting at addr.
func (m *Memory) Load(addr uint16, data []byte) {
	for i, b := range data {
		m.Write(addr+uint16(i), b)
	}
}

// Slice returns a copy of n bytes starting at addr.
func (m *Memory) Slice(addr uint16, n int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = m.Read(addr + uint16(i))
	}
	return out
}
