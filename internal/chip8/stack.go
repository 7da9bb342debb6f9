package chip8

// StackDepth is the maximum number of nested subroutine calls.
const StackDepth = 16

// Stack holds subroutine return addresses. A failed push or pop leaves it
// unchanged.
type Stack struct {
	entries [StackDepth]uint16
	sp      int
}

// Push stores a return address.
func (s *Stack) Push(addr uint16) error {
	if s.sp >= StackDepth {
		return ErrStackOverflow
	}
	s.entries[s.sp] = addr
	s.sp++
	return nil
}

// Pop removes and returns the most recent return address.
func (s *Stack) Pop() (uint16, error) {
	if s.sp == 0 {
		return 0, ErrStackUnderflow
	}
	s.sp--
	return s.entries[s.sp], nil
}

// Len returns the current stack pointer.
func (s *Stack) Len() int {
	return s.sp
}

// Entries returns a copy of the live entries, oldest first.
func (s *Stack) Entries() []uint16 {
	out := make([]uint16, s.sp)
	copy(out, s.entries[:s.sp])
	return out
}

// Reset drops all entries.
func (s *Stack) Reset() {
	s.sp = 0
}
