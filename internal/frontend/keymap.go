package frontend

import (
	"sort"
	"unicode"

	"github.com/pkg/errors"
)

// Keymap maps host keyboard characters to logical keypad keys 0x0-0xF.
// Characters are stored in lower case.
type Keymap map[rune]byte

// Cosmac lays the keypad out on the left side of a QWERTY keyboard, keeping
// the 4x4 shape of the COSMAC VIP keypad:
//
//	1 2 3 4      1 2 3 C
//	Q W E R  ->  4 5 6 D
//	A S D F      7 8 9 E
//	Z X C V      A 0 B F
var Cosmac = Keymap{
	'1': 0x1, '2': 0x2, '3': 0x3, '4': 0xC,
	'q': 0x4, 'w': 0x5, 'e': 0x6, 'r': 0xD,
	'a': 0x7, 's': 0x8, 'd': 0x9, 'f': 0xE,
	'z': 0xA, 'x': 0x0, 'c': 0xB, 'v': 0xF,
}

// Hex maps the keys 0-9 and A-F to the keypad key of the same name.
var Hex = Keymap{
	'0': 0x0, '1': 0x1, '2': 0x2, '3': 0x3,
	'4': 0x4, '5': 0x5, '6': 0x6, '7': 0x7,
	'8': 0x8, '9': 0x9, 'a': 0xA, 'b': 0xB,
	'c': 0xC, 'd': 0xD, 'e': 0xE, 'f': 0xF,
}

var keymaps = map[string]Keymap{
	"cosmac": Cosmac,
	"hex":    Hex,
}

// DefaultKeymap is the name of the keymap used when none is selected.
const DefaultKeymap = "cosmac"

// KeymapByName returns the keymap registered under name.
func KeymapByName(name string) (Keymap, error) {
	km, ok := keymaps[name]
	if !ok {
		return nil, errors.Errorf("unsupported keymap '%s'", name)
	}
	return km, nil
}

// KeymapNames returns the sorted names of the available keymaps.
func KeymapNames() []string {
	names := make([]string, 0, len(keymaps))
	for name := range keymaps {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the logical key for a host character, ignoring case.
func (k Keymap) Lookup(r rune) (byte, bool) {
	key, ok := k[unicode.ToLower(r)]
	return key, ok
}

// Runes returns the mapped host characters in a stable order.
func (k Keymap) Runes() []rune {
	runes := make([]rune, 0, len(k))
	for r := range k {
		runes = append(runes, r)
	}
	sort.Slice(runes, func(i, j int) bool { return runes[i] < runes[j] })
	return runes
}
