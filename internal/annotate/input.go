package annotate

import "unicode"

// Key is a single decoded keypress.
type Key rune

const (
	KeyNone      Key = 0
	KeyInterrupt Key = 0x03
	KeyEOF       Key = 0x04
	KeyEnter     Key = '\n'
	KeyEsc       Key = 0x1b
)

// DecodeKey maps a raw rune from the terminal to a Key. Control characters
// other than Enter, Esc, Ctrl-C and Ctrl-D decode to KeyNone.
func DecodeKey(r rune) Key {
	switch r {
	case '\r', '\n':
		return KeyEnter
	case 0x1b:
		return KeyEsc
	case 0x03:
		return KeyInterrupt
	case 0x04:
		return KeyEOF
	}
	if unicode.IsPrint(r) {
		return Key(r)
	}
	return KeyNone
}

// Input is the operator's keyboard.
//
// ReadKey returns one keypress without waiting for Enter. ReadLine returns a
// full line with its terminator removed. Both return errors.ErrInputClosed
// once input is exhausted.
type Input interface {
	ReadKey() (Key, error)
	ReadLine() (string, error)
}
