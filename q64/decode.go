package q64

import (
	"unicode/utf8"

	"github.com/hupe1980/uubed/errs"
)

// Decode converts a Q64 string back into bytes.
//
// Decoding stops at the first violation: an odd length, a character outside
// the 64 symbols (including any non-ASCII byte), or a symbol whose alphabet
// does not match its position. Positions are byte offsets into s.
func Decode(s string) ([]byte, error) {
	if len(s)&1 != 0 {
		return nil, errs.OddLength(len(s))
	}
	out := make([]byte, DecodedLen(len(s)))
	if err := decodeInto(out, s); err != nil {
		return nil, err
	}
	return out, nil
}

// DecodeToBuffer decodes s into buf and returns the number of bytes written.
//
// Length errors are reported before buf is touched. On a character error
// the prefix of buf may already hold decoded bytes.
func DecodeToBuffer(s string, buf []byte) (int, error) {
	if len(s)&1 != 0 {
		return 0, errs.OddLength(len(s))
	}
	need := DecodedLen(len(s))
	if len(buf) < need {
		return 0, errs.BufferOverflow(need, len(buf))
	}
	if err := decodeInto(buf[:need], s); err != nil {
		return 0, err
	}
	return need, nil
}

// Validate checks s without producing output.
func Validate(s string) error {
	if len(s)&1 != 0 {
		return errs.OddLength(len(s))
	}
	for i := 0; i < len(s); i++ {
		if _, err := nibbleAt(s, i); err != nil {
			return err
		}
	}
	return nil
}

// Valid reports whether s is a well-formed Q64 string.
func Valid(s string) bool {
	return Validate(s) == nil
}

func decodeInto(dst []byte, s string) error {
	for i := 0; i < len(s); i += 2 {
		hi, err := nibbleAt(s, i)
		if err != nil {
			return err
		}
		lo, err := nibbleAt(s, i+1)
		if err != nil {
			return err
		}
		dst[i/2] = hi<<4 | lo
	}
	return nil
}

func nibbleAt(s string, pos int) (byte, error) {
	ch := s[pos]
	if ch >= utf8.RuneSelf {
		r, _ := utf8.DecodeRuneInString(s[pos:])
		return 0, errs.InvalidCharacter(r, pos)
	}
	e := reverse[ch]
	if !e.ok {
		return 0, errs.InvalidCharacter(rune(ch), pos)
	}
	if want := pos & 3; int(e.alphabet) != want {
		return 0, errs.WrongPosition(rune(ch), pos, int(e.alphabet), want)
	}
	return e.nibble, nil
}
