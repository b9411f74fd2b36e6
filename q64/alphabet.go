package q64

// Alphabets holds the four position-dependent symbol tables.
var Alphabets = [4]string{
	"ABCDEFGHIJKLMNOP",
	"QRSTUVWXYZabcdef",
	"ghijklmnopqrstuv",
	"wxyz0123456789-_",
}

// entry is a reverse-lookup slot for one byte value.
type entry struct {
	alphabet uint8
	nibble   uint8
	ok       bool
}

// reverse maps every byte to its (alphabet, nibble) pair; read-only after init.
var reverse [256]entry

func init() {
	for a, alphabet := range Alphabets {
		for n := 0; n < len(alphabet); n++ {
			reverse[alphabet[n]] = entry{alphabet: uint8(a), nibble: uint8(n), ok: true}
		}
	}
}

// Lookup returns the alphabet index and nibble value of ch.
// ok is false if ch is not one of the 64 symbols.
func Lookup(ch byte) (alphabet, nibble int, ok bool) {
	e := reverse[ch]
	return int(e.alphabet), int(e.nibble), e.ok
}

// IsSymbol reports whether ch belongs to any of the four alphabets.
func IsSymbol(ch byte) bool {
	return reverse[ch].ok
}
