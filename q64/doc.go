// Package q64 implements QuadB64, a position-safe hexadecimal-like encoding.
//
// Each byte becomes two characters, one per nibble. The character at absolute
// position p is drawn from alphabet p mod 4, and the four 16-symbol alphabets
// are disjoint:
//
//	p mod 4 == 0: ABCDEFGHIJKLMNOP
//	p mod 4 == 1: QRSTUVWXYZabcdef
//	p mod 4 == 2: ghijklmnopqrstuv
//	p mod 4 == 3: wxyz0123456789-_
//
// A substring taken at the wrong offset therefore fails to decode, which makes
// encoded values safe to use as search-engine tokens.
package q64
