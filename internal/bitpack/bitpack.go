// Package bitpack packs and unpacks MSB-first bit fields over a stream of
// 5-bit symbols rendered in a fixed DNS-label-safe alphabet.
//
// The alphabet is the lowercase RFC 4648 base32 alphabet. Unlike
// encoding/base32, the input is not a byte slice: it is a sequence of fields
// of arbitrary bit widths, packed back to back with no alignment between
// fields and symbols. A field routinely starts in the middle of one symbol
// and ends in the middle of another. The total bit count does not have to be
// a multiple of 8 or 5; a final partial symbol is padded with zero bits.
//
// The alphabet and the 5-bit symbol width are wire-format constants and must
// not change.
package bitpack

// Alphabet is the fixed 32-symbol set used to render 5-bit groups. The
// symbol for value v is Alphabet[v].
const Alphabet = "abcdefghijklmnopqrstuvwxyz234567"

// SymbolBits is the number of bits carried by one symbol.
const SymbolBits = 5

// SymbolValue returns the 5-bit value of a lowercase alphabet character.
// The second return value is false for any character outside the alphabet.
func SymbolValue(c byte) (uint8, bool) {
	switch {
	case c >= 'a' && c <= 'z':
		return c - 'a', true
	case c >= '2' && c <= '7':
		return c - '2' + 26, true
	}
	return 0, false
}

// Writer accumulates bit fields MSB-first and renders them as alphabet
// symbols. The zero value is ready to use.
type Writer struct {
	syms []byte
	acc  uint8 // pending bits of the next symbol, right-aligned
	n    int   // pending bit count, always < SymbolBits
}

// WriteBits appends the low `bits` bits of value to the stream, most
// significant bit first. A value wider than its field keeps only the least
// significant `bits` bits; this is how oversized inputs are truncated to
// their wire width.
func (w *Writer) WriteBits(value uint64, bits int) {
	if bits < 64 {
		value &= uint64(1)<<bits - 1
	}
	for bits > 0 {
		need := SymbolBits - w.n
		if bits < need {
			w.acc = w.acc<<bits | uint8(value)
			w.n += bits
			return
		}
		chunk := uint8(value >> (bits - need))
		w.syms = append(w.syms, Alphabet[w.acc<<need|chunk])
		w.acc, w.n = 0, 0
		bits -= need
		if bits > 0 && bits < 64 {
			value &= uint64(1)<<bits - 1
		}
	}
}

// String flushes any partial symbol (padding it with zero bits on the right)
// and returns the rendered stream.
func (w *Writer) String() string {
	if w.n > 0 {
		w.syms = append(w.syms, Alphabet[w.acc<<(SymbolBits-w.n)])
		w.acc, w.n = 0, 0
	}
	return string(w.syms)
}

// Reader yields bit fields MSB-first from a sequence of symbol values
// (not characters; callers resolve characters via SymbolValue first, so
// that invalid characters can be rejected with their position).
type Reader struct {
	values []byte
	pos    int
	acc    uint8 // unread bits of the current symbol, right-aligned
	n      int   // unread bit count, always < SymbolBits after a read
}

// NewReader returns a Reader over the given symbol values. Every value must
// be below 1<<SymbolBits.
func NewReader(values []byte) *Reader {
	return &Reader{values: values}
}

// ReadBits returns the next `bits` bits as a right-aligned unsigned integer.
// Reading past the end of the stream yields zero bits, which lets callers
// ignore the zero padding of a final partial symbol.
func (r *Reader) ReadBits(bits int) uint64 {
	var v uint64
	for bits > 0 {
		if r.n == 0 {
			if r.pos >= len(r.values) {
				return v << bits
			}
			r.acc = r.values[r.pos]
			r.pos++
			r.n = SymbolBits
		}
		take := bits
		if take > r.n {
			take = r.n
		}
		v = v<<take | uint64(r.acc>>(r.n-take))
		r.n -= take
		r.acc &= 1<<r.n - 1
		bits -= take
	}
	return v
}
