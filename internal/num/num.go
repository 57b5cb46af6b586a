package num

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
)

// Flavor identifies the value representation a Num carries.
type Flavor uint8

const (
	FlavorLogic  Flavor = iota // 4-state logic vector
	FlavorDouble               // IEEE double
	FlavorString               // dynamic string
	FlavorNull                 // null reference
)

// String returns the lowercase flavor name used in dumps and stores.
func (f Flavor) String() string {
	switch f {
	case FlavorLogic:
		return "logic"
	case FlavorDouble:
		return "double"
	case FlavorString:
		return "string"
	case FlavorNull:
		return "null"
	default:
		return fmt.Sprintf("flavor(%d)", uint8(f))
	}
}

// Bit is the state of a single logic position.
type Bit uint8

const (
	Bit0 Bit = iota
	Bit1
	BitZ
	BitX
)

// IsXZ reports whether the bit is X or Z.
func (b Bit) IsXZ() bool { return b == BitX || b == BitZ }

// Char returns the display character for the bit.
func (b Bit) Char() byte {
	switch b {
	case Bit0:
		return '0'
	case Bit1:
		return '1'
	case BitZ:
		return 'z'
	default:
		return 'x'
	}
}

// Num is an immutable literal value. The zero value is not useful; use the
// constructors. Logic vectors store a value plane and an X/Z plane: a bit
// with only the value plane set is 1, with only the X/Z plane set is Z,
// and with both set is X.
type Num struct {
	flavor Flavor
	width  int
	signed bool
	sized  bool
	val    *big.Int
	xz     *big.Int
	dbl    float64
	str    string
}

func newLogic(width int, signed, sized bool, val, xz *big.Int) *Num {
	if width < 1 {
		width = 1
	}
	m := mask(width)
	n := &Num{
		flavor: FlavorLogic,
		width:  width,
		signed: signed,
		sized:  sized,
		val:    new(big.Int).And(val, m),
		xz:     new(big.Int).And(xz, m),
	}
	return n
}

func mask(width int) *big.Int {
	m := new(big.Int).Lsh(big.NewInt(1), uint(width))
	return m.Sub(m, big.NewInt(1))
}

// NewLogic returns an unsigned sized logic vector holding value.
func NewLogic(width int, value uint64) *Num {
	return newLogic(width, false, true, new(big.Int).SetUint64(value), new(big.Int))
}

// NewLogicSigned returns a signed sized logic vector holding value in
// two's complement at the given width.
func NewLogicSigned(width int, value int64) *Num {
	return newLogic(width, true, true, big.NewInt(value), new(big.Int))
}

// NewLogicBig returns a sized logic vector from explicit planes. Both
// planes are masked to width.
func NewLogicBig(width int, signed bool, val, xz *big.Int) *Num {
	return newLogic(width, signed, true, val, xz)
}

// NewAllX returns a vector of the given width with every bit X.
func NewAllX(width int) *Num {
	if width < 1 {
		width = 1
	}
	m := mask(width)
	return newLogic(width, false, true, m, m)
}

// NewAllZ returns a vector of the given width with every bit Z.
func NewAllZ(width int) *Num {
	if width < 1 {
		width = 1
	}
	return newLogic(width, false, true, new(big.Int), mask(width))
}

// NewBit returns a 1-bit vector: 1 if on, else 0.
func NewBit(on bool) *Num {
	if on {
		return NewLogic(1, 1)
	}
	return NewLogic(1, 0)
}

// NewInt32 returns a signed sized 32-bit vector.
func NewInt32(value int32) *Num { return NewLogicSigned(32, int64(value)) }

// NewUint32 returns an unsigned sized 32-bit vector.
func NewUint32(value uint32) *Num { return NewLogic(32, uint64(value)) }

// NewUint64 returns an unsigned sized 64-bit vector.
func NewUint64(value uint64) *Num { return NewLogic(64, value) }

// NewDouble returns a double-flavor value.
func NewDouble(v float64) *Num { return &Num{flavor: FlavorDouble, width: 64, dbl: v} }

// NewString returns a string-flavor value.
func NewString(s string) *Num { return &Num{flavor: FlavorString, str: s} }

// NewNull returns the null-reference value.
func NewNull() *Num { return &Num{flavor: FlavorNull, width: 1} }

// Flavor returns the value representation.
func (n *Num) Flavor() Flavor { return n.flavor }

// Width returns the bit width. Doubles report 64; strings report
// 8 * len; null reports 1.
func (n *Num) Width() int {
	if n.flavor == FlavorString {
		return 8 * len(n.str)
	}
	return n.width
}

// Signed reports whether a logic vector is signed.
func (n *Num) Signed() bool { return n.signed }

// Sized reports whether the literal carried an explicit size.
func (n *Num) Sized() bool { return n.sized }

// IsLogic reports whether the value is a logic vector.
func (n *Num) IsLogic() bool { return n.flavor == FlavorLogic }

// IsDouble reports whether the value is a double.
func (n *Num) IsDouble() bool { return n.flavor == FlavorDouble }

// IsString reports whether the value is a string.
func (n *Num) IsString() bool { return n.flavor == FlavorString }

// IsNull reports whether the value is the null reference.
func (n *Num) IsNull() bool { return n.flavor == FlavorNull }

// IsFourState reports whether any bit is X or Z.
func (n *Num) IsFourState() bool {
	return n.flavor == FlavorLogic && n.xz.Sign() != 0
}

// IsEqZero reports whether every bit is a definite 0.
func (n *Num) IsEqZero() bool {
	return n.flavor == FlavorLogic && n.val.Sign() == 0 && n.xz.Sign() == 0
}

// IsNeqZero reports whether some bit is a definite 1. An all-X value is
// neither IsEqZero nor IsNeqZero.
func (n *Num) IsNeqZero() bool {
	if n.flavor != FlavorLogic {
		return false
	}
	// Definite 1 bits are value-plane bits without the X/Z plane set.
	t := new(big.Int).AndNot(n.val, n.xz)
	return t.Sign() != 0
}

// Bit returns the state of bit i. Positions at or above the width read as
// definite 0, matching unsigned extension.
func (n *Num) Bit(i int) Bit {
	if i < 0 || i >= n.width {
		return Bit0
	}
	v := n.val.Bit(i)
	x := n.xz.Bit(i)
	switch {
	case x == 0 && v == 0:
		return Bit0
	case x == 0 && v == 1:
		return Bit1
	case v == 0:
		return BitZ
	default:
		return BitX
	}
}

// BitExtend returns the state of bit i under sign extension from bit
// from-1: positions at or above from replicate that bit's state.
func (n *Num) BitExtend(i, from int) Bit {
	if from < 1 {
		from = 1
	}
	if i >= from {
		i = from - 1
	}
	return n.Bit(i)
}

// WidthMin returns the minimum width needed to represent the value: the
// position of the highest set bit in either plane, at least 1.
func (n *Num) WidthMin() int {
	if n.flavor != FlavorLogic {
		return n.Width()
	}
	hi := n.val.BitLen()
	if x := n.xz.BitLen(); x > hi {
		hi = x
	}
	if hi < 1 {
		return 1
	}
	return hi
}

// BigUnsigned returns a copy of the value plane interpreted as an
// unsigned integer. The caller must have checked IsFourState.
func (n *Num) BigUnsigned() *big.Int { return new(big.Int).Set(n.val) }

// BigSigned returns the value plane interpreted as two's complement at
// the vector's width. The caller must have checked IsFourState.
func (n *Num) BigSigned() *big.Int {
	v := new(big.Int).Set(n.val)
	if n.width > 0 && v.Bit(n.width-1) == 1 {
		v.Sub(v, new(big.Int).Lsh(big.NewInt(1), uint(n.width)))
	}
	return v
}

// FitsUint64 reports whether the value is a 2-state logic vector whose
// value fits in 64 bits.
func (n *Num) FitsUint64() bool {
	return n.flavor == FlavorLogic && n.xz.Sign() == 0 && n.val.BitLen() <= 64
}

// Uint64 returns the value as a uint64. It panics if the value is not a
// 2-state logic vector fitting 64 bits; callers guard with FitsUint64.
func (n *Num) Uint64() uint64 {
	if !n.FitsUint64() {
		panic(fmt.Sprintf("num: Uint64 on %s", n.Ascii()))
	}
	return n.val.Uint64()
}

// Int64 returns the low 64 bits sign-extended from the vector's width.
// It panics on non-logic or 4-state values.
func (n *Num) Int64() int64 {
	if n.flavor != FlavorLogic || n.xz.Sign() != 0 {
		panic(fmt.Sprintf("num: Int64 on %s", n.Ascii()))
	}
	w := n.width
	if w > 64 {
		w = 64
	}
	v := n.val.Uint64()
	if w < 64 && v&(uint64(1)<<(w-1)) != 0 {
		v |= ^uint64(0) << w
	}
	return int64(v)
}

// Double returns the double payload. It panics on other flavors.
func (n *Num) Double() float64 {
	if n.flavor != FlavorDouble {
		panic(fmt.Sprintf("num: Double on %s", n.Ascii()))
	}
	return n.dbl
}

// Str returns the string payload. It panics on other flavors.
func (n *Num) Str() string {
	if n.flavor != FlavorString {
		panic(fmt.Sprintf("num: Str on %s", n.Ascii()))
	}
	return n.str
}

// CaseEqual reports exact 4-state equality: same flavor, and for logic
// vectors the same width with every bit in the same state. This is the
// identity used by constant nodes.
func (n *Num) CaseEqual(o *Num) bool {
	if n.flavor != o.flavor {
		return false
	}
	switch n.flavor {
	case FlavorDouble:
		return n.dbl == o.dbl
	case FlavorString:
		return n.str == o.str
	case FlavorNull:
		return true
	default:
		return n.width == o.width && n.val.Cmp(o.val) == 0 && n.xz.Cmp(o.xz) == 0
	}
}

// Key returns a string that is equal for two values exactly when
// CaseEqual holds. It feeds structural hashing and map keys; the
// rendering is not for display.
func (n *Num) Key() string {
	switch n.flavor {
	case FlavorDouble:
		d := n.dbl
		if d == 0 {
			d = 0 // +0 and -0 compare equal
		}
		return "d:" + strconv.FormatUint(math.Float64bits(d), 16)
	case FlavorString:
		return "s:" + n.str
	case FlavorNull:
		return "n"
	default:
		return "l:" + strconv.Itoa(n.width) + ":" + n.val.Text(16) + ":" + n.xz.Text(16)
	}
}

// Ascii renders the canonical literal text: sized hex for 2-state logic,
// sized binary when any bit is X or Z, %g for doubles, quoted strings.
func (n *Num) Ascii() string {
	switch n.flavor {
	case FlavorDouble:
		return strconv.FormatFloat(n.dbl, 'g', -1, 64)
	case FlavorString:
		return strconv.Quote(n.str)
	case FlavorNull:
		return "null"
	}
	var b strings.Builder
	b.WriteString(strconv.Itoa(n.width))
	b.WriteByte('\'')
	if n.signed {
		b.WriteByte('s')
	}
	if n.xz.Sign() != 0 {
		b.WriteByte('b')
		for i := n.width - 1; i >= 0; i-- {
			b.WriteByte(n.Bit(i).Char())
		}
	} else {
		b.WriteByte('h')
		b.WriteString(n.val.Text(16))
	}
	return b.String()
}

// String implements fmt.Stringer via Ascii.
func (n *Num) String() string { return n.Ascii() }

// AsSigned returns a copy marked signed. Width and bits are unchanged.
func (n *Num) AsSigned() *Num {
	c := *n
	c.signed = true
	return &c
}

// AsUnsigned returns a copy marked unsigned. Width and bits are unchanged.
func (n *Num) AsUnsigned() *Num {
	c := *n
	c.signed = false
	return &c
}

// builder is a mutable vector under construction by the operations.
type builder struct {
	width int
	val   *big.Int
	xz    *big.Int
}

func newBuilder(width int) *builder {
	if width < 1 {
		width = 1
	}
	return &builder{width: width, val: new(big.Int), xz: new(big.Int)}
}

func (b *builder) setBit(i int, bit Bit) {
	if i < 0 || i >= b.width {
		return
	}
	switch bit {
	case Bit0:
		b.val.SetBit(b.val, i, 0)
		b.xz.SetBit(b.xz, i, 0)
	case Bit1:
		b.val.SetBit(b.val, i, 1)
		b.xz.SetBit(b.xz, i, 0)
	case BitZ:
		b.val.SetBit(b.val, i, 0)
		b.xz.SetBit(b.xz, i, 1)
	default:
		b.val.SetBit(b.val, i, 1)
		b.xz.SetBit(b.xz, i, 1)
	}
}

func (b *builder) num() *Num {
	return newLogic(b.width, false, true, b.val, b.xz)
}

func (b *builder) signedNum() *Num {
	return newLogic(b.width, true, true, b.val, b.xz)
}

// fromBig masks a 2-state big integer (possibly negative, read as two's
// complement) into a width-bit vector. big.Int bitwise ops already treat
// negatives as infinitely sign-extended two's complement, so the masking
// in newLogic wraps correctly.
func fromBig(width int, v *big.Int) *Num {
	return newLogic(width, false, true, v, new(big.Int))
}

// oneBit builds the 1-bit result used by comparisons and reductions.
// state is Bit0, Bit1, or BitX.
func oneBit(state Bit) *Num {
	b := newBuilder(1)
	b.setBit(0, state)
	return b.num()
}
