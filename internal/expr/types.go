package expr

import (
	"fmt"

	"github.com/jmerdich/verilator/internal/num"
)

// Loc identifies the source position a node was created from. Locations
// are carried for diagnostics and never participate in structural
// equality, with one deliberate exception (see Same on OpNullCheck).
type Loc struct {
	File string `json:"file" yaml:"file"`
	Line int    `json:"line" yaml:"line"`
	Col  int    `json:"col,omitempty" yaml:"col,omitempty"`
}

func (l Loc) String() string {
	if l.File == "" {
		return "<builtin>"
	}
	if l.Col > 0 {
		return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Col)
	}
	return fmt.Sprintf("%s:%d", l.File, l.Line)
}

// DType is the resolved type of an expression: bit width, signedness and
// flavor. WidthMin tracks the minimum width an unsized literal needed
// before expansion; zero means "same as Width".
type DType struct {
	Width    int        `json:"width" yaml:"width"`
	WidthMin int        `json:"widthMin,omitempty" yaml:"widthMin,omitempty"`
	Signed   bool       `json:"signed,omitempty" yaml:"signed,omitempty"`
	Flavor   num.Flavor `json:"flavor,omitempty" yaml:"flavor,omitempty"`
}

// Common dtype constructors, mirroring the result-type rules in the
// operator catalog.

func BitDType() DType      { return DType{Width: 1} }
func Signed32DType() DType { return DType{Width: 32, Signed: true} }
func UInt32DType() DType   { return DType{Width: 32} }
func UInt64DType() DType   { return DType{Width: 64} }
func DoubleDType() DType   { return DType{Width: 64, Flavor: num.FlavorDouble} }
func StringDType() DType   { return DType{Flavor: num.FlavorString} }

func BitSizedDType(w int) DType { return DType{Width: w} }

func LogicDType(w int, signed bool) DType {
	return DType{Width: w, Signed: signed}
}

func (t DType) IsDouble() bool { return t.Flavor == num.FlavorDouble }
func (t DType) IsString() bool { return t.Flavor == num.FlavorString }

// IsQuad reports a value needing a 64-bit word: wider than 32 bits but
// still representable in one machine quad.
func (t DType) IsQuad() bool { return t.Width > 32 && t.Width <= 64 }

// IsWide reports a value stored as a word array (wider than 64 bits).
func (t DType) IsWide() bool { return t.Width > 64 }

// Words is the number of 32-bit words needed to hold the value.
func (t DType) Words() int {
	if t.Width <= 0 {
		return 1
	}
	return (t.Width + 31) / 32
}

// WidthMinV returns the effective minimum width: WidthMin when set,
// otherwise Width. Signed shifts and sign extension read this, not the
// expanded width.
func (t DType) WidthMinV() int {
	if t.WidthMin > 0 {
		return t.WidthMin
	}
	return t.Width
}

// WidthInstrs estimates word-level work for a value of this width.
func (t DType) WidthInstrs() int {
	w := t.Words()
	if w < 1 {
		return 1
	}
	return w
}

func (t DType) String() string {
	switch t.Flavor {
	case num.FlavorDouble:
		return "real"
	case num.FlavorString:
		return "string"
	}
	if t.Width <= 0 {
		return "untyped"
	}
	s := "logic"
	if t.Signed {
		s += " signed"
	}
	if t.Width == 1 && t.WidthMin == 0 {
		return s
	}
	return fmt.Sprintf("%s [%d:0]", s, t.Width-1)
}

// Access describes how a variable reference uses its target.
type Access uint8

const (
	AccessRead Access = iota
	AccessWrite
	AccessReadWrite
)

func (a Access) String() string {
	switch a {
	case AccessRead:
		return "RD"
	case AccessWrite:
		return "WR"
	case AccessReadWrite:
		return "RW"
	}
	return fmt.Sprintf("Access(%d)", uint8(a))
}

// IsReadOrRW reports whether the reference observes the current value.
func (a Access) IsReadOrRW() bool { return a == AccessRead || a == AccessReadWrite }

// IsWriteOrRW reports whether the reference updates the target.
func (a Access) IsWriteOrRW() bool { return a == AccessWrite || a == AccessReadWrite }

// AtoFmt selects the conversion an OpAtoN node performs. The integer
// values are the radix, with AtoFmtReal as the one non-radix member.
type AtoFmt int

const (
	AtoFmtBin  AtoFmt = 2
	AtoFmtOct  AtoFmt = 8
	AtoFmtDec  AtoFmt = 10
	AtoFmtHex  AtoFmt = 16
	AtoFmtReal AtoFmt = -1
)

func (f AtoFmt) String() string {
	switch f {
	case AtoFmtBin:
		return "atobin"
	case AtoFmtOct:
		return "atooct"
	case AtoFmtDec:
		return "atoi"
	case AtoFmtHex:
		return "atohex"
	case AtoFmtReal:
		return "atoreal"
	}
	return fmt.Sprintf("AtoFmt(%d)", int(f))
}

// Valid reports whether f is one of the defined conversions.
func (f AtoFmt) Valid() bool {
	switch f {
	case AtoFmtBin, AtoFmtOct, AtoFmtDec, AtoFmtHex, AtoFmtReal:
		return true
	}
	return false
}

// Timescale is a simulation time unit from 1s down to 1fs. The zero
// value is 1s; NoTimescale marks an unset unit.
type Timescale int8

const (
	TS1S Timescale = iota
	TS100MS
	TS10MS
	TS1MS
	TS100US
	TS10US
	TS1US
	TS100NS
	TS10NS
	TS1NS
	TS100PS
	TS10PS
	TS1PS
	TS100FS
	TS10FS
	TS1FS
	NoTimescale Timescale = -1
)

var timescaleNames = [...]string{
	"1s", "100ms", "10ms", "1ms", "100us", "10us", "1us", "100ns",
	"10ns", "1ns", "100ps", "10ps", "1ps", "100fs", "10fs", "1fs",
}

func (t Timescale) String() string {
	if t < 0 || int(t) >= len(timescaleNames) {
		return "none"
	}
	return timescaleNames[t]
}

// ParseTimescale converts a textual unit ("1ns", "100ps") back to its
// Timescale. Unknown text yields NoTimescale.
func ParseTimescale(s string) Timescale {
	for i, name := range timescaleNames {
		if s == name {
			return Timescale(i)
		}
	}
	return NoTimescale
}

// PowerOfTen is the exponent of the unit relative to one second
// (1s -> 0, 1ns -> -9, 1fs -> -15).
func (t Timescale) PowerOfTen() int {
	if t < 0 {
		return 0
	}
	return -int(t)
}

// Range describes a declared packed or unpacked range [Left:Right].
// The zero value is "no range".
type Range struct {
	Left  int  `json:"left" yaml:"left"`
	Right int  `json:"right" yaml:"right"`
	Valid bool `json:"valid,omitempty" yaml:"valid,omitempty"`
}

func NewRange(left, right int) Range { return Range{Left: left, Right: right, Valid: true} }

func (r Range) Hi() int {
	if r.Left > r.Right {
		return r.Left
	}
	return r.Right
}

func (r Range) Lo() int {
	if r.Left > r.Right {
		return r.Right
	}
	return r.Left
}

// Elements is the number of addressable positions in the range.
func (r Range) Elements() int {
	if !r.Valid {
		return 0
	}
	return r.Hi() - r.Lo() + 1
}

// Ascending reports a little-endian declaration ([0:7] rather than [7:0]).
func (r Range) Ascending() bool { return r.Valid && r.Left < r.Right }

func (r Range) String() string {
	if !r.Valid {
		return ""
	}
	return fmt.Sprintf("[%d:%d]", r.Left, r.Right)
}
