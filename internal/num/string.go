package num

import (
	"strconv"
	"strings"
)

// String operands live in the 2-state domain. Index and count operands
// that carry X or Z are treated as out of range.

func int64Arg(n *Num) (int64, bool) {
	if !n.IsLogic() || n.IsFourState() || n.val.BitLen() > 63 {
		return 0, false
	}
	return n.Int64(), true
}

// LenN returns the string's length as a signed 32-bit vector.
func LenN(lhs *Num) *Num {
	return NewInt32(int32(len(lhs.Str())))
}

// ToLowerN lowercases ASCII letters.
func ToLowerN(lhs *Num) *Num {
	return NewString(strings.ToLower(lhs.Str()))
}

// ToUpperN uppercases ASCII letters.
func ToUpperN(lhs *Num) *Num {
	return NewString(strings.ToUpper(lhs.Str()))
}

// GetcN returns the byte at index rhs as an 8-bit vector, or 0 when the
// index is out of range.
func GetcN(lhs, rhs *Num) *Num {
	s := lhs.Str()
	i, ok := int64Arg(rhs)
	if !ok || i < 0 || i >= int64(len(s)) {
		return NewLogic(8, 0)
	}
	return NewLogic(8, uint64(s[i]))
}

// PutcN replaces the byte at index rhs with the low 8 bits of ths. The
// string is unchanged when the index is out of range or the byte is 0.
func PutcN(lhs, rhs, ths *Num) *Num {
	s := lhs.Str()
	i, iok := int64Arg(rhs)
	c, cok := int64Arg(ths)
	b := byte(c)
	if !iok || !cok || i < 0 || i >= int64(len(s)) || b == 0 {
		return NewString(s)
	}
	out := []byte(s)
	out[i] = b
	return NewString(string(out))
}

// SubstrN returns the inclusive byte range rhs..ths, or the empty string
// when the range is invalid.
func SubstrN(lhs, rhs, ths *Num) *Num {
	s := lhs.Str()
	lo, lok := int64Arg(rhs)
	hi, hok := int64Arg(ths)
	if !lok || !hok || lo < 0 || hi < lo || hi >= int64(len(s)) {
		return NewString("")
	}
	return NewString(s[lo : hi+1])
}

// CompareNN compares two strings, optionally case-insensitively, and
// returns a signed 32-bit vector that is negative, zero, or positive.
func CompareNN(lhs, rhs *Num, ignoreCase bool) *Num {
	l, r := lhs.Str(), rhs.Str()
	if ignoreCase {
		l, r = strings.ToLower(l), strings.ToLower(r)
	}
	return NewInt32(int32(strings.Compare(l, r)))
}

// ConcatN concatenates two strings.
func ConcatN(lhs, rhs *Num) *Num {
	return NewString(lhs.Str() + rhs.Str())
}

// ReplicateN repeats the string rhs times. A count that is invalid or
// not positive yields the empty string.
func ReplicateN(lhs, rhs *Num) *Num {
	c, ok := int64Arg(rhs)
	if !ok || c <= 0 {
		return NewString("")
	}
	return NewString(strings.Repeat(lhs.Str(), int(c)))
}

// AtoReal is the AtoN base selecting floating-point conversion.
const AtoReal = -1

// AtoN converts the leading numeric prefix of the string in the given
// base, ignoring underscores. An unparsable prefix or an overflowing
// value yields 0, matching C strtol behavior. Base AtoReal parses a
// leading floating-point literal into a double.
func AtoN(lhs *Num, base int) *Num {
	s := lhs.Str()
	if base == AtoReal {
		return NewDouble(atofPrefix(s))
	}
	s = strings.ReplaceAll(s, "_", "")
	return NewInt32(atoiPrefix(s, base))
}

// atoiPrefix parses like strtol on a 64-bit long followed by a cast to
// int32: optional whitespace and sign, digits valid for the base up to
// the first invalid byte. Overflow past the long range yields 0 (the
// errno path); values past int32 wrap through truncation as the cast
// would.
func atoiPrefix(s string, base int) int32 {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t' || s[i] == '\n' || s[i] == '\r') {
		i++
	}
	neg := false
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		neg = s[i] == '-'
		i++
	}
	const longMax = uint64(1<<63 - 1)
	var v uint64
	any := false
	for ; i < len(s); i++ {
		d := digitVal(s[i])
		if d < 0 || d >= base {
			break
		}
		any = true
		if v > (longMax-uint64(d))/uint64(base) {
			return 0
		}
		v = v*uint64(base) + uint64(d)
	}
	if !any {
		return 0
	}
	x := int64(v)
	if neg {
		x = -x
	}
	return int32(x)
}

func digitVal(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	default:
		return -1
	}
}

// atofPrefix parses a leading float like C atof: sign, digits, optional
// fraction and exponent. An unparsable prefix yields 0.
func atofPrefix(s string) float64 {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	start := i
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := func() bool {
		saw := false
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
			saw = true
		}
		return saw
	}
	sawInt := digits()
	sawFrac := false
	if i < len(s) && s[i] == '.' {
		i++
		sawFrac = digits()
	}
	if !sawInt && !sawFrac {
		return 0
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		k := j
		for k < len(s) && s[k] >= '0' && s[k] <= '9' {
			k++
		}
		if k > j {
			i = k
		}
	}
	f, err := strconv.ParseFloat(s[start:i], 64)
	if err != nil {
		return 0
	}
	return f
}

// EqN returns lhs == rhs for strings as 1 bit.
func EqN(lhs, rhs *Num) *Num { return NewBit(lhs.Str() == rhs.Str()) }

// NeqN returns lhs != rhs for strings.
func NeqN(lhs, rhs *Num) *Num { return NewBit(lhs.Str() != rhs.Str()) }

// GtN returns lhs > rhs in byte order.
func GtN(lhs, rhs *Num) *Num { return NewBit(lhs.Str() > rhs.Str()) }

// GteN returns lhs >= rhs in byte order.
func GteN(lhs, rhs *Num) *Num { return NewBit(lhs.Str() >= rhs.Str()) }

// LtN returns lhs < rhs in byte order.
func LtN(lhs, rhs *Num) *Num { return NewBit(lhs.Str() < rhs.Str()) }

// LteN returns lhs <= rhs in byte order.
func LteN(lhs, rhs *Num) *Num { return NewBit(lhs.Str() <= rhs.Str()) }
