package num

import "math/big"

// Integer arithmetic returns all-X when any operand carries an X or Z
// bit; there is no per-bit precision to preserve once a carry chain is
// involved. Results wrap to the result width in two's complement.

// Add returns lhs + rhs at the given result width.
func Add(width int, lhs, rhs *Num) *Num {
	if lhs.IsFourState() || rhs.IsFourState() {
		return NewAllX(width)
	}
	return fromBig(width, new(big.Int).Add(lhs.val, rhs.val))
}

// Sub returns lhs - rhs at the given result width.
func Sub(width int, lhs, rhs *Num) *Num {
	if lhs.IsFourState() || rhs.IsFourState() {
		return NewAllX(width)
	}
	return fromBig(width, new(big.Int).Sub(lhs.val, rhs.val))
}

// Negate returns -lhs at the given result width.
func Negate(width int, lhs *Num) *Num {
	if lhs.IsFourState() {
		return NewAllX(width)
	}
	return fromBig(width, new(big.Int).Neg(lhs.val))
}

// Mul returns lhs * rhs, operands read unsigned, at the result width.
func Mul(width int, lhs, rhs *Num) *Num {
	if lhs.IsFourState() || rhs.IsFourState() {
		return NewAllX(width)
	}
	return fromBig(width, new(big.Int).Mul(lhs.val, rhs.val))
}

// MulS returns lhs * rhs with both operands read as signed at their own
// widths. The wrapped result is identical to Mul for equal widths; the
// kinds stay distinct because their emission differs.
func MulS(width int, lhs, rhs *Num) *Num {
	if lhs.IsFourState() || rhs.IsFourState() {
		return NewAllX(width)
	}
	return fromBig(width, new(big.Int).Mul(lhs.BigSigned(), rhs.BigSigned()))
}

// Div returns lhs / rhs, operands unsigned. Division by zero yields all-X.
func Div(width int, lhs, rhs *Num) *Num {
	if lhs.IsFourState() || rhs.IsFourState() || rhs.val.Sign() == 0 {
		return NewAllX(width)
	}
	return fromBig(width, new(big.Int).Quo(lhs.val, rhs.val))
}

// DivS returns lhs / rhs with signed operands, truncating toward zero.
// Division by zero yields all-X.
func DivS(width int, lhs, rhs *Num) *Num {
	if lhs.IsFourState() || rhs.IsFourState() || rhs.val.Sign() == 0 {
		return NewAllX(width)
	}
	return fromBig(width, new(big.Int).Quo(lhs.BigSigned(), rhs.BigSigned()))
}

// ModDiv returns lhs % rhs, operands unsigned. Modulo by zero yields all-X.
func ModDiv(width int, lhs, rhs *Num) *Num {
	if lhs.IsFourState() || rhs.IsFourState() || rhs.val.Sign() == 0 {
		return NewAllX(width)
	}
	return fromBig(width, new(big.Int).Rem(lhs.val, rhs.val))
}

// ModDivS returns lhs % rhs with signed operands; the remainder takes the
// dividend's sign. Modulo by zero yields all-X.
func ModDivS(width int, lhs, rhs *Num) *Num {
	if lhs.IsFourState() || rhs.IsFourState() || rhs.val.Sign() == 0 {
		return NewAllX(width)
	}
	return fromBig(width, new(big.Int).Rem(lhs.BigSigned(), rhs.BigSigned()))
}

// powBig raises base to exp (exp >= 0) modulo 2^width.
func powBig(width int, base, exp *big.Int) *big.Int {
	mod := new(big.Int).Lsh(big.NewInt(1), uint(width))
	neg := base.Sign() < 0
	abs := new(big.Int).Abs(base)
	r := new(big.Int).Exp(abs, exp, mod)
	if neg && exp.Bit(0) == 1 {
		r.Neg(r)
	}
	return r
}

// Pow returns lhs ** rhs with both operands unsigned. An exponent of
// zero yields 1 for any base.
func Pow(width int, lhs, rhs *Num) *Num {
	if lhs.IsFourState() || rhs.IsFourState() {
		return NewAllX(width)
	}
	if rhs.val.Sign() == 0 {
		return NewLogic(width, 1)
	}
	return fromBig(width, powBig(width, lhs.val, rhs.val))
}

// PowSS returns lhs ** rhs with both operands signed. Degenerate cases
// follow the hardware rules: exponent zero yields 1; a negative exponent
// yields X for base 0, 1 for base 1, +/-1 by exponent parity for base -1,
// and 0 for any other base.
func PowSS(width int, lhs, rhs *Num) *Num {
	if lhs.IsFourState() || rhs.IsFourState() {
		return NewAllX(width)
	}
	if rhs.val.Sign() == 0 {
		return NewLogic(width, 1)
	}
	base := lhs.BigSigned()
	exp := rhs.BigSigned()
	if exp.Sign() < 0 {
		return powNegExp(width, base, exp)
	}
	return fromBig(width, powBig(width, base, exp))
}

// PowSU returns lhs ** rhs with a signed base and unsigned exponent.
func PowSU(width int, lhs, rhs *Num) *Num {
	if lhs.IsFourState() || rhs.IsFourState() {
		return NewAllX(width)
	}
	if rhs.val.Sign() == 0 {
		return NewLogic(width, 1)
	}
	return fromBig(width, powBig(width, lhs.BigSigned(), rhs.val))
}

// PowUS returns lhs ** rhs with an unsigned base and signed exponent.
func PowUS(width int, lhs, rhs *Num) *Num {
	if lhs.IsFourState() || rhs.IsFourState() {
		return NewAllX(width)
	}
	if rhs.val.Sign() == 0 {
		return NewLogic(width, 1)
	}
	exp := rhs.BigSigned()
	if exp.Sign() < 0 {
		return powNegExp(width, lhs.val, exp)
	}
	return fromBig(width, powBig(width, lhs.val, exp))
}

func powNegExp(width int, base, exp *big.Int) *Num {
	switch {
	case base.Sign() == 0:
		return NewAllX(width)
	case base.Cmp(big.NewInt(1)) == 0:
		return NewLogic(width, 1)
	case base.Cmp(big.NewInt(-1)) == 0:
		if exp.Bit(0) == 0 {
			return NewLogic(width, 1)
		}
		return fromBig(width, big.NewInt(-1))
	default:
		return NewLogic(width, 0)
	}
}
