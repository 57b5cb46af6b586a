package num

// Bitwise operators propagate X per 4-state rules: a dominant operand bit
// (0 for AND, 1 for OR) forces the result bit regardless of the other
// side; otherwise any X or Z yields X.

// And returns lhs & rhs at the given result width.
func And(width int, lhs, rhs *Num) *Num {
	b := newBuilder(width)
	for i := 0; i < width; i++ {
		l, r := lhs.Bit(i), rhs.Bit(i)
		switch {
		case l == Bit0 || r == Bit0:
			b.setBit(i, Bit0)
		case l == Bit1 && r == Bit1:
			b.setBit(i, Bit1)
		default:
			b.setBit(i, BitX)
		}
	}
	return b.num()
}

// Or returns lhs | rhs at the given result width.
func Or(width int, lhs, rhs *Num) *Num {
	b := newBuilder(width)
	for i := 0; i < width; i++ {
		l, r := lhs.Bit(i), rhs.Bit(i)
		switch {
		case l == Bit1 || r == Bit1:
			b.setBit(i, Bit1)
		case l == Bit0 && r == Bit0:
			b.setBit(i, Bit0)
		default:
			b.setBit(i, BitX)
		}
	}
	return b.num()
}

// Xor returns lhs ^ rhs at the given result width.
func Xor(width int, lhs, rhs *Num) *Num {
	b := newBuilder(width)
	for i := 0; i < width; i++ {
		l, r := lhs.Bit(i), rhs.Bit(i)
		switch {
		case l.IsXZ() || r.IsXZ():
			b.setBit(i, BitX)
		case l != r:
			b.setBit(i, Bit1)
		default:
			b.setBit(i, Bit0)
		}
	}
	return b.num()
}

// Not returns ~lhs at the given result width. X and Z invert to X.
func Not(width int, lhs *Num) *Num {
	b := newBuilder(width)
	for i := 0; i < width; i++ {
		switch lhs.Bit(i) {
		case Bit0:
			b.setBit(i, Bit1)
		case Bit1:
			b.setBit(i, Bit0)
		default:
			b.setBit(i, BitX)
		}
	}
	return b.num()
}

// BufIf1 drives data bits where the enable bit is 1 and Z elsewhere.
func BufIf1(width int, en, data *Num) *Num {
	b := newBuilder(width)
	for i := 0; i < width; i++ {
		if en.Bit(i) == Bit1 {
			b.setBit(i, data.Bit(i))
		} else {
			b.setBit(i, BitZ)
		}
	}
	return b.num()
}

// RedAnd reduces to 1 bit: 0 if any bit is 0, X if any remaining bit is
// X or Z, else 1.
func RedAnd(lhs *Num) *Num {
	out := Bit1
	for i := 0; i < lhs.Width(); i++ {
		switch lhs.Bit(i) {
		case Bit0:
			return oneBit(Bit0)
		case BitX, BitZ:
			out = BitX
		}
	}
	return oneBit(out)
}

// RedOr reduces to 1 bit: 1 if any bit is 1, X if any remaining bit is
// X or Z, else 0.
func RedOr(lhs *Num) *Num {
	out := Bit0
	for i := 0; i < lhs.Width(); i++ {
		switch lhs.Bit(i) {
		case Bit1:
			return oneBit(Bit1)
		case BitX, BitZ:
			out = BitX
		}
	}
	return oneBit(out)
}

// RedXor reduces to 1 bit: X if any bit is X or Z, else the parity of
// the 1 bits.
func RedXor(lhs *Num) *Num {
	if lhs.IsFourState() {
		return oneBit(BitX)
	}
	parity := false
	for i := 0; i < lhs.Width(); i++ {
		if lhs.Bit(i) == Bit1 {
			parity = !parity
		}
	}
	if parity {
		return oneBit(Bit1)
	}
	return oneBit(Bit0)
}

// truthy classifies a vector for the logical operators: Bit1 if any bit
// is a definite 1, Bit0 if every bit is a definite 0, else BitX.
func truthy(n *Num) Bit {
	if n.IsNeqZero() {
		return Bit1
	}
	if n.IsEqZero() {
		return Bit0
	}
	return BitX
}

// LogNot returns !lhs as 1 bit.
func LogNot(lhs *Num) *Num {
	switch truthy(lhs) {
	case Bit1:
		return oneBit(Bit0)
	case Bit0:
		return oneBit(Bit1)
	default:
		return oneBit(BitX)
	}
}

// LogAnd returns lhs && rhs as 1 bit. A definite-false side dominates X.
func LogAnd(lhs, rhs *Num) *Num {
	l, r := truthy(lhs), truthy(rhs)
	switch {
	case l == Bit0 || r == Bit0:
		return oneBit(Bit0)
	case l == Bit1 && r == Bit1:
		return oneBit(Bit1)
	default:
		return oneBit(BitX)
	}
}

// LogOr returns lhs || rhs as 1 bit. A definite-true side dominates X.
func LogOr(lhs, rhs *Num) *Num {
	l, r := truthy(lhs), truthy(rhs)
	switch {
	case l == Bit1 || r == Bit1:
		return oneBit(Bit1)
	case l == Bit0 && r == Bit0:
		return oneBit(Bit0)
	default:
		return oneBit(BitX)
	}
}

// LogIf returns lhs -> rhs, which is !lhs || rhs.
func LogIf(lhs, rhs *Num) *Num {
	return LogOr(LogNot(lhs), rhs)
}

// LogEq returns lhs <-> rhs: 1 when both sides have the same truth
// value, X when either side is indeterminate.
func LogEq(lhs, rhs *Num) *Num {
	l, r := truthy(lhs), truthy(rhs)
	if l == BitX || r == BitX {
		return oneBit(BitX)
	}
	if l == r {
		return oneBit(Bit1)
	}
	return oneBit(Bit0)
}

// IsUnknown returns 1 if any bit is X or Z, else 0. The result is always
// 2-state.
func IsUnknown(lhs *Num) *Num {
	return NewBit(lhs.IsFourState())
}

// OneHot returns 1 if exactly one bit is 1. Any X or Z makes the result X.
func OneHot(lhs *Num) *Num {
	if lhs.IsFourState() {
		return oneBit(BitX)
	}
	return NewBit(popCount(lhs) == 1)
}

// OneHot0 returns 1 if at most one bit is 1. Any X or Z makes the result X.
func OneHot0(lhs *Num) *Num {
	if lhs.IsFourState() {
		return oneBit(BitX)
	}
	return NewBit(popCount(lhs) <= 1)
}

func popCount(n *Num) int {
	c := 0
	for i := 0; i < n.Width(); i++ {
		if n.Bit(i) == Bit1 {
			c++
		}
	}
	return c
}

// CountOnes counts the definite 1 bits. A 4-state operand yields all-X.
func CountOnes(width int, lhs *Num) *Num {
	if lhs.IsFourState() {
		return NewAllX(width)
	}
	return NewLogic(width, uint64(popCount(lhs)))
}

// CountBits counts operand bits whose 4-state value matches any of the
// three control states; each control contributes the state of its bit 0
// and duplicate controls count once.
func CountBits(width int, expr, ctrl1, ctrl2, ctrl3 *Num) *Num {
	states := map[Bit]bool{
		ctrl1.Bit(0): true,
		ctrl2.Bit(0): true,
		ctrl3.Bit(0): true,
	}
	c := 0
	for i := 0; i < expr.Width(); i++ {
		if states[expr.Bit(i)] {
			c++
		}
	}
	return NewLogic(width, uint64(c))
}

// CLog2 returns ceil(log2(lhs)): the index of the highest 1 bit, plus one
// unless the operand is an exact power of two. clog2(0) is 0. A 4-state
// operand yields all-X.
func CLog2(width int, lhs *Num) *Num {
	if lhs.IsFourState() {
		return NewAllX(width)
	}
	adjust := 1
	if popCount(lhs) == 1 {
		adjust = 0
	}
	for i := lhs.Width() - 1; i >= 0; i-- {
		if lhs.Bit(i) == Bit1 {
			return NewLogic(width, uint64(i+adjust))
		}
	}
	return NewLogic(width, 0)
}
