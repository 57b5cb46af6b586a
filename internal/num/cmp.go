package num

// Comparisons keep per-bit precision over X: a determined mismatch
// decides equality even when other positions are unknown, and for ordered
// comparisons a more significant determined difference overrides an X at
// a lower position.

func cmpWidth(lhs, rhs *Num) int {
	w := lhs.Width()
	if r := rhs.Width(); r > w {
		w = r
	}
	return w
}

// Eq returns lhs == rhs as 1 bit. A determined mismatch yields 0; else
// any X or Z yields X; else 1.
func Eq(lhs, rhs *Num) *Num {
	out := Bit1
	for i := 0; i < cmpWidth(lhs, rhs); i++ {
		l, r := lhs.Bit(i), rhs.Bit(i)
		if l == Bit1 && r == Bit0 || l == Bit0 && r == Bit1 {
			return oneBit(Bit0)
		}
		if l.IsXZ() || r.IsXZ() {
			out = BitX
		}
	}
	return oneBit(out)
}

// Neq returns lhs != rhs as 1 bit.
func Neq(lhs, rhs *Num) *Num {
	return LogNot(Eq(lhs, rhs))
}

// CaseEq returns lhs === rhs: exact 4-state equality, always 2-state.
// An X compares equal only to an X in the same position.
func CaseEq(lhs, rhs *Num) *Num {
	for i := 0; i < cmpWidth(lhs, rhs); i++ {
		if lhs.Bit(i) != rhs.Bit(i) {
			return NewBit(false)
		}
	}
	return NewBit(true)
}

// CaseNeq returns lhs !== rhs, always 2-state.
func CaseNeq(lhs, rhs *Num) *Num {
	return NewBit(!CaseEq(lhs, rhs).IsNeqZero())
}

// WildEq returns lhs ==? rhs. Positions where the pattern (rhs) is X or
// Z are ignored; among the rest, a determined mismatch yields 0, an X or
// Z on the left yields X, else 1.
func WildEq(lhs, rhs *Num) *Num {
	out := Bit1
	for i := 0; i < cmpWidth(lhs, rhs); i++ {
		r := rhs.Bit(i)
		if r.IsXZ() {
			continue
		}
		l := lhs.Bit(i)
		if l == Bit1 && r == Bit0 || l == Bit0 && r == Bit1 {
			return oneBit(Bit0)
		}
		if l.IsXZ() {
			out = BitX
		}
	}
	return oneBit(out)
}

// WildNeq returns lhs !=? rhs.
func WildNeq(lhs, rhs *Num) *Num {
	return LogNot(WildEq(lhs, rhs))
}

// Gt returns lhs > rhs with unsigned operands as 1 bit. The scan runs
// from the low bit up so the most significant determined difference
// decides; an X at a position overrides lower determined differences but
// is itself overridden by a higher determined one.
func Gt(lhs, rhs *Num) *Num {
	out := Bit0
	for i := 0; i < cmpWidth(lhs, rhs); i++ {
		l, r := lhs.Bit(i), rhs.Bit(i)
		if l == Bit1 && r == Bit0 {
			out = Bit1
		}
		if r == Bit1 && l == Bit0 {
			out = Bit0
		}
		if l.IsXZ() || r.IsXZ() {
			out = BitX
		}
	}
	return oneBit(out)
}

// Gte returns lhs >= rhs with unsigned operands as 1 bit.
func Gte(lhs, rhs *Num) *Num {
	gt := Gt(lhs, rhs)
	if gt.IsFourState() {
		return gt
	}
	if gt.IsNeqZero() {
		return gt
	}
	return Eq(lhs, rhs)
}

// Lt returns lhs < rhs with unsigned operands.
func Lt(lhs, rhs *Num) *Num { return Gt(rhs, lhs) }

// Lte returns lhs <= rhs with unsigned operands.
func Lte(lhs, rhs *Num) *Num { return Gte(rhs, lhs) }

// GtS returns lhs > rhs with signed operands as 1 bit. The sign bits
// decide when they differ; otherwise the magnitude scan runs as in Gt
// with sign extension.
func GtS(lhs, rhs *Num) *Num {
	w := cmpWidth(lhs, rhs)
	lw, rw := lhs.Width(), rhs.Width()
	ls, rs := lhs.BitExtend(w-1, lw), rhs.BitExtend(w-1, rw)
	switch {
	case ls.IsXZ() || rs.IsXZ():
		return oneBit(BitX)
	case ls == Bit0 && rs == Bit1:
		return oneBit(Bit1) // positive > negative
	case ls == Bit1 && rs == Bit0:
		return oneBit(Bit0)
	}
	out := Bit0
	for i := 0; i < w-1; i++ {
		l, r := lhs.BitExtend(i, lw), rhs.BitExtend(i, rw)
		if l == Bit1 && r == Bit0 {
			out = Bit1
		}
		if r == Bit1 && l == Bit0 {
			out = Bit0
		}
		if l.IsXZ() || r.IsXZ() {
			out = BitX
		}
	}
	return oneBit(out)
}

// GteS returns lhs >= rhs with signed operands.
func GteS(lhs, rhs *Num) *Num {
	gt := GtS(lhs, rhs)
	if gt.IsFourState() || gt.IsNeqZero() {
		return gt
	}
	return Eq(lhs, rhs)
}

// LtS returns lhs < rhs with signed operands.
func LtS(lhs, rhs *Num) *Num { return GtS(rhs, lhs) }

// LteS returns lhs <= rhs with signed operands.
func LteS(lhs, rhs *Num) *Num { return GteS(rhs, lhs) }
