package num

import "math/big"

// Assign copies lhs into a fresh vector of the given width: truncation
// above, zero extension below. 4-state bits copy through.
func Assign(width int, lhs *Num) *Num {
	b := newBuilder(width)
	for i := 0; i < width; i++ {
		b.setBit(i, lhs.Bit(i))
	}
	return b.num()
}

// Extend zero-extends lhs to the given width. Identical to Assign; the
// separate name mirrors the operator it folds.
func Extend(width int, lhs *Num) *Num {
	return Assign(width, lhs)
}

// ExtendS sign-extends lhs to the given width, replicating the state of
// bit lbits-1. X and Z sign bits extend as themselves.
func ExtendS(width int, lhs *Num, lbits int) *Num {
	b := newBuilder(width)
	for i := 0; i < width; i++ {
		b.setBit(i, lhs.BitExtend(i, lbits))
	}
	return b.num()
}

// shiftAmount extracts a shift count. ok is false when the amount
// carries X or Z bits; huge amounts clamp to width (a full flush).
func shiftAmount(rhs *Num, width int) (int, bool) {
	if rhs.IsFourState() {
		return 0, false
	}
	if rhs.val.BitLen() > 31 || rhs.val.Int64() > int64(width) {
		return width, true
	}
	return int(rhs.val.Int64()), true
}

// ShiftL returns lhs << rhs at the given result width. An X or Z shift
// amount yields all-X; shifted-in bits are 0 and 4-state bits of lhs
// travel with the shift.
func ShiftL(width int, lhs, rhs *Num) *Num {
	s, ok := shiftAmount(rhs, width)
	if !ok {
		return NewAllX(width)
	}
	val := new(big.Int).Lsh(lhs.val, uint(s))
	xz := new(big.Int).Lsh(lhs.xz, uint(s))
	return NewLogicBig(width, false, val, xz)
}

// ShiftR returns lhs >> rhs at the given result width, filling with 0.
// An X or Z shift amount yields all-X.
func ShiftR(width int, lhs, rhs *Num) *Num {
	s, ok := shiftAmount(rhs, width)
	if !ok {
		return NewAllX(width)
	}
	val := new(big.Int).Rsh(lhs.val, uint(s))
	xz := new(big.Int).Rsh(lhs.xz, uint(s))
	return NewLogicBig(width, false, val, xz)
}

// ShiftRS returns lhs >>> rhs at the given result width, filling with
// the state of lhs bit lbits-1. lbits is the statically known minimum
// width of the left operand, which may be narrower than its allocated
// width. An X or Z shift amount yields all-X.
func ShiftRS(width int, lhs, rhs *Num, lbits int) *Num {
	if rhs.IsFourState() {
		return NewAllX(width)
	}
	s, _ := shiftAmount(rhs, lhs.Width())
	b := newBuilder(width)
	for i := 0; i < width; i++ {
		b.setBit(i, lhs.BitExtend(i+s, lbits))
	}
	return b.num()
}
