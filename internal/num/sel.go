package num

// Sel extracts bits lsb..msb of from into a result of the given width.
// Bits past the operand's width read as 0; negative or inverted ranges
// yield zero bits.
func Sel(width int, from *Num, msb, lsb int) *Num {
	b := newBuilder(width)
	if lsb < 0 || msb < lsb {
		return b.num()
	}
	for i := 0; i+lsb <= msb && i < width; i++ {
		b.setBit(i, from.Bit(lsb+i))
	}
	return b.num()
}

// Concat places lhs above rhs: the result's low rhs-width bits are rhs
// and the bits above are lhs.
func Concat(width int, lhs, rhs *Num) *Num {
	b := newBuilder(width)
	rw := rhs.Width()
	for i := 0; i < rw && i < width; i++ {
		b.setBit(i, rhs.Bit(i))
	}
	for i := 0; i < lhs.Width() && rw+i < width; i++ {
		b.setBit(rw+i, lhs.Bit(i))
	}
	return b.num()
}

// Replicate tiles count copies of lhs, lowest copy first. An X or Z
// count yields all-X.
func Replicate(width int, lhs, count *Num) *Num {
	if count.IsFourState() {
		return NewAllX(width)
	}
	if !count.FitsUint64() {
		return NewAllX(width)
	}
	times := count.Uint64()
	b := newBuilder(width)
	lw := lhs.Width()
	for rep := uint64(0); rep < times; rep++ {
		base := int(rep) * lw
		if base >= width {
			break
		}
		for i := 0; i < lw && base+i < width; i++ {
			b.setBit(base+i, lhs.Bit(i))
		}
	}
	return b.num()
}

// StreamL reverses lhs in slices of the given size: the first slice of
// the input (from the low end) becomes the top slice of the output. A
// slice size of 0 acts as 1. An X or Z slice size yields all-X.
func StreamL(width int, lhs, slice *Num) *Num {
	if slice.IsFourState() || !slice.FitsUint64() {
		return NewAllX(width)
	}
	size := int(slice.Uint64())
	if size < 1 {
		size = 1
	}
	b := newBuilder(width)
	lw := lhs.Width()
	for istart := 0; istart < lw; istart += size {
		ostart := lw - size - istart
		if ostart < 0 {
			ostart = 0
		}
		for bit := 0; bit < size && bit < lw-istart; bit++ {
			b.setBit(ostart+bit, lhs.Bit(istart+bit))
		}
	}
	return b.num()
}
