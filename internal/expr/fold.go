package expr

import "github.com/jmerdich/verilator/internal/num"

// Constant evaluation. Each entry computes one kind's value from
// already-constant operand values. Kinds without an entry cannot fold:
// impure kinds, references, aggregate constructors, and the opaque
// string cast.

// FoldArgs carries what a fold rule may consult.
type FoldArgs struct {
	Width    int        // result width
	WidthMin []int      // operand minimum widths, by slot
	Num      []*num.Num // operand values, by slot
	Node     Node       // for kinds whose rule reads node state
}

// FoldFn computes one kind's constant result.
type FoldFn func(FoldArgs) *num.Num

// HasFold reports whether op has a constant-evaluation rule.
func HasFold(op Op) bool { return foldTab[op] != nil }

// Fold evaluates n over constant operand values, given in child order.
// It panics when the kind has no rule; gate with HasFold.
func Fold(a *Arena, n Node, operands []*num.Num) *num.Num {
	fn := foldTab[n.Op()]
	if fn == nil {
		panic("expr: no fold rule for " + n.Op().String())
	}
	kids := n.Children()
	wmin := make([]int, len(kids))
	for i, ref := range kids {
		if c := a.Node(ref); c != nil {
			wmin[i] = c.DType().WidthMinV()
		}
	}
	return fn(FoldArgs{
		Width:    n.DType().Width,
		WidthMin: wmin,
		Num:      operands,
		Node:     n,
	})
}

func fold1(fn func(*num.Num) *num.Num) FoldFn {
	return func(a FoldArgs) *num.Num { return fn(a.Num[0]) }
}

func fold1W(fn func(int, *num.Num) *num.Num) FoldFn {
	return func(a FoldArgs) *num.Num { return fn(a.Width, a.Num[0]) }
}

func fold2(fn func(*num.Num, *num.Num) *num.Num) FoldFn {
	return func(a FoldArgs) *num.Num { return fn(a.Num[0], a.Num[1]) }
}

func fold2W(fn func(int, *num.Num, *num.Num) *num.Num) FoldFn {
	return func(a FoldArgs) *num.Num { return fn(a.Width, a.Num[0], a.Num[1]) }
}

func fold3(fn func(*num.Num, *num.Num, *num.Num) *num.Num) FoldFn {
	return func(a FoldArgs) *num.Num { return fn(a.Num[0], a.Num[1], a.Num[2]) }
}

// foldSel needs integral index operands; a 4-state index poisons the
// whole result.
func foldSel(a FoldArgs) *num.Num {
	lsbN, widN := a.Num[1], a.Num[2]
	if !lsbN.FitsUint64() || !widN.FitsUint64() {
		return num.NewAllX(a.Width)
	}
	lsb, wid := int(lsbN.Uint64()), int(widN.Uint64())
	return num.Sel(a.Width, a.Num[0], lsb+wid-1, lsb)
}

// foldCond picks the else branch unless the condition has a 1 bit
// somewhere.
func foldCond(a FoldArgs) *num.Num {
	pick := a.Num[2]
	if a.Num[0].IsNeqZero() {
		pick = a.Num[1]
	}
	if pick.IsDouble() || pick.IsString() {
		return pick
	}
	return num.Assign(a.Width, pick)
}

var foldTab = map[Op]FoldFn{
	// Unary.
	OpAtoN: func(a FoldArgs) *num.Num {
		return num.AtoN(a.Num[0], int(a.Node.(*AtoN).Fmt))
	},
	OpBitsToRealD: fold1(num.BitsToRealD),
	OpCLog2:       fold1W(num.CLog2),
	OpCountOnes:   fold1W(num.CountOnes),
	OpExtend:      fold1W(num.Extend),
	OpExtendS: func(a FoldArgs) *num.Num {
		return num.ExtendS(a.Width, a.Num[0], a.WidthMin[0])
	},
	OpISToRD: fold1(num.ISToRD),
	OpIToRD:  fold1(num.IToRD),
	// Unbounded values are resolved away before evaluation can see
	// one, so the check always answers no.
	OpIsUnbounded: func(FoldArgs) *num.Num { return num.NewBit(false) },
	OpIsUnknown:   fold1(num.IsUnknown),
	OpLenN:        fold1(num.LenN),
	OpLogNot:      fold1(num.LogNot),
	OpNegate:      fold1W(num.Negate),
	OpNegateD:     fold1(num.NegateD),
	OpNot:         fold1W(num.Not),
	OpOneHot:      fold1(num.OneHot),
	OpOneHot0:     fold1(num.OneHot0),
	OpRToIRoundS:  fold1W(num.RToIRoundS),
	OpRToIS:       fold1(num.RToIS),
	OpRealToBits:  fold1(num.RealToBits),
	OpRedAnd:      fold1(num.RedAnd),
	OpRedOr:       fold1(num.RedOr),
	OpRedXor:      fold1(num.RedXor),
	// Signedness casts copy bits; the sign itself lives in the dtype.
	OpSigned:   fold1W(num.Assign),
	OpUnsigned: fold1W(num.Assign),
	OpToLowerN: fold1(num.ToLowerN),
	OpToUpperN: fold1(num.ToUpperN),

	// Unary math library calls.
	OpAcosD:  fold1(num.AcosD),
	OpAcoshD: fold1(num.AcoshD),
	OpAsinD:  fold1(num.AsinD),
	OpAsinhD: fold1(num.AsinhD),
	OpAtanD:  fold1(num.AtanD),
	OpAtanhD: fold1(num.AtanhD),
	OpCeilD:  fold1(num.CeilD),
	OpCosD:   fold1(num.CosD),
	OpCoshD:  fold1(num.CoshD),
	OpExpD:   fold1(num.ExpD),
	OpFloorD: fold1(num.FloorD),
	OpLog10D: fold1(num.Log10D),
	OpLogD:   fold1(num.LogD),
	OpSinD:   fold1(num.SinD),
	OpSinhD:  fold1(num.SinhD),
	OpSqrtD:  fold1(num.SqrtD),
	OpTanD:   fold1(num.TanD),
	OpTanhD:  fold1(num.TanhD),

	// Binary.
	OpBufIf1: fold2W(num.BufIf1),
	OpCompareNN: func(a FoldArgs) *num.Num {
		return num.CompareNN(a.Num[0], a.Num[1], a.Node.(*CompareNN).IgnoreCase)
	},
	OpConcat:     fold2W(num.Concat),
	OpConcatN:    fold2(num.ConcatN),
	OpDiv:        fold2W(num.Div),
	OpDivD:       fold2(num.DivD),
	OpDivS:       fold2W(num.DivS),
	OpEqWild:     fold2(num.WildEq),
	OpGetcN:      fold2(num.GetcN),
	OpGt:         fold2(num.Gt),
	OpGtD:        fold2(num.GtD),
	OpGtN:        fold2(num.GtN),
	OpGtS:        fold2(num.GtS),
	OpGte:        fold2(num.Gte),
	OpGteD:       fold2(num.GteD),
	OpGteN:       fold2(num.GteN),
	OpGteS:       fold2(num.GteS),
	OpLogAnd:     fold2(num.LogAnd),
	OpLogIf:      fold2(num.LogIf),
	OpLogOr:      fold2(num.LogOr),
	OpLt:         fold2(num.Lt),
	OpLtD:        fold2(num.LtD),
	OpLtN:        fold2(num.LtN),
	OpLtS:        fold2(num.LtS),
	OpLte:        fold2(num.Lte),
	OpLteD:       fold2(num.LteD),
	OpLteN:       fold2(num.LteN),
	OpLteS:       fold2(num.LteS),
	OpModDiv:     fold2W(num.ModDiv),
	OpModDivS:    fold2W(num.ModDivS),
	OpNeqWild:    fold2(num.WildNeq),
	OpPow:        fold2W(num.Pow),
	OpPowD:       fold2(num.PowD),
	OpPowSS:      fold2W(num.PowSS),
	OpPowSU:      fold2W(num.PowSU),
	OpPowUS:      fold2W(num.PowUS),
	OpReplicate:  fold2W(num.Replicate),
	OpReplicateN: fold2(num.ReplicateN),
	OpShiftL:     fold2W(num.ShiftL),
	OpShiftR:     fold2W(num.ShiftR),
	OpShiftRS: func(a FoldArgs) *num.Num {
		return num.ShiftRS(a.Width, a.Num[0], a.Num[1], a.WidthMin[0])
	},
	OpSub:    fold2W(num.Sub),
	OpSubD:   fold2(num.SubD),
	OpAtan2D: fold2(num.Atan2D),
	OpHypotD: fold2(num.HypotD),

	// Binary, commutative.
	OpEq:      fold2(num.Eq),
	OpEqCase:  fold2(num.CaseEq),
	OpEqD:     fold2(num.EqD),
	OpEqN:     fold2(num.EqN),
	OpLogEq:   fold2(num.LogEq),
	OpNeq:     fold2(num.Neq),
	OpNeqCase: fold2(num.CaseNeq),
	OpNeqD:    fold2(num.NeqD),
	OpNeqN:    fold2(num.NeqN),
	OpAdd:     fold2W(num.Add),
	OpAddD:    fold2(num.AddD),
	OpAnd:     fold2W(num.And),
	OpMul:     fold2W(num.Mul),
	OpMulD:    fold2(num.MulD),
	OpMulS:    fold2W(num.MulS),
	OpOr:      fold2W(num.Or),
	OpXor:     fold2W(num.Xor),

	// Streams. The right stream keeps bits in place.
	OpStreamL: fold2W(num.StreamL),
	OpStreamR: fold1W(num.Assign),

	// Four operands.
	OpCountBits: func(a FoldArgs) *num.Num {
		return num.CountBits(a.Width, a.Num[0], a.Num[1], a.Num[2], a.Num[3])
	},

	// Ternary.
	OpPutcN:     fold3(num.PutcN),
	OpSubstrN:   fold3(num.SubstrN),
	OpSel:       foldSel,
	OpCond:      foldCond,
	OpCondBound: foldCond,
}
