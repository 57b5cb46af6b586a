package expr

import "math/bits"

// Contract accessors. Most answers come straight from the catalog row;
// the kinds whose answer depends on per-node state are special-cased
// here before the table fallback. Querying a contract that is marked
// not-applicable for the kind is a bug in the caller and panics; use
// the Has predicates to gate.

func naPanic(n Node, what string) {
	panic("expr: " + what + " not applicable to " + n.Op().String())
}

// EmitVerilog returns the Verilog-source template for n.
func EmitVerilog(n Node) string {
	switch x := n.(type) {
	case *Rand:
		if x.Seed != NilRef {
			if x.Urandom {
				return "%f$urandom(%l)"
			}
			return "%f$random(%l)"
		}
		if x.Urandom {
			return "%f$urandom()"
		}
		return "%f$random()"
	case *AtoN:
		return "%l." + x.Fmt.String() + "()"
	case *CompareNN:
		if x.IgnoreCase {
			return "%k(%l.icompare(%r))"
		}
		return "%k(%l.compare(%r))"
	case *PatMember:
		if len(x.Lhss) > 0 {
			return "%f{%r{%k%l}}"
		}
		return "%l"
	case *LambdaArgRef:
		return x.Name
	}
	tmpl := opTab[n.Op()].EmitV
	if tmpl == naTmpl {
		naPanic(n, "emitVerilog")
	}
	return tmpl
}

// HasEmitVerilog reports whether EmitVerilog is usable for n.
func HasEmitVerilog(n Node) bool { return opTab[n.Op()].EmitV != naTmpl }

// EmitC returns the C-code template for n. The arena resolves operand
// references for the kinds whose template depends on an operand.
func EmitC(a *Arena, n Node) string {
	switch x := n.(type) {
	case *Rand:
		switch {
		case x.Reset:
			return "VL_RAND_RESET_%nq(%nw, %P)"
		case x.Seed != NilRef:
			if x.Urandom {
				return "VL_URANDOM_SEEDED_%nq%lq(%li)"
			}
			return "VL_RANDOM_SEEDED_%nq%lq(%li)"
		case n.DType().IsWide():
			return "VL_RANDOM_%nq(%nw, %P)"
		default:
			return "VL_RANDOM_%nq()"
		}
	case *AtoN:
		switch x.Fmt {
		case AtoFmtReal:
			return "std::atof(%li.c_str())"
		case AtoFmtHex:
			return "VL_ATOI_N(%li, 16)"
		case AtoFmtOct:
			return "VL_ATOI_N(%li, 8)"
		case AtoFmtBin:
			return "VL_ATOI_N(%li, 2)"
		default:
			return "VL_ATOI_N(%li, 10)"
		}
	case *CompareNN:
		if x.IgnoreCase {
			return "VL_CMP_NN(%li,%ri,true)"
		}
		return "VL_CMP_NN(%li,%ri,false)"
	case *Sel:
		if isConstOne(a, x.Width) {
			return "VL_BITSEL_%nq%lq%rq%tq(%lw, %P, %li, %ri)"
		}
		if n.DType().IsWide() {
			return "VL_SEL_%nq%lq%rq%tq(%nw,%lw, %P, %li, %ri, %ti)"
		}
		return "VL_SEL_%nq%lq%rq%tq(%lw, %P, %li, %ri, %ti)"
	case *Binop:
		switch n.Op() {
		case OpFGetS:
			// Selected by the destination operand's type, not the
			// node's own.
			if lhs := a.Node(x.Lhs); lhs != nil && lhs.DType().IsString() {
				return "VL_FGETS_NI(%li, %ri)"
			}
			return "VL_FGETS_%nqX%rq(%lw, %P, &(%li), %ri)"
		case OpStreamR:
			if n.DType().IsWide() {
				return "VL_ASSIGN_W(%nw, %P, %li)"
			}
			return "%li"
		}
	case *Unop:
		if n.Op() == OpRToIRoundS {
			if n.DType().IsWide() {
				return "VL_RTOIROUND_%nq_D(%nw, %P, %li)"
			}
			return "VL_RTOIROUND_%nq_D(%li)"
		}
	}
	tmpl := opTab[n.Op()].EmitC
	if tmpl == naTmpl {
		naPanic(n, "emitC")
	}
	return tmpl
}

// HasEmitC reports whether EmitC is usable for n.
func HasEmitC(n Node) bool { return opTab[n.Op()].EmitC != naTmpl }

// SimpleOperator returns the plain operator symbol when the kind can
// be emitted as one; empty when the template form must be used.
func SimpleOperator(a *Arena, n Node) string {
	op := n.Op()
	switch op {
	case OpShiftL, OpShiftR:
		// Shift amounts above 64 bits force the library call.
		b := n.(*Binop)
		if rhs := a.Node(b.Rhs); rhs != nil {
			if dt := rhs.DType(); dt.IsWide() || dt.IsQuad() {
				return ""
			}
		}
	}
	s := opTab[op].Operator
	if s == naTmpl {
		naPanic(n, "simple operator")
	}
	return s
}

// HasSimpleOperator reports whether n can be emitted as a plain
// operator.
func HasSimpleOperator(a *Arena, n Node) bool {
	if opTab[n.Op()].Operator == naTmpl {
		return false
	}
	return SimpleOperator(a, n) != ""
}

// VerilogKwd is the Verilog keyword of op ("$fread"); empty for kinds
// without one.
func VerilogKwd(op Op) string { return opTab[op].Kwd }

// NodeName is the per-node display name: the symbol for references,
// the literal for constants, the method name for string accessors.
// Kinds without one return the empty string.
func NodeName(a *Arena, n Node) string {
	switch x := n.(type) {
	case *Const:
		return x.Num.Ascii()
	case *VarRef:
		return x.Name
	case *VarXRef:
		return x.Name
	case *MemberSel:
		return x.Name
	case *LambdaArgRef:
		return x.Name
	case *EnumItemRef:
		if x.Item == 0 {
			return ""
		}
		return a.EnumItem(x.Item).Name
	case *ScanF:
		return x.Text
	case *AtoN:
		return x.Fmt.String()
	case *CompareNN:
		if x.IgnoreCase {
			return "icompare"
		}
		return "compare"
	}
	switch n.Op() {
	case OpGetcN, OpGetcRefN:
		return "getc"
	case OpPutcN:
		return "putc"
	case OpSubstrN:
		return "substr"
	}
	return ""
}

// CleanOut reports whether n's generated result always has zeroed
// upper bits.
func CleanOut(n Node) bool {
	if x, ok := n.(*CMath); ok {
		return x.Clean
	}
	switch opTab[n.Op()].CleanOut {
	case CleanYes:
		return true
	case CleanNo:
		return false
	}
	naPanic(n, "cleanOut")
	return false
}

// HasCleanOut reports whether CleanOut is usable for n.
func HasCleanOut(n Node) bool {
	if _, ok := n.(*CMath); ok {
		return true
	}
	return opTab[n.Op()].CleanOut != CleanNA
}

// CleanSlot reports whether the operand in slot (0-based) must be
// presented with zeroed upper bits.
func CleanSlot(a *Arena, n Node, slot int) bool {
	if n.Op() == OpRedXor && slot == 0 {
		// Natural sizes have cheap reduction sequences that tolerate
		// dirty upper bits.
		u := n.(*Unop)
		if lhs := a.Node(u.Lhs); lhs != nil {
			w := lhs.DType().Width
			return w != 1 && w != 2 && w != 4 && w != 8 && w != 16
		}
	}
	return opTab[n.Op()].Clean[slot]
}

// SizeMatters reports whether the expanded size of the operand in slot
// changes the result.
func SizeMatters(n Node, slot int) bool { return opTab[n.Op()].Size[slot] }

// InstrCount estimates the instructions executed by one evaluation
// of n, excluding its operands.
func InstrCount(a *Arena, n Node) int {
	wi := n.DType().WidthInstrs()
	switch x := n.(type) {
	case *Sel:
		if _, ok := a.Node(x.Lsb).(*Const); ok {
			return wi * 3
		}
		return wi * 10
	case *VarRef:
		if x.Access.IsReadOrRW() {
			return wi * instrCountLd
		}
		return wi
	case *Unop:
		if n.Op() == OpRedXor {
			return 1 + log2b(uint32(n.DType().Width))
		}
	}
	c := opTab[n.Op()].Cost
	if c.W < 0 {
		return c.Flat
	}
	mul := c.W
	if mul == 0 {
		mul = 1
	}
	return mul*wi + c.Flat
}

func log2b(v uint32) int {
	if v == 0 {
		return 0
	}
	return bits.Len32(v) - 1
}

// IsPure reports whether evaluating n has no side effects.
func IsPure(n Node) bool {
	switch x := n.(type) {
	case *LogOr:
		return !x.SideEffect
	case *Binop:
		if n.Op() == OpValuePlusArgs {
			// Pure until linked to an output target.
			return x.Rhs == NilRef
		}
	}
	return !opTab[n.Op()].Impure
}

// IsOutputter reports whether op produces output visible outside the
// model.
func IsOutputter(op Op) bool { return opTab[op].Output }

// IsGateOptimizable reports whether gate optimization may move or
// duplicate n.
func IsGateOptimizable(n Node) bool {
	if x, ok := n.(*CMath); ok {
		return x.Pure
	}
	return !opTab[n.Op()].NoGate && IsPure(n)
}

// IsMergeable reports whether equal copies of n may collapse into one:
// pure, no visible output, and movable by gate optimization. Random
// draws are nominally pure yet fail the last test, which keeps them out
// of merge groups.
func IsMergeable(n Node) bool {
	return IsPure(n) && !IsOutputter(n.Op()) && IsGateOptimizable(n)
}

// IsPredictOptimizable reports whether prediction analysis may
// evaluate n speculatively.
func IsPredictOptimizable(n Node) bool {
	if x, ok := n.(*CMath); ok {
		return x.Pure
	}
	return !opTab[n.Op()].NoPredict && IsPure(n)
}

// IsSubstOptimizable reports whether substitution may replace a
// variable read with op.
func IsSubstOptimizable(op Op) bool { return !opTab[op].NoSubst }

// IsUnlikely reports whether op should stay out of hot paths.
func IsUnlikely(op Op) bool { return opTab[op].Unlikely }

// EmitCheckMaxWords reports whether generated code for op must verify
// the word-count limit first.
func EmitCheckMaxWords(op Op) bool { return opTab[op].MaxWords }

// IsOpaque reports whether constant folding must not look through op.
func IsOpaque(op Op) bool { return opTab[op].Opaque }

func isConstOne(a *Arena, ref Ref) bool {
	c, ok := a.Node(ref).(*Const)
	if !ok {
		return false
	}
	return c.Num.FitsUint64() && c.Num.Uint64() == 1
}
