package expr

import "fmt"

// Op identifies an operator kind. Every Op has a row in the catalog
// describing its family, child shape, templates and contracts.
type Op uint16

// OpInvalid is the zero Op; no catalog row.
const OpInvalid Op = 0

const (
	// Irregular kinds: ad-hoc children or per-node state.
	OpAddrOfCFunc Op = iota + 1
	OpCMath
	OpConsAssoc
	OpConsDynArray
	OpConsQueue
	OpConsWildcard
	OpConst
	OpEmptyQueue
	OpEnumItemRef
	OpExprStmt
	OpFError
	OpFRead
	OpFRewind
	OpFScanF
	OpFSeek
	OpFTell
	OpFell
	OpGatePin
	OpImplication
	OpInside
	OpInsideRange
	OpLambdaArgRef
	OpMemberSel
	OpNewCopy
	OpNewDynamic
	OpPast
	OpPatMember
	OpPattern
	OpRand
	OpRose
	OpSScanF
	OpSampled
	OpScopeName
	OpSetAssoc
	OpSetWildcard
	OpStable
	OpSystemF
	OpTestPlusArgs
	OpUCFunc
	OpUnbounded
	OpValuePlusArgs

	// Binary kinds.
	OpBufIf1
	OpCastDynamic
	OpCompareNN
	OpConcat
	OpConcatN
	OpDiv
	OpDivD
	OpDivS
	OpEqWild
	OpFGetS
	OpFUngetC
	OpGetcN
	OpGetcRefN
	OpGt
	OpGtD
	OpGtN
	OpGtS
	OpGte
	OpGteD
	OpGteN
	OpGteS
	OpLogAnd
	OpLogIf
	OpLogOr
	OpLt
	OpLtD
	OpLtN
	OpLtS
	OpLte
	OpLteD
	OpLteN
	OpLteS
	OpModDiv
	OpModDivS
	OpNeqWild
	OpPow
	OpPowD
	OpPowSS
	OpPowSU
	OpPowUS
	OpReplicate
	OpReplicateN
	OpShiftL
	OpShiftR
	OpShiftRS
	OpSub
	OpSubD
	OpURandomRange

	// Binary, commutative.
	OpEq
	OpEqCase
	OpEqD
	OpEqN
	OpLogEq
	OpNeq
	OpNeqCase
	OpNeqD
	OpNeqN

	// Binary, commutative and associative.
	OpAdd
	OpAddD
	OpAnd
	OpMul
	OpMulD
	OpMulS
	OpOr
	OpXor

	// Element selects.
	OpArraySel
	OpAssocSel
	OpWildcardSel
	OpWordSel

	// Streaming concatenation.
	OpStreamL
	OpStreamR

	// Binary math library calls.
	OpAtan2D
	OpHypotD

	// Four operands.
	OpCountBits

	// Leaves with no children.
	OpTime
	OpTimeD

	// Ternary kinds.
	OpPostAdd
	OpPostSub
	OpPreAdd
	OpPreSub
	OpPutcN
	OpSel
	OpSliceSel
	OpSubstrN

	// Conditionals.
	OpCond
	OpCondBound

	// Unary kinds.
	OpAtoN
	OpBitsToRealD
	OpCCast
	OpCLog2
	OpCountOnes
	OpCvtPackString
	OpExtend
	OpExtendS
	OpFEof
	OpFGetC
	OpISToRD
	OpIToRD
	OpIsUnbounded
	OpIsUnknown
	OpLenN
	OpLogNot
	OpNegate
	OpNegateD
	OpNot
	OpNullCheck
	OpOneHot
	OpOneHot0
	OpRToIRoundS
	OpRToIS
	OpRealToBits
	OpRedAnd
	OpRedOr
	OpRedXor
	OpSigned
	OpTimeImport
	OpToLowerN
	OpToUpperN
	OpUnsigned

	// Unary math library calls.
	OpAcosD
	OpAcoshD
	OpAsinD
	OpAsinhD
	OpAtanD
	OpAtanhD
	OpCeilD
	OpCosD
	OpCoshD
	OpExpD
	OpFloorD
	OpLog10D
	OpLogD
	OpSinD
	OpSinhD
	OpSqrtD
	OpTanD
	OpTanhD

	// Variable references.
	OpVarRef
	OpVarXRef

	opCount
)

// NumOps is the number of defined operator kinds.
const NumOps = int(opCount) - 1

func (op Op) String() string {
	if op == OpInvalid || op >= opCount {
		return fmt.Sprintf("Op(%d)", uint16(op))
	}
	return opTab[op].Name
}

// Valid reports whether op has a catalog row.
func (op Op) Valid() bool { return op > OpInvalid && op < opCount }

// OpByName resolves a catalog name ("Add", "ShiftRS") to its Op.
// Returns OpInvalid when the name is unknown.
func OpByName(name string) Op {
	return opByName[name]
}

var opByName = func() map[string]Op {
	m := make(map[string]Op, NumOps)
	for op := OpInvalid + 1; op < opCount; op++ {
		m[opTab[op].Name] = op
	}
	return m
}()

// AllOps lists every defined Op in catalog order.
func AllOps() []Op {
	ops := make([]Op, 0, NumOps)
	for op := OpInvalid + 1; op < opCount; op++ {
		ops = append(ops, op)
	}
	return ops
}

// Family groups operator kinds by arity and algebraic behavior. The
// family is what survives of the original deep class hierarchy: operator
// identity is the Op tag, shared behavior lives in catalog rows keyed by
// family where it is uniform.
type Family uint8

const (
	FamilyMisc Family = iota // irregular children or per-node state
	FamilyUnary
	FamilySysUnary // unary libm-style call
	FamilyBinary
	FamilyBinaryCom    // binary, commutative
	FamilyBinaryComAsv // binary, commutative and associative
	FamilySelect       // element select from an aggregate
	FamilyStream       // streaming concatenation
	FamilySysBinary    // binary libm-style call
	FamilyTernary
	FamilyCond
	FamilyQuad
	FamilyLeaf // no children
	FamilyVarRef
)

var familyNames = [...]string{
	FamilyMisc:         "misc",
	FamilyUnary:        "unary",
	FamilySysUnary:     "sys-unary",
	FamilyBinary:       "binary",
	FamilyBinaryCom:    "binary-com",
	FamilyBinaryComAsv: "binary-com-asv",
	FamilySelect:       "select",
	FamilyStream:       "stream",
	FamilySysBinary:    "sys-binary",
	FamilyTernary:      "ternary",
	FamilyCond:         "cond",
	FamilyQuad:         "quad",
	FamilyLeaf:         "leaf",
	FamilyVarRef:       "varref",
}

func (f Family) String() string {
	if int(f) < len(familyNames) {
		return familyNames[f]
	}
	return fmt.Sprintf("Family(%d)", uint8(f))
}

// FamilyByName resolves a family name as used in queries and dumps.
func FamilyByName(name string) (Family, bool) {
	for f, n := range familyNames {
		if n == name {
			return Family(f), true
		}
	}
	return 0, false
}

// IsCommutative reports whether operands may be swapped without changing
// the result.
func (f Family) IsCommutative() bool {
	return f == FamilyBinaryCom || f == FamilyBinaryComAsv
}

// Shape selects the concrete node struct an Op is stored in.
type Shape uint8

const (
	ShapeLeaf Shape = iota
	ShapeUnary
	ShapeBinary
	ShapeTernary
	ShapeQuad
	ShapeCond
	ShapeSel
	ShapeSliceSel
	ShapeConst
	ShapeVarRef
	ShapeVarXRef
	ShapeMemberSel
	ShapeEnumItemRef
	ShapeLambdaArgRef
	ShapeScopeName
	ShapeTime
	ShapeTimeImport
	ShapeRand
	ShapeAddrOfCFunc
	ShapeCCast
	ShapeAtoN
	ShapeCompareNN
	ShapeLogOr
	ShapeCMath
	ShapeUCFunc
	ShapeScanF
	ShapeInside
	ShapePattern
	ShapePatMember
	ShapeExprStmt
	ShapeConsAssoc
	ShapeConsDyn
	ShapeGatePin
)
