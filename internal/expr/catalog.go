package expr

// The operator catalog. One row per Op: family, node shape, result-type
// rule, code generation templates, operand cleanliness contracts, cost
// weights and optimizer eligibility. Rows hold the static contract; the
// handful of kinds whose answers depend on per-node state are overridden
// in contracts.go.
//
// Template notation, shared by the Verilog and C templates:
//
//	%l %r %t %o  first..fourth operand (Verilog form)
//	%li %ri %ti  operand emitted as a C rvalue
//	%lw %rw %nw  operand/result width in 32-bit words
//	%lq %rq %tq %nq  width class letter I/Q/W of operand/result
//	%lW          operand width in words, padded form
//	%P           result pointer for wide destinations
//	%k           place parentheses if needed
//	%f           format fill point
//
// An empty template is valid (emits nothing); naTmpl marks kinds where
// querying that template is a contract violation.

// naTmpl marks contract queries that panic for the kind.
const naTmpl = "\x00NA"

// CleanState is the three-valued answer to "does this kind guarantee
// zeroed upper bits in its result".
type CleanState uint8

const (
	CleanNo CleanState = iota
	CleanYes
	CleanNA // querying is a contract violation
)

// DTypeRule is how a kind determines its result type at construction.
type DTypeRule uint8

const (
	DTCaller   DTypeRule = iota // creator supplies the dtype
	DTFromLhs                   // copies the first operand's dtype
	DTBit                       // 1-bit unsigned
	DTSigned32                  // 32-bit signed
	DTUInt32                    // 32-bit unsigned
	DTUInt64                    // 64-bit unsigned
	DTDouble                    // real
	DTString                    // string
	DTByte                      // 8-bit unsigned
)

// Cost is the instruction-count estimate: W times the width in words,
// plus Flat. W == 0 means the default single width term; W == -1 drops
// the width term entirely.
type Cost struct {
	W    int
	Flat int
}

func cWidth(mul int) Cost     { return Cost{W: mul} }
func cFlat(n int) Cost        { return Cost{W: -1, Flat: n} }
func cBoth(mul, add int) Cost { return Cost{W: mul, Flat: add} }

// Instruction-count weights per operation class.
const (
	instrCountBranch  = 4   // branch
	instrCountIntMul  = 3   // integer multiply
	instrCountIntDiv  = 10  // integer divide
	instrCountDbl     = 8   // convert or do float
	instrCountDblDiv  = 40  // float divide
	instrCountDblTrig = 200 // trigonometric function
	instrCountLd      = 2   // load memory
	instrCountStr     = 100 // string ops
	instrCountCall    = 14  // function call
	instrCountTime    = 19  // read simulation time
	instrCountPli     = 20  // PLI routines
)

// OpInfo is one catalog row.
type OpInfo struct {
	Name   string
	Family Family
	Shape  Shape
	DType  DTypeRule

	EmitV    string // Verilog template
	EmitC    string // C template
	Operator string // simple operator; "" means not usable
	Kwd      string // Verilog keyword when distinct from the template

	CleanOut CleanState
	Clean    [4]bool // operand must have clean upper bits, by slot
	Size     [4]bool // result depends on operand's expanded size, by slot

	Cost Cost

	FlavorDbl bool // D-flavor member of a flavor group
	FlavorSgn bool // S-flavor member
	FlavorStr bool // N-flavor member

	Impure    bool // has side effects or depends on hidden state
	Output    bool // produces output visible outside the model
	NoGate    bool // never gate-optimizable
	NoPredict bool // never predict-optimizable
	NoSubst   bool // never substitution-optimizable
	Unlikely  bool // rarely executed; keep out of hot paths
	MaxWords  bool // emitted code must check the word-count limit
	Opaque    bool // constant folding must not look through this
}

// Info returns the catalog row for op.
func Info(op Op) *OpInfo {
	if !op.Valid() {
		panic("expr: Info on invalid op")
	}
	return &opTab[op]
}

var opTab = [opCount]OpInfo{
	// ===================================================================
	// Irregular kinds
	// ===================================================================
	OpAddrOfCFunc: {Name: "AddrOfCFunc", Family: FamilyMisc, Shape: ShapeAddrOfCFunc,
		EmitV: naTmpl, EmitC: naTmpl, CleanOut: CleanYes},
	OpCMath: {Name: "CMath", Family: FamilyMisc, Shape: ShapeCMath,
		EmitV: naTmpl, EmitC: naTmpl, CleanOut: CleanYes}, // clean/purity per node
	OpConsAssoc: {Name: "ConsAssoc", Family: FamilyMisc, Shape: ShapeConsAssoc,
		EmitV: "'{}", EmitC: naTmpl, Operator: naTmpl, CleanOut: CleanYes},
	OpConsDynArray: {Name: "ConsDynArray", Family: FamilyMisc, Shape: ShapeConsDyn,
		EmitV: "'{%l, %r}", EmitC: naTmpl, Operator: naTmpl, CleanOut: CleanYes},
	OpConsQueue: {Name: "ConsQueue", Family: FamilyMisc, Shape: ShapeConsDyn,
		EmitV: "'{%l, %r}", EmitC: naTmpl, Operator: naTmpl, CleanOut: CleanYes},
	OpConsWildcard: {Name: "ConsWildcard", Family: FamilyMisc, Shape: ShapeConsAssoc,
		EmitV: "'{}", EmitC: naTmpl, Operator: naTmpl, CleanOut: CleanYes},
	OpConst: {Name: "Const", Family: FamilyMisc, Shape: ShapeConst,
		EmitV: naTmpl, EmitC: naTmpl, CleanOut: CleanYes},
	OpEmptyQueue: {Name: "EmptyQueue", Family: FamilyMisc, Shape: ShapeLeaf,
		EmitV: "{}", EmitC: naTmpl, CleanOut: CleanYes},
	OpEnumItemRef: {Name: "EnumItemRef", Family: FamilyMisc, Shape: ShapeEnumItemRef,
		EmitV: naTmpl, EmitC: naTmpl, CleanOut: CleanYes, Cost: cFlat(0)},
	OpExprStmt: {Name: "ExprStmt", Family: FamilyMisc, Shape: ShapeExprStmt,
		EmitV: naTmpl, EmitC: naTmpl, CleanOut: CleanNo},
	OpFError: {Name: "FError", Family: FamilyMisc, Shape: ShapeBinary,
		EmitV: "%f$ferror(%l, %r)", EmitC: naTmpl, CleanOut: CleanYes,
		Clean: [4]bool{true}, Cost: cWidth(64), Impure: true},
	OpFRead: {Name: "FRead", Family: FamilyMisc, Shape: ShapeQuad, Kwd: "$fread",
		EmitV: naTmpl, EmitC: naTmpl, CleanOut: CleanNo,
		Impure: true, Output: true, NoGate: true, NoPredict: true},
	OpFRewind: {Name: "FRewind", Family: FamilyMisc, Shape: ShapeUnary, Kwd: "$frewind",
		EmitV: naTmpl, EmitC: naTmpl, CleanOut: CleanNo,
		Impure: true, Output: true, NoGate: true, NoPredict: true, Unlikely: true},
	OpFScanF: {Name: "FScanF", Family: FamilyMisc, Shape: ShapeScanF, Kwd: "$fscanf",
		EmitV: naTmpl, EmitC: naTmpl, CleanOut: CleanNo,
		Impure: true, Output: true, NoGate: true, NoPredict: true},
	OpFSeek: {Name: "FSeek", Family: FamilyMisc, Shape: ShapeTernary, Kwd: "$fseek",
		EmitV: naTmpl, EmitC: naTmpl, CleanOut: CleanNo,
		Impure: true, Output: true, NoGate: true, NoPredict: true},
	OpFTell: {Name: "FTell", Family: FamilyMisc, Shape: ShapeUnary, Kwd: "$ftell",
		EmitV: naTmpl, EmitC: naTmpl, CleanOut: CleanNo,
		Impure: true, Output: true, NoGate: true, NoPredict: true, Unlikely: true},
	OpFell: {Name: "Fell", Family: FamilyMisc, Shape: ShapeBinary,
		EmitV: "$fell(%l)", EmitC: naTmpl, Operator: naTmpl, CleanOut: CleanNA},
	OpGatePin: {Name: "GatePin", Family: FamilyMisc, Shape: ShapeGatePin,
		EmitV: "%l", EmitC: naTmpl, CleanOut: CleanYes},
	OpImplication: {Name: "Implication", Family: FamilyMisc, Shape: ShapeTernary,
		EmitV: naTmpl, EmitC: naTmpl, Operator: naTmpl, CleanOut: CleanNA},
	OpInside: {Name: "Inside", Family: FamilyMisc, Shape: ShapeInside, DType: DTBit,
		EmitV: "%l inside { %r }", EmitC: naTmpl, CleanOut: CleanNo},
	OpInsideRange: {Name: "InsideRange", Family: FamilyMisc, Shape: ShapeBinary,
		EmitV: "[%l:%r]", EmitC: naTmpl, CleanOut: CleanNo},
	OpLambdaArgRef: {Name: "LambdaArgRef", Family: FamilyMisc, Shape: ShapeLambdaArgRef,
		EmitC: naTmpl, CleanOut: CleanYes}, // emitV is the arg name
	OpMemberSel: {Name: "MemberSel", Family: FamilyMisc, Shape: ShapeMemberSel,
		EmitV: naTmpl, EmitC: naTmpl, CleanOut: CleanNo},
	OpNewCopy: {Name: "NewCopy", Family: FamilyMisc, Shape: ShapeUnary,
		EmitV: "new", EmitC: naTmpl, CleanOut: CleanYes},
	OpNewDynamic: {Name: "NewDynamic", Family: FamilyMisc, Shape: ShapeBinary,
		EmitV: "new", EmitC: naTmpl, CleanOut: CleanYes},
	OpPast: {Name: "Past", Family: FamilyMisc, Shape: ShapeTernary,
		EmitV: naTmpl, EmitC: naTmpl, Operator: naTmpl, CleanOut: CleanNA},
	OpPatMember: {Name: "PatMember", Family: FamilyMisc, Shape: ShapePatMember,
		EmitC: naTmpl, Operator: naTmpl, CleanOut: CleanNA, Cost: cWidth(2)}, // emitV per node
	OpPattern: {Name: "Pattern", Family: FamilyMisc, Shape: ShapePattern,
		EmitV: naTmpl, EmitC: naTmpl, Operator: naTmpl, CleanOut: CleanNA},
	OpRand: {Name: "Rand", Family: FamilyMisc, Shape: ShapeRand,
		CleanOut: CleanNo, NoGate: true, NoPredict: true, Cost: cFlat(instrCountPli)}, // templates per node
	OpRose: {Name: "Rose", Family: FamilyMisc, Shape: ShapeBinary,
		EmitV: "$rose(%l)", EmitC: naTmpl, Operator: naTmpl, CleanOut: CleanNA},
	OpSScanF: {Name: "SScanF", Family: FamilyMisc, Shape: ShapeScanF, Kwd: "$sscanf",
		EmitV: naTmpl, EmitC: naTmpl, CleanOut: CleanNo,
		Impure: true, Output: true, NoGate: true, NoPredict: true},
	OpSampled: {Name: "Sampled", Family: FamilyMisc, Shape: ShapeUnary,
		EmitV: "$sampled(%l)", EmitC: naTmpl, Operator: naTmpl, CleanOut: CleanNA,
		Cost: cFlat(0)},
	OpScopeName: {Name: "ScopeName", Family: FamilyMisc, Shape: ShapeScopeName, DType: DTUInt64,
		EmitV: "", EmitC: naTmpl, CleanOut: CleanYes},
	OpSetAssoc: {Name: "SetAssoc", Family: FamilyMisc, Shape: ShapeTernary,
		EmitV: "'{}", EmitC: naTmpl, Operator: naTmpl, CleanOut: CleanYes},
	OpSetWildcard: {Name: "SetWildcard", Family: FamilyMisc, Shape: ShapeTernary,
		EmitV: "'{}", EmitC: naTmpl, Operator: naTmpl, CleanOut: CleanYes},
	OpStable: {Name: "Stable", Family: FamilyMisc, Shape: ShapeBinary,
		EmitV: "$stable(%l)", EmitC: naTmpl, Operator: naTmpl, CleanOut: CleanNA},
	OpSystemF: {Name: "SystemF", Family: FamilyMisc, Shape: ShapeUnary, Kwd: "$system",
		EmitV: "$system", EmitC: "VL_SYSTEM_%nq(%lw, %P)", CleanOut: CleanYes,
		Impure: true, Output: true, NoGate: true, NoPredict: true, Unlikely: true},
	OpTestPlusArgs: {Name: "TestPlusArgs", Family: FamilyMisc, Shape: ShapeUnary, Kwd: "$test$plusargs",
		EmitV: "$test$plusargs", EmitC: "VL_VALUEPLUSARGS_%nq(%lw, %P, nullptr)",
		CleanOut: CleanYes, NoGate: true, NoPredict: true},
	OpUCFunc: {Name: "UCFunc", Family: FamilyMisc, Shape: ShapeUCFunc,
		EmitV: naTmpl, EmitC: naTmpl, CleanOut: CleanNo, Cost: cFlat(instrCountPli),
		Impure: true, Output: true, NoGate: true, NoPredict: true, NoSubst: true},
	OpUnbounded: {Name: "Unbounded", Family: FamilyMisc, Shape: ShapeLeaf, DType: DTSigned32,
		EmitV: "$", EmitC: naTmpl, CleanOut: CleanYes},
	OpValuePlusArgs: {Name: "ValuePlusArgs", Family: FamilyMisc, Shape: ShapeBinary, Kwd: "$value$plusargs",
		EmitV: "%f$value$plusargs(%l, %k%r)", EmitC: naTmpl, CleanOut: CleanYes,
		NoGate: true, NoPredict: true}, // pure only while the output target is unset

	// ===================================================================
	// Binary kinds
	// ===================================================================
	OpBufIf1: {Name: "BufIf1", Family: FamilyBinary, Shape: ShapeBinary, DType: DTFromLhs,
		EmitV: "bufif(%r,%l)", EmitC: naTmpl, Operator: naTmpl, CleanOut: CleanNA},
	OpCastDynamic: {Name: "CastDynamic", Family: FamilyBinary, Shape: ShapeBinary,
		EmitV: "%f$cast(%r, %l)", EmitC: "VL_DYNAMIC_CAST(%r, %l)", CleanOut: CleanYes,
		Clean: [4]bool{true, true}, Cost: cWidth(20)},
	OpCompareNN: {Name: "CompareNN", Family: FamilyBinary, Shape: ShapeCompareNN, DType: DTUInt32,
		CleanOut: CleanYes, Clean: [4]bool{true, true}}, // templates per node
	OpConcat: {Name: "Concat", Family: FamilyBinary, Shape: ShapeBinary,
		EmitV: "%f{%l, %k%r}", EmitC: "VL_CONCAT_%nq%lq%rq(%nw,%lw,%rw, %P, %li, %ri)",
		CleanOut: CleanYes, Clean: [4]bool{true, true}, Cost: cWidth(2)},
	OpConcatN: {Name: "ConcatN", Family: FamilyBinary, Shape: ShapeBinary, DType: DTString,
		EmitV: "%f{%l, %k%r}", EmitC: "VL_CONCATN_NNN(%li, %ri)",
		CleanOut: CleanYes, Clean: [4]bool{true, true}, Cost: cFlat(instrCountStr),
		FlavorStr: true},
	OpDiv: {Name: "Div", Family: FamilyBinary, Shape: ShapeBinary, DType: DTFromLhs,
		EmitV: "%k(%l %f/ %r)", EmitC: "VL_DIV_%nq%lq%rq(%lw, %P, %li, %ri)",
		CleanOut: CleanNo, Clean: [4]bool{true, true}, Size: [4]bool{true, true},
		Cost: cWidth(instrCountIntDiv)},
	OpDivD: {Name: "DivD", Family: FamilyBinary, Shape: ShapeBinary, DType: DTDouble,
		EmitV: "%k(%l %f/ %r)", EmitC: naTmpl, Operator: "/", CleanOut: CleanYes,
		Cost: cFlat(instrCountDblDiv), FlavorDbl: true},
	OpDivS: {Name: "DivS", Family: FamilyBinary, Shape: ShapeBinary, DType: DTFromLhs,
		EmitV: "%k(%l %f/ %r)", EmitC: "VL_DIVS_%nq%lq%rq(%lw, %P, %li, %ri)",
		CleanOut: CleanNo, Clean: [4]bool{true, true}, Size: [4]bool{true, true},
		Cost: cWidth(instrCountIntDiv), FlavorSgn: true},
	OpEqWild: {Name: "EqWild", Family: FamilyBinary, Shape: ShapeBinary, DType: DTBit,
		EmitV: "%k(%l %f==? %r)", EmitC: "VL_EQ_%lq(%lW, %P, %li, %ri)", Operator: "==",
		CleanOut: CleanYes, Clean: [4]bool{true, true}},
	OpFGetS: {Name: "FGetS", Family: FamilyBinary, Shape: ShapeBinary,
		EmitV: "%f$fgets(%l,%r)", CleanOut: CleanNo,
		Clean: [4]bool{true, true}, Cost: cWidth(64)}, // emitC per node
	OpFUngetC: {Name: "FUngetC", Family: FamilyBinary, Shape: ShapeBinary,
		EmitV: "%f$ungetc(%r, %l)",
		EmitC: "(%li ? (ungetc(%ri, VL_CVT_I_FP(%li)) >= 0 ? 0 : -1) : -1)",
		CleanOut: CleanNo, Clean: [4]bool{true, true}, Cost: cWidth(64), Impure: true},
	OpGetcN: {Name: "GetcN", Family: FamilyBinary, Shape: ShapeBinary, DType: DTByte,
		EmitV: "%k(%l.getc(%r))", EmitC: "VL_GETC_N(%li,%ri)", Operator: "",
		CleanOut: CleanYes, Clean: [4]bool{true, true}},
	OpGetcRefN: {Name: "GetcRefN", Family: FamilyBinary, Shape: ShapeBinary, DType: DTByte,
		EmitV: "%k%l[%r]", EmitC: naTmpl, Operator: "",
		CleanOut: CleanYes, Clean: [4]bool{true, true}},
	OpGt: {Name: "Gt", Family: FamilyBinary, Shape: ShapeBinary, DType: DTBit,
		EmitV: "%k(%l %f> %r)", EmitC: "VL_GT_%lq(%lW, %P, %li, %ri)", Operator: ">",
		CleanOut: CleanYes, Clean: [4]bool{true, true}},
	OpGtD: {Name: "GtD", Family: FamilyBinary, Shape: ShapeBinary, DType: DTBit,
		EmitV: "%k(%l %f> %r)", EmitC: naTmpl, Operator: ">", CleanOut: CleanYes,
		Cost: cFlat(instrCountDbl), FlavorDbl: true},
	OpGtN: {Name: "GtN", Family: FamilyBinary, Shape: ShapeBinary, DType: DTBit,
		EmitV: "%k(%l %f> %r)", EmitC: naTmpl, Operator: ">", CleanOut: CleanYes,
		Cost: cFlat(instrCountStr), FlavorStr: true},
	OpGtS: {Name: "GtS", Family: FamilyBinary, Shape: ShapeBinary, DType: DTBit,
		EmitV: "%k(%l %f> %r)", EmitC: "VL_GTS_%nq%lq%rq(%lw, %P, %li, %ri)", Operator: "",
		CleanOut: CleanYes, Clean: [4]bool{true, true}, FlavorSgn: true},
	OpGte: {Name: "Gte", Family: FamilyBinary, Shape: ShapeBinary, DType: DTBit,
		EmitV: "%k(%l %f>= %r)", EmitC: "VL_GTE_%lq(%lW, %P, %li, %ri)", Operator: ">=",
		CleanOut: CleanYes, Clean: [4]bool{true, true}},
	OpGteD: {Name: "GteD", Family: FamilyBinary, Shape: ShapeBinary, DType: DTBit,
		EmitV: "%k(%l %f>= %r)", EmitC: naTmpl, Operator: ">=", CleanOut: CleanYes,
		Cost: cFlat(instrCountDbl), FlavorDbl: true},
	OpGteN: {Name: "GteN", Family: FamilyBinary, Shape: ShapeBinary, DType: DTBit,
		EmitV: "%k(%l %f>= %r)", EmitC: naTmpl, Operator: ">=", CleanOut: CleanYes,
		Cost: cFlat(instrCountStr), FlavorStr: true},
	OpGteS: {Name: "GteS", Family: FamilyBinary, Shape: ShapeBinary, DType: DTBit,
		EmitV: "%k(%l %f>= %r)", EmitC: "VL_GTES_%nq%lq%rq(%lw, %P, %li, %ri)", Operator: "",
		CleanOut: CleanYes, Clean: [4]bool{true, true}, FlavorSgn: true},
	OpLogAnd: {Name: "LogAnd", Family: FamilyBinary, Shape: ShapeBinary, DType: DTBit,
		EmitV: "%k(%l %f&& %r)", EmitC: "VL_LOGAND_%nq%lq%rq(%nw,%lw,%rw, %P, %li, %ri)",
		Operator: "&&", CleanOut: CleanYes, Clean: [4]bool{true, true},
		Cost: cBoth(1, instrCountBranch)},
	OpLogIf: {Name: "LogIf", Family: FamilyBinary, Shape: ShapeBinary, DType: DTBit,
		EmitV: "%k(%l %f-> %r)", EmitC: "VL_LOGIF_%nq%lq%rq(%nw,%lw,%rw, %P, %li, %ri)",
		Operator: "->", CleanOut: CleanYes, Clean: [4]bool{true, true},
		Cost: cBoth(1, instrCountBranch)},
	OpLogOr: {Name: "LogOr", Family: FamilyBinary, Shape: ShapeLogOr, DType: DTBit,
		EmitV: "%k(%l %f|| %r)", EmitC: "VL_LOGOR_%nq%lq%rq(%nw,%lw,%rw, %P, %li, %ri)",
		Operator: "||", CleanOut: CleanYes, Clean: [4]bool{true, true},
		Cost: cBoth(1, instrCountBranch)}, // pure unless the node relies on short-circuit
	OpLt: {Name: "Lt", Family: FamilyBinary, Shape: ShapeBinary, DType: DTBit,
		EmitV: "%k(%l %f< %r)", EmitC: "VL_LT_%lq(%lW, %P, %li, %ri)", Operator: "<",
		CleanOut: CleanYes, Clean: [4]bool{true, true}},
	OpLtD: {Name: "LtD", Family: FamilyBinary, Shape: ShapeBinary, DType: DTBit,
		EmitV: "%k(%l %f< %r)", EmitC: naTmpl, Operator: "<", CleanOut: CleanYes,
		Cost: cFlat(instrCountDbl), FlavorDbl: true},
	OpLtN: {Name: "LtN", Family: FamilyBinary, Shape: ShapeBinary, DType: DTBit,
		EmitV: "%k(%l %f< %r)", EmitC: naTmpl, Operator: "<", CleanOut: CleanYes,
		Cost: cFlat(instrCountStr), FlavorStr: true},
	OpLtS: {Name: "LtS", Family: FamilyBinary, Shape: ShapeBinary, DType: DTBit,
		EmitV: "%k(%l %f< %r)", EmitC: "VL_LTS_%nq%lq%rq(%lw, %P, %li, %ri)", Operator: "",
		CleanOut: CleanYes, Clean: [4]bool{true, true}, FlavorSgn: true},
	OpLte: {Name: "Lte", Family: FamilyBinary, Shape: ShapeBinary, DType: DTBit,
		EmitV: "%k(%l %f<= %r)", EmitC: "VL_LTE_%lq(%lW, %P, %li, %ri)", Operator: "<=",
		CleanOut: CleanYes, Clean: [4]bool{true, true}},
	OpLteD: {Name: "LteD", Family: FamilyBinary, Shape: ShapeBinary, DType: DTBit,
		EmitV: "%k(%l %f<= %r)", EmitC: naTmpl, Operator: "<=", CleanOut: CleanYes,
		Cost: cFlat(instrCountDbl), FlavorDbl: true},
	OpLteN: {Name: "LteN", Family: FamilyBinary, Shape: ShapeBinary, DType: DTBit,
		EmitV: "%k(%l %f<= %r)", EmitC: naTmpl, Operator: "<=", CleanOut: CleanYes,
		Cost: cFlat(instrCountStr), FlavorStr: true},
	OpLteS: {Name: "LteS", Family: FamilyBinary, Shape: ShapeBinary, DType: DTBit,
		EmitV: "%k(%l %f<= %r)", EmitC: "VL_LTES_%nq%lq%rq(%lw, %P, %li, %ri)", Operator: "",
		CleanOut: CleanYes, Clean: [4]bool{true, true}, FlavorSgn: true},
	OpModDiv: {Name: "ModDiv", Family: FamilyBinary, Shape: ShapeBinary, DType: DTFromLhs,
		EmitV: "%k(%l %f%% %r)", EmitC: "VL_MODDIV_%nq%lq%rq(%lw, %P, %li, %ri)",
		CleanOut: CleanNo, Clean: [4]bool{true, true}, Size: [4]bool{true, true},
		Cost: cWidth(instrCountIntDiv)},
	OpModDivS: {Name: "ModDivS", Family: FamilyBinary, Shape: ShapeBinary, DType: DTFromLhs,
		EmitV: "%k(%l %f%% %r)", EmitC: "VL_MODDIVS_%nq%lq%rq(%lw, %P, %li, %ri)",
		CleanOut: CleanNo, Clean: [4]bool{true, true}, Size: [4]bool{true, true},
		Cost: cWidth(instrCountIntDiv), FlavorSgn: true},
	OpNeqWild: {Name: "NeqWild", Family: FamilyBinary, Shape: ShapeBinary, DType: DTBit,
		EmitV: "%k(%l %f!=? %r)", EmitC: "VL_NEQ_%lq(%lW, %P, %li, %ri)", Operator: "!=",
		CleanOut: CleanYes, Clean: [4]bool{true, true}},
	OpPow: {Name: "Pow", Family: FamilyBinary, Shape: ShapeBinary, DType: DTFromLhs,
		EmitV: "%k(%l %f** %r)", EmitC: "VL_POW_%nq%lq%rq(%nw,%lw,%rw, %P, %li, %ri)",
		CleanOut: CleanNo, Clean: [4]bool{true, true}, Size: [4]bool{true, false},
		Cost: cWidth(instrCountIntMul * 10), MaxWords: true},
	OpPowD: {Name: "PowD", Family: FamilyBinary, Shape: ShapeBinary, DType: DTDouble,
		EmitV: "%k(%l %f** %r)", EmitC: "pow(%li,%ri)", CleanOut: CleanNo,
		Cost: cFlat(instrCountDblDiv * 5), FlavorDbl: true},
	OpPowSS: {Name: "PowSS", Family: FamilyBinary, Shape: ShapeBinary, DType: DTFromLhs,
		EmitV: "%k(%l %f** %r)", EmitC: "VL_POWSS_%nq%lq%rq(%nw,%lw,%rw, %P, %li, %ri, 1,1)",
		CleanOut: CleanNo, Clean: [4]bool{true, true}, Size: [4]bool{true, false},
		Cost: cWidth(instrCountIntMul * 10), MaxWords: true, FlavorSgn: true},
	OpPowSU: {Name: "PowSU", Family: FamilyBinary, Shape: ShapeBinary, DType: DTFromLhs,
		EmitV: "%k(%l %f** %r)", EmitC: "VL_POWSS_%nq%lq%rq(%nw,%lw,%rw, %P, %li, %ri, 1,0)",
		CleanOut: CleanNo, Clean: [4]bool{true, true}, Size: [4]bool{true, false},
		Cost: cWidth(instrCountIntMul * 10), MaxWords: true, FlavorSgn: true},
	OpPowUS: {Name: "PowUS", Family: FamilyBinary, Shape: ShapeBinary, DType: DTFromLhs,
		EmitV: "%k(%l %f** %r)", EmitC: "VL_POWSS_%nq%lq%rq(%nw,%lw,%rw, %P, %li, %ri, 0,1)",
		CleanOut: CleanNo, Clean: [4]bool{true, true}, Size: [4]bool{true, false},
		Cost: cWidth(instrCountIntMul * 10), MaxWords: true, FlavorSgn: true},
	OpReplicate: {Name: "Replicate", Family: FamilyBinary, Shape: ShapeBinary,
		EmitV: "%f{%r{%k%l}}", EmitC: "VL_REPLICATE_%nq%lq%rq(%lw, %P, %li, %ri)",
		CleanOut: CleanNo, Clean: [4]bool{true, true}, Cost: cWidth(2)},
	OpReplicateN: {Name: "ReplicateN", Family: FamilyBinary, Shape: ShapeBinary, DType: DTString,
		EmitV: "%f{%r{%k%l}}", EmitC: "VL_REPLICATEN_NN%rq(%li, %ri)",
		CleanOut: CleanNo, Clean: [4]bool{true, true}, Cost: cWidth(2), FlavorStr: true},
	OpShiftL: {Name: "ShiftL", Family: FamilyBinary, Shape: ShapeBinary,
		EmitV: "%k(%l %f<< %r)", EmitC: "VL_SHIFTL_%nq%lq%rq(%nw,%lw,%rw, %P, %li, %ri)",
		Operator: "<<", CleanOut: CleanNo, Clean: [4]bool{false, true},
		Size: [4]bool{true, false}}, // operator suppressed for quad/wide shift amounts
	OpShiftR: {Name: "ShiftR", Family: FamilyBinary, Shape: ShapeBinary,
		EmitV: "%k(%l %f>> %r)", EmitC: "VL_SHIFTR_%nq%lq%rq(%nw,%lw,%rw, %P, %li, %ri)",
		Operator: ">>", CleanOut: CleanNo, Clean: [4]bool{true, true}},
	OpShiftRS: {Name: "ShiftRS", Family: FamilyBinary, Shape: ShapeBinary,
		EmitV: "%k(%l %f>>> %r)", EmitC: "VL_SHIFTRS_%nq%lq%rq(%nw,%lw,%rw, %P, %li, %ri)",
		Operator: "", CleanOut: CleanNo, Clean: [4]bool{true, true}, FlavorSgn: true},
	OpSub: {Name: "Sub", Family: FamilyBinary, Shape: ShapeBinary, DType: DTFromLhs,
		EmitV: "%k(%l %f- %r)", EmitC: "VL_SUB_%lq(%lW, %P, %li, %ri)", Operator: "-",
		CleanOut: CleanNo, Size: [4]bool{true, true}},
	OpSubD: {Name: "SubD", Family: FamilyBinary, Shape: ShapeBinary, DType: DTDouble,
		EmitV: "%k(%l %f- %r)", EmitC: naTmpl, Operator: "-", CleanOut: CleanYes,
		Cost: cFlat(instrCountDbl), FlavorDbl: true},
	OpURandomRange: {Name: "URandomRange", Family: FamilyBinary, Shape: ShapeBinary, DType: DTUInt32,
		EmitV: "%f$urandom_range(%l, %r)", EmitC: "VL_URANDOM_RANGE_%nq(%li, %ri)",
		CleanOut: CleanYes, Clean: [4]bool{true, true},
		NoGate: true, NoPredict: true, Cost: cFlat(instrCountPli)},

	// ===================================================================
	// Binary, commutative
	// ===================================================================
	OpEq: {Name: "Eq", Family: FamilyBinaryCom, Shape: ShapeBinary, DType: DTBit,
		EmitV: "%k(%l %f== %r)", EmitC: "VL_EQ_%lq(%lW, %P, %li, %ri)", Operator: "==",
		CleanOut: CleanYes, Clean: [4]bool{true, true}},
	OpEqCase: {Name: "EqCase", Family: FamilyBinaryCom, Shape: ShapeBinary, DType: DTBit,
		EmitV: "%k(%l %f=== %r)", EmitC: "VL_EQ_%lq(%lW, %P, %li, %ri)", Operator: "==",
		CleanOut: CleanYes, Clean: [4]bool{true, true}},
	OpEqD: {Name: "EqD", Family: FamilyBinaryCom, Shape: ShapeBinary, DType: DTBit,
		EmitV: "%k(%l %f== %r)", EmitC: naTmpl, Operator: "==", CleanOut: CleanYes,
		Cost: cFlat(instrCountDbl), FlavorDbl: true},
	OpEqN: {Name: "EqN", Family: FamilyBinaryCom, Shape: ShapeBinary, DType: DTBit,
		EmitV: "%k(%l %f== %r)", EmitC: naTmpl, Operator: "==", CleanOut: CleanYes,
		Cost: cFlat(instrCountStr), FlavorStr: true},
	OpLogEq: {Name: "LogEq", Family: FamilyBinaryCom, Shape: ShapeBinary, DType: DTBit,
		EmitV: "%k(%l %f<-> %r)", EmitC: "VL_LOGEQ_%nq%lq%rq(%nw,%lw,%rw, %P, %li, %ri)",
		Operator: "<->", CleanOut: CleanYes, Clean: [4]bool{true, true},
		Cost: cBoth(1, instrCountBranch)},
	OpNeq: {Name: "Neq", Family: FamilyBinaryCom, Shape: ShapeBinary, DType: DTBit,
		EmitV: "%k(%l %f!= %r)", EmitC: "VL_NEQ_%lq(%lW, %P, %li, %ri)", Operator: "!=",
		CleanOut: CleanYes, Clean: [4]bool{true, true}},
	OpNeqCase: {Name: "NeqCase", Family: FamilyBinaryCom, Shape: ShapeBinary, DType: DTBit,
		EmitV: "%k(%l %f!== %r)", EmitC: "VL_NEQ_%lq(%lW, %P, %li, %ri)", Operator: "!=",
		CleanOut: CleanYes, Clean: [4]bool{true, true}},
	OpNeqD: {Name: "NeqD", Family: FamilyBinaryCom, Shape: ShapeBinary, DType: DTBit,
		EmitV: "%k(%l %f!= %r)", EmitC: naTmpl, Operator: "!=", CleanOut: CleanYes,
		Cost: cFlat(instrCountDbl), FlavorDbl: true},
	OpNeqN: {Name: "NeqN", Family: FamilyBinaryCom, Shape: ShapeBinary, DType: DTBit,
		EmitV: "%k(%l %f!= %r)", EmitC: naTmpl, Operator: "!=", CleanOut: CleanYes,
		Cost: cFlat(instrCountStr), FlavorStr: true},

	// ===================================================================
	// Binary, commutative and associative
	// ===================================================================
	OpAdd: {Name: "Add", Family: FamilyBinaryComAsv, Shape: ShapeBinary, DType: DTFromLhs,
		EmitV: "%k(%l %f+ %r)", EmitC: "VL_ADD_%lq(%lW, %P, %li, %ri)", Operator: "+",
		CleanOut: CleanNo, Size: [4]bool{true, true}},
	OpAddD: {Name: "AddD", Family: FamilyBinaryComAsv, Shape: ShapeBinary, DType: DTDouble,
		EmitV: "%k(%l %f+ %r)", EmitC: naTmpl, Operator: "+", CleanOut: CleanYes,
		Cost: cFlat(instrCountDbl), FlavorDbl: true},
	OpAnd: {Name: "And", Family: FamilyBinaryComAsv, Shape: ShapeBinary, DType: DTFromLhs,
		EmitV: "%k(%l %f& %r)", EmitC: "VL_AND_%lq(%lW, %P, %li, %ri)", Operator: "&",
		CleanOut: CleanNA}, // clean iff either input clean; callers must not ask
	OpMul: {Name: "Mul", Family: FamilyBinaryComAsv, Shape: ShapeBinary, DType: DTFromLhs,
		EmitV: "%k(%l %f* %r)", EmitC: "VL_MUL_%lq(%lW, %P, %li, %ri)", Operator: "*",
		CleanOut: CleanNo, Clean: [4]bool{true, true}, Size: [4]bool{true, true},
		Cost: cWidth(instrCountIntMul)},
	OpMulD: {Name: "MulD", Family: FamilyBinaryComAsv, Shape: ShapeBinary, DType: DTDouble,
		EmitV: "%k(%l %f* %r)", EmitC: naTmpl, Operator: "*", CleanOut: CleanYes,
		Size: [4]bool{true, true}, Cost: cFlat(instrCountDbl), FlavorDbl: true},
	OpMulS: {Name: "MulS", Family: FamilyBinaryComAsv, Shape: ShapeBinary, DType: DTFromLhs,
		EmitV: "%k(%l %f* %r)", EmitC: "VL_MULS_%nq%lq%rq(%lw, %P, %li, %ri)", Operator: "",
		CleanOut: CleanNo, Clean: [4]bool{true, true}, Size: [4]bool{true, true},
		Cost: cWidth(instrCountIntMul), MaxWords: true, FlavorSgn: true},
	OpOr: {Name: "Or", Family: FamilyBinaryComAsv, Shape: ShapeBinary, DType: DTFromLhs,
		EmitV: "%k(%l %f| %r)", EmitC: "VL_OR_%lq(%lW, %P, %li, %ri)", Operator: "|",
		CleanOut: CleanNA}, // clean iff either input clean; callers must not ask
	OpXor: {Name: "Xor", Family: FamilyBinaryComAsv, Shape: ShapeBinary, DType: DTFromLhs,
		EmitV: "%k(%l %f^ %r)", EmitC: "VL_XOR_%lq(%lW, %P, %li, %ri)", Operator: "^",
		CleanOut: CleanNo}, // clean iff both inputs clean

	// ===================================================================
	// Element selects
	// ===================================================================
	OpArraySel: {Name: "ArraySel", Family: FamilySelect, Shape: ShapeBinary,
		EmitV: "%k(%l%f[%r])", EmitC: "%li%k[%ri]", CleanOut: CleanYes,
		Clean: [4]bool{false, true}},
	OpAssocSel: {Name: "AssocSel", Family: FamilySelect, Shape: ShapeBinary,
		EmitV: "%k(%l%f[%r])", EmitC: "%li%k[%ri]", CleanOut: CleanYes,
		Clean: [4]bool{false, true}, NoPredict: true},
	OpWildcardSel: {Name: "WildcardSel", Family: FamilySelect, Shape: ShapeBinary,
		EmitV: "%k(%l%f[%r])", EmitC: "%li%k[%ri]", CleanOut: CleanYes,
		Clean: [4]bool{false, true}, NoPredict: true},
	OpWordSel: {Name: "WordSel", Family: FamilySelect, Shape: ShapeBinary, DType: DTUInt32,
		EmitV: "%k(%l%f[%r])", EmitC: "%li[%ri]", CleanOut: CleanYes,
		Clean: [4]bool{true, true}},

	// ===================================================================
	// Streaming concatenation
	// ===================================================================
	OpStreamL: {Name: "StreamL", Family: FamilyStream, Shape: ShapeBinary, DType: DTFromLhs,
		EmitV: "%f{ << %r %k{%l} }", EmitC: "VL_STREAML_%nq%lq%rq(%lw, %P, %li, %ri)",
		CleanOut: CleanYes, Clean: [4]bool{true, true}, Size: [4]bool{true, false},
		Cost: cWidth(2)},
	OpStreamR: {Name: "StreamR", Family: FamilyStream, Shape: ShapeBinary, DType: DTFromLhs,
		EmitV: "%f{ >> %r %k{%l} }", CleanOut: CleanNo,
		Size: [4]bool{true, false}, Cost: cWidth(2)}, // emitC per node width

	// ===================================================================
	// Binary math library calls
	// ===================================================================
	OpAtan2D: {Name: "Atan2D", Family: FamilySysBinary, Shape: ShapeBinary, DType: DTDouble,
		EmitV: "%f$atan2(%l,%r)", EmitC: "atan2(%li,%ri)", CleanOut: CleanNo,
		Cost: cFlat(instrCountDblTrig), FlavorDbl: true},
	OpHypotD: {Name: "HypotD", Family: FamilySysBinary, Shape: ShapeBinary, DType: DTDouble,
		EmitV: "%f$hypot(%l,%r)", EmitC: "hypot(%li,%ri)", CleanOut: CleanNo,
		Cost: cFlat(instrCountDblTrig), FlavorDbl: true},

	// ===================================================================
	// Four operands
	// ===================================================================
	OpCountBits: {Name: "CountBits", Family: FamilyQuad, Shape: ShapeQuad,
		EmitV: "%f$countbits(%l, %r, %f, %o)", EmitC: "", CleanOut: CleanNo,
		Clean: [4]bool{true, true, true, true}, Cost: cWidth(16)},

	// ===================================================================
	// Leaves
	// ===================================================================
	OpTime: {Name: "Time", Family: FamilyLeaf, Shape: ShapeTime, DType: DTUInt64,
		EmitV: "%f$time", EmitC: naTmpl, CleanOut: CleanYes,
		NoGate: true, NoPredict: true, Cost: cFlat(instrCountTime)},
	OpTimeD: {Name: "TimeD", Family: FamilyLeaf, Shape: ShapeTime, DType: DTDouble,
		EmitV: "%f$realtime", EmitC: naTmpl, CleanOut: CleanYes,
		NoGate: true, NoPredict: true, Cost: cFlat(instrCountTime)},

	// ===================================================================
	// Ternary kinds
	// ===================================================================
	OpPostAdd: {Name: "PostAdd", Family: FamilyTernary, Shape: ShapeTernary,
		EmitV: "%k(%r++)", EmitC: naTmpl, Operator: naTmpl, CleanOut: CleanNo,
		Size: [4]bool{true, true, true}},
	OpPostSub: {Name: "PostSub", Family: FamilyTernary, Shape: ShapeTernary,
		EmitV: "%k(%r--)", EmitC: naTmpl, Operator: naTmpl, CleanOut: CleanNo,
		Size: [4]bool{true, true, true}},
	OpPreAdd: {Name: "PreAdd", Family: FamilyTernary, Shape: ShapeTernary,
		EmitV: "%k(++%r)", EmitC: naTmpl, Operator: naTmpl, CleanOut: CleanNo,
		Size: [4]bool{true, true, true}},
	OpPreSub: {Name: "PreSub", Family: FamilyTernary, Shape: ShapeTernary,
		EmitV: "%k(--%r)", EmitC: naTmpl, Operator: naTmpl, CleanOut: CleanNo,
		Size: [4]bool{true, true, true}},
	OpPutcN: {Name: "PutcN", Family: FamilyTernary, Shape: ShapeTernary, DType: DTString,
		EmitV: "%k(%l.putc(%r,%t))", EmitC: "VL_PUTC_N(%li,%ri,%ti)", Operator: "",
		CleanOut: CleanYes, Clean: [4]bool{true, true, true}},
	OpSel: {Name: "Sel", Family: FamilyTernary, Shape: ShapeSel,
		EmitV: naTmpl, CleanOut: CleanNo,
		Clean: [4]bool{true, true, true}}, // emitC and cost per node
	OpSliceSel: {Name: "SliceSel", Family: FamilyTernary, Shape: ShapeSliceSel,
		EmitV: naTmpl, EmitC: naTmpl, CleanOut: CleanNo,
		Clean: [4]bool{false, true, true}, Cost: cFlat(10)},
	OpSubstrN: {Name: "SubstrN", Family: FamilyTernary, Shape: ShapeTernary, DType: DTString,
		EmitV: "%k(%l.substr(%r,%t))", EmitC: "VL_SUBSTR_N(%li,%ri,%ti)", Operator: "",
		CleanOut: CleanYes, Clean: [4]bool{true, true, true}},

	// ===================================================================
	// Conditionals
	// ===================================================================
	OpCond: {Name: "Cond", Family: FamilyCond, Shape: ShapeCond,
		EmitV: "%k(%l %f? %r %k: %t)", EmitC: "VL_COND_%nq%lq%rq%tq(%nw, %P, %li, %ri, %ti)",
		CleanOut: CleanNo, Clean: [4]bool{true, false, false},
		Cost: cFlat(instrCountBranch)},
	OpCondBound: {Name: "CondBound", Family: FamilyCond, Shape: ShapeCond,
		EmitV: "%k(%l %f? %r %k: %t)", EmitC: "VL_COND_%nq%lq%rq%tq(%nw, %P, %li, %ri, %ti)",
		CleanOut: CleanNo, Clean: [4]bool{true, false, false},
		Cost: cFlat(instrCountBranch)},

	// ===================================================================
	// Unary kinds
	// ===================================================================
	OpAtoN: {Name: "AtoN", Family: FamilyUnary, Shape: ShapeAtoN,
		CleanOut: CleanYes, Clean: [4]bool{true}}, // dtype and templates per fmt
	OpBitsToRealD: {Name: "BitsToRealD", Family: FamilyUnary, Shape: ShapeUnary, DType: DTDouble,
		EmitV: "%f$bitstoreal(%l)", EmitC: "VL_CVT_D_Q(%li)", CleanOut: CleanNo,
		Cost: cFlat(instrCountDbl)},
	OpCCast: {Name: "CCast", Family: FamilyUnary, Shape: ShapeCCast,
		EmitV: "%f$_CAST(%l)", EmitC: "VL_CAST_%nq%lq(%nw,%lw, %P, %li)", CleanOut: CleanYes,
		Clean: [4]bool{true}},
	OpCLog2: {Name: "CLog2", Family: FamilyUnary, Shape: ShapeUnary, DType: DTSigned32,
		EmitV: "%f$clog2(%l)", EmitC: "VL_CLOG2_%lq(%lW, %P, %li)", CleanOut: CleanNo,
		Clean: [4]bool{true}, Cost: cWidth(16)},
	OpCountOnes: {Name: "CountOnes", Family: FamilyUnary, Shape: ShapeUnary,
		EmitV: "%f$countones(%l)", EmitC: "VL_COUNTONES_%lq(%lW, %P, %li)", CleanOut: CleanNo,
		Clean: [4]bool{true}, Cost: cWidth(16)},
	OpCvtPackString: {Name: "CvtPackString", Family: FamilyUnary, Shape: ShapeUnary, DType: DTString,
		EmitV: "%f$_CAST(%l)", EmitC: "VL_CVT_PACK_STR_N%lq(%lW, %li)", CleanOut: CleanYes,
		Clean: [4]bool{true}, Opaque: true},
	OpExtend: {Name: "Extend", Family: FamilyUnary, Shape: ShapeUnary,
		EmitV: "%l", EmitC: "VL_EXTEND_%nq%lq(%nw,%lw, %P, %li)", CleanOut: CleanYes,
		Clean: [4]bool{true}, Cost: cFlat(0)},
	OpExtendS: {Name: "ExtendS", Family: FamilyUnary, Shape: ShapeUnary,
		EmitV: "%l", EmitC: "VL_EXTENDS_%nq%lq(%nw,%lw, %P, %li)", CleanOut: CleanNo,
		Clean: [4]bool{true}, Cost: cFlat(0), FlavorSgn: true},
	OpFEof: {Name: "FEof", Family: FamilyUnary, Shape: ShapeUnary,
		EmitV: "%f$feof(%l)", EmitC: "(%li ? feof(VL_CVT_I_FP(%li)) : true)",
		CleanOut: CleanYes, Clean: [4]bool{true}, Cost: cWidth(16), Impure: true},
	OpFGetC: {Name: "FGetC", Family: FamilyUnary, Shape: ShapeUnary,
		EmitV: "%f$fgetc(%l)", EmitC: "(%li ? fgetc(VL_CVT_I_FP(%li)) : -1)",
		CleanOut: CleanNo, Clean: [4]bool{true}, Cost: cWidth(64), Impure: true},
	OpISToRD: {Name: "ISToRD", Family: FamilyUnary, Shape: ShapeUnary, DType: DTDouble,
		EmitV: "%f$itor($signed(%l))", EmitC: "VL_ISTOR_D_%lq(%lw, %li)", CleanOut: CleanNo,
		Clean: [4]bool{true}, Cost: cFlat(instrCountDbl), MaxWords: true},
	OpIToRD: {Name: "IToRD", Family: FamilyUnary, Shape: ShapeUnary, DType: DTDouble,
		EmitV: "%f$itor(%l)", EmitC: "VL_ITOR_D_%lq(%lw, %li)", CleanOut: CleanNo,
		Clean: [4]bool{true}, Cost: cFlat(instrCountDbl)},
	OpIsUnbounded: {Name: "IsUnbounded", Family: FamilyUnary, Shape: ShapeUnary, DType: DTBit,
		EmitV: "%f$isunbounded(%l)", EmitC: naTmpl, CleanOut: CleanNo},
	OpIsUnknown: {Name: "IsUnknown", Family: FamilyUnary, Shape: ShapeUnary, DType: DTBit,
		EmitV: "%f$isunknown(%l)", EmitC: naTmpl, CleanOut: CleanNo},
	OpLenN: {Name: "LenN", Family: FamilyUnary, Shape: ShapeUnary, DType: DTSigned32,
		EmitV: "%f(%l)", EmitC: "VL_LEN_IN(%li)", CleanOut: CleanYes, Clean: [4]bool{true}},
	OpLogNot: {Name: "LogNot", Family: FamilyUnary, Shape: ShapeUnary, DType: DTBit,
		EmitV: "%f(! %l)", EmitC: "VL_LOGNOT_%nq%lq(%nw,%lw, %P, %li)", Operator: "!",
		CleanOut: CleanYes, Clean: [4]bool{true}},
	OpNegate: {Name: "Negate", Family: FamilyUnary, Shape: ShapeUnary, DType: DTFromLhs,
		EmitV: "%f(- %l)", EmitC: "VL_NEGATE_%lq(%lW, %P, %li)", Operator: "-",
		CleanOut: CleanNo, Size: [4]bool{true}},
	OpNegateD: {Name: "NegateD", Family: FamilyUnary, Shape: ShapeUnary, DType: DTDouble,
		EmitV: "%f(- %l)", EmitC: naTmpl, Operator: "-", CleanOut: CleanYes,
		Cost: cFlat(instrCountDbl), FlavorDbl: true},
	OpNot: {Name: "Not", Family: FamilyUnary, Shape: ShapeUnary, DType: DTFromLhs,
		EmitV: "%f(~ %l)", EmitC: "VL_NOT_%lq(%lW, %P, %li)", Operator: "~",
		CleanOut: CleanNo, Size: [4]bool{true}},
	OpNullCheck: {Name: "NullCheck", Family: FamilyUnary, Shape: ShapeUnary, DType: DTFromLhs,
		EmitV: "%l", EmitC: naTmpl, Operator: naTmpl, CleanOut: CleanYes,
		Clean: [4]bool{true}, Cost: cFlat(1)}, // rarely executes
	OpOneHot: {Name: "OneHot", Family: FamilyUnary, Shape: ShapeUnary, DType: DTBit,
		EmitV: "%f$onehot(%l)", EmitC: "VL_ONEHOT_%lq(%lW, %P, %li)", CleanOut: CleanYes,
		Clean: [4]bool{true}, Cost: cWidth(4)},
	OpOneHot0: {Name: "OneHot0", Family: FamilyUnary, Shape: ShapeUnary, DType: DTBit,
		EmitV: "%f$onehot0(%l)", EmitC: "VL_ONEHOT0_%lq(%lW, %P, %li)", CleanOut: CleanYes,
		Clean: [4]bool{true}, Cost: cWidth(3)},
	OpRToIRoundS: {Name: "RToIRoundS", Family: FamilyUnary, Shape: ShapeUnary, DType: DTSigned32,
		EmitV: "%f$rtoi_rounded(%l)", CleanOut: CleanNo,
		Cost: cFlat(instrCountDbl)}, // emitC per node width
	OpRToIS: {Name: "RToIS", Family: FamilyUnary, Shape: ShapeUnary, DType: DTSigned32,
		EmitV: "%f$rtoi(%l)", EmitC: "VL_RTOI_I_D(%li)", CleanOut: CleanNo,
		Cost: cFlat(instrCountDbl)},
	OpRealToBits: {Name: "RealToBits", Family: FamilyUnary, Shape: ShapeUnary, DType: DTUInt64,
		EmitV: "%f$realtobits(%l)", EmitC: "VL_CVT_Q_D(%li)", CleanOut: CleanNo,
		Cost: cFlat(instrCountDbl)},
	OpRedAnd: {Name: "RedAnd", Family: FamilyUnary, Shape: ShapeUnary, DType: DTBit,
		EmitV: "%f(& %l)", EmitC: "VL_REDAND_%nq%lq(%lw, %P, %li)", CleanOut: CleanYes,
		Clean: [4]bool{true}},
	OpRedOr: {Name: "RedOr", Family: FamilyUnary, Shape: ShapeUnary, DType: DTBit,
		EmitV: "%f(| %l)", EmitC: "VL_REDOR_%lq(%lW, %P, %li)", CleanOut: CleanYes,
		Clean: [4]bool{true}},
	OpRedXor: {Name: "RedXor", Family: FamilyUnary, Shape: ShapeUnary, DType: DTBit,
		EmitV: "%f(^ %l)", EmitC: "VL_REDXOR_%lq(%lW, %P, %li)",
		CleanOut: CleanNo}, // cleanLhs and cost depend on operand width
	OpSigned: {Name: "Signed", Family: FamilyUnary, Shape: ShapeUnary,
		EmitV: "%f$signed(%l)", EmitC: naTmpl, CleanOut: CleanNo,
		Size: [4]bool{true}, Cost: cFlat(0)},
	OpTimeImport: {Name: "TimeImport", Family: FamilyUnary, Shape: ShapeTimeImport,
		EmitV: "%l", EmitC: naTmpl, CleanOut: CleanNo},
	OpToLowerN: {Name: "ToLowerN", Family: FamilyUnary, Shape: ShapeUnary, DType: DTString,
		EmitV: "%l.tolower()", EmitC: "VL_TOLOWER_NN(%li)", CleanOut: CleanYes,
		Clean: [4]bool{true}},
	OpToUpperN: {Name: "ToUpperN", Family: FamilyUnary, Shape: ShapeUnary, DType: DTString,
		EmitV: "%l.toupper()", EmitC: "VL_TOUPPER_NN(%li)", CleanOut: CleanYes,
		Clean: [4]bool{true}},
	OpUnsigned: {Name: "Unsigned", Family: FamilyUnary, Shape: ShapeUnary,
		EmitV: "%f$unsigned(%l)", EmitC: naTmpl, CleanOut: CleanNo,
		Size: [4]bool{true}, Cost: cFlat(0)},

	// ===================================================================
	// Unary math library calls
	// ===================================================================
	OpAcosD: {Name: "AcosD", Family: FamilySysUnary, Shape: ShapeUnary, DType: DTDouble,
		EmitV: "%f$acos(%l)", EmitC: "acos(%li)", CleanOut: CleanYes,
		Cost: cFlat(instrCountDblTrig), FlavorDbl: true},
	OpAcoshD: {Name: "AcoshD", Family: FamilySysUnary, Shape: ShapeUnary, DType: DTDouble,
		EmitV: "%f$acosh(%l)", EmitC: "acosh(%li)", CleanOut: CleanYes,
		Cost: cFlat(instrCountDblTrig), FlavorDbl: true},
	OpAsinD: {Name: "AsinD", Family: FamilySysUnary, Shape: ShapeUnary, DType: DTDouble,
		EmitV: "%f$asin(%l)", EmitC: "asin(%li)", CleanOut: CleanYes,
		Cost: cFlat(instrCountDblTrig), FlavorDbl: true},
	OpAsinhD: {Name: "AsinhD", Family: FamilySysUnary, Shape: ShapeUnary, DType: DTDouble,
		EmitV: "%f$asinh(%l)", EmitC: "asinh(%li)", CleanOut: CleanYes,
		Cost: cFlat(instrCountDblTrig), FlavorDbl: true},
	OpAtanD: {Name: "AtanD", Family: FamilySysUnary, Shape: ShapeUnary, DType: DTDouble,
		EmitV: "%f$atan(%l)", EmitC: "atan(%li)", CleanOut: CleanYes,
		Cost: cFlat(instrCountDblTrig), FlavorDbl: true},
	OpAtanhD: {Name: "AtanhD", Family: FamilySysUnary, Shape: ShapeUnary, DType: DTDouble,
		EmitV: "%f$atanh(%l)", EmitC: "atanh(%li)", CleanOut: CleanYes,
		Cost: cFlat(instrCountDblTrig), FlavorDbl: true},
	OpCeilD: {Name: "CeilD", Family: FamilySysUnary, Shape: ShapeUnary, DType: DTDouble,
		EmitV: "%f$ceil(%l)", EmitC: "ceil(%li)", CleanOut: CleanYes,
		Cost: cFlat(instrCountDblTrig), FlavorDbl: true},
	OpCosD: {Name: "CosD", Family: FamilySysUnary, Shape: ShapeUnary, DType: DTDouble,
		EmitV: "%f$cos(%l)", EmitC: "cos(%li)", CleanOut: CleanYes,
		Cost: cFlat(instrCountDblTrig), FlavorDbl: true},
	OpCoshD: {Name: "CoshD", Family: FamilySysUnary, Shape: ShapeUnary, DType: DTDouble,
		EmitV: "%f$cosh(%l)", EmitC: "cosh(%li)", CleanOut: CleanYes,
		Cost: cFlat(instrCountDblTrig), FlavorDbl: true},
	OpExpD: {Name: "ExpD", Family: FamilySysUnary, Shape: ShapeUnary, DType: DTDouble,
		EmitV: "%f$exp(%l)", EmitC: "exp(%li)", CleanOut: CleanYes,
		Cost: cFlat(instrCountDblTrig), FlavorDbl: true},
	OpFloorD: {Name: "FloorD", Family: FamilySysUnary, Shape: ShapeUnary, DType: DTDouble,
		EmitV: "%f$floor(%l)", EmitC: "floor(%li)", CleanOut: CleanYes,
		Cost: cFlat(instrCountDblTrig), FlavorDbl: true},
	OpLog10D: {Name: "Log10D", Family: FamilySysUnary, Shape: ShapeUnary, DType: DTDouble,
		EmitV: "%f$log10(%l)", EmitC: "log10(%li)", CleanOut: CleanYes,
		Cost: cFlat(instrCountDblTrig), FlavorDbl: true},
	OpLogD: {Name: "LogD", Family: FamilySysUnary, Shape: ShapeUnary, DType: DTDouble,
		EmitV: "%f$ln(%l)", EmitC: "log(%li)", CleanOut: CleanYes,
		Cost: cFlat(instrCountDblTrig), FlavorDbl: true},
	OpSinD: {Name: "SinD", Family: FamilySysUnary, Shape: ShapeUnary, DType: DTDouble,
		EmitV: "%f$sin(%l)", EmitC: "sin(%li)", CleanOut: CleanYes,
		Cost: cFlat(instrCountDblTrig), FlavorDbl: true},
	OpSinhD: {Name: "SinhD", Family: FamilySysUnary, Shape: ShapeUnary, DType: DTDouble,
		EmitV: "%f$sinh(%l)", EmitC: "sinh(%li)", CleanOut: CleanYes,
		Cost: cFlat(instrCountDblTrig), FlavorDbl: true},
	OpSqrtD: {Name: "SqrtD", Family: FamilySysUnary, Shape: ShapeUnary, DType: DTDouble,
		EmitV: "%f$sqrt(%l)", EmitC: "sqrt(%li)", CleanOut: CleanYes,
		Cost: cFlat(instrCountDblTrig), FlavorDbl: true},
	OpTanD: {Name: "TanD", Family: FamilySysUnary, Shape: ShapeUnary, DType: DTDouble,
		EmitV: "%f$tan(%l)", EmitC: "tan(%li)", CleanOut: CleanYes,
		Cost: cFlat(instrCountDblTrig), FlavorDbl: true},
	OpTanhD: {Name: "TanhD", Family: FamilySysUnary, Shape: ShapeUnary, DType: DTDouble,
		EmitV: "%f$tanh(%l)", EmitC: "tanh(%li)", CleanOut: CleanYes,
		Cost: cFlat(instrCountDblTrig), FlavorDbl: true},

	// ===================================================================
	// Variable references
	// ===================================================================
	OpVarRef: {Name: "VarRef", Family: FamilyVarRef, Shape: ShapeVarRef,
		EmitV: naTmpl, EmitC: naTmpl, CleanOut: CleanYes}, // cost depends on access
	OpVarXRef: {Name: "VarXRef", Family: FamilyVarRef, Shape: ShapeVarXRef,
		EmitV: naTmpl, EmitC: naTmpl, CleanOut: CleanYes},
}

// selfDType resolves the self-determined result-type rules. DTCaller
// and DTFromLhs resolve to the zero DType; the creator fills those in.
func selfDType(op Op) DType {
	switch opTab[op].DType {
	case DTBit:
		return BitDType()
	case DTSigned32:
		return Signed32DType()
	case DTUInt32:
		return UInt32DType()
	case DTUInt64:
		return UInt64DType()
	case DTDouble:
		return DoubleDType()
	case DTString:
		return StringDType()
	case DTByte:
		return BitSizedDType(8)
	}
	return DType{}
}

// powIrregular maps the exponent-signedness variants to their group
// base; every other flavored kind derives its base by suffix.
var powIrregular = map[Op]string{
	OpPowSS: "Pow",
	OpPowSU: "Pow",
	OpPowUS: "Pow",
}

// BaseName is the flavor-group base of an operator: AddD -> Add,
// GtN -> Gt, PowSU -> Pow. Unflavored kinds return their own name.
func BaseName(op Op) string {
	info := &opTab[op]
	if base, ok := powIrregular[op]; ok {
		return base
	}
	if info.FlavorDbl || info.FlavorSgn || info.FlavorStr {
		return info.Name[:len(info.Name)-1]
	}
	return info.Name
}

// FlavorVariants returns the ops sharing a flavor-group base, in
// catalog order. A lone op returns just itself.
func FlavorVariants(base string) []Op {
	var ops []Op
	for op := OpInvalid + 1; op < opCount; op++ {
		if BaseName(op) == base {
			ops = append(ops, op)
		}
	}
	return ops
}
