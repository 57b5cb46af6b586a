package passes

import (
	"errors"
	"fmt"

	"github.com/jmerdich/verilator/internal/expr"
	"github.com/jmerdich/verilator/internal/num"
)

// EvalErrorCode categorizes why a tree did not evaluate.
type EvalErrorCode string

const (
	// ErrCodeNotConstant marks a node with no compile-time value:
	// references, random draws, foreign calls.
	ErrCodeNotConstant EvalErrorCode = "NOT_CONSTANT"

	// ErrCodeOpaque marks the string cast that never constifies even
	// over constant operands.
	ErrCodeOpaque EvalErrorCode = "OPAQUE"

	// ErrCodeAbsentOperand marks an unfilled optional operand slot.
	ErrCodeAbsentOperand EvalErrorCode = "ABSENT_OPERAND"
)

// EvalError reports the first node that blocked constant evaluation.
type EvalError struct {
	Code EvalErrorCode
	Ref  expr.Ref
	Op   expr.Op
	Loc  expr.Loc
}

func (e *EvalError) Error() string {
	return fmt.Sprintf("%s: %s at %s (node %d)", e.Code, e.Op, e.Loc, e.Ref)
}

// IsNotConstant reports whether err says the tree has no compile-time
// value. Uses errors.As to handle wrapped errors.
func IsNotConstant(err error) bool {
	var ee *EvalError
	return errors.As(err, &ee)
}

// Evaluate computes the constant value of the tree under root without
// mutating it. Shared subtrees are evaluated once. A nil-ref root
// yields nil.
func Evaluate(a *expr.Arena, root expr.Ref) (*num.Num, error) {
	ev := evaluator{a: a, memo: make(map[expr.Ref]*num.Num)}
	return ev.eval(root)
}

type evaluator struct {
	a    *expr.Arena
	memo map[expr.Ref]*num.Num
}

func (ev *evaluator) eval(r expr.Ref) (*num.Num, error) {
	if r == expr.NilRef {
		return nil, nil
	}
	if v, ok := ev.memo[r]; ok {
		return v, nil
	}
	n := ev.a.Node(r)
	if c, ok := n.(*expr.Const); ok {
		ev.memo[r] = c.Num
		return c.Num, nil
	}
	op := n.Op()
	switch {
	case expr.IsOpaque(op):
		return nil, &EvalError{Code: ErrCodeOpaque, Ref: r, Op: op, Loc: n.Loc()}
	case !expr.HasFold(op):
		return nil, &EvalError{Code: ErrCodeNotConstant, Ref: r, Op: op, Loc: n.Loc()}
	}
	kids := n.Children()
	vals := make([]*num.Num, len(kids))
	for i, k := range kids {
		if k == expr.NilRef {
			return nil, &EvalError{Code: ErrCodeAbsentOperand, Ref: r, Op: op, Loc: n.Loc()}
		}
		v, err := ev.eval(k)
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}
	v := expr.Fold(ev.a, n, vals)
	ev.memo[r] = v
	return v, nil
}
