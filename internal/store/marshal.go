package store

import (
	"encoding/json"
	"fmt"

	"github.com/jmerdich/verilator/internal/expr"
)

// nodeState renders the local state of n as JSON, or "" for kinds
// carrying none beyond their children. Declaration ids are
// denormalized to names, because arena side tables are not persisted.
// Map encoding sorts keys, so the output is deterministic.
func nodeState(a *expr.Arena, n expr.Node) (string, error) {
	var state map[string]any

	switch x := n.(type) {
	case *expr.Const:
		state = map[string]any{"num": x.Num.Ascii()}
	case *expr.VarRef:
		state = map[string]any{"name": x.Name, "access": x.Access.String()}
		if x.Scope != 0 {
			state["scope"] = a.Scope(x.Scope).Path
		}
		if x.Pkg != 0 {
			state["pkg"] = a.Package(x.Pkg).Name
		}
		if x.SelfPointer != "" {
			state["self"] = x.SelfPointer
		}
	case *expr.VarXRef:
		state = map[string]any{"name": x.Name, "dotted": x.Dotted, "access": x.Access.String()}
		if x.SelfPointer != "" {
			state["self"] = x.SelfPointer
		}
	case *expr.MemberSel:
		state = map[string]any{"member": x.Name}
	case *expr.EnumItemRef:
		state = map[string]any{"item": a.EnumItem(x.Item).Name}
		if x.Pkg != 0 {
			state["pkg"] = a.Package(x.Pkg).Name
		}
	case *expr.LambdaArgRef:
		state = map[string]any{"name": x.Name, "index": x.Index}
	case *expr.ScopeName:
		state = map[string]any{"dpiExport": x.DPIExport, "forFormat": x.ForFormat}
	case *expr.Time:
		state = map[string]any{"timeunit": x.Timeunit.String()}
	case *expr.TimeImport:
		state = map[string]any{"timeunit": x.Timeunit.String()}
	case *expr.Rand:
		state = map[string]any{"urandom": x.Urandom, "reset": x.Reset}
	case *expr.AddrOfCFunc:
		state = map[string]any{"func": a.CFunc(x.Func).Name}
	case *expr.CCast:
		state = map[string]any{"size": x.Size}
	case *expr.AtoN:
		state = map[string]any{"fmt": x.Fmt.String()}
	case *expr.CompareNN:
		state = map[string]any{"ignoreCase": x.IgnoreCase}
	case *expr.LogOr:
		state = map[string]any{"sideEffect": x.SideEffect}
	case *expr.CMath:
		state = map[string]any{"text": x.Text, "pure": x.Pure, "clean": x.Clean}
	case *expr.ScanF:
		state = map[string]any{"text": x.Text}
	case *expr.Sel:
		if !x.DeclRange.Valid {
			return "", nil
		}
		state = map[string]any{"left": x.DeclRange.Left, "right": x.DeclRange.Right, "elWidth": x.DeclElWidth}
	case *expr.SliceSel:
		state = map[string]any{"left": x.DeclRange.Left, "right": x.DeclRange.Right}
	case *expr.GatePin:
		state = map[string]any{"left": x.PinRange.Left, "right": x.PinRange.Right}
	default:
		return "", nil
	}

	data, err := json.Marshal(state)
	if err != nil {
		return "", fmt.Errorf("marshal %s state: %w", n.Op(), err)
	}
	return string(data), nil
}
