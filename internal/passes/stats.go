package passes

import "github.com/jmerdich/verilator/internal/expr"

// TreeStats summarizes one tree for reports: node count, summed
// instruction-cost estimate, and per-kind counts. Shared subtrees
// count once per reference identity.
type TreeStats struct {
	Nodes int            `json:"nodes"`
	Cost  int            `json:"cost"`
	Kinds map[string]int `json:"kinds"`
}

// Stats walks the tree under root and tallies it.
func Stats(a *expr.Arena, root expr.Ref) TreeStats {
	st := TreeStats{Kinds: make(map[string]int)}
	seen := make(map[expr.Ref]bool)
	var walk func(r expr.Ref)
	walk = func(r expr.Ref) {
		if r == expr.NilRef || seen[r] {
			return
		}
		seen[r] = true
		n := a.Node(r)
		st.Nodes++
		st.Cost += expr.InstrCount(a, n)
		st.Kinds[n.Op().String()]++
		for _, k := range n.Children() {
			walk(k)
		}
	}
	walk(root)
	return st
}
