package passes

import (
	"sort"

	"github.com/jmerdich/verilator/internal/expr"
)

// DupGroup is one set of interchangeable subtrees: every member is
// TreeEqual to every other. Refs are in ascending order; Nodes counts
// the nodes of one member.
type DupGroup struct {
	Hash  string
	Nodes int
	Refs  []expr.Ref
}

// FindDuplicates reports groups of interchangeable subtrees under
// roots. Every subtree is a candidate, not just the roots themselves;
// a node shared by reference counts once. A subtree qualifies only if
// every node in it is pure, produces no output, and is eligible for
// gate optimization - random draws are nominally pure yet must not
// merge, or two draws would collapse into one. Groups come back
// ordered by their first member's ref.
func FindDuplicates(a *expr.Arena, roots []expr.Ref) []DupGroup {
	d := dupFinder{
		a:      a,
		hasher: expr.NewHasher(a),
		pure:   make(map[expr.Ref]bool),
		seen:   make(map[expr.Ref]bool),
	}
	for _, r := range roots {
		d.walk(r)
	}

	var groups []DupGroup
	for _, bucket := range d.buckets {
		groups = append(groups, d.confirm(bucket)...)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Refs[0] < groups[j].Refs[0] })
	return groups
}

type dupFinder struct {
	a      *expr.Arena
	hasher *expr.Hasher
	pure   map[expr.Ref]bool
	seen   map[expr.Ref]bool

	buckets map[string][]expr.Ref
}

func (d *dupFinder) walk(r expr.Ref) {
	if r == expr.NilRef || d.seen[r] {
		return
	}
	d.seen[r] = true
	for _, k := range d.a.Node(r).Children() {
		d.walk(k)
	}
	if !d.mergeable(r) {
		return
	}
	h := d.hasher.Hash(r)
	if d.buckets == nil {
		d.buckets = make(map[string][]expr.Ref)
	}
	d.buckets[h] = append(d.buckets[h], r)
}

// mergeable reports whether the whole subtree under r may be replaced
// by an equivalent copy.
func (d *dupFinder) mergeable(r expr.Ref) bool {
	if r == expr.NilRef {
		return true
	}
	if p, ok := d.pure[r]; ok {
		return p
	}
	n := d.a.Node(r)
	p := expr.IsMergeable(n)
	for _, k := range n.Children() {
		if !p {
			break
		}
		p = d.mergeable(k)
	}
	d.pure[r] = p
	return p
}

// confirm splits one hash bucket into TreeEqual-verified groups and
// drops singletons.
func (d *dupFinder) confirm(bucket []expr.Ref) []DupGroup {
	if len(bucket) < 2 {
		return nil
	}
	sort.Slice(bucket, func(i, j int) bool { return bucket[i] < bucket[j] })

	var groups []DupGroup
	taken := make([]bool, len(bucket))
	for i, rep := range bucket {
		if taken[i] {
			continue
		}
		g := DupGroup{Hash: d.hasher.Hash(rep), Refs: []expr.Ref{rep}}
		for j := i + 1; j < len(bucket); j++ {
			if !taken[j] && expr.TreeEqual(d.a, rep, bucket[j]) {
				taken[j] = true
				g.Refs = append(g.Refs, bucket[j])
			}
		}
		if len(g.Refs) > 1 {
			g.Nodes = countNodes(d.a, rep)
			groups = append(groups, g)
		}
	}
	return groups
}

func countNodes(a *expr.Arena, r expr.Ref) int {
	if r == expr.NilRef {
		return 0
	}
	n := 1
	for _, k := range a.Node(r).Children() {
		n += countNodes(a, k)
	}
	return n
}
