package expr

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"io"

	"golang.org/x/text/unicode/norm"
)

// Structural tree hashing for duplicate detection. Two trees hash
// equal whenever TreeEqual holds, so the payload covers exactly what
// Same compares: operator, result type, equivalence-relevant state,
// and child hashes. Collisions are possible; callers confirm a match
// with TreeEqual.

// DomainTree is the domain prefix for structural hashes. The version
// suffix enables future algorithm migration.
const DomainTree = "vexpr/tree/v1"

// Hasher computes and memoizes subtree hashes over one arena. The memo
// keys by reference and stays valid while the arena only grows.
type Hasher struct {
	arena *Arena
	memo  map[Ref]string
}

func NewHasher(a *Arena) *Hasher {
	return &Hasher{arena: a, memo: make(map[Ref]string)}
}

// Hash returns the structural hash of the tree rooted at ref, as
// lowercase hex. The nil reference hashes to the empty string.
func (h *Hasher) Hash(ref Ref) string {
	if ref == NilRef {
		return ""
	}
	if s, ok := h.memo[ref]; ok {
		return s
	}
	n := h.arena.Node(ref)
	d := sha256.New()
	d.Write([]byte(DomainTree))
	d.Write([]byte{0x00}) // null separator keeps domain and payload apart
	writeNodeIdentity(d, n)
	for _, c := range n.Children() {
		if c == NilRef {
			d.Write([]byte{0})
			continue
		}
		d.Write([]byte{1})
		io.WriteString(d, h.Hash(c))
	}
	s := hex.EncodeToString(d.Sum(nil))
	h.memo[ref] = s
	return s
}

// TreeHash computes the structural hash of a single tree. Passes that
// hash many subtrees of one arena share a Hasher instead.
func TreeHash(a *Arena, ref Ref) string {
	return NewHasher(a).Hash(ref)
}

// writeNodeIdentity serializes the fields Same and TreeEqual compare.
// Strings are length-prefixed so field boundaries stay unambiguous.
func writeNodeIdentity(w io.Writer, n Node) {
	writeU32(w, uint32(n.Op()))
	dt := n.DType()
	writeU32(w, uint32(dt.Width))
	writeU32(w, uint32(dt.WidthMin))
	flags := byte(dt.Flavor)
	if dt.Signed {
		flags |= 0x80
	}
	w.Write([]byte{flags})
	switch x := n.(type) {
	case *Const:
		writeString(w, x.Num.Key())
	case *VarRef:
		if x.Scope != 0 {
			w.Write([]byte{1, byte(x.Access)})
			writeU32(w, uint32(x.Scope))
		} else {
			w.Write([]byte{0, byte(x.Access)})
			writeString(w, x.SelfPointer)
			writeU32(w, uint32(x.Var))
			writeString(w, x.Name)
		}
	case *VarXRef:
		writeString(w, x.SelfPointer)
		writeU32(w, uint32(x.Var))
		writeString(w, x.Name)
		writeString(w, x.Dotted)
	case *EnumItemRef:
		writeU32(w, uint32(x.Item))
	case *CCast:
		writeU32(w, uint32(x.Size))
	case *LogOr:
		writeBool(w, x.SideEffect)
	case *ScopeName:
		writeBool(w, x.DPIExport)
		writeBool(w, x.ForFormat)
	case *ScanF:
		writeString(w, x.Text)
	case *Unop:
		if x.Op() == OpNullCheck {
			loc := x.Loc()
			writeString(w, loc.File)
			writeU32(w, uint32(loc.Line))
			writeU32(w, uint32(loc.Col))
		}
	}
}

func writeU32(w io.Writer, v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	w.Write(b[:])
}

// writeString hashes a length-prefixed, NFC-normalized string. Names
// that differ only in Unicode composition hash alike; TreeEqual keeps
// the final say on a bucket match.
func writeString(w io.Writer, s string) {
	s = norm.NFC.String(s)
	writeU32(w, uint32(len(s)))
	io.WriteString(w, s)
}

func writeBool(w io.Writer, v bool) {
	if v {
		w.Write([]byte{1})
	} else {
		w.Write([]byte{0})
	}
}
