package expr

import (
	"fmt"
	"io"
	"strings"
)

// Dump writes a readable rendering of the tree under root: one node per
// line, children indented beneath their parent, absent optional slots
// as "-". The output is deterministic; golden tests snapshot it.
func Dump(w io.Writer, a *Arena, root Ref) error {
	d := dumper{a: a, w: w}
	d.tree(root, 0)
	return d.err
}

// DumpString renders like Dump into a string.
func DumpString(a *Arena, root Ref) string {
	var sb strings.Builder
	Dump(&sb, a, root)
	return sb.String()
}

// Summary is the one-line rendering of a single node: operator,
// kind-specific state, resolved type.
func Summary(a *Arena, r Ref) string {
	if r == NilRef {
		return "-"
	}
	n := a.Node(r)
	d := dumper{a: a}
	if s := d.state(n); s != "" {
		return fmt.Sprintf("%s %s (%s)", n.Op(), s, n.DType())
	}
	return fmt.Sprintf("%s (%s)", n.Op(), n.DType())
}

type dumper struct {
	a   *Arena
	w   io.Writer
	err error
}

func (d *dumper) printf(format string, args ...any) {
	if d.err == nil {
		_, d.err = fmt.Fprintf(d.w, format, args...)
	}
}

func (d *dumper) tree(r Ref, depth int) {
	indent := strings.Repeat("  ", depth)
	d.printf("%s%s\n", indent, Summary(d.a, r))
	if r == NilRef {
		return
	}
	for _, k := range d.a.Node(r).Children() {
		d.tree(k, depth+1)
	}
}

// state renders the per-kind payload of a node, "" when there is none.
func (d *dumper) state(n Node) string {
	switch x := n.(type) {
	case *Const:
		return x.Num.Ascii()
	case *VarRef:
		s := fmt.Sprintf("%q %s", x.Name, x.Access)
		if x.Scope != 0 {
			s += " @" + d.a.Scope(x.Scope).Path
		}
		return s
	case *VarXRef:
		return fmt.Sprintf("%q dot %q %s", x.Name, x.Dotted, x.Access)
	case *MemberSel:
		return "." + x.Name
	case *EnumItemRef:
		if x.Item == 0 {
			return "unresolved"
		}
		return d.a.EnumItem(x.Item).Name
	case *LambdaArgRef:
		if x.Index {
			return fmt.Sprintf("%q index", x.Name)
		}
		return fmt.Sprintf("%q", x.Name)
	case *ScopeName:
		var fl []string
		if x.DPIExport {
			fl = append(fl, "dpi")
		}
		if x.ForFormat {
			fl = append(fl, "format")
		}
		return strings.Join(fl, " ")
	case *Time:
		return x.Timeunit.String()
	case *TimeImport:
		return x.Timeunit.String()
	case *Rand:
		var fl []string
		if x.Urandom {
			fl = append(fl, "urandom")
		}
		if x.Reset {
			fl = append(fl, "reset")
		}
		return strings.Join(fl, " ")
	case *AddrOfCFunc:
		if x.Func == 0 {
			return "unresolved"
		}
		return d.a.CFunc(x.Func).Name
	case *CCast:
		return fmt.Sprintf("sz%d", x.Size)
	case *AtoN:
		return x.Fmt.String()
	case *CompareNN:
		if x.IgnoreCase {
			return "icompare"
		}
		return "compare"
	case *LogOr:
		if x.SideEffect {
			return "sideeffect"
		}
		return ""
	case *CMath:
		var fl []string
		if x.Text != "" {
			fl = append(fl, fmt.Sprintf("%q", x.Text))
		}
		if !x.Clean {
			fl = append(fl, "unclean")
		}
		if x.Pure {
			fl = append(fl, "pure")
		}
		return strings.Join(fl, " ")
	case *ScanF:
		return fmt.Sprintf("%q", x.Text)
	case *Sel:
		s := x.DeclRange.String()
		if x.DeclElWidth > 1 {
			s += fmt.Sprintf(" el%d", x.DeclElWidth)
		}
		return strings.TrimSpace(s)
	case *SliceSel:
		return x.DeclRange.String()
	case *PatMember:
		if x.Default {
			return "default"
		}
		return ""
	case *GatePin:
		return x.PinRange.String()
	}
	return ""
}
