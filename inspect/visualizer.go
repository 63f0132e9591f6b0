package inspect

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
)

// Visualizer renders snapshots as graphs: one node per module, one edge
// from each parent to the modules instantiated under it.
type Visualizer struct {
	// ShowState adds the formatted state to each node label.
	ShowState bool
}

// ExportDOT generates Graphviz DOT source for snap.
func (v *Visualizer) ExportDOT(snap Snapshot) string {
	var buf bytes.Buffer
	buf.WriteString(`digraph Store {
  rankdir=LR;
  node [shape=box, fontsize=10, style=rounded];
  edge [fontsize=9];
`)
	for _, m := range snap.Modules {
		style := ""
		if m.Namespace == "" {
			style = ` style="rounded,filled" fillcolor=lightblue`
		}
		fmt.Fprintf(&buf, "  \"%s\" [label=\"%s\"%s];\n", dotEscape(m.Label()), dotEscape(v.label(m, "\n")), style)
	}
	for _, e := range edges(snap) {
		fmt.Fprintf(&buf, "  \"%s\" -> \"%s\";\n", dotEscape(e.From), dotEscape(e.To))
	}
	buf.WriteString("}\n")
	return buf.String()
}

// ExportMermaid generates a Mermaid flowchart for snap.
func (v *Visualizer) ExportMermaid(snap Snapshot) string {
	var buf bytes.Buffer
	buf.WriteString("graph LR\n")
	for _, m := range snap.Modules {
		label := strings.ReplaceAll(v.label(m, "<br/>"), `"`, "#quot;")
		fmt.Fprintf(&buf, "  %s[\"%s\"]\n", mermaidID(m.Label()), label)
	}
	for _, e := range edges(snap) {
		fmt.Fprintf(&buf, "  %s --> %s\n", mermaidID(e.From), mermaidID(e.To))
	}
	return buf.String()
}

// Edge is a parent to child link between modules.
type Edge struct {
	From string
	To   string
}

func edges(snap Snapshot) []Edge {
	known := make(map[string]bool, len(snap.Modules))
	for _, m := range snap.Modules {
		known[m.Label()] = true
	}
	var out []Edge
	for _, m := range snap.Modules {
		if m.Parent == "" || !known[m.Parent] {
			continue
		}
		out = append(out, Edge{From: m.Parent, To: m.Label()})
	}
	return out
}

func (v *Visualizer) label(m ModuleSnapshot, sep string) string {
	lines := []string{m.Label()}
	if v.ShowState {
		lines = append(lines, fmt.Sprintf("state: %v", m.State))
	}
	if len(m.Getters) > 0 {
		names := make([]string, 0, len(m.Getters))
		for k := range m.Getters {
			names = append(names, k)
		}
		sort.Strings(names)
		lines = append(lines, "getters: "+strings.Join(names, ", "))
	}
	if len(m.Actions) > 0 {
		lines = append(lines, "actions: "+strings.Join(m.Actions, ", "))
	}
	return strings.Join(lines, sep)
}

// dotEscape quotes s for a DOT string; newlines become \n line breaks.
func dotEscape(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return strings.ReplaceAll(s, "\n", `\n`)
}

// mermaidID keeps letters, digits and underscores.
func mermaidID(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return "m_" + b.String()
}
