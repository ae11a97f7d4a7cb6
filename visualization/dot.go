package visualization

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/anggasct/xsm"
)

// DOTGenerator generates Graphviz DOT representations of a state tree.
// Composite states are drawn as clusters, region states with a dashed
// border. The live status of each state is rendered with its fill color.
type DOTGenerator[E any] struct {
	root    *xsm.State[E]
	options DOTOptions
}

// DOTOptions configures the DOT generation
type DOTOptions struct {
	ShowDefaultEntry bool
	ShowLastState    bool
	RankDirection    string // "TB", "LR", "BT", "RL"
	NodeShape        string
	ActiveColor      string
	InactiveColor    string
	DisabledColor    string
	CompositeStyle   string
	RegionStyle      string
}

// DefaultDOTOptions returns sensible default options for DOT generation
func DefaultDOTOptions() DOTOptions {
	return DOTOptions{
		ShowDefaultEntry: true,
		ShowLastState:    false,
		RankDirection:    "TB",
		NodeShape:        "box",
		ActiveColor:      "lightgreen",
		InactiveColor:    "white",
		DisabledColor:    "lightgrey",
		CompositeStyle:   "rounded",
		RegionStyle:      "dashed,rounded",
	}
}

// NewDOTGenerator creates a new DOT generator for the tree under root
func NewDOTGenerator[E any](root *xsm.State[E], options ...DOTOptions) *DOTGenerator[E] {
	opts := DefaultDOTOptions()
	if len(options) > 0 {
		opts = options[0]
	}

	return &DOTGenerator[E]{
		root:    root,
		options: opts,
	}
}

// ForMachine creates a DOT generator for the tree of m
func ForMachine[E any](m *xsm.Machine[E], options ...DOTOptions) *DOTGenerator[E] {
	return NewDOTGenerator(m.Root(), options...)
}

// Generate creates a DOT representation of the state tree
func (g *DOTGenerator[E]) Generate() (string, error) {
	if g.root == nil {
		return "", fmt.Errorf("failed to generate states: root state is nil")
	}

	var dot strings.Builder

	dot.WriteString("digraph StateMachine {\n")
	dot.WriteString("  compound=true;\n")
	dot.WriteString(fmt.Sprintf("  rankdir=%s;\n", g.options.RankDirection))
	dot.WriteString(fmt.Sprintf("  node [shape=%s style=\"rounded,filled\"];\n", g.options.NodeShape))
	dot.WriteString("  edge [fontsize=10];\n\n")

	g.generateState(&dot, g.root, "  ")

	if g.options.ShowLastState {
		dot.WriteString("\n  // Last state links\n")
		g.generateLastStates(&dot, g.root)
	}

	dot.WriteString("}\n")

	return dot.String(), nil
}

// generateState writes an atomic state as a node and a composite one as a cluster
func (g *DOTGenerator[E]) generateState(dot *strings.Builder, s *xsm.State[E], indent string) {
	id := quote(s.Path())
	if s.IsAtomic() {
		dot.WriteString(fmt.Sprintf("%s%s [label=%s fillcolor=%s];\n",
			indent, id, quote(s.Name()), g.fillColor(s)))
		return
	}

	style := g.options.CompositeStyle
	label := s.Name()
	if s.HasRegions() {
		style = g.options.RegionStyle
		label += " (regions)"
	}
	dot.WriteString(fmt.Sprintf("%ssubgraph %s {\n", indent, quote("cluster_"+s.Path())))
	inner := indent + "  "
	dot.WriteString(fmt.Sprintf("%slabel=%s;\n", inner, quote(label)))
	dot.WriteString(fmt.Sprintf("%sstyle=%s;\n", inner, quote(style+",filled")))
	dot.WriteString(fmt.Sprintf("%sfillcolor=%s;\n", inner, g.fillColor(s)))

	children := s.Children()
	if g.options.ShowDefaultEntry && !s.HasRegions() {
		entry := quote(s.Path() + "/__entry")
		dot.WriteString(fmt.Sprintf("%s%s [shape=point width=0.1 label=\"\"];\n", inner, entry))
		dot.WriteString(fmt.Sprintf("%s%s -> %s%s;\n", inner, entry, anchor(children[0]), lhead(children[0])))
	}
	for _, c := range children {
		g.generateState(dot, c, inner)
	}
	dot.WriteString(indent + "}\n")
}

// generateLastStates draws a dotted edge into every state from the state that
// requested its entry. Entries made by an ancestor during init are skipped.
func (g *DOTGenerator[E]) generateLastStates(dot *strings.Builder, s *xsm.State[E]) {
	for _, c := range s.Children() {
		if last := c.LastState(); last != nil && last != c && !c.HasParent(last) {
			dot.WriteString(fmt.Sprintf("  %s -> %s [style=dotted arrowhead=empty%s%s];\n",
				anchor(last), anchor(c), ltail(last), lhead(c)))
		}
		g.generateLastStates(dot, c)
	}
}

func (g *DOTGenerator[E]) fillColor(s *xsm.State[E]) string {
	switch {
	case s.IsDisabled():
		return g.options.DisabledColor
	case s.Status() == xsm.StatusActive:
		return g.options.ActiveColor
	default:
		return g.options.InactiveColor
	}
}

// anchor returns a node id edges can attach to: the state itself, or the
// first atomic state inside a cluster
func anchor[E any](s *xsm.State[E]) string {
	n := s
	for !n.IsAtomic() {
		n = n.Children()[0]
	}
	return quote(n.Path())
}

func lhead[E any](s *xsm.State[E]) string {
	if s.IsAtomic() {
		return ""
	}
	return " lhead=" + quote("cluster_"+s.Path())
}

func ltail[E any](s *xsm.State[E]) string {
	if s.IsAtomic() {
		return ""
	}
	return " ltail=" + quote("cluster_"+s.Path())
}

func quote(s string) string {
	return "\"" + strings.ReplaceAll(s, "\"", "\\\"") + "\""
}

// GenerateToFile writes the DOT representation to a file
func (g *DOTGenerator[E]) GenerateToFile(filename string) error {
	content, err := g.Generate()
	if err != nil {
		return err
	}

	return os.WriteFile(filename, []byte(content), 0644)
}

// SVGGenerator generates SVG representations by calling Graphviz
type SVGGenerator[E any] struct {
	dotGenerator *DOTGenerator[E]
}

// NewSVGGenerator creates a new SVG generator
func NewSVGGenerator[E any](root *xsm.State[E], options ...DOTOptions) *SVGGenerator[E] {
	return &SVGGenerator[E]{
		dotGenerator: NewDOTGenerator(root, options...),
	}
}

// Generate creates an SVG representation of the state tree
func (g *SVGGenerator[E]) Generate() (string, error) {
	dotContent, err := g.dotGenerator.Generate()
	if err != nil {
		return "", err
	}

	// Use Graphviz dot command to convert DOT to SVG
	cmd := exec.Command("dot", "-Tsvg")
	cmd.Stdin = strings.NewReader(dotContent)

	var out bytes.Buffer
	cmd.Stdout = &out

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("failed to execute dot command: %w (make sure Graphviz is installed)", err)
	}

	return out.String(), nil
}

// GenerateSVG creates an SVG representation of the state tree
func (g *DOTGenerator[E]) GenerateSVG() (string, error) {
	svgGen := &SVGGenerator[E]{dotGenerator: g}
	return svgGen.Generate()
}
