// Package zimparse turns Zim-DSP patch text into an ordered list of
// declarative commands: module instantiations, connections, scalar
// parameter assignments, and start/stop directives. It does not
// validate that referenced modules or ports exist — that is
// internal/zimgraph's job.
package zimparse

// Command is the sum type the parser emits, one per non-blank,
// non-comment line (after `def` substitution). Grounded on the
// teacher's character-scanning parser in mml/parser.go, which emits one
// Event per parsed token; here one Command per parsed line.
type Command interface {
	Line() int
}

// ModuleDecl instantiates a module: `name: type [arg ...]`.
type ModuleDecl struct {
	LineNo int
	Name   string
	Type   string
	Args   []float32
}

func (c ModuleDecl) Line() int { return c.LineNo }

// Endpoint is one side of a connection or the output bus: either a
// module port/parameter (`name.port`) or one of the reserved output
// names (`out`, `out.left`, `out.right`).
type Endpoint struct {
	Module string // empty for the output bus
	Port   string
}

// SrcExpr is a normalised affine source expression: either a bare
// numeric literal, or `scale * source + offset` with defaults
// scale=1, offset=0.
type SrcExpr struct {
	IsLiteral bool
	Literal   float32

	Source Endpoint
	Scale  float32
	Offset float32
}

// ConnectCmd binds a sink endpoint to a source expression:
// `sink <- src_expr`.
type ConnectCmd struct {
	LineNo int
	Sink   Endpoint
	Src    SrcExpr
}

func (c ConnectCmd) Line() int { return c.LineNo }

// DirectiveCmd is a bare runtime directive line: `start` or `stop`.
type DirectiveCmd struct {
	LineNo int
	Name   string
}

func (c DirectiveCmd) Line() int { return c.LineNo }
