package zimparse

import (
	"strconv"
	"strings"
)

// Parse reads patch text and returns the ordered command list. Grounded
// on mml/parser.go's line/token scanning shape, simplified from a
// character-class state machine to split/trim on patch-DSL's
// line-oriented grammar (one statement per line, `#` comments, blank
// lines ignored).
//
// A supplemental `def name = value` line performs textual substitution:
// every later occurrence of the bare token `name` is replaced with
// value before that line is otherwise parsed. This extends the
// distilled grammar with named constants, useful for patches that reuse
// a frequency or level across many lines.
func Parse(text string) ([]Command, error) {
	defs := map[string]string{}
	var cmds []Command

	lines := strings.Split(text, "\n")
	for i, raw := range lines {
		lineNo := i + 1
		line := stripComment(raw)
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		line = substituteDefs(line, defs)

		if name, value, ok := parseDef(line); ok {
			defs[name] = value
			continue
		}

		switch line {
		case "start", "stop":
			cmds = append(cmds, DirectiveCmd{LineNo: lineNo, Name: line})
			continue
		}

		if idx := strings.Index(line, "<-"); idx >= 0 {
			cmd, err := parseConnect(lineNo, line, idx)
			if err != nil {
				return nil, err
			}
			cmds = append(cmds, cmd)
			continue
		}

		if idx := strings.Index(line, ":"); idx >= 0 {
			cmd, err := parseModuleDecl(lineNo, line, idx)
			if err != nil {
				return nil, err
			}
			cmds = append(cmds, cmd)
			continue
		}

		return nil, parseErr(lineNo, "unrecognized statement %q", line)
	}
	return cmds, nil
}

func stripComment(line string) string {
	if idx := strings.IndexByte(line, '#'); idx >= 0 {
		return line[:idx]
	}
	return line
}

func parseDef(line string) (name, value string, ok bool) {
	if !strings.HasPrefix(line, "def ") {
		return "", "", false
	}
	rest := strings.TrimSpace(line[len("def "):])
	eq := strings.Index(rest, "=")
	if eq < 0 {
		return "", "", false
	}
	name = strings.TrimSpace(rest[:eq])
	value = strings.TrimSpace(rest[eq+1:])
	if name == "" || value == "" {
		return "", "", false
	}
	return name, value, true
}

func substituteDefs(line string, defs map[string]string) string {
	if len(defs) == 0 {
		return line
	}
	fields := strings.Fields(line)
	for i, f := range fields {
		if v, ok := defs[f]; ok {
			fields[i] = v
		}
	}
	return strings.Join(fields, " ")
}

func parseModuleDecl(lineNo int, line string, colonIdx int) (Command, error) {
	name := strings.TrimSpace(line[:colonIdx])
	if name == "" {
		return nil, parseErr(lineNo, "missing module name before ':'")
	}
	rest := strings.Fields(line[colonIdx+1:])
	if len(rest) == 0 {
		return nil, parseErr(lineNo, "missing module type after ':'")
	}
	typeName := rest[0]
	args := make([]float32, 0, len(rest)-1)
	for _, tok := range rest[1:] {
		if f, ok := parseFloatToken(tok); ok {
			args = append(args, f)
			continue
		}
		if w, ok := parseWaveformToken(tok); ok {
			args = append(args, w)
			continue
		}
		return nil, parseErr(lineNo, "unrecognized construction argument %q", tok)
	}
	return ModuleDecl{LineNo: lineNo, Name: name, Type: typeName, Args: args}, nil
}

// parseWaveformToken maps the osc/lfo waveform name args to a numeric
// code so the module library's Args []float32 stays uniform.
func parseWaveformToken(tok string) (float32, bool) {
	switch tok {
	case "sine":
		return 0, true
	case "saw":
		return 1, true
	case "square":
		return 2, true
	case "triangle":
		return 3, true
	}
	return 0, false
}

func parseFloatToken(tok string) (float32, bool) {
	f, err := strconv.ParseFloat(tok, 32)
	if err != nil {
		return 0, false
	}
	return float32(f), true
}

func parseConnect(lineNo int, line string, arrowIdx int) (Command, error) {
	sinkText := strings.TrimSpace(line[:arrowIdx])
	srcText := strings.TrimSpace(line[arrowIdx+2:])
	if sinkText == "" {
		return nil, parseErr(lineNo, "missing sink before '<-'")
	}
	if srcText == "" {
		return nil, parseErr(lineNo, "missing source after '<-'")
	}
	sink := parseEndpoint(sinkText)
	src, err := parseSrcExpr(lineNo, srcText)
	if err != nil {
		return nil, err
	}
	return ConnectCmd{LineNo: lineNo, Sink: sink, Src: src}, nil
}

func parseEndpoint(text string) Endpoint {
	if text == "out" || strings.HasPrefix(text, "out.") {
		if text == "out" {
			return Endpoint{Module: "", Port: "out"}
		}
		return Endpoint{Module: "", Port: text}
	}
	dot := strings.Index(text, ".")
	if dot < 0 {
		return Endpoint{Module: text, Port: ""}
	}
	return Endpoint{Module: text[:dot], Port: text[dot+1:]}
}

// parseSrcExpr normalises `src`, `src * k`, `src + k`, `src * k + k`,
// `k + src`, `k * src`, or a bare numeric literal into (source, scale,
// offset) with defaults scale=1, offset=0, per SPEC_FULL.md §4.1.
func parseSrcExpr(lineNo int, text string) (SrcExpr, error) {
	toks := tokenizeExpr(text)
	if len(toks) == 0 {
		return SrcExpr{}, parseErr(lineNo, "empty expression")
	}

	// Bare literal: the whole expression is one numeric token.
	if len(toks) == 1 {
		if f, ok := parseFloatToken(toks[0]); ok {
			return SrcExpr{IsLiteral: true, Literal: f}, nil
		}
		return SrcExpr{Source: parseEndpoint(toks[0]), Scale: 1, Offset: 0}, nil
	}

	expr := SrcExpr{Scale: 1, Offset: 0}
	foundSrc := false
	i := 0
	sign := float32(1)
	for i < len(toks) {
		tok := toks[i]
		switch tok {
		case "+":
			sign = 1
			i++
			continue
		case "-":
			sign = -1
			i++
			continue
		case "*":
			i++
			continue
		}
		if f, ok := parseFloatToken(tok); ok {
			// A literal adjacent to '*' on the source's side is the scale;
			// otherwise it's the additive offset.
			if i+1 < len(toks) && toks[i+1] == "*" && !foundSrc {
				expr.Scale = f * sign
				i += 2
				continue
			}
			if i > 0 && toks[i-1] == "*" && foundSrc {
				expr.Scale = f * sign
				i++
				continue
			}
			expr.Offset += f * sign
			i++
			continue
		}
		// source endpoint token
		expr.Source = parseEndpoint(tok)
		foundSrc = true
		i++
	}
	if !foundSrc {
		return SrcExpr{}, parseErr(lineNo, "expression %q has no source endpoint", text)
	}
	return expr, nil
}

// tokenizeExpr splits an affine expression into identifier/number and
// `+`, `-`, `*` operator tokens.
func tokenizeExpr(text string) []string {
	var toks []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			toks = append(toks, cur.String())
			cur.Reset()
		}
	}
	for _, r := range text {
		switch r {
		case '+', '*':
			flush()
			toks = append(toks, string(r))
		case '-':
			// A '-' that starts the expression or directly follows another
			// operator is a sign and belongs to the numeric literal after
			// it (`src * -0.5`); anywhere else it is the minus operator.
			if cur.Len() == 0 {
				if n := len(toks); n == 0 || toks[n-1] == "+" || toks[n-1] == "-" || toks[n-1] == "*" {
					cur.WriteRune(r)
					continue
				}
			}
			flush()
			toks = append(toks, string(r))
		case ' ', '\t':
			flush()
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return toks
}
