package joy

import (
	"math"
	"strconv"
	"strings"
)

// maxSnapshotDepth bounds how many top-of-stack tags a diagnostic carries,
// per spec section 4.5: "a snapshot of the top of the stack (tags only,
// bounded length)". Adapted from gothird's dumper.go, which bounded a full
// memory dump the same way for readability; here the bound applies to the
// diagnostic snapshot rather than a debug dump.
const maxSnapshotDepth = 8

// stackSnapshot renders the top of a stack as tags only, deepest first,
// e.g. "[integer integer list]".
func stackSnapshot(stack []Value) string {
	n := len(stack)
	if n > maxSnapshotDepth {
		n = maxSnapshotDepth
	}
	tags := make([]string, n)
	for i := 0; i < n; i++ {
		tags[i] = stack[len(stack)-n+i].Kind().String()
	}
	trunc := ""
	if len(stack) > maxSnapshotDepth {
		trunc = "... "
	}
	return "[" + trunc + strings.Join(tags, " ") + "]"
}

// ReportDiagnostic renders err in the single-line shape spec section 7
// mandates: "error: <kind>: <detail> (at <file>:<line>)". The top-level
// loop in eval.go renders every reported error (abort included) this way;
// quit is returned from Run rather than reported. It is exported for
// callers that want the same rendering for any joyError.
func ReportDiagnostic(err error) string {
	je, ok := err.(joyError)
	if !ok {
		return "error: " + err.Error()
	}
	detail := je.Error()
	pos := je.Position()
	if pos.IsZero() {
		return "error: " + string(je.Kind()) + ": " + detail
	}
	return "error: " + string(je.Kind()) + ": " + detail + " (at " + pos.String() + ")"
}

// FormatValue renders v in Joy's literal syntax, the form the put
// primitive writes: strings with quotes, lists with brackets, chars with a
// leading quote, floats in general form, sets with braces, symbols by
// name. names resolves a Symbol's interned id back to its source text.
func FormatValue(v Value, names *symbolTable) string {
	var sb strings.Builder
	formatValue(&sb, v, names)
	return sb.String()
}

func formatValue(sb *strings.Builder, v Value, names *symbolTable) {
	switch v.kind {
	case Bool:
		if v.boolVal() {
			sb.WriteString("true")
		} else {
			sb.WriteString("false")
		}
	case Char:
		sb.WriteByte('\'')
		writeEscapedRune(sb, v.charVal(), '\'')
	case Int:
		sb.WriteString(strconv.FormatInt(v.intVal(), 10))
	case Float:
		sb.WriteString(formatFloat(v.floatVal()))
	case String:
		sb.WriteByte('"')
		for _, r := range v.stringVal() {
			writeEscapedRune(sb, r, '"')
		}
		sb.WriteByte('"')
	case Set:
		sb.WriteByte('{')
		for i, m := range setMembers(v.setVal()) {
			if i > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(strconv.Itoa(m))
		}
		sb.WriteByte('}')
	case List:
		sb.WriteByte('[')
		for i, e := range v.listVal() {
			if i > 0 {
				sb.WriteByte(' ')
			}
			formatValue(sb, e, names)
		}
		sb.WriteByte(']')
	case Symbol:
		sb.WriteString(names.name(v.symbolVal()))
	case File:
		switch v.fileVal() {
		case handleStdin:
			sb.WriteString("stdin")
		case handleStdout:
			sb.WriteString("stdout")
		case handleStderr:
			sb.WriteString("stderr")
		default:
			sb.WriteString("<file>")
		}
	}
}

// formatFloat renders a float in Joy's general form. NaN and infinities
// are not fixed by spec section 9 ("implementations should pick a stable
// rendering and document it"); this implementation picks its own stable
// lower-case forms (nan, inf, -inf) rather than Go's default "NaN"/"+Inf",
// so a Joy program's output never looks like it leaked a Go type name.
func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	default:
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
}

func writeEscapedRune(sb *strings.Builder, r rune, quote byte) {
	switch r {
	case rune(quote):
		sb.WriteByte('\\')
		sb.WriteRune(r)
	case '\\':
		sb.WriteString(`\\`)
	case '\n':
		sb.WriteString(`\n`)
	case '\t':
		sb.WriteString(`\t`)
	default:
		sb.WriteRune(r)
	}
}
