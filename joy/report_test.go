package joy

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStackSnapshotBoundsDepthAndOrder(t *testing.T) {
	stack := []Value{mkInt(1), mkString("x"), mkList(nil)}
	assert.Equal(t, "[integer string list]", stackSnapshot(stack))

	deep := make([]Value, 12)
	for i := range deep {
		deep[i] = mkInt(int64(i))
	}
	snap := stackSnapshot(deep)
	assert.Contains(t, snap, "... ")
	assert.Equal(t, "[... integer integer integer integer integer integer integer integer]", snap)
}

func TestReportDiagnosticWithoutPosition(t *testing.T) {
	err := &StackUnderflowError{Op: "pop", Required: 1, Available: 0}
	assert.Equal(t, "error: StackUnderflow: pop: requires 1 items, stack has 0", ReportDiagnostic(err))
}

func TestReportDiagnosticWithPosition(t *testing.T) {
	err := &ParseError{Message: "missing '.' at end of phrase", Pos: Position{File: "prog", Line: 3, Column: 1}}
	assert.Equal(t, "error: ParseError: missing '.' at end of phrase at line 3, column 1 (at prog:3)", ReportDiagnostic(err))
}

func TestReportDiagnosticOnNonJoyError(t *testing.T) {
	assert.Equal(t, "error: boom", ReportDiagnostic(errPlain("boom")))
}

type errPlain string

func (e errPlain) Error() string { return string(e) }

func TestFormatValueLiteralForms(t *testing.T) {
	names := newSymbolTable()
	id := names.intern("dup")

	assert.Equal(t, "true", FormatValue(mkBool(true), names))
	assert.Equal(t, "'a", FormatValue(mkChar('a'), names))
	assert.Equal(t, "42", FormatValue(mkInt(42), names))
	assert.Equal(t, `"hi"`, FormatValue(mkString("hi"), names))
	assert.Equal(t, "{1 3 5}", FormatValue(mkSet(1<<1|1<<3|1<<5), names))
	assert.Equal(t, "[1 2]", FormatValue(mkList([]Value{mkInt(1), mkInt(2)}), names))
	assert.Equal(t, "dup", FormatValue(mkSymbol(id), names))
	assert.Equal(t, "stdout", FormatValue(mkFile(handleStdout), names))
}

func TestFormatValueEscapesQuotesAndControlChars(t *testing.T) {
	names := newSymbolTable()
	assert.Equal(t, `"a\nb\tc"`, FormatValue(mkString("a\nb\tc"), names))
	assert.Equal(t, `"say \"hi\""`, FormatValue(mkString(`say "hi"`), names))
}

func TestFormatFloatSpecialValues(t *testing.T) {
	assert.Equal(t, "nan", formatFloat(math.NaN()))
	assert.Equal(t, "inf", formatFloat(math.Inf(1)))
	assert.Equal(t, "-inf", formatFloat(math.Inf(-1)))
	assert.Equal(t, "1.5", formatFloat(1.5))
}
