package joy

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// newTestInterp builds an Interp wired to in-memory buffers, in the same
// functional-options shape production code uses, so tests exercise the
// real New() path rather than poking at zero-value struct fields.
func newTestInterp(t *testing.T, opts ...Option) (*Interp, *strings.Builder) {
	t.Helper()
	var out strings.Builder
	base := []Option{
		WithStdin(strings.NewReader("")),
		WithStdout(&out),
		WithStderr(&out),
		WithSeed(1),
	}
	it, err := New(append(base, opts...)...)
	require.NoError(t, err)
	return it, &out
}

// mustExec parses src as a single term phrase and runs it directly through
// runPhrase, bypassing Run's report-and-continue error handling so a test
// can see the returned error.
func mustExec(t *testing.T, it *Interp, src string) error {
	t.Helper()
	lx := newLexer(t.Name(), strings.NewReader(src))
	p := newParser(it.env, lx)
	ph, err := p.nextPhrase()
	require.NoError(t, err)
	return it.runPhrase(ph)
}

// runOK runs src and requires it to succeed, returning the resulting stack.
func runOK(t *testing.T, it *Interp, src string) []Value {
	t.Helper()
	require.NoError(t, mustExec(t, it, src))
	return it.Stack()
}

// top requires the stack to be non-empty and returns its top element.
func top(t *testing.T, stack []Value) Value {
	t.Helper()
	require.NotEmpty(t, stack)
	return stack[len(stack)-1]
}
