package joy

import (
	"io"
	"strings"
)

// config accumulates the choices an Option makes before New assembles the
// Interp; the indirection exists because the handle table, the random
// source, and the environment's flags must all be built from the final
// merged configuration, not patched in afterward. Grounded on gothird's
// own options.go, which likewise resolved a slice of VMOption against a
// private config struct before constructing the VM.
type config struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	args   []string
	seed   int64

	undefError bool
	autoput    bool
	echo       int
}

func defaultConfig() *config {
	return &config{
		stdin:  strings.NewReader(""),
		stdout: io.Discard,
		stderr: io.Discard,
		seed:   1,
	}
}

// Option configures an Interp at construction time.
type Option func(*config)

// WithStdin sets the reader backing the `stdin` file handle and the `get`
// primitive's default input.
func WithStdin(r io.Reader) Option { return func(c *config) { c.stdin = r } }

// WithStdout sets the writer backing the `stdout` file handle, `put`, and
// `.`/`newline`.
func WithStdout(w io.Writer) Option { return func(c *config) { c.stdout = w } }

// WithStderr sets the writer backing the `stderr` file handle and this
// Interp's diagnostic log (spec section 7's single-line error reports).
func WithStderr(w io.Writer) Option { return func(c *config) { c.stderr = w } }

// WithArgs sets the argument vector the `argv`/`argc` primitives expose,
// per spec section 4.4.
func WithArgs(args []string) Option {
	return func(c *config) { c.args = append([]string(nil), args...) }
}

// WithSeed fixes the initial state of the `rand` primitive's generator, so
// that `srand` starts from a known, reproducible point.
func WithSeed(seed int64) Option { return func(c *config) { c.seed = seed } }

// WithUndefError sets the environment's initial undeferror flag (spec
// section 4.2). Joy programs may still flip it at runtime via
// `setundeferror`.
func WithUndefError(v bool) Option { return func(c *config) { c.undefError = v } }

// WithAutoput sets the environment's initial autoput flag (spec section
// 4.4), controlling whether the evaluator prints the top of stack after
// each top-level phrase.
func WithAutoput(v bool) Option { return func(c *config) { c.autoput = v } }

// WithEcho sets the environment's initial echo level. A level of 2 or more
// makes Run dump a stack snapshot after every phrase (spec section 9's
// diagnostic-only echo behavior).
func WithEcho(level int) Option { return func(c *config) { c.echo = level } }
