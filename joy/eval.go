package joy

import (
	"io"
	"math/rand"
	"time"

	"github.com/shakfu/pyjoy/internal/logio"
	"github.com/shakfu/pyjoy/internal/panicerr"
)

// Interp is one Joy interpreter: a stack, an environment, an open-file
// table, and the small amount of process-global state spec section 5
// allows (random state, the three runtime flags living in Environment).
// Grounded on gothird's VM (core.go): a value stack plus a dictionary plus
// I/O plumbing, generalized from FIRST/THIRD's single memory-cell value
// type to Joy's nine-kind Value.
type Interp struct {
	stack []Value
	env   *Environment
	files *handleTable
	rng   *rand.Rand

	log         *logio.Logger
	echof       func(string, ...interface{})
	name        string   // current source name, for diagnostics without a token position
	args        []string // argv, spec 4.4's argv/argc
	quit        *int     // non-nil once quit has been requested
	start       time.Time
	stdinParser *parser // lazily built by `get`, kept across calls
}

// New builds an Interp with every primitive installed and the prelude
// loaded, per the functional-options pattern gothird's own New(opts
// ...VMOption) uses in options.go.
func New(opts ...Option) (*Interp, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	it := &Interp{
		env:   newEnvironment(),
		files: newHandleTable(cfg.stdin, cfg.stdout, cfg.stderr),
		rng:   rand.New(rand.NewSource(cfg.seed)),
		log:   &logio.Logger{},
		args:  cfg.args,
		start: time.Now(),
	}
	it.env.undefError = cfg.undefError
	it.env.autoput = cfg.autoput
	it.env.echo = cfg.echo
	it.log.SetOutput(nopWriteCloser{cfg.stderr})

	installPrimitives(it.env)
	if err := loadPrelude(it); err != nil {
		return nil, err
	}
	return it, nil
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

// Stack exposes a read-only snapshot of the current stack, deepest first,
// for callers outside the package and for test assertions.
func (it *Interp) Stack() []Value {
	out := make([]Value, len(it.stack))
	copy(out, it.stack)
	return out
}

// SetStack replaces the current stack wholesale with a copy of vs.
func (it *Interp) SetStack(vs []Value) { it.stack = append(it.stack[:0], vs...) }

func (it *Interp) push(v Value) { it.stack = append(it.stack, v) }

// reseed reinitializes the pseudo-random source `srand` controls.
func (it *Interp) reseed(seed int64) { it.rng = rand.New(rand.NewSource(seed)) }

func (it *Interp) pop() (Value, bool) {
	n := len(it.stack)
	if n == 0 {
		return Value{}, false
	}
	v := it.stack[n-1]
	it.stack = it.stack[:n-1]
	return v, true
}

func (it *Interp) top() (Value, bool) {
	n := len(it.stack)
	if n == 0 {
		return Value{}, false
	}
	return it.stack[n-1], true
}

// popN pops exactly n values, deepest first in the returned slice, or
// fails with StackUnderflowError leaving the stack untouched (spec 3.2's
// "an attempt to execute a primitive whose preconditions are unmet fails
// ... and leaves the stack unchanged").
func (it *Interp) popN(op string, n int) ([]Value, error) {
	if len(it.stack) < n {
		return nil, &StackUnderflowError{Op: op, Required: n, Available: len(it.stack)}
	}
	start := len(it.stack) - n
	vs := append([]Value(nil), it.stack[start:]...)
	it.stack = it.stack[:start]
	return vs, nil
}

func typeErr(op, expected string, got Value) error {
	return &TypeError{Op: op, Expected: expected, Actual: got.Kind().String()}
}

func (it *Interp) popList(op string) (Value, error) {
	vs, err := it.popN(op, 1)
	if err != nil {
		return Value{}, err
	}
	if vs[0].Kind() != List {
		it.push(vs[0])
		return Value{}, typeErr(op, "list", vs[0])
	}
	return vs[0], nil
}

// contFrame is one level of the explicit continuation stack spec section
// 4.3 requires ("An explicit auxiliary stack of pending term sequences ...
// is required"). seq[idx:] is the work remaining at this level.
type contFrame struct {
	seq []Value
	idx int
}

// Exec runs seq against the interpreter's live stack. It is the evaluator
// core loop (spec 4.3): literals push, symbols resolve to a primitive
// (invoked directly) or a user body (entered as a new, or tail-replaced,
// continuation frame). A user word applied in tail position replaces the
// current frame rather than nesting a new one, so a chain of tail calls
// runs in constant Go stack depth regardless of how deep the Joy-level
// call chain goes.
func (it *Interp) Exec(seq []Value) error {
	conts := []contFrame{{seq: seq}}
	for len(conts) > 0 {
		top := &conts[len(conts)-1]
		if top.idx >= len(top.seq) {
			conts = conts[:len(conts)-1]
			continue
		}
		v := top.seq[top.idx]
		top.idx++
		if v.Kind() != Symbol {
			it.push(v)
			continue
		}

		id := v.symbolVal()
		def, ok := it.env.lookup(id)
		if !ok {
			if it.env.undefError {
				return &UndefinedSymbolError{Word: it.env.symbolName(id)}
			}
			continue
		}
		if def.isPrimitive() {
			if err := def.prim(it); err != nil {
				return err
			}
			if it.quit != nil {
				return &QuitError{Code: *it.quit}
			}
			continue
		}

		if top.idx >= len(top.seq) {
			*top = contFrame{seq: def.body}
		} else {
			conts = append(conts, contFrame{seq: def.body})
		}
	}
	return nil
}

// installDef installs one DEFINE/LIBRA definition, resolving any forward
// references the body already contains through the shared symbol table.
func (it *Interp) installDef(d userDef) {
	it.env.defineUser(d.id, d.body)
}

// runPhrase installs a definition set or evaluates a term sequence,
// isolating any Go-level panic into an error the way gothird's
// internal/panicerr.Recover isolates a VM step (core.go's use of Recover
// around each instruction): a bug in one primitive should not crash the
// whole session, only fail the phrase that triggered it.
func (it *Interp) runPhrase(p *astPhrase) error {
	if p.kind == phraseDefs {
		for _, d := range p.defs {
			it.installDef(d)
		}
		return nil
	}
	return panicerr.Recover("joy.Exec", func() error {
		return it.Exec(p.term)
	})
}

// Run reads phrases from r (named name, for diagnostics) until EOF,
// executing each one and reporting any non-quit runtime error through the
// configured logger before continuing to the next phrase. A parse error is
// reported the same way but ends the run: the rest of r is not read. It
// returns the QuitError if the program executed quit, or nil at end of
// input or after a parse error.
func (it *Interp) Run(name string, r io.Reader) error {
	it.name = name
	lx := newLexer(name, r)
	p := newParser(it.env, lx)
	for {
		ph, err := p.nextPhrase()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			it.report(err)
			return nil
		}
		if err := it.runPhrase(ph); err != nil {
			if qe, ok := err.(*QuitError); ok {
				return qe
			}
			it.report(err)
			continue
		}
		if it.env.autoput {
			if v, ok := it.top(); ok {
				it.log.Printf("", "%s", FormatValue(v, it.env.syms))
			}
		}
		if it.env.echo >= 2 {
			it.log.Printf("", "%s", stackSnapshot(it.stack))
		}
	}
}

func (it *Interp) report(err error) {
	it.log.Printf("", "%s", ReportDiagnostic(err))
}
