/* Package joy implements the core of a Joy interpreter.

Joy is a stack-based, concatenative, purely functional language. A Joy
program is a sequence of factors -- literals, symbols, and quotations --
and running it denotes a function from one stack to another. Concatenating
two programs denotes composing their functions:

	P Q  ==  (Q . P)   -- as functions from stacks to stacks

There is no other kind of expression. A quotation, written [ ... ], is
just a list value; it becomes a program only at the point some combinator
chooses to execute it. This is why the reader (token.go, reader.go) shares
its result type with the value model (value.go): parsing a quotation and
parsing a piece of data are the same act.

This package covers the CORE only: the value model, the reader, the word
environment, the evaluator and its combinators, and the primitive library.
A command-line launcher lives in cmd/joy; it is a thin, replaceable
consumer of this package, not part of the language semantics.

A short tour of the pieces:

  - value.go declares the tagged Value type shared by every component.
  - symbol.go interns SYMBOL values and word names into small integers.
  - set.go, sequence.go, file.go hold the per-kind behavior for the three
    aggregate-ish or resource-ish value kinds.
  - token.go and reader.go turn source text into a tree of Values.
  - env.go is the symbol -> definition table plus the three runtime flags.
  - eval.go is the stack machine: it walks a term sequence, pushing
    literals and dispatching symbols, using an explicit continuation
    stack so that deeply tail-recursive Joy programs do not grow the Go
    call stack.
  - combinators.go and arity.go implement the higher-order words that
    re-enter the evaluator.
  - primitives_*.go implement the roughly two hundred named operations,
    grouped the way spec section 4.4 groups them.
  - prelude.go defines a handful of words in Joy itself, the same way a
    Joy system bootstraps library words from a small kernel.
  - errors.go and report.go classify and render diagnostics.
  - options.go configures a new Interp.

None of this is safe for concurrent use by multiple goroutines against the
same Interp; see section 5 of the specification.
*/
package joy
