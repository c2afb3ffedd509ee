package joy

import (
	"io"
	"strings"
)

// preludeSource holds the small set of library words defined in Joy
// itself rather than as Go primitives, grounded on gothird's own
// self-hosting bootstrap (third.go builds its dictionary from a Go string
// constant of FORTH source run through the same reader/evaluator the rest
// of the session uses). Every word here is derived purely from primitives
// already registered by installPrimitives, so correctness rests on the
// combinators, not on any new machinery.
const preludeSource = `
DEFINE
  second == rest first;
  third == rest rest first;
  fourth == rest rest rest first;
  unit == [] cons;
  pair == [] cons cons;
  sum == 0 [+] fold;
  product == 1 [*] fold;
  average == dup sum swap size /;
  reverse == [] swap [swons] step;
  palindrome == dup reverse =;
  some == filter null not;
  all == [not] concat filter null;
  max_list == uncons swap [max] fold;
  min_list == uncons swap [min] fold
END
`

// loadPrelude parses and installs preludeSource's definitions directly,
// bypassing Run's per-phrase error reporting: a bug in the prelude is a
// programming error in the interpreter itself and must fail New loudly
// rather than being swallowed as a user-visible diagnostic.
func loadPrelude(it *Interp) error {
	lx := newLexer("prelude", strings.NewReader(preludeSource))
	p := newParser(it.env, lx)
	for {
		ph, err := p.nextPhrase()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if err := it.runPhrase(ph); err != nil {
			return err
		}
	}
}
