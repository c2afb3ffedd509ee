package joy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestICombinator(t *testing.T) {
	it, _ := newTestInterp(t)
	stack := runOK(t, it, "1 [2 +] i .")
	assert.Equal(t, mkInt(3), top(t, stack))
}

func TestXCombinatorKeepsQuotation(t *testing.T) {
	it, _ := newTestInterp(t)
	// x re-pushes [P] before running it, so P must not reach past its own
	// quotation to find operands; [1 2 +] is self-contained.
	stack := runOK(t, it, "[1 2 +] x .")
	require.Len(t, stack, 2)
	assert.Equal(t, mkList([]Value{mkInt(1), mkInt(2), mkSymbol(it.env.intern("+"))}), stack[0])
	assert.Equal(t, mkInt(3), stack[1])
}

func TestDip(t *testing.T) {
	it, _ := newTestInterp(t)
	stack := runOK(t, it, "1 2 [10 +] dip .")
	assert.Equal(t, []Value{mkInt(11), mkInt(2)}, stack)
}

func TestBranch(t *testing.T) {
	it, _ := newTestInterp(t)
	stack := runOK(t, it, "true [1] [2] branch .")
	assert.Equal(t, mkInt(1), top(t, stack))

	it2, _ := newTestInterp(t)
	stack2 := runOK(t, it2, "false [1] [2] branch .")
	assert.Equal(t, mkInt(2), top(t, stack2))
}

func TestIfte(t *testing.T) {
	it, _ := newTestInterp(t)
	stack := runOK(t, it, "500 [1000 >] [2 /] [3 *] ifte .")
	assert.Equal(t, mkInt(1500), top(t, stack))
}

func TestIfteDiscardsPredicateStackEffect(t *testing.T) {
	it, _ := newTestInterp(t)
	// the predicate quotation pushes an extra 99 while testing; ifte must
	// throw that copy away and branch against the *saved* stack.
	stack := runOK(t, it, "5 [99 pop true] [1] [2] ifte .")
	assert.Equal(t, []Value{mkInt(5), mkInt(1)}, stack)
}

func TestCond(t *testing.T) {
	it, _ := newTestInterp(t)
	stack := runOK(t, it, "2 [ [[1 =] [100]] [[2 =] [200]] [300] ] cond .")
	assert.Equal(t, mkInt(200), top(t, stack))

	it2, _ := newTestInterp(t)
	stack2 := runOK(t, it2, "9 [ [[1 =] [100]] [[2 =] [200]] [300] ] cond .")
	assert.Equal(t, mkInt(300), top(t, stack2))
}

func TestWhile(t *testing.T) {
	it, _ := newTestInterp(t)
	stack := runOK(t, it, "1 [dup 5 <] [dup 1 +] while .")
	assert.Equal(t, []Value{mkInt(1), mkInt(2), mkInt(3), mkInt(4), mkInt(5)}, stack)
}

func TestStep(t *testing.T) {
	it, _ := newTestInterp(t)
	stack := runOK(t, it, "0 [1 2 3] [+] step .")
	assert.Equal(t, mkInt(6), top(t, stack))
}

func TestMapPreservesKindAndSize(t *testing.T) {
	it, _ := newTestInterp(t)
	stack := runOK(t, it, "[1 2 3 4] [dup *] map .")
	assert.Equal(t, mkList([]Value{mkInt(1), mkInt(4), mkInt(9), mkInt(16)}), top(t, stack))
}

func TestFoldSum(t *testing.T) {
	it, _ := newTestInterp(t)
	stack := runOK(t, it, "[1 2 3 4] 0 [+] fold .")
	assert.Equal(t, mkInt(10), top(t, stack))
}

func TestFilterAndSplit(t *testing.T) {
	it, _ := newTestInterp(t)
	stack := runOK(t, it, "[1 2 3 4 5 6] [2 rem 0 =] filter .")
	assert.Equal(t, mkList([]Value{mkInt(2), mkInt(4), mkInt(6)}), top(t, stack))

	it2, _ := newTestInterp(t)
	stack2 := runOK(t, it2, "[1 2 3 4 5 6] [2 rem 0 =] split .")
	require.Len(t, stack2, 2)
	assert.Equal(t, mkList([]Value{mkInt(2), mkInt(4), mkInt(6)}), stack2[0])
	assert.Equal(t, mkList([]Value{mkInt(1), mkInt(3), mkInt(5)}), stack2[1])
}

func TestTimes(t *testing.T) {
	it, _ := newTestInterp(t)
	stack := runOK(t, it, "1 3 [dup *] times .")
	assert.Equal(t, mkInt(1), top(t, stack), "1*1*1... squaring 1 stays 1, but the loop must still run 3 times without error")

	it2, _ := newTestInterp(t)
	stack2 := runOK(t, it2, "2 4 [2 *] times .")
	assert.Equal(t, mkInt(32), top(t, stack2))
}

func TestLinrecFlatten(t *testing.T) {
	it, _ := newTestInterp(t)
	stack := runOK(t, it, "[[1 2] [3] [4 5 6]] [null] [] [uncons] [concat] linrec .")
	assert.Equal(t, mkList([]Value{mkInt(1), mkInt(2), mkInt(3), mkInt(4), mkInt(5), mkInt(6)}), top(t, stack))
}

func TestTailrecCountdown(t *testing.T) {
	it, _ := newTestInterp(t)
	// counts a large N down to 0 with no growth in Go call depth; a plain
	// recursive linrec-shaped equivalent would blow the goroutine stack at
	// this depth if tailrec were not compiled to an iterative loop.
	stack := runOK(t, it, "100000 [dup 0 =] [] [1 -] tailrec .")
	assert.Equal(t, mkInt(0), top(t, stack))
}

func TestBinrecFibonacci(t *testing.T) {
	it, _ := newTestInterp(t)
	// the textbook divide-and-conquer definition: small n is its own
	// answer, otherwise split into (n-1, n-2) and add their results.
	stack := runOK(t, it, "5 [1 <=] [] [pred dup pred] [+] binrec .")
	assert.Equal(t, mkInt(5), top(t, stack))
}

func TestPrimrecFactorial(t *testing.T) {
	it, _ := newTestInterp(t)
	stack := runOK(t, it, "5 [1] [*] primrec .")
	assert.Equal(t, mkInt(120), top(t, stack))
}

func TestPrimrecOnList(t *testing.T) {
	// counts elements: each level combines its first-popped element with the
	// recursive result by discarding the element and incrementing the count.
	it, _ := newTestInterp(t)
	stack := runOK(t, it, "[1 2 3] [0] [popd succ] primrec .")
	assert.Equal(t, mkInt(3), top(t, stack))
}

func TestGenrecFactorial(t *testing.T) {
	it, _ := newTestInterp(t)
	// the canonical genrec factorial: base case increments 0 to 1 via succ,
	// otherwise decrement and let the reconstructed [p t r1 r2 genrec]
	// quotation recurse on the decremented value before multiplying.
	stack := runOK(t, it, "5 [null] [succ] [dup pred] [i *] genrec .")
	assert.Equal(t, mkInt(120), top(t, stack))
}

func TestCondlinrec(t *testing.T) {
	it, _ := newTestInterp(t)
	stack := runOK(t, it, "3 [ [[dup 0 =] [pop 0]] [[true] [dup 1 -] [1 +]] ] condlinrec .")
	assert.Equal(t, mkInt(3), top(t, stack))
}

func TestInfraMatchesRest(t *testing.T) {
	it, _ := newTestInterp(t)
	stack := runOK(t, it, "[1 2 3] [pop] infra .")
	assert.Equal(t, mkList([]Value{mkInt(2), mkInt(3)}), top(t, stack), "removing the top of A-as-stack (A's first element) must equal A's rest")
}

func TestCleaveRoundTrip(t *testing.T) {
	it, _ := newTestInterp(t)
	stack := runOK(t, it, "[1 2 3] [first] [rest] cleave cons .")
	assert.Equal(t, mkList([]Value{mkInt(1), mkInt(2), mkInt(3)}), top(t, stack))
}

func TestPowerlistFilteredBySize(t *testing.T) {
	it, _ := newTestInterp(t)
	stack := runOK(t, it, "[1 2 3] powerlist [size 2 =] filter .")
	want := mkList([]Value{
		mkList([]Value{mkInt(1), mkInt(2)}),
		mkList([]Value{mkInt(1), mkInt(3)}),
		mkList([]Value{mkInt(2), mkInt(3)}),
	})
	assert.Equal(t, want, top(t, stack))
}
