package joy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSecondThirdFourth(t *testing.T) {
	it, _ := newTestInterp(t)
	assert.Equal(t, mkInt(2), top(t, runOK(t, it, "[1 2 3] second .")))

	it2, _ := newTestInterp(t)
	assert.Equal(t, mkInt(3), top(t, runOK(t, it2, "[1 2 3 4] third .")))

	it3, _ := newTestInterp(t)
	assert.Equal(t, mkInt(4), top(t, runOK(t, it3, "[1 2 3 4] fourth .")))
}

func TestUnitAndPair(t *testing.T) {
	it, _ := newTestInterp(t)
	assert.Equal(t, mkList([]Value{mkInt(5)}), top(t, runOK(t, it, "5 unit .")))

	it2, _ := newTestInterp(t)
	assert.Equal(t, mkList([]Value{mkInt(1), mkInt(2)}), top(t, runOK(t, it2, "1 2 pair .")))
}

func TestSumProductAverage(t *testing.T) {
	it, _ := newTestInterp(t)
	assert.Equal(t, mkInt(10), top(t, runOK(t, it, "[1 2 3 4] sum .")))

	it2, _ := newTestInterp(t)
	assert.Equal(t, mkInt(24), top(t, runOK(t, it2, "[1 2 3 4] product .")))

	it3, _ := newTestInterp(t)
	assert.Equal(t, mkInt(2), top(t, runOK(t, it3, "[1 2 3 4] average .")))
}

func TestReverseAndPalindrome(t *testing.T) {
	it, _ := newTestInterp(t)
	assert.Equal(t, mkList([]Value{mkInt(3), mkInt(2), mkInt(1)}), top(t, runOK(t, it, "[1 2 3] reverse .")))

	it2, _ := newTestInterp(t)
	assert.Equal(t, mkBool(true), top(t, runOK(t, it2, "[1 2 1] palindrome .")))

	it3, _ := newTestInterp(t)
	assert.Equal(t, mkBool(false), top(t, runOK(t, it3, "[1 2 3] palindrome .")))
}

func TestSomeAndAll(t *testing.T) {
	it, _ := newTestInterp(t)
	assert.Equal(t, mkBool(true), top(t, runOK(t, it, "[1 3 4] [2 rem 0 =] some .")))

	it2, _ := newTestInterp(t)
	assert.Equal(t, mkBool(false), top(t, runOK(t, it2, "[1 3 5] [2 rem 0 =] some .")))

	it3, _ := newTestInterp(t)
	assert.Equal(t, mkBool(true), top(t, runOK(t, it3, "[2 4 6] [2 rem 0 =] all .")))

	it4, _ := newTestInterp(t)
	assert.Equal(t, mkBool(false), top(t, runOK(t, it4, "[1 2 3] [2 rem 0 =] all .")))
}

func TestMaxListAndMinList(t *testing.T) {
	it, _ := newTestInterp(t)
	assert.Equal(t, mkInt(5), top(t, runOK(t, it, "[3 1 4 1 5] max_list .")))

	it2, _ := newTestInterp(t)
	assert.Equal(t, mkInt(1), top(t, runOK(t, it2, "[3 1 4 1 5] min_list .")))
}
