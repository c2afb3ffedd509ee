package joy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArithIntPromotion(t *testing.T) {
	it, _ := newTestInterp(t)
	assert.Equal(t, mkInt(5), top(t, runOK(t, it, "2 3 + .")))

	it2, _ := newTestInterp(t)
	assert.Equal(t, mkFloat(5.5), top(t, runOK(t, it2, "2 3.5 + .")), "mixed int/float promotes to float")
}

func TestArithDivisionByZeroLeavesStackUntouched(t *testing.T) {
	it, _ := newTestInterp(t)
	err := mustExec(t, it, "1 0 / .")
	require.Error(t, err)
	var domErr *DomainError
	require.ErrorAs(t, err, &domErr)
	assert.Equal(t, []Value{mkInt(1), mkInt(0)}, it.Stack())
}

func TestArithMaxMin(t *testing.T) {
	it, _ := newTestInterp(t)
	assert.Equal(t, mkInt(7), top(t, runOK(t, it, "3 7 max .")))

	it2, _ := newTestInterp(t)
	assert.Equal(t, mkInt(3), top(t, runOK(t, it2, "3 7 min .")))
}

func TestDivQuotientAndRemainder(t *testing.T) {
	it, _ := newTestInterp(t)
	stack := runOK(t, it, "7 2 div .")
	assert.Equal(t, []Value{mkInt(3), mkInt(1)}, stack)
}

func TestSignNegAbs(t *testing.T) {
	it, _ := newTestInterp(t)
	assert.Equal(t, mkInt(-1), top(t, runOK(t, it, "-5 sign .")))

	it2, _ := newTestInterp(t)
	assert.Equal(t, mkInt(0), top(t, runOK(t, it2, "0 sign .")))

	it3, _ := newTestInterp(t)
	assert.Equal(t, mkInt(5), top(t, runOK(t, it3, "-5 neg .")))

	it4, _ := newTestInterp(t)
	assert.Equal(t, mkInt(5), top(t, runOK(t, it4, "-5 abs .")))
}

func TestPredSucc(t *testing.T) {
	it, _ := newTestInterp(t)
	assert.Equal(t, mkInt(4), top(t, runOK(t, it, "5 pred .")))

	it2, _ := newTestInterp(t)
	assert.Equal(t, mkInt(6), top(t, runOK(t, it2, "5 succ .")))
}

func TestFloatMathFunctions(t *testing.T) {
	it, _ := newTestInterp(t)
	v := top(t, runOK(t, it, "0.0 sin ."))
	assert.InDelta(t, 0.0, v.floatVal(), 1e-9)

	it2, _ := newTestInterp(t)
	v2 := top(t, runOK(t, it2, "4.0 sqrt ."))
	assert.InDelta(t, 2.0, v2.floatVal(), 1e-9)

	it3, _ := newTestInterp(t)
	v3 := top(t, runOK(t, it3, "2.0 3.0 pow ."))
	assert.InDelta(t, 8.0, v3.floatVal(), 1e-9)
}

func TestFrexpAndModf(t *testing.T) {
	it, _ := newTestInterp(t)
	stack := runOK(t, it, "6.0 frexp .")
	require.Len(t, stack, 2)
	assert.InDelta(t, 0.75, stack[0].floatVal(), 1e-9)
	assert.Equal(t, mkInt(3), stack[1])

	it2, _ := newTestInterp(t)
	stack2 := runOK(t, it2, "3.75 modf .")
	require.Len(t, stack2, 2)
	assert.InDelta(t, 3.0, stack2[0].floatVal(), 1e-9)
	assert.InDelta(t, 0.75, stack2[1].floatVal(), 1e-9)
}
