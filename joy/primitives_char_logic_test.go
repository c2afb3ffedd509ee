package joy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrdChrRoundTrip(t *testing.T) {
	it, _ := newTestInterp(t)
	assert.Equal(t, mkInt(97), top(t, runOK(t, it, "'a ord .")))

	it2, _ := newTestInterp(t)
	assert.Equal(t, mkChar('a'), top(t, runOK(t, it2, "'a ord chr .")))
}

func TestLogicalAndOrXorOnBools(t *testing.T) {
	it, _ := newTestInterp(t)
	assert.Equal(t, mkBool(false), top(t, runOK(t, it, "true false and .")))

	it2, _ := newTestInterp(t)
	assert.Equal(t, mkBool(true), top(t, runOK(t, it2, "true false or .")))

	it3, _ := newTestInterp(t)
	assert.Equal(t, mkBool(true), top(t, runOK(t, it3, "true false xor .")))

	it4, _ := newTestInterp(t)
	assert.Equal(t, mkBool(false), top(t, runOK(t, it4, "true not .")))
}

func TestSetAndOrXor(t *testing.T) {
	// {1 3 5 7} = bits 1,3,5,7; {2 3 5 8} = bits 2,3,5,8; shared bits 3,5.
	it, _ := newTestInterp(t)
	assert.Equal(t, mkSet(1<<3|1<<5), top(t, runOK(t, it, "{1 3 5 7} {2 3 5 8} and .")))

	it2, _ := newTestInterp(t)
	assert.Equal(t, mkSet(1<<1|1<<2|1<<3|1<<5|1<<7|1<<8), top(t, runOK(t, it2, "{1 3 5 7} {2 3 5 8} or .")))
}

func TestSetNotIsInvolution(t *testing.T) {
	it, _ := newTestInterp(t)
	stack := runOK(t, it, "{1 3 5} dup not not .")
	assert.Equal(t, top(t, stack), stack[len(stack)-2], "not applied twice must return the original set")
}

func TestSetXorWithSelfIsEmpty(t *testing.T) {
	it, _ := newTestInterp(t)
	stack := runOK(t, it, "{1 3 5} dup xor .")
	assert.Equal(t, mkSet(0), top(t, stack))
}
