package joy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNullaryAppendsWithoutConsuming(t *testing.T) {
	it, _ := newTestInterp(t)
	stack := runOK(t, it, "5 [1 2 +] nullary .")
	assert.Equal(t, []Value{mkInt(5), mkInt(3)}, stack)
}

func TestUnaryReplacesTop(t *testing.T) {
	it, _ := newTestInterp(t)
	stack := runOK(t, it, "5 [1 +] unary .")
	assert.Equal(t, []Value{mkInt(6)}, stack)
}

func TestBinaryConsumesTwo(t *testing.T) {
	it, _ := newTestInterp(t)
	stack := runOK(t, it, "3 4 [+] binary .")
	assert.Equal(t, []Value{mkInt(7)}, stack)
}

func TestTernaryConsumesThree(t *testing.T) {
	it, _ := newTestInterp(t)
	stack := runOK(t, it, "1 2 3 [+ +] ternary .")
	assert.Equal(t, []Value{mkInt(6)}, stack)
}

func TestUnary2AppliesIndependently(t *testing.T) {
	it, _ := newTestInterp(t)
	stack := runOK(t, it, "10 20 [1 +] unary2 .")
	assert.Equal(t, []Value{mkInt(11), mkInt(21)}, stack)
}

func TestUnary3AppliesIndependently(t *testing.T) {
	it, _ := newTestInterp(t)
	stack := runOK(t, it, "1 2 3 [dup *] unary3 .")
	assert.Equal(t, []Value{mkInt(1), mkInt(4), mkInt(9)}, stack)
}

func TestUnary4AppliesIndependently(t *testing.T) {
	it, _ := newTestInterp(t)
	stack := runOK(t, it, "1 2 3 4 [dup *] unary4 .")
	assert.Equal(t, []Value{mkInt(1), mkInt(4), mkInt(9), mkInt(16)}, stack)
}
