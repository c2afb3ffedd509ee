package joy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStackShuffle(t *testing.T) {
	cases := []struct {
		name string
		prog string
		want []Value
	}{
		{"dup", "1 dup .", nil},
		{"swap", "1 2 swap .", []Value{mkInt(2), mkInt(1)}},
		{"pop", "1 2 pop .", []Value{mkInt(1)}},
		{"rollup", "1 2 3 rollup .", []Value{mkInt(3), mkInt(1), mkInt(2)}},
		{"rolldown", "1 2 3 rolldown .", []Value{mkInt(2), mkInt(3), mkInt(1)}},
		{"rotate", "1 2 3 rotate .", []Value{mkInt(3), mkInt(2), mkInt(1)}},
		{"popd", "1 2 popd .", []Value{mkInt(2)}},
		{"dupd", "1 2 dupd .", []Value{mkInt(1), mkInt(1), mkInt(2)}},
		{"swapd", "1 2 3 swapd .", []Value{mkInt(2), mkInt(1), mkInt(3)}},
		{"over", "1 2 over .", []Value{mkInt(1), mkInt(2), mkInt(1)}},
		{"dup2", "1 2 dup2 .", []Value{mkInt(1), mkInt(2), mkInt(1), mkInt(2)}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			it, _ := newTestInterp(t)
			// prog keeps its trailing "." because mustExec's parser needs it
			// as the phrase terminator.
			stack := runOK(t, it, c.prog)
			if c.name == "dup" {
				require.Equal(t, []Value{mkInt(1), mkInt(1)}, stack)
				return
			}
			assert.Equal(t, c.want, stack)
		})
	}
}

func TestStackAndUnstackRoundTrip(t *testing.T) {
	it, _ := newTestInterp(t)
	stack := runOK(t, it, "1 2 3 stack .")
	// stack pushes a list whose first element is the current top: 3.
	assert.Equal(t, mkList([]Value{mkInt(3), mkInt(2), mkInt(1)}), top(t, stack))

	it2, _ := newTestInterp(t)
	stack2 := runOK(t, it2, "[3 2 1] unstack .")
	assert.Equal(t, []Value{mkInt(1), mkInt(2), mkInt(3)}, stack2)
}

func TestChoice(t *testing.T) {
	it, _ := newTestInterp(t)
	stack := runOK(t, it, "true 1 2 choice .")
	assert.Equal(t, mkInt(1), top(t, stack))

	it2, _ := newTestInterp(t)
	stack2 := runOK(t, it2, "false 1 2 choice .")
	assert.Equal(t, mkInt(2), top(t, stack2))
}

func TestPopUnderflow(t *testing.T) {
	it, _ := newTestInterp(t)
	err := mustExec(t, it, "pop .")
	require.Error(t, err)
	var underflow *StackUnderflowError
	require.ErrorAs(t, err, &underflow)
	assert.Equal(t, "pop", underflow.Op)
	assert.Empty(t, it.Stack(), "a failed primitive must leave the stack unchanged")
}
