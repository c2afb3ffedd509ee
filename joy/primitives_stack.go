package joy

// Stack-shuffling primitives, spec 4.4's first bullet. Grounded on
// gothird's own stack-shuffle words in first.go (SWAP, DROP, DUP, OVER,
// ROT), generalized from FIRST's single memory-cell values to Joy's
// heterogeneous Value and extended with the Joy-specific rollup/rolldown
// naming and the "…d" dip-beneath-top family.

func opDup(it *Interp) error {
	v, ok := it.top()
	if !ok {
		return &StackUnderflowError{Op: "dup", Required: 1, Available: 0}
	}
	it.push(v)
	return nil
}

func opSwap(it *Interp) error {
	vs, err := it.popN("swap", 2)
	if err != nil {
		return err
	}
	it.push(vs[1])
	it.push(vs[0])
	return nil
}

func opPop(it *Interp) error {
	_, err := it.popN("pop", 1)
	return err
}

// rollup: X Y Z -> Z X Y
func opRollup(it *Interp) error {
	vs, err := it.popN("rollup", 3)
	if err != nil {
		return err
	}
	it.push(vs[2])
	it.push(vs[0])
	it.push(vs[1])
	return nil
}

// rolldown: X Y Z -> Y Z X
func opRolldown(it *Interp) error {
	vs, err := it.popN("rolldown", 3)
	if err != nil {
		return err
	}
	it.push(vs[1])
	it.push(vs[2])
	it.push(vs[0])
	return nil
}

// rotate: X Y Z -> Z Y X
func opRotate(it *Interp) error {
	vs, err := it.popN("rotate", 3)
	if err != nil {
		return err
	}
	it.push(vs[2])
	it.push(vs[1])
	it.push(vs[0])
	return nil
}

func opPopd(it *Interp) error {
	vs, err := it.popN("popd", 2)
	if err != nil {
		return err
	}
	it.push(vs[1])
	return nil
}

func opDupd(it *Interp) error {
	vs, err := it.popN("dupd", 2)
	if err != nil {
		return err
	}
	it.push(vs[0])
	it.push(vs[0])
	it.push(vs[1])
	return nil
}

func opSwapd(it *Interp) error {
	vs, err := it.popN("swapd", 3)
	if err != nil {
		return err
	}
	it.push(vs[1])
	it.push(vs[0])
	it.push(vs[2])
	return nil
}

// over: X Y -> X Y X
func opOver(it *Interp) error {
	vs, err := it.popN("over", 2)
	if err != nil {
		return err
	}
	it.push(vs[0])
	it.push(vs[1])
	it.push(vs[0])
	return nil
}

// dup2: X Y -> X Y X Y
func opDup2(it *Interp) error {
	vs, err := it.popN("dup2", 2)
	if err != nil {
		return err
	}
	it.push(vs[0])
	it.push(vs[1])
	it.push(vs[0])
	it.push(vs[1])
	return nil
}

// stack pushes the whole stack as a list whose first element is the
// current top, per spec 9's stack-as-aggregate representation (the same
// one `infra` uses).
func opStack(it *Interp) error {
	it.push(it.stackAsList())
	return nil
}

func (it *Interp) stackAsList() Value {
	n := len(it.stack)
	out := make([]Value, n)
	for i := 0; i < n; i++ {
		out[i] = it.stack[n-1-i]
	}
	return mkList(out)
}

// unstack replaces the entire stack with the contents of a list, in the
// same first-element-is-top representation `stack` produces.
func opUnstack(it *Interp) error {
	v, err := it.popList("unstack")
	if err != nil {
		return err
	}
	items := v.listVal()
	newStack := make([]Value, len(items))
	for i, e := range items {
		newStack[len(items)-1-i] = e
	}
	it.stack = newStack
	return nil
}

func opID(it *Interp) error { return nil }

// choice: B T F -> T or F, selecting a value rather than executing a
// quotation (branch's non-executing sibling).
func opChoice(it *Interp) error {
	vs, err := it.popN("choice", 3)
	if err != nil {
		return err
	}
	b, t, f := vs[0], vs[1], vs[2]
	if b.Kind() != Bool {
		it.stack = append(it.stack, vs...)
		return typeErr("choice", "boolean", b)
	}
	if b.boolVal() {
		it.push(t)
	} else {
		it.push(f)
	}
	return nil
}
