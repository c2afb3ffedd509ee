package joy

// arityOp implements the shared shape of `nullary`, `unary`, `binary`, and
// `ternary`: pop [P], run it against a copy of the live stack (which still
// holds the k arguments the combinator's name promises), then replace the
// stack with (pre-evaluation stack minus those k elements) plus the single
// top result, per spec 4.3's "Arity combinators" paragraph.
func arityOp(it *Interp, op string, k int) error {
	q, err := popQuote(it, op)
	if err != nil {
		return err
	}
	if len(it.stack) < k {
		it.push(q)
		return &StackUnderflowError{Op: op, Required: k + 1, Available: len(it.stack) + 1}
	}
	pre := append([]Value(nil), it.stack...)
	top, ok, err := it.runOnCopy(q.listVal())
	if err != nil {
		return err
	}
	if !ok {
		return &StackUnderflowError{Op: op, Required: 1, Available: 0}
	}
	it.stack = append(pre[:len(pre)-k], top)
	return nil
}

func opNullary(it *Interp) error { return arityOp(it, "nullary", 0) }
func opUnary(it *Interp) error   { return arityOp(it, "unary", 1) }
func opBinary(it *Interp) error  { return arityOp(it, "binary", 2) }
func opTernary(it *Interp) error { return arityOp(it, "ternary", 3) }

// arityKOp implements `unaryK` (K=2,3,4): pop [P] and k arguments, then run
// [P] once per argument against a stack identical to what remained after
// removing all k arguments, but with that one argument placed back on top;
// collect each invocation's top result, and push all k results in their
// original order.
func arityKOp(it *Interp, op string, k int) error {
	q, err := popQuote(it, op)
	if err != nil {
		return err
	}
	args, err := it.popN(op, k)
	if err != nil {
		it.push(q)
		return err
	}
	base := append([]Value(nil), it.stack...)
	results := make([]Value, k)
	for i, a := range args {
		it.stack = append(append([]Value(nil), base...), a)
		if err := it.Exec(q.listVal()); err != nil {
			it.stack = base
			return err
		}
		top, ok := it.pop()
		if !ok {
			it.stack = base
			return &StackUnderflowError{Op: op, Required: 1, Available: 0}
		}
		results[i] = top
	}
	it.stack = base
	for _, r := range results {
		it.push(r)
	}
	return nil
}

func opUnary2(it *Interp) error { return arityKOp(it, "unary2", 2) }
func opUnary3(it *Interp) error { return arityKOp(it, "unary3", 3) }
func opUnary4(it *Interp) error { return arityKOp(it, "unary4", 4) }
