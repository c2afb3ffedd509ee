package joy

// This file implements spec section 4.3's combinators. Each one is a
// primFunc registered under its Joy name by installPrimitives
// (primitives_meta.go). Two stack disciplines recur throughout, matching
// spec's "Stack-save semantics" paragraph exactly:
//
//   - runOnCopy evaluates a quotation against a snapshot of the stack and
//     restores the original afterward, discarding side effects other than
//     the boolean/result it inspects (ifte, cond, while, map, filter,
//     split, the arity combinators).
//   - the real-stack family (step, fold, times, linrec, tailrec, binrec,
//     genrec, primrec, dip, i, x) evaluate directly against it.stack.

func popQuote(it *Interp, op string) (Value, error) { return it.popList(op) }

// runOnCopy executes q against a saved copy of the stack, then restores
// that copy verbatim (regardless of outcome) and returns whatever
// remained on top of the copy after execution.
func (it *Interp) runOnCopy(q []Value) (Value, bool, error) {
	saved := append([]Value(nil), it.stack...)
	err := it.Exec(q)
	top, ok := it.top()
	it.stack = saved
	return top, ok, err
}

func (it *Interp) boolFromCopy(op string, q []Value) (bool, error) {
	top, ok, err := it.runOnCopy(q)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, &StackUnderflowError{Op: op, Required: 1, Available: 0}
	}
	if top.Kind() != Bool {
		return false, typeErr(op, "boolean", top)
	}
	return top.boolVal(), nil
}

func expectLists(op string, vs []Value) error {
	for _, v := range vs {
		if v.Kind() != List {
			return typeErr(op, "list", v)
		}
	}
	return nil
}

// opI implements `i`: `[P] -> …`.
func opI(it *Interp) error {
	q, err := popQuote(it, "i")
	if err != nil {
		return err
	}
	return it.Exec(q.listVal())
}

// opX implements `x`: `[P] -> [P] …`, i.e. `dup i`.
func opX(it *Interp) error {
	q, err := popQuote(it, "x")
	if err != nil {
		return err
	}
	it.push(q)
	return it.Exec(q.listVal())
}

// opDip implements `dip`: `X [P] -> … X`.
func opDip(it *Interp) error {
	q, err := popQuote(it, "dip")
	if err != nil {
		return err
	}
	x, ok := it.pop()
	if !ok {
		it.push(q)
		return &StackUnderflowError{Op: "dip", Required: 2, Available: 1}
	}
	if err := it.Exec(q.listVal()); err != nil {
		return err
	}
	it.push(x)
	return nil
}

// opBranch implements `branch`: `B [T] [F] -> …`.
func opBranch(it *Interp) error {
	vs, err := it.popN("branch", 3)
	if err != nil {
		return err
	}
	b, t, f := vs[0], vs[1], vs[2]
	if b.Kind() != Bool || t.Kind() != List || f.Kind() != List {
		it.stack = append(it.stack, vs...)
		if b.Kind() != Bool {
			return typeErr("branch", "boolean", b)
		}
		return typeErr("branch", "list", t)
	}
	if b.boolVal() {
		return it.Exec(t.listVal())
	}
	return it.Exec(f.listVal())
}

// opIfte implements `ifte`: `[B] [T] [F] -> …`.
func opIfte(it *Interp) error {
	vs, err := it.popN("ifte", 3)
	if err != nil {
		return err
	}
	b, t, f := vs[0], vs[1], vs[2]
	if err := expectLists("ifte", vs); err != nil {
		it.stack = append(it.stack, vs...)
		return err
	}
	cond, err := it.boolFromCopy("ifte", b.listVal())
	if err != nil {
		return err
	}
	if cond {
		return it.Exec(t.listVal())
	}
	return it.Exec(f.listVal())
}

// opCond implements `cond`: a chain of `[[B] T]` clauses ending in a
// single-element default `[D]`.
func opCond(it *Interp) error {
	clauses, err := popQuote(it, "cond")
	if err != nil {
		return err
	}
	for _, c := range clauses.listVal() {
		if c.Kind() != List {
			return typeErr("cond", "list", c)
		}
		items := c.listVal()
		switch len(items) {
		case 1:
			return it.Exec(items)
		case 2:
			b, t := items[0], items[1]
			if b.Kind() != List || t.Kind() != List {
				return typeErr("cond", "list", b)
			}
			ok, err := it.boolFromCopy("cond", b.listVal())
			if err != nil {
				return err
			}
			if ok {
				return it.Exec(t.listVal())
			}
		default:
			return &DomainError{Op: "cond", Detail: "clause must have 1 or 2 elements"}
		}
	}
	return nil
}

// opWhile implements `while`: `[B] [D] -> …`.
func opWhile(it *Interp) error {
	vs, err := it.popN("while", 2)
	if err != nil {
		return err
	}
	b, d := vs[0], vs[1]
	if err := expectLists("while", vs); err != nil {
		it.stack = append(it.stack, vs...)
		return err
	}
	for {
		cond, err := it.boolFromCopy("while", b.listVal())
		if err != nil {
			return err
		}
		if !cond {
			return nil
		}
		if err := it.Exec(d.listVal()); err != nil {
			return err
		}
	}
}

// opStep implements `step`: `A [P] -> …`, real-stack traversal in
// aggregate order (ascending for sets).
func opStep(it *Interp) error {
	vs, err := it.popN("step", 2)
	if err != nil {
		return err
	}
	a, p := vs[0], vs[1]
	if p.Kind() != List {
		it.stack = append(it.stack, vs...)
		return typeErr("step", "list", p)
	}
	if !a.isAggregate() {
		it.stack = append(it.stack, vs...)
		return typeErr("step", "aggregate", a)
	}
	for _, e := range aggregateElements(a) {
		it.push(e)
		if err := it.Exec(p.listVal()); err != nil {
			return err
		}
	}
	return nil
}

// opMap implements `map`: `A [P] -> B`, run on stack copies per element,
// preserving A's aggregate kind and size.
func opMap(it *Interp) error {
	vs, err := it.popN("map", 2)
	if err != nil {
		return err
	}
	a, p := vs[0], vs[1]
	if p.Kind() != List {
		it.stack = append(it.stack, vs...)
		return typeErr("map", "list", p)
	}
	if !a.isAggregate() {
		it.stack = append(it.stack, vs...)
		return typeErr("map", "aggregate", a)
	}
	elems := aggregateElements(a)
	out := make([]Value, len(elems))
	saved := append([]Value(nil), it.stack...)
	for i, e := range elems {
		it.stack = append([]Value(nil), saved...)
		it.push(e)
		if err := it.Exec(p.listVal()); err != nil {
			it.stack = saved
			return err
		}
		top, ok := it.top()
		if !ok {
			it.stack = saved
			return &StackUnderflowError{Op: "map", Required: 1, Available: 0}
		}
		out[i] = top
	}
	it.stack = saved
	result, err := rebuildAggregate(a, out)
	if err != nil {
		return err
	}
	it.push(result)
	return nil
}

// opFold implements `fold`: `A V0 [P] -> V`, left fold on the real stack.
func opFold(it *Interp) error {
	vs, err := it.popN("fold", 3)
	if err != nil {
		return err
	}
	a, v0, p := vs[0], vs[1], vs[2]
	if p.Kind() != List {
		it.stack = append(it.stack, vs...)
		return typeErr("fold", "list", p)
	}
	if !a.isAggregate() {
		it.stack = append(it.stack, vs...)
		return typeErr("fold", "aggregate", a)
	}
	it.push(v0)
	for _, e := range aggregateElements(a) {
		it.push(e)
		if err := it.Exec(p.listVal()); err != nil {
			return err
		}
	}
	return nil
}

// filterSplit is the shared machinery behind `filter` and `split`: run the
// predicate against a stack copy per element, partitioning by its result.
func (it *Interp) filterSplit(op string, a, p Value) (kept, rejected []Value, err error) {
	for _, e := range aggregateElements(a) {
		saved := append([]Value(nil), it.stack...)
		it.push(e)
		if err := it.Exec(p.listVal()); err != nil {
			it.stack = saved
			return nil, nil, err
		}
		top, ok := it.top()
		it.stack = saved
		if !ok {
			return nil, nil, &StackUnderflowError{Op: op, Required: 1, Available: 0}
		}
		if top.Kind() != Bool {
			return nil, nil, typeErr(op, "boolean", top)
		}
		if top.boolVal() {
			kept = append(kept, e)
		} else {
			rejected = append(rejected, e)
		}
	}
	return kept, rejected, nil
}

// opFilter implements `filter`: `A [P] -> B` (the kept subsequence).
func opFilter(it *Interp) error {
	vs, err := it.popN("filter", 2)
	if err != nil {
		return err
	}
	a, p := vs[0], vs[1]
	if p.Kind() != List || !a.isAggregate() {
		it.stack = append(it.stack, vs...)
		return typeErr("filter", "aggregate/list", a)
	}
	kept, _, err := it.filterSplit("filter", a, p)
	if err != nil {
		return err
	}
	result, err := rebuildAggregate(a, kept)
	if err != nil {
		return err
	}
	it.push(result)
	return nil
}

// opSplit implements `split`: `A [P] -> Kept Rejected`.
func opSplit(it *Interp) error {
	vs, err := it.popN("split", 2)
	if err != nil {
		return err
	}
	a, p := vs[0], vs[1]
	if p.Kind() != List || !a.isAggregate() {
		it.stack = append(it.stack, vs...)
		return typeErr("split", "aggregate/list", a)
	}
	kept, rejected, err := it.filterSplit("split", a, p)
	if err != nil {
		return err
	}
	keptV, err := rebuildAggregate(a, kept)
	if err != nil {
		return err
	}
	rejV, err := rebuildAggregate(a, rejected)
	if err != nil {
		return err
	}
	it.push(keptV)
	it.push(rejV)
	return nil
}

// opTimes implements `times`: `N [P] -> …`, N popped before iterating.
func opTimes(it *Interp) error {
	vs, err := it.popN("times", 2)
	if err != nil {
		return err
	}
	n, p := vs[0], vs[1]
	if n.Kind() != Int || p.Kind() != List {
		it.stack = append(it.stack, vs...)
		if n.Kind() != Int {
			return typeErr("times", "integer", n)
		}
		return typeErr("times", "list", p)
	}
	if n.intVal() < 0 {
		it.stack = append(it.stack, vs...)
		return &DomainError{Op: "times", Detail: "negative repeat count"}
	}
	for i := int64(0); i < n.intVal(); i++ {
		if err := it.Exec(p.listVal()); err != nil {
			return err
		}
	}
	return nil
}

// opLinrec implements `linrec`: `[P] [T] [R1] [R2] -> …`.
func opLinrec(it *Interp) error {
	vs, err := it.popN("linrec", 4)
	if err != nil {
		return err
	}
	if err := expectLists("linrec", vs); err != nil {
		it.stack = append(it.stack, vs...)
		return err
	}
	return it.linrec(vs[0], vs[1], vs[2], vs[3])
}

func (it *Interp) linrec(p, t, r1, r2 Value) error {
	cond, err := it.boolFromCopy("linrec", p.listVal())
	if err != nil {
		return err
	}
	if cond {
		return it.Exec(t.listVal())
	}
	if err := it.Exec(r1.listVal()); err != nil {
		return err
	}
	if err := it.linrec(p, t, r1, r2); err != nil {
		return err
	}
	return it.Exec(r2.listVal())
}

// opTailrec implements `tailrec`: `[P] [T] [R1] -> …`, with implicit
// R2=[]. Unlike linrec, this loops in Go rather than recursing, so Joy
// programs written with unbounded tail recursion through tailrec run in
// constant Go stack depth (spec 4.3: "must be implemented so that depth is
// bounded").
func opTailrec(it *Interp) error {
	vs, err := it.popN("tailrec", 3)
	if err != nil {
		return err
	}
	if err := expectLists("tailrec", vs); err != nil {
		it.stack = append(it.stack, vs...)
		return err
	}
	p, t, r1 := vs[0], vs[1], vs[2]
	for {
		cond, err := it.boolFromCopy("tailrec", p.listVal())
		if err != nil {
			return err
		}
		if cond {
			return it.Exec(t.listVal())
		}
		if err := it.Exec(r1.listVal()); err != nil {
			return err
		}
	}
}

// opBinrec implements `binrec`: `[P] [T] [R1] [R2] -> …`.
func opBinrec(it *Interp) error {
	vs, err := it.popN("binrec", 4)
	if err != nil {
		return err
	}
	if err := expectLists("binrec", vs); err != nil {
		it.stack = append(it.stack, vs...)
		return err
	}
	return it.binrec(vs[0], vs[1], vs[2], vs[3])
}

func (it *Interp) binrec(p, t, r1, r2 Value) error {
	cond, err := it.boolFromCopy("binrec", p.listVal())
	if err != nil {
		return err
	}
	if cond {
		return it.Exec(t.listVal())
	}
	if err := it.Exec(r1.listVal()); err != nil {
		return err
	}
	second, ok := it.pop()
	if !ok {
		return &StackUnderflowError{Op: "binrec", Required: 2, Available: 0}
	}
	first, ok := it.pop()
	if !ok {
		return &StackUnderflowError{Op: "binrec", Required: 2, Available: 1}
	}
	it.push(first)
	if err := it.binrec(p, t, r1, r2); err != nil {
		return err
	}
	it.push(second)
	if err := it.binrec(p, t, r1, r2); err != nil {
		return err
	}
	return it.Exec(r2.listVal())
}

// opGenrec implements `genrec`: `[P] [T] [R1] [R2] -> …`, recursing by
// re-pushing the four quotations plus `genrec` itself rather than a direct
// Go call, exactly as spec 4.3 describes it.
func opGenrec(it *Interp) error {
	vs, err := it.popN("genrec", 4)
	if err != nil {
		return err
	}
	if err := expectLists("genrec", vs); err != nil {
		it.stack = append(it.stack, vs...)
		return err
	}
	p, t, r1, r2 := vs[0], vs[1], vs[2], vs[3]
	cond, err := it.boolFromCopy("genrec", p.listVal())
	if err != nil {
		return err
	}
	if cond {
		return it.Exec(t.listVal())
	}
	if err := it.Exec(r1.listVal()); err != nil {
		return err
	}
	genrecSym := it.env.intern("genrec")
	recur := mkList([]Value{p, t, r1, r2, mkSymbol(genrecSym)})
	it.push(recur)
	return it.Exec(r2.listVal())
}

// condRecClause parses one condlinrec/condnestrec clause into its parts.
// A default clause is `[D]` (one element, treated as terminal); a terminal
// clause is `[[B] T]`; a recursive clause is `[[B] [R1] [R2]]`.
func condRecClause(op string, c Value) (b, t, r1, r2 Value, terminal bool, err error) {
	if c.Kind() != List {
		return Value{}, Value{}, Value{}, Value{}, false, typeErr(op, "list", c)
	}
	items := c.listVal()
	switch len(items) {
	case 1:
		return Value{}, items[0], Value{}, Value{}, true, nil
	case 2:
		return items[0], items[1], Value{}, Value{}, true, nil
	case 3:
		return items[0], Value{}, items[1], items[2], false, nil
	default:
		return Value{}, Value{}, Value{}, Value{}, false, &DomainError{Op: op, Detail: "clause must have 1, 2, or 3 elements"}
	}
}

// condRec implements both `condlinrec` and `condnestrec`, which spec 4.3
// says "share implementation": walk the clause list, evaluate each clause's
// predicate against a stack copy (the final clause is the default and is
// never tested), and on the first match either run its terminal action or
// run R1, recurse on the whole combinator, then R2.
func condRec(it *Interp, op string) error {
	clauses, err := popQuote(it, op)
	if err != nil {
		return err
	}
	items := clauses.listVal()
	for i, c := range items {
		isDefault := i == len(items)-1
		b, t, r1, r2, terminal, err := condRecClause(op, c)
		if err != nil {
			return err
		}
		if !isDefault {
			ok, err := it.boolFromCopy(op, b.listVal())
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
		}
		if terminal {
			return it.Exec(t.listVal())
		}
		if err := it.Exec(r1.listVal()); err != nil {
			return err
		}
		it.push(clauses)
		if err := condRec(it, op); err != nil {
			return err
		}
		return it.Exec(r2.listVal())
	}
	return nil
}

func opCondlinrec(it *Interp) error  { return condRec(it, "condlinrec") }
func opCondnestrec(it *Interp) error { return condRec(it, "condnestrec") }

// opPrimrec implements `primrec`: `X [I] [C] -> R`.
func opPrimrec(it *Interp) error {
	vs, err := it.popN("primrec", 3)
	if err != nil {
		return err
	}
	x, i, c := vs[0], vs[1], vs[2]
	if i.Kind() != List || c.Kind() != List {
		it.stack = append(it.stack, vs...)
		return typeErr("primrec", "list", i)
	}
	return it.primrec(x, i, c)
}

func (it *Interp) primrec(x, initQ, combQ Value) error {
	switch {
	case x.Kind() == Int:
		if x.intVal() == 0 {
			return it.Exec(initQ.listVal())
		}
		it.push(x)
		it.push(mkInt(x.intVal() - 1))
		if err := it.primrecRecurse(initQ, combQ); err != nil {
			return err
		}
		return it.Exec(combQ.listVal())
	case x.isAggregate():
		if seqNull(x) {
			return it.Exec(initQ.listVal())
		}
		first, err := seqFirst("primrec", x)
		if err != nil {
			return err
		}
		rest, err := seqRest("primrec", x)
		if err != nil {
			return err
		}
		it.push(first)
		it.push(rest)
		if err := it.primrecRecurse(initQ, combQ); err != nil {
			return err
		}
		return it.Exec(combQ.listVal())
	default:
		return typeErr("primrec", "integer or aggregate", x)
	}
}

func (it *Interp) primrecRecurse(initQ, combQ Value) error {
	v, ok := it.pop()
	if !ok {
		return &StackUnderflowError{Op: "primrec", Required: 1, Available: 0}
	}
	return it.primrec(v, initQ, combQ)
}

// opCleave implements `cleave`: `A [P1] [P2] -> R1 R2`, applying both
// quotations to independent copies of A pushed just for that evaluation.
// Spec's round-trip law "A [first] [rest] cleave cons equals A" pins the
// result order: R1 from P1, then R2 from P2.
func opCleave(it *Interp) error {
	vs, err := it.popN("cleave", 3)
	if err != nil {
		return err
	}
	a, p1, p2 := vs[0], vs[1], vs[2]
	if p1.Kind() != List || p2.Kind() != List {
		it.stack = append(it.stack, vs...)
		return typeErr("cleave", "list", p1)
	}
	base := append([]Value(nil), it.stack...)
	runOne := func(p Value) (Value, error) {
		it.stack = append(append([]Value(nil), base...), a)
		if err := it.Exec(p.listVal()); err != nil {
			it.stack = base
			return Value{}, err
		}
		r, ok := it.pop()
		if !ok {
			it.stack = base
			return Value{}, &StackUnderflowError{Op: "cleave", Required: 1, Available: 0}
		}
		return r, nil
	}
	r1, err := runOne(p1)
	if err != nil {
		return err
	}
	r2, err := runOne(p2)
	if err != nil {
		return err
	}
	it.stack = base
	it.push(r1)
	it.push(r2)
	return nil
}

// opInfra implements `infra`: `A [P] -> B`. A's first element becomes the
// top of the working stack (spec 4.3: "reversed-to-stack-order: A's first
// element is the top"), matching the same first-element-is-top convention
// `stack`/`unstack` already use.
func opInfra(it *Interp) error {
	vs, err := it.popN("infra", 2)
	if err != nil {
		return err
	}
	a, p := vs[0], vs[1]
	if p.Kind() != List {
		it.stack = append(it.stack, vs...)
		return typeErr("infra", "list", p)
	}
	if !a.isAggregate() {
		it.stack = append(it.stack, vs...)
		return typeErr("infra", "aggregate", a)
	}
	ambient := it.stack
	it.stack = reverseValues(aggregateElements(a))
	err = it.Exec(p.listVal())
	inner := it.stack
	it.stack = ambient
	if err != nil {
		return err
	}
	result, err := rebuildAggregate(a, reverseValues(inner))
	if err != nil {
		return err
	}
	it.push(result)
	return nil
}

// reverseValues returns a new slice with elems in reverse order, used to
// convert between the "first element is top" aggregate-as-stack
// representation and the real stack's "last element is top" one.
func reverseValues(elems []Value) []Value {
	out := make([]Value, len(elems))
	for i, e := range elems {
		out[len(elems)-1-i] = e
	}
	return out
}
