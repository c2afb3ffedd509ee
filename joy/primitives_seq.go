package joy

// Sequence, type-predicate, and symbol-introspection primitives, spec
// 4.4's sixth through eighth bullets. Grounded on the per-kind helpers in
// sequence.go, which already implement the "set/string/list all behave as
// one aggregate concept" rule spec section 9 calls out.

func registerSequencePrimitives(env *Environment) {
	env.definePrimitive("cons", opCons)
	env.definePrimitive("swons", opSwons)
	env.definePrimitive("first", unaryAggregate("first", seqFirst))
	env.definePrimitive("rest", unaryAggregate("rest", seqRest))
	env.definePrimitive("uncons", opUncons)
	env.definePrimitive("unswons", opUnswons)
	env.definePrimitive("concat", opConcat)
	env.definePrimitive("enconcat", opEnconcat)
	env.definePrimitive("size", opSize)
	env.definePrimitive("null", opNull)
	env.definePrimitive("small", opSmall)
	env.definePrimitive("at", opAt)
	env.definePrimitive("of", opOf)
	env.definePrimitive("drop", opDrop)
	env.definePrimitive("take", opTake)
	env.definePrimitive("compare", opCompare)
	env.definePrimitive("equal", opEqual)
	env.definePrimitive("=", opEqual)
	env.definePrimitive("!=", opNotEqual)
	env.definePrimitive("has", opHas)
	env.definePrimitive("in", opIn)
	env.definePrimitive("<", relOp("<", func(c int) bool { return c < 0 }))
	env.definePrimitive("<=", relOp("<=", func(c int) bool { return c <= 0 }))
	env.definePrimitive(">", relOp(">", func(c int) bool { return c > 0 }))
	env.definePrimitive(">=", relOp(">=", func(c int) bool { return c >= 0 }))

	env.definePrimitive("integer", typePredicate(Int))
	env.definePrimitive("char", typePredicate(Char))
	env.definePrimitive("logical", typePredicate(Bool))
	env.definePrimitive("set", typePredicate(Set))
	env.definePrimitive("string", typePredicate(String))
	env.definePrimitive("list", typePredicate(List))
	env.definePrimitive("float", typePredicate(Float))
	env.definePrimitive("file", typePredicate(File))
	env.definePrimitive("leaf", opLeaf)
	env.definePrimitive("user", opUser)

	env.definePrimitive("name", opName)
	env.definePrimitive("intern", opIntern)
	env.definePrimitive("body", opBody)

	env.definePrimitive("powerlist", opPowerlist)
}

// opPowerlist implements `powerlist`: L -> list of every sublist of L, in
// the order powerset(x:xs) = map (x:) powerset(xs) ++ powerset(xs),
// powerset([]) = [[]]. That ordering (rather than the reverse) is what
// makes the subsets of a given size come out in the aggregate's own
// element order, e.g. filtering the powerset of [1 2 3] for size 2 yields
// [[1 2] [1 3] [2 3]].
func opPowerlist(it *Interp) error {
	vs, err := it.popN("powerlist", 1)
	if err != nil {
		return err
	}
	if vs[0].Kind() != List {
		it.push(vs[0])
		return typeErr("powerlist", "list", vs[0])
	}
	it.push(mkList(powerset(vs[0].listVal())))
	return nil
}

func powerset(items []Value) []Value {
	if len(items) == 0 {
		return []Value{mkList(nil)}
	}
	head, rest := items[0], powerset(items[1:])
	withHead := make([]Value, len(rest))
	for i, s := range rest {
		prefixed := make([]Value, 0, len(s.listVal())+1)
		prefixed = append(prefixed, head)
		prefixed = append(prefixed, s.listVal()...)
		withHead[i] = mkList(prefixed)
	}
	return append(withHead, rest...)
}

func unaryAggregate(op string, fn func(op string, v Value) (Value, error)) primFunc {
	return func(it *Interp) error {
		vs, err := it.popN(op, 1)
		if err != nil {
			return err
		}
		result, err := fn(op, vs[0])
		if err != nil {
			it.push(vs[0])
			return err
		}
		it.push(result)
		return nil
	}
}

func opCons(it *Interp) error {
	vs, err := it.popN("cons", 2)
	if err != nil {
		return err
	}
	result, err := seqCons("cons", vs[0], vs[1])
	if err != nil {
		it.push(vs[0])
		it.push(vs[1])
		return err
	}
	it.push(result)
	return nil
}

func opSwons(it *Interp) error {
	vs, err := it.popN("swons", 2)
	if err != nil {
		return err
	}
	result, err := seqCons("swons", vs[1], vs[0])
	if err != nil {
		it.push(vs[0])
		it.push(vs[1])
		return err
	}
	it.push(result)
	return nil
}

func opUncons(it *Interp) error {
	vs, err := it.popN("uncons", 1)
	if err != nil {
		return err
	}
	first, err := seqFirst("uncons", vs[0])
	if err != nil {
		it.push(vs[0])
		return err
	}
	rest, err := seqRest("uncons", vs[0])
	if err != nil {
		it.push(vs[0])
		return err
	}
	it.push(first)
	it.push(rest)
	return nil
}

func opUnswons(it *Interp) error {
	vs, err := it.popN("unswons", 1)
	if err != nil {
		return err
	}
	first, err := seqFirst("unswons", vs[0])
	if err != nil {
		it.push(vs[0])
		return err
	}
	rest, err := seqRest("unswons", vs[0])
	if err != nil {
		it.push(vs[0])
		return err
	}
	it.push(rest)
	it.push(first)
	return nil
}

func opConcat(it *Interp) error {
	vs, err := it.popN("concat", 2)
	if err != nil {
		return err
	}
	result, err := seqConcat("concat", vs[0], vs[1])
	if err != nil {
		it.push(vs[0])
		it.push(vs[1])
		return err
	}
	it.push(result)
	return nil
}

// enconcat: X A B -> (X consed onto A) concatenated with B.
func opEnconcat(it *Interp) error {
	vs, err := it.popN("enconcat", 3)
	if err != nil {
		return err
	}
	x, a, b := vs[0], vs[1], vs[2]
	consed, err := seqCons("enconcat", x, a)
	if err != nil {
		it.push(x)
		it.push(a)
		it.push(b)
		return err
	}
	result, err := seqConcat("enconcat", consed, b)
	if err != nil {
		it.push(x)
		it.push(a)
		it.push(b)
		return err
	}
	it.push(result)
	return nil
}

func opSize(it *Interp) error {
	vs, err := it.popN("size", 1)
	if err != nil {
		return err
	}
	if !vs[0].isAggregate() {
		it.push(vs[0])
		return typeErr("size", "aggregate", vs[0])
	}
	it.push(mkInt(seqSize(vs[0])))
	return nil
}

func opNull(it *Interp) error {
	vs, err := it.popN("null", 1)
	if err != nil {
		return err
	}
	switch {
	case vs[0].isAggregate():
		it.push(mkBool(seqNull(vs[0])))
	case vs[0].Kind() == Int:
		it.push(mkBool(vs[0].intVal() == 0))
	case vs[0].Kind() == Float:
		it.push(mkBool(vs[0].floatVal() == 0))
	default:
		it.push(vs[0])
		return typeErr("null", "aggregate or numeric", vs[0])
	}
	return nil
}

func opSmall(it *Interp) error {
	vs, err := it.popN("small", 1)
	if err != nil {
		return err
	}
	if !vs[0].isAggregate() {
		it.push(vs[0])
		return typeErr("small", "aggregate", vs[0])
	}
	it.push(mkBool(seqSmall(vs[0])))
	return nil
}

func opAt(it *Interp) error {
	vs, err := it.popN("at", 2)
	if err != nil {
		return err
	}
	a, i := vs[0], vs[1]
	if i.Kind() != Int {
		it.push(a)
		it.push(i)
		return typeErr("at", "integer", i)
	}
	result, err := seqAt("at", a, i.intVal())
	if err != nil {
		it.push(a)
		it.push(i)
		return err
	}
	it.push(result)
	return nil
}

func opOf(it *Interp) error {
	vs, err := it.popN("of", 2)
	if err != nil {
		return err
	}
	i, a := vs[0], vs[1]
	if i.Kind() != Int {
		it.push(i)
		it.push(a)
		return typeErr("of", "integer", i)
	}
	result, err := seqAt("of", a, i.intVal())
	if err != nil {
		it.push(i)
		it.push(a)
		return err
	}
	it.push(result)
	return nil
}

func opDrop(it *Interp) error {
	vs, err := it.popN("drop", 2)
	if err != nil {
		return err
	}
	a, n := vs[0], vs[1]
	if n.Kind() != Int {
		it.push(a)
		it.push(n)
		return typeErr("drop", "integer", n)
	}
	result, err := seqDrop("drop", a, n.intVal())
	if err != nil {
		it.push(a)
		it.push(n)
		return err
	}
	it.push(result)
	return nil
}

func opTake(it *Interp) error {
	vs, err := it.popN("take", 2)
	if err != nil {
		return err
	}
	a, n := vs[0], vs[1]
	if n.Kind() != Int {
		it.push(a)
		it.push(n)
		return typeErr("take", "integer", n)
	}
	result, err := seqTake("take", a, n.intVal())
	if err != nil {
		it.push(a)
		it.push(n)
		return err
	}
	it.push(result)
	return nil
}

func opCompare(it *Interp) error {
	vs, err := it.popN("compare", 2)
	if err != nil {
		return err
	}
	c, err := valuesCompare("compare", vs[0], vs[1])
	if err != nil {
		it.push(vs[0])
		it.push(vs[1])
		return err
	}
	it.push(mkInt(int64(c)))
	return nil
}

func opEqual(it *Interp) error {
	vs, err := it.popN("equal", 2)
	if err != nil {
		return err
	}
	it.push(mkBool(valuesEqual(vs[0], vs[1])))
	return nil
}

func opNotEqual(it *Interp) error {
	vs, err := it.popN("!=", 2)
	if err != nil {
		return err
	}
	it.push(mkBool(!valuesEqual(vs[0], vs[1])))
	return nil
}

func relOp(op string, accept func(c int) bool) primFunc {
	return func(it *Interp) error {
		vs, err := it.popN(op, 2)
		if err != nil {
			return err
		}
		c, err := valuesCompare(op, vs[0], vs[1])
		if err != nil {
			it.push(vs[0])
			it.push(vs[1])
			return err
		}
		it.push(mkBool(accept(c)))
		return nil
	}
}

func opHas(it *Interp) error {
	vs, err := it.popN("has", 2)
	if err != nil {
		return err
	}
	it.push(mkBool(seqHas(vs[0], vs[1])))
	return nil
}

func opIn(it *Interp) error {
	vs, err := it.popN("in", 2)
	if err != nil {
		return err
	}
	it.push(mkBool(seqHas(vs[1], vs[0])))
	return nil
}

func typePredicate(k Kind) primFunc {
	return func(it *Interp) error {
		vs, err := it.popN(k.String(), 1)
		if err != nil {
			return err
		}
		it.push(mkBool(vs[0].Kind() == k))
		return nil
	}
}

func opLeaf(it *Interp) error {
	vs, err := it.popN("leaf", 1)
	if err != nil {
		return err
	}
	it.push(mkBool(vs[0].Kind() != List))
	return nil
}

func opUser(it *Interp) error {
	vs, err := it.popN("user", 1)
	if err != nil {
		return err
	}
	if vs[0].Kind() != Symbol {
		it.push(vs[0])
		return typeErr("user", "symbol", vs[0])
	}
	it.push(mkBool(it.env.isUserWord(vs[0].symbolVal())))
	return nil
}

func opName(it *Interp) error {
	vs, err := it.popN("name", 1)
	if err != nil {
		return err
	}
	if vs[0].Kind() != Symbol {
		it.push(vs[0])
		return typeErr("name", "symbol", vs[0])
	}
	it.push(mkString(it.env.symbolName(vs[0].symbolVal())))
	return nil
}

func opIntern(it *Interp) error {
	vs, err := it.popN("intern", 1)
	if err != nil {
		return err
	}
	if vs[0].Kind() != String {
		it.push(vs[0])
		return typeErr("intern", "string", vs[0])
	}
	it.push(mkSymbol(it.env.intern(vs[0].stringVal())))
	return nil
}

func opBody(it *Interp) error {
	vs, err := it.popN("body", 1)
	if err != nil {
		return err
	}
	if vs[0].Kind() != Symbol {
		it.push(vs[0])
		return typeErr("body", "symbol", vs[0])
	}
	body, ok := it.env.body(vs[0].symbolVal())
	if !ok {
		it.push(vs[0])
		return &DomainError{Op: "body", Detail: "not a user-defined word: " + it.env.symbolName(vs[0].symbolVal())}
	}
	it.push(mkList(body))
	return nil
}
