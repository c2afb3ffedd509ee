package joy

// Character conversion and logical/set primitives, spec 4.4's fourth and
// fifth bullets: "and, or, xor, not ... on booleans ... usual logical ops;
// on sets they are intersection, union, symmetric difference, and
// complement-to-setsize respectively."

func opOrd(it *Interp) error {
	vs, err := it.popN("ord", 1)
	if err != nil {
		return err
	}
	if vs[0].Kind() != Char {
		it.push(vs[0])
		return typeErr("ord", "char", vs[0])
	}
	it.push(mkInt(int64(vs[0].charVal())))
	return nil
}

func opChr(it *Interp) error {
	vs, err := it.popN("chr", 1)
	if err != nil {
		return err
	}
	if vs[0].Kind() != Int {
		it.push(vs[0])
		return typeErr("chr", "integer", vs[0])
	}
	it.push(mkChar(rune(vs[0].intVal())))
	return nil
}

func registerLogicalPrimitives(env *Environment) {
	env.definePrimitive("and", boolOrSetBinary("and",
		func(a, b bool) bool { return a && b },
		func(a, b uint64) uint64 { return a & b }))
	env.definePrimitive("or", boolOrSetBinary("or",
		func(a, b bool) bool { return a || b },
		func(a, b uint64) uint64 { return a | b }))
	env.definePrimitive("xor", boolOrSetBinary("xor",
		func(a, b bool) bool { return a != b },
		func(a, b uint64) uint64 { return a ^ b }))
	env.definePrimitive("not", opNot)
	env.definePrimitive("setsize", func(it *Interp) error {
		it.push(mkInt(setWidth))
		return nil
	})
}

func boolOrSetBinary(op string, boolFn func(a, b bool) bool, setFn func(a, b uint64) uint64) primFunc {
	return func(it *Interp) error {
		vs, err := it.popN(op, 2)
		if err != nil {
			return err
		}
		a, b := vs[0], vs[1]
		switch {
		case a.Kind() == Bool && b.Kind() == Bool:
			it.push(mkBool(boolFn(a.boolVal(), b.boolVal())))
			return nil
		case a.Kind() == Set && b.Kind() == Set:
			it.push(mkSet(setFn(a.setVal(), b.setVal())))
			return nil
		default:
			it.stack = append(it.stack, vs...)
			return typeErr(op, "boolean or set", a)
		}
	}
}

// opNot: on a boolean, logical negation; on a set, complement within
// [0, setWidth), per the setNot formula in set.go.
func opNot(it *Interp) error {
	vs, err := it.popN("not", 1)
	if err != nil {
		return err
	}
	switch vs[0].Kind() {
	case Bool:
		it.push(mkBool(!vs[0].boolVal()))
	case Set:
		it.push(mkSet(setNot(vs[0].setVal())))
	default:
		it.push(vs[0])
		return typeErr("not", "boolean or set", vs[0])
	}
	return nil
}
