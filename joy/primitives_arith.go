package joy

import "math"

// Arithmetic and float-math primitives, spec 4.4's second and third
// bullets. Grounded on gothird's arithmetic words in first.go (`+ - * /`
// on its single memory-cell integers), generalized here to Joy's
// int/float promotion rule ("binary operations accept mixed
// integer/float, promoting to float if either is float") and extended
// with the full float-math surface, which has no analog in FIRST/THIRD
// and is grounded directly on spec 4.4's C-math list; no third-party math
// library appears anywhere in the example pack, so this group stays on
// the standard library's math package (see design notes).

func popNumeric2(op string) func(it *Interp) ([2]Value, error) {
	return func(it *Interp) ([2]Value, error) {
		vs, err := it.popN(op, 2)
		if err != nil {
			return [2]Value{}, err
		}
		if !vs[0].isNumeric() || !vs[1].isNumeric() {
			it.stack = append(it.stack, vs...)
			bad := vs[0]
			if vs[0].isNumeric() {
				bad = vs[1]
			}
			return [2]Value{}, typeErr(op, "numeric", bad)
		}
		return [2]Value{vs[0], vs[1]}, nil
	}
}

func binNumOp(op string, intFn func(a, b int64) (Value, error), floatFn func(a, b float64) Value) primFunc {
	return func(it *Interp) error {
		vs, err := popNumeric2(op)(it)
		if err != nil {
			return err
		}
		a, b := vs[0], vs[1]
		if a.Kind() == Int && b.Kind() == Int {
			v, err := intFn(a.intVal(), b.intVal())
			if err != nil {
				it.push(a)
				it.push(b)
				return err
			}
			it.push(v)
			return nil
		}
		it.push(floatFn(a.asFloat(), b.asFloat()))
		return nil
	}
}

func registerArithPrimitives(env *Environment) {
	env.definePrimitive("+", binNumOp("+",
		func(a, b int64) (Value, error) { return mkInt(a + b), nil },
		func(a, b float64) Value { return mkFloat(a + b) }))
	env.definePrimitive("-", binNumOp("-",
		func(a, b int64) (Value, error) { return mkInt(a - b), nil },
		func(a, b float64) Value { return mkFloat(a - b) }))
	env.definePrimitive("*", binNumOp("*",
		func(a, b int64) (Value, error) { return mkInt(a * b), nil },
		func(a, b float64) Value { return mkFloat(a * b) }))
	env.definePrimitive("/", binNumOp("/",
		func(a, b int64) (Value, error) {
			if b == 0 {
				return Value{}, &DomainError{Op: "/", Detail: "division by zero"}
			}
			return mkInt(a / b), nil
		},
		func(a, b float64) Value { return mkFloat(a / b) }))
	env.definePrimitive("rem", binNumOp("rem",
		func(a, b int64) (Value, error) {
			if b == 0 {
				return Value{}, &DomainError{Op: "rem", Detail: "division by zero"}
			}
			return mkInt(a % b), nil
		},
		func(a, b float64) Value { return mkFloat(math.Mod(a, b)) }))
	env.definePrimitive("max", binNumOp("max",
		func(a, b int64) (Value, error) {
			if a > b {
				return mkInt(a), nil
			}
			return mkInt(b), nil
		},
		func(a, b float64) Value { return mkFloat(math.Max(a, b)) }))
	env.definePrimitive("min", binNumOp("min",
		func(a, b int64) (Value, error) {
			if a < b {
				return mkInt(a), nil
			}
			return mkInt(b), nil
		},
		func(a, b float64) Value { return mkFloat(math.Min(a, b)) }))

	env.definePrimitive("div", opDiv)
	env.definePrimitive("sign", opSign)
	env.definePrimitive("neg", opNeg)
	env.definePrimitive("abs", opAbs)
	env.definePrimitive("pred", opPred)
	env.definePrimitive("succ", opSucc)

	for name, fn := range unaryFloatFns {
		env.definePrimitive(name, floatUnary(name, fn))
	}
	env.definePrimitive("atan2", binFloatOp("atan2", math.Atan2))
	env.definePrimitive("pow", binFloatOp("pow", math.Pow))
	env.definePrimitive("ldexp", opLdexp)
	env.definePrimitive("frexp", opFrexp)
	env.definePrimitive("modf", opModf)
}

// div: I1 I2 -> Q R, integer quotient and remainder in one primitive.
func opDiv(it *Interp) error {
	vs, err := it.popN("div", 2)
	if err != nil {
		return err
	}
	a, b := vs[0], vs[1]
	if a.Kind() != Int || b.Kind() != Int {
		it.stack = append(it.stack, vs...)
		return typeErr("div", "integer", a)
	}
	if b.intVal() == 0 {
		it.stack = append(it.stack, vs...)
		return &DomainError{Op: "div", Detail: "division by zero"}
	}
	it.push(mkInt(a.intVal() / b.intVal()))
	it.push(mkInt(a.intVal() % b.intVal()))
	return nil
}

func numeric1(op string) func(it *Interp) (Value, error) {
	return func(it *Interp) (Value, error) {
		vs, err := it.popN(op, 1)
		if err != nil {
			return Value{}, err
		}
		if !vs[0].isNumeric() {
			it.push(vs[0])
			return Value{}, typeErr(op, "numeric", vs[0])
		}
		return vs[0], nil
	}
}

func opSign(it *Interp) error {
	v, err := numeric1("sign")(it)
	if err != nil {
		return err
	}
	f := v.asFloat()
	var n int64
	switch {
	case f > 0:
		n = 1
	case f < 0:
		n = -1
	}
	it.push(mkInt(n))
	return nil
}

func opNeg(it *Interp) error {
	v, err := numeric1("neg")(it)
	if err != nil {
		return err
	}
	if v.Kind() == Int {
		it.push(mkInt(-v.intVal()))
	} else {
		it.push(mkFloat(-v.floatVal()))
	}
	return nil
}

func opAbs(it *Interp) error {
	v, err := numeric1("abs")(it)
	if err != nil {
		return err
	}
	if v.Kind() == Int {
		n := v.intVal()
		if n < 0 {
			n = -n
		}
		it.push(mkInt(n))
	} else {
		it.push(mkFloat(math.Abs(v.floatVal())))
	}
	return nil
}

func opPred(it *Interp) error {
	v, err := numeric1("pred")(it)
	if err != nil {
		return err
	}
	if v.Kind() == Int {
		it.push(mkInt(v.intVal() - 1))
	} else {
		it.push(mkFloat(v.floatVal() - 1))
	}
	return nil
}

func opSucc(it *Interp) error {
	v, err := numeric1("succ")(it)
	if err != nil {
		return err
	}
	if v.Kind() == Int {
		it.push(mkInt(v.intVal() + 1))
	} else {
		it.push(mkFloat(v.floatVal() + 1))
	}
	return nil
}

var unaryFloatFns = map[string]func(float64) float64{
	"sin": math.Sin, "cos": math.Cos, "tan": math.Tan,
	"asin": math.Asin, "acos": math.Acos, "atan": math.Atan,
	"exp": math.Exp, "log": math.Log, "log10": math.Log10,
	"sqrt": math.Sqrt, "floor": math.Floor, "ceil": math.Ceil,
	"trunc": math.Trunc, "sinh": math.Sinh, "cosh": math.Cosh, "tanh": math.Tanh,
}

func floatUnary(op string, fn func(float64) float64) primFunc {
	return func(it *Interp) error {
		vs, err := it.popN(op, 1)
		if err != nil {
			return err
		}
		if !vs[0].isNumeric() {
			it.push(vs[0])
			return typeErr(op, "numeric", vs[0])
		}
		it.push(mkFloat(fn(vs[0].asFloat())))
		return nil
	}
}

func binFloatOp(op string, fn func(a, b float64) float64) primFunc {
	return func(it *Interp) error {
		vs, err := popNumeric2(op)(it)
		if err != nil {
			return err
		}
		it.push(mkFloat(fn(vs[0].asFloat(), vs[1].asFloat())))
		return nil
	}
}

func opLdexp(it *Interp) error {
	vs, err := it.popN("ldexp", 2)
	if err != nil {
		return err
	}
	frac, exp := vs[0], vs[1]
	if !frac.isNumeric() || exp.Kind() != Int {
		it.stack = append(it.stack, vs...)
		return typeErr("ldexp", "float integer", frac)
	}
	it.push(mkFloat(math.Ldexp(frac.asFloat(), int(exp.intVal()))))
	return nil
}

func opFrexp(it *Interp) error {
	v, err := numeric1("frexp")(it)
	if err != nil {
		return err
	}
	frac, exp := math.Frexp(v.asFloat())
	it.push(mkFloat(frac))
	it.push(mkInt(int64(exp)))
	return nil
}

func opModf(it *Interp) error {
	v, err := numeric1("modf")(it)
	if err != nil {
		return err
	}
	ip, fp := math.Modf(v.asFloat())
	it.push(mkFloat(ip))
	it.push(mkFloat(fp))
	return nil
}
