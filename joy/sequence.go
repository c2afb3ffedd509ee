package joy

import "strings"

// This file factors the behavior spec section 9 calls out explicitly:
// "shared behavior across kinds (sequence-like operations across list and
// string) factors into helpers keyed on sequence-kind = {list, string}".
// Combinators additionally need to treat SET as a third, ordered-traversal
// aggregate kind (spec's glossary: "Aggregate. Any of set, string, list"),
// so the traversal/rebuild helpers here cover all three.

// aggregateElements returns the members of an aggregate value in traversal
// order: ascending integer order for sets (each wrapped as an Int Value),
// characters in order for strings (each wrapped as a Char Value), and
// elements in order for lists.
func aggregateElements(v Value) []Value {
	switch v.kind {
	case Set:
		members := setMembers(v.setVal())
		out := make([]Value, len(members))
		for i, m := range members {
			out[i] = mkInt(int64(m))
		}
		return out
	case String:
		runes := []rune(v.stringVal())
		out := make([]Value, len(runes))
		for i, r := range runes {
			out[i] = mkChar(r)
		}
		return out
	case List:
		return v.listVal()
	default:
		return nil
	}
}

// rebuildAggregate constructs a new aggregate of the same kind as `like`
// from `elems`, used by map/filter/split to preserve aggregate kind per
// spec's "map preserves aggregate kind and size" invariant.
func rebuildAggregate(like Value, elems []Value) (Value, error) {
	switch like.kind {
	case Set:
		var bits uint64
		for _, e := range elems {
			if e.kind != Int {
				return Value{}, &TypeError{Op: "map", Expected: "integer", Actual: e.kind.String()}
			}
			n := e.intVal()
			if n < 0 || n >= setWidth {
				return Value{}, &DomainError{Op: "map", Detail: "set member out of range"}
			}
			bits = setAdd(bits, int(n))
		}
		return mkSet(bits), nil
	case String:
		var sb strings.Builder
		for _, e := range elems {
			if e.kind != Char {
				return Value{}, &TypeError{Op: "map", Expected: "char", Actual: e.kind.String()}
			}
			sb.WriteRune(e.charVal())
		}
		return mkString(sb.String()), nil
	case List:
		return mkList(elems), nil
	default:
		return Value{}, &TypeError{Op: "map", Expected: "aggregate", Actual: like.kind.String()}
	}
}

// seqSize returns the number of elements in an aggregate.
func seqSize(v Value) int64 {
	switch v.kind {
	case Set:
		return int64(setSize(v.setVal()))
	case String:
		return int64(len([]rune(v.stringVal())))
	case List:
		return int64(len(v.listVal()))
	default:
		return 0
	}
}

// seqNull reports whether an aggregate is empty.
func seqNull(v Value) bool { return seqSize(v) == 0 }

// seqSmall reports whether an aggregate has 0 or 1 elements.
func seqSmall(v Value) bool { return seqSize(v) <= 1 }

// seqFirst returns the first element of a non-empty aggregate: the minimum
// member for a set, the first char for a string, the head for a list.
func seqFirst(op string, v Value) (Value, error) {
	switch v.kind {
	case Set:
		n, ok := setMin(v.setVal())
		if !ok {
			return Value{}, &DomainError{Op: op, Detail: "empty set"}
		}
		return mkInt(int64(n)), nil
	case String:
		runes := []rune(v.stringVal())
		if len(runes) == 0 {
			return Value{}, &DomainError{Op: op, Detail: "empty string"}
		}
		return mkChar(runes[0]), nil
	case List:
		items := v.listVal()
		if len(items) == 0 {
			return Value{}, &DomainError{Op: op, Detail: "empty list"}
		}
		return items[0], nil
	default:
		return Value{}, &TypeError{Op: op, Expected: "aggregate", Actual: v.kind.String()}
	}
}

// seqRest returns the aggregate with its first element (as defined by
// seqFirst) removed.
func seqRest(op string, v Value) (Value, error) {
	switch v.kind {
	case Set:
		if v.setVal() == 0 {
			return Value{}, &DomainError{Op: op, Detail: "empty set"}
		}
		return mkSet(setRemoveMin(v.setVal())), nil
	case String:
		runes := []rune(v.stringVal())
		if len(runes) == 0 {
			return Value{}, &DomainError{Op: op, Detail: "empty string"}
		}
		return mkString(string(runes[1:])), nil
	case List:
		items := v.listVal()
		if len(items) == 0 {
			return Value{}, &DomainError{Op: op, Detail: "empty list"}
		}
		rest := make([]Value, len(items)-1)
		copy(rest, items[1:])
		return mkList(rest), nil
	default:
		return Value{}, &TypeError{Op: op, Expected: "aggregate", Actual: v.kind.String()}
	}
}

// seqCons prepends x onto agg, per spec's per-kind cons: adds an element to
// a set, prepends a char to a string, or conses onto a list.
func seqCons(op string, x, agg Value) (Value, error) {
	switch agg.kind {
	case Set:
		if x.kind != Int {
			return Value{}, &TypeError{Op: op, Expected: "integer", Actual: x.kind.String()}
		}
		n := x.intVal()
		if n < 0 || n >= setWidth {
			return Value{}, &DomainError{Op: op, Detail: "set member out of range"}
		}
		return mkSet(setAdd(agg.setVal(), int(n))), nil
	case String:
		if x.kind != Char {
			return Value{}, &TypeError{Op: op, Expected: "char", Actual: x.kind.String()}
		}
		return mkString(string(x.charVal()) + agg.stringVal()), nil
	case List:
		items := agg.listVal()
		out := make([]Value, 0, len(items)+1)
		out = append(out, x)
		out = append(out, items...)
		return mkList(out), nil
	default:
		return Value{}, &TypeError{Op: op, Expected: "aggregate", Actual: agg.kind.String()}
	}
}

// seqConcat concatenates two aggregates of the same kind.
func seqConcat(op string, a, b Value) (Value, error) {
	if a.kind != b.kind {
		return Value{}, &TypeError{Op: op, Expected: a.kind.String(), Actual: b.kind.String()}
	}
	switch a.kind {
	case Set:
		return mkSet(a.setVal() | b.setVal()), nil
	case String:
		return mkString(a.stringVal() + b.stringVal()), nil
	case List:
		out := make([]Value, 0, len(a.listVal())+len(b.listVal()))
		out = append(out, a.listVal()...)
		out = append(out, b.listVal()...)
		return mkList(out), nil
	default:
		return Value{}, &TypeError{Op: op, Expected: "aggregate", Actual: a.kind.String()}
	}
}

// seqAt returns the i'th element of agg (0-based), per the `at` primitive.
func seqAt(op string, agg Value, i int64) (Value, error) {
	switch agg.kind {
	case String:
		runes := []rune(agg.stringVal())
		if i < 0 || i >= int64(len(runes)) {
			return Value{}, &DomainError{Op: op, Detail: "index out of range"}
		}
		return mkChar(runes[i]), nil
	case List:
		items := agg.listVal()
		if i < 0 || i >= int64(len(items)) {
			return Value{}, &DomainError{Op: op, Detail: "index out of range"}
		}
		return items[i], nil
	default:
		return Value{}, &TypeError{Op: op, Expected: "list or string", Actual: agg.kind.String()}
	}
}

// seqDrop returns agg with its first n elements removed.
func seqDrop(op string, agg Value, n int64) (Value, error) {
	elems := aggregateElements(agg)
	if agg.kind != Set && agg.kind != String && agg.kind != List {
		return Value{}, &TypeError{Op: op, Expected: "aggregate", Actual: agg.kind.String()}
	}
	if n < 0 || n > int64(len(elems)) {
		return Value{}, &DomainError{Op: op, Detail: "drop count out of range"}
	}
	return rebuildAggregate(agg, elems[n:])
}

// seqTake returns the first n elements of agg as a same-kind aggregate.
func seqTake(op string, agg Value, n int64) (Value, error) {
	elems := aggregateElements(agg)
	if agg.kind != Set && agg.kind != String && agg.kind != List {
		return Value{}, &TypeError{Op: op, Expected: "aggregate", Actual: agg.kind.String()}
	}
	if n < 0 || n > int64(len(elems)) {
		return Value{}, &DomainError{Op: op, Detail: "take count out of range"}
	}
	return rebuildAggregate(agg, elems[:n])
}

// seqHas reports whether x occurs in agg, used by both `has` and `in`
// (which take their arguments in opposite order).
func seqHas(agg, x Value) bool {
	switch agg.kind {
	case Set:
		if x.kind != Int {
			return false
		}
		return setContains(agg.setVal(), int(x.intVal()))
	default:
		for _, e := range aggregateElements(agg) {
			if valuesEqual(e, x) {
				return true
			}
		}
		return false
	}
}

// valuesEqual is recursive structural equality, backing spec's `equal`,
// `=`, and `!=` primitives.
func valuesEqual(a, b Value) bool {
	if a.kind != b.kind {
		if a.isNumeric() && b.isNumeric() {
			return a.asFloat() == b.asFloat()
		}
		return false
	}
	switch a.kind {
	case Bool:
		return a.boolVal() == b.boolVal()
	case Char:
		return a.charVal() == b.charVal()
	case Int:
		return a.intVal() == b.intVal()
	case Float:
		return a.floatVal() == b.floatVal()
	case String:
		return a.stringVal() == b.stringVal()
	case Set:
		return a.setVal() == b.setVal()
	case Symbol:
		return a.symbolVal() == b.symbolVal()
	case File:
		return a.fileVal() == b.fileVal()
	case List:
		la, lb := a.listVal(), b.listVal()
		if len(la) != len(lb) {
			return false
		}
		for i := range la {
			if !valuesEqual(la[i], lb[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// valuesCompare returns -1, 0, or 1 for a<b, a==b, a>b. It supports the
// numeric promotion and string/char/list-lexicographic rules spec's
// "Polymorphism" paragraph describes.
func valuesCompare(op string, a, b Value) (int, error) {
	if a.isNumeric() && b.isNumeric() {
		af, bf := a.asFloat(), b.asFloat()
		switch {
		case af < bf:
			return -1, nil
		case af > bf:
			return 1, nil
		default:
			return 0, nil
		}
	}
	if a.kind != b.kind {
		return 0, &TypeError{Op: op, Expected: a.kind.String(), Actual: b.kind.String()}
	}
	switch a.kind {
	case Char:
		return compareOrdered(a.charVal(), b.charVal()), nil
	case String:
		return strings.Compare(a.stringVal(), b.stringVal()), nil
	case List:
		la, lb := a.listVal(), b.listVal()
		for i := 0; i < len(la) && i < len(lb); i++ {
			c, err := valuesCompare(op, la[i], lb[i])
			if err != nil {
				return 0, err
			}
			if c != 0 {
				return c, nil
			}
		}
		return compareOrdered(len(la), len(lb)), nil
	case Bool:
		return compareOrdered(a.num, b.num), nil
	default:
		return 0, &TypeError{Op: op, Expected: "comparable", Actual: a.kind.String()}
	}
}

func compareOrdered[T int | int64 | rune](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
