package joy

import "math/bits"

// setWidth is the fixed size N of a Joy SET, spec section 3.1's "bitset of
// the integers 0..N-1, N>=32". original_source/src/pyjoy/errors.py's
// JoySetMemberError states the range [0, 63], confirming spec's "commonly
// 64" -- taken here as the implementation's fixed width, exposed to Joy
// programs through the setsize primitive.
const setWidth = 64

// setFullMask has every one of the setWidth member bits set; it is the
// identity element for "and" and the operand "not" complements against.
const setFullMask uint64 = (1 << setWidth) - 1

// setContains reports whether n is a member of the set encoded by bits.
func setContains(set uint64, n int) bool {
	if n < 0 || n >= setWidth {
		return false
	}
	return set&(1<<uint(n)) != 0
}

// setAdd returns bits with member n added. The caller is responsible for
// range-checking n against setWidth first (DomainError on failure, per
// spec section 9's "adding an out-of-range integer via cons raises
// DomainError").
func setAdd(set uint64, n int) uint64 {
	return set | (1 << uint(n))
}

// setMin returns the smallest member of set and true, or 0 and false if
// set is empty. Used by first/rest on sets, per spec's "sets: ascending
// order" traversal rule.
func setMin(set uint64) (int, bool) {
	if set == 0 {
		return 0, false
	}
	return bits.TrailingZeros64(set), true
}

// setRemoveMin returns set with its smallest member removed.
func setRemoveMin(set uint64) uint64 {
	if set == 0 {
		return 0
	}
	n, _ := setMin(set)
	return set &^ (1 << uint(n))
}

// setSize returns the number of members in set.
func setSize(set uint64) int {
	return bits.OnesCount64(set)
}

// setMembers returns the members of set in ascending order, as required by
// spec's aggregate traversal rule for step/map/fold/filter/split.
func setMembers(set uint64) []int {
	members := make([]int, 0, setSize(set))
	for set != 0 {
		n, _ := setMin(set)
		members = append(members, n)
		set = setRemoveMin(set)
	}
	return members
}

// setNot returns the complement of set within [0, setWidth), per spec
// section 9: "not on a set returns (~bits) & full_mask".
func setNot(set uint64) uint64 {
	return ^set & setFullMask
}
