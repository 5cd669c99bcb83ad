// Package filter defines a typed predicate tree passed to record-store
// adapters. Repositories compose trees from the constructors here; the
// store interprets them. No clause is ever rendered as a raw string.
package filter

// Node is a predicate over a record. Implementations are the boolean
// combinators (And, Or, Not) and the leaf predicates below.
type Node interface {
	isNode()
}

// AndNode matches records satisfying every child.
type AndNode struct{ children []Node }

// OrNode matches records satisfying at least one child.
type OrNode struct{ children []Node }

// NotNode inverts its child.
type NotNode struct{ child Node }

// EqNode matches records whose field equals a value.
type EqNode struct {
	field string
	value any
}

// ContainsNode matches records whose string field contains a substring,
// case-insensitively.
type ContainsNode struct {
	field  string
	substr string
}

// PrefixNode matches records whose string field starts with a prefix,
// case-insensitively.
type PrefixNode struct {
	field  string
	prefix string
}

// InNode matches records whose field equals any of the listed values.
type InNode struct {
	field  string
	values []any
}

// BetweenNode matches records whose numeric field lies within the
// inclusive [min, max] bounds. A nil bound is open.
type BetweenNode struct {
	field    string
	min, max *float64
}

// IsNullNode matches records whose field is absent or nil.
type IsNullNode struct{ field string }

func (AndNode) isNode()      {}
func (OrNode) isNode()       {}
func (NotNode) isNode()      {}
func (EqNode) isNode()       {}
func (ContainsNode) isNode() {}
func (PrefixNode) isNode()   {}
func (InNode) isNode()       {}
func (BetweenNode) isNode()  {}
func (IsNullNode) isNode()   {}

// And combines children conjunctively. Nil children are dropped; an
// empty conjunction collapses to nil (match everything) and a single
// child is returned unwrapped.
func And(children ...Node) Node {
	kept := compact(children)
	switch len(kept) {
	case 0:
		return nil
	case 1:
		return kept[0]
	}
	return AndNode{children: kept}
}

// Or combines children disjunctively with the same collapsing rules as And.
func Or(children ...Node) Node {
	kept := compact(children)
	switch len(kept) {
	case 0:
		return nil
	case 1:
		return kept[0]
	}
	return OrNode{children: kept}
}

// Not inverts a predicate. Not(nil) is nil.
func Not(child Node) Node {
	if child == nil {
		return nil
	}
	return NotNode{child: child}
}

// Eq creates an equality predicate.
func Eq(field string, value any) Node {
	return EqNode{field: field, value: value}
}

// ContainsFold creates a case-insensitive substring predicate.
func ContainsFold(field, substr string) Node {
	return ContainsNode{field: field, substr: substr}
}

// PrefixFold creates a case-insensitive starts-with predicate.
func PrefixFold(field, prefix string) Node {
	return PrefixNode{field: field, prefix: prefix}
}

// In creates a membership predicate.
func In(field string, values []any) Node {
	return InNode{field: field, values: values}
}

// InStrings creates a membership predicate over string values.
func InStrings(field string, values []string) Node {
	vals := make([]any, len(values))
	for i, v := range values {
		vals[i] = v
	}
	return InNode{field: field, values: vals}
}

// Between creates an inclusive numeric range predicate. Either bound
// may be nil; Between(f, nil, nil) collapses to nil.
func Between(field string, min, max *float64) Node {
	if min == nil && max == nil {
		return nil
	}
	return BetweenNode{field: field, min: min, max: max}
}

// IsNull creates an absent-or-nil predicate.
func IsNull(field string) Node {
	return IsNullNode{field: field}
}

// Children returns the conjunction members.
func (n AndNode) Children() []Node { return n.children }

// Children returns the disjunction members.
func (n OrNode) Children() []Node { return n.children }

// Child returns the inverted predicate.
func (n NotNode) Child() Node { return n.child }

// Field returns the compared field name.
func (n EqNode) Field() string { return n.field }

// Value returns the compared value.
func (n EqNode) Value() any { return n.value }

// Field returns the searched field name.
func (n ContainsNode) Field() string { return n.field }

// Substr returns the searched substring.
func (n ContainsNode) Substr() string { return n.substr }

// Field returns the prefix-matched field name.
func (n PrefixNode) Field() string { return n.field }

// Prefix returns the matched prefix.
func (n PrefixNode) Prefix() string { return n.prefix }

// Field returns the membership field name.
func (n InNode) Field() string { return n.field }

// Values returns the membership candidates.
func (n InNode) Values() []any { return n.values }

// Field returns the ranged field name.
func (n BetweenNode) Field() string { return n.field }

// Min returns the inclusive lower bound (nil = open).
func (n BetweenNode) Min() *float64 { return n.min }

// Max returns the inclusive upper bound (nil = open).
func (n BetweenNode) Max() *float64 { return n.max }

// Field returns the checked field name.
func (n IsNullNode) Field() string { return n.field }

func compact(nodes []Node) []Node {
	kept := make([]Node, 0, len(nodes))
	for _, n := range nodes {
		if n != nil {
			kept = append(kept, n)
		}
	}
	return kept
}
