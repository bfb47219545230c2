package types

import "strings"

// ListValue represents an ordered, 0-indexed sequence of values.
// Lists are immutable once built.
type ListValue struct {
	elements []Value
}

// NewList creates a new list value that takes ownership of elements
func NewList(elements []Value) ListValue {
	if elements == nil {
		elements = []Value{}
	}
	return ListValue{elements: elements}
}

// NewEmptyList creates an empty list
func NewEmptyList() ListValue {
	return ListValue{elements: []Value{}}
}

// String renders the list with a separator after every element, including the last:
// [1, 2, 3, ]
func (l ListValue) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for _, elem := range l.elements {
		b.WriteString(elem.String())
		b.WriteString(", ")
	}
	b.WriteByte(']')
	return b.String()
}

// Type returns the type code for lists
func (l ListValue) Type() TypeCode {
	return TYPE_LIST
}

// Equal compares two lists element by element
func (l ListValue) Equal(other Value) bool {
	o, ok := other.(ListValue)
	if !ok || len(l.elements) != len(o.elements) {
		return false
	}
	for i := range l.elements {
		if !l.elements[i].Equal(o.elements[i]) {
			return false
		}
	}
	return true
}

// Len returns the length of the list
func (l ListValue) Len() int {
	return len(l.elements)
}

// Elements returns the backing slice for iteration. Callers must not modify it.
func (l ListValue) Elements() []Value {
	return l.elements
}
