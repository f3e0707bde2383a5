// If you are AI: This file implements the ordered container backing every composite AMF0 value.
// It is a generic doubly linked list; element handles give O(1) insertion and removal.

package ordered

import "iter"

// Element is a node of a List. The zero value is not usable; elements are
// created by the list that owns them.
type Element[T any] struct {
	Value T

	next, prev *Element[T]
	list       *List[T]
}

// Next returns the following element or nil at the tail.
func (e *Element[T]) Next() *Element[T] {
	return e.next
}

// Prev returns the preceding element or nil at the head.
func (e *Element[T]) Prev() *Element[T] {
	return e.prev
}

// List is an ordered sequence of owned values.
// The zero value is an empty list ready to use.
// Lock expectations: none; a list belongs to a single goroutine.
type List[T any] struct {
	head, tail *Element[T]
	n          int
}

// Len returns the number of elements.
func (l *List[T]) Len() int {
	return l.n
}

// Front returns the first element or nil.
func (l *List[T]) Front() *Element[T] {
	return l.head
}

// Back returns the last element or nil.
func (l *List[T]) Back() *Element[T] {
	return l.tail
}

// PushBack appends v and returns its element.
func (l *List[T]) PushBack(v T) *Element[T] {
	e := &Element[T]{Value: v, list: l, prev: l.tail}
	if l.tail == nil {
		l.head = e
	} else {
		l.tail.next = e
	}
	l.tail = e
	l.n++
	return e
}

// PopBack removes the last element and returns its value.
// The boolean is false when the list is empty.
func (l *List[T]) PopBack() (T, bool) {
	if l.tail == nil {
		var zero T
		return zero, false
	}
	return l.Remove(l.tail), true
}

// At returns the value at index i, walking from the head.
func (l *List[T]) At(i int) (T, bool) {
	if i < 0 || i >= l.n {
		var zero T
		return zero, false
	}
	e := l.head
	for ; i > 0; i-- {
		e = e.next
	}
	return e.Value, true
}

// InsertBefore inserts v immediately before mark and returns the new element.
// mark must belong to l; otherwise nothing is inserted and nil is returned.
func (l *List[T]) InsertBefore(v T, mark *Element[T]) *Element[T] {
	if mark == nil || mark.list != l {
		return nil
	}
	e := &Element[T]{Value: v, list: l, next: mark, prev: mark.prev}
	if mark.prev != nil {
		mark.prev.next = e
	} else {
		l.head = e
	}
	mark.prev = e
	l.n++
	return e
}

// InsertAfter inserts v immediately after mark and returns the new element.
// mark must belong to l; otherwise nothing is inserted and nil is returned.
func (l *List[T]) InsertAfter(v T, mark *Element[T]) *Element[T] {
	if mark == nil || mark.list != l {
		return nil
	}
	e := &Element[T]{Value: v, list: l, prev: mark, next: mark.next}
	if mark.next != nil {
		mark.next.prev = e
	} else {
		l.tail = e
	}
	mark.next = e
	l.n++
	return e
}

// Remove unlinks e from l and returns its value.
// e must belong to l; a foreign element is left untouched.
func (l *List[T]) Remove(e *Element[T]) T {
	if e == nil || e.list != l {
		var zero T
		return zero
	}
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		l.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		l.tail = e.prev
	}
	e.next, e.prev, e.list = nil, nil, nil
	l.n--
	return e.Value
}

// Clear drops every element. Detached elements no longer reference the list
// or each other, so nothing the list owned stays reachable through it.
func (l *List[T]) Clear() {
	for e := l.head; e != nil; {
		next := e.next
		var zero T
		e.Value = zero
		e.next, e.prev, e.list = nil, nil, nil
		e = next
	}
	l.head, l.tail, l.n = nil, nil, 0
}

// CloneInto appends a copy of every value of l to dst, in order.
// clone produces the copy of a single value; nil means a shallow copy.
func (l *List[T]) CloneInto(dst *List[T], clone func(T) T) *List[T] {
	for e := l.head; e != nil; e = e.next {
		v := e.Value
		if clone != nil {
			v = clone(v)
		}
		dst.PushBack(v)
	}
	return dst
}

// All iterates the values from head to tail.
func (l *List[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for e := l.head; e != nil; e = e.next {
			if !yield(e.Value) {
				return
			}
		}
	}
}
