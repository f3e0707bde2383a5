// If you are AI: This file defines the composite AMF0 variants on top of the ordered list.
// Object and AssociativeArray share Properties; Array holds unnamed values.
// Each composite owns its children exclusively; trees never share nodes.

package amf0

import (
	"iter"

	"flvkit/internal/core/ordered"
)

// Property is one named entry of an Object or AssociativeArray.
type Property struct {
	Name  string
	Value Value
}

// Properties is an insertion-ordered sequence of named values.
// Names may repeat; lookups return the first match.
type Properties struct {
	list ordered.List[Property]
}

// Len returns the number of entries.
func (p *Properties) Len() int {
	return p.list.Len()
}

// Add appends an entry and returns its element.
func (p *Properties) Add(name string, v Value) *ordered.Element[Property] {
	return p.list.PushBack(Property{Name: name, Value: v})
}

// find returns the first element named name.
func (p *Properties) find(name string) *ordered.Element[Property] {
	for e := p.list.Front(); e != nil; e = e.Next() {
		if e.Value.Name == name {
			return e
		}
	}
	return nil
}

// Get returns the value of the first entry named name.
func (p *Properties) Get(name string) (Value, bool) {
	e := p.find(name)
	if e == nil {
		return nil, false
	}
	return e.Value.Value, true
}

// Set replaces the value of the first entry named name.
// Returns false when no such entry exists.
func (p *Properties) Set(name string, v Value) bool {
	e := p.find(name)
	if e == nil {
		return false
	}
	e.Value.Value = v
	return true
}

// Delete removes the first entry named name and returns its value.
func (p *Properties) Delete(name string) (Value, bool) {
	e := p.find(name)
	if e == nil {
		return nil, false
	}
	return p.list.Remove(e).Value, true
}

// Remove unlinks an element obtained from Front/Back/Add.
func (p *Properties) Remove(e *ordered.Element[Property]) Property {
	return p.list.Remove(e)
}

// Front returns the first entry element or nil.
func (p *Properties) Front() *ordered.Element[Property] {
	return p.list.Front()
}

// Back returns the last entry element or nil.
func (p *Properties) Back() *ordered.Element[Property] {
	return p.list.Back()
}

// Clear drops every entry.
func (p *Properties) Clear() {
	p.list.Clear()
}

// All iterates entries in insertion order.
func (p *Properties) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		for prop := range p.list.All() {
			if !yield(prop.Name, prop.Value) {
				return
			}
		}
	}
}

// Object is an AMF0 anonymous object.
type Object struct {
	Properties
}

// NewObject returns an empty Object.
func NewObject() *Object {
	return &Object{}
}

// Kind returns TypeObject.
func (*Object) Kind() Kind { return TypeObject }

// AssociativeArray is an AMF0 ECMA array. It has the shape of an Object;
// on the wire it is prefixed with its entry count.
type AssociativeArray struct {
	Properties
}

// NewAssociativeArray returns an empty AssociativeArray.
func NewAssociativeArray() *AssociativeArray {
	return &AssociativeArray{}
}

// Kind returns TypeECMAArray.
func (*AssociativeArray) Kind() Kind { return TypeECMAArray }

// Array is an AMF0 strict array.
type Array struct {
	list ordered.List[Value]
}

// NewArray returns an Array holding vs in order.
func NewArray(vs ...Value) *Array {
	a := &Array{}
	for _, v := range vs {
		a.list.PushBack(v)
	}
	return a
}

// Kind returns TypeStrictArray.
func (*Array) Kind() Kind { return TypeStrictArray }

// Len returns the number of elements.
func (a *Array) Len() int {
	return a.list.Len()
}

// Push appends v.
func (a *Array) Push(v Value) *ordered.Element[Value] {
	return a.list.PushBack(v)
}

// Pop removes and returns the last element.
func (a *Array) Pop() (Value, bool) {
	return a.list.PopBack()
}

// At returns the element at index i.
func (a *Array) At(i int) (Value, bool) {
	return a.list.At(i)
}

// Front returns the first element or nil.
func (a *Array) Front() *ordered.Element[Value] {
	return a.list.Front()
}

// Back returns the last element or nil.
func (a *Array) Back() *ordered.Element[Value] {
	return a.list.Back()
}

// InsertBefore inserts v before mark, which must belong to a.
func (a *Array) InsertBefore(v Value, mark *ordered.Element[Value]) *ordered.Element[Value] {
	return a.list.InsertBefore(v, mark)
}

// InsertAfter inserts v after mark, which must belong to a.
func (a *Array) InsertAfter(v Value, mark *ordered.Element[Value]) *ordered.Element[Value] {
	return a.list.InsertAfter(v, mark)
}

// Remove unlinks e, which must belong to a, and returns its value.
func (a *Array) Remove(e *ordered.Element[Value]) Value {
	return a.list.Remove(e)
}

// Clear drops every element.
func (a *Array) Clear() {
	a.list.Clear()
}

// All iterates the elements in order.
func (a *Array) All() iter.Seq[Value] {
	return a.list.All()
}

func (*Object) isValue()           {}
func (*AssociativeArray) isValue() {}
func (*Array) isValue()            {}

// isComposite reports whether v owns children.
func isComposite(v Value) bool {
	switch v.(type) {
	case *Object, *AssociativeArray, *Array:
		return true
	}
	return false
}
