// Package stack provides a typed last-in-first-out container.
//
// The control dependence engine uses it as an explicit work list so that
// traversals never depend on call-stack depth. Elements are stored in a
// [github.com/emirpasic/gods/stacks/arraystack] and converted back to the
// element type on the way out, so a Stack only ever holds values of T.
//
// # Usage
//
//	s := stack.New[*cdg.Node]()
//	defer s.Dispose()
//	s.Push(root)
//	for !s.IsEmpty() {
//	    n := s.MustPop()
//	    // ...
//	}
//
// A Stack is not safe for concurrent use.
package stack

import (
	"errors"

	"github.com/emirpasic/gods/stacks/arraystack"
)

// ErrEmpty is returned (or panicked with, for the Must variants) when an
// element is requested from an empty stack.
var ErrEmpty = errors.New("stack: empty")

// Stack is a LIFO container of T. The zero value is not usable; use [New].
type Stack[T any] struct {
	items *arraystack.Stack
}

// New creates an empty stack.
func New[T any]() *Stack[T] {
	return &Stack[T]{items: arraystack.New()}
}

// Push places v on top of the stack.
func (s *Stack[T]) Push(v T) {
	s.items.Push(v)
}

// Pop removes and returns the top element.
// ok is false when the stack is empty, in which case v is the zero value.
func (s *Stack[T]) Pop() (v T, ok bool) {
	raw, ok := s.items.Pop()
	if !ok {
		return v, false
	}
	return raw.(T), true
}

// MustPop is like Pop but panics with [ErrEmpty] on an empty stack.
func (s *Stack[T]) MustPop() T {
	v, ok := s.Pop()
	if !ok {
		panic(ErrEmpty)
	}
	return v
}

// Peek returns the top element without removing it.
func (s *Stack[T]) Peek() (v T, ok bool) {
	raw, ok := s.items.Peek()
	if !ok {
		return v, false
	}
	return raw.(T), true
}

// IsEmpty reports whether the stack holds no elements.
func (s *Stack[T]) IsEmpty() bool {
	return s.items.Empty()
}

// Len returns the number of elements on the stack.
func (s *Stack[T]) Len() int {
	return s.items.Size()
}

// Values returns the elements from top to bottom (pop order).
func (s *Stack[T]) Values() []T {
	raw := s.items.Values()
	out := make([]T, len(raw))
	for i, v := range raw {
		out[i] = v.(T)
	}
	return out
}

// Dispose drops every element. The stack stays usable afterwards.
func (s *Stack[T]) Dispose() {
	s.items.Clear()
}
