// Package dlist implements a doubly linked list of integers.
//
// The list owns its nodes exclusively: nodes are created by the push
// operations, detached and released by the pop operations, and are
// never exposed to callers. A List must not be copied after first use.
//
// The list is not safe for concurrent use. Callers that share a List
// across goroutines must provide their own synchronization.
//
// Len is an int and is not capped; exhausting it is not reachable
// before the allocator fails, and allocation failure surfaces as a
// runtime panic.
package dlist

import "iter"

// List is a doubly linked list of integers.
//
// The zero value is an empty list ready to use.
type List struct {
	head *node
	tail *node
	size int
}

// node is an element in the list.
type node struct {
	prev  *node
	next  *node
	value int
}

// PushFront inserts value at the front of the list.
func (l *List) PushFront(value int) {
	n := &node{value: value}

	if l.head == nil {
		l.head = n
		l.tail = n
		l.size++

		return
	}

	n.next = l.head
	l.head.prev = n
	l.head = n
	l.size++
}

// PushBack inserts value at the back of the list.
func (l *List) PushBack(value int) {
	n := &node{value: value}

	if l.tail == nil {
		l.head = n
		l.tail = n
		l.size++

		return
	}

	n.prev = l.tail
	l.tail.next = n
	l.tail = n
	l.size++
}

// PopFront removes the first node and returns its value. It fails with
// an [UnderflowError] on an empty list, leaving the list unchanged.
func (l *List) PopFront() (int, error) {
	if l.head == nil {
		return 0, &UnderflowError{Op: OpPopFront}
	}

	n := l.head

	l.head = n.next
	if l.head != nil {
		l.head.prev = nil
	} else {
		l.tail = nil
	}

	// Break the detached node's links so it cannot keep the chain alive.
	n.prev = nil
	n.next = nil
	l.size--

	return n.value, nil
}

// PopBack removes the last node and returns its value. It fails with
// an [UnderflowError] on an empty list, leaving the list unchanged.
func (l *List) PopBack() (int, error) {
	if l.tail == nil {
		return 0, &UnderflowError{Op: OpPopBack}
	}

	n := l.tail

	l.tail = n.prev
	if l.tail != nil {
		l.tail.next = nil
	} else {
		l.head = nil
	}

	n.prev = nil
	n.next = nil
	l.size--

	return n.value, nil
}

// Len returns the number of values in the list.
func (l *List) Len() int {
	return l.size
}

// Empty reports whether the list holds no values.
func (l *List) Empty() bool {
	return l.size == 0
}

// Front returns the first value without removing it.
// The second result is false when the list is empty.
func (l *List) Front() (int, bool) {
	if l.head == nil {
		return 0, false
	}

	return l.head.value, true
}

// Back returns the last value without removing it.
// The second result is false when the list is empty.
func (l *List) Back() (int, bool) {
	if l.tail == nil {
		return 0, false
	}

	return l.tail.value, true
}

// Clear removes every node, walking forward from the head and breaking
// the links of each node as it goes.
func (l *List) Clear() {
	for n := l.head; n != nil; {
		next := n.next
		n.prev = nil
		n.next = nil
		n = next
	}

	l.head = nil
	l.tail = nil
	l.size = 0
}

// All returns an iterator over the values in head-to-tail order.
func (l *List) All() iter.Seq[int] {
	return func(yield func(int) bool) {
		for n := l.head; n != nil; n = n.next {
			if !yield(n.value) {
				return
			}
		}
	}
}

// Backward returns an iterator over the values in tail-to-head order.
func (l *List) Backward() iter.Seq[int] {
	return func(yield func(int) bool) {
		for n := l.tail; n != nil; n = n.prev {
			if !yield(n.value) {
				return
			}
		}
	}
}
