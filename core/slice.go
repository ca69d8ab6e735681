// Copyright 2015-2018 trivago N.V.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package core

import (
	"fmt"
	"iter"
	"strings"
)

// Slice is a view (offset, length, capacity) into a buffer owned by a Handle.
// Multiple slices may alias the same handle; writes through one of them are
// visible through all others overlapping the same range.
//
// The zero value is the nil slice. Assigning a Slice with "=" creates a
// borrowed view that does not own a reference. Owning copies are created by
// Copy, Assign and the Slice* functions and have to be released by Dealloc.
type Slice[T any] struct {
	handle   *Handle[T]
	data     []T
	offset   int
	length   int
	capacity int
}

// Alloc allocates a slice of the given length and capacity, filled with the
// zero value of T.
func Alloc[T any](length int) Slice[T] {
	if length < 0 {
		Panic(errAllocNegativeLength)
	}
	return allocSlice[T](length, length)
}

// AllocCap allocates a slice with the given length and capacity, filled with
// the zero value of T.
func AllocCap[T any](length, capacity int) Slice[T] {
	checkAllocation(length, capacity)
	return allocSlice[T](length, capacity)
}

// AllocDef allocates a slice of the given length and capacity with every
// element set to def.
func AllocDef[T any](length int, def T) Slice[T] {
	if length < 0 {
		Panic(errAllocNegativeLength)
	}
	slice := allocSlice[T](length, length)
	slice.fill(def)
	return slice
}

// AllocCapDef allocates a slice with the given length and capacity. Elements
// up to length are set to def.
func AllocCapDef[T any](length, capacity int, def T) Slice[T] {
	checkAllocation(length, capacity)
	slice := allocSlice[T](length, capacity)
	slice.fill(def)
	return slice
}

// Of creates a slice holding a copy of items. Passing no items returns the
// nil slice.
func Of[T any](items ...T) Slice[T] {
	if len(items) == 0 {
		return Slice[T]{}
	}
	slice := allocSlice[T](len(items), len(items))
	copy(slice.data, items)
	return slice
}

func checkAllocation(length, capacity int) {
	switch {
	case length < 0:
		Panic(errAllocNegativeLength)
	case capacity < 0:
		Panic(errAllocNegativeCapacity)
	case length > capacity:
		Panic(errAllocLengthOverCap)
	}
}

func allocSlice[T any](length, capacity int) Slice[T] {
	handle := NewHandle[T](DefaultAllocator, capacity)
	return Slice[T]{
		handle:   handle,
		data:     handle.buffer,
		length:   length,
		capacity: capacity,
	}
}

func (s Slice[T]) fill(def T) {
	for i := 0; i < s.length; i++ {
		s.data[i] = def
	}
}

// Len returns the number of accessible elements.
func (s Slice[T]) Len() int {
	return s.length
}

// Cap returns the number of elements available from the start of the slice
// to the end of the buffer.
func (s Slice[T]) Cap() int {
	return s.capacity
}

// Offset returns the start of the slice inside the buffer.
func (s Slice[T]) Offset() int {
	return s.offset
}

// IsNil returns true if the slice has no buffer. An allocated slice of
// length 0 is not nil.
func (s Slice[T]) IsNil() bool {
	return s.data == nil
}

// Empty returns true if the slice has no buffer, no length or no capacity.
func (s Slice[T]) Empty() bool {
	return s.data == nil || s.length == 0 || s.capacity == 0
}

// RefCount returns the number of owners of the underlying buffer.
func (s Slice[T]) RefCount() int {
	return s.handle.RefCount()
}

// SharesBuffer returns true if both slices are views into the same buffer.
func (s Slice[T]) SharesBuffer(other Slice[T]) bool {
	return s.handle != nil && s.handle == other.handle
}

func (s Slice[T]) check() {
	if s.IsNil() {
		Panic(nilSliceMessage())
	}
}

// at returns a pointer to the element at index without any checks.
func (s Slice[T]) at(index int) *T {
	return &s.data[index]
}

// Ref returns a pointer to the element at the given index.
func (s Slice[T]) Ref(index int) *T {
	if safetyChecks {
		s.check()
		if s.Empty() || index < 0 || s.length <= index {
			Panic(indexMessage(index))
		}
	}
	return s.at(index)
}

// At returns the element at the given index.
func (s Slice[T]) At(index int) T {
	return *s.Ref(index)
}

// Set stores item at the given index.
func (s Slice[T]) Set(index int, item T) {
	*s.Ref(index) = item
}

// Slice returns a new view of the elements [start, end). The new view shares
// the buffer and owns a reference to it.
func (s Slice[T]) Slice(start, end int) Slice[T] {
	if safetyChecks {
		if start != 0 && end != 0 {
			s.check()
		}
		if start < 0 || end < 0 || start > end || end > s.length {
			Panic(rangeMessage(start, end))
		}
	}

	if s.handle == nil {
		return Slice[T]{} // ### return, slicing nil yields nil ###
	}

	return Slice[T]{
		handle:   s.handle.Acquire(),
		data:     s.data[start:],
		offset:   s.offset + start,
		length:   end - start,
		capacity: s.capacity - start,
	}
}

// SliceFrom is a shortcut for Slice(start, Len()).
func (s Slice[T]) SliceFrom(start int) Slice[T] {
	return s.Slice(start, s.length)
}

// SliceAll is a shortcut for Slice(0, Len()).
func (s Slice[T]) SliceAll() Slice[T] {
	return s.Slice(0, s.length)
}

// Copy returns a new owning view of the same elements.
func (s Slice[T]) Copy() Slice[T] {
	if s.IsNil() {
		return Slice[T]{}
	}
	s.handle.Acquire()
	return s
}

// Push appends item. If the capacity is exhausted a new buffer of
// (Len()+1)*2 elements is allocated and only this slice is moved to it.
// Other aliases keep using the old buffer.
func (s *Slice[T]) Push(item T) {
	if s.length == s.capacity {
		grown := allocSlice[T](s.length+1, (s.length+1)*2)
		copy(grown.data, s.data[:s.length])
		grown.data[s.length] = item

		s.Dealloc()
		*s = grown
		return
	}

	s.data[s.length] = item
	s.length++
}

// Swap exchanges the elements at i and j.
func (s Slice[T]) Swap(i, j int) {
	if safetyChecks {
		if s.Empty() || i < 0 || s.length <= i {
			Panic(swapMessage(i))
		}
		if s.Empty() || j < 0 || s.length <= j {
			Panic(swapMessage(j))
		}
	}
	*s.at(i), *s.at(j) = *s.at(j), *s.at(i)
}

// Assign releases the current buffer and makes this slice an owning alias of
// src. Assigning a view of the buffer already owned only updates the view.
func (s *Slice[T]) Assign(src Slice[T]) {
	if s.data != nil && s.handle == src.handle {
		s.data = src.data
		s.offset = src.offset
		s.length = src.length
		s.capacity = src.capacity
		return // ### return, same buffer ###
	}

	s.Dealloc()
	*s = src.Copy()
}

// Dealloc releases the reference held by this slice and resets it to nil.
// The buffer is freed only if this was the last reference.
func (s *Slice[T]) Dealloc() {
	handle := s.handle
	*s = Slice[T]{}

	if handle != nil {
		handle.Release()
	}
}

// Equal returns true if both slices have the same length and all elements
// compare equal. A nil slice is equal to an allocated slice of length 0; use
// IsNil to tell them apart.
func Equal[T comparable](a, b Slice[T]) bool {
	return EqualFunc(a, b, func(x, y T) bool { return x == y })
}

// EqualFunc is like Equal but uses eq to compare elements.
func EqualFunc[T any](a, b Slice[T], eq func(T, T) bool) bool {
	if a.length != b.length {
		return false
	}
	for i := 0; i < a.length; i++ {
		if !eq(*a.at(i), *b.at(i)) {
			return false
		}
	}
	return true
}

// All iterates over index and value of all elements.
func (s Slice[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := 0; i < s.length; i++ {
			if !yield(i, *s.at(i)) {
				return
			}
		}
	}
}

// Values returns a copy of the elements as a go slice.
func (s Slice[T]) Values() []T {
	values := make([]T, s.length)
	copy(values, s.data[:s.length])
	return values
}

// String renders the slice as "[a b c]", or "[]" if it is empty.
func (s Slice[T]) String() string {
	if s.Empty() {
		return "[]"
	}

	builder := strings.Builder{}
	builder.WriteByte('[')
	for i := 0; i < s.length; i++ {
		if i > 0 {
			builder.WriteByte(' ')
		}
		fmt.Fprint(&builder, *s.at(i))
	}
	builder.WriteByte(']')
	return builder.String()
}
