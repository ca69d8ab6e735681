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

// Handle owns a single heap buffer of T. The handle contains a reference
// counter that frees the buffer when reaching 0. The Acquire and Release
// member functions implement this functionality.
//
// Handles are not synchronized. Acquiring or releasing the same handle from
// multiple goroutines is a data race; ownership has to be transferred (see
// Spawn) or access has to be serialized by the caller.
type Handle[T any] struct {
	buffer    []T
	allocator *Allocator
	refcount  int32
}

// NewHandle allocates a buffer of the given capacity and wraps it into a
// handle with a reference count of 1. If allocator is nil, DefaultAllocator
// is used.
func NewHandle[T any](allocator *Allocator, capacity int) *Handle[T] {
	if capacity < 0 {
		Panic(errAllocNegativeCapacity)
	}
	if allocator == nil {
		allocator = DefaultAllocator
	}
	return &Handle[T]{
		buffer:    allocate[T](allocator, capacity),
		allocator: allocator,
		refcount:  1,
	}
}

// Acquire increments the internal reference counter and returns the handle
// passed to the function. Use this function before copying a handle.
func (handle *Handle[T]) Acquire() *Handle[T] {
	if refCounting && handle != nil && handle.refcount > 0 {
		handle.refcount++
	}
	return handle
}

// Release decrements the internal reference counter and frees the buffer if
// the counter reaches 0. Release returns true if this call freed the buffer.
// Releasing a handle that has already been freed does nothing.
func (handle *Handle[T]) Release() bool {
	if handle == nil || handle.refcount <= 0 {
		return false // ### return, nothing left to release ###
	}

	if refCounting {
		handle.refcount--
		if handle.refcount > 0 {
			return false // ### return, still owned ###
		}
	}

	handle.refcount = 0
	handle.free()
	return true
}

// RefCount returns the number of current owners.
func (handle *Handle[T]) RefCount() int {
	if handle == nil {
		return 0
	}
	return int(handle.refcount)
}

// Buffer returns the backing storage or nil if the buffer has been freed.
func (handle *Handle[T]) Buffer() []T {
	if handle == nil {
		return nil
	}
	return handle.buffer
}

// Allocator returns the allocator the buffer was taken from.
func (handle *Handle[T]) Allocator() *Allocator {
	if handle == nil {
		return nil
	}
	return handle.allocator
}

// free drops buffer and counter together.
func (handle *Handle[T]) free() {
	capacity := len(handle.buffer)
	handle.buffer = nil
	handle.allocator.release(capacity)
}
