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
	"runtime"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

// Allocator keeps track of all buffers handed out to handles. It is shared by
// all goroutines of a process and therefore synchronized, unlike the handles
// and slices using it.
type Allocator struct {
	name         string
	limit        int64
	allocations  int64
	frees        int64
	liveBuffers  int64
	liveElements int64
	metric       allocatorMetric
	logger       logrus.FieldLogger
}

// AllocatorStats is a snapshot of the counters of an allocator.
type AllocatorStats struct {
	Allocations  int64
	Frees        int64
	LiveBuffers  int64
	LiveElements int64
}

// DefaultAllocator is used by all slice allocation functions.
var DefaultAllocator = NewAllocator("default")

// NewAllocator creates a new, unlimited allocator. The name is used for
// metrics and logging.
func NewAllocator(name string) *Allocator {
	return &Allocator{
		name:   name,
		metric: newAllocatorMetric(name),
		logger: logrus.WithFields(logrus.Fields{
			"Scope":     "allocator",
			"Allocator": name,
		}),
	}
}

// Name returns the name passed to NewAllocator.
func (alloc *Allocator) Name() string {
	return alloc.name
}

// SetLimit sets the maximum number of live elements. Allocations exceeding
// this limit fail. A limit <= 0 disables the check.
func (alloc *Allocator) SetLimit(elements int64) {
	atomic.StoreInt64(&alloc.limit, elements)
}

// Limit returns the number of live elements allowed.
func (alloc *Allocator) Limit() int64 {
	return atomic.LoadInt64(&alloc.limit)
}

// Stats returns the current counters.
func (alloc *Allocator) Stats() AllocatorStats {
	return AllocatorStats{
		Allocations:  atomic.LoadInt64(&alloc.allocations),
		Frees:        atomic.LoadInt64(&alloc.frees),
		LiveBuffers:  atomic.LoadInt64(&alloc.liveBuffers),
		LiveElements: atomic.LoadInt64(&alloc.liveElements),
	}
}

// reserve accounts for a new buffer of the given number of elements and
// raises an allocation fault if the limit would be exceeded.
func (alloc *Allocator) reserve(elements int) {
	live := atomic.AddInt64(&alloc.liveElements, int64(elements))
	if limit := alloc.Limit(); limit > 0 && live > limit {
		atomic.AddInt64(&alloc.liveElements, -int64(elements))
		alloc.logger.WithField("Elements", elements).Debug("Allocation exceeds heap limit")
		Panic(allocationMessage())
	}
}

// unreserve reverts reserve for allocations that did not happen.
func (alloc *Allocator) unreserve(elements int) {
	atomic.AddInt64(&alloc.liveElements, -int64(elements))
}

func (alloc *Allocator) allocated() {
	atomic.AddInt64(&alloc.allocations, 1)
	buffers := atomic.AddInt64(&alloc.liveBuffers, 1)

	alloc.metric.allocations.Inc(1)
	alloc.metric.liveBuffers.Update(buffers)
	alloc.metric.liveElements.Update(atomic.LoadInt64(&alloc.liveElements))
}

// release accounts for a freed buffer. Handles call it once per buffer.
// Releasing more buffers than were allocated is a fault.
func (alloc *Allocator) release(elements int) {
	buffers := atomic.AddInt64(&alloc.liveBuffers, -1)
	if buffers < 0 {
		atomic.AddInt64(&alloc.liveBuffers, 1)
		Panic(errDoubleFree)
	}
	live := atomic.AddInt64(&alloc.liveElements, -int64(elements))
	atomic.AddInt64(&alloc.frees, 1)

	alloc.metric.frees.Inc(1)
	alloc.metric.liveBuffers.Update(buffers)
	alloc.metric.liveElements.Update(live)
}

// allocate returns a new buffer of the given capacity. Runtime allocation
// errors are converted into allocation faults.
func allocate[T any](alloc *Allocator, capacity int) (buffer []T) {
	alloc.reserve(capacity)
	defer func() {
		if recovered := recover(); recovered != nil {
			alloc.unreserve(capacity)
			if _, isRuntimeError := recovered.(runtime.Error); isRuntimeError {
				alloc.logger.WithField("Capacity", capacity).Debug(recovered)
				Panic(allocationMessage())
			}
			panic(recovered)
		}
	}()

	buffer = make([]T, capacity)
	alloc.allocated()
	return buffer
}
