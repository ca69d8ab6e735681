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

// Launch runs task in a new, detached goroutine. There is no way to join or
// cancel the task. A fault escaping the task is handled by the top level
// fault handler, i.e. it terminates the process.
//
// Slices captured by task are shared without synchronization. Use Spawn to
// hand a slice over to the task instead.
func Launch(task func()) {
	metricTasks.Inc(1)
	go func() {
		defer HandleFault()
		task()
	}()
}

// Spawn moves the slice referenced by src into a new detached task. After
// the call *src is nil and the caller does not own a reference anymore. The
// slice is released when task returns.
func Spawn[T any](src *Slice[T], task func(Slice[T])) {
	owned := *src
	*src = Slice[T]{}

	Launch(func() {
		defer owned.Dealloc()
		task(owned)
	})
}
