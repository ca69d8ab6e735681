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

// Package programs contains entry points of generated programs. Each program
// registers itself and its package initializers at init time so the host
// can start it by name.
package programs

import (
	"github.com/trivago/slabrt/core"
)

func init() {
	core.Programs.Register("push", "builds [1 2 3] by pushing onto an empty slice", Push)
	core.Programs.Register("alias", "writes through an alias of a slice", Alias)
	core.Programs.Register("growth", "prints length and capacity while pushing", Growth)
	core.Programs.Register("fault", "indexes out of range and terminates with status 2", Fault)
	core.Programs.Register("tasks", "hands slices over to detached tasks", Tasks)
	core.Programs.Register("primes", "prints a table built by a package initializer", Primes)
}

// Push appends three values to an allocated, empty slice.
func Push() {
	s := core.Alloc[int](0)
	defer s.Dealloc()

	s.Push(1)
	s.Push(2)
	s.Push(3)
	core.Println(s)
}

// Alias shows that reslicing shares the buffer while growing detaches it.
func Alias() {
	s := core.Of(1, 2, 3, 4)
	defer s.Dealloc()

	window := s.Slice(1, 3)
	defer window.Dealloc()

	window.Set(0, 20)
	core.Println(s, window)

	window.Push(30)
	core.Println(s, window)

	window.Push(40)
	window.Set(0, 21)
	core.Println(s, window)
}

// Growth prints the capacity progression of a slice.
func Growth() {
	var s core.Slice[int]
	defer s.Dealloc()

	for i := 0; i < 8; i++ {
		s.Push(i)
		core.Println(s.Len(), s.Cap())
	}
}

// Fault reads past the end of a slice.
func Fault() {
	s := core.Of(1, 2, 3)
	defer s.Dealloc()

	core.Println(s.At(5))
}
