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

package programs

import (
	"github.com/trivago/slabrt/core"
)

const taskCount = 4

// Tasks copies parts of a slice into new slices and sums each part in its
// own task. Every task owns the part it was given, no buffer is shared.
func Tasks() {
	values := core.Alloc[int](0)
	defer values.Dealloc()
	for i := 1; i <= 16; i++ {
		values.Push(i)
	}

	results := make(chan int, taskCount)
	partLen := values.Len() / taskCount

	for i := 0; i < taskCount; i++ {
		part := core.AllocCap[int](0, partLen)
		for j := i * partLen; j < (i+1)*partLen; j++ {
			part.Push(values.At(j))
		}
		core.Spawn(&part, func(owned core.Slice[int]) {
			results <- sum(owned)
		})
	}

	total := 0
	for i := 0; i < taskCount; i++ {
		total += <-results
	}
	core.Println("sum", total)
}

func sum(values core.Slice[int]) int {
	result := 0
	for _, value := range values.All() {
		result += value
	}
	return result
}
