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

package main

import (
	"fmt"
	"net/http"

	"github.com/trivago/slabrt/core"
)

const (
	healthAlivePath     = "/_ALIVE"
	healthAllocatorPath = "/_ALLOCATOR"
)

// addHealthEndpoints registers the health endpoints next to the metrics endpoint.
func addHealthEndpoints(mux *http.ServeMux) {
	mux.HandleFunc(healthAlivePath, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "ALIVE")
	})
	mux.HandleFunc(healthAllocatorPath, func(w http.ResponseWriter, r *http.Request) {
		code, body := allocatorHealth(core.DefaultAllocator)
		w.WriteHeader(code)
		fmt.Fprintln(w, body)
	})
}

// allocatorHealth reports StatusServiceUnavailable once the heap limit of
// alloc is exhausted.
func allocatorHealth(alloc *core.Allocator) (int, string) {
	stats := alloc.Stats()
	limit := alloc.Limit()
	body := fmt.Sprintf("allocator=%s buffers=%d elements=%d limit=%d",
		alloc.Name(), stats.LiveBuffers, stats.LiveElements, limit)

	if limit > 0 && stats.LiveElements >= limit {
		return http.StatusServiceUnavailable, body
	}
	return http.StatusOK, body
}
