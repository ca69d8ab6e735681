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
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/trivago/slabrt/core"
	"github.com/trivago/tgo/ttesting"
)

func TestHealthAlive(t *testing.T) {
	expect := ttesting.NewExpect(t)

	recorder := httptest.NewRecorder()
	newMetricsHandler(prometheus.NewRegistry()).ServeHTTP(recorder, httptest.NewRequest("GET", healthAlivePath, nil))

	expect.Equal(http.StatusOK, recorder.Code)
	expect.Equal("ALIVE\n", recorder.Body.String())
}

func TestAllocatorHealth(t *testing.T) {
	expect := ttesting.NewExpect(t)

	alloc := core.NewAllocator("health")
	handle := core.NewHandle[int](alloc, 10)
	defer handle.Release()

	code, body := allocatorHealth(alloc)
	expect.Equal(http.StatusOK, code)
	expect.Equal("allocator=health buffers=1 elements=10 limit=0", body)

	alloc.SetLimit(10)
	code, _ = allocatorHealth(alloc)
	expect.Equal(http.StatusServiceUnavailable, code)
}
