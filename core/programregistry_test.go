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
	"sync"
	"testing"

	"github.com/trivago/tgo/ttesting"
)

func newTestProgramRegistry() programRegistry {
	return programRegistry{
		programs: make(map[string]Program),
		guard:    new(sync.Mutex),
	}
}

func TestProgramRegistry(t *testing.T) {
	expect := ttesting.NewExpect(t)
	registry := newTestProgramRegistry()

	called := false
	registry.Register("push", "pushes values", func() { called = true })
	registry.Register("alias", "aliases a slice", func() {})

	program, err := registry.Get("push")
	expect.NoError(err)
	expect.Equal("push", program.Name)
	expect.Equal("pushes values", program.Description)
	program.Entry()
	expect.True(called)

	programs := registry.GetRegistered()
	expect.Equal(2, len(programs))
	expect.Equal("alias", programs[0].Name)
	expect.Equal("push", programs[1].Name)
}

func TestProgramRegistrySuggestion(t *testing.T) {
	expect := ttesting.NewExpect(t)
	registry := newTestProgramRegistry()

	registry.Register("growth", "", func() {})
	registry.Register("fault", "", func() {})

	_, err := registry.Get("grwoth")
	expect.NotNil(err)
	expect.Equal("unknown program 'grwoth', did you mean 'growth'?", err.Error())

	_, err = registry.Get("completely-different")
	expect.NotNil(err)
	expect.Equal("unknown program 'completely-different'", err.Error())
}

func TestProgramRegisteredTwice(t *testing.T) {
	expect := ttesting.NewExpect(t)
	registry := newTestProgramRegistry()

	registry.Register("twice", "", func() {})
	fault := Catch(func() { registry.Register("twice", "", func() {}) })
	expect.True(fault != nil)
}

func TestClosestMatch(t *testing.T) {
	expect := ttesting.NewExpect(t)

	candidates := []string{"loglevel", "logformat", "heaplimit"}
	expect.Equal("loglevel", closestMatch("loglevl", candidates))
	expect.Equal("heaplimit", closestMatch("HeapLimits", candidates))
	expect.Equal("", closestMatch("xyz", candidates))
	expect.Equal("", closestMatch("anything", nil))
}
