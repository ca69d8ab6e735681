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
	"sort"
	"sync"

	"github.com/pkg/errors"
)

// Program is an entry point that can be started by name.
type Program struct {
	Name        string
	Description string
	Entry       func()
}

// programRegistry is a name to program registry used to start programs by
// name.
type programRegistry struct {
	programs map[string]Program
	guard    *sync.Mutex
}

// Programs is the global programRegistry instance.
// Use this instance to register entry points.
var Programs = programRegistry{
	programs: make(map[string]Program),
	guard:    new(sync.Mutex),
}

// Register a program by name. Registering the same name twice is a fault.
func (registry programRegistry) Register(name, description string, entry func()) {
	registry.guard.Lock()
	defer registry.guard.Unlock()

	if _, exists := registry.programs[name]; exists {
		Panic("runtime: program registered twice: " + name)
	}
	registry.programs[name] = Program{
		Name:        name,
		Description: description,
		Entry:       entry,
	}
}

// Get returns the program registered for the given name. If there is no such
// program the error names the closest registered one.
func (registry programRegistry) Get(name string) (Program, error) {
	registry.guard.Lock()
	defer registry.guard.Unlock()

	if program, exists := registry.programs[name]; exists {
		return program, nil
	}

	names := make([]string, 0, len(registry.programs))
	for key := range registry.programs {
		names = append(names, key)
	}
	sort.Strings(names)

	if suggestion := closestMatch(name, names); suggestion != "" {
		return Program{}, errors.Errorf("unknown program '%s', did you mean '%s'?", name, suggestion)
	}
	return Program{}, errors.Errorf("unknown program '%s'", name)
}

// GetRegistered returns all registered programs sorted by name.
func (registry programRegistry) GetRegistered() []Program {
	registry.guard.Lock()
	defer registry.guard.Unlock()

	result := make([]Program, 0, len(registry.programs))
	for _, program := range registry.programs {
		result = append(result, program)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result
}
