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
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/trivago/tgo"
)

type packageInitializer struct {
	pkg      string
	deps     []string
	callback func()
}

// InitializerRegistry stores the initializers of all generated packages.
// Packages register from their init functions; the bootstrap runs them in
// dependency order.
type InitializerRegistry struct {
	entries []packageInitializer
	index   map[string]int
	guard   *sync.Mutex
	done    bool
}

// Initializers is the global InitializerRegistry instance.
var Initializers = NewInitializerRegistry()

// NewInitializerRegistry creates an empty registry.
func NewInitializerRegistry() *InitializerRegistry {
	return &InitializerRegistry{
		index: make(map[string]int),
		guard: new(sync.Mutex),
	}
}

// Register adds the initializer of package pkg. deps names the packages that
// have to be initialized before pkg. Registering a package twice is a fault.
func (registry *InitializerRegistry) Register(pkg string, callback func(), deps ...string) {
	registry.guard.Lock()
	defer registry.guard.Unlock()

	if _, exists := registry.index[pkg]; exists {
		Panic(fmt.Sprintf("runtime: package initializer registered twice: %s", pkg))
	}

	registry.index[pkg] = len(registry.entries)
	registry.entries = append(registry.entries, packageInitializer{
		pkg:      pkg,
		deps:     deps,
		callback: callback,
	})
}

// Order returns the package names in the order they will be initialized.
// Dependencies come first, otherwise registration order is kept.
func (registry *InitializerRegistry) Order() ([]string, error) {
	registry.guard.Lock()
	defer registry.guard.Unlock()

	order, err := registry.order()
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(order))
	for _, idx := range order {
		names = append(names, registry.entries[idx].pkg)
	}
	return names, nil
}

const (
	visitNone = iota
	visitActive
	visitDone
)

func (registry *InitializerRegistry) order() ([]int, error) {
	errors := tgo.NewErrorStack()
	errors.SetFormat(tgo.ErrorStackFormatCSV)

	state := make([]int, len(registry.entries))
	order := make([]int, 0, len(registry.entries))

	var visit func(idx int)
	visit = func(idx int) {
		switch state[idx] {
		case visitDone:
			return
		case visitActive:
			errors.Pushf("initializer cycle at package %s", registry.entries[idx].pkg)
			return
		}

		state[idx] = visitActive
		for _, dep := range registry.entries[idx].deps {
			depIdx, exists := registry.index[dep]
			if !exists {
				errors.Pushf("package %s depends on unknown package %s", registry.entries[idx].pkg, dep)
				continue
			}
			visit(depIdx)
		}
		state[idx] = visitDone
		order = append(order, idx)
	}

	for idx := range registry.entries {
		visit(idx)
	}
	return order, errors.OrNil()
}

// Run calls all initializers in dependency order. Subsequent calls do
// nothing. Ordering problems raise a fault.
func (registry *InitializerRegistry) Run() {
	registry.guard.Lock()
	if registry.done {
		registry.guard.Unlock()
		return // ### return, already initialized ###
	}
	registry.done = true

	order, err := registry.order()
	callbacks := make([]packageInitializer, 0, len(order))
	for _, idx := range order {
		callbacks = append(callbacks, registry.entries[idx])
	}
	registry.guard.Unlock()

	if err != nil {
		PanicError(err)
	}

	for _, initializer := range callbacks {
		logrus.WithField("Scope", "bootstrap").Debugf("Initializing package %s", initializer.pkg)
		initializer.callback()
	}
}
