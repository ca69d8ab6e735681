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
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/trivago/tgo/ttesting"
)

func TestBootstrapRun(t *testing.T) {
	expect := ttesting.NewExpect(t)
	boot, out, rec := newTestBootstrap()
	defer restoreRuntime()

	status := boot.Run(func() {
		s := Alloc[int](0)
		defer s.Dealloc()
		s.Push(1)
		s.Push(2)
		s.Push(3)
		Println(s)
	})

	expect.Equal(ExitSuccess, status)
	expect.Equal("[1 2 3]\n", out.String())
	expect.Equal(0, len(rec.Codes()))
}

func TestBootstrapFault(t *testing.T) {
	expect := ttesting.NewExpect(t)
	if !safetyChecks {
		t.Skip("safety checks are disabled")
	}
	boot, out, rec := newTestBootstrap()
	defer restoreRuntime()

	status := boot.Run(func() {
		s := Of(1, 2, 3)
		defer s.Dealloc()
		Print("before ")
		s.At(5)
		Print("after")
	})

	codes := rec.Codes()
	expect.Equal(ExitPanic, status)
	expect.Equal(1, len(codes))
	expect.Equal(ExitPanic, codes[0])

	text := out.String()
	expect.True(strings.HasPrefix(text, "before panic: index out of range[5]\nruntime: slice indexing with out of range index"))
	expect.False(strings.Contains(text, "after"))
	if debugBuild {
		expect.Contains(text, "\nfile: ")
		expect.Contains(text, "bootstrap_test.go")
	}
}

func TestBootstrapOrder(t *testing.T) {
	expect := ttesting.NewExpect(t)
	boot, out, _ := newTestBootstrap()
	defer restoreRuntime()

	steps := []string{}
	boot.Environment = func() error {
		steps = append(steps, "environment")
		return errors.New("not fatal")
	}
	boot.Initializers.Register("main", func() { steps = append(steps, "init main") }, "util")
	boot.Initializers.Register("util", func() { steps = append(steps, "init util") })

	status := boot.Run(func() {
		steps = append(steps, "entry")
		Print("done")
	})

	expect.Equal(ExitSuccess, status)
	expect.Equal("done", out.String())
	expect.Equal("environment,init util,init main,entry", strings.Join(steps, ","))
}

func TestBootstrapInitializerFault(t *testing.T) {
	expect := ttesting.NewExpect(t)
	boot, out, rec := newTestBootstrap()
	defer restoreRuntime()

	boot.Initializers.Register("broken", func() {}, "missing")

	entered := false
	status := boot.Run(func() { entered = true })

	expect.False(entered)
	expect.Equal(ExitPanic, status)
	expect.Equal(1, len(rec.Codes()))
	expect.Contains(out.String(), "panic: package broken depends on unknown package missing")
}

func TestBootstrapInstalledTwice(t *testing.T) {
	expect := ttesting.NewExpect(t)
	boot, _, _ := newTestBootstrap()
	defer restoreRuntime()

	expect.Equal(ExitSuccess, boot.Run(func() {}))
	expect.Equal(ExitFailure, boot.Run(func() {}))
}

func TestAdjustEnvironment(t *testing.T) {
	expect := ttesting.NewExpect(t)
	expect.NoError(AdjustEnvironment())
}
