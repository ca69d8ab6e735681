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
	"bytes"
	"os"
	"strings"
	"sync"
)

// exitRecorder replaces the process exit during tests.
type exitRecorder struct {
	guard sync.Mutex
	codes []int
	done  chan int
}

func newExitRecorder() *exitRecorder {
	return &exitRecorder{
		done: make(chan int, 8),
	}
}

func (rec *exitRecorder) Exit(code int) {
	rec.guard.Lock()
	rec.codes = append(rec.codes, code)
	rec.guard.Unlock()
	rec.done <- code
}

func (rec *exitRecorder) Codes() []int {
	rec.guard.Lock()
	defer rec.guard.Unlock()
	return append([]int{}, rec.codes...)
}

// syncBuffer is a bytes.Buffer safe for use from multiple goroutines.
type syncBuffer struct {
	guard  sync.Mutex
	buffer bytes.Buffer
}

func (buf *syncBuffer) Write(data []byte) (int, error) {
	buf.guard.Lock()
	defer buf.guard.Unlock()
	return buf.buffer.Write(data)
}

func (buf *syncBuffer) String() string {
	buf.guard.Lock()
	defer buf.guard.Unlock()
	return buf.buffer.String()
}

// resetFaultHandler uninstalls the top level handler so a test can install
// its own.
func resetFaultHandler() {
	topLevel.guard.Lock()
	defer topLevel.guard.Unlock()

	topLevel.installed = false
	topLevel.output = os.Stdout
	topLevel.exit = os.Exit
}

// captureFaults installs a fault handler writing to a buffer and recording
// the exit code instead of exiting.
func captureFaults() (*syncBuffer, *exitRecorder) {
	resetFaultHandler()
	out := new(syncBuffer)
	rec := newExitRecorder()
	if err := InstallFaultHandler(out, rec.Exit); err != nil {
		panic(err)
	}
	return out, rec
}

// newTestBootstrap returns a bootstrap that writes to a buffer, records the
// exit code and uses its own initializer registry.
func newTestBootstrap() (Bootstrap, *syncBuffer, *exitRecorder) {
	resetFaultHandler()
	out := new(syncBuffer)
	rec := newExitRecorder()
	return Bootstrap{
		Output:       out,
		Exit:         rec.Exit,
		Initializers: NewInitializerRegistry(),
	}, out, rec
}

// firstLine cuts the debug location and runtime hint from a fault message.
func firstLine(message string) string {
	if idx := strings.IndexByte(message, '\n'); idx >= 0 {
		return message[:idx]
	}
	return message
}

// withoutLocation removes the "file:" suffix added in debug builds.
func withoutLocation(message string) string {
	if idx := strings.Index(message, "\nfile: "); idx >= 0 {
		return message[:idx]
	}
	return message
}

// restoreRuntime resets the fault handler and the program output after a
// bootstrap test.
func restoreRuntime() {
	resetFaultHandler()
	stdout = newOutputStream(os.Stdout)
}
