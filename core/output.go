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
	"bufio"
	"fmt"
	"io"
	"os"
	"sync"
)

// outputStream is the buffered, goroutine safe stdout of a program.
type outputStream struct {
	guard  sync.Mutex
	writer *bufio.Writer
}

var stdout = newOutputStream(os.Stdout)

func newOutputStream(target io.Writer) *outputStream {
	return &outputStream{
		writer: bufio.NewWriter(target),
	}
}

// Write implements io.Writer
func (stream *outputStream) Write(data []byte) (int, error) {
	stream.guard.Lock()
	defer stream.guard.Unlock()
	return stream.writer.Write(data)
}

// Flush writes all buffered data to the target writer.
func (stream *outputStream) Flush() error {
	stream.guard.Lock()
	defer stream.guard.Unlock()
	return stream.writer.Flush()
}

// Stdout returns the output stream configured by the bootstrap.
func Stdout() io.Writer {
	return stdout
}

// Print writes the default formats of values to the program output.
func Print(values ...interface{}) {
	fmt.Fprint(stdout, values...)
}

// Println writes the default formats of values, separated by spaces and
// followed by a newline, to the program output.
func Println(values ...interface{}) {
	fmt.Fprintln(stdout, values...)
}

// RedirectOutput flushes the current program output and replaces it with a
// buffered stream writing to target. The returned function restores the
// previous output. Redirecting while tasks are printing is a data race.
func RedirectOutput(target io.Writer) (restore func()) {
	previous := stdout
	previous.Flush()
	stdout = newOutputStream(target)

	return func() {
		stdout.Flush()
		stdout = previous
	}
}

// Flush writes all buffered program output.
func Flush() error {
	return stdout.Flush()
}
