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
	"io"
	"os"
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Fault is the payload of every panic raised through this package. A fault
// unwinds the current goroutine until it is caught by Catch or reaches the
// top level handler (HandleFault).
type Fault struct {
	message string
	cause   error
}

// NewFault creates a fault carrying the given message.
func NewFault(message string) *Fault {
	return &Fault{message: message}
}

// Error fullfills the golang error interface
func (fault *Fault) Error() string {
	return fault.message
}

// Cause returns the error this fault was raised from, if any.
func (fault *Fault) Cause() error {
	return fault.cause
}

// Unwrap allows errors.Is and errors.As to look through a fault.
func (fault *Fault) Unwrap() error {
	return fault.cause
}

// Panic raises a fault. Faults are raised as is, any other value is
// stringified into a new fault.
func Panic(value interface{}) {
	if fault, isFault := value.(*Fault); isFault && fault != nil {
		raise(fault)
	}
	raise(&Fault{message: fmt.Sprint(value)})
}

// PanicError raises a fault carrying the message of err. The error stays
// reachable through Cause.
func PanicError(err error) {
	if err == nil {
		Panic(nil)
	}
	raise(&Fault{
		message: err.Error(),
		cause:   err,
	})
}

func raise(fault *Fault) {
	metricFaults.Inc(1)
	panic(fault)
}

// AsFault converts a recovered value into a fault.
func AsFault(recovered interface{}) *Fault {
	switch value := recovered.(type) {
	case *Fault:
		return value
	case error:
		return &Fault{message: value.Error(), cause: value}
	default:
		return &Fault{message: fmt.Sprint(value)}
	}
}

// Catch runs fn and returns the fault raised by it, or nil if fn returned
// normally. Catch is the way to intercept faults below the top level.
func Catch(fn func()) (fault *Fault) {
	defer func() {
		if recovered := recover(); recovered != nil {
			fault = AsFault(recovered)
		}
	}()
	fn()
	return nil
}

type faultHandler struct {
	guard     sync.Mutex
	output    io.Writer
	exit      func(int)
	installed bool
}

var topLevel = faultHandler{
	output: os.Stdout,
	exit:   os.Exit,
}

// InstallFaultHandler configures the process wide fault handler. Faults are
// printed to output and exit is called with ExitPanic. The handler can only be
// installed once per process.
func InstallFaultHandler(output io.Writer, exit func(int)) error {
	topLevel.guard.Lock()
	defer topLevel.guard.Unlock()

	if topLevel.installed {
		return errors.New("fault handler is already installed")
	}
	if output != nil {
		topLevel.output = output
	}
	if exit != nil {
		topLevel.exit = exit
	}
	topLevel.installed = true
	return nil
}

// HandleFault is the top level fault handler. It has to be deferred directly,
// i.e. "defer core.HandleFault()".
func HandleFault() {
	if recovered := recover(); recovered != nil {
		reportFault(AsFault(recovered))
	}
}

// reportFault prints the fault and terminates. The guard stays locked while
// exiting so concurrent faults are reported only once.
func reportFault(fault *Fault) {
	topLevel.guard.Lock()
	defer topLevel.guard.Unlock()

	logrus.WithField("Scope", "runtime").WithField("ExitCode", ExitPanic).Debug("Uncaught fault")

	fmt.Fprintf(topLevel.output, "panic: %s\n", fault.Error())
	if flusher, canFlush := topLevel.output.(interface{ Flush() error }); canFlush {
		flusher.Flush()
	}
	topLevel.exit(ExitPanic)
}
