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
	"path/filepath"
	"runtime"
	"strings"
)

// Exit codes used by the bootstrap. ExitPanic is reserved for faults reaching
// the top level handler.
const (
	ExitSuccess = 0
	ExitFailure = 1
	ExitPanic   = 2
)

const (
	errInvalidMemory    = "invalid memory address or nil pointer deference"
	errAllocationFailed = "memory allocation failed"
	errIndexOutOfRange  = "index out of range"
)

const (
	errAllocNegativeLength   = "runtime: []T: slice allocation length lower than zero"
	errAllocNegativeCapacity = "runtime: []T: slice allocation capacity lower than zero"
	errAllocLengthOverCap    = "runtime: []T: slice allocation length greater than capacity"
	errDoubleFree            = "runtime: double free of buffer"
)

var corePackageDir string

func init() {
	_, file, _, _ := runtime.Caller(0)
	corePackageDir = filepath.Dir(file)
}

// callSite returns the file of the first caller outside of this package.
// Test files of this package count as callers.
func callSite() string {
	pcs := make([]uintptr, 32)
	n := runtime.Callers(2, pcs)
	frames := runtime.CallersFrames(pcs[:n])
	for {
		frame, more := frames.Next()
		if frame.File != "" && (filepath.Dir(frame.File) != corePackageDir || strings.HasSuffix(frame.File, "_test.go")) {
			return frame.File
		}
		if !more {
			return "unknown"
		}
	}
}

// withLocation appends the call site in debug builds.
func withLocation(message string) string {
	if !debugBuild {
		return message
	}
	return message + "\nfile: " + callSite()
}

func nilSliceMessage() string {
	return withLocation(errInvalidMemory + "\nruntime: slice is nil")
}

func indexMessage(index int) string {
	return withLocation(fmt.Sprintf("%s[%d]\nruntime: slice indexing with out of range index", errIndexOutOfRange, index))
}

func rangeMessage(start, end int) string {
	return withLocation(fmt.Sprintf("%s[%d:%d]\nruntime: slice slicing with out of range indexes", errIndexOutOfRange, start, end))
}

func swapMessage(index int) string {
	return fmt.Sprintf("%s[%d]\nruntime: slice element swapping with out of range index", errIndexOutOfRange, index)
}

func allocationMessage() string {
	return errAllocationFailed + "\nruntime: heap allocation failed of slice"
}
