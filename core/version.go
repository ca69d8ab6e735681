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
	"runtime"
	"strconv"
	"strings"
)

// versionString is set at link time, i.e.
// -ldflags "-X github.com/trivago/slabrt/core.versionString=v1.2.3"
var versionString string

// GetVersionString returns the semantic version of the runtime.
func GetVersionString() string {
	if len(versionString) == 0 {
		return "0.0.0-dev"
	}
	return versionString
}

// GetVersionNumber returns the version as integer. Each part of the semver
// string is assigned to two decimals, so v1.2.3 will be 10203.
func GetVersionNumber() int64 {
	version := strings.TrimPrefix(GetVersionString(), "v")
	if idx := strings.IndexByte(version, '-'); idx >= 0 {
		version = version[:idx]
	}

	number := int64(0)
	for i, part := range strings.SplitN(version, ".", 3) {
		value, err := strconv.Atoi(part)
		if err != nil {
			break
		}
		number += int64(value) * [...]int64{10000, 100, 1}[i]
	}
	return number
}

// GetBuildFlavor describes the compile time switches this binary was built
// with, i.e. "debug,safety,refcount".
func GetBuildFlavor() string {
	flavor := make([]string, 0, 3)
	if debugBuild {
		flavor = append(flavor, "debug")
	} else {
		flavor = append(flavor, "production")
	}
	if safetyChecks {
		flavor = append(flavor, "safety")
	}
	if refCounting {
		flavor = append(flavor, "refcount")
	}
	return strings.Join(flavor, ",")
}

// GetVersionInfo returns a one line description of version, build flavor and
// go runtime.
func GetVersionInfo() string {
	return fmt.Sprintf("slabrt %s (%s) %s %s/%s", GetVersionString(), GetBuildFlavor(),
		runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
