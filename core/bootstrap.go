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
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"go.uber.org/automaxprocs/maxprocs"
)

// Bootstrap starts a program. Run executes the following steps in order:
// configure the output stream, install the fault handler, adjust the host
// environment, call all package initializers and finally the entry point.
type Bootstrap struct {
	// Output is the stdout of the program. Faults are printed here, too.
	Output io.Writer
	// Exit terminates the process after a fault.
	Exit func(int)
	// Initializers are run in dependency order before the entry point.
	Initializers *InitializerRegistry
	// Environment adjusts the host environment. May be nil.
	Environment func() error
}

// NewBootstrap returns a bootstrap writing to os.Stdout and using the global
// initializer registry.
func NewBootstrap() Bootstrap {
	return Bootstrap{
		Output:       os.Stdout,
		Exit:         os.Exit,
		Initializers: Initializers,
		Environment:  AdjustEnvironment,
	}
}

// AdjustEnvironment sets GOMAXPROCS to match the CPU quota of the host.
func AdjustEnvironment() error {
	logger := logrus.WithField("Scope", "bootstrap")
	_, err := maxprocs.Set(maxprocs.Logger(logger.Debugf))
	return err
}

// Run starts entry and returns ExitSuccess once it returns. If a fault
// escapes, it is printed and Exit is called with ExitPanic. Run returns
// ExitPanic in that case, if Exit returns at all.
func (boot Bootstrap) Run(entry func()) (status int) {
	logger := logrus.WithField("Scope", "bootstrap")

	output := boot.Output
	if output == nil {
		output = os.Stdout
	}
	RedirectOutput(output)

	if err := InstallFaultHandler(stdout, boot.Exit); err != nil {
		logger.WithError(err).Error("Failed to install fault handler")
		return ExitFailure
	}

	status = ExitPanic
	defer HandleFault()

	if boot.Environment != nil {
		if err := boot.Environment(); err != nil {
			logger.WithError(err).Warning("Failed to adjust environment")
		}
	}

	if boot.Initializers != nil {
		boot.Initializers.Run()
	}

	logger.Debug("Starting entry point")
	entry()

	if err := Flush(); err != nil {
		logger.WithError(err).Error("Failed to flush output")
	}
	return ExitSuccess
}
