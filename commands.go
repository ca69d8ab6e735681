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

package main

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/trivago/slabrt/core"
)

var (
	// newBootstrap creates the bootstrap used by "run".
	newBootstrap = core.NewBootstrap
	// exit terminates the process with the status of a program.
	exit = os.Exit
)

var rootCmd = &cobra.Command{
	Use:           "slabrt",
	Short:         "Host for programs built on the slabrt runtime",
	Long:          `slabrt starts registered programs with the runtime bootstrap, reports faults and exports runtime metrics.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var runCmd = &cobra.Command{
	Use:   "run [program]",
	Short: "Run a registered program",
	Long:  `Run starts the given program, or the program named in the config, and exits with its status. An uncaught fault exits with status 2.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runProgram,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all registered programs",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		table := tablewriter.NewWriter(cmd.OutOrStdout())
		table.Header("Program", "Description")
		for _, program := range core.Programs.GetRegistered() {
			table.Append([]string{program.Name, program.Description})
		}
		table.Render()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if short, _ := cmd.Flags().GetBool("short"); short {
			fmt.Fprintln(cmd.OutOrStdout(), core.GetVersionString())
			return
		}
		fmt.Fprintln(cmd.OutOrStdout(), core.GetVersionInfo())
	},
}

func init() {
	addRuntimeFlags(rootCmd.PersistentFlags())
	versionCmd.Flags().BoolP("short", "s", false, "Print the version number only")

	rootCmd.AddCommand(runCmd, listCmd, versionCmd)
}

func runProgram(cmd *cobra.Command, args []string) error {
	settings, err := newSettings(cmd.Flags())
	if err != nil {
		return err
	}

	config, err := loadConfig(settings)
	if err != nil {
		return errors.Wrap(err, "config")
	}
	if err := configureLogging(config); err != nil {
		return err
	}

	name := config.Program
	if len(args) > 0 {
		name = args[0]
	}
	if name == "" {
		return errors.New("no program given, use 'slabrt list' to show all programs")
	}

	program, err := core.Programs.Get(name)
	if err != nil {
		return err
	}

	config.Apply()

	stopMetrics := func() {}
	if config.MetricsAddress != "" {
		stopMetrics = startMetricsService(config.MetricsAddress)
	}

	logrus.WithField("Program", program.Name).Debug("Starting program")
	status := newBootstrap().Run(program.Entry)
	logrus.WithField("Program", program.Name).WithField("Status", status).Debug("Program finished")

	stopMetrics()
	exit(status)
	return nil
}
