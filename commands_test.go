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
	"bytes"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	pm "github.com/CrowdStrike/go-metrics-prometheus"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/trivago/slabrt/core"
	"github.com/trivago/tgo/ttesting"
)

func executeCommand(args ...string) (string, error) {
	out := new(bytes.Buffer)
	rootCmd.SetOut(out)
	rootCmd.SetErr(out)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return out.String(), err
}

func TestListCommand(t *testing.T) {
	expect := ttesting.NewExpect(t)

	out, err := executeCommand("list")
	expect.NoError(err)
	for _, program := range core.Programs.GetRegistered() {
		expect.Contains(out, program.Name)
	}
}

func TestVersionCommand(t *testing.T) {
	expect := ttesting.NewExpect(t)

	out, err := executeCommand("version")
	expect.NoError(err)
	expect.Contains(out, "slabrt "+core.GetVersionString())

	out, err = executeCommand("version", "--short")
	expect.NoError(err)
	expect.Equal(core.GetVersionString()+"\n", out)
}

func TestRunCommand(t *testing.T) {
	expect := ttesting.NewExpect(t)

	out := new(bytes.Buffer)
	status := -1
	defer func() {
		newBootstrap = core.NewBootstrap
		exit = os.Exit
	}()

	newBootstrap = func() core.Bootstrap {
		boot := core.NewBootstrap()
		boot.Output = out
		boot.Environment = nil
		return boot
	}
	exit = func(code int) { status = code }

	_, err := executeCommand("run", "push")
	expect.NoError(err)
	expect.Equal(core.ExitSuccess, status)
	expect.Equal("[1 2 3]\n", out.String())
}

func TestRunCommandUnknownProgram(t *testing.T) {
	expect := ttesting.NewExpect(t)

	_, err := executeCommand("run", "psuh")
	expect.NotNil(err)
	expect.Equal("unknown program 'psuh', did you mean 'push'?", err.Error())
}

func TestMetricsHandler(t *testing.T) {
	expect := ttesting.NewExpect(t)

	registry := prometheus.NewRegistry()
	client := pm.NewPrometheusProvider(core.MetricsRegistry, metricsNamespace, "", registry, 0)
	core.Catch(func() { core.Panic("counted") })
	updateMetrics(client)

	recorder := httptest.NewRecorder()
	newMetricsHandler(registry).ServeHTTP(recorder, httptest.NewRequest("GET", metricsPath, nil))

	body := recorder.Body.String()
	expect.Equal(200, recorder.Code)
	expect.True(strings.Contains(body, "slabrt_Faults"))
	expect.True(strings.Contains(body, "slabrt_Allocator:default:Allocations"))
}
