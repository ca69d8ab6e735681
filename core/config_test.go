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
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/trivago/tgo"
	"github.com/trivago/tgo/ttesting"
)

func TestConfigDefaults(t *testing.T) {
	expect := ttesting.NewExpect(t)

	config, err := ReadConfig([]byte(""))
	expect.NoError(err)
	expect.Equal("info", config.LogLevel)
	expect.Equal("console", config.LogFormat)
	expect.Equal("2006-01-02 15:04:05 MST", config.LogTimestampFormat)
	expect.True(config.LogColors)
	expect.Equal("", config.MetricsAddress)
	expect.Equal(int64(0), config.HeapLimit)
	expect.Equal("", config.Program)
	expect.NoError(config.Validate())
}

func TestReadConfig(t *testing.T) {
	expect := ttesting.NewExpect(t)
	testConfig := []byte(`
LogLevel: debug
logformat: json
LogTimestampFormat: "15:04:05"
LogColors: false
MetricsAddress: ":8080"
HEAPLIMIT: 4096
Program: growth
`)

	config, err := ReadConfig(testConfig)
	expect.NoError(err)
	expect.Equal("debug", config.LogLevel)
	expect.Equal("json", config.LogFormat)
	expect.Equal("15:04:05", config.LogTimestampFormat)
	expect.False(config.LogColors)
	expect.Equal(":8080", config.MetricsAddress)
	expect.Equal(int64(4096), config.HeapLimit)
	expect.Equal("growth", config.Program)
	expect.NoError(config.Validate())
}

func TestReadConfigTypeErrors(t *testing.T) {
	expect := ttesting.NewExpect(t)

	_, err := ReadConfig([]byte("HeapLimit: lots\nLogLevel: [a, b]"))
	expect.NotNil(err)
	expect.Contains(err.Error(), `"heaplimit"`)
	expect.Contains(err.Error(), `"loglevel"`)

	stack, isStack := err.(*tgo.ErrorStack)
	expect.True(isStack)
	if isStack {
		expect.Equal(2, stack.Len())
	}

	_, err = ReadConfig([]byte("{ broken"))
	expect.NotNil(err)
	expect.Contains(err.Error(), "failed to parse config")
}

func TestConfigValidate(t *testing.T) {
	expect := ttesting.NewExpect(t)

	config, err := ReadConfig([]byte("LogLevel: loud\nLogFormat: jsn\nHeapLimit: -1\nProgramm: push"))
	expect.NoError(err)

	err = config.Validate()
	expect.NotNil(err)
	expect.Contains(err.Error(), "LogLevel 'loud' is not a valid log level")
	expect.Contains(err.Error(), "LogFormat 'jsn' is not supported. Did you mean 'json'?")
	expect.Contains(err.Error(), "HeapLimit must not be negative")
	expect.Contains(err.Error(), "Unknown setting 'programm'. Did you mean 'program'?")
}

func TestReadConfigFromFile(t *testing.T) {
	expect := ttesting.NewExpect(t)

	dir, err := ioutil.TempDir("", "slabrt-config")
	expect.NoError(err)
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "runtime.yaml")
	expect.NoError(ioutil.WriteFile(path, []byte("Program: alias\n"), 0644))

	config, err := ReadConfigFromFile(path)
	expect.NoError(err)
	expect.Equal("alias", config.Program)

	_, err = ReadConfigFromFile(filepath.Join(dir, "missing.yaml"))
	expect.NotNil(err)
	expect.Contains(err.Error(), "failed to read config")
}

func TestConfigApply(t *testing.T) {
	expect := ttesting.NewExpect(t)
	defer DefaultAllocator.SetLimit(0)

	config := NewConfig()
	config.HeapLimit = 1024
	config.Apply()
	expect.Equal(int64(1024), DefaultAllocator.Limit())
}
