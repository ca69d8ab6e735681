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
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/trivago/tgo"
	"github.com/trivago/tgo/tcontainer"
	"gopkg.in/yaml.v2"
)

const (
	configLogLevel       = "loglevel"
	configLogFormat      = "logformat"
	configLogTimestamp   = "logtimestampformat"
	configLogColors      = "logcolors"
	configMetricsAddress = "metricsaddress"
	configHeapLimit      = "heaplimit"
	configProgram        = "program"
)

var (
	configKeys = []string{
		configLogLevel,
		configLogFormat,
		configLogTimestamp,
		configLogColors,
		configMetricsAddress,
		configHeapLimit,
		configProgram,
	}
	logFormats = []string{"console", "text", "json"}
)

// Config holds the host settings of the runtime. Keys in a yaml config are
// matched case insensitive.
type Config struct {
	LogLevel           string
	LogFormat          string
	LogTimestampFormat string
	LogColors          bool
	MetricsAddress     string
	HeapLimit          int64
	Program            string
	unknown            []string
}

// NewConfig returns a config with all values set to their defaults.
func NewConfig() *Config {
	return &Config{
		LogLevel:           "info",
		LogFormat:          "console",
		LogTimestampFormat: "2006-01-02 15:04:05 MST",
		LogColors:          true,
	}
}

// ReadConfig creates a config from a yaml byte stream. Values not set in the
// stream keep their defaults.
func ReadConfig(buffer []byte) (*Config, error) {
	config := NewConfig()

	raw := make(map[interface{}]interface{})
	if err := yaml.Unmarshal(buffer, &raw); err != nil {
		return nil, errors.Wrap(err, "failed to parse config")
	}
	if len(raw) == 0 {
		return config, nil
	}

	values, err := tcontainer.ConvertToMarshalMap(raw, strings.ToLower)
	if err != nil {
		return nil, errors.Wrap(err, "failed to convert config")
	}

	errs := tgo.NewErrorStack()
	errs.SetFormat(tgo.ErrorStackFormatCSV)

	for key := range values {
		if !isConfigKey(key) {
			config.unknown = append(config.unknown, key)
		}
	}
	sort.Strings(config.unknown)

	if _, exists := values.Value(configLogLevel); exists {
		value, err := values.String(configLogLevel)
		errs.Push(err)
		config.LogLevel = value
	}
	if _, exists := values.Value(configLogFormat); exists {
		value, err := values.String(configLogFormat)
		errs.Push(err)
		config.LogFormat = value
	}
	if _, exists := values.Value(configLogTimestamp); exists {
		value, err := values.String(configLogTimestamp)
		errs.Push(err)
		config.LogTimestampFormat = value
	}
	if _, exists := values.Value(configLogColors); exists {
		value, err := values.Bool(configLogColors)
		errs.Push(err)
		config.LogColors = value
	}
	if _, exists := values.Value(configMetricsAddress); exists {
		value, err := values.String(configMetricsAddress)
		errs.Push(err)
		config.MetricsAddress = value
	}
	if _, exists := values.Value(configHeapLimit); exists {
		value, err := values.Int(configHeapLimit)
		errs.Push(err)
		config.HeapLimit = int64(value)
	}
	if _, exists := values.Value(configProgram); exists {
		value, err := values.String(configProgram)
		errs.Push(err)
		config.Program = value
	}

	return config, errs.OrNil()
}

// ReadConfigFromFile parses a YAML config file into a new Config struct.
func ReadConfigFromFile(path string) (*Config, error) {
	buffer, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read config %s", path)
	}

	config, err := ReadConfig(buffer)
	return config, errors.Wrap(err, path)
}

// Validate checks all values on validity. All problems found are returned as
// one error.
func (conf *Config) Validate() error {
	errs := tgo.NewErrorStack()
	errs.SetFormat(tgo.ErrorStackFormatCSV)

	if _, err := logrus.ParseLevel(conf.LogLevel); err != nil {
		errs.Pushf("LogLevel '%s' is not a valid log level", conf.LogLevel)
	}

	if !isLogFormat(conf.LogFormat) {
		if suggestion := closestMatch(conf.LogFormat, logFormats); suggestion != "" {
			errs.Pushf("LogFormat '%s' is not supported. Did you mean '%s'?", conf.LogFormat, suggestion)
		} else {
			errs.Pushf("LogFormat '%s' is not supported", conf.LogFormat)
		}
	}

	if strings.TrimSpace(conf.LogTimestampFormat) == "" {
		errs.Pushf("LogTimestampFormat must not be empty")
	}

	if conf.HeapLimit < 0 {
		errs.Pushf("HeapLimit must not be negative, got %d", conf.HeapLimit)
	}

	for _, key := range conf.unknown {
		if suggestion := closestMatch(key, configKeys); suggestion != "" {
			errs.Pushf("Unknown setting '%s'. Did you mean '%s'?", key, suggestion)
		} else {
			errs.Pushf("Unknown setting '%s'", key)
		}
	}

	return errs.OrNil()
}

// Apply pushes the runtime related settings to the default allocator.
func (conf *Config) Apply() {
	DefaultAllocator.SetLimit(conf.HeapLimit)
}

func isConfigKey(key string) bool {
	for _, known := range configKeys {
		if known == key {
			return true
		}
	}
	return false
}

func isLogFormat(format string) bool {
	for _, known := range logFormats {
		if known == strings.ToLower(format) {
			return true
		}
	}
	return false
}
