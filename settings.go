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
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/trivago/slabrt/core"
)

const (
	flagConfig    = "config"
	flagLogLevel  = "loglevel"
	flagLogFormat = "logformat"
	flagMetrics   = "metrics"
	flagHeapLimit = "heaplimit"

	envLogTimestamp = "logtimestampformat"
	envLogColors    = "logcolors"
)

// addRuntimeFlags defines all flags read by loadConfig.
func addRuntimeFlags(flags *pflag.FlagSet) {
	flags.StringP(flagConfig, "c", "", "Use a given yaml configuration file")
	flags.StringP(flagLogLevel, "l", "info", "Set the log level: debug, info, warning or error")
	flags.String(flagLogFormat, "console", "Set the log format: console, text or json")
	flags.StringP(flagMetrics, "m", "", "Address to export prometheus metrics on, e.g. :8080")
	flags.Int64(flagHeapLimit, 0, "Maximum number of live slice elements, 0 for unlimited")
}

// newSettings binds flags and SLABRT_* environment variables, i.e.
// SLABRT_LOGLEVEL=debug. Flags take precedence over the environment.
// SLABRT_LOGTIMESTAMPFORMAT and SLABRT_LOGCOLORS have no flag.
func newSettings(flags *pflag.FlagSet) (*viper.Viper, error) {
	settings := viper.New()
	settings.SetEnvPrefix("slabrt")
	settings.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	settings.AutomaticEnv()

	if err := settings.BindPFlags(flags); err != nil {
		return nil, err
	}
	return settings, nil
}

// loadConfig reads the config file, if given, and applies overrides from
// flags and environment. The result is validated.
func loadConfig(settings *viper.Viper) (*core.Config, error) {
	config := core.NewConfig()

	if path := settings.GetString(flagConfig); path != "" {
		var err error
		if config, err = core.ReadConfigFromFile(path); err != nil {
			return nil, err
		}
	}

	if settings.IsSet(flagLogLevel) {
		config.LogLevel = settings.GetString(flagLogLevel)
	}
	if settings.IsSet(flagLogFormat) {
		config.LogFormat = settings.GetString(flagLogFormat)
	}
	if settings.IsSet(envLogTimestamp) {
		config.LogTimestampFormat = settings.GetString(envLogTimestamp)
	}
	if settings.IsSet(envLogColors) {
		config.LogColors = settings.GetBool(envLogColors)
	}
	if settings.IsSet(flagMetrics) {
		config.MetricsAddress = settings.GetString(flagMetrics)
	}
	if settings.IsSet(flagHeapLimit) {
		config.HeapLimit = settings.GetInt64(flagHeapLimit)
	}

	return config, config.Validate()
}
