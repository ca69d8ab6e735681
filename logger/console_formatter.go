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

package logger

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
)

// DefaultTimestampFormat is used if FormatOptions.TimestampFormat is empty.
const DefaultTimestampFormat = "2006-01-02 15:04:05 MST"

// FormatOptions holds the settings shared by all formatters.
type FormatOptions struct {
	TimestampFormat string
	Colors          bool
}

// NewFormatOptions returns colored output with the default timestamp format.
func NewFormatOptions() FormatOptions {
	return FormatOptions{
		TimestampFormat: DefaultTimestampFormat,
		Colors:          true,
	}
}

func (options FormatOptions) timestampFormat() string {
	if options.TimestampFormat == "" {
		return DefaultTimestampFormat
	}
	return options.TimestampFormat
}

// NewConsoleFormatter returns a prefixed formatter for terminals. Colors are
// forced on or off as requested, independent of the output device.
func NewConsoleFormatter(options FormatOptions) *prefixed.TextFormatter {
	f := prefixed.TextFormatter{
		ForceColors:     options.Colors,
		DisableColors:   !options.Colors,
		FullTimestamp:   true,
		ForceFormatting: true,
		TimestampFormat: options.timestampFormat(),
	}

	if options.Colors {
		f.SetColorScheme(&prefixed.ColorScheme{
			PrefixStyle:     "blue+h",
			InfoLevelStyle:  "white+h",
			DebugLevelStyle: "cyan",
		})
	}
	return &f
}

// NewFormatter returns the formatter registered for the given name.
// Known names are "console", "text" and "json".
func NewFormatter(name string, options FormatOptions) (logrus.Formatter, error) {
	switch strings.ToLower(name) {
	case "", "console":
		return NewConsoleFormatter(options), nil
	case "text":
		return &logrus.TextFormatter{
			DisableColors:   !options.Colors,
			FullTimestamp:   true,
			TimestampFormat: options.timestampFormat(),
		}, nil
	case "json":
		return &logrus.JSONFormatter{
			TimestampFormat: options.timestampFormat(),
		}, nil
	default:
		return nil, errors.Errorf("unknown log format '%s'", name)
	}
}
