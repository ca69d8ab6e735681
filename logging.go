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
	"io/ioutil"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/trivago/slabrt/core"
	"github.com/trivago/slabrt/logger"
)

// logBuffer keeps all log messages until the configured format and level
// are known.
var logBuffer = logger.NewLogrusHookBuffer()

func init() {
	logrus.SetLevel(logrus.DebugLevel)
	logrus.SetOutput(ioutil.Discard)
	logrus.AddHook(logBuffer)
}

// configureLogging applies level and format of config and writes all
// buffered messages that pass the new level.
func configureLogging(config *core.Config) error {
	level, err := logrus.ParseLevel(config.LogLevel)
	if err != nil {
		return errors.Wrap(err, "invalid log level")
	}
	formatter, err := logger.NewFormatter(config.LogFormat, logger.FormatOptions{
		TimestampFormat: config.LogTimestampFormat,
		Colors:          config.LogColors,
	})
	if err != nil {
		return err
	}

	logrus.SetFormatter(formatter)
	logrus.SetLevel(level)
	logBuffer.SetTargetWriter(logger.FallbackLogDevice)
	return logBuffer.Purge(level)
}

// reportError logs an error returned by a command. If logging has not been
// configured yet, the message is written by flushStartupLog.
func reportError(err error) {
	logrus.WithError(err).Error("Failed to execute command")
}

// flushStartupLog writes messages still buffered, e.g. because the
// configuration could not be loaded.
func flushStartupLog() {
	if logBuffer.Len() > 0 {
		logBuffer.Purge(logrus.InfoLevel)
	}
}
