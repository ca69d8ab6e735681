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
	"io"
	"os"
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// FallbackLogDevice is used by Purge if no target has been set.
var FallbackLogDevice io.Writer = os.Stderr

// LogrusHookBuffer implements logrus.Hook and is used to pool log messages
// during startup when the desired log format and level are not yet known.
// After a target is set, messages are relayed to targetHook and/or
// targetWriter directly.
type LogrusHookBuffer struct {
	guard        sync.Mutex
	targetHook   logrus.Hook
	targetWriter io.Writer
	buffer       []*logrus.Entry
}

// NewLogrusHookBuffer returns a LogrusHookBuffer instance
func NewLogrusHookBuffer() *LogrusHookBuffer {
	return &LogrusHookBuffer{}
}

// Levels and Fire() implement the logrus.Hook interface
func (lhb *LogrusHookBuffer) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire and Levels() implement the logrus.Hook interface.
func (lhb *LogrusHookBuffer) Fire(entry *logrus.Entry) error {
	lhb.guard.Lock()
	defer lhb.guard.Unlock()

	if lhb.targetHook == nil && lhb.targetWriter == nil {
		lhb.buffer = append(lhb.buffer, entry)
		return nil
	}
	return lhb.relayEntry(entry)
}

// SetTargetHook sets the logrus hook to whose .Fire() method messages should be relayed
func (lhb *LogrusHookBuffer) SetTargetHook(hook logrus.Hook) {
	lhb.guard.Lock()
	defer lhb.guard.Unlock()
	lhb.targetHook = hook
}

// SetTargetWriter sets the io.Writer where messages should be written
func (lhb *LogrusHookBuffer) SetTargetWriter(writer io.Writer) {
	lhb.guard.Lock()
	defer lhb.guard.Unlock()
	lhb.targetWriter = writer
}

// Len returns the number of buffered entries.
func (lhb *LogrusHookBuffer) Len() int {
	lhb.guard.Lock()
	defer lhb.guard.Unlock()
	return len(lhb.buffer)
}

// Purge sends stored messages to targetHook and/or targetWriter and empties
// the buffer. Entries below minLevel are dropped.
func (lhb *LogrusHookBuffer) Purge(minLevel logrus.Level) error {
	lhb.guard.Lock()
	defer lhb.guard.Unlock()

	if lhb.targetHook == nil && lhb.targetWriter == nil {
		lhb.targetWriter = FallbackLogDevice
	}

	var firstErr error
	for _, entry := range lhb.buffer {
		if entry.Level > minLevel {
			continue
		}
		if err := lhb.relayEntry(entry); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	lhb.buffer = nil
	return firstErr
}

// relayEntry relays one entry to the targetHook and/or writes it to targetWriter.
func (lhb *LogrusHookBuffer) relayEntry(entry *logrus.Entry) error {
	if lhb.targetHook != nil {
		if err := lhb.targetHook.Fire(entry); err != nil {
			return err
		}
	}

	if lhb.targetWriter != nil {
		serialized, err := entry.Logger.Formatter.Format(entry)
		if err != nil {
			return errors.Wrap(err, "failed to serialize log entry")
		}
		if _, err := lhb.targetWriter.Write(serialized); err != nil {
			return errors.Wrap(err, "failed to write log entry")
		}
	}
	return nil
}
