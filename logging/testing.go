// Copyright 2025 The Rivaas Authors
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

package logging

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

// LogEntry is a parsed JSON log line.
type LogEntry struct {
	Level   string
	Message string
	Attrs   map[string]any
}

// ParseJSONLogEntries parses the JSON lines in buf without consuming it.
func ParseJSONLogEntries(buf *bytes.Buffer) ([]LogEntry, error) {
	var entries []LogEntry

	scanner := bufio.NewScanner(bytes.NewReader(buf.Bytes()))
	for scanner.Scan() {
		var raw map[string]any
		if err := json.Unmarshal(scanner.Bytes(), &raw); err != nil {
			return nil, err
		}

		entry := LogEntry{Attrs: make(map[string]any)}
		entry.Message, _ = raw["msg"].(string)
		entry.Level, _ = raw["level"].(string)
		for k, v := range raw {
			if k != "time" && k != "level" && k != "msg" {
				entry.Attrs[k] = v
			}
		}

		entries = append(entries, entry)
	}

	return entries, scanner.Err()
}

// TestHelper captures JSON log output for assertions.
type TestHelper struct {
	Logger *Logger
	Buffer *bytes.Buffer
}

// NewTestHelper creates a [TestHelper] logging at debug level.
// Additional options are applied after the defaults.
func NewTestHelper(t *testing.T, opts ...Option) *TestHelper {
	t.Helper()

	buf := &bytes.Buffer{}
	all := append([]Option{WithJSONHandler(), WithOutput(buf), WithDebugLevel()}, opts...)

	return &TestHelper{Logger: MustNew(all...), Buffer: buf}
}

// Logs returns all parsed log entries.
func (th *TestHelper) Logs() ([]LogEntry, error) {
	return ParseJSONLogEntries(th.Buffer)
}

// LastLog returns the most recent log entry.
func (th *TestHelper) LastLog() (*LogEntry, error) {
	entries, err := th.Logs()
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, errors.New("no log entries found")
	}

	return &entries[len(entries)-1], nil
}

// ContainsLog reports whether any entry has the given message.
func (th *TestHelper) ContainsLog(msg string) bool {
	entries, err := th.Logs()
	if err != nil {
		return false
	}

	for _, e := range entries {
		if e.Message == msg {
			return true
		}
	}

	return false
}

// CountLevel returns the number of entries at level ("DEBUG", "INFO"...).
func (th *TestHelper) CountLevel(level string) int {
	entries, err := th.Logs()
	if err != nil {
		return 0
	}

	n := 0
	for _, e := range entries {
		if e.Level == level {
			n++
		}
	}

	return n
}

// Reset clears the captured output.
func (th *TestHelper) Reset() {
	th.Buffer.Reset()
}

// AssertLog fails t unless an entry with level, msg and attrs exists.
// Numbers compare by value since JSON decodes them as float64.
func (th *TestHelper) AssertLog(t *testing.T, level, msg string, attrs map[string]any) {
	t.Helper()

	entries, err := th.Logs()
	require.NoError(t, err, "failed to parse logs")

	for _, e := range entries {
		if e.Level == level && e.Message == msg && attrsMatch(e.Attrs, attrs) {
			return
		}
	}

	require.Fail(t, "log entry not found", "level=%s msg=%s attrs=%v", level, msg, attrs)
}

func attrsMatch(actual, expected map[string]any) bool {
	for k, want := range expected {
		got, ok := actual[k]
		if !ok {
			return false
		}

		if f, isFloat := got.(float64); isFloat {
			switch w := want.(type) {
			case int:
				if int(f) != w {
					return false
				}
				continue
			case int64:
				if int64(f) != w {
					return false
				}
				continue
			}
		}

		if fmt.Sprint(got) != fmt.Sprint(want) {
			return false
		}
	}

	return true
}
