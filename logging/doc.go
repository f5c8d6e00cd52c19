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

// Package logging builds the structured loggers used by the endpoints
// tooling.
//
// A Logger wraps a [slog.Logger] whose handler is chosen with functional
// options. Every entry carries the component and version when they are
// configured, and the level can be changed at runtime.
//
// # Basic Usage
//
//	logger := logging.MustNew(
//	    logging.WithConsoleHandler(),
//	    logging.WithComponent("endpoints"),
//	)
//	logger.Info("composition finished", "descriptors", 12)
//
// # Composition
//
// The composer accepts any [slog.Logger]:
//
//	c := compose.MustNew(compose.WithLogger(logger.Logger()))
//
// # Trace Correlation
//
// [NewContextLogger] adds trace_id and span_id from the active
// OpenTelemetry span:
//
//	cl := logging.NewContextLogger(ctx, logger)
//	cl.Info("flatten started")
//
// # Testing
//
// [NewTestHelper] captures JSON output in memory and parses it back:
//
//	th := logging.NewTestHelper(t)
//	th.Logger.Info("hello", "n", 1)
//	th.AssertLog(t, "INFO", "hello", map[string]any{"n": 1})
package logging
