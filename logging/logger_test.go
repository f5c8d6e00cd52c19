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

//go:build !integration

package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestNew_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		opts []Option
		want error
	}{
		{"nil output", []Option{WithOutput(nil)}, ErrNilOutput},
		{"unknown handler", []Option{WithHandlerType("xml")}, ErrInvalidHandler},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := New(tt.opts...)
			require.ErrorIs(t, err, tt.want)
			assert.Panics(t, func() { MustNew(tt.opts...) })
		})
	}
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want Level
		ok   bool
	}{
		{"debug", LevelDebug, true},
		{"INFO", LevelInfo, true},
		{"", LevelInfo, true},
		{" warn ", LevelWarn, true},
		{"warning", LevelWarn, true},
		{"Error", LevelError, true},
		{"verbose", LevelInfo, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			got, err := ParseLevel(tt.in)
			if !tt.ok {
				require.ErrorIs(t, err, ErrInvalidLevel)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLogger_ComponentAndVersion(t *testing.T) {
	t.Parallel()

	th := NewTestHelper(t, WithComponent("endpoints"), WithVersion("1.2.3"))
	th.Logger.Info("composition finished", "descriptors", 3)

	th.AssertLog(t, "INFO", "composition finished", map[string]any{
		"component":   "endpoints",
		"version":     "1.2.3",
		"descriptors": 3,
	})
}

func TestLogger_SetLevel(t *testing.T) {
	t.Parallel()

	th := NewTestHelper(t, WithLevel(LevelWarn))
	derived := th.Logger.With("scope", "derived")

	th.Logger.Info("dropped")
	derived.Info("dropped too")
	th.Logger.Warn("kept")
	assert.Equal(t, 1, th.CountLevel("WARN"))
	assert.Equal(t, LevelWarn, th.Logger.Level())

	th.Logger.SetLevel(LevelDebug)
	th.Logger.Debug("now visible")
	derived.Debug("derived visible")

	assert.True(t, th.ContainsLog("now visible"))
	assert.True(t, th.ContainsLog("derived visible"))
	assert.False(t, th.ContainsLog("dropped"))
	assert.Equal(t, 2, th.CountLevel("DEBUG"))
}

func TestLogger_TextHandler(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := MustNew(WithTextHandler(), WithOutput(&buf), WithComponent("cli"))
	logger.Error("failed", "err", "boom")

	out := buf.String()
	assert.Contains(t, out, "level=ERROR")
	assert.Contains(t, out, "component=cli")
	assert.Contains(t, out, "err=boom")
}

func TestLogger_ReplaceAttr(t *testing.T) {
	t.Parallel()

	th := NewTestHelper(t, WithReplaceAttr(func(_ []string, a slog.Attr) slog.Attr {
		if a.Key == "secret" {
			return slog.Attr{}
		}
		return a
	}))
	th.Logger.Info("hello", "secret", "x", "public", "y")

	last, err := th.LastLog()
	require.NoError(t, err)
	assert.NotContains(t, last.Attrs, "secret")
	assert.Equal(t, "y", last.Attrs["public"])
}

func TestTestHelper_Reset(t *testing.T) {
	t.Parallel()

	th := NewTestHelper(t)
	th.Logger.Info("one")
	th.Reset()

	_, err := th.LastLog()
	require.Error(t, err)
}

func TestContextLogger(t *testing.T) {
	t.Parallel()

	tp := sdktrace.NewTracerProvider()
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	ctx, span := tp.Tracer("test").Start(context.Background(), "flatten")
	defer span.End()

	th := NewTestHelper(t)
	cl := NewContextLogger(ctx, th.Logger)
	cl.Info("flatten started")

	sc := span.SpanContext()
	assert.Equal(t, sc.TraceID().String(), cl.TraceID())
	assert.Equal(t, sc.SpanID().String(), cl.SpanID())
	th.AssertLog(t, "INFO", "flatten started", map[string]any{
		"trace_id": sc.TraceID().String(),
		"span_id":  sc.SpanID().String(),
	})
}

func TestContextLogger_NoSpan(t *testing.T) {
	t.Parallel()

	th := NewTestHelper(t)
	cl := FromContext(context.Background(), th.Logger.Logger())
	cl.Warn("plain")

	assert.Empty(t, cl.TraceID())
	last, err := th.LastLog()
	require.NoError(t, err)
	assert.NotContains(t, last.Attrs, "trace_id")
	assert.Same(t, th.Logger.Logger(), cl.Logger())
}

func TestConsoleHandler(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := MustNew(WithConsoleHandler(), WithOutput(&buf), WithComponent("endpoints"))

	logger.With("pass", 1).WithGroup("route").Info("bound", "path", "/a/:id", "order", -1)
	logger.Debug("hidden")

	out := buf.String()
	require.Equal(t, 1, strings.Count(out, "\n"))
	assert.Contains(t, out, "INFO")
	assert.Contains(t, out, "bound")
	assert.Contains(t, out, " component=endpoints")
	assert.Contains(t, out, " pass=1")
	assert.Contains(t, out, " route.path=/a/:id")
	assert.Contains(t, out, " route.order=-1")
	assert.NotContains(t, out, "hidden")
}

func TestConsoleHandler_GroupValue(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := MustNew(WithConsoleHandler(), WithOutput(&buf))
	logger.Warn("summary", slog.Group("counts", "ok", 2, "failed", 1))

	out := buf.String()
	assert.Contains(t, out, "WARN")
	assert.Contains(t, out, " counts.ok=2")
	assert.Contains(t, out, " counts.failed=1")
}
