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

package compose

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"rivaas.dev/endpoints/model"
)

func sampleApp(broken bool) *model.Application {
	app := model.NewApplication()
	cid := app.AddController("Products", model.NewRoute("api/[controller]"))
	app.AddAction(cid, "List", model.HTTPGet())
	app.AddAction(cid, "Get", model.HTTPGet("{id}"))
	if broken {
		app.AddAction(cid, "Broken", model.HTTPGet("[missing]"))
	}

	return app
}

func sumOf(t *testing.T, rm metricdata.ResourceMetrics, name string) int64 {
	t.Helper()

	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			sum, ok := m.Data.(metricdata.Sum[int64])
			require.True(t, ok, "metric %s is not an int64 sum", name)

			var total int64
			for _, dp := range sum.DataPoints {
				total += dp.Value
			}

			return total
		}
	}

	return 0
}

func TestFlatten_Tracing(t *testing.T) {
	t.Parallel()

	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	c := MustNew(WithTracerProvider(tp))

	_, err := c.Flatten(context.Background(), sampleApp(false))
	require.NoError(t, err)

	_, err = c.Flatten(context.Background(), sampleApp(true))
	require.Error(t, err)

	spans := exporter.GetSpans()
	require.Len(t, spans, 2)
	assert.Equal(t, "endpoints.compose.flatten", spans[0].Name)
	assert.Equal(t, codes.Unset, spans[0].Status.Code)
	assert.Equal(t, codes.Error, spans[1].Status.Code)

	var errorsAttr int64
	for _, kv := range spans[1].Attributes {
		if kv.Key == "endpoints.errors" {
			errorsAttr = kv.Value.AsInt64()
		}
	}
	assert.Equal(t, int64(1), errorsAttr)
}

func TestFlatten_Metrics(t *testing.T) {
	t.Parallel()

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	c := MustNew(WithMeterProvider(mp))

	_, err := c.Flatten(context.Background(), sampleApp(false))
	require.NoError(t, err)
	_, err = c.Flatten(context.Background(), sampleApp(true))
	require.Error(t, err)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	assert.Equal(t, int64(2), sumOf(t, rm, "endpoints.compose.descriptors"))
	assert.Equal(t, int64(1), sumOf(t, rm, "endpoints.compose.errors"))
}

func TestFlatten_Logging(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	c := MustNew(WithLogger(logger))

	_, err := c.Flatten(context.Background(), sampleApp(false))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "endpoints composed")
	assert.Contains(t, buf.String(), "descriptors=2")

	buf.Reset()
	_, err = c.Flatten(context.Background(), sampleApp(true))
	require.Error(t, err)
	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "routing error")
}
