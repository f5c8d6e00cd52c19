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
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"rivaas.dev/endpoints/model"
	"rivaas.dev/endpoints/route"
)

const instrumentationName = "rivaas.dev/endpoints/compose"

// Composer flattens applications into descriptors.
// A Composer is safe for concurrent use once created.
type Composer struct {
	logger         *slog.Logger
	tracerProvider trace.TracerProvider
	meterProvider  metric.MeterProvider
	diagnostics    DiagnosticHandler
	transformer    route.Transformer
	conventions    []model.Convention
	parallelism    int
	newID          func() uuid.UUID

	tracer          trace.Tracer
	descriptorCount metric.Int64Counter
	errorCount      metric.Int64Counter
	duration        metric.Float64Histogram
}

// Option configures a Composer.
type Option func(*Composer)

// WithLogger sets the logger. By default nothing is logged.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Composer) {
		c.logger = logger
	}
}

// WithTracerProvider sets the tracer provider. Defaults to the global provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *Composer) {
		c.tracerProvider = tp
	}
}

// WithMeterProvider sets the meter provider. Defaults to the global provider.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(c *Composer) {
		c.meterProvider = mp
	}
}

// WithDiagnostics sets a handler for diagnostic events.
//
// Example:
//
//	handler := compose.DiagnosticHandlerFunc(func(e compose.DiagnosticEvent) {
//	    slog.Debug(e.Message, "kind", e.Kind, "fields", e.Fields)
//	})
//	c := compose.MustNew(compose.WithDiagnostics(handler))
func WithDiagnostics(handler DiagnosticHandler) Option {
	return func(c *Composer) {
		c.diagnostics = handler
	}
}

// WithRouteTokenTransformer transforms the values substituted for tokens in
// route templates. Route names are never transformed.
// The transformer must be safe for concurrent use when combined with
// WithParallelism.
//
//	compose.WithRouteTokenTransformer(route.KebabCase)
func WithRouteTokenTransformer(t route.Transformer) Option {
	return func(c *Composer) {
		c.transformer = t
	}
}

// WithConventions adds conventions applied after selectors are composed and
// before they are flattened, in the given order.
func WithConventions(conventions ...model.Convention) Option {
	return func(c *Composer) {
		c.conventions = append(c.conventions, conventions...)
	}
}

// WithParallelism flattens up to n controllers concurrently.
// Output order does not depend on n.
func WithParallelism(n int) Option {
	return func(c *Composer) {
		c.parallelism = n
	}
}

// WithIDGenerator replaces uuid.New for descriptor ids.
func WithIDGenerator(fn func() uuid.UUID) Option {
	return func(c *Composer) {
		c.newID = fn
	}
}

// New creates a Composer.
func New(opts ...Option) (*Composer, error) {
	c := &Composer{
		logger:      slog.New(slog.DiscardHandler),
		parallelism: 1,
		newID:       uuid.New,
	}

	for _, opt := range opts {
		opt(c)
	}

	if err := c.validate(); err != nil {
		return nil, err
	}
	if err := c.initObservability(); err != nil {
		return nil, fmt.Errorf("compose: failed to create instruments: %w", err)
	}

	return c, nil
}

// MustNew is like New but panics on error.
func MustNew(opts ...Option) *Composer {
	c, err := New(opts...)
	if err != nil {
		panic(fmt.Sprintf("compose.MustNew: %v", err))
	}

	return c
}

// Flatten flattens app with a default Composer.
func Flatten(app *model.Application) ([]*Descriptor, error) {
	c, err := New()
	if err != nil {
		return nil, err
	}

	return c.Flatten(context.Background(), app)
}

func (c *Composer) validate() error {
	if c.parallelism < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidParallelism, c.parallelism)
	}
	if c.logger == nil {
		c.logger = slog.New(slog.DiscardHandler)
	}
	if c.newID == nil {
		c.newID = uuid.New
	}

	return nil
}

func (c *Composer) initObservability() error {
	if c.tracerProvider == nil {
		c.tracerProvider = otel.GetTracerProvider()
	}
	if c.meterProvider == nil {
		c.meterProvider = otel.GetMeterProvider()
	}

	c.tracer = c.tracerProvider.Tracer(instrumentationName)
	meter := c.meterProvider.Meter(instrumentationName)

	var err error
	c.descriptorCount, err = meter.Int64Counter("endpoints.compose.descriptors",
		metric.WithDescription("Number of endpoint descriptors produced"),
		metric.WithUnit("{descriptor}"))
	if err != nil {
		return err
	}

	c.errorCount, err = meter.Int64Counter("endpoints.compose.errors",
		metric.WithDescription("Number of routing errors found"),
		metric.WithUnit("{error}"))
	if err != nil {
		return err
	}

	c.duration, err = meter.Float64Histogram("endpoints.compose.duration",
		metric.WithDescription("Duration of a composition pass"),
		metric.WithUnit("s"))

	return err
}

func (c *Composer) emit(kind DiagnosticKind, message string, fields map[string]any) {
	if c.diagnostics == nil {
		return
	}

	c.diagnostics.OnDiagnostic(DiagnosticEvent{Kind: kind, Message: message, Fields: fields})
}
