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

package dispatch

import (
	"cmp"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"rivaas.dev/endpoints/compose"
)

// AnyMethod is the method registered for descriptors that accept every
// HTTP method.
const AnyMethod = "*"

// Registrar receives the routes of attribute-routed descriptors.
//
// Register is called once per method and path, in ascending route order.
// Descriptors with equal order keep their composition order.
type Registrar interface {
	Register(method, path string, d *compose.Descriptor) error
}

// RegistrarFunc adapts a function to the Registrar interface.
type RegistrarFunc func(method, path string, d *compose.Descriptor) error

// Register calls f(method, path, d).
func (f RegistrarFunc) Register(method, path string, d *compose.Descriptor) error {
	return f(method, path, d)
}

// Binding is one registration made by Bind.
type Binding struct {
	Method     string
	Path       string
	Order      int
	Descriptor *compose.Descriptor
}

// BindOption configures Bind.
type BindOption func(*binder)

type binder struct {
	logger *slog.Logger
}

// WithBindLogger logs every registration at debug level.
func WithBindLogger(logger *slog.Logger) BindOption {
	return func(b *binder) {
		b.logger = logger
	}
}

// Bind registers the attribute-routed descriptors with r.
//
// Conventionally routed descriptors and descriptors whose route suppresses
// path matching are skipped. Templates are all parsed before anything is
// registered; parse failures are joined and nothing is registered. A
// registrar error stops binding and is returned with the bindings made so
// far.
func Bind(r Registrar, descriptors []*compose.Descriptor, opts ...BindOption) ([]Binding, error) {
	if r == nil {
		return nil, ErrNilRegistrar
	}

	b := &binder{}
	for _, opt := range opts {
		opt(b)
	}

	pending, err := Plan(descriptors)
	if err != nil {
		return nil, err
	}

	bound := make([]Binding, 0, len(pending))
	for _, p := range pending {
		if err := r.Register(p.Method, p.Path, p.Descriptor); err != nil {
			return bound, fmt.Errorf("dispatch: register %s %s for %s: %w", p.Method, p.Path, p.Descriptor.DisplayName, err)
		}
		if b.logger != nil {
			b.logger.Debug("route bound",
				"method", p.Method,
				"path", p.Path,
				"order", p.Order,
				"action", p.Descriptor.DisplayName,
			)
		}
		bound = append(bound, p)
	}

	return bound, nil
}

// Plan computes the bindings Bind would make without registering them.
func Plan(descriptors []*compose.Descriptor) ([]Binding, error) {
	var (
		bindings []Binding
		errs     []error
	)

	for _, d := range descriptors {
		if d == nil || !d.IsAttributeRouted() || d.AttributeRoute.SuppressPathMatching {
			continue
		}

		tpl, err := Parse(d.AttributeRoute.Template)
		if err != nil {
			errs = append(errs, fmt.Errorf("for action %q: %w", d.DisplayName, err))
			continue
		}

		methods := d.HTTPMethods()
		if len(methods) == 0 {
			methods = []string{AnyMethod}
		}

		for _, path := range tpl.Paths() {
			for _, m := range methods {
				bindings = append(bindings, Binding{
					Method:     m,
					Path:       path,
					Order:      d.AttributeRoute.Order,
					Descriptor: d,
				})
			}
		}
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	slices.SortStableFunc(bindings, func(a, b Binding) int {
		return cmp.Compare(a.Order, b.Order)
	})

	return bindings, nil
}
