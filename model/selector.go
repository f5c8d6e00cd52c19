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

package model

import (
	"slices"

	"rivaas.dev/endpoints/route"
)

// Selector is one way of reaching an action: an optional attribute route plus
// the constraints and metadata that apply to it.
type Selector struct {
	Route             *route.Model
	ActionConstraints []any
	EndpointMetadata  []any
}

// Clone copies the selector. Constraint and metadata values are shared.
func (s *Selector) Clone() *Selector {
	return &Selector{
		Route:             s.Route.Clone(),
		ActionConstraints: slices.Clone(s.ActionConstraints),
		EndpointMetadata:  slices.Clone(s.EndpointMetadata),
	}
}

// HasRoute reports whether the selector carries an attribute route.
func (s *Selector) HasRoute() bool {
	return s.Route != nil
}

// HTTPMethods returns the methods of the selector's HTTPMethodConstraint, or
// nil when the selector accepts every method.
func (s *Selector) HTTPMethods() []string {
	for _, c := range s.ActionConstraints {
		if hc, ok := c.(*HTTPMethodConstraint); ok {
			return hc.Methods
		}
	}

	return nil
}

// WithoutRouteProviders returns a copy of s without route template providers in
// its constraints and metadata, and without a route model.
func (s *Selector) WithoutRouteProviders() *Selector {
	keep := func(items []any) []any {
		out := make([]any, 0, len(items))
		for _, item := range items {
			if _, ok := item.(RouteTemplateProvider); ok {
				continue
			}
			out = append(out, item)
		}

		return out
	}

	return &Selector{
		ActionConstraints: keep(s.ActionConstraints),
		EndpointMetadata:  keep(s.EndpointMetadata),
	}
}
