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
	"slices"

	"github.com/google/uuid"

	"rivaas.dev/endpoints/model"
)

// Descriptor is a flattened endpoint ready to be handed to a dispatcher.
type Descriptor struct {
	ID             uuid.UUID
	ControllerName string
	ActionName     string
	Method         string
	DisplayName    string
	Parameters     []model.Parameter

	// AttributeRoute is nil for conventionally routed endpoints.
	AttributeRoute    *RouteInfo
	ActionConstraints []any
	EndpointMetadata  []any

	// RouteValues holds every route value key seen anywhere in the
	// application. Keys that do not apply to this endpoint map to nil.
	RouteValues map[string]*string
	Properties  map[string]any
	APIExplorer model.APIExplorerModel
}

// RouteInfo is the resolved attribute route of a descriptor.
type RouteInfo struct {
	Template               string
	Order                  int
	Name                   string
	SuppressLinkGeneration bool
	SuppressPathMatching   bool
}

// HTTPMethods returns the accepted methods, or nil when every method is accepted.
func (d *Descriptor) HTTPMethods() []string {
	for _, c := range d.ActionConstraints {
		if hc, ok := c.(*model.HTTPMethodConstraint); ok {
			return slices.Clone(hc.Methods)
		}
	}

	return nil
}

// IsAttributeRouted reports whether the descriptor has an attribute route.
func (d *Descriptor) IsAttributeRouted() bool {
	return d.AttributeRoute != nil
}

// RouteValue returns the route value for key ("" when nil or absent).
func (d *Descriptor) RouteValue(key string) string {
	for k, v := range d.RouteValues {
		if equalFold(k, key) && v != nil {
			return *v
		}
	}

	return ""
}
