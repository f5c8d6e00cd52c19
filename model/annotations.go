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
	"fmt"
	"slices"
	"strings"

	"rivaas.dev/endpoints/route"
)

// Annotation is a declarative attribute attached to a controller or action.
// Any value is accepted; its behavior comes from the interfaces it implements.
type Annotation any

// RouteTemplateProvider contributes attribute routing information.
// A provider whose template, order and name are all nil is silent.
type RouteTemplateProvider interface {
	RouteTemplate() *string
	RouteOrder() *int
	RouteName() *string
}

// HTTPMethodProvider restricts the HTTP methods of the endpoint.
type HTTPMethodProvider interface {
	HTTPMethods() []string
}

// ActionConstraintMetadata marks an annotation as an action constraint.
type ActionConstraintMetadata interface {
	ActionConstraint()
}

// RouteValueProvider adds a required route value (for example an area).
type RouteValueProvider interface {
	RouteValueKey() string
	RouteValue() string
}

// APIExplorerProvider controls API explorer visibility and grouping.
type APIExplorerProvider interface {
	APIExplorerIgnored() bool
	APIExplorerGroupName() string
}

// RouteSuppressionProvider sets the suppression flags of the route it provides.
type RouteSuppressionProvider interface {
	SuppressLinkGeneration() bool
	SuppressPathMatching() bool
}

// IsSilent reports whether p declares neither template, order nor name.
func IsSilent(p RouteTemplateProvider) bool {
	return p.RouteTemplate() == nil && p.RouteOrder() == nil && p.RouteName() == nil
}

// RouteModelOf builds the route model described by p.
// It returns nil for silent providers.
func RouteModelOf(p RouteTemplateProvider) *route.Model {
	if IsSilent(p) {
		return nil
	}

	m := &route.Model{
		Template: p.RouteTemplate(),
		Order:    p.RouteOrder(),
		Name:     p.RouteName(),
	}
	if s, ok := p.(RouteSuppressionProvider); ok {
		m.SuppressLinkGeneration = s.SuppressLinkGeneration()
		m.SuppressPathMatching = s.SuppressPathMatching()
	}

	return m.Clone()
}

// Route declares a route template without restricting HTTP methods.
type Route struct {
	Template         string
	Order            *int
	Name             string
	SuppressLinks    bool
	SuppressMatching bool
}

// NewRoute creates a route annotation.
func NewRoute(template string) *Route {
	return &Route{Template: template}
}

// WithOrder sets the route order and returns r.
func (r *Route) WithOrder(order int) *Route {
	r.Order = route.Int(order)
	return r
}

// WithName sets the route name and returns r.
func (r *Route) WithName(name string) *Route {
	r.Name = name
	return r
}

func (r *Route) RouteTemplate() *string { return route.String(r.Template) }
func (r *Route) RouteOrder() *int       { return r.Order }

func (r *Route) RouteName() *string {
	if r.Name == "" {
		return nil
	}

	return route.String(r.Name)
}

func (r *Route) SuppressLinkGeneration() bool { return r.SuppressLinks }
func (r *Route) SuppressPathMatching() bool   { return r.SuppressMatching }

func (r *Route) String() string {
	return fmt.Sprintf("Route(%q)", r.Template)
}

// HTTPMethod restricts the accepted HTTP methods and optionally declares a
// route template. Without a template, order or name it is silent.
type HTTPMethod struct {
	Methods  []string
	Template *string
	Order    *int
	Name     *string
}

func httpMethod(method string, template []string) *HTTPMethod {
	h := &HTTPMethod{Methods: []string{method}}
	if len(template) > 0 {
		h.Template = route.String(template[0])
	}

	return h
}

// HTTPGet restricts the endpoint to GET. An optional template may be given.
func HTTPGet(template ...string) *HTTPMethod { return httpMethod("GET", template) }

// HTTPPost restricts the endpoint to POST.
func HTTPPost(template ...string) *HTTPMethod { return httpMethod("POST", template) }

// HTTPPut restricts the endpoint to PUT.
func HTTPPut(template ...string) *HTTPMethod { return httpMethod("PUT", template) }

// HTTPDelete restricts the endpoint to DELETE.
func HTTPDelete(template ...string) *HTTPMethod { return httpMethod("DELETE", template) }

// HTTPPatch restricts the endpoint to PATCH.
func HTTPPatch(template ...string) *HTTPMethod { return httpMethod("PATCH", template) }

// HTTPHead restricts the endpoint to HEAD.
func HTTPHead(template ...string) *HTTPMethod { return httpMethod("HEAD", template) }

// HTTPOptions restricts the endpoint to OPTIONS.
func HTTPOptions(template ...string) *HTTPMethod { return httpMethod("OPTIONS", template) }

// AcceptVerbs restricts the endpoint to the given methods without a template.
func AcceptVerbs(methods ...string) *HTTPMethod {
	return &HTTPMethod{Methods: slices.Clone(methods)}
}

// At sets the route template and returns h.
func (h *HTTPMethod) At(template string) *HTTPMethod {
	h.Template = route.String(template)
	return h
}

// WithOrder sets the route order and returns h.
func (h *HTTPMethod) WithOrder(order int) *HTTPMethod {
	h.Order = route.Int(order)
	return h
}

// WithName sets the route name and returns h.
func (h *HTTPMethod) WithName(name string) *HTTPMethod {
	h.Name = route.String(name)
	return h
}

func (h *HTTPMethod) HTTPMethods() []string  { return h.Methods }
func (h *HTTPMethod) RouteTemplate() *string { return h.Template }
func (h *HTTPMethod) RouteOrder() *int       { return h.Order }
func (h *HTTPMethod) RouteName() *string     { return h.Name }

func (h *HTTPMethod) String() string {
	if h.Template == nil {
		return fmt.Sprintf("HTTP(%s)", strings.Join(h.Methods, ","))
	}

	return fmt.Sprintf("HTTP(%s %q)", strings.Join(h.Methods, ","), *h.Template)
}

// HTTPMethodConstraint is the action constraint created for the methods of a
// selector.
type HTTPMethodConstraint struct {
	Methods []string
}

func (*HTTPMethodConstraint) ActionConstraint() {}

// Accepts reports whether method is allowed. An empty set accepts everything.
func (c *HTTPMethodConstraint) Accepts(method string) bool {
	if len(c.Methods) == 0 {
		return true
	}

	return slices.ContainsFunc(c.Methods, func(m string) bool {
		return strings.EqualFold(m, method)
	})
}

// HTTPMethodMetadata is the endpoint metadata created for the methods of a
// selector.
type HTTPMethodMetadata struct {
	Methods []string
}

// Constraint is a named action constraint, for example a required content type.
type Constraint struct {
	Name  string
	Value any
}

func (*Constraint) ActionConstraint() {}

func (c *Constraint) String() string {
	return fmt.Sprintf("%s=%v", c.Name, c.Value)
}

// Metadata is arbitrary endpoint metadata.
type Metadata struct {
	Key   string
	Value any
}

func (m *Metadata) String() string {
	return fmt.Sprintf("%s=%v", m.Key, m.Value)
}

// RouteValue adds a required route value to a controller or action.
type RouteValue struct {
	Key   string
	Value string
}

// Area declares the "area" route value.
func Area(name string) *RouteValue {
	return &RouteValue{Key: "area", Value: name}
}

func (r *RouteValue) RouteValueKey() string { return r.Key }
func (r *RouteValue) RouteValue() string    { return r.Value }

// APIExplorerSettings controls whether an endpoint is described by API
// explorers and which group it belongs to.
type APIExplorerSettings struct {
	IgnoreAPI bool
	GroupName string
}

func (s *APIExplorerSettings) APIExplorerIgnored() bool     { return s.IgnoreAPI }
func (s *APIExplorerSettings) APIExplorerGroupName() string { return s.GroupName }
