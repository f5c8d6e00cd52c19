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
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Static errors for composition.
var (
	// ErrNilApplication is returned when Flatten is called without an application.
	ErrNilApplication = errors.New("compose: application is nil")

	// ErrInvalidParallelism is returned by New for a parallelism below 1.
	ErrInvalidParallelism = errors.New("compose: parallelism must be at least 1")

	// ErrMixedRouting is matched by every *MixedRoutingError.
	ErrMixedRouting = errors.New("compose: attribute and conventional routes mixed on one method")

	// ErrDuplicateRouteName is matched by every *DuplicateRouteNameError.
	ErrDuplicateRouteName = errors.New("compose: route name used with different templates")

	// ErrAPIExplorerConventional is matched by every *APIExplorerError.
	ErrAPIExplorerConventional = errors.New("compose: API explorer enabled on a conventional route")
)

const aggregateHeader = "The following errors occurred with attribute routing information:"

// AggregateError collects every problem found in one composition pass.
// Its message is a numbered report; errors.Is and errors.As reach each
// collected error.
type AggregateError struct {
	errs []error
}

func (e *AggregateError) Error() string {
	var b strings.Builder
	b.WriteString(aggregateHeader)
	for i, err := range e.errs {
		b.WriteString("\n\nError ")
		b.WriteString(strconv.Itoa(i + 1))
		b.WriteString(":\n")
		b.WriteString(err.Error())
	}

	return b.String()
}

// Errors returns the collected errors in the order they were found.
func (e *AggregateError) Errors() []error {
	return slices.Clone(e.errs)
}

// Unwrap returns the collected errors.
func (e *AggregateError) Unwrap() []error {
	return e.errs
}

// ActionError attributes an error to the action it occurred on.
type ActionError struct {
	Action string
	Err    error
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("For action: '%s'\nError: %s", e.Action, e.Err)
}

func (e *ActionError) Unwrap() error {
	return e.Err
}

// MixedRoutingEntry describes one endpoint of a method in a MixedRoutingError.
type MixedRoutingEntry struct {
	Action   string
	Template *string
	Methods  []string
}

// MixedRoutingError reports a method that has both attribute routed and
// conventionally routed endpoints.
type MixedRoutingError struct {
	Method  string
	Entries []MixedRoutingEntry
}

func (e *MixedRoutingError) Error() string {
	lines := make([]string, 0, len(e.Entries))
	for _, entry := range e.Entries {
		template := "(none)"
		if entry.Template != nil {
			template = *entry.Template
		}

		methods := slices.Clone(entry.Methods)
		slices.SortFunc(methods, func(a, b string) int {
			return strings.Compare(strings.ToUpper(a), strings.ToUpper(b))
		})

		lines = append(lines, fmt.Sprintf("Action: '%s' - Route Template: '%s' - HTTP Verbs: '%s'",
			entry.Action, template, strings.Join(methods, ", ")))
	}

	return fmt.Sprintf("A method '%s' must not define attribute routed actions and non attribute routed "+
		"actions at the same time:\n%s\n\nUse 'AcceptVerbs' to create a single route that allows multiple "+
		"HTTP verbs and defines a route, or set a route template in all annotations that constrain HTTP verbs.",
		e.Method, strings.Join(lines, "\n"))
}

// Is makes errors.Is(err, ErrMixedRouting) succeed.
func (e *MixedRoutingError) Is(target error) bool {
	return target == ErrMixedRouting
}

// RouteNameEntry describes one route in a DuplicateRouteNameError.
type RouteNameEntry struct {
	Action   string
	Template string
}

// DuplicateRouteNameError reports a route name used with different templates.
type DuplicateRouteNameError struct {
	Name    string
	Entries []RouteNameEntry
}

func (e *DuplicateRouteNameError) Error() string {
	lines := make([]string, 0, len(e.Entries))
	for _, entry := range e.Entries {
		lines = append(lines, fmt.Sprintf("Action: '%s' - Template: '%s'", entry.Action, entry.Template))
	}

	return fmt.Sprintf("Attribute routes with the same name '%s' must have the same template:\n%s",
		e.Name, strings.Join(lines, "\n"))
}

// Is makes errors.Is(err, ErrDuplicateRouteName) succeed.
func (e *DuplicateRouteNameError) Is(target error) bool {
	return target == ErrDuplicateRouteName
}

// APIExplorerError reports an API explorer visible action that is not
// attribute routed.
type APIExplorerError struct {
	Action string
}

func (e *APIExplorerError) Error() string {
	return fmt.Sprintf("The action '%s' has API explorer enabled, but is using conventional routing. "+
		"Only actions which use attribute routing support API explorer.", e.Action)
}

// Is makes errors.Is(err, ErrAPIExplorerConventional) succeed.
func (e *APIExplorerError) Is(target error) bool {
	return target == ErrAPIExplorerConventional
}
