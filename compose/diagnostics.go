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

// DiagnosticEvent is an informational event raised while flattening.
// Diagnostics never change the result of a pass.
type DiagnosticEvent struct {
	Kind    DiagnosticKind
	Message string
	Fields  map[string]any
}

// DiagnosticKind categorizes diagnostic events.
type DiagnosticKind string

const (
	DiagSelectorDropped    DiagnosticKind = "selector_dropped"
	DiagConventionalAction DiagnosticKind = "conventional_action"
	DiagRouteNameShared    DiagnosticKind = "route_name_shared"
	DiagDescriptorCreated  DiagnosticKind = "descriptor_created"
)

// DiagnosticHandler receives diagnostic events. Events are delivered from a
// single goroutine in declaration order, even with WithParallelism.
//
// Example:
//
//	handler := compose.DiagnosticHandlerFunc(func(e compose.DiagnosticEvent) {
//	    slog.Debug(e.Message, "kind", e.Kind, "fields", e.Fields)
//	})
//	c := compose.MustNew(compose.WithDiagnostics(handler))
type DiagnosticHandler interface {
	OnDiagnostic(DiagnosticEvent)
}

// DiagnosticHandlerFunc is a function adapter for DiagnosticHandler.
type DiagnosticHandlerFunc func(DiagnosticEvent)

func (f DiagnosticHandlerFunc) OnDiagnostic(e DiagnosticEvent) {
	f(e)
}
