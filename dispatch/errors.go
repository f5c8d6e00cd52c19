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
	"errors"
	"fmt"
)

// Static errors for dispatch.
var (
	// ErrInvalidTemplate is matched by every *TemplateError.
	ErrInvalidTemplate = errors.New("dispatch: invalid route template")

	// ErrNilRegistrar is returned by Bind when no registrar is given.
	ErrNilRegistrar = errors.New("dispatch: registrar is nil")

	// ErrRouteNotFound is returned when no link is known for a route name.
	ErrRouteNotFound = errors.New("dispatch: route name not found")

	// ErrMissingParameter is returned when a required parameter has no value.
	ErrMissingParameter = errors.New("missing required parameter")
)

// TemplateError reports a template the dispatcher cannot express.
type TemplateError struct {
	Template string
	Segment  string
	Reason   string
}

// Error implements error.
func (e *TemplateError) Error() string {
	if e.Segment == "" {
		return fmt.Sprintf("dispatch: template %q: %s", e.Template, e.Reason)
	}

	return fmt.Sprintf("dispatch: template %q segment %q: %s", e.Template, e.Segment, e.Reason)
}

// Is reports whether target is ErrInvalidTemplate.
func (e *TemplateError) Is(target error) bool {
	return target == ErrInvalidTemplate
}

func missingParameter(name string) error {
	return fmt.Errorf("%w: %s", ErrMissingParameter, name)
}
