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

import "rivaas.dev/endpoints/route"

// Convention modifies the application after selectors have been composed and
// before they are flattened.
type Convention interface {
	Apply(app *Application) error
}

// ConventionFunc adapts a function to the Convention interface.
type ConventionFunc func(app *Application) error

// Apply calls f(app).
func (f ConventionFunc) Apply(app *Application) error {
	return f(app)
}

// RoutePrefix returns a convention that puts every attribute route under
// template and prefixes every route name with namePrefix.
//
// Controller routes are prefixed when the controller has any. Otherwise the
// action routes are, except for override routes which stay absolute.
//
//	model.RoutePrefix("api/v1", "v1.")
func RoutePrefix(template, namePrefix string) Convention {
	prefix := &route.Model{Template: route.String(template)}

	apply := func(sel *Selector) {
		sel.Route = route.CombineModels(prefix, sel.Route)
		if namePrefix != "" && sel.Route.Name != nil {
			sel.Route.Name = route.String(namePrefix + *sel.Route.Name)
		}
	}

	return ConventionFunc(func(app *Application) error {
		for _, c := range app.Controllers {
			prefixed := false
			for _, sel := range c.Selectors {
				if sel.HasRoute() {
					apply(sel)
					prefixed = true
				}
			}
			if prefixed {
				continue
			}

			for _, act := range app.ActionsOf(c) {
				for _, sel := range act.Selectors {
					if sel.HasRoute() && !sel.Route.IsOverride() {
						apply(sel)
					}
				}
			}
		}

		return nil
	})
}
