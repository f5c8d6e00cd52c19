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

// Package selector groups the annotations of a declaration into selectors.
//
// Every route template provider that declares a template, order or name
// (a defining provider) produces its own selector. Providers that declare
// nothing (silent providers, such as a bare HTTPGet) contribute only HTTP
// methods. See Compose for the exact grouping rules.
package selector

import (
	"strings"

	"rivaas.dev/endpoints/model"
)

// Compose builds the selectors for one controller or action from its
// annotations, in declaration order.
//
// Rules:
//   - Without defining route providers, a single selector carries every
//     annotation.
//   - Each defining provider gets its own selector holding itself and every
//     annotation that is not a defining provider, in declaration order. When
//     the owner restricts HTTP methods, other method providers are left out
//     of its selector.
//   - Silent method providers get an extra route-less selector only when every
//     defining provider also restricts HTTP methods.
//
// The HTTP methods collected in a selector become one HTTPMethodConstraint
// (action constraint) and one HTTPMethodMetadata (endpoint metadata).
func Compose(annotations []model.Annotation) []*model.Selector {
	defining := make(map[int]bool)
	silent := false

	for i, ann := range annotations {
		p, ok := ann.(model.RouteTemplateProvider)
		if !ok {
			continue
		}
		if model.IsSilent(p) {
			silent = true
			continue
		}
		defining[i] = true
	}

	// A defining provider that does not restrict methods absorbs the silent ones.
	for i := range defining {
		if _, ok := annotations[i].(model.HTTPMethodProvider); !ok {
			silent = false
			break
		}
	}

	if len(defining) == 0 && !silent {
		return []*model.Selector{newSelector(nil, annotations)}
	}

	selectors := make([]*model.Selector, 0, len(defining)+1)
	for i, ann := range annotations {
		if !defining[i] {
			continue
		}

		_, ownerRestrictsMethods := ann.(model.HTTPMethodProvider)
		group := make([]model.Annotation, 0, len(annotations))
		for j, other := range annotations {
			if j != i {
				if defining[j] {
					continue
				}
				if _, ok := other.(model.HTTPMethodProvider); ok && ownerRestrictsMethods {
					continue
				}
			}
			group = append(group, other)
		}

		selectors = append(selectors, newSelector(ann.(model.RouteTemplateProvider), group))
	}

	if silent {
		group := make([]model.Annotation, 0, len(annotations))
		for j, other := range annotations {
			if !defining[j] {
				group = append(group, other)
			}
		}
		selectors = append(selectors, newSelector(nil, group))
	}

	return selectors
}

func newSelector(provider model.RouteTemplateProvider, group []model.Annotation) *model.Selector {
	sel := &model.Selector{}
	if provider != nil {
		sel.Route = model.RouteModelOf(provider)
	}

	var methods []string
	seen := make(map[string]bool)
	for _, ann := range group {
		if _, ok := ann.(model.ActionConstraintMetadata); ok {
			sel.ActionConstraints = append(sel.ActionConstraints, ann)
		}
		sel.EndpointMetadata = append(sel.EndpointMetadata, ann)

		mp, ok := ann.(model.HTTPMethodProvider)
		if !ok {
			continue
		}
		for _, m := range mp.HTTPMethods() {
			upper := strings.ToUpper(m)
			if seen[upper] {
				continue
			}
			seen[upper] = true
			methods = append(methods, upper)
		}
	}

	if len(methods) > 0 {
		sel.ActionConstraints = append(sel.ActionConstraints, &model.HTTPMethodConstraint{Methods: methods})
		sel.EndpointMetadata = append(sel.EndpointMetadata, &model.HTTPMethodMetadata{Methods: methods})
	}

	return sel
}

// Apply composes selectors for every controller and action of app whose
// Selectors field is nil. Selectors set beforehand are kept as they are.
func Apply(app *model.Application) {
	for _, c := range app.Controllers {
		if c.Selectors == nil {
			c.Selectors = Compose(c.Annotations)
		}
	}
	for _, act := range app.Actions {
		if act.Selectors == nil {
			act.Selectors = Compose(act.Annotations)
		}
	}
}
