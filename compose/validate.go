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
	"strings"
)

// validateMethods reports every method that has both attribute routed and
// conventionally routed selectors.
func validateMethods(entries []methodEntry) []error {
	var order []string
	groups := make(map[string][]methodEntry)
	for _, e := range entries {
		if _, ok := groups[e.method]; !ok {
			order = append(order, e.method)
		}
		groups[e.method] = append(groups[e.method], e)
	}

	var errs []error
	for _, method := range order {
		group := groups[method]
		if len(group) < 2 {
			continue
		}

		routed := 0
		for _, e := range group {
			if e.routed {
				routed++
			}
		}
		if routed == 0 || routed == len(group) {
			continue
		}

		err := &MixedRoutingError{Method: method}
		for _, e := range group {
			err.Entries = append(err.Entries, e.entry)
		}
		errs = append(errs, err)
	}

	return errs
}

// validateNames reports every route name used with more than one template.
// Names compare case-insensitively, templates exactly.
func (c *Composer) validateNames(entries []nameEntry) []error {
	var order []string
	groups := make(map[string][]nameEntry)
	for _, e := range entries {
		key := strings.ToLower(e.name)
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], e)
	}

	var errs []error
	for _, key := range order {
		group := groups[key]
		if len(group) < 2 {
			continue
		}

		same := true
		for _, e := range group[1:] {
			if e.entry.Template != group[0].entry.Template {
				same = false
				break
			}
		}
		if same {
			c.emit(DiagRouteNameShared, "route name shared by several endpoints", map[string]any{
				"name":     group[0].name,
				"template": group[0].entry.Template,
				"count":    len(group),
			})
			continue
		}

		err := &DuplicateRouteNameError{Name: group[0].name}
		for _, e := range group {
			err.Entries = append(err.Entries, e.entry)
		}
		errs = append(errs, err)
	}

	return errs
}
