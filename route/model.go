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

package route

import "strings"

// Model is an attribute route: the routing information carried by a selector.
//
// Nil pointers mean "not set". A nil Template means the route does not define a
// template on its own and relies on its parent (or conventional routing).
type Model struct {
	Template               *string
	Order                  *int
	Name                   *string
	SuppressLinkGeneration bool
	SuppressPathMatching   bool
}

// String returns a pointer to s.
func String(s string) *string {
	return &s
}

// Int returns a pointer to i.
func Int(i int) *int {
	return &i
}

// Clone returns a copy of m that shares no pointers with it.
// Cloning a nil model returns nil.
func (m *Model) Clone() *Model {
	if m == nil {
		return nil
	}

	c := &Model{
		SuppressLinkGeneration: m.SuppressLinkGeneration,
		SuppressPathMatching:   m.SuppressPathMatching,
	}
	if m.Template != nil {
		c.Template = String(*m.Template)
	}
	if m.Order != nil {
		c.Order = Int(*m.Order)
	}
	if m.Name != nil {
		c.Name = String(*m.Name)
	}

	return c
}

// IsOverride reports whether the model's template overrides any parent route.
func (m *Model) IsOverride() bool {
	if m == nil || m.Template == nil {
		return false
	}

	return IsOverridePattern(*m.Template)
}

// TemplateText returns the template or "" when unset.
func (m *Model) TemplateText() string {
	if m == nil || m.Template == nil {
		return ""
	}

	return *m.Template
}

// NameText returns the route name or "" when unset.
func (m *Model) NameText() string {
	if m == nil || m.Name == nil {
		return ""
	}

	return *m.Name
}

// IsOverridePattern reports whether template starts with "/" or "~/".
// Such templates ignore the route of the enclosing controller.
func IsOverridePattern(template string) bool {
	return strings.HasPrefix(template, "/") || strings.HasPrefix(template, "~/")
}
