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

import (
	"slices"
	"strings"
)

// Values is an ordered set of route values with case-insensitive keys.
//
// The first spelling of a key is kept; later writes with a different casing
// update the value in place. A nil value is distinct from an absent key.
// The zero value is not usable; create instances with NewValues.
type Values struct {
	keys  []string
	index map[string]int
	vals  []*string
}

// NewValues creates an empty value set.
func NewValues() *Values {
	return &Values{index: make(map[string]int)}
}

// Set stores value under key, replacing any value stored under a key that
// differs only in case.
func (v *Values) Set(key string, value *string) {
	folded := strings.ToLower(key)
	if i, ok := v.index[folded]; ok {
		v.vals[i] = value
		return
	}

	v.index[folded] = len(v.keys)
	v.keys = append(v.keys, key)
	v.vals = append(v.vals, value)
}

// Get returns the value stored under key and whether the key is present.
func (v *Values) Get(key string) (*string, bool) {
	if v == nil {
		return nil, false
	}

	i, ok := v.index[strings.ToLower(key)]
	if !ok {
		return nil, false
	}

	return v.vals[i], true
}

// Has reports whether key is present.
func (v *Values) Has(key string) bool {
	_, ok := v.Get(key)
	return ok
}

// Len returns the number of keys.
func (v *Values) Len() int {
	if v == nil {
		return 0
	}

	return len(v.keys)
}

// Keys returns the keys in insertion order.
func (v *Values) Keys() []string {
	if v == nil {
		return nil
	}

	return slices.Clone(v.keys)
}

// SortedKeys returns the keys sorted ordinally.
func (v *Values) SortedKeys() []string {
	keys := v.Keys()
	slices.Sort(keys)

	return keys
}

// Merge copies every entry of other into v. Entries in other win.
func (v *Values) Merge(other *Values) {
	if other == nil {
		return
	}

	for i, key := range other.keys {
		v.Set(key, other.vals[i])
	}
}

// Clone returns an independent copy of v.
func (v *Values) Clone() *Values {
	c := NewValues()
	c.Merge(v)

	return c
}

// Map returns the values as a plain map keyed by the stored spelling.
func (v *Values) Map() map[string]*string {
	if v == nil {
		return map[string]*string{}
	}

	m := make(map[string]*string, len(v.keys))
	for i, key := range v.keys {
		m[key] = v.vals[i]
	}

	return m
}
