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
	"net/url"
	"strings"

	"rivaas.dev/endpoints/compose"
)

// Links builds URLs for named attribute routes.
// A Links is immutable after NewLinks and safe for concurrent use.
type Links struct {
	routes map[string]*link
	names  []string
}

type link struct {
	template   *Template
	descriptor *compose.Descriptor
}

// NewLinks indexes the named routes of descriptors. Routes that suppress
// link generation are left out. Names compare case-insensitively; when
// several descriptors share a name the first one is used.
func NewLinks(descriptors []*compose.Descriptor) (*Links, error) {
	l := &Links{routes: make(map[string]*link)}

	var errs []error
	for _, d := range descriptors {
		if d == nil || !d.IsAttributeRouted() {
			continue
		}
		info := d.AttributeRoute
		if info.Name == "" || info.SuppressLinkGeneration {
			continue
		}

		key := strings.ToLower(info.Name)
		if _, ok := l.routes[key]; ok {
			continue
		}

		tpl, err := Parse(info.Template)
		if err != nil {
			errs = append(errs, fmt.Errorf("route %q: %w", info.Name, err))
			continue
		}

		l.routes[key] = &link{template: tpl, descriptor: d}
		l.names = append(l.names, info.Name)
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return l, nil
}

// Names returns the known route names in composition order.
func (l *Links) Names() []string {
	return append([]string(nil), l.names...)
}

// Has reports whether name can be linked to.
func (l *Links) Has(name string) bool {
	_, ok := l.routes[strings.ToLower(name)]
	return ok
}

// Descriptor returns the descriptor behind a route name.
func (l *Links) Descriptor(name string) (*compose.Descriptor, bool) {
	r, ok := l.routes[strings.ToLower(name)]
	if !ok {
		return nil, false
	}

	return r.descriptor, true
}

// URL builds the URL of the named route.
func (l *Links) URL(name string, params map[string]string, query url.Values) (string, error) {
	r, ok := l.routes[strings.ToLower(name)]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrRouteNotFound, name)
	}

	return r.template.BuildURL(params, query)
}
