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
	"net/url"
	"strings"
)

// SegmentKind classifies a template segment.
type SegmentKind uint8

const (
	// Literal is static text matched as is.
	Literal SegmentKind = iota
	// Parameter captures one path segment ("{id}").
	Parameter
	// CatchAll captures the remainder of the path ("{*path}").
	CatchAll
)

// Segment is one "/"-separated part of a route template.
type Segment struct {
	Kind  SegmentKind
	Value string // literal text or parameter name

	// Constraint is the inline constraint text, for example "int" or
	// "int:min(1)". Empty when the parameter is unconstrained.
	Constraint string
	Optional   bool
}

// Template is a parsed attribute route template.
type Template struct {
	Text     string
	Segments []Segment
}

// Parse parses a composed route template.
//
// Supported segments are literals, "{name}", "{name:constraint}",
// "{name?}" and "{*name}". A literal brace is written "{{" or "}}".
// Segments mixing literal text and parameters are rejected, as are optional
// parameters before the last segment and catch-all parameters that are not
// last. A single leading or trailing "/" is ignored; any other empty
// segment, including the whole template "//", is an error.
func Parse(template string) (*Template, error) {
	t := &Template{Text: template}
	if template == "" {
		return t, nil
	}
	seen := make(map[string]struct{})

	parts := strings.Split(template, "/")
	if parts[0] == "" {
		parts = parts[1:]
	}
	if len(parts) > 0 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}

	for i, part := range parts {
		if part == "" {
			return nil, &TemplateError{Template: template, Segment: part, Reason: "empty segment"}
		}

		seg, err := parseSegment(template, part)
		if err != nil {
			return nil, err
		}

		if seg.Kind != Literal {
			key := strings.ToLower(seg.Value)
			if _, dup := seen[key]; dup {
				return nil, &TemplateError{Template: template, Segment: part, Reason: "parameter name is used more than once"}
			}
			seen[key] = struct{}{}

			last := i == len(parts)-1
			if seg.Kind == CatchAll && !last {
				return nil, &TemplateError{Template: template, Segment: part, Reason: "a catch-all parameter must be the last segment"}
			}
			if seg.Optional && !last {
				return nil, &TemplateError{Template: template, Segment: part, Reason: "an optional parameter must be the last segment"}
			}
		}

		t.Segments = append(t.Segments, seg)
	}

	return t, nil
}

func parseSegment(template, part string) (Segment, error) {
	if len(part) >= 2 && part[0] == '{' && part[len(part)-1] == '}' && !strings.HasPrefix(part, "{{") {
		return parseParameter(template, part)
	}

	text := strings.NewReplacer("{{", "", "}}", "").Replace(part)
	if strings.ContainsAny(text, "{}") {
		return Segment{}, &TemplateError{Template: template, Segment: part, Reason: "segments mixing literal text and parameters are not supported"}
	}

	return Segment{
		Kind:  Literal,
		Value: strings.NewReplacer("{{", "{", "}}", "}").Replace(part),
	}, nil
}

func parseParameter(template, part string) (Segment, error) {
	body := part[1 : len(part)-1]
	seg := Segment{Kind: Parameter}

	if trimmed := strings.TrimLeft(body, "*"); trimmed != body {
		if len(body)-len(trimmed) > 2 {
			return Segment{}, &TemplateError{Template: template, Segment: part, Reason: "too many catch-all markers"}
		}
		seg.Kind = CatchAll
		body = trimmed
	}

	if before, ok := strings.CutSuffix(body, "?"); ok {
		if seg.Kind == CatchAll {
			return Segment{}, &TemplateError{Template: template, Segment: part, Reason: "a catch-all parameter cannot be marked optional"}
		}
		seg.Optional = true
		body = before
	}

	name, constraint, _ := strings.Cut(body, ":")
	if name == "" {
		return Segment{}, &TemplateError{Template: template, Segment: part, Reason: "parameter name is empty"}
	}
	if strings.ContainsAny(name, "{}*?=") {
		return Segment{}, &TemplateError{Template: template, Segment: part, Reason: "parameter name contains an invalid character"}
	}

	seg.Value = name
	seg.Constraint = constraint

	return seg, nil
}

// Parameters returns the parameter names in template order.
func (t *Template) Parameters() []string {
	var names []string
	for _, seg := range t.Segments {
		if seg.Kind != Literal {
			names = append(names, seg.Value)
		}
	}

	return names
}

// Path renders the template in router path syntax.
func (t *Template) Path() string {
	return render(t.Segments)
}

// Paths renders every path the template matches. A template ending in an
// optional parameter yields the path with and without it.
func (t *Template) Paths() []string {
	paths := []string{t.Path()}
	if n := len(t.Segments); n > 0 && t.Segments[n-1].Optional {
		paths = append(paths, render(t.Segments[:n-1]))
	}

	return paths
}

func render(segments []Segment) string {
	if len(segments) == 0 {
		return "/"
	}

	var buf strings.Builder
	for _, seg := range segments {
		buf.WriteByte('/')
		switch seg.Kind {
		case Parameter:
			buf.WriteByte(':')
		case CatchAll:
			buf.WriteByte('*')
		}
		buf.WriteString(seg.Value)
	}

	return buf.String()
}

// BuildURL builds a URL from the template and parameters.
// Parameter names match case-insensitively. An optional parameter without a
// value is left out. Catch-all values keep their "/" separators.
func (t *Template) BuildURL(params map[string]string, query url.Values) (string, error) {
	var buf strings.Builder

	for _, seg := range t.Segments {
		if seg.Kind == Literal {
			buf.WriteByte('/')
			buf.WriteString(seg.Value)
			continue
		}

		val, ok := lookup(params, seg.Value)
		if !ok || val == "" {
			if seg.Optional || (seg.Kind == CatchAll && ok) {
				continue
			}
			return "", missingParameter(seg.Value)
		}

		buf.WriteByte('/')
		if seg.Kind == CatchAll {
			parts := strings.Split(val, "/")
			for i, p := range parts {
				parts[i] = url.PathEscape(p)
			}
			buf.WriteString(strings.Join(parts, "/"))
		} else {
			buf.WriteString(url.PathEscape(val))
		}
	}

	if buf.Len() == 0 {
		buf.WriteByte('/')
	}

	if len(query) > 0 {
		buf.WriteByte('?')
		buf.WriteString(query.Encode())
	}

	return buf.String(), nil
}

func lookup(params map[string]string, name string) (string, bool) {
	if v, ok := params[name]; ok {
		return v, true
	}
	for k, v := range params {
		if strings.EqualFold(k, name) {
			return v, true
		}
	}

	return "", false
}
