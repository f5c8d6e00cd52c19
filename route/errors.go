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
	"errors"
	"fmt"
	"strings"
)

// Static errors for token replacement.
var (
	// ErrTemplateSyntax is matched by every *TemplateSyntaxError.
	ErrTemplateSyntax = errors.New("route: invalid template syntax")

	// ErrReplacementValueNotFound is matched by every *ReplacementValueNotFoundError.
	ErrReplacementValueNotFound = errors.New("route: replacement value not found")
)

// Reasons reported by TemplateSyntaxError.
const (
	ReasonUnclosedToken     = "A replacement token is not closed."
	ReasonEmptyToken        = "An empty replacement token ('[]') is not allowed."
	ReasonImbalanced        = "Token delimiters ('[', ']') are imbalanced."
	ReasonUnescapedInsideOf = "An unescaped '[' token is not allowed inside of a replacement token. Use '[[' to escape."
)

// TemplateSyntaxError reports a malformed bracket token in a template.
type TemplateSyntaxError struct {
	Template string
	Reason   string
}

func (e *TemplateSyntaxError) Error() string {
	return fmt.Sprintf("The route template '%s' has invalid syntax. %s", e.Template, e.Reason)
}

// Is makes errors.Is(err, ErrTemplateSyntax) succeed.
func (e *TemplateSyntaxError) Is(target error) bool {
	return target == ErrTemplateSyntax
}

// ReplacementValueNotFoundError reports a token with no matching route value.
type ReplacementValueNotFoundError struct {
	Template  string
	Token     string
	Available []string
}

func (e *ReplacementValueNotFoundError) Error() string {
	return fmt.Sprintf(
		"While processing template '%s', a replacement value for the token '%s' could not be found. "+
			"Available tokens: '%s'. To use a '[' or ']' as a literal string in a route or within a "+
			"constraint, use '[[' or ']]' instead.",
		e.Template, e.Token, strings.Join(e.Available, ", "))
}

// Is makes errors.Is(err, ErrReplacementValueNotFound) succeed.
func (e *ReplacementValueNotFoundError) Is(target error) bool {
	return target == ErrReplacementValueNotFound
}
