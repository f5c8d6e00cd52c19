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

type tokenState int

const (
	statePlaintext tokenState = iota
	stateSeenLeft
	stateSeenRight
	stateInsideToken
	stateInsideTokenSeenLeft
	stateInsideTokenSeenRight
)

// ReplaceTokens substitutes every "[token]" in template with the matching
// route value.
//
// "[[" and "]]" are literal brackets, both in plain text and inside a token
// name. Token lookup is case-insensitive; a nil value substitutes "". When
// transform is non-nil it is applied to each substituted value, never to the
// literal text around it.
//
// Errors are *TemplateSyntaxError for malformed brackets and
// *ReplacementValueNotFoundError for tokens without a value.
func ReplaceTokens(template string, values *Values, transform Transformer) (string, error) {
	var b strings.Builder
	b.Grow(len(template))

	state := statePlaintext
	tokenStart := -1

	// i == len(template) is a virtual end-of-input character.
	for i := 0; i <= len(template); i++ {
		eof := i == len(template)
		var c byte
		if !eof {
			c = template[i]
		}

		switch state {
		case statePlaintext:
			switch {
			case eof:
			case c == '[':
				state = stateSeenLeft
			case c == ']':
				state = stateSeenRight
			default:
				b.WriteByte(c)
			}

		case stateSeenLeft:
			switch {
			case eof:
				return "", syntaxError(template, ReasonUnclosedToken)
			case c == '[':
				b.WriteByte('[')
				state = statePlaintext
			default:
				tokenStart = i
				state = stateInsideToken
				i--
			}

		case stateSeenRight:
			if eof || c != ']' {
				return "", syntaxError(template, ReasonImbalanced)
			}
			b.WriteByte(']')
			state = statePlaintext

		case stateInsideToken:
			switch {
			case eof:
				return "", syntaxError(template, ReasonUnclosedToken)
			case c == '[':
				state = stateInsideTokenSeenLeft
			case c == ']':
				state = stateInsideTokenSeenRight
			}

		case stateInsideTokenSeenLeft:
			if eof || c != '[' {
				return "", syntaxError(template, ReasonUnescapedInsideOf)
			}
			state = stateInsideToken

		case stateInsideTokenSeenRight:
			if !eof && c == ']' {
				state = stateInsideToken
				continue
			}

			token := unescapeToken(template[tokenStart : i-1])
			if token == "" {
				return "", syntaxError(template, ReasonEmptyToken)
			}

			value, ok := values.Get(token)
			if !ok {
				return "", &ReplacementValueNotFoundError{
					Template:  template,
					Token:     token,
					Available: values.SortedKeys(),
				}
			}

			var text string
			if value != nil {
				text = *value
			}
			if transform != nil {
				text = transform(text)
			}
			b.WriteString(text)

			state = statePlaintext
			tokenStart = -1
			if !eof {
				i--
			}
		}
	}

	return b.String(), nil
}

// Escape doubles every bracket in s so that ReplaceTokens returns s unchanged.
func Escape(s string) string {
	if !strings.ContainsAny(s, "[]") {
		return s
	}

	r := strings.NewReplacer("[", "[[", "]", "]]")

	return r.Replace(s)
}

func unescapeToken(token string) string {
	if !strings.ContainsAny(token, "[]") {
		return token
	}

	r := strings.NewReplacer("[[", "[", "]]", "]")

	return r.Replace(token)
}

func syntaxError(template, reason string) error {
	return &TemplateSyntaxError{Template: template, Reason: reason}
}
