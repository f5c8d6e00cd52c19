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

//go:build !integration

package route

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// TestReplaceTokens_EscapeRoundTrip checks that escaped literal text always
// survives token replacement unchanged.
func TestReplaceTokens_EscapeRoundTrip(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(rt *rapid.T) {
		s := rapid.StringMatching(`[a-z\[\]{}/]{0,24}`).Draw(rt, "literal")

		got, err := ReplaceTokens(Escape(s), NewValues(), nil)
		require.NoError(rt, err)
		assert.Equal(rt, s, got)
	})
}

func TestReplaceTokens_TokenResolvesToValue(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(rt *rapid.T) {
		prefix := rapid.StringMatching(`[a-z/]{0,8}`).Draw(rt, "prefix")
		name := rapid.StringMatching(`[a-zA-Z]{1,8}`).Draw(rt, "name")
		value := rapid.StringMatching(`[A-Za-z0-9]{0,8}`).Draw(rt, "value")

		values := NewValues()
		values.Set(name, String(value))

		got, err := ReplaceTokens(prefix+"["+name+"]", values, nil)
		require.NoError(rt, err)
		assert.Equal(rt, prefix+value, got)
	})
}

func TestCombineTemplates_OverrideIgnoresPrefix(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(rt *rapid.T) {
		prefix := rapid.StringMatching(`[a-z/~{}]{0,12}`).Draw(rt, "prefix")
		marker := rapid.SampledFrom([]string{"/", "~/"}).Draw(rt, "marker")
		child := marker + rapid.StringMatching(`[a-z{}]{0,8}`).Draw(rt, "child")

		withPrefix := CombineTemplates(&prefix, &child)
		withoutPrefix := CombineTemplates(nil, &child)
		require.NotNil(rt, withPrefix)
		require.NotNil(rt, withoutPrefix)
		assert.Equal(rt, *withoutPrefix, *withPrefix)
	})
}

func TestCombineTemplates_JoinsSegments(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(rt *rapid.T) {
		left := rapid.StringMatching(`[a-z{}]{1,8}(/[a-z{}]{1,8}){0,2}`).Draw(rt, "left")
		right := rapid.StringMatching(`[a-z{}]{1,8}(/[a-z{}]{1,8}){0,2}`).Draw(rt, "right")

		got := CombineTemplates(&left, &right)
		require.NotNil(rt, got)
		assert.Equal(rt, left+"/"+right, *got)

		gotLeftOnly := CombineTemplates(&left, nil)
		require.NotNil(rt, gotLeftOnly)
		assert.Equal(rt, left, *gotLeftOnly)
	})
}
