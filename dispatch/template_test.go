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

package dispatch

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Paths(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		template string
		want     []string
	}{
		{"empty", "", []string{"/"}},
		{"literal", "api/products", []string{"/api/products"}},
		{"parameter", "products/{id}", []string{"/products/:id"}},
		{"constrained", "products/{id:int}", []string{"/products/:id"}},
		{"two constraints", "products/{id:int:min(1)}", []string{"/products/:id"}},
		{"optional", "products/{id?}", []string{"/products/:id", "/products"}},
		{"optional only", "{page?}", []string{"/:page", "/"}},
		{"catch-all", "files/{*path}", []string{"/files/*path"}},
		{"double star catch-all", "files/{**path}", []string{"/files/*path"}},
		{"root", "/", []string{"/"}},
		{"leading and trailing slash", "/api/{id}/", []string{"/api/:id"}},
		{"escaped braces", "{{literal}}/x", []string{"/{literal}/x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tpl, err := Parse(tt.template)
			require.NoError(t, err)
			assert.Equal(t, tt.want, tpl.Paths())
			assert.Equal(t, tt.want[0], tpl.Path())
		})
	}
}

func TestParse_Segments(t *testing.T) {
	t.Parallel()

	tpl, err := Parse("api/{id:int}/{*rest}")
	require.NoError(t, err)

	assert.Equal(t, []Segment{
		{Kind: Literal, Value: "api"},
		{Kind: Parameter, Value: "id", Constraint: "int"},
		{Kind: CatchAll, Value: "rest"},
	}, tpl.Segments)
	assert.Equal(t, []string{"id", "rest"}, tpl.Parameters())
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		template string
		reason   string
	}{
		{"complex segment", "file.{ext}", "mixing literal text"},
		{"unclosed brace", "products/{id", "mixing literal text"},
		{"empty name", "products/{}", "parameter name is empty"},
		{"empty name with constraint", "{:int}", "parameter name is empty"},
		{"duplicate parameter", "{id}/{ID}", "used more than once"},
		{"catch-all not last", "{*path}/edit", "catch-all parameter must be the last"},
		{"optional not last", "{id?}/edit", "optional parameter must be the last"},
		{"optional catch-all", "{*path?}", "cannot be marked optional"},
		{"too many stars", "{***path}", "too many catch-all markers"},
		{"double slash", "//", "empty segment"},
		{"empty interior segment", "a//b", "empty segment"},
		{"leading double slash", "//api", "empty segment"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Parse(tt.template)
			require.ErrorIs(t, err, ErrInvalidTemplate)

			var tErr *TemplateError
			require.ErrorAs(t, err, &tErr)
			assert.Equal(t, tt.template, tErr.Template)
			assert.Contains(t, tErr.Reason, tt.reason)
		})
	}
}

func TestTemplate_BuildURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		template string
		params   map[string]string
		query    url.Values
		want     string
	}{
		{"root", "", nil, nil, "/"},
		{"static", "api/products", nil, nil, "/api/products"},
		{"parameter", "products/{id}", map[string]string{"id": "42"}, nil, "/products/42"},
		{"case-insensitive parameter", "products/{id}", map[string]string{"ID": "7"}, nil, "/products/7"},
		{"escaped", "search/{term}", map[string]string{"term": "a b/c"}, nil, "/search/a%20b%2Fc"},
		{"optional omitted", "products/{page?}", nil, nil, "/products"},
		{"optional given", "products/{page?}", map[string]string{"page": "2"}, nil, "/products/2"},
		{"catch-all keeps slashes", "files/{*path}", map[string]string{"path": "a/b c"}, nil, "/files/a/b%20c"},
		{"catch-all empty", "files/{*path}", map[string]string{"path": ""}, nil, "/files"},
		{"query", "products", nil, url.Values{"sort": {"name"}}, "/products?sort=name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tpl, err := Parse(tt.template)
			require.NoError(t, err)

			got, err := tpl.BuildURL(tt.params, tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTemplate_BuildURLMissingParameter(t *testing.T) {
	t.Parallel()

	tpl, err := Parse("users/{id}/posts/{postId}")
	require.NoError(t, err)

	_, err = tpl.BuildURL(map[string]string{"id": "1"}, nil)
	require.ErrorIs(t, err, ErrMissingParameter)
	assert.EqualError(t, err, "missing required parameter: postId")
}
