// Copyright 2025 The Rivaas Authors
// Copyright 2025 Company.info B.V.
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

package manifest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rivaas.dev/endpoints/model"
)

func strPtr(s string) *string { return &s }

func TestDocument_BuildAnnotationKinds(t *testing.T) {
	t.Parallel()

	doc := &Document{
		Controllers: []ControllerSpec{{
			Name: "Users",
			Annotations: []AnnotationSpec{
				{Route: strPtr("users"), SuppressPathMatching: true},
				{RouteValue: &KeyValueSpec{Key: "version", Value: 2}},
				{APIExplorer: &APIExplorerSpec{Ignore: true}},
			},
			Actions: []ActionSpec{{
				Name:        "List",
				Annotations: []AnnotationSpec{{HTTP: []string{"GET"}, Name: strPtr("users.list")}},
			}},
		}},
	}

	app, err := doc.Build()
	require.NoError(t, err)

	users := app.Controllers[0]
	r, ok := users.Annotations[0].(*model.Route)
	require.True(t, ok)
	assert.True(t, r.SuppressMatching)

	version, ok := users.RouteValues.Get("version")
	require.True(t, ok)
	assert.Equal(t, "2", *version)

	require.NotNil(t, users.APIExplorer.IsVisible)
	assert.False(t, *users.APIExplorer.IsVisible)

	h, ok := app.Actions[0].Annotations[0].(*model.HTTPMethod)
	require.True(t, ok)
	assert.Nil(t, h.Template)
	assert.Equal(t, "users.list", *h.Name)
}

func TestDocument_BuildErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		spec AnnotationSpec
		want error
	}{
		{"no kind", AnnotationSpec{}, ErrAnnotationKind},
		{"two kinds", AnnotationSpec{Route: strPtr("a"), Area: strPtr("b")}, ErrAnnotationKind},
		{"template on route", AnnotationSpec{Route: strPtr("a"), Template: strPtr("b")}, ErrMisplacedRouteField},
		{"suppression on http", AnnotationSpec{HTTP: []string{"GET"}, SuppressLinkGeneration: true}, ErrMisplacedRouteField},
		{"name on area", AnnotationSpec{Area: strPtr("x"), Name: strPtr("n")}, ErrMisplacedRouteField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc := &Document{Controllers: []ControllerSpec{{
				Name:        "C",
				Annotations: []AnnotationSpec{{Area: strPtr("ok")}, tt.spec},
			}}}

			_, err := doc.Build()
			require.ErrorIs(t, err, tt.want)

			var mErr *Error
			require.ErrorAs(t, err, &mErr)
			assert.Equal(t, "controllers[0].annotations[1]", mErr.Field)
			assert.Equal(t, "build", mErr.Operation)
		})
	}
}

func TestDocument_BuildCollectsAllErrors(t *testing.T) {
	t.Parallel()

	doc := &Document{Controllers: []ControllerSpec{{
		Name:        "C",
		Annotations: []AnnotationSpec{{}},
		Actions: []ActionSpec{{
			Name:        "A",
			Annotations: []AnnotationSpec{{Metadata: &KeyValueSpec{Key: "k"}, Order: new(int)}},
		}},
	}}}

	_, err := doc.Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "controllers[0].annotations[0]")
	assert.Contains(t, err.Error(), "controllers[0].actions[0].annotations[0]")
}

func TestDocument_ValidateRequiredNames(t *testing.T) {
	t.Parallel()

	doc := &Document{Controllers: []ControllerSpec{{
		Actions: []ActionSpec{{Parameters: []ParameterSpec{{}}}},
	}}}

	err := doc.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "controllers[0].name")
	assert.Contains(t, err.Error(), "controllers[0].actions[0].name")
	assert.Contains(t, err.Error(), "controllers[0].actions[0].parameters[0].name")
}

func TestError_Message(t *testing.T) {
	t.Parallel()

	err := NewFieldError("document", "controllers[0]", "build", ErrAnnotationKind)
	assert.Equal(t, "manifest error in document.controllers[0] during build: "+ErrAnnotationKind.Error(), err.Error())
	assert.ErrorIs(t, err, ErrAnnotationKind)

	plain := NewError("source[1]", "merge", ErrAnnotationKind)
	assert.Equal(t, "manifest error in source[1] during merge: "+ErrAnnotationKind.Error(), plain.Error())
}
