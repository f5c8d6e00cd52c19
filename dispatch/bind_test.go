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
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rivaas.dev/endpoints/compose"
	"rivaas.dev/endpoints/model"
)

func attributed(name, template string, order int, methods ...string) *compose.Descriptor {
	d := &compose.Descriptor{
		DisplayName:    name,
		AttributeRoute: &compose.RouteInfo{Template: template, Order: order},
	}
	if len(methods) > 0 {
		d.ActionConstraints = []any{&model.HTTPMethodConstraint{Methods: methods}}
	}

	return d
}

type call struct {
	method, path, action string
}

func recorder(calls *[]call) RegistrarFunc {
	return func(method, path string, d *compose.Descriptor) error {
		*calls = append(*calls, call{method, path, d.DisplayName})
		return nil
	}
}

func TestBind(t *testing.T) {
	t.Parallel()

	conventional := &compose.Descriptor{DisplayName: "Home.Index"}
	suppressed := attributed("Legacy.Get", "legacy", 0, "GET")
	suppressed.AttributeRoute.SuppressPathMatching = true

	descriptors := []*compose.Descriptor{
		attributed("Products.List", "api/products", 0, "GET", "HEAD"),
		conventional,
		attributed("Products.Get", "api/products/{id:int}", -1, "GET"),
		suppressed,
		attributed("Files.Get", "files/{*path}", 0),
		attributed("Pages.Get", "pages/{slug?}", 1, "GET"),
	}

	var calls []call
	bindings, err := Bind(recorder(&calls), descriptors)
	require.NoError(t, err)

	assert.Equal(t, []call{
		{"GET", "/api/products/:id", "Products.Get"},
		{"GET", "/api/products", "Products.List"},
		{"HEAD", "/api/products", "Products.List"},
		{AnyMethod, "/files/*path", "Files.Get"},
		{"GET", "/pages/:slug", "Pages.Get"},
		{"GET", "/pages", "Pages.Get"},
	}, calls)
	require.Len(t, bindings, len(calls))
	assert.Equal(t, -1, bindings[0].Order)
	assert.Same(t, descriptors[2], bindings[0].Descriptor)
}

func TestBind_NilRegistrar(t *testing.T) {
	t.Parallel()

	_, err := Bind(nil, nil)
	require.ErrorIs(t, err, ErrNilRegistrar)
}

func TestBind_InvalidTemplatesRegisterNothing(t *testing.T) {
	t.Parallel()

	descriptors := []*compose.Descriptor{
		attributed("Ok.Get", "ok", 0, "GET"),
		attributed("Bad.One", "file.{ext}", 0, "GET"),
		attributed("Bad.Two", "{*a}/b", 0, "GET"),
	}

	var calls []call
	_, err := Bind(recorder(&calls), descriptors)
	require.ErrorIs(t, err, ErrInvalidTemplate)
	assert.Contains(t, err.Error(), `for action "Bad.One"`)
	assert.Contains(t, err.Error(), `for action "Bad.Two"`)
	assert.Empty(t, calls)
}

func TestBind_ComposedDoubleSlashIsRejected(t *testing.T) {
	t.Parallel()

	app := model.NewApplication()
	cid := app.AddController("Home")
	app.AddAction(cid, "Odd", model.HTTPGet("//"))
	app.AddAction(cid, "Index", model.HTTPGet("home"))

	descriptors, err := compose.MustNew().Flatten(context.Background(), app)
	require.NoError(t, err)
	require.Len(t, descriptors, 2)
	assert.Equal(t, "//", descriptors[0].AttributeRoute.Template)

	var calls []call
	_, err = Bind(recorder(&calls), descriptors)
	require.ErrorIs(t, err, ErrInvalidTemplate)
	assert.Contains(t, err.Error(), `for action "Home.Odd"`)
	assert.Contains(t, err.Error(), "empty segment")
	assert.Empty(t, calls)
}

func TestBind_RegistrarErrorStops(t *testing.T) {
	t.Parallel()

	errTaken := errors.New("route already registered")
	descriptors := []*compose.Descriptor{
		attributed("A.Get", "a", 0, "GET"),
		attributed("B.Get", "b", 0, "GET"),
		attributed("C.Get", "c", 0, "GET"),
	}

	reg := RegistrarFunc(func(_, path string, _ *compose.Descriptor) error {
		if path == "/b" {
			return errTaken
		}
		return nil
	})

	bound, err := Bind(reg, descriptors)
	require.ErrorIs(t, err, errTaken)
	assert.Contains(t, err.Error(), "GET /b for B.Get")
	require.Len(t, bound, 1)
	assert.Equal(t, "/a", bound[0].Path)
}

func TestBind_Logger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := Bind(RegistrarFunc(func(string, string, *compose.Descriptor) error { return nil }),
		[]*compose.Descriptor{attributed("A.Get", "a/{id}", 0, "GET")},
		WithBindLogger(logger))
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "route bound")
	assert.Contains(t, buf.String(), "path=/a/:id")
	assert.Contains(t, buf.String(), "action=A.Get")
}

func TestPlan_DoesNotRegister(t *testing.T) {
	t.Parallel()

	plan, err := Plan([]*compose.Descriptor{
		attributed("B.Get", "b", 2, "GET"),
		attributed("A.Get", "a", 1, "POST"),
		nil,
	})
	require.NoError(t, err)
	require.Len(t, plan, 2)
	assert.Equal(t, "/a", plan[0].Path)
	assert.Equal(t, "POST", plan[0].Method)
}
