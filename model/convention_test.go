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

package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rivaas.dev/endpoints/route"
)

func routed(template, name string) *Selector {
	m := &route.Model{Template: route.String(template)}
	if name != "" {
		m.Name = route.String(name)
	}

	return &Selector{Route: m}
}

func TestRoutePrefix_ControllerRoutes(t *testing.T) {
	t.Parallel()

	app := NewApplication()
	cid := app.AddController("Products")
	c := app.Controller(cid)
	c.Selectors = []*Selector{routed("products", "products"), {}}

	aid := app.AddAction(cid, "List")
	app.Action(aid).Selectors = []*Selector{routed("list", "")}

	require.NoError(t, RoutePrefix("api/v1", "v1.").Apply(app))

	assert.Equal(t, "api/v1/products", c.Selectors[0].Route.TemplateText())
	assert.Equal(t, "v1.products", c.Selectors[0].Route.NameText())
	assert.Nil(t, c.Selectors[1].Route)
	assert.Equal(t, "list", app.Action(aid).Selectors[0].Route.TemplateText())
}

func TestRoutePrefix_ActionRoutesWithoutControllerRoute(t *testing.T) {
	t.Parallel()

	app := NewApplication()
	cid := app.AddController("Health")
	app.Controller(cid).Selectors = []*Selector{{}}

	aid := app.AddAction(cid, "Check")
	act := app.Action(aid)
	act.Selectors = []*Selector{routed("health", "health"), routed("/ping", ""), {}}

	require.NoError(t, RoutePrefix("api", "").Apply(app))

	assert.Equal(t, "api/health", act.Selectors[0].Route.TemplateText())
	assert.Equal(t, "health", act.Selectors[0].Route.NameText())
	assert.Equal(t, "/ping", act.Selectors[1].Route.TemplateText())
	assert.Nil(t, act.Selectors[2].Route)
}

func TestConventionFunc(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	var seen *Application
	conv := ConventionFunc(func(app *Application) error {
		seen = app
		return boom
	})

	app := NewApplication()
	assert.ErrorIs(t, conv.Apply(app), boom)
	assert.Same(t, app, seen)
}
