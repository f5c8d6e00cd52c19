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
	"maps"
	"slices"

	"rivaas.dev/endpoints/route"
)

// ControllerID indexes Application.Controllers.
type ControllerID int

// ActionID indexes Application.Actions.
type ActionID int

// Application is the root of the declaration model.
// It must not be modified once composition has started.
type Application struct {
	Controllers []*Controller
	Actions     []*Action
	Properties  map[string]any
}

// NewApplication creates an empty application.
func NewApplication() *Application {
	return &Application{Properties: make(map[string]any)}
}

// Controller groups actions under shared routes and route values.
type Controller struct {
	ID          ControllerID
	Name        string
	Annotations []Annotation
	Actions     []ActionID

	// Selectors holds the controller routes. Nil means "not composed yet".
	Selectors   []*Selector
	RouteValues *route.Values
	Properties  map[string]any
	APIExplorer APIExplorerModel
}

// Action is a single endpoint declaration.
type Action struct {
	ID         ActionID
	Controller ControllerID
	Name       string

	// Method identifies the function implementing the action. Actions that
	// share a method are validated together. Defaults to "Controller.Action".
	Method      string
	Parameters  []Parameter
	Annotations []Annotation

	// Selectors holds the action routes. Nil means "not composed yet".
	Selectors   []*Selector
	RouteValues *route.Values
	Properties  map[string]any
	APIExplorer APIExplorerModel
}

// Parameter describes an action parameter.
type Parameter struct {
	Name string
	Type string
}

// APIExplorerModel is the API explorer configuration of a declaration.
// Nil fields inherit from the enclosing controller.
type APIExplorerModel struct {
	IsVisible *bool
	GroupName *string
}

// AddController appends a controller and returns its id.
// Route value and API explorer annotations are folded into the controller.
func (a *Application) AddController(name string, annotations ...Annotation) ControllerID {
	id := ControllerID(len(a.Controllers))
	c := &Controller{
		ID:          id,
		Name:        name,
		Annotations: slices.Clone(annotations),
		RouteValues: route.NewValues(),
		Properties:  make(map[string]any),
	}
	foldAnnotations(annotations, c.RouteValues, &c.APIExplorer)
	a.Controllers = append(a.Controllers, c)

	return id
}

// AddAction appends an action to controller and returns its id.
// It panics if controller is not a valid id.
func (a *Application) AddAction(controller ControllerID, name string, annotations ...Annotation) ActionID {
	c := a.Controller(controller)
	if c == nil {
		panic("model: unknown controller id")
	}

	id := ActionID(len(a.Actions))
	act := &Action{
		ID:          id,
		Controller:  controller,
		Name:        name,
		Method:      c.Name + "." + name,
		Annotations: slices.Clone(annotations),
		RouteValues: route.NewValues(),
		Properties:  make(map[string]any),
	}
	foldAnnotations(annotations, act.RouteValues, &act.APIExplorer)
	a.Actions = append(a.Actions, act)
	c.Actions = append(c.Actions, id)

	return id
}

// Controller returns the controller with the given id, or nil.
func (a *Application) Controller(id ControllerID) *Controller {
	if id < 0 || int(id) >= len(a.Controllers) {
		return nil
	}

	return a.Controllers[id]
}

// Action returns the action with the given id, or nil.
func (a *Application) Action(id ActionID) *Action {
	if id < 0 || int(id) >= len(a.Actions) {
		return nil
	}

	return a.Actions[id]
}

// ActionsOf returns the actions of c in declaration order.
func (a *Application) ActionsOf(c *Controller) []*Action {
	actions := make([]*Action, 0, len(c.Actions))
	for _, id := range c.Actions {
		if act := a.Action(id); act != nil {
			actions = append(actions, act)
		}
	}

	return actions
}

// DisplayName returns "Controller.Action" for act.
func (a *Application) DisplayName(act *Action) string {
	c := a.Controller(act.Controller)
	if c == nil {
		return act.Name
	}

	return c.Name + "." + act.Name
}

// MergedProperties returns application, controller and action properties
// merged in that order; later levels win.
func (a *Application) MergedProperties(act *Action) map[string]any {
	merged := maps.Clone(a.Properties)
	if merged == nil {
		merged = make(map[string]any)
	}
	if c := a.Controller(act.Controller); c != nil {
		maps.Copy(merged, c.Properties)
	}
	maps.Copy(merged, act.Properties)

	return merged
}

// EffectiveAPIExplorer resolves the API explorer settings of act, falling
// back to its controller for unset fields.
func (a *Application) EffectiveAPIExplorer(act *Action) APIExplorerModel {
	eff := act.APIExplorer
	c := a.Controller(act.Controller)
	if c == nil {
		return eff
	}
	if eff.IsVisible == nil {
		eff.IsVisible = c.APIExplorer.IsVisible
	}
	if eff.GroupName == nil {
		eff.GroupName = c.APIExplorer.GroupName
	}

	return eff
}

func foldAnnotations(annotations []Annotation, values *route.Values, explorer *APIExplorerModel) {
	for _, ann := range annotations {
		if rv, ok := ann.(RouteValueProvider); ok {
			values.Set(rv.RouteValueKey(), route.String(rv.RouteValue()))
		}
		if ex, ok := ann.(APIExplorerProvider); ok {
			visible := !ex.APIExplorerIgnored()
			explorer.IsVisible = &visible
			if name := ex.APIExplorerGroupName(); name != "" {
				explorer.GroupName = route.String(name)
			}
		}
	}
}
