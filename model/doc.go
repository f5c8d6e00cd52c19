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

// Package model provides the declaration model that endpoint composition
// operates on.
//
// An Application owns controllers and actions in two arenas; actions refer to
// their controller by ControllerID instead of holding a pointer. Declarations
// carry annotations, which are plain values classified by the capability
// interfaces they implement:
//
//   - RouteTemplateProvider: contributes a route template, order or name
//   - HTTPMethodProvider: restricts the HTTP methods an endpoint accepts
//   - ActionConstraintMetadata: marks an annotation as an action constraint
//   - RouteValueProvider: adds a required route value such as an area
//   - APIExplorerProvider: controls API explorer visibility and grouping
//
// Example:
//
//	app := model.NewApplication()
//	products := app.AddController("Products", model.NewRoute("api/[controller]"))
//	app.AddAction(products, "List", model.HTTPGet())
//	app.AddAction(products, "Get", model.HTTPGet("{id:int}"))
package model
