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

// Package compose flattens a declaration model into endpoint descriptors.
//
// Flattening takes every action of every controller, combines each action
// selector with each routed controller selector, replaces route tokens such
// as [controller] and [action], and validates the result:
//
//   - actions sharing a method must be either all attribute routed or all
//     conventionally routed
//   - every route sharing a name must have the same template
//   - actions visible to API explorers must be attribute routed
//
// All problems found in one pass are reported together in an
// *AggregateError; a malformed template only drops its own selector.
//
// # Usage
//
//	app := model.NewApplication()
//	products := app.AddController("Products", model.NewRoute("api/[controller]"))
//	app.AddAction(products, "List", model.HTTPGet())
//	app.AddAction(products, "Get", model.HTTPGet("{id:int}"))
//
//	descriptors, err := compose.Flatten(app)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// A Composer carries options such as logging, tracing, metrics, diagnostics,
// conventions and parallelism:
//
//	c := compose.MustNew(
//	    compose.WithLogger(logger),
//	    compose.WithRouteTokenTransformer(route.KebabCase),
//	    compose.WithParallelism(4),
//	)
//	descriptors, err := c.Flatten(ctx, app)
//
// Descriptors are built once at startup; nothing here runs per request.
package compose
