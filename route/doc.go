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

// Package route provides the template algebra used when composing endpoint
// routes at build time.
//
// This package contains:
//   - Model: an attribute route (template, order, name, suppression flags)
//   - CombineTemplates / CombineModels: parent + child route combination
//   - ReplaceTokens: bracket token replacement such as "api/[controller]"
//   - Values: case-insensitive route values used for token lookup
//
// # Combining Routes
//
// A controller route and an action route combine into a single template:
//
//	route.CombineTemplates(route.String("api/products"), route.String("{id}"))
//	// "api/products/{id}"
//
// A child template starting with "/" or "~/" overrides its parent:
//
//	route.CombineTemplates(route.String("api/products"), route.String("/health"))
//	// "health"
//
// # Token Replacement
//
// Tokens are written between square brackets and resolved against route values.
// Doubled brackets are literal:
//
//	values := route.NewValues()
//	values.Set("controller", route.String("Products"))
//	route.ReplaceTokens("api/[controller]/[[v1]]", values, nil)
//	// "api/Products/[v1]"
//
// All operations in this package are pure and safe for concurrent use.
package route
