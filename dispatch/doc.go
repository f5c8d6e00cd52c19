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

// Package dispatch hands composed endpoint descriptors to a request
// dispatcher.
//
// Attribute route templates such as "products/{id:int}" or
// "files/{*path}" are parsed into segments and rendered in the router path
// syntax ("/products/:id", "/files/*path"). Bind registers one route per
// accepted HTTP method through a Registrar, and Links builds URLs for named
// routes.
//
// Example:
//
//	descriptors, err := compose.Flatten(app)
//	if err != nil {
//	    return err
//	}
//
//	bindings, err := dispatch.Bind(registrar, descriptors)
//	if err != nil {
//	    return err
//	}
//
//	links, err := dispatch.NewLinks(descriptors)
//	url, err := links.URL("products.get", map[string]string{"id": "42"}, nil)
package dispatch
