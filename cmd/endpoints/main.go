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

// Command endpoints composes endpoint declaration manifests into a flat
// descriptor table.
//
// Usage:
//
//	endpoints compose  -f api.yaml [-f overrides.yaml] [--format table|json|yaml|toml|msgpack|cbor] [-o file]
//	endpoints validate -f api.yaml
//	endpoints routes   -f api.yaml
//
// validate exits with status 1 and prints the numbered error report when the
// declarations are inconsistent.
package main

import (
	"context"
	"os"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}
