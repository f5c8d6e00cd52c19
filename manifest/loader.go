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

// Package manifest loads endpoint declarations from YAML, JSON or TOML files.
//
// A manifest lists controllers, their actions and the annotations of each:
//
//	controllers:
//	  - name: Products
//	    annotations:
//	      - route: api/[controller]
//	    actions:
//	      - name: List
//	        annotations:
//	          - http: [GET]
//	      - name: Get
//	        parameters:
//	          - {name: id, type: int}
//	        annotations:
//	          - http: [GET]
//	            template: "{id:int}"
//	            name: products.get
//
// Several sources can be combined; controllers are appended in source order
// and properties are merged, later sources winning:
//
//	loader := manifest.MustNew(
//	    manifest.WithFile("endpoints.yaml"),
//	    manifest.WithFile("admin.toml"),
//	)
//	app, err := loader.Application(ctx)
//
// Every source is checked against an embedded JSON schema before it is
// decoded, and the decoded document is checked with struct validation.
package manifest

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"

	"dario.cat/mergo"
	"github.com/go-viper/mapstructure/v2"
	"github.com/santhosh-tekuri/jsonschema/v6"

	"rivaas.dev/endpoints/codec"
	"rivaas.dev/endpoints/model"
)

//go:embed schema.json
var schemaJSON []byte

const schemaURL = "manifest.schema.json"

// ErrNoSources is returned by Load when no source was configured.
var ErrNoSources = errors.New("manifest: no sources configured")

// Loader reads and merges manifest sources.
type Loader struct {
	sources    []Source
	schema     *jsonschema.Schema
	validators []func(*Document) error
}

// Option configures a Loader.
type Option func(*Loader) error

// WithSource adds a custom source.
func WithSource(src Source) Option {
	return func(l *Loader) error {
		if src == nil {
			return errors.New("manifest: source is nil")
		}
		l.sources = append(l.sources, src)
		return nil
	}
}

// WithFile adds a file source; the format is detected from the extension.
func WithFile(path string) Option {
	return func(l *Loader) error {
		typ, err := codec.TypeForPath(path)
		if err != nil {
			return err
		}

		return WithFileAs(path, typ)(l)
	}
}

// WithFileAs adds a file source decoded with the given codec.
func WithFileAs(path string, typ codec.Type) Option {
	return func(l *Loader) error {
		dec, err := codec.GetDecoder(typ)
		if err != nil {
			return err
		}
		l.sources = append(l.sources, NewFile(path, dec))
		return nil
	}
}

// WithContent adds in-memory manifest content decoded with the given codec.
func WithContent(data []byte, typ codec.Type) Option {
	return func(l *Loader) error {
		dec, err := codec.GetDecoder(typ)
		if err != nil {
			return err
		}
		l.sources = append(l.sources, NewContent(data, dec))
		return nil
	}
}

// WithValidator adds a check run on the decoded document.
func WithValidator(fn func(*Document) error) Option {
	return func(l *Loader) error {
		if fn == nil {
			return errors.New("manifest: validator is nil")
		}
		l.validators = append(l.validators, fn)
		return nil
	}
}

// New creates a Loader. Errors from all options are joined.
func New(opts ...Option) (*Loader, error) {
	l := &Loader{}

	schema, err := compileSchema()
	if err != nil {
		return nil, NewError("json-schema", "compile", err)
	}
	l.schema = schema

	var errs error
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(l); err != nil {
			errs = errors.Join(errs, err)
		}
	}
	if errs != nil {
		return nil, errs
	}

	return l, nil
}

// MustNew is like New but panics on error.
func MustNew(opts ...Option) *Loader {
	l, err := New(opts...)
	if err != nil {
		panic(fmt.Sprintf("manifest: failed to create loader: %v", err))
	}

	return l
}

func compileSchema() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
	if err != nil {
		return nil, err
	}

	compiler := jsonschema.NewCompiler()
	if err = compiler.AddResource(schemaURL, doc); err != nil {
		return nil, err
	}

	return compiler.Compile(schemaURL)
}

// Load reads every source, validates it, merges the results and decodes the
// merged manifest into a Document.
func (l *Loader) Load(ctx context.Context) (*Document, error) {
	if len(l.sources) == 0 {
		return nil, ErrNoSources
	}

	merged := make(map[string]any)
	for i, src := range l.sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		name := fmt.Sprintf("source[%d]", i)
		raw, err := src.Load(ctx)
		if err != nil {
			return nil, NewError(name, "load", err)
		}

		values := normalizeMap(raw)
		if err = l.schema.Validate(values); err != nil {
			return nil, NewError(name, "validate", err)
		}

		if err = mergo.Map(&merged, values, mergo.WithOverride, mergo.WithAppendSlice); err != nil {
			return nil, NewError(name, "merge", err)
		}
	}

	doc := &Document{}
	if err := decode(merged, doc); err != nil {
		return nil, NewError("document", "decode", err)
	}

	if err := doc.Validate(); err != nil {
		return nil, err
	}
	for i, fn := range l.validators {
		if err := fn(doc); err != nil {
			return nil, NewError(fmt.Sprintf("validator[%d]", i), "validate", err)
		}
	}

	return doc, nil
}

// Application loads the manifest and builds the declaration model.
func (l *Loader) Application(ctx context.Context) (*model.Application, error) {
	doc, err := l.Load(ctx)
	if err != nil {
		return nil, err
	}

	return doc.Build()
}

func decode(values map[string]any, doc *Document) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "manifest",
		WeaklyTypedInput: true,
		Result:           doc,
	})
	if err != nil {
		return fmt.Errorf("failed to create decoder: %w", err)
	}

	if err = dec.Decode(values); err != nil {
		return fmt.Errorf("failed to decode manifest: %w", err)
	}

	return nil
}
