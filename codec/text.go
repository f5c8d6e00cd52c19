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


package codec

import (
	"bytes"
	"errors"
	"fmt"
	"reflect"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-yaml"
)

// Text codec types.
const (
	TypeYAML Type = "yaml"
	TypeTOML Type = "toml"
)

// ErrNotTable is returned when a value without a table form is encoded as
// TOML.
var ErrNotTable = errors.New("codec: toml document must be a map or struct")

func init() {
	for typ, c := range map[Type]interface {
		Encoder
		Decoder
	}{
		TypeYAML: YAMLCodec{},
		TypeTOML: TOMLCodec{},
	} {
		RegisterEncoder(typ, c)
		RegisterDecoder(typ, c)
	}
}

// YAMLCodec encodes YAML with two-space indentation and indented sequences,
// the layout manifests are written in.
type YAMLCodec struct{}

func (YAMLCodec) Encode(v any) ([]byte, error) {
	return yaml.MarshalWithOptions(v, yaml.Indent(2), yaml.IndentSequence(true))
}

func (YAMLCodec) Decode(data []byte, v any) error {
	return yaml.Unmarshal(data, v)
}

// TOMLCodec encodes and decodes TOML. A TOML document is a table, so Encode
// rejects anything but a map or struct (or a pointer to one) with
// ErrNotTable.
type TOMLCodec struct{}

func (TOMLCodec) Encode(v any) ([]byte, error) {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, fmt.Errorf("%w: got nil", ErrNotTable)
		}
		rv = rv.Elem()
	}
	if k := rv.Kind(); k != reflect.Map && k != reflect.Struct {
		return nil, fmt.Errorf("%w: got %s", ErrNotTable, rv.Kind())
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (TOMLCodec) Decode(data []byte, v any) error {
	return toml.Unmarshal(data, v)
}
