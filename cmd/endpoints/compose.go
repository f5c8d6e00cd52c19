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

package main

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"rivaas.dev/endpoints/codec"
	"rivaas.dev/endpoints/compose"
	"rivaas.dev/endpoints/model"
)

const formatTable = "table"

// exportDocument is the serialized form of a composition.
type exportDocument struct {
	Endpoints []exportEndpoint `json:"endpoints" yaml:"endpoints" toml:"endpoints" msgpack:"endpoints" cbor:"endpoints"`
}

type exportEndpoint struct {
	ID          string             `json:"id" yaml:"id" toml:"id" msgpack:"id" cbor:"id"`
	DisplayName string             `json:"displayName" yaml:"displayName" toml:"displayName" msgpack:"displayName" cbor:"displayName"`
	Controller  string             `json:"controller" yaml:"controller" toml:"controller" msgpack:"controller" cbor:"controller"`
	Action      string             `json:"action" yaml:"action" toml:"action" msgpack:"action" cbor:"action"`
	Methods     []string           `json:"methods,omitempty" yaml:"methods,omitempty" toml:"methods,omitempty" msgpack:"methods,omitempty" cbor:"methods,omitempty"`
	Route       *exportRoute       `json:"route,omitempty" yaml:"route,omitempty" toml:"route,omitempty" msgpack:"route,omitempty" cbor:"route,omitempty"`
	RouteValues map[string]*string `json:"routeValues" yaml:"routeValues" toml:"routeValues" msgpack:"routeValues" cbor:"routeValues"`

	// NullRouteValues lists the route value keys filled with null. TOML has
	// no null, so the TOML export drops those keys from RouteValues and
	// names them here instead.
	NullRouteValues []string `json:"-" yaml:"-" toml:"nullRouteValues,omitempty" msgpack:"-" cbor:"-"`
	Metadata    []string           `json:"metadata,omitempty" yaml:"metadata,omitempty" toml:"metadata,omitempty" msgpack:"metadata,omitempty" cbor:"metadata,omitempty"`
	APIGroup    string             `json:"apiGroup,omitempty" yaml:"apiGroup,omitempty" toml:"apiGroup,omitempty" msgpack:"apiGroup,omitempty" cbor:"apiGroup,omitempty"`
	APIVisible  bool               `json:"apiVisible" yaml:"apiVisible" toml:"apiVisible" msgpack:"apiVisible" cbor:"apiVisible"`
}

type exportRoute struct {
	Template               string `json:"template" yaml:"template" toml:"template" msgpack:"template" cbor:"template"`
	Order                  int    `json:"order" yaml:"order" toml:"order" msgpack:"order" cbor:"order"`
	Name                   string `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty" msgpack:"name,omitempty" cbor:"name,omitempty"`
	SuppressLinkGeneration bool   `json:"suppressLinkGeneration,omitempty" yaml:"suppressLinkGeneration,omitempty" toml:"suppressLinkGeneration,omitempty" msgpack:"suppressLinkGeneration,omitempty" cbor:"suppressLinkGeneration,omitempty"`
	SuppressPathMatching   bool   `json:"suppressPathMatching,omitempty" yaml:"suppressPathMatching,omitempty" toml:"suppressPathMatching,omitempty" msgpack:"suppressPathMatching,omitempty" cbor:"suppressPathMatching,omitempty"`
}

func newExportDocument(descriptors []*compose.Descriptor) *exportDocument {
	doc := &exportDocument{Endpoints: make([]exportEndpoint, 0, len(descriptors))}

	for _, d := range descriptors {
		e := exportEndpoint{
			ID:          d.ID.String(),
			DisplayName: d.DisplayName,
			Controller:  d.ControllerName,
			Action:      d.ActionName,
			Methods:     d.HTTPMethods(),
			RouteValues: d.RouteValues,
			APIVisible:  d.APIExplorer.IsVisible != nil && *d.APIExplorer.IsVisible,
		}
		for k, v := range d.RouteValues {
			if v == nil {
				e.NullRouteValues = append(e.NullRouteValues, k)
			}
		}
		slices.Sort(e.NullRouteValues)
		if d.APIExplorer.GroupName != nil {
			e.APIGroup = *d.APIExplorer.GroupName
		}
		if r := d.AttributeRoute; r != nil {
			e.Route = &exportRoute{
				Template:               r.Template,
				Order:                  r.Order,
				Name:                   r.Name,
				SuppressLinkGeneration: r.SuppressLinkGeneration,
				SuppressPathMatching:   r.SuppressPathMatching,
			}
		}
		for _, m := range d.EndpointMetadata {
			if md, ok := m.(*model.Metadata); ok {
				e.Metadata = append(e.Metadata, md.String())
			}
		}
		doc.Endpoints = append(doc.Endpoints, e)
	}

	return doc
}

func newComposeCommand(opts *options) *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "compose",
		Short: "Flatten the manifests and print or export the descriptors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			descriptors, err := opts.descriptors(cmd.Context())
			if err != nil {
				return err
			}

			if format == formatTable {
				if output != "" {
					return fmt.Errorf("--output needs an export --format, not %q", formatTable)
				}
				renderTable(opts.stdout, opts.noColor, []string{"Action", "Methods", "Template", "Name", "Order"}, descriptorRows(descriptors))
				return nil
			}

			enc, err := codec.GetEncoder(codec.Type(format))
			if err != nil {
				return err
			}

			data, err := enc.Encode(newExportDocument(descriptors))
			if err != nil {
				return fmt.Errorf("encode %s: %w", format, err)
			}

			if output == "" {
				_, err = opts.stdout.Write(data)
				return err
			}

			if err := os.WriteFile(output, data, 0o644); err != nil {
				return err
			}
			opts.logger.Info("descriptors exported", "file", output, "format", format, "count", len(descriptors))

			return nil
		},
	}

	types := make([]string, 0)
	for _, t := range codec.EncoderTypes() {
		types = append(types, string(t))
	}
	cmd.Flags().StringVar(&format, "format", formatTable, "output format: table, "+strings.Join(types, ", ")+" (toml lists null route values under nullRouteValues)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the export to a file instead of stdout")

	return cmd
}

func descriptorRows(descriptors []*compose.Descriptor) [][]string {
	rows := make([][]string, 0, len(descriptors))

	for _, d := range descriptors {
		methods := d.HTTPMethods()
		slices.Sort(methods)
		verbs := strings.Join(methods, ",")
		if verbs == "" {
			verbs = "*"
		}

		template, name, order := "(conventional)", "-", "-"
		if r := d.AttributeRoute; r != nil {
			template = "/" + r.Template
			if r.Name != "" {
				name = r.Name
			}
			order = strconv.Itoa(r.Order)
		}

		rows = append(rows, []string{d.DisplayName, verbs, template, name, order})
	}

	return rows
}
