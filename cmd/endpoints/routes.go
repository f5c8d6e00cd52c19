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
	"strconv"

	"github.com/spf13/cobra"

	"rivaas.dev/endpoints/compose"
	"rivaas.dev/endpoints/dispatch"
)

func newRoutesCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "Print the dispatcher routes of the attribute-routed endpoints",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			descriptors, err := opts.descriptors(cmd.Context())
			if err != nil {
				return err
			}

			var rows [][]string
			reg := dispatch.RegistrarFunc(func(method, path string, d *compose.Descriptor) error {
				rows = append(rows, []string{method, path, d.DisplayName, strconv.Itoa(d.AttributeRoute.Order)})
				return nil
			})

			if _, err := dispatch.Bind(reg, descriptors, dispatch.WithBindLogger(opts.logger.Logger())); err != nil {
				return err
			}

			if len(rows) == 0 {
				_, err := opts.stdout.Write([]byte("No routes registered\n"))
				return err
			}
			renderTable(opts.stdout, opts.noColor, []string{"Method", "Path", "Action", "Order"}, rows)

			return nil
		},
	}
}
