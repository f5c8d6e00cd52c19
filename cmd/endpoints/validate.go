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

	"github.com/spf13/cobra"

	"rivaas.dev/endpoints/dispatch"
)

func newValidateCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the manifests compose without errors",
		Long: `validate flattens the manifests and reports every attribute routing
error at once. It exits with status 1 when any error is found.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			descriptors, err := opts.descriptors(cmd.Context())
			if err != nil {
				return err
			}

			if _, err := dispatch.Plan(descriptors); err != nil {
				return err
			}
			if _, err := dispatch.NewLinks(descriptors); err != nil {
				return err
			}

			attributed := 0
			for _, d := range descriptors {
				if d.IsAttributeRouted() {
					attributed++
				}
			}
			fmt.Fprintf(opts.stdout, "ok: %d endpoints (%d attribute routed)\n", len(descriptors), attributed)

			return nil
		},
	}
}
