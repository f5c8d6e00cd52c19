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
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"rivaas.dev/endpoints/compose"
	"rivaas.dev/endpoints/logging"
	"rivaas.dev/endpoints/manifest"
	"rivaas.dev/endpoints/model"
	"rivaas.dev/endpoints/route"
)

// errReported marks an error whose details were already written.
var errReported = errors.New("reported")

type options struct {
	manifests   []string
	parallelism int
	transform   string
	prefix      string
	namePrefix  string
	logLevel    string
	logFormat   string
	noColor     bool

	stdout io.Writer
	stderr io.Writer
	logger *logging.Logger
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := newRootCommand(stdout, stderr)
	cmd.SetArgs(args)

	if err := cmd.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(stderr, "Error: %v\n", err)
		}
		return 1
	}

	return 0
}

func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	opts := &options{stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:   "endpoints",
		Short: "Compose endpoint declarations into a routing table",
		Long: `endpoints reads endpoint declaration manifests (YAML, JSON or TOML),
flattens every controller action into endpoint descriptors and validates
the result: attribute and conventional routes may not be mixed on one
action, and a route name may only be shared by identical templates.`,
		Version:           version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: opts.init,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	flags := root.PersistentFlags()
	flags.StringSliceVarP(&opts.manifests, "manifest", "f", nil, "manifest file, repeatable; later files merge over earlier ones")
	flags.IntVar(&opts.parallelism, "parallelism", 1, "controllers flattened concurrently")
	flags.StringVar(&opts.transform, "transform", "", "route token transformer: kebab or lower")
	flags.StringVar(&opts.prefix, "prefix", "", "route template prefixed to every controller")
	flags.StringVar(&opts.namePrefix, "name-prefix", "", "prefix added to every route name (with --prefix)")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "log level: debug, info, warn or error")
	flags.StringVar(&opts.logFormat, "log-format", "console", "log format: console, text or json")
	flags.BoolVar(&opts.noColor, "no-color", false, "disable colored output")

	root.AddCommand(
		newComposeCommand(opts),
		newValidateCommand(opts),
		newRoutesCommand(opts),
	)

	return root
}

func (o *options) init(cmd *cobra.Command, _ []string) error {
	level, err := logging.ParseLevel(o.logLevel)
	if err != nil {
		return err
	}

	o.logger, err = logging.New(
		logging.WithHandlerType(logging.HandlerType(o.logFormat)),
		logging.WithOutput(o.stderr),
		logging.WithLevel(level),
		logging.WithComponent(cmd.Root().Name()),
		logging.WithVersion(version),
	)
	if err != nil {
		return err
	}

	if cmd.Name() != "help" && len(o.manifests) == 0 {
		return errors.New("at least one --manifest is required")
	}

	return nil
}

func (o *options) transformer() (route.Transformer, error) {
	switch o.transform {
	case "":
		return nil, nil
	case "kebab":
		return route.KebabCase, nil
	case "lower":
		return route.Lower, nil
	default:
		return nil, fmt.Errorf("unknown --transform %q (want kebab or lower)", o.transform)
	}
}

func (o *options) composer() (*compose.Composer, error) {
	transform, err := o.transformer()
	if err != nil {
		return nil, err
	}

	logger := o.logger.Logger()
	opts := []compose.Option{
		compose.WithLogger(logger),
		compose.WithParallelism(o.parallelism),
		compose.WithRouteTokenTransformer(transform),
		compose.WithDiagnostics(compose.DiagnosticHandlerFunc(func(e compose.DiagnosticEvent) {
			logger.Debug(e.Message, "kind", string(e.Kind), "fields", e.Fields)
		})),
	}
	if o.prefix != "" {
		opts = append(opts, compose.WithConventions(model.RoutePrefix(o.prefix, o.namePrefix)))
	}

	return compose.New(opts...)
}

// descriptors loads the manifests and flattens them. A composition failure
// writes the numbered report to stderr and returns errReported.
func (o *options) descriptors(ctx context.Context) ([]*compose.Descriptor, error) {
	loaderOpts := make([]manifest.Option, 0, len(o.manifests))
	for _, path := range o.manifests {
		loaderOpts = append(loaderOpts, manifest.WithFile(path))
	}

	loader, err := manifest.New(loaderOpts...)
	if err != nil {
		return nil, err
	}

	app, err := loader.Application(ctx)
	if err != nil {
		return nil, err
	}

	c, err := o.composer()
	if err != nil {
		return nil, err
	}

	descriptors, err := c.Flatten(ctx, app)
	if err != nil {
		var agg *compose.AggregateError
		if errors.As(err, &agg) {
			fmt.Fprintln(o.stderr, agg.Error())
			return nil, errReported
		}
		return nil, err
	}

	return descriptors, nil
}
