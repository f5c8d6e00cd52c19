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

package compose

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"rivaas.dev/endpoints/model"
	"rivaas.dev/endpoints/route"
	"rivaas.dev/endpoints/selector"
)

// methodEntry records one selector of an action for mixed routing validation.
type methodEntry struct {
	method string
	routed bool
	entry  MixedRoutingEntry
}

// nameEntry records one named route for duplicate name validation.
type nameEntry struct {
	name  string
	entry RouteNameEntry
}

// partial is the result of flattening a single controller.
type partial struct {
	descriptors  []*Descriptor
	methods      []methodEntry
	names        []nameEntry
	errs         []error
	explorerErrs []error
	events       []DiagnosticEvent
}

// Flatten composes selectors for app, applies conventions and flattens every
// action into descriptors.
//
// Selectors that are nil on controllers and actions are composed from their
// annotations first; app is modified in place by that step and by
// conventions. On failure the returned error is an *AggregateError, unless a
// convention failed or ctx was cancelled.
func (c *Composer) Flatten(ctx context.Context, app *model.Application) ([]*Descriptor, error) {
	if app == nil {
		return nil, ErrNilApplication
	}

	start := time.Now()
	ctx, span := c.tracer.Start(ctx, "endpoints.compose.flatten", trace.WithAttributes(
		attribute.Int("endpoints.controllers", len(app.Controllers)),
		attribute.Int("endpoints.actions", len(app.Actions)),
	))
	defer span.End()

	selector.Apply(app)
	for i, conv := range c.conventions {
		if err := conv.Apply(app); err != nil {
			err = fmt.Errorf("compose: convention %d failed: %w", i, err)
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return nil, err
		}
	}

	parts, err := c.flattenControllers(ctx, app)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	var (
		descriptors  []*Descriptor
		methods      []methodEntry
		names        []nameEntry
		errs         []error
		explorerErrs []error
	)
	for _, p := range parts {
		for _, d := range p.descriptors {
			d.ID = c.newID()
		}
		descriptors = append(descriptors, p.descriptors...)
		methods = append(methods, p.methods...)
		names = append(names, p.names...)
		errs = append(errs, p.errs...)
		explorerErrs = append(explorerErrs, p.explorerErrs...)
		for _, e := range p.events {
			c.emit(e.Kind, e.Message, e.Fields)
		}
	}

	errs = append(errs, validateMethods(methods)...)
	errs = append(errs, c.validateNames(names)...)
	errs = append(errs, explorerErrs...)

	elapsed := time.Since(start).Seconds()
	c.duration.Record(ctx, elapsed, metric.WithAttributes(attribute.Bool("endpoints.success", len(errs) == 0)))

	if len(errs) > 0 {
		c.errorCount.Add(ctx, int64(len(errs)))
		agg := &AggregateError{errs: errs}
		for i, e := range errs {
			c.logger.WarnContext(ctx, "routing error", "index", i+1, "error", e.Error())
		}
		span.SetAttributes(attribute.Int("endpoints.errors", len(errs)))
		span.RecordError(agg)
		span.SetStatus(codes.Error, "routing errors")

		return nil, agg
	}

	fillRouteValues(descriptors)
	c.descriptorCount.Add(ctx, int64(len(descriptors)))
	span.SetAttributes(attribute.Int("endpoints.descriptors", len(descriptors)))
	c.logger.InfoContext(ctx, "endpoints composed",
		"controllers", len(app.Controllers),
		"descriptors", len(descriptors),
		"duration", time.Since(start))

	return descriptors, nil
}

func (c *Composer) flattenControllers(ctx context.Context, app *model.Application) ([]*partial, error) {
	parts := make([]*partial, len(app.Controllers))

	if c.parallelism == 1 {
		for i, ctrl := range app.Controllers {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			parts[i] = c.flattenController(app, ctrl)
		}

		return parts, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.parallelism)
	for i, ctrl := range app.Controllers {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			parts[i] = c.flattenController(app, ctrl)

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return parts, nil
}

func (c *Composer) flattenController(app *model.Application, ctrl *model.Controller) *partial {
	p := &partial{}

	var routed []*model.Selector
	for _, sel := range ctrl.Selectors {
		if sel.HasRoute() {
			routed = append(routed, sel)
		}
	}

	// Non-route constraints and metadata of the controller travel with
	// action selectors that are not combined with a controller route.
	var additional *model.Selector
	if len(ctrl.Selectors) > 0 {
		additional = ctrl.Selectors[0].WithoutRouteProviders()
	}

	for _, act := range app.ActionsOf(ctrl) {
		var selectors []*model.Selector
		for _, actSel := range act.Selectors {
			if actSel.Route.IsOverride() || len(routed) == 0 {
				sel := actSel.Clone()
				sel.Route = route.CombineModels(nil, actSel.Route)
				if additional != nil {
					sel.ActionConstraints = append(sel.ActionConstraints, additional.ActionConstraints...)
					sel.EndpointMetadata = append(sel.EndpointMetadata, additional.EndpointMetadata...)
				}
				selectors = append(selectors, sel)
				continue
			}

			for _, ctrlSel := range routed {
				sel := actSel.Clone()
				sel.Route = route.CombineModels(ctrlSel.Route, actSel.Route)
				sel.ActionConstraints = append(sel.ActionConstraints, ctrlSel.ActionConstraints...)
				sel.EndpointMetadata = append(sel.EndpointMetadata, ctrlSel.EndpointMetadata...)
				selectors = append(selectors, sel)
			}
		}

		c.flattenAction(app, ctrl, act, selectors, p)
	}

	return p
}

func (c *Composer) flattenAction(app *model.Application, ctrl *model.Controller, act *model.Action, selectors []*model.Selector, p *partial) {
	display := app.DisplayName(act)
	values := routeValuesOf(ctrl, act)
	explorer := app.EffectiveAPIExplorer(act)
	explorerReported := false
	anyRouted := false

	for _, sel := range selectors {
		entry := methodEntry{
			method: act.Method,
			routed: sel.Route != nil,
			entry: MixedRoutingEntry{
				Action:  display,
				Methods: sel.HTTPMethods(),
			},
		}
		if sel.Route != nil {
			entry.entry.Template = route.String(sel.Route.TemplateText())
		}

		d := &Descriptor{
			ControllerName:    ctrl.Name,
			ActionName:        act.Name,
			Method:            act.Method,
			DisplayName:       display,
			Parameters:        act.Parameters,
			ActionConstraints: sel.ActionConstraints,
			EndpointMetadata:  sel.EndpointMetadata,
			RouteValues:       values.Map(),
			Properties:        app.MergedProperties(act),
			APIExplorer:       explorer,
		}

		if sel.Route != nil {
			info, err := c.resolveRoute(sel.Route, values)
			if err != nil {
				p.errs = append(p.errs, &ActionError{Action: display, Err: err})
				p.methods = append(p.methods, entry)
				p.events = append(p.events, DiagnosticEvent{
					Kind:    DiagSelectorDropped,
					Message: "selector dropped because its route could not be resolved",
					Fields:  map[string]any{"action": display, "template": sel.Route.TemplateText(), "error": err.Error()},
				})
				continue
			}

			d.AttributeRoute = info
			entry.entry.Template = route.String(info.Template)
			anyRouted = true
			if info.Name != "" {
				p.names = append(p.names, nameEntry{
					name:  info.Name,
					entry: RouteNameEntry{Action: display, Template: info.Template},
				})
			}
		}

		p.methods = append(p.methods, entry)

		if d.AttributeRoute == nil && !explorerReported && explorer.IsVisible != nil && *explorer.IsVisible {
			p.explorerErrs = append(p.explorerErrs, &APIExplorerError{Action: display})
			explorerReported = true
		}

		p.descriptors = append(p.descriptors, d)
		p.events = append(p.events, DiagnosticEvent{
			Kind:    DiagDescriptorCreated,
			Message: "descriptor created",
			Fields:  map[string]any{"action": display, "template": templateOf(d), "methods": d.HTTPMethods()},
		})
	}

	if !anyRouted {
		p.events = append(p.events, DiagnosticEvent{
			Kind:    DiagConventionalAction,
			Message: "action uses conventional routing",
			Fields:  map[string]any{"action": display},
		})
	}
}

func (c *Composer) resolveRoute(m *route.Model, values *route.Values) (*RouteInfo, error) {
	template, err := route.ReplaceTokens(m.TemplateText(), values, c.transformer)
	if err != nil {
		return nil, err
	}

	info := &RouteInfo{
		Template:               template,
		SuppressLinkGeneration: m.SuppressLinkGeneration,
		SuppressPathMatching:   m.SuppressPathMatching,
	}
	if m.Order != nil {
		info.Order = *m.Order
	}
	if m.Name != nil {
		name, err := route.ReplaceTokens(*m.Name, values, nil)
		if err != nil {
			return nil, err
		}
		info.Name = name
	}

	return info, nil
}

// routeValuesOf returns the route values of an action: controller values,
// then action values, then the action and controller names unless already set.
func routeValuesOf(ctrl *model.Controller, act *model.Action) *route.Values {
	values := route.NewValues()
	values.Merge(ctrl.RouteValues)
	values.Merge(act.RouteValues)
	if !values.Has("action") {
		values.Set("action", route.String(act.Name))
	}
	if !values.Has("controller") {
		values.Set("controller", route.String(ctrl.Name))
	}

	return values
}

// fillRouteValues adds every route value key seen on any descriptor to every
// descriptor, with a nil value where the key does not apply.
func fillRouteValues(descriptors []*Descriptor) {
	var keys []string
	seen := make(map[string]bool)
	for _, d := range descriptors {
		for k := range d.RouteValues {
			folded := strings.ToLower(k)
			if !seen[folded] {
				seen[folded] = true
				keys = append(keys, k)
			}
		}
	}

	for _, d := range descriptors {
		present := make(map[string]bool, len(d.RouteValues))
		for k := range d.RouteValues {
			present[strings.ToLower(k)] = true
		}
		for _, k := range keys {
			if !present[strings.ToLower(k)] {
				d.RouteValues[k] = nil
			}
		}
	}
}

func templateOf(d *Descriptor) string {
	if d.AttributeRoute == nil {
		return ""
	}

	return d.AttributeRoute.Template
}

func equalFold(a, b string) bool {
	return strings.EqualFold(a, b)
}
