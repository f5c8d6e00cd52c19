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

package manifest

import (
	"errors"
	"fmt"
	"maps"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cast"

	"rivaas.dev/endpoints/model"
)

// Static errors for manifest documents.
var (
	// ErrAnnotationKind is returned for annotations that do not declare
	// exactly one kind.
	ErrAnnotationKind = errors.New("annotation must declare exactly one of route, http, area, routeValue, constraint, metadata or apiExplorer")

	// ErrMisplacedRouteField is returned for route fields on annotations that
	// cannot carry them.
	ErrMisplacedRouteField = errors.New("route field not allowed on this annotation kind")
)

// Document is a decoded endpoint manifest.
type Document struct {
	Properties  map[string]any   `manifest:"properties"`
	Controllers []ControllerSpec `manifest:"controllers" validate:"dive"`
}

// ControllerSpec declares a controller.
type ControllerSpec struct {
	Name        string           `manifest:"name" validate:"required"`
	Properties  map[string]any   `manifest:"properties"`
	Annotations []AnnotationSpec `manifest:"annotations" validate:"dive"`
	Actions     []ActionSpec     `manifest:"actions" validate:"dive"`
}

// ActionSpec declares an action. Method defaults to "Controller.Action".
type ActionSpec struct {
	Name        string           `manifest:"name" validate:"required"`
	Method      string           `manifest:"method"`
	Properties  map[string]any   `manifest:"properties"`
	Parameters  []ParameterSpec  `manifest:"parameters" validate:"dive"`
	Annotations []AnnotationSpec `manifest:"annotations" validate:"dive"`
}

// ParameterSpec declares an action parameter.
type ParameterSpec struct {
	Name string `manifest:"name" validate:"required"`
	Type string `manifest:"type"`
}

// AnnotationSpec declares one annotation. Exactly one of Route, HTTP, Area,
// RouteValue, Constraint, Metadata and APIExplorer must be set.
type AnnotationSpec struct {
	Route                  *string          `manifest:"route"`
	HTTP                   []string         `manifest:"http" validate:"omitempty,dive,required,alpha"`
	Template               *string          `manifest:"template"`
	Name                   *string          `manifest:"name"`
	Order                  *int             `manifest:"order"`
	SuppressLinkGeneration bool             `manifest:"suppressLinkGeneration"`
	SuppressPathMatching   bool             `manifest:"suppressPathMatching"`
	Area                   *string          `manifest:"area" validate:"omitempty,min=1"`
	RouteValue             *KeyValueSpec    `manifest:"routeValue"`
	Constraint             *KeyValueSpec    `manifest:"constraint"`
	Metadata               *KeyValueSpec    `manifest:"metadata"`
	APIExplorer            *APIExplorerSpec `manifest:"apiExplorer"`
}

// KeyValueSpec is a key with an arbitrary value.
type KeyValueSpec struct {
	Key   string `manifest:"key" validate:"required"`
	Value any    `manifest:"value"`
}

// APIExplorerSpec configures API explorer visibility.
type APIExplorerSpec struct {
	Ignore    bool   `manifest:"ignore"`
	GroupName string `manifest:"groupName"`
}

var structValidator = newStructValidator()

func newStructValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("manifest"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	return v
}

// Validate checks the struct constraints of the document.
func (d *Document) Validate() error {
	err := structValidator.Struct(d)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return NewError("document", "validate", err)
	}

	errs := make([]error, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.TrimPrefix(fe.Namespace(), "Document.")
		errs = append(errs, NewFieldError("document", field, "validate",
			fmt.Errorf("failed on the %q rule", fe.Tag())))
	}

	return errors.Join(errs...)
}

// Build validates the document and turns it into a declaration model.
func (d *Document) Build() (*model.Application, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	app := model.NewApplication()
	maps.Copy(app.Properties, d.Properties)

	var errs []error
	for ci, cs := range d.Controllers {
		field := fmt.Sprintf("controllers[%d]", ci)
		annotations, err := buildAnnotations(field, cs.Annotations)
		if err != nil {
			errs = append(errs, err)
		}

		cid := app.AddController(cs.Name, annotations...)
		maps.Copy(app.Controller(cid).Properties, cs.Properties)

		for ai, as := range cs.Actions {
			actionField := fmt.Sprintf("%s.actions[%d]", field, ai)
			annotations, err := buildAnnotations(actionField, as.Annotations)
			if err != nil {
				errs = append(errs, err)
			}

			act := app.Action(app.AddAction(cid, as.Name, annotations...))
			if as.Method != "" {
				act.Method = as.Method
			}
			maps.Copy(act.Properties, as.Properties)
			for _, p := range as.Parameters {
				act.Parameters = append(act.Parameters, model.Parameter{Name: p.Name, Type: p.Type})
			}
		}
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return app, nil
}

func buildAnnotations(field string, specs []AnnotationSpec) ([]model.Annotation, error) {
	annotations := make([]model.Annotation, 0, len(specs))
	var errs []error
	for i, spec := range specs {
		ann, err := spec.annotation()
		if err != nil {
			errs = append(errs, NewFieldError("document", fmt.Sprintf("%s.annotations[%d]", field, i), "build", err))
			continue
		}
		annotations = append(annotations, ann)
	}

	return annotations, errors.Join(errs...)
}

func (s *AnnotationSpec) kinds() int {
	n := 0
	for _, set := range []bool{
		s.Route != nil, len(s.HTTP) > 0, s.Area != nil, s.RouteValue != nil,
		s.Constraint != nil, s.Metadata != nil, s.APIExplorer != nil,
	} {
		if set {
			n++
		}
	}

	return n
}

func (s *AnnotationSpec) annotation() (model.Annotation, error) {
	if s.kinds() != 1 {
		return nil, ErrAnnotationKind
	}

	routeFields := s.Template != nil || s.Name != nil || s.Order != nil
	suppression := s.SuppressLinkGeneration || s.SuppressPathMatching

	switch {
	case s.Route != nil:
		if s.Template != nil {
			return nil, fmt.Errorf("%w: template (use route)", ErrMisplacedRouteField)
		}
		r := &model.Route{
			Template:         *s.Route,
			Order:            s.Order,
			SuppressLinks:    s.SuppressLinkGeneration,
			SuppressMatching: s.SuppressPathMatching,
		}
		if s.Name != nil {
			r.Name = *s.Name
		}
		return r, nil

	case len(s.HTTP) > 0:
		if suppression {
			return nil, fmt.Errorf("%w: suppression flags (use route)", ErrMisplacedRouteField)
		}
		methods := make([]string, len(s.HTTP))
		for i, m := range s.HTTP {
			methods[i] = strings.ToUpper(m)
		}
		h := model.AcceptVerbs(methods...)
		h.Template = s.Template
		h.Order = s.Order
		h.Name = s.Name
		return h, nil
	}

	if routeFields || suppression {
		return nil, ErrMisplacedRouteField
	}

	switch {
	case s.Area != nil:
		return model.Area(*s.Area), nil
	case s.RouteValue != nil:
		return &model.RouteValue{Key: s.RouteValue.Key, Value: cast.ToString(s.RouteValue.Value)}, nil
	case s.Constraint != nil:
		return &model.Constraint{Name: s.Constraint.Key, Value: s.Constraint.Value}, nil
	case s.Metadata != nil:
		return &model.Metadata{Key: s.Metadata.Key, Value: s.Metadata.Value}, nil
	default:
		return &model.APIExplorerSettings{IgnoreAPI: s.APIExplorer.Ignore, GroupName: s.APIExplorer.GroupName}, nil
	}
}
