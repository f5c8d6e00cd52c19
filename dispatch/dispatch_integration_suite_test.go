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

//go:build !integration

package dispatch_test

import (
	"context"
	"errors"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"rivaas.dev/endpoints/codec"
	"rivaas.dev/endpoints/compose"
	"rivaas.dev/endpoints/dispatch"
	"rivaas.dev/endpoints/manifest"
	"rivaas.dev/endpoints/model"
	"rivaas.dev/endpoints/route"
)

const catalogManifest = `
controllers:
  - name: Products
    annotations:
      - route: api/[controller]
      - area: Store
    actions:
      - name: List
        annotations:
          - http: [GET]
            name: products.list
      - name: Get
        annotations:
          - http: [GET]
            template: "{id:int}"
            name: products.get
      - name: Search
        annotations:
          - http: [GET]
            template: "~/search/{*query}"
            order: -1
  - name: Health
    actions:
      - name: Check
        annotations:
          - route: /health
            suppressLinkGeneration: true
  - name: Home
    actions:
      - name: Index
`

const brokenManifest = `
controllers:
  - name: Products
    actions:
      - name: Get
        annotations:
          - http: [GET]
            template: "products/{id}"
            name: item
      - name: Missing
        annotations:
          - http: [GET]
            template: "x/[unknown]"
  - name: Orders
    actions:
      - name: Get
        annotations:
          - http: [GET]
            template: "orders/{id}"
            name: item
`

type registration struct {
	Method string
	Path   string
	Action string
}

func loadApplication(content string) *model.Application {
	loader, err := manifest.New(manifest.WithContent([]byte(content), codec.TypeYAML))
	Expect(err).NotTo(HaveOccurred())

	app, err := loader.Application(context.Background())
	Expect(err).NotTo(HaveOccurred())

	return app
}

var _ = Describe("Manifest to dispatcher", func() {
	var (
		ctx      context.Context
		composer *compose.Composer
	)

	BeforeEach(func() {
		ctx = context.Background()
		composer = compose.MustNew()
	})

	Describe("binding a catalog", func() {
		var descriptors []*compose.Descriptor

		BeforeEach(func() {
			var err error
			descriptors, err = composer.Flatten(ctx, loadApplication(catalogManifest))
			Expect(err).NotTo(HaveOccurred())
		})

		It("should flatten every action in declaration order", func() {
			names := make([]string, 0, len(descriptors))
			for _, d := range descriptors {
				names = append(names, d.DisplayName)
			}
			Expect(names).To(Equal([]string{
				"Products.List", "Products.Get", "Products.Search", "Health.Check", "Home.Index",
			}))
		})

		It("should register attribute routes ordered by route order", func() {
			var got []registration
			reg := dispatch.RegistrarFunc(func(method, path string, d *compose.Descriptor) error {
				got = append(got, registration{method, path, d.DisplayName})
				return nil
			})

			_, err := dispatch.Bind(reg, descriptors)
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal([]registration{
				{"GET", "/search/*query", "Products.Search"},
				{"GET", "/api/Products", "Products.List"},
				{"GET", "/api/Products/:id", "Products.Get"},
				{dispatch.AnyMethod, "/health", "Health.Check"},
			}))
		})

		It("should give every descriptor every route value key", func() {
			for _, d := range descriptors {
				Expect(d.RouteValues).To(HaveKey("area"))
				Expect(d.RouteValues).To(HaveKey("controller"))
				Expect(d.RouteValues).To(HaveKey("action"))
			}

			health := descriptors[3]
			Expect(health.RouteValues).To(HaveKeyWithValue("area", BeNil()))
			Expect(descriptors[0].RouteValue("area")).To(Equal("Store"))
		})

		It("should build links for named routes only", func() {
			links, err := dispatch.NewLinks(descriptors)
			Expect(err).NotTo(HaveOccurred())
			Expect(links.Names()).To(ConsistOf("products.list", "products.get"))

			url, err := links.URL("products.get", map[string]string{"id": "7"}, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(url).To(Equal("/api/Products/7"))
		})

		It("should produce the same table when flattened concurrently", func() {
			parallel, err := compose.MustNew(compose.WithParallelism(4)).Flatten(ctx, loadApplication(catalogManifest))
			Expect(err).NotTo(HaveOccurred())
			Expect(parallel).To(HaveLen(len(descriptors)))

			for i, d := range parallel {
				Expect(d.DisplayName).To(Equal(descriptors[i].DisplayName))
				Expect(d.AttributeRoute).To(Equal(descriptors[i].AttributeRoute))
			}
		})
	})

	Describe("conventions and transformers", func() {
		It("should prefix controller routes and kebab-case tokens", func() {
			c := compose.MustNew(
				compose.WithConventions(model.RoutePrefix("v1", "v1.")),
				compose.WithRouteTokenTransformer(route.KebabCase),
			)

			descriptors, err := c.Flatten(ctx, loadApplication(catalogManifest))
			Expect(err).NotTo(HaveOccurred())

			links, err := dispatch.NewLinks(descriptors)
			Expect(err).NotTo(HaveOccurred())

			url, err := links.URL("products.get", map[string]string{"id": "3"}, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(url).To(Equal("/v1/api/products/3"))

			Expect(descriptors[2].AttributeRoute.Template).To(Equal("search/{*query}"))
		})
	})

	Describe("inconsistent declarations", func() {
		It("should report every problem in one aggregate error", func() {
			descriptors, err := composer.Flatten(ctx, loadApplication(brokenManifest))
			Expect(descriptors).To(BeNil())

			var agg *compose.AggregateError
			Expect(errors.As(err, &agg)).To(BeTrue())
			Expect(agg.Errors()).To(HaveLen(2))

			Expect(errors.Is(err, route.ErrReplacementValueNotFound)).To(BeTrue())
			Expect(errors.Is(err, compose.ErrDuplicateRouteName)).To(BeTrue())
			Expect(err.Error()).To(ContainSubstring("Error 1:"))
			Expect(err.Error()).To(ContainSubstring("Error 2:"))
			Expect(err.Error()).To(ContainSubstring("Attribute routes with the same name 'item' must have the same template"))
		})
	})
})

//nolint:paralleltest // Ginkgo test suite manages its own parallelization
func TestDispatchIntegration(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Dispatch Integration Suite")
}
