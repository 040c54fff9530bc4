// Package pkg holds the asciiforge libraries.
//
// # Overview
//
// asciiforge draws pictures out of characters. Everything is built on one
// type, the character [grid], and the packages layer up from there:
//
//  1. [grid] - the buffer: rasterizers, transforms, composition, streaming
//  2. [glyph] - the 5-row block font used for text
//  3. [shape] - shape kinds resolved by name (circle, rectangle, polygon, line, text)
//  4. [decor] - decorators that fill blank cells with patterns
//  5. [composite] - anchored placement of shapes on a fixed canvas
//  6. [recipe] - declarative operation lists and their executor
//  7. [pipeline] - cached, instrumented runs shared by the CLI and HTTP API
//
// Supporting packages: [cache] (null, file and Redis backends), [io]
// (txt, JSON and SVG export), [observability] (hooks and Prometheus
// metrics), [errors] (coded errors) and [buildinfo].
//
// # Data Flow
//
//	recipe document / shape request / shape recipe
//	         ↓
//	    [shape] + [decor] registries
//	         ↓
//	    [grid] operations
//	         ↓
//	    [io] export (txt, json, svg)
//
// # Quick Start
//
//	g := grid.Circle(4, false, '*')
//	box := grid.Rectangle(11, 11, '#', false)
//	box.Overlay(g, 1, 1)
//	fmt.Println(box)
//
// Or run a recipe:
//
//	r, _ := recipe.Load("scene.yaml")
//	res, err := recipe.NewExecutor().Execute(ctx, r)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(res.Output)
//
// [grid]: https://pkg.go.dev/github.com/matzehuels/asciiforge/pkg/grid
// [glyph]: https://pkg.go.dev/github.com/matzehuels/asciiforge/pkg/glyph
// [shape]: https://pkg.go.dev/github.com/matzehuels/asciiforge/pkg/shape
// [decor]: https://pkg.go.dev/github.com/matzehuels/asciiforge/pkg/decor
// [composite]: https://pkg.go.dev/github.com/matzehuels/asciiforge/pkg/composite
// [recipe]: https://pkg.go.dev/github.com/matzehuels/asciiforge/pkg/recipe
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/asciiforge/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/asciiforge/pkg/cache
// [io]: https://pkg.go.dev/github.com/matzehuels/asciiforge/pkg/io
// [observability]: https://pkg.go.dev/github.com/matzehuels/asciiforge/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/asciiforge/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/asciiforge/pkg/buildinfo
package pkg
