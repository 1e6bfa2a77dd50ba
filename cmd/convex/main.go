// Command convex evaluates a brush script and reports the resulting scene.
//
// Usage:
//
//	convex [-stl dir] script.lisp
//
// The script is evaluated in a sandboxed Lisp environment; the resulting
// brushes are validated and summarized on stdout. With -stl, every solid
// brush is additionally exported as an STL file into the given directory.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/chazu/convex/pkg/engine"
	"github.com/chazu/convex/pkg/mesh"
	"github.com/chazu/convex/pkg/scene"
)

func main() {
	stlDir := flag.String("stl", "", "export solid brushes as STL files into this directory")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [-stl dir] script.lisp\n", filepath.Base(os.Args[0]))
		os.Exit(2)
	}

	source, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		log.Fatalf("read script: %v", err)
	}

	// Step 1: Evaluate the Lisp source into a scene of brushes.
	eng := engine.NewEngine()
	s, evalErrs, err := eng.Evaluate(string(source))
	if err != nil {
		// Fatal error (panic, timeout, etc.)
		log.Fatalf("evaluate: %v", err)
	}
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			fmt.Fprintf(os.Stderr, "%s: %s\n", flag.Arg(0), e.Error())
		}
		os.Exit(1)
	}

	// Step 2: Validate every brush and report findings.
	result := scene.Validate(s)
	for _, w := range result.Warnings {
		fmt.Fprintf(os.Stderr, "warning: brush %q: %s\n", w.Brush, w.Message)
	}
	if len(result.Errors) > 0 {
		for _, e := range result.Errors {
			fmt.Fprintln(os.Stderr, e.Error())
		}
		os.Exit(1)
	}

	// Step 3: Summarize the scene.
	fmt.Printf("%d brush(es)\n", s.Count())
	for _, name := range s.Names() {
		p := s.Lookup(name)
		m := mesh.Build(p)
		bounds := p.Bounds()
		fmt.Printf("  %-20s vertices=%-4d edges=%-4d faces=%-4d triangles=%-4d bounds=%v..%v\n",
			name, p.VertexCount(), p.EdgeCount(), p.FaceCount(), m.TriangleCount(),
			bounds.Min, bounds.Max)
	}

	// Step 4: Optionally export solids as STL.
	if *stlDir != "" {
		if err := os.MkdirAll(*stlDir, 0o755); err != nil {
			log.Fatalf("create STL directory: %v", err)
		}
		for _, name := range s.Names() {
			p := s.Lookup(name)
			if !p.IsSolid() {
				continue
			}
			path := filepath.Join(*stlDir, name+".stl")
			if err := mesh.SaveSTL(path, p); err != nil {
				log.Fatalf("export %q: %v", name, err)
			}
			fmt.Printf("wrote %s\n", path)
		}
	}
}
