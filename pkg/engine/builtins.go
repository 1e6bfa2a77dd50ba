package engine

import (
	"fmt"
	"strings"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/chazu/convex/pkg/geom"
	"github.com/chazu/convex/pkg/hull"
	"github.com/chazu/convex/pkg/scene"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource transforms brush Lisp source code before passing it to
// zygomys. It performs two transformations:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal)
//     This avoids the need to register keyword symbols as globals, which
//     would conflict with user-defined variables of the same name.
//
//  2. Kebab-case to underscore: add-point -> add_point
//     zygomys does not allow hyphens in identifiers (it interprets them
//     as the subtraction operator). This converts kebab-case identifiers
//     to underscore form outside of strings and comments.
//
// Both transformations respect string literal boundaries and line comments.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Skip double-quoted string literals.
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Skip backtick-quoted string literals.
		if b[i] == '`' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '`' {
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Convert ; line comments to // comments for zygomys.
		// zygomys uses // for line comments, not the traditional Lisp ;.
		if b[i] == ';' {
			result = append(result, '/', '/')
			i++
			// Skip additional ; characters (;; style).
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Transform :keyword to "__kw_keyword".
		if b[i] == ':' && i+1 < len(b) {
			// Preserve := (assignment operator).
			if b[i+1] == '=' {
				result = append(result, b[i], b[i+1])
				i += 2
				continue
			}
			// Check for keyword: colon followed by a letter.
			if isLetter(b[i+1]) {
				j := i + 1
				for j < len(b) && isKWChar(b[j]) {
					j++
				}
				kwName := string(b[i+1 : j])
				result = append(result, '"')
				result = append(result, []byte(kwPrefix)...)
				result = append(result, []byte(kwName)...)
				result = append(result, '"')
				i = j
				continue
			}
		}
		// Transform kebab-case identifiers: alpha-alpha -> alpha_alpha.
		// Only when hyphen sits between identifier characters (not a minus operator).
		if b[i] == '-' && i > 0 && i+1 < len(b) &&
			isIdentChar(b[i-1]) && isIdentStartChar(b[i+1]) {
			result = append(result, '_')
			i++
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

func isIdentStartChar(c byte) bool {
	return isLetter(c)
}

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpBrush wraps a named polyhedron so it can be passed between builtins.
type sexpBrush struct {
	name string
	p    *hull.Polyhedron
}

func (b *sexpBrush) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(brush %q :vertices %d :faces %d)", b.name, b.p.VertexCount(), b.p.FaceCount())
}
func (b *sexpBrush) Type() *zygo.RegisteredType { return nil }

// sexpVec3 wraps a geom.Vec.
type sexpVec3 struct {
	vec geom.Vec
}

func (v *sexpVec3) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec3 %.1f %.1f %.1f)", v.vec.X, v.vec.Y, v.vec.Z)
}
func (v *sexpVec3) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
// Keywords are identified by the __kw_ prefix added during preprocessing.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if ok {
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				// Keyword at end with no value — treat as flag with nil.
				result.kw[name] = zygo.SexpNull
				i++
			}
		} else {
			result.positional = append(result.positional, args[i])
			i++
		}
	}
	return result
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// toBrush extracts the polyhedron from a sexpBrush.
func toBrush(s zygo.Sexp) (*sexpBrush, error) {
	if b, ok := s.(*sexpBrush); ok {
		return b, nil
	}
	return nil, fmt.Errorf("expected brush reference, got %T (%s)", s, s.SexpString(nil))
}

// toVec3 extracts a geom.Vec from a sexpVec3.
func toVec3(s zygo.Sexp) (geom.Vec, error) {
	if v, ok := s.(*sexpVec3); ok {
		return v.vec, nil
	}
	return geom.Vec{}, fmt.Errorf("expected vec3, got %T (%s)", s, s.SexpString(nil))
}

// sexpListToSlice converts a SexpPair (Lisp list) or SexpArray to a Go slice.
func sexpListToSlice(s zygo.Sexp) ([]zygo.Sexp, error) {
	switch v := s.(type) {
	case *zygo.SexpPair:
		return zygo.ListToArray(v)
	case *zygo.SexpArray:
		return v.Val, nil
	case *zygo.SexpSentinel:
		if v == zygo.SexpNull {
			return nil, nil
		}
	}
	return nil, fmt.Errorf("expected list or array, got %T", s)
}

// toVecList converts a Sexp list/array of vec3 values into a point slice.
func toVecList(s zygo.Sexp) ([]geom.Vec, error) {
	items, err := sexpListToSlice(s)
	if err != nil {
		return nil, err
	}
	points := make([]geom.Vec, 0, len(items))
	for i, item := range items {
		v, err := toVec3(item)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		points = append(points, v)
	}
	return points, nil
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs the brush DSL builtins into a zygomys environment.
// The builtins operate on the provided Scene, populating it during evaluation.
//
// Source code must be preprocessed with preprocessSource() before evaluation so
// that :keyword tokens are converted to recognizable string literals.
func registerBuiltins(env *zygo.Zlisp, s *scene.Scene) {

	// -----------------------------------------------------------------------
	// (vec3 1 2 3)
	// -----------------------------------------------------------------------
	env.AddFunction("vec3", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("vec3 requires exactly 3 arguments, got %d", len(args))
		}

		x, err := toFloat64(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vec3: x: %w", err)
		}
		y, err := toFloat64(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vec3: y: %w", err)
		}
		z, err := toFloat64(args[2])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vec3: z: %w", err)
		}

		return &sexpVec3{vec: geom.Vec{X: x, Y: y, Z: z}}, nil
	})

	// -----------------------------------------------------------------------
	// (defbrush "name" :tolerance 1e-6 (vec3 ...) (vec3 ...) ...)
	//
	// Creates a brush from the convex hull of the given points and registers
	// it in the scene. Points may also be given as a single list.
	// -----------------------------------------------------------------------
	env.AddFunction("defbrush", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)

		if len(pa.positional) < 1 {
			return zygo.SexpNull, fmt.Errorf("defbrush requires a name argument")
		}
		brushName, err := toString(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("defbrush: name: %w", err)
		}

		p := hull.New()
		if v, ok := pa.kw["tolerance"]; ok {
			tol, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("defbrush: tolerance: %w", err)
			}
			if tol <= 0 {
				return zygo.SexpNull, fmt.Errorf("defbrush: tolerance must be positive, got %g", tol)
			}
			p.SetTolerance(geom.Tolerance(tol))
		}

		for i := 1; i < len(pa.positional); i++ {
			switch arg := pa.positional[i].(type) {
			case *sexpVec3:
				p.AddPoint(arg.vec)
			default:
				points, err := toVecList(arg)
				if err != nil {
					return zygo.SexpNull, fmt.Errorf("defbrush: point %d: %w", i, err)
				}
				p.AddPoints(points)
			}
		}

		s.Add(brushName, p)
		return &sexpBrush{name: brushName, p: p}, nil
	})

	// -----------------------------------------------------------------------
	// (brush "name")
	// -----------------------------------------------------------------------
	env.AddFunction("brush", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 1 {
			return zygo.SexpNull, fmt.Errorf("brush requires a name argument")
		}

		brushName, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("brush: name: %w", err)
		}

		p := s.Lookup(brushName)
		if p == nil {
			return zygo.SexpNull, fmt.Errorf("brush: no brush named %q", brushName)
		}

		return &sexpBrush{name: brushName, p: p}, nil
	})

	// -----------------------------------------------------------------------
	// (add-point (brush "b") (vec3 10 0 0))
	//
	// Returns true if the point changed the brush.
	// -----------------------------------------------------------------------
	env.AddFunction("add_point", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("add-point requires a brush and a vec3, got %d arguments", len(args))
		}
		b, err := toBrush(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("add-point: %w", err)
		}
		v, err := toVec3(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("add-point: %w", err)
		}
		changed := b.p.AddPoint(v)
		return &zygo.SexpBool{Val: changed}, nil
	})

	// -----------------------------------------------------------------------
	// (add-points (brush "b") (list (vec3 ...) ...))
	// -----------------------------------------------------------------------
	env.AddFunction("add_points", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("add-points requires a brush and a point list, got %d arguments", len(args))
		}
		b, err := toBrush(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("add-points: %w", err)
		}
		points, err := toVecList(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("add-points: %w", err)
		}
		changed := b.p.AddPoints(points)
		return &zygo.SexpBool{Val: changed}, nil
	})

	// -----------------------------------------------------------------------
	// (remove-vertex (brush "b") (vec3 10 0 0))
	//
	// Removes the vertex at the given position. Errors if no vertex sits
	// there or the brush is not a solid.
	// -----------------------------------------------------------------------
	env.AddFunction("remove_vertex", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("remove-vertex requires a brush and a vec3, got %d arguments", len(args))
		}
		b, err := toBrush(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("remove-vertex: %w", err)
		}
		pos, err := toVec3(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("remove-vertex: %w", err)
		}

		v := b.p.FindVertex(pos)
		if v == nil {
			return zygo.SexpNull, fmt.Errorf("remove-vertex: brush %q has no vertex at %s",
				b.name, (&sexpVec3{vec: pos}).SexpString(nil))
		}
		if !b.p.IsSolid() {
			return zygo.SexpNull, fmt.Errorf("remove-vertex: brush %q is not a solid", b.name)
		}
		b.p.RemoveVertex(v)
		return b, nil
	})

	// -----------------------------------------------------------------------
	// (merge-brushes "name" (brush "a") (brush "b"))
	//
	// Creates a new brush covering the convex hull of both operands and
	// registers it in the scene. The operands are left untouched.
	// -----------------------------------------------------------------------
	env.AddFunction("merge_brushes", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("merge-brushes requires a name and two brushes, got %d arguments", len(args))
		}
		mergedName, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("merge-brushes: name: %w", err)
		}
		a, err := toBrush(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("merge-brushes: %w", err)
		}
		b, err := toBrush(args[2])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("merge-brushes: %w", err)
		}

		merged := hull.New()
		merged.Merge(a.p)
		merged.Merge(b.p)
		s.Add(mergedName, merged)
		return &sexpBrush{name: mergedName, p: merged}, nil
	})

	// -----------------------------------------------------------------------
	// (contains (brush "b") (vec3 1 1 1))
	// -----------------------------------------------------------------------
	env.AddFunction("contains", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("contains requires a brush and a vec3, got %d arguments", len(args))
		}
		b, err := toBrush(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("contains: %w", err)
		}
		v, err := toVec3(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("contains: %w", err)
		}
		return &zygo.SexpBool{Val: b.p.Contains(v)}, nil
	})

	// -----------------------------------------------------------------------
	// Count accessors: (vertex-count b), (edge-count b), (face-count b)
	// -----------------------------------------------------------------------
	countFn := func(fnName string, count func(*hull.Polyhedron) int) {
		env.AddFunction(fnName, func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			if len(args) != 1 {
				return zygo.SexpNull, fmt.Errorf("%s requires a brush argument", strings.ReplaceAll(fnName, "_", "-"))
			}
			b, err := toBrush(args[0])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: %w", strings.ReplaceAll(fnName, "_", "-"), err)
			}
			return &zygo.SexpInt{Val: int64(count(b.p))}, nil
		})
	}
	countFn("vertex_count", (*hull.Polyhedron).VertexCount)
	countFn("edge_count", (*hull.Polyhedron).EdgeCount)
	countFn("face_count", (*hull.Polyhedron).FaceCount)

	// -----------------------------------------------------------------------
	// State predicates: (is-empty b), (is-point b), (is-edge b),
	// (is-polygon b), (is-solid b)
	// -----------------------------------------------------------------------
	stateFn := func(fnName string, pred func(*hull.Polyhedron) bool) {
		env.AddFunction(fnName, func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			if len(args) != 1 {
				return zygo.SexpNull, fmt.Errorf("%s requires a brush argument", strings.ReplaceAll(fnName, "_", "-"))
			}
			b, err := toBrush(args[0])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: %w", strings.ReplaceAll(fnName, "_", "-"), err)
			}
			return &zygo.SexpBool{Val: pred(b.p)}, nil
		})
	}
	stateFn("is_empty", (*hull.Polyhedron).Empty)
	stateFn("is_point", (*hull.Polyhedron).IsPoint)
	stateFn("is_edge", (*hull.Polyhedron).IsEdge)
	stateFn("is_polygon", (*hull.Polyhedron).IsPolygon)
	stateFn("is_solid", (*hull.Polyhedron).IsSolid)

	// -----------------------------------------------------------------------
	// (bounds (brush "b")) -> [(vec3 min) (vec3 max)]
	// -----------------------------------------------------------------------
	env.AddFunction("bounds", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("bounds requires a brush argument")
		}
		b, err := toBrush(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("bounds: %w", err)
		}
		bb := b.p.Bounds()
		return &zygo.SexpArray{Val: []zygo.Sexp{
			&sexpVec3{vec: bb.Min},
			&sexpVec3{vec: bb.Max},
		}}, nil
	})

	// -----------------------------------------------------------------------
	// (remove-brush "name")
	// -----------------------------------------------------------------------
	env.AddFunction("remove_brush", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("remove-brush requires a name argument")
		}
		brushName, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("remove-brush: name: %w", err)
		}
		s.Remove(brushName)
		return zygo.SexpNull, nil
	})
}
