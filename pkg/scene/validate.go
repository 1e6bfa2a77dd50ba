package scene

import (
	"fmt"

	"github.com/chazu/convex/pkg/hull"
)

// ValidationSeverity indicates whether a validation finding blocks use of
// the scene or is merely informational.
type ValidationSeverity int

const (
	SeverityError   ValidationSeverity = iota // blocks use
	SeverityWarning                           // informational
)

func (s ValidationSeverity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("ValidationSeverity(%d)", int(s))
	}
}

// ValidationError describes a single validation finding.
type ValidationError struct {
	Brush    string // which brush has the problem
	Message  string // human-readable description
	Severity ValidationSeverity
}

func (e ValidationError) Error() string {
	if e.Brush == "" {
		return fmt.Sprintf("[%s] %s", e.Severity, e.Message)
	}
	return fmt.Sprintf("[%s] brush %q: %s", e.Severity, e.Brush, e.Message)
}

// ValidationWarning describes a non-blocking advisory finding.
type ValidationWarning struct {
	Brush   string
	Message string
}

// ValidationResult bundles errors (blocking) and warnings (advisory).
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationWarning
}

// Validate checks every brush in the scene. Structural defects (a brush
// violating the kernel invariants) are errors; degenerate brushes that are
// not yet solids are warnings, since they carry no volume. Validate is
// read-only and never mutates the scene.
func Validate(s *Scene) ValidationResult {
	var result ValidationResult

	for _, name := range s.Names() {
		p := s.Lookup(name)

		if err := p.CheckInvariant(); err != nil {
			result.Errors = append(result.Errors, ValidationError{
				Brush:    name,
				Message:  err.Error(),
				Severity: SeverityError,
			})
			continue
		}

		if !p.IsSolid() {
			result.Warnings = append(result.Warnings, ValidationWarning{
				Brush:   name,
				Message: fmt.Sprintf("brush is degenerate (%s) and has no volume", degenerateState(p)),
			})
		}
	}
	return result
}

// degenerateState names the degenerate state of a non-solid brush.
func degenerateState(p *hull.Polyhedron) string {
	switch {
	case p.Empty():
		return "empty"
	case p.IsPoint():
		return "point"
	case p.IsEdge():
		return "edge"
	case p.IsPolygon():
		return "polygon"
	default:
		return "unknown"
	}
}
