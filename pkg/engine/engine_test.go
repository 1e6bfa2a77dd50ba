package engine

import (
	"strings"
	"testing"
)

func TestEvaluateEmptyString(t *testing.T) {
	eng := NewEngine()

	s, evalErrs, err := eng.Evaluate("")
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("unexpected eval errors: %v", evalErrs)
	}
	if s == nil {
		t.Fatal("expected non-nil scene")
	}
	if s.Count() != 0 {
		t.Errorf("expected empty scene, got %d brushes", s.Count())
	}
}

func TestEvaluateWhitespaceOnly(t *testing.T) {
	eng := NewEngine()

	s, evalErrs, err := eng.Evaluate("   \n\t  \n  ")
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("unexpected eval errors: %v", evalErrs)
	}
	if s == nil {
		t.Fatal("expected non-nil scene")
	}
	if s.Count() != 0 {
		t.Errorf("expected empty scene, got %d brushes", s.Count())
	}
}

func TestEvaluateValidExpression(t *testing.T) {
	eng := NewEngine()

	// Plain arithmetic is valid Lisp that creates no brushes.
	s, evalErrs, err := eng.Evaluate("(+ 1 2)")
	if err != nil {
		t.Fatalf("unexpected fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("unexpected eval errors: %v", evalErrs)
	}
	if s == nil {
		t.Fatal("expected non-nil scene")
	}
	if s.Count() != 0 {
		t.Errorf("expected empty scene, got %d brushes", s.Count())
	}
}

func TestEvaluateSyntaxError(t *testing.T) {
	eng := NewEngine()

	// Unmatched paren is a parse error.
	s, evalErrs, err := eng.Evaluate("(vec3 1 2")
	if err != nil {
		t.Fatalf("expected non-fatal eval error, got fatal: %v", err)
	}
	if s != nil {
		t.Fatal("expected nil scene on syntax error")
	}
	if len(evalErrs) == 0 {
		t.Fatal("expected at least one eval error for syntax error")
	}
	if evalErrs[0].Message == "" {
		t.Error("eval error message should not be empty")
	}
}

func TestEvaluateUndefinedSymbol(t *testing.T) {
	eng := NewEngine()

	s, evalErrs, err := eng.Evaluate("(+ 1 undefined-symbol)")
	if err != nil {
		t.Fatalf("expected non-fatal eval error, got fatal: %v", err)
	}
	if s != nil {
		t.Fatal("expected nil scene on eval error")
	}
	if len(evalErrs) == 0 {
		t.Fatal("expected at least one eval error for undefined symbol")
	}
}

func TestEvaluateIsIsolatedBetweenCalls(t *testing.T) {
	eng := NewEngine()

	_, evalErrs, err := eng.Evaluate(`(defbrush "one" (vec3 0 0 0))`)
	if err != nil || len(evalErrs) > 0 {
		t.Fatalf("first evaluation failed: %v / %v", err, evalErrs)
	}

	// The second evaluation starts from a fresh sandbox and a fresh scene.
	s, evalErrs, err := eng.Evaluate("")
	if err != nil || len(evalErrs) > 0 {
		t.Fatalf("second evaluation failed: %v / %v", err, evalErrs)
	}
	if s.Count() != 0 {
		t.Errorf("second scene has %d brushes, want 0", s.Count())
	}
}

func TestEvalErrorFormatting(t *testing.T) {
	withLine := EvalError{Line: 3, Message: "boom"}
	if got := withLine.Error(); !strings.Contains(got, "3") || !strings.Contains(got, "boom") {
		t.Errorf("Error() = %q, want line and message", got)
	}

	withoutLine := EvalError{Message: "boom"}
	if got := withoutLine.Error(); got != "boom" {
		t.Errorf("Error() = %q, want %q", got, "boom")
	}
}
