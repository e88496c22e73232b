package analyzer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const sampleSource = `"""A sample module."""

def greet(name: str) -> str:
    """Greets the user by name."""
    return f"Hello, {name}!"

def add(a: int, b: int) -> int:
    """Adds two numbers."""
    return a + b

class Greeter:
    """Handles greeting operations."""

    def __init__(self, default_name: str = "World"):
        """Initialize with a default name."""
        self.default_name = default_name

    def say_hello(self, name: str = None) -> str:
        """Returns a hello message."""
        if name is None:
            name = self.default_name
        return f"Hello, {name}!"

class Calculator:
    """A simple calculator class."""

    def divide(self, x: float, y: float) -> float:
        """Divides two numbers."""
        if y == 0:
            raise ValueError("Cannot divide by zero")
        return x / y
`

func TestAnalyzeSource_Sample(t *testing.T) {
	a := New()
	result, err := a.AnalyzeSource(context.Background(), []byte(sampleSource))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Functions) != 2 {
		t.Fatalf("expected 2 functions, got %d", len(result.Functions))
	}
	greet := result.Functions[0]
	if greet.Name != "greet" {
		t.Errorf("expected greet first, got %q", greet.Name)
	}
	if len(greet.Args) != 1 || greet.Args[0] != "name" {
		t.Errorf("unexpected greet args: %v", greet.Args)
	}
	if greet.Returns == nil || *greet.Returns != "str" {
		t.Errorf("unexpected greet return annotation: %v", greet.Returns)
	}
	if greet.Docstring == nil || *greet.Docstring != "Greets the user by name." {
		t.Errorf("unexpected greet docstring: %v", greet.Docstring)
	}

	if len(result.Classes) != 2 {
		t.Fatalf("expected 2 classes, got %d", len(result.Classes))
	}
	if result.Classes[0].Name != "Greeter" || result.Classes[1].Name != "Calculator" {
		t.Errorf("unexpected class order: %v, %v", result.Classes[0].Name, result.Classes[1].Name)
	}
	if len(result.Classes[0].Methods) != 2 {
		t.Errorf("expected 2 Greeter methods, got %d", len(result.Classes[0].Methods))
	}

	// 2 functions + 2*2 classes + 0.5*3 methods
	if result.Metrics.ComplexityScore != 7.5 {
		t.Errorf("expected complexity 7.5, got %v", result.Metrics.ComplexityScore)
	}
	// Everything is documented.
	if result.Metrics.DocumentationCoverage != 100.0 {
		t.Errorf("expected coverage 100.0, got %v", result.Metrics.DocumentationCoverage)
	}
	// Only the ValueError construction is a recognizable call.
	if result.Metrics.RelationshipDensity != 1 {
		t.Errorf("expected density 1, got %d", result.Metrics.RelationshipDensity)
	}
}

func TestAnalyzeSource_Deterministic(t *testing.T) {
	a := New()
	ctx := context.Background()

	first, err := a.AnalyzeSource(ctx, []byte(sampleSource))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := a.AnalyzeSource(ctx, []byte(sampleSource))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	firstJSON, err := json.Marshal(first)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	secondJSON, err := json.Marshal(second)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	if !bytes.Equal(firstJSON, secondJSON) {
		t.Error("analyzing the same source twice produced different output")
	}
}

func TestAnalyzeSource_EmptyCollectionsSerializeAsArrays(t *testing.T) {
	a := New()
	result, err := a.AnalyzeSource(context.Background(), []byte("x = 1\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	for _, key := range []string{`"functions":[]`, `"classes":[]`, `"imports":[]`, `"function_calls":[]`, `"insights":[`} {
		if !bytes.Contains(data, []byte(key)) {
			t.Errorf("expected %s in output, got %s", key, data)
		}
	}
}

func TestAnalyzeFile_NotFound(t *testing.T) {
	a := New()
	path := filepath.Join(t.TempDir(), "missing.py")

	_, err := a.AnalyzeFile(context.Background(), path)
	if err == nil {
		t.Fatal("expected an error")
	}

	var aerr *Error
	if !errors.As(err, &aerr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if aerr.Kind != ErrPathNotFound {
		t.Errorf("expected PATH_NOT_FOUND, got %s", aerr.Kind)
	}
	if aerr.Message != "File not found: "+path {
		t.Errorf("unexpected message: %q", aerr.Message)
	}
}

func TestAnalyzeFile_Directory(t *testing.T) {
	a := New()
	dir := t.TempDir()

	_, err := a.AnalyzeFile(context.Background(), dir)
	var aerr *Error
	if !errors.As(err, &aerr) || aerr.Kind != ErrNotAFile {
		t.Errorf("expected NOT_A_FILE for a directory, got %v", err)
	}
}

func TestAnalyzeSource_SyntaxError(t *testing.T) {
	a := New()

	_, err := a.AnalyzeSource(context.Background(), []byte("def broken(:\n    pass\n"))
	if err == nil {
		t.Fatal("expected a syntax error")
	}

	var aerr *Error
	if !errors.As(err, &aerr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	if aerr.Kind != ErrSyntax {
		t.Errorf("expected SYNTAX_ERROR, got %s", aerr.Kind)
	}
	if aerr.Line == 0 {
		t.Errorf("expected a line number in the error, got %+v", aerr)
	}
}

func TestAnalyzeFile_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.py")
	if err := os.WriteFile(path, []byte(sampleSource), 0o644); err != nil {
		t.Fatal(err)
	}

	a := New()
	result, err := a.AnalyzeFile(context.Background(), path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Functions) != 2 || len(result.Classes) != 2 {
		t.Errorf("unexpected result shape: %d functions, %d classes",
			len(result.Functions), len(result.Classes))
	}
}
