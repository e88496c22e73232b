package analyzer

import "testing"

func metricsOf(t *testing.T, source string) Metrics {
	t.Helper()
	src, tree := parseSource(t, source)
	decls := classifyDeclarations(tree.Root(), src)
	rels := extractRelationships(tree.Root(), src)
	return computeMetrics(src, decls, rels)
}

func TestCountLines(t *testing.T) {
	tests := []struct {
		source    string
		wantTotal int
		wantCode  int
	}{
		{"", 1, 0},
		{"x = 1", 1, 1},
		{"x = 1\n", 2, 1},
		{"x = 1\ny = 2\n", 3, 2},
		{"# comment\nx = 1\n\n   \n", 5, 1},
		{"   # indented comment\n", 2, 0},
	}

	for _, tt := range tests {
		total, code := countLines(tt.source)
		if total != tt.wantTotal || code != tt.wantCode {
			t.Errorf("countLines(%q): expected (%d, %d), got (%d, %d)",
				tt.source, tt.wantTotal, tt.wantCode, total, code)
		}
	}
}

func TestComplexityScore(t *testing.T) {
	m := metricsOf(t, `def a():
    pass

def b():
    pass

class C:
    def m1(self):
        pass

    def m2(self):
        pass

    def m3(self):
        pass
`)

	// 1.0*2 functions + 2.0*1 class + 0.5*3 methods = 5.5
	if m.ComplexityScore != 5.5 {
		t.Errorf("expected complexity 5.5, got %v", m.ComplexityScore)
	}
	if m.FunctionCount != 2 || m.ClassCount != 1 {
		t.Errorf("unexpected counts: functions=%d classes=%d", m.FunctionCount, m.ClassCount)
	}
}

func TestComplexityScore_OrderInvariant(t *testing.T) {
	a := metricsOf(t, "def a():\n    pass\n\nclass C:\n    def m(self):\n        pass\n")
	b := metricsOf(t, "class C:\n    def m(self):\n        pass\n\ndef a():\n    pass\n")

	if a.ComplexityScore != b.ComplexityScore {
		t.Errorf("complexity score depends on declaration order: %v vs %v",
			a.ComplexityScore, b.ComplexityScore)
	}
}

func TestRelationshipDensity_ExcludesAttributeAccess(t *testing.T) {
	m := metricsOf(t, `x = obj.field
y = obj.other
do_work()
conn.run()
`)

	// 1 function call + 1 method call; the two bare attribute reads and
	// the method call's own attribute record do not count.
	if m.RelationshipDensity != 2 {
		t.Errorf("expected density 2, got %d", m.RelationshipDensity)
	}
}

func TestDocumentationCoverage(t *testing.T) {
	m := metricsOf(t, `def documented():
    """Yes."""

def bare():
    pass

class Half:
    """Documented class."""

    def m(self):
        pass
`)

	// 4 items (2 functions, 1 class, 1 method), 2 documented -> 50.0
	if m.DocumentationCoverage != 50.0 {
		t.Errorf("expected coverage 50.0, got %v", m.DocumentationCoverage)
	}
}

func TestDocumentationCoverage_Rounding(t *testing.T) {
	// 1 documented out of 3 items -> 33.333... -> 33.3
	m := metricsOf(t, `def a():
    """Doc."""

def b():
    pass

def c():
    pass
`)

	if m.DocumentationCoverage != 33.3 {
		t.Errorf("expected coverage 33.3, got %v", m.DocumentationCoverage)
	}
}

func TestDocumentationCoverage_NoDeclarations(t *testing.T) {
	m := metricsOf(t, "x = 1\n")

	if m.DocumentationCoverage != 0 {
		t.Errorf("expected exactly 0 coverage for no declarations, got %v", m.DocumentationCoverage)
	}
}

func TestDocumentationCoverage_UndocumentedClassWithMethod(t *testing.T) {
	// Class and its method are separate items: 0 of 2 documented.
	m := metricsOf(t, `class C:
    def m(self):
        pass
`)

	if m.DocumentationCoverage != 0.0 {
		t.Errorf("expected coverage 0.0, got %v", m.DocumentationCoverage)
	}
}
