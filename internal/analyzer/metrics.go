package analyzer

import (
	"math"
	"strings"
)

// computeMetrics derives the quantitative measures from the raw source
// text and the outputs of the two tree walks.
func computeMetrics(source []byte, decls declarations, rels Relationships) Metrics {
	m := Metrics{
		FunctionCount: len(decls.functions),
		ClassCount:    len(decls.classes),
	}

	m.TotalLines, m.CodeLines = countLines(string(source))

	methodCount := 0
	for _, cls := range decls.classes {
		methodCount += len(cls.Methods)
	}

	score := 1.0*float64(len(decls.functions)) +
		2.0*float64(len(decls.classes)) +
		0.5*float64(methodCount)
	m.ComplexityScore = round2(score)

	// Attribute accesses are excluded from density.
	m.RelationshipDensity = len(rels.FunctionCalls) + len(rels.MethodCalls)

	m.DocumentationCoverage = documentationCoverage(decls)

	return m
}

// countLines splits on newline, so a trailing line counts even without a
// trailing newline. Code lines are non-blank and do not start with the
// line-comment marker.
func countLines(source string) (total, code int) {
	lines := strings.Split(source, "\n")
	total = len(lines)

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed != "" && !strings.HasPrefix(trimmed, "#") {
			code++
		}
	}
	return total, code
}

// documentationCoverage is the percentage of declarations carrying a
// docstring. Each class counts as one item independent of its methods.
// No declarations at all yields exactly 0, never a division fault.
func documentationCoverage(decls declarations) float64 {
	total := len(decls.functions) + len(decls.classes)
	documented := 0

	for _, fn := range decls.functions {
		if fn.Docstring != nil {
			documented++
		}
	}
	for _, cls := range decls.classes {
		total += len(cls.Methods)
		if cls.Docstring != nil {
			documented++
		}
		for _, method := range cls.Methods {
			if method.Docstring != nil {
				documented++
			}
		}
	}

	if total == 0 {
		return 0
	}
	return round1(100 * float64(documented) / float64(total))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
