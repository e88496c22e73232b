package analyzer

import "fmt"

// generateInsights evaluates the fixed rule table against the metrics.
// Every matching rule appends its message; table order is complexity,
// documentation, structure, coupling. All comparisons are strict, so an
// exactly-on-boundary value fires nothing for that rule.
func generateInsights(m Metrics) []string {
	insights := make([]string, 0)

	if m.ComplexityScore > 10 {
		insights = append(insights, "High complexity codebase - consider refactoring")
	} else if m.ComplexityScore < 3 {
		insights = append(insights, "Simple and modular code structure")
	}

	if m.DocumentationCoverage < 50 {
		insights = append(insights, fmt.Sprintf("Low documentation coverage (%.1f%%) - consider adding docstrings", m.DocumentationCoverage))
	} else if m.DocumentationCoverage > 80 {
		insights = append(insights, "Excellent documentation coverage")
	}

	if m.ClassCount > m.FunctionCount {
		insights = append(insights, "Class-heavy design - object-oriented structure")
	} else if m.FunctionCount > 2*m.ClassCount {
		insights = append(insights, "Function-heavy design - procedural structure")
	}

	if m.RelationshipDensity > 20 {
		insights = append(insights, "High coupling between components")
	} else if m.RelationshipDensity < 5 {
		insights = append(insights, "Low coupling - well-isolated components")
	}

	return insights
}
