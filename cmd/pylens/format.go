package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"pylens/internal/analyzer"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatJSON  OutputFormat = "json"
	FormatHuman OutputFormat = "human"
	FormatYAML  OutputFormat = "yaml"
)

// FormatResponse formats a response according to the specified format
func FormatResponse(resp interface{}, format OutputFormat) (string, error) {
	switch format {
	case FormatJSON:
		return formatJSON(resp)
	case FormatYAML:
		return formatYAML(resp)
	case FormatHuman:
		return formatHuman(resp)
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

// formatJSON formats the response as JSON
func formatJSON(resp interface{}) (string, error) {
	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(data), nil
}

// formatYAML formats the response as YAML
func formatYAML(resp interface{}) (string, error) {
	data, err := yaml.Marshal(resp)
	if err != nil {
		return "", fmt.Errorf("failed to marshal YAML: %w", err)
	}
	return string(data), nil
}

// formatHuman formats the response in human-readable format
func formatHuman(resp interface{}) (string, error) {
	switch v := resp.(type) {
	case *analyzer.Analysis:
		return formatAnalysisHuman(v), nil
	case *analyzer.RepoResult:
		return formatRepoHuman(v), nil
	default:
		// For unknown types, fall back to JSON
		return formatJSON(resp)
	}
}

func formatAnalysisHuman(a *analyzer.Analysis) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Functions (%d):\n", len(a.Functions)))
	for _, fn := range a.Functions {
		b.WriteString("  " + functionLine(fn) + "\n")
	}

	b.WriteString(fmt.Sprintf("\nClasses (%d):\n", len(a.Classes)))
	for _, cls := range a.Classes {
		line := fmt.Sprintf("  %s", cls.Name)
		if len(cls.Bases) > 0 {
			line += "(" + strings.Join(cls.Bases, ", ") + ")"
		}
		b.WriteString(fmt.Sprintf("%s  [line %d]\n", line, cls.Lineno))
		for _, m := range cls.Methods {
			b.WriteString("    ." + functionLine(m) + "\n")
		}
	}

	b.WriteString(fmt.Sprintf("\nImports (%d):\n", len(a.Imports)))
	for _, imp := range a.Imports {
		line := "  "
		if imp.Type == analyzer.ImportFrom {
			line += fmt.Sprintf("from %s import %s", imp.Module, imp.Name)
		} else {
			line += "import " + imp.Name
		}
		if imp.Alias != "" {
			line += " as " + imp.Alias
		}
		b.WriteString(line + "\n")
	}

	m := a.Metrics
	b.WriteString("\nMetrics:\n")
	b.WriteString(fmt.Sprintf("  Lines:          %d total, %d code\n", m.TotalLines, m.CodeLines))
	b.WriteString(fmt.Sprintf("  Declarations:   %d functions, %d classes\n", m.FunctionCount, m.ClassCount))
	b.WriteString(fmt.Sprintf("  Complexity:     %.2f\n", m.ComplexityScore))
	b.WriteString(fmt.Sprintf("  Call density:   %d\n", m.RelationshipDensity))
	b.WriteString(fmt.Sprintf("  Documentation:  %.1f%%\n", m.DocumentationCoverage))

	if len(a.Insights) > 0 {
		b.WriteString("\nInsights:\n")
		for _, insight := range a.Insights {
			b.WriteString("  - " + insight + "\n")
		}
	}

	return b.String()
}

func functionLine(fn analyzer.FunctionRecord) string {
	line := fmt.Sprintf("%s(%s)", fn.Name, strings.Join(fn.Args, ", "))
	if fn.Returns != nil {
		line += " -> " + *fn.Returns
	}
	return fmt.Sprintf("%s  [line %d]", line, fn.Lineno)
}

func formatRepoHuman(r *analyzer.RepoResult) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Modules (%d):\n", len(r.Modules)))
	for _, mod := range r.Modules {
		b.WriteString("  " + mod + "\n")
	}

	b.WriteString(fmt.Sprintf("\nFunctions (%d):\n", len(r.Functions)))
	for _, fn := range r.Functions {
		b.WriteString(fmt.Sprintf("  %s  (%s, line %d)\n", fn.Name, fn.Module, fn.Lineno))
	}

	b.WriteString(fmt.Sprintf("\nCalls: %d\n", len(r.Calls)))

	return b.String()
}
