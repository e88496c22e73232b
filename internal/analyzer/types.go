// Package analyzer implements the static analysis engine for Python
// source files: declaration classification, syntactic call/attribute
// relationship extraction, derived metrics, and textual insights.
//
// All records are built fresh per analysis call and never mutated after
// construction. The engine holds no state across calls.
package analyzer

// FunctionRecord describes one function or method declaration.
type FunctionRecord struct {
	// Name is the declared function name
	Name string `json:"name"`

	// Args are the parameter names in declaration order. A method's
	// receiver parameter (self/cls) is included like any other parameter.
	Args []string `json:"args"`

	// Returns is the canonical text of the return annotation, nil if absent
	Returns *string `json:"returns"`

	// Docstring is the leading string-literal documentation, nil if absent
	Docstring *string `json:"docstring"`

	// Lineno is the 1-based source line of the declaration
	Lineno int `json:"lineno"`
}

// ClassRecord describes one class declaration with its direct methods.
type ClassRecord struct {
	Name string `json:"name"`

	// Bases are the base-class references in dotted-path textual form.
	// They are not resolved to declarations.
	Bases []string `json:"bases"`

	Docstring *string `json:"docstring"`

	// Methods are functions declared directly inside the class body,
	// in source order.
	Methods []FunctionRecord `json:"methods"`

	Lineno int `json:"lineno"`
}

// Import kinds.
const (
	ImportPlain = "import"
	ImportFrom  = "from_import"
)

// ImportRecord describes one imported name. Type discriminates plain
// imports from from-module imports.
type ImportRecord struct {
	Type string `json:"type"`

	// Module is the source module for from-imports. Empty for plain
	// imports and for fully relative imports (from . import x).
	Module string `json:"module,omitempty"`

	// Name is the imported name (dotted path for plain imports)
	Name string `json:"name"`

	// Alias is the as-name, empty when none was given
	Alias string `json:"alias,omitempty"`
}

// FunctionCall records a call whose callee is a bare name.
type FunctionCall struct {
	Callee string `json:"callee"`
}

// MethodCall records a call of the shape receiver.method(...) where the
// receiver is a bare name.
type MethodCall struct {
	Object string `json:"object"`
	Method string `json:"method"`
}

// AttributeAccess records an attribute access on a bare name. Method
// calls also appear here through their receiver expression.
type AttributeAccess struct {
	Object    string `json:"object"`
	Attribute string `json:"attribute"`
}

// Relationships groups the extracted relationship records by kind.
// No caller identity is attached to any record.
type Relationships struct {
	FunctionCalls   []FunctionCall    `json:"function_calls"`
	MethodCalls     []MethodCall      `json:"method_calls"`
	AttributeAccess []AttributeAccess `json:"attribute_access"`
}

// Metrics holds the derived quantitative measures for one file.
type Metrics struct {
	TotalLines int `json:"total_lines"`
	CodeLines  int `json:"code_lines"`

	FunctionCount int `json:"function_count"`
	ClassCount    int `json:"class_count"`

	// ComplexityScore is a heuristic weighted count of declarations,
	// not cyclomatic complexity. Rounded to 2 decimal places.
	ComplexityScore float64 `json:"complexity_score"`

	// RelationshipDensity counts function and method calls. Attribute
	// accesses are excluded.
	RelationshipDensity int `json:"relationship_density"`

	// DocumentationCoverage is the percentage of declarations carrying
	// a docstring, rounded to 1 decimal place. 0 when there are no
	// declarations at all.
	DocumentationCoverage float64 `json:"documentation_coverage"`
}

// Analysis is the composed result of a successful single-file analysis.
type Analysis struct {
	Functions     []FunctionRecord `json:"functions"`
	Classes       []ClassRecord    `json:"classes"`
	Imports       []ImportRecord   `json:"imports"`
	Relationships Relationships    `json:"relationships"`
	Metrics       Metrics          `json:"metrics"`
	Insights      []string         `json:"insights"`
}

// RepoFunction is one function in the flattened repository-wide list.
// Methods are included; repository mode does not distinguish them.
type RepoFunction struct {
	Name   string `json:"name"`
	Module string `json:"module"`
	Lineno int    `json:"lineno"`
}

// RepoCall is one caller-unaware call record in repository mode.
// Attribute calls are flattened to their attribute name.
type RepoCall struct {
	Callee string `json:"callee"`
}

// RepoResult aggregates a repository-wide scan. Files that fail to parse
// are excluded and contribute nothing.
type RepoResult struct {
	Modules   []string       `json:"modules"`
	Functions []RepoFunction `json:"functions"`
	Calls     []RepoCall     `json:"calls"`
}
