package analyzer

// ErrorKind classifies analysis failures.
type ErrorKind string

const (
	// ErrPathNotFound indicates the requested path does not exist
	ErrPathNotFound ErrorKind = "PATH_NOT_FOUND"
	// ErrNotAFile indicates the path exists but is not a regular file
	ErrNotAFile ErrorKind = "NOT_A_FILE"
	// ErrSyntax indicates the front-end parser rejected the source
	ErrSyntax ErrorKind = "SYNTAX_ERROR"
	// ErrInternal indicates an unexpected failure
	ErrInternal ErrorKind = "INTERNAL_ERROR"
)

// Error is the structured error descriptor returned instead of an
// Analysis when a file cannot be analyzed. For syntax errors Line and
// Offset carry the parser's reported position.
type Error struct {
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
	Line    int       `json:"line,omitempty"`
	Offset  int       `json:"offset,omitempty"`
}

func (e *Error) Error() string {
	return e.Message
}
