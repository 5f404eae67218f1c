package analyzer

import "fmt"

// FunctionRecord is one discovered function, already normalized into its
// canonical tree. Normalizing at extraction time means the record owns its
// tree outright and nothing borrows the parser's memory (the parse tree
// can be released as soon as extraction finishes).
type FunctionRecord struct {
	// FilePath identifies the source file the function came from.
	FilePath string

	// Name is the declared function name. Nested function literals get a
	// synthesized name in the enclosing function's namespace, e.g.
	// "process.func1".
	Name string

	// StartLine and EndLine are 1-based and inclusive; StartLine <= EndLine.
	StartLine int
	EndLine   int

	// Snippet is the raw source text of the declaration.
	Snippet string

	// Tree is the wrapped canonical tree of the function body.
	Tree *Node

	// NodeCount is BodySize(Tree), precomputed once so the pair loop never
	// re-walks the tree for the minTokens filter.
	NodeCount int
}

// LineCount returns the number of source lines the function spans.
func (r *FunctionRecord) LineCount() int {
	return r.EndLine - r.StartLine + 1
}

// Location returns a file:line-line description of the record.
func (r *FunctionRecord) Location() string {
	return fmt.Sprintf("%s:%d-%d", r.FilePath, r.StartLine, r.EndLine)
}

// String returns a short debug representation of the record.
func (r *FunctionRecord) String() string {
	return fmt.Sprintf("FunctionRecord{%s %s nodes=%d}", r.Name, r.Location(), r.NodeCount)
}
