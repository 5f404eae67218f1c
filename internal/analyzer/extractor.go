package analyzer

import (
	"strconv"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/lempiji/similarity-d/internal/parser"
)

// ExtractOptions controls which function-like declarations the extractor
// collects. Both options are explicit parameters rather than process-wide
// state, so concurrent extractions with different options never interfere.
type ExtractOptions struct {
	// CollectNested collects function literals found anywhere inside
	// another function's body, at any control-flow depth. When false,
	// output is restricted to top-level declarations only.
	CollectNested bool

	// IncludeTests includes conventional Go test functions (Test*,
	// Benchmark*, Fuzz*, Example* in _test.go files). When false those
	// functions are skipped entirely, nested literals included.
	IncludeTests bool
}

// DefaultExtractOptions collects nested functions and test functions.
func DefaultExtractOptions() ExtractOptions {
	return ExtractOptions{
		CollectNested: true,
		IncludeTests:  true,
	}
}

// Extractor discovers function-like declarations in a parsed file and
// normalizes each body into its canonical tree on the spot. Extraction is
// deterministic: identical input and options always yield the same record
// sequence.
type Extractor struct {
	opts ExtractOptions
}

// NewExtractor creates an extractor with the given options.
func NewExtractor(opts ExtractOptions) *Extractor {
	return &Extractor{opts: opts}
}

// scope tracks the enclosing function name and a counter used to
// synthesize names for nested function literals, mirroring the runtime's
// outer.funcN convention.
type scope struct {
	name string
	n    int
}

func (s *scope) nextName() string {
	s.n++
	if s.name == "" {
		return "func" + strconv.Itoa(s.n)
	}
	return s.name + ".func" + strconv.Itoa(s.n)
}

// ExtractFunctions returns one FunctionRecord per function-like
// declaration with a concrete body, in depth-first pre-order: an
// enclosing function's record always precedes its nested functions'
// records. Wrapper nodes (declaration lists, statements, any control-flow
// form) are traversed transparently and yield nothing themselves.
func (e *Extractor) ExtractFunctions(result *parser.ParseResult, filePath string) []*FunctionRecord {
	if result == nil || result.RootNode == nil {
		return nil
	}

	var records []*FunctionRecord
	nz := NewNormalizer(result.SourceCode)
	fileScope := &scope{}
	e.walk(result.RootNode, filePath, result.SourceCode, nz, fileScope, &records)
	return records
}

// walk traverses one node. Records are appended immediately on discovery.
func (e *Extractor) walk(node *sitter.Node, filePath string, source []byte, nz *Normalizer, sc *scope, records *[]*FunctionRecord) {
	switch node.Type() {
	case "function_declaration", "method_declaration":
		name := nodeFieldText(node, "name", source)
		if !e.opts.IncludeTests && isTestFunction(filePath, name) {
			return
		}

		body := node.ChildByFieldName("body")
		if body == nil {
			// Declaration without a concrete body (e.g. an assembly
			// stub): nothing to record and nothing nested to find.
			return
		}

		*records = append(*records, e.newRecord(node, body, name, filePath, source, nz))

		if e.opts.CollectNested {
			inner := &scope{name: name}
			e.walkChildren(body, filePath, source, nz, inner, records)
		}

	case "func_literal":
		if !e.opts.CollectNested {
			return
		}

		name := sc.nextName()
		body := node.ChildByFieldName("body")
		if body != nil {
			*records = append(*records, e.newRecord(node, body, name, filePath, source, nz))
		}

		inner := &scope{name: name}
		e.walkChildren(node, filePath, source, nz, inner, records)

	default:
		e.walkChildren(node, filePath, source, nz, sc, records)
	}
}

// walkChildren traverses every named child. Unsupported constructs are
// still traversed so a nested function is never missed because of the
// control-flow form it hides in.
func (e *Extractor) walkChildren(node *sitter.Node, filePath string, source []byte, nz *Normalizer, sc *scope, records *[]*FunctionRecord) {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		e.walk(node.NamedChild(i), filePath, source, nz, sc, records)
	}
}

// newRecord builds a FunctionRecord with its canonical tree normalized
// immediately, so the record never borrows the parse tree's memory.
func (e *Extractor) newRecord(node, body *sitter.Node, name, filePath string, source []byte, nz *Normalizer) *FunctionRecord {
	tree := nz.NormalizeFunction(body)
	return &FunctionRecord{
		FilePath:  filePath,
		Name:      name,
		StartLine: int(node.StartPoint().Row) + 1,
		EndLine:   int(node.EndPoint().Row) + 1,
		Snippet:   node.Content(source),
		Tree:      tree,
		NodeCount: BodySize(tree),
	}
}

// isTestFunction reports whether a function follows the conventional Go
// test naming in a _test.go file.
func isTestFunction(filePath, name string) bool {
	if !strings.HasSuffix(filePath, "_test.go") {
		return false
	}
	for _, prefix := range []string{"Test", "Benchmark", "Fuzz", "Example"} {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

func nodeFieldText(node *sitter.Node, field string, source []byte) string {
	child := node.ChildByFieldName(field)
	if child == nil {
		return ""
	}
	return child.Content(source)
}
