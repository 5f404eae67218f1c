package analyzer

import (
	sitter "github.com/smacker/go-tree-sitter"
)

// Normalizer maps tree-sitter Go syntax nodes into the canonical tree
// model. The mapping erases identity (names and literal values) while
// preserving structure: renaming a variable or changing a constant never
// changes the resulting tree, but changing an operator or a control-flow
// construct always does.
//
// Normalization is total. Dispatch is a closed switch over node type
// names with a catch-all default, so every input maps to some node and
// the normalizer can never fail.
type Normalizer struct {
	source []byte
}

// NewNormalizer creates a normalizer for one parsed source unit.
func NewNormalizer(source []byte) *Normalizer {
	return &Normalizer{source: source}
}

// identifierTypes are the node types normalized to an Identifier leaf.
// Type expressions count as identifier-likes: a type used as a value is
// just another name to be erased.
var identifierTypes = map[string]bool{
	"identifier":         true,
	"field_identifier":   true,
	"type_identifier":    true,
	"package_identifier": true,
	"blank_identifier":   true,
	"label_name":         true,
	"struct_type":        true,
	"interface_type":     true,
	"map_type":           true,
	"array_type":         true,
	"slice_type":         true,
	"channel_type":       true,
	"function_type":      true,
	"pointer_type":       true,
	"qualified_type":     true,
	"generic_type":       true,
}

// literalTypes are the node types normalized to a Literal leaf.
var literalTypes = map[string]bool{
	"int_literal":                true,
	"float_literal":              true,
	"imaginary_literal":          true,
	"rune_literal":               true,
	"interpreted_string_literal": true,
	"raw_string_literal":         true,
	"true":                       true,
	"false":                      true,
	"nil":                        true,
	"iota":                       true,
}

// NormalizeFunction normalizes a function body into a wrapped canonical
// tree. The synthetic root has exactly one child, the top-level block.
func (nz *Normalizer) NormalizeFunction(body *sitter.Node) *Node {
	if body == nil {
		return NewRoot(NewPlaceholder())
	}
	return NewRoot(nz.normalize(body))
}

// normalize maps one syntax node to its canonical form. Returns nil only
// for comments, which callers drop.
func (nz *Normalizer) normalize(node *sitter.Node) *Node {
	if node == nil {
		return NewPlaceholder()
	}

	nodeType := node.Type()
	if identifierTypes[nodeType] {
		return NewLeaf(KindIdentifier, ValueID)
	}
	if literalTypes[nodeType] {
		return NewLeaf(KindLiteral, ValueLit)
	}

	switch nodeType {
	case "comment":
		return nil

	case "block":
		return nz.normalizeBlock(node)

	case "if_statement":
		return nz.normalizeIf(node)

	case "for_statement":
		return nz.normalizeFor(node)

	case "binary_expression":
		op := nz.text(node.ChildByFieldName("operator"))
		return NewNode(KindOperator, op,
			nz.normalize(node.ChildByFieldName("left")),
			nz.normalize(node.ChildByFieldName("right")))

	case "unary_expression":
		op := nz.text(node.ChildByFieldName("operator"))
		return NewNode(KindOperator, op,
			nz.normalize(node.ChildByFieldName("operand")))

	case "call_expression":
		return nz.normalizeCall(node)

	case "selector_expression":
		return NewNode(KindOperator, ".",
			nz.normalize(node.ChildByFieldName("operand")),
			nz.normalize(node.ChildByFieldName("field")))

	case "index_expression":
		return NewNode(KindOperator, "[]",
			nz.normalize(node.ChildByFieldName("operand")),
			nz.normalize(node.ChildByFieldName("index")))

	case "slice_expression":
		return NewNode(KindOperator, "[:]",
			nz.normalize(node.ChildByFieldName("operand")),
			nz.normalizeOptional(node.ChildByFieldName("start")),
			nz.normalizeOptional(node.ChildByFieldName("end")),
			nz.normalizeOptional(node.ChildByFieldName("capacity")))

	case "parenthesized_expression", "expression_statement", "literal_element", "variadic_argument":
		// Transparent wrappers: normalize the single wrapped node.
		if inner := firstNamedChild(node); inner != nil {
			return nz.normalize(inner)
		}
		return NewPlaceholder()

	case "expression_list":
		return nz.normalizeList(node)

	case "assignment_statement":
		op := nz.text(node.ChildByFieldName("operator"))
		return NewNode(KindOperator, op,
			nz.normalize(node.ChildByFieldName("left")),
			nz.normalize(node.ChildByFieldName("right")))

	case "short_var_declaration":
		return NewNode(KindOperator, ":=",
			nz.normalize(node.ChildByFieldName("left")),
			nz.normalize(node.ChildByFieldName("right")))

	case "inc_statement":
		return NewNode(KindOperator, "++", nz.normalize(firstNamedChild(node)))

	case "dec_statement":
		return NewNode(KindOperator, "--", nz.normalize(firstNamedChild(node)))

	case "send_statement":
		return NewNode(KindOperator, "<-",
			nz.normalize(node.ChildByFieldName("channel")),
			nz.normalize(node.ChildByFieldName("value")))

	case "return_statement":
		return NewNode(KindKeyword, "return", nz.normalizeOptional(firstNamedChild(node)))

	case "break_statement":
		return NewNode(KindKeyword, "break", nz.normalizeOptional(firstNamedChild(node)))

	case "continue_statement":
		return NewNode(KindKeyword, "continue", nz.normalizeOptional(firstNamedChild(node)))

	case "goto_statement":
		return NewNode(KindKeyword, "goto", nz.normalizeOptional(firstNamedChild(node)))

	case "fallthrough_statement":
		return NewLeaf(KindKeyword, "fallthrough")

	case "labeled_statement":
		return nz.normalizeNamedChildren(NewNode(KindKeyword, "label"), node)

	case "defer_statement":
		return NewNode(KindKeyword, "defer", nz.normalize(firstNamedChild(node)))

	case "go_statement":
		return NewNode(KindKeyword, "go", nz.normalize(firstNamedChild(node)))

	case "expression_switch_statement":
		return nz.normalizeSwitch(node, "switch")

	case "type_switch_statement":
		return nz.normalizeSwitch(node, "typeswitch")

	case "select_statement":
		return nz.normalizeNamedChildren(NewNode(KindKeyword, "select"), node)

	case "expression_case", "type_case", "communication_case":
		return nz.normalizeNamedChildren(NewNode(KindKeyword, "case"), node)

	case "default_case":
		return nz.normalizeNamedChildren(NewNode(KindKeyword, "default"), node)

	case "var_declaration":
		return nz.normalizeNamedChildren(NewNode(KindKeyword, "var"), node)

	case "const_declaration":
		return nz.normalizeNamedChildren(NewNode(KindKeyword, "const"), node)

	case "var_spec", "const_spec":
		return NewNode(KindKeyword, "spec",
			nz.normalize(node.ChildByFieldName("name")),
			nz.normalizeOptional(node.ChildByFieldName("type")),
			nz.normalizeOptional(node.ChildByFieldName("value")))

	case "composite_literal":
		return NewNode(KindKeyword, "composite",
			nz.normalizeOptional(node.ChildByFieldName("type")),
			nz.normalize(node.ChildByFieldName("body")))

	case "literal_value":
		return nz.normalizeNamedChildren(NewNode(KindKeyword, "elements"), node)

	case "keyed_element":
		return nz.normalizeNamedChildren(NewNode(KindOperator, ":"), node)

	case "type_assertion_expression":
		return NewNode(KindKeyword, "assert",
			nz.normalize(node.ChildByFieldName("operand")),
			nz.normalize(node.ChildByFieldName("type")))

	case "type_conversion_expression":
		return NewNode(KindKeyword, "convert",
			nz.normalize(node.ChildByFieldName("type")),
			nz.normalize(node.ChildByFieldName("operand")))

	case "func_literal":
		return NewNode(KindKeyword, "func",
			nz.normalize(node.ChildByFieldName("body")))

	default:
		// Catch-all: a leaf tagged by the syntactic category name. This
		// keeps normalization total for constructs without an explicit
		// rule.
		return NewLeaf(KindOther, nodeType)
	}
}

// normalizeOptional maps a possibly absent sub-part to an explicit
// placeholder so adding or removing it always costs exactly one edit.
func (nz *Normalizer) normalizeOptional(node *sitter.Node) *Node {
	if node == nil {
		return NewPlaceholder()
	}
	return nz.normalize(node)
}

// normalizeBlock maps a statement block to an n-ary block node. Nested
// blocks stay nested; they are never flattened into the parent.
func (nz *Normalizer) normalizeBlock(node *sitter.Node) *Node {
	return nz.normalizeNamedChildren(NewNode(KindKeyword, ValueBlock), node)
}

// normalizeIf maps a conditional to exactly three slots: condition, then
// branch, else branch. A Go if with an init statement keeps the three-slot
// arity by folding the initializer and the condition under an "init" node.
func (nz *Normalizer) normalizeIf(node *sitter.Node) *Node {
	cond := nz.normalize(node.ChildByFieldName("condition"))
	if init := node.ChildByFieldName("initializer"); init != nil {
		cond = NewNode(KindKeyword, "init", nz.normalize(init), cond)
	}
	return NewNode(KindKeyword, "if",
		cond,
		nz.normalize(node.ChildByFieldName("consequence")),
		nz.normalizeOptional(node.ChildByFieldName("alternative")))
}

// normalizeFor distinguishes the three Go loop forms: a counted loop gets
// four slots (init, condition, update, body), a range loop three, and a
// condition-only or infinite loop two.
func (nz *Normalizer) normalizeFor(node *sitter.Node) *Node {
	body := node.ChildByFieldName("body")

	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		switch child.Type() {
		case "for_clause":
			return NewNode(KindKeyword, "for",
				nz.normalizeOptional(child.ChildByFieldName("initializer")),
				nz.normalizeOptional(child.ChildByFieldName("condition")),
				nz.normalizeOptional(child.ChildByFieldName("update")),
				nz.normalize(body))
		case "range_clause":
			return NewNode(KindKeyword, "foreach",
				nz.normalizeOptional(child.ChildByFieldName("left")),
				nz.normalize(child.ChildByFieldName("right")),
				nz.normalize(body))
		}
	}

	// `for cond {}` or a bare `for {}`.
	var cond *sitter.Node
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if child.Type() == "comment" || child.Type() == "block" {
			continue
		}
		cond = child
		break
	}
	return NewNode(KindKeyword, "while",
		nz.normalizeOptional(cond),
		nz.normalize(body))
}

// normalizeCall maps a call to a callee child followed by the ordered
// argument children.
func (nz *Normalizer) normalizeCall(node *sitter.Node) *Node {
	call := NewNode(KindKeyword, "call", nz.normalize(node.ChildByFieldName("function")))
	if args := node.ChildByFieldName("arguments"); args != nil {
		for i := 0; i < int(args.NamedChildCount()); i++ {
			call.AddChild(nz.normalize(args.NamedChild(i)))
		}
	}
	return call
}

// normalizeSwitch maps a switch to its tag value (or a placeholder for a
// bare switch) followed by the case nodes in order.
func (nz *Normalizer) normalizeSwitch(node *sitter.Node, tag string) *Node {
	sw := NewNode(KindKeyword, tag, nz.normalizeOptional(node.ChildByFieldName("value")))
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		switch child.Type() {
		case "expression_case", "type_case", "communication_case", "default_case":
			sw.AddChild(nz.normalize(child))
		}
	}
	return sw
}

// normalizeList maps an expression list to a single expression when there
// is exactly one, or to an n-ary list node otherwise.
func (nz *Normalizer) normalizeList(node *sitter.Node) *Node {
	if node.NamedChildCount() == 1 {
		return nz.normalize(node.NamedChild(0))
	}
	return nz.normalizeNamedChildren(NewNode(KindKeyword, "list"), node)
}

// normalizeNamedChildren appends every named child's normalized form to
// the parent, in source order, dropping comments.
func (nz *Normalizer) normalizeNamedChildren(parent *Node, node *sitter.Node) *Node {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		parent.AddChild(nz.normalize(node.NamedChild(i)))
	}
	return parent
}

// text returns the source text of a node, or an empty string for nil.
func (nz *Normalizer) text(node *sitter.Node) string {
	if node == nil {
		return ""
	}
	return node.Content(nz.source)
}

// firstNamedChild returns a node's first named non-comment child.
func firstNamedChild(node *sitter.Node) *sitter.Node {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		if child := node.NamedChild(i); child.Type() != "comment" {
			return child
		}
	}
	return nil
}
