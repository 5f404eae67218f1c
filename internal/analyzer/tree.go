package analyzer

import "fmt"

// NodeKind classifies a canonical tree node. The comparison engine only
// ever looks at the (Kind, Value) pair, so the set is closed and small.
type NodeKind int

const (
	// KindIdentifier marks an identifier-like reference. Its value is
	// always ValueID; the original name is discarded.
	KindIdentifier NodeKind = iota
	// KindLiteral marks any literal. Its value is always ValueLit.
	KindLiteral
	// KindKeyword marks a structural construct (if, for, call, block, ...).
	KindKeyword
	// KindOperator marks a binary or unary operator, tagged by its symbol.
	KindOperator
	// KindOther marks catch-all leaves and placeholders.
	KindOther
)

// String returns the string representation of a NodeKind.
func (k NodeKind) String() string {
	switch k {
	case KindIdentifier:
		return "Identifier"
	case KindLiteral:
		return "Literal"
	case KindKeyword:
		return "Keyword"
	case KindOperator:
		return "Operator"
	case KindOther:
		return "Other"
	default:
		return "Unknown"
	}
}

// Canonical node values shared across the normalizer and the tests.
const (
	ValueID    = "<id>"
	ValueLit   = "<lit>"
	ValueEmpty = "<empty>"
	ValueBlock = "block"
	ValueRoot  = "<root>"
)

// Node is one node of the canonical, identity-erased tree a function body
// is reduced to. Trees are finite and acyclic; every node exclusively owns
// its ordered children. Once built a tree is never mutated.
type Node struct {
	Kind     NodeKind
	Value    string
	Children []*Node
}

// NewNode creates a node with the given kind, value, and ordered children.
// Nil children are dropped so callers can pass optional parts directly.
func NewNode(kind NodeKind, value string, children ...*Node) *Node {
	n := &Node{Kind: kind, Value: value}
	for _, child := range children {
		if child != nil {
			n.Children = append(n.Children, child)
		}
	}
	return n
}

// NewLeaf creates a node with no children.
func NewLeaf(kind NodeKind, value string) *Node {
	return &Node{Kind: kind, Value: value}
}

// NewPlaceholder creates the explicit empty node used for a missing
// optional sub-part (e.g. an absent else branch). Representing absence as
// a real node makes adding or removing the part cost exactly one edit.
func NewPlaceholder() *Node {
	return NewLeaf(KindOther, ValueEmpty)
}

// NewRoot wraps a normalized function body in the synthetic root node.
// The wrapper is excluded from size and distance accounting.
func NewRoot(body *Node) *Node {
	return NewNode(KindOther, ValueRoot, body)
}

// AddChild appends a child node, ignoring nil.
func (n *Node) AddChild(child *Node) {
	if child != nil {
		n.Children = append(n.Children, child)
	}
}

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// Label returns the (kind, value) pair used for relabel cost comparison.
func (n *Node) Label() (NodeKind, string) {
	return n.Kind, n.Value
}

// SameLabel reports whether two nodes carry the same (kind, value) pair.
func (n *Node) SameLabel(other *Node) bool {
	return n.Kind == other.Kind && n.Value == other.Value
}

// String returns a short debug representation of the node.
func (n *Node) String() string {
	return fmt.Sprintf("Node{%s %q children=%d}", n.Kind, n.Value, len(n.Children))
}

// TreeSize returns the number of nodes in the subtree rooted at n,
// counting every node including leaves. A nil tree has size 0.
func TreeSize(n *Node) int {
	if n == nil {
		return 0
	}
	size := 1
	for _, child := range n.Children {
		size += TreeSize(child)
	}
	return size
}

// BodySize returns the node count of a wrapped tree with the synthetic
// root excluded. This is the size used for scoring and the minTokens
// filter.
func BodySize(root *Node) int {
	size := TreeSize(root) - 1
	if size < 0 {
		return 0
	}
	return size
}
