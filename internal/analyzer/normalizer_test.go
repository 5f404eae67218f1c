package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// normalizeBody parses a single function and returns its canonical body
// block, unwrapped from the synthetic root.
func normalizeBody(t *testing.T, source string) *Node {
	t.Helper()

	record := extractSingle(t, source)
	require.Len(t, record.Tree.Children, 1)
	return record.Tree.Children[0]
}

// onlyStatement returns the single statement of a body block.
func onlyStatement(t *testing.T, body *Node) *Node {
	t.Helper()

	require.Equal(t, KindKeyword, body.Kind)
	require.Equal(t, ValueBlock, body.Value)
	require.Len(t, body.Children, 1)
	return body.Children[0]
}

func TestNormalizer_ErasesIdentifiers(t *testing.T) {
	body := normalizeBody(t, "func f(count int) int { return count }")
	ret := onlyStatement(t, body)

	require.Equal(t, "return", ret.Value)
	require.Len(t, ret.Children, 1)
	assert.Equal(t, KindIdentifier, ret.Children[0].Kind)
	assert.Equal(t, ValueID, ret.Children[0].Value)
}

func TestNormalizer_ErasesLiterals(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{"int", "func f() int { return 42 }"},
		{"string", `func f() string { return "hello" }`},
		{"float", "func f() float64 { return 3.14 }"},
		{"bool", "func f() bool { return true }"},
		{"nil", "func f() error { return nil }"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ret := onlyStatement(t, normalizeBody(t, tt.source))
			require.Len(t, ret.Children, 1)
			assert.Equal(t, KindLiteral, ret.Children[0].Kind)
			assert.Equal(t, ValueLit, ret.Children[0].Value)
		})
	}
}

func TestNormalizer_OperatorTaggedBySymbol(t *testing.T) {
	tests := []struct {
		source   string
		operator string
	}{
		{"func f(x int) int { return x + 1 }", "+"},
		{"func f(x int) int { return x * 2 }", "*"},
		{"func f(x int) bool { return x == 0 }", "=="},
		{"func f(x bool) bool { return !x }", "!"},
	}

	for _, tt := range tests {
		t.Run(tt.operator, func(t *testing.T) {
			ret := onlyStatement(t, normalizeBody(t, tt.source))
			require.Len(t, ret.Children, 1)
			assert.Equal(t, KindOperator, ret.Children[0].Kind)
			assert.Equal(t, tt.operator, ret.Children[0].Value)
		})
	}
}

func TestNormalizer_IfHasThreeSlots(t *testing.T) {
	ifNode := onlyStatement(t, normalizeBody(t,
		"func f(x int) {\n\tif x > 0 {\n\t\tx--\n\t}\n}"))

	require.Equal(t, "if", ifNode.Value)
	require.Len(t, ifNode.Children, 3)
	assert.Equal(t, KindOperator, ifNode.Children[0].Kind)
	assert.Equal(t, ValueBlock, ifNode.Children[1].Value)
	assert.Equal(t, ValueEmpty, ifNode.Children[2].Value, "absent else should be an explicit placeholder")
}

func TestNormalizer_IfElseFillsThirdSlot(t *testing.T) {
	ifNode := onlyStatement(t, normalizeBody(t,
		"func f(x int) {\n\tif x > 0 {\n\t\tx--\n\t} else {\n\t\tx++\n\t}\n}"))

	require.Len(t, ifNode.Children, 3)
	assert.Equal(t, ValueBlock, ifNode.Children[2].Value)
}

func TestNormalizer_IfWithInitKeepsArity(t *testing.T) {
	ifNode := onlyStatement(t, normalizeBody(t,
		"func f() {\n\tif v := g(); v > 0 {\n\t\tuse(v)\n\t}\n}"))

	require.Equal(t, "if", ifNode.Value)
	require.Len(t, ifNode.Children, 3, "initializer must not change the conditional's arity")

	cond := ifNode.Children[0]
	assert.Equal(t, KindKeyword, cond.Kind)
	assert.Equal(t, "init", cond.Value)
	require.Len(t, cond.Children, 2)
	assert.Equal(t, ":=", cond.Children[0].Value)
	assert.Equal(t, ">", cond.Children[1].Value)
}

func TestNormalizer_LoopForms(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		value    string
		children int
	}{
		{
			"counted",
			"func f() {\n\tfor i := 0; i < 10; i++ {\n\t\tuse(i)\n\t}\n}",
			"for", 4,
		},
		{
			"range",
			"func f(xs []int) {\n\tfor _, x := range xs {\n\t\tuse(x)\n\t}\n}",
			"foreach", 3,
		},
		{
			"conditional",
			"func f(x int) {\n\tfor x > 0 {\n\t\tx--\n\t}\n}",
			"while", 2,
		},
		{
			"infinite",
			"func f() {\n\tfor {\n\t\ttick()\n\t}\n}",
			"while", 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loop := onlyStatement(t, normalizeBody(t, tt.source))
			assert.Equal(t, KindKeyword, loop.Kind)
			assert.Equal(t, tt.value, loop.Value)
			assert.Len(t, loop.Children, tt.children)
		})
	}
}

func TestNormalizer_InfiniteLoopConditionIsPlaceholder(t *testing.T) {
	loop := onlyStatement(t, normalizeBody(t, "func f() {\n\tfor {\n\t\ttick()\n\t}\n}"))

	require.Len(t, loop.Children, 2)
	assert.Equal(t, ValueEmpty, loop.Children[0].Value)
	assert.Equal(t, ValueBlock, loop.Children[1].Value)
}

func TestNormalizer_BareReturnGetsPlaceholder(t *testing.T) {
	ret := onlyStatement(t, normalizeBody(t, "func f() {\n\treturn\n}"))

	require.Equal(t, "return", ret.Value)
	require.Len(t, ret.Children, 1)
	assert.Equal(t, ValueEmpty, ret.Children[0].Value)
}

func TestNormalizer_CallShape(t *testing.T) {
	call := onlyStatement(t, normalizeBody(t, "func f() {\n\tg(1, 2, 3)\n}"))

	require.Equal(t, "call", call.Value)
	require.Len(t, call.Children, 4, "callee plus three arguments")
	assert.Equal(t, KindIdentifier, call.Children[0].Kind)
	for _, arg := range call.Children[1:] {
		assert.Equal(t, KindLiteral, arg.Kind)
	}
}

func TestNormalizer_SelectorChain(t *testing.T) {
	stmt := onlyStatement(t, normalizeBody(t, "func f() {\n\ta.b.c()\n}"))

	require.Equal(t, "call", stmt.Value)
	callee := stmt.Children[0]
	assert.Equal(t, KindOperator, callee.Kind)
	assert.Equal(t, ".", callee.Value)
}

func TestNormalizer_NestedBlocksStayNested(t *testing.T) {
	body := normalizeBody(t, "func f() {\n\t{\n\t\ttick()\n\t}\n}")

	require.Len(t, body.Children, 1)
	inner := body.Children[0]
	assert.Equal(t, ValueBlock, inner.Value)
	require.Len(t, inner.Children, 1)
	assert.Equal(t, "call", inner.Children[0].Value)
}

func TestNormalizer_CommentsAreDropped(t *testing.T) {
	plain := normalizeBody(t, "func f(x int) int {\n\treturn x + 1\n}")
	commented := normalizeBody(t, "func f(x int) int {\n\t// adds one\n\treturn x + 1\n}")

	assert.Equal(t, 0, Distance(plain, commented))
	assert.Equal(t, TreeSize(plain), TreeSize(commented))
}

func TestNormalizer_SwitchShape(t *testing.T) {
	sw := onlyStatement(t, normalizeBody(t,
		"func f(x int) {\n\tswitch x {\n\tcase 1:\n\t\ta()\n\tcase 2:\n\t\tb()\n\tdefault:\n\t\tc()\n\t}\n}"))

	require.Equal(t, "switch", sw.Value)
	// Tag value plus three cases.
	require.Len(t, sw.Children, 4)
	assert.Equal(t, KindLiteral, sw.Children[0].Kind)
	assert.Equal(t, "case", sw.Children[1].Value)
	assert.Equal(t, "case", sw.Children[2].Value)
	assert.Equal(t, "default", sw.Children[3].Value)
}

func TestNormalizer_BareSwitchTagIsPlaceholder(t *testing.T) {
	sw := onlyStatement(t, normalizeBody(t,
		"func f(x int) {\n\tswitch {\n\tcase x > 0:\n\t\ta()\n\t}\n}"))

	require.Equal(t, "switch", sw.Value)
	require.GreaterOrEqual(t, len(sw.Children), 2)
	assert.Equal(t, ValueEmpty, sw.Children[0].Value)
}

func TestNormalizer_DistinctControlFlowDiffers(t *testing.T) {
	loop := normalizeBody(t, "func f(x int) {\n\tfor x > 0 {\n\t\tx--\n\t}\n}")
	cond := normalizeBody(t, "func f(x int) {\n\tif x > 0 {\n\t\tx--\n\t}\n}")

	assert.NotEqual(t, 0, Distance(loop, cond))
}
