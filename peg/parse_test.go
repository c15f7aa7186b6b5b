package peg

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseEuclid(t *testing.T) {
	g, err := Parse(strings.NewReader(`
graph euclid
# one step of gcd(a, b)
a = param a
b = param b
c = const 0
eq = eq b c
m = mod a b
g = gamma eq a m
return g
`))
	require.NoError(t, err)
	require.Equal(t, "euclid", g.Name())
	require.Equal(t, 7, g.NodeCount())

	sink := g.Sink().(*ReturnNode)
	require.Len(t, sink.Values(), 1)

	res := sink.Values()[0].(*GammaNode)
	require.Equal(t, KindArith, res.Condition().Kind())
	require.Equal(t, OpEq, res.Condition().(*ArithNode).Op())
	require.Equal(t, KindParam, res.TrueValue().Kind())
	require.Equal(t, OpMod, res.FalseValue().(*ArithNode).Op())
}

func TestParseTupleReturn(t *testing.T) {
	g, err := Parse(strings.NewReader(`
x = param x
y = const -3
return x y
`))
	require.NoError(t, err)

	values := g.Sink().(*ReturnNode).Values()
	require.Len(t, values, 2)
	require.Equal(t, int64(-3), values[1].(*ConstNode).Value())
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		error string
	}{
		{"undefined operand", "x = add y z", "line 1: undefined operand \"y\""},
		{"redefinition", "x = const 1\nx = const 2", "line 2: redefinition of \"x\""},
		{"unknown operation", "x = frobnicate a b", "line 1: unknown operation \"frobnicate\""},
		{"bad literal", "x = const many", "line 1: bad literal \"many\""},
		{"bad arity", "x = const 1\ny = add x", "line 2: add takes two operands"},
		{"bad gamma arity", "x = const 1\ny = gamma x x", "line 2: gamma takes condition, true value and false value"},
		{"malformed definition", "x := const 1", "line 1: expected `<name> = <op> <operands>`"},
		{"duplicate return", "x = const 1\nreturn x\nreturn x", "line 3: duplicate return"},
		{"missing return", "x = const 1", "no return"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(test.input))
			require.ErrorContains(t, err, test.error)
		})
	}
}

func TestParseRoundTrip(t *testing.T) {
	g, err := Parse(strings.NewReader(`
graph diamond
c = param c
p = param p
q = param q
a = add c p
b = mul c q
return a b
`))
	require.NoError(t, err)

	rendered := g.String()
	require.Contains(t, rendered, "graph diamond {")
	require.Contains(t, rendered, "Arith<add> 3 <- 0, 1")
	require.Contains(t, rendered, "Arith<mul> 4 <- 0, 2")
	require.Contains(t, rendered, "Return 5 <- 3, 4")
}
