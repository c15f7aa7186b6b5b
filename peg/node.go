package peg

import "fmt"

// Kind enumerates the closed set of operation kinds a dependence graph
// may contain. Edge semantics are determined by the kind through the
// per-kind operand accessors, not by runtime type inspection.
type Kind int

const (
	KindConst Kind = iota
	KindParam
	KindArith
	KindGamma
	KindReturn
)

func (k Kind) String() string {
	switch k {
	case KindConst:
		return "const"
	case KindParam:
		return "param"
	case KindArith:
		return "arith"
	case KindGamma:
		return "gamma"
	case KindReturn:
		return "return"
	}
	panic(fmt.Sprintf("unknown node kind: %d", int(k)))
}

// Op enumerates the binary operators an ArithNode may carry.
type Op int

const (
	OpAdd Op = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpEq
	OpLt
)

var opNames = [...]string{"add", "sub", "mul", "div", "mod", "eq", "lt"}

func (op Op) String() string {
	if int(op) < 0 || int(op) >= len(opNames) {
		panic(fmt.Sprintf("unknown arithmetic operator: %d", int(op)))
	}
	return opNames[op]
}

// OpByName resolves an operator mnemonic. The second result is false
// for unknown mnemonics.
func OpByName(name string) (Op, bool) {
	for op, s := range opNames {
		if s == name {
			return Op(op), true
		}
	}
	return 0, false
}

// Node is a single operation in a dependence graph. A node holds its
// operands as ordered dependency edges; the reverse (use) relation is
// maintained separately by the owning graph's use index.
type Node interface {
	Kind() Kind
	// Dependencies returns the ordered operand edges: what this node
	// depends on. The returned slice must not be mutated.
	Dependencies() []Node
	Graph() *Graph
	ID() int

	String() string

	base() *BaseNode
}

type BaseNode struct {
	graph *Graph
	id    int
	deps  []Node
}

func (n *BaseNode) Dependencies() []Node {
	return n.deps
}

func (n *BaseNode) Graph() *Graph {
	return n.graph
}

func (n *BaseNode) ID() int {
	return n.id
}

func (n *BaseNode) base() *BaseNode {
	return n
}

// ConstNode is an integer literal. It has no dependencies.
type ConstNode struct {
	BaseNode
	value int64
}

func (n *ConstNode) Kind() Kind { return KindConst }

func (n *ConstNode) Value() int64 { return n.value }

func (n *ConstNode) String() string {
	return fmt.Sprintf("Const<%d> %d", n.value, n.id)
}

// ParamNode is a named input of the graph. It has no dependencies.
type ParamNode struct {
	BaseNode
	name string
}

func (n *ParamNode) Kind() Kind { return KindParam }

func (n *ParamNode) Name() string { return n.name }

func (n *ParamNode) String() string {
	return fmt.Sprintf("Param<%s> %d", n.name, n.id)
}

// ArithNode is a binary operation on its two operands.
type ArithNode struct {
	BaseNode
	op Op
}

func (n *ArithNode) Kind() Kind { return KindArith }

func (n *ArithNode) Op() Op { return n.op }

func (n *ArithNode) Left() Node { return n.deps[0] }

func (n *ArithNode) Right() Node { return n.deps[1] }

func (n *ArithNode) String() string {
	return fmt.Sprintf("Arith<%s> %d", n.op, n.id)
}

// GammaNode selects between two values based on a condition. This is
// the value-level encoding of branching: control flow is implicit in
// the graph shape.
type GammaNode struct {
	BaseNode
}

func (n *GammaNode) Kind() Kind { return KindGamma }

func (n *GammaNode) Condition() Node { return n.deps[0] }

func (n *GammaNode) TrueValue() Node { return n.deps[1] }

func (n *GammaNode) FalseValue() Node { return n.deps[2] }

func (n *GammaNode) String() string {
	return fmt.Sprintf("Gamma %d", n.id)
}

// ReturnNode is the unique terminal operation of a graph: the sink.
// Multiple returned values model tuple returns.
type ReturnNode struct {
	BaseNode
}

func (n *ReturnNode) Kind() Kind { return KindReturn }

func (n *ReturnNode) Values() []Node {
	return n.deps
}

func (n *ReturnNode) String() string {
	return fmt.Sprintf("Return %d", n.id)
}
