package peg

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Parse reads a dependence graph from a simple line-oriented textual
// format, meant for test fixtures and the command line tool:
//
//	graph euclid
//	a = param a
//	b = param b
//	c = const 0
//	eq = eq b c
//	m = mod a b
//	g = gamma eq a m
//	return g
//
// Blank lines and lines starting with '#' are skipped. The `graph`
// header is optional. Every operand must be defined on an earlier
// line, so parsed graphs are acyclic by construction.
func Parse(r io.Reader) (*Graph, error) {
	g := NewGraph("peg")
	env := map[string]Node{}

	lookup := func(lineno int, name string) (Node, error) {
		if n, found := env[name]; found {
			return n, nil
		}
		return nil, fmt.Errorf("line %d: undefined operand %q", lineno, name)
	}

	scanner := bufio.NewScanner(r)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		switch fields[0] {
		case "graph":
			if len(fields) != 2 {
				return nil, fmt.Errorf("line %d: expected `graph <name>`", lineno)
			}
			g.name = fields[1]
			continue

		case "return":
			if g.sink != nil {
				return nil, fmt.Errorf("line %d: duplicate return", lineno)
			}
			values := make([]Node, len(fields)-1)
			for i, arg := range fields[1:] {
				value, err := lookup(lineno, arg)
				if err != nil {
					return nil, err
				}
				values[i] = value
			}
			g.Return(values...)
			continue
		}

		// Remaining forms are definitions: <name> = <op> <operands>
		if len(fields) < 3 || fields[1] != "=" {
			return nil, fmt.Errorf("line %d: expected `<name> = <op> <operands>`", lineno)
		}
		name, op, args := fields[0], fields[2], fields[3:]
		if _, found := env[name]; found {
			return nil, fmt.Errorf("line %d: redefinition of %q", lineno, name)
		}

		var node Node
		switch op {
		case "const":
			if len(args) != 1 {
				return nil, fmt.Errorf("line %d: const takes one literal", lineno)
			}
			value, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: bad literal %q", lineno, args[0])
			}
			node = g.Const(value)

		case "param":
			if len(args) != 1 {
				return nil, fmt.Errorf("line %d: param takes one name", lineno)
			}
			node = g.Param(args[0])

		case "gamma":
			if len(args) != 3 {
				return nil, fmt.Errorf("line %d: gamma takes condition, true value and false value", lineno)
			}
			operands := make([]Node, 3)
			for i, arg := range args {
				operand, err := lookup(lineno, arg)
				if err != nil {
					return nil, err
				}
				operands[i] = operand
			}
			node = g.Gamma(operands[0], operands[1], operands[2])

		default:
			arith, known := OpByName(op)
			if !known {
				return nil, fmt.Errorf("line %d: unknown operation %q", lineno, op)
			}
			if len(args) != 2 {
				return nil, fmt.Errorf("line %d: %s takes two operands", lineno, op)
			}
			left, err := lookup(lineno, args[0])
			if err != nil {
				return nil, err
			}
			right, err := lookup(lineno, args[1])
			if err != nil {
				return nil, err
			}
			node = g.Arith(arith, left, right)
		}

		env[name] = node
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if g.sink == nil {
		return nil, fmt.Errorf("graph %q has no return", g.name)
	}
	return g, nil
}

// ParseFile parses the dependence graph stored at the given path.
func ParseFile(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Parse(f)
}
