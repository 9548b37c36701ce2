package rules

import (
	"fmt"
	"maps"
	"slices"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Gate is an extra condition an operator attaches to a command by name. A
// command only runs when its own ShouldHandle and its gate both hold.
type Gate struct {
	Command string
	Source  string
	program *vm.Program
}

// CompileGates compiles every gate expression against GateEnv. Gates are
// returned sorted by command name so errors and logs are stable.
func CompileGates(src map[string]string) ([]*Gate, error) {
	names := slices.Sorted(maps.Keys(src))
	gates := make([]*Gate, 0, len(names))
	for _, name := range names {
		prog, err := expr.Compile(src[name], expr.Env(GateEnv{}), expr.AsBool())
		if err != nil {
			return nil, fmt.Errorf("compile gate for %q: %w", name, err)
		}
		gates = append(gates, &Gate{Command: name, Source: src[name], program: prog})
	}
	return gates, nil
}

// Eval runs the compiled gate. A runtime error counts as closed.
func (g *Gate) Eval(env GateEnv) (bool, error) {
	out, err := vm.Run(g.program, env)
	if err != nil {
		return false, fmt.Errorf("gate %q: %w", g.Command, err)
	}
	ok, _ := out.(bool)
	return ok, nil
}
