package rules

import (
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/nstehr/brood/world"
)

// Engine dispatches commands category by category. Within a category every
// eligible command runs in registration order; one command acting never
// stops the next one from being considered.
type Engine struct {
	commands map[Category][]Command
	gates    map[string]*Gate
	disabled map[string]bool
}

// Fired records one command that ran during a step.
type Fired struct {
	Category Category `json:"category"`
	Command  string   `json:"command"`
	Acted    bool     `json:"acted"`
	Orders   int      `json:"orders"`
}

// NewEngine builds an engine with optional gates and a set of command names
// that must never run.
func NewEngine(gates []*Gate, disabled []string) *Engine {
	e := &Engine{
		commands: make(map[Category][]Command),
		gates:    make(map[string]*Gate, len(gates)),
		disabled: make(map[string]bool, len(disabled)),
	}
	for _, g := range gates {
		e.gates[g.Command] = g
	}
	for _, name := range disabled {
		e.disabled[name] = true
	}
	return e
}

// Register appends commands to a category, keeping their order.
func (e *Engine) Register(c Category, cmds ...Command) {
	e.commands[c] = append(e.commands[c], cmds...)
}

// Commands returns the registered commands of a category in order.
func (e *Engine) Commands(c Category) []Command {
	return e.commands[c]
}

// Unbound returns gate and disabled names that match no registered command.
func (e *Engine) Unbound() []string {
	known := make(map[string]bool)
	for _, cmds := range e.commands {
		for _, cmd := range cmds {
			known[cmd.Name()] = true
		}
	}
	var out []string
	for name := range e.gates {
		if !known[name] {
			out = append(out, name)
		}
	}
	for name := range e.disabled {
		if !known[name] {
			out = append(out, name)
		}
	}
	return out
}

// Run evaluates one category against the snapshot, appending orders to b.
func (e *Engine) Run(c Category, s *world.Snapshot, b *Batch) []Fired {
	var (
		fired []Fired
		env   *GateEnv
	)
	for _, cmd := range e.commands[c] {
		name := cmd.Name()
		if e.disabled[name] {
			continue
		}
		ok, err := eligible(cmd, s)
		if err != nil {
			slog.Error("command check failed", "command", name, "category", c, "loop", s.Loop, "error", err)
			continue
		}
		if !ok {
			continue
		}
		if g, ok := e.gates[name]; ok {
			if env == nil {
				ge := NewGateEnv(s)
				env = &ge
			}
			open, err := g.Eval(*env)
			if err != nil {
				slog.Warn("gate error", "command", name, "error", err)
			}
			if !open {
				continue
			}
		}

		before := b.Len()
		acted, err := handle(cmd, s, b)
		if err != nil {
			b.truncate(before)
			slog.Error("command failed", "command", name, "category", c, "loop", s.Loop, "error", err)
			continue
		}
		f := Fired{Category: c, Command: name, Acted: acted, Orders: b.Len() - before}
		fired = append(fired, f)
		slog.Debug("command fired", "command", name, "category", c, "acted", acted, "orders", f.Orders)
	}
	return fired
}

func eligible(cmd Command, s *world.Snapshot) (ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return cmd.ShouldHandle(s), nil
}

// handle isolates a command so a panic only costs that command's orders.
func handle(cmd Command, s *world.Snapshot, b *Batch) (acted bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v\n%s", r, debug.Stack())
		}
	}()
	return cmd.Handle(s, b), nil
}
