package command

import (
	"fmt"
	"sort"

	"github.com/cory-johannsen/detective/internal/game/exploration"
)

// Registry maps command names and aliases to Command definitions.
type Registry struct {
	commands map[string]*Command // canonical name → command
	aliases  map[string]string   // alias → canonical name
}

// NewRegistry creates a Registry populated with the given commands.
//
// Precondition: No two commands may share a canonical name or alias.
// Postcondition: Returns a Registry or an error on name/alias collisions.
func NewRegistry(cmds []Command) (*Registry, error) {
	r := &Registry{
		commands: make(map[string]*Command, len(cmds)),
		aliases:  make(map[string]string),
	}

	for i := range cmds {
		cmd := &cmds[i]
		if _, exists := r.commands[cmd.Name]; exists {
			return nil, fmt.Errorf("duplicate command name: %q", cmd.Name)
		}
		if owner, exists := r.aliases[cmd.Name]; exists {
			return nil, fmt.Errorf("command name %q conflicts with an alias of %q", cmd.Name, owner)
		}
		r.commands[cmd.Name] = cmd
	}

	// Aliases are checked after every name is known so ordering in cmds
	// cannot hide a collision.
	for i := range cmds {
		cmd := &cmds[i]
		for _, alias := range cmd.Aliases {
			if _, exists := r.commands[alias]; exists {
				return nil, fmt.Errorf("alias %q of %q conflicts with a command name", alias, cmd.Name)
			}
			if existing, exists := r.aliases[alias]; exists {
				return nil, fmt.Errorf("duplicate alias %q: used by %q and %q", alias, existing, cmd.Name)
			}
			r.aliases[alias] = cmd.Name
		}
	}

	return r, nil
}

// DefaultRegistry creates a Registry with all built-in commands.
//
// Postcondition: Returns a Registry with all built-in commands registered.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(BuiltinCommands())
	if err != nil {
		panic(fmt.Sprintf("building default registry: %v", err))
	}
	return r
}

// Resolve looks up a command by canonical name or alias.
//
// Postcondition: Returns (command, true) if found, or (nil, false).
func (r *Registry) Resolve(word string) (*Command, bool) {
	if cmd, ok := r.commands[word]; ok {
		return cmd, true
	}
	if canonical, ok := r.aliases[word]; ok {
		return r.commands[canonical], true
	}
	return nil, false
}

// Normalize parses line and returns the exploration command it names.
// Blank lines, unknown words, trailing arguments, and front-end commands all
// normalize to exploration.Unknown, which the session rejects.
func (r *Registry) Normalize(line string) exploration.Command {
	res := Parse(line)
	if len(res.Extra) > 0 {
		return exploration.Unknown
	}
	cmd, ok := r.Resolve(res.Word)
	if !ok {
		return exploration.Unknown
	}
	return cmd.Action
}

// Commands returns all registered commands sorted by name.
func (r *Registry) Commands() []*Command {
	result := make([]*Command, 0, len(r.commands))
	for _, cmd := range r.commands {
		result = append(result, cmd)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}

// CommandsByCategory returns commands grouped by category, each group sorted by name.
func (r *Registry) CommandsByCategory() map[string][]*Command {
	categories := make(map[string][]*Command)
	for _, cmd := range r.Commands() {
		categories[cmd.Category] = append(categories[cmd.Category], cmd)
	}
	return categories
}
