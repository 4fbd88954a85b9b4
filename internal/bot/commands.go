package bot

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// Command represents a bot command that can be executed
type Command interface {
	// Execute runs the command with the text after the command name and
	// returns the reply
	Execute(ctx context.Context, args string) (string, error)
}

// CommandFunc is an adapter to allow ordinary functions to be used as commands
type CommandFunc func(ctx context.Context, args string) (string, error)

// Execute implements the Command interface
func (f CommandFunc) Execute(ctx context.Context, args string) (string, error) {
	return f(ctx, args)
}

type entry struct {
	cmd         Command
	description string
}

// Registry holds all registered commands
type Registry struct {
	commands map[string]entry
}

// NewRegistry creates a new command registry
func NewRegistry() *Registry {
	return &Registry{
		commands: make(map[string]entry),
	}
}

// Register adds a command to the registry
func (r *Registry) Register(name, description string, cmd Command) {
	r.commands[name] = entry{cmd: cmd, description: description}
}

// Get retrieves a command by name
func (r *Registry) Get(name string) (Command, bool) {
	e, ok := r.commands[name]
	return e.cmd, ok
}

// Has checks if a command is registered
func (r *Registry) Has(name string) bool {
	_, ok := r.commands[name]
	return ok
}

// List returns all registered command names, sorted
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Help lists every command with its description
func (r *Registry) Help() string {
	var b strings.Builder
	b.WriteString("Quotie commands:")
	for _, name := range r.List() {
		fmt.Fprintf(&b, "\n/%s %s", name, r.commands[name].description)
	}
	return b.String()
}
