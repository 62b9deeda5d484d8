// Package debugger provides the interactive command interpreter SeekBug
// drives: multiword command registration, line dispatch, and the prompt
// loop.
package debugger

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"

	"github.com/google/shlex"
)

const (
	// DefaultPrompt is the prompt shown until SetPrompt is called.
	DefaultPrompt = "(seek-bug) "

	// MaxLineSize bounds a single command line read by Run. Pasted
	// backtraces easily exceed bufio's default.
	MaxLineSize = 16 << 20
)

var (
	ErrInvalidCommandName = errors.New("invalid command name")
	ErrCommandExists      = errors.New("command already exists")
)

// names handled by the interpreter itself.
var builtins = map[string]bool{
	"help": true,
	"quit": true,
	"exit": true,
	"q":    true,
}

// CommandPlugin is implemented by commands added to the interpreter. args
// holds the words typed after the command name.
type CommandPlugin interface {
	DoExecute(ctx context.Context, args []string, result *ReturnObject) bool
}

// CommandPluginFunc adapts a function to a CommandPlugin.
type CommandPluginFunc func(ctx context.Context, args []string, result *ReturnObject) bool

func (f CommandPluginFunc) DoExecute(ctx context.Context, args []string, result *ReturnObject) bool {
	return f(ctx, args, result)
}

// Command is a node in the command tree. A Command either runs a plugin or
// groups subcommands.
type Command struct {
	name string
	help string
	impl CommandPlugin

	mu   sync.RWMutex
	subs map[string]*Command
}

func (c *Command) Name() string { return c.name }

func (c *Command) Help() string { return c.help }

// IsMultiword reports whether c groups subcommands instead of running a plugin.
func (c *Command) IsMultiword() bool { return c.impl == nil }

// AddCommand adds a subcommand running impl to the multiword command c.
func (c *Command) AddCommand(name string, impl CommandPlugin, help string) (*Command, error) {
	if impl == nil {
		return nil, fmt.Errorf("command %q: a plugin is required", name)
	}
	return c.add(&Command{name: name, help: help, impl: impl})
}

// AddMultiwordCommand adds a nested command group to c.
func (c *Command) AddMultiwordCommand(name, help string) (*Command, error) {
	return c.add(&Command{name: name, help: help})
}

func (c *Command) add(sub *Command) (*Command, error) {
	if !c.IsMultiword() {
		return nil, fmt.Errorf("%q is not a multiword command: %w", c.name, ErrInvalidCommandName)
	}
	if err := validName(sub.name); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.subs[sub.name]; ok {
		return nil, fmt.Errorf("%s %s: %w", c.name, sub.name, ErrCommandExists)
	}
	if c.subs == nil {
		c.subs = map[string]*Command{}
	}
	c.subs[sub.name] = sub
	return sub, nil
}

func (c *Command) lookup(name string) (*Command, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	sub, ok := c.subs[name]
	return sub, ok
}

func (c *Command) subcommands() []*Command {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*Command, 0, len(c.subs))
	for _, sub := range c.subs {
		out = append(out, sub)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out
}

func validName(name string) error {
	if name == "" || strings.ContainsAny(name, " \t\r\n") {
		return fmt.Errorf("%q: %w", name, ErrInvalidCommandName)
	}
	return nil
}

// Interpreter dispatches command lines to registered commands. It is safe
// for concurrent registration and dispatch.
type Interpreter struct {
	mu     sync.RWMutex
	prompt string
	root   *Command
}

// NewInterpreter returns an Interpreter with no commands registered.
func NewInterpreter() *Interpreter {
	return &Interpreter{
		prompt: DefaultPrompt,
		root:   &Command{name: ""},
	}
}

func (i *Interpreter) SetPrompt(p string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.prompt = p
}

func (i *Interpreter) Prompt() string {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.prompt
}

// AddMultiwordCommand registers a top-level command group.
func (i *Interpreter) AddMultiwordCommand(name, help string) (*Command, error) {
	if builtins[name] {
		return nil, fmt.Errorf("%q is reserved: %w", name, ErrInvalidCommandName)
	}
	return i.root.AddMultiwordCommand(name, help)
}

// AddCommand registers a top-level command.
func (i *Interpreter) AddCommand(name string, impl CommandPlugin, help string) (*Command, error) {
	if builtins[name] {
		return nil, fmt.Errorf("%q is reserved: %w", name, ErrInvalidCommandName)
	}
	return i.root.AddCommand(name, impl, help)
}

// HandleCommand runs a single command line and returns its result.
func (i *Interpreter) HandleCommand(ctx context.Context, line string) *ReturnObject {
	result := &ReturnObject{}

	words := splitLine(line)
	if len(words) == 0 {
		result.SetStatus(ReturnStatusSuccessFinishNoResult)
		return result
	}

	if words[0] == "help" {
		i.help(words[1:], result)
		return result
	}

	cmd, ok := i.root.lookup(words[0])
	if !ok {
		result.AppendError(fmt.Sprintf("'%s' is not a valid command.", words[0]))
		return result
	}
	args := words[1:]
	path := []string{cmd.name}

	for cmd.IsMultiword() {
		if len(args) == 0 {
			result.AppendError(fmt.Sprintf("'%s' requires a subcommand. Valid subcommands are: %s.",
				strings.Join(path, " "), subcommandNames(cmd)))
			return result
		}
		sub, ok := cmd.lookup(args[0])
		if !ok {
			result.AppendError(fmt.Sprintf("'%s' does not have a subcommand named '%s'. Valid subcommands are: %s.",
				strings.Join(path, " "), args[0], subcommandNames(cmd)))
			return result
		}
		cmd = sub
		path = append(path, sub.name)
		args = args[1:]
	}

	ok = cmd.impl.DoExecute(ctx, args, result)
	if result.Status() == ReturnStatusInvalid {
		if ok {
			result.SetStatus(ReturnStatusSuccessFinishResult)
		} else {
			result.SetStatus(ReturnStatusFailed)
		}
	}
	return result
}

func (i *Interpreter) help(words []string, result *ReturnObject) {
	cmd := i.root
	for _, w := range words {
		sub, ok := cmd.lookup(w)
		if !ok {
			result.AppendError(fmt.Sprintf("'%s' is not a known command.", strings.Join(words, " ")))
			return
		}
		cmd = sub
	}

	if cmd != i.root {
		result.Printf("%s\n", cmd.help)
	}
	if cmd.IsMultiword() {
		if cmd == i.root {
			result.Printf("Debugger commands:\n")
		} else {
			result.Printf("\nThe following subcommands are supported:\n")
		}
		for _, sub := range cmd.subcommands() {
			result.Printf("  %-12s -- %s\n", sub.name, sub.help)
		}
		if cmd == i.root {
			result.Printf("  %-12s -- %s\n", "help", "Show a list of all debugger commands.")
			result.Printf("  %-12s -- %s\n", "quit", "Quit the SeekBug debugger.")
		}
	}
	result.SetStatus(ReturnStatusSuccessFinishResult)
}

// splitLine splits line with shell quoting rules. Lines with unbalanced
// quotes, such as free-form questions containing an apostrophe, are split on
// whitespace instead.
func splitLine(line string) []string {
	words, err := shlex.Split(line)
	if err != nil {
		return strings.Fields(line)
	}
	return words
}

func subcommandNames(cmd *Command) string {
	subs := cmd.subcommands()
	names := make([]string, 0, len(subs))
	for _, sub := range subs {
		names = append(names, sub.name)
	}
	return strings.Join(names, ", ")
}

// Run prompts for command lines on out, reads them from in, and prints
// each result. It returns at EOF, on quit, exit or q, or when ctx is done.
func (i *Interpreter) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxLineSize)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprint(out, i.Prompt())
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "quit", "exit", "q":
			return nil
		}

		result := i.HandleCommand(ctx, line)
		fmt.Fprint(out, result.Output())
		fmt.Fprint(out, result.ErrorOutput())
	}
}
