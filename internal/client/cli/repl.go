package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/dmitrijs2005/gophershop/internal/client/client"
)

// printlnFn is a test seam for REPL output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// command is one REPL verb. Commands with auth set are only offered and
// accepted while a user is signed in.
type command struct {
	name    string
	usage   string
	summary string
	auth    bool
	run     func(ctx context.Context, args []string) error
}

// commandSet is the surface the REPL needs. The real App satisfies it;
// tests can provide a lightweight stub.
type commandSet interface {
	isLoggedIn() bool
	commands() []command
}

// usageError reports a malformed command line.
type usageError string

func (u usageError) Error() string { return "usage: " + string(u) }

// runREPL reads commands line by line and dispatches them until EOF or
// "exit"/"quit". The first token selects the command, the rest are passed
// to it as arguments.
//
// Errors the API client already reported (through the Notifier or the
// sign-in redirect) are not printed a second time.
func runREPL(ctx context.Context, cs commandSet, statusFn func() string, reader *bufio.Reader) {
	cmds := cs.commands()
	index := make(map[string]command, len(cmds))
	for _, c := range cmds {
		index[c.name] = c
	}

	for {
		printlnFn(fmt.Sprintf("gophershop %s> ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		name, args := parts[0], parts[1:]

		switch name {
		case "help":
			printlnFn(helpText(cmds, cs.isLoggedIn()))
			continue
		case "exit", "quit":
			printlnFn("Bye!")
			return
		}

		c, found := index[name]
		if !found {
			printlnFn("Unknown command:", name)
			continue
		}
		if c.auth && !cs.isLoggedIn() {
			printlnFn("Please login first")
			continue
		}
		if err := c.run(ctx, args); err != nil {
			if msg := errorMessage(err); msg != "" {
				printlnFn("Error:", msg)
			}
		}
	}
}

func helpText(cmds []command, loggedIn bool) string {
	var b strings.Builder
	b.WriteString("Available commands:\n")
	for _, c := range cmds {
		if c.auth && !loggedIn {
			continue
		}
		fmt.Fprintf(&b, "  %-34s %s\n", c.usage, c.summary)
	}
	b.WriteString("  help                               show this list\n")
	b.WriteString("  exit | quit                        leave the program")
	return b.String()
}

// errorMessage returns the text to show for a failed command, or "" when
// the API client has already told the user.
func errorMessage(err error) string {
	var apiErr *client.APIError
	switch {
	case errors.As(err, &apiErr):
		if len(apiErr.Fields) > 0 {
			return fieldErrors(apiErr.Fields)
		}
		return ""
	case errors.Is(err, client.ErrUnavailable), errors.Is(err, client.ErrUnauthorized):
		return ""
	}
	return err.Error()
}

func fieldErrors(fields map[string][]string) string {
	var parts []string
	for _, name := range slices.Sorted(maps.Keys(fields)) {
		parts = append(parts, fmt.Sprintf("%s: %s", name, strings.Join(fields[name], ", ")))
	}
	return strings.Join(parts, "; ")
}
