package command

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownCommand is returned by ParseLine for an unrecognised verb.
var ErrUnknownCommand = errors.New("unknown command")

// ErrUsage is returned when a known verb is missing arguments.
var ErrUsage = errors.New("usage")

// ParseLine parses a command line typed after ":". An empty line yields a nil
// command and no error.
func ParseLine(line string) (Command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, nil
	}
	verb, args := strings.ToLower(fields[0]), fields[1:]
	switch verb {
	case "set", "s":
		return parseSet(args)
	case "search", "filter", "find":
		return Filter{Query: strings.Join(args, " ")}, nil
	case "refresh", "reload", "r":
		return Refresh{}, nil
	case "copy", "c":
		return Copy{}, nil
	case "top":
		return Scroll{Area: AreaList, Direction: Top}, nil
	case "bottom":
		return Scroll{Area: AreaList, Direction: Bottom}, nil
	case "section":
		return ShowSection{Name: strings.Join(args, " ")}, nil
	case "q", "quit", "exit":
		return Exit{}, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, fields[0])
}

// parseSet accepts "name value..." and "name=value".
func parseSet(args []string) (Command, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("%w: set <name> <value>", ErrUsage)
	}
	if len(args) == 1 {
		name, value, ok := strings.Cut(args[0], "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("%w: set <name> <value>", ErrUsage)
		}
		return Set{Name: name, Value: value}, nil
	}
	return Set{Name: args[0], Value: strings.Join(args[1:], " ")}, nil
}
