package interactive

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// Decision is the operator's choice for a single field.
type Decision int

const (
	Skip Decision = iota
	Edit
	Delete
)

// ListAction is the operator's choice inside a collection edit sub-loop.
type ListAction int

const (
	Finish ListAction = iota
	Add
	EditEntry
	RemoveEntry
)

// Console handles line-oriented interactive input. All prompts block until a
// full line is supplied; io.EOF is returned when input runs out.
type Console struct {
	in  *bufio.Reader
	out io.Writer
	tty bool
}

// NewConsole creates a console over the given reader and writer.
func NewConsole(r io.Reader, w io.Writer) *Console {
	return &Console{in: bufio.NewReader(r), out: w}
}

// NewStdConsole creates a console bound to stdin/stdout. Terminal detection
// enables the richer selection UI; piped input always gets the plain
// line protocol.
func NewStdConsole() *Console {
	return &Console{
		in:  bufio.NewReader(os.Stdin),
		out: os.Stdout,
		tty: term.IsTerminal(int(os.Stdin.Fd())),
	}
}

// Printf writes formatted output to the console.
func (c *Console) Printf(format string, args ...interface{}) {
	fmt.Fprintf(c.out, format, args...)
}

// Line shows a prompt and reads one trimmed line of input.
func (c *Console) Line(prompt string) (string, error) {
	fmt.Fprint(c.out, prompt)
	line, err := c.in.ReadString('\n')
	if err != nil {
		if err == io.EOF && line != "" {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// WithDefault prompts as "label [default]: "; empty input means the default.
func (c *Console) WithDefault(label, def string) (string, error) {
	input, err := c.Line(fmt.Sprintf("%s [%s]: ", label, def))
	if err != nil {
		return "", err
	}
	if input == "" {
		return def, nil
	}
	return input, nil
}

// NonEmpty prompts until a non-empty value is supplied.
func (c *Console) NonEmpty(label string) (string, error) {
	for {
		input, err := c.Line(fmt.Sprintf("%s: ", label))
		if err != nil {
			return "", err
		}
		if input == "" {
			c.Printf("A value is required.\n")
			continue
		}
		return input, nil
	}
}

// YesNo asks a yes/no question, showing [Y/n] or [y/N] depending on the
// default. Accepts y/yes/n/no case-insensitively and reprompts otherwise.
func (c *Console) YesNo(message string, def bool) (bool, error) {
	suffix := "[y/N]"
	if def {
		suffix = "[Y/n]"
	}
	for {
		input, err := c.Line(fmt.Sprintf("%s %s: ", message, suffix))
		if err != nil {
			return false, err
		}
		switch strings.ToLower(input) {
		case "":
			return def, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		default:
			c.Printf("Please answer y or n.\n")
		}
	}
}

// Int prompts for a non-negative integer with a default, reprompting on
// anything that does not parse.
func (c *Console) Int(label string, def int) (int, error) {
	for {
		input, err := c.Line(fmt.Sprintf("%s [%d]: ", label, def))
		if err != nil {
			return 0, err
		}
		if input == "" {
			return def, nil
		}
		value, convErr := strconv.Atoi(input)
		if convErr != nil || value < 0 {
			c.Printf("Enter a non-negative number.\n")
			continue
		}
		return value, nil
	}
}

// Choose prompts for a number within [min, max] with a default selection.
func (c *Console) Choose(label string, def, min, max int) (int, error) {
	for {
		input, err := c.Line(fmt.Sprintf("%s [%d]: ", label, def))
		if err != nil {
			return 0, err
		}
		value := def
		if input != "" {
			var convErr error
			value, convErr = strconv.Atoi(input)
			if convErr != nil {
				c.Printf("Enter a number.\n")
				continue
			}
		}
		if value < min || value > max {
			c.Printf("Enter a number between %d and %d.\n", min, max)
			continue
		}
		return value, nil
	}
}

// Decision asks the skip/edit/delete question for a field. Empty input
// means skip.
func (c *Console) Decision(label string) (Decision, error) {
	for {
		input, err := c.Line(fmt.Sprintf("Change %s? [s]kip [e]dit [d]elete (default: s): ", label))
		if err != nil {
			return Skip, err
		}
		switch strings.ToLower(input) {
		case "", "s":
			return Skip, nil
		case "e":
			return Edit, nil
		case "d":
			return Delete, nil
		default:
			c.Printf("Invalid choice.\n")
		}
	}
}

// ListAction asks the add/edit/remove/finish question inside a collection
// editor. Empty input means finish.
func (c *Console) ListAction() (ListAction, error) {
	for {
		input, err := c.Line("Choose an action [a]dd [e]dit [r]emove [f]inish (default: f): ")
		if err != nil {
			return Finish, err
		}
		switch strings.ToLower(input) {
		case "", "f":
			return Finish, nil
		case "a":
			return Add, nil
		case "e":
			return EditEntry, nil
		case "r":
			return RemoveEntry, nil
		default:
			c.Printf("Invalid choice.\n")
		}
	}
}
