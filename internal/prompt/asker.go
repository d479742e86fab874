package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/stencil-labs/stencil/internal/template"
)

// ErrCanceled is returned when the user cancels the operation (end of
// input). It signals a clean termination, not a failure.
var ErrCanceled = errors.New("prompt canceled")

// Asker renders prompts on a reader/writer pair.
type Asker struct {
	reader *bufio.Reader
	out    io.Writer
}

// NewAsker builds an asker over the given streams.
func NewAsker(r io.Reader, w io.Writer) *Asker {
	return &Asker{reader: bufio.NewReader(r), out: w}
}

// Ask renders one prompt specification and returns the typed answer:
// string for text and select, []string for multiselect, bool for confirm.
func (a *Asker) Ask(spec template.PromptSpec) (interface{}, error) {
	switch spec.Type {
	case template.PromptText:
		def, _ := spec.Default.(string)
		return a.AskText(spec.Message, def, spec.Validate)
	case template.PromptSelect:
		def, _ := spec.Default.(string)
		return a.AskSelect(spec.Message, spec.Choices, def)
	case template.PromptMultiSelect:
		return a.AskMultiSelect(spec.Message, spec.Choices)
	case template.PromptConfirm:
		def, _ := spec.Default.(bool)
		return a.AskConfirm(spec.Message, def)
	default:
		return nil, fmt.Errorf("unknown prompt type %q", spec.Type)
	}
}

// AskText asks a free-text question. Empty input takes the default; a
// validator rejection reports the reason and returns an error.
func (a *Asker) AskText(message, def string, validate func(string) error) (string, error) {
	if def != "" {
		fmt.Fprintf(a.out, "%s [%s]: ", message, def)
	} else {
		fmt.Fprintf(a.out, "%s: ", message)
	}

	line, err := a.readLine()
	if err != nil {
		return "", err
	}
	if line == "" {
		line = def
	}

	if validate != nil {
		if err := validate(line); err != nil {
			return "", fmt.Errorf("invalid answer %q: %w", line, err)
		}
	}
	return line, nil
}

// AskConfirm asks a yes/no question. Empty input takes the default.
func (a *Asker) AskConfirm(message string, def bool) (bool, error) {
	hint := "y/N"
	if def {
		hint = "Y/n"
	}
	fmt.Fprintf(a.out, "%s [%s]: ", message, hint)

	line, err := a.readLine()
	if err != nil {
		return false, err
	}

	switch strings.ToLower(line) {
	case "":
		return def, nil
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	default:
		return false, fmt.Errorf("invalid answer %q: enter y or n", line)
	}
}

// AskSelect presents a numbered list and returns the chosen value. Empty
// input takes the default value when one is provided.
func (a *Asker) AskSelect(message string, choices []template.Choice, def string) (string, error) {
	fmt.Fprintf(a.out, "\n%s\n", message)
	for i, choice := range choices {
		marker := " "
		if choice.Value == def {
			marker = "*"
		}
		fmt.Fprintf(a.out, " %s%d) %s\n", marker, i+1, choice.Label)
	}
	fmt.Fprintf(a.out, "Enter number [1-%d]: ", len(choices))

	line, err := a.readLine()
	if err != nil {
		return "", err
	}
	if line == "" && def != "" {
		return def, nil
	}

	num, err := strconv.Atoi(line)
	if err != nil || num < 1 || num > len(choices) {
		return "", fmt.Errorf("invalid selection %q: choose 1-%d", line, len(choices))
	}
	return choices[num-1].Value, nil
}

// AskMultiSelect presents a numbered list and returns the values for a
// comma-separated selection. Empty input selects nothing.
func (a *Asker) AskMultiSelect(message string, choices []template.Choice) ([]string, error) {
	fmt.Fprintf(a.out, "\n%s\n", message)
	for i, choice := range choices {
		fmt.Fprintf(a.out, "  %d) %s\n", i+1, choice.Label)
	}
	fmt.Fprintf(a.out, "Enter numbers separated by commas (empty for none): ")

	line, err := a.readLine()
	if err != nil {
		return nil, err
	}
	if line == "" {
		return []string{}, nil
	}

	var values []string
	seen := make(map[int]bool)
	for _, part := range strings.Split(line, ",") {
		num, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || num < 1 || num > len(choices) {
			return nil, fmt.Errorf("invalid selection %q: choose 1-%d", strings.TrimSpace(part), len(choices))
		}
		if !seen[num] {
			seen[num] = true
			values = append(values, choices[num-1].Value)
		}
	}
	return values, nil
}

// readLine reads one trimmed input line. End of input means the user
// canceled the operation.
func (a *Asker) readLine() (string, error) {
	line, err := a.reader.ReadString('\n')
	if err == io.EOF {
		if strings.TrimSpace(line) == "" {
			return "", ErrCanceled
		}
		return strings.TrimSpace(line), nil
	}
	if err != nil {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return strings.TrimSpace(line), nil
}
