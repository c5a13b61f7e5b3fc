package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	internalstrings "github.com/amonks/todos/internal/strings"
)

// Prompter asks the user for confirmation.
type Prompter interface {
	// Confirm asks a yes/no question and returns true if the answer is yes.
	Confirm(message string) (bool, error)
}

// stdioPrompter reads answers from in and writes questions to out.
type stdioPrompter struct {
	in  io.Reader
	out io.Writer
}

func (p stdioPrompter) Confirm(message string) (bool, error) {
	fmt.Fprintf(p.out, "%s [y/N]: ", message)
	response, err := bufio.NewReader(p.in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	switch internalstrings.NormalizeLowerTrimSpace(response) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// confirmAction asks before a destructive action. The prompt is skipped,
// and the action allowed, when skip is set or stdin is not a terminal.
func confirmAction(prompter Prompter, interactive, skip bool, message string) (bool, error) {
	if skip || !interactive {
		return true, nil
	}
	confirmed, err := prompter.Confirm(message)
	if err != nil {
		return false, fmt.Errorf("prompt: %w", err)
	}
	return confirmed, nil
}
