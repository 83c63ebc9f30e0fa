package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// errQuit ends the current menu when input runs out.
var errQuit = errors.New("input closed")

type prompter struct {
	scanner *bufio.Scanner
	out     io.Writer
}

func (p *prompter) line(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	if !p.scanner.Scan() {
		fmt.Fprintln(p.out)
		if err := p.scanner.Err(); err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		return "", errQuit
	}
	return strings.TrimRight(p.scanner.Text(), "\r"), nil
}

// number reads an integer. ok is false, with a message already printed, when the text is not one.
func (p *prompter) number(prompt string) (n int, ok bool, err error) {
	text, err := p.line(prompt)
	if err != nil {
		return 0, false, err
	}
	n, ok = p.parseNumber(text)
	return n, ok, nil
}

// parseNumber converts text already read, printing a message when it is not an integer.
func (p *prompter) parseNumber(text string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		fmt.Fprintf(p.out, "%q is not a whole number.\n", strings.TrimSpace(text))
		return 0, false
	}
	return n, true
}

func (p *prompter) confirm(prompt string) (bool, error) {
	text, err := p.line(prompt + " (yes/no): ")
	if err != nil {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "yes", "y":
		return true, nil
	default:
		return false, nil
	}
}

// ParseAssignees splits a comma-separated list, trimming names and dropping empty entries.
func ParseAssignees(text string) []string {
	out := []string{}
	for _, part := range strings.Split(text, ",") {
		if name := strings.TrimSpace(part); name != "" {
			out = append(out, name)
		}
	}
	return out
}
