package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// tokenReader asks the user for a token
type tokenReader interface {
	ReadToken(prompt string) (string, error)
}

// tokenPrompter reads tokens interactively.
// Input is hidden when reading from a terminal; otherwise one line is read per prompt.
type tokenPrompter struct {
	in     *bufio.Reader
	out    io.Writer
	fd     int
	isTerm bool
}

func newTokenPrompter(in io.Reader, out io.Writer) *tokenPrompter {
	p := &tokenPrompter{in: bufio.NewReader(in), out: out, fd: -1}

	if f, ok := in.(*os.File); ok {
		p.fd = int(f.Fd())
		p.isTerm = term.IsTerminal(p.fd)
	}

	return p
}

// ReadToken prints prompt and returns the trimmed input
func (p *tokenPrompter) ReadToken(prompt string) (string, error) {
	_, _ = fmt.Fprint(p.out, prompt)

	if p.isTerm {
		token, err := term.ReadPassword(p.fd)
		_, _ = fmt.Fprintln(p.out)

		if err != nil {
			return "", fmt.Errorf("failed to read token: %w", err)
		}

		return strings.TrimSpace(string(token)), nil
	}

	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && strings.TrimSpace(line) != "" {
			return strings.TrimSpace(line), nil
		}

		if errors.Is(err, io.EOF) {
			return "", fmt.Errorf("no token entered: %w", err)
		}

		return "", fmt.Errorf("failed to read token: %w", err)
	}

	return strings.TrimSpace(line), nil
}
