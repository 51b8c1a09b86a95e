// Copyright (c) 2025 TravelGo
// Licensed under the MIT License. See LICENSE file in the project root for details.

package terminal

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// ErrNoInput is returned when the input ends before a line was read.
var ErrNoInput = errors.New("no input")

// IsInteractive reports whether both stdin and stdout are terminals.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

// Prompter reads answers from In and writes questions to Out.
type Prompter struct {
	In  io.Reader
	Out io.Writer
	// Fd is the descriptor used for echo-free reads; -1 disables them.
	Fd int

	reader *bufio.Reader
}

// Stdio prompts on the process's standard streams.
func Stdio() *Prompter {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		fd = -1
	}
	return &Prompter{In: os.Stdin, Out: os.Stdout, Fd: fd}
}

// Line asks question and returns the trimmed answer.
func (p *Prompter) Line(question string) (string, error) {
	fmt.Fprint(p.Out, question)
	return p.readLine()
}

// Secret asks question without echoing the answer when reading from a terminal.
func (p *Prompter) Secret(question string) (string, error) {
	fmt.Fprint(p.Out, question)
	if p.Fd >= 0 {
		b, err := term.ReadPassword(p.Fd)
		fmt.Fprintln(p.Out)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
	return p.readLine()
}

func (p *Prompter) readLine() (string, error) {
	if p.reader == nil {
		p.reader = bufio.NewReader(p.In)
	}
	s, err := p.reader.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", err
		}
		if s == "" {
			return "", ErrNoInput
		}
	}
	return strings.TrimRight(s, "\r\n"), nil
}
