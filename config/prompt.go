package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
)

var (
	hintStyle = lipgloss.NewStyle().
			Faint(true)

	descriptionStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("241"))
)

// Prompter asks for one line of input.
type Prompter interface {
	Prompt(label string) (string, error)
}

// LinePrompter writes a label and reads one line from a reader.
type LinePrompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewLinePrompter returns a LinePrompter reading from in and writing labels
// to out.
func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{in: bufio.NewReader(in), out: out}
}

// Prompt writes label and returns the next line without its line ending.
// Reaching end of input before any character is read returns io.EOF.
func (p *LinePrompter) Prompt(label string) (string, error) {
	if _, err := io.WriteString(p.out, label); err != nil {
		return "", fmt.Errorf("writing prompt: %w", err)
	}
	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
