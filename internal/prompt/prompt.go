// Package prompt abstracts the "ask the user" step behind an injectable
// interface so categorization logic stays testable without a terminal.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Prompter requests a decision from an external input provider. The returned
// string is trimmed; an empty string means "keep the current value".
type Prompter interface {
	RequestEdit(promptText, current string) (string, error)
}

// TerminalPrompter reads decisions line by line from an input stream,
// typically stdin, echoing prompts to an output stream.
type TerminalPrompter struct {
	reader *bufio.Reader
	writer io.Writer
}

// NewTerminalPrompter creates a prompter over the given streams.
func NewTerminalPrompter(r io.Reader, w io.Writer) *TerminalPrompter {
	return &TerminalPrompter{
		reader: bufio.NewReader(r),
		writer: w,
	}
}

// RequestEdit prints "promptText [current] " and returns the trimmed reply.
// End of input yields an empty reply, the keep-original default.
func (p *TerminalPrompter) RequestEdit(promptText, current string) (string, error) {
	if _, err := fmt.Fprintf(p.writer, "%s [%s] ", promptText, current); err != nil {
		return "", fmt.Errorf("error writing prompt: %w", err)
	}

	line, err := p.reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("error reading input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// ScriptedPrompter replays a fixed list of answers. Once the script is
// exhausted it keeps answering with an empty string, the keep-original
// default, so tests stay deterministic.
type ScriptedPrompter struct {
	Answers []string
	Prompts []string
	next    int
}

// RequestEdit records the prompt and returns the next scripted answer.
func (p *ScriptedPrompter) RequestEdit(promptText, current string) (string, error) {
	p.Prompts = append(p.Prompts, fmt.Sprintf("%s [%s]", promptText, current))
	if p.next >= len(p.Answers) {
		return "", nil
	}
	answer := p.Answers[p.next]
	p.next++
	return strings.TrimSpace(answer), nil
}
