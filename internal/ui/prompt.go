package ui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
)

type readResult struct {
	line string
	err  error
}

// Prompter asks questions on a line-oriented terminal
type Prompter struct {
	in            *bufio.Reader
	out           io.Writer
	theme         Theme
	confirmSuffix string

	start sync.Once
	lines chan readResult
	err   error
}

// NewPrompter creates a prompter reading answers from in and writing
// questions to out. confirmSuffix is appended to yes/no questions.
func NewPrompter(in io.Reader, out io.Writer, confirmSuffix string) *Prompter {
	return &Prompter{
		in:            bufio.NewReader(in),
		out:           out,
		theme:         NewTheme(out),
		confirmSuffix: confirmSuffix,
		lines:         make(chan readResult),
	}
}

// readLines feeds p.lines until the input fails. A partial last line is
// delivered before the error.
func (p *Prompter) readLines() {
	for {
		line, err := p.in.ReadString('\n')
		if err != nil {
			if line != "" {
				p.lines <- readResult{line: line}
			}
			p.lines <- readResult{err: err}
			close(p.lines)
			return
		}
		p.lines <- readResult{line: line}
	}
}

// Ask prints question and returns the trimmed answer. io.EOF is returned when
// the input is exhausted before any character was read, ctx.Err() when ctx is
// done before a line arrives.
func (p *Prompter) Ask(ctx context.Context, question string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	fmt.Fprint(p.out, p.theme.Prompt.Render(question)+PromptSeparator)

	if p.err != nil {
		fmt.Fprintln(p.out)
		return "", p.err
	}
	p.start.Do(func() { go p.readLines() })

	select {
	case <-ctx.Done():
		fmt.Fprintln(p.out)
		return "", ctx.Err()
	case res := <-p.lines:
		if res.err != nil {
			p.err = res.err
			if errors.Is(res.err, io.EOF) {
				fmt.Fprintln(p.out)
			}
			return "", res.err
		}
		return strings.TrimSpace(res.line), nil
	}
}

// Confirm asks a yes/no question. Any answer not listed in YesAnswers is a no.
func (p *Prompter) Confirm(ctx context.Context, question string) (bool, error) {
	if p.confirmSuffix != "" {
		question += " " + p.confirmSuffix
	}
	answer, err := p.Ask(ctx, question)
	if err != nil {
		return false, err
	}
	return IsYes(answer), nil
}

// IsYes reports whether answer is an affirmative reply
func IsYes(answer string) bool {
	answer = strings.ToLower(strings.TrimSpace(answer))
	for _, yes := range YesAnswers {
		if answer == yes {
			return true
		}
	}
	return false
}
