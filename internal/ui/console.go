package ui

import (
	"fmt"
	"io"
)

// Console writes styled, line-oriented messages
type Console struct {
	out   io.Writer
	theme Theme
}

// NewConsole creates a console writing to out
func NewConsole(out io.Writer) *Console {
	return &Console{out: out, theme: NewTheme(out)}
}

// Writer returns the underlying writer
func (c *Console) Writer() io.Writer {
	return c.out
}

// Title prints a header line
func (c *Console) Title(text string) {
	c.line(c.theme.Title.Render(text))
}

// Info prints a plain message
func (c *Console) Info(text string) {
	c.line(c.theme.Info.Render(text))
}

// Success prints a message marked as successful
func (c *Console) Success(text string) {
	c.line(c.theme.Success.Render(IconSuccess + " " + text))
}

// Warn prints a warning
func (c *Console) Warn(text string) {
	c.line(c.theme.Warning.Render(IconWarning + " " + text))
}

// Error prints an error message
func (c *Console) Error(text string) {
	c.line(c.theme.Error.Render(IconError + " " + text))
}

// Hint prints secondary information
func (c *Console) Hint(text string) {
	c.line(c.theme.Muted.Render(text))
}

// Menu prints numbered entries under a title, numbering from 1
func (c *Console) Menu(title string, items []string) {
	c.Blank()
	c.line(c.theme.Prompt.Render(title))
	for i, item := range items {
		c.line(fmt.Sprintf(MenuItemFormat, i+1, item))
	}
}

// Blank prints an empty line
func (c *Console) Blank() {
	fmt.Fprintln(c.out)
}

func (c *Console) line(text string) {
	fmt.Fprintln(c.out, text)
}
