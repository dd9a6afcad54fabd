// Package ui contains the terminal user interface: line prompts, localized
// texts, styled console output and a single-line progress bar. The session
// package drives it; nothing here talks to the external tools.
package ui
