// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Init starts draining controller callbacks and, when a path was given, loads it.
func (b *statefulBubble) Init() tea.Cmd {
	if b.options.Path != "" {
		return tea.Batch(b.dispatcher.wait(), b.loadSource(b.options.Path))
	}

	return tea.Batch(textinput.Blink, b.dispatcher.wait())
}
