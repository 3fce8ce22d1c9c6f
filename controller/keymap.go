package controller

import (
	"fmt"

	bubblesKey "github.com/charmbracelet/bubbles/key"
)

// KeyMap binds keys to controller commands.
type KeyMap struct {
	TogglePlay,
	SkipBack,
	SkipForward,
	Fullscreen,
	Mute bubblesKey.Binding
}

// NewKeyMap returns the default bindings. Transport bindings are disabled for viewers.
func NewKeyMap(isOwner bool, skip float64) KeyMap {
	k := KeyMap{
		TogglePlay: bubblesKey.NewBinding(
			bubblesKey.WithKeys(" ", "space", "spacebar"),
			bubblesKey.WithHelp("space", "play/pause"),
		),
		SkipBack: bubblesKey.NewBinding(
			bubblesKey.WithKeys("left"),
			bubblesKey.WithHelp("←", fmt.Sprintf("-%gs", skip)),
		),
		SkipForward: bubblesKey.NewBinding(
			bubblesKey.WithKeys("right"),
			bubblesKey.WithHelp("→", fmt.Sprintf("+%gs", skip)),
		),
		Fullscreen: bubblesKey.NewBinding(
			bubblesKey.WithKeys("f", "F"),
			bubblesKey.WithHelp("f", "fullscreen"),
		),
		Mute: bubblesKey.NewBinding(
			bubblesKey.WithKeys("m", "M"),
			bubblesKey.WithHelp("m", "mute"),
		),
	}

	k.TogglePlay.SetEnabled(isOwner)
	k.SkipBack.SetEnabled(isOwner)
	k.SkipForward.SetEnabled(isOwner)

	return k
}

// Bindings lists every binding in display order.
func (k KeyMap) Bindings() []bubblesKey.Binding {
	return []bubblesKey.Binding{k.TogglePlay, k.SkipBack, k.SkipForward, k.Fullscreen, k.Mute}
}
