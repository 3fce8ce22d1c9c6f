package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/lo"
	"github.com/watchroom-cli/watchroom/history"
	"github.com/watchroom-cli/watchroom/log"
	"github.com/watchroom-cli/watchroom/media"
	"github.com/watchroom-cli/watchroom/util"
)

// recentSuggestions caps how many remembered paths the prompt completes.
const recentSuggestions = 10

type sourceLoadedMsg struct {
	source *media.Source
}

type sourceFailedMsg struct {
	err error
}

// loadSource validates and fingerprints the file at path off the dispatch thread.
func (b *statefulBubble) loadSource(path string) tea.Cmd {
	path = strings.TrimSpace(path)
	b.loadingPath = path
	b.newState(loadingState)

	return tea.Batch(b.spinnerC.Tick, func() tea.Msg {
		source, err := b.options.Loader.Load(path)
		if err != nil {
			return sourceFailedMsg{err: err}
		}
		if source == nil {
			return sourceFailedMsg{err: fmt.Errorf("no file selected")}
		}
		return sourceLoadedMsg{source: source}
	})
}

// bindSource hands a loaded source to the controller. The previous handle is released
// only after the element renders the new one.
func (b *statefulBubble) bindSource(source *media.Source) tea.Cmd {
	b.rememberPosition()

	if err := b.controller.Bind(source); err != nil {
		log.WithError(err).WithField("file", source.File.Name).Error("bind source")
		if b.options.Loader != nil {
			b.options.Loader.Rollback(source)
		}
		b.raiseError(err)
		return nil
	}

	if b.options.Loader != nil {
		b.options.Loader.Commit(source)
	}

	if !b.volumeApplied {
		b.volumeApplied = true
		b.controller.SetVolume(b.options.Volume)
	}

	if b.options.History {
		if err := history.Save(source); err != nil {
			log.WithError(err).Warn("save history")
		}
		b.suggestRecent()
	}

	b.inputC.SetValue(source.File.Path)
	b.statesHistory.Clear()
	b.statesHistory.Push(pickState)
	b.setState(playState)

	return tea.SetWindowTitle(util.FileStem(source.File.Name))
}

// rememberPosition stores where playback of the bound source stopped.
func (b *statefulBubble) rememberPosition() {
	snapshot := b.controller.Snapshot()
	if !b.options.History || snapshot.Source == nil {
		return
	}

	err := history.SavePosition(snapshot.Source, snapshot.State.CurrentTime, snapshot.State.Duration)
	if err != nil {
		log.WithError(err).Warn("save position")
	}
}

// suggestRecent offers recently opened paths as completions in the path prompt.
func (b *statefulBubble) suggestRecent() {
	recent, err := history.Recent(recentSuggestions)
	if err != nil {
		log.WithError(err).Warn("read history")
		return
	}

	b.inputC.SetSuggestions(lo.Map(recent, func(entry *history.Entry, _ int) string {
		return entry.Path
	}))
}
