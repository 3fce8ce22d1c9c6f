package relay

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/watchroom-cli/watchroom/filesystem"
	"github.com/watchroom-cli/watchroom/log"
)

// Logger writes events to the application log.
type Logger struct{}

func (Logger) Emit(event Event) {
	log.WithFields(log.Fields{
		"type":        string(event.Type),
		"position":    event.PositionSeconds,
		"room":        event.RoomID,
		"fingerprint": event.Fingerprint,
	}).Info("transport event")
}

// Recorder keeps events in memory.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *Recorder) Emit(event Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

// Types returns the recorded event types in order.
func (r *Recorder) Types() []Type {
	r.mu.Lock()
	defer r.mu.Unlock()

	types := make([]Type, len(r.events))
	for i, e := range r.events {
		types[i] = e.Type
	}
	return types
}

// Journal appends events as JSON lines to a file.
type Journal struct {
	mu   sync.Mutex
	path string
}

// NewJournal returns a journal writing to path. The file is created on first emit.
func NewJournal(path string) *Journal {
	return &Journal{path: path}
}

func (j *Journal) Emit(event Event) {
	if err := j.append(event); err != nil {
		log.WithError(err).WithField("path", j.path).Warn("journal transport event")
	}
}

func (j *Journal) append(event Event) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	line, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}

	if err := filesystem.API().MkdirAll(filepath.Dir(j.path), os.ModePerm); err != nil {
		return err
	}

	file, err := filesystem.API().OpenFile(j.path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = file.Write(append(line, '\n'))
	return err
}
