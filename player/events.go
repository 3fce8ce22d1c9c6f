package player

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/watchroom-cli/watchroom/log"
)

// EventCallback is the function signature for mpv event notifications.
type EventCallback func(property string, data interface{})

// observedProperties are the mpv properties mirrored into element events.
var observedProperties = []string{
	"duration",
	"time-pos",
	"pause",
	"volume",
	"mute",
	"eof-reached",
	"fullscreen",
}

// EventListener provides real-time mpv event monitoring via observe_property.
type EventListener struct {
	socketPath string
	conn       net.Conn
	callback   EventCallback
	stopCh     chan struct{}
	mu         sync.Mutex
	listening  bool
}

// NewEventListener creates a new event listener for the given socket.
func NewEventListener(socketPath string, callback EventCallback) *EventListener {
	return &EventListener{
		socketPath: socketPath,
		callback:   callback,
		stopCh:     make(chan struct{}),
	}
}

// Start opens a persistent connection, registers the property observers on it and starts the read loop.
// Observers are scoped to the client connection, so they must be registered on the connection that is read.
func (el *EventListener) Start() error {
	el.mu.Lock()
	defer el.mu.Unlock()

	if el.listening {
		return nil
	}

	conn, err := net.Dial("unix", el.socketPath)
	if err != nil {
		return fmt.Errorf("event listener connect: %w", err)
	}

	for i, name := range observedProperties {
		payload, err := json.Marshal(ipcCommand{Command: []interface{}{"observe_property", i + 1, name}})
		if err != nil {
			conn.Close()
			return fmt.Errorf("marshal observe %s: %w", name, err)
		}
		if _, err := conn.Write(append(payload, '\n')); err != nil {
			conn.Close()
			return fmt.Errorf("observe %s: %w", name, err)
		}
	}

	el.conn = conn
	el.listening = true

	go el.readLoop()

	log.Infof("mpv event listener started on %s (observing: %s)", el.socketPath, strings.Join(observedProperties, ", "))
	return nil
}

// Stop terminates the event listener.
func (el *EventListener) Stop() {
	el.mu.Lock()
	defer el.mu.Unlock()

	if !el.listening {
		return
	}

	close(el.stopCh)
	if el.conn != nil {
		el.conn.Close()
	}
	el.listening = false
}

// readLoop continuously reads newline-delimited JSON events from the persistent mpv connection.
func (el *EventListener) readLoop() {
	defer func() {
		el.mu.Lock()
		el.listening = false
		el.mu.Unlock()
	}()

	buf := make([]byte, readBufSize)
	var remainder []byte

	for {
		select {
		case <-el.stopCh:
			return
		default:
		}

		if err := el.conn.SetReadDeadline(time.Now().Add(5 * time.Second)); err != nil {
			return
		}

		n, err := el.conn.Read(buf)
		if err != nil {
			if errors.Is(err, os.ErrDeadlineExceeded) {
				continue
			}
			select {
			case <-el.stopCh:
			default:
				log.Warnf("event listener read error: %v", err)
			}
			return
		}

		data := append(remainder, buf[:n]...)
		remainder = nil

		lines := strings.Split(string(data), "\n")
		for i, line := range lines {
			// Last incomplete line goes to remainder for next read
			if i == len(lines)-1 {
				if line != "" {
					remainder = []byte(line)
				}
				continue
			}

			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			el.processEvent(line)
		}
	}
}

// processEvent parses and dispatches a single mpv event JSON line.
// Command replies carry no "event" field and are skipped.
func (el *EventListener) processEvent(line string) {
	var event map[string]interface{}
	if err := json.Unmarshal([]byte(line), &event); err != nil {
		return
	}

	eventType, ok := event["event"].(string)
	if !ok || el.callback == nil {
		return
	}

	switch eventType {
	case "property-change":
		name, _ := event["name"].(string)
		if name != "" {
			el.callback(name, event["data"])
		}
	default:
		el.callback(eventType, event)
	}
}
