package player

import (
	"crypto/rand"
	"fmt"
	"net"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/watchroom-cli/watchroom/constant"
	"github.com/watchroom-cli/watchroom/log"
)

const (
	socketWaitRetries = 10
	socketWaitDelay   = 300 * time.Millisecond
)

// MPV implements Element using mpv's JSON-IPC protocol.
type MPV struct {
	binary     string
	extraArgs  []string
	socketPath string
	cmd        *exec.Cmd
	exited     chan struct{} // closed when mpv process exits
	listener   *EventListener
	mu         sync.Mutex // Protects socket writes

	stateMu sync.RWMutex
	state   mpvState

	events hub
}

// NewMPV creates a new MPV element instance (does not start the process).
func NewMPV(extraArgs ...string) *MPV {
	exited := make(chan struct{})
	close(exited)

	return &MPV{
		binary:    "mpv",
		extraArgs: extraArgs,
		exited:    exited,
		state:     newMPVState(),
	}
}

// Load starts mpv with url or, if it is already running, replaces the file in the existing instance.
func (m *MPV) Load(rawURL string, title string) error {
	safeURL, err := sanitizeMediaTarget(rawURL)
	if err != nil {
		return fmt.Errorf("invalid media target: %w", err)
	}
	safeTitle := sanitizeTitle(title)

	m.stateMu.Lock()
	m.state.reset()
	m.stateMu.Unlock()

	if m.running() {
		if err := m.Set("force-media-title", safeTitle); err != nil {
			log.WithError(err).Debug("set media title")
		}
		if _, err := m.sendCommand([]interface{}{"loadfile", safeURL, "replace"}); err != nil {
			return fmt.Errorf("loadfile: %w", err)
		}
		return m.Set("pause", true)
	}

	return m.start(safeURL, safeTitle)
}

// Unload stops the current file but keeps mpv idle.
func (m *MPV) Unload() error {
	if !m.running() {
		return nil
	}

	m.stateMu.Lock()
	m.state.reset()
	m.stateMu.Unlock()

	_, err := m.sendCommand([]interface{}{"stop"})
	return err
}

func (m *MPV) start(target, title string) error {
	if m.socketPath == "" {
		randomBytes := make([]byte, 4)
		if _, err := rand.Read(randomBytes); err != nil {
			return fmt.Errorf("generate socket name: %w", err)
		}
		m.socketPath = filepath.Join(os.TempDir(), fmt.Sprintf("%s-%x.sock", constant.Watchroom, randomBytes))
	}

	// Respect the user's mpv.conf: only IPC, title and idle behavior are forced.
	args := []string{
		"--no-terminal",
		"--really-quiet",
		fmt.Sprintf("--input-ipc-server=%s", m.socketPath),
		fmt.Sprintf("--force-media-title=%s", title),
		fmt.Sprintf("--title=%s", title),
		"--force-window=yes",
		"--idle=yes",
		"--keep-open=yes",
		"--pause",
	}
	args = append(args, m.extraArgs...)
	args = append(args, target)

	m.cmd = exec.Command(m.binary, args...)

	// Detach from parent process group to prevent cascading shell panics.
	m.cmd.SysProcAttr = sysProcAttr()
	m.cmd.Stdout = nil
	m.cmd.Stderr = nil
	m.cmd.Stdin = nil

	if err := m.cmd.Start(); err != nil {
		return fmt.Errorf("start mpv: %w", err)
	}

	// Reap the process to prevent zombies.
	exited := make(chan struct{})
	m.exited = exited
	cmd := m.cmd
	go func() {
		_ = cmd.Wait()
		close(exited)
	}()

	if err := m.waitForSocket(); err != nil {
		select {
		case <-m.exited:
		default:
			log.Warnf("killing mpv: socket never became ready")
			_ = killProcess(m.cmd)
		}
		return fmt.Errorf("mpv socket not ready: %w", err)
	}

	m.listener = NewEventListener(m.socketPath, m.onProperty)
	if err := m.listener.Start(); err != nil {
		return fmt.Errorf("listen for mpv events: %w", err)
	}

	return nil
}

// waitForSocket polls until the mpv IPC socket is accepting connections.
func (m *MPV) waitForSocket() error {
	for i := 0; i < socketWaitRetries; i++ {
		time.Sleep(socketWaitDelay)

		select {
		case <-m.exited:
			return fmt.Errorf("mpv exited before socket was ready")
		default:
		}

		conn, err := net.Dial("unix", m.socketPath)
		if err == nil {
			conn.Close()
			return nil
		}
	}
	return fmt.Errorf("socket %s not ready after %d attempts", m.socketPath, socketWaitRetries)
}

func (m *MPV) running() bool {
	if m.socketPath == "" {
		return false
	}
	select {
	case <-m.exited:
		return false
	default:
		return true
	}
}

// Play clears the pause property.
func (m *MPV) Play() error {
	if !m.running() {
		return ErrNotRunning
	}
	return m.Set("pause", false)
}

// Pause sets the pause property.
func (m *MPV) Pause() error {
	if !m.running() {
		return ErrNotRunning
	}
	return m.Set("pause", true)
}

// Paused reports the last observed pause property.
func (m *MPV) Paused() bool {
	m.stateMu.RLock()
	defer m.stateMu.RUnlock()
	return m.state.paused
}

// CurrentTime reports the last observed time-pos.
func (m *MPV) CurrentTime() float64 {
	m.stateMu.RLock()
	defer m.stateMu.RUnlock()
	return m.state.timePos
}

// Seek moves playback to the given absolute position in seconds.
func (m *MPV) Seek(seconds float64) error {
	if !m.running() {
		return ErrNotRunning
	}
	_, err := m.sendCommand([]interface{}{"seek", seconds, "absolute"})
	return err
}

// SetVolume maps [0, 1] onto mpv's percent scale.
func (m *MPV) SetVolume(volume float64) error {
	if !m.running() {
		return ErrNotRunning
	}
	return m.Set("volume", volume*100)
}

// SetMuted sets the mute property.
func (m *MPV) SetMuted(muted bool) error {
	if !m.running() {
		return ErrNotRunning
	}
	return m.Set("mute", muted)
}

// SetFullscreen sets the fullscreen property of the mpv window.
func (m *MPV) SetFullscreen(fullscreen bool) error {
	if !m.running() {
		return ErrNotRunning
	}
	return m.Set("fullscreen", fullscreen)
}

// Subscribe registers fn for translated property changes.
func (m *MPV) Subscribe(fn func(Event)) func() {
	return m.events.subscribe(fn)
}

// Set a property
func (m *MPV) Set(property string, value interface{}) error {
	_, err := m.sendCommand([]interface{}{"set_property", property, value})
	return err
}

// Close shuts down the mpv process and cleans up resources.
func (m *MPV) Close() error {
	if m.listener != nil {
		m.listener.Stop()
	}

	if m.socketPath == "" {
		return nil
	}

	if m.running() {
		// Try graceful quit via IPC
		_, _ = m.sendCommand([]interface{}{"quit"})

		select {
		case <-m.exited:
		case <-time.After(3 * time.Second):
			_ = killProcess(m.cmd)
		}
	}

	_ = os.Remove(m.socketPath)
	return nil
}

// onProperty folds an observed property into the cached state and notifies subscribers.
func (m *MPV) onProperty(name string, data interface{}) {
	m.stateMu.Lock()
	events := m.state.apply(name, data)
	m.stateMu.Unlock()

	if len(events) > 0 {
		m.events.emit(events...)
	}
}

// sanitizeMediaTarget validates that a URL is safe to pass to mpv.
func sanitizeMediaTarget(link string) (string, error) {
	l := strings.TrimSpace(link)
	if l == "" {
		return "", fmt.Errorf("empty URL")
	}

	if strings.ContainsAny(l, "\x00\n\r") {
		return "", fmt.Errorf("invalid control characters in URL")
	}

	// Prevent flag injection: URLs must not start with -
	if strings.HasPrefix(l, "-") {
		return "", fmt.Errorf("url must not start with '-' (looks like a flag)")
	}

	if strings.Contains(l, "://") {
		u, err := url.Parse(l)
		if err != nil {
			return "", fmt.Errorf("invalid URL: %w", err)
		}
		switch strings.ToLower(u.Scheme) {
		case "http", "https":
			return l, nil
		default:
			return "", fmt.Errorf("unsupported URL scheme: %s", u.Scheme)
		}
	}

	return filepath.Clean(l), nil
}

// sanitizeTitle cleans up the title for mpv.
func sanitizeTitle(title string) string {
	t := strings.ReplaceAll(title, "\n", " ")
	t = strings.ReplaceAll(t, "\r", " ")
	t = strings.ReplaceAll(t, "\t", " ")
	t = strings.ReplaceAll(t, "\x00", "")
	return strings.TrimSpace(t)
}
