// Package ui provides internal state management and rendering utilities for ephemeral terminal notifications.
package ui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/watchroom-cli/watchroom/icon"
	"github.com/watchroom-cli/watchroom/media"
	"github.com/watchroom-cli/watchroom/style"
)

// Lifetime is how long a notification stays on screen.
const Lifetime = 3 * time.Second

// Model encapsulates the state for displaying non-blocking terminal alerts.
type Model struct {
	notification string
	notifiedAt   time.Time
}

// NotificationMsg replaces the current notification.
type NotificationMsg string

// ClearNotificationMsg is a Bubbletea message used to reset the visual notification state.
type ClearNotificationMsg struct {
	at time.Time
}

// Notify returns a tea.Cmd that shows a formatted notification.
func Notify(format string, args ...any) tea.Cmd {
	return func() tea.Msg {
		return NotificationMsg(fmt.Sprintf(format, args...))
	}
}

// NotifyError turns err into a notification. Rejected files get a short, user-facing wording.
func NotifyError(err error) tea.Cmd {
	var rejected *media.RejectedFile
	if errors.As(err, &rejected) {
		return Notify("%s %s is not a playable video (%s)", icon.Get(icon.Fail), rejected.Name, rejected.Reason)
	}

	return Notify("%s %s", icon.Get(icon.Fail), err)
}

// ClearNotification returns a delayed tea.Cmd that clears the notification shown at at.
func ClearNotification(at time.Time) tea.Cmd {
	return tea.Tick(Lifetime, func(time.Time) tea.Msg {
		return ClearNotificationMsg{at: at}
	})
}

// Update processes incoming messages to modify the notification state.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case NotificationMsg:
		m.notification = string(msg)
		m.notifiedAt = time.Now()
		return ClearNotification(m.notifiedAt)
	case ClearNotificationMsg:
		// a newer notification restarted the countdown
		if !msg.at.Equal(m.notifiedAt) {
			return nil
		}
		m.notification = ""
		return nil
	}
	return nil
}

// Notification returns the message currently shown, if any.
func (m *Model) Notification() string {
	return m.notification
}

// View injects the current notification message into the terminal view buffer.
func (m *Model) View(mainContent string) string {
	if m.notification == "" {
		return mainContent
	}

	lines := strings.Split(mainContent, "\n")
	notifier := style.Faint(m.notification)

	if len(lines) > 0 {
		lines[len(lines)-1] = lines[len(lines)-1] + "  " + notifier
	}
	return strings.Join(lines, "\n")
}
