package player

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"time"
)

// ipcCommand is the JSON structure sent to mpv's IPC socket.
type ipcCommand struct {
	Command   []interface{} `json:"command"`
	RequestID int           `json:"request_id,omitempty"`
}

// ipcResponse is the JSON structure received from mpv's IPC socket.
// Asynchronous notifications share the connection and carry Event instead of Error.
type ipcResponse struct {
	Data      interface{} `json:"data"`
	Error     string      `json:"error"`
	Event     string      `json:"event"`
	RequestID int         `json:"request_id"`
}

const (
	maxRetries   = 3
	retryDelay   = 100 * time.Millisecond
	readDeadline = 1 * time.Second
	readBufSize  = 4096
	requestID    = 1
)

// sendCommand sends a JSON-IPC command to mpv via Unix domain socket, retrying transient failures.
func (m *MPV) sendCommand(command []interface{}) (interface{}, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var lastErr error

	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(retryDelay)
		}

		result, err := doSendCommand(m.socketPath, command)
		if err == nil {
			return result, nil
		}
		if _, ok := err.(*mpvError); ok {
			return nil, err
		}
		lastErr = err
	}

	return nil, fmt.Errorf("ipc command failed after %d attempts: %w", maxRetries, lastErr)
}

// mpvError is a command rejected by mpv itself. It is not retried.
type mpvError struct {
	reason string
}

func (e *mpvError) Error() string {
	return "mpv error: " + e.reason
}

// doSendCommand performs a single IPC command attempt.
func doSendCommand(socketPath string, command []interface{}) (interface{}, error) {
	conn, err := net.Dial("unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	defer conn.Close()

	payload, err := json.Marshal(ipcCommand{Command: command, RequestID: requestID})
	if err != nil {
		return nil, fmt.Errorf("marshal: %w", err)
	}

	// mpv requires newline-delimited JSON
	if _, err = conn.Write(append(payload, '\n')); err != nil {
		return nil, fmt.Errorf("write: %w", err)
	}

	if err := conn.SetReadDeadline(time.Now().Add(readDeadline)); err != nil {
		return nil, fmt.Errorf("set deadline: %w", err)
	}

	reader := bufio.NewReaderSize(conn, readBufSize)
	for {
		line, err := reader.ReadBytes('\n')
		if err != nil {
			return nil, fmt.Errorf("read: %w", err)
		}

		var resp ipcResponse
		if err := json.Unmarshal(line, &resp); err != nil {
			return nil, fmt.Errorf("unmarshal: %w", err)
		}

		if resp.Event != "" {
			continue
		}

		if resp.Error != "" && resp.Error != "success" {
			return nil, &mpvError{reason: resp.Error}
		}

		return resp.Data, nil
	}
}
