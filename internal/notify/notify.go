// Package notify delivers transient success and error messages. The CLI
// prints them as colored stderr lines; the dashboard fans them out to
// browsers over a sink. Delivery is best effort and never blocks.
package notify

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/fatih/color"
)

// Level tags a notification.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notification is one transient message.
type Notification struct {
	Level   Level     `json:"level"`
	Message string    `json:"message"`
	Time    time.Time `json:"time"`
}

// Sink receives notifications alongside the terminal output. Implementations
// must not block; slow consumers drop messages.
type Sink interface {
	Notify(Notification)
}

// Notifier writes notifications to a terminal stream and any attached sinks.
type Notifier struct {
	mu    sync.Mutex
	out   io.Writer
	sinks []Sink

	successPrefix string
	errorPrefix   string
}

// New creates a Notifier writing to stderr.
func New() *Notifier {
	return NewWithWriter(os.Stderr)
}

// NewWithWriter creates a Notifier writing to the given stream.
func NewWithWriter(out io.Writer) *Notifier {
	return &Notifier{
		out:           out,
		successPrefix: color.New(color.FgGreen, color.Bold).Sprint("✓"),
		errorPrefix:   color.New(color.FgRed, color.Bold).Sprint("✗"),
	}
}

// AddSink attaches an extra consumer, e.g. the dashboard's websocket hub.
func (n *Notifier) AddSink(sink Sink) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sinks = append(n.sinks, sink)
}

// Success reports a completed operation.
func (n *Notifier) Success(format string, args ...any) {
	n.emit(LevelSuccess, n.successPrefix, fmt.Sprintf(format, args...))
}

// Error reports a failed operation.
func (n *Notifier) Error(format string, args ...any) {
	n.emit(LevelError, n.errorPrefix, fmt.Sprintf(format, args...))
}

func (n *Notifier) emit(level Level, prefix, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	fmt.Fprintf(n.out, "%s %s\n", prefix, message)
	notification := Notification{Level: level, Message: message, Time: time.Now()}
	for _, sink := range n.sinks {
		sink.Notify(notification)
	}
}
