package server

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/GIP2000/Computer-Graphics/pkg/core"
)

// ConsoleMessage represents a console message with timestamp
type ConsoleMessage struct {
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"` // "info", "warning", "error"
}

// WebLogger implements core.Logger by sending messages to a console channel
type WebLogger struct {
	renderID    string
	consoleChan chan<- ConsoleMessage
	logger      zerolog.Logger
}

// NewWebLogger creates a new web logger for a specific render.
// Messages are also written to logger for the server log.
func NewWebLogger(renderID string, consoleChan chan<- ConsoleMessage, logger zerolog.Logger) core.Logger {
	return &WebLogger{
		renderID:    renderID,
		consoleChan: consoleChan,
		logger:      logger,
	}
}

// Printf implements core.Logger interface
func (wl *WebLogger) Printf(format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)

	wl.logger.Info().Str("render", wl.renderID).Msg(strings.TrimRight(message, "\n"))

	// Send to web console if channel is available (non-blocking)
	if wl.consoleChan != nil {
		select {
		case wl.consoleChan <- ConsoleMessage{
			Message:   message,
			Timestamp: time.Now(),
			Level:     "info",
		}:
		default:
			// Channel full, skip (don't block)
		}
	}
}
