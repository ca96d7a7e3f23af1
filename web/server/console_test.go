package server

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestWebLogger_BasicLogging(t *testing.T) {
	messageChan := make(chan ConsoleMessage, 10)
	logger := NewWebLogger("test-render-123", messageChan, zerolog.Nop())

	logger.Printf("%s\n", "Test log message")

	select {
	case msg := <-messageChan:
		if msg.Message != "Test log message\n" {
			t.Errorf("Expected message 'Test log message\\n', got '%s'", msg.Message)
		}
		if msg.Level != "info" {
			t.Errorf("Expected level 'info', got '%s'", msg.Level)
		}
		if time.Since(msg.Timestamp) > time.Second {
			t.Errorf("Timestamp seems too old: %v", msg.Timestamp)
		}
	default:
		t.Error("Expected a console message")
	}
}

func TestWebLogger_MultipleMessages(t *testing.T) {
	messageChan := make(chan ConsoleMessage, 10)
	logger := NewWebLogger("test-render-456", messageChan, zerolog.Nop())

	messages := []string{"Message 1", "Message 2", "Message 3"}
	for _, msg := range messages {
		logger.Printf("%s\n", msg)
	}

	if len(messageChan) != len(messages) {
		t.Fatalf("Expected %d messages, got %d", len(messages), len(messageChan))
	}
	for i, expected := range messages {
		msg := <-messageChan
		if msg.Message != expected+"\n" {
			t.Errorf("Message %d: expected '%s', got '%s'", i, expected, msg.Message)
		}
	}
}

func TestWebLogger_ChannelFull(t *testing.T) {
	messageChan := make(chan ConsoleMessage, 1)
	logger := NewWebLogger("test-render-789", messageChan, zerolog.Nop())

	// Only the first message fits; the rest must be dropped without blocking
	logger.Printf("Message 1\n")
	logger.Printf("Message 2\n")
	logger.Printf("Message 3\n")

	if msg := <-messageChan; msg.Message != "Message 1\n" {
		t.Errorf("Expected first message to be kept, got '%s'", msg.Message)
	}
	if len(messageChan) != 0 {
		t.Errorf("Expected overflow messages to be dropped, %d queued", len(messageChan))
	}
}

func TestWebLogger_NilChannel(t *testing.T) {
	logger := NewWebLogger("test-render-nil", nil, zerolog.Nop())

	// This should not panic
	logger.Printf("Test message with nil channel\n")
}

func TestWebLogger_FormattedMessages(t *testing.T) {
	messageChan := make(chan ConsoleMessage, 10)
	logger := NewWebLogger("test-render-format", messageChan, zerolog.Nop())

	logger.Printf("Rendering %dx%d, %d spp\n", 400, 225, 100)

	msg := <-messageChan
	if expected := "Rendering 400x225, 100 spp\n"; msg.Message != expected {
		t.Errorf("Expected formatted message '%s', got '%s'", expected, msg.Message)
	}
}
