package debug

import (
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogWritesWhenEnabled(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	SetLogger(zap.New(core))
	defer SetEnabled(false)

	Log("placed %d words", 3)
	LogTiming("layout", 5*time.Millisecond)
	LogIf(false, "hidden")
	LogEnterExit("fn")()

	entries := logs.All()
	if len(entries) != 4 {
		t.Fatalf("expected 4 log entries, got %d", len(entries))
	}
	if entries[0].Message != "placed 3 words" {
		t.Errorf("unexpected first message %q", entries[0].Message)
	}
	if entries[1].ContextMap()["op"] != "layout" {
		t.Errorf("expected op field on timing entry, got %v", entries[1].ContextMap())
	}
}

func TestLogNoopWhenDisabled(t *testing.T) {
	SetEnabled(false)
	if Enabled() {
		t.Fatal("expected disabled")
	}
	// Must not panic on the nop logger.
	Log("nothing %d", 1)
	LogEnterExit("fn")()
	Sync()
}
