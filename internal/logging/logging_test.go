// internal/logging/logging_test.go
package logging

import (
	"bytes"
	"log"
	"os"
	"strings"
	"testing"
)

type testStringer string

func (s testStringer) String() string { return string(s) }

func TestInitAndLoggingToFile(t *testing.T) {
	tempDir := t.TempDir()

	if err := Init(tempDir, false, false); err != nil {
		t.Fatalf("Init error: %v", err)
	}
	t.Cleanup(func() {
		_ = Close()
	})

	path := FilePath()
	if path == "" {
		t.Fatal("expected an active run log file")
	}
	if !strings.HasSuffix(path, "_bench.log") {
		t.Fatalf("expected timestamped _bench.log file, got: %s", path)
	}

	LogEvent("hello %s", "world")
	_ = Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "hello world") {
		t.Fatalf("expected LogEvent content, got: %s", data)
	}
}

func TestDebugfSuppressedByDefault(t *testing.T) {
	if err := Init("", false, false); err != nil {
		t.Fatalf("Init error: %v", err)
	}
	t.Cleanup(func() {
		_ = Close()
		log.SetOutput(os.Stderr)
	})

	var buf bytes.Buffer
	log.SetOutput(&buf)
	Debugf("hidden %d", 1)
	if buf.Len() != 0 {
		t.Fatalf("expected debug output suppressed, got: %s", buf.String())
	}

	if err := Init("", true, false); err != nil {
		t.Fatalf("Init error: %v", err)
	}
	log.SetOutput(&buf)
	Debugf("visible %d", 2)
	if !strings.Contains(buf.String(), "visible 2") {
		t.Fatalf("expected debug output, got: %s", buf.String())
	}
}

func TestLogRequestSilenced(t *testing.T) {
	if err := Init("", false, true); err != nil {
		t.Fatalf("Init error: %v", err)
	}
	t.Cleanup(func() {
		_ = Close()
		log.SetOutput(os.Stderr)
	})

	var buf bytes.Buffer
	log.SetOutput(&buf)
	LogRequest("BENCH->LLM", "local", "test-model", []byte(`{"x":1}`))
	if buf.Len() != 0 {
		t.Fatalf("expected transport logging silenced, got: %s", buf.String())
	}
}

func TestBuildRequestMessageDefaults(t *testing.T) {
	msg := buildRequestMessage(" in ", " ", "", map[string]any{"ok": true})
	if !strings.Contains(msg, "[IN]") {
		t.Fatalf("expected uppercased direction, got: %s", msg)
	}
	if !strings.Contains(msg, "host=unknown") {
		t.Fatalf("expected default host, got: %s", msg)
	}
	if !strings.Contains(msg, "model=unknown") {
		t.Fatalf("expected default model, got: %s", msg)
	}
	if !strings.Contains(msg, "payload={\"ok\":true}") {
		t.Fatalf("expected payload json, got: %s", msg)
	}
}

func TestFormatPayloadVariants(t *testing.T) {
	if got := formatPayload(nil); got != "null" {
		t.Fatalf("nil payload: %s", got)
	}
	if got := formatPayload(" "); got != `""` {
		t.Fatalf("empty string payload: %s", got)
	}
	if got := formatPayload([]byte("hi")); got != "hi" {
		t.Fatalf("byte payload: %s", got)
	}
	if got := formatPayload(testStringer("ok")); got != "ok" {
		t.Fatalf("stringer payload: %s", got)
	}
}
