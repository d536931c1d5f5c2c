// internal/logging/logging.go
// Package logging wires the process-wide logger to a timestamped run log
// file while mirroring output to stdout. It is initialized once before a
// run; components receive log output through the package functions rather
// than configuring log state themselves.
package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

var (
	mu          sync.Mutex
	logFile     *os.File
	debugOn     bool
	silenceHTTP bool
)

// Init creates logDir if needed, opens a timestamped log file inside it, and
// routes the standard logger to both stdout and that file. An empty logDir
// logs to stdout only. debug enables Debugf output; silenceTransport
// suppresses LogRequest wire payloads.
func Init(logDir string, debug, silenceTransport bool) error {
	mu.Lock()
	defer mu.Unlock()

	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}

	debugOn = debug
	silenceHTTP = silenceTransport

	writers := []io.Writer{os.Stdout}

	if logDir != "" {
		if err := os.MkdirAll(logDir, 0o755); err != nil {
			return err
		}
		name := time.Now().Format("2006-01-02_15-04-05") + "_bench.log"
		file, err := os.OpenFile(filepath.Join(logDir, name), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return err
		}
		logFile = file
		writers = append(writers, logFile)
	}

	log.SetOutput(io.MultiWriter(writers...))
	return nil
}

// Close releases the run log file and restores the default log destination.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if logFile == nil {
		return nil
	}
	log.SetOutput(os.Stderr)
	err := logFile.Close()
	logFile = nil
	return err
}

// FilePath returns the path of the active run log file, or "" when logging
// to stdout only.
func FilePath() string {
	mu.Lock()
	defer mu.Unlock()
	if logFile == nil {
		return ""
	}
	return logFile.Name()
}

// LogEvent writes a formatted line to the run log.
func LogEvent(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	log.Println(msg)
}

// Debugf writes a formatted line only when debug logging is enabled.
func Debugf(format string, args ...any) {
	mu.Lock()
	enabled := debugOn
	mu.Unlock()
	if !enabled {
		return
	}
	log.Println(fmt.Sprintf(format, args...))
}

// LogRequest records a wire payload tagged with its direction, host, and
// model. Suppressed entirely when transport logging is silenced.
func LogRequest(direction, host, model string, payload any) {
	mu.Lock()
	silenced := silenceHTTP
	mu.Unlock()
	if silenced {
		return
	}
	log.Println(buildRequestMessage(direction, host, model, payload))
}

func buildRequestMessage(direction, host, model string, payload any) string {
	dir := strings.TrimSpace(direction)
	if dir != "" {
		dir = strings.ToUpper(dir)
	}
	hostValue := strings.TrimSpace(host)
	if hostValue == "" {
		hostValue = "unknown"
	}
	modelValue := strings.TrimSpace(model)
	if modelValue == "" {
		modelValue = "unknown"
	}
	parts := []string{fmt.Sprintf("[%s]", dir)}
	parts = append(parts, fmt.Sprintf("host=%s", hostValue))
	parts = append(parts, fmt.Sprintf("model=%s", modelValue))
	parts = append(parts, fmt.Sprintf("payload=%s", formatPayload(payload)))
	return strings.Join(parts, " ")
}

func formatPayload(payload any) string {
	switch v := payload.(type) {
	case nil:
		return "null"
	case string:
		if strings.TrimSpace(v) == "" {
			return `""`
		}
		return v
	case []byte:
		if len(v) == 0 {
			return "[]"
		}
		return string(v)
	case fmt.Stringer:
		return v.String()
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(data)
	}
}
