package testutil

import (
	"bytes"
	"log/slog"
)

// NewBufferLogger returns a text slog logger writing to a buffer, plus
// the buffer so tests can assert on the output.
func NewBufferLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	return logger, &buf
}
