package utils

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogger_WritesKeyValues(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(nil)

	Info("batch completed", "batch", 2, "total", 3)
	Warn("sense failed", "icon", "home.svg", "dangling")

	out := buf.String()
	assert.Contains(t, out, "INFO: batch completed batch=2 total=3")
	assert.Contains(t, out, "WARN: sense failed icon=home.svg")
	assert.NotContains(t, out, "dangling")
}

func TestLogger_DebugGated(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(nil)

	SetDebug(false)
	Debug("hidden")
	assert.Empty(t, buf.String())

	SetDebug(true)
	defer SetDebug(false)
	Debug("shown", "k", "v")
	assert.Contains(t, buf.String(), "DEBUG: shown k=v")
}

func TestLogger_NoOutputIsNoop(t *testing.T) {
	SetOutput(nil)
	assert.NotPanics(t, func() { Error("nobody listens") })
}
