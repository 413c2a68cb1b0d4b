package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func captureDebug(t *testing.T) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	prev := SetOutput(buf)
	t.Cleanup(func() { SetOutput(prev) })
	return buf
}

func TestDebugEnabled(t *testing.T) {
	t.Setenv("WH_DEBUG", "")
	assert.False(t, DebugEnabled())

	t.Setenv("WH_DEBUG", "1")
	assert.True(t, DebugEnabled())

	t.Setenv("WH_DEBUG", "true")
	assert.True(t, DebugEnabled())
}

func TestDebugf(t *testing.T) {
	buf := captureDebug(t)

	t.Setenv("WH_DEBUG", "")
	Debugf("hidden %s\n", "message")
	assert.Empty(t, buf.String())

	t.Setenv("WH_DEBUG", "1")
	Debugf("eta for work order %d: %s\n", 7, "2025-11-11 09:00")
	assert.Equal(t, "[debug] eta for work order 7: 2025-11-11 09:00\n", buf.String())
}

func TestDebugln(t *testing.T) {
	buf := captureDebug(t)

	t.Setenv("WH_DEBUG", "")
	Debugln("hidden")
	assert.Empty(t, buf.String())

	t.Setenv("WH_DEBUG", "1")
	Debugln("pause closed", 42)
	assert.Equal(t, "[debug] pause closed 42\n", buf.String())
}
