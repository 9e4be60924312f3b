package logger

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
)

func TestNewWithWriterUsesPrefixAndLevel(t *testing.T) {
	prev := log.GetLevel()
	defer log.SetLevel(prev)
	log.SetLevel(log.WarnLevel)

	var buf bytes.Buffer
	l := NewWithWriter(&buf, "remote")
	l.Info("hidden")
	l.Warn("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "remote")
}

func TestNewWithConfig(t *testing.T) {
	l := NewWithConfig("srv", log.DebugLevel, false, false, log.LogfmtFormatter)
	assert.Equal(t, log.DebugLevel, l.GetLevel())
	assert.Equal(t, "srv", l.GetPrefix())
}
