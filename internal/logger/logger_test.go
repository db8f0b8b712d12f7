package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewWithWriterLevels(t *testing.T) {
	var quiet bytes.Buffer
	log := NewWithWriter(&quiet, false).Sugar()
	log.Infow("hidden", "k", "v")
	log.Warnw("shown", "k", "v")
	_ = log.Sync()

	assert.NotContains(t, quiet.String(), "hidden")
	assert.Contains(t, quiet.String(), "shown")
	assert.Contains(t, quiet.String(), "WARN")

	var verbose bytes.Buffer
	dbg := NewWithWriter(&verbose, true).Sugar()
	dbg.Debugw("details", "status", 200)
	_ = dbg.Sync()

	assert.Contains(t, verbose.String(), "details")
	assert.Contains(t, verbose.String(), "DEBUG")
}
