package tools

import (
	"bytes"
	"testing"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestErrorWithPrintContextLogsFailure(t *testing.T) {
	var buf bytes.Buffer
	original := log.StandardLogger().Out
	log.SetOutput(&buf)
	defer log.SetOutput(original)

	called := false
	ErrorWithPrintContext(func() error {
		called = true
		return errors.New("connection reset")
	}, "close %s", "redis")

	assert.True(t, called)
	assert.Contains(t, buf.String(), "close redis")
	assert.Contains(t, buf.String(), "connection reset")
}

func TestErrorWithPrintContextSilentOnSuccess(t *testing.T) {
	var buf bytes.Buffer
	original := log.StandardLogger().Out
	log.SetOutput(&buf)
	defer log.SetOutput(original)

	ErrorWithPrintContext(func() error { return nil }, "close file")
	assert.Empty(t, buf.String())
}
