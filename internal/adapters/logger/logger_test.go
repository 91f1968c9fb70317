package logger_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/zerr"

	"github.com/ridgewaylabs/dagrun/internal/adapters/logger"
)

func TestLogger_InfoAndWarn(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New()
	log.SetOutput(&buf)

	log.Info("starting up")
	log.Warn("low disk space")

	out := buf.String()
	assert.Contains(t, out, "starting up")
	assert.Contains(t, out, "low disk space")
	assert.Contains(t, out, "level=INFO")
	assert.Contains(t, out, "level=WARN")
}

func TestLogger_ErrorWalksZerrChain(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New()
	log.SetOutput(&buf)

	base := errors.New("connection refused")
	wrapped := zerr.Wrap(base, "failed to probe configuration")

	log.Error(wrapped)

	out := buf.String()
	assert.Contains(t, out, "failed to probe configuration")
	assert.Contains(t, out, "connection refused")
	assert.Contains(t, out, "Caused by")
}

func TestLogger_ErrorNilIsNoop(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New()
	log.SetOutput(&buf)

	log.Error(nil)

	assert.Empty(t, buf.String())
}

func TestLogger_SetJSONEmitsStructuredOutput(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New()
	log.SetOutput(&buf)
	log.SetJSON(true)

	log.Error(errors.New("boom"))

	out := buf.String()
	assert.Contains(t, out, `"msg":"operation failed"`)
	assert.Contains(t, out, `"error":"boom"`)
}
