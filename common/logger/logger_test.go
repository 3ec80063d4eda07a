package logger_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"feedback-service/common/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WritesToStdoutAndFile(t *testing.T) {
	var stdout bytes.Buffer
	logFile := filepath.Join(t.TempDir(), "app.log")

	log := logger.New(logger.Options{
		Env:    "local",
		Level:  "info",
		File:   logFile,
		Stdout: &stdout,
	})

	log.Info("feedback submitted", "student_id", 7, "course_id", 3)
	log.Debug("hidden at info level")

	assert.Contains(t, stdout.String(), "feedback submitted")
	assert.NotContains(t, stdout.String(), "hidden at info level")

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"feedback submitted"`)
	assert.Contains(t, string(data), `"student_id":7`)
}

func TestNew_JSONOutput(t *testing.T) {
	var stdout bytes.Buffer

	log := logger.NewWithServiceContext("feedback-service", "test", logger.Options{
		Env:    "prod",
		Stdout: &stdout,
	})
	log.Warn("login failed", "email", "asha@x.com")

	line := strings.TrimSpace(stdout.String())
	assert.True(t, strings.HasPrefix(line, "{"), "expected JSON output, got %q", line)
	assert.Contains(t, line, `"service":"feedback-service"`)
	assert.Contains(t, line, `"level":"WARN"`)
}
