package output

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplog_Console(t *testing.T) {
	var buf bytes.Buffer
	splog, err := NewSplogWithOptions(&buf, LogOptions{})
	require.NoError(t, err)

	splog.Info("checked out %s", "feature")
	splog.Warn("careful")
	splog.Debug("hidden")

	assert.Equal(t, "checked out feature\n⚠️  careful\n", buf.String())
}

func TestSplog_DebugAttrs(t *testing.T) {
	var buf bytes.Buffer
	splog, err := NewSplogWithOptions(&buf, LogOptions{Debug: true})
	require.NoError(t, err)

	splog.Logger().With("component", "runner").Debug("git finished", "exit_code", 0)
	splog.Logger().Info("plain", "ignored", true)

	assert.Equal(t, "git finished component=runner exit_code=0\nplain\n", buf.String())
}

func TestSplog_Quiet(t *testing.T) {
	var buf bytes.Buffer
	splog, err := NewSplogWithOptions(&buf, LogOptions{})
	require.NoError(t, err)

	splog.SetQuiet(true)
	splog.Info("suppressed")
	splog.SetQuiet(false)
	splog.Tip("shown")

	assert.Equal(t, "💡 shown\n", buf.String())
}

func TestSplog_File(t *testing.T) {
	var buf bytes.Buffer
	file := filepath.Join(t.TempDir(), "logs", "gitkit.log")

	splog, err := NewSplogWithOptions(&buf, LogOptions{File: file})
	require.NoError(t, err)

	splog.Debug("only in file")
	splog.Error("everywhere")
	require.NoError(t, splog.Close())

	assert.Equal(t, "❌ everywhere\n", buf.String())

	content, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(content), "only in file")
	assert.Contains(t, string(content), "everywhere")
	assert.Contains(t, string(content), "level=DEBUG")
}

func TestNewLumberjackLogger_Defaults(t *testing.T) {
	logger := newLumberjackLogger(LogOptions{File: "x.log"})
	assert.Equal(t, 1, logger.MaxSize)
	assert.Equal(t, 2, logger.MaxBackups)
	assert.Equal(t, 30, logger.MaxAge)

	logger = newLumberjackLogger(LogOptions{File: "x.log", MaxSize: 5, MaxBackups: 1, MaxAge: 7})
	assert.Equal(t, 5, logger.MaxSize)
	assert.Equal(t, 1, logger.MaxBackups)
	assert.Equal(t, 7, logger.MaxAge)
}
