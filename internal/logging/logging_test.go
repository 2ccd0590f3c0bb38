package logging_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/smartexpense/internal/config"
	"github.com/MrJamesThe3rd/smartexpense/internal/logging"
)

func testConfig(level, format string) *config.Config {
	var c config.Config
	c.App.Name = "SmartExpense"
	c.App.Env = "test"
	c.Log.Level = level
	c.Log.Format = format

	return &c
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer

	logger, closer, err := logging.New(testConfig("info", "json"), &buf)
	require.NoError(t, err)
	defer closer.Close()

	logger.Debug("hidden")
	logger.Info("expense added", "id", "abc")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry), "only one JSON line is written")

	assert.Equal(t, "expense added", entry["msg"])
	assert.Equal(t, "abc", entry["id"])
	assert.Equal(t, "SmartExpense", entry["app"])
	assert.Equal(t, "test", entry["env"])
}

func TestNew_Text(t *testing.T) {
	var buf bytes.Buffer

	logger, _, err := logging.New(testConfig("debug", "text"), &buf)
	require.NoError(t, err)

	logger.Debug("loaded", "count", 3)

	assert.Contains(t, buf.String(), "msg=loaded")
	assert.Contains(t, buf.String(), "count=3")
}

func TestNew_File(t *testing.T) {
	cfg := testConfig("info", "text")
	cfg.Log.File = filepath.Join(t.TempDir(), "app.log")

	logger, closer, err := logging.New(cfg, os.Stderr)
	require.NoError(t, err)

	logger.Info("to file")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(cfg.Log.File)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to file")
}

func TestNew_BadLevel(t *testing.T) {
	_, _, err := logging.New(testConfig("loud", "text"), os.Stderr)
	assert.Error(t, err)
}
