package logger_test

import (
	"bytes"
	"encoding/json"
	"hws_news/internal/logger"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestInit_JSONFields(t *testing.T) {
	var buf bytes.Buffer
	logger.Init(logger.Options{Output: &buf})

	logger.Log.WithField("page", 3).Info("Page merged")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "Page merged", entry["message"])
	require.Equal(t, "info", entry["level"])
	require.EqualValues(t, 3, entry["page"])
	require.Contains(t, entry, "timestamp")
}

func TestInit_DebugLevel(t *testing.T) {
	t.Setenv("DEBUG", "")
	var buf bytes.Buffer

	logger.Init(logger.Options{Output: &buf})
	require.Equal(t, logrus.InfoLevel, logger.Log.GetLevel())

	logger.Init(logger.Options{Output: &buf, Debug: true})
	require.Equal(t, logrus.DebugLevel, logger.Log.GetLevel())

	t.Setenv("DEBUG", "true")
	logger.Init(logger.Options{Output: &buf})
	require.Equal(t, logrus.DebugLevel, logger.Log.GetLevel())
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hwsnews.log")
	f, err := logger.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	logger.Init(logger.Options{Output: f})
	logger.Log.Info("written to file")
	require.FileExists(t, path)
}
