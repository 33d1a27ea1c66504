package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigureWritesJSONToOutputAndFile(t *testing.T) {
	var out bytes.Buffer
	path := filepath.Join(t.TempDir(), "desk.log")

	Configure(Config{Level: InfoLevel, Output: &out, File: FileConfig{Path: path, MaxSizeMB: 1}})
	t.Cleanup(func() { Configure(Config{Level: InfoLevel, Pretty: true}) })

	Debug().Msg("hidden")
	lgr := WithComponent("store")
	lgr.Info().Str("student", "张三").Msg("created")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(out.Bytes()), &line))
	assert.Equal(t, "created", line["message"])
	assert.Equal(t, "store", line["component"])
	assert.Equal(t, "张三", line["student"])

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"created"`)
	assert.NotContains(t, string(data), "hidden")
}

func TestParseLevelFallsBackToInfo(t *testing.T) {
	assert.Equal(t, "info", parseLevel("verbose").String())
	assert.Equal(t, "warn", parseLevel(WarnLevel).String())
}
