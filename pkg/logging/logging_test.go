package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerContextAttrs(t *testing.T) {
	var buf bytes.Buffer
	log := Logger(&buf, true, slog.LevelDebug)
	ctx := AppendCtx(context.Background(), slog.String("app", "ctl"))
	ctx = AppendCtx(ctx, slog.Int("job", 3))
	log.DebugContext(ctx, "hello", "k", "v")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "hello", rec["msg"])
	assert.Equal(t, "ctl", rec["app"])
	assert.Equal(t, float64(3), rec["job"])
	assert.Equal(t, "v", rec["k"])
}

func TestLoggerLevel(t *testing.T) {
	var buf bytes.Buffer
	log := Logger(&buf, false, slog.LevelWarn).With("x", 1).WithGroup("g")
	log.Info("dropped")
	assert.Empty(t, buf.String())
	log.Warn("kept", "y", 2)
	assert.Contains(t, buf.String(), "msg=kept")
	assert.Contains(t, buf.String(), "g.y=2")
}

func TestRotatingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ctl.log")
	w := RotatingFile(path, 1, 2)
	log := Logger(w, true, slog.LevelInfo)
	log.Info("written")
	require.NoError(t, w.Close())
	assert.FileExists(t, path)
}
