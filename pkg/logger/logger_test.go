package logger

import (
	"bufio"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readEntries(t *testing.T, path string) []map[string]interface{} {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var out []map[string]interface{}
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var m map[string]interface{}
		require.NoError(t, json.Unmarshal(sc.Bytes(), &m))
		out = append(out, m)
	}
	return out
}

func TestJSONFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	l, err := New(&Config{Level: "info", Format: "json", Output: path})
	require.NoError(t, err)

	child := l.With(String("component", "feargreed"))
	child.Debug("dropped below level")
	child.Info("scored",
		String("ticker", "AAPL"),
		Int("score", 70),
		Float64("weight", 0.3),
		Float64p("rsi", nil),
		Bool("cached", false),
		Duration("took", 1500*time.Millisecond),
		Any("tags", []string{"a"}),
	)
	child.Warn("fallback", Error(errors.New("timeout")))

	entries := readEntries(t, path)
	require.Len(t, entries, 2)

	info := entries[0]
	assert.Equal(t, "info", info["level"])
	assert.Equal(t, "feargreed", info["component"])
	assert.Equal(t, "AAPL", info["ticker"])
	assert.Equal(t, 70.0, info["score"])
	assert.Equal(t, 0.3, info["weight"])
	assert.Contains(t, info, "rsi")
	assert.Nil(t, info["rsi"])
	assert.Equal(t, false, info["cached"])
	assert.Equal(t, 1500.0, info["took"])

	assert.Equal(t, "timeout", entries[1]["error"])
}

func TestInvalidLevel(t *testing.T) {
	_, err := New(&Config{Level: "loud"})
	assert.Error(t, err)
}

func TestErrorsReachCollector(t *testing.T) {
	pub := &capturePublisher{}
	l := Nop()
	l.AddCollector(&CollectionConfig{TimeInterval: time.Hour, Topic: "logs", Publisher: pub})

	child := l.With(String("component", "fmp"))
	child.Error("fmp request rejected", String("endpoint", "quote"))
	child.Info("not collected")
	l.RemoveCollector()

	require.Len(t, pub.batches, 1)
	require.Len(t, pub.batches[0], 1)
	e := pub.batches[0][0]
	assert.Equal(t, "fmp request rejected", e.Message)
	assert.Equal(t, "quote", e.Fields["endpoint"])
	assert.Contains(t, e.Caller, "logger_test.go")
}
