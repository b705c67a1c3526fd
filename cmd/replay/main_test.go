package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/conquestreplay/internal/replay"
	"github.com/mitchelldurbincs/conquestreplay/internal/testutil"
)

func TestRunPrintsConquestOrder(t *testing.T) {
	path := testutil.WriteFile(t, "pair.yaml", testutil.PairScenarioYAML)
	var stdout, stderr bytes.Buffer

	err := run(context.Background(), []string{"-config", "/non/existent/config.yaml", "-scenario", path, "-log-level", "error"}, &stdout, &stderr)
	require.NoError(t, err)

	out := stdout.String()
	assert.Contains(t, out, "conquered: [2]")
	assert.Contains(t, out, "remaining: 4")
	assert.Contains(t, out, "seed 123")
}

func TestRunTroopOverride(t *testing.T) {
	path := testutil.WriteFile(t, "pair.yaml", testutil.PairScenarioYAML)
	var stdout, stderr bytes.Buffer

	err := run(context.Background(), []string{"-config", "/non/existent/config.yaml", "-scenario", path, "-troops", "0", "-log-level", "error"}, &stdout, &stderr)
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "conquered: []")
}

func TestRunRecord(t *testing.T) {
	path := testutil.WriteFile(t, "pair.yaml", testutil.PairScenarioYAML)
	var stdout, stderr bytes.Buffer

	err := run(context.Background(), []string{"-config", "/non/existent/config.yaml", "-scenario", path, "-record", "-log-level", "error"}, &stdout, &stderr)
	require.NoError(t, err)

	s, err := replay.Load(path)
	require.NoError(t, err)
	assert.Len(t, s.Expected, 1)
}

func TestRunMismatch(t *testing.T) {
	content := testutil.PairScenarioYAML + "expected: [1]\n"
	path := testutil.WriteFile(t, "pair.yaml", content)
	var stdout, stderr bytes.Buffer

	err := run(context.Background(), []string{"-config", "/non/existent/config.yaml", "-scenario", path, "-log-level", "error"}, &stdout, &stderr)
	assert.ErrorIs(t, err, replay.ErrReplayMismatch)
	assert.Contains(t, stdout.String(), "conquered: [2]", "the diverging outcome is still reported")
}

func TestRunResolvesScenarioDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pair.yaml"), []byte(testutil.PairScenarioYAML), 0o644))
	t.Setenv("CRP_REPLAY_SCENARIO_DIR", dir)
	var stdout, stderr bytes.Buffer

	err := run(context.Background(), []string{"-config", "/non/existent/config.yaml", "-scenario", "pair.yaml", "-log-level", "error"}, &stdout, &stderr)
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "conquered: [2]")
}

func TestRunRequiresScenario(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Error(t, run(context.Background(), nil, &stdout, &stderr))
}

// syncBuffer is written from the config watcher goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestRunWatchReplaysOnConfigChange(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("logging:\n  level: error\n"), 0o644))
	path := testutil.WriteFile(t, "pair.yaml", testutil.PairScenarioYAML)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	var stdout, stderr syncBuffer
	done := make(chan error, 1)
	go func() {
		done <- run(ctx, []string{"-config", configFile, "-scenario", path, "-watch"}, &stdout, &stderr)
	}()

	require.Eventually(t, func() bool {
		return strings.Count(stdout.String(), "conquered:") >= 1
	}, 5*time.Second, 10*time.Millisecond)

	writes := 0
	require.Eventually(t, func() bool {
		writes++
		content := fmt.Sprintf("logging:\n  level: error\n# edit %d\n", writes)
		_ = os.WriteFile(configFile, []byte(content), 0o644)
		return strings.Count(stdout.String(), "conquered:") >= 2
	}, 5*time.Second, 100*time.Millisecond, "editing the config replays the scenario")

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("run did not return after cancel")
	}
}

func TestRunWatchRejectsRecord(t *testing.T) {
	path := testutil.WriteFile(t, "pair.yaml", testutil.PairScenarioYAML)
	var stdout, stderr bytes.Buffer

	err := run(context.Background(), []string{"-scenario", path, "-watch", "-record"}, &stdout, &stderr)
	assert.Error(t, err)
}
