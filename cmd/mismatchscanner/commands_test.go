package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MismatchScanner/internal/domain"
)

func TestRenderStats(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, renderStats(&buf, domain.NewCorpusStats(8, 2)))

	out := buf.String()
	assert.Contains(t, out, "without probability")
	assert.Contains(t, out, "25.0%")
}

func TestRenderReport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, renderReport(&buf, domain.RunReport{
		RunID:    "3f9c",
		Selected: 21,
		Scored:   20,
		Skipped:  1,
		Flushes:  2,
		Modified: 20,
		Duration: 3 * time.Second,
	}))

	out := buf.String()
	assert.Contains(t, out, "3f9c")
	assert.Contains(t, out, "documents updated")
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := newRootCmd()
	for _, name := range []string{"score", "schedule", "serve", "stats"} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, cmd.Name())
	}
}
