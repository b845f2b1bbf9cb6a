package index

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Ines207/ARI/pkg/embedding"
	"github.com/Ines207/ARI/pkg/retry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEmbedder returns fixed vectors per known text and counts calls by task.
type fakeEmbedder struct {
	vectors  map[string][]float32
	query    []float32
	docCalls int
	qryCalls int
	fail     bool
}

func (f *fakeEmbedder) Generate(ctx context.Context, text string, taskType string) ([]float32, error) {
	if f.fail {
		return nil, errors.New("embedding service down")
	}
	if taskType == embedding.TaskQuery {
		f.qryCalls++
		return f.query, nil
	}
	f.docCalls++
	if v, ok := f.vectors[text]; ok {
		return v, nil
	}
	return []float32{0, 0, 1}, nil
}

func testConfig() Config {
	return Config{
		ChunkSize:     1000,
		ChunkOverlap:  100,
		RetryAttempts: 2,
		RetryDelay:    time.Millisecond,
	}
}

func writeCorpus(t *testing.T, docs map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range docs {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
	return dir
}

func TestBuildEmptyCorpus(t *testing.T) {
	adapter := NewAdapter(&fakeEmbedder{}, testConfig(), nil)

	err := adapter.Build(context.Background(), filepath.Join(t.TempDir(), "missing"), t.TempDir())
	assert.ErrorIs(t, err, ErrEmptyCorpus)

	err = adapter.Build(context.Background(), t.TempDir(), t.TempDir())
	assert.ErrorIs(t, err, ErrEmptyCorpus)
}

func TestBuildAndQueryDiversity(t *testing.T) {
	corpusDir := writeCorpus(t, map[string]string{
		"a.txt": "alpha",
		"b.txt": "alpha twin",
		"c.txt": "beta",
	})
	embedder := &fakeEmbedder{
		vectors: map[string][]float32{
			"alpha":      {1, 0, 0},
			"alpha twin": {1, 0, 0}, // exact duplicate of a.txt
			"beta":       {0, 1, 0},
		},
		query: []float32{0.8, 0.6, 0},
	}
	adapter := NewAdapter(embedder, testConfig(), nil)

	indexDir := t.TempDir()
	require.NoError(t, adapter.Build(context.Background(), corpusDir, indexDir))
	assert.Equal(t, 3, adapter.Len())
	assert.Equal(t, 3, embedder.docCalls)

	results, err := adapter.Query(context.Background(), "find alpha", 2, 3)
	require.NoError(t, err)
	require.Len(t, results, 2)

	// Most relevant chunk first; the duplicate is skipped in favor of the
	// novel one.
	assert.Equal(t, "alpha", results[0].Text)
	assert.Equal(t, "beta", results[1].Text)
	assert.Equal(t, 1, embedder.qryCalls)
}

func TestOpenReusesSnapshotWithoutReembedding(t *testing.T) {
	corpusDir := writeCorpus(t, map[string]string{"doc.txt": "alpha"})
	builder := &fakeEmbedder{
		vectors: map[string][]float32{"alpha": {1, 0, 0}},
		query:   []float32{1, 0, 0},
	}
	indexDir := t.TempDir()

	first := NewAdapter(builder, testConfig(), nil)
	require.NoError(t, first.Build(context.Background(), corpusDir, indexDir))

	// A fresh adapter over the same index dir must load the snapshot and
	// never touch the corpus or the document embedder.
	reopener := &fakeEmbedder{query: []float32{1, 0, 0}}
	second := NewAdapter(reopener, testConfig(), nil)
	require.NoError(t, second.Open(context.Background(), corpusDir, indexDir))
	assert.Equal(t, 1, second.Len())
	assert.Equal(t, 0, reopener.docCalls)

	results, err := second.Query(context.Background(), "anything", 1, 4)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "doc.txt", results[0].Source)
}

func TestOpenFallsBackToBuild(t *testing.T) {
	corpusDir := writeCorpus(t, map[string]string{"doc.txt": "alpha"})
	embedder := &fakeEmbedder{
		vectors: map[string][]float32{"alpha": {1, 0, 0}},
	}
	adapter := NewAdapter(embedder, testConfig(), nil)

	indexDir := t.TempDir() // no snapshot inside
	require.NoError(t, adapter.Open(context.Background(), corpusDir, indexDir))
	assert.Equal(t, 1, embedder.docCalls)

	_, err := os.Stat(filepath.Join(indexDir, snapshotFile))
	assert.NoError(t, err, "fallback build should persist a snapshot")
}

func TestBuildSurfacesExhaustedEmbedding(t *testing.T) {
	corpusDir := writeCorpus(t, map[string]string{"doc.txt": "alpha"})
	adapter := NewAdapter(&fakeEmbedder{fail: true}, testConfig(), nil)

	err := adapter.Build(context.Background(), corpusDir, t.TempDir())
	require.Error(t, err)

	var exhausted *retry.ExhaustedError
	assert.True(t, errors.As(err, &exhausted), "embedding failures must surface as ExhaustedError, got %v", err)
}

func TestQueryChunkingOfLargeDocuments(t *testing.T) {
	// One document larger than the chunk size produces multiple chunks.
	content := ""
	for i := 0; i < 50; i++ {
		content += fmt.Sprintf("paragraph %d with some filler text to occupy space. ", i)
	}
	corpusDir := writeCorpus(t, map[string]string{"big.txt": content})

	cfg := testConfig()
	cfg.ChunkSize = 200
	cfg.ChunkOverlap = 50

	embedder := &fakeEmbedder{query: []float32{0, 0, 1}}
	adapter := NewAdapter(embedder, cfg, nil)
	require.NoError(t, adapter.Build(context.Background(), corpusDir, t.TempDir()))

	assert.Greater(t, adapter.Len(), 1)
	assert.Equal(t, adapter.Len(), embedder.docCalls)
}
