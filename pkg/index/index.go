package index

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/Ines207/ARI/pkg/embedding"
	"github.com/Ines207/ARI/pkg/retry"
	"github.com/Ines207/ARI/pkg/utils"
)

// ErrEmptyCorpus means the corpus directory is missing or holds no documents.
// Fatal at startup: there is nothing to ground answers in.
var ErrEmptyCorpus = errors.New("corpus directory is empty or missing")

// Chunk is one embedded slice of a corpus document.
type Chunk struct {
	Text   string    `json:"text"`
	Source string    `json:"source"`
	Vector []float32 `json:"vector"`
}

// Result is a retrieved chunk with its relevance score.
type Result struct {
	Text   string
	Source string
	Score  float32
}

// Config holds the chunking and retry knobs. Chunk size and overlap are
// configuration, not business logic.
type Config struct {
	ChunkSize     int
	ChunkOverlap  int
	RetryAttempts int
	RetryDelay    time.Duration
}

// Adapter abstracts the similarity-search backend: build once from a corpus
// directory, persist, reopen without re-embedding, query with MMR selection.
type Adapter struct {
	embedder embedding.EmbeddingProvider
	cfg      Config
	logger   *log.Logger
	chunks   []Chunk
}

func NewAdapter(embedder embedding.EmbeddingProvider, cfg Config, logger *log.Logger) *Adapter {
	if logger == nil {
		logger = log.New(os.Stdout, "[INDEX] ", log.LstdFlags)
	}
	return &Adapter{
		embedder: embedder,
		cfg:      cfg,
		logger:   logger,
	}
}

// Build loads every document under corpusDir, chunks and embeds them, and
// persists the snapshot under indexDir.
func (a *Adapter) Build(ctx context.Context, corpusDir, indexDir string) error {
	docs, err := loadCorpus(corpusDir)
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		return ErrEmptyCorpus
	}

	a.logger.Printf("[BUILD] Embedding %d documents (chunk=%d overlap=%d)",
		len(docs), a.cfg.ChunkSize, a.cfg.ChunkOverlap)

	var chunks []Chunk
	for _, doc := range docs {
		pieces := utils.SplitText(doc.content, a.cfg.ChunkSize, a.cfg.ChunkOverlap)
		for _, piece := range pieces {
			text := piece
			vector, err := retry.Do(ctx, a.cfg.RetryAttempts, a.cfg.RetryDelay,
				func(ctx context.Context) ([]float32, error) {
					return a.embedder.Generate(ctx, text, embedding.TaskDocument)
				})
			if err != nil {
				return fmt.Errorf("embed chunk of %s: %w", doc.source, err)
			}
			chunks = append(chunks, Chunk{
				Text:   text,
				Source: doc.source,
				Vector: vector,
			})
		}
	}

	a.chunks = chunks
	a.logger.Printf("[BUILD] Index built: %d chunks", len(chunks))

	return a.save(indexDir)
}

// Open loads a previously persisted index. When no snapshot exists it falls
// back to a full Build from the corpus directory.
func (a *Adapter) Open(ctx context.Context, corpusDir, indexDir string) error {
	snapshot := filepath.Join(indexDir, snapshotFile)
	if _, err := os.Stat(snapshot); err != nil {
		if os.IsNotExist(err) {
			a.logger.Printf("[OPEN] No persisted index at %s, building from corpus", snapshot)
			return a.Build(ctx, corpusDir, indexDir)
		}
		return err
	}

	chunks, err := loadSnapshot(snapshot)
	if err != nil {
		return err
	}

	a.chunks = chunks
	a.logger.Printf("[OPEN] Index loaded: %d chunks", len(chunks))
	return nil
}

// Len reports the number of indexed chunks.
func (a *Adapter) Len() int {
	return len(a.chunks)
}

// Query embeds the text, scores every chunk by cosine similarity, keeps the
// fetchK best candidates and then selects k of them with maximal marginal
// relevance so near-duplicate chunks do not crowd out novel ones.
// Top-k governs: no similarity floor is applied.
func (a *Adapter) Query(ctx context.Context, text string, k, fetchK int) ([]Result, error) {
	if len(a.chunks) == 0 {
		return nil, fmt.Errorf("index not built")
	}
	if k <= 0 {
		return nil, nil
	}
	if fetchK < k {
		fetchK = k
	}

	queryVec, err := retry.Do(ctx, a.cfg.RetryAttempts, a.cfg.RetryDelay,
		func(ctx context.Context) ([]float32, error) {
			return a.embedder.Generate(ctx, text, embedding.TaskQuery)
		})
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	type scored struct {
		idx   int
		score float32
	}
	candidates := make([]scored, 0, len(a.chunks))
	for i := range a.chunks {
		candidates = append(candidates, scored{idx: i, score: dot(queryVec, a.chunks[i].Vector)})
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})
	if len(candidates) > fetchK {
		candidates = candidates[:fetchK]
	}

	// MMR selection over the candidate pool.
	const lambda = float32(0.5)
	var selected []scored
	remaining := candidates
	for len(selected) < k && len(remaining) > 0 {
		bestIdx := -1
		bestValue := float32(0)
		for i, cand := range remaining {
			redundancy := float32(0)
			for _, sel := range selected {
				if sim := dot(a.chunks[cand.idx].Vector, a.chunks[sel.idx].Vector); sim > redundancy {
					redundancy = sim
				}
			}
			value := lambda*cand.score - (1-lambda)*redundancy
			if bestIdx == -1 || value > bestValue {
				bestIdx = i
				bestValue = value
			}
		}
		selected = append(selected, remaining[bestIdx])
		remaining = append(remaining[:bestIdx], remaining[bestIdx+1:]...)
	}

	results := make([]Result, 0, len(selected))
	for _, s := range selected {
		results = append(results, Result{
			Text:   a.chunks[s.idx].Text,
			Source: a.chunks[s.idx].Source,
			Score:  s.score,
		})
	}

	a.logger.Printf("[QUERY] k=%d fetchK=%d -> %d results", k, fetchK, len(results))
	return results, nil
}

func dot(a, b []float32) float32 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float32
	for i := 0; i < n; i++ {
		sum += a[i] * b[i]
	}
	return sum
}
