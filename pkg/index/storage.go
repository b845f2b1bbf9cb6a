package index

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const snapshotFile = "index.json"

type document struct {
	source  string
	content string
}

// loadCorpus reads every regular file directly under dir. Subdirectories and
// unreadable entries are skipped.
func loadCorpus(dir string) ([]document, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrEmptyCorpus
		}
		return nil, fmt.Errorf("read corpus dir: %w", err)
	}

	var docs []document
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			continue
		}
		if len(data) == 0 {
			continue
		}
		docs = append(docs, document{
			source:  entry.Name(),
			content: string(data),
		})
	}

	return docs, nil
}

type snapshot struct {
	Chunks []Chunk `json:"chunks"`
}

// save writes the chunk snapshot with a temp-file rename so a crashed write
// never leaves a truncated index behind.
func (a *Adapter) save(indexDir string) error {
	if err := os.MkdirAll(indexDir, 0755); err != nil {
		return fmt.Errorf("create index dir: %w", err)
	}

	data, err := json.Marshal(snapshot{Chunks: a.chunks})
	if err != nil {
		return fmt.Errorf("marshal index: %w", err)
	}

	target := filepath.Join(indexDir, snapshotFile)
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write index: %w", err)
	}
	if err := os.Rename(tmp, target); err != nil {
		return fmt.Errorf("replace index: %w", err)
	}
	return nil
}

func loadSnapshot(path string) ([]Chunk, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read index snapshot: %w", err)
	}
	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parse index snapshot: %w", err)
	}
	return snap.Chunks, nil
}
