package utils

import (
	"strings"
	"testing"
)

func TestSplitTextShortInput(t *testing.T) {
	chunks := SplitText("short text", 100, 10)
	if len(chunks) != 1 || chunks[0] != "short text" {
		t.Errorf("short input should come back whole, got %v", chunks)
	}
}

func TestSplitTextOverlap(t *testing.T) {
	text := strings.Repeat("abcdefghij", 10) // 100 chars
	chunks := SplitText(text, 40, 10)

	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}

	// Every chunk except possibly the last has the configured size.
	for i, c := range chunks[:len(chunks)-1] {
		if len(c) != 40 {
			t.Errorf("chunk %d length = %d, want 40", i, len(c))
		}
	}

	// Consecutive chunks share the overlap region.
	first := chunks[0]
	second := chunks[1]
	if first[len(first)-10:] != second[:10] {
		t.Errorf("chunks do not overlap: %q vs %q", first[len(first)-10:], second[:10])
	}
}

func TestSplitTextOverlapLargerThanChunk(t *testing.T) {
	text := strings.Repeat("x", 50)
	chunks := SplitText(text, 10, 20)
	// Falls back to non-overlapping steps instead of looping forever.
	if len(chunks) != 5 {
		t.Errorf("chunks = %d, want 5", len(chunks))
	}
}

func TestSplitTextNonPositiveChunkSize(t *testing.T) {
	text := strings.Repeat("y", 30)
	// A misconfigured chunk size must not spin forever; the text comes back whole.
	for _, size := range []int{0, -5} {
		chunks := SplitText(text, size, 10)
		if len(chunks) != 1 || chunks[0] != text {
			t.Errorf("SplitText(size=%d) = %d chunks, want the input unchanged", size, len(chunks))
		}
	}
}

func TestSplitTextCoversWholeInput(t *testing.T) {
	text := strings.Repeat("0123456789", 7)
	chunks := SplitText(text, 30, 5)
	last := chunks[len(chunks)-1]
	if !strings.HasSuffix(text, last) {
		t.Errorf("last chunk %q is not a suffix of the input", last)
	}
}
