package chunker

import (
	"errors"
	"strings"
	"testing"
)

func TestSplit_RejectsBadWindow(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		overlap int
	}{
		{"overlap equals size", 10, 10},
		{"overlap exceeds size", 10, 15},
		{"zero size", 0, 0},
		{"negative overlap", 10, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Split("some words here", tt.size, tt.overlap)
			if !errors.Is(err, ErrBadWindow) {
				t.Errorf("Split(size=%d, overlap=%d) err = %v, want ErrBadWindow", tt.size, tt.overlap, err)
			}
		})
	}
}

func TestSplit_SingleChunkWhenSizeCoversInput(t *testing.T) {
	text := "junior backend engineer with go and redis"
	pieces, err := Split(text, 100, 0)
	if err != nil {
		t.Fatalf("Split failed: %v", err)
	}
	if len(pieces) != 1 {
		t.Fatalf("expected 1 piece, got %d", len(pieces))
	}
	if pieces[0].Text != text || pieces[0].Order != 0 {
		t.Errorf("got %+v", pieces[0])
	}
}

func TestSplit_ReconstructsTokenSequence(t *testing.T) {
	words := make([]string, 57)
	for i := range words {
		words[i] = string(rune('a' + i%26))
	}
	text := strings.Join(words, " ")

	size, overlap := 10, 3
	pieces, err := Split(text, size, overlap)
	if err != nil {
		t.Fatalf("Split failed: %v", err)
	}

	// Concatenating each window's non-overlapping token range rebuilds the input.
	var rebuilt []string
	for i, p := range pieces {
		if p.Order != i {
			t.Fatalf("piece %d has order %d", i, p.Order)
		}
		tokens := strings.Fields(p.Text)
		if i == 0 {
			rebuilt = append(rebuilt, tokens...)
			continue
		}
		if len(tokens) > overlap {
			rebuilt = append(rebuilt, tokens[overlap:]...)
		}
	}
	if got := strings.Join(rebuilt, " "); got != text {
		t.Errorf("reconstruction mismatch:\ngot  %q\nwant %q", got, text)
	}
}

func TestSplit_EmptyInput(t *testing.T) {
	pieces, err := Split("", 10, 2)
	if err != nil {
		t.Fatalf("empty input returned error: %v", err)
	}
	if len(pieces) != 0 {
		t.Errorf("expected no pieces, got %d", len(pieces))
	}
}
