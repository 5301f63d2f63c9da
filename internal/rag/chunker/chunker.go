package chunker

import (
	"errors"
	"strings"
)

// ErrBadWindow rejects overlap >= size: the window would advance by zero or a
// negative step and never terminate.
var ErrBadWindow = errors.New("chunker: overlap must be smaller than size")

type Piece struct {
	Text  string `json:"text"`
	Order int    `json:"order"`
}

// Split tokenizes on whitespace and emits sliding windows of size tokens,
// advancing size-overlap tokens per step. Order starts at 0 and increments per
// window. Empty input yields an empty slice.
func Split(text string, size int, overlap int) ([]Piece, error) {
	if size <= 0 || overlap < 0 || overlap >= size {
		return nil, ErrBadWindow
	}

	words := strings.Fields(text)
	var pieces []Piece
	step := size - overlap
	order := 0
	for i := 0; i < len(words); i += step {
		end := i + size
		if end > len(words) {
			end = len(words)
		}
		pieces = append(pieces, Piece{
			Text:  strings.Join(words[i:end], " "),
			Order: order,
		})
		order++
	}
	return pieces, nil
}
