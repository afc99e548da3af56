package reducer

import (
	"context"
	"strings"
)

// Window is a half-open word index range [Start, End).
type Window struct {
	Start int
	End   int
}

// Windows splits n words into windows of size words advancing by stride.
// The last window always ends at n, so consecutive windows overlap by
// size-stride words and their union is [0, n).
func Windows(n, size, stride int) []Window {
	if n <= 0 || size <= 0 || stride <= 0 {
		return nil
	}
	if n <= size {
		return []Window{{Start: 0, End: n}}
	}

	var out []Window
	for start := 0; start < n; start += stride {
		end := start + size
		if end >= n {
			out = append(out, Window{Start: start, End: n})
			break
		}
		out = append(out, Window{Start: start, End: end})
	}
	return out
}

// WordTokenizer approximates token length by whitespace-separated words.
type WordTokenizer struct{}

// TokenLength counts words in text.
func (WordTokenizer) TokenLength(_ context.Context, text string) (int, error) {
	return len(strings.Fields(text)), nil
}
