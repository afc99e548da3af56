// Package reducer bounds article bodies to the classifier's input budget.
//
// Bodies that already fit are passed through untouched. Longer bodies are cut
// into overlapping word windows; each window is summarized on its own and the
// summaries are joined in their original order. Without a summarizer the body
// is truncated to a fixed prefix instead.
package reducer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"MismatchScanner/internal/logging"
	"MismatchScanner/internal/ports"
)

// Options holds the reducer limits. Zero values are replaced by DefaultOptions.
type Options struct {
	TokenBudget         int
	WindowSize          int
	Stride              int
	FallbackChars       int
	WindowFallbackChars int
}

// DefaultOptions matches the 512-token classifier and 300/150 word windows.
func DefaultOptions() Options {
	return Options{
		TokenBudget:         512,
		WindowSize:          300,
		Stride:              150,
		FallbackChars:       1000,
		WindowFallbackChars: 200,
	}
}

// Reducer shrinks a body before scoring.
type Reducer struct {
	opts       Options
	tokenizer  ports.Tokenizer
	summarizer ports.Summarizer
	logger     *slog.Logger
}

// New validates options and wires the oracles. A nil tokenizer counts words;
// a nil summarizer selects prefix truncation for oversized bodies.
func New(opts Options, tokenizer ports.Tokenizer, summarizer ports.Summarizer, logger *slog.Logger) (*Reducer, error) {
	opts = opts.withDefaults()
	if opts.Stride >= opts.WindowSize {
		return nil, fmt.Errorf("stride %d must be smaller than window size %d", opts.Stride, opts.WindowSize)
	}
	if tokenizer == nil {
		tokenizer = WordTokenizer{}
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &Reducer{
		opts:       opts,
		tokenizer:  tokenizer,
		summarizer: summarizer,
		logger:     logger,
	}, nil
}

// Reduce returns a body that fits the classifier budget. It never fails:
// every oracle error degrades to truncation of the affected text.
func (r *Reducer) Reduce(ctx context.Context, body string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}

	length, err := r.tokenizer.TokenLength(ctx, body)
	if err != nil {
		r.logger.WarnContext(ctx, "token length failed, truncating body", "error", err)
		return truncateRunes(body, r.opts.FallbackChars)
	}
	if length <= r.opts.TokenBudget {
		return body
	}

	if r.summarizer == nil {
		return truncateRunes(body, r.opts.FallbackChars)
	}

	words := strings.Fields(body)
	windows := Windows(len(words), r.opts.WindowSize, r.opts.Stride)
	summaries := make([]string, 0, len(windows))
	for i, w := range windows {
		chunk := strings.Join(words[w.Start:w.End], " ")
		summaries = append(summaries, r.summarizeWindow(ctx, i, chunk))
	}

	r.logger.DebugContext(ctx, "body reduced",
		"tokens", length,
		"words", len(words),
		"windows", len(windows))

	return strings.Join(summaries, " ")
}

func (r *Reducer) summarizeWindow(ctx context.Context, index int, chunk string) string {
	summary, err := r.summarizer.Summarize(ctx, chunk)
	if err != nil {
		r.logger.WarnContext(ctx, "window summarization failed, using prefix",
			"window", index,
			"error", err)
		return truncateRunes(chunk, r.opts.WindowFallbackChars)
	}
	summary = strings.TrimSpace(summary)
	if summary == "" {
		return truncateRunes(chunk, r.opts.WindowFallbackChars)
	}
	return summary
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.TokenBudget <= 0 {
		o.TokenBudget = def.TokenBudget
	}
	if o.WindowSize <= 0 {
		o.WindowSize = def.WindowSize
	}
	if o.Stride <= 0 {
		o.Stride = def.Stride
	}
	if o.FallbackChars <= 0 {
		o.FallbackChars = def.FallbackChars
	}
	if o.WindowFallbackChars <= 0 {
		o.WindowFallbackChars = def.WindowFallbackChars
	}
	return o
}

func truncateRunes(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}
