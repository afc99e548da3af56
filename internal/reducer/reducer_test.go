package reducer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"MismatchScanner/internal/mocks"
)

func words(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = fmt.Sprintf("w%d", i)
	}
	return strings.Join(parts, " ")
}

type echoSummarizer struct {
	calls []string
	fail  map[int]bool
}

func (e *echoSummarizer) Summarize(_ context.Context, text string) (string, error) {
	idx := len(e.calls)
	e.calls = append(e.calls, text)
	if e.fail[idx] {
		return "", errors.New("model overloaded")
	}
	return fmt.Sprintf("S%d", idx), nil
}

func TestWindowsCoverFullRange(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct{ size, stride int }{{300, 150}, {10, 3}, {5, 4}, {7, 1}} {
		for n := 1; n <= 4*tc.size+3; n++ {
			windows := Windows(n, tc.size, tc.stride)
			require.NotEmpty(t, windows)

			assert.Equal(t, 0, windows[0].Start)
			assert.Equal(t, n, windows[len(windows)-1].End, "n=%d size=%d stride=%d", n, tc.size, tc.stride)
			for i, w := range windows {
				assert.LessOrEqual(t, w.End-w.Start, tc.size)
				assert.Less(t, w.Start, w.End)
				if i > 0 {
					assert.LessOrEqual(t, w.Start, windows[i-1].End, "gap between windows %d and %d", i-1, i)
					assert.Greater(t, w.Start, windows[i-1].Start)
				}
			}
		}
	}
}

func TestWindowsSourceLayout(t *testing.T) {
	t.Parallel()

	got := Windows(700, 300, 150)
	want := []Window{{0, 300}, {150, 450}, {300, 600}, {450, 700}}
	assert.Equal(t, want, got)
	assert.Nil(t, Windows(0, 300, 150))
}

func TestNewRejectsStrideNotBelowWindow(t *testing.T) {
	t.Parallel()

	_, err := New(Options{WindowSize: 100, Stride: 100}, nil, nil, nil)
	assert.Error(t, err)
}

func TestReduceIdentityWithinBudget(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	summarizer := mocks.NewMockSummarizer(ctrl)

	r, err := New(Options{TokenBudget: 50}, nil, summarizer, nil)
	require.NoError(t, err)

	for _, body := range []string{"short body", words(50), "  spaced\tbody\n"} {
		assert.Equal(t, body, r.Reduce(context.Background(), body))
	}
}

func TestReduceEmptyBodySkipsOracles(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	tokenizer := mocks.NewMockTokenizer(ctrl)
	summarizer := mocks.NewMockSummarizer(ctrl)

	r, err := New(DefaultOptions(), tokenizer, summarizer, nil)
	require.NoError(t, err)

	assert.Equal(t, "", r.Reduce(context.Background(), ""))
	assert.Equal(t, "", r.Reduce(context.Background(), " \n\t "))
}

func TestReduceSummarizesWindowsInOrder(t *testing.T) {
	t.Parallel()

	summarizer := &echoSummarizer{}
	r, err := New(Options{TokenBudget: 10, WindowSize: 10, Stride: 5}, nil, summarizer, nil)
	require.NoError(t, err)

	got := r.Reduce(context.Background(), words(22))

	assert.Equal(t, "S0 S1 S2 S3", got)
	require.Len(t, summarizer.calls, 4)
	assert.True(t, strings.HasPrefix(summarizer.calls[0], "w0 "))
	assert.True(t, strings.HasPrefix(summarizer.calls[1], "w5 "))
	assert.True(t, strings.HasSuffix(summarizer.calls[3], " w21"))
}

func TestReduceWindowFailureFallsBackLocally(t *testing.T) {
	t.Parallel()

	summarizer := &echoSummarizer{fail: map[int]bool{1: true}}
	r, err := New(Options{TokenBudget: 10, WindowSize: 10, Stride: 5, WindowFallbackChars: 5}, nil, summarizer, nil)
	require.NoError(t, err)

	got := r.Reduce(context.Background(), words(22))

	assert.Equal(t, "S0 w5 w6 S2 S3", got)
}

func TestReduceWithoutSummarizerTruncates(t *testing.T) {
	t.Parallel()

	r, err := New(Options{TokenBudget: 3, FallbackChars: 9}, nil, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, "가나다 라마바 사", r.Reduce(context.Background(), "가나다 라마바 사아자 차카"))
}

func TestReduceTokenizerFailureTruncates(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	tokenizer := mocks.NewMockTokenizer(ctrl)
	tokenizer.EXPECT().TokenLength(gomock.Any(), gomock.Any()).Return(0, errors.New("tokenizer offline"))

	r, err := New(Options{FallbackChars: 4}, tokenizer, &echoSummarizer{}, nil)
	require.NoError(t, err)

	assert.Equal(t, "abcd", r.Reduce(context.Background(), "abcdefgh"))
}

func TestReduceUsesTokenizerBudget(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	tokenizer := mocks.NewMockTokenizer(ctrl)
	tokenizer.EXPECT().TokenLength(gomock.Any(), "two words").Return(600, nil)

	summarizer := mocks.NewMockSummarizer(ctrl)
	summarizer.EXPECT().Summarize(gomock.Any(), "two words").Return(" summary ", nil)

	r, err := New(DefaultOptions(), tokenizer, summarizer, nil)
	require.NoError(t, err)

	assert.Equal(t, "summary", r.Reduce(context.Background(), "two words"))
}
