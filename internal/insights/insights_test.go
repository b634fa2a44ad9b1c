package insights

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"preetosbot/internal/config"
)

type stubSummarizer struct {
	text string
	err  error
}

func (s stubSummarizer) Summarize(ctx context.Context, structured string) (string, error) {
	return s.text, s.err
}

func TestNewWithoutAPIKey(t *testing.T) {
	c := New(config.AnthropicConfig{}, nil)
	assert.Nil(t, c, "no key means no summary service")
}

func TestBestEffortNilSummarizer(t *testing.T) {
	got := BestEffort(context.Background(), nil, "report text", nil)
	assert.Equal(t, Unavailable, got)
}

func TestBestEffortFailureDegrades(t *testing.T) {
	got := BestEffort(context.Background(), stubSummarizer{err: assert.AnError}, "report text", nil)
	assert.Equal(t, Unavailable, got)
}

func TestBestEffortSuccess(t *testing.T) {
	got := BestEffort(context.Background(), stubSummarizer{text: "A strong day."}, "report text", nil)
	assert.Equal(t, "A strong day.", got)
}
