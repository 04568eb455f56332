package screening

import (
	"context"
	"errors"
	"testing"
	"time"

	"riskwatch/internal/llm"
	"riskwatch/internal/model"

	"github.com/stretchr/testify/assert"
)

type blockingProvider struct{}

func (blockingProvider) Generate(ctx context.Context, _ llm.Request) (*llm.Response, error) {
	select {} // ignores ctx entirely
}

func (blockingProvider) ModelID() string { return "blocking" }

type panickingProvider struct{}

func (panickingProvider) Generate(context.Context, llm.Request) (*llm.Response, error) {
	panic("boom")
}

func (panickingProvider) ModelID() string { return "panicking" }

func TestScreenerUsesModelResult(t *testing.T) {
	p := llm.NewMockProvider(llm.MockResponse{Text: "```json\n{\"distress_score\": 0.35, \"crisis_flag\": false}\n```"})
	s := NewScreener(p, nil, time.Second)

	res := s.Screen(context.Background(), "I have a lot of exams this week")
	assert.Equal(t, model.SourceModel, res.Source)
	assert.InDelta(t, 0.35, res.DistressScore, 1e-12)
	assert.False(t, res.CrisisFlag)
	assert.Equal(t, 1, p.CallCount())
}

func TestScreenerFallsBack(t *testing.T) {
	text := "I feel hopeless and SAD, I want to KILL MYSELF"

	tests := []struct {
		name     string
		provider llm.Provider
	}{
		{"no provider", nil},
		{"unreachable", llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("dial tcp")}})},
		{"rate limited", llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrRateLimit{}})},
		{"malformed", llm.NewMockProvider(llm.MockResponse{Text: "I think they are fine"})},
		{"missing key", llm.NewMockProvider(llm.MockResponse{Text: `{"distress_score": 0.1}`})},
		{"wrong type", llm.NewMockProvider(llm.MockResponse{Text: `{"distress_score": "low", "crisis_flag": false}`})},
		{"timeout", blockingProvider{}},
		{"panic", panickingProvider{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScreener(tt.provider, nil, 50*time.Millisecond)
			res := s.Screen(context.Background(), text)
			assert.Equal(t, model.SourceFallback, res.Source)
			assert.True(t, res.CrisisFlag)
			assert.InDelta(t, 0.2, res.DistressScore, 1e-12)
		})
	}
}

func TestKeywordScreener(t *testing.T) {
	k := NewKeywordScreener(nil, nil)

	tests := []struct {
		text     string
		distress float64
		crisis   bool
	}{
		{"", 0, false},
		{"   ", 0, false},
		{"Great week, aced my project", 0, false},
		{"I might Kill Myself", 0, true},
		{"sad and lonely", 0.4, false},
		{"sad depressed stressed angry lonely fail", 1.0, false},
		{"sad sad sad", 0.2, false},
		{"goodbye everyone", 0, true},
		{"\x00\xff😀", 0, false},
	}
	for _, tt := range tests {
		res := k.Screen(tt.text)
		assert.InDelta(t, tt.distress, res.DistressScore, 1e-12, tt.text)
		assert.Equal(t, tt.crisis, res.CrisisFlag, tt.text)
		assert.Equal(t, model.SourceFallback, res.Source)
	}
}

func TestKeywordScreenerCustomLists(t *testing.T) {
	k := NewKeywordScreener([]string{"  RED FLAG "}, []string{"meh"})
	res := k.Screen("meh, red flag")
	assert.True(t, res.CrisisFlag)
	assert.InDelta(t, 0.2, res.DistressScore, 1e-12)
}
