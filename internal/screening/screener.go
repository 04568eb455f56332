package screening

import (
	"context"
	"fmt"
	"log"
	"time"

	"riskwatch/internal/llm"
	"riskwatch/internal/model"
)

// DefaultTimeout bounds the external call when none is configured
const DefaultTimeout = 8 * time.Second

const systemPrompt = `You are a mental-health screening assistant for student counselors.
Analyze the journal entry you are given and respond with a JSON object only, no prose:
{"distress_score": <number between 0 and 1>, "crisis_flag": <true|false>}
crisis_flag is true only when the text indicates suicidal ideation or intent to self-harm.`

// Screener screens journal text with an external model and falls back to
// keyword matching on any failure, including timeout.
type Screener struct {
	provider llm.Provider
	fallback *KeywordScreener
	timeout  time.Duration
}

// NewScreener builds a screener. provider may be nil, in which case every
// call uses the keyword fallback.
func NewScreener(provider llm.Provider, fallback *KeywordScreener, timeout time.Duration) *Screener {
	if fallback == nil {
		fallback = NewKeywordScreener(nil, nil)
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Screener{provider: provider, fallback: fallback, timeout: timeout}
}

// Screen never fails; the result's Source reports which path produced it
func (s *Screener) Screen(ctx context.Context, text string) model.TextScreenResult {
	if s.provider == nil {
		return s.fallback.Screen(text)
	}

	res, err := s.screenExternal(ctx, text)
	if err != nil {
		log.Printf("[Screener] Using keyword fallback: %v", err)
		return s.fallback.Screen(text)
	}
	return res
}

func (s *Screener) screenExternal(ctx context.Context, text string) (model.TextScreenResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	type outcome struct {
		resp *llm.Response
		err  error
	}
	// A provider that ignores ctx must not hang the request
	done := make(chan outcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- outcome{err: fmt.Errorf("provider panic: %v", r)}
			}
		}()
		resp, err := s.provider.Generate(ctx, llm.Request{
			System: systemPrompt,
			Prompt: "Journal entry:\n" + text,
			JSON:   true,
		})
		done <- outcome{resp: resp, err: err}
	}()

	select {
	case <-ctx.Done():
		return model.TextScreenResult{}, fmt.Errorf("screening call: %w", ctx.Err())
	case out := <-done:
		if out.err != nil {
			return model.TextScreenResult{}, out.err
		}
		if out.resp == nil {
			return model.TextScreenResult{}, fmt.Errorf("%w: nil response", ErrUnparseable)
		}
		return ParseResponse(out.resp.Text)
	}
}
