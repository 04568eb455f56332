package llm

import (
	"context"
	"log"
	"time"
)

// LoggingProvider logs latency and failures of every call
type LoggingProvider struct {
	inner Provider
}

// WithLogging wraps a Provider with request logging. Wrapping twice is a no-op.
func WithLogging(p Provider) Provider {
	if lp, ok := p.(*LoggingProvider); ok {
		return lp
	}
	return &LoggingProvider{inner: p}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := l.inner.Generate(ctx, req)
	if err != nil {
		log.Printf("[LLM] %s failed after %s: %v", l.inner.ModelID(), time.Since(start).Round(time.Millisecond), err)
		return nil, err
	}
	log.Printf("[LLM] %s answered in %s", resp.Model, time.Since(start).Round(time.Millisecond))
	return resp, nil
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}
