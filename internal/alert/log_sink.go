package alert

import (
	"context"
	"log"

	"riskwatch/internal/model"
)

// LogSink writes alerts to the process log
type LogSink struct{}

func (LogSink) Name() string { return "log" }

func (LogSink) Deliver(_ context.Context, a model.Alert) error {
	log.Printf("[Alert] %s (%s, student=%s)", a.Message, a.Kind, a.StudentID)
	return nil
}
