package risk

import (
	"context"
	"fmt"
	"time"

	"riskwatch/internal/model"

	"github.com/google/uuid"
)

// Notifier delivers alerts to counselors. Implementations are best effort.
type Notifier interface {
	Notify(ctx context.Context, alert model.Alert) error
}

// NotifierFunc adapts a function to Notifier
type NotifierFunc func(ctx context.Context, alert model.Alert) error

func (f NotifierFunc) Notify(ctx context.Context, alert model.Alert) error {
	return f(ctx, alert)
}

// ShouldAlert is true iff the tier is Critical
func ShouldAlert(tier model.RiskTier) bool {
	return tier == model.TierCritical
}

// InterventionMessage is the notice sent for a Critical dropout risk
func InterventionMessage(name string) string {
	return fmt.Sprintf("ALERT: Immediate intervention required for %s. High dropout risk detected.", name)
}

// CrisisMessage is the notice sent for a flagged journal entry
func CrisisMessage(name string) string {
	return fmt.Sprintf("EMERGENCY ALERT: Mental health crisis detected for %s.", name)
}

// NewAlert builds an alert with a fresh id and timestamp
func NewAlert(kind model.AlertKind, studentID, studentName, message string) model.Alert {
	return model.Alert{
		ID:          uuid.New().String(),
		Kind:        kind,
		StudentID:   studentID,
		StudentName: studentName,
		Message:     message,
		CreatedAt:   time.Now().UTC(),
	}
}

// Emit calls n exactly once. Errors and panics are logged by the caller's
// prefix and swallowed, so a failed notification never fails the request.
func Emit(ctx context.Context, n Notifier, alert model.Alert) (err error) {
	if n == nil {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("notifier panic: %v", r)
		}
	}()
	return n.Notify(ctx, alert)
}
