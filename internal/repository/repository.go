package repository

import (
	"context"
	"errors"
	"time"

	"riskwatch/internal/model"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a record does not exist
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when a unique key is already taken
var ErrDuplicate = errors.New("duplicate key")

// StudentRepo persists students
type StudentRepo interface {
	Create(ctx context.Context, s *model.Student) error
	GetByID(ctx context.Context, id string) (*model.Student, error)
	List(ctx context.Context, skip, limit int) ([]*model.Student, error)
	UpdateFeatures(ctx context.Context, id string, fv model.FeatureVector) (*model.Student, error)
	Count(ctx context.Context) (int64, error)
}

// AssessmentRepo persists risk assessments. Save writes the assessment and
// its audit row in one transaction.
type AssessmentRepo interface {
	Save(ctx context.Context, a *model.RiskAssessment, audit *model.AuditLog) error
	// QueryRecent returns at most limit assessments, newest first
	QueryRecent(ctx context.Context, studentID string, limit int) ([]*model.RiskAssessment, error)
	CountByTier(ctx context.Context) (map[model.RiskTier]int64, error)
}

// JournalRepo persists screened journal entries, with the audit row in the
// same transaction.
type JournalRepo interface {
	Save(ctx context.Context, e *model.JournalEntry, audit *model.AuditLog) error
	ListByStudent(ctx context.Context, studentID string, limit int) ([]*model.JournalEntry, error)
	CountCrisisSince(ctx context.Context, since time.Time) (int64, error)
}

// UserRepo persists accounts
type UserRepo interface {
	Create(ctx context.Context, u *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
}

// AuditRepo reads the audit trail
type AuditRepo interface {
	List(ctx context.Context, limit int) ([]*model.AuditLog, error)
}

// Store bundles every repository of one backend
type Store struct {
	Students    StudentRepo
	Assessments AssessmentRepo
	Journals    JournalRepo
	Users       UserRepo
	Audit       AuditRepo
	Close       func(ctx context.Context) error
}

// StampID assigns a fresh id when empty
func StampID(id *string) {
	if *id == "" {
		*id = uuid.New().String()
	}
}

// StampTime assigns the current UTC time when zero
func StampTime(t *time.Time) {
	if t.IsZero() {
		*t = time.Now().UTC()
	}
}

// PrepareAudit fills id and timestamp of an audit row
func PrepareAudit(audit *model.AuditLog, subjectID string, at time.Time) {
	StampID(&audit.ID)
	if audit.SubjectID == "" {
		audit.SubjectID = subjectID
	}
	if audit.Timestamp.IsZero() {
		audit.Timestamp = at
	}
}

// ClampLimit bounds a page size to [1, max]
func ClampLimit(limit, max int) int {
	if limit <= 0 || limit > max {
		return max
	}
	return limit
}
