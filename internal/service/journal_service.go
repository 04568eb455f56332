package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"riskwatch/internal/model"
	"riskwatch/internal/repository"
	"riskwatch/internal/risk"
	"riskwatch/internal/screening"
)

// maxJournalLen caps stored journal text
const maxJournalLen = 10000

// JournalService screens and stores journal entries
type JournalService struct {
	screener *screening.Screener
	notifier risk.Notifier
	students repository.StudentRepo
	journals repository.JournalRepo
}

// NewJournalService creates a new journal service. notifier may be nil.
func NewJournalService(screener *screening.Screener, notifier risk.Notifier, students repository.StudentRepo, journals repository.JournalRepo) *JournalService {
	return &JournalService{screener: screener, notifier: notifier, students: students, journals: journals}
}

// Screen analyzes text without persisting it
func (s *JournalService) Screen(ctx context.Context, text string) model.TextScreenResult {
	return s.screener.Screen(ctx, text)
}

// Log screens text for a student, stores the entry with its audit row and
// raises one crisis alert when flagged. Alert failures are only logged.
func (s *JournalService) Log(ctx context.Context, actorID, studentID, text string) (*model.JournalEntry, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: text is required", ErrValidation)
	}
	if len(text) > maxJournalLen {
		return nil, fmt.Errorf("%w: text exceeds %d bytes", ErrValidation, maxJournalLen)
	}

	student, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	res := s.screener.Screen(ctx, text)
	entry := &model.JournalEntry{
		StudentID:      student.ID,
		Text:           text,
		DistressScore:  res.DistressScore,
		CrisisFlag:     res.CrisisFlag,
		Source:         res.Source,
		AlertTriggered: res.CrisisFlag,
	}

	if res.CrisisFlag {
		alert := risk.NewAlert(model.AlertCrisis, student.ID, student.Name, risk.CrisisMessage(student.Name))
		if err := risk.Emit(ctx, s.notifier, alert); err != nil {
			log.Printf("[Journal] Crisis notification failed for %s: %v", student.Name, err)
		}
	}

	audit := &model.AuditLog{UserID: actorID, Action: model.ActionJournalEntry, SubjectID: student.ID}
	if err := s.journals.Save(ctx, entry, audit); err != nil {
		return nil, fmt.Errorf("save journal entry: %w", err)
	}
	return entry, nil
}

// List returns a student's most recent entries, newest first
func (s *JournalService) List(ctx context.Context, studentID string, limit int) ([]*model.JournalEntry, error) {
	if _, err := s.students.GetByID(ctx, studentID); err != nil {
		return nil, err
	}
	return s.journals.ListByStudent(ctx, studentID, limit)
}
