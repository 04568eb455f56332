package sqlstore

import (
	"context"
	"database/sql"
	"time"

	"riskwatch/internal/model"
	"riskwatch/internal/repository"
)

type journalRepo struct{ *DB }

func (r *journalRepo) Save(ctx context.Context, e *model.JournalEntry, audit *model.AuditLog) error {
	repository.StampID(&e.ID)
	repository.StampTime(&e.CreatedAt)
	if audit != nil {
		repository.PrepareAudit(audit, e.StudentID, e.CreatedAt)
	}

	return r.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO journal_entries (id, student_id, text, distress_score, crisis_flag, source, alert_triggered, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			e.ID, e.StudentID, e.Text, e.DistressScore, boolToInt(e.CrisisFlag), string(e.Source),
			boolToInt(e.AlertTriggered), toUnix(e.CreatedAt))
		if err != nil {
			return err
		}
		if audit != nil {
			return insertAudit(ctx, tx, audit)
		}
		return nil
	})
}

func (r *journalRepo) ListByStudent(ctx context.Context, studentID string, limit int) ([]*model.JournalEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, student_id, text, distress_score, crisis_flag, source, alert_triggered, created_at
		 FROM journal_entries WHERE student_id = ? ORDER BY created_at DESC, rowid DESC LIMIT ?`,
		studentID, repository.ClampLimit(limit, 100))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*model.JournalEntry, 0)
	for rows.Next() {
		var e model.JournalEntry
		var crisis, alert int
		var source string
		var created int64
		if err := rows.Scan(&e.ID, &e.StudentID, &e.Text, &e.DistressScore, &crisis, &source, &alert, &created); err != nil {
			return nil, err
		}
		e.CrisisFlag = crisis != 0
		e.AlertTriggered = alert != 0
		e.Source = model.ScoreSource(source)
		e.CreatedAt = fromUnix(created)
		out = append(out, &e)
	}
	return out, rows.Err()
}

func (r *journalRepo) CountCrisisSince(ctx context.Context, since time.Time) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM journal_entries WHERE crisis_flag = 1 AND created_at >= ?`, toUnix(since)).Scan(&n)
	return n, err
}
