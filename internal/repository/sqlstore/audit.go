package sqlstore

import (
	"context"

	"riskwatch/internal/model"
	"riskwatch/internal/repository"
)

type auditRepo struct{ *DB }

func (r *auditRepo) List(ctx context.Context, limit int) ([]*model.AuditLog, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, action, subject_id, timestamp FROM audit_logs ORDER BY timestamp DESC, rowid DESC LIMIT ?`,
		repository.ClampLimit(limit, 500))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*model.AuditLog, 0)
	for rows.Next() {
		var a model.AuditLog
		var ts int64
		if err := rows.Scan(&a.ID, &a.UserID, &a.Action, &a.SubjectID, &ts); err != nil {
			return nil, err
		}
		a.Timestamp = fromUnix(ts)
		out = append(out, &a)
	}
	return out, rows.Err()
}
