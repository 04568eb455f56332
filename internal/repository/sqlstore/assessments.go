package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"

	"riskwatch/internal/model"
	"riskwatch/internal/repository"
)

type assessmentRepo struct{ *DB }

func (r *assessmentRepo) Save(ctx context.Context, a *model.RiskAssessment, audit *model.AuditLog) error {
	repository.StampID(&a.ID)
	repository.StampTime(&a.CreatedAt)
	if audit != nil {
		repository.PrepareAudit(audit, a.StudentID, a.CreatedAt)
	}

	attributions, err := json.Marshal(a.Attributions)
	if err != nil {
		return err
	}
	features, err := json.Marshal(a.Features)
	if err != nil {
		return err
	}

	return r.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO risk_assessments (id, student_id, probability, tier, attributions, alert_triggered, alert_message, source, features, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			a.ID, a.StudentID, a.Probability, string(a.Tier), string(attributions),
			boolToInt(a.AlertTriggered), a.AlertMessage, string(a.Source), string(features), toUnix(a.CreatedAt))
		if err != nil {
			return err
		}
		if audit != nil {
			return insertAudit(ctx, tx, audit)
		}
		return nil
	})
}

func (r *assessmentRepo) QueryRecent(ctx context.Context, studentID string, limit int) ([]*model.RiskAssessment, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, student_id, probability, tier, attributions, alert_triggered, alert_message, source, features, created_at
		 FROM risk_assessments WHERE student_id = ? ORDER BY created_at DESC, rowid DESC LIMIT ?`,
		studentID, repository.ClampLimit(limit, 1000))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]*model.RiskAssessment, 0)
	for rows.Next() {
		var a model.RiskAssessment
		var tier, source, attributions, features string
		var alert int
		var created int64
		if err := rows.Scan(&a.ID, &a.StudentID, &a.Probability, &tier, &attributions, &alert,
			&a.AlertMessage, &source, &features, &created); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(attributions), &a.Attributions); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(features), &a.Features); err != nil {
			return nil, err
		}
		a.Tier = model.RiskTier(tier)
		a.Source = model.ScoreSource(source)
		a.AlertTriggered = alert != 0
		a.CreatedAt = fromUnix(created)
		out = append(out, &a)
	}
	return out, rows.Err()
}

func (r *assessmentRepo) CountByTier(ctx context.Context) (map[model.RiskTier]int64, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT tier, COUNT(*) FROM risk_assessments GROUP BY tier`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[model.RiskTier]int64)
	for rows.Next() {
		var tier string
		var n int64
		if err := rows.Scan(&tier, &n); err != nil {
			return nil, err
		}
		counts[model.RiskTier(tier)] = n
	}
	return counts, rows.Err()
}
