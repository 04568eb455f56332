package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"riskwatch/internal/model"
	"riskwatch/internal/repository"
)

type studentRepo struct{ *DB }

const studentColumns = `id, name, age, attendance_rate, gpa, financial_stress_score, family_support_score, created_at, updated_at`

func (r *studentRepo) Create(ctx context.Context, s *model.Student) error {
	repository.StampID(&s.ID)
	repository.StampTime(&s.CreatedAt)
	s.UpdatedAt = s.CreatedAt
	f := s.Features
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO students (`+studentColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.ID, s.Name, s.Age, f.AttendanceRate, f.GPA, f.FinancialStressScore, f.FamilySupportScore,
		toUnix(s.CreatedAt), toUnix(s.UpdatedAt))
	return err
}

func (r *studentRepo) GetByID(ctx context.Context, id string) (*model.Student, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+studentColumns+` FROM students WHERE id = ?`, id)
	s, err := scanStudent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	return s, err
}

func (r *studentRepo) List(ctx context.Context, skip, limit int) ([]*model.Student, error) {
	if skip < 0 {
		skip = 0
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+studentColumns+` FROM students ORDER BY created_at ASC, id ASC LIMIT ? OFFSET ?`,
		repository.ClampLimit(limit, 100), skip)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	students := make([]*model.Student, 0)
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		students = append(students, s)
	}
	return students, rows.Err()
}

func (r *studentRepo) UpdateFeatures(ctx context.Context, id string, fv model.FeatureVector) (*model.Student, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE students SET attendance_rate = ?, gpa = ?, financial_stress_score = ?, family_support_score = ?, updated_at = ? WHERE id = ?`,
		fv.AttendanceRate, fv.GPA, fv.FinancialStressScore, fv.FamilySupportScore, toUnix(time.Now()), id)
	if err != nil {
		return nil, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, repository.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *studentRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM students`).Scan(&n)
	return n, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanStudent(sc scanner) (*model.Student, error) {
	var s model.Student
	var created, updated int64
	err := sc.Scan(&s.ID, &s.Name, &s.Age,
		&s.Features.AttendanceRate, &s.Features.GPA, &s.Features.FinancialStressScore, &s.Features.FamilySupportScore,
		&created, &updated)
	if err != nil {
		return nil, err
	}
	s.CreatedAt = fromUnix(created)
	s.UpdatedAt = fromUnix(updated)
	return &s, nil
}
