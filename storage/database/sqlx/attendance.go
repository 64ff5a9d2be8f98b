package sqlxrepos

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/darasa-app/darasa/core/attendance"
)

type attendanceRepository struct {
	db *sqlx.DB
}

var _ attendance.Repository = (*attendanceRepository)(nil)

func NewAttendanceRepository(db *sqlx.DB) attendance.Repository {
	return &attendanceRepository{db: db}
}

type (
	recordRow struct {
		ID         string    `db:"id"`
		Department string    `db:"department"`
		Date       time.Time `db:"date"`
	}

	entryRow struct {
		RecordID  string `db:"record_id"`
		StudentID string `db:"student_id"`
		Status    string `db:"status"`
		Remark    string `db:"remark"`
	}
)

func (repo *attendanceRepository) QueryRecords(ctx context.Context, filter attendance.Filter) ([]attendance.Record, error) {
	query := `SELECT id, department, date
		FROM attendance_record
		WHERE ($1 = '' OR department = $1)
		  AND ($2::timestamptz IS NULL OR date >= $2)
		  AND ($3::timestamptz IS NULL OR date <= $3)
		ORDER BY date, department, id`

	var from, to interface{}
	if !filter.From.IsZero() {
		from = filter.From.UTC()
	}
	if !filter.To.IsZero() {
		to = filter.To.UTC()
	}

	var rows []recordRow
	if err := repo.db.SelectContext(ctx, &rows, query, filter.Department, from, to); err != nil {
		return nil, errors.Wrap(err, "querying attendance records")
	}
	if len(rows) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(rows))
	byID := make(map[string]int, len(rows))
	out := make([]attendance.Record, 0, len(rows))
	for i, row := range rows {
		ids = append(ids, row.ID)
		byID[row.ID] = i
		out = append(out, attendance.Record{
			ID:         row.ID,
			Department: row.Department,
			Date:       row.Date.UTC(),
		})
	}

	entQuery, args, err := sqlx.In(`SELECT record_id, student_id, status, remark
		FROM attendance_entry
		WHERE record_id IN (?)
		ORDER BY record_id, position, id`, ids)
	if err != nil {
		return nil, errors.Wrap(err, "building entries query")
	}

	var entries []entryRow
	if err = repo.db.SelectContext(ctx, &entries, repo.db.Rebind(entQuery), args...); err != nil {
		return nil, errors.Wrap(err, "querying attendance entries")
	}

	for _, ent := range entries {
		idx, ok := byID[ent.RecordID]
		if !ok {
			continue
		}
		out[idx].Attendees = append(out[idx].Attendees, attendance.Attendee{
			StudentID: ent.StudentID,
			Status:    attendance.Status(ent.Status),
			Remark:    ent.Remark,
		})
	}
	return out, nil
}
