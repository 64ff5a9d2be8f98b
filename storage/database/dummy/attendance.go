package dummydb

import (
	"context"

	"github.com/darasa-app/darasa/core/attendance"
)

type attendanceRepository struct {
	db *attendanceTable
}

var _ attendance.Repository = (*attendanceRepository)(nil) // interface compliance check

func NewAttendanceRepository(db *DB) *attendanceRepository {
	return &attendanceRepository{db: db.attendance}
}

// CreateRecord stores a taken-attendance event.
func (repo *attendanceRepository) CreateRecord(rec attendance.Record) attendance.Record {
	repo.db.Lock()
	defer repo.db.Unlock()
	repo.db.records = append(repo.db.records, rec)
	return rec
}

func (repo *attendanceRepository) QueryRecords(_ context.Context, filter attendance.Filter) ([]attendance.Record, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	var out []attendance.Record
	for _, rec := range repo.db.records {
		if filter.Department != "" && rec.Department != filter.Department {
			continue
		}
		if !filter.From.IsZero() && rec.Date.Before(filter.From) {
			continue
		}
		if !filter.To.IsZero() && rec.Date.After(filter.To) {
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}
