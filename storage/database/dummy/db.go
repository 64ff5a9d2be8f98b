package dummydb

import (
	"sync"

	"github.com/darasa-app/darasa/core/attendance"
	"github.com/darasa-app/darasa/core/feedback"
)

type (
	DB struct {
		feedback   *feedbackTable
		attendance *attendanceTable
	}

	feedbackTable struct {
		sync.RWMutex
		responses []feedback.RawResponse
		questions map[string][]feedback.Question // keyed by form id
	}

	attendanceTable struct {
		sync.RWMutex
		records []attendance.Record
	}
)

func Open() (*DB, error) {
	db := &DB{
		feedback:   &feedbackTable{questions: make(map[string][]feedback.Question)},
		attendance: &attendanceTable{},
	}
	return db, nil
}
