package main

import (
	"database/sql"
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var seedQuestions = []string{
	"How would you rate the course content?",
	"How would you rate the pace of lectures?",
	"How approachable is the teaching staff?",
	"How useful are the practical sessions?",
}

var seedComments = []string{
	"please slow down a little",
	"more examples would help",
	"really enjoying this course",
	"the labs are too short",
}

var seedStatuses = []string{"present", "present", "present", "present", "late", "absent", "excused"}

// seed loads demo data so reports have something to show in DEV.
func (cli *commandLine) seed(department string, responses, days int) error {
	formID := uuid.NewString()
	title := fmt.Sprintf("%s student feedback", department)
	if _, err := cli.db.Exec(
		"INSERT INTO feedback_form (id, title, department) VALUES ($1, $2, $3)",
		formID, title, department,
	); err != nil {
		return errors.Wrap(err, "seeding form")
	}

	questionIDs := make([]string, len(seedQuestions))
	for i, text := range seedQuestions {
		questionIDs[i] = uuid.NewString()
		if _, err := cli.db.Exec(
			"INSERT INTO feedback_question (id, form_id, text, position) VALUES ($1, $2, $3, $4)",
			questionIDs[i], formID, text, i,
		); err != nil {
			return errors.Wrap(err, "seeding question")
		}
	}

	now := time.Now().UTC()
	for i := 0; i < responses; i++ {
		respID := uuid.NewString()
		submittedAt := now.AddDate(0, 0, -rand.Intn(30))
		if _, err := cli.db.Exec(
			"INSERT INTO feedback_response (id, form_id, department, submitted_at) VALUES ($1, $2, $3, $4)",
			respID, formID, department, submittedAt,
		); err != nil {
			return errors.Wrap(err, "seeding response")
		}

		for pos, qid := range questionIDs {
			rating := strconv.Itoa(rand.Intn(5) + 1)
			var comments sql.NullString
			if rand.Intn(4) == 0 {
				comments = sql.NullString{String: seedComments[rand.Intn(len(seedComments))], Valid: true}
			}
			if _, err := cli.db.Exec(
				"INSERT INTO feedback_answer (response_id, question_id, question_text, response, comments, position)"+
					" VALUES ($1, $2, $3, $4, $5, $6)",
				respID, qid, seedQuestions[pos], rating, comments, pos,
			); err != nil {
				return errors.Wrap(err, "seeding answer")
			}
		}
	}

	for d := 0; d < days; d++ {
		recordID := uuid.NewString()
		date := now.AddDate(0, 0, -d)
		if _, err := cli.db.Exec(
			"INSERT INTO attendance_record (id, department, date) VALUES ($1, $2, $3)",
			recordID, department, date,
		); err != nil {
			return errors.Wrap(err, "seeding attendance record")
		}

		for s := 0; s < 20; s++ {
			status := seedStatuses[rand.Intn(len(seedStatuses))]
			var remark string
			if status == "excused" {
				remark = "medical"
			}
			if _, err := cli.db.Exec(
				"INSERT INTO attendance_entry (record_id, student_id, status, remark, position)"+
					" VALUES ($1, $2, $3, $4, $5)",
				recordID, fmt.Sprintf("student-%02d", s+1), status, remark, s,
			); err != nil {
				return errors.Wrap(err, "seeding attendance entry")
			}
		}
	}

	logger.Printf("seeded %d responses and %d attendance days for %q", responses, days, department)
	return nil
}
