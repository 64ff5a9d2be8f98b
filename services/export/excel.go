// Package exportsvc builds Excel workbooks for download and for
// emailed department reports.
package exportsvc

import (
	"bytes"
	"fmt"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/darasa-app/darasa/core/attendance"
	"github.com/darasa-app/darasa/core/feedback"
	"github.com/darasa-app/darasa/core/report"
)

const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// AttendanceWorkbook renders a calendar as a workbook with one row per
// (date, department) and a monthly summary sheet.
func AttendanceWorkbook(cal attendance.Calendar) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	daily := "Daily"
	f.SetSheetName(f.GetSheetName(0), daily)
	if err := writeRow(f, daily, 1, "Date", "Department", "Present", "Absent", "Late", "Excused", "Total", "Present Rate"); err != nil {
		return nil, err
	}
	for i, day := range cal.Entries() {
		err := writeRow(f, daily, i+2,
			day.Date, day.Department,
			day.Present, day.Absent, day.Late, day.Excused, day.Total,
			report.Round1(day.PresentRate*100),
		)
		if err != nil {
			return nil, err
		}
	}

	monthly := "Monthly"
	if _, err := f.NewSheet(monthly); err != nil {
		return nil, errors.Wrap(err, "adding monthly sheet")
	}
	if err := writeRow(f, monthly, 1, "Month", "Department", "Present", "Absent", "Late", "Excused", "Total", "Present Rate"); err != nil {
		return nil, err
	}
	for i, month := range cal.MonthEntries() {
		err := writeRow(f, monthly, i+2,
			month.Month, month.Department,
			month.Present, month.Absent, month.Late, month.Excused, month.Total,
			report.Round1(month.PresentRate*100),
		)
		if err != nil {
			return nil, err
		}
	}

	buff, err := f.WriteToBuffer()
	if err != nil {
		return nil, errors.Wrap(err, "writing workbook")
	}
	return buff, nil
}

// FeedbackWorkbook renders aggregated feedback as a workbook with a
// rating distribution sheet and a per-question sheet.
func FeedbackWorkbook(dist feedback.Distribution, questions []feedback.QuestionAggregate) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	ratings := "Ratings"
	f.SetSheetName(f.GetSheetName(0), ratings)
	if err := writeRow(f, ratings, 1, "Rating", "Responses"); err != nil {
		return nil, err
	}
	row := 2
	for _, bucket := range dist.Buckets {
		if err := writeRow(f, ratings, row, bucket.Label, bucket.Count); err != nil {
			return nil, err
		}
		row++
	}
	if err := writeRow(f, ratings, row, "Total", dist.Total); err != nil {
		return nil, err
	}

	byQuestion := "Questions"
	if _, err := f.NewSheet(byQuestion); err != nil {
		return nil, errors.Wrap(err, "adding questions sheet")
	}
	if err := writeRow(f, byQuestion, 1, "Question", "Average Rating", "Rated", "Responses"); err != nil {
		return nil, err
	}
	for i, q := range questions {
		var avg interface{}
		if q.RatedCount > 0 {
			avg = report.Round1(q.AverageRating)
		}
		if err := writeRow(f, byQuestion, i+2, q.QuestionText, avg, q.RatedCount, q.ResponseCount); err != nil {
			return nil, err
		}
	}

	buff, err := f.WriteToBuffer()
	if err != nil {
		return nil, errors.Wrap(err, "writing workbook")
	}
	return buff, nil
}

func writeRow(f *excelize.File, sheet string, row int, values ...interface{}) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return errors.Wrap(err, "resolving cell")
		}
		if err = f.SetCellValue(sheet, cell, v); err != nil {
			return errors.Wrapf(err, "writing %s!%s", sheet, cell)
		}
	}
	return nil
}

// AttendanceFilename names an export file after its filter, eg
// attendance_science.xlsx.
func AttendanceFilename(department string) string {
	if department == "" {
		department = "all"
	}
	return fmt.Sprintf("attendance_%s.xlsx", department)
}

func FeedbackFilename(department string) string {
	if department == "" {
		department = "all"
	}
	return fmt.Sprintf("feedback_%s.xlsx", department)
}
