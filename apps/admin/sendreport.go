package main

import (
	"bytes"
	"context"
	"fmt"
	"net/mail"
	"time"

	"github.com/pkg/errors"

	"github.com/darasa-app/darasa/core"
	"github.com/darasa-app/darasa/core/attendance"
	"github.com/darasa-app/darasa/core/feedback"
	emailsvc "github.com/darasa-app/darasa/services/email"
	exportsvc "github.com/darasa-app/darasa/services/export"
	logsvc "github.com/darasa-app/darasa/services/logger"
)

type reportEmailData struct {
	Department    string
	Period        string
	ResponseCount int
}

// sendReport aggregates the department's feedback and attendance, renders
// both workbooks and emails them to the recipient.
func (cli *commandLine) sendReport(department, recipient string) error {
	ctx := context.Background()

	results, err := cli.feedbackSvc.Results(ctx, feedback.Filter{Department: department})
	if err != nil {
		return errors.Wrap(err, "aggregating feedback")
	}
	calendar, err := cli.attendanceSvc.Calendar(ctx, attendance.Filter{Department: department})
	if err != nil {
		return errors.Wrap(err, "aggregating attendance")
	}

	feedbackBook, err := exportsvc.FeedbackWorkbook(results.Distribution, results.Questions)
	if err != nil {
		return errors.Wrap(err, "building feedback workbook")
	}
	attendanceBook, err := exportsvc.AttendanceWorkbook(*calendar)
	if err != nil {
		return errors.Wrap(err, "building attendance workbook")
	}

	msg := &core.EmailMessage{
		To:           []mail.Address{{Address: recipient}},
		Subject:      fmt.Sprintf("%s department report", department),
		TemplateName: "department-report",
		TemplateData: reportEmailData{
			Department:    department,
			Period:        time.Now().Format("January 2006"),
			ResponseCount: results.ResponseCount,
		},
	}
	if err = msg.Attach(bytes.NewReader(feedbackBook.Bytes()), exportsvc.FeedbackFilename(department), exportsvc.XLSXContentType); err != nil {
		return errors.Wrap(err, "attaching feedback workbook")
	}
	if err = msg.Attach(bytes.NewReader(attendanceBook.Bytes()), exportsvc.AttendanceFilename(department), exportsvc.XLSXContentType); err != nil {
		return errors.Wrap(err, "attaching attendance workbook")
	}

	var mailSvc core.EmailService
	if cli.conf.Debug {
		mailSvc = emailsvc.NewConsoleService(cli.conf)
	} else {
		rollbarLogger := logsvc.NewRollbarLogger(logger, cli.conf)
		rollbarLogger.Enable(!cli.conf.Debug)
		mailSvc = emailsvc.NewSendgridService(cli.conf, rollbarLogger)
	}
	mailSvc.SendMessages(msg)

	// the mail service sends in the background; give it time to flush
	time.Sleep(2 * time.Second)

	logger.Printf("report for %q sent to %s", department, recipient)
	return nil
}
