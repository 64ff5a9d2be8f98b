package main

import (
	"errors"
	"flag"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/darasa-app/darasa/core"
	"github.com/darasa-app/darasa/core/attendance"
	"github.com/darasa-app/darasa/core/feedback"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	conf          *core.Config
	db            *sqlx.DB
	feedbackSvc   *feedback.Service
	attendanceSvc *attendance.Service
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  migrate COMMAND [ARGS] - run a goose migration command (up, up-by-one, down, redo, status, version)")
	fmt.Println("  seed -department DEPT [-responses N] [-days N] - load demo feedback and attendance data")
	fmt.Println("  devtoken -subject SUBJECT [-department DEPT] [-teacher] [-admin] - mint a signed API token")
	fmt.Println("  sendreport -department DEPT -to EMAIL - email the department report workbooks")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	seedCmd := flag.NewFlagSet("seed", flag.ExitOnError)
	seedDept := seedCmd.String("department", "", "The department to seed data for.")
	seedResponses := seedCmd.Int("responses", 25, "Number of feedback responses to create.")
	seedDays := seedCmd.Int("days", 10, "Number of attendance days to create.")

	devTokenCmd := flag.NewFlagSet("devtoken", flag.ExitOnError)
	devTokenSubject := devTokenCmd.String("subject", "", "The token's subject.")
	devTokenDept := devTokenCmd.String("department", "", "The subject's department.")
	devTokenTeacher := devTokenCmd.Bool("teacher", false, "Grant teacher access.")
	devTokenAdmin := devTokenCmd.Bool("admin", false, "Grant admin access.")

	sendReportCmd := flag.NewFlagSet("sendreport", flag.ExitOnError)
	sendReportDept := sendReportCmd.String("department", "", "The department to report on.")
	sendReportTo := sendReportCmd.String("to", "", "The recipient's email address.")

	switch args[1] {
	case "migrate":
		if len(args) < 3 {
			cli.printUsage()
			return errHelp
		}
		return cli.migrate(args[2:])
	case "seed":
		if err := seedCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *seedDept == "" {
			seedCmd.Usage()
			return errHelp
		}
		return cli.seed(*seedDept, *seedResponses, *seedDays)
	case "devtoken":
		if err := devTokenCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *devTokenSubject == "" {
			devTokenCmd.Usage()
			return errHelp
		}
		token, err := cli.devToken(*devTokenSubject, *devTokenDept, *devTokenTeacher, *devTokenAdmin)
		if err != nil {
			return err
		}
		fmt.Println(token)
		return nil
	case "sendreport":
		if err := sendReportCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *sendReportDept == "" || *sendReportTo == "" {
			sendReportCmd.Usage()
			return errHelp
		}
		return cli.sendReport(*sendReportDept, *sendReportTo)
	default:
		cli.printUsage()
		return errHelp
	}
}
