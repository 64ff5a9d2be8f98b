package main

import (
	echoapi "github.com/darasa-app/darasa/apps/api/echo"
)

// devToken mints a signed bearer token for manual API testing.
func (cli *commandLine) devToken(subject, department string, isTeacher, isAdmin bool) (string, error) {
	claims := echoapi.NewClaims(cli.conf, subject, department, isTeacher, isAdmin)
	return echoapi.GenerateToken(cli.conf, claims)
}
