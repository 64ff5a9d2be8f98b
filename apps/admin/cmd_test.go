package main

import (
	"io"
	"log"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"

	echoapi "github.com/darasa-app/darasa/apps/api/echo"
	"github.com/darasa-app/darasa/core"
)

func newTestCLI() *commandLine {
	logger = log.New(io.Discard, "", 0)
	conf := &core.Config{
		AppName:   "Darasa",
		SecretKey: []byte("53cr37"),
		Server:    core.ServerConfig{JWTExpirationDelta: time.Hour},
	}
	core.Conf = conf
	return &commandLine{conf: conf}
}

func Test_commandLine_run_help(t *testing.T) {
	cli := newTestCLI()

	tests := [][]string{
		{"admin"},
		{"admin", "bogus"},
		{"admin", "migrate"},
		{"admin", "seed"},
		{"admin", "devtoken"},
		{"admin", "sendreport"},
	}
	for _, args := range tests {
		if err := cli.run(args); err != errHelp {
			t.Errorf("run(%v) = %v; want errHelp", args, err)
		}
	}
}

func Test_commandLine_devToken(t *testing.T) {
	cli := newTestCLI()

	token, err := cli.devToken("jane", "science", true /* teacher */, false /* admin */)
	if err != nil {
		t.Fatalf("devToken(): %v", err)
	}

	claims := new(echoapi.Claims)
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return cli.conf.SecretKey, nil
	})
	if err != nil {
		t.Fatalf("parsing token: %v", err)
	}
	if !parsed.Valid {
		t.Error("token is not valid")
	}
	if claims.Subject != "jane" {
		t.Errorf("Subject = %q; want %q", claims.Subject, "jane")
	}
	if claims.Department != "science" {
		t.Errorf("Department = %q; want %q", claims.Department, "science")
	}
	if !claims.IsTeacher || claims.IsAdmin || claims.IsStudent {
		t.Errorf("roles = student:%v teacher:%v admin:%v; want teacher only",
			claims.IsStudent, claims.IsTeacher, claims.IsAdmin)
	}
}
