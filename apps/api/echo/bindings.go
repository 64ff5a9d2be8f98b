package echoapi

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// cacheKey joins a prefix and its filter parts; empty parts stay in place
// so distinct filters never collide.
func cacheKey(prefix string, parts ...string) string {
	return prefix + ":" + strings.Join(parts, ":")
}

func sendWorkbook(ctx echo.Context, filename string, buff *bytes.Buffer) error {
	ctx.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return ctx.Blob(
		http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		buff.Bytes(),
	)
}
