// Package restapi hosts the HTTP handlers: it parses request parameters
// into the primitive values the services expect and serializes the uniform
// response envelope back to the client.
package restapi

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/msorganics/organics/internal/webserver"
	"github.com/msorganics/organics/pkg/rest"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// GetDB returns the request-scoped database handle.
func GetDB(c echo.Context) *gorm.DB {
	return c.Get(webserver.DBContextKey).(*gorm.DB)
}

// ok writes a success envelope. The envelope status doubles as the
// transport status.
func ok(c echo.Context, message string, data interface{}) error {
	return c.JSON(http.StatusOK, rest.NewResponse(http.StatusOK, message, data))
}

// fail writes an error envelope. Client errors keep their status and
// message; anything else is reported generically and logged.
func fail(c echo.Context, err error) error {
	var restErr *rest.Error
	if errors.As(err, &restErr) {
		return c.JSON(restErr.StatusCode, restErr)
	}
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return c.JSON(httpErr.Code, rest.NewError(httpErr.Code, fmt.Sprintf("%v", httpErr.Message)))
	}
	zap.L().Error("unexpected error",
		zap.String("method", c.Request().Method),
		zap.String("uri", c.Request().RequestURI),
		zap.Error(err))
	return c.JSON(http.StatusInternalServerError,
		rest.NewError(http.StatusInternalServerError, "Internal server error"))
}

// failMsg writes a client error envelope with an explicit status.
func failMsg(c echo.Context, statusCode int, message string) error {
	return c.JSON(statusCode, rest.NewError(statusCode, message))
}

// handleValidationError translates validator failures into a 400 envelope
// naming the first offending field.
func handleValidationError(c echo.Context, err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return failMsg(c, http.StatusBadRequest,
			fmt.Sprintf("Invalid value for field %s", verrs[0].Field()))
	}
	return failMsg(c, http.StatusBadRequest, "Invalid request payload")
}

func parseIDParam(c echo.Context, name string) (int64, error) {
	return strconv.ParseInt(c.Param(name), 10, 64)
}

// parseIntQuery returns def when the parameter is absent or malformed.
func parseIntQuery(c echo.Context, name string, def int) int {
	if v := c.QueryParam(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

// parseOptionalInt returns nil when the parameter is absent or malformed.
func parseOptionalInt(c echo.Context, name string) *int {
	if v := c.QueryParam(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return &n
		}
	}
	return nil
}

// parseDateQuery parses a date query parameter leniently. Absence yields
// (nil, nil); a present but unparseable value is an error.
func parseDateQuery(c echo.Context, name string) (*time.Time, error) {
	v := strings.TrimSpace(c.QueryParam(name))
	if v == "" {
		return nil, nil
	}
	t, err := dateparse.ParseAny(v)
	if err != nil {
		return nil, rest.BadRequest(fmt.Sprintf("Invalid date for %s", name))
	}
	return &t, nil
}

// parseIDList splits a comma-separated id list, dropping anything that is
// not an integer.
func parseIDList(raw string) []int64 {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		if id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64); err == nil {
			ids = append(ids, id)
		}
	}
	return ids
}

// parseStringList splits a comma-separated string list, dropping empties.
func parseStringList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if v := strings.TrimSpace(part); v != "" {
			out = append(out, v)
		}
	}
	return out
}
