package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

const defaultPageLimit = 10

// pageParams reads the skip/limit query parameters used by list endpoints.
// Missing or malformed values fall back to skip 0 and limit 10.
func pageParams(c echo.Context) (skip, limit int) {
	skip = 0
	limit = defaultPageLimit

	if v := c.QueryParam("skip"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			skip = parsed
		}
	}
	if v := c.QueryParam("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	return skip, limit
}
