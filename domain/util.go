package domain

import (
	"strings"

	"github.com/labstack/echo/v4"
)

// ParseListQueryParam parses a comma-separated query parameter, dropping empty elements.
func ParseListQueryParam(c echo.Context, paramName string) []string {
	var values []string
	for _, value := range strings.Split(c.QueryParam(paramName), ",") {
		if value = strings.TrimSpace(value); value != "" {
			values = append(values, value)
		}
	}
	return values
}
