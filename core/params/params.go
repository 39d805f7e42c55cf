package params

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// QueryParams holds common pagination query params
type QueryParams struct {
	PageNumber int
	PageSize   int
}

// FromContext parses pagination params with sane defaults
func FromContext(c echo.Context) QueryParams {
	p := QueryParams{PageNumber: 1, PageSize: 20}

	if v, err := strconv.Atoi(c.QueryParam("page")); err == nil && v > 0 {
		p.PageNumber = v
	}
	if v, err := strconv.Atoi(c.QueryParam("page_size")); err == nil && v > 0 && v <= 100 {
		p.PageSize = v
	}
	return p
}
