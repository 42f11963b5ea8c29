package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"social_cases_go/services"

	"github.com/labstack/echo/v4"
)

// pathID parses a positive numeric path parameter
func pathID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid "+name)
	}
	return uint(id), nil
}

// queryID parses an optional positive numeric query parameter
func queryID(c echo.Context, name string) (*uint, error) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "Invalid "+name)
	}
	v := uint(id)
	return &v, nil
}

// queryIDList parses ids given as repeated parameters, comma separated, or both
func queryIDList(c echo.Context, name string) ([]uint, error) {
	ids := make([]uint, 0)
	for _, raw := range c.QueryParams()[name] {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := strconv.ParseUint(part, 10, 64)
			if err != nil || id == 0 {
				return nil, echo.NewHTTPError(http.StatusBadRequest, "Invalid "+name)
			}
			ids = append(ids, uint(id))
		}
	}
	return ids, nil
}

// queryDate parses an optional YYYY-MM-DD or RFC3339 query parameter
func queryDate(c echo.Context, name string) (*time.Time, error) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return nil, nil
	}
	t, err := services.ParseDate(raw)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "Invalid "+name+" (use YYYY-MM-DD)")
	}
	return &t, nil
}

// pageParams reads page and size, falling back to the defaults on bad input
func pageParams(c echo.Context) services.PageParams {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	size, _ := strconv.Atoi(c.QueryParam("size"))
	return services.NewPageParams(page, size)
}
