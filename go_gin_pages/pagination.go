package go_gin_pages

import (
	"fmt"
	"strconv"

	"apartment_rent/types"
	"apartment_rent/utils/errDefs"

	"github.com/gin-gonic/gin"
)

const defaultRecordsPerPage = types.DefaultRecordsPerPage

func intQuery(c *gin.Context, name string, fallback int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: parameter %s needs to be a number but it is %q", errDefs.ErrInvalidArgument, name, raw)
	}
	return n, nil
}

func int64Param(c *gin.Context, name string) (int64, error) {
	raw := c.Param(name)
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%w: %s needs to be a positive number but it is %q", errDefs.ErrInvalidArgument, name, raw)
	}
	return n, nil
}

// windowFromQuery reads `page` and `recordsPerPage`, defaulting to the first page.
func windowFromQuery(c *gin.Context, recordsPerPage int) (types.Window, error) {
	page, err := intQuery(c, "page", 1)
	if err != nil {
		return types.Window{}, err
	}
	size, err := intQuery(c, "recordsPerPage", recordsPerPage)
	if err != nil {
		return types.Window{}, err
	}
	return types.NewWindow(page, size)
}

// pageHeaders exposes the total for pagination links.
func pageHeaders(c *gin.Context, total int64, window types.Window) {
	c.Header("X-Total-Count", strconv.FormatInt(total, 10))
	c.Header("X-Pages-Count", strconv.FormatInt(types.PagesCount(total, int64(window.RecordsPerPage)), 10))
}
