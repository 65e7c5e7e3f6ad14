package api

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const defaultPageSize = 6

type pageParams struct {
	Number int
	Limit  int
}

func (p pageParams) Offset() int {
	return (p.Number - 1) * p.Limit
}

// paginationParams reads the page/limit query parameters, falling back
// to the first page with the default size.
func paginationParams(c *gin.Context) pageParams {
	params := pageParams{Number: 1, Limit: defaultPageSize}

	if v, err := strconv.Atoi(c.Query("page")); err == nil && v > 0 {
		params.Number = v
	}
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 {
		params.Limit = v
	}
	return params
}

// paginatedResponse wraps results in the count/next/previous envelope
// with page-number links derived from the request URL.
func paginatedResponse(c *gin.Context, params pageParams, count int64, results interface{}) gin.H {
	var next, previous interface{}

	if int64(params.Offset()+params.Limit) < count {
		next = pageLink(c, params.Number+1)
	}
	if params.Number > 1 {
		previous = pageLink(c, params.Number-1)
	}

	return gin.H{
		"count":    count,
		"next":     next,
		"previous": previous,
		"results":  results,
	}
}

func pageLink(c *gin.Context, page int) string {
	u := *c.Request.URL
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	u.RawQuery = q.Encode()
	return u.String()
}
