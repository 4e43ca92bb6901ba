package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	defaultPage     = 1
	defaultPageSize = 10
)

type Page struct {
	Page     int
	PageSize int
}

// ParsePage reads page and pageSize from the query string. Missing or
// non-positive values fall back to the defaults; a page past the end of the
// result set yields an empty slice downstream, not an error.
func ParsePage(ctx *gin.Context) Page {
	page := defaultPage
	pageSize := defaultPageSize

	if raw := ctx.Query("page"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			page = parsed
		}
	}

	if raw := ctx.Query("pageSize"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			pageSize = parsed
		}
	}

	return Page{Page: page, PageSize: pageSize}
}

func Paginate(p Page) func(*gorm.DB) *gorm.DB {
	return func(gdb *gorm.DB) *gorm.DB {
		offset := (p.Page - 1) * p.PageSize
		return gdb.Offset(offset).Limit(p.PageSize)
	}
}
