package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

type Sort struct {
	By    string
	Order string // asc|desc
}

// ParseSort membaca ?sort_by=&order= (alias ?sort=).
func ParseSort(c *fiber.Ctx, defaultBy, defaultOrder string) Sort {
	by := strings.TrimSpace(c.Query("sort_by"))
	if by == "" {
		by = defaultBy
	}
	order := strings.ToLower(strings.TrimSpace(c.Query("order", c.Query("sort"))))
	if order != "asc" && order != "desc" {
		order = strings.ToLower(defaultOrder)
		if order != "asc" && order != "desc" {
			order = "desc"
		}
	}
	return Sort{By: by, Order: order}
}

// OrderClause: ORDER BY aman (kolom dari whitelist). Key tidak dikenal → defaultKey.
func (s Sort) OrderClause(allowed map[string]string, defaultKey string) string {
	col, ok := allowed[s.By]
	if !ok {
		col = allowed[defaultKey]
	}
	dir := "DESC"
	if s.Order == "asc" {
		dir = "ASC"
	}
	return col + " " + dir
}
