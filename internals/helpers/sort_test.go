package helper

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSortOrderClause(t *testing.T) {
	allowed := map[string]string{
		"created_at": "payment_created_at",
		"amount":     "payment_amount_idr",
	}

	cases := []struct {
		query string
		want  string
	}{
		{"", "payment_created_at DESC"},
		{"?sort_by=amount&order=asc", "payment_amount_idr ASC"},
		{"?sort_by=amount&sort=ASC", "payment_amount_idr ASC"},
		{"?sort_by=payment_id;drop&order=sideways", "payment_created_at DESC"},
	}

	for _, tc := range cases {
		app := fiber.New()
		var got string
		app.Get("/", func(c *fiber.Ctx) error {
			got = ParseSort(c, "created_at", "desc").OrderClause(allowed, "created_at")
			return nil
		})
		_, err := app.Test(httptest.NewRequest("GET", "/"+tc.query, nil))
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, tc.query)
	}
}
